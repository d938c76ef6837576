// Package export writes inventory snapshots to spreadsheet files and reads
// them back for import.
package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/Aman-CERP/invsearch/internal/errors"
	"github.com/Aman-CERP/invsearch/internal/inventory"
)

// SheetName is the worksheet holding the records.
const SheetName = "Inventory"

// Header is the first row of the sheet, in storage field order.
var Header = []any{"id", "name", "category", "qty", "location"}

// WriteXLSX writes records to a new workbook at path, one row per record
// under a header row. Quantities are stored as numbers.
func WriteXLSX(path string, records []*inventory.Record) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return exportError(path, err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &Header); err != nil {
		return exportError(path, err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return exportError(path, err)
		}
		row := []any{r.ID, r.Name, r.Category, r.Qty, r.Location}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return exportError(path, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return exportError(path, err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return exportError(path, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return exportError(path, err)
	}

	slog.Info("inventory_exported", slog.String("path", path), slog.Int("count", len(records)))
	return nil
}

// ReadXLSX reads records back from a workbook written by WriteXLSX.
func ReadXLSX(path string) ([]*inventory.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, exportError(path, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, exportError(path, err)
	}

	records := []*inventory.Record{}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		// Trailing empty cells are omitted by GetRows.
		cells := make([]string, len(Header))
		copy(cells, row)

		var qty int
		if cells[3] != "" {
			if _, err := fmt.Sscanf(cells[3], "%d", &qty); err != nil {
				return nil, exportError(path, fmt.Errorf("row %d: qty %q is not an integer", i+1, cells[3]))
			}
		}
		records = append(records, &inventory.Record{
			ID:       cells[0],
			Name:     cells[1],
			Category: cells[2],
			Qty:      qty,
			Location: cells[4],
		})
	}
	return records, nil
}

func exportError(path string, err error) error {
	return errors.New(errors.ErrCodeExportFailed,
		fmt.Sprintf("spreadsheet export failed for %s", path), err).
		WithDetail("path", path)
}
