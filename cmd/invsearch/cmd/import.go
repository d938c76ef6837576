package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	inverrors "github.com/Aman-CERP/invsearch/internal/errors"
	"github.com/Aman-CERP/invsearch/internal/export"
	"github.com/Aman-CERP/invsearch/internal/inventory"
)

func newImportCmd() *cobra.Command {
	var (
		inPath         string
		skipDuplicates bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Add records from an Excel workbook and save",
		Long: `Add every row of an .xlsx workbook written by 'invsearch export'.

Rows without an ID get a generated one. A row whose ID is already in use
stops the import and nothing is saved, unless --skip-duplicates is set.

Examples:
  invsearch import --in inventory.xlsx
  invsearch import --in delivery.xlsx --skip-duplicates`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, inPath, skipDuplicates)
		},
	}

	cmd.Flags().StringVarP(&inPath, "in", "i", "inventory.xlsx", "Workbook to read")
	cmd.Flags().BoolVar(&skipDuplicates, "skip-duplicates", false, "Skip rows whose ID already exists")

	return cmd
}

func runImport(cmd *cobra.Command, inPath string, skipDuplicates bool) error {
	if filepath.Ext(inPath) != ".xlsx" {
		return inverrors.New(inverrors.ErrCodeInvalidInput, "import file must end in .xlsx", nil).
			WithDetail("in", inPath)
	}
	if !filepath.IsAbs(inPath) {
		cwd, err := os.Getwd()
		if err != nil {
			return inverrors.InternalError("failed to get current directory", err)
		}
		inPath = filepath.Join(cwd, inPath)
	}

	records, err := export.ReadXLSX(inPath)
	if err != nil {
		return err
	}

	sess, err := openSession(cmd, true)
	if err != nil {
		return err
	}
	defer sess.close()

	added, skipped := 0, 0
	for i, r := range records {
		if r.Name == "" {
			return inverrors.New(inverrors.ErrCodeInvalidInput,
				fmt.Sprintf("row %d has no name", i+2), nil).
				WithDetail("in", inPath)
		}
		if r.ID == "" {
			r.ID = inventory.NewID()
		}
		if err := sess.engine.Add(r); err != nil {
			if skipDuplicates && inverrors.GetCode(err) == inverrors.ErrCodeDuplicateID {
				skipped++
				sess.out.Warningf("Skipped row %d: ID %s already exists.", i+2, r.ID)
				continue
			}
			return err
		}
		added++
	}

	if err := sess.save(); err != nil {
		return err
	}

	slog.Info("inventory_imported",
		slog.String("path", inPath),
		slog.Int("added", added),
		slog.Int("skipped", skipped))
	sess.out.Successf("Imported %d record(s) from '%s' into '%s'.", added, inPath, sess.store.Path())
	return nil
}
