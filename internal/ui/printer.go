package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Aman-CERP/invsearch/internal/inventory"
	"github.com/Aman-CERP/invsearch/internal/search"
)

// ruleWidth is the width of the separator around a record block.
const ruleWidth = 40

// Printer writes records to a terminal or pipe.
// Write errors are intentionally ignored for console output.
type Printer struct {
	out    io.Writer
	styles Styles
}

// NewPrinter creates a printer. Color selects DefaultStyles over NoColorStyles.
func NewPrinter(out io.Writer, color bool) *Printer {
	return &Printer{out: out, styles: GetStyles(!color)}
}

// Record prints one record as a labeled block between two rules.
func (p *Printer) Record(r *inventory.Record) {
	p.block(r, "")
}

// Records prints each record as a block.
func (p *Printer) Records(records []*inventory.Record) {
	for _, r := range records {
		p.block(r, "")
	}
}

// Matches prints fuzzy matches as blocks annotated with their score.
func (p *Printer) Matches(matches []search.Match) {
	for _, m := range matches {
		p.block(m.Record, strconv.FormatFloat(m.Score, 'f', 2, 64))
	}
}

// Table prints records as a bordered table.
func (p *Printer) Table(records []*inventory.Record) {
	_, _ = fmt.Fprintln(p.out, RenderTable(records, p.styles))
}

func (p *Printer) block(r *inventory.Record, score string) {
	rule := p.styles.Rule.Render(strings.Repeat("-", ruleWidth))
	_, _ = fmt.Fprintln(p.out, rule)
	for _, f := range fields(r) {
		_, _ = fmt.Fprintf(p.out, "%s %s\n", p.styles.Label.Render(f.label+":"), p.styles.Value.Render(f.value))
	}
	if score != "" {
		_, _ = fmt.Fprintf(p.out, "%s %s\n", p.styles.Label.Render("score:"), p.styles.Score.Render(score))
	}
	_, _ = fmt.Fprintln(p.out, rule)
}

type field struct {
	label string
	value string
}

// fields lists a record's values in storage order.
func fields(r *inventory.Record) []field {
	return []field{
		{"id", r.ID},
		{"name", r.Name},
		{"category", r.Category},
		{"qty", strconv.Itoa(r.Qty)},
		{"location", r.Location},
	}
}

// RenderTable renders records as a bordered table with a header row.
func RenderTable(records []*inventory.Record, s Styles) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		Headers("ID", "NAME", "CATEGORY", "QTY", "LOCATION").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Header.Padding(0, 1)
			}
			if col == 3 {
				return s.Cell.Align(lipgloss.Right)
			}
			return s.Cell
		})

	for _, r := range records {
		t.Row(r.ID, r.Name, r.Category, strconv.Itoa(r.Qty), r.Location)
	}
	return t.String()
}
