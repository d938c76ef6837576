package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	inverrors "github.com/Aman-CERP/invsearch/internal/errors"
	"github.com/Aman-CERP/invsearch/internal/export"
)

func newExportCmd() *cobra.Command {
	var (
		outPath string
		sortKey string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the inventory to an Excel workbook",
		Long: `Write every record to an .xlsx workbook with one row per record.

Examples:
  invsearch export --out inventory.xlsx
  invsearch export --out report.xlsx --sort category`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filepath.Ext(outPath) != ".xlsx" {
				return inverrors.New(inverrors.ErrCodeInvalidInput, "export file must end in .xlsx", nil).
					WithDetail("out", outPath)
			}
			if !filepath.IsAbs(outPath) {
				cwd, err := os.Getwd()
				if err != nil {
					return inverrors.InternalError("failed to get current directory", err)
				}
				outPath = filepath.Join(cwd, outPath)
			}

			sess, err := openSession(cmd, false)
			if err != nil {
				return err
			}
			defer sess.close()

			records, err := sess.sorted(sortKey)
			if err != nil {
				return err
			}
			if err := export.WriteXLSX(outPath, records); err != nil {
				return err
			}

			sess.out.Successf("Exported %d record(s) to '%s'.", len(records), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "inventory.xlsx", "Workbook to write")
	cmd.Flags().StringVarP(&sortKey, "sort", "s", "", "Sort by: id, name, category, qty (default from config)")

	return cmd
}
