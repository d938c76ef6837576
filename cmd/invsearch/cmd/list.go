package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	inverrors "github.com/Aman-CERP/invsearch/internal/errors"
	"github.com/Aman-CERP/invsearch/internal/inventory"
	"github.com/Aman-CERP/invsearch/internal/store"
)

// Output formats for commands that print records.
const (
	formatText  = "text"
	formatTable = "table"
	formatJSON  = "json"
)

type listOptions struct {
	sort   string
	format string
}

func newListCmd() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every record",
		Long: `Print every record in the inventory file.

Examples:
  invsearch list
  invsearch list --sort qty --format table
  invsearch list --format json > backup.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.sort, "sort", "s", "", "Sort by: id, name, category, qty (default from config)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatText, "Output format: text, table, json")

	return cmd
}

func runList(cmd *cobra.Command, opts listOptions) error {
	if err := validateFormat(opts.format); err != nil {
		return err
	}

	sess, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer sess.close()

	records, err := sess.sorted(opts.sort)
	if err != nil {
		return err
	}

	if len(records) == 0 && opts.format != formatJSON {
		sess.out.Info("[Inventory is empty]")
		return nil
	}
	return printRecords(cmd, sess, records, opts.format)
}

// printRecords writes records in the requested format.
func printRecords(cmd *cobra.Command, sess *session, records []*inventory.Record, format string) error {
	switch format {
	case formatJSON:
		if err := store.Encode(cmd.OutOrStdout(), records); err != nil {
			return inverrors.InternalError("failed to encode records", err)
		}
	case formatTable:
		sess.printer.Table(records)
	default:
		sess.printer.Records(records)
	}
	return nil
}

func validateFormat(format string) error {
	switch format {
	case formatText, formatTable, formatJSON:
		return nil
	default:
		return inverrors.New(inverrors.ErrCodeInvalidInput,
			fmt.Sprintf("unknown output format %q", format), nil).
			WithSuggestion("Use one of: text, table, json")
	}
}
