package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	inverrors "github.com/Aman-CERP/invsearch/internal/errors"
	"github.com/Aman-CERP/invsearch/internal/inventory"
)

func newGetCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Print the record with an exact ID",
		Long: `Print the first record whose ID matches exactly.

Exits with an error when no record has that ID.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			sess, err := openSession(cmd, false)
			if err != nil {
				return err
			}
			defer sess.close()

			id := strings.TrimSpace(args[0])
			r, ok := sess.engine.FindByID(id)
			if !ok {
				return notFound(id)
			}
			return printRecords(cmd, sess, []*inventory.Record{r}, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format: text, table, json")

	return cmd
}

func notFound(id string) error {
	return inverrors.New(inverrors.ErrCodeRecordNotFound, "no record with id "+id, nil).
		WithDetail("id", id).
		WithSuggestion("Run 'invsearch list' to see the stored IDs")
}
