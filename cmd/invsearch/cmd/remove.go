package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove the record with an ID and save",
		Long: `Remove the first record with the given ID and save the file.

When several records share the ID only the first is removed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd, true)
			if err != nil {
				return err
			}
			defer sess.close()

			id := strings.TrimSpace(args[0])
			if !sess.engine.Remove(id) {
				return notFound(id)
			}
			if err := sess.save(); err != nil {
				return err
			}

			sess.out.Successf("Removed %s from '%s'.", id, sess.store.Path())
			return nil
		},
	}
}
