package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	inverrors "github.com/Aman-CERP/invsearch/internal/errors"
	"github.com/Aman-CERP/invsearch/internal/inventory"
)

type addOptions struct {
	id       string
	name     string
	category string
	qty      int
	location string
}

func newAddCmd() *cobra.Command {
	var opts addOptions

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a record and save",
		Long: `Add one record to the inventory file and save it.

The ID must not already be in use. When --id is omitted an ID is generated.

Examples:
  invsearch add --id 004 --name "Red Wire" --category electrical --qty 20 --location "Shelf B"
  invsearch add --name Tape --category supplies --qty 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.id, "id", "", "Record ID (generated when empty)")
	cmd.Flags().StringVar(&opts.name, "name", "", "Record name")
	cmd.Flags().StringVar(&opts.category, "category", "", "Record category")
	cmd.Flags().IntVar(&opts.qty, "qty", 0, "Quantity")
	cmd.Flags().StringVar(&opts.location, "location", "", "Storage location (optional)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runAdd(cmd *cobra.Command, opts addOptions) error {
	r := &inventory.Record{
		ID:       strings.TrimSpace(opts.id),
		Name:     strings.TrimSpace(opts.name),
		Category: strings.TrimSpace(opts.category),
		Qty:      opts.qty,
		Location: strings.TrimSpace(opts.location),
	}
	if r.Name == "" {
		return inverrors.New(inverrors.ErrCodeInvalidInput, "--name must not be empty", nil)
	}
	if r.ID == "" {
		r.ID = inventory.NewID()
	}

	sess, err := openSession(cmd, true)
	if err != nil {
		return err
	}
	defer sess.close()

	if err := sess.engine.Add(r); err != nil {
		return err
	}
	if err := sess.save(); err != nil {
		return err
	}

	sess.out.Successf("Added %s (%s) to '%s'.", r.ID, r.Name, sess.store.Path())
	return nil
}
