package cmd

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	inverrors "github.com/Aman-CERP/invsearch/internal/errors"
	"github.com/Aman-CERP/invsearch/internal/inventory"
	"github.com/Aman-CERP/invsearch/internal/search"
)

type searchOptions struct {
	format string
	limit  int
	cutoff float64
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search records by name or category",
		Long: `Search records by name or category.

Examples:
  invsearch search name wire
  invsearch search fuzzy "red wyre" -n 3
  invsearch search category electrical --format table`,
	}

	cmd.PersistentFlags().StringVarP(&opts.format, "format", "f", formatText, "Output format: text, table, json")

	nameCmd := &cobra.Command{
		Use:   "name <query>",
		Short: "Case-insensitive substring match on name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, opts, "name", strings.Join(args, " "), (*search.Engine).ByName)
		},
	}

	categoryCmd := &cobra.Command{
		Use:   "category <category>",
		Short: "Case-insensitive exact match on category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, opts, "category", strings.Join(args, " "), (*search.Engine).ByCategory)
		},
	}

	fuzzyCmd := &cobra.Command{
		Use:   "fuzzy <query>",
		Short: "Typo-tolerant match on name",
		Long: `Rank names by similarity to the query and print the closest ones.

Similarity is the ratio of matching characters (0.0 to 1.0). Names scoring
below the cutoff are dropped; at most --limit records are printed, best first.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFuzzy(cmd, opts, strings.Join(args, " "))
		},
	}
	fuzzyCmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Maximum number of matches (default from config: 5)")
	fuzzyCmd.Flags().Float64Var(&opts.cutoff, "cutoff", -1, "Minimum similarity 0.0-1.0 (default from config: 0.6)")

	cmd.AddCommand(nameCmd, categoryCmd, fuzzyCmd)
	return cmd
}

func runLookup(cmd *cobra.Command, opts searchOptions, field, query string,
	lookup func(*search.Engine, string) []*inventory.Record) error {
	if err := validateFormat(opts.format); err != nil {
		return err
	}

	sess, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer sess.close()

	res := lookup(sess.engine, query)
	if len(res) == 0 && opts.format != formatJSON {
		sess.out.Warningf("No records match %s %q.", field, strings.TrimSpace(query))
		return nil
	}
	return printRecords(cmd, sess, res, opts.format)
}

func runFuzzy(cmd *cobra.Command, opts searchOptions, query string) error {
	if err := validateFormat(opts.format); err != nil {
		return err
	}

	sess, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer sess.close()

	fo := sess.engine.FuzzyDefaults()
	if cmd.Flags().Changed("limit") {
		if opts.limit <= 0 {
			return inverrors.New(inverrors.ErrCodeInvalidInput, "--limit must be positive", nil)
		}
		fo.Limit = opts.limit
	}
	if cmd.Flags().Changed("cutoff") {
		if opts.cutoff < 0 || opts.cutoff > 1 {
			return inverrors.New(inverrors.ErrCodeInvalidInput, "--cutoff must be between 0 and 1", nil)
		}
		fo.Cutoff = opts.cutoff
	}

	matches := sess.engine.FuzzyWith(query, fo)

	switch opts.format {
	case formatJSON:
		return writeMatchesJSON(cmd, matches)
	case formatTable:
		if len(matches) == 0 {
			sess.out.Warning("No fuzzy results close enough.")
			return nil
		}
		records := make([]*inventory.Record, len(matches))
		for i, m := range matches {
			records[i] = m.Record
		}
		sess.printer.Table(records)
	default:
		if len(matches) == 0 {
			sess.out.Warning("No fuzzy results close enough.")
			return nil
		}
		sess.out.Infof("Found %d closest match(es):", len(matches))
		sess.printer.Matches(matches)
	}
	return nil
}

type matchJSON struct {
	*inventory.Record
	Score float64 `json:"score"`
}

func writeMatchesJSON(cmd *cobra.Command, matches []search.Match) error {
	items := make([]matchJSON, len(matches))
	for i, m := range matches {
		items[i] = matchJSON{Record: m.Record, Score: m.Score}
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return inverrors.InternalError("failed to encode matches", err)
	}
	return nil
}
