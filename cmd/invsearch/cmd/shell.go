package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/invsearch/internal/inventory"
	"github.com/Aman-CERP/invsearch/internal/ui"
)

const menuTitle = "=== INVENTORY SEARCH ==="

var menuItems = []ui.MenuItem{
	{Key: "1", Label: "List all records"},
	{Key: "2", Label: "Find record by ID"},
	{Key: "3", Label: "Search by name (partial)"},
	{Key: "4", Label: "Fuzzy search by name (typo tolerant)"},
	{Key: "5", Label: "Search by category"},
	{Key: "6", Label: "Add a new record"},
	{Key: "7", Label: "Remove a record by ID"},
	{Key: "8", Label: "Sort records"},
	{Key: "9", Label: "Save"},
	{Key: "0", Label: "Save & exit"},
}

// menuText renders the menu for plain mode.
func menuText() string {
	var b strings.Builder
	b.WriteString(menuTitle)
	for _, it := range menuItems {
		b.WriteString("\n" + it.Title())
	}
	return b.String()
}

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Open the interactive menu",
		Long: `Open the interactive menu on the inventory file.

Edits stay in memory until you choose "Save" or "Save & exit". Pressing
Ctrl+C or closing input discards unsaved edits and rewrites the file as it
was last saved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context(), cmd)
		},
	}
}

// runShell runs the interactive menu until the user exits, input ends, or
// the process is interrupted.
func runShell(ctx context.Context, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}

	sess, err := openSession(cmd, true)
	if err != nil {
		return err
	}
	defer sess.close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	in := newAnswerer(cmd.InOrStdin(), cmd.OutOrStdout(), sess.color)
	defer in.close()

	sh := &shell{sess: sess, in: in}
	err = sh.run(ctx)
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		slog.Info("shell_interrupted", slog.String("reason", err.Error()))
		sess.out.Newline()
		sess.out.Warning("Interrupted. Saving the last stored inventory before exit...")
		return sess.discardAndSave()
	}
	return err
}

// answerer reads menu choices and answers for the shell.
type answerer interface {
	choose(ctx context.Context) (string, error)
	ask(ctx context.Context, label string) (string, error)
	close()
}

// newAnswerer uses bubbletea widgets on an interactive terminal and falls
// back to line-by-line reading for pipes and redirected input.
func newAnswerer(in io.Reader, out io.Writer, color bool) answerer {
	if ui.DetectCI() {
		return newPrompter(in, out)
	}
	tui, err := ui.NewTUIPrompter(in, out, color)
	if err != nil {
		slog.Debug("shell_plain_mode", slog.String("reason", err.Error()))
		return newPrompter(in, out)
	}
	return termPrompter{tui}
}

// termPrompter adapts ui.TUIPrompter to the shell.
type termPrompter struct {
	p *ui.TUIPrompter
}

func (t termPrompter) choose(ctx context.Context) (string, error) {
	return t.p.Choose(ctx, menuTitle, menuItems)
}

func (t termPrompter) ask(ctx context.Context, label string) (string, error) {
	return t.p.Ask(ctx, label)
}

func (t termPrompter) close() {}

// prompter reads answers line by line so a pending prompt can be abandoned
// when the context is cancelled.
type prompter struct {
	w     io.Writer
	lines chan string
	done  chan struct{}
}

func newPrompter(r io.Reader, w io.Writer) *prompter {
	p := &prompter{
		w:     w,
		lines: make(chan string),
		done:  make(chan struct{}),
	}
	go func() {
		defer close(p.lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case p.lines <- sc.Text():
			case <-p.done:
				return
			}
		}
	}()
	return p
}

// ask prints label and waits for one trimmed line. It returns io.EOF when
// input ends and the context error when ctx is cancelled first.
func (p *prompter) ask(ctx context.Context, label string) (string, error) {
	_, _ = fmt.Fprint(p.w, label)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

// choose prints the menu and reads one option.
func (p *prompter) choose(ctx context.Context) (string, error) {
	_, _ = fmt.Fprintln(p.w, menuText())
	return p.ask(ctx, "Choose an option: ")
}

func (p *prompter) close() {
	close(p.done)
}

type shell struct {
	sess *session
	in   answerer
}

func (s *shell) run(ctx context.Context) error {
	if s.sess.store.Exists() {
		s.sess.out.Infof("Loaded %d record(s) from '%s'.", s.sess.engine.Collection().Len(), s.sess.store.Path())
	} else {
		s.sess.out.Infof("No inventory at '%s' yet, starting empty.", s.sess.store.Path())
	}
	s.sess.out.Newline()

	for {
		choice, err := s.in.choose(ctx)
		if err != nil {
			return err
		}
		exit, err := s.dispatch(ctx, choice)
		if err != nil {
			return err
		}
		if exit {
			return nil
		}
		s.sess.out.Newline()
	}
}

// dispatch runs one menu choice and reports whether the shell should exit.
// Only input errors are returned; operation failures are printed.
func (s *shell) dispatch(ctx context.Context, choice string) (bool, error) {
	out := s.sess.out
	engine := s.sess.engine

	switch choice {
	case "1":
		records, err := s.sess.sorted("")
		if err != nil {
			out.Error(err.Error())
			return false, nil
		}
		if len(records) == 0 {
			out.Info("[Inventory is empty]")
		}
		s.sess.printer.Records(records)

	case "2":
		id, err := s.in.ask(ctx, "Enter ID: ")
		if err != nil {
			return false, err
		}
		if r, ok := engine.FindByID(id); ok {
			s.sess.printer.Record(r)
		} else {
			out.Warning("No record with that ID.")
		}

	case "3":
		q, err := s.in.ask(ctx, "Enter a name or part of a name: ")
		if err != nil {
			return false, err
		}
		res := engine.ByName(q)
		if len(res) == 0 {
			out.Warning("No results (partial search).")
		} else {
			s.sess.printer.Records(res)
		}

	case "4":
		q, err := s.in.ask(ctx, "Enter a name (fuzzy): ")
		if err != nil {
			return false, err
		}
		res := engine.Fuzzy(q)
		if len(res) == 0 {
			out.Warning("No fuzzy results close enough.")
		} else {
			out.Infof("Found %d closest match(es):", len(res))
			s.sess.printer.Matches(res)
		}

	case "5":
		c, err := s.in.ask(ctx, "Enter a category: ")
		if err != nil {
			return false, err
		}
		res := engine.ByCategory(c)
		if len(res) == 0 {
			out.Warning("No records in that category.")
		} else {
			s.sess.printer.Records(res)
		}

	case "6":
		r, err := s.promptRecord(ctx)
		if err != nil {
			return false, err
		}
		if err := engine.Add(r); err != nil {
			out.Warning("ID already exists. Use a unique ID.")
		} else {
			out.Success("Record added (not saved yet).")
		}

	case "7":
		id, err := s.in.ask(ctx, "Enter the ID to remove: ")
		if err != nil {
			return false, err
		}
		if engine.Remove(id) {
			out.Success("Removed (not saved yet).")
		} else {
			out.Warning("ID not found.")
		}

	case "8":
		k, err := s.in.ask(ctx, "Sort by (id, name, category, qty): ")
		if err != nil {
			return false, err
		}
		key, perr := inventory.ParseSortKey(k)
		if perr != nil || key == inventory.SortNone {
			out.Warning("Unknown sort key. Use id, name, category or qty.")
			return false, nil
		}
		engine.Collection().Sort(key)
		out.Successf("Sorted by %s (not saved yet).", key)
		s.sess.printer.Records(engine.Collection().Records())

	case "9":
		if err := s.sess.save(); err != nil {
			out.Error(err.Error())
			return false, nil
		}
		out.Successf("Inventory saved to '%s'.", s.sess.store.Path())

	case "0":
		if err := s.sess.save(); err != nil {
			out.Error(err.Error())
			return false, nil
		}
		out.Successf("Inventory saved to '%s'. Exiting.", s.sess.store.Path())
		return true, nil

	default:
		out.Warning("Invalid choice, try again.")
	}
	return false, nil
}

// promptRecord asks for each field of a new record. An empty id is
// replaced by a generated one; quantity is asked again until it parses.
func (s *shell) promptRecord(ctx context.Context) (*inventory.Record, error) {
	var r inventory.Record
	var err error

	if r.ID, err = s.in.ask(ctx, "ID (empty to generate): "); err != nil {
		return nil, err
	}
	if r.ID == "" {
		r.ID = inventory.NewID()
		s.sess.out.Infof("Generated ID %s", r.ID)
	}
	if r.Name, err = s.in.ask(ctx, "Name: "); err != nil {
		return nil, err
	}
	if r.Category, err = s.in.ask(ctx, "Category: "); err != nil {
		return nil, err
	}
	if r.Location, err = s.in.ask(ctx, "Location (optional): "); err != nil {
		return nil, err
	}

	for {
		qty, err := s.in.ask(ctx, "Quantity (qty): ")
		if err != nil {
			return nil, err
		}
		n, perr := strconv.Atoi(qty)
		if perr == nil {
			r.Qty = n
			break
		}
		s.sess.out.Warning("Please enter a valid whole number for quantity.")
	}
	return &r, nil
}
