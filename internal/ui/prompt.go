package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// MenuItem is one selectable menu option.
type MenuItem struct {
	Key   string
	Label string
}

// Title implements list.DefaultItem.
func (i MenuItem) Title() string { return i.Key + ") " + i.Label }

// Description implements list.DefaultItem.
func (i MenuItem) Description() string { return "" }

// FilterValue implements list.Item.
func (i MenuItem) FilterValue() string { return i.Label }

// TUIPrompter asks questions with bubbletea widgets: a list for menu
// choices and a text input for answers. Each question runs its own inline
// program, so output printed between questions stays on screen.
type TUIPrompter struct {
	in     io.Reader
	out    io.Writer
	styles Styles
}

// NewTUIPrompter creates a prompter for an interactive terminal.
// Returns an error if input or output is not a TTY.
func NewTUIPrompter(in io.Reader, out io.Writer, color bool) (*TUIPrompter, error) {
	if !IsTTY(out) {
		return nil, fmt.Errorf("output is not a TTY")
	}
	if !isTTYReader(in) {
		return nil, fmt.Errorf("input is not a TTY")
	}
	return &TUIPrompter{in: in, out: out, styles: GetStyles(!color)}, nil
}

// Choose shows items under title and returns the key of the chosen item.
// Ctrl+C returns context.Canceled and Ctrl+D returns io.EOF, matching what
// the caller sees from a cancelled context or closed input.
func (p *TUIPrompter) Choose(ctx context.Context, title string, items []MenuItem) (string, error) {
	final, err := p.run(ctx, newMenuModel(title, items, p.styles))
	if err != nil {
		return "", err
	}
	m := final.(*menuModel)
	if m.cancelled {
		return "", context.Canceled
	}
	if m.eof {
		return "", io.EOF
	}
	return m.choice, nil
}

// Ask shows label with a text input and returns the trimmed answer.
func (p *TUIPrompter) Ask(ctx context.Context, label string) (string, error) {
	final, err := p.run(ctx, newInputModel(label, p.styles))
	if err != nil {
		return "", err
	}
	m := final.(*inputModel)
	if m.cancelled {
		return "", context.Canceled
	}
	if m.eof {
		return "", io.EOF
	}
	return strings.TrimSpace(m.input.Value()), nil
}

func (p *TUIPrompter) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	// Signals are handled by the caller's context.
	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(p.out),
		tea.WithoutSignalHandler(),
	}
	if p.in != os.Stdin {
		opts = append(opts, tea.WithInput(p.in))
	}

	final, err := tea.NewProgram(model, opts...).Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, err
	}
	return final, nil
}

func isTTYReader(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// menuModel is the bubbletea model for picking one menu option.
// Enter picks the highlighted item; typing an item's key picks it directly.
type menuModel struct {
	list      list.Model
	items     []MenuItem
	styles    Styles
	choice    string
	cancelled bool
	eof       bool
}

func newMenuModel(title string, items []MenuItem, styles Styles) *menuModel {
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = it
	}

	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)
	d.Styles.SelectedTitle = styles.Header.PaddingLeft(2)
	d.Styles.NormalTitle = styles.Value.PaddingLeft(2)

	l := list.New(listItems, d, 50, len(items)+4)
	l.Title = title
	l.Styles.Title = styles.Header
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return &menuModel{list: l, items: items, styles: styles}
}

// Init implements tea.Model.
func (m *menuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "ctrl+d":
			m.eof = true
			return m, tea.Quit
		case "enter":
			if it, ok := m.list.SelectedItem().(MenuItem); ok {
				m.choice = it.Key
				return m, tea.Quit
			}
			return m, nil
		default:
			for i, it := range m.items {
				if it.Key == key {
					m.list.Select(i)
					m.choice = it.Key
					return m, tea.Quit
				}
			}
		}

	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model. Once a choice is made only the chosen line
// is left on screen.
func (m *menuModel) View() string {
	switch {
	case m.choice != "":
		if it, ok := m.list.SelectedItem().(MenuItem); ok {
			return m.styles.Label.Render("> ") + m.styles.Value.Render(it.Title()) + "\n"
		}
		return "\n"
	case m.cancelled, m.eof:
		return "\n"
	}
	return m.list.View()
}

// inputModel is the bubbletea model for one free-text answer.
type inputModel struct {
	input     textinput.Model
	done      bool
	cancelled bool
	eof       bool
}

func newInputModel(label string, styles Styles) *inputModel {
	ti := textinput.New()
	ti.Prompt = label
	ti.PromptStyle = styles.Label
	ti.TextStyle = styles.Value
	ti.Focus()
	return &inputModel{input: ti}
}

// Init implements tea.Model.
func (m *inputModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "ctrl+d":
			if m.input.Value() == "" {
				m.eof = true
				return m, tea.Quit
			}
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model. A finished input leaves "label answer".
func (m *inputModel) View() string {
	if m.done || m.cancelled || m.eof {
		return m.input.PromptStyle.Render(m.input.Prompt) + m.input.Value() + "\n"
	}
	return m.input.View()
}
