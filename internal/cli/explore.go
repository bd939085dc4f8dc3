package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/wippyai/endiangen/errors"
	"github.com/wippyai/endiangen/gen"
	"github.com/wippyai/endiangen/scan"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// ExploreOptions holds flags of the explore command.
type ExploreOptions struct {
	Type string
	Hex  string
}

// NewExploreCommand creates the explore command.
func NewExploreCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExploreOptions{}

	cmd := &cobra.Command{
		Use:   "explore [package]",
		Short: "Decode sample bytes against the layout of a type",
		Long: `Browse the annotated types of a package and decode hex input against
their layouts.

With --type and --hex the decoded table is printed directly; otherwise an
interactive view opens.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(rootOpts, opts, cmd, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Type, "type", "t", "", "type to decode")
	cmd.Flags().StringVar(&opts.Hex, "hex", "", "bytes to decode, as hex")
	return cmd
}

func runExplore(rootOpts *RootOptions, opts *ExploreOptions, cmd *cobra.Command, args []string) error {
	cfg, err := rootOpts.loadConfig(cmd)
	if err != nil {
		return err
	}
	pattern := patterns(cfg, args)[0]
	g := gen.New(cfg.GenOptions())

	load := func(ctx context.Context) ([]*gen.Layout, error) {
		res, err := scan.Load(ctx, scan.Config{Dir: rootOpts.dir(), Tags: cfg.Tags}, pattern)
		if err != nil {
			return nil, err
		}
		// Layouts of the types that did scan are still useful.
		layouts, _ := g.Layouts(res.Decls)
		return layouts, nil
	}

	if opts.Type == "" || opts.Hex == "" {
		m := newExploreModel(pattern, func() ([]*gen.Layout, error) { return load(cmd.Context()) })
		p := tea.NewProgram(m,
			tea.WithContext(cmd.Context()),
			tea.WithInput(cmd.InOrStdin()),
			tea.WithOutput(cmd.OutOrStdout()),
			tea.WithAltScreen(),
		)
		_, err := p.Run()
		return err
	}

	layouts, err := load(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "load "+pattern, err)
	}
	var l *gen.Layout
	for _, c := range layouts {
		if c.Name == opts.Type {
			l = c
		}
	}
	if l == nil {
		return WrapExitError(ExitCommandError, "explore", errors.NotFound(errors.PhaseLoad, "type", opts.Type))
	}
	data, err := parseHex(opts.Hex)
	if err != nil {
		return WrapExitError(ExitCommandError, "explore", err)
	}

	out := newPrinter(cmd.OutOrStdout())
	out.printf("%s %d of %s bytes\n", out.style(headerStyle, l.Name), len(data), width(l.Size))
	out.printf("%s\n", decodedTable(out.color, decodeRows(l, data)))
	return nil
}

func decodedTable(color bool, rows []decodedRow) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("OFFSET", "FIELD", "BYTES", "VALUE")
	if color {
		t = t.BorderStyle(posStyle)
	}
	for _, r := range rows {
		t = t.Row(offset(r.Row.Offset), r.Row.Path, r.Bytes, r.Value)
	}
	return t.Render()
}

type exploreState int

const (
	stateSelectType exploreState = iota
	stateInputBytes
	stateShowDecoded
)

type exploreModel struct {
	err      error
	load     func() ([]*gen.Layout, error)
	pattern  string
	layouts  []*gen.Layout
	decoded  []decodedRow
	input    textinput.Model
	selected int
	loaded   bool
	state    exploreState
}

type layoutsMsg struct {
	err     error
	layouts []*gen.Layout
}

func newExploreModel(pattern string, load func() ([]*gen.Layout, error)) *exploreModel {
	return &exploreModel{
		pattern: pattern,
		load:    load,
		state:   stateSelectType,
	}
}

func (m *exploreModel) Init() tea.Cmd {
	return func() tea.Msg {
		layouts, err := m.load()
		return layoutsMsg{layouts: layouts, err: err}
	}
}

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputBytes {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectType && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectType && m.selected < len(m.layouts)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectType:
				if len(m.layouts) == 0 {
					return m, nil
				}
				m.input = textinput.New()
				m.input.Placeholder = "00 01 ff ..."
				m.input.Prompt = "hex: "
				m.input.Width = 60
				m.input.Focus()
				m.err = nil
				m.state = stateInputBytes
				return m, textinput.Blink

			case stateInputBytes:
				data, err := parseHex(m.input.Value())
				if err != nil {
					m.err = err
					return m, nil
				}
				m.err = nil
				m.decoded = decodeRows(m.layouts[m.selected], data)
				m.state = stateShowDecoded
				return m, nil

			case stateShowDecoded:
				m.state = stateInputBytes
				return m, nil
			}

		case "esc":
			switch m.state {
			case stateInputBytes:
				m.state = stateSelectType
				m.err = nil
			case stateShowDecoded:
				m.state = stateSelectType
				m.decoded = nil
			}
			return m, nil
		}

	case layoutsMsg:
		m.loaded = true
		m.err = msg.err
		m.layouts = msg.layouts
		return m, nil
	}

	if m.state == stateInputBytes {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *exploreModel) View() string {
	if !m.loaded {
		return "Loading " + m.pattern + "...\n"
	}
	if m.err != nil && m.state == stateSelectType {
		return kindStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("endiangen"))
	b.WriteString(" ")
	b.WriteString(m.pattern)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectType:
		if len(m.layouts) == 0 {
			b.WriteString("No annotated types.\n\n")
			b.WriteString(helpStyle.Render("q quit"))
			break
		}
		b.WriteString("Select a type:\n\n")
		for i, l := range m.layouts {
			line := fmt.Sprintf("%s %s %s", l.Name, typeStyle.Render(l.Kind.String()), width(l.Size))
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter decode • q quit"))

	case stateInputBytes:
		l := m.layouts[m.selected]
		b.WriteString(fmt.Sprintf("Decode %s (%s bytes)\n\n", typeStyle.Render(l.Name), width(l.Size)))
		b.WriteString(m.input.View())
		b.WriteString("\n")
		if m.err != nil {
			b.WriteString(kindStyle.Render(m.err.Error()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter decode • esc back"))

	case stateShowDecoded:
		l := m.layouts[m.selected]
		b.WriteString(fmt.Sprintf("%s as %s\n\n", valueStyle.Render(m.input.Value()), typeStyle.Render(l.Name)))
		b.WriteString(decodedTable(true, m.decoded))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter edit • esc types • q quit"))
	}

	return b.String()
}
