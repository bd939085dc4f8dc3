package cli

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/wippyai/endiangen/gen"
	"github.com/wippyai/endiangen/scan"
)

// NewLayoutCommand creates the layout command.
func NewLayoutCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout [packages]",
		Short: "Print the wire layout of annotated types",
		Long: `Print offset, width and byte order of every encoded field.

Widths marked "var" depend on the value (unions with variants of different
sizes) or on types declared outside the package.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(rootOpts, cmd, args)
		},
	}
	return cmd
}

func runLayout(opts *RootOptions, cmd *cobra.Command, args []string) error {
	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		return err
	}
	g := gen.New(cfg.GenOptions())
	out := newPrinter(cmd.OutOrStdout())
	diag := newPrinter(cmd.ErrOrStderr())

	failed := 0
	for _, pattern := range patterns(cfg, args) {
		res, err := scan.Load(cmd.Context(), scan.Config{Dir: opts.dir(), Tags: cfg.Tags}, pattern)
		if err != nil {
			return WrapExitError(ExitCommandError, "load "+pattern, err)
		}
		if len(res.Errors) > 0 {
			failed += diag.diagnostics(res.Errors)
		}

		layouts, err := g.Layouts(res.Decls)
		if err != nil {
			failed += diag.diagnostics(err)
		}
		for _, l := range layouts {
			out.printf("%s %s %s\n", out.style(headerStyle, l.Name), out.style(typeStyle, l.Kind.String()), width(l.Size))
			out.printf("%s\n", layoutTable(out, l))
		}
	}

	if failed > 0 {
		return NewExitError(ExitFailure, strconv.Itoa(failed)+" type(s) failed")
	}
	return nil
}

func layoutTable(p *printer, l *gen.Layout) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("OFFSET", "SIZE", "ORDER", "FIELD", "TYPE")
	if p.color {
		t = t.BorderStyle(posStyle)
	}
	for _, r := range l.Rows {
		t = t.Row(offset(r.Offset), width(r.Size), r.Order, r.Path, r.Type)
	}
	return t.Render()
}

func width(n int) string {
	if n == gen.Variable {
		return "var"
	}
	return strconv.Itoa(n)
}

func offset(n int) string {
	if n == gen.Variable {
		return "var"
	}
	return "+" + strconv.Itoa(n)
}
