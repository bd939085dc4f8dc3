package cli

import (
	"fmt"
	"go/token"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/endiangen/errors"
)

var (
	posStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	kindStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#90EE90"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD166"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))
)

// printer writes styled output when attached to a terminal and plain text otherwise.
type printer struct {
	w     io.Writer
	color bool
}

func newPrinter(w io.Writer) *printer {
	p := &printer{w: w}
	if f, ok := w.(*os.File); ok {
		p.color = term.IsTerminal(int(f.Fd()))
	}
	return p
}

func (p *printer) style(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

func (p *printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

// diagnostic prints one error, splitting structured errors into position,
// kind and message.
func (p *printer) diagnostic(err error) {
	e, ok := err.(*errors.Error)
	if !ok {
		p.printf("%s %s\n", p.style(kindStyle, "error:"), err)
		return
	}

	msg := *e
	msg.Pos = token.Position{}
	if e.Pos.IsValid() {
		p.printf("%s ", p.style(posStyle, e.Pos.String()+":"))
	}
	p.printf("%s\n", p.style(kindStyle, msg.Error()))
}

// diagnostics prints every error of a list, or err itself.
func (p *printer) diagnostics(err error) int {
	if list, ok := err.(errors.List); ok {
		for _, e := range list {
			p.diagnostic(e)
		}
		return len(list)
	}
	p.diagnostic(err)
	return 1
}
