package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiRed   = "\x1b[31m"
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

// Printer renders diagnostics for the terminal. Color is enabled only when
// the destination is a real TTY.
type Printer struct {
	out   io.Writer
	color bool
}

// NewPrinter creates a printer for w, auto-detecting color support when w is
// os.Stdout or os.Stderr.
func NewPrinter(w io.Writer) *Printer {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Printer{out: w, color: color}
}

// SetColor overrides color auto-detection.
func (p *Printer) SetColor(enabled bool) { p.color = enabled }

// Print writes every diagnostic, one per line.
func (p *Printer) Print(errs []*DiagnosticError) {
	for _, e := range errs {
		if p.color {
			fmt.Fprintf(p.out, "%s%serror [%s]%s %s", ansiBold, ansiRed, e.Code, ansiReset, e.Message)
			if e.Token.Line > 0 {
				fmt.Fprintf(p.out, " (%d:%d)", e.Token.Line, e.Token.Column)
			}
			fmt.Fprintln(p.out)
			continue
		}
		fmt.Fprintln(p.out, e.Error())
	}
}
