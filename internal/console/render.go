// internal/console/render.go
//
// Terminal output for the two console phases.
// Everything is written as plain lines; when stdout is a real terminal the
// text is tinted phosphor green, otherwise (pipes, files, tests) it is left bare.

package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/robalobadob/termhack/internal/game"
)

const (
	ansiGreen = "\x1b[32m"
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

// Renderer writes game text to a terminal or any other writer.
type Renderer struct {
	w     io.Writer
	color bool
}

// NewRenderer enables color only when w is a terminal.
func NewRenderer(w io.Writer) *Renderer {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Renderer{w: w, color: color}
}

// Line writes one formatted line.
func (r *Renderer) Line(format string, args ...any) {
	r.write(ansiGreen, fmt.Sprintf(format, args...)+"\n")
}

// Warn writes a highlighted warning line. Warnings never stop a phase.
func (r *Renderer) Warn(format string, args ...any) {
	r.write(ansiBold+ansiGreen, "! "+fmt.Sprintf(format, args...)+"\n")
}

// Prompt writes a prompt without a trailing newline.
func (r *Renderer) Prompt(p string) {
	r.write(ansiGreen, p)
}

// Words prints candidates in columns of four.
func (r *Renderer) Words(ws []game.Word) {
	var b strings.Builder
	for i, w := range ws {
		b.WriteString(strings.ToUpper(w.String()))
		if (i+1)%4 == 0 || i == len(ws)-1 {
			r.Line("  %s", b.String())
			b.Reset()
			continue
		}
		b.WriteString("  ")
	}
}

// Attempts prints the remaining-attempt gauge.
func (r *Renderer) Attempts(n int) {
	r.Line("%d ATTEMPT(S) LEFT:%s", n, strings.Repeat(" ■", n))
}

func (r *Renderer) write(style, s string) {
	if r.color {
		s = style + s + ansiReset
	}
	_, _ = io.WriteString(r.w, s)
}
