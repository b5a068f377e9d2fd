package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
)

const (
	userLabel      = "/USER/"
	assistantLabel = "/ASSISTANT/"
	toolLabel      = "/TOOL/"
)

type Options struct {
	// Render turns on markdown rendering and colored labels.
	Render   bool
	WordWrap int
}

// Terminal shows the session on out, diagnostics on errOut.
type Terminal struct {
	out      io.Writer
	errOut   io.Writer
	styles   Styles
	renderer *glamour.TermRenderer
}

// New builds a Terminal. If the markdown renderer cannot be built the terminal
// falls back to plain text; the error is returned alongside a usable Terminal.
func New(out, errOut io.Writer, opts Options) (*Terminal, error) {
	t := &Terminal{out: out, errOut: errOut, styles: PlainStyles()}
	if !opts.Render {
		return t, nil
	}
	t.styles = DefaultStyles()
	wrap := opts.WordWrap
	if wrap <= 0 {
		wrap = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return t, fmt.Errorf("markdown renderer: %w", err)
	}
	t.renderer = r
	return t, nil
}

func (t *Terminal) Prompt() {
	fmt.Fprint(t.out, t.styles.User.Render(userLabel)+" ")
}

func (t *Terminal) Thinking() {
	fmt.Fprintln(t.out, t.styles.Muted.Render("Thinking..."))
}

func (t *Terminal) Reply(text string) {
	fmt.Fprintln(t.out, t.styles.Assistant.Render(assistantLabel)+" "+t.markdown(text))
}

func (t *Terminal) ToolFeedback(text string) {
	fmt.Fprintln(t.out, t.styles.Tool.Render(toolLabel)+" "+text)
}

func (t *Terminal) Diagnostic(msg string) {
	fmt.Fprintln(t.errOut, t.styles.Error.Render(msg))
}

// Info prints a plain status line.
func (t *Terminal) Info(format string, args ...any) {
	fmt.Fprintf(t.out, format+"\n", args...)
}

func (t *Terminal) markdown(text string) string {
	if t.renderer == nil {
		return text
	}
	out, err := t.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(out)
}
