// Package markup is a small sticky-error writer used by the view
// components to emit escaped HTML.
package markup

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

type Writer struct {
	w   io.Writer
	err error
}

func New(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes s unescaped. Callers pass literal markup or values already
// run through Esc.
func (m *Writer) Raw(s string) {
	if m.err != nil {
		return
	}
	_, m.err = io.WriteString(m.w, s)
}

// Rawf formats into the output without escaping arguments.
func (m *Writer) Rawf(format string, args ...any) {
	m.Raw(fmt.Sprintf(format, args...))
}

// Component renders a nested component into the same output.
func (m *Writer) Component(ctx context.Context, c templ.Component) {
	if m.err != nil || c == nil {
		return
	}
	m.err = c.Render(ctx, m.w)
}

func (m *Writer) Err() error {
	return m.err
}

// Esc escapes s for element content or a quoted attribute value.
func Esc(s string) string {
	return templ.EscapeString(s)
}

// Checked returns the checked attribute when on.
func Checked(on bool) string {
	if on {
		return " checked"
	}
	return ""
}

// Selected returns the selected attribute when on.
func Selected(on bool) string {
	if on {
		return " selected"
	}
	return ""
}
