package warnfmt

import (
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"pcapkit/internal/warning"
)

// Options configures rendering of a single warning line.
type Options struct {
	ShowLocation bool // prefix "file:line: "
	Color        bool // highlight the category name
	Width        int  // max terminal columns for the message text, 0 - unlimited
}

// Renderer turns a classified, interpolated message into one line of text.
// The layout is "{CategoryName}: {message}", optionally prefixed with the
// call site. It is stable for the lifetime of a Renderer.
type Renderer struct {
	opts     Options
	catColor *color.Color
}

// NewRenderer builds a Renderer.
func NewRenderer(opts Options) *Renderer {
	r := &Renderer{opts: opts}
	if opts.Color {
		r.catColor = color.New(color.FgYellow, color.Bold)
		// color.NoColor is decided from stdout; the diagnostic channel is
		// usually stderr, so honour the explicit choice.
		r.catColor.EnableColor()
	}
	return r
}

// Options returns the renderer configuration.
func (r *Renderer) Options() Options {
	return r.opts
}

// Render produces the final line without a trailing newline.
func (r *Renderer) Render(cat warning.Category, text, location string) string {
	text = sanitize(text)
	if r.opts.Width > 0 && runewidth.StringWidth(text) > r.opts.Width {
		text = runewidth.Truncate(text, r.opts.Width, "…")
	}

	name := cat.Name()
	if r.catColor != nil {
		name = r.catColor.Sprint(name)
	}

	var b strings.Builder
	if r.opts.ShowLocation && location != "" {
		b.WriteString(location)
		b.WriteString(": ")
	}
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(text)
	return b.String()
}

// sanitize keeps every warning on a single line for log scrapers.
func sanitize(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
