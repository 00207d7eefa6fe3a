// Package text renders the display region as plain text for terminals.
package text

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/goliatone/go-msgform/pkg/render"
)

// Name is the registry name of the text renderer.
const Name = "text"

type Option func(*Renderer)

// WithIndent sets the prefix used for field and error lines.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// Renderer implements render.Renderer for terminals.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the text renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{indent: "  "}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string        { return Name }
func (r *Renderer) ContentType() string { return "text/plain; charset=utf-8" }

// Render writes the title, message, aligned fields and error bullets.
func (r *Renderer) Render(ctx context.Context, view render.View, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	headline := view.Title
	if view.Message != "" {
		if headline != "" {
			headline += ": "
		}
		headline += view.Message
	}
	if headline == "" && view.Kind == render.KindIdle {
		headline = "Nothing submitted yet"
	}
	if headline != "" {
		buf.WriteString(headline)
		buf.WriteByte('\n')
	}

	if len(view.Fields) > 0 {
		tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
		for _, field := range view.Fields {
			lines := splitLines(field.Value)
			fmt.Fprintf(tw, "%s%s:\t%s\n", r.indent, field.Label, lines[0])
			for _, line := range lines[1:] {
				fmt.Fprintf(tw, "%s\t%s\n", r.indent, line)
			}
		}
		if err := tw.Flush(); err != nil {
			return nil, fmt.Errorf("text renderer: %w", err)
		}
	}

	for _, msg := range view.Errors {
		lines := splitLines(msg)
		fmt.Fprintf(&buf, "%s- %s\n", r.indent, lines[0])
		for _, line := range lines[1:] {
			fmt.Fprintf(&buf, "%s  %s\n", r.indent, line)
		}
	}

	if options.Verbose && view.RequestID != "" {
		fmt.Fprintf(&buf, "%srequest id: %s\n", r.indent, view.RequestID)
	}
	return buf.Bytes(), nil
}

// splitLines breaks value on any line ending. Continuation lines are printed
// under the first one; tabs become spaces so they cannot open a column.
func splitLines(value string) []string {
	value = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\t", " ").Replace(value)
	return strings.Split(value, "\n")
}
