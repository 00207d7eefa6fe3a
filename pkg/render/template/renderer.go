package template

import (
	"io"
)

// TemplateRenderer is the seam renderers use to execute templates, whatever
// engine backs it.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
