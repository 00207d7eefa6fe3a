package msgform

import (
	"io/fs"

	htmlrenderer "github.com/goliatone/go-msgform/pkg/renderers/html"
	"github.com/goliatone/go-msgform/pkg/web"
)

// EmbeddedTemplates exposes the built-in display region templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return htmlrenderer.TemplatesFS()
}

// PageTemplates exposes the templates of the forms page.
func PageTemplates() fs.FS {
	return web.TemplatesFS()
}
