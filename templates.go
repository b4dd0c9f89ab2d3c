package geoform

import (
	"io/fs"

	"github.com/chimdiadi/go-geoform/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in HTML renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// EmbeddedAssets exposes the default stylesheet shipped with the HTML
// renderer.
func EmbeddedAssets() fs.FS {
	return html.AssetsFS()
}
