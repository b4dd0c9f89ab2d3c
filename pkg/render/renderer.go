package render

import (
	"context"

	"github.com/chimdiadi/go-geoform/pkg/form"
)

// Renderer converts a form definition into a byte representation (HTML,
// terminal output, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, def form.Definition, options RenderOptions) ([]byte, error)
}
