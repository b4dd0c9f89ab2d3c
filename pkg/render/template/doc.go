// Package template defines the renderer-agnostic template engine seam plus
// adapters, so HTML output stays swappable without touching the render
// pipeline.
package template
