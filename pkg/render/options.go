package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the definition pipeline.
type RenderOptions struct {
	// Action overrides the submission URL declared by the definition. Useful
	// when the same form is mounted under different route prefixes.
	Action string
	// Method overrides the HTTP method declared by the definition. Renderers
	// are responsible for translating unsupported verbs (PATCH/PUT/DELETE)
	// into browser-friendly POST submissions plus a hidden _method input when
	// needed.
	Method string
	// Values pre-populates rendered controls using dotted field paths (e.g.
	// "origin_lat"). Renderers decide how to coerce non-string values.
	Values map[string]any
	// Errors surfaces server-side validation feedback keyed by field path.
	// The HTML renderer maps these into inline messages plus data-validation
	// attributes so assistive tech can reflect the state without waiting for
	// client-side validation.
	Errors map[string][]string
	// Hidden adds hidden inputs (CSRF tokens and the like) to the rendered
	// form. See the HiddenField helpers for common shapes.
	Hidden map[string]string
	// Theme carries a resolved go-theme renderer configuration. Nil means the
	// renderer's built-in partials and styles apply.
	Theme *theme.RendererConfig
	// AssetBase is the URL prefix where the host serves the runtime assets.
	// Renderers use it to emit script and stylesheet tags; empty suppresses
	// the tags entirely.
	AssetBase string
}
