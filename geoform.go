// Package geoform wires geocoding autocomplete into form definitions: a
// binder that debounces free text into ordered place suggestions, renderers
// that emit the matching markup, and an HTTP component serving the
// suggestion endpoint.
package geoform

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/chimdiadi/go-geoform/pkg/binder"
	"github.com/chimdiadi/go-geoform/pkg/form"
	"github.com/chimdiadi/go-geoform/pkg/render"
	"github.com/chimdiadi/go-geoform/pkg/renderers/html"
	"github.com/chimdiadi/go-geoform/pkg/suggest"
)

// Core types re-exported so light integrations only import the root package.
type (
	Binder        = binder.Binder
	Suggestion    = suggest.Suggestion
	Definition    = form.Definition
	Field         = form.Field
	Record        = form.Record
	RenderOptions = render.RenderOptions
	FieldSubset   = render.FieldSubset
)

//go:embed definitions/freight-quote.yaml
var defaultDefinitionYAML []byte

// DefaultDefinition parses the embedded freight-quote definition. Each call
// returns a fresh copy callers may mutate freely.
func DefaultDefinition() (*form.Definition, error) {
	return form.ParseDefinition(defaultDefinitionYAML)
}

// OriginBinder builds a binder configured from the named field's autocomplete
// metadata: coordinate targets, minimum query length, and quiet interval all
// come from the definition. Extra options apply on top.
func OriginBinder(def *form.Definition, fieldName string, source suggest.Source, fns ...binder.OptionFn) (*binder.Binder, error) {
	if def == nil {
		return nil, fmt.Errorf("geoform: definition is nil")
	}
	field := def.Field(fieldName)
	if field == nil {
		return nil, fmt.Errorf("geoform: field %q not found", fieldName)
	}
	ac, ok := form.AutocompleteFor(*field)
	if !ok {
		return nil, fmt.Errorf("geoform: field %q is not wired for autocomplete", fieldName)
	}

	base := []binder.OptionFn{
		binder.WithSource(source),
		binder.WithCoordinateFields(ac.LatField, ac.LonField),
		binder.WithMinChars(ac.MinChars),
		binder.WithQuietInterval(time.Duration(ac.QuietMs) * time.Millisecond),
	}
	return binder.New(append(base, fns...)...), nil
}

// BindOrigin attaches the binder to the named field, recording selections on
// rec. Definitions without the field are a silent skip so shared code paths
// can bind opportunistically; the return reports whether the attach happened.
func BindOrigin(b *binder.Binder, def *form.Definition, fieldName string, rec *form.Record) bool {
	if b == nil || def == nil || rec == nil {
		return false
	}
	field := def.Field(fieldName)
	if field == nil {
		return false
	}
	return b.Attach(field.Name, rec)
}

type Options struct {
	Renderers      *render.Registry
	ThemeSelector  theme.ThemeSelector
	Theme          string
	ThemeVariant   string
	ThemeFallbacks map[string]string
	AssetBase      string
}

type OptionFn func(*Options)

func WithRenderers(registry *render.Registry) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderers = registry
	}
}

// WithTheme selects a theme (and optional variant) resolved through the
// selector before each render.
func WithTheme(selector theme.ThemeSelector, name, variant string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ThemeSelector = selector
		o.Theme = name
		o.ThemeVariant = variant
	}
}

// WithThemeFallbacks merges extra fallback partials over the HTML renderer
// defaults used when deriving renderer configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ThemeFallbacks = fallbacks
	}
}

// WithAssetBase sets the default URL prefix rendered forms load runtime
// assets from.
func WithAssetBase(base string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.AssetBase = base
	}
}

// Generator renders form definitions through a renderer registry, resolving
// the configured theme ahead of each render.
type Generator struct {
	opts      Options
	renderers *render.Registry
}

// New constructs a generator. When no registry is supplied (or the supplied
// one lacks it) the built-in HTML renderer is registered.
func New(fns ...OptionFn) (*Generator, error) {
	var opts Options
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}

	registry := opts.Renderers
	if registry == nil {
		registry = render.NewRegistry()
	}
	if !registry.Has("html") {
		renderer, err := html.New()
		if err != nil {
			return nil, fmt.Errorf("geoform: construct html renderer: %w", err)
		}
		if err := registry.Register(renderer); err != nil {
			return nil, fmt.Errorf("geoform: register html renderer: %w", err)
		}
	}

	return &Generator{opts: opts, renderers: registry}, nil
}

// Renderers exposes the registry for callers adding custom renderers.
func (g *Generator) Renderers() *render.Registry {
	if g == nil {
		return nil
	}
	return g.renderers
}

// Render produces output for def with the named renderer. An empty name
// resolves the registry default. Theme and asset settings configured on the
// generator fill any the caller left unset.
func (g *Generator) Render(ctx context.Context, def *form.Definition, rendererName string, options render.RenderOptions) ([]byte, error) {
	if g == nil {
		return nil, fmt.Errorf("geoform: generator is nil")
	}
	if def == nil {
		return nil, fmt.Errorf("geoform: definition is nil")
	}

	renderer, err := g.renderers.Get(rendererName)
	if err != nil {
		return nil, err
	}

	if options.Theme == nil && g.opts.ThemeSelector != nil && g.opts.Theme != "" {
		cfg, err := render.SelectTheme(g.opts.ThemeSelector, g.opts.Theme, g.opts.ThemeVariant, g.themeFallbacks())
		if err != nil {
			return nil, err
		}
		options.Theme = cfg
	}
	if options.AssetBase == "" {
		options.AssetBase = g.opts.AssetBase
	}

	return renderer.Render(ctx, *def, options)
}

// RenderHTML renders def with the built-in HTML renderer.
func (g *Generator) RenderHTML(ctx context.Context, def *form.Definition, options render.RenderOptions) ([]byte, error) {
	return g.Render(ctx, def, "html", options)
}

// themeFallbacks layers configured fallback partials over the HTML renderer
// defaults.
func (g *Generator) themeFallbacks() map[string]string {
	fallbacks := html.ThemeFallbacks()
	for key, value := range g.opts.ThemeFallbacks {
		fallbacks[key] = value
	}
	return fallbacks
}

// GenerateHTML is the one-call entry point: render def as HTML with default
// settings plus any options.
func GenerateHTML(ctx context.Context, def *form.Definition, options render.RenderOptions, fns ...OptionFn) ([]byte, error) {
	gen, err := New(fns...)
	if err != nil {
		return nil, err
	}
	return gen.RenderHTML(ctx, def, options)
}
