package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/chimdiadi/go-geoform/pkg/form"
	"github.com/chimdiadi/go-geoform/pkg/render"
	rendertemplate "github.com/chimdiadi/go-geoform/pkg/render/template"
	gotemplate "github.com/chimdiadi/go-geoform/pkg/render/template/gotemplate"
	"github.com/chimdiadi/go-geoform/pkg/widgets"
)

// RuntimeScriptName is the browser runtime file the rendered form loads when
// RenderOptions.AssetBase is set.
const RuntimeScriptName = "origin-autocomplete.js"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	widgets          *widgets.Registry
	submitLabel      string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithWidgets overrides the widget registry used to pick field controls.
func WithWidgets(registry *widgets.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.widgets = registry
		}
	}
}

// WithSubmitLabel overrides the submit button text.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			cfg.submitLabel = trimmed
		}
	}
}

// Renderer produces server-rendered form markup whose geocoding-aware fields
// carry the data attributes the browser runtime binds to.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	widgets     *widgets.Registry
	submitLabel string
}

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:  TemplatesFS(),
		submitLabel: "Submit",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.widgets == nil {
		cfg.widgets = widgets.NewRegistry()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:   renderer,
		widgets:     cfg.widgets,
		submitLabel: cfg.submitLabel,
	}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render builds the form markup. The definition is cloned before widget
// decoration so callers never observe metadata mutations.
func (r *Renderer) Render(_ context.Context, def form.Definition, options render.RenderOptions) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	def.Fields = cloneFields(def.Fields)
	if err := r.widgets.Decorate(&def); err != nil {
		return nil, fmt.Errorf("html renderer: decorate fields: %w", err)
	}

	mapping := render.MapErrorPayload(def, options.Errors)

	fields := &fieldRenderer{
		templates: r.templates,
		partials:  themePartials(options.Theme),
	}

	var markup strings.Builder
	for _, field := range def.Fields {
		rendered, err := fields.render(field, valueFor(options.Values, field.Name), mapping.Fields[field.Name])
		if err != nil {
			return nil, fmt.Errorf("html renderer: render field %q: %w", field.Name, err)
		}
		markup.WriteString(rendered)
	}

	method, methodOverride := submitMethod(def, options)
	hidden := options.Hidden
	if methodOverride != "" {
		hidden = render.MergeHiddenFields(hidden, render.Hidden("_method", methodOverride))
	}

	action := strings.TrimSpace(options.Action)
	if action == "" {
		action = def.Action
	}

	data := map[string]any{
		"form": map[string]any{
			"name":   def.Name,
			"title":  def.Title,
			"action": action,
			"method": method,
		},
		"theme":         themeContext(options.Theme),
		"form_errors":   mapping.Form,
		"hidden_fields": hiddenContext(hidden),
		"fields_html":   markup.String(),
		"submit_label":  r.submitLabel,
		"script_url":    runtimeScriptURL(options.AssetBase),
	}

	shell := shellTemplate
	if partial := fields.partials["forms.shell"]; partial != "" {
		shell = partial
	}

	result, err := r.templates.RenderTemplate(shell, data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// submitMethod maps the effective method onto what browsers can actually
// submit. Anything beyond GET/POST becomes a POST plus a _method override.
func submitMethod(def form.Definition, options render.RenderOptions) (string, string) {
	method := strings.ToUpper(strings.TrimSpace(options.Method))
	if method == "" {
		method = strings.ToUpper(strings.TrimSpace(def.Method))
	}
	switch method {
	case "", "POST":
		return "post", ""
	case "GET":
		return "get", ""
	default:
		return "post", method
	}
}

func runtimeScriptURL(assetBase string) string {
	base := strings.TrimSpace(assetBase)
	if base == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + RuntimeScriptName
}
