package render_test

import (
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/chimdiadi/go-geoform/pkg/render"
)

func acmeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":   "#123456",
			"--muted": "#999999",
		},
		Templates: map[string]string{
			"forms.input": "themes/acme/input.tpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files: map[string]string{
				"stylesheet": "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"brand": "#654321",
				},
				Templates: map[string]string{
					"forms.toggle": "themes/acme/dark/toggle.tpl",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"runtime": "runtime.dark.js",
					},
				},
			},
		},
	}
}

func TestThemeConfig_MergesVariantOverManifest(t *testing.T) {
	fallbacks := map[string]string{
		"forms.input":  "templates/widgets/input.tpl",
		"forms.toggle": "templates/widgets/toggle.tpl",
		"forms.select": "templates/widgets/select.tpl",
	}

	cfg := render.ThemeConfig(&theme.Selection{
		Theme:    "acme",
		Variant:  "dark",
		Manifest: acmeManifest(),
	}, fallbacks)

	if cfg == nil {
		t.Fatalf("expected config")
	}
	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("unexpected identity: %s/%s", cfg.Theme, cfg.Variant)
	}

	if got := cfg.Partials["forms.input"]; got != "themes/acme/input.tpl" {
		t.Fatalf("manifest template should override fallback, got %s", got)
	}
	if got := cfg.Partials["forms.toggle"]; got != "themes/acme/dark/toggle.tpl" {
		t.Fatalf("variant template should override, got %s", got)
	}
	if got := cfg.Partials["forms.select"]; got != "templates/widgets/select.tpl" {
		t.Fatalf("fallback partial not applied, got %s", got)
	}

	if got := cfg.Tokens["brand"]; got != "#654321" {
		t.Fatalf("variant token should win, got %s", got)
	}
	if got := cfg.CSSVars["--brand"]; got != "#654321" {
		t.Fatalf("css var not derived from token, got %s", got)
	}
	if got := cfg.CSSVars["--muted"]; got != "#999999" {
		t.Fatalf("prefixed token should keep its name, got %s", got)
	}

	if cfg.AssetURL == nil {
		t.Fatalf("expected AssetURL resolver")
	}
	if got := cfg.AssetURL("runtime"); got != "/assets/themes/acme/runtime.dark.js" {
		t.Fatalf("unexpected variant asset url: %s", got)
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/themes/acme/theme.css" {
		t.Fatalf("unexpected base asset url: %s", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("unknown asset key should resolve empty, got %s", got)
	}
}

func TestThemeConfig_NilSelection(t *testing.T) {
	if cfg := render.ThemeConfig(nil, nil); cfg != nil {
		t.Fatalf("expected nil config, got %+v", cfg)
	}
}

type stubSelector struct {
	selection *theme.Selection
	err       error
	name      string
	variant   string
}

func (s *stubSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.name = name
	s.variant = variant
	return s.selection, s.err
}

func TestSelectTheme(t *testing.T) {
	selector := &stubSelector{
		selection: &theme.Selection{Theme: "acme", Variant: "dark", Manifest: acmeManifest()},
	}

	cfg, err := render.SelectTheme(selector, "acme", "dark", nil)
	if err != nil {
		t.Fatalf("select theme: %v", err)
	}
	if selector.name != "acme" || selector.variant != "dark" {
		t.Fatalf("unexpected selector args: %s/%s", selector.name, selector.variant)
	}
	if cfg == nil || cfg.Theme != "acme" {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	if cfg, err := render.SelectTheme(nil, "acme", "dark", nil); err != nil || cfg != nil {
		t.Fatalf("nil selector should yield nil config, got %+v (%v)", cfg, err)
	}
}
