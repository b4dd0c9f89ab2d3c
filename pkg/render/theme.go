package render

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// SelectTheme resolves a theme selection through the provided selector and
// converts it into a renderer configuration. A nil selector yields a nil
// configuration, which renderers treat as "use built-in styling".
func SelectTheme(selector theme.ThemeSelector, name, variant string, fallbacks map[string]string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme %q: %w", name, err)
	}
	return ThemeConfig(selection, fallbacks), nil
}

// ThemeConfig flattens a go-theme selection into the renderer configuration
// renderers consume. Partials start from the supplied fallbacks, then pick up
// manifest templates and finally variant overrides. Tokens merge the same way
// and are mirrored into CSS custom properties. The AssetURL resolver joins
// the manifest asset prefix with the (variant-aware) file map.
func ThemeConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if selection == nil {
		return nil
	}

	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: overlayStringMap(nil, fallbacks),
	}

	manifest := selection.Manifest
	if manifest == nil {
		return cfg
	}

	cfg.Partials = overlayStringMap(cfg.Partials, manifest.Templates)
	cfg.Tokens = overlayStringMap(nil, manifest.Tokens)

	files := overlayStringMap(nil, manifest.Assets.Files)
	prefix := manifest.Assets.Prefix

	if variant, ok := manifest.Variants[selection.Variant]; ok {
		cfg.Partials = overlayStringMap(cfg.Partials, variant.Templates)
		cfg.Tokens = overlayStringMap(cfg.Tokens, variant.Tokens)
		files = overlayStringMap(files, variant.Assets.Files)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	cfg.CSSVars = cssVarsFromTokens(cfg.Tokens)
	cfg.AssetURL = assetResolver(prefix, files)
	return cfg
}

func overlayStringMap(base, extra map[string]string) map[string]string {
	if len(extra) == 0 {
		return base
	}
	out := make(map[string]string, len(base)+len(extra))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range extra {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		out[key] = value
	}
	return out
}

func cssVarsFromTokens(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(tokens))
	for name, value := range tokens {
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		vars[name] = value
	}
	return vars
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if prefix == "" {
			return file
		}
		return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
	}
}
