package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

const (
	// StylesheetName is the embedded stylesheet file served from AssetsFS.
	StylesheetName = "geoform.css"

	shellTemplate = "templates/form.tpl"
)

// TemplatesFS exposes the embedded template bundle for consumers that want to
// use the built-in form rendering out of the box.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded stylesheet bundle so callers can serve it
// over HTTP or copy it into their own asset pipeline.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

// ThemeFallbacks returns the partial paths used when a theme manifest does
// not override them. Themes can replace the form shell via "forms.shell" and
// individual widget controls via "widgets.<name>" entries.
func ThemeFallbacks() map[string]string {
	return map[string]string{
		"forms.shell": shellTemplate,
	}
}
