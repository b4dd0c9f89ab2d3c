package main

import (
	"context"
	"fmt"
	"os"

	geoform "github.com/chimdiadi/go-geoform"
	"github.com/chimdiadi/go-geoform/pkg/render"
)

func main() {
	ctx := context.Background()

	const outputPath = "definitions/freight-quote.html"

	def, err := geoform.DefaultDefinition()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load definition: %v\n", err)
		os.Exit(1)
	}

	html, err := geoform.GenerateHTML(ctx, def, render.RenderOptions{},
		geoform.WithAssetBase("/static/geoform"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate form: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outputPath, html, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Generated quote form HTML (%d bytes) → %s\n", len(html), outputPath)
}
