package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/chimdiadi/go-geoform/pkg/form"
	"github.com/chimdiadi/go-geoform/pkg/render"
)

type namedRenderer struct {
	name string
}

func (r namedRenderer) Name() string        { return r.name }
func (r namedRenderer) ContentType() string { return "text/plain" }
func (r namedRenderer) Render(_ context.Context, def form.Definition, _ render.RenderOptions) ([]byte, error) {
	return []byte(def.Name), nil
}

func TestRegistry_FirstRegisteredIsDefault(t *testing.T) {
	reg := render.NewRegistry()
	reg.MustRegister(namedRenderer{name: "html"})
	reg.MustRegister(namedRenderer{name: "text"})

	if got := reg.Default(); got != "html" {
		t.Fatalf("expected html default, got %q", got)
	}

	renderer, err := reg.Get("")
	if err != nil {
		t.Fatalf("get default: %v", err)
	}
	if renderer.Name() != "html" {
		t.Fatalf("empty-name lookup resolved %q", renderer.Name())
	}

	if err := reg.SetDefault("text"); err != nil {
		t.Fatalf("set default: %v", err)
	}
	if got := reg.MustGet("").Name(); got != "text" {
		t.Fatalf("expected text after SetDefault, got %q", got)
	}
}

func TestRegistry_Errors(t *testing.T) {
	reg := render.NewRegistry()
	reg.MustRegister(namedRenderer{name: "html"})

	if err := reg.Register(namedRenderer{name: "html"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}
	if err := reg.SetDefault("missing"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
	if _, err := reg.Get("missing"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}

	if got := reg.List(); len(got) != 1 || got[0] != "html" {
		t.Fatalf("unexpected list: %v", got)
	}
	if !reg.Has("html") || reg.Has("missing") {
		t.Fatalf("Has misbehaved")
	}
}
