package render_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-msgform/pkg/render"
)

type stubRenderer struct{ name string }

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(_ context.Context, view render.View, _ render.RenderOptions) ([]byte, error) {
	return []byte(s.name + ":" + string(view.Kind)), nil
}

func TestRegistry(t *testing.T) {
	reg := render.NewRegistry(stubRenderer{name: "b"}, stubRenderer{name: "a"})

	if diff := cmp.Diff([]string{"a", "b"}, reg.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if err := reg.Register(stubRenderer{name: "a"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if _, err := reg.Get("missing"); err == nil {
		t.Fatalf("expected missing renderer error")
	}

	out, err := reg.Render(context.Background(), "a", render.Idle(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "a:idle" {
		t.Fatalf("output = %q", out)
	}
}

func TestJSONRenderer(t *testing.T) {
	view := render.NotFound("ghost").WithRequestID("req-1")

	out, err := render.NewJSON().Render(context.Background(), view, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var decoded render.View
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := view
	want.RequestID = ""
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Fatalf("view mismatch (-want +got):\n%s", diff)
	}

	verbose, err := render.NewJSON().Render(context.Background(), view, render.RenderOptions{Verbose: true})
	if err != nil {
		t.Fatalf("render verbose: %v", err)
	}
	if err := json.Unmarshal(verbose, &decoded); err != nil {
		t.Fatalf("decode verbose: %v", err)
	}
	if decoded.RequestID != "req-1" {
		t.Fatalf("request id = %q", decoded.RequestID)
	}
}
