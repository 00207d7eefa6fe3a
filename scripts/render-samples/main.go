// Command render-samples writes every display region kind through every
// renderer so templates and themes can be reviewed side by side.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goliatone/go-msgform/pkg/client"
	"github.com/goliatone/go-msgform/pkg/message"
	"github.com/goliatone/go-msgform/pkg/render"
	htmlrenderer "github.com/goliatone/go-msgform/pkg/renderers/html"
	"github.com/goliatone/go-msgform/pkg/renderers/text"
	"github.com/goliatone/go-msgform/pkg/validation"
)

func main() {
	out := flag.String("out", "samples", "output directory")
	variant := flag.String("variant", "", "theme variant for the html stylesheet")
	verbose := flag.Bool("verbose", false, "include request ids")
	flag.Parse()

	if err := run(context.Background(), *out, *variant, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, dir, variant string, verbose bool) error {
	html, err := htmlrenderer.New(htmlrenderer.WithVariant(variant))
	if err != nil {
		return err
	}
	registry := render.NewRegistry(text.New(), render.NewJSON(), html)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	blank := &validation.Error{Form: message.FormSend}
	blank.Add(message.FieldName, validation.Required(message.FieldName))
	blank.Add(message.FieldMessage, validation.Required(message.FieldMessage))

	views := map[string]render.View{
		"idle":       render.Idle(),
		"stored":     render.Stored(message.Stored{ID: 7, Name: "alice", EncryptedMessage: "gAAAAABlZ3Rlc3Q=", Key: "c2VjcmV0LWtleQ=="}),
		"retrieved":  render.Retrieved(message.Retrieved{Name: "alice", Message: "meet at <noon>"}),
		"validation": render.Validation(message.FormSend, blank),
		"not_found":  render.NotFound("ghost"),
		"error": render.Failure(message.FormRetrieve, &client.TransportError{
			Operation: "getMessage",
			URL:       client.DefaultBaseURL + "/message/alice",
			Err:       errors.New("connection refused"),
		}),
	}

	opts := render.RenderOptions{Variant: variant, Verbose: verbose}
	for kind, view := range views {
		view = view.WithRequestID("sample-" + kind)
		for _, name := range registry.List() {
			body, err := registry.Render(ctx, name, view, opts)
			if err != nil {
				return fmt.Errorf("render %s with %s: %w", kind, name, err)
			}
			path := filepath.Join(dir, kind+"."+extension(name))
			if err := os.WriteFile(path, body, 0o644); err != nil {
				return err
			}
		}
	}

	css, err := html.Stylesheet(variant)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "theme.css"), []byte(css), 0o644); err != nil {
		return err
	}
	fmt.Printf("samples written to %s\n", dir)
	return nil
}

func extension(renderer string) string {
	switch renderer {
	case text.Name:
		return "txt"
	default:
		return renderer
	}
}
