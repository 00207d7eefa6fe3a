package render

import (
	"context"
	"encoding/json"
)

// JSONName is the registry name of the JSON renderer.
const JSONName = "json"

// JSONRenderer emits the view as indented JSON, mainly for scripting.
type JSONRenderer struct{}

// NewJSON returns the JSON renderer.
func NewJSON() *JSONRenderer {
	return &JSONRenderer{}
}

func (*JSONRenderer) Name() string        { return JSONName }
func (*JSONRenderer) ContentType() string { return "application/json" }

func (*JSONRenderer) Render(ctx context.Context, view View, options RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !options.Verbose {
		view.RequestID = ""
	}
	out, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
