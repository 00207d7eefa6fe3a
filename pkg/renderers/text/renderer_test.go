package text_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-msgform/pkg/message"
	"github.com/goliatone/go-msgform/pkg/render"
	"github.com/goliatone/go-msgform/pkg/renderers/text"
	"github.com/goliatone/go-msgform/pkg/validation"
)

var validationErr = validation.Error{
	Form: message.FormSend,
	Fields: map[string][]string{
		message.FieldName:    {"Name is required"},
		message.FieldMessage: {"Message is required"},
	},
}

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		view    render.View
		options render.RenderOptions
		want    string
	}{
		{
			name: "stored",
			view: render.Stored(message.Stored{Name: "A", EncryptedMessage: "X", Key: "K"}),
			want: "Message stored\n" +
				"  Name:               A\n" +
				"  Encrypted message:  X\n" +
				"  Key:                K\n",
		},
		{
			name: "not found",
			view: render.NotFound("ghost"),
			want: "Not found: not found for ghost\n",
		},
		{
			name: "validation",
			view: render.Validation(message.FormSend, &validationErr),
			want: "Check the form\n  - Message is required\n  - Name is required\n",
		},
		{
			name: "multi-line value",
			view: render.Retrieved(message.Retrieved{Name: "bob", Message: "line one\nline two"}),
			want: "Message retrieved\n" +
				"  Name:     bob\n" +
				"  Message:  line one\n" +
				"            line two\n",
		},
		{
			name: "crlf value keeps columns",
			view: render.Retrieved(message.Retrieved{Name: "bob", Message: "dear\tbob\r\nsee you\r\n-- a"}),
			want: "Message retrieved\n" +
				"  Name:     bob\n" +
				"  Message:  dear bob\n" +
				"            see you\n" +
				"            -- a\n",
		},
		{
			name: "multi-line error",
			view: render.View{Kind: render.KindError, Title: "Request failed", Errors: []string{"backend said:\ndatabase locked"}},
			want: "Request failed\n" +
				"  - backend said:\n" +
				"    database locked\n",
		},
		{
			name:    "verbose request id",
			view:    render.NotFound("ghost").WithRequestID("req-1"),
			options: render.RenderOptions{Verbose: true},
			want:    "Not found: not found for ghost\n  request id: req-1\n",
		},
		{
			name: "idle",
			view: render.Idle(),
			want: "Nothing submitted yet\n",
		},
	}

	r := text.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Render(context.Background(), tt.view, tt.options)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if diff := cmp.Diff(tt.want, string(out)); diff != "" {
				t.Fatalf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRender_IndentAppliesToContinuationLines(t *testing.T) {
	r := text.New(text.WithIndent("> "))
	view := render.Retrieved(message.Retrieved{Name: "bob", Message: "one\ntwo"})

	out, err := r.Render(context.Background(), view, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "Message retrieved\n" +
		"> Name:     bob\n" +
		"> Message:  one\n" +
		">           two\n"
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}
