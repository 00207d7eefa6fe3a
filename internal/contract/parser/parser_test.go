package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-msgform/pkg/contract"
)

func TestParser_EmbeddedDocument(t *testing.T) {
	p := New(contract.NewParserOptions())

	ops, err := p.Operations(context.Background(), contract.DefaultDocument())
	if err != nil {
		t.Fatalf("operations: %v", err)
	}

	want := []string{contract.OperationCreateMessage, contract.OperationGetMessage, contract.OperationHome}
	if diff := cmp.Diff(want, ops.IDs()); diff != "" {
		t.Fatalf("operation ids mismatch (-want +got):\n%s", diff)
	}

	for id, expected := range contract.DefaultOperations() {
		got := ops[id]
		if got.Method != expected.Method || got.Path != expected.Path {
			t.Fatalf("%s: got %s %s, want %s %s", id, got.Method, got.Path, expected.Method, expected.Path)
		}
		if diff := cmp.Diff(expected.Params, got.Params); diff != "" {
			t.Fatalf("%s params mismatch (-want +got):\n%s", id, diff)
		}
	}
}

func TestParser_RequiredOperations(t *testing.T) {
	raw := []byte(`openapi: 3.0.3
info:
  title: partial
  version: "1"
paths:
  /message:
    post:
      operationId: createMessage
      responses:
        "200":
          description: ok
`)
	doc := contract.MustNewDocument(contract.SourceFromFS("partial.yaml"), raw)

	p := New(contract.NewParserOptions(
		contract.WithRequiredOperations(contract.OperationCreateMessage, contract.OperationGetMessage),
	))
	_, err := p.Operations(context.Background(), doc)
	if !errors.Is(err, contract.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
}

func TestParser_FallbackOperationID(t *testing.T) {
	raw := []byte(`openapi: 3.0.3
info:
  title: anonymous
  version: "1"
paths:
  /status:
    get:
      responses:
        "200":
          description: ok
`)
	doc := contract.MustNewDocument(contract.SourceFromFS("anon.yaml"), raw)

	ops, err := New(contract.NewParserOptions()).Operations(context.Background(), doc)
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	op, err := ops.Lookup("get:/status")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if op.Summary != "GET /status" {
		t.Fatalf("unexpected summary %q", op.Summary)
	}
}

func TestParser_InvalidDocument(t *testing.T) {
	doc := contract.MustNewDocument(contract.SourceFromFS("bad.yaml"), []byte("openapi: [unterminated"))
	if _, err := New(contract.NewParserOptions()).Operations(context.Background(), doc); err == nil {
		t.Fatalf("expected load error")
	}
}
