package msgform_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-msgform"
	"github.com/goliatone/go-msgform/internal/backendtest"
	"github.com/goliatone/go-msgform/pkg/client"
	"github.com/goliatone/go-msgform/pkg/contract"
	"github.com/goliatone/go-msgform/pkg/metrics"
	"github.com/goliatone/go-msgform/pkg/render"
)

func TestOpen_StoreAndRetrieve(t *testing.T) {
	_, srv := backendtest.NewServer(t)
	m := metrics.New()

	rt, err := msgform.Open(context.Background(), srv.URL,
		msgform.WithMetrics(m),
		msgform.WithResponseValidation(true),
	)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	ctx := context.Background()
	view, outcome := rt.Forms.HandleSend(ctx, "alice", "hello")
	if !outcome.OK() || view.Kind != render.KindStored {
		t.Fatalf("unexpected store outcome %+v", outcome)
	}

	view, outcome = rt.Forms.HandleRetrieve(ctx, "alice")
	if got, _ := view.Value(render.LabelMessage); !outcome.OK() || got != "hello" {
		t.Fatalf("unexpected retrieve view %+v", view)
	}

	out, err := rt.Render(ctx, "text", view, msgform.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "hello") {
		t.Fatalf("text output missing message: %q", out)
	}

	for _, name := range []string{"text", "json", "html"} {
		if !rt.Renderers.Has(name) {
			t.Fatalf("renderer %q not registered", name)
		}
	}
}

func TestOpen_MissingOperation(t *testing.T) {
	doc := `openapi: 3.0.3
info: {title: partial, version: "1"}
paths:
  /message:
    post:
      operationId: createMessage
      responses:
        "200": {description: ok}
`
	src := writeContract(t, doc)
	_, err := msgform.Open(context.Background(), "http://127.0.0.1:1", msgform.WithContractSource(src))
	if !errors.Is(err, contract.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
}

func TestOpen_RejectsBadBaseURL(t *testing.T) {
	if _, err := msgform.Open(context.Background(), "not a url"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestOpen_NotFound(t *testing.T) {
	_, srv := backendtest.NewServer(t)
	rt, err := msgform.Open(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	_, err = rt.Client.Retrieve(context.Background(), "ghost")
	if !errors.Is(err, client.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
