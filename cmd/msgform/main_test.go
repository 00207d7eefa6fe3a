package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-msgform/internal/backendtest"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(&stdout, &stderr)
	root.SetArgs(append([]string{"--env-file", "", "--log-level", "error"}, args...))
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestSendThenGet(t *testing.T) {
	backend, srv := backendtest.NewServer(t)

	out, _, err := run(t, "--base-url", srv.URL, "send", "alice", "meet", "at", "noon")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if !strings.Contains(out, "Message stored") || !strings.Contains(out, "alice") {
		t.Fatalf("unexpected send output:\n%s", out)
	}
	calls := backend.CallsFor("createMessage")
	if len(calls) != 1 || !strings.Contains(string(calls[0].Body), `"message":"meet at noon"`) {
		t.Fatalf("unexpected backend calls %+v", calls)
	}

	out, _, err = run(t, "--base-url", srv.URL, "get", "alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !strings.Contains(out, "meet at noon") {
		t.Fatalf("unexpected get output:\n%s", out)
	}
}

func TestGetNotFound(t *testing.T) {
	_, srv := backendtest.NewServer(t)

	out, _, err := run(t, "--base-url", srv.URL, "get", "ghost")
	if !errors.Is(err, errSubmission) {
		t.Fatalf("expected errSubmission, got %v", err)
	}
	if !strings.Contains(out, "not found for ghost") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestSendJSONRenderer(t *testing.T) {
	_, srv := backendtest.NewServer(t)

	out, _, err := run(t, "--base-url", srv.URL, "--renderer", "json", "send", "--name", "bob", "--message", "hi")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if payload["kind"] != "stored" {
		t.Fatalf("kind = %v", payload["kind"])
	}
}

func TestSendValidationSkipsBackend(t *testing.T) {
	backend, srv := backendtest.NewServer(t)

	out, _, err := run(t, "--base-url", srv.URL, "send", "--name", " ", "--message", "hi")
	if !errors.Is(err, errSubmission) {
		t.Fatalf("expected errSubmission, got %v", err)
	}
	if !strings.Contains(out, "Name is required") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if len(backend.Calls()) != 0 {
		t.Fatalf("expected no backend calls")
	}
}

func TestContractListsOperations(t *testing.T) {
	out, _, err := run(t, "contract")
	if err != nil {
		t.Fatalf("contract: %v", err)
	}
	for _, want := range []string{"createMessage", "POST", "/message/{name}"} {
		if !strings.Contains(out, want) {
			t.Fatalf("contract output missing %q:\n%s", want, out)
		}
	}
}

func TestHealth(t *testing.T) {
	_, srv := backendtest.NewServer(t)

	out, _, err := run(t, "--base-url", srv.URL, "health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if !strings.Contains(out, backendtest.Welcome) {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestInvalidRenderer(t *testing.T) {
	if _, _, err := run(t, "--renderer", "pdf", "contract"); err == nil {
		t.Fatalf("expected config error")
	}
}
