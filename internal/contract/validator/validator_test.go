package validator

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goliatone/go-msgform/pkg/contract"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := New(context.Background(), contract.DefaultDocument())
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	return v
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestValidateRequest(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name    string
		req     *http.Request
		wantErr bool
	}{
		{name: "valid send", req: jsonRequest(http.MethodPost, "http://backend/message", `{"name":"alice","message":"hi"}`)},
		{name: "missing message", req: jsonRequest(http.MethodPost, "http://backend/message", `{"name":"alice"}`), wantErr: true},
		{name: "valid retrieve", req: httptest.NewRequest(http.MethodGet, "http://backend/message/alice", nil)},
		{name: "escaped retrieve", req: httptest.NewRequest(http.MethodGet, "http://backend/message/a%20b", nil)},
		{name: "unknown route", req: httptest.NewRequest(http.MethodDelete, "http://backend/message", nil), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateRequest(context.Background(), tt.req)
			if tt.wantErr {
				if !errors.Is(err, contract.ErrViolation) {
					t.Fatalf("expected ErrViolation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateRequest_BodyRemainsReadable(t *testing.T) {
	v := newValidator(t)
	payload := `{"name":"alice","message":"hi"}`
	req := jsonRequest(http.MethodPost, "http://backend/message", payload)

	if err := v.ValidateRequest(context.Background(), req); err != nil {
		t.Fatalf("validate: %v", err)
	}
	got, err := io.ReadAll(req.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(got) != payload {
		t.Fatalf("body = %q, want %q", got, payload)
	}
}

func TestValidateResponse(t *testing.T) {
	v := newValidator(t)
	header := http.Header{"Content-Type": []string{"application/json"}}

	send := jsonRequest(http.MethodPost, "http://backend/message", `{"name":"alice","message":"hi"}`)
	if err := v.ValidateResponse(context.Background(), send, http.StatusOK, header,
		[]byte(`{"id":1,"name":"alice","encrypted_message":"gAAA","key":"k"}`)); err != nil {
		t.Fatalf("valid stored response rejected: %v", err)
	}
	if err := v.ValidateResponse(context.Background(), send, http.StatusOK, header,
		[]byte(`{"name":"alice"}`)); !errors.Is(err, contract.ErrViolation) {
		t.Fatalf("expected violation for incomplete stored response, got %v", err)
	}

	get := httptest.NewRequest(http.MethodGet, "http://backend/message/bob", nil)
	if err := v.ValidateResponse(context.Background(), get, http.StatusNotFound, header,
		[]byte(`{"detail":"Message not found"}`)); err != nil {
		t.Fatalf("valid not-found response rejected: %v", err)
	}
	if err := v.ValidateResponse(context.Background(), get, http.StatusTeapot, header,
		[]byte(`{}`)); !errors.Is(err, contract.ErrViolation) {
		t.Fatalf("expected violation for undeclared status, got %v", err)
	}
}
