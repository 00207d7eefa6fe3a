// Package backendtest provides an in-memory message backend for tests. It
// serves the same routes as the real service, checks every request against
// the contract document and records what it received.
package backendtest

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/goliatone/go-msgform/internal/contract/validator"
	"github.com/goliatone/go-msgform/pkg/contract"
	"github.com/goliatone/go-msgform/pkg/message"
)

// Welcome is the greeting served on GET /.
const Welcome = "Welcome to the CS3100 Encryption API!"

// Call is one request received by the backend.
type Call struct {
	Operation string
	Method    string
	Path      string
	Body      []byte
	Header    http.Header
}

// Hook runs before an operation is handled. Tests use it to block or count
// requests.
type Hook func(operation string, r *http.Request)

type failure struct {
	status int
	detail string
}

type Option func(*Backend)

// WithFailure makes every request for operation answer status with a
// FastAPI-style {"detail": detail} body.
func WithFailure(operation string, status int, detail string) Option {
	return func(b *Backend) {
		b.failures[operation] = failure{status: status, detail: detail}
	}
}

// WithHook installs a pre-handler hook.
func WithHook(hook Hook) Option {
	return func(b *Backend) {
		b.hook = hook
	}
}

// WithDocument enforces doc instead of the embedded contract.
func WithDocument(doc contract.Document) Option {
	return func(b *Backend) {
		b.document = doc
	}
}

// WithMessage seeds a stored message.
func WithMessage(name, text string) Option {
	return func(b *Backend) {
		b.store(name, text)
	}
}

type record struct {
	id        int64
	name      string
	encrypted string
	key       string
}

// Backend is the fake message service.
type Backend struct {
	mu         sync.Mutex
	records    []record
	calls      []Call
	violations []error
	failures   map[string]failure
	hook       Hook
	document   contract.Document
	validator  *validator.Validator
	router     chi.Router
}

// New builds a backend. It fails when the contract document is invalid.
func New(options ...Option) (*Backend, error) {
	b := &Backend{
		failures: make(map[string]failure),
		document: contract.DefaultDocument(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}

	v, err := validator.New(context.Background(), b.document)
	if err != nil {
		return nil, err
	}
	b.validator = v

	r := chi.NewRouter()
	r.Use(b.enforceContract)
	r.Get("/", b.operation(contract.OperationHome, b.handleHome))
	r.Post("/message", b.operation(contract.OperationCreateMessage, b.handleCreate))
	r.Get("/message/{name}", b.operation(contract.OperationGetMessage, b.handleGet))
	b.router = r
	return b, nil
}

// NewServer starts the backend on an httptest server closed at test cleanup.
func NewServer(t testing.TB, options ...Option) (*Backend, *httptest.Server) {
	t.Helper()
	b, err := New(options...)
	if err != nil {
		t.Fatalf("backendtest: %v", err)
	}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	return b, srv
}

func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.router.ServeHTTP(w, r)
}

// Calls returns a copy of the recorded requests.
func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Call(nil), b.calls...)
}

// CallsFor returns the recorded requests for operation.
func (b *Backend) CallsFor(operation string) []Call {
	var out []Call
	for _, call := range b.Calls() {
		if call.Operation == operation {
			out = append(out, call)
		}
	}
	return out
}

// Violations returns the contract violations seen so far.
func (b *Backend) Violations() []error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]error(nil), b.violations...)
}

// Lookup returns the decrypted message stored under name.
func (b *Backend) Lookup(name string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, rec := range b.records {
		if rec.name == name {
			return decrypt(rec.encrypted), true
		}
	}
	return "", false
}

func (b *Backend) enforceContract(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := b.validator.ValidateRequest(r.Context(), r); err != nil {
			b.mu.Lock()
			b.violations = append(b.violations, err)
			b.mu.Unlock()
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"detail": []map[string]any{{
					"loc":  []string{"body"},
					"msg":  err.Error(),
					"type": "contract_violation",
				}},
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) operation(id string, handle http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		b.mu.Lock()
		b.calls = append(b.calls, Call{
			Operation: id,
			Method:    r.Method,
			Path:      r.URL.EscapedPath(),
			Body:      body,
			Header:    r.Header.Clone(),
		})
		fail, failing := b.failures[id]
		hook := b.hook
		b.mu.Unlock()

		if hook != nil {
			hook(id, r)
		}
		if failing {
			writeJSON(w, fail.status, map[string]string{"detail": fail.detail})
			return
		}
		handle(w, r)
	}
}

func (b *Backend) handleHome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": Welcome})
}

func (b *Backend) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in message.Outgoing
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}
	rec := b.store(in.Name, in.Message)
	writeJSON(w, http.StatusOK, message.Stored{
		ID:               rec.id,
		Name:             rec.name,
		EncryptedMessage: rec.encrypted,
		Key:              rec.key,
	})
}

// handleGet mirrors the reference backend: a unique match is decrypted, a
// miss is a 404 and duplicate names are an unhandled server error.
func (b *Backend) handleGet(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}

	b.mu.Lock()
	var matches []record
	for _, rec := range b.records {
		if rec.name == name {
			matches = append(matches, rec)
		}
	}
	b.mu.Unlock()

	switch len(matches) {
	case 0:
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Message not found"})
	case 1:
		writeJSON(w, http.StatusOK, message.Retrieved{Name: name, Message: decrypt(matches[0].encrypted)})
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "Internal Server Error")
	}
}

func (b *Backend) store(name, text string) record {
	b.mu.Lock()
	defer b.mu.Unlock()
	rec := record{
		id:        int64(len(b.records) + 1),
		name:      name,
		encrypted: encrypt(text),
		key:       uuid.NewString(),
	}
	b.records = append(b.records, rec)
	return rec
}

// encrypt is a reversible stand-in; the fake never needs real secrecy.
func encrypt(text string) string {
	return "gAAAAA" + base64.URLEncoding.EncodeToString([]byte(text))
}

func decrypt(token string) string {
	raw, err := base64.URLEncoding.DecodeString(token[len("gAAAAA"):])
	if err != nil {
		return ""
	}
	return string(raw)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
