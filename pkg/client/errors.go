package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-msgform/pkg/message"
	"github.com/goliatone/go-msgform/pkg/render"
)

// ErrNotFound matches a 404 answer to a retrieval.
var ErrNotFound = errors.New("client: message not found")

// TransportError reports a request that never produced an HTTP response:
// connection failures, timeouts, cancelled contexts.
type TransportError struct {
	Operation string
	URL       string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("client: %s %s: %v", e.Operation, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError reports a response the client could not accept: a non-2xx
// status, an undecodable body or a contract violation.
type ProtocolError struct {
	Operation string
	Status    int
	// Payload holds backend error messages keyed by field path, as decoded
	// by render.DecodeErrorPayload.
	Payload map[string][]string
	Err     error
}

func (e *ProtocolError) Error() string {
	msg := "client: " + e.Operation
	if e.Status != 0 && (e.Status < 200 || e.Status > 299) {
		msg += fmt.Sprintf(": unexpected status %d %s", e.Status, http.StatusText(e.Status))
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// Is matches ErrNotFound for 404 responses.
func (e *ProtocolError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// FieldErrors maps backend messages onto form fields.
func (e *ProtocolError) FieldErrors() map[string][]string {
	return e.mapping().Fields
}

// FormErrors returns backend messages that do not belong to a field.
func (e *ProtocolError) FormErrors() []string {
	return e.mapping().Form
}

func (e *ProtocolError) mapping() render.ErrorMapping {
	return render.MapErrorPayload([]string{message.FieldName, message.FieldMessage}, e.Payload)
}

// errorPayload decodes a backend error body. Plain-text bodies become a single
// form-level message.
func errorPayload(body []byte) map[string][]string {
	if payload := render.DecodeErrorPayload(body); payload != nil {
		return payload
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return nil
	}
	return map[string][]string{"": {truncateText(text, maxErrorText)}}
}

const maxErrorText = 200

// truncateText cuts text to at most limit bytes without splitting a rune.
func truncateText(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
