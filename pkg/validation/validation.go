// Package validation holds the checks that run before a form reaches the
// network. The only rule enforced by default is that every field is non-empty
// once trimmed; Validator stays pluggable for callers that need more.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-msgform/pkg/message"
)

// Validator checks form input prior to submission. A non-nil error prevents
// the network call; returning *Error lets renderers show per-field messages.
type Validator interface {
	ValidateSend(out message.Outgoing) error
	ValidateRetrieve(name string) error
}

// Error reports local validation failures keyed by field name.
type Error struct {
	Form   string
	Fields map[string][]string
}

func (e *Error) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation: invalid input"
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, strings.Join(e.Fields[name], ", "))
	}
	return "validation: " + strings.Join(parts, "; ")
}

// Messages flattens field messages in field-name order.
func (e *Error) Messages() []string {
	if e == nil {
		return nil
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []string
	for _, name := range names {
		out = append(out, e.Fields[name]...)
	}
	return out
}

// Add records a message for field, creating the map when needed.
func (e *Error) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Required returns the message shown for an empty field.
func Required(field string) string {
	return fmt.Sprintf("%s is required", label(field))
}

func label(field string) string {
	if field == "" {
		return "Field"
	}
	return strings.ToUpper(field[:1]) + field[1:]
}

type nonEmpty struct{}

// NonEmpty rejects blank fields and nothing else.
func NonEmpty() Validator {
	return nonEmpty{}
}

func (nonEmpty) ValidateSend(out message.Outgoing) error {
	blank := out.Blank()
	if len(blank) == 0 {
		return nil
	}
	err := &Error{Form: message.FormSend}
	for _, field := range blank {
		err.Add(field, Required(field))
	}
	return err
}

func (nonEmpty) ValidateRetrieve(name string) error {
	if !message.IsBlank(name) {
		return nil
	}
	err := &Error{Form: message.FormRetrieve}
	err.Add(message.FieldName, Required(message.FieldName))
	return err
}

type acceptAll struct{}

// AcceptAll never rejects input. It mirrors the placeholder validator the
// first page iteration shipped with.
func AcceptAll() Validator {
	return acceptAll{}
}

func (acceptAll) ValidateSend(message.Outgoing) error { return nil }
func (acceptAll) ValidateRetrieve(string) error       { return nil }
