package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-msgform/pkg/message"
	"github.com/goliatone/go-msgform/pkg/validation"
)

// Kind classifies what the display region currently shows.
type Kind string

const (
	KindIdle       Kind = "idle"
	KindStored     Kind = "stored"
	KindRetrieved  Kind = "retrieved"
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindError      Kind = "error"
)

// Field is a labelled value shown in the display region.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// View describes the display region. Renderers turn it into text, HTML or
// JSON; nothing else about the region is stateful.
type View struct {
	Kind        Kind                `json:"kind"`
	Form        string              `json:"form,omitempty"`
	Title       string              `json:"title,omitempty"`
	Message     string              `json:"message,omitempty"`
	Fields      []Field             `json:"fields,omitempty"`
	Errors      []string            `json:"errors,omitempty"`
	FieldErrors map[string][]string `json:"field_errors,omitempty"`
	RequestID   string              `json:"request_id,omitempty"`
}

// IsError reports whether the view shows a failure of any kind.
func (v View) IsError() bool {
	switch v.Kind {
	case KindValidation, KindNotFound, KindError:
		return true
	default:
		return false
	}
}

// Value returns the value of the field with the given label.
func (v View) Value(label string) (string, bool) {
	for _, field := range v.Fields {
		if field.Label == label {
			return field.Value, true
		}
	}
	return "", false
}

// WithRequestID returns a copy of v tagged with id.
func (v View) WithRequestID(id string) View {
	v.RequestID = id
	return v
}

// Field labels used by the builders.
const (
	LabelID               = "ID"
	LabelName             = "Name"
	LabelEncryptedMessage = "Encrypted message"
	LabelKey              = "Key"
	LabelMessage          = "Message"
)

// Idle is the region before any submission.
func Idle() View {
	return View{Kind: KindIdle}
}

// Stored renders a store confirmation.
func Stored(m message.Stored) View {
	fields := make([]Field, 0, 4)
	if m.ID != 0 {
		fields = append(fields, Field{Label: LabelID, Value: strconv.FormatInt(m.ID, 10)})
	}
	fields = append(fields,
		Field{Label: LabelName, Value: m.Name},
		Field{Label: LabelEncryptedMessage, Value: m.EncryptedMessage},
		Field{Label: LabelKey, Value: m.Key},
	)
	return View{
		Kind:   KindStored,
		Form:   message.FormSend,
		Title:  "Message stored",
		Fields: fields,
	}
}

// Retrieved renders a decrypted message.
func Retrieved(m message.Retrieved) View {
	return View{
		Kind:  KindRetrieved,
		Form:  message.FormRetrieve,
		Title: "Message retrieved",
		Fields: []Field{
			{Label: LabelName, Value: m.Name},
			{Label: LabelMessage, Value: m.Message},
		},
	}
}

// Validation renders local validation failures. Non-validation errors are
// rendered as a single form-level message.
func Validation(form string, err error) View {
	view := View{
		Kind:  KindValidation,
		Form:  form,
		Title: "Check the form",
	}

	var verr *validation.Error
	if errors.As(err, &verr) {
		if verr.Form != "" {
			view.Form = verr.Form
		}
		view.Errors = verr.Messages()
		if len(verr.Fields) > 0 {
			view.FieldErrors = make(map[string][]string, len(verr.Fields))
			for field, msgs := range verr.Fields {
				view.FieldErrors[field] = append([]string(nil), msgs...)
			}
		}
		return view
	}
	if err != nil {
		view.Errors = []string{err.Error()}
	}
	return view
}

// NotFound renders a lookup miss.
func NotFound(name string) View {
	return View{
		Kind:    KindNotFound,
		Form:    message.FormRetrieve,
		Title:   "Not found",
		Message: fmt.Sprintf("not found for %s", name),
	}
}

// FieldErrorCarrier is implemented by errors that carry backend validation
// details (for example client.ProtocolError).
type FieldErrorCarrier interface {
	FieldErrors() map[string][]string
	FormErrors() []string
}

// Failure renders a failed submission. Store failures include the reason in
// the headline; retrieval failures keep a generic headline and list the reason
// underneath.
func Failure(form string, err error) View {
	reason := "unknown error"
	if err != nil {
		reason = err.Error()
	}

	view := View{
		Kind:  KindError,
		Form:  form,
		Title: "Request failed",
	}
	switch form {
	case message.FormSend:
		view.Message = "could not store message: " + reason
	case message.FormRetrieve:
		view.Message = "could not retrieve message"
		view.Errors = []string{reason}
	default:
		view.Message = reason
	}

	var carrier FieldErrorCarrier
	if errors.As(err, &carrier) {
		view.FieldErrors = carrier.FieldErrors()
		view.Errors = MergeFormErrors(view.Errors, carrier.FormErrors()...)
	}
	return view
}

// Summary flattens the view into one line for logs and terminals.
func (v View) Summary() string {
	var b strings.Builder
	if v.Title != "" {
		b.WriteString(v.Title)
	}
	if v.Message != "" {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString(v.Message)
	}
	for _, field := range v.Fields {
		if b.Len() > 0 {
			b.WriteString("; ")
		}
		b.WriteString(field.Label)
		b.WriteString("=")
		b.WriteString(field.Value)
	}
	return b.String()
}
