package message

import "strings"

// Outgoing is the payload submitted by the store form.
type Outgoing struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// NewOutgoing captures the raw form input. Values are kept verbatim; trimming
// only applies when checking for empty fields.
func NewOutgoing(name, message string) Outgoing {
	return Outgoing{Name: name, Message: message}
}

// Blank reports which fields are empty once surrounding whitespace is removed.
func (o Outgoing) Blank() []string {
	var out []string
	if IsBlank(o.Name) {
		out = append(out, FieldName)
	}
	if IsBlank(o.Message) {
		out = append(out, FieldMessage)
	}
	return out
}

// Stored is the store confirmation returned by the backend. ID is only
// populated by backends that echo their row identifier.
type Stored struct {
	ID               int64  `json:"id,omitempty"`
	Name             string `json:"name"`
	EncryptedMessage string `json:"encrypted_message"`
	Key              string `json:"key"`
}

// Retrieved is the decrypted message returned by a lookup.
type Retrieved struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Field names shared by forms, validation and wire payloads.
const (
	FieldName    = "name"
	FieldMessage = "message"
)

// IsBlank reports whether value is empty after trimming whitespace.
func IsBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// Form identifiers. Each form owns its fields and its submissions.
const (
	FormSend     = "send"
	FormRetrieve = "retrieve"
)
