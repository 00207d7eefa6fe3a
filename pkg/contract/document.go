package contract

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// ErrOperationNotFound is returned when a document lacks a required operation.
var ErrOperationNotFound = errors.New("contract: operation not found")

// Source identifies where a contract document originated so loaders can
// operate on files, fs.FS entries, or URLs without leaking details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Document wraps the raw OpenAPI payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("contract: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("contract: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the OpenAPI payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Operation is the subset of OpenAPI operation metadata the client needs to
// address an endpoint.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
	// Params lists the path template parameters in declaration order.
	Params []string
}

// NewOperation validates core fields.
func NewOperation(id, method, path string) (Operation, error) {
	if id == "" {
		return Operation{}, errors.New("contract: operation id is required")
	}
	if method == "" {
		return Operation{}, errors.New("contract: operation method is required")
	}
	if path == "" {
		return Operation{}, errors.New("contract: operation path is required")
	}
	return Operation{
		ID:     id,
		Method: strings.ToUpper(method),
		Path:   path,
		Params: templateParams(path),
	}, nil
}

// MustNewOperation panics when construction fails.
func MustNewOperation(id, method, path string) Operation {
	op, err := NewOperation(id, method, path)
	if err != nil {
		panic(err)
	}
	return op
}

// Expand substitutes path parameters, escaping each value as a single path
// segment. Every template parameter must be supplied.
func (op Operation) Expand(params map[string]string) (string, error) {
	path := op.Path
	for _, name := range op.Params {
		value, ok := params[name]
		if !ok {
			return "", fmt.Errorf("contract: operation %s: missing path parameter %q", op.ID, name)
		}
		path = strings.ReplaceAll(path, "{"+name+"}", url.PathEscape(value))
	}
	return path, nil
}

// Operations indexes operations by id.
type Operations map[string]Operation

// Lookup returns the operation registered under id.
func (ops Operations) Lookup(id string) (Operation, error) {
	op, ok := ops[id]
	if !ok {
		return Operation{}, fmt.Errorf("%w: %s", ErrOperationNotFound, id)
	}
	return op, nil
}

// Require checks that all ids are present.
func (ops Operations) Require(ids ...string) error {
	var missing []string
	for _, id := range ids {
		if _, ok := ops[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("%w: %s", ErrOperationNotFound, strings.Join(missing, ", "))
}

// IDs returns the sorted operation identifiers.
func (ops Operations) IDs() []string {
	out := make([]string, 0, len(ops))
	for id := range ops {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// DefaultOperations mirrors the embedded document. It lets callers skip the
// parse step when they target the stock backend.
func DefaultOperations() Operations {
	return Operations{
		OperationHome:          MustNewOperation(OperationHome, "GET", "/"),
		OperationCreateMessage: MustNewOperation(OperationCreateMessage, "POST", "/message"),
		OperationGetMessage:    MustNewOperation(OperationGetMessage, "GET", "/message/{name}"),
	}
}

func templateParams(path string) []string {
	var out []string
	for {
		start := strings.IndexByte(path, '{')
		if start < 0 {
			return out
		}
		end := strings.IndexByte(path[start:], '}')
		if end < 0 {
			return out
		}
		if name := path[start+1 : start+end]; name != "" {
			out = append(out, name)
		}
		path = path[start+end+1:]
	}
}
