package contract

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// fileSource identifies on-disk contract documents.
type fileSource struct {
	path string
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Kind() SourceKind {
	return SourceKindFile
}

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

// fsSource references a path within an fs.FS.
type fsSource struct {
	name string
}

func (s fsSource) Location() string {
	return s.name
}

func (s fsSource) Kind() SourceKind {
	return SourceKindFS
}

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

// urlSource references an HTTP/HTTPS endpoint.
type urlSource struct {
	raw string
}

func (s urlSource) Location() string {
	return s.raw
}

func (s urlSource) Kind() SourceKind {
	return SourceKindURL
}

// SourceFromURL parses the supplied URL string and returns a Source.
func SourceFromURL(raw string) (Source, error) {
	if raw == "" {
		return nil, fmt.Errorf("contract: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		return nil, fmt.Errorf("contract: invalid URL %q: %w", raw, err)
	}
	return urlSource{raw: raw}, nil
}

// ResolveSource maps a user-supplied location onto a Source: http(s) URLs
// load remotely, anything else is treated as a file path. An empty location
// selects the embedded default document.
func ResolveSource(location string) (Source, error) {
	switch {
	case location == "":
		return SourceFromFS(DefaultDocumentName), nil
	case isURL(location):
		return SourceFromURL(location)
	default:
		return SourceFromFile(location), nil
	}
}

func isURL(value string) bool {
	u, err := url.Parse(value)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
