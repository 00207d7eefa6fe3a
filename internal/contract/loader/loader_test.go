package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-msgform/pkg/contract"
)

func TestLoader_EmbeddedDefault(t *testing.T) {
	l := New(contract.NewLoaderOptions())

	doc, err := l.Load(context.Background(), contract.SourceFromFS(contract.DefaultDocumentName))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !strings.Contains(string(doc.Raw()), "createMessage") {
		t.Fatalf("embedded document missing createMessage operation")
	}
}

func TestLoader_FileAndFS(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "api.yaml")
	if err := os.WriteFile(path, []byte("openapi: 3.0.3\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := New(contract.NewLoaderOptions(contract.WithFileSystem(fstest.MapFS{
		"api.yaml": {Data: []byte("openapi: 3.0.3\n")},
	})))

	if _, err := l.Load(context.Background(), contract.SourceFromFile(path)); err != nil {
		t.Fatalf("load file: %v", err)
	}
	if _, err := l.Load(context.Background(), contract.SourceFromFS("api.yaml")); err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if _, err := l.Load(context.Background(), contract.SourceFromFS("missing.yaml")); err == nil {
		t.Fatalf("expected error for missing fs entry")
	}
}

func TestLoader_HTTPRequiresOptIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("openapi: 3.0.3\n"))
	}))
	defer srv.Close()

	src, err := contract.SourceFromURL(srv.URL + "/openapi.yaml")
	if err != nil {
		t.Fatalf("source: %v", err)
	}

	offline := New(contract.NewLoaderOptions())
	if _, err := offline.Load(context.Background(), src); err == nil {
		t.Fatalf("expected http loading to be disabled by default")
	}

	online := New(contract.NewLoaderOptions(contract.WithHTTPClient(srv.Client())))
	doc, err := online.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load url: %v", err)
	}
	if doc.Location() != srv.URL+"/openapi.yaml" {
		t.Fatalf("unexpected location %q", doc.Location())
	}
}
