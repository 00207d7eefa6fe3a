package msgform_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-msgform/pkg/contract"
)

func writeContract(t *testing.T, content string) contract.Source {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contract.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write contract: %v", err)
	}
	return contract.SourceFromFile(path)
}
