package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// DocsSubdir is where the second copy of the reference document lives.
var DocsSubdir = filepath.Join("docs", "source")

// TempRepo creates a temporary repository root containing the docs tree the
// generator writes into, and returns the root.
func TempRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, DocsSubdir), 0755); err != nil {
		t.Fatalf("create docs tree: %v", err)
	}
	return root
}

// ReadFile returns the content of path, failing the test if it cannot be read.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
