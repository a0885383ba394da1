// Package checktest materializes fixture repositories for rule tests from
// txtar archives, keeping each test's repository layout readable inline.
package checktest

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/tools/txtar"
)

// Repo writes the txtar archive into a fresh temp directory and returns its
// root. File paths in the archive are slash separated and relative.
func Repo(t *testing.T, archive string) string {
	t.Helper()
	root := t.TempDir()
	Write(t, root, archive)
	return root
}

// Write materializes the txtar archive under an existing root.
func Write(t *testing.T, root, archive string) {
	t.Helper()
	parsed := txtar.Parse([]byte(archive))
	for _, file := range parsed.Files {
		location := filepath.Join(root, filepath.FromSlash(file.Name))
		if err := os.MkdirAll(filepath.Dir(location), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", file.Name, err)
		}
		if err := os.WriteFile(location, file.Data, 0o644); err != nil {
			t.Fatalf("write %s: %v", file.Name, err)
		}
	}
}
