package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestWriteFileAtomic_Basic(t *testing.T) {
	fs := afero.NewOsFs()
	path := filepath.Join(t.TempDir(), "config.js")

	if err := WriteFileAtomic(fs, path, []byte(`module.exports = {}`), 0644); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `module.exports = {}` {
		t.Fatalf("got %q", string(data))
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("temp file should not exist after atomic write")
	}
}

func TestWriteFileAtomic_OverwriteExisting(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/docs/.vuepress/config.yaml"

	if err := afero.WriteFile(fs, path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(fs, path, []byte("new"), 0644); err != nil {
		t.Fatal(err)
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new" {
		t.Fatalf("got %q, want %q", string(data), "new")
	}
}

func TestWriteFileAtomic_CreatesParents(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := WriteFileAtomic(fs, "/a/b/c.md", []byte("# c"), 0644); err != nil {
		t.Fatal(err)
	}
	if ok, _ := afero.Exists(fs, "/a/b/c.md"); !ok {
		t.Fatal("file not written")
	}
}

func TestWriteNew_RefusesExisting(t *testing.T) {
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "/README.md", []byte("keep"), 0644)

	err := WriteNew(fs, "/README.md", []byte("replace"), 0644)
	if !errors.Is(err, os.ErrExist) {
		t.Fatalf("got %v, want ErrExist", err)
	}
	data, _ := afero.ReadFile(fs, "/README.md")
	if string(data) != "keep" {
		t.Fatalf("existing file was modified: %q", data)
	}
}
