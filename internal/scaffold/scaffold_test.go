package scaffold

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/syaning/bookcfg/internal/config"
)

func TestInit_CreatesFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	var out bytes.Buffer
	if err := Init(fs, &out, "/book", ""); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	for _, rel := range Files {
		data, err := afero.ReadFile(fs, filepath.Join("/book", rel))
		if err != nil {
			t.Fatalf("%s not created: %v", rel, err)
		}
		if len(data) == 0 {
			t.Fatalf("%s is empty", rel)
		}
	}
	if !strings.Contains(out.String(), "bookcfg check") {
		t.Fatalf("missing next steps in output: %q", out.String())
	}
}

func TestInit_GeneratedManifestIsValid(t *testing.T) {
	dir := t.TempDir()
	if err := Init(afero.NewOsFs(), &bytes.Buffer{}, dir, `My "quoted" book`); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	source := filepath.Join(dir, "docs", ".vuepress", "config.js")
	m, err := config.Load(source)
	if err != nil {
		t.Fatalf("config.Load failed on generated manifest: %v", err)
	}
	if m.Title() != `My "quoted" book` {
		t.Fatalf("Title = %q", m.Title())
	}

	rep := config.Validate(m, config.DefaultContentRoot(source))
	if !rep.OK() {
		t.Fatalf("generated book has issues: %v", rep.Issues)
	}
}

func TestInit_FailsIfVuepressExists(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "docs", ".vuepress"), 0755); err != nil {
		t.Fatal(err)
	}

	err := Init(afero.NewOsFs(), &bytes.Buffer{}, dir, "")
	if err == nil {
		t.Fatal("expected error when docs/.vuepress already exists")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected error containing 'already exists', got: %s", err)
	}
}

func TestInit_KeepsExistingPages(t *testing.T) {
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "/book/docs/README.md", []byte("mine"), 0644)

	err := Init(fs, &bytes.Buffer{}, "/book", "")
	if err == nil {
		t.Fatal("expected error when a page already exists")
	}
	data, _ := afero.ReadFile(fs, "/book/docs/README.md")
	if string(data) != "mine" {
		t.Fatalf("existing page overwritten: %q", data)
	}
}
