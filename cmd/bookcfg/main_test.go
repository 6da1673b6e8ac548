package main

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestFindSource_DocsLayoutFromSubdir(t *testing.T) {
	root := t.TempDir()
	want := filepath.Join(root, "docs", ".vuepress", "config.js")
	touch(t, want)
	sub := filepath.Join(root, "docs", "errors")
	os.MkdirAll(sub, 0755)

	got, err := findSource(sub)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("findSource = %q, want %q", got, want)
	}
}

func TestFindSource_PrefersJS(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, ".vuepress", "config.yaml"))
	touch(t, filepath.Join(root, ".vuepress", "config.js"))

	got, err := findSource(root)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(got) != "config.js" {
		t.Fatalf("findSource = %q, want config.js", got)
	}
}

func TestFindSource_NotFound(t *testing.T) {
	if _, err := findSource(t.TempDir()); err == nil {
		t.Fatal("expected error when no manifest exists")
	}
}

func TestWithin(t *testing.T) {
	root := t.TempDir()
	if !within(filepath.Join(root, ".vuepress"), root) {
		t.Error(".vuepress should be within the content root")
	}
	if within(filepath.Dir(root), root) {
		t.Error("parent should not be within the content root")
	}
	if !within(root, root) {
		t.Error("root should be within itself")
	}
}

func TestSamePath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	abs := filepath.Join(dir, "docs", ".vuepress", "config.js")
	if !samePath(filepath.Join("docs", ".vuepress", "config.js"), abs) {
		t.Error("relative and absolute spellings of the source should match")
	}
	if !samePath("./docs/../docs/.vuepress/config.js", abs) {
		t.Error("uncleaned relative path should match")
	}
	if samePath(filepath.Join("docs", ".vuepress", "config.yaml"), abs) {
		t.Error("different files should not match")
	}
}
