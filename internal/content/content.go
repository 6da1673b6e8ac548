// Package content maps sidebar links onto the markdown pages that back them,
// following the VuePress directory conventions.
package content

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no page backs a link.
var ErrNotFound = errors.New("content not found")

// indexFiles are tried, in order, for links that name a directory.
var indexFiles = []string{"README.md", "index.md"}

// Resolver looks up pages under a content root.
type Resolver struct {
	fs   afero.Fs
	root string
}

// NewResolver returns a resolver reading from fs below root.
func NewResolver(fs afero.Fs, root string) *Resolver {
	return &Resolver{fs: fs, root: root}
}

// Root returns the content root directory.
func (r *Resolver) Root() string {
	return r.root
}

// IsExternal reports whether link points outside the site.
func IsExternal(link string) bool {
	l := strings.ToLower(link)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://") ||
		strings.HasPrefix(l, "mailto:") || strings.HasPrefix(l, "tel:")
}

// Normalize reduces a link to the page it names: fragments and queries are
// dropped, .html and .md suffixes are removed, and dot segments are cleaned.
// A trailing slash is kept since "/io/" and "/io" name different pages.
func Normalize(link string) string {
	if i := strings.IndexAny(link, "#?"); i >= 0 {
		link = link[:i]
	}
	if link == "" {
		return ""
	}
	dir := strings.HasSuffix(link, "/")
	if !dir {
		link = strings.TrimSuffix(link, ".html")
		link = strings.TrimSuffix(link, ".md")
		if base := path.Base(link); base == "README" || base == "index" {
			link = path.Dir(link)
			dir = true
		}
	}
	clean := path.Clean("/" + link)
	if dir && clean != "/" {
		clean += "/"
	}
	return clean
}

// Candidates lists the content files, relative to the root and in lookup
// order, that may back link.
func Candidates(link string) []string {
	n := Normalize(link)
	if n == "" {
		return nil
	}
	rel := strings.TrimPrefix(n, "/")
	if strings.HasSuffix(n, "/") {
		out := make([]string, 0, len(indexFiles))
		for _, f := range indexFiles {
			out = append(out, rel+f)
		}
		return out
	}
	out := []string{rel + ".md"}
	for _, f := range indexFiles {
		out = append(out, rel+"/"+f)
	}
	return out
}

// Resolve returns the root-relative path of the page backing link.
func (r *Resolver) Resolve(link string) (string, error) {
	for _, rel := range Candidates(link) {
		info, err := r.fs.Stat(filepath.Join(r.root, filepath.FromSlash(rel)))
		if err == nil && !info.IsDir() {
			return rel, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, link)
}

type frontMatter struct {
	Title string `yaml:"title"`
}

// Title returns the page title of a root-relative content file: the
// front-matter title if present, else the first level-one heading.
// An empty string means the page declares no title.
func (r *Resolver) Title(rel string) (string, error) {
	data, err := afero.ReadFile(r.fs, filepath.Join(r.root, filepath.FromSlash(rel)))
	if err != nil {
		return "", err
	}
	body := data
	if fm, rest, ok := splitFrontMatter(data); ok {
		var meta frontMatter
		if err := yaml.Unmarshal(fm, &meta); err == nil && meta.Title != "" {
			return meta.Title, nil
		}
		body = rest
	}
	sc := bufio.NewScanner(bytes.NewReader(body))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# ")), nil
		}
	}
	return "", sc.Err()
}

func splitFrontMatter(data []byte) (fm, rest []byte, ok bool) {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(data, []byte("---\n")) {
		return nil, data, false
	}
	body := data[4:]
	end := bytes.Index(body, []byte("\n---"))
	if end < 0 {
		return nil, data, false
	}
	rest = body[end+4:]
	if i := bytes.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[i+1:]
	} else {
		rest = nil
	}
	return body[:end], rest, true
}
