package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format is the syntax of a manifest source.
type Format string

const (
	FormatJS   Format = "js"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// DefaultBase is the base path used when the source declares none.
const DefaultBase = "/"

// FormatFromPath picks the source format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".cjs", ".mjs":
		return FormatJS, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", malformed("unsupported file extension %q (use .js, .yaml, .yml or .json)", filepath.Ext(path))
	}
}

// ParseFormat validates a format name given on the command line.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatJS, FormatYAML, FormatJSON:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (must be js, yaml, or json)", name)
	}
}

// Manifest is the site description handed to the site generator. It is
// built once by Load or New and never mutated; accessors return copies.
type Manifest struct {
	title       string
	description string
	base        string
	nav         []NavLink
	sidebar     []SidebarEntry
}

// New builds a manifest from already-decoded values.
func New(title, base string, nav []NavLink, sidebar []SidebarEntry) *Manifest {
	if base == "" {
		base = DefaultBase
	}
	return &Manifest{
		title:   title,
		base:    base,
		nav:     cloneOrNil(nav),
		sidebar: cloneOrNil(sidebar),
	}
}

// WithDescription returns a copy of m carrying the given description.
func (m *Manifest) WithDescription(desc string) *Manifest {
	c := *m
	c.description = desc
	return &c
}

func (m *Manifest) Title() string       { return m.title }
func (m *Manifest) Description() string { return m.description }
func (m *Manifest) Base() string        { return m.base }

// Nav returns the navigation links in declaration order.
func (m *Manifest) Nav() []NavLink { return cloneOrNil(m.nav) }

// Sidebar returns the sidebar entries in declaration order.
func (m *Manifest) Sidebar() []SidebarEntry { return cloneOrNil(m.sidebar) }

// SidebarPaths returns just the page paths of the sidebar, in order.
func (m *Manifest) SidebarPaths() []string {
	paths := make([]string, len(m.sidebar))
	for i, e := range m.sidebar {
		paths[i] = e.Path
	}
	return paths
}

// Equal reports whether two manifests describe the same site.
func (m *Manifest) Equal(o *Manifest) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.title != o.title || m.description != o.description || m.base != o.base {
		return false
	}
	if len(m.nav) != len(o.nav) || len(m.sidebar) != len(o.sidebar) {
		return false
	}
	for i := range m.nav {
		if m.nav[i] != o.nav[i] {
			return false
		}
	}
	for i := range m.sidebar {
		if m.sidebar[i] != o.sidebar[i] {
			return false
		}
	}
	return true
}

type rawTheme struct {
	Nav     []NavLink       `yaml:"nav" json:"nav"`
	Sidebar *[]SidebarEntry `yaml:"sidebar" json:"sidebar"`
}

type rawSource struct {
	Title       *string   `yaml:"title" json:"title"`
	Description string    `yaml:"description" json:"description"`
	Base        *string   `yaml:"base" json:"base"`
	ThemeConfig *rawTheme `yaml:"themeConfig" json:"themeConfig"`
}

// Load reads a manifest source file, picking the syntax from its extension.
func Load(path string) (*Manifest, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return Parse(data, format)
}

// Parse decodes a manifest source. It fails on the first structural error.
func Parse(data []byte, format Format) (*Manifest, error) {
	var raw rawSource
	switch format {
	case FormatJS:
		norm, err := normalizeJS(data)
		if err != nil {
			return nil, err
		}
		if err := decodeJS(norm, &raw); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := decodeYAML(data, &raw); err != nil {
			return nil, err
		}
	case FormatJSON:
		if len(bytes.TrimSpace(data)) == 0 {
			return nil, malformed("empty document")
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, malformed("%v", err)
		}
	default:
		return nil, malformed("unknown format %q", format)
	}
	return fromRaw(&raw)
}

func decodeYAML(data []byte, raw *rawSource) error {
	if err := yaml.Unmarshal(data, raw); err != nil {
		return malformed("%v", err)
	}
	return nil
}

func fromRaw(raw *rawSource) (*Manifest, error) {
	if raw.Title == nil {
		return nil, &FieldError{Field: "title"}
	}
	if raw.ThemeConfig == nil || raw.ThemeConfig.Sidebar == nil {
		return nil, &FieldError{Field: "themeConfig.sidebar"}
	}
	base := DefaultBase
	if raw.Base != nil {
		base = *raw.Base
	}
	m := New(*raw.Title, base, raw.ThemeConfig.Nav, *raw.ThemeConfig.Sidebar)
	m.description = raw.Description
	return m, nil
}

func cloneOrNil[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// DefaultContentRoot guesses where the pages live for a source file. A
// source inside a .vuepress directory belongs to the directory above it;
// otherwise pages sit next to the source.
func DefaultContentRoot(sourcePath string) string {
	dir := filepath.Dir(sourcePath)
	if filepath.Base(dir) == ".vuepress" {
		return filepath.Dir(dir)
	}
	return dir
}
