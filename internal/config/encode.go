package config

import (
	"bytes"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

type encodedTheme struct {
	Nav     []NavLink      `yaml:"nav,omitempty" json:"nav,omitempty"`
	Sidebar []SidebarEntry `yaml:"sidebar" json:"sidebar"`
}

type encodedSource struct {
	Title       string       `yaml:"title" json:"title"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	Base        string       `yaml:"base" json:"base"`
	ThemeConfig encodedTheme `yaml:"themeConfig" json:"themeConfig"`
}

// Encode serializes m in the given format. Parsing the result yields a
// manifest equal to m.
func Encode(m *Manifest, format Format) ([]byte, error) {
	src := encodedSource{
		Title:       m.title,
		Description: m.description,
		Base:        m.base,
		ThemeConfig: encodedTheme{
			Nav:     m.nav,
			Sidebar: m.sidebar,
		},
	}
	// An absent sidebar fails to load, so always write the key.
	if src.ThemeConfig.Sidebar == nil {
		src.ThemeConfig.Sidebar = []SidebarEntry{}
	}

	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(src); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(src, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatJS:
		data, err := json.MarshalIndent(src, "", "\t")
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		buf.WriteString("module.exports = ")
		buf.Write(data)
		buf.WriteString("\n")
		return buf.Bytes(), nil
	default:
		return nil, malformed("unknown format %q", format)
	}
}
