package config

import (
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// NavLink is one entry of the top navigation bar.
type NavLink struct {
	Text string `yaml:"text" json:"text"`
	Link string `yaml:"link" json:"link"`
}

// SidebarEntry references one content page. In the source it is either a
// plain path string or a [path, title] pair.
type SidebarEntry struct {
	Path  string
	Title string
}

func (e *SidebarEntry) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		var s string
		if err := n.Decode(&s); err != nil {
			return err
		}
		*e = SidebarEntry{Path: s}
		return nil
	case yaml.SequenceNode:
		var pair []string
		if err := n.Decode(&pair); err != nil {
			return err
		}
		return e.fromPair(pair, n.Line)
	default:
		return fmt.Errorf("line %d: sidebar entry must be a path or a [path, title] pair", n.Line)
	}
}

func (e *SidebarEntry) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case string:
		*e = SidebarEntry{Path: t}
		return nil
	case []any:
		pair := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("sidebar entry %s: pair items must be strings", data)
			}
			pair = append(pair, s)
		}
		return e.fromPair(pair, 0)
	default:
		return fmt.Errorf("sidebar entry %s: must be a path or a [path, title] pair", data)
	}
}

func (e *SidebarEntry) fromPair(pair []string, line int) error {
	if len(pair) != 2 {
		if line > 0 {
			return fmt.Errorf("line %d: sidebar pair must have exactly 2 items, got %d", line, len(pair))
		}
		return fmt.Errorf("sidebar pair must have exactly 2 items, got %d", len(pair))
	}
	*e = SidebarEntry{Path: pair[0], Title: pair[1]}
	return nil
}

func (e SidebarEntry) MarshalYAML() (any, error) {
	if e.Title == "" {
		return e.Path, nil
	}
	return []string{e.Path, e.Title}, nil
}

func (e SidebarEntry) MarshalJSON() ([]byte, error) {
	if e.Title == "" {
		return json.Marshal(e.Path)
	}
	return json.Marshal([]string{e.Path, e.Title})
}
