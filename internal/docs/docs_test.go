package docs

import (
	"strings"
	"testing"

	"github.com/syaning/bookcfg/internal/config"
)

func TestAll_ReturnsTopics(t *testing.T) {
	topics := All()
	if len(topics) == 0 {
		t.Fatal("All() returned no topics")
	}
	if topics[0].Name != "quickstart" {
		t.Errorf("first topic = %q, want %q", topics[0].Name, "quickstart")
	}
}

func TestAll_NoDuplicateNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, topic := range All() {
		if seen[topic.Name] {
			t.Errorf("duplicate topic name: %q", topic.Name)
		}
		seen[topic.Name] = true
	}
}

func TestAll_AllFieldsPopulated(t *testing.T) {
	for _, topic := range All() {
		if topic.Name == "" {
			t.Error("topic has empty Name")
		}
		if topic.Title == "" {
			t.Errorf("topic %q has empty Title", topic.Name)
		}
		if topic.Summary == "" {
			t.Errorf("topic %q has empty Summary", topic.Name)
		}
		if topic.Content == "" {
			t.Errorf("topic %q has empty Content", topic.Name)
		}
	}
}

func TestGet_Found(t *testing.T) {
	topic, err := Get("quickstart")
	if err != nil {
		t.Fatalf("Get(quickstart) error: %v", err)
	}
	if topic.Name != "quickstart" {
		t.Errorf("Name = %q, want %q", topic.Name, "quickstart")
	}
}

func TestGet_NotFound(t *testing.T) {
	_, err := Get("nonexistent")
	if err == nil {
		t.Fatal("Get(nonexistent) should return error")
	}
}

func TestGet_NotFoundHint(t *testing.T) {
	_, err := Get("phases")
	if err == nil || !strings.Contains(err.Error(), "bookcfg docs") {
		t.Fatalf("expected hint to list topics, got %v", err)
	}
}

// The format example must stay loadable.
func TestFormatExample_Loads(t *testing.T) {
	topic, err := Get("format")
	if err != nil {
		t.Fatal(err)
	}
	start := strings.Index(topic.Content, "    module.exports")
	if start < 0 {
		t.Fatal("format topic has no example")
	}
	var lines []string
	for _, line := range strings.Split(topic.Content[start:], "\n") {
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, strings.TrimPrefix(line, "    "))
	}
	m, err := config.Parse([]byte(strings.Join(lines, "\n")), config.FormatJS)
	if err != nil {
		t.Fatalf("example does not load: %v", err)
	}
	if m.Base() != "/go-pkgs/" || len(m.SidebarPaths()) != 3 {
		t.Fatalf("unexpected manifest: base %q sidebar %v", m.Base(), m.SidebarPaths())
	}
}
