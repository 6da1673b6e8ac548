package ux

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"github.com/syaning/bookcfg/internal/config"
)

// ANSI color helpers
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

func timestamp() string {
	return time.Now().Format("15:04:05")
}

var kindLabels = map[config.IssueKind]string{
	config.KindDanglingSidebarReference: "missing page",
	config.KindDuplicateSidebarEntry:    "duplicate",
	config.KindInvalidNavLinkURL:        "bad nav link",
	config.KindInvalidBasePath:          "bad base",
	config.KindInvalidSidebarPath:       "bad sidebar path",
}

// KindLabel returns a short human label for an issue kind.
func KindLabel(k config.IssueKind) string {
	if l, ok := kindLabels[k]; ok {
		return l
	}
	return string(k)
}

// RenderReport prints every issue of a validation report followed by a
// one-line summary.
func RenderReport(w io.Writer, source string, m *config.Manifest, rep config.Report) {
	if rep.OK() {
		fmt.Fprintf(w, "%s✓ %s%s: %d sidebar entries, %d nav links, no issues\n",
			Green, source, Reset, len(m.SidebarPaths()), len(m.Nav()))
		return
	}
	for _, iss := range rep.Issues {
		fmt.Fprintf(w, "  %s✗ %-16s%s %s%s%s  %s\n",
			Red, KindLabel(iss.Kind), Reset, Bold, iss.Path, Reset, iss.Message)
	}
	noun := "issues"
	if len(rep.Issues) == 1 {
		noun = "issue"
	}
	fmt.Fprintf(w, "\n%s%s%d %s%s in %s\n", Bold, Red, len(rep.Issues), noun, Reset, source)
}

// Rechecking prints the header shown before a watch-mode re-run.
func Rechecking(w io.Writer, changed []string) {
	what := "changes"
	if len(changed) == 1 {
		what = filepath.Base(changed[0])
	}
	fmt.Fprintf(w, "\n%s[%s]%s %s↺ %s changed, re-checking%s\n",
		Dim, timestamp(), Reset, Yellow, what, Reset)
}

// LoadFailed prints a loader error in watch mode, where it must not exit.
func LoadFailed(w io.Writer, err error) {
	fmt.Fprintf(w, "  %s✗ %v%s\n", Red, err, Reset)
}

type jsonReport struct {
	ID          string         `json:"id"`
	Source      string         `json:"source"`
	ContentRoot string         `json:"content_root"`
	Title       string         `json:"title"`
	Base        string         `json:"base"`
	Sidebar     []string       `json:"sidebar"`
	OK          bool           `json:"ok"`
	Issues      []config.Issue `json:"issues"`
}

// WriteReportJSON writes a machine-readable report. id distinguishes runs
// when reports from several builds are collected together.
func WriteReportJSON(w io.Writer, id, source string, m *config.Manifest, rep config.Report) error {
	issues := []config.Issue(rep.Issues)
	if issues == nil {
		issues = []config.Issue{}
	}
	out := jsonReport{
		ID:          id,
		Source:      source,
		ContentRoot: rep.ContentRoot,
		Title:       m.Title(),
		Base:        m.Base(),
		Sidebar:     m.SidebarPaths(),
		OK:          rep.OK(),
		Issues:      issues,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
