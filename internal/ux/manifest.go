package ux

import (
	"fmt"
	"io"

	"github.com/syaning/bookcfg/internal/config"
	"github.com/syaning/bookcfg/internal/content"
)

// RenderManifest prints the site header, nav links and the sidebar in
// reading order with the page that backs each entry.
func RenderManifest(w io.Writer, m *config.Manifest, r *content.Resolver) {
	fmt.Fprintf(w, "%sTitle:%s   %s\n", Bold, Reset, m.Title())
	if m.Description() != "" {
		fmt.Fprintf(w, "%sAbout:%s   %s\n", Bold, Reset, m.Description())
	}
	fmt.Fprintf(w, "%sBase:%s    %s\n", Bold, Reset, m.Base())

	if nav := m.Nav(); len(nav) > 0 {
		fmt.Fprintf(w, "\n%sNav:%s\n", Bold, Reset)
		for _, l := range nav {
			fmt.Fprintf(w, "  %-20s %s%s%s\n", l.Text, Cyan, l.Link, Reset)
		}
	}

	sidebar := m.Sidebar()
	fmt.Fprintf(w, "\n%sSidebar:%s\n", Bold, Reset)
	if len(sidebar) == 0 {
		fmt.Fprintf(w, "  %s(empty)%s\n", Dim, Reset)
	}
	for i, e := range sidebar {
		title := e.Title
		if content.IsExternal(e.Path) {
			fmt.Fprintf(w, "  %s%2d%s  %-24s %sexternal%s  %s\n", Dim, i+1, Reset, e.Path, Cyan, Reset, title)
			continue
		}
		file, err := r.Resolve(e.Path)
		if err != nil {
			fmt.Fprintf(w, "  %s%2d%s  %-24s %smissing%s\n", Dim, i+1, Reset, e.Path, Red, Reset)
			continue
		}
		if title == "" {
			title, _ = r.Title(file)
		}
		fmt.Fprintf(w, "  %s%2d%s  %-24s %s%s%s  %s\n", Dim, i+1, Reset, e.Path, Dim, file, Reset, title)
	}
	fmt.Fprintln(w)
}
