package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/afero"

	"github.com/syaning/bookcfg/internal/content"
)

// IssueKind classifies a validation issue.
type IssueKind string

const (
	KindDanglingSidebarReference IssueKind = "dangling_sidebar_reference"
	KindDuplicateSidebarEntry    IssueKind = "duplicate_sidebar_entry"
	KindInvalidNavLinkURL        IssueKind = "invalid_nav_link_url"
	KindInvalidBasePath          IssueKind = "invalid_base_path"
	KindInvalidSidebarPath       IssueKind = "invalid_sidebar_path"
)

// Issue is one problem found in a loaded manifest.
type Issue struct {
	Kind    IssueKind `json:"kind"`
	Path    string    `json:"path"`
	Message string    `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %q: %s", i.Kind, i.Path, i.Message)
}

// Issues implements error so a report can be returned up a call chain.
type Issues []Issue

func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	var b strings.Builder
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s at %s", iss[i].Kind, iss[i].Path)
	}
	if len(iss) > lim {
		fmt.Fprintf(&b, "; ... (total %d)", len(iss))
	}
	return b.String()
}

// Report is the outcome of validating one manifest. Issues appear in the
// order they were found: base path, nav links, then sidebar entries.
type Report struct {
	ContentRoot string
	Issues      Issues
}

// OK reports whether no issues were found.
func (r Report) OK() bool { return len(r.Issues) == 0 }

// Err returns the issues as an error, or nil when there are none.
func (r Report) Err() error {
	if r.OK() {
		return nil
	}
	return r.Issues
}

// ByKind groups the issues by kind.
func (r Report) ByKind() map[IssueKind]Issues {
	out := make(map[IssueKind]Issues)
	for _, iss := range r.Issues {
		out[iss.Kind] = append(out[iss.Kind], iss)
	}
	return out
}

// Validator checks manifests against a content tree.
type Validator struct {
	resolver *content.Resolver
}

// NewValidator returns a validator resolving sidebar pages in fs below
// contentRoot.
func NewValidator(fs afero.Fs, contentRoot string) *Validator {
	return &Validator{resolver: content.NewResolver(fs, contentRoot)}
}

// Validate checks m against the content tree on disk under contentRoot.
func Validate(m *Manifest, contentRoot string) Report {
	return NewValidator(afero.NewOsFs(), contentRoot).Validate(m)
}

// Validate collects every issue in m. It never stops at the first one.
func (v *Validator) Validate(m *Manifest) Report {
	rep := Report{ContentRoot: v.resolver.Root()}
	add := func(kind IssueKind, path, format string, args ...any) {
		rep.Issues = append(rep.Issues, Issue{Kind: kind, Path: path, Message: fmt.Sprintf(format, args...)})
	}

	if !strings.HasPrefix(m.base, "/") || !strings.HasSuffix(m.base, "/") {
		add(KindInvalidBasePath, m.base, "base must start and end with '/'")
	}

	for i, l := range m.nav {
		if err := checkLink(l.Link); err != nil {
			add(KindInvalidNavLinkURL, l.Link, "nav %d (%q): %v", i+1, l.Text, err)
		}
	}

	seen := make(map[string]int)
	for i, e := range m.sidebar {
		if content.IsExternal(e.Path) {
			if err := checkLink(e.Path); err != nil {
				add(KindInvalidSidebarPath, e.Path, "sidebar %d: %v", i+1, err)
			}
			continue
		}
		if !strings.HasPrefix(e.Path, "/") {
			add(KindInvalidSidebarPath, e.Path, "sidebar %d: path must start with '/'", i+1)
			continue
		}
		key := content.Normalize(e.Path)
		if first, dup := seen[key]; dup {
			add(KindDuplicateSidebarEntry, e.Path, "sidebar %d repeats entry %d", i+1, first)
			continue
		}
		seen[key] = i + 1
		if _, err := v.resolver.Resolve(e.Path); err != nil {
			add(KindDanglingSidebarReference, e.Path, "sidebar %d: no page found (tried %s)",
				i+1, strings.Join(content.Candidates(e.Path), ", "))
		}
	}

	return rep
}

// checkLink accepts absolute http(s), mailto and tel URLs and internal paths.
func checkLink(link string) error {
	if strings.TrimSpace(link) == "" {
		return fmt.Errorf("link is empty")
	}
	if strings.HasPrefix(link, "//") {
		return fmt.Errorf("protocol-relative URLs are not allowed")
	}
	u, err := url.Parse(link)
	if err != nil {
		return err
	}
	if strings.HasPrefix(link, "/") {
		return nil
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		if u.Host == "" {
			return fmt.Errorf("URL has no host")
		}
	case "mailto", "tel":
		if u.Opaque == "" {
			return fmt.Errorf("%s URL has no target", u.Scheme)
		}
	case "":
		return fmt.Errorf("not an absolute URL or a path starting with '/'")
	default:
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	return nil
}
