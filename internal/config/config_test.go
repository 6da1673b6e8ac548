package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goPkgsConfig = `module.exports = {
	title: 'Go语言标准包解析',
	base: '/go-pkgs/',
	themeConfig: {
		nav: [{
			text: 'GitHub',
			link: 'https://github.com/syaning/go-pkgs'
		}],
		sidebar: [
			'/',
			'/errors/',
			'/io/',
			'/bufio/',
			'/container/heap',
			'/path/filepath',
			'/net/http',
			'/reflect/'
		]
	}
}`

func writeSource(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_VuePressModule(t *testing.T) {
	m, err := Load(writeSource(t, "config.js", goPkgsConfig))
	require.NoError(t, err)

	assert.Equal(t, "Go语言标准包解析", m.Title())
	assert.Equal(t, "/go-pkgs/", m.Base())
	assert.Equal(t, []NavLink{{Text: "GitHub", Link: "https://github.com/syaning/go-pkgs"}}, m.Nav())
	assert.Equal(t, []string{
		"/", "/errors/", "/io/", "/bufio/", "/container/heap", "/path/filepath", "/net/http", "/reflect/",
	}, m.SidebarPaths())
}

func TestLoad_PreservesSidebarOrder(t *testing.T) {
	src := `{title: 'x', themeConfig: {sidebar: ['/', '/errors/', '/io/']}}`
	m, err := Parse([]byte(src), FormatJS)
	require.NoError(t, err)
	assert.Equal(t, []string{"/", "/errors/", "/io/"}, m.SidebarPaths())

	src = `{title: 'x', themeConfig: {sidebar: ['/io/', '/', '/errors/']}}`
	m, err = Parse([]byte(src), FormatJS)
	require.NoError(t, err)
	assert.Equal(t, []string{"/io/", "/", "/errors/"}, m.SidebarPaths())
}

func TestLoad_YAML(t *testing.T) {
	src := `
title: Go Packages
base: /go-pkgs/
themeConfig:
  nav:
    - text: GitHub
      link: https://github.com/syaning/go-pkgs
  sidebar:
    - /
    - [/errors/, The errors package]
`
	m, err := Load(writeSource(t, "config.yaml", src))
	require.NoError(t, err)
	assert.Equal(t, "Go Packages", m.Title())
	assert.Equal(t, []SidebarEntry{
		{Path: "/"},
		{Path: "/errors/", Title: "The errors package"},
	}, m.Sidebar())
}

func TestLoad_JSON(t *testing.T) {
	src := `{
		"title": "Go Packages",
		"description": "notes on the standard library",
		"themeConfig": {
			"sidebar": ["/", ["/io/", "io"]]
		}
	}`
	m, err := Load(writeSource(t, "config.json", src))
	require.NoError(t, err)
	assert.Equal(t, "notes on the standard library", m.Description())
	assert.Equal(t, DefaultBase, m.Base())
	assert.Nil(t, m.Nav())
	assert.Equal(t, []SidebarEntry{{Path: "/"}, {Path: "/io/", Title: "io"}}, m.Sidebar())
}

func TestLoad_MissingTitle(t *testing.T) {
	for name, src := range map[string]string{
		"config.js":   `module.exports = { base: '/', themeConfig: { sidebar: ['/'] } }`,
		"config.yaml": "themeConfig:\n  sidebar: [/]\n",
		"config.json": `{"themeConfig": {"sidebar": ["/"]}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeSource(t, name, src))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMissingField)

			var fe *FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, "title", fe.Field)
		})
	}
}

func TestLoad_MissingSidebar(t *testing.T) {
	for _, src := range []string{
		`{title: 'x'}`,
		`{title: 'x', themeConfig: {nav: []}}`,
	} {
		_, err := Parse([]byte(src), FormatJS)
		var fe *FieldError
		require.True(t, errors.As(err, &fe), "src %s: got %v", src, err)
		assert.Equal(t, "themeConfig.sidebar", fe.Field)
	}
}

func TestLoad_EmptySidebarIsPresent(t *testing.T) {
	m, err := Parse([]byte(`{title: 'x', themeConfig: {sidebar: []}}`), FormatJS)
	require.NoError(t, err)
	assert.Empty(t, m.Sidebar())
}

func TestLoad_Malformed(t *testing.T) {
	cases := map[string]struct {
		src    string
		format Format
	}{
		"unclosed js":        {`module.exports = { title: 'x', themeConfig: { sidebar: ['/'] }`, FormatJS},
		"not an object":      {`module.exports = ['/']`, FormatJS},
		"unterminated str":   {"{ title: 'x\n }", FormatJS},
		"template literal":   {"{ title: `${name}`, themeConfig: { sidebar: [] } }", FormatJS},
		"bad yaml":           {"title: x\nthemeConfig: [unclosed\n", FormatYAML},
		"bad json":           {`{"title": "x",`, FormatJSON},
		"empty json":         {"  ", FormatJSON},
		"sidebar object":     {`{title: 'x', themeConfig: {sidebar: {'/': ['a']}}}`, FormatJS},
		"sidebar triple":     {`{title: 'x', themeConfig: {sidebar: [['/a', 'A', 'extra']]}}`, FormatJS},
		"json sidebar num":   {`{"title": "x", "themeConfig": {"sidebar": [1]}}`, FormatJSON},
		"duplicate yaml key": {"title: a\ntitle: b\nthemeConfig: {sidebar: []}\n", FormatYAML},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tc.src), tc.format)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedConfig)
		})
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	_, err := Load(writeSource(t, "config.toml", `title = "x"`))
	assert.ErrorIs(t, err, ErrMalformedConfig)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.js"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestManifest_AccessorsReturnCopies(t *testing.T) {
	m := New("x", "/", []NavLink{{Text: "a", Link: "/a"}}, []SidebarEntry{{Path: "/"}})
	m.Sidebar()[0].Path = "/changed/"
	m.Nav()[0].Link = "/changed"
	assert.Equal(t, "/", m.Sidebar()[0].Path)
	assert.Equal(t, "/a", m.Nav()[0].Link)
}

func TestEncode_RoundTrip(t *testing.T) {
	orig, err := Parse([]byte(goPkgsConfig), FormatJS)
	require.NoError(t, err)
	orig = orig.WithDescription(`quotes " and 'apostrophes' and <tags>`)

	for _, f := range []Format{FormatJS, FormatYAML, FormatJSON} {
		t.Run(string(f), func(t *testing.T) {
			data, err := Encode(orig, f)
			require.NoError(t, err)
			again, err := Parse(data, f)
			require.NoError(t, err, "encoded:\n%s", data)
			assert.True(t, orig.Equal(again), "encoded:\n%s", data)
		})
	}
}

func TestEncode_EmptySidebarStillLoads(t *testing.T) {
	m := New("x", "/", nil, nil)
	for _, f := range []Format{FormatJS, FormatYAML, FormatJSON} {
		data, err := Encode(m, f)
		require.NoError(t, err)
		_, err = Parse(data, f)
		assert.NoError(t, err, "format %s", f)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"js": FormatJS, "YAML": FormatYAML, "yml": FormatYAML, "json": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("toml")
	assert.Error(t, err)
}

func TestDefaultContentRoot(t *testing.T) {
	assert.Equal(t, filepath.Join("site", "docs"), DefaultContentRoot(filepath.Join("site", "docs", ".vuepress", "config.js")))
	assert.Equal(t, filepath.Join("site", "docs"), DefaultContentRoot(filepath.Join("site", "docs", "config.yaml")))
}
