package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with bookcfg",
		Content: topicQuickstart,
	},
	{
		Name:    "format",
		Title:   "Manifest Format",
		Summary: "Fields of the site manifest and accepted file types",
		Content: topicFormat,
	},
	{
		Name:    "sidebar",
		Title:   "Sidebar Entries",
		Summary: "How sidebar links map to markdown pages",
		Content: topicSidebar,
	},
	{
		Name:    "checks",
		Title:   "Validation Checks",
		Summary: "Every issue kind reported by 'bookcfg check'",
		Content: topicChecks,
	},
	{
		Name:    "settings",
		Title:   "Tool Settings",
		Summary: "bookcfg.yaml, BOOKCFG_* variables, and flags",
		Content: topicSettings,
	},
}

const topicQuickstart = `Quick Start
===========

1. Create a book skeleton:

    bookcfg init my-book

   This writes docs/.vuepress/config.js, docs/README.md and one
   article page.

2. Add a page and list it in the sidebar of config.js:

    sidebar: [
      '/',
      '/errors/',
      '/io/'
    ]

3. Check the manifest against the pages on disk:

    bookcfg check

   Every problem is listed at once; the exit status is non-zero when
   anything is wrong, so the command can gate a CI build.

4. See the resolved reading order:

    bookcfg show

5. Keep checking while you write:

    bookcfg check --watch
`

const topicFormat = `Manifest Format
===============

The manifest is the object exported by the site generator's config
file. bookcfg reads three syntaxes, chosen by file extension:

  .js .cjs .mjs   a JavaScript object literal, optionally wrapped in
                  'module.exports =' or 'export default'. Comments,
                  single quotes, and trailing commas are accepted.
                  A repeated key keeps its last value.
                  Expressions and template interpolation are not.
  .yaml .yml      the same structure as YAML
  .json           the same structure as JSON

Fields:

  title                 (required) display name of the site
  description           optional one-line description
  base                  URL prefix the site is served under; must start
                        and end with '/'. Default: '/'
  themeConfig.nav       list of {text, link} pairs for the top bar
  themeConfig.sidebar   (required) ordered list of pages

Example:

    module.exports = {
      title: 'Go语言标准包解析',
      base: '/go-pkgs/',
      themeConfig: {
        nav: [{ text: 'GitHub', link: 'https://github.com/syaning/go-pkgs' }],
        sidebar: ['/', '/errors/', '/io/']
      }
    }

'bookcfg convert --to yaml' rewrites a manifest in another syntax;
loading the converted file gives back the same manifest.
`

const topicSidebar = `Sidebar Entries
===============

Each sidebar entry is a page path, or a [path, title] pair when the
sidebar label should differ from the page heading:

    sidebar: [
      '/',
      ['/errors/', 'errors'],
      '/container/heap'
    ]

Order is kept exactly as written; it is the reading order of the book.

Paths are relative to the content root (the directory holding
.vuepress/), never to the base path:

  /                 README.md or index.md
  /errors/          errors/README.md or errors/index.md
  /container/heap   container/heap.md, else container/heap/README.md
                    or container/heap/index.md

A trailing '.html' or '.md' and any '#fragment' are ignored, so
'/io', '/io.html' and '/io#readers' name the same page and count as
duplicates. Absolute http(s) links are allowed and are not looked up
on disk.

The page title shown by 'bookcfg show' is the front-matter 'title', or
else the first '# ' heading of the page.
`

const topicChecks = `Validation Checks
=================

Loading stops at the first structural error:

  malformed config     the file is not a valid object literal, YAML, or
                       JSON, or a value has the wrong shape
  missing field        'title' or 'themeConfig.sidebar' is absent

Validation then reports every issue it finds:

  invalid_base_path            base does not start and end with '/'
  invalid_nav_link_url         a nav link is not an http(s)/mailto/tel URL
                               or a path starting with '/'
  invalid_sidebar_path         a sidebar path is empty or relative
  duplicate_sidebar_entry      a page is listed more than once
  dangling_sidebar_reference   no markdown file backs a sidebar path

'bookcfg check --json' prints the same report as JSON with a unique
report id, for collecting results from several builds.
`

const topicSettings = `Tool Settings
=============

bookcfg reads optional defaults from bookcfg.yaml in the working
directory:

    source: docs/.vuepress/config.js
    content_root: docs
    log_level: warn        # debug, info, warn, error
    log_format: pretty     # pretty or json
    output: text           # text or json

Each key can also be set with a BOOKCFG_ environment variable, for
example BOOKCFG_CONTENT_ROOT=site. Command-line flags win over both.

When no source is given, bookcfg looks for .vuepress/config.js (or
.yaml, .yml, .json), first directly and then under docs/, in the
working directory and each parent.
`
