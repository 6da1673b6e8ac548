package scaffold

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/spf13/afero"

	"github.com/syaning/bookcfg/internal/fsutil"
	"github.com/syaning/bookcfg/internal/ux"
)

// DefaultTitle is used when init is not given a title.
const DefaultTitle = "Go语言标准包解析"

const configTemplate = `module.exports = {
	title: %s,
	base: '/',
	themeConfig: {
		nav: [{
			text: 'GitHub',
			link: 'https://github.com/'
		}],
		sidebar: [
			'/',
			'/errors/'
		]
	}
}
`

const readmeTemplate = `# %s

A walk through the Go standard library, one package at a time.

Start with [errors](./errors/).
`

const errorsPage = `# errors

Package errors implements functions to manipulate errors.

` + "```go" + `
err := errors.New("something went wrong")
` + "```" + `
`

// Files lists what Init writes, relative to the target directory.
var Files = []string{
	filepath.Join("docs", ".vuepress", "config.js"),
	filepath.Join("docs", "README.md"),
	filepath.Join("docs", "errors", "README.md"),
}

// Init writes a minimal book under targetDir/docs whose manifest passes
// validation. It refuses to touch an existing docs/.vuepress directory.
func Init(fs afero.Fs, out io.Writer, targetDir, title string) error {
	if title == "" {
		title = DefaultTitle
	}
	vpDir := filepath.Join(targetDir, "docs", ".vuepress")
	if ok, err := afero.DirExists(fs, vpDir); err != nil {
		return err
	} else if ok {
		return fmt.Errorf("docs/.vuepress directory already exists in %s", targetDir)
	}

	bodies := []string{
		fmt.Sprintf(configTemplate, strconv.Quote(title)),
		fmt.Sprintf(readmeTemplate, title),
		errorsPage,
	}
	for i, rel := range Files {
		if err := fsutil.WriteNew(fs, filepath.Join(targetDir, rel), []byte(bodies[i]), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", rel, err)
		}
	}

	fmt.Fprintf(out, "\n%s%s✓ Initialized book in %s%s\n\n", ux.Bold, ux.Green, targetDir, ux.Reset)
	fmt.Fprintf(out, "  Created:\n")
	fmt.Fprintf(out, "    %s%s%s  site manifest\n", ux.Cyan, Files[0], ux.Reset)
	fmt.Fprintf(out, "    %s%s%s          home page\n", ux.Cyan, Files[1], ux.Reset)
	fmt.Fprintf(out, "    %s%s%s   first article\n\n", ux.Cyan, Files[2], ux.Reset)
	fmt.Fprintf(out, "  Next steps:\n")
	fmt.Fprintf(out, "    1. Add pages under %sdocs/%s and list them in the sidebar\n", ux.Cyan, ux.Reset)
	fmt.Fprintf(out, "    2. Run %sbookcfg check%s to validate\n\n", ux.Cyan, ux.Reset)
	return nil
}
