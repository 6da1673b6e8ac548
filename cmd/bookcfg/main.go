package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	cli "github.com/urfave/cli/v3"

	"github.com/syaning/bookcfg/internal/config"
	"github.com/syaning/bookcfg/internal/content"
	"github.com/syaning/bookcfg/internal/docs"
	"github.com/syaning/bookcfg/internal/fsutil"
	"github.com/syaning/bookcfg/internal/logging"
	"github.com/syaning/bookcfg/internal/scaffold"
	"github.com/syaning/bookcfg/internal/settings"
	"github.com/syaning/bookcfg/internal/ux"
	"github.com/syaning/bookcfg/internal/watch"
)

// errIssues makes check exit non-zero after the report is already printed.
var errIssues = errors.New("validation issues found")

func main() {
	app := &cli.Command{
		Name:        "bookcfg",
		Usage:       "Load and check the site manifest of a VuePress book",
		Description: "Run 'bookcfg docs' for documentation on the manifest format, sidebar paths, and checks.",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Enable debug logging"},
			&cli.StringFlag{Name: "log-level", Usage: "Log level (debug, info, warn, error)"},
		},
		Commands: []*cli.Command{
			checkCmd(),
			showCmd(),
			convertCmd(),
			initCmd(),
			docsCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if !errors.Is(err, errIssues) {
			fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
		}
		os.Exit(1)
	}
}

// env is the per-invocation context shared by the manifest commands.
type env struct {
	settings *settings.Settings
	log      zerolog.Logger
	source   string
	root     string
}

func setup(cmd *cli.Command) (*env, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	s, err := settings.Load(cwd)
	if err != nil {
		return nil, err
	}
	level := s.LogLevel
	if cmd.IsSet("log-level") {
		level = cmd.String("log-level")
	}
	log := logging.New(logging.Options{Level: level, Format: s.LogFormat, Verbose: cmd.Bool("verbose")})

	source := cmd.Args().First()
	if source == "" {
		source = s.Source
	}
	if source == "" {
		source, err = findSource(cwd)
		if err != nil {
			return nil, err
		}
	}

	root := s.ContentRoot
	if cmd.IsSet("content-root") {
		root = cmd.String("content-root")
	}
	if root == "" {
		root = config.DefaultContentRoot(source)
	}

	log.Debug().Str("source", source).Str("content_root", root).Msg("resolved paths")
	return &env{settings: s, log: log, source: source, root: root}, nil
}

func contentRootFlag() cli.Flag {
	return &cli.StringFlag{Name: "content-root", Usage: "Directory holding the markdown pages (default: parent of .vuepress)"}
}

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Load the manifest and check it against the content tree",
		ArgsUsage: "[source]",
		Flags: []cli.Flag{
			contentRootFlag(),
			&cli.BoolFlag{Name: "json", Usage: "Print the report as JSON"},
			&cli.BoolFlag{Name: "watch", Usage: "Re-check whenever the manifest or pages change"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			asJSON := e.settings.Output == "json"
			if cmd.IsSet("json") {
				asJSON = cmd.Bool("json")
			}

			if !cmd.Bool("watch") {
				m, err := config.Load(e.source)
				if err != nil {
					return fmt.Errorf("loading manifest: %w", err)
				}
				return e.report(m, asJSON)
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			recheck := func() {
				m, err := config.Load(e.source)
				if err != nil {
					ux.LoadFailed(os.Stdout, err)
					return
				}
				if err := e.report(m, asJSON); err != nil && !errors.Is(err, errIssues) {
					ux.LoadFailed(os.Stdout, err)
				}
			}
			recheck()

			w := &watch.Watcher{
				Debounce: watch.DefaultDebounce,
				Log:      e.log,
				OnChange: func(changed []string) {
					ux.Rechecking(os.Stdout, changed)
					recheck()
				},
			}
			dirs := []string{e.root}
			if srcDir := filepath.Dir(e.source); !within(srcDir, e.root) {
				dirs = append(dirs, srcDir)
			}
			return w.Run(ctx, dirs...)
		},
	}
}

func (e *env) report(m *config.Manifest, asJSON bool) error {
	rep := config.Validate(m, e.root)
	e.log.Debug().Int("issues", len(rep.Issues)).Msg("validated")
	if asJSON {
		if err := ux.WriteReportJSON(os.Stdout, uuid.NewString(), e.source, m, rep); err != nil {
			return err
		}
	} else {
		ux.RenderReport(os.Stdout, e.source, m, rep)
	}
	if !rep.OK() {
		return errIssues
	}
	return nil
}

func showCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print the manifest with each sidebar entry resolved to its page",
		ArgsUsage: "[source]",
		Flags:     []cli.Flag{contentRootFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			m, err := config.Load(e.source)
			if err != nil {
				return fmt.Errorf("loading manifest: %w", err)
			}
			ux.RenderManifest(os.Stdout, m, content.NewResolver(afero.NewOsFs(), e.root))
			return nil
		},
	}
}

func convertCmd() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Rewrite the manifest as JavaScript, YAML, or JSON",
		ArgsUsage: "[source]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "to", Usage: "Target format: js, yaml, or json", Required: true},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Write to this file instead of stdout"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			format, err := config.ParseFormat(cmd.String("to"))
			if err != nil {
				return err
			}
			m, err := config.Load(e.source)
			if err != nil {
				return fmt.Errorf("loading manifest: %w", err)
			}
			data, err := config.Encode(m, format)
			if err != nil {
				return err
			}

			out := cmd.String("output")
			if out == "" {
				_, err := os.Stdout.Write(data)
				return err
			}
			if samePath(out, e.source) {
				return fmt.Errorf("refusing to overwrite the source manifest %s", e.source)
			}
			if err := fsutil.WriteFileAtomic(afero.NewOsFs(), out, data, 0644); err != nil {
				return err
			}
			e.log.Info().Str("output", out).Str("format", string(format)).Msg("converted")
			fmt.Printf("%s✓%s wrote %s\n", ux.Green, ux.Reset, out)
			return nil
		},
	}
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Create a minimal book with docs/.vuepress/config.js",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Usage: "Site title", Value: scaffold.DefaultTitle},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.Args().First()
			if dir == "" {
				var err error
				if dir, err = os.Getwd(); err != nil {
					return err
				}
			}
			return scaffold.Init(afero.NewOsFs(), os.Stdout, dir, cmd.String("title"))
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				fmt.Print("\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Printf("  %-14s %s\n", t.Name, t.Summary)
				}
				fmt.Println("\nRun 'bookcfg docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Print(t.Content)
			return nil
		},
	}
}

// sourceNames are tried in order inside each .vuepress directory.
var sourceNames = []string{"config.js", "config.yaml", "config.yml", "config.json"}

// findSource walks up from dir looking for .vuepress/config.* directly or
// under docs/.
func findSource(dir string) (string, error) {
	for {
		for _, sub := range []string{".vuepress", filepath.Join("docs", ".vuepress")} {
			for _, name := range sourceNames {
				p := filepath.Join(dir, sub, name)
				if info, err := os.Stat(p); err == nil && !info.IsDir() {
					return p, nil
				}
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no .vuepress/config.js found (searched from cwd to root)")
		}
		dir = parent
	}
}

func within(path, root string) bool {
	rel, err := filepath.Rel(mustAbs(root), mustAbs(path))
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func samePath(a, b string) bool {
	return mustAbs(a) == mustAbs(b)
}

func mustAbs(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
