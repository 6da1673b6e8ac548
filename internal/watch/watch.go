// Package watch re-runs a callback when a manifest source or its content
// tree changes on disk.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce groups editor save bursts into one run.
const DefaultDebounce = 200 * time.Millisecond

// skipDirs are never watched; they hold build output or dependencies.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	".temp":        true,
	".cache":       true,
}

// Watcher calls OnChange after relevant files settle.
type Watcher struct {
	Debounce time.Duration
	Log      zerolog.Logger
	OnChange func(changed []string)
}

// Relevant reports whether a changed file can affect validation.
func Relevant(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".js", ".cjs", ".mjs", ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// Run watches the given directories recursively until ctx is done.
func (w *Watcher) Run(ctx context.Context, dirs ...string) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	for _, d := range dirs {
		if err := addRecursive(fw, d); err != nil {
			return err
		}
	}

	delay := w.Debounce
	if delay <= 0 {
		delay = DefaultDebounce
	}
	timer := time.NewTimer(delay)
	if !timer.Stop() {
		<-timer.C
	}
	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addRecursive(fw, ev.Name); err != nil {
						w.Log.Warn().Err(err).Str("dir", ev.Name).Msg("cannot watch new directory")
					}
					continue
				}
			}
			if !Relevant(ev.Name) {
				continue
			}
			w.Log.Debug().Str("path", ev.Name).Str("op", ev.Op.String()).Msg("change")
			pending[ev.Name] = true
			timer.Reset(delay)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.Log.Warn().Err(err).Msg("watch error")
		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			clear(pending)
			if w.OnChange != nil {
				w.OnChange(changed)
			}
		}
	}
}

func addRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDirs[d.Name()] {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}
