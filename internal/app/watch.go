package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/packplan/packplan/internal/ctxlog"
)

// debounceWindow coalesces the bursts of write events editors produce
// into a single pipeline run.
const debounceWindow = 250 * time.Millisecond

// watch runs the pipeline once, then re-runs it whenever a .hcl file
// under the config path (or the properties file) changes. Pipeline
// failures are reported and watched through rather than terminating the
// loop: the whole point of watch mode is iterating on a broken config.
func (a *App) watch(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	if err := a.runPipeline(ctx); err != nil {
		logger.Error("Pipeline failed; waiting for changes.", "error", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, dir := range a.watchDirs() {
		if err := watcher.Add(dir); err != nil {
			logger.Warn("Could not watch directory.", "dir", dir, "error", err)
		}
	}
	logger.Info("Watching for configuration changes...", "path", a.config.ConfigPath)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !a.relevantChange(event) {
				continue
			}
			logger.Debug("Configuration change detected.", "file", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
				timerC = timer.C
			} else {
				timer.Reset(debounceWindow)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error.", "error", err)

		case <-timerC:
			timer = nil
			timerC = nil
			if err := a.runPipeline(ctx); err != nil {
				logger.Error("Pipeline failed; waiting for changes.", "error", err)
			} else {
				logger.Info("Pipeline re-run succeeded.")
			}
		}
	}
}

// watchDirs resolves the set of directories to watch: every directory
// under the config path plus the properties file's directory.
func (a *App) watchDirs() []string {
	seen := make(map[string]struct{})
	var dirs []string
	add := func(dir string) {
		if _, ok := seen[dir]; !ok {
			seen[dir] = struct{}{}
			dirs = append(dirs, dir)
		}
	}

	info, err := os.Stat(a.config.ConfigPath)
	switch {
	case err != nil:
		// Nothing to watch yet; the user may create the path later.
	case info.IsDir():
		_ = filepath.WalkDir(a.config.ConfigPath, func(path string, d os.DirEntry, err error) error {
			if err == nil && d.IsDir() {
				add(path)
			}
			return nil
		})
	default:
		add(filepath.Dir(a.config.ConfigPath))
	}

	if a.config.PropsFile != "" {
		add(filepath.Dir(a.config.PropsFile))
	}
	return dirs
}

// relevantChange filters events down to content changes of files the
// pipeline actually reads.
func (a *App) relevantChange(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if a.config.PropsFile != "" && event.Name == a.config.PropsFile {
		return true
	}
	return strings.HasSuffix(event.Name, ".hcl")
}
