package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const watchDebounce = 200 * time.Millisecond

// watchAndRun re-runs fn whenever a matched stylesheet changes. Events are
// debounced per path so an editor save burst triggers one run. Returns when
// interrupted.
func watchAndRun(patterns []string, run func() error, log *zap.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	files, err := expandGlobPatterns(patterns)
	if err != nil {
		return err
	}
	dirs := make(map[string]bool)
	for _, f := range files {
		dirs[filepath.Dir(f)] = true
	}
	if len(dirs) == 0 {
		dirs["."] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			log.Warn("failed to watch directory", zap.String("dir", dir), zap.Error(err))
		}
	}
	log.Info("watching for changes", zap.Int("dirs", len(dirs)))

	var (
		timers   = make(map[string]*time.Timer)
		timersMu sync.Mutex
	)
	rerun := make(chan struct{}, 1)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".css") || shouldSkipFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug("file event", zap.String("op", event.Op.String()), zap.String("file", event.Name))

			timersMu.Lock()
			if t, ok := timers[event.Name]; ok {
				t.Stop()
			}
			timers[event.Name] = time.AfterFunc(watchDebounce, func() {
				select {
				case rerun <- struct{}{}:
				default:
				}
			})
			timersMu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("watch error", zap.Error(err))

		case <-rerun:
			if err := run(); err != nil {
				log.Error("run failed", zap.Error(err))
			}

		case <-sig:
			log.Info("stopping watcher")
			timersMu.Lock()
			for _, t := range timers {
				t.Stop()
			}
			timersMu.Unlock()
			return nil
		}
	}
}
