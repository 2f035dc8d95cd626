package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ruminaider/sso-profiles/internal/profile"
)

// watchDebounce coalesces the bursts of events a single save produces.
var watchDebounce = 100 * time.Millisecond

// Watch calls onChange with the full profile list once at start and again
// whenever the storage file changes, until ctx is done.
func Watch(ctx context.Context, env *Env, onChange func([]profile.Profile)) error {
	path := env.StoragePath()
	if path == "" {
		return errors.New("the memory backend cannot be watched")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// The file backend replaces the file on every save, so watch the directory.
	dir, name := filepath.Dir(path), filepath.Base(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	reload := func() {
		all, err := env.Store.LoadAll(ctx)
		if err != nil {
			env.Logger.Warn("reloading profiles", "error", err)
			return
		}
		onChange(all)
	}
	reload()

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasPrefix(filepath.Base(event.Name), name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				env.Logger.Debug("storage changed", "op", event.Op.String(), "file", event.Name)
				debounce = time.After(watchDebounce)
			}
		case <-debounce:
			debounce = nil
			reload()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			env.Logger.Warn("watcher error", "error", err)
		}
	}
}
