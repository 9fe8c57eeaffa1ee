package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"pomopro/internal/ui/preferences"
)

// DefaultReloadDebounce collapses the burst of events an editor produces on save.
const DefaultReloadDebounce = 200 * time.Millisecond

// WatchSettings reloads dir/settings.yaml whenever it changes and passes the result
// to onChange, until ctx is cancelled. onChange runs on a timer goroutine.
// Reload failures are logged and skipped.
func WatchSettings(ctx context.Context, dir string, debounce time.Duration, logger zerolog.Logger, onChange func(preferences.Settings)) error {
	if debounce <= 0 {
		debounce = DefaultReloadDebounce
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}
	// Editors replace the file, so the directory is watched rather than the file.
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	reload := func() {
		settings, err := LoadSettings(dir)
		if err != nil {
			logger.Warn().Err(err).Str("path", SettingsPath(dir)).Msg("reload settings")
			return
		}
		logger.Debug().Str("path", SettingsPath(dir)).Msg("settings reloaded")
		onChange(settings)
	}

	go func() {
		defer watcher.Close()
		var pending *time.Timer
		defer func() {
			if pending != nil {
				pending.Stop()
			}
		}()

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isSettingsEvent(event) {
					continue
				}
				if pending != nil {
					pending.Stop()
				}
				pending = time.AfterFunc(debounce, reload)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn().Err(err).Str("path", dir).Msg("settings watcher error")

			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

func isSettingsEvent(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != SettingsFileName {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create) != 0
}
