package config

import (
	"context"
	"fmt"
	"path/filepath"

	"chinook/logger"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
)

// WatchEnvFile watches the env file and calls onChange with the LOG_LEVEL it
// contains after every write. The watch covers the parent directory so that
// editors which replace the file on save are still observed. It blocks until
// ctx is cancelled.
func WatchEnvFile(ctx context.Context, path string, onChange func(logLevel string)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve env file path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create env file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			values, err := godotenv.Read(abs)
			if err != nil {
				logger.Warn("Failed to re-read env file",
					logger.String("path", abs),
					logger.ErrorField(err))
				continue
			}
			if level, ok := values["LOG_LEVEL"]; ok {
				onChange(level)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Env file watcher error", logger.ErrorField(err))
		}
	}
}
