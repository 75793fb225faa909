//go:build !rp2040 && !rp2350

package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const watchDebounce = 100 * time.Millisecond

// Reloader rebuilds a full Config from the file at path, typically by
// re-running the same layering the process started with.
type Reloader func(path string) (Config, error)

// Watch monitors path and calls fn with each successfully reloaded and
// validated Config. It blocks until ctx is done. The parent directory is
// watched so editors that replace the file are still seen.
func Watch(ctx context.Context, path string, reload Reloader, log zerolog.Logger, fn func(Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}

	var (
		mu       sync.Mutex
		debounce *time.Timer
	)
	defer func() {
		mu.Lock()
		if debounce != nil {
			debounce.Stop()
		}
		mu.Unlock()
	}()

	fire := func() {
		if ctx.Err() != nil {
			return
		}
		cfg, err := reload(path)
		if err == nil {
			err = cfg.Validate()
		}
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("config reload rejected")
			return
		}
		log.Info().Str("path", path).Dur("poll", cfg.PollInterval).Msg("config reloaded")
		fn(cfg)
	}

	name := filepath.Base(path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			mu.Lock()
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, fire)
			mu.Unlock()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("config watcher error")
		}
	}
}
