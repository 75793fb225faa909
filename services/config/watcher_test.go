//go:build !rp2040 && !rp2350

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`poll_interval = "10ms"`), 0o644); err != nil {
		t.Fatal(err)
	}

	reload := func(p string) (Config, error) {
		c := Default()
		err := Load(&c, p, nil)
		return c, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Config, 4)
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, path, reload, zerolog.Nop(), func(c Config) { got <- c }) }()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte(`poll_interval = "75ms"`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-got:
		if c.PollInterval != 75*time.Millisecond {
			t.Fatalf("reloaded poll = %v", c.PollInterval)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload observed")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Watch returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Watch did not stop")
	}
}
