package config

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"segcounter-go/x/timex"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Board        string      `toml:"board"`
	Digits       *int        `toml:"digits"`
	PollInterval string      `toml:"poll_interval"`
	PollHz       uint32      `toml:"poll_hz"` // used when poll_interval is unset
	LampTest     *bool       `toml:"lamp_test"`
	Render       string      `toml:"render"`
	LogLevel     string      `toml:"log_level"`
	Buttons      fileButtons `toml:"buttons"`
	Displays     []DigitPins `toml:"displays"`
}

// fileButtons lets a file override one button without resetting the others.
type fileButtons struct {
	Increment *ButtonPin `toml:"increment"`
	Decrement *ButtonPin `toml:"decrement"`
	Reset     *ButtonPin `toml:"reset"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.segcounter/config.toml, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".segcounter", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to cfg.
// It respects flags that have been explicitly set (changed map).
// A board key replaces the wiring with that board's before other keys apply.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	if fc.Board != "" && !changed["board"] {
		if err := cfg.SwitchBoard(fc.Board, changed); err != nil {
			return err
		}
	}

	s.setInt("digits", fc.Digits, &cfg.Digits)
	if err := s.setDuration("poll", fc.PollInterval, &cfg.PollInterval); err != nil {
		return err
	}
	if fc.PollInterval == "" && fc.PollHz > 0 && !changed["poll"] {
		cfg.PollInterval = timex.PeriodFromHz(fc.PollHz)
	}
	s.setBool("lamp-test", fc.LampTest, &cfg.LampTest)
	s.setString("render", fc.Render, &cfg.Render)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	for _, b := range []struct {
		src *ButtonPin
		dst *ButtonPin
	}{
		{fc.Buttons.Increment, &cfg.Buttons.Increment},
		{fc.Buttons.Decrement, &cfg.Buttons.Decrement},
		{fc.Buttons.Reset, &cfg.Buttons.Reset},
	} {
		if b.src != nil {
			*b.dst = *b.src
		}
	}
	if len(fc.Displays) > 0 {
		cfg.Displays = append([]DigitPins(nil), fc.Displays...)
	}
	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
