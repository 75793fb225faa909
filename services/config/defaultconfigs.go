package config

import (
	"fmt"
	"sort"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"segcounter-go/errcode"
)

// DefaultBoard is used when nothing selects a board.
const DefaultBoard = "pico"

// -----------------------------------------------------------------------------
// Embedded board configuration
//
// Key: board name
// Val: TOML in the same shape as the user config file
// -----------------------------------------------------------------------------

// Buttons pull to ground when pressed; segments are common-cathode.
const cfgPico = `
board = "pico"
digits = 2
poll_interval = "10ms"
render = "none"

[buttons.increment]
pin = 11
pull = "up"
invert = true

[buttons.decrement]
pin = 12
pull = "up"
invert = true

[buttons.reset]
pin = 13
pull = "up"
invert = true

[[displays]]
pins = [0, 1, 2, 3, 4, 5, 6]

[[displays]]
pins = [14, 15, 16, 17, 18, 19, 20]
`

// Virtual pins for the host simulator; buttons read high when pressed.
const cfgSim = `
board = "sim"
digits = 2
poll_interval = "20ms"
render = "ascii"

[buttons.increment]
pin = 0

[buttons.decrement]
pin = 1

[buttons.reset]
pin = 2
`

var embeddedConfigs = map[string][]byte{
	"pico": []byte(cfgPico),
	"sim":  []byte(cfgSim),
}

// Boards lists the embedded board names.
func Boards() []string {
	out := make([]string, 0, len(embeddedConfigs))
	for k := range embeddedConfigs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ForBoard returns the embedded configuration for board.
func ForBoard(board string) (Config, error) {
	var c Config
	if err := c.useBoard(board); err != nil {
		return Config{}, err
	}
	return c, nil
}

// useBoard replaces every field of c with the embedded board's values.
func (c *Config) useBoard(board string) error {
	raw, ok := embeddedConfigs[board]
	if !ok {
		return &errcode.E{C: errcode.InvalidConfig, Op: "config.board", Msg: fmt.Sprintf("unknown board %q", board)}
	}
	var fc FileConfig
	if err := toml.Unmarshal(raw, &fc); err != nil {
		return errcode.Wrap(errcode.InvalidConfig, "config.board", err)
	}
	*c = Config{
		Board:        board,
		Digits:       2,
		PollInterval: 10 * time.Millisecond,
		Render:       RenderASCII,
		LogLevel:     "info",
	}
	fc.Board = ""
	if err := ApplyFileConfig(c, fc, nil); err != nil {
		return err
	}
	c.FillDisplays()
	return nil
}

// SwitchBoard swaps in another board's configuration but keeps any value
// whose flag was set explicitly. Switching to the current board is a no-op.
func (c *Config) SwitchBoard(board string, changed map[string]bool) error {
	if board == c.Board {
		return nil
	}
	keep := *c
	if err := c.useBoard(board); err != nil {
		return err
	}
	if changed["digits"] {
		c.Digits = keep.Digits
		c.FillDisplays()
	}
	if changed["poll"] {
		c.PollInterval = keep.PollInterval
	}
	if changed["lamp-test"] {
		c.LampTest = keep.LampTest
	}
	if changed["render"] {
		c.Render = keep.Render
	}
	if changed["log-level"] {
		c.LogLevel = keep.LogLevel
	}
	return nil
}

// Load applies the file at path (skipped when empty or missing) and then
// the environment on top of cfg. cfg should already hold board defaults
// overlaid with parsed flags. The result is not validated.
func Load(cfg *Config, path string, changed map[string]bool) error {
	if path != "" && FileExists(path) {
		fc, err := LoadFileConfig(path)
		if err != nil {
			return errcode.Wrap(errcode.InvalidConfig, "config.load", err)
		}
		if err := ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	}
	return ApplyEnvConfig(cfg, changed)
}
