// Package config resolves the counter's runtime configuration from built-in
// board defaults, a TOML file, SEGCOUNTER_* environment variables and
// command-line flags, in increasing order of precedence.
package config

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"segcounter-go/bus"
	"segcounter-go/errcode"
	"segcounter-go/segment"
	"segcounter-go/services/controller"
	"segcounter-go/types"
)

const (
	RenderASCII  = controller.RenderASCII
	RenderPixels = controller.RenderPixels
	RenderNone   = controller.RenderNone
)

// Device IDs used in the generated HAL config.
const (
	IDIncrement = "btn_increment"
	IDDecrement = "btn_decrement"
	IDReset     = "btn_reset"
)

// DigitID returns the HAL device ID of display position i (0 = ones).
func DigitID(i int) string { return "digit_" + strconv.Itoa(i) }

// ButtonPin wires one push button.
type ButtonPin struct {
	Pin    int    `toml:"pin"`
	Pull   string `toml:"pull"`
	Invert bool   `toml:"invert"`
}

// DigitPins wires one seven-segment digit, segments a..g.
type DigitPins struct {
	Pins      [segment.Count]int `toml:"pins"`
	ActiveLow bool               `toml:"active_low"`
}

type Buttons struct {
	Increment ButtonPin `toml:"increment"`
	Decrement ButtonPin `toml:"decrement"`
	Reset     ButtonPin `toml:"reset"`
}

// Config holds everything needed to wire and run the counter.
type Config struct {
	Board        string
	Digits       int
	PollInterval time.Duration
	LampTest     bool
	Render       string
	LogLevel     string

	Buttons  Buttons
	Displays []DigitPins // ones first
}

// Default returns the built-in "pico" board configuration.
func Default() Config {
	c, err := ForBoard(DefaultBoard)
	if err != nil {
		panic("config: embedded default board invalid: " + err.Error())
	}
	return c
}

// Validate checks the configuration and fills derived defaults.
func (c *Config) Validate() error {
	if c.Digits < 1 {
		return invalid("digits must be >= 1, got %d", c.Digits)
	}
	if c.PollInterval <= 0 {
		return invalid("poll interval must be positive, got %v", c.PollInterval)
	}
	switch c.Render {
	case "":
		c.Render = RenderASCII
	case RenderASCII, RenderPixels, RenderNone:
	default:
		return invalid("render must be %q, %q or %q, got %q", RenderASCII, RenderPixels, RenderNone, c.Render)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if len(c.Displays) < c.Digits {
		return invalid("%d digits need %d displays, have %d", c.Digits, c.Digits, len(c.Displays))
	}

	used := map[int]string{}
	claim := func(pin int, what string) error {
		if pin < 0 {
			return invalid("%s: negative pin %d", what, pin)
		}
		if prev, ok := used[pin]; ok {
			return invalid("pin %d used by both %s and %s", pin, prev, what)
		}
		used[pin] = what
		return nil
	}
	for _, b := range []struct {
		name string
		p    ButtonPin
	}{
		{IDIncrement, c.Buttons.Increment},
		{IDDecrement, c.Buttons.Decrement},
		{IDReset, c.Buttons.Reset},
	} {
		if err := claim(b.p.Pin, b.name); err != nil {
			return err
		}
	}
	for i, d := range c.Displays[:c.Digits] {
		for s, pin := range d.Pins {
			if err := claim(pin, DigitID(i)+"."+segment.Name(s)); err != nil {
				return err
			}
		}
	}
	return nil
}

// FillDisplays appends digits wired to consecutive free pins until there
// is one per counter digit. Used by the simulator where pins are virtual.
func (c *Config) FillDisplays() {
	next := 0
	bump := func(p int) {
		if p >= next {
			next = p + 1
		}
	}
	bump(c.Buttons.Increment.Pin)
	bump(c.Buttons.Decrement.Pin)
	bump(c.Buttons.Reset.Pin)
	for _, d := range c.Displays {
		for _, p := range d.Pins {
			bump(p)
		}
	}
	for len(c.Displays) < c.Digits {
		var d DigitPins
		for s := range d.Pins {
			d.Pins[s] = next
			next++
		}
		c.Displays = append(c.Displays, d)
	}
}

// HALConfig converts the wiring into HAL device entries.
func (c *Config) HALConfig() types.HALConfig {
	btn := func(id string, b ButtonPin) types.HALDevice {
		return types.HALDevice{ID: id, Type: "gpio_button", Params: map[string]any{
			"pin": b.Pin, "pull": b.Pull, "invert": b.Invert,
		}}
	}
	cfg := types.HALConfig{Devices: []types.HALDevice{
		btn(IDIncrement, c.Buttons.Increment),
		btn(IDDecrement, c.Buttons.Decrement),
		btn(IDReset, c.Buttons.Reset),
	}}
	for i := 0; i < c.Digits && i < len(c.Displays); i++ {
		d := c.Displays[i]
		cfg.Devices = append(cfg.Devices, types.HALDevice{
			ID:   DigitID(i),
			Type: "seven_segment",
			Params: map[string]any{
				"pins":       d.Pins[:],
				"active_low": d.ActiveLow,
			},
		})
	}
	return cfg
}

// Controller returns the live-tunable subset published on config/controller.
func (c *Config) Controller() types.ControllerConfig {
	return types.ControllerConfig{
		PollIntervalMs: uint32(c.PollInterval / time.Millisecond),
		Render:         c.Render,
	}
}

// TopicController is where the tunable subset is published (retained).
func TopicController() bus.Topic { return bus.T("config", "controller") }

// Publish announces the tunable subset on the bus.
func Publish(conn *bus.Connection, c Config) {
	conn.Publish(conn.NewMessage(TopicController(), c.Controller(), true))
}

// PublishOnChange is a Watch callback that republishes the tunable subset.
func PublishOnChange(ctx context.Context, conn *bus.Connection) func(Config) {
	return func(c Config) {
		if ctx.Err() != nil {
			return
		}
		Publish(conn, c)
	}
}

func invalid(format string, args ...any) error {
	return &errcode.E{C: errcode.InvalidConfig, Op: "config", Msg: fmt.Sprintf(format, args...)}
}

// configSetter applies values while respecting flag precedence: a value is
// only written when the corresponding flag was not set explicitly.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt copies an explicitly present value, including zero or negative
// ones, so Validate can reject them.
func (s *configSetter) setInt(flag string, value *int, dst *int) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return errcode.Wrap(errcode.InvalidConfig, "parse "+flag, err)
	}
	*dst = i
	return nil
}

func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
