package types

// ------------------------
// HAL state (retained on hal/state)
// ------------------------

type HALState struct {
	Level  string `json:"level"`  // "idle", "ready", "stopped"
	Status string `json:"status"` // freeform short code
	TSms   int64  `json:"ts_ms"`
}

// ------------------------
// HAL configuration
// ------------------------

type HALConfig struct {
	Devices []HALDevice `json:"devices" toml:"devices"`
}

type HALDevice struct {
	ID     string `json:"id" toml:"id"`                             // logical device id
	Type   string `json:"type" toml:"type"`                         // e.g. "gpio_button"
	Params any    `json:"params,omitempty" toml:"params,omitempty"` // typed params or a JSON-like map
}

// ------------------------
// Info envelope (retained on hal/dev/<id>/info)
// ------------------------

type Info struct {
	SchemaVersion int    `json:"schema_version"`
	Driver        string `json:"driver"`
	Detail        any    `json:"detail,omitempty"`
}

type ButtonInfo struct {
	Pin    int    `json:"pin"`
	Pull   string `json:"pull"`
	Invert bool   `json:"invert"`
}

type SegmentInfo struct {
	Pins      [7]int `json:"pins"` // a..g
	ActiveLow bool   `json:"active_low"`
}

// ------------------------
// Counter telemetry
// ------------------------

// CounterValue is published retained on counter/value after every render.
type CounterValue struct {
	Value    int     `json:"value"`
	Text     string  `json:"text"`     // zero-padded, most significant first
	Digits   []int   `json:"digits"`   // least significant first
	Patterns []uint8 `json:"patterns"` // least significant first
	TSms     int64   `json:"ts_ms"`
}

// ButtonPress is published on button/<name>/press for each honoured event.
type ButtonPress struct {
	Button string `json:"button"`
	Action string `json:"action"` // "increment", "decrement", "reset"
	TSms   int64  `json:"ts_ms"`
}

// ------------------------
// Runtime configuration (retained on config/controller)
// ------------------------

type ControllerConfig struct {
	PollIntervalMs uint32 `json:"poll_interval_ms"`
	Render         string `json:"render"` // "ascii", "pixels" or "none"
}
