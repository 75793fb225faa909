package gpio_button

import (
	"context"

	"segcounter-go/errcode"
	"segcounter-go/services/hal/internal/core"
	"segcounter-go/types"
)

// Device is a momentary push button on one GPIO input.
type Device struct {
	id     string
	pinN   int
	gpio   core.GPIOPin
	pull   core.Pull
	invert bool
	pins   *core.PinTable
	closed bool
}

func (d *Device) ID() string { return d.id }

func (d *Device) Info() types.Info {
	return types.Info{
		SchemaVersion: 1,
		Driver:        "gpio_button",
		Detail:        types.ButtonInfo{Pin: d.pinN, Pull: d.pull.String(), Invert: d.invert},
	}
}

func (d *Device) Init(ctx context.Context) error {
	return d.gpio.ConfigureInput(d.pull)
}

func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	d.pins.ReleasePin(d.id, d.pinN)
	return nil
}

// Read returns true while the button is pressed.
func (d *Device) Read() (bool, error) {
	if d.closed {
		return false, &errcode.E{C: errcode.HALNotReady, Op: "read", Msg: d.id + " closed"}
	}
	return d.logicalPressed(d.gpio.Get()), nil
}

func (d *Device) logicalPressed(level bool) bool {
	if d.invert {
		return !level
	}
	return level
}
