package seven_segment

import (
	"context"

	"segcounter-go/display"
	"segcounter-go/segment"
	"segcounter-go/services/hal/internal/core"
	"segcounter-go/types"
)

// Device drives one seven-segment digit from seven GPIO outputs.
type Device struct {
	id        string
	pinN      [segment.Count]int
	segs      [segment.Count]*segOut
	activeLow bool
	pins      *core.PinTable
	sm        *display.SegmentMap
}

func (d *Device) ID() string { return d.id }

func (d *Device) Info() types.Info {
	return types.Info{
		SchemaVersion: 1,
		Driver:        "seven_segment",
		Detail:        types.SegmentInfo{Pins: d.pinN, ActiveLow: d.activeLow},
	}
}

// Init configures every segment as an output, all segments dark.
func (d *Device) Init(ctx context.Context) error {
	var outs [segment.Count]display.Output
	for i, s := range d.segs {
		if err := s.pin.ConfigureOutput(s.physical(false)); err != nil {
			return err
		}
		outs[i] = s
	}
	d.sm = display.NewSegmentMap(outs)
	return nil
}

func (d *Device) Close() error {
	d.release(segment.Count)
	return nil
}

func (d *Device) release(n int) {
	for i := 0; i < n; i++ {
		d.pins.ReleasePin(d.id, d.pinN[i])
	}
}

// SegmentMap returns the digit's segment outputs; nil before Init.
func (d *Device) SegmentMap() *display.SegmentMap { return d.sm }

// segOut maps a logical "lit" to the physical level.
type segOut struct {
	pin       core.GPIOPin
	activeLow bool
}

func (s *segOut) physical(on bool) bool {
	if s.activeLow {
		return !on
	}
	return on
}

func (s *segOut) Set(on bool) { s.pin.Set(s.physical(on)) }
func (s *segOut) Get() bool   { return s.physical(s.pin.Get()) }
