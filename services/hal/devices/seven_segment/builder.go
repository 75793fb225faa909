package seven_segment

import (
	"context"
	"strconv"

	"segcounter-go/errcode"
	"segcounter-go/segment"
	"segcounter-go/services/hal/internal/core"
)

func init() { core.RegisterBuilder("seven_segment", builder{}) }

type Params struct {
	Pins      []int `json:"pins"`       // a..g, exactly seven
	ActiveLow bool  `json:"active_low"` // common-anode wiring
}

type builder struct{}

func (builder) Build(ctx context.Context, in core.BuilderInput) (core.Device, error) {
	p, err := core.DecodeParams[Params](in.Params)
	if err != nil {
		return nil, err
	}
	if len(p.Pins) != segment.Count {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "seven_segment", Msg: "need exactly 7 pins (a..g)"}
	}
	seen := make(map[int]bool, len(p.Pins))
	for _, n := range p.Pins {
		if seen[n] {
			return nil, &errcode.E{C: errcode.InvalidParams, Op: "seven_segment", Msg: "pin " + strconv.Itoa(n) + " used twice"}
		}
		seen[n] = true
	}
	d := &Device{id: in.ID, activeLow: p.ActiveLow, pins: in.Res.Pins}
	for i, n := range p.Pins {
		gpio, err := in.Res.Pins.ClaimPin(in.ID, n)
		if err != nil {
			d.release(i)
			return nil, err
		}
		d.pinN[i] = n
		d.segs[i] = &segOut{pin: gpio, activeLow: p.ActiveLow}
	}
	return d, nil
}
