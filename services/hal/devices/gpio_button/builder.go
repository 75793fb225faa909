package gpio_button

import (
	"context"

	"segcounter-go/errcode"
	"segcounter-go/services/hal/internal/core"
)

func init() { core.RegisterBuilder("gpio_button", builder{}) }

type Params struct {
	Pin    int    `json:"pin"`
	Pull   string `json:"pull"`   // "none","up","down"
	Invert bool   `json:"invert"` // true if pressed == low
}

type builder struct{}

func (builder) Build(ctx context.Context, in core.BuilderInput) (core.Device, error) {
	p, err := core.DecodeParams[Params](in.Params)
	if err != nil {
		return nil, err
	}
	if p.Pin < 0 {
		return nil, errcode.InvalidParams
	}
	gpio, err := in.Res.Pins.ClaimPin(in.ID, p.Pin)
	if err != nil {
		return nil, err
	}
	return &Device{
		id:     in.ID,
		pinN:   p.Pin,
		gpio:   gpio,
		pull:   core.ParsePull(p.Pull),
		invert: p.Invert,
		pins:   in.Res.Pins,
	}, nil
}
