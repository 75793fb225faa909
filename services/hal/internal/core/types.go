package core

import (
	"context"

	"segcounter-go/services/hal/internal/halcore"
	"segcounter-go/types"
)

// ---- Device model ----

// Device is a configured piece of hardware owned by the HAL.
type Device interface {
	ID() string
	Info() types.Info
	Init(ctx context.Context) error
	Close() error // releases claimed pins
}

// ---- HAL-injected resources ----

type Resources struct {
	Pins *PinTable
}

// BuilderInput is passed to a device builder.
type BuilderInput struct {
	ID, Type string
	Params   any
	Res      Resources
}

type Builder interface {
	Build(ctx context.Context, in BuilderInput) (Device, error)
}

// Re-exported so devices need only import core.
type (
	Pull    = halcore.Pull
	GPIOPin = halcore.GPIOPin
)

const (
	PullNone = halcore.PullNone
	PullUp   = halcore.PullUp
	PullDown = halcore.PullDown
)
