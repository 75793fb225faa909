package hal

import (
	"segcounter-go/services/hal/internal/halcore"
	"segcounter-go/services/hal/internal/platform"
)

// ---- GPIO abstractions (re-exported for callers outside services/hal) ----

type (
	Pull       = halcore.Pull
	GPIOPin    = halcore.GPIOPin
	PinFactory = halcore.PinFactory
)

const (
	PullNone = halcore.PullNone
	PullUp   = halcore.PullUp
	PullDown = halcore.PullDown
)

// DefaultPinFactory returns the platform's GPIO factory: machine pins on
// RP2 targets, fake pins on the host.
func DefaultPinFactory() PinFactory { return platform.DefaultPinFactory() }
