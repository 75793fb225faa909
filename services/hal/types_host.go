//go:build !rp2040 && !rp2350

package hal

import "segcounter-go/services/hal/internal/platform"

// Host-only fake GPIO, used by tests and the simulator.
type (
	HostPinFactory = platform.HostPinFactory
	FakePin        = platform.FakePin
)

func NewHostPinFactory() *HostPinFactory { return platform.NewHostPinFactory() }
