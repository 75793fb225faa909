//go:build !rp2040 && !rp2350

package platform

import (
	"sync"

	"segcounter-go/services/hal/internal/halcore"
)

// ----------------------------- GPIO (host) -----------------------------------

// FakePin implements GPIOPin for host-side tests and the simulator.
// An input floats to its pull level unless something Drives it.
type FakePin struct {
	mu      sync.RWMutex
	number  int
	level   bool
	modeOut bool
	pull    halcore.Pull
	driven  bool
	writes  int
}

func (p *FakePin) ConfigureInput(pull halcore.Pull) error {
	p.mu.Lock()
	p.modeOut = false
	p.pull = pull
	if !p.driven {
		p.level = pull == halcore.PullUp
	}
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.modeOut = true
	p.level = initial
	p.mu.Unlock()
	return nil
}

func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	p.level = level
	p.writes++
	p.mu.Unlock()
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	v := p.level
	p.mu.RUnlock()
	return v
}

func (p *FakePin) Toggle() { p.Set(!p.Get()) }

func (p *FakePin) Number() int { return p.number }

// Drive forces the electrical level seen on the pin, as a switch or jumper
// would.
func (p *FakePin) Drive(level bool) {
	p.mu.Lock()
	p.driven = true
	p.level = level
	p.mu.Unlock()
}

// Release stops driving the pin; an input returns to its pull level.
func (p *FakePin) Release() {
	p.mu.Lock()
	p.driven = false
	if !p.modeOut {
		p.level = p.pull == halcore.PullUp
	}
	p.mu.Unlock()
}

// IsOutput reports the configured direction.
func (p *FakePin) IsOutput() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modeOut
}

// Writes counts Set calls, for asserting render cadence.
func (p *FakePin) Writes() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.writes
}

// HostPinFactory returns stable *FakePin instances per number.
type HostPinFactory struct {
	mu   sync.Mutex
	pins map[int]*FakePin
}

func NewHostPinFactory() *HostPinFactory {
	return &HostPinFactory{pins: make(map[int]*FakePin)}
}

func (f *HostPinFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	if n < 0 {
		return nil, false
	}
	return f.Pin(n), true
}

// Pin exposes the underlying *FakePin, creating it on first use.
func (f *HostPinFactory) Pin(n int) *FakePin {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pins == nil {
		f.pins = make(map[int]*FakePin)
	}
	p, ok := f.pins[n]
	if !ok {
		p = &FakePin{number: n}
		f.pins[n] = p
	}
	return p
}

// DefaultPinFactory provides a host GPIO factory.
func DefaultPinFactory() halcore.PinFactory { return NewHostPinFactory() }
