// Package button turns level samples from a digital input into discrete
// edges. There is no debounce beyond comparing consecutive samples.
package button

// Source reads the current logical level of an input.
type Source interface {
	Read() (bool, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() (bool, error)

func (f SourceFunc) Read() (bool, error) { return f() }

// Edge classifies the transition between two samples.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
)

func (e Edge) String() string {
	switch e {
	case EdgeRising:
		return "rising"
	case EdgeFalling:
		return "falling"
	default:
		return "none"
	}
}

// Detector latches the previous and current sample of a Source.
// Before the first Sample both are unset.
type Detector struct {
	src Source

	prev, cur       bool
	hasPrev, hasCur bool
}

func NewDetector(src Source) *Detector { return &Detector{src: src} }

// Sampled reports whether at least one sample has been taken.
func (d *Detector) Sampled() bool { return d.hasCur }

// Sample shifts the current level into previous, reads a new level and
// returns it. Every call advances the latch, so sampling is not idempotent.
// On a read error the latch has still shifted and current is unchanged.
func (d *Detector) Sample() (bool, error) {
	d.prev, d.hasPrev = d.cur, d.hasCur
	v, err := d.src.Read()
	if err != nil {
		return d.cur, err
	}
	d.cur, d.hasCur = v, true
	return v, nil
}

// StateChanged reports previous != current and then consumes the change by
// copying current into previous; a second call without an intervening
// Sample always returns false. With no prior sample it returns false.
//
// Prefer Poll: calling StateChanged more than once per Sample, or skipping
// Sample, yields stale edges.
func (d *Detector) StateChanged() bool {
	changed := d.hasPrev && d.hasCur && d.prev != d.cur
	d.prev, d.hasPrev = d.cur, d.hasCur
	return changed
}

// Poll samples once and returns the edge since the previous sample. The
// first Poll establishes the baseline and returns EdgeNone.
func (d *Detector) Poll() (Edge, error) {
	if _, err := d.Sample(); err != nil {
		return EdgeNone, err
	}
	if !d.StateChanged() {
		return EdgeNone, nil
	}
	if d.cur {
		return EdgeRising, nil
	}
	return EdgeFalling, nil
}
