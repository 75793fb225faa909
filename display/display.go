// Package display binds seven-segment patterns to per-segment outputs and
// provides read-only debug projections of what is lit.
package display

import (
	"segcounter-go/segment"
)

// Output is one settable digital line driving a segment.
type Output interface {
	Set(on bool)
	Get() bool
}

// VirtualOutput is an in-memory Output for simulation and tests.
type VirtualOutput struct{ on bool }

func (v *VirtualOutput) Set(on bool) { v.on = on }
func (v *VirtualOutput) Get() bool   { return v.on }

// SegmentMap drives the seven segments a..g of one digit.
type SegmentMap struct {
	outs [segment.Count]Output
}

// NewSegmentMap binds outputs in a..g order.
func NewSegmentMap(outs [segment.Count]Output) *SegmentMap {
	return &SegmentMap{outs: outs}
}

// NewVirtualSegmentMap returns a SegmentMap over fresh VirtualOutputs.
func NewVirtualSegmentMap() *SegmentMap {
	var outs [segment.Count]Output
	for i := range outs {
		outs[i] = &VirtualOutput{}
	}
	return NewSegmentMap(outs)
}

// SetSegments decodes p low bit first and writes each segment output.
func (m *SegmentMap) SetSegments(p segment.Pattern) {
	for i, on := range segment.Decode(p).Bits() {
		m.outs[i].Set(on)
	}
}

// Segments reads back the current state of every output.
func (m *SegmentMap) Segments() segment.Set {
	var b [segment.Count]bool
	for i, o := range m.outs {
		b[i] = o.Get()
	}
	return segment.FromBits(b)
}

// Display is an ordered row of digits, least significant first.
type Display struct {
	digits []*SegmentMap
}

func New(digits ...*SegmentMap) *Display {
	return &Display{digits: digits}
}

// NewVirtual returns a Display of n simulated digits.
func NewVirtual(n int) *Display {
	d := &Display{digits: make([]*SegmentMap, n)}
	for i := range d.digits {
		d.digits[i] = NewVirtualSegmentMap()
	}
	return d
}

// Len returns the number of digits.
func (d *Display) Len() int { return len(d.digits) }

// Show writes patterns[i] to digit i. Surplus patterns or digits are left
// untouched.
func (d *Display) Show(patterns []segment.Pattern) {
	n := min(len(patterns), len(d.digits))
	for i := 0; i < n; i++ {
		d.digits[i].SetSegments(patterns[i])
	}
}

// Segments returns every digit's lit segments, least significant first.
func (d *Display) Segments() []segment.Set {
	out := make([]segment.Set, len(d.digits))
	for i, m := range d.digits {
		out[i] = m.Segments()
	}
	return out
}
