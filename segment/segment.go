// Package segment holds the seven-segment glyph table and the mapping between
// a packed illumination pattern and seven named segment booleans.
//
// Bit order is fixed: bit 0 drives segment a, bit 1 b, ... bit 6 g.
//
//	 _a_
//	f   b
//	 _g_
//	e   c
//	 _d_
package segment

// Count is the number of segments per digit.
const Count = 7

// Segment indices, matching the bit positions of a Pattern.
const (
	SegA = iota
	SegB
	SegC
	SegD
	SegE
	SegF
	SegG
)

// Pattern is a packed 7-bit illumination pattern. Bit 7 is ignored.
type Pattern uint8

// Glyphs maps decimal digits 0..9 to their patterns.
var Glyphs = [10]Pattern{
	0x3f, // 0
	0x06, // 1
	0x5b, // 2
	0x4f, // 3
	0x66, // 4
	0x6d, // 5
	0x7d, // 6
	0x07, // 7
	0x7f, // 8
	0x6f, // 9
}

// Glyph returns the pattern for digit d. ok is false outside 0..9.
func Glyph(d int) (p Pattern, ok bool) {
	if d < 0 || d >= len(Glyphs) {
		return 0, false
	}
	return Glyphs[d], true
}

// On reports whether segment i is lit in p.
func (p Pattern) On(i int) bool {
	if i < 0 || i >= Count {
		return false
	}
	return p&(1<<uint(i)) != 0
}

// String renders the pattern as seven binary digits, g first.
func (p Pattern) String() string {
	var b [Count]byte
	for i := 0; i < Count; i++ {
		c := byte('0')
		if p.On(i) {
			c = '1'
		}
		b[Count-1-i] = c
	}
	return string(b[:])
}

// Set is one digit's segments as named booleans.
type Set struct {
	A, B, C, D, E, F, G bool
}

// Decode unpacks p low bit first into a Set.
func Decode(p Pattern) Set {
	return Set{
		A: p.On(SegA),
		B: p.On(SegB),
		C: p.On(SegC),
		D: p.On(SegD),
		E: p.On(SegE),
		F: p.On(SegF),
		G: p.On(SegG),
	}
}

// Encode packs s back into a Pattern; Decode(p).Encode() == p&0x7f.
func (s Set) Encode() Pattern {
	var p Pattern
	for i, on := range s.Bits() {
		if on {
			p |= 1 << uint(i)
		}
	}
	return p
}

// Bits returns the segments in a..g order.
func (s Set) Bits() [Count]bool {
	return [Count]bool{s.A, s.B, s.C, s.D, s.E, s.F, s.G}
}

// Get returns segment i (SegA..SegG); out of range reads as off.
func (s Set) Get(i int) bool {
	if i < 0 || i >= Count {
		return false
	}
	return s.Bits()[i]
}

// Put sets segment i. Out of range indices are ignored.
func (s *Set) Put(i int, on bool) {
	switch i {
	case SegA:
		s.A = on
	case SegB:
		s.B = on
	case SegC:
		s.C = on
	case SegD:
		s.D = on
	case SegE:
		s.E = on
	case SegF:
		s.F = on
	case SegG:
		s.G = on
	}
}

// FromBits builds a Set from booleans in a..g order.
func FromBits(b [Count]bool) Set {
	var s Set
	for i, on := range b {
		s.Put(i, on)
	}
	return s
}

// Name returns the conventional letter for segment i.
func Name(i int) string {
	if i < 0 || i >= Count {
		return "?"
	}
	return string(rune('a' + i))
}
