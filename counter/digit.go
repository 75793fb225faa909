package counter

import (
	"segcounter-go/segment"
	"segcounter-go/x/mathx"
)

// Base is the number of values a Digit can hold.
const Base = len(segment.Glyphs)

// Digit is one base-10 place value. The zero value is 0.
type Digit struct {
	index int
}

// Increment adds amount modulo Base and reports whether the result wrapped
// past 9→0 or 0→9. Negative amounts count down.
func (d *Digit) Increment(amount int) (wrapped bool) {
	raw := d.index + amount
	d.index = mathx.Mod(raw, Base)
	return raw != d.index
}

// Decrement is Increment(-1).
func (d *Digit) Decrement() bool { return d.Increment(-1) }

func (d *Digit) Reset() { d.index = 0 }

// Value returns the digit, 0..9.
func (d *Digit) Value() int { return d.index }

// Render returns the illumination pattern for the current value.
func (d *Digit) Render() segment.Pattern { return segment.Glyphs[d.index] }

func (d *Digit) String() string { return d.Render().String() }
