// Package counter implements a fixed-width decimal counter built from
// Digits that ripple carry and borrow from the least significant position.
package counter

import (
	"strconv"
	"strings"

	"segcounter-go/errcode"
	"segcounter-go/segment"
	"segcounter-go/x/mathx"
)

// DefaultDigits is the width used by the two-display board.
const DefaultDigits = 2

// Counter holds its digits least significant first. Values wrap silently
// at 10^N in both directions.
type Counter struct {
	digits []Digit
}

type Option func(*Counter)

// WithLampTest starts every digit at 8 so all segments light on power-up.
func WithLampTest() Option {
	return func(c *Counter) {
		for i := range c.digits {
			c.digits[i].index = 8
		}
	}
}

// New returns a counter with n digits, all zero unless an option says
// otherwise. n must be at least 1.
func New(n int, opts ...Option) (*Counter, error) {
	if n < 1 {
		return nil, &errcode.E{
			C:   errcode.InvalidConfig,
			Op:  "counter.New",
			Msg: "digit count must be >= 1, got " + strconv.Itoa(n),
		}
	}
	c := &Counter{digits: make([]Digit, n)}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Increment adds amount to the least significant digit and ripples a single
// unit (with amount's sign) into each higher digit for as long as the
// previous one wrapped. Amounts beyond ±1 therefore under-carry: 5 + 7
// yields 12, but 5 + 17 also yields 12. Callers only ever use ±1.
func (c *Counter) Increment(amount int) {
	carry := mathx.Sign(amount)
	step := amount
	for i := range c.digits {
		if !c.digits[i].Increment(step) {
			return
		}
		step = carry
	}
}

// Decrement is Increment(-1).
func (c *Counter) Decrement() { c.Increment(-1) }

// Reset zeros every digit.
func (c *Counter) Reset() {
	for i := range c.digits {
		c.digits[i].Reset()
	}
}

// Len returns the number of digits.
func (c *Counter) Len() int { return len(c.digits) }

// Digits returns the digit values, least significant first.
func (c *Counter) Digits() []int {
	out := make([]int, len(c.digits))
	for i := range c.digits {
		out[i] = c.digits[i].Value()
	}
	return out
}

// Value returns the counter as an integer in [0, 10^N).
func (c *Counter) Value() int {
	v := 0
	for i := len(c.digits) - 1; i >= 0; i-- {
		v = v*Base + c.digits[i].Value()
	}
	return v
}

// Render returns one pattern per digit, least significant first.
func (c *Counter) Render() []segment.Pattern {
	out := make([]segment.Pattern, len(c.digits))
	for i := range c.digits {
		out[i] = c.digits[i].Render()
	}
	return out
}

// String returns the zero-padded decimal value, most significant first.
func (c *Counter) String() string {
	var b strings.Builder
	b.Grow(len(c.digits))
	for i := len(c.digits) - 1; i >= 0; i-- {
		b.WriteByte(byte('0' + c.digits[i].Value()))
	}
	return b.String()
}
