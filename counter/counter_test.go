package counter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"segcounter-go/errcode"
	"segcounter-go/segment"
)

func mustNew(t *testing.T, n int, opts ...Option) *Counter {
	t.Helper()
	c, err := New(n, opts...)
	require.NoError(t, err)
	return c
}

func set(t *testing.T, c *Counter, v int) {
	t.Helper()
	c.Reset()
	for i := 0; i < v; i++ {
		c.Increment(1)
	}
	require.Equal(t, v, c.Value())
}

func TestNewRejectsZeroDigits(t *testing.T) {
	c, err := New(0)
	require.Nil(t, c)
	require.Error(t, err)
	require.True(t, errors.Is(err, errcode.InvalidConfig))
	require.Equal(t, errcode.InvalidConfig, errcode.Of(err))

	_, err = New(-3)
	require.Error(t, err)
}

func TestNewStartsAtZero(t *testing.T) {
	c := mustNew(t, DefaultDigits)
	require.Equal(t, 2, c.Len())
	require.Equal(t, "00", c.String())
	require.Equal(t, []int{0, 0}, c.Digits())
}

func TestLampTestStartsAtEights(t *testing.T) {
	c := mustNew(t, 2, WithLampTest())
	require.Equal(t, "88", c.String())
	require.Equal(t, []segment.Pattern{segment.Glyphs[8], segment.Glyphs[8]}, c.Render())
}

func TestCarryPropagation(t *testing.T) {
	c := mustNew(t, 2)

	set(t, c, 9)
	require.Equal(t, []int{9, 0}, c.Digits())
	c.Increment(1)
	require.Equal(t, []int{0, 1}, c.Digits())
	require.Equal(t, "10", c.String())

	set(t, c, 99)
	c.Increment(1)
	require.Equal(t, "00", c.String())
	require.Equal(t, 0, c.Value())
}

func TestBorrowPropagation(t *testing.T) {
	c := mustNew(t, 2)
	c.Decrement()
	require.Equal(t, "99", c.String())

	set(t, c, 10)
	c.Decrement()
	require.Equal(t, "09", c.String())
}

func TestFullCycleVisitsEveryValueOnce(t *testing.T) {
	c := mustNew(t, 3)
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		require.False(t, seen[c.Value()], "value %d repeated", c.Value())
		seen[c.Value()] = true
		c.Increment(1)
	}
	require.Equal(t, 0, c.Value())
}

func TestMultiUnitIncrementCarriesOneUnit(t *testing.T) {
	c := mustNew(t, 2)
	set(t, c, 5)
	c.Increment(7)
	require.Equal(t, "12", c.String())

	set(t, c, 5)
	c.Increment(17)
	require.Equal(t, "12", c.String(), "higher digits only ever receive a single unit")
}

func TestResetRendersZeroGlyphs(t *testing.T) {
	for _, n := range []int{1, 2, 4} {
		c := mustNew(t, n)
		for i := 0; i < 37; i++ {
			c.Increment(1)
		}
		c.Reset()
		r := c.Render()
		require.Len(t, r, n)
		for _, p := range r {
			require.Equal(t, segment.Glyphs[0], p)
		}
	}
}

func TestRenderLeastSignificantFirst(t *testing.T) {
	c := mustNew(t, 2)
	set(t, c, 42)
	require.Equal(t, []segment.Pattern{segment.Glyphs[2], segment.Glyphs[4]}, c.Render())
}

func TestSingleDigitCounterWraps(t *testing.T) {
	c := mustNew(t, 1)
	c.Decrement()
	require.Equal(t, "9", c.String())
	c.Increment(1)
	require.Equal(t, "0", c.String())
}
