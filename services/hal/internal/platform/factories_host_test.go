//go:build !rp2040 && !rp2350

package platform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"segcounter-go/services/hal/internal/halcore"
)

func TestFakePinPullUpIdlesHigh(t *testing.T) {
	f := NewHostPinFactory()
	gp, ok := f.ByNumber(11)
	require.True(t, ok)
	require.NoError(t, gp.ConfigureInput(halcore.PullUp))
	require.True(t, gp.Get())

	p := f.Pin(11)
	require.Same(t, p, f.Pin(11), "factory returns stable pins")

	p.Drive(false)
	require.False(t, gp.Get())
	p.Release()
	require.True(t, gp.Get())
}

func TestFakePinOutput(t *testing.T) {
	f := NewHostPinFactory()
	p := f.Pin(2)
	require.NoError(t, p.ConfigureOutput(true))
	require.True(t, p.IsOutput())
	require.True(t, p.Get())

	p.Toggle()
	require.False(t, p.Get())
	p.Set(true)
	require.Equal(t, 2, p.Writes())

	_, ok := f.ByNumber(-1)
	require.False(t, ok)
}
