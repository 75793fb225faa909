package display

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"segcounter-go/segment"
)

type fakePanel struct {
	w, h     int16
	px       map[[2]int16]color.RGBA
	flushes  int
	flushErr error
}

func newFakePanel(w, h int16) *fakePanel {
	return &fakePanel{w: w, h: h, px: map[[2]int16]color.RGBA{}}
}

func (f *fakePanel) Size() (int16, int16) { return f.w, f.h }
func (f *fakePanel) SetPixel(x, y int16, c color.RGBA) {
	f.px[[2]int16{x, y}] = c
}
func (f *fakePanel) Display() error {
	f.flushes++
	return f.flushErr
}

func TestPixelRendererDrawsLitSegments(t *testing.T) {
	panel := newFakePanel(128, 64)
	cfg := DefaultPixelConfig()
	r := NewPixelRenderer(panel, cfg)

	// one digit showing "1": b and c lit, a off.
	err := r.Render([]segment.Set{segment.Decode(segment.Glyphs[1])})
	require.NoError(t, err)
	require.Equal(t, 1, panel.flushes)

	l, th := cfg.Length, cfg.Thickness
	require.Equal(t, cfg.Off, panel.px[[2]int16{th, 0}], "segment a off")
	require.Equal(t, cfg.On, panel.px[[2]int16{th + l, th}], "segment b on")
	require.Equal(t, cfg.On, panel.px[[2]int16{th + l, 2*th + l}], "segment c on")

	w, h := r.CellSize()
	require.Equal(t, l+2*th, w)
	require.Equal(t, 2*l+3*th, h)
}

func TestPixelRendererMostSignificantLeft(t *testing.T) {
	panel := newFakePanel(128, 64)
	cfg := DefaultPixelConfig()
	r := NewPixelRenderer(panel, cfg)

	sets := []segment.Set{
		segment.Decode(segment.Glyphs[8]), // ones, right
		{},                                // tens, left, blank
	}
	require.NoError(t, r.Render(sets))
	w, _ := r.CellSize()
	require.Equal(t, cfg.Off, panel.px[[2]int16{cfg.Thickness, 0}])
	require.Equal(t, cfg.On, panel.px[[2]int16{w + cfg.Gap + cfg.Thickness, 0}])
}

func TestPixelRendererClipsAndPropagatesErrors(t *testing.T) {
	panel := newFakePanel(10, 10)
	panel.flushErr = errors.New("i2c nack")
	r := NewPixelRenderer(panel, PixelConfig{})

	err := r.Render([]segment.Set{segment.Decode(segment.Glyphs[8])})
	require.ErrorIs(t, err, panel.flushErr)
	for k := range panel.px {
		require.True(t, k[0] >= 0 && k[0] < 10 && k[1] >= 0 && k[1] < 10)
	}
}
