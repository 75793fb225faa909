package display

import (
	"image/color"

	"tinygo.org/x/drivers"

	"segcounter-go/segment"
	"segcounter-go/x/mathx"
)

// PixelConfig sizes the digits drawn by PixelRenderer.
type PixelConfig struct {
	Length    int16 // segment length in pixels
	Thickness int16
	Gap       int16 // horizontal space between digits
	On, Off   color.RGBA
}

// DefaultPixelConfig fits two digits on a 128x64 monochrome panel.
func DefaultPixelConfig() PixelConfig {
	return PixelConfig{
		Length:    20,
		Thickness: 4,
		Gap:       8,
		On:        color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Off:       color.RGBA{A: 255},
	}
}

// PixelRenderer draws segment sets as filled bars on a framebuffer display.
type PixelRenderer struct {
	dev drivers.Displayer
	cfg PixelConfig
}

func NewPixelRenderer(dev drivers.Displayer, cfg PixelConfig) *PixelRenderer {
	if cfg.Length <= 0 {
		cfg.Length = DefaultPixelConfig().Length
	}
	if cfg.Thickness <= 0 {
		cfg.Thickness = DefaultPixelConfig().Thickness
	}
	return &PixelRenderer{dev: dev, cfg: cfg}
}

// CellSize returns the pixel footprint of one digit.
func (r *PixelRenderer) CellSize() (w, h int16) {
	l, t := r.cfg.Length, r.cfg.Thickness
	return l + 2*t, 2*l + 3*t
}

// Bounds returns the panel size needed to draw n digits.
func (r *PixelRenderer) Bounds(n int) (w, h int16) {
	cw, ch := r.CellSize()
	if n < 1 {
		return 0, ch
	}
	return int16(n)*cw + int16(n-1)*r.cfg.Gap, ch
}

type rect struct{ x, y, w, h int16 }

// segRects returns a..g rectangles for a digit with its top-left at (x0,y0).
func (r *PixelRenderer) segRects(x0, y0 int16) [segment.Count]rect {
	l, t := r.cfg.Length, r.cfg.Thickness
	return [segment.Count]rect{
		{x0 + t, y0, l, t},               // a
		{x0 + t + l, y0 + t, t, l},       // b
		{x0 + t + l, y0 + 2*t + l, t, l}, // c
		{x0 + t, y0 + 2*t + 2*l, l, t},   // d
		{x0, y0 + 2*t + l, t, l},         // e
		{x0, y0 + t, t, l},               // f
		{x0 + t, y0 + t + l, l, t},       // g
	}
}

// Render draws sets (least significant first, most significant leftmost)
// and flushes the display.
func (r *PixelRenderer) Render(sets []segment.Set) error {
	w, _ := r.CellSize()
	for i := range sets {
		col := int16(len(sets) - 1 - i)
		x0 := col * (w + r.cfg.Gap)
		rects := r.segRects(x0, 0)
		for s, on := range sets[i].Bits() {
			c := r.cfg.Off
			if on {
				c = r.cfg.On
			}
			r.fill(rects[s], c)
		}
	}
	return r.dev.Display()
}

func (r *PixelRenderer) fill(rc rect, c color.RGBA) {
	maxX, maxY := r.dev.Size()
	x0, x1 := mathx.Clamp(rc.x, 0, maxX), mathx.Clamp(rc.x+rc.w, 0, maxX)
	y0, y1 := mathx.Clamp(rc.y, 0, maxY), mathx.Clamp(rc.y+rc.h, 0, maxY)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r.dev.SetPixel(x, y, c)
		}
	}
}
