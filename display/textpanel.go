package display

import (
	"bytes"
	"image/color"
	"io"

	"tinygo.org/x/drivers"
)

var _ drivers.Displayer = (*TextPanel)(nil)

// TextPanel is an in-memory monochrome framebuffer. Display writes the
// frame to out as text, one line per pixel row: lit pixels as '#', dark
// ones as spaces. It stands in for an OLED when running on a host.
type TextPanel struct {
	w, h int16
	px   []bool
	out  io.Writer
	buf  bytes.Buffer
}

func NewTextPanel(w, h int16, out io.Writer) *TextPanel {
	return &TextPanel{w: w, h: h, px: make([]bool, int(w)*int(h)), out: out}
}

func (p *TextPanel) Size() (x, y int16) { return p.w, p.h }

// SetPixel lights the pixel for any non-black, non-transparent colour.
func (p *TextPanel) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= p.w || y >= p.h {
		return
	}
	p.px[int(y)*int(p.w)+int(x)] = c.A != 0 && (c.R|c.G|c.B) != 0
}

// Lit reports the state of one pixel.
func (p *TextPanel) Lit(x, y int16) bool {
	if x < 0 || y < 0 || x >= p.w || y >= p.h {
		return false
	}
	return p.px[int(y)*int(p.w)+int(x)]
}

func (p *TextPanel) Display() error {
	p.buf.Reset()
	for y := int16(0); y < p.h; y++ {
		for x := int16(0); x < p.w; x++ {
			if p.Lit(x, y) {
				p.buf.WriteByte('#')
			} else {
				p.buf.WriteByte(' ')
			}
		}
		p.buf.WriteByte('\n')
	}
	_, err := p.out.Write(p.buf.Bytes())
	return err
}
