package display

import (
	"strings"

	"segcounter-go/segment"
)

// ASCII renders digits (least significant first) as a five-row block with
// the most significant digit on the left. Each digit is four columns wide:
//
//	 _      a
//	| |    f b
//	 _      g
//	| |    e c
//	 _      d
func ASCII(sets []segment.Set) string {
	var b strings.Builder
	for row := 0; row < 5; row++ {
		for i := len(sets) - 1; i >= 0; i-- {
			s := sets[i]
			switch row {
			case 0:
				bar(&b, s.A)
			case 1:
				side(&b, s.F, s.B)
			case 2:
				bar(&b, s.G)
			case 3:
				side(&b, s.E, s.C)
			case 4:
				bar(&b, s.D)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func bar(b *strings.Builder, on bool) {
	if on {
		b.WriteString(" _  ")
		return
	}
	b.WriteString("    ")
}

func side(b *strings.Builder, left, right bool) {
	b.WriteByte(mark(left))
	b.WriteByte(' ')
	b.WriteByte(mark(right))
	b.WriteByte(' ')
}

func mark(on bool) byte {
	if on {
		return '|'
	}
	return ' '
}

// String renders the display's current outputs with ASCII.
func (d *Display) String() string { return ASCII(d.Segments()) }
