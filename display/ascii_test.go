package display

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"segcounter-go/segment"
)

func TestASCIITen(t *testing.T) {
	sets := []segment.Set{
		segment.Decode(segment.Glyphs[0]), // ones
		segment.Decode(segment.Glyphs[1]), // tens
	}
	want := strings.Join([]string{
		"     _  ",
		"  | | | ",
		"        ",
		"  | | | ",
		"     _  ",
	}, "\n") + "\n"
	require.Equal(t, want, ASCII(sets))
}

func TestASCIIEight(t *testing.T) {
	want := " _  \n| | \n _  \n| | \n _  \n"
	require.Equal(t, want, ASCII([]segment.Set{segment.Decode(segment.Glyphs[8])}))
}

func TestASCIIAlwaysFiveRows(t *testing.T) {
	d := NewVirtual(3)
	d.Show([]segment.Pattern{segment.Glyphs[4], segment.Glyphs[2], segment.Glyphs[9]})
	out := d.String()
	rows := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, rows, 5)
	for _, r := range rows {
		require.Len(t, r, 12)
	}
	require.Equal(t, "\n\n\n\n\n", ASCII(nil))
}
