package display

import (
	"testing"

	"github.com/stretchr/testify/require"

	"segcounter-go/segment"
)

func TestSegmentMapDecodesLowBitFirst(t *testing.T) {
	var outs [segment.Count]Output
	raw := make([]*VirtualOutput, segment.Count)
	for i := range outs {
		raw[i] = &VirtualOutput{}
		outs[i] = raw[i]
	}
	m := NewSegmentMap(outs)

	m.SetSegments(segment.Glyphs[1]) // b, c
	for i, o := range raw {
		want := i == segment.SegB || i == segment.SegC
		require.Equal(t, want, o.Get(), "segment %s", segment.Name(i))
	}
}

func TestSegmentMapRoundTrip(t *testing.T) {
	m := NewVirtualSegmentMap()
	for d, p := range segment.Glyphs {
		m.SetSegments(p)
		first := m.Segments()
		require.Equal(t, p, first.Encode(), "digit %d", d)

		m.SetSegments(first.Encode())
		require.Equal(t, first, m.Segments(), "digit %d", d)
	}
}

func TestDisplayShowZipsPatterns(t *testing.T) {
	d := NewVirtual(2)
	require.Equal(t, 2, d.Len())

	d.Show([]segment.Pattern{segment.Glyphs[3], segment.Glyphs[7], segment.Glyphs[8]})
	got := d.Segments()
	require.Equal(t, segment.Decode(segment.Glyphs[3]), got[0])
	require.Equal(t, segment.Decode(segment.Glyphs[7]), got[1])

	d.Show([]segment.Pattern{segment.Glyphs[5]})
	got = d.Segments()
	require.Equal(t, segment.Decode(segment.Glyphs[5]), got[0])
	require.Equal(t, segment.Decode(segment.Glyphs[7]), got[1], "digit without a pattern keeps its state")
}
