package button

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// seq returns the given levels in order, then repeats the last one.
type seq struct {
	levels []bool
	i      int
	err    error
}

func (s *seq) Read() (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	v := s.levels[s.i]
	if s.i < len(s.levels)-1 {
		s.i++
	}
	return v, nil
}

func TestFirstSampleHasNoPriorState(t *testing.T) {
	d := NewDetector(&seq{levels: []bool{true}})
	require.False(t, d.Sampled())
	require.False(t, d.StateChanged(), "uninitialised detector never reports a change")

	v, err := d.Sample()
	require.NoError(t, err)
	require.True(t, v)
	require.True(t, d.Sampled())
	require.False(t, d.StateChanged())
}

func TestStateChangedConsumes(t *testing.T) {
	d := NewDetector(&seq{levels: []bool{false, true}})
	_, _ = d.Sample()
	_, _ = d.Sample()

	require.True(t, d.StateChanged())
	require.False(t, d.StateChanged(), "second call without Sample must be false")
}

func TestSampleWithoutConsumeShiftsLatch(t *testing.T) {
	// true, false, false: the change happened between samples 1 and 2 but
	// StateChanged is only asked after sample 3, so it is lost.
	d := NewDetector(&seq{levels: []bool{true, false, false}})
	_, _ = d.Sample()
	_, _ = d.Sample()
	_, _ = d.Sample()
	require.False(t, d.StateChanged())
}

func TestPollEdges(t *testing.T) {
	d := NewDetector(&seq{levels: []bool{false, false, true, true, false, true}})
	want := []Edge{EdgeNone, EdgeNone, EdgeRising, EdgeNone, EdgeFalling, EdgeRising, EdgeNone}
	for i, w := range want {
		got, err := d.Poll()
		require.NoError(t, err)
		require.Equal(t, w, got, "poll %d", i)
	}
}

func TestPollFirstIsBaseline(t *testing.T) {
	d := NewDetector(SourceFunc(func() (bool, error) { return true, nil }))
	e, err := d.Poll()
	require.NoError(t, err)
	require.Equal(t, EdgeNone, e)
}

func TestReadErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	d := NewDetector(&seq{err: boom})
	_, err := d.Sample()
	require.ErrorIs(t, err, boom)
	e, err := d.Poll()
	require.ErrorIs(t, err, boom)
	require.Equal(t, EdgeNone, e)
	require.False(t, d.Sampled())
}

func TestEdgeString(t *testing.T) {
	require.Equal(t, "rising", EdgeRising.String())
	require.Equal(t, "falling", EdgeFalling.String())
	require.Equal(t, "none", EdgeNone.String())
}
