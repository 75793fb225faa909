//go:build !rp2040 && !rp2350

package hal

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"segcounter-go/bus"
	"segcounter-go/errcode"
	"segcounter-go/segment"
	"segcounter-go/services/hal/devices/gpio_button"
	"segcounter-go/services/hal/devices/seven_segment"
	"segcounter-go/types"
)

func testConfig() types.HALConfig {
	return types.HALConfig{Devices: []types.HALDevice{
		{ID: "btn_up", Type: "gpio_button", Params: gpio_button.Params{Pin: 11, Pull: "up", Invert: true}},
		// map params, as produced by the TOML config loader
		{ID: "digit_ones", Type: "seven_segment", Params: map[string]any{
			"pins":       []any{0, 1, 2, 3, 4, 5, 6},
			"active_low": true,
		}},
	}}
}

func TestApplyBuildsDevices(t *testing.T) {
	pf := NewHostPinFactory()
	b := bus.NewBus(8)
	conn := b.NewConnection("test")
	state := conn.Subscribe(TopicState())
	info := conn.Subscribe(bus.T("hal", "dev", "+", "info"))

	h := New(pf, conn, zerolog.Nop())
	require.NoError(t, h.Apply(context.Background(), testConfig()))
	require.Equal(t, []string{"btn_up", "digit_ones"}, h.Devices())

	select {
	case m := <-state.Channel():
		require.Equal(t, "ready", m.Payload.(types.HALState).Level)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("no hal/state published")
	}
	for i := 0; i < 2; i++ {
		select {
		case m := <-info.Channel():
			require.Equal(t, 1, m.Payload.(types.Info).SchemaVersion)
		case <-time.After(100 * time.Millisecond):
			t.Fatal("missing device info")
		}
	}

	// Applying again is additive and leaves existing devices alone.
	require.NoError(t, h.Apply(context.Background(), testConfig()))
}

func TestActiveLowButton(t *testing.T) {
	pf := NewHostPinFactory()
	h := New(pf, nil, zerolog.Nop())
	require.NoError(t, h.Apply(context.Background(), testConfig()))

	src, err := h.Button("btn_up")
	require.NoError(t, err)

	pressed, err := src.Read()
	require.NoError(t, err)
	require.False(t, pressed, "pull-up idles high, released")

	pf.Pin(11).Drive(false)
	pressed, err = src.Read()
	require.NoError(t, err)
	require.True(t, pressed)

	require.NoError(t, h.Close())
	_, err = src.Read()
	require.Equal(t, errcode.HALNotReady, errcode.Of(err))
}

func TestActiveLowSegmentsInvertPhysicalLevel(t *testing.T) {
	pf := NewHostPinFactory()
	h := New(pf, nil, zerolog.Nop())
	require.NoError(t, h.Apply(context.Background(), testConfig()))

	for n := 0; n < segment.Count; n++ {
		require.True(t, pf.Pin(n).Get(), "dark segment on common anode is high")
		require.True(t, pf.Pin(n).IsOutput())
	}

	sm, err := h.Digit("digit_ones")
	require.NoError(t, err)
	sm.SetSegments(segment.Glyphs[1])

	for n := 0; n < segment.Count; n++ {
		lit := n == segment.SegB || n == segment.SegC
		require.Equal(t, !lit, pf.Pin(n).Get(), "pin %d", n)
	}
	require.Equal(t, segment.Decode(segment.Glyphs[1]), sm.Segments())
}

func TestApplyErrors(t *testing.T) {
	pf := NewHostPinFactory()
	h := New(pf, nil, zerolog.Nop())

	cfg := types.HALConfig{Devices: []types.HALDevice{
		{ID: "a", Type: "gpio_button", Params: gpio_button.Params{Pin: 3}},
		{ID: "b", Type: "gpio_button", Params: gpio_button.Params{Pin: 3}},
		{ID: "c", Type: "nope"},
		{ID: "d", Type: "seven_segment", Params: seven_segment.Params{Pins: []int{1, 2}}},
		{ID: "e", Type: "seven_segment", Params: seven_segment.Params{Pins: []int{20, 21, 22, 3, 24, 25, 26}}},
	}}
	err := h.Apply(context.Background(), cfg)
	require.Error(t, err)
	require.ErrorIs(t, err, errcode.PinInUse)
	require.ErrorIs(t, err, errcode.Unsupported)
	require.ErrorIs(t, err, errcode.InvalidParams)
	require.Equal(t, []string{"a"}, h.Devices())

	// e released the pins it claimed before hitting pin 3.
	require.NoError(t, h.Apply(context.Background(), types.HALConfig{Devices: []types.HALDevice{
		{ID: "f", Type: "gpio_button", Params: gpio_button.Params{Pin: 20}},
	}}))

	_, err = h.Button("zzz")
	require.Equal(t, errcode.UnknownDevice, errcode.Of(err))
	_, err = h.Digit("a")
	require.Equal(t, errcode.Unsupported, errcode.Of(err))
}

func TestSevenSegmentRejectsDuplicatePins(t *testing.T) {
	pf := NewHostPinFactory()
	h := New(pf, nil, zerolog.Nop())

	err := h.Apply(context.Background(), types.HALConfig{Devices: []types.HALDevice{
		{ID: "digit_ones", Type: "seven_segment", Params: seven_segment.Params{Pins: []int{0, 1, 2, 3, 4, 5, 0}}},
	}})
	require.ErrorIs(t, err, errcode.InvalidParams)
	require.Empty(t, h.Devices())

	// Nothing was claimed.
	require.NoError(t, h.Apply(context.Background(), types.HALConfig{Devices: []types.HALDevice{
		{ID: "btn_up", Type: "gpio_button", Params: gpio_button.Params{Pin: 0}},
	}}))
}
