package errcode

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestCodesAreStableStrings(t *testing.T) {
	cases := map[string]Code{
		"ok":             OK,
		"invalid_config": InvalidConfig,
		"unknown_pin":    UnknownPin,
		"pin_in_use":     PinInUse,
		"read_failed":    ReadFailed,
	}
	for want, c := range cases {
		if c.Error() != want {
			t.Fatalf("code %q mismatch: got %q", want, c.Error())
		}
	}
}

func TestOf(t *testing.T) {
	if Of(nil) != OK {
		t.Fatalf("Of(nil) should be ok")
	}
	if Of(PinInUse) != PinInUse {
		t.Fatalf("Of(Code) should return the code")
	}
	if Of(&E{C: InvalidConfig}) != InvalidConfig {
		t.Fatalf("Of(*E) should return its code")
	}
	if Of(io.EOF) != Error {
		t.Fatalf("Of(foreign) should fall back to error")
	}
}

func TestOfThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("build digit_0: %w", &E{C: PinInUse, Op: "claim"})
	if Of(err) != PinInUse {
		t.Fatalf("Of(wrapped *E) = %q, want pin_in_use", Of(err))
	}
	err = fmt.Errorf("decode: %w", InvalidParams)
	if Of(err) != InvalidParams {
		t.Fatalf("Of(wrapped Code) = %q, want invalid_params", Of(err))
	}
	// The outermost coded error wins over a code further down the chain.
	err = fmt.Errorf("ctx: %w", Wrap(ReadFailed, "tick", HALNotReady))
	if Of(err) != ReadFailed {
		t.Fatalf("Of(nested) = %q, want read_failed", Of(err))
	}
}

func TestWrapUnwrapAndIs(t *testing.T) {
	err := Wrap(ReadFailed, "controller.tick", io.ErrUnexpectedEOF)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("cause should be reachable through Unwrap")
	}
	if !errors.Is(err, ReadFailed) {
		t.Fatalf("errors.Is should match by code")
	}
	if got := err.Error(); got != "controller.tick: read_failed: unexpected EOF" {
		t.Fatalf("unexpected message %q", got)
	}
}
