package core

import (
	"context"
	"testing"

	"segcounter-go/errcode"
	"segcounter-go/services/hal/internal/halcore"
)

type stubPin struct{ n int }

func (p *stubPin) ConfigureInput(halcore.Pull) error { return nil }
func (p *stubPin) ConfigureOutput(bool) error        { return nil }
func (p *stubPin) Set(bool)                          {}
func (p *stubPin) Get() bool                         { return false }
func (p *stubPin) Toggle()                           {}
func (p *stubPin) Number() int                       { return p.n }

// stubFactory knows pins 0..9.
type stubFactory struct{}

func (stubFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	if n < 0 || n > 9 {
		return nil, false
	}
	return &stubPin{n: n}, true
}

type dummyBuilder struct{}

func (dummyBuilder) Build(context.Context, BuilderInput) (Device, error) { return nil, nil }

func TestRegisterAndLookup(t *testing.T) {
	const typ = "test_dummy_builder"
	if _, ok := LookupBuilder(typ); ok {
		t.Skip("builder already registered by earlier test run")
	}
	RegisterBuilder(typ, dummyBuilder{})
	if _, ok := LookupBuilder(typ); !ok {
		t.Fatalf("lookup failed for %q", typ)
	}
	found := false
	for _, name := range BuilderTypes() {
		found = found || name == typ
	}
	if !found {
		t.Fatalf("BuilderTypes missing %q", typ)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	const typ = "test_duplicate_builder"
	if _, ok := LookupBuilder(typ); !ok {
		RegisterBuilder(typ, dummyBuilder{})
	}
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	RegisterBuilder(typ, dummyBuilder{})
}

func TestPinTableClaims(t *testing.T) {
	pt := NewPinTable(stubFactory{})

	p, err := pt.ClaimPin("btn_up", 3)
	if err != nil || p.Number() != 3 {
		t.Fatalf("claim failed: %v", err)
	}
	if _, err := pt.ClaimPin("btn_up", 3); err != nil {
		t.Fatalf("re-claim by owner should succeed: %v", err)
	}
	if _, err := pt.ClaimPin("btn_down", 3); errcode.Of(err) != errcode.PinInUse {
		t.Fatalf("want pin_in_use, got %v", err)
	}
	if _, err := pt.ClaimPin("btn_down", 42); errcode.Of(err) != errcode.UnknownPin {
		t.Fatalf("want unknown_pin, got %v", err)
	}

	pt.ReleasePin("btn_down", 3) // not the owner
	if id, ok := pt.Owner(3); !ok || id != "btn_up" {
		t.Fatalf("owner changed unexpectedly: %q %v", id, ok)
	}
	pt.ReleasePin("btn_up", 3)
	if _, ok := pt.Owner(3); ok {
		t.Fatal("pin should be free after release")
	}
	if _, err := pt.ClaimPin("btn_down", 3); err != nil {
		t.Fatalf("claim after release failed: %v", err)
	}
}

type params struct {
	Pin  int    `json:"pin"`
	Pull string `json:"pull"`
}

func TestDecodeParams(t *testing.T) {
	p, err := DecodeParams[params](params{Pin: 4})
	if err != nil || p.Pin != 4 {
		t.Fatalf("typed: %v %+v", err, p)
	}
	p, err = DecodeParams[params](&params{Pin: 5})
	if err != nil || p.Pin != 5 {
		t.Fatalf("pointer: %v %+v", err, p)
	}
	p, err = DecodeParams[params](map[string]any{"pin": int64(6), "pull": "up"})
	if err != nil || p.Pin != 6 || p.Pull != "up" {
		t.Fatalf("map: %v %+v", err, p)
	}
	p, err = DecodeParams[params](nil)
	if err != nil || p != (params{}) {
		t.Fatalf("nil: %v %+v", err, p)
	}
	if _, err := DecodeParams[params](map[string]any{"pin": "x"}); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("want invalid_params, got %v", err)
	}
}

func TestParsePull(t *testing.T) {
	if ParsePull("up") != PullUp || ParsePull("pulldown") != PullDown || ParsePull("x") != PullNone {
		t.Fatal("ParsePull mapping wrong")
	}
}

