package core

import (
	"strconv"
	"sync"

	"segcounter-go/errcode"
	"segcounter-go/services/hal/internal/halcore"
)

// PinTable hands out GPIO pins to one owner at a time.
type PinTable struct {
	mu     sync.Mutex
	pf     halcore.PinFactory
	owners map[int]string // pin -> devID
}

func NewPinTable(pf halcore.PinFactory) *PinTable {
	return &PinTable{pf: pf, owners: map[int]string{}}
}

// ClaimPin reserves pin n for devID. Claiming a pin twice for the same
// device is allowed.
func (t *PinTable) ClaimPin(devID string, n int) (halcore.GPIOPin, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if owner, ok := t.owners[n]; ok && owner != devID {
		return nil, &errcode.E{C: errcode.PinInUse, Op: "claim", Msg: "pin " + strconv.Itoa(n) + " owned by " + owner}
	}
	p, ok := t.pf.ByNumber(n)
	if !ok {
		return nil, &errcode.E{C: errcode.UnknownPin, Op: "claim", Msg: "pin " + strconv.Itoa(n)}
	}
	t.owners[n] = devID
	return p, nil
}

// ReleasePin frees pin n if devID owns it.
func (t *PinTable) ReleasePin(devID string, n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.owners[n] == devID {
		delete(t.owners, n)
	}
}

// Owner returns the device holding pin n.
func (t *PinTable) Owner(n int) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id, ok := t.owners[n]
	return id, ok
}
