//go:build !windows

package main

import "github.com/pkg/term"

// openKeys puts the controlling terminal in cbreak mode so single key
// presses arrive without Enter. The returned func restores and closes it.
func openKeys() (read func([]byte) (int, error), restore func(), err error) {
	t, err := term.Open("/dev/tty", term.CBreakMode)
	if err != nil {
		return nil, nil, err
	}
	return t.Read, func() {
		_ = t.Restore()
		_ = t.Close()
	}, nil
}
