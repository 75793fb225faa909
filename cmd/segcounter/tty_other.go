//go:build windows

package main

import "segcounter-go/errcode"

func openKeys() (func([]byte) (int, error), func(), error) {
	return nil, nil, &errcode.E{C: errcode.Unsupported, Op: "tty", Msg: "interactive mode needs a unix terminal; use script"}
}
