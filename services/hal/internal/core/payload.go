package core

import (
	"encoding/json"

	"segcounter-go/errcode"
)

// DecodeParams accepts T, *T, or any JSON-like value (e.g. a map decoded
// from TOML) and returns it as T. A nil payload yields the zero value.
func DecodeParams[T any](v any) (T, error) {
	var out T
	switch p := v.(type) {
	case nil:
		return out, nil
	case T:
		return p, nil
	case *T:
		if p == nil {
			return out, errcode.InvalidParams
		}
		return *p, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return out, &errcode.E{C: errcode.InvalidParams, Op: "decode", Err: err}
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, &errcode.E{C: errcode.InvalidParams, Op: "decode", Err: err}
	}
	return out, nil
}

// ParsePull maps "up"/"down" (and their aliases) to a Pull; anything else
// is PullNone.
func ParsePull(s string) Pull {
	switch s {
	case "up", "UP", "pullup":
		return PullUp
	case "down", "DOWN", "pulldown":
		return PullDown
	default:
		return PullNone
	}
}
