package mathx

import "golang.org/x/exp/constraints"

// Mod returns the Euclidean remainder of a by m, always in [0, |m|).
// m == 0 yields 0.
func Mod[T constraints.Signed](a, m T) T {
	if m == 0 {
		return 0
	}
	r := a % m
	if r < 0 {
		if m < 0 {
			r -= m
		} else {
			r += m
		}
	}
	return r
}

// Sign returns -1, 0 or +1.
func Sign[T constraints.Signed](x T) T {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}
