package acgeom

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Tolerance is the relative tolerance used when comparing derived geometry.
const Tolerance = 1e-9

// ErrShortSpan is returned by Span when fewer than two samples are requested.
var ErrShortSpan = errors.New("span needs at least two samples")

// Span returns n evenly spaced values over [lo, hi]. The first value is
// exactly lo and the last exactly hi.
func Span(n int, lo, hi float64) ([]float64, error) {
	if n < 2 {
		return nil, ErrShortSpan
	}
	s := floats.Span(make([]float64, n), lo, hi)
	// floats.Span accumulates lo+step*i; pin the end so it matches hi bit for bit.
	s[n-1] = hi
	return s, nil
}

// Floating Point Comparisons
// See: http://floating-point-gui.de/errors/NearlyEqualsTest.java

const minNormal = 2.2250738585072014e-308 // 2**-1022

// EqualFloat64 compares two float64 values for equality.
func EqualFloat64(a, b, epsilon float64) bool {
	if a == b {
		return true
	}
	absA := math.Abs(a)
	absB := math.Abs(b)
	diff := math.Abs(a - b)
	if a == 0 || b == 0 || diff < minNormal {
		// a or b is zero or both are extremely close to it
		// relative error is less meaningful here
		return diff < (epsilon * minNormal)
	}
	// use relative error
	return diff/math.Min((absA+absB), math.MaxFloat64) < epsilon
}
