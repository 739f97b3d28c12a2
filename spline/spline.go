// Package spline fits smooth curves through control stations.
//
// A Spline is a natural cubic spline: it passes exactly through every
// station and has zero curvature at both ends. Fitting solves a tridiagonal
// system with gonum, so refitting the same stations always yields the same
// curve bit for bit.
package spline

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
)

// MinStations is the least number of stations a Spline can be fitted through.
const MinStations = 3

// ErrDegenerateInput is returned when stations cannot define a spline.
var ErrDegenerateInput = errors.New("degenerate spline input")

// Station is a point with a known ordinate the curve must pass through.
type Station struct {
	X, Y float64
}

// Spline is a natural cubic interpolant over [Domain()].
type Spline struct {
	nc       interp.NaturalCubic
	min, max float64
}

// Fit fits a natural cubic spline through the stations (xs[i], ys[i]).
// xs must be strictly increasing and hold at least MinStations values.
func Fit(xs, ys []float64) (*Spline, error) {
	if err := validate(xs, ys); err != nil {
		return nil, err
	}
	s := &Spline{min: xs[0], max: xs[len(xs)-1]}
	if err := s.nc.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateInput, err)
	}
	return s, nil
}

// FitStations is like Fit but takes stations as points.
func FitStations(stations ...Station) (*Spline, error) {
	xs := make([]float64, len(stations))
	ys := make([]float64, len(stations))
	for i, st := range stations {
		xs[i] = st.X
		ys[i] = st.Y
	}
	return Fit(xs, ys)
}

// MustFit is like Fit but panics on error. Use it for literal stations.
func MustFit(xs, ys []float64) *Spline {
	s, err := Fit(xs, ys)
	if err != nil {
		panic(err)
	}
	return s
}

func validate(xs, ys []float64) error {
	switch {
	case len(xs) != len(ys):
		return fmt.Errorf("%w: %d abscissae for %d ordinates", ErrDegenerateInput, len(xs), len(ys))
	case len(xs) < MinStations:
		return fmt.Errorf("%w: need %d stations, got %d", ErrDegenerateInput, MinStations, len(xs))
	}
	for i := range xs {
		if !finite(xs[i]) || !finite(ys[i]) {
			return fmt.Errorf("%w: station %d is not finite (%g, %g)", ErrDegenerateInput, i, xs[i], ys[i])
		}
		if i > 0 && xs[i] <= xs[i-1] {
			return fmt.Errorf("%w: stations not strictly increasing at %d (%g <= %g)", ErrDegenerateInput, i, xs[i], xs[i-1])
		}
	}
	return nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// Evaluate returns the curve ordinate at x. Stations are reproduced exactly.
// Outside the domain the curve is held at the nearest end value.
func (s *Spline) Evaluate(x float64) float64 {
	return s.nc.Predict(x)
}

// Derivative returns the slope of the curve at x.
func (s *Spline) Derivative(x float64) float64 {
	return s.nc.PredictDerivative(x)
}

// EvaluateAll evaluates the curve at every x in xs and stores the result
// in dst, which is grown if needed. It returns dst.
func (s *Spline) EvaluateAll(dst, xs []float64) []float64 {
	if cap(dst) < len(xs) {
		dst = make([]float64, len(xs))
	}
	dst = dst[:len(xs)]
	for i, x := range xs {
		dst[i] = s.nc.Predict(x)
	}
	return dst
}

// Domain returns the first and last station abscissae.
func (s *Spline) Domain() (min, max float64) { return s.min, s.max }
