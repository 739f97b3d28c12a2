package engine

import (
	"errors"
	"fmt"

	"github.com/soypat/acgeom/quantity"
	"gonum.org/v1/gonum/interp"
)

// ErrNoEstimate is returned when an engine lacks the data an estimate needs.
var ErrNoEstimate = errors.New("no diameter estimate")

// regression is a piecewise linear fit of nacelle maximum diameter [m]
// against engine rating. Ratings beyond the table hold the end diameter.
type regression struct {
	rating   quantity.Unit
	xs, diam []float64
}

// Diameter regressions for existing installations. Jets are rated by static
// thrust, propeller engines by shaft power.
var regressions = map[Type]regression{
	Turbofan: {
		rating: quantity.Kilonewton,
		xs:     []float64{20, 50, 100, 150, 250, 350, 500},
		diam:   []float64{0.9, 1.3, 1.9, 2.4, 3.0, 3.6, 4.1},
	},
	Turbojet: {
		rating: quantity.Kilonewton,
		xs:     []float64{10, 50, 100, 200},
		diam:   []float64{0.5, 0.9, 1.2, 1.6},
	},
	Turboprop: {
		rating: quantity.Kilowatt,
		xs:     []float64{500, 1000, 2000, 4000, 8000},
		diam:   []float64{0.8, 1.0, 1.2, 1.5, 1.9},
	},
	Piston: {
		rating: quantity.Kilowatt,
		xs:     []float64{100, 200, 300, 500},
		diam:   []float64{0.6, 0.75, 0.85, 1.0},
	},
}

// Statistical estimates nacelle maximum diameter from engine ratings.
// The zero value is ready to use.
type Statistical struct{}

// EstimateMaxDiameter returns the statistical nacelle maximum diameter for e.
func (Statistical) EstimateMaxDiameter(e *Engine) (quantity.Amount, error) {
	reg, ok := regressions[e.Type]
	if !ok {
		return quantity.Amount{}, fmt.Errorf("%w: engine %q has unsupported type %v", ErrNoEstimate, e.Name, e.Type)
	}
	rating := e.ShaftPower
	if e.Type.Jet() {
		rating = e.StaticThrust
	}
	if !rating.Valid() || rating.Value() <= 0 {
		return quantity.Amount{}, fmt.Errorf("%w: engine %q has no rating", ErrNoEstimate, e.Name)
	}
	x, err := rating.In(reg.rating)
	if err != nil {
		return quantity.Amount{}, fmt.Errorf("%w: engine %q: %v", ErrNoEstimate, e.Name, err)
	}
	var pl interp.PiecewiseLinear
	if err := pl.Fit(reg.xs, reg.diam); err != nil {
		return quantity.Amount{}, err
	}
	return quantity.Metres(pl.Predict(x)), nil
}
