package quantity

import (
	"fmt"

	"gonum.org/v1/gonum/unit"
)

// Unit is a measurement unit with a fixed physical dimension and a linear
// scale to the SI unit of that dimension. Units are compared by value.
type Unit struct {
	name   string
	symbol string
	// scale is the SI value of one of this unit.
	scale float64
	// dim is one SI unit of the dimension this unit measures.
	dim unit.Uniter
}

// Length units.
var (
	Metre      = Unit{name: "metre", symbol: "m", scale: 1, dim: unit.Metre}
	Centimetre = Unit{name: "centimetre", symbol: "cm", scale: 1e-2, dim: unit.Metre}
	Millimetre = Unit{name: "millimetre", symbol: "mm", scale: 1e-3, dim: unit.Metre}
	Foot       = Unit{name: "foot", symbol: "ft", scale: 0.3048, dim: unit.Metre}
	Inch       = Unit{name: "inch", symbol: "in", scale: 0.0254, dim: unit.Metre}
)

// Area units.
var (
	SquareMetre      = Unit{name: "square metre", symbol: "m2", scale: 1, dim: unit.Area(1)}
	SquareCentimetre = Unit{name: "square centimetre", symbol: "cm2", scale: 1e-4, dim: unit.Area(1)}
	SquareFoot       = Unit{name: "square foot", symbol: "ft2", scale: 0.3048 * 0.3048, dim: unit.Area(1)}
)

// Power units.
var (
	Watt       = Unit{name: "watt", symbol: "W", scale: 1, dim: unit.Watt}
	Kilowatt   = Unit{name: "kilowatt", symbol: "kW", scale: 1e3, dim: unit.Watt}
	Horsepower = Unit{name: "horsepower", symbol: "hp", scale: 745.69987158227022, dim: unit.Watt}
)

// Force units.
var (
	Newton     = Unit{name: "newton", symbol: "N", scale: 1, dim: unit.Newton}
	Kilonewton = Unit{name: "kilonewton", symbol: "kN", scale: 1e3, dim: unit.Newton}
	PoundForce = Unit{name: "pound-force", symbol: "lbf", scale: 4.4482216152605, dim: unit.Newton}
)

// Dimensionless is the unit of pure numbers and ratios.
var Dimensionless = Unit{name: "dimensionless", symbol: "", scale: 1, dim: unit.Dimless(1)}

// registry lists every known unit. The first unit of each dimension is its SI unit.
var registry = []Unit{
	Metre, Centimetre, Millimetre, Foot, Inch,
	SquareMetre, SquareCentimetre, SquareFoot,
	Watt, Kilowatt, Horsepower,
	Newton, Kilonewton, PoundForce,
	Dimensionless,
}

// Name returns the long name of the unit.
func (u Unit) Name() string { return u.name }

// Symbol returns the ASCII symbol of the unit.
func (u Unit) Symbol() string { return u.symbol }

// Scale returns the SI value of one u.
func (u Unit) Scale() float64 { return u.scale }

// Valid reports whether u is a registered unit and not the zero Unit.
func (u Unit) Valid() bool { return u.dim != nil }

// SameDimension reports whether u and v measure the same physical dimension.
func (u Unit) SameDimension(v Unit) bool {
	if !u.Valid() || !v.Valid() {
		return false
	}
	return unit.DimensionsMatch(u.dim, v.dim)
}

func (u Unit) String() string {
	if u.symbol == "" {
		return u.name
	}
	return u.symbol
}

// ParseUnit looks up a registered unit by its symbol or name.
// The empty string yields Dimensionless.
func ParseUnit(s string) (Unit, error) {
	for _, u := range registry {
		if s == u.symbol || s == u.name {
			return u, nil
		}
	}
	return Unit{}, fmt.Errorf("unknown unit %q", s)
}

// siUnitFor returns the SI unit registered for the dimensions of d.
func siUnitFor(d unit.Uniter) (Unit, bool) {
	for _, u := range registry {
		if u.scale == 1 && unit.DimensionsMatch(u.dim, d) {
			return u, true
		}
	}
	return Unit{}, false
}
