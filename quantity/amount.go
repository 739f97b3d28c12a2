package quantity

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/unit"
)

var (
	// ErrDimensionMismatch is returned when combining amounts of incompatible dimension.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrUnsupportedConversion is returned when converting to a unit of another dimension.
	ErrUnsupportedConversion = errors.New("unsupported conversion")
)

// Amount is a scalar tagged with a unit. Amounts are immutable: every
// operation returns a new Amount. The zero Amount has no unit and is not Valid.
type Amount struct {
	value float64
	unit  Unit
}

// New returns an amount of v in unit u.
func New(v float64, u Unit) Amount {
	return Amount{value: v, unit: u}
}

// Metres returns an amount of length in metres.
func Metres(v float64) Amount { return New(v, Metre) }

// SquareMetres returns an amount of area in square metres.
func SquareMetres(v float64) Amount { return New(v, SquareMetre) }

// Value returns the magnitude of a in its own unit.
func (a Amount) Value() float64 { return a.value }

// Unit returns the unit a is expressed in.
func (a Amount) Unit() Unit { return a.unit }

// Valid reports whether a carries a unit.
func (a Amount) Valid() bool { return a.unit.Valid() }

// SI returns the magnitude of a in the SI unit of its dimension.
func (a Amount) SI() float64 { return a.value * a.unit.scale }

// IsLength reports whether a measures a length.
func (a Amount) IsLength() bool { return a.unit.SameDimension(Metre) }

// IsArea reports whether a measures an area.
func (a Amount) IsArea() bool { return a.unit.SameDimension(SquareMetre) }

// Dimensional returns a as a gonum unit value in SI. An amount without a
// unit is treated as dimensionless.
func (a Amount) Dimensional() *unit.Unit {
	if !a.Valid() {
		return unit.New(a.value, unit.Dimensions{})
	}
	d := a.unit.dim.Unit().Dimensions()
	return unit.New(a.SI(), d)
}

// ConvertTo expresses a in unit u. Conversions are linear scalings between
// units of the same dimension.
func (a Amount) ConvertTo(u Unit) (Amount, error) {
	if !a.unit.SameDimension(u) {
		return Amount{}, fmt.Errorf("%w: %s to %s", ErrUnsupportedConversion, a.unit.name, u.name)
	}
	if a.unit == u {
		return a, nil
	}
	return Amount{value: a.SI() / u.scale, unit: u}, nil
}

// In returns the magnitude of a expressed in unit u.
func (a Amount) In(u Unit) (float64, error) {
	c, err := a.ConvertTo(u)
	return c.value, err
}

// Add returns a+b expressed in the unit of a.
func (a Amount) Add(b Amount) (Amount, error) {
	bv, err := a.operand(b)
	if err != nil {
		return Amount{}, err
	}
	return Amount{value: a.value + bv, unit: a.unit}, nil
}

// Sub returns a-b expressed in the unit of a.
func (a Amount) Sub(b Amount) (Amount, error) {
	bv, err := a.operand(b)
	if err != nil {
		return Amount{}, err
	}
	return Amount{value: a.value - bv, unit: a.unit}, nil
}

// operand returns the value of b in the unit of a.
func (a Amount) operand(b Amount) (float64, error) {
	if !a.unit.SameDimension(b.unit) {
		return 0, fmt.Errorf("%w: %s and %s", ErrDimensionMismatch, a.unit.name, b.unit.name)
	}
	if a.unit == b.unit {
		return b.value, nil
	}
	return b.SI() / a.unit.scale, nil
}

// Scale returns k*a.
func (a Amount) Scale(k float64) Amount {
	return Amount{value: a.value * k, unit: a.unit}
}

// Div returns a/n.
func (a Amount) Div(n float64) Amount {
	return Amount{value: a.value / n, unit: a.unit}
}

// Half returns a/2.
func (a Amount) Half() Amount { return a.Div(2) }

// Neg returns -a.
func (a Amount) Neg() Amount { return a.Scale(-1) }

// Mul returns the product a*b in the SI unit of the product's dimension,
// for example length times length gives square metres.
func (a Amount) Mul(b Amount) (Amount, error) {
	if !a.Valid() || !b.Valid() {
		return Amount{}, fmt.Errorf("%w: product of unitless amount", ErrDimensionMismatch)
	}
	prod := unit.New(1, unit.Dimensions{})
	prod.Mul(a.Dimensional()).Mul(b.Dimensional())
	u, ok := siUnitFor(prod)
	if !ok {
		return Amount{}, fmt.Errorf("%w: no unit for %s times %s", ErrDimensionMismatch, a.unit.name, b.unit.name)
	}
	return Amount{value: prod.Value(), unit: u}, nil
}

// Compare returns -1, 0 or +1 depending on whether a is less than, equal
// to or greater than b.
func (a Amount) Compare(b Amount) (int, error) {
	bv, err := a.operand(b)
	if err != nil {
		return 0, err
	}
	switch {
	case a.value < bv:
		return -1, nil
	case a.value > bv:
		return 1, nil
	}
	return 0, nil
}

// IsFinite reports whether the magnitude of a is neither infinite nor NaN.
func (a Amount) IsFinite() bool {
	return !math.IsInf(a.value, 0) && !math.IsNaN(a.value)
}

// String formats a with its ASCII unit symbol, e.g. "1.6 m".
func (a Amount) String() string {
	v := strconv.FormatFloat(a.value, 'g', -1, 64)
	if !a.Valid() {
		return v
	}
	if a.unit.symbol == "" {
		return v
	}
	return v + " " + a.unit.symbol
}

// Format formats a using the verb's precision for the magnitude and
// appends the unit symbol, e.g. fmt.Sprintf("%.3f", a) gives "1.600 m".
func (a Amount) Format(fs fmt.State, c rune) {
	switch c {
	case 'v', 's':
		fmt.Fprint(fs, a.String())
		return
	case 'e', 'E', 'f', 'F', 'g', 'G':
		if p, ok := fs.Precision(); ok {
			fmt.Fprintf(fs, "%.*"+string(c), p, a.value)
		} else {
			fmt.Fprintf(fs, "%"+string(c), a.value)
		}
		if a.Valid() && a.unit.symbol != "" {
			fmt.Fprint(fs, " "+a.unit.symbol)
		}
	default:
		fmt.Fprintf(fs, "%%!%c(Amount=%s)", c, a.String())
	}
}
