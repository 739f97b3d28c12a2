// Package engine describes propulsion units as seen by component geometry:
// an identifier, a type, an overall length and a rating. It also provides a
// statistical estimate of the nacelle diameter a given engine needs.
package engine

import (
	"fmt"
	"strings"

	"github.com/soypat/acgeom/quantity"
)

// Type is the kind of propulsion unit.
type Type int

const (
	Turbofan Type = iota + 1
	Turbojet
	Turboprop
	Piston
)

func (t Type) String() string {
	switch t {
	case Turbofan:
		return "TURBOFAN"
	case Turbojet:
		return "TURBOJET"
	case Turboprop:
		return "TURBOPROP"
	case Piston:
		return "PISTON"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType parses an engine type name, case insensitive.
func ParseType(s string) (Type, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TURBOFAN":
		return Turbofan, nil
	case "TURBOJET":
		return Turbojet, nil
	case "TURBOPROP":
		return Turboprop, nil
	case "PISTON":
		return Piston, nil
	}
	return 0, fmt.Errorf("unknown engine type %q", s)
}

// Jet reports whether the engine is rated by thrust rather than shaft power.
func (t Type) Jet() bool { return t == Turbofan || t == Turbojet }

// Engine is a propulsion unit. Zero-valued amounts mean unknown.
type Engine struct {
	Name          string
	Type          Type
	OverallLength quantity.Amount
	StaticThrust  quantity.Amount
	ShaftPower    quantity.Amount
}

// ID returns the engine name.
func (e *Engine) ID() string { return e.Name }

// Category returns the engine type name.
func (e *Engine) Category() string { return e.Type.String() }

// Length returns the overall engine length and whether it is known.
func (e *Engine) Length() (quantity.Amount, bool) {
	return e.OverallLength, e.OverallLength.Valid()
}

func (e *Engine) String() string {
	s := e.Name + " (" + e.Type.String()
	if l, ok := e.Length(); ok {
		s += ", " + l.String()
	}
	return s + ")"
}
