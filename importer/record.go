// Package importer reads aircraft component descriptions from XML and
// resolves their raw key/value fields into engines and nacelle parameters,
// substituting defaults for absent fields.
package importer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/soypat/acgeom/engine"
	"github.com/soypat/acgeom/nacelle"
	"github.com/soypat/acgeom/quantity"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrSyntax is returned for malformed field values.
	ErrSyntax = errors.New("syntax error")
	// ErrUnknownEngine is returned when a nacelle names an engine that is not defined.
	ErrUnknownEngine = errors.New("unknown engine")
)

// Record holds the raw fields of one component. Element text is stored
// under the element name and attributes under "element.attribute".
type Record map[string]string

// Estimator supplies a maximum diameter when a record asks for it to be
// calculated.
type Estimator interface {
	EstimateMaxDiameter(e *engine.Engine) (quantity.Amount, error)
}

// Nacelle field keys.
const (
	keyID              = "id"
	keyEngine          = "engine"
	keyMounting        = "mounting"
	keyDiameterMax     = "diameter_max"
	keyCalculate       = "diameter_max.calculate"
	keyLength          = "length"
	keyRoughness       = "roughness"
	keyKInlet          = "k_inlet"
	keyKOutlet         = "k_outlet"
	keyKLength         = "k_length"
	keyKDiameterOutlet = "k_diameter_outlet"
)

// Resolve returns a builder for the nacelle described by rec, with
// defaults for every absent optional field. When the maximum diameter is
// flagged calculate="true" it is obtained from est for engine e.
func Resolve(rec Record, e *engine.Engine, est Estimator) (*nacelle.Builder, error) {
	b := nacelle.NewBuilder()
	if id, ok := rec.get(keyID); ok {
		b.ID(id)
	}
	calc, err := rec.boolean(keyCalculate)
	if err != nil {
		return nil, err
	}
	if calc {
		if e == nil || est == nil {
			return nil, fmt.Errorf("%w: nacelle %q: calculated diameter needs an engine and an estimator", nacelle.ErrIncompleteConfiguration, rec[keyID])
		}
		d, err := est.EstimateMaxDiameter(e)
		if err != nil {
			return nil, fmt.Errorf("nacelle %q: %w", rec[keyID], err)
		}
		b.DiameterMax(d)
	} else if d, ok, err := rec.amount(keyDiameterMax, quantity.Metre); err != nil {
		return nil, err
	} else if ok {
		b.DiameterMax(d)
	}
	for _, f := range []struct {
		key string
		set func(quantity.Amount) *nacelle.Builder
	}{
		{keyLength, b.Length},
		{keyRoughness, b.Roughness},
	} {
		a, ok, err := rec.amount(f.key, quantity.Metre)
		if err != nil {
			return nil, err
		}
		if ok {
			f.set(a)
		}
	}
	for _, f := range []struct {
		key string
		set func(float64) *nacelle.Builder
	}{
		{keyKInlet, b.KInlet},
		{keyKOutlet, b.KOutlet},
		{keyKLength, b.KLength},
		{keyKDiameterOutlet, b.KDiameterOutlet},
	} {
		k, ok, err := rec.float(f.key)
		if err != nil {
			return nil, err
		}
		if ok {
			f.set(k)
		}
	}
	return b, nil
}

// Options returns the placement options of the nacelle described by rec:
// its mounting and the apex from the "apex.x", "apex.y" and "apex.z" fields.
func Options(rec Record) ([]nacelle.Option, error) {
	var opts []nacelle.Option
	if s, ok := rec.get(keyMounting); ok {
		m, err := nacelle.ParseMounting(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
		}
		opts = append(opts, nacelle.WithMounting(m))
	}
	var apex r3.Vec
	var found bool
	for _, c := range []struct {
		key string
		dst *float64
	}{
		{"apex.x", &apex.X},
		{"apex.y", &apex.Y},
		{"apex.z", &apex.Z},
	} {
		v, ok, err := rec.float(c.key)
		if err != nil {
			return nil, err
		}
		if ok {
			*c.dst = v
			found = true
		}
	}
	if found {
		opts = append(opts, nacelle.WithApex(apex))
	}
	return opts, nil
}

// Engine builds the engine described by rec. Only the identifier and type
// are required.
func Engine(rec Record) (*engine.Engine, error) {
	id, ok := rec.get(keyID)
	if !ok {
		return nil, fmt.Errorf("%w: engine without id", ErrSyntax)
	}
	e := &engine.Engine{Name: id}
	typ, ok := rec.get("type")
	if !ok {
		return nil, fmt.Errorf("%w: engine %q without type", ErrSyntax, id)
	}
	var err error
	e.Type, err = engine.ParseType(typ)
	if err != nil {
		return nil, fmt.Errorf("%w: engine %q: %v", ErrSyntax, id, err)
	}
	for _, f := range []struct {
		key string
		def quantity.Unit
		dst *quantity.Amount
	}{
		{"length", quantity.Metre, &e.OverallLength},
		{"static_thrust", quantity.Kilonewton, &e.StaticThrust},
		{"shaft_power", quantity.Kilowatt, &e.ShaftPower},
	} {
		a, ok, err := rec.amount(f.key, f.def)
		if err != nil {
			return nil, err
		}
		if ok {
			if !a.Unit().SameDimension(f.def) {
				return nil, fmt.Errorf("engine %q %s in %s: %w", id, f.key, a.Unit().Symbol(), quantity.ErrDimensionMismatch)
			}
			*f.dst = a
		}
	}
	return e, nil
}

func (r Record) get(key string) (string, bool) {
	v, ok := r[key]
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (r Record) float(key string) (float64, bool, error) {
	s, ok := r.get(key)
	if !ok {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %s = %q", ErrSyntax, key, s)
	}
	return v, true, nil
}

func (r Record) boolean(key string) (bool, error) {
	s, ok := r.get(key)
	if !ok {
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%w: %s = %q", ErrSyntax, key, s)
	}
	return v, nil
}

// amount parses the value at key in the unit named by key+".unit", or def
// when no unit is given.
func (r Record) amount(key string, def quantity.Unit) (quantity.Amount, bool, error) {
	v, ok, err := r.float(key)
	if err != nil || !ok {
		return quantity.Amount{}, false, err
	}
	u := def
	if sym, ok := r.get(key + ".unit"); ok {
		u, err = quantity.ParseUnit(sym)
		if err != nil {
			return quantity.Amount{}, false, fmt.Errorf("%w: %s: %v", ErrSyntax, key, err)
		}
	}
	return quantity.New(v, u), true, nil
}
