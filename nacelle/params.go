package nacelle

import (
	"fmt"
	"math"

	"github.com/soypat/acgeom/quantity"
)

// Shape ratio defaults applied by NewBuilder.
const (
	DefaultKInlet          = 0.8
	DefaultKOutlet         = 0.2
	DefaultKLength         = 0.35
	DefaultKDiameterOutlet = 0.0
)

// DefaultRoughness is the equivalent sand roughness of a painted metal skin.
var DefaultRoughness = quantity.Metres(0.405e-5)

// Parameters are the design parameters of a nacelle. A Parameters value is
// immutable once built and may be shared between models; use Modify or
// Override to derive a changed copy.
type Parameters struct {
	id          string
	roughness   quantity.Amount
	diameterMax quantity.Amount
	length      quantity.Amount

	kInlet          float64
	kOutlet         float64
	kLength         float64
	kDiameterOutlet float64
}

// ID returns the component identifier.
func (p Parameters) ID() string { return p.id }

// Roughness returns the equivalent sand roughness of the skin.
func (p Parameters) Roughness() quantity.Amount { return p.roughness }

// DiameterMax returns the maximum diameter.
func (p Parameters) DiameterMax() quantity.Amount { return p.diameterMax }

// Length returns the nacelle length and whether it was set. When unset the
// model uses the length of its reference source.
func (p Parameters) Length() (quantity.Amount, bool) { return p.length, p.length.Valid() }

// KInlet is the inlet diameter as a fraction of the maximum diameter.
func (p Parameters) KInlet() float64 { return p.kInlet }

// KOutlet is the outlet diameter as a fraction of the maximum diameter.
func (p Parameters) KOutlet() float64 { return p.kOutlet }

// KLength is the axial station of maximum diameter as a fraction of the length.
func (p Parameters) KLength() float64 { return p.kLength }

// KDiameterOutlet is the vertical offset of the outlet centre as a fraction
// of the maximum diameter.
func (p Parameters) KDiameterOutlet() float64 { return p.kDiameterOutlet }

// Modify returns a builder seeded with every field of p.
func (p Parameters) Modify() *Builder {
	return &Builder{p: p}
}

// Override returns a copy of p with the changes applied by edit. p itself is
// never modified.
func (p Parameters) Override(edit func(b *Builder)) (Parameters, error) {
	b := p.Modify()
	edit(b)
	return b.Build()
}

// Builder assembles Parameters. The zero Builder has no defaults; use NewBuilder.
type Builder struct {
	p Parameters
}

// NewBuilder returns a builder with every optional field set to its default
// and the identifier and maximum diameter unset.
func NewBuilder() *Builder {
	return &Builder{p: Parameters{
		roughness:       DefaultRoughness,
		kInlet:          DefaultKInlet,
		kOutlet:         DefaultKOutlet,
		kLength:         DefaultKLength,
		kDiameterOutlet: DefaultKDiameterOutlet,
	}}
}

// ID sets the component identifier. Required.
func (b *Builder) ID(id string) *Builder { b.p.id = id; return b }

// DiameterMax sets the maximum diameter. Required.
func (b *Builder) DiameterMax(d quantity.Amount) *Builder { b.p.diameterMax = d; return b }

// Roughness sets the equivalent sand roughness of the skin.
func (b *Builder) Roughness(r quantity.Amount) *Builder { b.p.roughness = r; return b }

// Length sets the nacelle length, overriding the reference source length.
func (b *Builder) Length(l quantity.Amount) *Builder { b.p.length = l; return b }

// ClearLength unsets the nacelle length so the reference source length is used.
func (b *Builder) ClearLength() *Builder { b.p.length = quantity.Amount{}; return b }

// KInlet sets the inlet to maximum diameter ratio, in (0, 1].
func (b *Builder) KInlet(k float64) *Builder { b.p.kInlet = k; return b }

// KOutlet sets the outlet to maximum diameter ratio, in (0, 1].
func (b *Builder) KOutlet(k float64) *Builder { b.p.kOutlet = k; return b }

// KLength sets the axial station of maximum diameter as a fraction of the length.
func (b *Builder) KLength(k float64) *Builder { b.p.kLength = k; return b }

// KDiameterOutlet sets the vertical outlet offset as a fraction of the maximum diameter.
func (b *Builder) KDiameterOutlet(k float64) *Builder { b.p.kDiameterOutlet = k; return b }

// Build validates the accumulated fields and returns the parameters.
func (b *Builder) Build() (Parameters, error) {
	p := b.p
	if p.id == "" {
		return Parameters{}, fmt.Errorf("%w: id unset", ErrIncompleteConfiguration)
	}
	if !p.diameterMax.Valid() {
		return Parameters{}, fmt.Errorf("%w: nacelle %q maximum diameter unset", ErrIncompleteConfiguration, p.id)
	}
	if err := checkLength(p.id, "maximum diameter", p.diameterMax, false); err != nil {
		return Parameters{}, err
	}
	if p.length.Valid() {
		if err := checkLength(p.id, "length", p.length, false); err != nil {
			return Parameters{}, err
		}
	}
	if err := checkLength(p.id, "roughness", p.roughness, true); err != nil {
		return Parameters{}, err
	}
	for _, r := range []struct {
		name     string
		k        float64
		openLow  bool
		min, max float64
	}{
		{"kInlet", p.kInlet, true, 0, 1},
		{"kOutlet", p.kOutlet, true, 0, 1},
		{"kLength", p.kLength, false, 0, 1},
	} {
		if math.IsNaN(r.k) || r.k > r.max || r.k < r.min || (r.openLow && r.k == r.min) {
			return Parameters{}, fmt.Errorf("%w: nacelle %q %s = %g", ErrOutOfRange, p.id, r.name, r.k)
		}
	}
	if k := p.kDiameterOutlet; math.IsNaN(k) || math.IsInf(k, 0) {
		return Parameters{}, fmt.Errorf("%w: nacelle %q kDiameterOutlet = %g", ErrOutOfRange, p.id, k)
	}
	return p, nil
}

func checkLength(id, name string, a quantity.Amount, zeroOK bool) error {
	if !a.IsLength() {
		return fmt.Errorf("nacelle %q %s %v: %w", id, name, a, quantity.ErrDimensionMismatch)
	}
	v := a.Value()
	if !a.IsFinite() || v < 0 || (v == 0 && !zeroOK) {
		return fmt.Errorf("%w: nacelle %q %s = %v", ErrOutOfRange, id, name, a)
	}
	return nil
}
