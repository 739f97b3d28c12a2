package nacelle

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/acgeom"
	"github.com/soypat/acgeom/quantity"
	"github.com/soypat/acgeom/spline"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultSamples is the number of points per outline computed by New.
const DefaultSamples = 20

// Reference is the propulsion unit a nacelle encloses. The nacelle only
// reads it.
type Reference interface {
	ID() string
	Category() string
	// Length returns the overall length and whether it is known.
	Length() (quantity.Amount, bool)
}

// Nacelle is the geometry model of an engine nacelle. Every derived field
// is recomputed whenever an input changes; none can be set directly.
//
// A Nacelle is not safe for concurrent use.
type Nacelle struct {
	params   Parameters
	ref      Reference
	mounting Mounting
	apex     r3.Vec
	samples  int

	derived
	outlines [len(acgeom.Projections)]acgeom.Outline
}

// derived holds the scalars that follow from parameters and reference.
// wettedArea is only set by a successful ComputeGeometry.
type derived struct {
	length              quantity.Amount
	diameterInlet       quantity.Amount
	diameterOutlet      quantity.Amount
	xStationMaxDiameter quantity.Amount
	zStationOutlet      quantity.Amount
	wettedArea          quantity.Amount
}

// Option configures a Nacelle on construction.
type Option func(*Nacelle)

// WithMounting sets where the nacelle is attached. The default is Wing.
func WithMounting(m Mounting) Option { return func(n *Nacelle) { n.mounting = m } }

// WithApex sets the position of the nacelle inlet in aircraft axes, in metres.
func WithApex(apex r3.Vec) Option { return func(n *Nacelle) { n.apex = apex } }

// WithSamples sets the number of outline points computed on construction.
func WithSamples(samples int) Option { return func(n *Nacelle) { n.samples = samples } }

// New returns the nacelle described by params enclosing ref, with derived
// scalars and outlines computed. ref may be nil when params carries a length.
//
// If ref is longer than the nacelle New returns the model, without outlines
// or wetted area, together with an error wrapping ErrGeometryConstraint.
// Any other error returns a nil model.
func New(ref Reference, params Parameters, opts ...Option) (*Nacelle, error) {
	if params.id == "" || !params.diameterMax.Valid() {
		return nil, fmt.Errorf("%w: parameters not built", ErrIncompleteConfiguration)
	}
	n := &Nacelle{
		params:  params,
		ref:     ref,
		samples: DefaultSamples,
	}
	for _, opt := range opts {
		opt(n)
	}
	d, err := derive(params, ref)
	if err != nil {
		return nil, err
	}
	n.derived = d
	err = n.ComputeGeometry(n.samples)
	if err != nil && !errors.Is(err, ErrGeometryConstraint) {
		return nil, err
	}
	return n, err
}

func derive(p Parameters, ref Reference) (derived, error) {
	length, ok := p.Length()
	if !ok && ref != nil {
		length, ok = ref.Length()
	}
	if !ok {
		return derived{}, fmt.Errorf("%w: nacelle %q has no length and its reference has none", ErrIncompleteConfiguration, p.id)
	}
	length, err := length.ConvertTo(quantity.Metre)
	if err != nil {
		return derived{}, fmt.Errorf("nacelle %q length: %w", p.id, quantity.ErrDimensionMismatch)
	}
	if !(length.Value() > 0) || !length.IsFinite() {
		return derived{}, fmt.Errorf("%w: nacelle %q length = %v", ErrOutOfRange, p.id, length)
	}
	dmax, err := p.diameterMax.ConvertTo(quantity.Metre)
	if err != nil {
		return derived{}, err
	}
	return derived{
		length:              length,
		diameterInlet:       dmax.Scale(p.kInlet),
		diameterOutlet:      dmax.Scale(p.kOutlet),
		xStationMaxDiameter: length.Scale(p.kLength),
		zStationOutlet:      dmax.Scale(p.kDiameterOutlet),
	}, nil
}

// shellArea is the lateral area of a cylinder. Only the external surface
// counts as wetted.
func shellArea(length, diameter quantity.Amount) (quantity.Amount, error) {
	a, err := length.Mul(diameter)
	if err != nil {
		return quantity.Amount{}, err
	}
	return a.Scale(math.Pi), nil
}

// ComputeGeometry samples the four outlines at samples evenly spaced
// stations over the nacelle length, the first at the inlet and the last at
// the outlet. Each outline is a natural cubic spline through the inlet,
// maximum diameter and outlet stations.
//
// If the reference is longer than the nacelle ComputeGeometry returns an
// error wrapping ErrGeometryConstraint. On any error neither the outlines
// nor the wetted area are modified.
func (n *Nacelle) ComputeGeometry(samples int) error {
	if samples < 2 {
		return fmt.Errorf("%w: nacelle %q got %d", ErrSampleCount, n.params.id, samples)
	}
	if err := n.checkReference(); err != nil {
		return err
	}
	L := n.length.Value()
	xs := []float64{0, n.xStationMaxDiameter.Value(), L}
	rIn := n.diameterInlet.Value() / 2
	rMax := n.params.diameterMax.SI() / 2
	rOut := n.diameterOutlet.Value() / 2
	z := n.zStationOutlet.Value()
	stations := [len(acgeom.Projections)][3]float64{
		acgeom.XZUpper: {rIn, rMax, rOut + z},
		acgeom.XZLower: {-rIn, -rMax, -rOut + z},
		acgeom.XYRight: {rIn, rMax, rOut},
		acgeom.XYLeft:  {-rIn, -rMax, -rOut},
	}
	at, err := acgeom.Span(samples, 0, L)
	if err != nil {
		return err
	}
	area, err := shellArea(n.length, n.params.diameterMax)
	if err != nil {
		return err
	}
	var outlines [len(acgeom.Projections)]acgeom.Outline
	ys := make([]float64, samples)
	for _, p := range acgeom.Projections {
		s, err := spline.Fit(xs, stations[p][:])
		if err != nil {
			return fmt.Errorf("nacelle %q %v outline: %w", n.params.id, p, err)
		}
		ys = s.EvaluateAll(ys, at)
		o := make(acgeom.Outline, samples)
		for i := range o {
			o[i] = r2.Vec{X: at[i], Y: ys[i]}
		}
		outlines[p] = o
	}
	n.outlines = outlines
	n.samples = samples
	n.wettedArea = area
	return nil
}

func (n *Nacelle) checkReference() error {
	if n.ref == nil {
		return nil
	}
	rl, ok := n.ref.Length()
	if !ok {
		return nil
	}
	c, err := rl.Compare(n.length)
	if err != nil {
		return fmt.Errorf("nacelle %q reference %q length: %w", n.params.id, n.ref.ID(), err)
	}
	// Lengths equal up to unit conversion round off fit.
	if c > 0 && !acgeom.EqualFloat64(rl.SI(), n.length.SI(), acgeom.Tolerance) {
		return fmt.Errorf("%w: reference %q length %v exceeds nacelle %q length %v",
			ErrGeometryConstraint, n.ref.ID(), rl, n.params.id, n.length)
	}
	return nil
}

// SetParameters replaces the design parameters and recomputes everything at
// the current sample count. On any error, ErrGeometryConstraint included,
// the nacelle is left as it was.
func (n *Nacelle) SetParameters(p Parameters) error {
	if p.id == "" || !p.diameterMax.Valid() {
		return fmt.Errorf("%w: parameters not built", ErrIncompleteConfiguration)
	}
	return n.update(p, n.ref)
}

// SetReference replaces the reference source and recomputes everything, as
// SetParameters does.
func (n *Nacelle) SetReference(ref Reference) error {
	return n.update(n.params, ref)
}

func (n *Nacelle) update(p Parameters, ref Reference) error {
	d, err := derive(p, ref)
	if err != nil {
		return err
	}
	next := *n
	next.params = p
	next.ref = ref
	next.derived = d
	if err := next.ComputeGeometry(next.samples); err != nil {
		return err
	}
	*n = next
	return nil
}

// ID returns the identifier of the nacelle parameters.
func (n *Nacelle) ID() string { return n.params.id }

// Parameters returns the design parameters.
func (n *Nacelle) Parameters() Parameters { return n.params }

// Reference returns the enclosed propulsion unit, possibly nil.
func (n *Nacelle) Reference() Reference { return n.ref }

// Mounting returns where the nacelle is attached.
func (n *Nacelle) Mounting() Mounting { return n.mounting }

// SetMounting changes where the nacelle is attached. Geometry is unaffected.
func (n *Nacelle) SetMounting(m Mounting) { n.mounting = m }

// Apex returns the inlet position in aircraft axes, in metres.
func (n *Nacelle) Apex() r3.Vec { return n.apex }

// SetApex moves the nacelle. Outlines are relative to the apex and do not change.
func (n *Nacelle) SetApex(apex r3.Vec) { n.apex = apex }

// Samples returns the number of points of each outline.
func (n *Nacelle) Samples() int { return n.samples }

// Length returns the nacelle length in metres.
func (n *Nacelle) Length() quantity.Amount { return n.length }

// DiameterMax returns the maximum diameter as given in the parameters.
func (n *Nacelle) DiameterMax() quantity.Amount { return n.params.diameterMax }

// DiameterInlet returns the inlet diameter in metres.
func (n *Nacelle) DiameterInlet() quantity.Amount { return n.diameterInlet }

// DiameterOutlet returns the outlet diameter in metres.
func (n *Nacelle) DiameterOutlet() quantity.Amount { return n.diameterOutlet }

// XStationMaxDiameter returns the distance from the inlet to the station of
// maximum diameter.
func (n *Nacelle) XStationMaxDiameter() quantity.Amount { return n.xStationMaxDiameter }

// ZStationOutlet returns the vertical offset of the outlet centre.
func (n *Nacelle) ZStationOutlet() quantity.Amount { return n.zStationOutlet }

// WettedArea returns the external wetted area, approximated as the lateral
// area of a cylinder of maximum diameter over the nacelle length. It is not
// Valid until geometry has been computed successfully.
func (n *Nacelle) WettedArea() quantity.Amount { return n.wettedArea }

// Outline returns a copy of the outline in projection p, relative to the
// apex. It is empty if geometry was never computed successfully.
func (n *Nacelle) Outline(p acgeom.Projection) acgeom.Outline {
	if p < 0 || int(p) >= len(n.outlines) {
		return nil
	}
	return n.outlines[p].Copy()
}
