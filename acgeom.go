package acgeom

import (
	"fmt"

	"github.com/soypat/acgeom/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Projection identifies one of the four standard silhouettes of a component.
type Projection int

const (
	// XZUpper is the upper line of the side view.
	XZUpper Projection = iota
	// XZLower is the lower line of the side view.
	XZLower
	// XYRight is the right (positive y) line of the top view.
	XYRight
	// XYLeft is the left (negative y) line of the top view.
	XYLeft
)

// Projections lists every projection in report order.
var Projections = [...]Projection{XZUpper, XZLower, XYRight, XYLeft}

func (p Projection) String() string {
	switch p {
	case XZUpper:
		return "xz-upper"
	case XZLower:
		return "xz-lower"
	case XYRight:
		return "xy-right"
	case XYLeft:
		return "xy-left"
	}
	return fmt.Sprintf("projection(%d)", int(p))
}

// ParseProjection parses the String form of a projection.
func ParseProjection(s string) (Projection, error) {
	for _, p := range Projections {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown projection %q", s)
}

// SideView reports whether the projection lies in the xz plane.
func (p Projection) SideView() bool { return p == XZUpper || p == XZLower }

// Outline is an ordered sequence of (x, y) points describing a component
// silhouette in one projection. Coordinates are metres, x measured from the
// component apex. The y component holds z for side-view projections.
type Outline []r2.Vec

// Len returns the number of points in the outline.
func (o Outline) Len() int { return len(o) }

// XY returns the coordinates of the i-th point. It lets an Outline be used
// directly as plot data.
func (o Outline) XY(i int) (x, y float64) { return o[i].X, o[i].Y }

// Copy returns a deep copy of o.
func (o Outline) Copy() Outline {
	if o == nil {
		return nil
	}
	c := make(Outline, len(o))
	copy(c, o)
	return c
}

// StrictlyIncreasingX reports whether every x coordinate is greater than the previous one.
func (o Outline) StrictlyIncreasingX() bool {
	for i := 1; i < len(o); i++ {
		if o[i].X <= o[i-1].X {
			return false
		}
	}
	return true
}

// Bounds returns the bounding box of the outline. It panics if o is empty.
func (o Outline) Bounds() r2.Box {
	return r2.Box(d2.Set(o).Bounds())
}

// Translate returns o shifted by v.
func (o Outline) Translate(v r2.Vec) Outline {
	t := make(Outline, len(o))
	for i := range o {
		t[i] = r2.Add(o[i], v)
	}
	return t
}

// Reduce returns at most n points of o, evenly picked by index and always
// including both ends.
func (o Outline) Reduce(n int) Outline {
	if n >= len(o) || len(o) < 2 {
		return o.Copy()
	}
	if n < 2 {
		n = 2
	}
	r := make(Outline, n)
	last := len(o) - 1
	for i := 0; i < n; i++ {
		r[i] = o[i*last/(n-1)]
	}
	return r
}

// Outliner is implemented by components that expose three-view outlines.
type Outliner interface {
	// ID identifies the component.
	ID() string
	// Outline returns the component silhouette in projection p, relative to the apex.
	Outline(p Projection) Outline
	// Apex returns the position of the component apex in aircraft axes, in metres.
	Apex() r3.Vec
}

// Place returns the outline of c in projection p expressed in aircraft axes,
// that is, translated by the apex x and the apex y or z coordinate.
func Place(c Outliner, p Projection) Outline {
	apex := c.Apex()
	shift := r2.Vec{X: apex.X, Y: apex.Y}
	if p.SideView() {
		shift.Y = apex.Z
	}
	return c.Outline(p).Translate(shift)
}
