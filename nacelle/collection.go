package nacelle

import (
	"github.com/soypat/acgeom/quantity"
	"gonum.org/v1/gonum/floats"
)

// Collection is an ordered set of distinct nacelles, for example all the
// nacelles of one aircraft, with the quantities derived from them as a
// group. Order is significant: the first member is the innermost, the last
// the outermost.
//
// Aggregates are summed in full from the current member state every time
// they are read, so they follow changes made to members directly.
type Collection struct {
	members []*Nacelle
	index   map[*Nacelle]int
}

// NewCollection returns a collection of the given nacelles. Nil and
// repeated nacelles are skipped.
func NewCollection(members ...*Nacelle) *Collection {
	c := &Collection{}
	c.Add(members...)
	return c
}

// Add appends nacelles to the collection. Nil nacelles and nacelles that
// are already members are skipped.
func (c *Collection) Add(members ...*Nacelle) {
	if c.index == nil {
		c.Recompute()
	}
	for _, n := range members {
		if n == nil {
			continue
		}
		if _, dup := c.index[n]; dup {
			continue
		}
		c.index[n] = len(c.members)
		c.members = append(c.members, n)
	}
}

// Recompute rebuilds the member index.
func (c *Collection) Recompute() {
	c.index = make(map[*Nacelle]int, len(c.members))
	for i, n := range c.members {
		c.index[n] = i
	}
}

// RecomputeWettedArea resums the wetted area of every member and returns it.
func (c *Collection) RecomputeWettedArea() quantity.Amount {
	areas := make([]float64, len(c.members))
	for i, n := range c.members {
		areas[i] = n.WettedArea().SI()
	}
	return quantity.SquareMetres(floats.Sum(areas))
}

// Len returns the number of members.
func (c *Collection) Len() int { return len(c.members) }

// At returns the i-th member.
func (c *Collection) At(i int) *Nacelle { return c.members[i] }

// Members returns the members in order. The slice is a copy.
func (c *Collection) Members() []*Nacelle {
	return append([]*Nacelle(nil), c.members...)
}

// Reference returns the reference source of n and whether n is a member
// with a reference.
func (c *Collection) Reference(n *Nacelle) (Reference, bool) {
	if _, ok := c.index[n]; !ok {
		return nil, false
	}
	ref := n.Reference()
	return ref, ref != nil
}

// WettedArea returns the sum of the member wetted areas, zero when empty.
// Members without computed geometry count as zero.
func (c *Collection) WettedArea() quantity.Amount { return c.RecomputeWettedArea() }

// SpacingInboard returns twice the lateral offset of the first member. It
// is defined when the collection has at least one member.
func (c *Collection) SpacingInboard() (quantity.Amount, bool) {
	if len(c.members) < 1 {
		return quantity.Amount{}, false
	}
	// Nacelles are mirrored about the aircraft centreline.
	return quantity.Metres(2 * c.members[0].Apex().Y), true
}

// SpacingOutboard returns twice the lateral offset of the last member. It
// is defined when the collection has more than two members.
func (c *Collection) SpacingOutboard() (quantity.Amount, bool) {
	if len(c.members) <= 2 {
		return quantity.Amount{}, false
	}
	return quantity.Metres(2 * c.members[len(c.members)-1].Apex().Y), true
}
