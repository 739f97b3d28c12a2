// Package nacelle derives the geometry of engine nacelles from a handful
// of design parameters and aggregates nacelles into collections.
//
// A nacelle is described by its maximum diameter and three shape ratios:
// inlet and outlet diameters as fractions of the maximum diameter, and the
// axial station of maximum diameter as a fraction of the length. The
// length is either given or taken from the enclosed engine. Outlines in
// the four standard projections pass through the inlet, maximum diameter
// and outlet stations along a natural cubic spline.
//
//	params, err := nacelle.NewBuilder().
//		ID("N1").
//		DiameterMax(quantity.Metres(2)).
//		Build()
//	...
//	n, err := nacelle.New(engine, params, nacelle.WithApex(r3.Vec{X: 10, Y: 4.5}))
package nacelle
