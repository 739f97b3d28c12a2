// Package acgeom holds the shared vocabulary of the aircraft component
// geometry engine: projections, outlines and the Outliner interface that
// components such as nacelles implement.
//
// Component packages (see nacelle) derive complete descriptive geometry
// from a few design parameters: three control stations per projection are
// interpolated with a natural cubic spline (package spline) and sampled
// evenly along the component length. Physical values travel as unit-tagged
// amounts (package quantity).
package acgeom
