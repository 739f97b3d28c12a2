// Package quantity implements unit-tagged scalars for design geometry.
//
// An Amount pairs a magnitude with a Unit. Arithmetic between amounts checks
// physical dimensions (tracked with gonum's unit package) and fails with
// ErrDimensionMismatch instead of coercing; conversions between units of the
// same dimension are exact linear scalings. Unit symbols are plain ASCII
// (m, m2, ft, kW, lbf) so reports render identically everywhere.
package quantity
