package nacelle

import "errors"

var (
	// ErrIncompleteConfiguration is returned when a required parameter is missing.
	ErrIncompleteConfiguration = errors.New("incomplete configuration")
	// ErrOutOfRange is returned when a parameter lies outside its valid interval.
	ErrOutOfRange = errors.New("parameter out of range")
	// ErrSampleCount is returned when fewer than two outline samples are requested.
	ErrSampleCount = errors.New("outline needs at least two samples")
	// ErrGeometryConstraint is returned when the reference source does not fit
	// inside the component. It is a warning: the model keeps its previous outlines.
	ErrGeometryConstraint = errors.New("geometry constraint violation")
)
