package measure

import "errors"

var (
	// ErrInvalidMeasure indicates malformed construction input: inverted or
	// non-finite support where finiteness is required, non-positive shape
	// parameters, a nil weight function, or an unknown kind.
	ErrInvalidMeasure = errors.New("measure: invalid measure specification")

	// ErrInsufficientData indicates FromSamples was given too few points to
	// estimate a density.
	ErrInsufficientData = errors.New("measure: not enough samples to build a measure")
)
