package plot

import "errors"

var (
	ErrEmptySeries    = errors.New("plot: series must not be empty")
	ErrLengthMismatch = errors.New("plot: x and y must have the same length")
	ErrNonFinite      = errors.New("plot: series contains NaN or Inf")
)
