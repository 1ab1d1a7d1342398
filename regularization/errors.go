package regularization

import "errors"

var (
	// ErrNeighborOverflow indicates a split cross point whose mapping list
	// exceeds the fixed slot count. This only happens under pathological
	// coordinate transforms and is fatal for the fit.
	ErrNeighborOverflow = errors.New("regularization: split cross point neighbors exceed slot count")
	// ErrNotSplitMapper indicates a split scheme applied to a mapper that
	// cannot provide split cross weights.
	ErrNotSplitMapper = errors.New("regularization: mapper does not support split cross weights")
)
