package grids

import "errors"

var (
	// ErrEmptyGrid indicates the input mask has no rows or no columns.
	ErrEmptyGrid = errors.New("grids: mask must have at least one row and one column")
	// ErrNonRectangular indicates mask rows of differing lengths.
	ErrNonRectangular = errors.New("grids: all mask rows must have the same length")
	// ErrInvalidSubSize indicates a sub-grid size below one.
	ErrInvalidSubSize = errors.New("grids: sub-grid size must be at least one")
	// ErrShapeMismatch indicates slim values whose length differs from the mask's unmasked pixel count.
	ErrShapeMismatch = errors.New("grids: values length does not match mask")
	// ErrKernelShape indicates a kernel whose dimensions are not both odd.
	ErrKernelShape = errors.New("grids: kernel dimensions must both be odd")
)
