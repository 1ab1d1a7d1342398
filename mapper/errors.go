package mapper

import "errors"

var (
	// ErrTooManyMappings indicates a sub-pixel mapping to more source pixels
	// than the pixelization's fixed maximum.
	ErrTooManyMappings = errors.New("mapper: sub-pixel maps to more source pixels than the scheme allows")
	// ErrGridMismatch indicates a mapping table inconsistent with its grid.
	ErrGridMismatch = errors.New("mapper: mapping table does not match grid dimensions")
)
