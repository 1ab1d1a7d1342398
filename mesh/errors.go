package mesh

import "errors"

var (
	// ErrMeshShape indicates a rectangular mesh smaller than 2x2.
	ErrMeshShape = errors.New("mesh: rectangular mesh must be at least 2x2")
	// ErrSelfRidge indicates a ridge connecting a pixel to itself.
	ErrSelfRidge = errors.New("mesh: ridge must connect two distinct pixels")
	// ErrRidgeIndex indicates a ridge referencing a pixel out of range.
	ErrRidgeIndex = errors.New("mesh: ridge pixel index out of range")
	// ErrSimplexIndex indicates a simplex referencing a pixel out of range.
	ErrSimplexIndex = errors.New("mesh: simplex pixel index out of range")
	// ErrClustering indicates centre placement could not produce the requested clusters.
	ErrClustering = errors.New("mesh: brightness clustering failed")
)
