package inversion

import "errors"

var (
	// ErrInversion indicates a factorization failure: the linear system or
	// the regularization matrix is singular or not positive definite.
	ErrInversion = errors.New("inversion: matrix factorization failed")
	// ErrSolutionInvalid indicates a degenerate reconstruction where one
	// value repeats across all pixels of a linear object.
	ErrSolutionInvalid = errors.New("inversion: reconstruction repeats a single value across a linear object")
	// ErrShapeMismatch indicates inputs defined on inconsistent masks or
	// with inconsistent lengths.
	ErrShapeMismatch = errors.New("inversion: input shapes do not match")
	// ErrNoLinearObjs indicates an inversion constructed without any linear
	// objects to solve for.
	ErrNoLinearObjs = errors.New("inversion: no linear objects")
)
