package inversion

import "gonum.org/v1/gonum/mat"

// Settings steers how an inversion assembles and validates its linear
// system.
type Settings struct {
	// UseWTilde selects the w-tilde curvature path, which precomputes the
	// PSF/noise kernel matrix once per dataset instead of convolving every
	// mapping-matrix column.
	UseWTilde bool
	// CheckSolution rejects reconstructions where a single value repeats
	// across every pixel of a linear object, the signature of a degenerate
	// solve.
	CheckSolution bool
	// SolutionTolerance is the spread below which a linear object's
	// reconstruction counts as a single repeated value.
	SolutionTolerance float64
}

// DefaultSettings returns the settings used when callers have no opinion:
// direct curvature path, no solution checking.
func DefaultSettings() Settings {
	return Settings{
		UseWTilde:         false,
		CheckSolution:     false,
		SolutionTolerance: 1e-8,
	}
}

// Preloads carries matrices computed ahead of an inversion, typically
// reused across many fits of the same dataset. Any non-nil field
// short-circuits the matching computation. Preloaded matrices are treated
// as read-only by the inversion except for the curvature matrix, whose
// buffer is consumed when the regularization matrix is added in.
type Preloads struct {
	WTilde                         *mat.Dense
	OperatedMappingMatrix          *mat.Dense
	CurvatureMatrix                *mat.Dense
	RegularizationMatrix           *mat.Dense
	LogDetRegularizationMatrixTerm *float64
}
