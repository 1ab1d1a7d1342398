// Package inversion assembles and solves the regularized linear system
// that reconstructs a pixelized source from imaging data.
//
// What: given data d, noise map sigma, a PSF kernel and one or more
// mappers, the package builds the operated (PSF-convolved) mapping matrix
// B f, the data vector D = (B f)^T (d / sigma^2), the curvature matrix
// F = (B f)^T diag(1/sigma^2) (B f) and a block-diagonal regularization
// matrix H, then solves (F + H) S = D by Cholesky factorization. The
// solved S carries the evidence terms (S^T H S and the two log
// determinants) used by model comparison, plus per-object result views.
//
// Why two curvature paths: the direct path convolves every mapping-matrix
// column with the PSF; the w-tilde path precomputes
// W = B^T diag(1/sigma^2) B once per dataset, independent of the
// pixelization, and contracts it with the deduplicated mappings. Both give
// the same F; w-tilde amortizes the PSF work across mesh configurations.
//
// Complexity: matrix assembly is O(imagePixels * sourcePixels * kernel)
// on the direct path; the solve is O(sourcePixels^3).
//
// Errors: ErrInversion when a factorization fails (singular or non
// positive definite system), ErrSolutionInvalid when solution checking is
// enabled and the solve degenerates, ErrShapeMismatch for inconsistent
// inputs.
package inversion
