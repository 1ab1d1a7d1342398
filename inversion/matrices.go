package inversion

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/avekens/lensinv/grids"
)

// DataVectorFrom contracts the operated mapping matrix with the
// noise-weighted data: D_j = sum_i f_ij d_i / sigma_i^2.
func DataVectorFrom(operated *mat.Dense, data, noise []float64) []float64 {
	rows, cols := operated.Dims()
	d := make([]float64, cols)
	for i := 0; i < rows; i++ {
		w := data[i] / (noise[i] * noise[i])
		if w == 0 {
			continue
		}
		for j := 0; j < cols; j++ {
			d[j] += operated.At(i, j) * w
		}
	}
	return d
}

// CurvatureMatrixFrom builds F = f^T diag(1/sigma^2) f directly from the
// operated mapping matrix.
func CurvatureMatrixFrom(operated *mat.Dense, noise []float64) *mat.Dense {
	rows, cols := operated.Dims()
	f := mat.NewDense(cols, cols, nil)
	for i := 0; i < rows; i++ {
		w := 1.0 / (noise[i] * noise[i])
		for j := 0; j < cols; j++ {
			fij := operated.At(i, j)
			if fij == 0 {
				continue
			}
			for k := j; k < cols; k++ {
				f.Set(j, k, f.At(j, k)+fij*operated.At(i, k)*w)
			}
		}
	}
	for j := 0; j < cols; j++ {
		for k := j + 1; k < cols; k++ {
			f.Set(k, j, f.At(j, k))
		}
	}
	return f
}

// BlurringMatrixFrom builds the dense PSF operator B over the mask's slim
// pixels: column j is the kernel centred on pixel j, restricted to
// unmasked pixels, so B x equals the masked 2D convolution of x.
func BlurringMatrixFrom(kernel *grids.Kernel2D, mask *grids.Mask2D) *mat.Dense {
	pixels := mask.Pixels()
	kh, kw := kernel.Shape()
	ch, cw := kh/2, kw/2
	rows, cols := mask.ShapeNative()

	b := mat.NewDense(pixels, pixels, nil)
	for i := 0; i < pixels; i++ {
		ri, ci := mask.NativeIndexForSlimIndex(i)
		for kr := 0; kr < kh; kr++ {
			for kc := 0; kc < kw; kc++ {
				rj := ri - kr + ch
				cj := ci - kc + cw
				if rj < 0 || rj >= rows || cj < 0 || cj >= cols {
					continue
				}
				j := mask.SlimIndexForNativeIndex(rj, cj)
				if j < 0 {
					continue
				}
				b.Set(i, j, b.At(i, j)+kernel.At(kr, kc))
			}
		}
	}
	return b
}

// WTildeFrom builds W = B^T diag(1/sigma^2) B, the curvature kernel of a
// dataset. W depends only on the PSF, mask and noise map, never on the
// pixelization, so it is computed once and reused across mesh
// configurations.
func WTildeFrom(kernel *grids.Kernel2D, noise *grids.Array2D) *mat.Dense {
	b := BlurringMatrixFrom(kernel, noise.Mask())
	pixels := noise.Len()

	weighted := mat.NewDense(pixels, pixels, nil)
	for i := 0; i < pixels; i++ {
		sigma := noise.At(i)
		w := 1.0 / (sigma * sigma)
		for j := 0; j < pixels; j++ {
			weighted.Set(i, j, b.At(i, j)*w)
		}
	}
	var wt mat.Dense
	wt.Mul(b.T(), weighted)
	return &wt
}

// RegularizationTermFrom is the prior penalty S^T H S of a solved
// reconstruction.
func RegularizationTermFrom(reconstruction []float64, h *mat.Dense) float64 {
	n := len(reconstruction)
	term := 0.0
	for i := 0; i < n; i++ {
		row := 0.0
		for j := 0; j < n; j++ {
			row += h.At(i, j) * reconstruction[j]
		}
		term += reconstruction[i] * row
	}
	return term
}

// LogDetFrom computes the log determinant of a regularization matrix,
// trying an LU factorization first and falling back to Cholesky when the
// LU log determinant is not finite. The LU path returns log|det|,
// tolerating a negative determinant sign the way the magnitude of the
// complex log-sum of the factor diagonals would. Returns ErrInversion
// when neither factorization yields a finite determinant.
func LogDetFrom(m *mat.Dense) (float64, error) {
	n, c := m.Dims()
	if n != c {
		return 0, ErrShapeMismatch
	}

	var lu mat.LU
	lu.Factorize(m)
	det, _ := lu.LogDet()
	if !math.IsInf(det, 0) && !math.IsNaN(det) {
		return det, nil
	}

	sym := symmetrized(m)
	var chol mat.Cholesky
	if !chol.Factorize(sym) {
		return 0, ErrInversion
	}
	return chol.LogDet(), nil
}

// symmetrized copies a square matrix into a SymDense using its upper
// triangle.
func symmetrized(m *mat.Dense) *mat.SymDense {
	n, _ := m.Dims()
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, m.At(i, j))
		}
	}
	return sym
}
