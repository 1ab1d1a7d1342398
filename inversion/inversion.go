package inversion

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/avekens/lensinv/grids"
	"github.com/avekens/lensinv/mapper"
	"github.com/avekens/lensinv/regularization"
)

// Inversion solves the regularized system (F + H) S = D for one dataset
// and a set of linear objects with per-object regularizers. All derived
// quantities are computed once on first access and cached; an Inversion is
// therefore not safe for concurrent use, matching its one-fit lifecycle.
type Inversion struct {
	eqn      *LinearEqn
	data     *grids.Array2D
	regs     []regularization.Regularizer
	settings Settings
	preloads Preloads

	dataVector []float64

	regMatrix    *mat.Dense
	regMatrixErr error
	regDone      bool

	curvatureReg *mat.Dense

	chol     *mat.Cholesky
	solution []float64
	solveErr error
	solved   bool

	logDetReg     float64
	logDetRegErr  error
	logDetRegDone bool
}

// New builds an inversion of data with noise map, PSF kernel and linear
// objects. regs pairs a regularizer with each object by index; a nil
// entry (or a nil slice) leaves that object unregularized.
func New(data, noise *grids.Array2D, kernel *grids.Kernel2D, objs []mapper.LinearObj, regs []regularization.Regularizer, settings Settings, preloads Preloads) (*Inversion, error) {
	if data.Len() != noise.Len() {
		return nil, ErrShapeMismatch
	}
	if regs != nil && len(regs) != len(objs) {
		return nil, ErrShapeMismatch
	}
	eqn, err := NewLinearEqn(noise, kernel, objs, settings, preloads)
	if err != nil {
		return nil, err
	}
	if regs == nil {
		regs = make([]regularization.Regularizer, len(objs))
	}
	return &Inversion{
		eqn:      eqn,
		data:     data,
		regs:     regs,
		settings: settings,
		preloads: preloads,
	}, nil
}

// Eqn exposes the underlying linear equation.
func (inv *Inversion) Eqn() *LinearEqn { return inv.eqn }

// DataVector returns D = (B f)^T (d / sigma^2).
func (inv *Inversion) DataVector() ([]float64, error) {
	if inv.dataVector == nil {
		d, err := inv.eqn.DataVector(inv.data)
		if err != nil {
			return nil, err
		}
		inv.dataVector = d
	}
	return inv.dataVector, nil
}

// RegularizationMatrix returns the block-diagonal H assembled from each
// object's regularizer. Objects without a regularizer contribute a zero
// block.
func (inv *Inversion) RegularizationMatrix() (*mat.Dense, error) {
	if inv.preloads.RegularizationMatrix != nil {
		return inv.preloads.RegularizationMatrix, nil
	}
	if inv.regDone {
		return inv.regMatrix, inv.regMatrixErr
	}
	inv.regDone = true

	total := inv.eqn.TotalPixels()
	h := mat.NewDense(total, total, nil)
	offset := 0
	for o, obj := range inv.eqn.Objs() {
		pixels := obj.Pixels()
		if inv.regs[o] != nil {
			m, ok := obj.(mapper.Mapper)
			if !ok {
				inv.regMatrixErr = ErrShapeMismatch
				return nil, inv.regMatrixErr
			}
			block, err := inv.regs[o].MatrixFrom(m)
			if err != nil {
				inv.regMatrixErr = err
				return nil, err
			}
			for i := 0; i < pixels; i++ {
				for j := 0; j < pixels; j++ {
					h.Set(offset+i, offset+j, block.At(i, j))
				}
			}
		}
		offset += pixels
	}
	inv.regMatrix = h
	return h, nil
}

// CurvatureRegMatrix returns F + H. The curvature buffer is taken from
// the equation and H added in place, so the sum costs no extra allocation
// on the common single-fit path.
func (inv *Inversion) CurvatureRegMatrix() (*mat.Dense, error) {
	if inv.curvatureReg != nil {
		return inv.curvatureReg, nil
	}
	h, err := inv.RegularizationMatrix()
	if err != nil {
		return nil, err
	}
	f := inv.eqn.takeCurvatureMatrix()
	n, _ := f.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			f.Set(i, j, f.At(i, j)+h.At(i, j))
		}
	}
	inv.curvatureReg = f
	return f, nil
}

// solve factorizes F + H and solves for S, caching result and error.
func (inv *Inversion) solve() error {
	if inv.solved {
		return inv.solveErr
	}
	inv.solved = true

	fh, err := inv.CurvatureRegMatrix()
	if err != nil {
		inv.solveErr = err
		return err
	}
	d, err := inv.DataVector()
	if err != nil {
		inv.solveErr = err
		return err
	}

	var chol mat.Cholesky
	if !chol.Factorize(symmetrized(fh)) {
		inv.solveErr = ErrInversion
		return inv.solveErr
	}

	var s mat.VecDense
	if err := chol.SolveVecTo(&s, mat.NewVecDense(len(d), d)); err != nil {
		inv.solveErr = ErrInversion
		return inv.solveErr
	}

	solution := make([]float64, len(d))
	copy(solution, s.RawVector().Data)

	if inv.settings.CheckSolution {
		if err := inv.checkSolution(solution); err != nil {
			inv.solveErr = err
			return err
		}
	}

	inv.chol = &chol
	inv.solution = solution
	return nil
}

// checkSolution rejects a reconstruction when any linear object's segment
// collapses onto one repeated value.
func (inv *Inversion) checkSolution(solution []float64) error {
	offset := 0
	for _, obj := range inv.eqn.Objs() {
		pixels := obj.Pixels()
		if pixels > 1 {
			lo, hi := solution[offset], solution[offset]
			for _, v := range solution[offset : offset+pixels] {
				lo = math.Min(lo, v)
				hi = math.Max(hi, v)
			}
			if hi-lo < inv.settings.SolutionTolerance {
				return ErrSolutionInvalid
			}
		}
		offset += pixels
	}
	return nil
}

// Reconstruction returns the solved S. The slice is cached and shared;
// callers must not mutate it.
func (inv *Inversion) Reconstruction() ([]float64, error) {
	if err := inv.solve(); err != nil {
		return nil, err
	}
	return inv.solution, nil
}

// LogDetCurvatureRegMatrixTerm is log det(F + H), read off the Cholesky
// factor of the solve.
func (inv *Inversion) LogDetCurvatureRegMatrixTerm() (float64, error) {
	if err := inv.solve(); err != nil {
		return 0, err
	}
	return inv.chol.LogDet(), nil
}

// LogDetRegularizationMatrixTerm is log det H.
func (inv *Inversion) LogDetRegularizationMatrixTerm() (float64, error) {
	if inv.preloads.LogDetRegularizationMatrixTerm != nil {
		return *inv.preloads.LogDetRegularizationMatrixTerm, nil
	}
	if inv.logDetRegDone {
		return inv.logDetReg, inv.logDetRegErr
	}
	inv.logDetRegDone = true

	h, err := inv.RegularizationMatrix()
	if err != nil {
		inv.logDetRegErr = err
		return 0, err
	}
	inv.logDetReg, inv.logDetRegErr = LogDetFrom(h)
	return inv.logDetReg, inv.logDetRegErr
}

// RegularizationTerm is the prior penalty S^T H S.
func (inv *Inversion) RegularizationTerm() (float64, error) {
	s, err := inv.Reconstruction()
	if err != nil {
		return 0, err
	}
	h, err := inv.RegularizationMatrix()
	if err != nil {
		return 0, err
	}
	return RegularizationTermFrom(s, h), nil
}

// ErrorsWithCovariance is the full posterior covariance (F + H)^-1.
func (inv *Inversion) ErrorsWithCovariance() (*mat.Dense, error) {
	if err := inv.solve(); err != nil {
		return nil, err
	}
	var cov mat.SymDense
	if err := inv.chol.InverseTo(&cov); err != nil {
		return nil, ErrInversion
	}
	n := cov.SymmetricDim()
	out := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.Set(i, j, cov.At(i, j))
		}
	}
	return out, nil
}

// Errors is the diagonal of the posterior covariance, the variance of
// every reconstructed pixel.
func (inv *Inversion) Errors() ([]float64, error) {
	cov, err := inv.ErrorsWithCovariance()
	if err != nil {
		return nil, err
	}
	n, _ := cov.Dims()
	diag := make([]float64, n)
	for i := 0; i < n; i++ {
		diag[i] = cov.At(i, i)
	}
	return diag, nil
}

// MappedReconstructedImageDict back-projects the solved reconstruction
// through the operated mapping matrix, one blurred image per object.
func (inv *Inversion) MappedReconstructedImageDict() ([][]float64, error) {
	s, err := inv.Reconstruction()
	if err != nil {
		return nil, err
	}
	return inv.eqn.MappedReconstructedImageDict(s)
}

// MappedReconstructedDataDict back-projects the solved reconstruction
// through the plain mapping matrix, one unblurred image per object.
func (inv *Inversion) MappedReconstructedDataDict() ([][]float64, error) {
	s, err := inv.Reconstruction()
	if err != nil {
		return nil, err
	}
	return inv.eqn.MappedReconstructedDataDict(s)
}
