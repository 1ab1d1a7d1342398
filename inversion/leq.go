package inversion

import (
	"gonum.org/v1/gonum/mat"

	"github.com/avekens/lensinv/grids"
	"github.com/avekens/lensinv/mapper"
)

// LinearEqn owns the data-side quantities of an inversion: the noise map,
// the PSF kernel and the linear objects whose mapping matrices form the
// columns of the system. Matrices are computed on first use and cached;
// preloaded matrices short-circuit their computation.
type LinearEqn struct {
	noise    *grids.Array2D
	kernel   *grids.Kernel2D
	objs     []mapper.LinearObj
	settings Settings
	preloads Preloads

	operated  *mat.Dense
	wtilde    *mat.Dense
	curvature *mat.Dense
}

// NewLinearEqn validates and assembles the equation inputs. Every linear
// object must produce mapping-matrix rows matching the mask's unmasked
// pixel count.
func NewLinearEqn(noise *grids.Array2D, kernel *grids.Kernel2D, objs []mapper.LinearObj, settings Settings, preloads Preloads) (*LinearEqn, error) {
	if len(objs) == 0 {
		return nil, ErrNoLinearObjs
	}
	for _, obj := range objs {
		rows, _ := obj.MappingMatrix().Dims()
		if rows != noise.Len() {
			return nil, ErrShapeMismatch
		}
	}
	return &LinearEqn{
		noise:    noise,
		kernel:   kernel,
		objs:     objs,
		settings: settings,
		preloads: preloads,
	}, nil
}

// Objs returns the linear objects in registration order.
func (e *LinearEqn) Objs() []mapper.LinearObj { return e.objs }

// TotalPixels is the width of the linear system, summed over all objects.
func (e *LinearEqn) TotalPixels() int {
	total := 0
	for _, obj := range e.objs {
		total += obj.Pixels()
	}
	return total
}

// mappingMatrix concatenates every object's plain mapping matrix
// column-wise in registration order.
func (e *LinearEqn) mappingMatrix() *mat.Dense {
	rows := e.noise.Len()
	f := mat.NewDense(rows, e.TotalPixels(), nil)
	offset := 0
	for _, obj := range e.objs {
		fm := obj.MappingMatrix()
		_, cols := fm.Dims()
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				f.Set(i, offset+j, fm.At(i, j))
			}
		}
		offset += cols
	}
	return f
}

// OperatedMappingMatrix returns the PSF-convolved mapping matrix B f:
// every column of the concatenated mapping matrix convolved with the
// kernel over the mask.
func (e *LinearEqn) OperatedMappingMatrix() *mat.Dense {
	if e.preloads.OperatedMappingMatrix != nil {
		return e.preloads.OperatedMappingMatrix
	}
	if e.operated != nil {
		return e.operated
	}

	mask := e.noise.Mask()
	f := e.mappingMatrix()
	rows, cols := f.Dims()
	operated := mat.NewDense(rows, cols, nil)

	column := make([]float64, rows)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			column[i] = f.At(i, j)
		}
		arr, err := grids.NewArray2D(column, mask)
		if err != nil {
			// rows was validated against the mask at construction
			panic(err)
		}
		blurred := e.kernel.ConvolvedArrayFrom(arr)
		for i := 0; i < rows; i++ {
			operated.Set(i, j, blurred.At(i))
		}
	}
	e.operated = operated
	return e.operated
}

// DataVector contracts the operated mapping matrix with the
// noise-weighted data.
func (e *LinearEqn) DataVector(data *grids.Array2D) ([]float64, error) {
	if data.Len() != e.noise.Len() {
		return nil, ErrShapeMismatch
	}
	return DataVectorFrom(e.OperatedMappingMatrix(), data.Slim(), e.noise.Slim()), nil
}

// WTilde returns the dataset's curvature kernel W = B^T diag(1/sigma^2) B,
// computing it on first use.
func (e *LinearEqn) WTilde() *mat.Dense {
	if e.preloads.WTilde != nil {
		return e.preloads.WTilde
	}
	if e.wtilde == nil {
		e.wtilde = WTildeFrom(e.kernel, e.noise)
	}
	return e.wtilde
}

// CurvatureMatrix returns F = (B f)^T diag(1/sigma^2) (B f), via the
// direct path or the w-tilde contraction per the settings.
func (e *LinearEqn) CurvatureMatrix() *mat.Dense {
	if e.preloads.CurvatureMatrix != nil {
		return e.preloads.CurvatureMatrix
	}
	if e.curvature != nil {
		return e.curvature
	}
	if e.settings.UseWTilde {
		if f := e.curvatureViaWTilde(); f != nil {
			e.curvature = f
			return e.curvature
		}
	}
	e.curvature = CurvatureMatrixFrom(e.OperatedMappingMatrix(), e.noise.Slim())
	return e.curvature
}

// curvatureViaWTilde contracts W with every object's deduplicated
// mappings: F[p0, p1] = sum over image pixel pairs of w0 w1 W[i0, i1].
// Returns nil when an object cannot supply unique mappings, in which case
// the caller falls back to the direct path.
func (e *LinearEqn) curvatureViaWTilde() *mat.Dense {
	type mapped struct {
		unique mapper.UniqueMappings
		offset int
	}
	ms := make([]mapped, 0, len(e.objs))
	offset := 0
	for _, obj := range e.objs {
		m, ok := obj.(mapper.Mapper)
		if !ok {
			return nil
		}
		ms = append(ms, mapped{unique: m.UniqueMappings(), offset: offset})
		offset += obj.Pixels()
	}

	w := e.WTilde()
	pixels := e.noise.Len()
	f := mat.NewDense(e.TotalPixels(), e.TotalPixels(), nil)

	for _, m0 := range ms {
		for _, m1 := range ms {
			for i0 := 0; i0 < pixels; i0++ {
				pix0 := m0.unique.PixIndexes[i0]
				w0 := m0.unique.Weights[i0]
				for i1 := 0; i1 < pixels; i1++ {
					wti := w.At(i0, i1)
					if wti == 0 {
						continue
					}
					pix1 := m1.unique.PixIndexes[i1]
					w1 := m1.unique.Weights[i1]
					for k0 := range pix0 {
						row := m0.offset + pix0[k0]
						for k1 := range pix1 {
							col := m1.offset + pix1[k1]
							f.Set(row, col, f.At(row, col)+w0[k0]*w1[k1]*wti)
						}
					}
				}
			}
		}
	}
	return f
}

// takeCurvatureMatrix hands the cached curvature buffer to the caller for
// in-place reuse and drops the cache, so a later CurvatureMatrix call
// rebuilds a fresh matrix. Preloaded curvature is copied instead of
// consumed.
func (e *LinearEqn) takeCurvatureMatrix() *mat.Dense {
	if e.preloads.CurvatureMatrix != nil {
		var cp mat.Dense
		cp.CloneFrom(e.preloads.CurvatureMatrix)
		return &cp
	}
	f := e.CurvatureMatrix()
	e.curvature = nil
	return f
}

// MappedReconstructedImageDict back-projects a solved reconstruction
// through each object's operated mapping matrix, returning one blurred
// image per object in registration order.
func (e *LinearEqn) MappedReconstructedImageDict(reconstruction []float64) ([][]float64, error) {
	return e.mappedDict(reconstruction, e.OperatedMappingMatrix())
}

// MappedReconstructedDataDict back-projects a solved reconstruction
// through each object's plain mapping matrix, returning one unblurred
// image per object in registration order.
func (e *LinearEqn) MappedReconstructedDataDict(reconstruction []float64) ([][]float64, error) {
	return e.mappedDict(reconstruction, e.mappingMatrix())
}

func (e *LinearEqn) mappedDict(reconstruction []float64, f *mat.Dense) ([][]float64, error) {
	rows, cols := f.Dims()
	if len(reconstruction) != cols {
		return nil, ErrShapeMismatch
	}
	out := make([][]float64, len(e.objs))
	offset := 0
	for o, obj := range e.objs {
		segment := make([]float64, rows)
		for i := 0; i < rows; i++ {
			sum := 0.0
			for j := 0; j < obj.Pixels(); j++ {
				sum += f.At(i, offset+j) * reconstruction[offset+j]
			}
			segment[i] = sum
		}
		out[o] = segment
		offset += obj.Pixels()
	}
	return out, nil
}
