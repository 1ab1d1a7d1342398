package grids

// Kernel2D is a small 2D instrument response (PSF). Both dimensions must be
// odd so the kernel has an unambiguous central pixel. Convolution is direct
// spatial accumulation with zero padding; kernels in this domain are small
// enough that an FFT path would not pay for its plumbing.
type Kernel2D struct {
	data [][]float64
	rows int
	cols int
}

// NewKernel2D builds a Kernel2D from a native 2D slice, deep-copying the
// input. Returns ErrKernelShape unless both dimensions are odd, and
// ErrEmptyGrid / ErrNonRectangular on malformed input.
func NewKernel2D(data [][]float64) (*Kernel2D, error) {
	if len(data) == 0 || len(data[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	rows, cols := len(data), len(data[0])
	for _, row := range data {
		if len(row) != cols {
			return nil, ErrNonRectangular
		}
	}
	if rows%2 == 0 || cols%2 == 0 {
		return nil, ErrKernelShape
	}
	copied := make([][]float64, rows)
	for r := range copied {
		copied[r] = make([]float64, cols)
		copy(copied[r], data[r])
	}
	return &Kernel2D{data: copied, rows: rows, cols: cols}, nil
}

// Shape returns the kernel's (rows, cols).
func (k *Kernel2D) Shape() (rows, cols int) { return k.rows, k.cols }

// At returns the kernel value at (r, c).
func (k *Kernel2D) At(r, c int) float64 { return k.data[r][c] }

// Sum returns the total of all kernel values.
func (k *Kernel2D) Sum() float64 {
	total := 0.0
	for _, row := range k.data {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// Normalized returns a copy of the kernel scaled to unit sum. A zero-sum
// kernel is returned unchanged.
func (k *Kernel2D) Normalized() *Kernel2D {
	total := k.Sum()
	out, _ := NewKernel2D(k.data)
	if total == 0 {
		return out
	}
	for r := range out.data {
		for c := range out.data[r] {
			out.data[r][c] /= total
		}
	}
	return out
}

// ConvolveNative convolves a native 2D image with the kernel, zero-padded,
// same-size output. This is a true convolution, the kernel is flipped
// relative to a correlation:
//
//	out[r][c] = Σ_{kr,kc} kernel[kr][kc] * in[r-kr+ch][c-kc+cw]
//
// where (ch, cw) is the kernel centre, so a point source reproduces the
// kernel unreversed. Complexity: O(rows*cols*kRows*kCols).
func (k *Kernel2D) ConvolveNative(in [][]float64) [][]float64 {
	rows, cols := len(in), len(in[0])
	ch, cw := k.rows/2, k.cols/2
	out := make([][]float64, rows)
	for r := range out {
		out[r] = make([]float64, cols)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			sum := 0.0
			for kr := 0; kr < k.rows; kr++ {
				ir := r - kr + ch
				if ir < 0 || ir >= rows {
					continue
				}
				for kc := 0; kc < k.cols; kc++ {
					ic := c - kc + cw
					if ic < 0 || ic >= cols {
						continue
					}
					sum += k.data[kr][kc] * in[ir][ic]
				}
			}
			out[r][c] = sum
		}
	}
	return out
}

// ConvolvedArrayFrom expands a slim array to its native layout (zeros in
// masked cells), convolves with the kernel and re-extracts the slim values
// over the unmasked region.
func (k *Kernel2D) ConvolvedArrayFrom(a *Array2D) *Array2D {
	native := k.ConvolveNative(a.Native())
	out, _ := NewArray2DNative(native, a.Mask())
	return out
}
