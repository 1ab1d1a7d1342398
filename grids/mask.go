package grids

// Mask2D is a rectangular boolean validity mask. Entries set to true are
// masked (excluded from the fit); entries set to false are unmasked data
// pixels. A Mask2D is immutable once built and precomputes the native↔slim
// index maps used throughout the inversion pipeline.
type Mask2D struct {
	rows, cols  int
	pixelScales [2]float64
	subSize     int

	masked       []bool // native row-major, true = excluded
	slimToNative []int  // slim index -> native index
	nativeToSlim []int  // native index -> slim index, -1 when masked
}

// NewMask2D builds a Mask2D from a native 2D boolean slice, deep-copying the
// input. pixelScales holds the (y,x) scaled units per pixel and subSize the
// sub-grid sampling factor per pixel dimension.
// Returns ErrEmptyGrid, ErrNonRectangular or ErrInvalidSubSize on bad input.
// Complexity: O(rows*cols).
func NewMask2D(masked [][]bool, pixelScales [2]float64, subSize int) (*Mask2D, error) {
	if len(masked) == 0 || len(masked[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	rows, cols := len(masked), len(masked[0])
	for _, row := range masked {
		if len(row) != cols {
			return nil, ErrNonRectangular
		}
	}
	if subSize < 1 {
		return nil, ErrInvalidSubSize
	}

	m := &Mask2D{
		rows:         rows,
		cols:         cols,
		pixelScales:  pixelScales,
		subSize:      subSize,
		masked:       make([]bool, rows*cols),
		nativeToSlim: make([]int, rows*cols),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			native := r*cols + c
			m.masked[native] = masked[r][c]
			if masked[r][c] {
				m.nativeToSlim[native] = -1
				continue
			}
			m.nativeToSlim[native] = len(m.slimToNative)
			m.slimToNative = append(m.slimToNative, native)
		}
	}

	return m, nil
}

// AllFalse returns a fully unmasked Mask2D of the given native shape.
func AllFalse(rows, cols int, pixelScales [2]float64, subSize int) (*Mask2D, error) {
	masked := make([][]bool, rows)
	for r := range masked {
		masked[r] = make([]bool, cols)
	}
	return NewMask2D(masked, pixelScales, subSize)
}

// ShapeNative returns the (rows, cols) native dimensions.
func (m *Mask2D) ShapeNative() (rows, cols int) { return m.rows, m.cols }

// PixelScales returns the (y,x) scaled units per pixel.
func (m *Mask2D) PixelScales() [2]float64 { return m.pixelScales }

// SubSize returns the sub-grid sampling factor.
func (m *Mask2D) SubSize() int { return m.subSize }

// SubFraction is the area fraction one sub-pixel contributes to its parent
// pixel, 1/subSize².
func (m *Mask2D) SubFraction() float64 {
	return 1.0 / float64(m.subSize*m.subSize)
}

// Pixels returns the number of unmasked pixels.
func (m *Mask2D) Pixels() int { return len(m.slimToNative) }

// SubPixels returns the number of unmasked sub-pixels, Pixels()*subSize².
func (m *Mask2D) SubPixels() int {
	return m.Pixels() * m.subSize * m.subSize
}

// IsMasked reports whether native cell (r, c) is excluded.
func (m *Mask2D) IsMasked(r, c int) bool {
	return m.masked[r*m.cols+c]
}

// NativeIndexForSlimIndex returns the (row, col) native coordinates of the
// unmasked pixel at the given slim index.
func (m *Mask2D) NativeIndexForSlimIndex(slim int) (r, c int) {
	native := m.slimToNative[slim]
	return native / m.cols, native % m.cols
}

// SlimIndexForNativeIndex returns the slim index of native cell (r, c), or
// -1 if the cell is masked.
func (m *Mask2D) SlimIndexForNativeIndex(r, c int) int {
	return m.nativeToSlim[r*m.cols+c]
}

// SlimIndexForSubSlimIndex returns the parent slim pixel of every sub-slim
// index. Sub-pixels of a pixel are contiguous in sub-slim order.
func (m *Mask2D) SlimIndexForSubSlimIndex() []int {
	sub2 := m.subSize * m.subSize
	out := make([]int, m.SubPixels())
	for i := range out {
		out[i] = i / sub2
	}
	return out
}
