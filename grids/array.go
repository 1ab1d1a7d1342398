package grids

// Array2D stores one float64 value per unmasked pixel of a Mask2D, in slim
// order. It is the common currency for image data, noise maps and adapt
// images throughout the pipeline.
type Array2D struct {
	mask   *Mask2D
	values []float64
}

// NewArray2D builds an Array2D from slim values, deep-copying the input.
// Returns ErrShapeMismatch when len(values) != mask.Pixels().
func NewArray2D(values []float64, mask *Mask2D) (*Array2D, error) {
	if len(values) != mask.Pixels() {
		return nil, ErrShapeMismatch
	}
	vals := make([]float64, len(values))
	copy(vals, values)
	return &Array2D{mask: mask, values: vals}, nil
}

// NewArray2DNative builds an Array2D by extracting the unmasked entries of a
// native 2D value slice. The native shape must match the mask's.
func NewArray2DNative(native [][]float64, mask *Mask2D) (*Array2D, error) {
	rows, cols := mask.ShapeNative()
	if len(native) != rows {
		return nil, ErrShapeMismatch
	}
	for _, row := range native {
		if len(row) != cols {
			return nil, ErrShapeMismatch
		}
	}
	values := make([]float64, 0, mask.Pixels())
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if !mask.IsMasked(r, c) {
				values = append(values, native[r][c])
			}
		}
	}
	return &Array2D{mask: mask, values: values}, nil
}

// Mask returns the mask the array is defined on.
func (a *Array2D) Mask() *Mask2D { return a.mask }

// Slim returns the underlying slim values. The slice is owned by the array
// and must not be mutated by callers.
func (a *Array2D) Slim() []float64 { return a.values }

// At returns the value of the unmasked pixel at the given slim index.
func (a *Array2D) At(slim int) float64 { return a.values[slim] }

// Len returns the number of slim values.
func (a *Array2D) Len() int { return len(a.values) }

// Native expands the slim values to the native 2D layout, with zeros in
// masked cells.
func (a *Array2D) Native() [][]float64 {
	rows, cols := a.mask.ShapeNative()
	out := make([][]float64, rows)
	for r := range out {
		out[r] = make([]float64, cols)
	}
	for slim, v := range a.values {
		r, c := a.mask.NativeIndexForSlimIndex(slim)
		out[r][c] = v
	}
	return out
}
