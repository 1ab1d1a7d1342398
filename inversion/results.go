package inversion

import (
	"math"

	"github.com/avekens/lensinv/mapper"
)

// ReconstructionDict splits the flat reconstruction into per-object
// segments in registration order.
func (inv *Inversion) ReconstructionDict() ([][]float64, error) {
	s, err := inv.Reconstruction()
	if err != nil {
		return nil, err
	}
	out := make([][]float64, len(inv.eqn.Objs()))
	offset := 0
	for o, obj := range inv.eqn.Objs() {
		out[o] = s[offset : offset+obj.Pixels()]
		offset += obj.Pixels()
	}
	return out, nil
}

// BrightestReconstructionPixel returns the source pixel of object obj with
// the largest reconstructed flux.
func (inv *Inversion) BrightestReconstructionPixel(obj int) (int, error) {
	dict, err := inv.ReconstructionDict()
	if err != nil {
		return 0, err
	}
	segment := dict[obj]
	best := 0
	for i, v := range segment {
		if v > segment[best] {
			best = i
		}
	}
	return best, nil
}

// BrightestReconstructionCentre returns the (y, x) centre of the brightest
// reconstructed pixel of object obj. The object must be a mesh-backed
// mapper.
func (inv *Inversion) BrightestReconstructionCentre(obj int) ([2]float64, error) {
	m, ok := inv.eqn.Objs()[obj].(mapper.Mapper)
	if !ok {
		return [2]float64{}, ErrShapeMismatch
	}
	pix, err := inv.BrightestReconstructionPixel(obj)
	if err != nil {
		return [2]float64{}, err
	}
	return m.Centres()[pix], nil
}

// InterpolatedReconstruction resamples object obj's reconstruction onto a
// regular rows x cols grid spanning extent (yMin, yMax, xMin, xMax) by
// inverse-distance weighting over the source pixel centres. A sample
// point coinciding with a centre takes that pixel's value exactly.
func (inv *Inversion) InterpolatedReconstruction(obj, rows, cols int, yMin, yMax, xMin, xMax float64) ([][]float64, error) {
	m, ok := inv.eqn.Objs()[obj].(mapper.Mapper)
	if !ok {
		return nil, ErrShapeMismatch
	}
	dict, err := inv.ReconstructionDict()
	if err != nil {
		return nil, err
	}
	if rows < 1 || cols < 1 {
		return nil, ErrShapeMismatch
	}
	values := dict[obj]
	centres := m.Centres()

	out := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		out[r] = make([]float64, cols)
		y := yMax - (float64(r)+0.5)*(yMax-yMin)/float64(rows)
		for c := 0; c < cols; c++ {
			x := xMin + (float64(c)+0.5)*(xMax-xMin)/float64(cols)
			out[r][c] = shepard(y, x, centres, values)
		}
	}
	return out, nil
}

// shepard is inverse-distance-squared interpolation over scattered
// centres.
func shepard(y, x float64, centres [][2]float64, values []float64) float64 {
	num, den := 0.0, 0.0
	for i, c := range centres {
		dy, dx := y-c[0], x-c[1]
		d2 := dy*dy + dx*dx
		if d2 == 0 {
			return values[i]
		}
		w := 1.0 / d2
		num += w * values[i]
		den += w
	}
	if den == 0 || math.IsInf(den, 1) {
		return 0
	}
	return num / den
}
