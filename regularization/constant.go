package regularization

import (
	"gonum.org/v1/gonum/mat"

	"github.com/avekens/lensinv/mapper"
)

// Constant regularizes every neighboring source pixel pair with the same
// coefficient. The squared coefficient is added to the diagonal once per
// neighbor and subtracted from the corresponding off-diagonal entry,
// producing a graph Laplacian scaled by the coefficient squared with a
// 1e-8 diagonal floor.
type Constant struct {
	Coefficient float64
}

func (r Constant) MatrixFrom(m mapper.Mapper) (*mat.Dense, error) {
	neigh := m.Neighbors()
	pixels := m.Pixels()
	h := mat.NewDense(pixels, pixels, nil)
	c2 := r.Coefficient * r.Coefficient

	for i := 0; i < pixels; i++ {
		h.Set(i, i, h.At(i, i)+1e-8)
		for j := 0; j < neigh.Sizes[i]; j++ {
			k := neigh.Indexes[i][j]
			h.Set(i, i, h.At(i, i)+c2)
			h.Set(i, k, h.At(i, k)-c2)
		}
	}
	return h, nil
}

// ConstantSplit applies the constant scheme to the four cross points each
// source pixel splits into. Contributions are accumulated over the
// pairwise combinations of every cross point's mapping row, then the
// diagonal is halved to correct double counting. The diagonal floor is
// 2e-8 so it stays 1e-8 after halving.
type ConstantSplit struct {
	Coefficient float64
}

func (r ConstantSplit) MatrixFrom(m mapper.Mapper) (*mat.Dense, error) {
	sm, ok := m.(SplitMapper)
	if !ok {
		return nil, ErrNotSplitMapper
	}
	raw, err := sm.SplitCrossWeights()
	if err != nil {
		return nil, err
	}
	split, err := AdjustedSplitWeights(raw)
	if err != nil {
		return nil, err
	}

	pixels := m.Pixels()
	h := mat.NewDense(pixels, pixels, nil)
	c2 := r.Coefficient * r.Coefficient

	for i := 0; i < pixels; i++ {
		h.Set(i, i, h.At(i, i)+2e-8)
		for j := 0; j < 4; j++ {
			k := i*4 + j
			applySplitPair(h, split.Mappings[k], split.Weights[k], split.Sizes[k], c2)
		}
	}
	for i := 0; i < pixels; i++ {
		h.Set(i, i, h.At(i, i)/2.0)
	}
	return h, nil
}
