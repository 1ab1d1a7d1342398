package regularization

import (
	"gonum.org/v1/gonum/mat"

	"github.com/avekens/lensinv/mapper"
)

// Regularizer builds the regularization matrix H of a mapper. All
// implementations return a symmetric pixels x pixels matrix with a small
// positive floor on the diagonal, so H is positive definite even for
// pixels without neighbors.
type Regularizer interface {
	MatrixFrom(m mapper.Mapper) (*mat.Dense, error)
}

// SplitMapper is implemented by mappers that can split their source pixels
// into cross sample points for the split regularization schemes.
type SplitMapper interface {
	mapper.Mapper
	SplitCrossWeights() (mapper.SplitCrossWeights, error)
}

// applySplitPair accumulates the pairwise products of one cross point's
// mapping row into the matrix, both orientations. Diagonal double counting
// is corrected by the caller, which halves the diagonal at the end.
func applySplitPair(h *mat.Dense, mappings []int, weights []float64, size int, coefficient float64) {
	for l := 0; l < size; l++ {
		for m := 0; m < size-l; m++ {
			v := weights[l] * weights[l+m] * coefficient
			h.Set(mappings[l], mappings[l+m], h.At(mappings[l], mappings[l+m])+v)
			h.Set(mappings[l+m], mappings[l], h.At(mappings[l+m], mappings[l])+v)
		}
	}
}

// AdjustedSplitWeights rewrites a mapper's split cross table into the
// difference form used by the split schemes: every mapping weight is
// negated and the owning pixel's own index gains a weight of one, appended
// when the cross point does not already map to it. The input table is not
// mutated. Returns ErrNeighborOverflow when a row has no free slot left.
func AdjustedSplitWeights(split mapper.SplitCrossWeights) (mapper.SplitCrossWeights, error) {
	n := len(split.Mappings)
	out := mapper.SplitCrossWeights{
		Mappings: make([][]int, n),
		Sizes:    make([]int, n),
		Weights:  make([][]float64, n),
	}
	for i := 0; i < n; i++ {
		width := len(split.Mappings[i])
		out.Mappings[i] = make([]int, width)
		out.Weights[i] = make([]float64, width)
		copy(out.Mappings[i], split.Mappings[i])
		for k, w := range split.Weights[i] {
			out.Weights[i][k] = -w
		}
		out.Sizes[i] = split.Sizes[i]

		pixel := i / 4
		found := false
		for j := 0; j < out.Sizes[i]; j++ {
			if j >= width-1 {
				return mapper.SplitCrossWeights{}, ErrNeighborOverflow
			}
			if out.Mappings[i][j] == pixel {
				out.Weights[i][j] += 1.0
				found = true
			}
		}
		if !found {
			out.Mappings[i][out.Sizes[i]] = pixel
			out.Weights[i][out.Sizes[i]] = 1.0
			out.Sizes[i]++
		}
	}
	return out, nil
}
