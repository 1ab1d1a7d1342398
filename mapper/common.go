package mapper

import (
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/avekens/lensinv/grids"
	"github.com/avekens/lensinv/mesh"
)

// base carries the state and memoization shared by every pixelization
// mapper. The mapping table and neighbor topology are built eagerly at
// construction; the dense matrix and its derived views are computed on
// first use and cached for the mapper's lifetime.
type base struct {
	grid    *grids.Grid2D
	adapt   []float64
	centres [][2]float64
	neigh   mesh.Neighbors
	psw     PixSubWeights

	matrixOnce sync.Once
	matrix     *mat.Dense

	uniqueOnce sync.Once
	unique     UniqueMappings

	inverseOnce sync.Once
	inverse     [][]int
}

func (b *base) SourceGrid() *grids.Grid2D { return b.grid }

func (b *base) Centres() [][2]float64 { return b.centres }

func (b *base) Pixels() int { return len(b.centres) }

func (b *base) Neighbors() mesh.Neighbors { return b.neigh }

func (b *base) PixSubWeights() PixSubWeights { return b.psw }

func (b *base) MappingMatrix() *mat.Dense {
	b.matrixOnce.Do(func() {
		mask := b.grid.Mask()
		b.matrix = MappingMatrixFrom(b.psw, len(b.centres), mask.Pixels(),
			mask.SlimIndexForSubSlimIndex(), mask.SubFraction())
	})
	return b.matrix
}

func (b *base) UniqueMappings() UniqueMappings {
	b.uniqueOnce.Do(func() {
		mask := b.grid.Mask()
		b.unique = UniqueMappingsFrom(b.psw, mask.Pixels(),
			mask.SlimIndexForSubSlimIndex(), mask.SubFraction())
	})
	return b.unique
}

func (b *base) PixelSignals(signalScale float64) []float64 {
	return AdaptivePixelSignals(len(b.centres), signalScale, b.psw,
		b.grid.Mask().SlimIndexForSubSlimIndex(), b.adapt)
}

func (b *base) SubSlimIndexesForPixIndex() [][]int {
	b.inverseOnce.Do(func() {
		b.inverse = make([][]int, len(b.centres))
		for sub := range b.psw.Mappings {
			for k := 0; k < b.psw.Sizes[sub]; k++ {
				pix := b.psw.Mappings[sub][k]
				b.inverse[pix] = append(b.inverse[pix], sub)
			}
		}
	})
	return b.inverse
}

// adaptSlim validates an optional adapt image against the data mask and
// unwraps its slim values.
func adaptSlim(adapt *grids.Array2D, grid *grids.Grid2D) ([]float64, error) {
	if adapt == nil {
		return nil, nil
	}
	if adapt.Len() != grid.Mask().Pixels() {
		return nil, ErrGridMismatch
	}
	return adapt.Slim(), nil
}
