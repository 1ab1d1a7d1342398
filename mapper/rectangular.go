package mapper

import (
	"github.com/avekens/lensinv/grids"
	"github.com/avekens/lensinv/mesh"
)

// RectangularMapper pairs a traced source-frame grid with a rectangular
// pixelization overlaid on it. Every sub-pixel maps to exactly one cell
// with unit weight; coordinates outside the overlay clamp to the border.
type RectangularMapper struct {
	base
	mesh *mesh.Rectangular
}

// NewRectangularMapper builds the mapper for grid over m. The optional
// adapt image supplies per-image-pixel signal estimates for adaptive
// regularization; pass nil for a flat signal.
func NewRectangularMapper(grid *grids.Grid2D, m *mesh.Rectangular, adapt *grids.Array2D) (*RectangularMapper, error) {
	slim, err := adaptSlim(adapt, grid)
	if err != nil {
		return nil, err
	}
	neigh, err := m.Neighbors()
	if err != nil {
		return nil, err
	}

	coords := grid.Coords()
	mappings := make([][]int, len(coords))
	weights := make([][]float64, len(coords))
	for s, c := range coords {
		mappings[s] = []int{m.CellIndex(c[0], c[1])}
		weights[s] = []float64{1}
	}
	psw, err := NewPixSubWeights(mappings, weights, 1)
	if err != nil {
		return nil, err
	}

	return &RectangularMapper{
		base: base{
			grid:    grid,
			adapt:   slim,
			centres: m.Centres(),
			neigh:   neigh,
			psw:     psw,
		},
		mesh: m,
	}, nil
}

// Mesh returns the underlying rectangular pixelization.
func (r *RectangularMapper) Mesh() *mesh.Rectangular { return r.mesh }
