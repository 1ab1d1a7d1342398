package mapper

import (
	"github.com/avekens/lensinv/grids"
	"github.com/avekens/lensinv/mesh"
)

// VoronoiMapper pairs a traced source-frame grid with a Voronoi
// pixelization. Every sub-pixel maps with unit weight to the cell whose
// centre is nearest.
type VoronoiMapper struct {
	base
	mesh *mesh.Voronoi
}

// NewVoronoiMapper builds the mapper for grid over m. The optional adapt
// image supplies per-image-pixel signal estimates for adaptive
// regularization; pass nil for a flat signal.
func NewVoronoiMapper(grid *grids.Grid2D, m *mesh.Voronoi, adapt *grids.Array2D) (*VoronoiMapper, error) {
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
		mappings[s] = []int{m.NearestIndex(c[0], c[1])}
		weights[s] = []float64{1}
	}
	psw, err := NewPixSubWeights(mappings, weights, 1)
	if err != nil {
		return nil, err
	}

	return &VoronoiMapper{
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

// Mesh returns the underlying Voronoi pixelization.
func (v *VoronoiMapper) Mesh() *mesh.Voronoi { return v.mesh }
