package mapper

import (
	"math"
	"sync"

	"github.com/avekens/lensinv/grids"
	"github.com/avekens/lensinv/mesh"
)

// DelaunayMapper pairs a traced source-frame grid with a Delaunay
// triangulation. A sub-pixel landing inside a triangle maps to its three
// vertices with barycentric weights; a sub-pixel outside every triangle
// falls back to the nearest vertex with unit weight.
type DelaunayMapper struct {
	base
	mesh *mesh.Delaunay

	splitOnce sync.Once
	split     SplitCrossWeights
	splitErr  error
}

// NewDelaunayMapper builds the mapper for grid over m. The optional adapt
// image supplies per-image-pixel signal estimates for adaptive
// regularization; pass nil for a flat signal.
func NewDelaunayMapper(grid *grids.Grid2D, m *mesh.Delaunay, adapt *grids.Array2D) (*DelaunayMapper, error) {
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
		mappings[s], weights[s] = delaunayMapping(m, c[0], c[1])
	}
	psw, err := NewPixSubWeights(mappings, weights, 3)
	if err != nil {
		return nil, err
	}

	return &DelaunayMapper{
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

// Mesh returns the underlying Delaunay triangulation.
func (d *DelaunayMapper) Mesh() *mesh.Delaunay { return d.mesh }

// SplitCrossWeights splits every source pixel into four cross points offset
// up, down, left and right of its centre by half the mean distance to its
// mesh neighbors, and interpolates each point back onto the triangulation.
// Rows 4i..4i+3 belong to pixel i; rows are padded to four entries so the
// split regularization adjustment has one spare slot per point.
func (d *DelaunayMapper) SplitCrossWeights() (SplitCrossWeights, error) {
	d.splitOnce.Do(func() {
		d.split, d.splitErr = d.splitCrossWeights()
	})
	return d.split, d.splitErr
}

func (d *DelaunayMapper) splitCrossWeights() (SplitCrossWeights, error) {
	centres := d.centres
	n := len(centres)
	out := SplitCrossWeights{
		Mappings: make([][]int, 4*n),
		Sizes:    make([]int, 4*n),
		Weights:  make([][]float64, 4*n),
	}
	for i, c := range centres {
		offset := d.crossOffset(i)
		points := [4][2]float64{
			{c[0] + offset, c[1]},
			{c[0] - offset, c[1]},
			{c[0], c[1] + offset},
			{c[0], c[1] - offset},
		}
		for p, pt := range points {
			row := 4*i + p
			mappings, weights := delaunayMapping(d.mesh, pt[0], pt[1])
			out.Mappings[row] = make([]int, 4)
			out.Weights[row] = make([]float64, 4)
			for k := range out.Mappings[row] {
				out.Mappings[row][k] = -1
			}
			copy(out.Mappings[row], mappings)
			copy(out.Weights[row], weights)
			out.Sizes[row] = len(mappings)
		}
	}
	return out, nil
}

// crossOffset is half the mean distance from pixel i's centre to the
// centres of its mesh neighbors. An isolated pixel gets a zero offset, so
// its four cross points degenerate onto the centre.
func (d *DelaunayMapper) crossOffset(i int) float64 {
	size := d.neigh.Sizes[i]
	if size == 0 {
		return 0
	}
	c := d.centres[i]
	sum := 0.0
	for k := 0; k < size; k++ {
		nc := d.centres[d.neigh.Indexes[i][k]]
		sum += math.Hypot(nc[0]-c[0], nc[1]-c[1])
	}
	return sum / float64(size) / 2
}

// delaunayMapping interpolates a single (y, x) coordinate onto the
// triangulation, falling back to the nearest vertex when the point lies
// outside every triangle.
func delaunayMapping(m *mesh.Delaunay, y, x float64) ([]int, []float64) {
	verts, weights, ok := m.Barycentric(y, x)
	if !ok {
		return []int{m.NearestIndex(y, x)}, []float64{1}
	}
	mappings := make([]int, 0, 3)
	ws := make([]float64, 0, 3)
	for k := 0; k < 3; k++ {
		if weights[k] == 0 {
			continue
		}
		mappings = append(mappings, verts[k])
		ws = append(ws, weights[k])
	}
	return mappings, ws
}
