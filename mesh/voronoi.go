package mesh

// Voronoi is an irregular mesh of source-plane pixels represented by their
// cell centres and the ridge list of the tessellation. The tessellation
// itself (cell vertices) is computed by an external collaborator; this
// package only consumes its topology.
type Voronoi struct {
	centres [][2]float64
	ridges  [][2]int
}

// NewVoronoi builds a Voronoi mesh from cell centres and the ridge list.
// Ridges are validated eagerly so a malformed tessellation fails at
// construction rather than at first neighbor lookup.
func NewVoronoi(centres [][2]float64, ridges [][2]int) (*Voronoi, error) {
	pixels := len(centres)
	for _, ridge := range ridges {
		if ridge[0] == ridge[1] {
			return nil, ErrSelfRidge
		}
		if ridge[0] < 0 || ridge[0] >= pixels || ridge[1] < 0 || ridge[1] >= pixels {
			return nil, ErrRidgeIndex
		}
	}
	cs := make([][2]float64, pixels)
	copy(cs, centres)
	rs := make([][2]int, len(ridges))
	copy(rs, ridges)
	return &Voronoi{centres: cs, ridges: rs}, nil
}

// Pixels returns the cell count.
func (m *Voronoi) Pixels() int { return len(m.centres) }

// Centres returns the (y,x) cell centres in index order.
func (m *Voronoi) Centres() [][2]float64 { return m.centres }

// Neighbors returns the ridge-derived adjacency.
func (m *Voronoi) Neighbors() (Neighbors, error) {
	return RidgeNeighbors(len(m.centres), m.ridges)
}

// NearestIndex returns the cell whose centre is closest to (y, x). This is
// the Voronoi cell containing the coordinate, by definition of the
// tessellation.
func (m *Voronoi) NearestIndex(y, x float64) int {
	best, bestD := 0, -1.0
	for i, c := range m.centres {
		dy, dx := y-c[0], x-c[1]
		d := dy*dy + dx*dx
		if bestD < 0 || d < bestD {
			bestD = d
			best = i
		}
	}
	return best
}
