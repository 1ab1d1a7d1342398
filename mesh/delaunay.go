package mesh

import "math"

// Delaunay is an irregular mesh of source-plane pixels represented by their
// centres (triangulation vertices) and the simplex (triangle) list of an
// externally computed triangulation.
type Delaunay struct {
	centres   [][2]float64
	simplices [][3]int
}

// NewDelaunay builds a Delaunay mesh from vertex centres and simplices.
func NewDelaunay(centres [][2]float64, simplices [][3]int) (*Delaunay, error) {
	pixels := len(centres)
	for _, s := range simplices {
		for _, p := range s {
			if p < 0 || p >= pixels {
				return nil, ErrSimplexIndex
			}
		}
	}
	cs := make([][2]float64, pixels)
	copy(cs, centres)
	ss := make([][3]int, len(simplices))
	copy(ss, simplices)
	return &Delaunay{centres: cs, simplices: ss}, nil
}

// Pixels returns the vertex count.
func (m *Delaunay) Pixels() int { return len(m.centres) }

// Centres returns the (y,x) vertex centres in index order.
func (m *Delaunay) Centres() [][2]float64 { return m.centres }

// Simplices returns the triangle list.
func (m *Delaunay) Simplices() [][3]int { return m.simplices }

// Neighbors returns vertex adjacency derived from the simplex edges: two
// vertices are neighbors when they share a triangle edge. Duplicate edges
// across adjacent triangles are collapsed before the ridge pass.
func (m *Delaunay) Neighbors() (Neighbors, error) {
	seen := make(map[[2]int]struct{}, 3*len(m.simplices))
	var ridges [][2]int
	add := func(a, b int) {
		if a > b {
			a, b = b, a
		}
		key := [2]int{a, b}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		ridges = append(ridges, key)
	}
	for _, s := range m.simplices {
		add(s[0], s[1])
		add(s[1], s[2])
		add(s[0], s[2])
	}
	return RidgeNeighbors(len(m.centres), ridges)
}

// Barycentric locates the simplex containing (y, x) and returns its three
// vertex indexes with the barycentric weights of the coordinate, which sum
// to one. Degenerate (zero-area) simplices are skipped rather than crashing
// the search. ok is false when no simplex contains the coordinate; callers
// fall back to NearestIndex.
func (m *Delaunay) Barycentric(y, x float64) (verts [3]int, weights [3]float64, ok bool) {
	const eps = 1e-12
	for _, s := range m.simplices {
		a, b, c := m.centres[s[0]], m.centres[s[1]], m.centres[s[2]]
		det := (b[0]-c[0])*(a[1]-c[1]) + (c[1]-b[1])*(a[0]-c[0])
		if math.Abs(det) < eps {
			continue // zero-area simplex
		}
		w0 := ((b[0]-c[0])*(x-c[1]) + (c[1]-b[1])*(y-c[0])) / det
		w1 := ((c[0]-a[0])*(x-c[1]) + (a[1]-c[1])*(y-c[0])) / det
		w2 := 1.0 - w0 - w1
		if w0 < -eps || w1 < -eps || w2 < -eps {
			continue
		}
		if w0 < 0 {
			w0 = 0
		}
		if w1 < 0 {
			w1 = 0
		}
		if w2 < 0 {
			w2 = 0
		}
		sum := w0 + w1 + w2
		return s, [3]float64{w0 / sum, w1 / sum, w2 / sum}, true
	}
	return [3]int{}, [3]float64{}, false
}

// NearestIndex returns the vertex closest to (y, x).
func (m *Delaunay) NearestIndex(y, x float64) int {
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
