package mesh

// Neighbors is the adjacency table of a pixelization. Indexes is a padded
// [pixels][maxNeighbors] table where unused slots hold -1; Sizes gives the
// number of valid entries per row. Rows are iterated as
// Indexes[i][:Sizes[i]].
type Neighbors struct {
	Indexes [][]int
	Sizes   []int
}

// Pixels returns the number of pixels the table covers.
func (n Neighbors) Pixels() int { return len(n.Sizes) }

// RectangularNeighbors returns the adjacency of a rows x cols rectangular
// mesh by closed-form positional arithmetic; no search is performed.
// Pixel index = row*cols + col, row-major from the top-left. Corner pixels
// have 2 neighbors, edge pixels 3 and interior pixels 4, listed in
// up/left/right/down order.
//
// For example on a 3x3 mesh the top-left pixel 0 has neighbors [1, 3], the
// top-middle pixel 1 has [0, 2, 4] and the central pixel 4 has [1, 3, 5, 7].
//
// Complexity: O(rows*cols).
func RectangularNeighbors(rows, cols int) (Neighbors, error) {
	if rows < 2 || cols < 2 {
		return Neighbors{}, ErrMeshShape
	}
	pixels := rows * cols
	indexes := make([][]int, pixels)
	sizes := make([]int, pixels)
	for i := 0; i < pixels; i++ {
		indexes[i] = []int{-1, -1, -1, -1}
		row, col := i/cols, i%cols
		k := 0
		if row > 0 {
			indexes[i][k] = i - cols
			k++
		}
		if col > 0 {
			indexes[i][k] = i - 1
			k++
		}
		if col < cols-1 {
			indexes[i][k] = i + 1
			k++
		}
		if row < rows-1 {
			indexes[i][k] = i + cols
			k++
		}
		sizes[i] = k
	}
	return Neighbors{Indexes: indexes, Sizes: sizes}, nil
}

// RidgeNeighbors returns the adjacency of an irregular tessellation from
// its ridge list: every ridge (p0, p1) makes p1 a neighbor of p0 and vice
// versa, so the neighbor relation is symmetric by construction. The table
// width is the maximum observed degree.
//
// Self-loops are rejected with ErrSelfRidge and out-of-range pixel indexes
// with ErrRidgeIndex.
//
// Complexity: O(pixels + ridges).
func RidgeNeighbors(pixels int, ridges [][2]int) (Neighbors, error) {
	sizes := make([]int, pixels)
	for _, ridge := range ridges {
		p0, p1 := ridge[0], ridge[1]
		if p0 == p1 {
			return Neighbors{}, ErrSelfRidge
		}
		if p0 < 0 || p0 >= pixels || p1 < 0 || p1 >= pixels {
			return Neighbors{}, ErrRidgeIndex
		}
		sizes[p0]++
		sizes[p1]++
	}

	maxDegree := 0
	for _, s := range sizes {
		if s > maxDegree {
			maxDegree = s
		}
	}

	indexes := make([][]int, pixels)
	for i := range indexes {
		indexes[i] = make([]int, maxDegree)
		for j := range indexes[i] {
			indexes[i][j] = -1
		}
	}
	next := make([]int, pixels)
	for _, ridge := range ridges {
		p0, p1 := ridge[0], ridge[1]
		indexes[p0][next[p0]] = p1
		indexes[p1][next[p1]] = p0
		next[p0]++
		next[p1]++
	}

	return Neighbors{Indexes: indexes, Sizes: sizes}, nil
}
