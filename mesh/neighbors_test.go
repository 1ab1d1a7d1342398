package mesh_test

import (
	"errors"
	"testing"

	"github.com/avekens/lensinv/mesh"
)

// TestRectangularNeighbors_3x3 pins the closed-form adjacency of a 3x3 mesh
// pixel by pixel.
func TestRectangularNeighbors_3x3(t *testing.T) {
	n, err := mesh.RectangularNeighbors(3, 3)
	if err != nil {
		t.Fatalf("RectangularNeighbors error: %v", err)
	}

	wantIndexes := [][]int{
		{1, 3, -1, -1},
		{0, 2, 4, -1},
		{1, 5, -1, -1},
		{0, 4, 6, -1},
		{1, 3, 5, 7},
		{2, 4, 8, -1},
		{3, 7, -1, -1},
		{4, 6, 8, -1},
		{5, 7, -1, -1},
	}
	wantSizes := []int{2, 3, 2, 3, 4, 3, 2, 3, 2}

	for i := range wantIndexes {
		if n.Sizes[i] != wantSizes[i] {
			t.Errorf("Sizes[%d] = %d; want %d", i, n.Sizes[i], wantSizes[i])
		}
		for j := range wantIndexes[i] {
			if n.Indexes[i][j] != wantIndexes[i][j] {
				t.Errorf("Indexes[%d][%d] = %d; want %d", i, j, n.Indexes[i][j], wantIndexes[i][j])
			}
		}
	}
}

// TestRectangularNeighbors_3x4 checks a non-square mesh: corner, edge and
// interior pixel counts.
func TestRectangularNeighbors_3x4(t *testing.T) {
	n, err := mesh.RectangularNeighbors(3, 4)
	if err != nil {
		t.Fatalf("RectangularNeighbors error: %v", err)
	}
	wantSizes := []int{2, 3, 3, 2, 3, 4, 4, 3, 2, 3, 3, 2}
	for i, want := range wantSizes {
		if n.Sizes[i] != want {
			t.Errorf("Sizes[%d] = %d; want %d", i, n.Sizes[i], want)
		}
	}
	// Interior pixel 5 at (row 1, col 1): up 1, left 4, right 6, down 9.
	want5 := []int{1, 4, 6, 9}
	for j, want := range want5 {
		if n.Indexes[5][j] != want {
			t.Errorf("Indexes[5][%d] = %d; want %d", j, n.Indexes[5][j], want)
		}
	}
}

func TestRectangularNeighbors_ShapeError(t *testing.T) {
	if _, err := mesh.RectangularNeighbors(1, 5); !errors.Is(err, mesh.ErrMeshShape) {
		t.Errorf("RectangularNeighbors(1,5) error = %v; want ErrMeshShape", err)
	}
}

// TestRidgeNeighbors_Symmetry verifies that i is a neighbor of j iff j is a
// neighbor of i for a ridge-derived topology.
func TestRidgeNeighbors_Symmetry(t *testing.T) {
	ridges := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {0, 2}}
	n, err := mesh.RidgeNeighbors(4, ridges)
	if err != nil {
		t.Fatalf("RidgeNeighbors error: %v", err)
	}

	has := func(i, j int) bool {
		for k := 0; k < n.Sizes[i]; k++ {
			if n.Indexes[i][k] == j {
				return true
			}
		}
		return false
	}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i == j {
				continue
			}
			if has(i, j) != has(j, i) {
				t.Errorf("asymmetric neighbor relation between %d and %d", i, j)
			}
		}
	}

	if n.Sizes[0] != 3 || n.Sizes[1] != 2 || n.Sizes[2] != 3 || n.Sizes[3] != 2 {
		t.Errorf("Sizes = %v; want [3 2 3 2]", n.Sizes)
	}
	// Table width tracks the maximum observed degree.
	if len(n.Indexes[1]) != 3 {
		t.Errorf("table width = %d; want 3", len(n.Indexes[1]))
	}
	if n.Indexes[1][2] != -1 {
		t.Errorf("unused slot = %d; want -1 sentinel", n.Indexes[1][2])
	}
}

func TestRidgeNeighbors_Errors(t *testing.T) {
	if _, err := mesh.RidgeNeighbors(3, [][2]int{{1, 1}}); !errors.Is(err, mesh.ErrSelfRidge) {
		t.Errorf("self ridge error = %v; want ErrSelfRidge", err)
	}
	if _, err := mesh.RidgeNeighbors(3, [][2]int{{0, 3}}); !errors.Is(err, mesh.ErrRidgeIndex) {
		t.Errorf("out of range ridge error = %v; want ErrRidgeIndex", err)
	}
}
