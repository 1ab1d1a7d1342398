package grids_test

import (
	"math"
	"testing"

	"github.com/avekens/lensinv/grids"
)

// TestGridFromMask_PixelCentres checks pixel-centre coordinates for a fully
// unmasked 3x3 grid with pixel scale 2: the centre pixel sits at the origin
// and y decreases downward.
func TestGridFromMask_PixelCentres(t *testing.T) {
	m, err := grids.AllFalse(3, 3, [2]float64{2, 2}, 1)
	if err != nil {
		t.Fatalf("AllFalse error: %v", err)
	}
	g := grids.GridFromMask(m)

	want := [][2]float64{
		{2, -2}, {2, 0}, {2, 2},
		{0, -2}, {0, 0}, {0, 2},
		{-2, -2}, {-2, 0}, {-2, 2},
	}
	coords := g.Coords()
	if len(coords) != len(want) {
		t.Fatalf("Len() = %d; want %d", len(coords), len(want))
	}
	for i, w := range want {
		if math.Abs(coords[i][0]-w[0]) > 1e-12 || math.Abs(coords[i][1]-w[1]) > 1e-12 {
			t.Errorf("coords[%d] = %v; want %v", i, coords[i], w)
		}
	}
}

// TestGridFromMask_SubPixelCentres checks that sub-pixel centres of a single
// pixel are placed symmetrically within it.
func TestGridFromMask_SubPixelCentres(t *testing.T) {
	m, err := grids.AllFalse(1, 1, [2]float64{1, 1}, 2)
	if err != nil {
		t.Fatalf("AllFalse error: %v", err)
	}
	g := grids.GridFromMask(m)

	want := [][2]float64{
		{0.25, -0.25}, {0.25, 0.25},
		{-0.25, -0.25}, {-0.25, 0.25},
	}
	coords := g.Coords()
	for i, w := range want {
		if math.Abs(coords[i][0]-w[0]) > 1e-12 || math.Abs(coords[i][1]-w[1]) > 1e-12 {
			t.Errorf("coords[%d] = %v; want %v", i, coords[i], w)
		}
	}
}

func TestGrid2D_Extent(t *testing.T) {
	m, err := grids.AllFalse(2, 2, [2]float64{1, 1}, 1)
	if err != nil {
		t.Fatalf("AllFalse error: %v", err)
	}
	g := grids.GridFromMask(m)
	yMin, yMax, xMin, xMax := g.Extent()
	if yMin != -0.5 || yMax != 0.5 || xMin != -0.5 || xMax != 0.5 {
		t.Errorf("Extent() = (%v,%v,%v,%v); want (-0.5,0.5,-0.5,0.5)", yMin, yMax, xMin, xMax)
	}
}
