package mapper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avekens/lensinv/grids"
	"github.com/avekens/lensinv/mapper"
	"github.com/avekens/lensinv/mesh"
)

// dataGrid builds an unmasked rows x cols data-frame grid with unit pixel
// scales, the shared fixture for mapper tests.
func dataGrid(t *testing.T, rows, cols, subSize int) *grids.Grid2D {
	t.Helper()
	mask, err := grids.AllFalse(rows, cols, [2]float64{1, 1}, subSize)
	require.NoError(t, err)
	return grids.GridFromMask(mask)
}

func squareDelaunay(t *testing.T) *mesh.Delaunay {
	t.Helper()
	centres := [][2]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	m, err := mesh.NewDelaunay(centres, [][3]int{{0, 1, 2}, {1, 2, 3}})
	require.NoError(t, err)
	return m
}

func TestNewPixSubWeights_Validation(t *testing.T) {
	tests := []struct {
		name     string
		mappings [][]int
		weights  [][]float64
		maxSize  int
		wantErr  error
	}{
		{
			name:     "row_exceeds_max",
			mappings: [][]int{{0, 1}},
			weights:  [][]float64{{0.5, 0.5}},
			maxSize:  1,
			wantErr:  mapper.ErrTooManyMappings,
		},
		{
			name:     "row_length_mismatch",
			mappings: [][]int{{0, 1}},
			weights:  [][]float64{{0.5}},
			maxSize:  3,
			wantErr:  mapper.ErrGridMismatch,
		},
		{
			name:     "table_length_mismatch",
			mappings: [][]int{{0}, {1}},
			weights:  [][]float64{{1}},
			maxSize:  1,
			wantErr:  mapper.ErrGridMismatch,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := mapper.NewPixSubWeights(tc.mappings, tc.weights, tc.maxSize)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestNewPixSubWeights_Padding(t *testing.T) {
	psw, err := mapper.NewPixSubWeights(
		[][]int{{2}, {0, 1}},
		[][]float64{{1}, {0.25, 0.75}},
		3,
	)
	require.NoError(t, err)
	assert.Equal(t, []int{2, -1, -1}, psw.Mappings[0])
	assert.Equal(t, []int{0, 1, -1}, psw.Mappings[1])
	assert.Equal(t, []float64{1, 0, 0}, psw.Weights[0])
	assert.Equal(t, []int{1, 2}, psw.Sizes)
}

func TestRectangularMapper_IdentityMapping(t *testing.T) {
	grid := dataGrid(t, 3, 3, 1)
	m, err := mesh.NewRectangular(3, 3, [2]float64{1, 1}, [2]float64{0, 0})
	require.NoError(t, err)

	mp, err := mapper.NewRectangularMapper(grid, m, nil)
	require.NoError(t, err)

	// Mesh centres coincide with the data pixel centres, so every sub-pixel
	// maps to its own cell and the mapping matrix is the identity.
	f := mp.MappingMatrix()
	r, c := f.Dims()
	require.Equal(t, 9, r)
	require.Equal(t, 9, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, f.At(i, j), 1e-12)
		}
	}
}

func TestRectangularMapper_SubGridRowsSumToOne(t *testing.T) {
	grid := dataGrid(t, 2, 2, 2)
	m, err := mesh.NewRectangular(2, 2, [2]float64{1, 1}, [2]float64{0, 0})
	require.NoError(t, err)

	mp, err := mapper.NewRectangularMapper(grid, m, nil)
	require.NoError(t, err)

	f := mp.MappingMatrix()
	rows, cols := f.Dims()
	require.Equal(t, 4, rows)
	for i := 0; i < rows; i++ {
		sum := 0.0
		for j := 0; j < cols; j++ {
			sum += f.At(i, j)
		}
		assert.InDelta(t, 1.0, sum, 1e-12, "row %d", i)
	}
	// All four sub-pixels of data pixel i land in mesh cell i, each with a
	// quarter of the pixel's weight.
	for i := 0; i < rows; i++ {
		assert.InDelta(t, 1.0, f.At(i, i), 1e-12)
	}
}

func TestRectangularMapper_MemoizedMatrix(t *testing.T) {
	grid := dataGrid(t, 2, 2, 1)
	m, err := mesh.NewRectangular(2, 2, [2]float64{1, 1}, [2]float64{0, 0})
	require.NoError(t, err)
	mp, err := mapper.NewRectangularMapper(grid, m, nil)
	require.NoError(t, err)

	require.Same(t, mp.MappingMatrix(), mp.MappingMatrix())
}

func TestRectangularMapper_AdaptMismatch(t *testing.T) {
	grid := dataGrid(t, 3, 3, 1)
	m, err := mesh.NewRectangular(3, 3, [2]float64{1, 1}, [2]float64{0, 0})
	require.NoError(t, err)

	wrongMask, err := grids.AllFalse(2, 2, [2]float64{1, 1}, 1)
	require.NoError(t, err)
	adapt, err := grids.NewArray2D([]float64{1, 2, 3, 4}, wrongMask)
	require.NoError(t, err)

	_, err = mapper.NewRectangularMapper(grid, m, adapt)
	require.ErrorIs(t, err, mapper.ErrGridMismatch)
}

func TestVoronoiMapper_NearestCell(t *testing.T) {
	grid := dataGrid(t, 2, 2, 1)
	// Centres at the four data pixel centres, so nearest-cell mapping is
	// again one to one.
	v, err := mesh.NewVoronoi(
		[][2]float64{{0.5, -0.5}, {0.5, 0.5}, {-0.5, -0.5}, {-0.5, 0.5}},
		[][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}},
	)
	require.NoError(t, err)

	mp, err := mapper.NewVoronoiMapper(grid, v, nil)
	require.NoError(t, err)

	psw := mp.PixSubWeights()
	for s := 0; s < 4; s++ {
		require.Equal(t, 1, psw.Sizes[s])
		assert.Equal(t, s, psw.Mappings[s][0])
		assert.Equal(t, 1.0, psw.Weights[s][0])
	}

	inverse := mp.SubSlimIndexesForPixIndex()
	for pix := 0; pix < 4; pix++ {
		assert.Equal(t, []int{pix}, inverse[pix])
	}
}

func TestDelaunayMapper_BarycentricWeights(t *testing.T) {
	d := squareDelaunay(t)

	mask, err := grids.AllFalse(2, 2, [2]float64{1, 1}, 1)
	require.NoError(t, err)
	grid, err := grids.NewGrid2D([][2]float64{
		{0.25, 0.25}, // interior of triangle {0,1,2}
		{0, 0},       // exactly on vertex 0
		{0.5, 0.5},   // on the shared edge, vertex 0 weight vanishes
		{-5, -5},     // outside the hull, falls back to nearest vertex
	}, mask)
	require.NoError(t, err)

	mp, err := mapper.NewDelaunayMapper(grid, d, nil)
	require.NoError(t, err)
	psw := mp.PixSubWeights()

	require.Equal(t, 3, psw.Sizes[0])
	assert.Equal(t, []int{0, 1, 2}, psw.Mappings[0][:3])
	assert.InDelta(t, 0.5, psw.Weights[0][0], 1e-12)
	assert.InDelta(t, 0.25, psw.Weights[0][1], 1e-12)
	assert.InDelta(t, 0.25, psw.Weights[0][2], 1e-12)

	require.Equal(t, 1, psw.Sizes[1])
	assert.Equal(t, 0, psw.Mappings[1][0])
	assert.Equal(t, 1.0, psw.Weights[1][0])

	require.Equal(t, 2, psw.Sizes[2])
	assert.Equal(t, []int{1, 2}, psw.Mappings[2][:2])
	assert.InDelta(t, 0.5, psw.Weights[2][0], 1e-12)
	assert.InDelta(t, 0.5, psw.Weights[2][1], 1e-12)

	require.Equal(t, 1, psw.Sizes[3])
	assert.Equal(t, 0, psw.Mappings[3][0])
	assert.Equal(t, 1.0, psw.Weights[3][0])

	// Partition of unity: every mapping-matrix row sums to one regardless
	// of which branch produced it.
	f := mp.MappingMatrix()
	rows, cols := f.Dims()
	for i := 0; i < rows; i++ {
		sum := 0.0
		for j := 0; j < cols; j++ {
			sum += f.At(i, j)
		}
		assert.InDelta(t, 1.0, sum, 1e-12, "row %d", i)
	}
}

func TestDelaunayMapper_SplitCrossWeights(t *testing.T) {
	d := squareDelaunay(t)
	grid := dataGrid(t, 2, 2, 1)

	mp, err := mapper.NewDelaunayMapper(grid, d, nil)
	require.NoError(t, err)

	split, err := mp.SplitCrossWeights()
	require.NoError(t, err)
	require.Len(t, split.Mappings, 4*d.Pixels())
	require.Len(t, split.Sizes, 4*d.Pixels())

	for row := range split.Mappings {
		require.Len(t, split.Mappings[row], 4)
		size := split.Sizes[row]
		require.GreaterOrEqual(t, size, 1)
		require.LessOrEqual(t, size, 3)
		sum := 0.0
		for k := 0; k < size; k++ {
			require.GreaterOrEqual(t, split.Mappings[row][k], 0)
			sum += split.Weights[row][k]
		}
		assert.InDelta(t, 1.0, sum, 1e-12, "row %d", row)
	}
}

func TestUniqueMappings_AggregatesSubPixels(t *testing.T) {
	grid := dataGrid(t, 2, 2, 2)
	m, err := mesh.NewRectangular(2, 2, [2]float64{1, 1}, [2]float64{0, 0})
	require.NoError(t, err)
	mp, err := mapper.NewRectangularMapper(grid, m, nil)
	require.NoError(t, err)

	unique := mp.UniqueMappings()
	require.Len(t, unique.PixIndexes, 4)
	for i := 0; i < 4; i++ {
		assert.Equal(t, []int{i}, unique.PixIndexes[i])
		require.Len(t, unique.Weights[i], 1)
		assert.InDelta(t, 1.0, unique.Weights[i][0], 1e-12)
	}
}

func TestPixelSignals(t *testing.T) {
	grid := dataGrid(t, 3, 3, 1)
	m, err := mesh.NewRectangular(3, 3, [2]float64{1, 1}, [2]float64{0, 0})
	require.NoError(t, err)

	t.Run("nil_adapt_is_flat", func(t *testing.T) {
		mp, err := mapper.NewRectangularMapper(grid, m, nil)
		require.NoError(t, err)
		for _, s := range mp.PixelSignals(2.0) {
			assert.Equal(t, 1.0, s)
		}
	})

	t.Run("normalized_by_brightest", func(t *testing.T) {
		adapt, err := grids.NewArray2D(
			[]float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, grid.Mask())
		require.NoError(t, err)
		mp, err := mapper.NewRectangularMapper(grid, m, adapt)
		require.NoError(t, err)

		signals := mp.PixelSignals(1.0)
		require.Len(t, signals, 9)
		for i, s := range signals {
			assert.InDelta(t, float64(i+1)/9.0, s, 1e-12)
		}
	})

	t.Run("signal_scale_applied", func(t *testing.T) {
		adapt, err := grids.NewArray2D(
			[]float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, grid.Mask())
		require.NoError(t, err)
		mp, err := mapper.NewRectangularMapper(grid, m, adapt)
		require.NoError(t, err)

		signals := mp.PixelSignals(2.0)
		assert.InDelta(t, (4.0/9.0)*(4.0/9.0), signals[3], 1e-12)
		assert.InDelta(t, 1.0, signals[8], 1e-12)
	})
}
