package mapper

import (
	"gonum.org/v1/gonum/mat"

	"github.com/avekens/lensinv/grids"
	"github.com/avekens/lensinv/mesh"
)

// PixSubWeights is the sparse mapping table between data sub-pixels and
// source pixels. Row s of Mappings lists the source pixels sub-pixel s maps
// to, Weights the matching fractional weights and Sizes the number of valid
// entries. Rows are padded to the scheme's fixed maximum; unused mapping
// slots hold -1 and unused weights zero.
type PixSubWeights struct {
	Mappings [][]int
	Sizes    []int
	Weights  [][]float64
}

// NewPixSubWeights validates and packages a mapping table. Every row must
// fit within maxSize entries; a longer row is a fatal construction error
// (ErrTooManyMappings). Rows shorter than maxSize are padded.
func NewPixSubWeights(mappings [][]int, weights [][]float64, maxSize int) (PixSubWeights, error) {
	if len(mappings) != len(weights) {
		return PixSubWeights{}, ErrGridMismatch
	}
	n := len(mappings)
	out := PixSubWeights{
		Mappings: make([][]int, n),
		Sizes:    make([]int, n),
		Weights:  make([][]float64, n),
	}
	for s := 0; s < n; s++ {
		if len(mappings[s]) != len(weights[s]) {
			return PixSubWeights{}, ErrGridMismatch
		}
		if len(mappings[s]) > maxSize {
			return PixSubWeights{}, ErrTooManyMappings
		}
		out.Mappings[s] = make([]int, maxSize)
		out.Weights[s] = make([]float64, maxSize)
		for k := range out.Mappings[s] {
			out.Mappings[s][k] = -1
		}
		copy(out.Mappings[s], mappings[s])
		copy(out.Weights[s], weights[s])
		out.Sizes[s] = len(mappings[s])
	}
	return out, nil
}

// UniqueMappings stores, for every unmasked image pixel, the deduplicated
// source pixels it maps to and the aggregate weight of each mapping (the
// nonzero entries of the corresponding mapping-matrix row). Zero-weight
// mappings are dropped.
type UniqueMappings struct {
	PixIndexes [][]int
	Weights    [][]float64
}

// SplitCrossWeights is the mapping table of the four "cross" sample points
// each source pixel is split into for split regularization schemes. Rows
// are grouped four per source pixel: rows 4i..4i+3 belong to pixel i.
type SplitCrossWeights struct {
	Mappings [][]int
	Sizes    []int
	Weights  [][]float64
}

// LinearObj is any linear object contributing columns to an inversion's
// mapping matrix. Pixelization mappers are the main implementation; linear
// function objects with fixed profiles are the degenerate single-column
// case.
type LinearObj interface {
	// Pixels returns the number of source pixels (matrix columns).
	Pixels() int
	// MappingMatrix returns the dense [image pixels, Pixels()] matrix f.
	MappingMatrix() *mat.Dense
}

// Mapper is a LinearObj backed by a source-plane pixelization, exposing the
// topology and signal estimates that regularization schemes consume.
// Implementations are immutable after construction and memoize their
// derived quantities.
type Mapper interface {
	LinearObj

	// SourceGrid returns the source-frame sub-pixel grid the mapper pairs
	// with the pixelization.
	SourceGrid() *grids.Grid2D
	// Centres returns the (y,x) centre of every source pixel.
	Centres() [][2]float64
	// Neighbors returns the pixelization's adjacency table.
	Neighbors() mesh.Neighbors
	// PixSubWeights returns the sparse mapping table.
	PixSubWeights() PixSubWeights
	// UniqueMappings returns the per-image-pixel deduplicated mappings.
	UniqueMappings() UniqueMappings
	// PixelSignals returns the adaptive per-source-pixel signal estimate in
	// [0, 1], raised to signalScale.
	PixelSignals(signalScale float64) []float64
	// SubSlimIndexesForPixIndex inverts the mapping table: for every source
	// pixel, the data sub-pixels that map to it.
	SubSlimIndexesForPixIndex() [][]int
}
