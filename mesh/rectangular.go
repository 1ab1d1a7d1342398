package mesh

import (
	"github.com/avekens/lensinv/grids"
)

// Rectangular is a uniform rows x cols mesh of source-plane pixels. Pixels
// are indexed row-major from the top-left; centre coordinates follow the
// grids convention (y decreasing downward, x increasing rightward).
type Rectangular struct {
	rows, cols  int
	pixelScales [2]float64
	origin      [2]float64
	centres     [][2]float64
}

// NewRectangular builds a rows x cols mesh with explicit pixel scales and
// origin. Returns ErrMeshShape for dimensions below 2x2.
func NewRectangular(rows, cols int, pixelScales [2]float64, origin [2]float64) (*Rectangular, error) {
	if rows < 2 || cols < 2 {
		return nil, ErrMeshShape
	}
	m := &Rectangular{
		rows:        rows,
		cols:        cols,
		pixelScales: pixelScales,
		origin:      origin,
	}
	m.centres = make([][2]float64, rows*cols)
	centreR := float64(rows-1) / 2.0
	centreC := float64(cols-1) / 2.0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			m.centres[r*cols+c] = [2]float64{
				origin[0] + (centreR-float64(r))*pixelScales[0],
				origin[1] + (float64(c)-centreC)*pixelScales[1],
			}
		}
	}
	return m, nil
}

// OverlayGrid lays a rows x cols rectangular mesh over the bounding box of
// a source-frame grid. The mesh edges coincide with the extreme grid
// coordinates extended by buffer on every side, so every grid coordinate
// falls inside some mesh cell.
func OverlayGrid(rows, cols int, grid *grids.Grid2D, buffer float64) (*Rectangular, error) {
	yMin, yMax, xMin, xMax := grid.Extent()
	yMin -= buffer
	yMax += buffer
	xMin -= buffer
	xMax += buffer

	pixelScales := [2]float64{
		(yMax - yMin) / float64(rows),
		(xMax - xMin) / float64(cols),
	}
	origin := [2]float64{(yMax + yMin) / 2.0, (xMax + xMin) / 2.0}

	return NewRectangular(rows, cols, pixelScales, origin)
}

// Pixels returns the total pixel count rows*cols.
func (m *Rectangular) Pixels() int { return m.rows * m.cols }

// Shape returns the mesh dimensions (rows, cols).
func (m *Rectangular) Shape() (rows, cols int) { return m.rows, m.cols }

// PixelScales returns the (y,x) scaled units per mesh pixel.
func (m *Rectangular) PixelScales() [2]float64 { return m.pixelScales }

// Centres returns the (y,x) centre of every mesh pixel in index order.
func (m *Rectangular) Centres() [][2]float64 { return m.centres }

// Neighbors returns the closed-form rectangular adjacency.
func (m *Rectangular) Neighbors() (Neighbors, error) {
	return RectangularNeighbors(m.rows, m.cols)
}

// CellIndex returns the mesh pixel containing the (y, x) coordinate.
// Coordinates outside the mesh clamp to the nearest edge cell, matching the
// behaviour of overlaying a buffered mesh over its own source grid.
func (m *Rectangular) CellIndex(y, x float64) int {
	yTop := m.origin[0] + m.pixelScales[0]*float64(m.rows)/2.0
	xLeft := m.origin[1] - m.pixelScales[1]*float64(m.cols)/2.0

	row := int((yTop - y) / m.pixelScales[0])
	col := int((x - xLeft) / m.pixelScales[1])
	if row < 0 {
		row = 0
	}
	if row > m.rows-1 {
		row = m.rows - 1
	}
	if col < 0 {
		col = 0
	}
	if col > m.cols-1 {
		col = m.cols - 1
	}
	return row*m.cols + col
}
