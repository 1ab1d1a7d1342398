package grids

// Grid2D stores the scaled (y,x) coordinate of every unmasked sub-pixel of
// a Mask2D, in sub-slim order. A Grid2D may be in the data reference frame
// (coordinates aligned with pixel centres, see GridFromMask) or in a
// transformed source frame (arbitrary coordinates supplied to NewGrid2D,
// one per sub-pixel, in the same sub-slim ordering).
type Grid2D struct {
	mask   *Mask2D
	coords [][2]float64 // (y, x) per sub-slim index
}

// NewGrid2D builds a Grid2D from explicit (y,x) coordinates, deep-copying
// the input. Returns ErrShapeMismatch when len(coords) != mask.SubPixels().
func NewGrid2D(coords [][2]float64, mask *Mask2D) (*Grid2D, error) {
	if len(coords) != mask.SubPixels() {
		return nil, ErrShapeMismatch
	}
	cs := make([][2]float64, len(coords))
	copy(cs, coords)
	return &Grid2D{mask: mask, coords: cs}, nil
}

// GridFromMask builds the data-frame Grid2D of a mask: the (y,x) coordinate
// of the centre of every unmasked sub-pixel, with the grid centre at the
// origin, y decreasing downward and x increasing rightward.
// Complexity: O(pixels * subSize²).
func GridFromMask(mask *Mask2D) *Grid2D {
	rows, cols := mask.ShapeNative()
	psY, psX := mask.PixelScales()[0], mask.PixelScales()[1]
	sub := mask.SubSize()
	centreR := float64(rows-1) / 2.0
	centreC := float64(cols-1) / 2.0

	coords := make([][2]float64, 0, mask.SubPixels())
	for slim := 0; slim < mask.Pixels(); slim++ {
		r, c := mask.NativeIndexForSlimIndex(slim)
		yPix := (centreR - float64(r)) * psY
		xPix := (float64(c) - centreC) * psX
		for sr := 0; sr < sub; sr++ {
			for sc := 0; sc < sub; sc++ {
				y := yPix + psY/2.0 - (float64(sr)+0.5)*psY/float64(sub)
				x := xPix - psX/2.0 + (float64(sc)+0.5)*psX/float64(sub)
				coords = append(coords, [2]float64{y, x})
			}
		}
	}
	return &Grid2D{mask: mask, coords: coords}
}

// Mask returns the mask the grid is defined on.
func (g *Grid2D) Mask() *Mask2D { return g.mask }

// Coords returns the (y,x) coordinates in sub-slim order. The slice is
// owned by the grid and must not be mutated by callers.
func (g *Grid2D) Coords() [][2]float64 { return g.coords }

// Len returns the number of sub-pixel coordinates.
func (g *Grid2D) Len() int { return len(g.coords) }

// Extent returns the bounding box of the grid as (yMin, yMax, xMin, xMax).
func (g *Grid2D) Extent() (yMin, yMax, xMin, xMax float64) {
	yMin, xMin = g.coords[0][0], g.coords[0][1]
	yMax, xMax = yMin, xMin
	for _, yx := range g.coords[1:] {
		if yx[0] < yMin {
			yMin = yx[0]
		}
		if yx[0] > yMax {
			yMax = yx[0]
		}
		if yx[1] < xMin {
			xMin = yx[1]
		}
		if yx[1] > xMax {
			xMax = yx[1]
		}
	}
	return yMin, yMax, xMin, xMax
}
