// Package grids provides the masked 2D data structures consumed by the
// inversion pipeline: boolean validity masks, flat ("slim") data arrays,
// (y,x) coordinate grids at sub-pixel resolution, and PSF kernels.
//
// What:
//
//   - Mask2D wraps a rectangular boolean mask and precomputes the index
//     maps between the native 2D layout and the slim 1D layout of unmasked
//     pixels.
//   - Array2D stores one value per unmasked pixel in slim order and can
//     expand back to the native 2D layout.
//   - Grid2D stores the scaled (y,x) coordinate of every unmasked sub-pixel.
//   - Kernel2D is a small odd-shaped instrument response with same-size
//     zero-padded 2D convolution.
//
// Conventions:
//
//   - Native indexing is row-major from the top-left: index = row*cols + col.
//   - Slim indexing enumerates unmasked pixels in native order.
//   - Sub-pixels of a slim pixel are contiguous, so the parent slim index of
//     sub-slim index s is s / (subSize*subSize).
//   - Coordinates are in scaled units with the grid centre at the origin;
//     y decreases downward and x increases rightward.
//
// Errors:
//
//   - ErrEmptyGrid: mask has no rows or no columns.
//   - ErrNonRectangular: mask rows have differing lengths.
//   - ErrInvalidSubSize: sub-grid size below one.
//   - ErrShapeMismatch: slim values do not match the mask's unmasked count.
//   - ErrKernelShape: kernel dimensions are not both odd.
package grids
