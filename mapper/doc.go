// Package mapper builds the correspondence between the masked data grid's
// sub-pixels (in the transformed source frame) and the pixels of a
// source-plane pixelization.
//
// What:
//
//   - PixSubWeights is the sparse mapping table: for every data sub-pixel,
//     the source pixels it maps to and the fractional weights of each
//     mapping. Weights per sub-pixel always sum to one (nearest-neighbor
//     schemes carry a single weight of one).
//   - MappingMatrix scatter-accumulates the table into the dense matrix f
//     of shape [image pixels, source pixels], averaging over the sub-grid.
//   - UniqueMappings deduplicates each image pixel's mappings so curvature
//     computations can run without materializing dense rows.
//   - PixelSignals estimates the signal content of every source pixel from
//     an adapt image, driving adaptive regularization.
//
// Variants:
//
//   - RectangularMapper: geometric cell lookup on a uniform mesh, one
//     mapping of weight one per sub-pixel.
//   - VoronoiMapper: nearest-centre assignment, one mapping of weight one.
//   - DelaunayMapper: barycentric interpolation over the containing
//     simplex, up to three mappings summing to one; sub-pixels outside the
//     triangulation hull fall back to nearest-vertex assignment.
//
// Each variant implements the Mapper interface independently; they share
// only the table/matrix assembly helpers, not an inheritance chain.
//
// Errors:
//
//   - ErrTooManyMappings: a sub-pixel mapping to more source pixels than
//     the variant's fixed maximum (fatal construction error).
//   - ErrGridMismatch: mapping table dimensions inconsistent with the grid.
package mapper
