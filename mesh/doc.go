// Package mesh provides the source-plane pixelization geometries consumed
// by the mapper and regularization packages, together with their neighbor
// topology.
//
// What:
//
//   - Neighbors holds the padded adjacency table of a pixelization: for
//     every pixel, the indexes of its neighbors (-1 sentinel in unused
//     slots) and the neighbor count.
//   - RectangularNeighbors derives adjacency of a uniform rectangular mesh
//     by closed-form index arithmetic (corners 2, edges 3, interior 4).
//   - RidgeNeighbors derives adjacency of an irregular tessellation from its
//     ridge (shared edge) list; the relation is symmetric by construction.
//   - Rectangular, Voronoi and Delaunay are the mesh variants. Tessellation
//     generation itself is out of scope: Voronoi consumes an externally
//     computed ridge list and Delaunay an externally computed simplex list.
//   - WeightedKMeansCentres places mesh centres by clustering grid
//     coordinates sampled in proportion to a brightness image, so the mesh
//     resolution adapts to where the source signal lives.
//
// Indexing:
//
//   - Rectangular pixels are row-major from the top-left: index = row*cols + col.
//   - Irregular pixel indexing follows the order of the supplied centres.
//
// Errors:
//
//   - ErrMeshShape: rectangular mesh dimensions below 2x2.
//   - ErrSelfRidge: a ridge connecting a pixel to itself.
//   - ErrRidgeIndex: a ridge referencing a pixel out of range.
//   - ErrClustering: centre placement could not produce the requested clusters.
package mesh
