// Package lensinv reconstructs pixelized sources from gravitationally
// lensed imaging by regularized linear inversion.
//
// 🚀 What is lensinv?
//
//	A pure-Go engine for the linear half of lens modeling:
//		• Grids: masks, sub-gridded coordinate grids, PSF kernels
//		• Meshes: rectangular overlays, Voronoi & Delaunay pixelizations,
//		  brightness-weighted KMeans centre placement
//		• Mappers: sparse data-to-source mapping tables and matrices
//		• Regularization: constant, adaptive-brightness & split-cross schemes
//		• Inversion: curvature assembly (direct or w-tilde), Cholesky solve,
//		  Bayesian evidence terms, per-object result views
//
// ✨ Why choose lensinv?
//
//   - Deterministic – seeded clustering, memoized derived quantities
//   - Explicit errors – every failure mode is a named sentinel
//   - Pure Go numerics on gonum – no cgo, no Python runtime
//
// Everything is organized under five subpackages:
//
//	grids/          — masks, arrays, grids & convolution kernels
//	mesh/           — pixelization geometries & neighbor topologies
//	mapper/         — mapping tables between data and source pixels
//	regularization/ — smoothness priors over source pixel neighbors
//	inversion/      — linear system assembly, solve & evidence terms
//
// Quick sketch of a fit:
//
//	data ──PSF──▶ operated mapping matrix ──▶ F, D
//	                 regularizer ──▶ H
//	                 solve (F + H) S = D ──▶ source S
//
//	go get github.com/avekens/lensinv
package lensinv
