// Package regularization builds the regularization matrix H that penalizes
// flux differences between neighboring source pixels during an inversion.
//
// What:
//   - Constant: one coefficient smooths every pixel pair equally.
//   - AdaptiveBrightness: per-pixel coefficients interpolated between an
//     inner and an outer coefficient by the adaptive pixel signal, so the
//     bright source region is regularized differently from its outskirts.
//   - ConstantSplit / AdaptiveBrightnessSplit: the same schemes applied to
//     the four cross points each source pixel is split into, giving a
//     gradient-like penalty on meshes with irregular geometry.
//
// Why: the curvature matrix F of a pixelized inversion is typically
// ill-conditioned or singular; adding H makes F + H positive definite and
// encodes the prior that the source is smooth.
//
// Complexity: O(pixels * neighbors) for the neighbor schemes and
// O(pixels * 16 * maxMappings²) for the split schemes.
//
// Errors: all schemes return ErrNeighborOverflow when a split cross point
// maps to more source pixels than its fixed slot count allows.
package regularization
