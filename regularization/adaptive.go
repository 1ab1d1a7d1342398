package regularization

import (
	"gonum.org/v1/gonum/mat"

	"github.com/avekens/lensinv/mapper"
)

// AdaptiveWeightsFrom interpolates a per-pixel regularization coefficient
// between inner (high signal) and outer (low signal) and squares it. The
// matrix builders square these weights once more before accumulation, so
// the effective per-pixel coefficient is the interpolation raised to the
// fourth power.
func AdaptiveWeightsFrom(inner, outer float64, pixelSignals []float64) []float64 {
	weights := make([]float64, len(pixelSignals))
	for i, s := range pixelSignals {
		w := inner*s + outer*(1.0-s)
		weights[i] = w * w
	}
	return weights
}

// AdaptiveBrightness regularizes each neighboring pixel pair by the
// square of the neighbor's adaptive weight. For every directed neighbor
// pair (i, j) the neighbor's squared weight is added to both diagonal
// entries and subtracted from both off-diagonal entries.
//
// Using the neighbor's weight rather than a symmetric combination of both
// pixels' weights is deliberate and load bearing: reconstructions are
// matched against this exact accumulation rule.
type AdaptiveBrightness struct {
	InnerCoefficient float64
	OuterCoefficient float64
	SignalScale      float64
}

func (r AdaptiveBrightness) MatrixFrom(m mapper.Mapper) (*mat.Dense, error) {
	weights := AdaptiveWeightsFrom(
		r.InnerCoefficient, r.OuterCoefficient, m.PixelSignals(r.SignalScale))
	return weightedMatrixFrom(weights, m), nil
}

func weightedMatrixFrom(weights []float64, m mapper.Mapper) *mat.Dense {
	neigh := m.Neighbors()
	pixels := len(weights)
	h := mat.NewDense(pixels, pixels, nil)

	// The incoming weights are squared again before accumulation.
	squared := make([]float64, pixels)
	for i, w := range weights {
		squared[i] = w * w
	}

	for i := 0; i < pixels; i++ {
		h.Set(i, i, h.At(i, i)+1e-8)
		for j := 0; j < neigh.Sizes[i]; j++ {
			k := neigh.Indexes[i][j]
			w := squared[k]
			h.Set(i, i, h.At(i, i)+w)
			h.Set(k, k, h.At(k, k)+w)
			h.Set(i, k, h.At(i, k)-w)
			h.Set(k, i, h.At(k, i)-w)
		}
	}
	return h
}

// AdaptiveBrightnessSplit applies the adaptive scheme to the split cross
// points. Each pixel's four cross rows are weighted by the square of that
// pixel's own adaptive weight before the pairwise accumulation.
type AdaptiveBrightnessSplit struct {
	InnerCoefficient float64
	OuterCoefficient float64
	SignalScale      float64
}

func (r AdaptiveBrightnessSplit) MatrixFrom(m mapper.Mapper) (*mat.Dense, error) {
	sm, ok := m.(SplitMapper)
	if !ok {
		return nil, ErrNotSplitMapper
	}
	raw, err := sm.SplitCrossWeights()
	if err != nil {
		return nil, err
	}
	split, err := AdjustedSplitWeights(raw)
	if err != nil {
		return nil, err
	}

	weights := AdaptiveWeightsFrom(
		r.InnerCoefficient, r.OuterCoefficient, m.PixelSignals(r.SignalScale))

	pixels := m.Pixels()
	h := mat.NewDense(pixels, pixels, nil)

	for i := 0; i < pixels; i++ {
		h.Set(i, i, h.At(i, i)+2e-8)
		w := weights[i] * weights[i]
		for j := 0; j < 4; j++ {
			k := i*4 + j
			applySplitPair(h, split.Mappings[k], split.Weights[k], split.Sizes[k], w)
		}
	}
	for i := 0; i < pixels; i++ {
		h.Set(i, i, h.At(i, i)/2.0)
	}
	return h, nil
}
