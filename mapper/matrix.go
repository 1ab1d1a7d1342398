package mapper

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// MappingMatrixFrom scatter-accumulates the sparse mapping table into the
// dense matrix f of shape [imagePixels, pixels]. Every sub-pixel deposits
// weight*subFraction into its parent image pixel's row, so the sub-grid is
// averaged out of the matrix: a source pixel covering all sub-pixels of an
// image pixel contributes exactly one.
// Complexity: O(subPixels * maxMappings).
func MappingMatrixFrom(psw PixSubWeights, pixels, imagePixels int, slimForSub []int, subFraction float64) *mat.Dense {
	f := mat.NewDense(imagePixels, pixels, nil)
	for sub := range psw.Mappings {
		slim := slimForSub[sub]
		for k := 0; k < psw.Sizes[sub]; k++ {
			pix := psw.Mappings[sub][k]
			f.Set(slim, pix, f.At(slim, pix)+psw.Weights[sub][k]*subFraction)
		}
	}
	return f
}

// UniqueMappingsFrom deduplicates the mapping table per image pixel. The
// aggregate weight of a (image pixel, source pixel) pair is the sum of
// weight*subFraction over the pixel's sub-pixels, i.e. the nonzero entries
// of the mapping-matrix row. Zero-weight mappings are dropped and entries
// are ordered by source pixel index for determinism.
func UniqueMappingsFrom(psw PixSubWeights, imagePixels int, slimForSub []int, subFraction float64) UniqueMappings {
	acc := make([]map[int]float64, imagePixels)
	for i := range acc {
		acc[i] = map[int]float64{}
	}
	for sub := range psw.Mappings {
		slim := slimForSub[sub]
		for k := 0; k < psw.Sizes[sub]; k++ {
			w := psw.Weights[sub][k] * subFraction
			if w == 0 {
				continue
			}
			acc[slim][psw.Mappings[sub][k]] += w
		}
	}

	out := UniqueMappings{
		PixIndexes: make([][]int, imagePixels),
		Weights:    make([][]float64, imagePixels),
	}
	for i, m := range acc {
		pixes := make([]int, 0, len(m))
		for pix, w := range m {
			if w == 0 {
				continue
			}
			pixes = append(pixes, pix)
		}
		sort.Ints(pixes)
		weights := make([]float64, len(pixes))
		for k, pix := range pixes {
			weights[k] = m[pix]
		}
		out.PixIndexes[i] = pixes
		out.Weights[i] = weights
	}
	return out
}

// AdaptivePixelSignals estimates the signal in every source pixel as the
// weighted mean of the adapt image over the sub-pixels mapping to it,
// normalized by the brightest pixel and raised to signalScale. Source
// pixels that receive no mappings keep a signal of zero. A nil adapt image
// yields a flat unit signal.
func AdaptivePixelSignals(pixels int, signalScale float64, psw PixSubWeights, slimForSub []int, adapt []float64) []float64 {
	signals := make([]float64, pixels)
	if adapt == nil {
		for i := range signals {
			signals[i] = 1
		}
		return signals
	}

	totals := make([]float64, pixels)
	for sub := range psw.Mappings {
		slim := slimForSub[sub]
		for k := 0; k < psw.Sizes[sub]; k++ {
			pix := psw.Mappings[sub][k]
			w := psw.Weights[sub][k]
			signals[pix] += adapt[slim] * w
			totals[pix] += w
		}
	}
	maxSignal := 0.0
	for i := range signals {
		if totals[i] > 0 {
			signals[i] /= totals[i]
		}
		if signals[i] > maxSignal {
			maxSignal = signals[i]
		}
	}
	if maxSignal > 0 {
		for i := range signals {
			signals[i] /= maxSignal
		}
	}
	for i := range signals {
		if signals[i] > 0 {
			signals[i] = math.Pow(signals[i], signalScale)
		}
	}
	return signals
}
