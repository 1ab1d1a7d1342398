package mesh

import (
	"fmt"
	"math/rand"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/avekens/lensinv/grids"
)

// Clusterer partitions a set of 2D observations into k clusters. It is the
// seam through which the clustering algorithm stays a swappable external
// collaborator: production code uses a kmeans.Kmeans, tests may inject a
// deterministic fake.
type Clusterer interface {
	Partition(observations clusters.Observations, k int) (clusters.Clusters, error)
}

// KMeansOptions tunes brightness-weighted centre placement.
type KMeansOptions struct {
	// Clusters is the number of mesh centres to place.
	Clusters int
	// Seed pins the weighted resampling of grid coordinates, making centre
	// placement reproducible for a fixed Clusterer.
	Seed int64
	// SamplesPerCluster controls how many weighted draws feed the
	// clusterer, as a multiple of Clusters.
	SamplesPerCluster int
	// Clusterer overrides the clustering algorithm; nil means kmeans.New().
	Clusterer Clusterer
}

// DefaultKMeansOptions returns KMeansOptions with 10 clusters, seed 1 and
// 20 weighted samples per cluster.
func DefaultKMeansOptions() KMeansOptions {
	return KMeansOptions{Clusters: 10, Seed: 1, SamplesPerCluster: 20}
}

// WeightedKMeansCentres places mesh centres by clustering source-frame grid
// coordinates drawn in proportion to a brightness image, so regions of high
// signal receive more, smaller mesh pixels. The brightness array is defined
// per unmasked image pixel; each sub-pixel inherits its parent's weight.
//
// Returns ErrClustering when the clusterer cannot produce the requested
// number of clusters (e.g. fewer distinct coordinates than clusters).
func WeightedKMeansCentres(brightness *grids.Array2D, grid *grids.Grid2D, opts KMeansOptions) ([][2]float64, error) {
	if opts.Clusters < 1 || opts.Clusters > grid.Len() {
		return nil, fmt.Errorf("%w: %d clusters for %d coordinates", ErrClustering, opts.Clusters, grid.Len())
	}
	if opts.SamplesPerCluster < 1 {
		opts.SamplesPerCluster = 1
	}

	slimFor := grid.Mask().SlimIndexForSubSlimIndex()
	coords := grid.Coords()

	weights := make([]float64, grid.Len())
	total := 0.0
	for i := range weights {
		w := brightness.At(slimFor[i])
		if w < 0 {
			w = 0
		}
		weights[i] = w
		total += w
	}
	if total == 0 {
		// Flat brightness: fall back to uniform sampling.
		for i := range weights {
			weights[i] = 1
		}
		total = float64(len(weights))
	}

	// Cumulative table for weight-proportional draws.
	cum := make([]float64, len(weights))
	running := 0.0
	for i, w := range weights {
		running += w
		cum[i] = running
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	samples := opts.Clusters * opts.SamplesPerCluster
	obs := make(clusters.Observations, 0, samples)
	for s := 0; s < samples; s++ {
		target := rng.Float64() * total
		lo, hi := 0, len(cum)-1
		for lo < hi {
			mid := (lo + hi) / 2
			if cum[mid] < target {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		obs = append(obs, clusters.Coordinates{coords[lo][0], coords[lo][1]})
	}

	clusterer := opts.Clusterer
	if clusterer == nil {
		clusterer = kmeans.New()
	}
	partition, err := clusterer.Partition(obs, opts.Clusters)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClustering, err)
	}

	centres := make([][2]float64, 0, len(partition))
	for _, cl := range partition {
		centres = append(centres, [2]float64{cl.Center[0], cl.Center[1]})
	}
	return centres, nil
}
