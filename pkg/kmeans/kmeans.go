// Package kmeans partitions fixed-dimension numeric vectors into k groups
// using Lloyd's iteration with Euclidean distance.
//
// An Engine holds only its random source. Runs share no state, so the same
// seed and input always yield the same partition. An Engine is not safe for
// concurrent use; create one per goroutine.
package kmeans

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// DefaultMaxIterations bounds the assign/update loop when the caller passes a non-positive limit.
const DefaultMaxIterations = 100

var (
	// ErrDimensionMismatch indicates the input points do not share one dimensionality.
	ErrDimensionMismatch = errors.New("points have mismatched dimensionality")
	// ErrInvalidK indicates a non-positive cluster count for a non-empty input.
	ErrInvalidK = errors.New("k must be at least 1")
)

// Result describes a completed clustering run.
type Result struct {
	// Assignments holds the cluster index for each input point, in input order.
	Assignments []int
	// Centroids holds the final centroid of each cluster. Nil for degenerate inputs.
	Centroids [][]float64
	// Iterations counts completed assignment passes.
	Iterations int
	// Converged is false when the loop stopped at the iteration limit.
	Converged bool
	// Reseeds counts empty clusters re-initialised to a random input point.
	Reseeds int
}

// Engine runs k-means over an injected random source.
type Engine struct {
	rng *rand.Rand
}

// New creates an Engine drawing initial centroids and reseeds from rng.
func New(rng *rand.Rand) *Engine {
	return &Engine{rng: rng}
}

// NewSeeded creates an Engine with a PCG source seeded from seed.
func NewSeeded(seed uint64) *Engine {
	return New(rand.New(rand.NewPCG(seed, seed)))
}

// Cluster assigns each point to one of k clusters and returns the assignments in input order.
func (e *Engine) Cluster(points [][]float64, k, maxIterations int) ([]int, error) {
	res, err := e.Run(points, k, maxIterations)
	if err != nil {
		return nil, err
	}
	return res.Assignments, nil
}

// Run performs the full clustering and reports centroids and convergence details.
//
// Degenerate inputs short-circuit: no points yields no assignments, and fewer
// points than k places every point in cluster 0.
func (e *Engine) Run(points [][]float64, k, maxIterations int) (*Result, error) {
	n := len(points)
	if n == 0 {
		return &Result{Assignments: []int{}, Converged: true}, nil
	}

	if err := validateDimensions(points); err != nil {
		return nil, err
	}

	if k < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}

	if n < k {
		return &Result{Assignments: make([]int, n), Converged: true}, nil
	}

	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	centroids := e.initialCentroids(points, k)
	assignments := make([]int, n)
	for i := range assignments {
		assignments[i] = -1
	}

	res := &Result{Assignments: assignments}

	for res.Iterations < maxIterations {
		res.Iterations++

		if !assign(points, centroids, assignments) {
			res.Converged = true
			break
		}

		res.Reseeds += e.update(points, centroids, assignments)
	}

	res.Centroids = centroids
	return res, nil
}

// initialCentroids picks the points themselves when n == k, otherwise a
// uniform sample of k distinct indices by partial Fisher-Yates.
func (e *Engine) initialCentroids(points [][]float64, k int) [][]float64 {
	n := len(points)
	centroids := make([][]float64, k)

	if n == k {
		for i := range k {
			centroids[i] = clone(points[i])
		}
		return centroids
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	for i := range k {
		j := i + e.rng.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
		centroids[i] = clone(points[idx[i]])
	}

	return centroids
}

// update recomputes each centroid as the mean of its members and returns
// the number of empty clusters reseeded.
func (e *Engine) update(points [][]float64, centroids [][]float64, assignments []int) int {
	dim := len(points[0])
	sums := make([][]float64, len(centroids))
	counts := make([]int, len(centroids))
	for c := range sums {
		sums[c] = make([]float64, dim)
	}

	for i, p := range points {
		c := assignments[i]
		counts[c]++
		for d, v := range p {
			sums[c][d] += v
		}
	}

	reseeds := 0
	for c := range centroids {
		if counts[c] == 0 {
			centroids[c] = clone(points[e.rng.IntN(len(points))])
			reseeds++
			continue
		}
		for d := range sums[c] {
			centroids[c][d] = sums[c][d] / float64(counts[c])
		}
	}

	return reseeds
}

// assign moves every point to its nearest centroid and reports whether any assignment changed.
// Ties resolve to the lowest centroid index.
func assign(points [][]float64, centroids [][]float64, assignments []int) bool {
	changed := false
	for i, p := range points {
		best := Nearest(p, centroids)
		if assignments[i] != best {
			assignments[i] = best
			changed = true
		}
	}
	return changed
}

// Nearest returns the index of the centroid closest to p.
// Ties resolve to the lowest index.
func Nearest(p []float64, centroids [][]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for c, centroid := range centroids {
		if d := Distance(p, centroid); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

// Distance returns the Euclidean distance between two equal-length vectors.
func Distance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

func validateDimensions(points [][]float64) error {
	dim := len(points[0])
	for i, p := range points {
		if len(p) != dim {
			return fmt.Errorf("%w: point %d has %d dimensions, want %d", ErrDimensionMismatch, i, len(p), dim)
		}
	}
	return nil
}

func clone(p []float64) []float64 {
	out := make([]float64, len(p))
	copy(out, p)
	return out
}
