package clustering

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

// KMeans is a seeded k-means with k-means++ initialization and restarts.
// The same seed and input always yield the same partition.
type KMeans struct {
	K             int
	Restarts      int
	MaxIterations int
	Tolerance     float64
	Seed          uint64
}

// Result is the outcome of a k-means run. Labels are canonical: cluster ids
// are numbered by first appearance in point order.
type Result struct {
	Labels    []int
	Centroids [][]float64
	Inertia   float64
}

// Fit partitions points into at most km.K clusters. It keeps the restart
// with the lowest inertia, the earliest one on ties.
func (km KMeans) Fit(points [][]float64) Result {
	n := len(points)
	if n == 0 {
		return Result{}
	}
	k := min(max(km.K, 1), n)
	restarts := max(km.Restarts, 1)
	iterations := max(km.MaxIterations, 1)

	rng := rand.New(rand.NewPCG(km.Seed, km.Seed))

	var best Result
	for r := 0; r < restarts; r++ {
		centroids := seedPlusPlus(points, k, rng)
		labels, inertia := lloyd(points, centroids, iterations, km.Tolerance)
		if r == 0 || inertia < best.Inertia {
			best = Result{Labels: labels, Centroids: centroids, Inertia: inertia}
		}
	}
	return canonicalize(best)
}

// seedPlusPlus picks k initial centroids, each new one drawn with
// probability proportional to its squared distance from the nearest
// centroid already chosen
func seedPlusPlus(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(points)
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, clone(points[rng.IntN(n)]))

	dist := make([]float64, n)
	for len(centroids) < k {
		total := 0.0
		for i, p := range points {
			d := nearest2(p, centroids)
			dist[i] = d
			total += d
		}

		next := rng.IntN(n)
		if total > 0 {
			target := rng.Float64() * total
			acc := 0.0
			for i, d := range dist {
				acc += d
				if acc >= target && d > 0 {
					next = i
					break
				}
			}
		}
		centroids = append(centroids, clone(points[next]))
	}
	return centroids
}

// lloyd refines centroids in place until the total squared centroid shift
// drops to tolerance or the iteration budget is spent. A cluster left empty
// takes over the point farthest from its centroid.
func lloyd(points, centroids [][]float64, maxIter int, tol float64) ([]int, float64) {
	k := len(centroids)
	dims := len(points[0])
	labels := make([]int, len(points))

	for iter := 0; iter < maxIter; iter++ {
		assign(points, centroids, labels)

		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dims)
		}
		for i, p := range points {
			floats.Add(sums[labels[i]], p)
			counts[labels[i]]++
		}

		for c := 0; c < k; c++ {
			if counts[c] > 0 {
				continue
			}
			i := farthest(points, centroids, labels, counts)
			old := labels[i]
			floats.Sub(sums[old], points[i])
			counts[old]--
			labels[i] = c
			copy(sums[c], points[i])
			counts[c] = 1
		}

		shift := 0.0
		for c := 0; c < k; c++ {
			floats.Scale(1/float64(counts[c]), sums[c])
			shift += dist2(centroids[c], sums[c])
			centroids[c] = sums[c]
		}
		if shift <= tol {
			break
		}
	}

	inertia := assign(points, centroids, labels)
	return labels, inertia
}

// assign labels every point with its nearest centroid, the lowest index on
// ties, and returns the inertia
func assign(points, centroids [][]float64, labels []int) float64 {
	inertia := 0.0
	for i, p := range points {
		bestC, bestD := 0, math.Inf(1)
		for c, centroid := range centroids {
			if d := dist2(p, centroid); d < bestD {
				bestC, bestD = c, d
			}
		}
		labels[i] = bestC
		inertia += bestD
	}
	return inertia
}

// farthest returns the point lying farthest from its centroid among
// clusters that can spare a member
func farthest(points, centroids [][]float64, labels, counts []int) int {
	idx, far := 0, -1.0
	for i, p := range points {
		if counts[labels[i]] < 2 {
			continue
		}
		if d := dist2(p, centroids[labels[i]]); d > far {
			idx, far = i, d
		}
	}
	return idx
}

// canonicalize renumbers clusters by first appearance and drops centroids
// no point is assigned to
func canonicalize(f Result) Result {
	mapping := make(map[int]int)
	labels := make([]int, len(f.Labels))
	var centroids [][]float64
	for i, l := range f.Labels {
		id, ok := mapping[l]
		if !ok {
			id = len(mapping)
			mapping[l] = id
			centroids = append(centroids, f.Centroids[l])
		}
		labels[i] = id
	}
	return Result{Labels: labels, Centroids: centroids, Inertia: f.Inertia}
}

func nearest2(p []float64, centroids [][]float64) float64 {
	best := math.Inf(1)
	for _, c := range centroids {
		best = math.Min(best, dist2(p, c))
	}
	return best
}

func dist2(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

func clone(p []float64) []float64 {
	return append([]float64(nil), p...)
}
