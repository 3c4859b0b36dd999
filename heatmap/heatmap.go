// Package heatmap scores host positions by how well they tolerate
// embedding noise. The scores feed a stegano.HeatmapTraversal, which keeps
// the embedding out of flat regions where substitution is easy to spot.
package heatmap

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Scores returns one score per host position: the variance of the values
// in a window centered on it. Busy regions score high, flat regions near
// zero. window is the number of neighbors considered; values below 2 are
// raised to 2 since a single sample has no variance.
func Scores(host []byte, window int) []float64 {
	if window < 2 {
		window = 2
	}
	half := window / 2
	scores := make([]float64, len(host))
	vals := make([]float64, 0, window+1)
	for i := range host {
		lo := max(i-half, 0)
		hi := min(i+half, len(host)-1)
		vals = vals[:0]
		for j := lo; j <= hi; j++ {
			vals = append(vals, float64(host[j]))
		}
		if len(vals) < 2 {
			continue
		}
		scores[i] = stat.Variance(vals, nil)
	}
	return scores
}

// SplitThreshold separates scores into a high and a low cluster with
// one-dimensional k-means (k=2) and returns the boundary between the two
// cluster centers. Positions scoring at or above the boundary belong to
// the high cluster.
func SplitThreshold(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	lo, hi := scores[0], scores[0]
	for _, v := range scores {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	center := [2]float64{lo, hi}
	etol := math.Pow10(-6)
	lows := make([]float64, 0, len(scores))
	highs := make([]float64, 0, len(scores))
	for range 300 {
		threshold := (center[0] + center[1]) / 2
		lows, highs = lows[:0], highs[:0]
		for _, v := range scores {
			if threshold <= v {
				highs = append(highs, v)
			} else {
				lows = append(lows, v)
			}
		}
		if len(lows) == 0 || len(highs) == 0 {
			break
		}
		center = [2]float64{stat.Mean(lows, nil), stat.Mean(highs, nil)}
		if diff := math.Abs((center[0]+center[1])/2 - threshold); diff < etol {
			break
		}
	}
	return (center[0] + center[1]) / 2
}
