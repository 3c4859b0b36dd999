package stegano

import "iter"

// EmbeddingLocator produces the ordered host positions eligible for
// embedding and extraction. The sequence is lazy, finite, and restartable:
// ranging over it again replays the same indices for the same hostLen.
// Every yielded index i satisfies 0 <= i < hostLen.
//
// The traversal order is part of the encoding: an extract call must see
// the same sequence, element for element, as its matching embed call.
type EmbeddingLocator interface {
	IterIndices(hostLen int) iter.Seq[int]
}

var _ EmbeddingLocator = (*LinearTraversal)(nil)
var _ EmbeddingLocator = (*HeatmapTraversal)(nil)
var _ EmbeddingLocator = (*PositionListTraversal)(nil)

// LinearTraversal yields every host index in ascending order.
type LinearTraversal struct{}

func (LinearTraversal) IterIndices(hostLen int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range hostLen {
			if !yield(i) {
				return
			}
		}
	}
}

// HeatmapTraversal yields index i when i < hostLen and Scores[i] >=
// Threshold. It borrows the score slice without copying; the caller keeps
// it unchanged between construction and use.
type HeatmapTraversal struct {
	Scores    []float64
	Threshold float64
}

func (h HeatmapTraversal) IterIndices(hostLen int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, score := range h.Scores {
			if i >= hostLen {
				return
			}
			if score < h.Threshold {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}

// PositionListTraversal yields the borrowed positions in source order,
// dropping entries outside [0, hostLen).
type PositionListTraversal struct {
	Positions []int
}

func (p PositionListTraversal) IterIndices(hostLen int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, idx := range p.Positions {
			if idx < 0 || idx >= hostLen {
				continue
			}
			if !yield(idx) {
				return
			}
		}
	}
}
