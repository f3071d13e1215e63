package util

import "math/rand"

func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}

// WeightedIndex draws an index with probability proportional to its weight.
// Non-positive weights are never chosen while any positive weight exists.
// Floating-point drift past the final weight returns the last positive index.
func WeightedIndex(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if len(weights) == 0 {
		return -1
	}
	if total <= 0 {
		return len(weights) - 1
	}
	r := rng.Float64() * total
	lastPositive := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		lastPositive = i
		r -= w
		if r <= 0 {
			return i
		}
	}
	return lastPositive
}

// SeedFor derives the seed of run i of a batch. It does not depend on which
// worker picks the run up.
func SeedFor(base int64, run int) int64 {
	return base + int64(run)*7919
}
