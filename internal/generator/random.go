package generator

import "math/rand"

// Rand is the random stream a run draws from. *rand.Rand satisfies it.
// Every draw happens through one Rand in a fixed order, which is what makes
// a run reproducible from its seed.
type Rand interface {
	Float64() float64
	Intn(n int) int
	NormFloat64() float64
}

// NewRand returns a seeded stream.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// uniform draws from [lo, hi).
func uniform(rng Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

// chance reports whether a draw falls under p.
func chance(rng Rand, p float64) bool {
	return rng.Float64() < p
}

// weightedIndex picks an index with probability weights[i]/total using a
// single draw. total must be the positive sum of weights.
func weightedIndex(rng Rand, weights []float64, total float64) int {
	u := rng.Float64() * total
	last := 0
	acc := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		last = i
		if u < acc {
			return i
		}
	}
	// float accumulation may leave u == total
	return last
}
