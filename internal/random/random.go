// Package random provides the injected random source used by the battle engine.
// Every battle owns its own Source; nothing in the engine reads a global generator.
package random

import "math/rand/v2"

// Source is the subset of *rand.Rand the engine draws from.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntN returns a uniform value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// New returns a deterministic PCG-backed source. Identical seeds produce
// identical sequences.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Chance reports whether a draw falls strictly below p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// OneIn reports true with probability 1/n.
func OneIn(src Source, n int) bool {
	if n <= 1 {
		return true
	}
	return src.IntN(n) == 0
}

// Between returns a uniform integer in [lo, hi].
func Between(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.IntN(hi-lo+1)
}
