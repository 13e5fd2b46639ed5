// Package random provides the explicit randomness source threaded through
// dungeon generation. Replaying the same seed against the same inputs
// replays every decision.
package random

import (
	"math/rand"
)

// Source is the randomness provider consumed by generation code
type Source interface {
	// Intn returns a value in [0, n). n must be positive.
	Intn(n int) int
	// Bool returns a fair coin flip
	Bool() bool
	// Chance returns true with probability p (p<=0 never, p>=1 always)
	Chance(p float64) bool
	// Shuffle permutes n elements using swap
	Shuffle(n int, swap func(i, j int))
}

// Rand is a seeded Source backed by math/rand
type Rand struct {
	r    *rand.Rand
	seed int64
}

// New creates a new seeded source
func New(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed)), seed: seed}
}

// Seed returns the seed the source was created with
func (r *Rand) Seed() int64 {
	return r.seed
}

// Intn returns a value in [0, n)
func (r *Rand) Intn(n int) int {
	return r.r.Intn(n)
}

// Bool returns a fair coin flip
func (r *Rand) Bool() bool {
	return r.r.Intn(2) == 0
}

// Chance returns true with probability p
func (r *Rand) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.r.Float64() < p
}

// Shuffle permutes n elements using swap
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	r.r.Shuffle(n, swap)
}

// Pick returns a uniformly chosen element of items. items must not be empty.
func Pick[T any](src Source, items []T) T {
	return items[src.Intn(len(items))]
}

// ShuffleSlice shuffles items in place
func ShuffleSlice[T any](src Source, items []T) {
	src.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
