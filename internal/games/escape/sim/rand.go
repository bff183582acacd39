package sim

import "math/rand"

// Source is the random source a Session draws every choice from: pursuer lane
// hops, obstacle gaps, lanes and kinds. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// NewSource returns a seeded Source.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
