package core

import "math/rand/v2"

// BoolSource produces uniformly distributed booleans on demand.
type BoolSource interface {
	Bool() bool
}

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// NewRandomRNG returns an RNG seeded from the runtime's random source. Runs
// are not reproducible.
func NewRandomRNG() *RNG {
	return &RNG{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// Bool returns a random boolean value.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}

// FillBinary fills the buffer with 0/1 values drawn from src.
func FillBinary(src BoolSource, buf []uint8) {
	for i := range buf {
		if src.Bool() {
			buf[i] = 1
			continue
		}
		buf[i] = 0
	}
}
