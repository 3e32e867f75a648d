package game

import (
	"math/rand/v2"
	"slices"
)

// NewRand returns a randomly seeded generator. Rooms own one each and only
// use it under the room lock
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Shuffle returns a Fisher-Yates shuffled copy of in. The input is not modified
func Shuffle[T any](rng *rand.Rand, in []T) []T {
	out := slices.Clone(in)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
