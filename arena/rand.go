package arena

import "math/rand/v2"

// Rand is the World's random number generator. It is a value type so that
// copying a World (or a Rand) copies the exact position in the random
// sequence.
type Rand struct {
	pcg rand.PCG
}

func NewRand(seed int64) (r Rand) {
	r.pcg.Seed(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)
	return
}

// RInt returns a random number in the inclusive range [min, max].
func (r *Rand) RInt(min, max int) int {
	return min + int(r.pcg.Uint64()%uint64(max-min+1))
}
