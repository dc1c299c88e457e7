package optimize

import "math/rand"

// Source is the random draw behind trial generation. *rand.Rand satisfies it.
type Source interface {
	// Intn returns a number in [0, n)
	Intn(n int) int
}

// Seeded returns a factory of Sources that all start from seed, so every
// design run draws the same sequence of codons.
func Seeded(seed int64) func() Source {
	return func() Source {
		return rand.New(rand.NewSource(seed))
	}
}
