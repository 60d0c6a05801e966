package llm

import "math/rand/v2"

// RandSource yields a random index in [0, n). It exists so key selection
// can be tested with a deterministic source.
type RandSource interface {
	IntN(n int) int
}

// PickKey selects one API key from a fixed read-only pool by uniform
// random index. The pool carries no per-credential state, so no
// coordination is needed between concurrent runs. An empty pool or an
// empty selected slot yields a CredentialMissingError.
func PickKey(pool []string, rng RandSource) (string, error) {
	if len(pool) == 0 {
		return "", &CredentialMissingError{}
	}
	idx := rng.IntN(len(pool))
	key := pool[idx]
	if key == "" {
		return "", &CredentialMissingError{Slot: idx}
	}
	return key, nil
}

// DefaultRand returns the process-wide random source used outside tests.
func DefaultRand() RandSource {
	return defaultRand{}
}

type defaultRand struct{}

func (defaultRand) IntN(n int) int { return rand.IntN(n) }
