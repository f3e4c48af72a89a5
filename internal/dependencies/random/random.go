package random

import (
	"crypto/rand"
	"math/big"
)

// Random is the source of randomness for seeded player data.
// Tests substitute mocks.MockRandom to make generated players deterministic.
type Random interface {
	// Intn returns a value in [0, n)
	Intn(n int) int

	// Int63n returns a value in [0, n)
	Int63n(n int64) int64

	// Bool returns true or false with equal probability
	Bool() bool
}

// CryptoRandom draws from crypto/rand
type CryptoRandom struct{}

// New creates a CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

func (r *CryptoRandom) Intn(n int) int {
	return int(r.Int63n(int64(n)))
}

func (r *CryptoRandom) Int63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		return 0
	}
	return v.Int64()
}

func (r *CryptoRandom) Bool() bool {
	return r.Int63n(2) == 1
}
