package random

import (
	"encoding/binary"
	"sync"

	"lukechampine.com/frand"
)

// Random provides random number generation that can be mocked for testing
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// String generates a random string of the given length from the given alphabet
	String(length int, alphabet string) string
}

// FastRandom implements Random on a ChaCha8 stream from frand
type FastRandom struct {
	mu  sync.Mutex
	rng *frand.RNG
}

// New creates a FastRandom seeded from system entropy
func New() *FastRandom {
	return &FastRandom{rng: frand.New()}
}

// NewSeeded creates a FastRandom whose output is fixed by seed
func NewSeeded(seed uint64) *FastRandom {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	return &FastRandom{rng: frand.NewCustom(key[:], 0, 0)}
}

// Intn returns a random int in [0, n), or 0 when n <= 0
func (r *FastRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// String generates a random string of the given length from the given alphabet
func (r *FastRandom) String(length int, alphabet string) string {
	if length <= 0 || len(alphabet) == 0 {
		return ""
	}
	result := make([]byte, length)
	for i := 0; i < length; i++ {
		result[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(result)
}
