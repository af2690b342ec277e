package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

// Source yields uniformly distributed integers in [0, n). Implementations
// returned by this package are safe for concurrent use.
type Source interface {
	IntN(n int) int
}

// NewCryptoSource returns a Source backed by crypto/rand.
func NewCryptoSource() Source {
	return rand.New(cryptoSource{})
}

// NewSeededSource returns a deterministic Source for tests and replays.
func NewSeededSource(seed uint64) Source {
	return &lockedSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

type cryptoSource struct{}

func (cryptoSource) Uint64() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		panic("random: crypto/rand unavailable: " + err.Error())
	}
	return binary.LittleEndian.Uint64(b[:])
}

// Shuffle performs an in-place Fisher–Yates shuffle of slice using src.
func Shuffle[T any](src Source, slice []T) {
	for i := len(slice) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		slice[i], slice[j] = slice[j], slice[i]
	}
}
