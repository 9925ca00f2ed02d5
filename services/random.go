package services

import (
	"math/rand"
	"sync"
	"time"
)

// lockedSource serialises access to a rand.Source64 so one *rand.Rand can be
// shared between request goroutines. Rand.Read is still not safe; nothing here
// calls it.
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source64
}

func (s *lockedSource) Int63() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Int63()
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

func (s *lockedSource) Seed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src.Seed(seed)
}

// NewRand returns a seeded generator that is safe for concurrent use.
func NewRand(seed int64) *rand.Rand {
	return rand.New(&lockedSource{src: rand.NewSource(seed).(rand.Source64)})
}

func newTimeSeededRand() *rand.Rand {
	return NewRand(time.Now().UnixNano())
}
