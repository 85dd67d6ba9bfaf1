package main

import (
	"math/rand"
	"sync"
	"time"
)

// RNG is the randomness source injected into engine actions so tests can
// supply fixed draws.
type RNG interface {
	// Intn returns a uniform value in [0, n). Panics if n <= 0.
	Intn(n int) int
}

type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewGameRNG() RNG {
	return &lockedRand{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.Intn(n)
}
