package storage

import (
	"context"
	"sync"
	"time"
)

// MemoryGuard is the in-process SubmitGuard used when Redis is not configured.
type MemoryGuard struct {
	mu     sync.Mutex
	window time.Duration
	until  map[string]time.Time
	now    func() time.Time
}

func NewMemoryGuard(window time.Duration) *MemoryGuard {
	return &MemoryGuard{window: window, until: make(map[string]time.Time), now: time.Now}
}

// Acquire holds key for the guard window and reports whether it was free.
func (g *MemoryGuard) Acquire(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if exp, held := g.until[key]; held && now.Before(exp) {
		return false, nil
	}
	g.until[key] = now.Add(g.window)

	// Sweep expired keys so the map does not grow with every product ever clicked.
	for k, exp := range g.until {
		if !now.Before(exp) {
			delete(g.until, k)
		}
	}
	return true, nil
}
