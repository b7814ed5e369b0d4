package service

import (
	"context"
	"time"
)

// Latency holds the artificial delays that make the demo feel like it talks
// to a remote backend. Zero disables a delay.
type Latency struct {
	List     time.Duration // list, search, by-category and admin mutations
	Get      time.Duration // single product lookup
	Auth     time.Duration // register and login
	Checkout time.Duration // order processing
}

// DefaultLatency mirrors a slow but responsive API.
func DefaultLatency() Latency {
	return Latency{
		List:     100 * time.Millisecond,
		Get:      50 * time.Millisecond,
		Auth:     300 * time.Millisecond,
		Checkout: 1500 * time.Millisecond,
	}
}

// sleep waits for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
