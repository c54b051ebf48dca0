// Package ratelimit bounds how often a single key (a company, a phone
// number) may perform an expensive operation. The limiter is injected where
// needed; there is no package-level shared state.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter allows at most limit attempts per key within a sliding window.
type Limiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu       sync.Mutex
	attempts map[string][]time.Time
}

func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:    limit,
		window:   window,
		now:      time.Now,
		attempts: make(map[string][]time.Time),
	}
}

// Allow records an attempt for key and reports whether it is within the
// limit. A denied attempt is not recorded, so a caller hammering the
// limiter does not extend its own lockout.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	live := prune(l.attempts[key], now.Add(-l.window))
	if len(live) >= l.limit {
		l.attempts[key] = live
		return false
	}
	l.attempts[key] = append(live, now)
	return true
}

// Sweep drops keys whose every attempt has aged out of the window and
// returns how many keys were removed.
func (l *Limiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	removed := 0
	for key, ts := range l.attempts {
		live := prune(ts, cutoff)
		if len(live) == 0 {
			delete(l.attempts, key)
			removed++
			continue
		}
		l.attempts[key] = live
	}
	return removed
}

// StartSweeper sweeps on the interval until ctx is done.
func (l *Limiter) StartSweeper(ctx context.Context, every time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.Sweep()
			}
		}
	}()
}

func prune(ts []time.Time, cutoff time.Time) []time.Time {
	live := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			live = append(live, t)
		}
	}
	return live
}
