package ratelimit

import (
	"sync"
	"time"
)

// Limiter enforces a fixed-window quota per client key. State lives for the
// process lifetime only; a restart resets every window, which is acceptable
// for the abuse guard it backs. Construct once and inject by reference.
type Limiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	entries map[string]*entry

	now func() time.Time // overridable in tests
}

type entry struct {
	windowStart time.Time
	count       int
}

// New creates a limiter allowing max events per key per window.
func New(window time.Duration, max int) *Limiter {
	return &Limiter{
		window:  window,
		max:     max,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Allow records an event for key and reports whether it fits the quota.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	e, ok := l.entries[key]
	if !ok || now.Sub(e.windowStart) >= l.window {
		l.entries[key] = &entry{windowStart: now, count: 1}
		l.pruneLocked(now)
		return true
	}

	if e.count >= l.max {
		return false
	}
	e.count++
	return true
}

// pruneLocked drops expired windows so the map does not grow unbounded.
func (l *Limiter) pruneLocked(now time.Time) {
	if len(l.entries) < 1024 {
		return
	}
	for key, e := range l.entries {
		if now.Sub(e.windowStart) >= l.window {
			delete(l.entries, key)
		}
	}
}
