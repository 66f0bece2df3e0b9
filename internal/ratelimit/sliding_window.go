// Package ratelimit implements a per-key sliding-window limiter held in
// process memory. State is lost on restart.
package ratelimit

import (
	"sync"
	"time"
)

// SlidingWindow admits at most Max events per key within the trailing Window.
type SlidingWindow struct {
	window time.Duration
	max    int
	keys   sync.Map // string -> *entry
}

type entry struct {
	mu   sync.Mutex
	hits []time.Time
	dead bool // removed from keys by Sweep; callers must reload
}

func New(window time.Duration, max int) *SlidingWindow {
	return &SlidingWindow{window: window, max: max}
}

func (l *SlidingWindow) Window() time.Duration { return l.window }
func (l *SlidingWindow) Max() int              { return l.max }

// CheckAndRecord prunes hits older than the window for key and, if fewer
// than Max remain, records now and returns true. The check and the append
// happen under the key's lock.
func (l *SlidingWindow) CheckAndRecord(key string, now time.Time) bool {
	for {
		v, _ := l.keys.LoadOrStore(key, &entry{})
		e := v.(*entry)

		e.mu.Lock()
		if e.dead {
			e.mu.Unlock()
			continue
		}
		e.hits = l.prune(e.hits, now)
		if len(e.hits) >= l.max {
			e.mu.Unlock()
			return false
		}
		e.hits = append(e.hits, now)
		e.mu.Unlock()
		return true
	}
}

// Sweep forgets keys with no hits inside the window and returns how many
// were removed.
func (l *SlidingWindow) Sweep(now time.Time) int {
	removed := 0
	l.keys.Range(func(k, v any) bool {
		if l.sweepEntry(k, v, now) {
			removed++
		}
		return true
	})
	return removed
}

// sweepEntry removes k only while it still maps to v, so a sweep holding a
// stale entry never drops a fresh one stored by CheckAndRecord.
func (l *SlidingWindow) sweepEntry(k, v any, now time.Time) bool {
	e := v.(*entry)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dead {
		return false
	}
	e.hits = l.prune(e.hits, now)
	if len(e.hits) > 0 {
		return false
	}
	e.dead = true
	return l.keys.CompareAndDelete(k, v)
}

// Len reports the number of tracked keys.
func (l *SlidingWindow) Len() int {
	n := 0
	l.keys.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// prune keeps hits with now-hit <= window. hits are appended in call order,
// which is not guaranteed to be time order, so every element is checked.
func (l *SlidingWindow) prune(hits []time.Time, now time.Time) []time.Time {
	kept := hits[:0]
	for _, h := range hits {
		if now.Sub(h) <= l.window {
			kept = append(kept, h)
		}
	}
	return kept
}
