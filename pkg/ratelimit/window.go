// Package ratelimit provides the request-policy primitives the engine
// simulates: a fixed-window request limiter, a lifetime quota counter,
// and a token bucket for pacing stream delivery.
package ratelimit

import (
	"sync"
	"time"
)

// Window is a fixed-window request counter. The count resets once the
// interval has elapsed since the window opened; requests beyond the
// limit within one window are rejected. Safe for concurrent use.
type Window struct {
	limit    int
	interval time.Duration
	count    int
	openedAt time.Time
	mu       sync.Mutex
}

// WindowStats is a point-in-time snapshot of a Window.
type WindowStats struct {
	Used     int           `json:"used"`
	Limit    int           `json:"limit"`
	Interval time.Duration `json:"interval"`
	ResetsIn time.Duration `json:"resetsIn"`
}

// NewWindow creates a limiter allowing limit requests per interval. A
// non-positive limit disables limiting; a non-positive interval defaults
// to one minute.
func NewWindow(limit int, interval time.Duration) *Window {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Window{limit: limit, interval: interval, openedAt: time.Now()}
}

// Allow records one request and reports whether it fits in the current
// window.
func (w *Window) Allow() bool {
	if w.limit <= 0 {
		return true
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	if now.Sub(w.openedAt) >= w.interval {
		w.openedAt = now
		w.count = 0
	}
	if w.count >= w.limit {
		return false
	}
	w.count++
	return true
}

// Reset opens a fresh window immediately.
func (w *Window) Reset() {
	w.mu.Lock()
	w.count = 0
	w.openedAt = time.Now()
	w.mu.Unlock()
}

// Stats returns the current window snapshot.
func (w *Window) Stats() WindowStats {
	w.mu.Lock()
	defer w.mu.Unlock()

	resetsIn := w.interval - time.Since(w.openedAt)
	if resetsIn < 0 || w.limit <= 0 {
		resetsIn = 0
	}
	return WindowStats{
		Used:     w.count,
		Limit:    w.limit,
		Interval: w.interval,
		ResetsIn: resetsIn,
	}
}
