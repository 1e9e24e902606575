package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Pace is a token bucket used to cap how fast stream chunks are
// delivered. It refills continuously at rate tokens per second up to
// burst. Safe for concurrent use.
type Pace struct {
	tokens   float64
	capacity float64
	rate     float64
	last     time.Time
	mu       sync.Mutex
}

// NewPace creates a bucket refilling at rate tokens/second with the
// given burst capacity. The bucket starts full; a non-positive burst
// defaults to the rate.
func NewPace(rate float64, burst int) *Pace {
	capacity := float64(burst)
	if capacity <= 0 {
		capacity = rate
	}
	return &Pace{tokens: capacity, capacity: capacity, rate: rate, last: time.Now()}
}

func (p *Pace) refill(now time.Time) {
	p.tokens += now.Sub(p.last).Seconds() * p.rate
	if p.tokens > p.capacity {
		p.tokens = p.capacity
	}
	p.last = now
}

// Allow consumes one token if available.
func (p *Pace) Allow() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refill(time.Now())
	if p.tokens >= 1 {
		p.tokens--
		return true
	}
	return false
}

// Wait blocks until one token is available or ctx is done.
func (p *Pace) Wait(ctx context.Context) error {
	p.mu.Lock()
	p.refill(time.Now())
	if p.tokens >= 1 {
		p.tokens--
		p.mu.Unlock()
		return nil
	}
	wait := time.Duration((1 - p.tokens) / p.rate * float64(time.Second))
	p.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		p.mu.Lock()
		p.tokens = 0
		p.mu.Unlock()
		return nil
	}
}
