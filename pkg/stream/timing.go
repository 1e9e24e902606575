package stream

import (
	"sync"
	"time"

	"github.com/nick-vanduijn/synthex/pkg/random"
)

// RandomDelay draws each inter-chunk delay uniformly from [Min, Max].
type RandomDelay struct {
	Min time.Duration
	Max time.Duration
}

// BurstDelay delivers Count chunks Interval apart, then pauses for Pause
// before the next burst.
type BurstDelay struct {
	Count    int
	Interval time.Duration
	Pause    time.Duration
}

// Scheduler decides the delay before each chunk. Exactly one policy is
// consulted, in priority order: PerChunk (by index), Burst, Random,
// Fixed. An empty scheduler yields no delay.
type Scheduler struct {
	PerChunk []time.Duration
	Burst    *BurstDelay
	Random   *RandomDelay
	Fixed    time.Duration

	mu           sync.Mutex
	burstCounter int
	rng          *random.Source
}

// NewScheduler creates a scheduler with its own random source for
// RandomDelay draws.
func NewScheduler() *Scheduler {
	return &Scheduler{rng: random.New(0, random.ModeRandom)}
}

// NextDelay returns the delay to apply before the chunk at index.
func (s *Scheduler) NextDelay(index int) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.PerChunk) > 0 && index < len(s.PerChunk) {
		return s.PerChunk[index]
	}
	if s.Burst != nil {
		return s.nextBurstDelay()
	}
	if s.Random != nil {
		return s.randomDelay()
	}
	return s.Fixed
}

func (s *Scheduler) nextBurstDelay() time.Duration {
	s.burstCounter++
	if s.burstCounter >= s.Burst.Count {
		s.burstCounter = 0
		return s.Burst.Pause
	}
	return s.Burst.Interval
}

func (s *Scheduler) randomDelay() time.Duration {
	if s.rng == nil {
		s.rng = random.New(0, random.ModeRandom)
	}
	span := s.Random.Max - s.Random.Min
	if span <= 0 {
		return s.Random.Min
	}
	return s.Random.Min + time.Duration(s.rng.Float64()*float64(span))
}
