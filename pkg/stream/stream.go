// Package stream delivers generation results incrementally: the root
// object's fields are generated in declaration order and emitted in
// chunks, with a configurable delay between chunks and cooperative
// cancellation through the caller's context.
package stream

import (
	"context"
	"sync"
	"time"

	synthex "github.com/nick-vanduijn/synthex"
	"github.com/nick-vanduijn/synthex/pkg/generate"
	"github.com/nick-vanduijn/synthex/pkg/ratelimit"
	"github.com/nick-vanduijn/synthex/pkg/schema"
)

// Default chunking parameters.
const (
	DefaultChunkSize = 1
	DefaultDelay     = 50 * time.Millisecond
)

// State is the stream's lifecycle position.
type State int32

const (
	StateNotStarted State = iota
	StateProducing
	StateCompleted
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateProducing:
		return "producing"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Chunk is one increment of the response. Names preserves field order
// within the chunk; Fields holds the generated values. A chunk can be
// empty when every field in its window was excluded by probability or
// condition.
type Chunk struct {
	Index  int            `json:"index"`
	Names  []string       `json:"names"`
	Fields map[string]any `json:"fields"`
	Final  bool           `json:"final"`
}

// Options tunes chunking and pacing.
type Options struct {
	// ChunkSize is the number of schema fields per chunk, default 1.
	// Chunk boundaries never split a single field.
	ChunkSize int

	// Delay is the pause between chunks. Zero means DefaultDelay;
	// negative disables the delay entirely.
	Delay time.Duration

	// Scheduler overrides Delay with a richer policy when set.
	Scheduler *Scheduler

	// Pace caps chunk delivery rate when set.
	Pace *ratelimit.Pace
}

func (o Options) chunkSize() int {
	if o.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return o.ChunkSize
}

// Stream is an in-flight incremental generation. Consume Chunks until it
// closes, then check Err.
type Stream struct {
	chunks chan Chunk

	mu    sync.Mutex
	state State
	err   error
}

// Chunks returns the delivery channel. It closes when the stream
// completes or aborts; chunks already delivered stay delivered.
func (s *Stream) Chunks() <-chan Chunk {
	return s.chunks
}

// Err returns the terminal error, if any. Only meaningful after the
// chunk channel has closed.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// State returns the current lifecycle state.
func (s *Stream) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Stream) setState(state State, err error) {
	s.mu.Lock()
	s.state = state
	if err != nil {
		s.err = err
	}
	s.mu.Unlock()
}

// Generate starts streaming generation of the schema. The policy gate
// (validation, rate limit, quota, simulated faults) runs synchronously:
// a rejected request fails here rather than on the channel. One running
// currentData is shared across the whole stream, so later fields'
// templates and conditions see every earlier field.
func Generate(ctx context.Context, e *generate.Engine, c *schema.Compiled, global map[string]any, opts Options) (*Stream, error) {
	if err := e.Admit(c); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	s := &Stream{chunks: make(chan Chunk)}
	s.setState(StateProducing, nil)
	go s.produce(ctx, e, c, global, opts)
	return s, nil
}

func (s *Stream) produce(ctx context.Context, e *generate.Engine, c *schema.Compiled, global map[string]any, opts Options) {
	defer close(s.chunks)

	props := c.Root.Properties
	current := make(map[string]any, len(props))
	size := opts.chunkSize()

	index := 0
	for start := 0; start < len(props); start += size {
		// Abort wins over producing the next chunk.
		if err := ctx.Err(); err != nil {
			s.abort(c.Name, err)
			return
		}
		if index > 0 {
			if err := s.pause(ctx, index, opts); err != nil {
				s.abort(c.Name, err)
				return
			}
		}
		if opts.Pace != nil {
			if err := opts.Pace.Wait(ctx); err != nil {
				s.abort(c.Name, err)
				return
			}
		}

		end := start + size
		if end > len(props) {
			end = len(props)
		}
		chunk := Chunk{
			Index:  index,
			Fields: make(map[string]any, end-start),
			Final:  end == len(props),
		}
		for _, p := range props[start:end] {
			v, included, err := e.GenerateField(c.Name, p.Name, p.Field, current, global)
			if err != nil {
				s.setState(StateAborted, err)
				return
			}
			if included {
				chunk.Names = append(chunk.Names, p.Name)
				chunk.Fields[p.Name] = v
				current[p.Name] = v
			}
		}

		select {
		case s.chunks <- chunk:
		case <-ctx.Done():
			s.abort(c.Name, ctx.Err())
			return
		}
		index++
	}
	s.setState(StateCompleted, nil)
}

// pause waits out the inter-chunk delay, answering cancellation.
func (s *Stream) pause(ctx context.Context, index int, opts Options) error {
	var delay time.Duration
	switch {
	case opts.Scheduler != nil:
		delay = opts.Scheduler.NextDelay(index)
	case opts.Delay < 0:
		delay = 0
	case opts.Delay == 0:
		delay = DefaultDelay
	default:
		delay = opts.Delay
	}
	if delay <= 0 {
		return nil
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *Stream) abort(schemaName string, cause error) {
	s.setState(StateAborted, &synthex.Error{
		Code:    synthex.CodeStreamAborted,
		Schema:  schemaName,
		Message: "stream aborted",
		Err:     cause,
	})
}

// Collect drains the stream into a single object, mirroring one-shot
// generation output. Mostly useful in tests.
func Collect(s *Stream) (map[string]any, error) {
	out := map[string]any{}
	for chunk := range s.Chunks() {
		for _, name := range chunk.Names {
			out[name] = chunk.Fields[name]
		}
	}
	return out, s.Err()
}
