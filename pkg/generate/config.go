// Package generate implements the generation engine: it walks a compiled
// schema and produces a value tree plus response metadata, enforcing the
// configured policies (rate limit, quota, fault simulation, hallucination,
// token budget) along the way.
package generate

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/nick-vanduijn/synthex/pkg/random"
	"github.com/nick-vanduijn/synthex/pkg/schema"
)

// Generator is the tag stamped into response metadata.
const Generator = "synthex"

// fieldErrorProbability is the chance that a field marked SimulateError
// produces an error marker on any given attempt. Fixed, not configurable.
const fieldErrorProbability = 0.5

// Plugin can take over generation of individual fields. Plugins run
// before all default logic, in registration order; the first plugin
// returning ok short-circuits the rest.
type Plugin interface {
	Name() string
	Generate(f *schema.Field, ctx *Context) (any, bool)
}

// Context is the per-field view handed to plugins: the object data built
// so far at the current nesting level, the caller's global context, and
// the engine's random source.
type Context struct {
	Schema  string
	Field   string
	Current map[string]any
	Global  map[string]any
	Rand    *random.Source
}

// FunctionDef declares a callable function for function-call simulation.
type FunctionDef struct {
	Name        string
	Description string
	Parameters  *schema.Compiled
}

// Config controls an Engine. The zero value disables every policy:
// unlimited requests, no faults, no hallucination, ambient randomness.
type Config struct {
	// Seed and Mode control the random source. Mode defaults to
	// random.ModeRandom, ignoring the seed.
	Seed int64
	Mode random.Mode

	// RateLimit allows at most this many Generate calls per
	// RateLimitInterval (default one minute). Zero disables.
	RateLimit         int
	RateLimitInterval time.Duration

	// Quota is a lifetime cap on Generate calls. Zero disables.
	Quota int64

	// ErrorRate is the probability that a call fails with a simulated
	// fault before any value is produced.
	ErrorRate float64

	// HallucinationRate is the per-field probability that a generated
	// value is overwritten with type-appropriate noise.
	HallucinationRate float64

	// MaxTokens fails generation after the fact when the serialized
	// output exceeds the budget. Zero disables.
	MaxTokens int

	// Roles wraps the generated object under each named role key
	// (e.g. system, user, assistant).
	Roles []string

	// Model and latency bounds are reported in metadata to mimic an
	// upstream model API. The engine never sleeps for latency.
	Model      string
	LatencyMin time.Duration
	LatencyMax time.Duration

	// Functions enables function-call simulation.
	Functions []FunctionDef

	// Plugins are captured at engine construction; later changes to the
	// slice do not affect the engine.
	Plugins []Plugin

	// Registry resolves reference fields.
	Registry *schema.Registry

	// Trace records a per-call event log in metadata.
	Trace bool

	// Logger receives debug-level lifecycle events. Nil means silent.
	Logger *slog.Logger
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.ErrorRate < 0 || c.ErrorRate > 1 {
		return fmt.Errorf("errorRate must be between 0.0 and 1.0, got %v", c.ErrorRate)
	}
	if c.HallucinationRate < 0 || c.HallucinationRate > 1 {
		return fmt.Errorf("hallucinationRate must be between 0.0 and 1.0, got %v", c.HallucinationRate)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rateLimit must be >= 0, got %d", c.RateLimit)
	}
	if c.Quota < 0 {
		return fmt.Errorf("quota must be >= 0, got %d", c.Quota)
	}
	if c.LatencyMin < 0 || c.LatencyMax < c.LatencyMin && c.LatencyMax != 0 {
		return fmt.Errorf("latency bounds invalid: min %v max %v", c.LatencyMin, c.LatencyMax)
	}
	for _, fn := range c.Functions {
		if fn.Name == "" {
			return fmt.Errorf("function definition without a name")
		}
		if fn.Parameters == nil {
			return fmt.Errorf("function %q has no parameter schema", fn.Name)
		}
	}
	return nil
}
