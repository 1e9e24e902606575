package generate

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	synthex "github.com/nick-vanduijn/synthex"
	"github.com/nick-vanduijn/synthex/pkg/logging"
	"github.com/nick-vanduijn/synthex/pkg/random"
	"github.com/nick-vanduijn/synthex/pkg/ratelimit"
	"github.com/nick-vanduijn/synthex/pkg/schema"
)

// Engine produces response envelopes from compiled schemas. Each engine
// owns its random source and policy counters, so independent engines can
// run interleaved without interference. A single engine is not meant for
// parallel Generate calls: generation itself is single-actor, only the
// policy counters are locked.
type Engine struct {
	cfg      Config
	rng      *random.Source
	window   *ratelimit.Window
	quota    *ratelimit.Quota
	registry *schema.Registry
	plugins  []Plugin
	logger   *slog.Logger
	stats    Stats
}

// New creates an engine from cfg. The plugin list is snapshotted here;
// mutating cfg.Plugins afterwards has no effect.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode := cfg.Mode
	if mode == "" {
		mode = random.ModeRandom
	}
	cfg.Mode = mode
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	return &Engine{
		cfg:      cfg,
		rng:      random.New(cfg.Seed, mode),
		window:   ratelimit.NewWindow(cfg.RateLimit, cfg.RateLimitInterval),
		quota:    ratelimit.NewQuota(cfg.Quota),
		registry: cfg.Registry,
		plugins:  append([]Plugin(nil), cfg.Plugins...),
		logger:   logger,
	}, nil
}

// Stats returns a snapshot of the engine's activity counters.
func (e *Engine) Stats() StatsSnapshot {
	return e.stats.Snapshot()
}

// Generate validates the schema, enforces the configured policies, and
// produces one response envelope. The schema is never mutated. Failures
// are never retried internally; the caller decides what to do next.
func (e *Engine) Generate(ctx context.Context, c *schema.Compiled, global map[string]any) (*Envelope, error) {
	env, err := e.generate(ctx, c, global)
	e.stats.recordCall(err != nil)
	if err != nil {
		e.logger.Debug("generation failed", "schema", schemaName(c), "error", err)
	}
	return env, err
}

func schemaName(c *schema.Compiled) string {
	if c == nil {
		return ""
	}
	return c.Name
}

// Admit runs the pre-generation gate: structural validation, rate limit,
// quota, and global error simulation, in that order. Validation failures
// never consume rate limit or quota. The streaming path calls this once
// per stream; Generate calls it once per envelope.
func (e *Engine) Admit(c *schema.Compiled) error {
	// Structural validation fails fast; nothing below runs on a bad tree
	// and nothing partial is ever returned.
	if err := schema.Validate(c); err != nil {
		return err
	}
	if !e.window.Allow() {
		return synthex.SchemaError(synthex.CodeRateLimit, c.Name,
			"rate limit of %d requests per %v exceeded", e.cfg.RateLimit, e.window.Stats().Interval)
	}
	if !e.quota.Allow() {
		return synthex.SchemaError(synthex.CodeQuotaExceeded, c.Name,
			"quota of %d requests exhausted", e.cfg.Quota)
	}
	if e.cfg.ErrorRate > 0 && e.rng.Float64() < e.cfg.ErrorRate {
		e.stats.recordFault()
		return faultError(pickFault(e.rng), c.Name)
	}
	return nil
}

func (e *Engine) generate(ctx context.Context, c *schema.Compiled, global map[string]any) (*Envelope, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, synthex.WrapError(synthex.CodeGeneration, schemaName(c), err)
		}
	}

	if err := e.Admit(c); err != nil {
		return nil, err
	}

	r := &run{engine: e, schema: c.Name, global: global, trace: e.cfg.Trace}
	r.record("validated", "")

	data, err := r.objectGuarded(c.Root)
	if err != nil {
		return nil, normalizeError(err, c.Name)
	}
	r.record("generated", "")

	var out any = data
	if len(e.cfg.Roles) > 0 {
		wrapped := make(map[string]any, len(e.cfg.Roles))
		for _, role := range e.cfg.Roles {
			wrapped[role] = data
		}
		out = wrapped
	}

	tokens, err := e.tokenUsage(c, data)
	if err != nil {
		return nil, err
	}
	if e.cfg.MaxTokens > 0 && tokens.Total > e.cfg.MaxTokens {
		return nil, synthex.SchemaError(synthex.CodeMaxTokenLimit, c.Name,
			"generated %d tokens, budget is %d", tokens.Total, e.cfg.MaxTokens)
	}

	e.logger.Debug("generated envelope", "schema", c.Name, "tokens", tokens.Total)
	return &Envelope{
		Schema:       c.Name,
		Data:         out,
		Metadata:     e.metadata(c, r),
		Tokens:       tokens,
		FinishReason: FinishStop,
	}, nil
}

// tokenUsage computes LLM-style accounting: the prompt cost comes from
// the schema description, the completion cost from the first
// string-valued field of the assistant view when one exists, otherwise
// from the whole object.
func (e *Engine) tokenUsage(c *schema.Compiled, data map[string]any) (*TokenUsage, error) {
	prompt, err := countTokens(schema.Describe(c))
	if err != nil {
		return nil, err
	}
	var completion int
	if s, ok := firstStringField(c.Root, data); ok {
		completion, err = countTokens(s)
	} else {
		completion, err = countTokens(data)
	}
	if err != nil {
		return nil, err
	}
	return &TokenUsage{Prompt: prompt, Completion: completion, Total: prompt + completion}, nil
}

func firstStringField(root *schema.Field, data map[string]any) (string, bool) {
	for _, p := range root.Properties {
		if v, ok := data[p.Name]; ok {
			if s, ok := v.(string); ok {
				return s, true
			}
		}
	}
	return "", false
}

func (e *Engine) metadata(c *schema.Compiled, r *run) Metadata {
	md := Metadata{
		Timestamp:     time.Now().UTC(),
		Generator:     Generator,
		RequestID:     uuid.NewString(),
		SchemaVersion: c.Version,
		Seed:          e.cfg.Seed,
		Mode:          string(e.rng.Mode()),
		Model:         e.cfg.Model,
		LatencyMs:     e.simulatedLatency().Milliseconds(),
		Roles:         e.cfg.Roles,
		Trace:         r.entries,
	}
	if e.cfg.RateLimit > 0 {
		s := e.window.Stats()
		md.RateLimit = &s
	}
	if e.cfg.Quota > 0 {
		s := e.quota.Stats()
		md.Quota = &s
	}
	return md
}

func (e *Engine) simulatedLatency() time.Duration {
	if e.cfg.LatencyMax <= 0 {
		return e.cfg.LatencyMin
	}
	span := e.cfg.LatencyMax - e.cfg.LatencyMin
	return e.cfg.LatencyMin + time.Duration(e.rng.Float64()*float64(span))
}

// normalizeError lets structural errors pass through unchanged and wraps
// anything else as a generation error carrying the schema name.
func normalizeError(err error, schemaName string) error {
	if synthex.IsStructural(err) {
		return err
	}
	var mod *synthex.Error
	if e, ok := err.(*synthex.Error); ok {
		mod = e
	}
	if mod != nil {
		if mod.Schema == "" {
			mod.Schema = schemaName
		}
		return mod
	}
	return synthex.WrapError(synthex.CodeGeneration, schemaName, err)
}

// GenerateField generates a single named field against an existing
// current-level object, applying the same inclusion, fault, and
// hallucination rules as one-shot generation. The streaming path uses
// this to share one running currentData across a whole stream.
func (e *Engine) GenerateField(schemaName, name string, f *schema.Field, current, global map[string]any) (value any, included bool, err error) {
	r := &run{engine: e, schema: schemaName, global: global}
	defer func() {
		if rec := recover(); rec != nil {
			err = synthex.SchemaError(synthex.CodeGeneration, schemaName, "panic generating field %q: %v", name, rec)
		}
	}()
	value, included, err = r.field(name, f, current)
	if err != nil {
		err = normalizeError(err, schemaName)
	}
	return value, included, err
}

// run is the per-call state: schema name, global context, and the
// optional trace log.
type run struct {
	engine  *Engine
	schema  string
	global  map[string]any
	trace   bool
	entries []TraceEntry
}

func (r *run) record(event, field string) {
	if !r.trace {
		return
	}
	r.entries = append(r.entries, TraceEntry{At: time.Now().UTC(), Event: event, Field: field})
}

// objectGuarded wraps object generation with panic recovery so a
// misbehaving custom generator or plugin surfaces as an error instead of
// tearing down the caller.
func (r *run) objectGuarded(f *schema.Field) (data map[string]any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = synthex.SchemaError(synthex.CodeGeneration, r.schema, "panic during generation: %v", rec)
		}
	}()
	return r.object(f)
}

// object generates all properties of an object field in declaration
// order, building currentData incrementally so later fields' templates
// and conditions see earlier values at the same level.
func (r *run) object(f *schema.Field) (map[string]any, error) {
	current := make(map[string]any, len(f.Properties))
	for _, p := range f.Properties {
		v, included, err := r.field(p.Name, p.Field, current)
		if err != nil {
			return nil, err
		}
		if included {
			current[p.Name] = v
		}
	}
	return current, nil
}

// field applies inclusion rules, then produces the field's value.
func (r *run) field(name string, f *schema.Field, current map[string]any) (any, bool, error) {
	if !f.Required {
		// Zero probability short-circuits without consuming randomness.
		if f.Probability != nil && *f.Probability == 0 {
			return nil, false, nil
		}
		cond, err := f.EffectiveCondition()
		if err != nil {
			return nil, false, err
		}
		if cond != nil && !cond(current, r.global) {
			return nil, false, nil
		}
		if f.Probability != nil && r.engine.rng.Float64() >= *f.Probability {
			return nil, false, nil
		}
	}
	v, err := r.value(name, f, current)
	if err != nil {
		return nil, false, err
	}
	r.record("field", name)
	return v, true, nil
}

// value runs the override chain (plugins, custom generator, simulated
// field error), then kind dispatch, then hallucination. Plugin and
// custom-generator values short-circuit everything, including
// hallucination.
func (r *run) value(name string, f *schema.Field, current map[string]any) (any, error) {
	e := r.engine
	if len(e.plugins) > 0 {
		pctx := &Context{Schema: r.schema, Field: name, Current: current, Global: r.global, Rand: e.rng}
		for _, pl := range e.plugins {
			if v, ok := pl.Generate(f, pctx); ok {
				return v, nil
			}
		}
	}
	if f.Generator != nil {
		return f.Generator(current, r.global), nil
	}
	if f.SimulateError && e.rng.Float64() < fieldErrorProbability {
		errType := f.ErrorType
		if errType == "" {
			errType = "SimulatedFieldError"
		}
		return map[string]any{"error": errType}, nil
	}

	v, err := r.kindValue(name, f, current)
	if err != nil {
		return nil, err
	}
	if e.cfg.HallucinationRate > 0 && e.rng.Float64() < e.cfg.HallucinationRate {
		e.stats.recordHallucination()
		return hallucinate(f, e.rng), nil
	}
	return v, nil
}

func (r *run) kindValue(name string, f *schema.Field, current map[string]any) (any, error) {
	e := r.engine
	switch f.Kind {
	case schema.KindString:
		return r.stringValue(f, current), nil
	case schema.KindNumber:
		return numberValue(f, e.rng), nil
	case schema.KindBoolean:
		return e.rng.Bool(), nil
	case schema.KindUUID:
		return e.rng.UUID(), nil
	case schema.KindEmail:
		return e.rng.Email(), nil
	case schema.KindURL:
		return e.rng.URL(), nil
	case schema.KindDate:
		return dateValue(f, e.rng), nil
	case schema.KindArray:
		return r.arrayValue(name, f)
	case schema.KindObject:
		// Nested objects start from a fresh currentData: conditions can
		// see same-level siblings only, never the parent's.
		return r.object(f)
	case schema.KindEnum:
		candidates := make([]random.Weighted, len(f.EnumValues))
		for i, ev := range f.EnumValues {
			candidates[i] = random.Weighted{Value: ev.Value, Weight: ev.Weight}
		}
		return e.rng.WeightedChoice(candidates), nil
	case schema.KindUnion:
		member := f.UnionTypes[e.rng.IntBetween(0, len(f.UnionTypes)-1)]
		return r.value(name, member, current)
	case schema.KindIntersection:
		return r.intersectionValue(name, f, current)
	case schema.KindNullable:
		if e.rng.Bool() {
			return nil, nil
		}
		return r.value(name, f.Inner, current)
	case schema.KindReference:
		return r.referenceValue(f)
	default:
		return nil, synthex.SchemaError(synthex.CodeUnsupportedType, r.schema, "unsupported field kind %q", f.Kind)
	}
}

func (r *run) stringValue(f *schema.Field, current map[string]any) string {
	e := r.engine
	if f.Template != "" {
		return interpolate(f.Template, current, r.global)
	}
	if f.Pattern != "" {
		return expandPattern(f.Pattern, e.rng)
	}

	min := f.MinInt(1)
	max := f.MaxInt(20)
	if max < min {
		max = min
	}

	var sb strings.Builder
	for {
		w := e.rng.Word()
		need := len(w)
		if sb.Len() > 0 {
			need++
		}
		if sb.Len()+need > max {
			break
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(w)
	}
	s := sb.String()
	if s == "" && max > 0 {
		// No dictionary word fits; fall back to random characters.
		s = e.rng.String(max, random.CharsetLower)
	}
	if len(s) < min {
		s += e.rng.String(min-len(s), random.CharsetLower)
	}
	if f.Min != nil && f.Max != nil && *f.Min == *f.Max && len(s) > min {
		s = s[:min]
	}
	return s
}

func numberValue(f *schema.Field, rng *random.Source) any {
	min, max := 0.0, 1000.0
	if f.Min != nil {
		min = *f.Min
	}
	if f.Max != nil {
		max = *f.Max
	}
	if max < min {
		max = min
	}
	if min == math.Trunc(min) && max == math.Trunc(max) {
		return rng.IntBetween(int(min), int(max))
	}
	return rng.FloatBetween(min, max)
}

func dateValue(f *schema.Field, rng *random.Source) string {
	t := rng.Date(f.DateStart, f.DateEnd)
	if f.DateFormat == schema.DateFormatDate {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339)
}

func (r *run) arrayValue(name string, f *schema.Field) (any, error) {
	e := r.engine
	if f.Min != nil && f.Max != nil && *f.Min == 0 && *f.Max == 0 {
		return []any{}, nil
	}
	min := f.MinInt(1)
	max := f.MaxInt(5)
	if max < min {
		max = min
	}
	n := e.rng.IntBetween(min, max)
	items := make([]any, 0, n)
	for i := 0; i < n; i++ {
		// Each element is generated against a fresh currentData; array
		// items never see their siblings.
		v, err := r.value(name, f.Items, map[string]any{})
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

func (r *run) intersectionValue(name string, f *schema.Field, current map[string]any) (any, error) {
	var acc any
	for _, member := range f.IntersectionTypes {
		v, err := r.value(name, member, current)
		if err != nil {
			return nil, err
		}
		vm, ok := v.(map[string]any)
		if !ok {
			// Non-object members replace the accumulator outright.
			acc = v
			continue
		}
		am, ok := acc.(map[string]any)
		if !ok {
			am = make(map[string]any, len(vm))
		}
		for k, val := range vm {
			am[k] = val
		}
		acc = am
	}
	return acc, nil
}

func (r *run) referenceValue(f *schema.Field) (any, error) {
	e := r.engine
	if e.registry == nil {
		return nil, synthex.SchemaError(synthex.CodeUnregisteredRef, r.schema,
			"reference %q with no registry configured", f.ReferenceName)
	}
	ref, err := e.registry.Lookup(f.ReferenceName)
	if err != nil {
		return nil, synthex.SchemaError(synthex.CodeUnregisteredRef, r.schema,
			"reference %q is not registered", f.ReferenceName)
	}
	sub := &run{engine: e, schema: ref.Name, global: r.global}
	return sub.object(ref.Root)
}
