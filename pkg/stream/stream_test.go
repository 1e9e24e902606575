package stream

import (
	"context"
	"errors"
	"testing"
	"time"

	synthex "github.com/nick-vanduijn/synthex"
	"github.com/nick-vanduijn/synthex/pkg/generate"
	"github.com/nick-vanduijn/synthex/pkg/random"
	"github.com/nick-vanduijn/synthex/pkg/ratelimit"
	"github.com/nick-vanduijn/synthex/pkg/schema"
)

func testEngine(t *testing.T, cfg generate.Config) *generate.Engine {
	t.Helper()
	if cfg.Mode == "" {
		cfg.Mode = random.ModeDeterministic
	}
	e, err := generate.New(cfg)
	if err != nil {
		t.Fatalf("generate.New() error = %v", err)
	}
	return e
}

func fiveFieldSchema() *schema.Compiled {
	return schema.Object("Doc").
		Field("a", schema.UUID()).
		Field("b", schema.String()).
		Field("c", schema.Number()).
		Field("d", schema.Bool()).
		Field("e", schema.Email()).
		MustBuild()
}

func TestStreamDeliversAllFieldsInOrder(t *testing.T) {
	e := testEngine(t, generate.Config{Seed: 1})
	s, err := Generate(context.Background(), e, fiveFieldSchema(), nil, Options{Delay: -1})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	var names []string
	var chunks []Chunk
	for c := range s.Chunks() {
		chunks = append(chunks, c)
		names = append(names, c.Names...)
	}
	if err := s.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	if s.State() != StateCompleted {
		t.Errorf("State() = %v, want completed", s.State())
	}

	want := []string{"a", "b", "c", "d", "e"}
	if len(names) != len(want) {
		t.Fatalf("delivered fields = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("field %d = %q, want declaration order %v", i, names[i], want)
		}
	}

	// chunk size defaults to one field
	if len(chunks) != 5 {
		t.Fatalf("chunk count = %d, want 5", len(chunks))
	}
	for i, c := range chunks {
		if c.Index != i {
			t.Errorf("chunk %d carries index %d", i, c.Index)
		}
		if c.Final != (i == 4) {
			t.Errorf("chunk %d Final = %v", i, c.Final)
		}
	}
}

func TestStreamChunkSize(t *testing.T) {
	e := testEngine(t, generate.Config{Seed: 1})
	s, err := Generate(context.Background(), e, fiveFieldSchema(), nil, Options{ChunkSize: 2, Delay: -1})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	var sizes []int
	for c := range s.Chunks() {
		sizes = append(sizes, len(c.Names))
	}
	want := []int{2, 2, 1}
	if len(sizes) != len(want) {
		t.Fatalf("chunk sizes = %v, want %v", sizes, want)
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Errorf("chunk %d size = %d, want %d", i, sizes[i], want[i])
		}
	}
}

func TestStreamCollectMatchesOneShot(t *testing.T) {
	c := fiveFieldSchema()
	s, err := Generate(context.Background(), testEngine(t, generate.Config{Seed: 42}), c, nil, Options{Delay: -1})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	data, err := Collect(s)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if !schema.Conforms(data, c) {
		t.Errorf("collected stream output does not conform to the schema: %v", data)
	}
}

func TestStreamAbort(t *testing.T) {
	e := testEngine(t, generate.Config{Seed: 1})
	ctx, cancel := context.WithCancel(context.Background())
	s, err := Generate(ctx, e, fiveFieldSchema(), nil, Options{Delay: 30 * time.Millisecond})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// take the first chunk, then cancel mid-delay
	first, ok := <-s.Chunks()
	if !ok {
		t.Fatal("no first chunk delivered")
	}
	cancel()

	var rest []Chunk
	for c := range s.Chunks() {
		rest = append(rest, c)
	}
	if len(rest) != 0 {
		t.Errorf("chunks after cancel = %d, want 0", len(rest))
	}
	if len(first.Names) != 1 || first.Names[0] != "a" {
		t.Errorf("first chunk = %v", first.Names)
	}

	err = s.Err()
	if !synthex.IsCode(err, synthex.CodeStreamAborted) {
		t.Fatalf("Err() = %v, want STREAM_ABORTED", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("aborted stream should wrap the context error, got %v", err)
	}
	if s.State() != StateAborted {
		t.Errorf("State() = %v, want aborted", s.State())
	}
}

func TestStreamAdmissionFailsSynchronously(t *testing.T) {
	t.Run("invalid schema", func(t *testing.T) {
		e := testEngine(t, generate.Config{Seed: 1})
		bad := &schema.Compiled{Name: "Bad", Root: &schema.Field{Kind: schema.KindObject}}
		_, err := Generate(context.Background(), e, bad, nil, Options{})
		if !synthex.IsCode(err, synthex.CodeMissingProperties) {
			t.Errorf("err = %v, want MISSING_PROPERTIES", err)
		}
	})

	t.Run("rate limited", func(t *testing.T) {
		e := testEngine(t, generate.Config{Seed: 1, RateLimit: 1, RateLimitInterval: time.Minute})
		c := fiveFieldSchema()
		s, err := Generate(context.Background(), e, c, nil, Options{Delay: -1})
		if err != nil {
			t.Fatalf("first stream rejected: %v", err)
		}
		for range s.Chunks() {
		}
		_, err = Generate(context.Background(), e, c, nil, Options{Delay: -1})
		if !synthex.IsCode(err, synthex.CodeRateLimit) {
			t.Errorf("err = %v, want RATE_LIMIT", err)
		}
	})
}

func TestStreamSharedCurrentData(t *testing.T) {
	// a later field's template must see values streamed in earlier chunks
	c := schema.Object("T").
		Field("name", schema.Enum("ada")).
		Field("greeting", schema.String().Template("hi {{name}}")).
		MustBuild()
	s, err := Generate(context.Background(), testEngine(t, generate.Config{Seed: 1}), c, nil, Options{Delay: -1})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	data, err := Collect(s)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if data["greeting"] != "hi ada" {
		t.Errorf("greeting = %q, want %q", data["greeting"], "hi ada")
	}
}

func TestStreamExcludedFieldsSkipChunks(t *testing.T) {
	c := schema.Object("T").
		Field("keep", schema.String()).
		Field("drop", schema.String().Optional().Probability(0)).
		MustBuild()
	s, err := Generate(context.Background(), testEngine(t, generate.Config{Seed: 1}), c, nil, Options{Delay: -1})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	data, err := Collect(s)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if _, ok := data["drop"]; ok {
		t.Error("probability-0 field appeared in stream output")
	}
	if _, ok := data["keep"]; !ok {
		t.Error("required field missing from stream output")
	}
}

func TestStreamPace(t *testing.T) {
	e := testEngine(t, generate.Config{Seed: 1})
	pace := ratelimit.NewPace(100, 1)
	start := time.Now()
	s, err := Generate(context.Background(), e, fiveFieldSchema(), nil, Options{Delay: -1, Pace: pace})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for range s.Chunks() {
	}
	if err := s.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	// 5 chunks through a 100/s bucket with burst 1 needs ~40ms
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("paced stream finished in %v, expected pacing delays", elapsed)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateNotStarted, "not_started"},
		{StateProducing, "producing"},
		{StateCompleted, "completed"},
		{StateAborted, "aborted"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
