package generate

import (
	"time"

	"github.com/nick-vanduijn/synthex/pkg/ratelimit"
)

// Finish reasons reported in the envelope.
const (
	FinishStop         = "stop"
	FinishFunctionCall = "function_call"
)

// TokenUsage mimics LLM-style token accounting. Counts are derived from
// serialized sizes, roughly four characters per token.
type TokenUsage struct {
	Prompt     int `json:"prompt"`
	Completion int `json:"completion"`
	Total      int `json:"total"`
}

// TraceEntry is one event in the per-call request trace.
type TraceEntry struct {
	At    time.Time `json:"at"`
	Event string    `json:"event"`
	Field string    `json:"field,omitempty"`
}

// Metadata describes how an envelope was produced.
type Metadata struct {
	Timestamp     time.Time              `json:"timestamp"`
	Generator     string                 `json:"generator"`
	RequestID     string                 `json:"requestId"`
	SchemaVersion string                 `json:"schemaVersion,omitempty"`
	Seed          int64                  `json:"seed"`
	Mode          string                 `json:"mode"`
	Model         string                 `json:"model,omitempty"`
	LatencyMs     int64                  `json:"latencyMs"`
	Roles         []string               `json:"roles,omitempty"`
	Trace         []TraceEntry           `json:"trace,omitempty"`
	RateLimit     *ratelimit.WindowStats `json:"rateLimit,omitempty"`
	Quota         *ratelimit.QuotaStats  `json:"quota,omitempty"`
}

// Envelope is the immutable result of one Generate call.
type Envelope struct {
	Schema       string      `json:"schema"`
	Data         any         `json:"data"`
	Metadata     Metadata    `json:"metadata"`
	Tokens       *TokenUsage `json:"tokens,omitempty"`
	FinishReason string      `json:"finishReason,omitempty"`
}
