// Package synthex generates structurally valid synthetic data from
// declarative schemas. Developers describe a data shape with the fluent
// builders in pkg/schema, then hand the compiled schema to the engine in
// pkg/generate to produce fake values, one-shot or streamed.
//
// The engine can mimic the operational behaviour of an LLM-style API:
// seeded randomness, token accounting, rate limits and quotas, simulated
// faults, hallucinated values, and role-wrapped responses.
//
// Subpackages:
//   - pkg/schema: field model, fluent builders, registry, conformance.
//   - pkg/generate: the generation engine and its policies.
//   - pkg/stream: incremental chunked delivery with cancellation.
//   - pkg/random: seeded random value sources.
//   - pkg/ratelimit: window, quota, and pacing primitives.
//   - pkg/schemaio: schema import/export (JSON, YAML, OpenAPI).
//   - pkg/format: response formatters (JSON, XML, Markdown).
//
// This package holds only the shared error model.
package synthex
