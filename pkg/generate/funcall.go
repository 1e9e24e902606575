package generate

import (
	"context"

	synthex "github.com/nick-vanduijn/synthex"
)

// FunctionCall is a simulated tool invocation: a function name plus
// arguments generated from its parameter schema.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments any    `json:"arguments"`
}

// GenerateFunctionCall picks one configured function uniformly and
// generates arguments matching its parameter schema. The call goes
// through the same policy pipeline as Generate (rate limit, quota,
// faults, token budget). Fails when no functions are configured.
func (e *Engine) GenerateFunctionCall(ctx context.Context, global map[string]any) (*Envelope, error) {
	if len(e.cfg.Functions) == 0 {
		return nil, synthex.NewError(synthex.CodeNoFunctionCallSim, "no functions configured for function-call simulation")
	}
	fn := e.cfg.Functions[e.rng.IntBetween(0, len(e.cfg.Functions)-1)]

	env, err := e.Generate(ctx, fn.Parameters, global)
	if err != nil {
		return nil, err
	}
	env.Data = &FunctionCall{Name: fn.Name, Arguments: env.Data}
	env.FinishReason = FinishFunctionCall
	return env, nil
}
