package generate

import (
	synthex "github.com/nick-vanduijn/synthex"
	"github.com/nick-vanduijn/synthex/pkg/random"
)

// FaultKind names a simulated upstream failure.
type FaultKind string

const (
	FaultTimeout          FaultKind = "timeout"
	FaultModelUnavailable FaultKind = "model_unavailable"
	FaultMalformedRequest FaultKind = "malformed_request"
	FaultRateLimit        FaultKind = "rate_limit"
	FaultInternalError    FaultKind = "internal_error"
)

// faultKinds is the fixed set drawn from uniformly when global error
// simulation trips.
var faultKinds = []FaultKind{
	FaultTimeout,
	FaultModelUnavailable,
	FaultMalformedRequest,
	FaultRateLimit,
	FaultInternalError,
}

// pickFault selects a simulated fault uniformly.
func pickFault(rng *random.Source) FaultKind {
	return faultKinds[rng.IntBetween(0, len(faultKinds)-1)]
}

// faultError maps a fault kind onto the error taxonomy. A simulated
// rate-limit fault carries the same code as a real one.
func faultError(kind FaultKind, schemaName string) *synthex.Error {
	if kind == FaultRateLimit {
		return synthex.SchemaError(synthex.CodeRateLimit, schemaName, "simulated fault: %s", kind)
	}
	return synthex.SchemaError(synthex.CodeGeneration, schemaName, "simulated fault: %s", kind)
}
