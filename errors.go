package synthex

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code. Every error produced by this
// module carries exactly one code so callers can branch on failure class
// without string matching.
type Code string

// Schema structure codes. These are raised during the validation pass at
// the start of generation and never after values have been produced.
const (
	CodeInvalidSchema     Code = "INVALID_SCHEMA"
	CodeInvalidFieldType  Code = "INVALID_FIELD_TYPE"
	CodeMissingItems      Code = "MISSING_ITEMS"
	CodeMissingProperties Code = "MISSING_PROPERTIES"
	CodeMissingEnumValues Code = "MISSING_ENUM_VALUES"
	CodeInvalidMinMax     Code = "INVALID_MIN_MAX"
	CodeInvalidProbability Code = "INVALID_PROBABILITY"
)

// Generation and policy codes.
const (
	CodeRateLimit           Code = "RATE_LIMIT"
	CodeQuotaExceeded       Code = "QUOTA_EXCEEDED"
	CodeMaxTokenLimit       Code = "MAX_TOKEN_LIMIT"
	CodeUnregisteredRef     Code = "UNREGISTERED_SCHEMA_REFERENCE"
	CodeUnsupportedType     Code = "UNSUPPORTED_TYPE"
	CodeStreamAborted       Code = "STREAM_ABORTED"
	CodeTokenCount          Code = "TOKEN_COUNT_ERROR"
	CodeGeneration          Code = "GENERATION_ERROR"
	CodeSchemaNoName        Code = "SCHEMA_NO_NAME"
	CodeSchemaNotFound      Code = "SCHEMA_NOT_FOUND"
	CodeNoFunctionCallSim   Code = "NO_FUNCTION_CALL_SIM"
)

// Error is the single error type surfaced by the module. Schema names the
// compiled schema being processed when known.
type Error struct {
	Code    Code
	Schema  string
	Message string
	Err     error
}

// Error returns the error string.
func (e *Error) Error() string {
	switch {
	case e.Schema != "" && e.Err != nil:
		return fmt.Sprintf("synthex: %s: schema %q: %s: %v", e.Code, e.Schema, e.Message, e.Err)
	case e.Schema != "":
		return fmt.Sprintf("synthex: %s: schema %q: %s", e.Code, e.Schema, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("synthex: %s: %s: %v", e.Code, e.Message, e.Err)
	default:
		return fmt.Sprintf("synthex: %s: %s", e.Code, e.Message)
	}
}

// Unwrap returns the wrapped error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates an Error with the given code and message.
func NewError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// SchemaError creates an Error bound to a schema name.
func SchemaError(code Code, schema, format string, args ...any) *Error {
	return &Error{Code: code, Schema: schema, Message: fmt.Sprintf(format, args...)}
}

// WrapError wraps err with the given code and schema name. A nil err
// returns nil.
func WrapError(code Code, schema string, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Schema: schema, Message: "generation failed", Err: err}
}

// CodeOf extracts the Code from err, or "" when err is not a module error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// structuralCodes is the set of codes raised by schema validation. These
// pass through generation unchanged rather than being rewrapped.
var structuralCodes = map[Code]bool{
	CodeInvalidSchema:      true,
	CodeInvalidFieldType:   true,
	CodeMissingItems:       true,
	CodeMissingProperties:  true,
	CodeMissingEnumValues:  true,
	CodeInvalidMinMax:      true,
	CodeInvalidProbability: true,
	CodeUnregisteredRef:    true,
	CodeUnsupportedType:    true,
	CodeSchemaNoName:       true,
	CodeSchemaNotFound:     true,
}

// IsStructural reports whether err is a schema structure or configuration
// error, as opposed to a runtime generation failure.
func IsStructural(err error) bool {
	return structuralCodes[CodeOf(err)]
}
