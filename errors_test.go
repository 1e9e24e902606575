package synthex

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "code and message",
			err:  NewError(CodeRateLimit, "limit of %d reached", 10),
			want: "synthex: RATE_LIMIT: limit of 10 reached",
		},
		{
			name: "with schema",
			err:  SchemaError(CodeInvalidSchema, "User", "root must be an object"),
			want: `synthex: INVALID_SCHEMA: schema "User": root must be an object`,
		},
		{
			name: "wrapped",
			err:  WrapError(CodeGeneration, "", errors.New("boom")),
			want: "synthex: GENERATION_ERROR: generation failed: boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapErrorNil(t *testing.T) {
	if err := WrapError(CodeGeneration, "X", nil); err != nil {
		t.Errorf("WrapError(nil) = %v, want nil", err)
	}
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := WrapError(CodeTokenCount, "", inner)
	if !errors.Is(err, inner) {
		t.Error("errors.Is did not find wrapped error")
	}
}

func TestCodeOf(t *testing.T) {
	err := NewError(CodeQuotaExceeded, "used up")
	if got := CodeOf(err); got != CodeQuotaExceeded {
		t.Errorf("CodeOf() = %v, want QUOTA_EXCEEDED", got)
	}
	wrapped := fmt.Errorf("outer: %w", err)
	if got := CodeOf(wrapped); got != CodeQuotaExceeded {
		t.Errorf("CodeOf(wrapped) = %v, want QUOTA_EXCEEDED", got)
	}
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Errorf("CodeOf(plain) = %v, want empty", got)
	}
	if got := CodeOf(nil); got != "" {
		t.Errorf("CodeOf(nil) = %v, want empty", got)
	}
}

func TestIsCode(t *testing.T) {
	err := NewError(CodeStreamAborted, "cancelled")
	if !IsCode(err, CodeStreamAborted) {
		t.Error("IsCode() = false for matching code")
	}
	if IsCode(err, CodeRateLimit) {
		t.Error("IsCode() = true for mismatched code")
	}
}

func TestIsStructural(t *testing.T) {
	structural := []Code{
		CodeInvalidSchema, CodeInvalidFieldType, CodeMissingItems,
		CodeMissingProperties, CodeMissingEnumValues, CodeInvalidMinMax,
		CodeInvalidProbability, CodeUnregisteredRef, CodeUnsupportedType,
		CodeSchemaNoName, CodeSchemaNotFound,
	}
	for _, c := range structural {
		if !IsStructural(NewError(c, "x")) {
			t.Errorf("IsStructural(%s) = false, want true", c)
		}
	}
	runtime := []Code{CodeRateLimit, CodeQuotaExceeded, CodeMaxTokenLimit, CodeStreamAborted, CodeGeneration}
	for _, c := range runtime {
		if IsStructural(NewError(c, "x")) {
			t.Errorf("IsStructural(%s) = true, want false", c)
		}
	}
	if IsStructural(errors.New("plain")) {
		t.Error("IsStructural(plain error) = true")
	}
}
