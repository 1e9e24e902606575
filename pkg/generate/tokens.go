package generate

import (
	"github.com/ohler55/ojg/oj"

	synthex "github.com/nick-vanduijn/synthex"
)

// charsPerToken approximates LLM tokenization: usage is the serialized
// JSON size divided by four, never less than one for non-empty output.
const charsPerToken = 4

// countTokens computes the token cost of a value from its serialized
// size.
func countTokens(v any) (int, error) {
	if v == nil {
		return 0, nil
	}
	data, err := oj.Marshal(v)
	if err != nil {
		return 0, synthex.WrapError(synthex.CodeTokenCount, "", err)
	}
	n := len(data) / charsPerToken
	if n == 0 {
		n = 1
	}
	return n, nil
}
