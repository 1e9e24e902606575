// Package format renders response envelopes for consumption outside the
// library: pretty JSON, simple nested XML, and Markdown reports.
package format

import (
	"github.com/ohler55/ojg/oj"

	"github.com/nick-vanduijn/synthex/pkg/generate"
)

// JSON renders the envelope as indented JSON.
func JSON(env *generate.Envelope) (string, error) {
	data, err := oj.Marshal(env, 2)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// JSONData renders only the envelope's data tree.
func JSONData(env *generate.Envelope) (string, error) {
	data, err := oj.Marshal(env.Data, 2)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
