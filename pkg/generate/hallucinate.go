package generate

import (
	"github.com/nick-vanduijn/synthex/pkg/random"
	"github.com/nick-vanduijn/synthex/pkg/schema"
)

// hallucinate replaces a generated value with type-appropriate noise,
// simulating an unreliable upstream. The replacement is deliberately
// recognizable in output so tests and demos can spot it.
func hallucinate(f *schema.Field, rng *random.Source) any {
	switch f.Kind {
	case schema.KindNumber:
		// Out of the default [0,1000] range, and out of any declared one.
		return f.MaxInt(1000) + rng.IntBetween(1000, 9999)
	case schema.KindBoolean:
		return !rng.Bool()
	case schema.KindArray:
		return []any{"hallucinated"}
	case schema.KindObject, schema.KindReference, schema.KindIntersection:
		return map[string]any{"hallucinated": true}
	case schema.KindEnum:
		return "???"
	default:
		return "hallucinated-" + rng.String(8, random.CharsetLower)
	}
}
