package generate

import (
	"strconv"
	"strings"

	"github.com/nick-vanduijn/synthex/pkg/random"
)

// expandPattern generates a string from a coarse shape hint. This is not
// a regular expression engine; supported constructs are:
//
//	\d          one digit
//	\w          one lowercase letter
//	[abc]       one of the listed characters, a-z style ranges allowed
//	{n} {n,m}   repeat the preceding construct n (or n..m) times
//
// Everything else is emitted literally.
func expandPattern(pattern string, rng *random.Source) string {
	var out []byte
	var last func() string
	lastStart := 0

	emit := func(gen func() string) {
		lastStart = len(out)
		out = append(out, gen()...)
		last = gen
	}

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '\\':
			if i+1 >= len(runes) {
				out = append(out, string(r)...)
				continue
			}
			i++
			switch runes[i] {
			case 'd':
				emit(func() string { return rng.String(1, random.CharsetDigits) })
			case 'w':
				emit(func() string { return rng.String(1, random.CharsetLower) })
			default:
				lit := string(runes[i])
				emit(func() string { return lit })
			}
		case '[':
			end := indexFrom(runes, i+1, ']')
			if end < 0 {
				out = append(out, string(r)...)
				continue
			}
			set := expandClass(string(runes[i+1 : end]))
			i = end
			if set == "" {
				continue
			}
			emit(func() string { return rng.String(1, set) })
		case '{':
			end := indexFrom(runes, i+1, '}')
			if end < 0 || last == nil {
				out = append(out, string(r)...)
				continue
			}
			lo, hi, ok := parseRepeat(string(runes[i+1 : end]))
			i = end
			if !ok {
				continue
			}
			n := rng.IntBetween(lo, hi)
			// The construct already emitted once; rewind for n == 0.
			if n == 0 {
				out = out[:lastStart]
				continue
			}
			for j := 1; j < n; j++ {
				out = append(out, last()...)
			}
		default:
			lit := string(r)
			emit(func() string { return lit })
		}
	}
	return string(out)
}

func indexFrom(runes []rune, start int, target rune) int {
	for i := start; i < len(runes); i++ {
		if runes[i] == target {
			return i
		}
	}
	return -1
}

// expandClass turns a character-class body like "a-f0-9_" into the full
// candidate set.
func expandClass(body string) string {
	var sb strings.Builder
	runes := []rune(body)
	for i := 0; i < len(runes); i++ {
		if i+2 < len(runes) && runes[i+1] == '-' && runes[i+2] >= runes[i] {
			for c := runes[i]; c <= runes[i+2]; c++ {
				sb.WriteRune(c)
			}
			i += 2
			continue
		}
		sb.WriteRune(runes[i])
	}
	return sb.String()
}

func parseRepeat(body string) (lo, hi int, ok bool) {
	parts := strings.SplitN(body, ",", 2)
	lo, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || lo < 0 {
		return 0, 0, false
	}
	hi = lo
	if len(parts) == 2 {
		hi, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil || hi < lo {
			return 0, 0, false
		}
	}
	return lo, hi, true
}
