package generate

import (
	"fmt"
	"regexp"
	"strings"
)

// templateRegex matches {{key}} placeholders with optional whitespace.
var templateRegex = regexp.MustCompile(`\{\{\s*([^}]+?)\s*\}\}`)

// interpolate replaces every {{key}} in tmpl with the value from the
// current-level data, falling back to the global context. Unknown keys
// resolve to the empty string so templates degrade instead of failing.
func interpolate(tmpl string, current, global map[string]any) string {
	return templateRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		sub := templateRegex.FindStringSubmatch(match)
		if len(sub) < 2 {
			return match
		}
		key := strings.TrimSpace(sub[1])
		if v, ok := current[key]; ok {
			return stringify(v)
		}
		if v, ok := global[key]; ok {
			return stringify(v)
		}
		return ""
	})
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
