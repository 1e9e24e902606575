package format

import (
	"fmt"
	"strings"

	"github.com/ohler55/ojg/oj"

	"github.com/nick-vanduijn/synthex/pkg/generate"
)

// Markdown renders the envelope as a report: a data block and a metadata
// block, both as fenced JSON.
func Markdown(env *generate.Envelope) (string, error) {
	data, err := oj.Marshal(env.Data, 2)
	if err != nil {
		return "", err
	}
	meta, err := oj.Marshal(env.Metadata, 2)
	if err != nil {
		return "", err
	}

	title := env.Schema
	if title == "" {
		title = "response"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	sb.WriteString("## Data\n\n```json\n")
	sb.Write(data)
	sb.WriteString("\n```\n\n## Metadata\n\n```json\n")
	sb.Write(meta)
	sb.WriteString("\n```\n")
	if env.Tokens != nil {
		fmt.Fprintf(&sb, "\nTokens: %d prompt, %d completion, %d total. Finish: %s\n",
			env.Tokens.Prompt, env.Tokens.Completion, env.Tokens.Total, env.FinishReason)
	}
	return sb.String(), nil
}
