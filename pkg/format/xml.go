package format

import (
	"fmt"
	"sort"

	"github.com/beevik/etree"

	"github.com/nick-vanduijn/synthex/pkg/generate"
)

// XML renders the envelope's data as nested XML: one element per key,
// array elements wrapped in repeated <item> elements. Map keys are
// emitted in sorted order so output is stable.
func XML(env *generate.Envelope) (string, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rootName := env.Schema
	if rootName == "" {
		rootName = "response"
	}
	root := doc.CreateElement(rootName)
	buildXML(root, env.Data)

	doc.Indent(2)
	return doc.WriteToString()
}

func buildXML(parent *etree.Element, v any) {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			child := parent.CreateElement(k)
			buildXML(child, val[k])
		}
	case []any:
		for _, item := range val {
			child := parent.CreateElement("item")
			buildXML(child, item)
		}
	case nil:
		// Empty element stands for null.
	default:
		parent.SetText(fmt.Sprintf("%v", val))
	}
}
