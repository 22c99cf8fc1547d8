package sources

import (
	"github.com/goccy/go-yaml"

	pkgerrors "github.com/agentstation/snipdeck/pkg/errors"
	"github.com/agentstation/snipdeck/pkg/snippets"
)

// Parse decodes a YAML array of snippets. Unknown fields are rejected.
func Parse(data []byte, file string) ([]snippets.Snippet, error) {
	var list []snippets.Snippet
	if err := yaml.UnmarshalWithOptions(data, &list, yaml.DisallowUnknownField()); err != nil {
		return nil, pkgerrors.WrapParse("yaml", file, err)
	}
	if list == nil {
		list = []snippets.Snippet{}
	}
	return list, nil
}

// Marshal encodes snippets as a YAML array in the module layout.
func Marshal(list []snippets.Snippet) ([]byte, error) {
	return yaml.MarshalWithOptions(list, yaml.Indent(2), yaml.IndentSequence(false), yaml.UseLiteralStyleIfMultiline(true))
}
