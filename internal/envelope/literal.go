package envelope

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// LiteralString renders as a YAML literal block scalar ("|") when it spans
// multiple lines, per spec.md §4.H "Output writer" — otherwise as a plain
// scalar, since a single-line block scalar is needless noise. JSON
// marshaling is unaffected; it's always a plain string.
type LiteralString string

func (s LiteralString) MarshalYAML() (interface{}, error) {
	if !strings.Contains(string(s), "\n") {
		return string(s), nil
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(s), Style: yaml.LiteralStyle}, nil
}

func (s LiteralString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}
