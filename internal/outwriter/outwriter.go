// Package outwriter implements spec.md §4.H "Output writer": a single pass
// over the assembled OutputEnvelope, emitted as YAML (block scalars for
// multi-line content, via envelope.LiteralString) or JSON (camelCase keys,
// the struct tags already carry both). Grounded on the same yaml.v3 usage
// the reference project's updater package uses for literal block scalars.
package outwriter

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"codescan/internal/envelope"
)

// Format selects the serialization the envelope is written in.
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
)

// ParseFormat maps a --format flag value to a Format, defaulting to YAML
// for an unrecognized value rather than failing — the CLI layer validates
// the flag up front and only calls this once it already knows the value is
// "yaml", "json" or empty (unset).
func ParseFormat(s string) Format {
	if s == "json" {
		return JSON
	}
	return YAML
}

// Write serializes env to w in the requested format, one pass, no partial
// writes on error (both encoders buffer internally before writing out).
func Write(w io.Writer, env *envelope.OutputEnvelope, format Format) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(env)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		if err := enc.Encode(env); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return nil
	}
}
