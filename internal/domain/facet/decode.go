package facet

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Decoder fills a facet input struct from some encoded form.
type Decoder func(v any) error

// JSON decodes raw JSON. Unknown fields are ignored; an empty body decodes to
// the zero input.
func JSON(raw []byte) Decoder {
	return func(v any) error {
		if len(bytes.TrimSpace(raw)) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, v); err != nil {
			return fmt.Errorf("%w: %w", ErrDecodeInput, err)
		}
		return nil
	}
}

// YAML decodes a YAML document with the same field names as JSON.
func YAML(raw []byte) Decoder {
	return func(v any) error {
		if err := yaml.Unmarshal(raw, v); err != nil {
			return fmt.Errorf("%w: %w", ErrDecodeInput, err)
		}
		return nil
	}
}

// Node decodes an already parsed YAML node, such as one item of a batch file.
func Node(n *yaml.Node) Decoder {
	return func(v any) error {
		if n == nil || n.Kind == 0 {
			return nil
		}
		if err := n.Decode(v); err != nil {
			return fmt.Errorf("%w: %w", ErrDecodeInput, err)
		}
		return nil
	}
}
