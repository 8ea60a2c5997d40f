package loader

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// decodeJSONList decodes either a bare JSON array or an object wrapping
// the array under key, e.g. {"venues": [...]}.
func decodeJSONList[T any](data []byte, key string) ([]T, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, err
		}
		raw, ok := wrapped[key]
		if !ok {
			return nil, fmt.Errorf("object has no %q array", key)
		}
		data = raw
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeJSONCList strips comments and trailing commas first.
func decodeJSONCList[T any](data []byte, key string) ([]T, error) {
	return decodeJSONList[T](jsonc.ToJSON(data), key)
}

// decodeYAMLList accepts a top-level sequence or a mapping holding the
// sequence under key.
func decodeYAMLList[T any](data []byte, key string) ([]T, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	node := doc.Content[0]
	if node.Kind == yaml.MappingNode {
		var found *yaml.Node
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == key {
				found = node.Content[i+1]
				break
			}
		}
		if found == nil {
			return nil, fmt.Errorf("mapping has no %q sequence", key)
		}
		node = found
	}
	var out []T
	if err := node.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
