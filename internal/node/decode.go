package node

// decode.go — order-preserving decoding of object trees.
//
// Model payloads are schema-less: beyond "id" and "type", every key is a
// dynamic property. Decoding goes through the JSON token stream (rather
// than map[string]any) so property order survives — ambiguous parameter
// lookups must resolve by first appearance, and Go maps would randomize
// that.

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// DecodeJSON reads a JSON object tree from r. Nested JSON objects become
// *Object values; arrays become []any; numbers become float64.
func DecodeJSON(r io.Reader) (*Object, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("decode model: expected object, got %v", tok)
	}
	obj, err := decodeJSONObject(dec)
	if err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	return obj, nil
}

// decodeJSONObject consumes the members of an already-opened JSON object,
// including its closing brace.
func decodeJSONObject(dec *json.Decoder) (*Object, error) {
	obj := &Object{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", keyTok)
		}
		value, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, value)
		switch key {
		case "id":
			if s, ok := value.(string); ok {
				obj.ID = s
			}
		case "type":
			if s, ok := value.(string); ok {
				obj.Type = s
			}
		}
	}
	// Closing '}'.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			var list []any
			for dec.More() {
				item, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, item)
			}
			// Closing ']'.
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return list, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	default:
		// string, float64, bool, or nil.
		return tok, nil
	}
}

// ---------------------------------------------------------------------------
// YAML
// ---------------------------------------------------------------------------

// DecodeYAML decodes a YAML object tree. Mappings become *Object values
// (yaml.Node preserves key order), sequences become []any.
func DecodeYAML(data []byte) (*Object, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	n := &doc
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil, fmt.Errorf("decode model: empty document")
		}
		n = n.Content[0]
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("decode model: expected mapping at document root")
	}
	obj, err := yamlObject(n)
	if err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	return obj, nil
}

func yamlObject(n *yaml.Node) (*Object, error) {
	obj := &Object{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		value, err := yamlValue(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		obj.Set(key, value)
		switch key {
		case "id":
			if s, ok := value.(string); ok {
				obj.ID = s
			}
		case "type":
			if s, ok := value.(string); ok {
				obj.Type = s
			}
		}
	}
	return obj, nil
}

func yamlValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.MappingNode:
		return yamlObject(n)
	case yaml.SequenceNode:
		var list []any
		for _, item := range n.Content {
			v, err := yamlValue(item)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.AliasNode:
		return yamlValue(n.Alias)
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}
