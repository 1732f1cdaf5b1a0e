// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Payload is an example request, response or event body. It keeps the
// decoded YAML tree so that JSON output preserves the key order of the
// data file, which a map[string]any would lose.
type Payload struct {
	node *yaml.Node
}

// NewPayload builds a payload from a YAML or JSON document.
func NewPayload(src string) (*Payload, error) {
	var n yaml.Node
	if err := yaml.Unmarshal([]byte(src), &n); err != nil {
		return nil, fmt.Errorf("failed to parse payload: %w", err)
	}
	p := &Payload{}
	if err := p.UnmarshalYAML(&n); err != nil {
		return nil, err
	}
	return p, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Payload) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.DocumentNode {
		if len(value.Content) == 0 {
			p.node = nil
			return nil
		}
		value = value.Content[0]
	}
	p.node = value
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (p Payload) MarshalYAML() (any, error) {
	return p.node, nil
}

// MarshalJSON implements json.Marshaler. Keys are emitted in source order.
func (p Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeNode(&buf, p.node); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// IsZero reports whether the payload carries no value.
func (p *Payload) IsZero() bool {
	return p == nil || p.node == nil
}

// Pretty returns the payload as JSON indented by two spaces.
func (p *Payload) Pretty() (string, error) {
	if p.IsZero() {
		return "null", nil
	}
	raw, err := p.MarshalJSON()
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return "", fmt.Errorf("failed to indent payload: %w", err)
	}
	return out.String(), nil
}

func encodeNode(buf *bytes.Buffer, n *yaml.Node) error {
	if n == nil {
		buf.WriteString("null")
		return nil
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return encodeNode(buf, n.Content[0])

	case yaml.AliasNode:
		return encodeNode(buf, n.Alias)

	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, n.Content[i].Value); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := encodeNode(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeNode(buf, c); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case yaml.ScalarNode:
		return encodeScalar(buf, n)
	}

	return fmt.Errorf("unsupported yaml node kind %d at line %d", n.Kind, n.Line)
}

func encodeScalar(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.ShortTag() {
	case "!!null":
		buf.WriteString("null")
		return nil
	case "!!bool", "!!int", "!!float":
		var v any
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("failed to decode scalar at line %d: %w", n.Line, err)
		}
		// JSON has no infinity or NaN; keep the source text.
		if f, ok := v.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
			return encodeString(buf, n.Value)
		}
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode scalar at line %d: %w", n.Line, err)
		}
		buf.Write(b)
		return nil
	}
	return encodeString(buf, n.Value)
}

// encodeString writes s as a JSON string without HTML escaping; the
// rendered page escapes at template time.
func encodeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
