package config

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Ordered is a string keyed map that remembers insertion order. It is used for
// every style mapping so that generated declarations follow authoring order.
type Ordered[V any] struct {
	keys   []string
	values map[string]V
}

// NewOrdered builds an Ordered map from alternating key/value pairs.
func NewOrdered[V any](pairs ...Pair[V]) *Ordered[V] {
	m := &Ordered[V]{}
	for _, p := range pairs {
		m.Set(p.Key, p.Value)
	}
	return m
}

// Pair is one key/value entry of an Ordered map.
type Pair[V any] struct {
	Key   string
	Value V
}

// P is shorthand for building a Pair.
func P[V any](key string, value V) Pair[V] {
	return Pair[V]{Key: key, Value: value}
}

// Set inserts or replaces key. A replaced key keeps its original position.
func (m *Ordered[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *Ordered[V]) Get(key string) (V, bool) {
	var zero V
	if m == nil || m.values == nil {
		return zero, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *Ordered[V]) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Len returns the number of entries.
func (m *Ordered[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Pairs returns the entries in insertion order.
func (m *Ordered[V]) Pairs() []Pair[V] {
	if m == nil {
		return nil
	}
	out := make([]Pair[V], 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, Pair[V]{Key: k, Value: m.values[k]})
	}
	return out
}

// Extend copies every entry of other into m, overriding matching keys.
func (m *Ordered[V]) Extend(other *Ordered[V]) {
	for _, p := range other.Pairs() {
		m.Set(p.Key, p.Value)
	}
}

// Clone returns a shallow copy.
func (m *Ordered[V]) Clone() *Ordered[V] {
	if m == nil {
		return nil
	}
	out := &Ordered[V]{}
	out.Extend(m)
	return out
}

// UnmarshalYAML decodes a YAML mapping, keeping key order.
func (m *Ordered[V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var v V
		if err := node.Content[i+1].Decode(&v); err != nil {
			return fmt.Errorf("key %q: %w", node.Content[i].Value, err)
		}
		m.Set(node.Content[i].Value, v)
	}
	return nil
}

// MarshalYAML encodes the map as a YAML mapping in insertion order.
func (m *Ordered[V]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, p := range m.Pairs() {
		var value yaml.Node
		if err := value.Encode(p.Value); err != nil {
			return nil, fmt.Errorf("key %q: %w", p.Key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Key},
			&value,
		)
	}
	return node, nil
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (m *Ordered[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range m.Pairs() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(p.Value)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", p.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
