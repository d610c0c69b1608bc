package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Payload is the caller-supplied mapping of field name to raw value for one request.
type Payload map[string]any

// OrderedPayload is a payload whose keys follow a signature's declaration order.
// It is filled once by its producer and is read-only afterwards.
type OrderedPayload struct {
	keys   []string
	values map[string]any
}

// NewOrderedPayload creates an empty payload with room for size fields.
func NewOrderedPayload(size int) *OrderedPayload {
	return &OrderedPayload{
		keys:   make([]string, 0, size),
		values: make(map[string]any, size),
	}
}

// Append adds a field at the end of the order. Re-appending a key only replaces its value.
func (p *OrderedPayload) Append(name string, value any) {
	if _, exists := p.values[name]; !exists {
		p.keys = append(p.keys, name)
	}
	p.values[name] = value
}

// Len returns the number of fields.
func (p *OrderedPayload) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Get returns the value for name.
func (p *OrderedPayload) Get(name string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.values[name]
	return v, ok
}

// Keys returns a copy of the field names in order.
func (p *OrderedPayload) Keys() []string {
	if p == nil {
		return nil
	}
	return slices.Clone(p.keys)
}

// All iterates fields in order.
func (p *OrderedPayload) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if p == nil {
			return
		}
		for _, k := range p.keys {
			if !yield(k, p.values[k]) {
				return
			}
		}
	}
}

// Map returns an unordered copy.
func (p *OrderedPayload) Map() map[string]any {
	if p == nil {
		return map[string]any{}
	}
	return maps.Clone(p.values)
}

// MarshalJSON writes the fields as a JSON object in order.
func (p *OrderedPayload) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p.values[k])
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
