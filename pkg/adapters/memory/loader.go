package memory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/robertdigital/ml4ir/pkg/ports"
	"github.com/robertdigital/ml4ir/pkg/registry"
	"github.com/robertdigital/ml4ir/pkg/signature"
)

// NewFromYAML creates a store holding one YAML document per model.
func NewFromYAML(docs map[string]string) *Store {
	s := NewStore()
	for model, data := range docs {
		s.data[model] = ports.Document{Model: model, Format: signature.FormatYAML, Data: []byte(data)}
	}
	return s
}

// NewFromRegistries creates a store from already built registries.
// Each registry is rendered as a flat JSON signature, improving DX for tests.
func NewFromRegistries(regs map[string]*registry.FieldRegistry) (*Store, error) {
	s := NewStore()
	for model, reg := range regs {
		if reg == nil {
			return nil, fmt.Errorf("registry for %s is nil", model)
		}
		data, err := json.Marshal(struct {
			Fields *registry.FieldRegistry `json:"fields"`
		}{reg})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal registry %s: %w", model, err)
		}
		if err := s.Put(context.Background(), ports.Document{Model: model, Format: signature.FormatJSON, Data: data}); err != nil {
			return nil, err
		}
	}
	return s, nil
}
