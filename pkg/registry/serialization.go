package registry

import (
	"encoding/json"
	"fmt"

	"github.com/robertdigital/ml4ir/pkg/domain"
)

type fieldJSON struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
	DType    string `json:"dtype,omitempty"`
}

// MarshalJSON serializes the registry as an ordered list of fields.
func (r *FieldRegistry) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}

	raw := make([]fieldJSON, len(r.fields))
	for i, d := range r.fields {
		raw[i] = fieldJSON{
			Name:     d.Name(),
			Required: d.Required(),
			DType:    string(d.DType()),
		}
	}

	return json.Marshal(raw)
}

// UnmarshalJSON rebuilds the registry from an ordered list of fields.
// Every construction rule of Build applies.
func (r *FieldRegistry) UnmarshalJSON(data []byte) error {
	if r == nil {
		return fmt.Errorf("registry: UnmarshalJSON on nil pointer")
	}

	var raw []fieldJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	descriptors := make([]domain.FieldDescriptor, 0, len(raw))
	for i, f := range raw {
		d, err := domain.NewFieldDescriptor(f.Name, f.Required, domain.WithDType(domain.DType(f.DType)))
		if err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		descriptors = append(descriptors, d)
	}

	built, err := Build(descriptors)
	if err != nil {
		return err
	}

	*r = *built
	return nil
}
