// Package registry holds the immutable, ordered set of field descriptors that
// forms one model's serving signature.
package registry

import (
	"fmt"
	"iter"

	"github.com/robertdigital/ml4ir/pkg/domain"
)

// FieldRegistry is one model's expected input contract.
// It is read-only after Build and safe for concurrent use without locking.
// A reloaded signature produces a new FieldRegistry; an existing one is never mutated.
type FieldRegistry struct {
	fields   []domain.FieldDescriptor
	index    map[string]int
	required []int
}

// Build creates a registry from descriptors in declaration order.
// It fails with ErrEmptyRegistry for an empty sequence and ErrDuplicateField
// when two descriptors share a name.
func Build(descriptors []domain.FieldDescriptor) (*FieldRegistry, error) {
	if len(descriptors) == 0 {
		return nil, domain.ErrEmptyRegistry
	}

	r := &FieldRegistry{
		fields: make([]domain.FieldDescriptor, 0, len(descriptors)),
		index:  make(map[string]int, len(descriptors)),
	}

	for i, d := range descriptors {
		if d.IsZero() {
			return nil, fmt.Errorf("%w: entry %d was never constructed", domain.ErrInvalidDescriptor, i)
		}
		if first, dup := r.index[d.Key()]; dup {
			return nil, fmt.Errorf("%w: %q declared at positions %d and %d", domain.ErrDuplicateField, d.Name(), first, i)
		}
		r.index[d.Key()] = i
		r.fields = append(r.fields, d)
		if d.Required() {
			r.required = append(r.required, i)
		}
	}

	return r, nil
}

// Lookup returns the descriptor declared under name.
func (r *FieldRegistry) Lookup(name string) (domain.FieldDescriptor, bool) {
	i, ok := r.index[name]
	if !ok {
		return domain.FieldDescriptor{}, false
	}
	return r.fields[i], true
}

// Contains reports whether name is declared.
func (r *FieldRegistry) Contains(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Len returns the number of declared fields.
func (r *FieldRegistry) Len() int { return len(r.fields) }

// RequiredCount returns the number of required fields.
func (r *FieldRegistry) RequiredCount() int { return len(r.required) }

// Fields iterates descriptors in declaration order.
func (r *FieldRegistry) Fields() iter.Seq2[int, domain.FieldDescriptor] {
	return func(yield func(int, domain.FieldDescriptor) bool) {
		for i, d := range r.fields {
			if !yield(i, d) {
				return
			}
		}
	}
}

// RequiredFields iterates the names of required fields in declaration order.
// The sequence is lazy and can be ranged over any number of times.
func (r *FieldRegistry) RequiredFields() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, i := range r.required {
			if !yield(r.fields[i].Name()) {
				return
			}
		}
	}
}

// Names returns all field names in declaration order.
func (r *FieldRegistry) Names() []string {
	names := make([]string, len(r.fields))
	for i, d := range r.fields {
		names[i] = d.Name()
	}
	return names
}

// Descriptors returns a copy of the declared descriptors.
func (r *FieldRegistry) Descriptors() []domain.FieldDescriptor {
	out := make([]domain.FieldDescriptor, len(r.fields))
	copy(out, r.fields)
	return out
}
