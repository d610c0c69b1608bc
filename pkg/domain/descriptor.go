package domain

import (
	"fmt"
	"strings"
)

// DType is the value type a model expects for a field.
type DType string

const (
	DTypeString DType = "string"
	DTypeFloat  DType = "float"
	DTypeInt64  DType = "int64"
)

// ParseDType converts a dtype name to a DType.
// An empty name means string. "float32" is accepted as an alias for float.
func ParseDType(s string) (DType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "string":
		return DTypeString, nil
	case "float", "float32":
		return DTypeFloat, nil
	case "int64":
		return DTypeInt64, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDType, s)
	}
}

// FieldDescriptor describes one input field of a model's serving signature.
// It is immutable once constructed; use NewFieldDescriptor to build one.
type FieldDescriptor struct {
	name     string
	required bool
	dtype    DType
}

// DescriptorOption configures optional attributes of a FieldDescriptor.
type DescriptorOption func(*FieldDescriptor)

// WithDType sets the value type of the field (default: string).
func WithDType(dtype DType) DescriptorOption {
	return func(d *FieldDescriptor) {
		d.dtype = dtype
	}
}

// NewFieldDescriptor creates a descriptor.
// Blank or whitespace-only names fail with ErrInvalidDescriptor.
func NewFieldDescriptor(name string, required bool, opts ...DescriptorOption) (FieldDescriptor, error) {
	if strings.TrimSpace(name) == "" {
		return FieldDescriptor{}, fmt.Errorf("%w: name must not be blank", ErrInvalidDescriptor)
	}

	d := FieldDescriptor{
		name:     name,
		required: required,
		dtype:    DTypeString,
	}
	for _, opt := range opts {
		opt(&d)
	}

	dtype, err := ParseDType(string(d.dtype))
	if err != nil {
		return FieldDescriptor{}, fmt.Errorf("%w: field %q: %w", ErrInvalidDescriptor, name, err)
	}
	d.dtype = dtype

	return d, nil
}

// MustFieldDescriptor is like NewFieldDescriptor but panics on error.
// Intended for static signatures in tests and examples.
func MustFieldDescriptor(name string, required bool, opts ...DescriptorOption) FieldDescriptor {
	d, err := NewFieldDescriptor(name, required, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the field name.
func (d FieldDescriptor) Name() string { return d.name }

// Required reports whether a payload must supply a non-nil value for the field.
func (d FieldDescriptor) Required() bool { return d.required }

// DType returns the value type the model expects.
func (d FieldDescriptor) DType() DType {
	if d.dtype == "" {
		return DTypeString
	}
	return d.dtype
}

// IsZero reports whether d was never constructed.
func (d FieldDescriptor) IsZero() bool { return d.name == "" }

// Key returns the identity of the descriptor within a registry.
func (d FieldDescriptor) Key() string { return d.name }

// Equal compares descriptors by name only.
func (d FieldDescriptor) Equal(other FieldDescriptor) bool {
	return d.name == other.name
}

func (d FieldDescriptor) String() string {
	if d.required {
		return fmt.Sprintf("%s:%s (required)", d.name, d.DType())
	}
	return fmt.Sprintf("%s:%s", d.name, d.DType())
}
