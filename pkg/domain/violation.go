package domain

import "fmt"

// ViolationKind classifies why a payload failed its signature.
type ViolationKind string

const (
	// ViolationMissingRequired marks a required field that is absent or nil.
	ViolationMissingRequired ViolationKind = "missing_required"
	// ViolationUnknownField marks a payload key the signature does not declare (strict mode only).
	ViolationUnknownField ViolationKind = "unknown_field"
)

// Violation is one way a payload failed to satisfy a signature.
type Violation struct {
	Field string        `json:"field"`
	Kind  ViolationKind `json:"kind"`
}

// MissingRequired builds a ViolationMissingRequired for field.
func MissingRequired(field string) Violation {
	return Violation{Field: field, Kind: ViolationMissingRequired}
}

// UnknownField builds a ViolationUnknownField for field.
func UnknownField(field string) Violation {
	return Violation{Field: field, Kind: ViolationUnknownField}
}

func (v Violation) String() string {
	switch v.Kind {
	case ViolationMissingRequired:
		return fmt.Sprintf("missing required field %q", v.Field)
	case ViolationUnknownField:
		return fmt.Sprintf("unknown field %q", v.Field)
	default:
		return fmt.Sprintf("field %q: %s", v.Field, v.Kind)
	}
}
