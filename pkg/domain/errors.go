package domain

import "errors"

// Configuration errors. Any of these aborts the activation of the model whose
// signature produced it.
var (
	// ErrInvalidDescriptor is returned when a field descriptor cannot be constructed (e.g. blank name).
	ErrInvalidDescriptor = errors.New("invalid field descriptor")

	// ErrDuplicateField is returned when two descriptors in one signature share a name.
	ErrDuplicateField = errors.New("duplicate field")

	// ErrEmptyRegistry is returned when a signature declares no fields at all.
	ErrEmptyRegistry = errors.New("empty field registry")

	// ErrUnsupportedDType is returned for a dtype outside of string, float and int64.
	ErrUnsupportedDType = errors.New("unsupported dtype")

	// ErrInvalidDocument is returned when a signature document cannot be decoded.
	ErrInvalidDocument = errors.New("invalid signature document")
)

// ErrInvalidMode is returned when a validation mode name cannot be parsed.
var ErrInvalidMode = errors.New("invalid validation mode")

// ErrModelNotFound is returned when no servable signature is published for a model.
var ErrModelNotFound = errors.New("model not found")

// ErrSignatureNotFound is returned by a signature source that has no document for a model.
var ErrSignatureNotFound = errors.New("signature not found")

// IsConfigError reports whether err originates from a malformed signature.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidDescriptor) ||
		errors.Is(err, ErrDuplicateField) ||
		errors.Is(err, ErrEmptyRegistry) ||
		errors.Is(err, ErrUnsupportedDType) ||
		errors.Is(err, ErrInvalidDocument)
}
