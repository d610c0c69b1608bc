package validator

import (
	"errors"
	"fmt"

	"github.com/robertdigital/ml4ir/pkg/domain"
)

// ViolationError is the error form of a single domain.Violation.
type ViolationError struct {
	Field string
	Kind  domain.ViolationKind
}

func (e *ViolationError) Error() string {
	return domain.Violation{Field: e.Field, Kind: e.Kind}.String()
}

// AggregateError represents every violation of one payload.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes the individual violations to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
