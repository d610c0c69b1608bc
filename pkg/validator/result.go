package validator

import (
	"encoding/json"
	"slices"

	"github.com/robertdigital/ml4ir/pkg/domain"
)

// Result is the outcome of validating one payload: either an accepted payload
// or the full ordered list of violations. It is owned by the request that
// produced it.
type Result struct {
	accepted   *domain.OrderedPayload
	violations []domain.Violation
}

// Accept builds a successful result.
func Accept(p *domain.OrderedPayload) Result {
	return Result{accepted: p}
}

// Reject builds a failed result. violations must not be empty.
func Reject(violations []domain.Violation) Result {
	return Result{violations: violations}
}

// OK reports whether the payload was accepted.
func (r Result) OK() bool { return len(r.violations) == 0 }

// Accepted returns the payload restricted to declared fields, in declaration
// order. It is nil when the payload was rejected.
func (r Result) Accepted() *domain.OrderedPayload {
	if !r.OK() {
		return nil
	}
	return r.accepted
}

// Violations returns a copy of the violations in report order.
func (r Result) Violations() []domain.Violation {
	return slices.Clone(r.violations)
}

// Missing returns the names of required fields the payload did not supply.
func (r Result) Missing() []string {
	return r.fieldsOf(domain.ViolationMissingRequired)
}

// Unknown returns the undeclared keys reported in strict mode.
func (r Result) Unknown() []string {
	return r.fieldsOf(domain.ViolationUnknownField)
}

func (r Result) fieldsOf(kind domain.ViolationKind) []string {
	var out []string
	for _, v := range r.violations {
		if v.Kind == kind {
			out = append(out, v.Field)
		}
	}
	return out
}

// Err returns nil for an accepted payload, or an *AggregateError holding one
// *ViolationError per violation.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	errs := make([]error, len(r.violations))
	for i, v := range r.violations {
		errs[i] = &ViolationError{Field: v.Field, Kind: v.Kind}
	}
	return &AggregateError{Errors: errs}
}

type resultJSON struct {
	OK         bool                   `json:"ok"`
	Accepted   *domain.OrderedPayload `json:"accepted,omitempty"`
	Violations []domain.Violation     `json:"violations,omitempty"`
}

// MarshalJSON renders the result for response formatting.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		OK:         r.OK(),
		Accepted:   r.Accepted(),
		Violations: r.violations,
	})
}
