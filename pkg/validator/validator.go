package validator

import (
	"reflect"
	"slices"

	"github.com/robertdigital/ml4ir/pkg/domain"
	"github.com/robertdigital/ml4ir/pkg/registry"
)

// Validate checks payload against the registry.
//
// Required fields that are absent or nil are reported as MissingRequired in
// declaration order. In strict mode every undeclared key is then reported as
// UnknownField, sorted by name; in permissive mode undeclared keys are dropped.
// Absent optional fields are left out of the accepted payload; no defaults are
// invented here.
func Validate(reg *registry.FieldRegistry, payload domain.Payload, mode domain.Mode) Result {
	accepted := domain.NewOrderedPayload(reg.Len())
	var violations []domain.Violation

	for _, d := range reg.Fields() {
		value, ok := payload[d.Name()]
		if !ok || isNil(value) {
			if d.Required() {
				violations = append(violations, domain.MissingRequired(d.Name()))
			}
			continue
		}
		accepted.Append(d.Name(), value)
	}

	if mode.IsStrict() {
		for _, key := range unknownKeys(reg, payload) {
			violations = append(violations, domain.UnknownField(key))
		}
	}

	if len(violations) > 0 {
		return Reject(violations)
	}
	return Accept(accepted)
}

func unknownKeys(reg *registry.FieldRegistry, payload domain.Payload) []string {
	var unknown []string
	for key := range payload {
		if !reg.Contains(key) {
			unknown = append(unknown, key)
		}
	}
	slices.Sort(unknown)
	return unknown
}

// isNil treats typed nil pointers, maps and slices like an absent value.
func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
