package features

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/robertdigital/ml4ir/pkg/domain"
	"github.com/robertdigital/ml4ir/pkg/registry"
)

// Column is one typed feature list, ready for the tensor-construction step.
// Exactly one of Strings, Floats or Ints is populated, according to DType.
type Column struct {
	Name    string       `json:"name"`
	DType   domain.DType `json:"dtype"`
	Strings []string     `json:"strings,omitempty"`
	Floats  []float32    `json:"floats,omitempty"`
	Ints    []int64      `json:"ints,omitempty"`
}

// Len returns the number of values in the column.
func (c Column) Len() int {
	switch c.DType {
	case domain.DTypeFloat:
		return len(c.Floats)
	case domain.DTypeInt64:
		return len(c.Ints)
	default:
		return len(c.Strings)
	}
}

// ConversionError reports a value that does not fit its field's dtype.
type ConversionError struct {
	Field string
	DType domain.DType
	Index int // element position for list values, -1 for scalars
	Value any
	Err   error
}

func (e *ConversionError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("field %q: element %d: cannot convert %T to %s: %v", e.Field, e.Index, e.Value, e.DType, e.Err)
	}
	return fmt.Sprintf("field %q: cannot convert %T to %s: %v", e.Field, e.Value, e.DType, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// Convert builds one column per accepted field, in declaration order.
// Every failing field is reported; the returned error joins one
// *ConversionError per failure.
func Convert(reg *registry.FieldRegistry, accepted *domain.OrderedPayload) ([]Column, error) {
	columns := make([]Column, 0, accepted.Len())
	var errs []error

	for _, d := range reg.Fields() {
		raw, ok := accepted.Get(d.Name())
		if !ok {
			continue
		}
		col, err := convertField(d, raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		columns = append(columns, col)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return columns, nil
}

func convertField(d domain.FieldDescriptor, raw any) (Column, error) {
	kind, err := KindOf(d.DType())
	if err != nil {
		return Column{}, &ConversionError{Field: d.Name(), DType: d.DType(), Index: -1, Value: raw, Err: err}
	}

	col := Column{Name: d.Name(), DType: kind.DType()}

	values, isList := elements(raw)
	for i, v := range values {
		idx := i
		if !isList {
			idx = -1
		}
		if _, nested := elements(v); nested {
			return Column{}, &ConversionError{Field: d.Name(), DType: d.DType(), Index: idx, Value: v, Err: errors.New("nested lists are not supported")}
		}
		if err := kind.Append(&col, v); err != nil {
			return Column{}, &ConversionError{Field: d.Name(), DType: d.DType(), Index: idx, Value: v, Err: err}
		}
	}
	return col, nil
}

// elements flattens one level of slice or array. Byte slices are scalars.
func elements(raw any) ([]any, bool) {
	if _, ok := raw.([]byte); ok {
		return []any{raw}, false
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{raw}, false
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
