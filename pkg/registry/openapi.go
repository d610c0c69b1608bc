package registry

import (
	"slices"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/robertdigital/ml4ir/pkg/domain"
)

// OpenAPISchema describes the registry as an OpenAPI object schema, so request
// layers can publish the model's input contract.
//
// Each field accepts either a scalar of its dtype or a list of them. Required
// fields are listed in declaration order. In strict mode the schema also
// forbids additional properties.
func OpenAPISchema(r *FieldRegistry, mode domain.Mode) *openapi3.Schema {
	s := openapi3.NewObjectSchema()
	for _, d := range r.Fields() {
		scalar := scalarSchema(d.DType())
		list := openapi3.NewArraySchema().WithItems(scalarSchema(d.DType()))
		s.WithProperty(d.Name(), openapi3.NewOneOfSchema(scalar, list))
	}

	s.Required = slices.Collect(r.RequiredFields())

	if mode.IsStrict() {
		s.WithoutAdditionalProperties()
	}
	return s
}

func scalarSchema(dtype domain.DType) *openapi3.Schema {
	switch dtype {
	case domain.DTypeFloat:
		return openapi3.NewFloat64Schema()
	case domain.DTypeInt64:
		return openapi3.NewInt64Schema()
	default:
		return openapi3.NewStringSchema()
	}
}
