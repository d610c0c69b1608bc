package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertdigital/ml4ir/pkg/domain"
	"github.com/robertdigital/ml4ir/pkg/registry"
)

func TestOpenAPISchema(t *testing.T) {
	reg, err := registry.Build([]domain.FieldDescriptor{
		domain.MustFieldDescriptor("query", true),
		domain.MustFieldDescriptor("user_id", false, domain.WithDType(domain.DTypeInt64)),
		domain.MustFieldDescriptor("price", true, domain.WithDType(domain.DTypeFloat)),
	})
	require.NoError(t, err)

	t.Run("permissive", func(t *testing.T) {
		s := registry.OpenAPISchema(reg, domain.ModePermissive)
		require.NotNil(t, s.Type)
		assert.True(t, s.Type.Is("object"))
		assert.Equal(t, []string{"query", "price"}, s.Required)
		assert.Len(t, s.Properties, 3)
		assert.Nil(t, s.AdditionalProperties.Has)

		uid := s.Properties["user_id"].Value
		require.Len(t, uid.OneOf, 2)
		assert.True(t, uid.OneOf[0].Value.Type.Is("integer"))
		assert.True(t, uid.OneOf[1].Value.Type.Is("array"))

		assert.NoError(t, s.VisitJSON(map[string]any{"query": "shoes", "price": 9.5, "extra": "x"}))
		assert.Error(t, s.VisitJSON(map[string]any{"price": 9.5}))
	})

	t.Run("strict", func(t *testing.T) {
		s := registry.OpenAPISchema(reg, domain.ModeStrict)
		require.NotNil(t, s.AdditionalProperties.Has)
		assert.False(t, *s.AdditionalProperties.Has)
		assert.Error(t, s.VisitJSON(map[string]any{"query": "shoes", "price": 9.5, "extra": "x"}))
	})
}
