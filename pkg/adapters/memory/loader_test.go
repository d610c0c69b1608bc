package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertdigital/ml4ir/pkg/adapters/memory"
	"github.com/robertdigital/ml4ir/pkg/domain"
	"github.com/robertdigital/ml4ir/pkg/ports"
	contract "github.com/robertdigital/ml4ir/pkg/ports/tests"
	"github.com/robertdigital/ml4ir/pkg/registry"
	"github.com/robertdigital/ml4ir/pkg/signature"
)

func TestInMemorySource_Contract(t *testing.T) {
	data := map[string]string{
		"search":  "fields:\n  - name: query\n    required: true\n",
		"ranking": "fields:\n  - name: query_id\n",
	}

	setup := make(map[string]ports.Document)
	for model, doc := range data {
		setup[model] = ports.Document{Model: model, Format: signature.FormatYAML, Data: []byte(doc)}
	}

	contract.SignatureSourceContractTest(t, memory.NewFromYAML(data), setup)
}

func TestNewFromRegistries_RoundTrip(t *testing.T) {
	reg, err := registry.Build([]domain.FieldDescriptor{
		domain.MustFieldDescriptor("query", true),
		domain.MustFieldDescriptor("score", false, domain.WithDType(domain.DTypeFloat)),
	})
	require.NoError(t, err)

	store, err := memory.NewFromRegistries(map[string]*registry.FieldRegistry{"search": reg})
	require.NoError(t, err)

	doc, err := store.Fetch(t.Context(), "search")
	require.NoError(t, err)
	assert.Equal(t, signature.FormatJSON, doc.Format)

	descs, err := signature.Parse(doc.Data, doc.Format)
	require.NoError(t, err)
	rebuilt, err := registry.Build(descs)
	require.NoError(t, err)
	assert.Equal(t, reg.Descriptors(), rebuilt.Descriptors())

	_, err = memory.NewFromRegistries(map[string]*registry.FieldRegistry{"nil": nil})
	assert.Error(t, err)
}
