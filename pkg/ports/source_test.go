package ports_test

import (
	"context"
	"slices"
	"testing"

	"github.com/robertdigital/ml4ir/pkg/domain"
	"github.com/robertdigital/ml4ir/pkg/ports"
)

// MockStore is a minimal map-backed SignatureStore for testing purposes.
// It is not safe for concurrent use.
type MockStore struct {
	data map[string]ports.Document
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]ports.Document),
	}
}

func (m *MockStore) Put(ctx context.Context, doc ports.Document) error {
	// Copy to simulate serialization
	doc.Data = slices.Clone(doc.Data)
	m.data[doc.Model] = doc
	return nil
}

func (m *MockStore) Fetch(ctx context.Context, model string) (ports.Document, error) {
	doc, ok := m.data[model]
	if !ok {
		return ports.Document{}, domain.ErrSignatureNotFound
	}
	return doc, nil
}

func (m *MockStore) Delete(ctx context.Context, model string) error {
	delete(m.data, model)
	return nil
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	models := make([]string, 0, len(m.data))
	for name := range m.data {
		models = append(models, name)
	}
	slices.Sort(models)
	return models, nil
}

func TestSignatureStore_Contract(t *testing.T) {
	// The mock has no Watch, so the watch section of the contract is skipped.
	ports.RunSignatureStoreContract(t, NewMockStore())
}
