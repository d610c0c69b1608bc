package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertdigital/ml4ir/pkg/domain"
	"github.com/robertdigital/ml4ir/pkg/signature"
)

// RunSignatureStoreContract runs a suite of tests to verify that a
// SignatureStore implementation adheres to the defined interface contract.
// The store must start empty.
func RunSignatureStoreContract(t *testing.T, store SignatureStore) {
	ctx := context.Background()
	model := "contract-" + time.Now().Format("20060102150405")
	doc := Document{
		Model:  model,
		Format: signature.FormatYAML,
		Data:   []byte("fields:\n  - name: query\n    required: true\n"),
	}

	t.Run("Put and Fetch", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, doc), "Put should not return error")

		got, err := store.Fetch(ctx, model)
		require.NoError(t, err, "Fetch should not return error")
		assert.Equal(t, doc.Model, got.Model)
		assert.Equal(t, doc.Format, got.Format)
		assert.Equal(t, string(doc.Data), string(got.Data))
	})

	t.Run("Put replaces", func(t *testing.T) {
		updated := doc
		updated.Format = signature.FormatJSON
		updated.Data = []byte(`{"fields":[{"name":"query"}]}`)
		require.NoError(t, store.Put(ctx, updated))

		got, err := store.Fetch(ctx, model)
		require.NoError(t, err)
		assert.Equal(t, signature.FormatJSON, got.Format)
		assert.Equal(t, string(updated.Data), string(got.Data))
	})

	t.Run("Fetch Non-Existent", func(t *testing.T) {
		_, err := store.Fetch(ctx, "non-existent-"+model)
		assert.ErrorIs(t, err, domain.ErrSignatureNotFound)
	})

	t.Run("List", func(t *testing.T) {
		other := Document{Model: "a-" + model, Format: signature.FormatYAML, Data: doc.Data}
		require.NoError(t, store.Put(ctx, other))

		models, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{other.Model, model}, models, "List should be sorted")

		require.NoError(t, store.Delete(ctx, other.Model))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, model), "Delete should not return error")

		_, err := store.Fetch(ctx, model)
		assert.ErrorIs(t, err, domain.ErrSignatureNotFound, "Fetch after Delete should return ErrSignatureNotFound")

		models, err := store.List(ctx)
		require.NoError(t, err)
		assert.NotContains(t, models, model)

		assert.NoError(t, store.Delete(ctx, model), "Deleting twice should not fail")
	})

	watchable, ok := store.(Watchable)
	if !ok {
		return
	}

	t.Run("Watch", func(t *testing.T) {
		wctx, cancel := context.WithCancel(ctx)
		defer cancel()

		changes, err := watchable.Watch(wctx)
		require.NoError(t, err)

		require.NoError(t, store.Put(ctx, doc))
		assert.Equal(t, model, receive(t, changes))

		require.NoError(t, store.Delete(ctx, model))
		assert.Equal(t, model, receive(t, changes))

		cancel()
		assert.Eventually(t, func() bool {
			select {
			case _, open := <-changes:
				return !open
			default:
				return false
			}
		}, 2*time.Second, 10*time.Millisecond, "channel should close after cancel")
	})
}

func receive(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case name := <-ch:
		return name
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change notification")
		return ""
	}
}
