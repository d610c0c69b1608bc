package tests

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/robertdigital/ml4ir/pkg/domain"
	"github.com/robertdigital/ml4ir/pkg/ports"
	"github.com/robertdigital/ml4ir/pkg/signature"
)

// SignatureSourceContractTest is a reusable test suite that verifies if an
// adapter complies with ports.SignatureSource. The source must hold exactly
// the documents in setupData, keyed by model name.
func SignatureSourceContractTest(t *testing.T, source ports.SignatureSource, setupData map[string]ports.Document) {
	t.Helper()
	ctx := context.Background()

	// 1. Test Fetch (Success)
	t.Run("Fetch_Success", func(t *testing.T) {
		for model, expected := range setupData {
			doc, err := source.Fetch(ctx, model)
			if err != nil {
				t.Fatalf("unexpected error fetching %s: %v", model, err)
			}
			if doc.Model != model {
				t.Errorf("model mismatch: got %q, want %q", doc.Model, model)
			}
			if doc.Format != expected.Format {
				t.Errorf("format mismatch for %s: got %q, want %q", model, doc.Format, expected.Format)
			}
			if string(doc.Data) != string(expected.Data) {
				t.Errorf("content mismatch for %s. got %q, want %q", model, doc.Data, expected.Data)
			}
		}
	})

	// 2. Fetched documents must parse
	t.Run("Fetch_Parses", func(t *testing.T) {
		for model := range setupData {
			doc, err := source.Fetch(ctx, model)
			if err != nil {
				t.Fatalf("unexpected error fetching %s: %v", model, err)
			}
			if _, err := signature.Parse(doc.Data, doc.Format); err != nil {
				t.Errorf("document for %s does not parse: %v", model, err)
			}
		}
	})

	// 3. Test Fetch (NotFound)
	t.Run("Fetch_NotFound", func(t *testing.T) {
		_, err := source.Fetch(ctx, "non-existent-model")
		if !errors.Is(err, domain.ErrSignatureNotFound) {
			t.Errorf("expected ErrSignatureNotFound for non-existent model, got %v", err)
		}
	})

	// 4. Test List
	t.Run("List", func(t *testing.T) {
		models, err := source.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing models: %v", err)
		}

		if len(models) != len(setupData) {
			t.Errorf("expected %d models, got %d", len(setupData), len(models))
		}

		if !slices.IsSorted(models) {
			t.Errorf("expected sorted model names, got %v", models)
		}

		for model := range setupData {
			if !slices.Contains(models, model) {
				t.Errorf("model %s missing from list", model)
			}
		}
	})
}
