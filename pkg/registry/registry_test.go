package registry_test

import (
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertdigital/ml4ir/pkg/domain"
	"github.com/robertdigital/ml4ir/pkg/registry"
)

func descriptors(t *testing.T, specs ...any) []domain.FieldDescriptor {
	t.Helper()
	require.Zero(t, len(specs)%2, "specs must be name/required pairs")

	out := make([]domain.FieldDescriptor, 0, len(specs)/2)
	for i := 0; i < len(specs); i += 2 {
		d, err := domain.NewFieldDescriptor(specs[i].(string), specs[i+1].(bool))
		require.NoError(t, err)
		out = append(out, d)
	}
	return out
}

func TestBuild_LookupEveryName(t *testing.T) {
	for _, n := range []int{1, 2, 7, 64} {
		t.Run(fmt.Sprintf("%d fields", n), func(t *testing.T) {
			var ds []domain.FieldDescriptor
			for i := 0; i < n; i++ {
				ds = append(ds, domain.MustFieldDescriptor(fmt.Sprintf("f%03d", i), i%2 == 0))
			}

			reg, err := registry.Build(ds)
			require.NoError(t, err)
			assert.Equal(t, n, reg.Len())

			for _, d := range ds {
				got, ok := reg.Lookup(d.Name())
				require.True(t, ok, "Lookup(%q) should succeed", d.Name())
				assert.Equal(t, d.Name(), got.Name())
				assert.Equal(t, d.Required(), got.Required())
			}

			_, ok := reg.Lookup("missing")
			assert.False(t, ok)
		})
	}
}

func TestBuild_Empty(t *testing.T) {
	_, err := registry.Build(nil)
	assert.ErrorIs(t, err, domain.ErrEmptyRegistry)

	_, err = registry.Build([]domain.FieldDescriptor{})
	assert.ErrorIs(t, err, domain.ErrEmptyRegistry)
}

func TestBuild_DuplicateAnywhere(t *testing.T) {
	base := []string{"a", "b", "c", "d"}

	for dupAt := 0; dupAt <= len(base); dupAt++ {
		for _, dupName := range base {
			names := slices.Insert(slices.Clone(base), dupAt, dupName)
			t.Run(fmt.Sprintf("%s at %d", dupName, dupAt), func(t *testing.T) {
				var ds []domain.FieldDescriptor
				for _, n := range names {
					ds = append(ds, domain.MustFieldDescriptor(n, false))
				}
				_, err := registry.Build(ds)
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrDuplicateField)
				assert.Contains(t, err.Error(), fmt.Sprintf("%q", dupName))
			})
		}
	}
}

func TestBuild_DuplicateIgnoresRequiredFlag(t *testing.T) {
	_, err := registry.Build(descriptors(t, "query", true, "query", false))
	assert.ErrorIs(t, err, domain.ErrDuplicateField)
}

func TestBuild_ZeroDescriptor(t *testing.T) {
	_, err := registry.Build([]domain.FieldDescriptor{{}})
	assert.ErrorIs(t, err, domain.ErrInvalidDescriptor)
}

func TestBuild_CopiesInput(t *testing.T) {
	ds := descriptors(t, "query", true, "user_id", false)
	reg, err := registry.Build(ds)
	require.NoError(t, err)

	ds[0] = domain.MustFieldDescriptor("mutated", false)
	assert.Equal(t, []string{"query", "user_id"}, reg.Names())
}

func TestRequiredFields_OrderAndRestart(t *testing.T) {
	reg, err := registry.Build(descriptors(t,
		"query", true,
		"user_id", false,
		"domain", true,
		"locale", false,
		"rank", true,
	))
	require.NoError(t, err)

	want := []string{"query", "domain", "rank"}
	assert.Equal(t, want, slices.Collect(reg.RequiredFields()))
	// The sequence is restartable.
	assert.Equal(t, want, slices.Collect(reg.RequiredFields()))
	assert.Equal(t, 3, reg.RequiredCount())

	// Early break does not disturb later iterations.
	for name := range reg.RequiredFields() {
		assert.Equal(t, "query", name)
		break
	}
	assert.Equal(t, want, slices.Collect(reg.RequiredFields()))
}

func TestFields_DeclarationOrder(t *testing.T) {
	reg, err := registry.Build(descriptors(t, "z", false, "a", true, "m", false))
	require.NoError(t, err)

	var got []string
	for i, d := range reg.Fields() {
		assert.Equal(t, len(got), i)
		got = append(got, d.Name())
	}
	assert.Equal(t, []string{"z", "a", "m"}, got)
	assert.True(t, reg.Contains("a"))
	assert.False(t, reg.Contains("b"))
}

func TestRegistry_ConcurrentReads(t *testing.T) {
	reg, err := registry.Build(descriptors(t, "query", true, "user_id", false))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _ = reg.Lookup("query")
				_ = slices.Collect(reg.RequiredFields())
			}
		}()
	}
	wg.Wait()
}
