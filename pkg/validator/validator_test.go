package validator_test

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertdigital/ml4ir/pkg/domain"
	"github.com/robertdigital/ml4ir/pkg/registry"
	"github.com/robertdigital/ml4ir/pkg/validator"
)

func searchRegistry(t *testing.T) *registry.FieldRegistry {
	t.Helper()
	reg, err := registry.Build([]domain.FieldDescriptor{
		domain.MustFieldDescriptor("query", true),
		domain.MustFieldDescriptor("user_id", false),
	})
	require.NoError(t, err)
	return reg
}

func acceptedMap(t *testing.T, res validator.Result) map[string]any {
	t.Helper()
	require.True(t, res.OK(), "expected acceptance, got %v", res.Violations())
	return res.Accepted().Map()
}

func TestValidate_SearchScenario(t *testing.T) {
	reg := searchRegistry(t)

	tests := []struct {
		name           string
		payload        domain.Payload
		mode           domain.Mode
		wantAccepted   map[string]any
		wantViolations []domain.Violation
	}{
		{
			name:         "required only",
			payload:      domain.Payload{"query": "shoes"},
			mode:         domain.ModePermissive,
			wantAccepted: map[string]any{"query": "shoes"},
		},
		{
			name:           "missing required",
			payload:        domain.Payload{"user_id": "42"},
			mode:           domain.ModePermissive,
			wantViolations: []domain.Violation{domain.MissingRequired("query")},
		},
		{
			name:           "unknown field strict",
			payload:        domain.Payload{"query": "shoes", "extra": "x"},
			mode:           domain.ModeStrict,
			wantViolations: []domain.Violation{domain.UnknownField("extra")},
		},
		{
			name:         "unknown field permissive",
			payload:      domain.Payload{"query": "shoes", "extra": "x"},
			mode:         domain.ModePermissive,
			wantAccepted: map[string]any{"query": "shoes"},
		},
		{
			name:           "null required value",
			payload:        domain.Payload{"query": nil, "user_id": "42"},
			mode:           domain.ModePermissive,
			wantViolations: []domain.Violation{domain.MissingRequired("query")},
		},
		{
			name:         "null optional value is dropped",
			payload:      domain.Payload{"query": "shoes", "user_id": nil},
			mode:         domain.ModeStrict,
			wantAccepted: map[string]any{"query": "shoes"},
		},
		{
			name:    "missing and unknown together",
			payload: domain.Payload{"zz": 1, "aa": 2},
			mode:    domain.ModeStrict,
			wantViolations: []domain.Violation{
				domain.MissingRequired("query"),
				domain.UnknownField("aa"),
				domain.UnknownField("zz"),
			},
		},
		{
			name:           "empty payload",
			payload:        domain.Payload{},
			mode:           domain.ModeStrict,
			wantViolations: []domain.Violation{domain.MissingRequired("query")},
		},
		{
			name:           "nil payload",
			payload:        nil,
			mode:           domain.ModePermissive,
			wantViolations: []domain.Violation{domain.MissingRequired("query")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := validator.Validate(reg, tt.payload, tt.mode)

			if tt.wantViolations != nil {
				require.False(t, res.OK())
				assert.Nil(t, res.Accepted())
				if diff := cmp.Diff(tt.wantViolations, res.Violations()); diff != "" {
					t.Errorf("Violations() mismatch (-want +got):\n%s", diff)
				}
				return
			}

			assert.Empty(t, res.Violations())
			if diff := cmp.Diff(tt.wantAccepted, acceptedMap(t, res)); diff != "" {
				t.Errorf("Accepted() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate_TypedNilIsAbsent(t *testing.T) {
	reg := searchRegistry(t)
	var query *string
	var ids []int64

	res := validator.Validate(reg, domain.Payload{"query": query, "user_id": ids}, domain.ModePermissive)
	assert.Equal(t, []string{"query"}, res.Missing())
}

func TestValidate_ZeroValuesArePresent(t *testing.T) {
	reg := searchRegistry(t)

	res := validator.Validate(reg, domain.Payload{"query": "", "user_id": 0}, domain.ModeStrict)
	assert.Equal(t, map[string]any{"query": "", "user_id": 0}, acceptedMap(t, res))
}

func TestValidate_AcceptedFollowsDeclarationOrder(t *testing.T) {
	reg, err := registry.Build([]domain.FieldDescriptor{
		domain.MustFieldDescriptor("zeta", true),
		domain.MustFieldDescriptor("alpha", false),
		domain.MustFieldDescriptor("mid", true),
		domain.MustFieldDescriptor("beta", false),
	})
	require.NoError(t, err)

	payload := domain.Payload{"beta": 4, "mid": 3, "alpha": 2, "zeta": 1, "noise": 0}
	for i := 0; i < 20; i++ {
		res := validator.Validate(reg, payload, domain.ModePermissive)
		require.True(t, res.OK())
		assert.Equal(t, []string{"zeta", "alpha", "mid", "beta"}, res.Accepted().Keys())
	}
}

// Property: a payload that supplies every required field (any subset of the
// optional ones) is accepted; dropping any required fields yields exactly one
// MissingRequired per dropped field, in declaration order.
func TestValidate_RequiredFieldProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 200; round++ {
		n := 1 + rng.Intn(12)
		var ds []domain.FieldDescriptor
		for i := 0; i < n; i++ {
			ds = append(ds, domain.MustFieldDescriptor(fmt.Sprintf("f%02d", i), rng.Intn(2) == 0))
		}
		reg, err := registry.Build(ds)
		require.NoError(t, err)

		complete := domain.Payload{}
		var dropped []domain.Violation
		partial := domain.Payload{}
		for _, d := range ds {
			if d.Required() {
				complete[d.Name()] = round
				if rng.Intn(3) == 0 {
					dropped = append(dropped, domain.MissingRequired(d.Name()))
				} else {
					partial[d.Name()] = round
				}
				continue
			}
			if rng.Intn(2) == 0 {
				complete[d.Name()] = "opt"
				partial[d.Name()] = "opt"
			}
		}

		res := validator.Validate(reg, complete, domain.ModeStrict)
		require.True(t, res.OK(), "round %d: complete payload rejected: %v", round, res.Violations())
		assert.Equal(t, len(complete), res.Accepted().Len())

		res = validator.Validate(reg, partial, domain.ModeStrict)
		if len(dropped) == 0 {
			assert.True(t, res.OK())
			continue
		}
		if diff := cmp.Diff(dropped, res.Violations()); diff != "" {
			t.Fatalf("round %d: violations mismatch (-want +got):\n%s", round, diff)
		}
	}
}

func TestValidate_Idempotent(t *testing.T) {
	reg := searchRegistry(t)
	payload := domain.Payload{"user_id": "42", "extra": true, "another": 1}

	first := validator.Validate(reg, payload, domain.ModeStrict)
	second := validator.Validate(reg, payload, domain.ModeStrict)
	assert.Equal(t, first.Violations(), second.Violations())
	assert.Equal(t, domain.Payload{"user_id": "42", "extra": true, "another": 1}, payload, "payload must not be mutated")

	ok1 := validator.Validate(reg, domain.Payload{"query": "q"}, domain.ModePermissive)
	ok2 := validator.Validate(reg, domain.Payload{"query": "q"}, domain.ModePermissive)
	assert.Equal(t, ok1.Accepted().Keys(), ok2.Accepted().Keys())
	assert.Equal(t, ok1.Accepted().Map(), ok2.Accepted().Map())
}

func TestValidate_Concurrent(t *testing.T) {
	reg := searchRegistry(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				payload := domain.Payload{"query": fmt.Sprintf("q-%d-%d", i, j)}
				res := validator.Validate(reg, payload, domain.ModeStrict)
				if !res.OK() {
					t.Errorf("unexpected violations: %v", res.Violations())
					return
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestResult_Err(t *testing.T) {
	reg := searchRegistry(t)

	ok := validator.Validate(reg, domain.Payload{"query": "q"}, domain.ModeStrict)
	assert.NoError(t, ok.Err())

	res := validator.Validate(reg, domain.Payload{"extra": 1}, domain.ModeStrict)
	err := res.Err()
	require.Error(t, err)

	var aggr *validator.AggregateError
	require.True(t, errors.As(err, &aggr))
	require.Len(t, aggr.Errors, 2)

	var first *validator.ViolationError
	require.True(t, errors.As(aggr.Errors[0], &first))
	assert.Equal(t, "query", first.Field)
	assert.Equal(t, domain.ViolationMissingRequired, first.Kind)

	assert.Len(t, validator.ValidationErrors(err), 2)
	assert.Nil(t, validator.ValidationErrors(errors.New("other")))
	assert.Contains(t, err.Error(), "2 validation errors")
}

func TestResult_MarshalJSON(t *testing.T) {
	reg := searchRegistry(t)

	res := validator.Validate(reg, domain.Payload{"user_id": "42", "query": "shoes"}, domain.ModePermissive)
	data, err := res.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true,"accepted":{"query":"shoes","user_id":"42"}}`, string(data))

	res = validator.Validate(reg, domain.Payload{"x": 1}, domain.ModeStrict)
	data, err = res.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":false,"violations":[
		{"field":"query","kind":"missing_required"},
		{"field":"x","kind":"unknown_field"}
	]}`, string(data))
}
