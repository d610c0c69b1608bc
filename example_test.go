package ml4ir_test

import (
	"context"
	"fmt"
	"log"

	"github.com/robertdigital/ml4ir"
	"github.com/robertdigital/ml4ir/pkg/adapters/memory"
	"github.com/robertdigital/ml4ir/pkg/domain"
)

// ExampleNew_memory demonstrates how to use the Gate with in-memory signatures.
// This is useful for testing, embedded scenarios, or when signatures are not kept on disk.
func ExampleNew_memory() {
	// 1. Define the serving signature of a model
	source := memory.NewFromYAML(map[string]string{
		"search": `
fields:
  - name: query
    required: true
  - name: user_id
    required: true
    dtype: int64
  - name: locale
`,
	})

	// 2. Initialize the gate and activate every model
	gate := ml4ir.New(source)
	ctx := context.Background()
	if err := gate.Load(ctx); err != nil {
		log.Fatal(err)
	}

	// 3. Permissive mode (default): unknown keys are dropped
	res, err := gate.Validate(ctx, "search", domain.Payload{"user_id": "42", "query": "shoes", "debug": true})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.OK(), res.Accepted().Keys())

	// 4. Strict mode: unknown keys are violations
	res, err = gate.ValidateMode(ctx, "search", domain.Payload{"query": "shoes", "debug": true}, domain.ModeStrict)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.OK(), res.Missing(), res.Unknown())

	// Output:
	// true [query user_id]
	// false [user_id] [debug]
}

// ExampleGate_Features shows how an accepted payload becomes typed feature columns.
func ExampleGate_Features() {
	source := memory.NewFromYAML(map[string]string{
		"ranking": `
features:
  - name: query_text
    dtype: string
    serving_info: {name: query, required: true}
  - name: popularity
    dtype: float
    serving_info: {required: false}
  - name: clicked
    dtype: int64
`,
	})

	gate := ml4ir.New(source)
	ctx := context.Background()
	if err := gate.Load(ctx, "ranking"); err != nil {
		log.Fatal(err)
	}

	cols, res, err := gate.Features(ctx, "ranking", domain.Payload{
		"query":      "running shoes",
		"popularity": []any{0.5, "2"},
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("ok:", res.OK())
	for _, c := range cols {
		fmt.Println(c.Name, c.DType, c.Len())
	}

	// Output:
	// ok: true
	// query string 1
	// popularity float 2
}
