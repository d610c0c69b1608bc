/*
Package ml4ir is the serving-side signature gate for ml4ir models.

A model's serving signature lists the input fields an inference request may
carry, which of them are required, and the dtype each one is fed to the
model as. The gate checks every request payload against that signature
before any tensor is built, and reports exactly which required fields are
missing and (in strict mode) which keys the model does not know.

# Concept

Signatures are documents kept in a signature source: a directory of
YAML/JSON/TOML files, a Redis instance, or memory. Loading a model parses its
document into an immutable field registry and publishes it atomically, so a
signature can be replaced while requests are in flight and a broken
replacement never takes a working model down.

# Modes

  - Permissive (default): undeclared keys are dropped from the accepted payload.
  - Strict: undeclared keys are violations and the payload is rejected.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/robertdigital/ml4ir"
		"github.com/robertdigital/ml4ir/pkg/adapters/file"
		"github.com/robertdigital/ml4ir/pkg/domain"
	)

	func main() {
		ctx := context.Background()

		gate := ml4ir.New(file.New("./signatures"), ml4ir.WithMode(domain.ModeStrict))
		if err := gate.Load(ctx); err != nil {
			log.Fatal(err)
		}

		res, err := gate.Validate(ctx, "search", domain.Payload{"query": "shoes"})
		if err != nil {
			log.Fatal(err) // model not servable
		}
		if !res.OK() {
			log.Printf("rejected: missing=%v unknown=%v", res.Missing(), res.Unknown())
		}
	}
*/
package ml4ir
