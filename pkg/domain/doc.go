/*
Package domain contains the core value types of the serving signature gate.

It defines what a model expects from an inference request, and how a request
can fail to meet that expectation. This package is kept pure and free of
external dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - FieldDescriptor: One declared input field of a serving signature (name, required flag, dtype).
  - Payload: The caller-supplied mapping of field name to raw value.
  - OrderedPayload: An accepted payload whose keys follow declaration order.
  - Violation: A structured record of one way a payload failed the contract.
  - Mode: Strict (unknown fields are violations) or permissive (unknown fields are dropped).
*/
package domain
