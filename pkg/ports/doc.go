/*
Package ports defines the driven ports (interfaces) for the signature gate.

These interfaces decouple signature handling from where the signature
documents live, allowing the catalog to work with a directory of files, a
Redis instance, or an in-memory map.

# Key Interfaces

  - SignatureSource: Fetches raw signature documents by model name.
  - SignatureWriter: Publishes and removes signature documents (writable backends).
  - Watchable: Notifies about models whose signature changed, for hot reload.
*/
package ports
