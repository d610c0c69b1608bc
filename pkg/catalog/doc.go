/*
Package catalog keeps the servable signature of every model.

Each model has one published Snapshot behind an atomic pointer. Reloading a
model builds a fresh registry off to the side and swaps the pointer only when
the new signature is valid, so validations already holding a snapshot finish
against it and a broken signature never replaces a working one.
*/
package catalog
