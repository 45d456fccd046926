// Package semantic resolves names and types of one syntax tree.
//
// A Binder produces a Model: symbols for declarations and references, types
// of expressions, type hierarchies and constant values. Types the binder
// cannot resolve become error types; hierarchy walks stop at them instead of
// failing. Built-in types come from a Library shared by all models.
package semantic
