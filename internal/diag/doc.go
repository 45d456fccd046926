// Package diag defines the diagnostic model shared by every lintel phase.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: five levels, Info < Minor < Major < Critical < Blocker.
//   - Code: numeric identifier of engine diagnostics (lexer, parser, rule
//     faults, fix failures). Rule findings use RuleIssue.
//   - RuleID: id of the rule that produced a finding or faulted.
//   - Message, Primary span, Path, optional Notes.
//
// Diagnostics are values. Once emitted they are never mutated.
//
// # Emitting diagnostics
//
// Lexer and parser emit through a Reporter (usually BagReporter over a Bag,
// which enforces a limit). Rule passes emit through a Collector: findings are
// kept in discovery order without deduplication, and Seal turns the
// collector into an immutable List that downstream consumers read.
//
// Package diag does no formatting or IO; rendering lives in internal/diagfmt.
package diag
