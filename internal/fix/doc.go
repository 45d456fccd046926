// Package fix turns rule diagnostics into source edits.
//
// A Provider declares which rule ids it can fix and, for a given diagnostic,
// offers one or more Actions. An Action rewrites the syntax tree, usually
// through internal/rewrite. The Engine applies selected actions to the
// original tree of a file, converts each resulting tree into a text edit and
// merges the non-conflicting edits into new file content. Writing files is a
// separate step (Commit), so dry runs share the same code path.
//
// Actions that fail never touch the source. They are reported as SkippedFix
// entries and as FixNotApplied-family diagnostics, distinct from the finding
// they were meant to fix.
package fix
