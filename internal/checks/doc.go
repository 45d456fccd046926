// Package checks holds the rules lintel ships with and the fix providers for
// them. Builtin returns fresh descriptors; the registry itself is assembled
// by callers (see Registry).
package checks
