// Package dispatch runs the active rules over one tree.
//
// A run is one pre-order walk of the tree calling node actions, followed by
// one pass over the declared symbols calling symbol actions. With
// Options.ParallelRules every rule walks the tree in its own goroutine and
// the findings are merged into the order the sequential walk produces.
package dispatch
