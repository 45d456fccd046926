package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"lintel/internal/source"
	"lintel/internal/syntax"
)

// CheckRoundTrip verifies that the tree reproduces the file byte for byte.
func CheckRoundTrip(tree *syntax.Tree, sf *source.File) error {
	if tree == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	if got := tree.Text(); got != string(sf.Content) {
		return fmt.Errorf("round trip mismatch for %s: %d bytes back, %d in", sf.Path, len(got), len(sf.Content))
	}
	return nil
}

// CheckSpanInvariants runs a minimal set of span invariants on a tree:
// 1) the root covers the whole text, starting at 0
// 2) children tile their parent's full span in slot order, no gaps
// 3) every trimmed span lies inside the full span of its node
func CheckSpanInvariants(tree *syntax.Tree) error {
	if tree == nil {
		return fmt.Errorf("nil tree")
	}
	root := tree.Root()
	textLen, err := safecast.Conv[uint32](len(tree.Text()))
	if err != nil {
		return fmt.Errorf("len text overflow: %w", err)
	}
	if fs := root.FullSpan(); fs.Start != 0 || fs.End != textLen {
		return fmt.Errorf("root span %v does not cover text of %d bytes", fs, textLen)
	}
	for r := range root.Preorder() {
		full := r.FullSpan()
		if sp := r.Span(); !full.Contains(sp) {
			return fmt.Errorf("%s: span %v outside full span %v", r.Kind(), sp, full)
		}
		if r.Node().IsToken() {
			continue
		}
		// children tile the parent
		next := full.Start
		for _, c := range r.Children() {
			cs := c.FullSpan()
			if cs.Start != next {
				return fmt.Errorf("%s: child %s starts at %d, want %d", r.Kind(), c.Kind(), cs.Start, next)
			}
			next = cs.End
		}
		if next != full.End {
			return fmt.Errorf("%s: children end at %d, node at %d", r.Kind(), next, full.End)
		}
	}
	return nil
}
