package fix

import (
	"fmt"
	"sort"
	"strings"

	"lintel/internal/source"
	"lintel/internal/syntax"
)

// TextEdit replaces Span of the original file with NewText. OldText, when
// set, guards the replaced bytes.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// treeEdit reduces the difference between two versions of a file to one
// edit. Leaves shared by both trees (edits path-copy, so untouched tokens are
// the same nodes) bound the edit from the front. From the back, tokens with
// identical text also count as shared: annotating a token copies it.
func treeEdit(before, after *syntax.Tree) (TextEdit, bool) {
	old, cur := leaves(before.RootNode()), leaves(after.RootNode())
	p := 0
	for p < len(old) && p < len(cur) && old[p] == cur[p] {
		p++
	}
	s := 0
	for s < len(old)-p && s < len(cur)-p && sameLeaf(old[len(old)-1-s], cur[len(cur)-1-s]) {
		s++
	}
	var start, end uint32
	for _, n := range old[:p] {
		start += n.Width()
	}
	end = start
	var oldText, newText strings.Builder
	for _, n := range old[p : len(old)-s] {
		end += n.Width()
		n.WriteTo(&oldText)
	}
	for _, n := range cur[p : len(cur)-s] {
		n.WriteTo(&newText)
	}
	if oldText.String() == newText.String() {
		return TextEdit{}, false
	}
	return TextEdit{
		Span:    source.Span{File: before.File(), Start: start, End: end},
		NewText: newText.String(),
		OldText: oldText.String(),
	}, true
}

func leaves(root *syntax.Node) []*syntax.Node {
	var out []*syntax.Node
	root.Tokens(func(n *syntax.Node) { out = append(out, n) })
	return out
}

func sameLeaf(a, b *syntax.Node) bool {
	return a == b || (a.Width() == b.Width() && a.Text() == b.Text())
}

func conflictsWithExisting(existing []TextEdit, edit TextEdit) bool {
	for _, prev := range existing {
		if spansConflict(prev, edit) {
			return true
		}
	}
	return false
}

// spansConflict reports whether two edits overlap. Spans are half-open.
// Two insertions never conflict; an insertion conflicts with a span that
// strictly contains its position or starts at it.
func spansConflict(a, b TextEdit) bool {
	switch {
	case a.Span.Empty() && b.Span.Empty():
		return false
	case a.Span.Empty():
		return b.Span.ContainsOffset(a.Span.Start)
	case b.Span.Empty():
		return a.Span.ContainsOffset(b.Span.Start)
	}
	return a.Span.Overlaps(b.Span)
}

// applyEdits splices non-overlapping edits into content, back to front.
func applyEdits(content []byte, edits []TextEdit) ([]byte, error) {
	sorted := append([]TextEdit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Span.Start == sorted[j].Span.Start {
			return sorted[i].Span.End > sorted[j].Span.End
		}
		return sorted[i].Span.Start > sorted[j].Span.Start
	})
	working := append([]byte(nil), content...)
	for _, edit := range sorted {
		start, end := int(edit.Span.Start), int(edit.Span.End)
		if end < start || end > len(working) {
			return nil, fmt.Errorf("edit %d..%d out of range", start, end)
		}
		if edit.OldText != "" && string(working[start:end]) != edit.OldText {
			return nil, fmt.Errorf("edit %d..%d: existing text does not match expected content", start, end)
		}
		suffix := append([]byte(nil), working[end:]...)
		working = append(append(working[:start], edit.NewText...), suffix...)
	}
	return working, nil
}
