package syntax

import (
	"slices"
	"sync/atomic"
)

// Tag is an opaque annotation attached to a node. Tags survive path-copying
// edits of unrelated parts of the tree and are located through the subtree
// tag sets every node maintains.
type Tag uint64

var tagSeq atomic.Uint64

// NewTag returns a process-unique tag.
func NewTag() Tag { return Tag(tagSeq.Add(1)) }

func mergeTags(a, b []Tag) []Tag {
	switch {
	case len(b) == 0:
		return a
	case len(a) == 0:
		return b
	}
	out := make([]Tag, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

func insertTag(tags []Tag, t Tag) []Tag {
	i, found := slices.BinarySearch(tags, t)
	if found {
		return tags
	}
	out := make([]Tag, 0, len(tags)+1)
	out = append(out, tags[:i]...)
	out = append(out, t)
	return append(out, tags[i:]...)
}

func deleteTag(tags []Tag, t Tag) []Tag {
	i, found := slices.BinarySearch(tags, t)
	if !found {
		return tags
	}
	if len(tags) == 1 {
		return nil
	}
	out := make([]Tag, 0, len(tags)-1)
	out = append(out, tags[:i]...)
	return append(out, tags[i+1:]...)
}

// AddTag returns a tree where target carries t.
func (t *Tree) AddTag(target Ref, tag Tag) (*Tree, error) {
	if err := t.owns(target); err != nil {
		return nil, err
	}
	return t.rebuild(target, target.node.withTags(insertTag(target.node.tags, tag))), nil
}

// FindTag returns the node carrying tag. Only subtrees whose tag set contains
// tag are visited, so the cost is bounded by depth times fan-out.
func (t *Tree) FindTag(tag Tag) (Ref, bool) {
	r := t.Root()
	if !r.node.SubtreeHasTag(tag) {
		return Ref{}, false
	}
	for {
		if r.node.HasTag(tag) {
			return r, true
		}
		next := Ref{}
		for i, c := range r.node.children {
			if c != nil && c.SubtreeHasTag(tag) {
				next = r.Child(i)
				break
			}
		}
		if next.IsZero() {
			return Ref{}, false
		}
		r = next
	}
}

// RemoveTag returns a tree without tag. ok is false when no node carries it.
func (t *Tree) RemoveTag(tag Tag) (*Tree, bool) {
	r, ok := t.FindTag(tag)
	if !ok {
		return t, false
	}
	return t.rebuild(r, r.node.withTags(deleteTag(r.node.tags, tag))), true
}

// Tags returns every annotation present in the tree.
func (t *Tree) Tags() []Tag { return slices.Clone(t.root.subtags) }
