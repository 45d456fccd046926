package syntax

import (
	"errors"
	"fmt"
	"slices"

	"lintel/internal/token"
)

var (
	// ErrForeignRef is returned when a Ref does not belong to the edited tree.
	ErrForeignRef = errors.New("reference does not belong to this tree")
	// ErrNotRemovable is returned when the target occupies a mandatory slot.
	ErrNotRemovable = errors.New("node cannot be removed from its parent")
)

func (t *Tree) owns(r Ref) error {
	if r.IsZero() || r.tree != t {
		return ErrForeignRef
	}
	return nil
}

// rebuild path-copies from target up to the root, putting repl in target's
// place. repl == nil removes the slot: list slots are deleted, other slots
// are cleared.
func (t *Tree) rebuild(target Ref, repl *Node) *Tree {
	child := repl
	cur := target
	for first := true; cur.parent != nil; first = false {
		p := cur.parent
		kids := slices.Clone(p.node.children)
		if first && child == nil && p.node.kind.IsList() {
			kids = slices.Delete(kids, cur.slot, cur.slot+1)
		} else {
			kids[cur.slot] = child
		}
		child = p.node.withChildren(kids)
		cur = *p
	}
	if child == nil {
		child = NewList()
	}
	return &Tree{root: child, file: t.file, path: t.path}
}

// Replace returns a tree where target is replaced by repl. repl must not be nil.
func (t *Tree) Replace(target Ref, repl *Node) (*Tree, error) {
	if err := t.owns(target); err != nil {
		return nil, err
	}
	if repl == nil {
		return nil, fmt.Errorf("replace %s: nil replacement", target.Kind())
	}
	return t.rebuild(target, repl), nil
}

// Remove returns a tree without target and without any of its trivia.
// Inside a separated list the adjacent separator goes too (the following one,
// or the preceding one for the last element).
func (t *Tree) Remove(target Ref) (*Tree, error) {
	if err := t.owns(target); err != nil {
		return nil, err
	}
	parent := target.Parent()
	if parent.IsZero() {
		return nil, fmt.Errorf("remove root: %w", ErrNotRemovable)
	}
	switch pk := parent.Kind(); {
	case pk == KindSeparatedList:
		kids := slices.Clone(parent.node.children)
		from, to := target.slot, target.slot+1
		switch {
		case to < len(kids) && kids[to].TokenKind() == token.Comma:
			to++
		case from > 0 && kids[from-1].TokenKind() == token.Comma:
			from--
		}
		kids = slices.Delete(kids, from, to)
		return t.rebuild(parent, parent.node.withChildren(kids)), nil
	case pk.IsList():
		return t.rebuild(target, nil), nil
	case IsOptionalSlot(pk, target.slot):
		return t.rebuild(target, nil), nil
	default:
		return nil, fmt.Errorf("remove %s from %s slot %d: %w", target.Kind(), pk, target.slot, ErrNotRemovable)
	}
}

// WithLeadingTrivia replaces the leading trivia of target's first token.
func (t *Tree) WithLeadingTrivia(target Ref, trivia []token.Trivia) (*Tree, error) {
	first := target.FirstToken()
	if first.IsZero() {
		return nil, fmt.Errorf("%s has no tokens", target.Kind())
	}
	if err := t.owns(first); err != nil {
		return nil, err
	}
	tok, _ := first.Token()
	tok.Leading = slices.Clone(trivia)
	return t.rebuild(first, first.node.withToken(tok)), nil
}

// WithTrailingTrivia replaces the trailing trivia of target's last token.
func (t *Tree) WithTrailingTrivia(target Ref, trivia []token.Trivia) (*Tree, error) {
	last := target.LastToken()
	if last.IsZero() {
		return nil, fmt.Errorf("%s has no tokens", target.Kind())
	}
	if err := t.owns(last); err != nil {
		return nil, err
	}
	tok, _ := last.Token()
	tok.Trailing = slices.Clone(trivia)
	return t.rebuild(last, last.node.withToken(tok)), nil
}

// LeadingTrivia returns the leading trivia of r's first token.
func LeadingTrivia(r Ref) []token.Trivia {
	if first := r.FirstToken(); !first.IsZero() {
		tok, _ := first.Token()
		return tok.Leading
	}
	return nil
}

// TrailingTrivia returns the trailing trivia of r's last token.
func TrailingTrivia(r Ref) []token.Trivia {
	if last := r.LastToken(); !last.IsZero() {
		tok, _ := last.Token()
		return tok.Trailing
	}
	return nil
}
