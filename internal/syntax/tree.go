package syntax

import (
	"io"
	"iter"
	"strings"

	"lintel/internal/source"
	"lintel/internal/token"
)

// Tree is an immutable snapshot of one file. Every edit returns a new Tree
// that shares all untouched subtrees with its predecessor.
type Tree struct {
	root *Node
	file source.FileID
	path string
}

// NewTree wraps root. path is used for generated-code detection and output.
func NewTree(root *Node, file source.FileID, path string) *Tree {
	return &Tree{root: root, file: file, path: path}
}

func (t *Tree) File() source.FileID { return t.file }
func (t *Tree) Path() string        { return t.path }
func (t *Tree) RootNode() *Node     { return t.root }

// Root returns the positioned root.
func (t *Tree) Root() Ref { return Ref{tree: t, node: t.root} }

// Text serializes the tree. For a freshly parsed tree the result equals the
// source bytes exactly.
func (t *Tree) Text() string { return t.root.Text() }

// WriteTo writes the serialized tree to w.
func (t *Tree) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	t.root.WriteTo(&sb)
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// ContainsError reports whether the parser recovered from errors anywhere.
func (t *Tree) ContainsError() bool { return t.root.ContainsError() }

// Ref is a positioned view of a node inside a specific Tree: the node, its
// parent chain, its slot index in the parent and its absolute offset.
// The zero Ref is "no node".
type Ref struct {
	tree   *Tree
	node   *Node
	parent *Ref
	slot   int
	pos    uint32
}

func (r Ref) IsZero() bool { return r.node == nil }
func (r Ref) Node() *Node  { return r.node }
func (r Ref) Tree() *Tree  { return r.tree }
func (r Ref) Slot() int    { return r.slot }

// IsToken is false for the zero Ref.
func (r Ref) IsToken() bool { return r.node != nil && r.node.IsToken() }

// Kind returns KindInvalid for the zero Ref.
func (r Ref) Kind() Kind {
	if r.node == nil {
		return KindInvalid
	}
	return r.node.kind
}

// Is reports whether r is of one of kinds.
func (r Ref) Is(kinds ...Kind) bool {
	k := r.Kind()
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

// Parent returns the zero Ref for the root.
func (r Ref) Parent() Ref {
	if r.parent == nil {
		return Ref{}
	}
	return *r.parent
}

// Child returns slot i, or the zero Ref when the slot is absent.
func (r Ref) Child(i int) Ref {
	if r.node == nil || i < 0 || i >= len(r.node.children) || r.node.children[i] == nil {
		return Ref{}
	}
	pos := r.pos
	for _, c := range r.node.children[:i] {
		if c != nil {
			pos += c.width
		}
	}
	p := r
	return Ref{tree: r.tree, node: r.node.children[i], parent: &p, slot: i, pos: pos}
}

// Children returns all present child slots in order.
func (r Ref) Children() []Ref {
	if r.node == nil || len(r.node.children) == 0 {
		return nil
	}
	p := r
	out := make([]Ref, 0, len(r.node.children))
	pos := r.pos
	for i, c := range r.node.children {
		if c == nil {
			continue
		}
		out = append(out, Ref{tree: r.tree, node: c, parent: &p, slot: i, pos: pos})
		pos += c.width
	}
	return out
}

// NumSlots is the number of child slots including absent ones.
func (r Ref) NumSlots() int {
	if r.node == nil {
		return 0
	}
	return len(r.node.children)
}

// Token returns the token of a leaf.
func (r Ref) Token() (token.Token, bool) {
	if r.node == nil {
		return token.Token{}, false
	}
	return r.node.Token()
}

// TokenKind returns the token kind of a leaf or token.Invalid.
func (r Ref) TokenKind() token.Kind {
	if r.node == nil {
		return token.Invalid
	}
	return r.node.TokenKind()
}

// FullSpan covers the node including leading and trailing trivia.
func (r Ref) FullSpan() source.Span {
	return source.Span{File: r.fileID(), Start: r.pos, End: r.pos + r.width()}
}

// Span covers the node without the leading trivia of its first token and the
// trailing trivia of its last token.
func (r Ref) Span() source.Span {
	sp := r.FullSpan()
	if r.node == nil {
		return sp
	}
	if first := r.node.FirstToken(); first != nil {
		sp.Start += uint32(token.TriviaWidth(first.tok.Leading)) // #nosec G115 -- bounded by node width
	}
	if last := r.node.LastToken(); last != nil {
		sp.End -= uint32(token.TriviaWidth(last.tok.Trailing)) // #nosec G115 -- bounded by node width
	}
	if sp.End < sp.Start {
		sp.End = sp.Start
	}
	return sp
}

func (r Ref) width() uint32 {
	if r.node == nil {
		return 0
	}
	return r.node.width
}

func (r Ref) fileID() source.FileID {
	if r.tree == nil {
		return 0
	}
	return r.tree.file
}

// Text is the full text of the node including trivia.
func (r Ref) Text() string {
	if r.node == nil {
		return ""
	}
	return r.node.Text()
}

// TrimmedText is the text covered by Span.
func (r Ref) TrimmedText() string {
	full := r.Text()
	fs, sp := r.FullSpan(), r.Span()
	return full[sp.Start-fs.Start : sp.End-fs.Start]
}

// FirstToken returns the first leaf under r.
func (r Ref) FirstToken() Ref {
	for cur := r; !cur.IsZero(); {
		if cur.node.IsToken() {
			return cur
		}
		next := Ref{}
		for _, c := range cur.Children() {
			if c.node.FirstToken() != nil {
				next = c
				break
			}
		}
		cur = next
	}
	return Ref{}
}

// LastToken returns the last leaf under r.
func (r Ref) LastToken() Ref {
	for cur := r; !cur.IsZero(); {
		if cur.node.IsToken() {
			return cur
		}
		next := Ref{}
		kids := cur.Children()
		for i := len(kids) - 1; i >= 0; i-- {
			if kids[i].node.LastToken() != nil {
				next = kids[i]
				break
			}
		}
		cur = next
	}
	return Ref{}
}

// NextSibling returns the next present slot of the parent.
func (r Ref) NextSibling() Ref {
	p := r.Parent()
	for i := r.slot + 1; i < p.NumSlots(); i++ {
		if c := p.Child(i); !c.IsZero() {
			return c
		}
	}
	return Ref{}
}

// PrevSibling returns the previous present slot of the parent.
func (r Ref) PrevSibling() Ref {
	p := r.Parent()
	for i := r.slot - 1; i >= 0; i-- {
		if c := p.Child(i); !c.IsZero() {
			return c
		}
	}
	return Ref{}
}

// NextToken returns the leaf following r's last token in document order.
func (r Ref) NextToken() Ref {
	for cur := r; !cur.IsZero(); cur = cur.Parent() {
		for sib := cur.NextSibling(); !sib.IsZero(); sib = sib.NextSibling() {
			if t := sib.FirstToken(); !t.IsZero() {
				return t
			}
		}
	}
	return Ref{}
}

// PrevToken returns the leaf preceding r's first token in document order.
func (r Ref) PrevToken() Ref {
	for cur := r; !cur.IsZero(); cur = cur.Parent() {
		for sib := cur.PrevSibling(); !sib.IsZero(); sib = sib.PrevSibling() {
			if t := sib.LastToken(); !t.IsZero() {
				return t
			}
		}
	}
	return Ref{}
}

// Ancestor returns the nearest proper ancestor of one of kinds.
func (r Ref) Ancestor(kinds ...Kind) Ref {
	for p := r.Parent(); !p.IsZero(); p = p.Parent() {
		if p.Is(kinds...) {
			return p
		}
	}
	return Ref{}
}

// Preorder yields r and its descendants in pre-order.
func (r Ref) Preorder() iter.Seq[Ref] {
	return func(yield func(Ref) bool) {
		if r.IsZero() {
			return
		}
		preorder(r, yield)
	}
}

func preorder(r Ref, yield func(Ref) bool) bool {
	if !yield(r) {
		return false
	}
	for _, c := range r.Children() {
		if !preorder(c, yield) {
			return false
		}
	}
	return true
}

// Find returns the innermost node whose Span equals sp and whose kind is one
// of kinds (any kind when none given).
func (t *Tree) Find(sp source.Span, kinds ...Kind) (Ref, bool) {
	var best Ref
	cur := t.Root()
	for !cur.IsZero() {
		if cur.Span() == sp && (len(kinds) == 0 || cur.Is(kinds...)) {
			best = cur
		}
		next := Ref{}
		for _, c := range cur.Children() {
			fs := c.FullSpan()
			if fs.Start <= sp.Start && sp.End <= fs.End && (c.node.width > 0 || sp.Empty()) {
				next = c
				break
			}
		}
		cur = next
	}
	return best, !best.IsZero()
}

// TokenAt returns the leaf whose full span contains off.
func (t *Tree) TokenAt(off uint32) Ref {
	cur := t.Root()
	for !cur.IsZero() && !cur.node.IsToken() {
		next := Ref{}
		for _, c := range cur.Children() {
			if c.FullSpan().ContainsOffset(off) {
				next = c
				break
			}
		}
		cur = next
	}
	return cur
}
