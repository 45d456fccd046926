package syntax

import (
	"fmt"
	"slices"
	"strings"

	"fortio.org/safecast"

	"lintel/internal/token"
)

// Flags describe structural properties of a node.
type Flags uint8

const (
	// FlagMissing marks a zero-width token synthesized by the parser.
	FlagMissing Flags = 1 << iota
	// FlagHasError is set on error nodes, missing tokens, invalid tokens and
	// every ancestor of such nodes.
	FlagHasError
)

// Node is an immutable tree node. Leaves hold exactly one token; inner nodes
// hold an ordered slice of child slots where nil marks an absent optional slot.
// Node knows nothing about its position or parent: see Ref.
type Node struct {
	kind     Kind
	tok      *token.Token
	children []*Node
	width    uint32
	flags    Flags
	tags     []Tag // own annotations
	subtags  []Tag // sorted union of own and descendant annotations
}

// NewToken wraps a lexed token into a leaf.
func NewToken(tok token.Token) *Node {
	n := &Node{kind: KindToken, tok: &tok, width: checkedWidth(tok.FullWidth())}
	if tok.Kind == token.Invalid {
		n.flags |= FlagHasError
	}
	return n
}

// NewMissing synthesizes a zero-width token the parser expected but did not find.
func NewMissing(kind token.Kind) *Node {
	return &Node{kind: KindToken, tok: &token.Token{Kind: kind}, flags: FlagMissing | FlagHasError}
}

// NewNode builds an inner node over children. Children are not copied.
func NewNode(kind Kind, children ...*Node) *Node {
	n := &Node{kind: kind, children: children}
	n.recompute()
	if kind == KindError {
		n.flags |= FlagHasError
	}
	return n
}

// NewList builds a KindList node.
func NewList(items ...*Node) *Node { return NewNode(KindList, items...) }

// NewSeparatedList builds a KindSeparatedList node from alternating elements and separators.
func NewSeparatedList(items ...*Node) *Node { return NewNode(KindSeparatedList, items...) }

func (n *Node) recompute() {
	var w int
	var sub []Tag
	n.flags &^= FlagHasError
	for _, c := range n.children {
		if c == nil {
			continue
		}
		w += int(c.width)
		if c.flags&FlagHasError != 0 {
			n.flags |= FlagHasError
		}
		sub = mergeTags(sub, c.subtags)
	}
	if n.kind == KindError {
		n.flags |= FlagHasError
	}
	n.width = checkedWidth(w)
	n.subtags = mergeTags(sub, n.tags)
}

func checkedWidth(w int) uint32 {
	u, err := safecast.Conv[uint32](w)
	if err != nil {
		panic(fmt.Errorf("node width overflow: %w", err))
	}
	return u
}

func (n *Node) Kind() Kind { return n.kind }

// IsToken reports whether n is a leaf.
func (n *Node) IsToken() bool { return n.kind == KindToken }

// Token returns the leaf token. ok is false for inner nodes.
func (n *Node) Token() (tok token.Token, ok bool) {
	if n.tok == nil {
		return token.Token{}, false
	}
	return *n.tok, true
}

// TokenKind returns the token kind of a leaf or token.Invalid.
func (n *Node) TokenKind() token.Kind {
	if n.tok == nil {
		return token.Invalid
	}
	return n.tok.Kind
}

// Width is the full width in bytes including trivia.
func (n *Node) Width() uint32 { return n.width }

func (n *Node) NumSlots() int { return len(n.children) }

// Child returns the node in slot i or nil.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

func (n *Node) Missing() bool       { return n.flags&FlagMissing != 0 }
func (n *Node) ContainsError() bool { return n.flags&FlagHasError != 0 }

// Tags returns the annotations carried by n itself.
func (n *Node) Tags() []Tag { return slices.Clone(n.tags) }

// HasTag reports whether n itself carries t.
func (n *Node) HasTag(t Tag) bool { _, ok := slices.BinarySearch(n.tags, t); return ok }

// SubtreeHasTag reports whether n or a descendant carries t.
func (n *Node) SubtreeHasTag(t Tag) bool { _, ok := slices.BinarySearch(n.subtags, t); return ok }

// SubtreeTagCount is the number of distinct annotations in the subtree.
func (n *Node) SubtreeTagCount() int { return len(n.subtags) }

// Text renders the node with all trivia.
func (n *Node) Text() string {
	var sb strings.Builder
	sb.Grow(int(n.width))
	n.WriteTo(&sb)
	return sb.String()
}

// WriteTo appends the full text of n to sb.
func (n *Node) WriteTo(sb *strings.Builder) {
	if n.tok != nil {
		n.tok.WriteTo(sb)
		return
	}
	for _, c := range n.children {
		if c != nil {
			c.WriteTo(sb)
		}
	}
}

// FirstToken returns the first leaf of n (possibly a missing token) or nil.
func (n *Node) FirstToken() *Node {
	if n.tok != nil {
		return n
	}
	for _, c := range n.children {
		if c == nil {
			continue
		}
		if t := c.FirstToken(); t != nil {
			return t
		}
	}
	return nil
}

// LastToken returns the last leaf of n or nil.
func (n *Node) LastToken() *Node {
	if n.tok != nil {
		return n
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		c := n.children[i]
		if c == nil {
			continue
		}
		if t := c.LastToken(); t != nil {
			return t
		}
	}
	return nil
}

// Tokens calls fn for every leaf in document order.
func (n *Node) Tokens(fn func(*Node)) {
	if n.tok != nil {
		fn(n)
		return
	}
	for _, c := range n.children {
		if c != nil {
			c.Tokens(fn)
		}
	}
}

// withChildren returns a copy of n over new children; own tags are kept.
func (n *Node) withChildren(children []*Node) *Node {
	cp := &Node{kind: n.kind, children: children, flags: n.flags & FlagMissing, tags: n.tags}
	cp.recompute()
	return cp
}

// withToken returns a leaf copy holding tok; own tags are kept.
func (n *Node) withToken(tok token.Token) *Node {
	cp := NewToken(tok)
	cp.flags |= n.flags & (FlagMissing | FlagHasError)
	if tok.Kind != token.Invalid && n.flags&FlagMissing == 0 {
		cp.flags &^= FlagHasError
	}
	cp.tags = n.tags
	cp.subtags = n.tags
	return cp
}

// withTags returns a copy of n carrying tags as its own annotations.
func (n *Node) withTags(tags []Tag) *Node {
	cp := *n
	cp.tags = tags
	if cp.tok != nil {
		cp.subtags = tags
	} else {
		cp.recompute()
	}
	return &cp
}
