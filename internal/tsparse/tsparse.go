// Package tsparse is the alternative C# frontend built on tree-sitter. It is
// used to cross-check the native parser's syntax errors and to dump the
// tree-sitter view of a file; rules never run on it.
package tsparse

import (
	"context"
	"fmt"
	"io"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"

	"lintel/internal/diag"
	"lintel/internal/source"
)

// Tree is the tree-sitter parse of one file. Close releases the C tree.
type Tree struct {
	file *source.File
	tree *sitter.Tree
}

// Parse runs the tree-sitter C# grammar over f.
func Parse(ctx context.Context, f *source.File) (*Tree, error) {
	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(csharp.GetLanguage())
	tree, err := p.ParseCtx(ctx, nil, f.Content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter %s: %w", f.Path, err)
	}
	return &Tree{file: f, tree: tree}, nil
}

func (t *Tree) Close() {
	if t != nil && t.tree != nil {
		t.tree.Close()
	}
}

// HasError reports whether tree-sitter recovered from anything.
func (t *Tree) HasError() bool { return t.tree.RootNode().HasError() }

// Diagnostics reports ERROR nodes as unexpected input and MISSING nodes as
// missing tokens, outermost first. Error subtrees are not descended into.
func (t *Tree) Diagnostics() []diag.Diagnostic {
	var out []diag.Diagnostic
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil || !n.HasError() && !n.IsMissing() {
			return
		}
		switch {
		case n.IsMissing():
			sp := t.span(n)
			out = append(out, diag.New(diag.SevMajor, diag.SynExpectToken, sp,
				fmt.Sprintf("tree-sitter: missing %s", n.Type())).WithPath(t.file.Path))
			return
		case n.Type() == "ERROR":
			out = append(out, diag.New(diag.SevMajor, diag.SynUnexpectedToken, t.span(n),
				"tree-sitter: unexpected input").WithPath(t.file.Path))
			return
		}
		for i := range int(n.ChildCount()) {
			walk(n.Child(i))
		}
	}
	walk(t.tree.RootNode())
	return out
}

func (t *Tree) span(n *sitter.Node) source.Span {
	return source.Span{File: t.file.ID, Start: n.StartByte(), End: n.EndByte()}
}

// Dump writes named nodes one per line, indented by depth, with field names
// and byte ranges. Leaves show their text.
func (t *Tree) Dump(w io.Writer) error {
	var sb strings.Builder
	var walk func(n *sitter.Node, field string, depth int)
	walk = func(n *sitter.Node, field string, depth int) {
		if n == nil {
			return
		}
		if n.IsNamed() || n.IsMissing() {
			sb.WriteString(strings.Repeat("  ", depth))
			if field != "" {
				sb.WriteString(field)
				sb.WriteString(": ")
			}
			sb.WriteString(n.Type())
			fmt.Fprintf(&sb, " [%d..%d)", n.StartByte(), n.EndByte())
			if n.IsMissing() {
				sb.WriteString(" missing")
			}
			if n.ChildCount() == 0 {
				fmt.Fprintf(&sb, " %q", n.Content(t.file.Content))
			}
			sb.WriteByte('\n')
			depth++
		}
		for i := range int(n.ChildCount()) {
			walk(n.Child(i), n.FieldNameForChild(i), depth)
		}
	}
	walk(t.tree.RootNode(), "", 0)
	_, err := io.WriteString(w, sb.String())
	return err
}

// Declarations lists the names of type declarations, in source order. The
// native parser must agree on them for well-formed input.
func (t *Tree) Declarations() []string {
	var out []string
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Type() {
		case "class_declaration", "interface_declaration", "struct_declaration":
			if name := n.ChildByFieldName("name"); name != nil {
				out = append(out, name.Content(t.file.Content))
			}
		}
		for i := range int(n.NamedChildCount()) {
			walk(n.NamedChild(i))
		}
	}
	walk(t.tree.RootNode())
	return out
}
