package annotate_test

import (
	"errors"
	"testing"

	"lintel/internal/annotate"
	"lintel/internal/parser"
	"lintel/internal/source"
	"lintel/internal/syntax"
)

func parse(t *testing.T, src string) *syntax.Tree {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.cs", []byte(src))
	res, err := parser.Parse(fs.Get(id), parser.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return res.Tree
}

func first(tree *syntax.Tree, kind syntax.Kind) syntax.Ref {
	for r := range tree.Root().Preorder() {
		if r.Kind() == kind {
			return r
		}
	}
	return syntax.Ref{}
}

func TestAnnotateFindStrip(t *testing.T) {
	tr := annotate.NewTracker()
	tree := parse(t, "class A { int x; void M() { } }")
	tree2, id, err := tr.Annotate(tree, first(tree, syntax.MethodDecl), "method")
	if err != nil {
		t.Fatalf("annotate: %v", err)
	}
	if _, err := tr.Find(tree, id); err == nil {
		t.Fatalf("original tree must stay untouched")
	}
	tree3, err := tree2.Remove(first(tree2, syntax.FieldDecl))
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	r, err := tr.Find(tree3, id)
	if err != nil || !r.Is(syntax.MethodDecl) {
		t.Fatalf("find after edit: %s, %v", r.Kind(), err)
	}
	if err := tr.Published(tree3); err == nil {
		t.Fatalf("unstripped annotation must block publishing")
	}
	final, err := tr.Strip(tree3, id)
	if err != nil {
		t.Fatalf("strip: %v", err)
	}
	if err := tr.Published(final); err != nil {
		t.Fatalf("published: %v", err)
	}
	if len(tr.Live()) != 0 {
		t.Fatalf("live = %v", tr.Live())
	}
	if final.Text() != "class A { void M() { } }" {
		t.Fatalf("text = %q", final.Text())
	}
}

func TestAnnotationLost(t *testing.T) {
	tr := annotate.NewTracker()
	tree := parse(t, "class A { int x; }")
	tree, id, err := tr.Annotate(tree, first(tree, syntax.FieldDecl), "field")
	if err != nil {
		t.Fatalf("annotate: %v", err)
	}
	tree, err = tree.Remove(first(tree, syntax.FieldDecl))
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	_, err = tr.Find(tree, id)
	var lost *annotate.AnnotationLostError
	if !errors.As(err, &lost) || lost.ID != id {
		t.Fatalf("expected AnnotationLostError, got %v", err)
	}
	if _, err := tr.Strip(tree, id); !errors.As(err, &lost) {
		t.Fatalf("strip of lost annotation: %v", err)
	}
}

func TestUnrelatedTree(t *testing.T) {
	tr := annotate.NewTracker()
	a := parse(t, "class A { }")
	_, id, err := tr.Annotate(a, first(a, syntax.ClassDecl), "class")
	if err != nil {
		t.Fatalf("annotate: %v", err)
	}
	b := parse(t, "class A { }")
	var lost *annotate.AnnotationLostError
	if _, err := tr.Find(b, id); !errors.As(err, &lost) {
		t.Fatalf("unrelated tree: %v", err)
	}
	if _, _, err := tr.Annotate(a, first(b, syntax.ClassDecl), "x"); !errors.Is(err, syntax.ErrForeignRef) {
		t.Fatalf("foreign ref: %v", err)
	}
}
