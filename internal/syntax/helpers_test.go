package syntax_test

import (
	"testing"

	"lintel/internal/parser"
	"lintel/internal/source"
	"lintel/internal/syntax"
)

func parse(t *testing.T, path, src string) *syntax.Tree {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual(path, []byte(src))
	res, err := parser.Parse(fs.Get(id), parser.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return res.Tree
}

func first(t *testing.T, tree *syntax.Tree, kind syntax.Kind) syntax.Ref {
	t.Helper()
	for r := range tree.Root().Preorder() {
		if r.Kind() == kind {
			return r
		}
	}
	t.Fatalf("no %s", kind)
	return syntax.Ref{}
}
