package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"lintel/internal/diag"
	"lintel/internal/parser"
	"lintel/internal/source"
	"lintel/internal/syntax"
)

func parseString(t *testing.T, src string) *parser.Result {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cs", []byte(src))
	res, err := parser.Parse(fs.Get(id), parser.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return res
}

func mustParseClean(t *testing.T, src string) *syntax.Tree {
	t.Helper()
	res := parseString(t, src)
	if len(res.Diagnostics) != 0 || res.Tree.ContainsError() {
		t.Fatalf("unexpected errors for %q: %s", src, diagnosticsSummary(res.Diagnostics))
	}
	return res.Tree
}

func diagnosticsSummary(diags []diag.Diagnostic) string {
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// findKind returns the first node of kind in pre-order.
func findKind(t *testing.T, tree *syntax.Tree, kind syntax.Kind) syntax.Ref {
	t.Helper()
	for r := range tree.Root().Preorder() {
		if r.Kind() == kind {
			return r
		}
	}
	t.Fatalf("no %s in tree", kind)
	return syntax.Ref{}
}

func countKind(tree *syntax.Tree, kind syntax.Kind) int {
	n := 0
	for r := range tree.Root().Preorder() {
		if r.Kind() == kind {
			n++
		}
	}
	return n
}
