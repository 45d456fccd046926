package parser_test

import (
	"testing"

	"lintel/internal/syntax"
)

func wrapMethod(body string) string {
	return "class A { void M() { " + body + " } }"
}

func TestParseStatements(t *testing.T) {
	tree := mustParseClean(t, wrapMethod(`
		int i = 0;
		const int k = 2;
		var xs = new List<int>();
		if (i < k) i++; else { i--; }
		while (true) break;
		for (int j = 0, n = 3; j < n; j++, n--) continue;
		for (; ; ) { }
		foreach (var x in xs) { }
		return;
		throw new E();
		;
	`))
	want := map[syntax.Kind]int{
		syntax.LocalDeclStmt: 3,
		syntax.IfStmt:        1,
		syntax.ElseClause:    1,
		syntax.WhileStmt:     1,
		syntax.ForStmt:       2,
		syntax.ForeachStmt:   1,
		syntax.ReturnStmt:    1,
		syntax.ThrowStmt:     1,
		syntax.BreakStmt:     1,
		syntax.ContinueStmt:  1,
		syntax.EmptyStmt:     1,
	}
	for kind, n := range want {
		if got := countKind(tree, kind); got != n {
			t.Fatalf("%s: got %d, want %d", kind, got, n)
		}
	}
	forStmt := findKind(t, tree, syntax.ForStmt)
	if forStmt.Child(syntax.ForDecl).IsZero() {
		t.Fatalf("for declaration missing")
	}
	if forStmt.Child(syntax.ForIncrements).NumSlots() != 3 {
		t.Fatalf("expected two increments")
	}
}

func TestExpressionStatementVersusDeclaration(t *testing.T) {
	tree := mustParseClean(t, wrapMethod("a = b < c; x.y = 1; Foo(a, b); List<int> l;"))
	if got := countKind(tree, syntax.ExprStmt); got != 3 {
		t.Fatalf("expected 3 expression statements, got %d", got)
	}
	if got := countKind(tree, syntax.LocalDeclStmt); got != 1 {
		t.Fatalf("expected 1 declaration, got %d", got)
	}
}

func TestEmbeddedStatementMissing(t *testing.T) {
	res := parseString(t, wrapMethod("if (x) "))
	ifStmt := findKind(t, res.Tree, syntax.IfStmt)
	then := ifStmt.Child(syntax.IfThen)
	if !then.Is(syntax.EmptyStmt) || !then.Node().ContainsError() {
		t.Fatalf("then = %s", then.Kind())
	}
	if countKind(res.Tree, syntax.MethodDecl) != 1 || countKind(res.Tree, syntax.ClassDecl) != 1 {
		t.Fatalf("closing braces must still belong to the method and class")
	}
	if findKind(t, res.Tree, syntax.ClassDecl).Child(syntax.TypeClose).Node().Missing() {
		t.Fatalf("class close brace reported missing")
	}
}
