package parser_test

import (
	"testing"

	"lintel/internal/syntax"
)

func exprOf(t *testing.T, expr string) syntax.Ref {
	t.Helper()
	tree := mustParseClean(t, "class A { object F() => "+expr+"; }")
	clause := findKind(t, tree, syntax.ArrowExpressionClause)
	return clause.Child(syntax.ArrowExpr)
}

func TestPrecedence(t *testing.T) {
	cases := []struct {
		src  string
		kind syntax.Kind
		left string
	}{
		{"a + b * c", syntax.AddExpr, "a"},
		{"a * b + c", syntax.AddExpr, "a * b"},
		{"a - b - c", syntax.SubtractExpr, "a - b"},
		{"a < b == c", syntax.EqualsExpr, "a < b"},
		{"a || b && c", syntax.LogicalOrExpr, "a"},
		{"a ?? b ?? c", syntax.CoalesceExpr, "a"},
		{"xs.IndexOf(x) > -1", syntax.GreaterThanExpr, "xs.IndexOf(x)"},
		{"a = b = c", syntax.AssignExpr, "a"},
		{"a ? b : c", syntax.ConditionalExpr, "a"},
		{"x is string", syntax.IsExpr, "x"},
		{"-1 < a", syntax.LessThanExpr, "-1"},
	}
	for _, tc := range cases {
		e := exprOf(t, tc.src)
		if e.Kind() != tc.kind {
			t.Fatalf("%q: kind %s, want %s", tc.src, e.Kind(), tc.kind)
		}
		if got := e.Child(0).TrimmedText(); got != tc.left {
			t.Fatalf("%q: left %q, want %q", tc.src, got, tc.left)
		}
	}
}

func TestPostfixAndPrimary(t *testing.T) {
	cases := map[string]syntax.Kind{
		"a.b.c":           syntax.MemberAccessExpr,
		"f(1, \"s\")":     syntax.InvocationExpr,
		"xs[0]":           syntax.ElementAccessExpr,
		"i++":             syntax.PostIncrementExpr,
		"new List<int>()": syntax.ObjectCreationExpr,
		"typeof(int)":     syntax.TypeofExpr,
		"(a)":             syntax.ParenExpr,
		"this":            syntax.ThisExpr,
		"base.M()":        syntax.InvocationExpr,
		"!ok":             syntax.LogicalNotExpr,
		"'c'":             syntax.CharLiteral,
		"null":            syntax.NullLiteral,
		"1.5f":            syntax.NumericLiteral,
		"string.Empty":    syntax.MemberAccessExpr,
	}
	for src, kind := range cases {
		if got := exprOf(t, src).Kind(); got != kind {
			t.Fatalf("%q: kind %s, want %s", src, got, kind)
		}
	}
}

func TestMissingExpression(t *testing.T) {
	res := parseString(t, "class A { int x = ; }")
	if len(res.Diagnostics) == 0 {
		t.Fatalf("expected a diagnostic")
	}
	decl := findKind(t, res.Tree, syntax.EqualsValueClause)
	if !decl.Child(syntax.EqualsValue).Node().ContainsError() {
		t.Fatalf("missing expression must be flagged")
	}
}
