package parser_test

import (
	"testing"

	"lintel/internal/syntax"
	"lintel/internal/token"
)

func TestParseTypeDeclarations(t *testing.T) {
	tree := mustParseClean(t, "namespace N { public abstract class A<T> : B, IList<T> { } interface I { } struct S { }; }")
	if countKind(tree, syntax.NamespaceDecl) != 1 {
		t.Fatalf("expected a namespace")
	}
	class := findKind(t, tree, syntax.ClassDecl)
	if got := class.Child(syntax.TypeName).TrimmedText(); got != "A" {
		t.Fatalf("class name = %q", got)
	}
	if class.Child(syntax.TypeModifiers).NumSlots() != 2 {
		t.Fatalf("expected two modifiers")
	}
	if class.Child(syntax.TypeTypeParams).IsZero() {
		t.Fatalf("type parameters missing")
	}
	bases := class.Child(syntax.TypeBaseList).Child(syntax.BaseTypes)
	if bases.NumSlots() != 3 {
		t.Fatalf("expected 2 base types and a comma, got %d slots", bases.NumSlots())
	}
	if !bases.Child(2).Is(syntax.GenericName) {
		t.Fatalf("second base = %s", bases.Child(2).Kind())
	}
	if countKind(tree, syntax.InterfaceDecl) != 1 {
		t.Fatalf("expected an interface")
	}
	st := findKind(t, tree, syntax.StructDecl)
	if st.Child(syntax.TypeSemicolon).IsZero() {
		t.Fatalf("trailing ';' of struct lost")
	}
}

func TestParseConstructorAndDestructor(t *testing.T) {
	tree := mustParseClean(t, "class A { A(int x) : base(x) { } static A() { } ~A() { } void A2() { } }")
	if n := countKind(tree, syntax.ConstructorDecl); n != 2 {
		t.Fatalf("expected 2 constructors, got %d", n)
	}
	ctor := findKind(t, tree, syntax.ConstructorDecl)
	init := ctor.Child(syntax.CtorInitializer)
	if !init.Is(syntax.ConstructorInitializer) {
		t.Fatalf("initializer = %s", init.Kind())
	}
	if init.Child(syntax.InitKeyword).TokenKind() != token.KwBase {
		t.Fatalf("initializer keyword = %s", init.Child(syntax.InitKeyword).TokenKind())
	}
	if init.Child(syntax.InitArgs).Child(syntax.DelimItems).NumSlots() != 1 {
		t.Fatalf("expected one argument")
	}
	if countKind(tree, syntax.DestructorDecl) != 1 {
		t.Fatalf("expected a destructor")
	}
	if countKind(tree, syntax.MethodDecl) != 1 {
		t.Fatalf("expected a method")
	}
}

func TestParseMembers(t *testing.T) {
	tree := mustParseClean(t, `class A {
	private readonly int x = 1, y;
	public static string Name(ref int a, params object[] rest) => "n";
	abstract void M<T>(T? t);
	List<int> xs;
}`)
	if n := countKind(tree, syntax.FieldDecl); n != 2 {
		t.Fatalf("expected 2 fields, got %d", n)
	}
	if n := countKind(tree, syntax.VariableDeclarator); n != 3 {
		t.Fatalf("expected 3 declarators, got %d", n)
	}
	if n := countKind(tree, syntax.MethodDecl); n != 2 {
		t.Fatalf("expected 2 methods, got %d", n)
	}
	m := findKind(t, tree, syntax.MethodDecl)
	if m.Child(syntax.MethodExprBody).IsZero() || m.Child(syntax.MethodSemicolon).IsZero() {
		t.Fatalf("expression body not parsed")
	}
	if countKind(tree, syntax.ArrayType) != 1 || countKind(tree, syntax.NullableType) != 1 {
		t.Fatalf("array/nullable types not parsed")
	}
}

func TestRecoveryKeepsFollowingMembers(t *testing.T) {
	res := parseString(t, "class A { ) ) void M() { } }")
	if len(res.Diagnostics) == 0 {
		t.Fatalf("expected diagnostics")
	}
	if countKind(res.Tree, syntax.KindError) == 0 {
		t.Fatalf("skipped tokens must be kept in an error node")
	}
	if countKind(res.Tree, syntax.MethodDecl) != 1 {
		t.Fatalf("method after garbage lost")
	}
}

func TestMissingCloseBrace(t *testing.T) {
	res := parseString(t, "class A { void M() { }")
	class := findKind(t, res.Tree, syntax.ClassDecl)
	closeTok := class.Child(syntax.TypeClose)
	if !closeTok.Node().Missing() {
		t.Fatalf("expected a missing '}'")
	}
	if closeTok.FullSpan().Len() != 0 {
		t.Fatalf("missing token must be zero-width")
	}
}
