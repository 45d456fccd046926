package parser_test

import (
	"errors"
	"testing"

	"lintel/internal/diag"
	"lintel/internal/lexer"
	"lintel/internal/parser"
	"lintel/internal/source"
	"lintel/internal/testkit"
)

var seeds = []string{
	"",
	"using System;\nusing System.Collections.Generic;\n",
	"namespace N.M { class A { } }",
	"class A\n{\n    // lead\n    public A() : base() { } // tail\n    ~A() { }\n}\n",
	"class A { int x = 1, y; static void M(ref int a, out int b) { b = a; } }",
	"class A { bool F(List<int> xs) => xs.IndexOf(3) > -1; }",
	"class A { void M() { for (int i = 0; i < 10; i++) { } foreach (var x in xs) break; } }",
	"#region R\r\nclass A { void M() { if (a) return; else { throw new E(\"x\"); } } }\r\n#endregion\r\n",
	"/* doc */ interface I<T> : IList<T>, ICollection { }",
	// broken input must round-trip too
	"class A { void M( { x = ; } ",
	"class { ) ] int",
	"}}}",
	"class A { public }",
	"class A { void M() { if (x) } }",
}

func TestRoundTrip(t *testing.T) {
	for _, src := range seeds {
		res := parseString(t, src)
		if got := res.Tree.Text(); got != src {
			t.Fatalf("round trip mismatch:\n got %q\nwant %q", got, src)
		}
	}
}

func TestSpanInvariants(t *testing.T) {
	for _, src := range seeds {
		fs := source.NewFileSet()
		sf := fs.Get(fs.AddVirtual("seed.cs", []byte(src)))
		res, err := parser.Parse(sf, parser.Options{})
		if err != nil {
			t.Fatalf("parse %q: %v", src, err)
		}
		if err := testkit.CheckRoundTrip(res.Tree, sf); err != nil {
			t.Fatalf("%q: %v", src, err)
		}
		if err := testkit.CheckSpanInvariants(res.Tree); err != nil {
			t.Fatalf("%q: %v", src, err)
		}
	}
}

func TestParseErrorsRecovered(t *testing.T) {
	res := parseString(t, "class A { void M( { x = ; } ")
	if len(res.Diagnostics) == 0 {
		t.Fatalf("expected diagnostics")
	}
	if !res.Tree.ContainsError() {
		t.Fatalf("tree must be flagged as containing errors")
	}
	for _, d := range res.Diagnostics {
		if d.Path != "test.cs" {
			t.Fatalf("diagnostic path = %q", d.Path)
		}
		if !d.Code.IsSyntax() {
			t.Fatalf("unexpected code %s", d.Code.ID())
		}
	}
}

func TestParseRejectsInvalidInput(t *testing.T) {
	cases := map[string]diag.Code{
		"class A { \x00 }": diag.LexNulByte,
		"class \xff A":     diag.LexInvalidUTF8,
	}
	for src, code := range cases {
		fs := source.NewFileSet()
		id := fs.AddVirtual("bad.cs", []byte(src))
		_, err := parser.Parse(fs.Get(id), parser.Options{})
		var pe *parser.ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("%q: expected ParseError, got %v", src, err)
		}
		var ie *lexer.InputError
		if !errors.As(err, &ie) || ie.Code != code {
			t.Fatalf("%q: expected %s, got %v", src, code.ID(), err)
		}
	}
}

func TestParseRejectsOversizedInput(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("big.cs", []byte("class A { }"))
	_, err := parser.Parse(fs.Get(id), parser.Options{MaxFileSize: 4})
	var pe *parser.ParseError
	if !errors.As(err, &pe) || pe.Err.Code != diag.LexFileTooLarge {
		t.Fatalf("expected file too large, got %v", err)
	}
}

func TestMaxErrorsLimitsDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("e.cs", []byte("class A { int } class B { int } class C { int }"))
	res, err := parser.Parse(fs.Get(id), parser.Options{MaxErrors: 2})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(res.Diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d: %s", len(res.Diagnostics), diagnosticsSummary(res.Diagnostics))
	}
}

func TestReporterReceivesDiagnostics(t *testing.T) {
	bag := diag.NewBag(10)
	fs := source.NewFileSet()
	id := fs.AddVirtual("e.cs", []byte("class A { int }"))
	res, err := parser.Parse(fs.Get(id), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if bag.Len() == 0 || bag.Len() != len(res.Diagnostics) {
		t.Fatalf("reporter got %d, result has %d", bag.Len(), len(res.Diagnostics))
	}
}
