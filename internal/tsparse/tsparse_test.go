package tsparse_test

import (
	"context"
	"strings"
	"testing"

	"lintel/internal/diag"
	"lintel/internal/source"
	"lintel/internal/tsparse"
)

func parse(t *testing.T, src string) *tsparse.Tree {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("a.cs", []byte(src)))
	tree, err := tsparse.Parse(context.Background(), f)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	t.Cleanup(tree.Close)
	return tree
}

func TestCleanFile(t *testing.T) {
	tree := parse(t, "namespace N { class A { } interface I { } struct S { } }\n")
	if tree.HasError() {
		t.Fatalf("unexpected error nodes")
	}
	if d := tree.Diagnostics(); len(d) != 0 {
		t.Fatalf("unexpected diagnostics: %v", d)
	}
	got := strings.Join(tree.Declarations(), ",")
	if got != "A,I,S" {
		t.Fatalf("declarations = %q", got)
	}
}

func TestErrorsBecomeSyntaxDiagnostics(t *testing.T) {
	tree := parse(t, "class A { void M() { int x = ; } }\n")
	diags := tree.Diagnostics()
	if len(diags) == 0 {
		t.Fatalf("expected diagnostics for broken input")
	}
	for _, d := range diags {
		if !d.Code.IsSyntax() || d.Path != "a.cs" {
			t.Fatalf("unexpected diagnostic %+v", d)
		}
		if d.Code != diag.SynUnexpectedToken && d.Code != diag.SynExpectToken {
			t.Fatalf("unexpected code %s", d.Code.ID())
		}
	}
}

func TestDump(t *testing.T) {
	tree := parse(t, "class A { }\n")
	var sb strings.Builder
	if err := tree.Dump(&sb); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	out := sb.String()
	if !strings.HasPrefix(out, "compilation_unit [0..") {
		t.Fatalf("unexpected dump:\n%s", out)
	}
	if !strings.Contains(out, "name: identifier [6..7) \"A\"") {
		t.Fatalf("dump lacks field names:\n%s", out)
	}
}
