package diagfmt

import (
	"bytes"
	"testing"

	"lintel/internal/diag"
	"lintel/internal/source"
)

func TestShortFormat(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.cs", []byte("class A\n{\n}\n"))
	diags := []diag.Diagnostic{
		diag.NewRule("demo", diag.SevMajor, source.Span{File: id, Start: 8, End: 9}, "brace\nhere").
			WithNote(source.Span{File: id, Start: 0, End: 5}, "class"),
		diag.New(diag.SevBlocker, diag.IOLoadFileError, source.Span{}, "cannot read").WithPath("gone.cs"),
	}
	var buf bytes.Buffer
	if err := Short(&buf, diags, fs, ShortOpts{IncludeNotes: true}); err != nil {
		t.Fatalf("Short: %v", err)
	}
	want := "a.cs:2:1: major demo: brace here\n" +
		"  a.cs:1:1: note: class\n" +
		"gone.cs: blocker " + diag.IOLoadFileError.ID() + ": cannot read\n"
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestShortTruncates(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.cs", []byte("x"))
	d := diag.NewRule("demo", diag.SevInfo, source.Span{File: id, Start: 0, End: 1}, "m")
	var buf bytes.Buffer
	if err := Short(&buf, []diag.Diagnostic{d, d, d}, fs, ShortOpts{Max: 1}); err != nil {
		t.Fatalf("Short: %v", err)
	}
	want := "a.cs:1:1: info demo: m\n... 2 more diagnostic(s) not shown\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
