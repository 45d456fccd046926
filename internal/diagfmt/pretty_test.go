package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"lintel/internal/diag"
	"lintel/internal/source"
)

const indexOfSrc = "class A {\n    bool F(string s) => s.IndexOf(\"x\") > 0;\n}\n"

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("/home/user/project/src/test.cs", []byte(indexOfSrc))
	fs.SetBaseDir("/home/user/project")

	diags := []diag.Diagnostic{
		diag.NewRule("indexof-positive", diag.SevCritical, source.Span{File: fileID, Start: 49, End: 52}, "0 is a valid index"),
	}

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.cs:2:40"},
		{"Relative path", PathModeRelative, "src/test.cs:2:40"},
		{"Basename only", PathModeBasename, "test.cs:2:40"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, diags, fs, PrettyOpts{PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "CRITICAL indexof-positive: 0 is a valid index") {
				t.Errorf("Expected severity, rule id and message, got:\n%s", output)
			}
		})
	}
}

func TestPrettySnippet(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cs", []byte(indexOfSrc))
	diags := []diag.Diagnostic{
		diag.NewRule("indexof-positive", diag.SevCritical, source.Span{File: fileID, Start: 49, End: 52}, "0 is a valid index"),
	}

	var buf bytes.Buffer
	Pretty(&buf, diags, fs, PrettyOpts{PathMode: PathModeBasename})

	want := "test.cs:2:40: CRITICAL indexof-positive: 0 is a valid index\n" +
		"2 |     bool F(string s) => s.IndexOf(\"x\") > 0;\n" +
		"  | " + strings.Repeat(" ", 39) + "^~~\n"
	if got := buf.String(); got != want {
		t.Fatalf("pretty output mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestPrettyContextLines(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cs", []byte(indexOfSrc))
	diags := []diag.Diagnostic{
		diag.NewRule("indexof-positive", diag.SevCritical, source.Span{File: fileID, Start: 49, End: 52}, "m"),
	}

	var buf bytes.Buffer
	Pretty(&buf, diags, fs, PrettyOpts{PathMode: PathModeBasename, Context: 1})
	output := buf.String()
	for _, want := range []string{"1 | class A {\n", "3 | }\n"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected context line %q, got:\n%s", want, output)
		}
	}
}

func TestPrettyCaretUnderWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("wide.cs", []byte("var s = \"日本\"; int y;\n"))
	diags := []diag.Diagnostic{
		diag.NewRule("r", diag.SevMinor, source.Span{File: fileID, Start: 18, End: 21}, "m"),
	}

	var buf bytes.Buffer
	Pretty(&buf, diags, fs, PrettyOpts{PathMode: PathModeBasename})

	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	if want := "  | " + strings.Repeat(" ", 16) + "^~~"; lines[2] != want {
		t.Fatalf("caret line = %q, want %q", lines[2], want)
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cs", []byte(indexOfSrc))
	d := diag.NewRule("indexof-positive", diag.SevCritical, source.Span{File: fileID, Start: 49, End: 52}, "m").
		WithNote(source.Span{File: fileID, Start: 34, End: 41}, "receiver is a string")

	var buf bytes.Buffer
	Pretty(&buf, []diag.Diagnostic{d}, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	if !strings.Contains(buf.String(), "note: test.cs:2:25: receiver is a string") {
		t.Fatalf("expected note with location, got:\n%s", buf.String())
	}

	buf.Reset()
	Pretty(&buf, []diag.Diagnostic{d}, fs, PrettyOpts{PathMode: PathModeBasename})
	if strings.Contains(buf.String(), "note:") {
		t.Fatalf("notes must be hidden by default, got:\n%s", buf.String())
	}
}

func TestPrettyWithoutFile(t *testing.T) {
	fs := source.NewFileSet()
	d := diag.New(diag.SevBlocker, diag.IOLoadFileError, source.Span{File: 7}, "cannot read").WithPath("gone.cs")

	var buf bytes.Buffer
	Pretty(&buf, []diag.Diagnostic{d}, fs, PrettyOpts{PathMode: PathModeAuto})
	if got, want := buf.String(), "gone.cs: BLOCKER IO5000: cannot read\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cs", []byte(indexOfSrc))
	diags := []diag.Diagnostic{
		diag.NewRule("indexof-positive", diag.SevCritical, source.Span{File: fileID, Start: 49, End: 52}, "m"),
	}

	var plain, colored bytes.Buffer
	Pretty(&plain, diags, fs, PrettyOpts{PathMode: PathModeBasename})
	Pretty(&colored, diags, fs, PrettyOpts{PathMode: PathModeBasename, Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("plain output has escape codes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("colored output has no escape codes: %q", colored.String())
	}
}
