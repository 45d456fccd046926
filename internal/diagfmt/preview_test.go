package diagfmt

import (
	"bytes"
	"testing"

	"lintel/internal/fix"
	"lintel/internal/source"
)

func TestFixPlanPreview(t *testing.T) {
	fs := source.NewFileSet()
	content := "class A {\n    int x;\n    int y;\n}\n"
	fileID := fs.AddVirtual("a.cs", []byte(content))

	res := &fix.FileResult{
		Path: "a.cs",
		File: fileID,
		Applied: []fix.AppliedFix{{
			Title:         "Remove field",
			RuleID:        "unused-field",
			Applicability: fix.AlwaysSafe,
			Edit:          fix.TextEdit{Span: source.Span{File: fileID, Start: 21, End: 32}, OldText: "    int y;\n"},
		}},
		Skipped: []fix.SkippedFix{{Title: "Remove field", Reason: "conflicts with another fix"}},
	}

	var buf bytes.Buffer
	FixPlan(&buf, fs, res, PrettyOpts{PathMode: PathModeBasename})

	want := "a.cs: Remove field (unused-field, always-safe)\n" +
		"  -     int y;\n" +
		"  - }\n" +
		"  + }\n" +
		"a.cs: skipped Remove field: conflicts with another fix\n"
	if got := buf.String(); got != want {
		t.Fatalf("plan mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestFixPreviewOutOfRange(t *testing.T) {
	fs := source.NewFileSet()
	if _, _, err := previewEdit(fs, fix.TextEdit{Span: source.Span{File: 3}}); err == nil {
		t.Fatalf("expected error for unknown file")
	}
}
