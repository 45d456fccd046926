package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"lintel/internal/diag"
	"lintel/internal/source"
)

func TestJSONFields(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cs", []byte(indexOfSrc))
	diags := []diag.Diagnostic{
		diag.NewRule("indexof-positive", diag.SevCritical, source.Span{File: fileID, Start: 49, End: 52}, "0 is a valid index").
			WithNote(source.Span{File: fileID, Start: 34, End: 41}, "receiver"),
		diag.New(diag.SevInfo, diag.FixNotApplied, source.Span{File: fileID, Start: 0, End: 5}, "fix failed"),
	}

	var buf bytes.Buffer
	if err := JSON(&buf, diags, fs, JSONOpts{PathMode: PathModeBasename, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if out.Count != 2 || len(out.Diagnostics) != 2 || out.Truncated {
		t.Fatalf("unexpected envelope: %+v", out)
	}

	got := out.Diagnostics[0]
	if got.RuleID != "indexof-positive" || got.Code != "RUL3000" || got.Severity != "CRITICAL" {
		t.Fatalf("unexpected identity: %+v", got)
	}
	if got.File != "test.cs" || got.StartOffset != 49 || got.Length != 3 || got.Line != 2 || got.Column != 40 {
		t.Fatalf("unexpected location: %+v", got)
	}
	if len(got.Notes) != 1 || got.Notes[0].Line != 2 || got.Notes[0].Column != 25 {
		t.Fatalf("unexpected notes: %+v", got.Notes)
	}
	if engine := out.Diagnostics[1]; engine.RuleID != "FIX4000" {
		t.Fatalf("engine diagnostics use the code id, got %q", engine.RuleID)
	}
}

func TestJSONMax(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cs", []byte(indexOfSrc))
	var diags []diag.Diagnostic
	for i := range uint32(5) {
		diags = append(diags, diag.NewRule("r", diag.SevMinor, source.Span{File: fileID, Start: i, End: i + 1}, "m"))
	}

	out := BuildDiagnosticsOutput(diags, fs, JSONOpts{Max: 3})
	if out.Count != 3 || !out.Truncated {
		t.Fatalf("expected 3 truncated diagnostics, got %d (truncated=%v)", out.Count, out.Truncated)
	}
}

func TestJSONRawKeys(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cs", []byte(indexOfSrc))
	diags := []diag.Diagnostic{diag.NewRule("r", diag.SevMinor, source.Span{File: fileID, Start: 49, End: 52}, "m")}

	var buf bytes.Buffer
	if err := JSON(&buf, diags, fs, JSONOpts{}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var raw struct {
		Diagnostics []map[string]any `json:"diagnostics"`
	}
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"rule_id", "severity", "message", "file", "start_offset", "length", "line", "column"} {
		if _, ok := raw.Diagnostics[0][key]; !ok {
			t.Fatalf("missing key %q in %v", key, raw.Diagnostics[0])
		}
	}
}
