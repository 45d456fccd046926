package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"lintel/internal/diag"
	"lintel/internal/source"
)

func TestSarifLog(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("src/wide.cs", []byte("var s = \"日本\"; int y;\n"))
	diags := []diag.Diagnostic{
		diag.NewRule("constant-condition", diag.SevMajor, source.Span{File: fileID, Start: 18, End: 21}, "always true"),
		diag.New(diag.SevInfo, diag.FixNotApplied, source.Span{File: fileID, Start: 0, End: 3}, "fix failed"),
	}
	meta := SarifRunMeta{
		ToolName:    "lintel",
		ToolVersion: "0.1.0",
		Rules: []SarifRule{
			{ID: "indexof-positive", Title: "IndexOf checks should not be for positive numbers", Severity: diag.SevCritical},
			{ID: "constant-condition", Title: "Conditions should not always evaluate to the same value", Severity: diag.SevMajor},
		},
		RunID: "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
	}

	var buf bytes.Buffer
	if err := Sarif(&buf, diags, fs, meta); err != nil {
		t.Fatalf("Sarif: %v", err)
	}
	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected log header: %+v", log)
	}
	run := log.Runs[0]
	if run.AutomationDetails.GUID != meta.RunID {
		t.Fatalf("run guid = %q", run.AutomationDetails.GUID)
	}
	if len(run.Tool.Driver.Rules) != 2 || run.Tool.Driver.Rules[0].DefaultConfiguration.Level != "error" {
		t.Fatalf("unexpected rules: %+v", run.Tool.Driver.Rules)
	}
	if len(run.Results) != 2 {
		t.Fatalf("results = %d", len(run.Results))
	}

	res := run.Results[0]
	if res.RuleID != "constant-condition" || res.RuleIndex == nil || *res.RuleIndex != 1 || res.Level != "warning" {
		t.Fatalf("unexpected result: %+v", res)
	}
	loc := res.Locations[0].PhysicalLocation
	if loc.ArtifactLocation.URI != "src/wide.cs" {
		t.Fatalf("uri = %q", loc.ArtifactLocation.URI)
	}
	// 18 bytes but 14 code points precede "int".
	if r := loc.Region; r == nil || r.StartLine != 1 || r.StartColumn != 15 || r.EndColumn != 18 || r.ByteOffset != 18 || r.ByteLength != 3 {
		t.Fatalf("unexpected region: %+v", loc.Region)
	}

	if fixRes := run.Results[1]; fixRes.RuleIndex != nil || fixRes.Level != "note" || fixRes.RuleID != "FIX4000" {
		t.Fatalf("unexpected engine result: %+v", fixRes)
	}
	if !run.Invocations[0].ExecutionSuccessful {
		t.Fatalf("run without faults must be successful")
	}
}

func TestSarifGeneratesRunID(t *testing.T) {
	fs := source.NewFileSet()
	var buf bytes.Buffer
	if err := Sarif(&buf, nil, fs, SarifRunMeta{ToolName: "lintel"}); err != nil {
		t.Fatalf("Sarif: %v", err)
	}
	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, err := uuid.Parse(log.Runs[0].AutomationDetails.GUID); err != nil {
		t.Fatalf("run guid is not a uuid: %v", err)
	}
	if log.Runs[0].Results == nil {
		t.Fatalf("results must be an empty array, not null")
	}
}

func TestSarifRejectsBadRunID(t *testing.T) {
	var buf bytes.Buffer
	if err := Sarif(&buf, nil, source.NewFileSet(), SarifRunMeta{RunID: "nope"}); err == nil {
		t.Fatalf("expected error for malformed run id")
	}
}

func TestSarifLevels(t *testing.T) {
	cases := map[diag.Severity]string{
		diag.SevBlocker:  "error",
		diag.SevCritical: "error",
		diag.SevMajor:    "warning",
		diag.SevMinor:    "warning",
		diag.SevInfo:     "note",
	}
	for sev, want := range cases {
		if got := SarifLevel(sev); got != want {
			t.Fatalf("SarifLevel(%s) = %q, want %q", sev, got, want)
		}
	}
}
