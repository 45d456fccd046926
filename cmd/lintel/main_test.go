package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

const redundantSrc = "class A\n{\n    public A() { }\n}\n"

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// execute runs the command tree with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root, finish := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	finish()
	return out.String(), err
}

func TestDiagJSONReportsFindings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.cs"), redundantSrc)
	writeFile(t, filepath.Join(dir, "clean.cs"), "class B { }\n")

	out, err := execute(t, "diag", "--format", "json", "--ui", "off", "--color", "off", dir)
	var ee *exitError
	if !errors.As(err, &ee) || ee.code != 1 {
		t.Fatalf("want exit status 1, got %v", err)
	}
	var payload struct {
		Diagnostics []struct {
			RuleID string `json:"rule_id"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(payload.Diagnostics) != 1 || payload.Diagnostics[0].RuleID != "redundant-ctor-dtor" {
		t.Fatalf("unexpected diagnostics:\n%s", out)
	}
}

func TestDiagFailOnThreshold(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.cs"), redundantSrc)

	out, err := execute(t, "diag", "--ui", "off", "--color", "off", "--fail-on", "major", dir)
	if err != nil {
		t.Fatalf("minor finding must not fail with --fail-on major: %v", err)
	}
	if !strings.Contains(out, "redundant-ctor-dtor") || !strings.Contains(out, "1 file(s), 1 diagnostic(s)") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestDiagShortFormat(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.cs"), redundantSrc)

	out, err := execute(t, "diag", "--format", "short", "--path-mode", "basename", "--ui", "off", "--fail-on", "blocker", dir)
	if err != nil {
		t.Fatalf("diag: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "a.cs:") || !strings.Contains(lines[0], ": minor redundant-ctor-dtor: ") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestWantProgress(t *testing.T) {
	if on, err := wantProgress("ON", false, "json"); err != nil || !on {
		t.Fatalf("--ui on = %v, %v", on, err)
	}
	if on, _ := wantProgress("on", true, "pretty"); on {
		t.Fatalf("--quiet must hide the progress view")
	}
	if on, _ := wantProgress("auto", false, "json"); on {
		t.Fatalf("auto must stay off for machine formats")
	}
	if _, err := wantProgress("sometimes", false, "pretty"); err == nil {
		t.Fatalf("expected an error for an unknown mode")
	}
}

func TestDiagSarif(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "clean.cs"), "class B { }\n")

	out, err := execute(t, "diag", "--format", "sarif", "--ui", "off", dir)
	if err != nil {
		t.Fatalf("clean tree: %v", err)
	}
	var log struct {
		Version string `json:"version"`
		Runs    []struct {
			Results []json.RawMessage `json:"results"`
		} `json:"runs"`
	}
	if err := json.Unmarshal([]byte(out), &log); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 || len(log.Runs[0].Results) != 0 {
		t.Fatalf("unexpected sarif:\n%s", out)
	}
}

func TestFixDryRunLeavesFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.cs")
	writeFile(t, path, redundantSrc)

	out, err := execute(t, "fix", "--all", "--dry-run", "--ui", "off", "--color", "off", dir)
	if err != nil {
		t.Fatalf("fix: %v", err)
	}
	if !strings.Contains(out, "dry run: 1 fix(es) not written") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if data, _ := os.ReadFile(path); string(data) != redundantSrc {
		t.Fatalf("dry run wrote %q", data)
	}

	if _, err := execute(t, "fix", "--all", "--ui", "off", dir); err != nil {
		t.Fatalf("fix: %v", err)
	}
	if data, _ := os.ReadFile(path); string(data) != "class A\n{\n}\n" {
		t.Fatalf("fixed content %q", data)
	}
}

func TestFixFlagConflicts(t *testing.T) {
	dir := t.TempDir()
	if _, err := execute(t, "fix", "--all", "--once", dir); err == nil {
		t.Fatalf("--all with --once must fail")
	}
	if _, err := execute(t, "fix", "--id", "x", "--all", dir); err == nil {
		t.Fatalf("--id with --all must fail")
	}
}

func TestRulesJSON(t *testing.T) {
	out, err := execute(t, "rules", "--format", "json")
	if err != nil {
		t.Fatalf("rules: %v", err)
	}
	var infos []ruleInfo
	if err := json.Unmarshal([]byte(out), &infos); err != nil {
		t.Fatalf("decode: %v", err)
	}
	fixable := map[string]bool{}
	for _, r := range infos {
		fixable[r.ID] = r.Fixable
	}
	if len(infos) != 4 || !fixable["redundant-ctor-dtor"] || fixable["constant-condition"] {
		t.Fatalf("unexpected rules: %+v", infos)
	}
	if _, err := execute(t, "rules", "no-such-rule"); err == nil {
		t.Fatalf("unknown rule id must fail")
	}
}

func TestTokenizeAndParse(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.cs")
	writeFile(t, path, redundantSrc)

	out, err := execute(t, "parse", "--format", "text", path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if out != redundantSrc {
		t.Fatalf("tree text %q", out)
	}
	out, err = execute(t, "tokenize", "--format", "json", path)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if !json.Valid([]byte(out)) {
		t.Fatalf("tokens are not json:\n%s", out)
	}
}

func TestVersionJSON(t *testing.T) {
	out, err := execute(t, "version", "--format", "json", "--full")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var p versionPayload
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Tool != "lintel" || p.Version == "" || p.GitCommit == "" || p.BuildDate == "" {
		t.Fatalf("payload %+v", p)
	}
}

func settingsCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("color", "auto", "")
	cmd.Flags().Int("max-diagnostics", 0, "")
	cmd.Flags().String("format", "pretty", "")
	addAnalysisFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd
}

func TestSettingsLayering(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "lintel.toml"), "[analysis]\njobs = 2\n\n[output]\nformat = \"json\"\n")

	s, err := loadSettings(settingsCmd(t), dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !s.Found || s.Analysis.Jobs != 2 || s.Output.Format != "json" {
		t.Fatalf("file layer: %+v", s)
	}

	t.Setenv("LINTEL_ANALYSIS_JOBS", "3")
	t.Setenv("LINTEL_RULES_ONLY", "redundant-ctor-dtor,indexof-positive")
	s, err = loadSettings(settingsCmd(t), dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Analysis.Jobs != 3 || len(s.Only) != 2 {
		t.Fatalf("env layer: jobs=%d only=%v", s.Analysis.Jobs, s.Only)
	}

	// format keeps the file value: an untouched flag default does not win
	s, err = loadSettings(settingsCmd(t, "--jobs", "5"), dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Analysis.Jobs != 5 || s.Output.Format != "json" {
		t.Fatalf("flag layer: jobs=%d format=%s", s.Analysis.Jobs, s.Output.Format)
	}
}

func TestSettingsRejectsBadJobs(t *testing.T) {
	if _, err := loadSettings(settingsCmd(t, "--jobs", "-1"), t.TempDir()); err == nil {
		t.Fatalf("negative jobs must fail")
	}
}
