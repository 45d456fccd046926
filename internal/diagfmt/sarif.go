package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"lintel/internal/diag"
	"lintel/internal/source"
)

const (
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
	sarifVersion = "2.1.0"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool              sarifTool         `json:"tool"`
	AutomationDetails sarifAutomation   `json:"automationDetails"`
	Invocations       []sarifInvocation `json:"invocations,omitempty"`
	ColumnKind        string            `json:"columnKind"`
	Results           []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID                   string             `json:"id"`
	ShortDescription     sarifMessage       `json:"shortDescription"`
	DefaultConfiguration sarifConfiguration `json:"defaultConfiguration"`
	Properties           *sarifProperties   `json:"properties,omitempty"`
}

type sarifConfiguration struct {
	Level string `json:"level"`
}

type sarifProperties struct {
	Tags []string `json:"tags,omitempty"`
}

type sarifAutomation struct {
	GUID string `json:"guid"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex *int            `json:"ruleIndex,omitempty"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           *sarifRegion  `json:"region,omitempty"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
	ByteOffset  uint32 `json:"byteOffset"`
	ByteLength  uint32 `json:"byteLength"`
}

// SarifLevel maps a severity onto the three SARIF result levels.
func SarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevBlocker, diag.SevCritical:
		return "error"
	case diag.SevMajor, diag.SevMinor:
		return "warning"
	default:
		return "note"
	}
}

// Sarif форматирует диагностики в SARIF формат (v2.1.0). Columns are counted
// in code points, as declared by the run's columnKind.
func Sarif(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, meta SarifRunMeta) error {
	runID := meta.RunID
	if runID == "" {
		runID = uuid.NewString()
	} else if _, err := uuid.Parse(runID); err != nil {
		return fmt.Errorf("sarif run id: %w", err)
	}

	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:           meta.ToolName,
			Version:        meta.ToolVersion,
			InformationURI: meta.InformationURI,
		}},
		AutomationDetails: sarifAutomation{GUID: runID},
		ColumnKind:        "unicodeCodePoints",
		Results:           make([]sarifResult, 0, len(diags)),
	}
	ruleIndex := make(map[string]int, len(meta.Rules))
	for i, r := range meta.Rules {
		ruleIndex[r.ID] = i
		sr := sarifRule{
			ID:                   r.ID,
			ShortDescription:     sarifMessage{Text: r.Title},
			DefaultConfiguration: sarifConfiguration{Level: SarifLevel(r.Severity)},
		}
		if len(r.Tags) > 0 {
			sr.Properties = &sarifProperties{Tags: r.Tags}
		}
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sr)
	}

	failed := false
	for i := range diags {
		d := &diags[i]
		res := sarifResult{
			RuleID:  d.ID(),
			Level:   SarifLevel(d.Severity),
			Message: sarifMessage{Text: d.Message},
		}
		if idx, ok := ruleIndex[res.RuleID]; ok {
			res.RuleIndex = &idx
		}
		if d.Code == diag.RuleFault || d.Code == diag.IOLoadFileError {
			failed = true
		}
		if path := diagPath(fs, d, PathModeRelative); path != "" {
			loc := sarifPhysical{ArtifactLocation: sarifArtifact{URI: artifactURI(path)}}
			if f, ok := fileOf(fs, d); ok {
				loc.Region = region(fs, f, d.Primary)
			}
			res.Locations = []sarifLocation{{PhysicalLocation: loc}}
		}
		run.Results = append(run.Results, res)
	}
	run.Invocations = []sarifInvocation{{Arguments: meta.InvocationArgs, ExecutionSuccessful: !failed}}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(sarifLog{Schema: sarifSchema, Version: sarifVersion, Runs: []sarifRun{run}})
}

func region(fs *source.FileSet, f *source.File, sp source.Span) *sarifRegion {
	start, end := fs.Resolve(sp)
	return &sarifRegion{
		StartLine:   start.Line,
		StartColumn: runeColumn(f.GetLine(start.Line), start.Col),
		EndLine:     end.Line,
		EndColumn:   runeColumn(f.GetLine(end.Line), end.Col),
		ByteOffset:  sp.Start,
		ByteLength:  sp.Len(),
	}
}

// runeColumn converts a 1-based byte column into a 1-based code point column.
func runeColumn(line string, col uint32) int {
	n := min(int(col-1), len(line))
	return utf8.RuneCountInString(line[:max(n, 0)]) + 1
}

func artifactURI(path string) string {
	p := filepath.ToSlash(path)
	if filepath.IsAbs(path) {
		return (&url.URL{Scheme: "file", Path: p}).String()
	}
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
