package driver

import (
	"encoding/json"
	"fmt"

	"lintel/internal/diag"
	"lintel/internal/observ"
	"lintel/internal/source"
)

// TimingDiagnostic turns a timer report into an ObsTimings diagnostic
// for the machine formats. The JSON report rides in the single note.
func TimingDiagnostic(kind, path string, rep observ.Report) (diag.Diagnostic, error) {
	if kind == "" {
		kind = "pipeline"
	}
	data, err := json.Marshal(struct {
		Kind string `json:"kind"`
		Path string `json:"path,omitempty"`
		observ.Report
	}{kind, path, rep})
	if err != nil {
		return diag.Diagnostic{}, fmt.Errorf("timings: %w", err)
	}
	msg := fmt.Sprintf("timings (%s): wall %.2f ms", kind, rep.TotalMS)
	if path != "" {
		msg += ", " + path
	}
	d := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, msg).WithPath(path)
	d.Notes = []diag.Note{{Msg: string(data)}}
	return d, nil
}
