package diagfmt

import (
	"encoding/json"
	"io"

	"lintel/internal/diag"
	"lintel/internal/source"
)

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message     string `json:"message"`
	File        string `json:"file,omitempty"`
	StartOffset uint32 `json:"start_offset"`
	Length      uint32 `json:"length"`
	Line        uint32 `json:"line,omitempty"`
	Column      uint32 `json:"column,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате. Rule findings
// carry the rule id; engine diagnostics carry their code id in the same field.
type DiagnosticJSON struct {
	RuleID      string     `json:"rule_id"`
	Code        string     `json:"code"`
	Severity    string     `json:"severity"`
	Message     string     `json:"message"`
	File        string     `json:"file"`
	StartOffset uint32     `json:"start_offset"`
	Length      uint32     `json:"length"`
	Line        uint32     `json:"line,omitempty"`
	Column      uint32     `json:"column,omitempty"`
	EndLine     uint32     `json:"end_line,omitempty"`
	EndColumn   uint32     `json:"end_column,omitempty"`
	Notes       []NoteJSON `json:"notes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Truncated   bool             `json:"truncated,omitempty"`
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(diags []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	n := len(diags)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, n),
		Truncated:   n < len(diags),
	}
	for i := range n {
		d := &diags[i]
		item := DiagnosticJSON{
			RuleID:      d.ID(),
			Code:        d.Code.ID(),
			Severity:    d.Severity.String(),
			Message:     d.Message,
			File:        diagPath(fs, d, opts.PathMode),
			StartOffset: d.Primary.Start,
			Length:      d.Primary.Len(),
		}
		if _, ok := fileOf(fs, d); ok {
			start, end := fs.Resolve(d.Primary)
			item.Line, item.Column = start.Line, start.Col
			item.EndLine, item.EndColumn = end.Line, end.Col
		}
		if opts.IncludeNotes && len(d.Notes) > 0 {
			item.Notes = make([]NoteJSON, 0, len(d.Notes))
			for _, note := range d.Notes {
				item.Notes = append(item.Notes, makeNote(fs, note, opts.PathMode))
			}
		}
		out.Diagnostics = append(out.Diagnostics, item)
	}
	out.Count = len(out.Diagnostics)
	return out
}

func makeNote(fs *source.FileSet, n diag.Note, mode PathMode) NoteJSON {
	note := NoteJSON{Message: n.Msg, StartOffset: n.Span.Start, Length: n.Span.Len()}
	if fs == nil || int(n.Span.File) >= fs.Len() {
		return note
	}
	note.File = displayPath(fs, fs.Get(n.Span.File), mode)
	start, _ := fs.Resolve(n.Span)
	note.Line, note.Column = start.Line, start.Col
	return note
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(diags, fs, opts))
}
