package diag

import (
	"lintel/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is an immutable finding. Rule findings carry Code == RuleIssue
// and the reporting rule's id in RuleID; RuleFault diagnostics carry the id of
// the rule that failed.
type Diagnostic struct {
	Severity Severity
	Code     Code
	RuleID   string
	Message  string
	Primary  source.Span
	Path     string // для файлов, которых нет в FileSet
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

// NewRule builds a finding of rule ruleID.
func NewRule(ruleID string, sev Severity, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: RuleIssue, RuleID: ruleID, Primary: primary, Message: msg}
}

// ID returns the rule id for rule diagnostics and the code id otherwise.
func (d Diagnostic) ID() string {
	if d.RuleID != "" && d.Code == RuleIssue {
		return d.RuleID
	}
	return d.Code.ID()
}

// WithNote returns a copy of d with one more note. The notes slice is
// cloned so copies never share a backing array.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	notes := make([]Note, len(d.Notes), len(d.Notes)+1)
	copy(notes, d.Notes)
	d.Notes = append(notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithPath(path string) Diagnostic {
	d.Path = path
	return d
}
