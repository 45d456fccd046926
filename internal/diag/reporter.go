package diag

import "lintel/internal/source"

// Reporter receives diagnostics from the lexer and the parser as they are
// found. The parser itself is one: it counts errors and forwards them.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// Syntax reports a lexer or parser error. A nil r drops it.
func Syntax(r Reporter, code Code, primary source.Span, msg string) {
	if r != nil {
		r.Report(code, SevCritical, primary, msg, nil)
	}
}

// BagReporter stores everything it receives in Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag != nil {
		r.Bag.Add(Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes})
	}
}
