package rule

import (
	"context"

	"lintel/internal/diag"
	"lintel/internal/semantic"
	"lintel/internal/source"
	"lintel/internal/syntax"
)

// Sink receives the findings of one task. *diag.Collector is a Sink.
type Sink interface {
	Report(d diag.Diagnostic) error
}

// Context is what an action sees. The dispatcher owns it and points it at
// the current node or symbol before each call; actions must not keep it.
type Context struct {
	ctx      context.Context
	tree     *syntax.Tree
	model    *semantic.Model
	desc     *Descriptor
	severity diag.Severity
	sink     Sink

	node   syntax.Ref
	symbol *semantic.Symbol
}

// NewContext prepares a context for running d over tree with findings going
// to sink at severity sev.
func NewContext(ctx context.Context, tree *syntax.Tree, model *semantic.Model, d *Descriptor, sev diag.Severity, sink Sink) *Context {
	return &Context{ctx: ctx, tree: tree, model: model, desc: d, severity: sev, sink: sink}
}

// Visit points the context at a node (symbol zero) or at a symbol (node zero).
func (c *Context) Visit(node syntax.Ref, sym *semantic.Symbol) {
	c.node, c.symbol = node, sym
}

func (c *Context) Context() context.Context { return c.ctx }
func (c *Context) Tree() *syntax.Tree       { return c.tree }
func (c *Context) Model() *semantic.Model   { return c.model }
func (c *Context) Descriptor() *Descriptor  { return c.desc }
func (c *Context) Node() syntax.Ref         { return c.node }
func (c *Context) Symbol() *semantic.Symbol { return c.symbol }
func (c *Context) Severity() diag.Severity  { return c.severity }

// Report records a finding of the running rule at span.
func (c *Context) Report(span source.Span, msg string, notes ...diag.Note) {
	// the sink only refuses after sealing, which cannot happen mid-pass
	_ = c.sink.Report(diag.Diagnostic{
		Severity: c.severity,
		Code:     diag.RuleIssue,
		RuleID:   c.desc.ID,
		Message:  msg,
		Primary:  span,
		Path:     c.tree.Path(),
		Notes:    notes,
	})
}

// ReportAt records a finding at the trimmed span of r.
func (c *Context) ReportAt(r syntax.Ref, msg string, notes ...diag.Note) {
	c.Report(r.Span(), msg, notes...)
}
