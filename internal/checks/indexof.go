package checks

import (
	"go/constant"

	"lintel/internal/diag"
	"lintel/internal/rule"
	"lintel/internal/semantic"
	"lintel/internal/source"
	"lintel/internal/syntax"
)

const IndexOfPositiveID = "indexof-positive"

// IndexOfPositive flags `x.IndexOf(y) > 0` and `0 < x.IndexOf(y)` on
// strings, arrays and lists: 0 is a valid index.
func IndexOfPositive() *rule.Descriptor {
	return &rule.Descriptor{
		ID:    IndexOfPositiveID,
		Title: `"IndexOf" checks should not be for positive numbers`,
		Description: `Most checks against an "IndexOf" value compare it with "-1" because "0" is a valid index. ` +
			`Checks for values ">0" ignore the first element, which is likely a bug. ` +
			`To test inclusion in a "string", "List" or array, use "Contains" instead.`,
		Severity:       diag.SevCritical,
		DefaultEnabled: true,
		Tags:           []string{"pitfall"},
		Actions: []rule.Action{
			{Interest: rule.Interest{Nodes: []syntax.Kind{syntax.LessThanExpr}}, Run: func(c *rule.Context) {
				n := c.Node()
				left, op, right := n.Child(syntax.BinaryLeft), n.Child(syntax.BinaryOp), n.Child(syntax.BinaryRight)
				if isZero(c.Model(), left) && isIndexOfCall(c.Model(), right) {
					c.Report(between(left, op), indexOfMessage)
				}
			}},
			{Interest: rule.Interest{Nodes: []syntax.Kind{syntax.GreaterThanExpr}}, Run: func(c *rule.Context) {
				n := c.Node()
				left, op, right := n.Child(syntax.BinaryLeft), n.Child(syntax.BinaryOp), n.Child(syntax.BinaryRight)
				if isZero(c.Model(), right) && isIndexOfCall(c.Model(), left) {
					c.Report(between(op, right), indexOfMessage)
				}
			}},
		},
	}
}

const indexOfMessage = "0 is a valid index, but this check ignores it."

func isZero(m *semantic.Model, r syntax.Ref) bool {
	v, ok := m.ConstantValueOf(r)
	if !ok || v.Kind() != constant.Int {
		return false
	}
	return constant.Sign(v) == 0
}

func isIndexOfCall(m *semantic.Model, r syntax.Ref) bool {
	if !r.Is(syntax.InvocationExpr) {
		return false
	}
	method := m.Resolve(r)
	if method == nil || method.Kind != semantic.SymbolMethod || method.Name != "IndexOf" {
		return false
	}
	return semantic.ImplementsAny(method.Container, semantic.SequenceLike)
}

// between spans from the start of a to the end of b.
func between(a, b syntax.Ref) source.Span {
	sa, sb := a.Span(), b.Span()
	return source.Span{File: sa.File, Start: sa.Start, End: sb.End}
}
