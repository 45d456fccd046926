package checks

import (
	"fmt"
	"go/constant"
	"strconv"

	"lintel/internal/diag"
	"lintel/internal/rule"
	"lintel/internal/syntax"
)

const ConstantConditionID = "constant-condition"

// ConstantCondition flags if/while conditions that fold to a constant. A bare
// true or false literal is taken as intended (`while (true)`).
func ConstantCondition() *rule.Descriptor {
	return &rule.Descriptor{
		ID:             ConstantConditionID,
		Title:          "Conditions should not always evaluate to \"true\" or to \"false\"",
		Description:    "A condition built only from constants has a fixed outcome: the branch is either dead or unconditional.",
		Severity:       diag.SevMajor,
		DefaultEnabled: true,
		Tags:           []string{"cwe", "suspicious"},
		Actions: []rule.Action{{
			Interest: rule.Interest{Nodes: []syntax.Kind{syntax.IfStmt, syntax.WhileStmt}},
			Run: func(c *rule.Context) {
				cond := c.Node().Child(syntax.IfCond)
				if c.Node().Is(syntax.WhileStmt) {
					cond = c.Node().Child(syntax.WhileCond)
				}
				if unparen(cond).Is(syntax.TrueLiteral, syntax.FalseLiteral) {
					return
				}
				v, ok := c.Model().ConstantValueOf(cond)
				if !ok || v.Kind() != constant.Bool {
					return
				}
				c.ReportAt(cond, fmt.Sprintf("Change this condition so that it does not always evaluate to %q.", strconv.FormatBool(constant.BoolVal(v))))
			},
		}},
	}
}

func unparen(r syntax.Ref) syntax.Ref {
	for r.Is(syntax.ParenExpr) {
		r = r.Child(syntax.ParenInner)
	}
	return r
}
