package rule_test

import (
	"errors"
	"testing"

	"lintel/internal/diag"
	"lintel/internal/rule"
	"lintel/internal/semantic"
	"lintel/internal/syntax"
)

func noop(*rule.Context) {}

func desc(id string, on bool) *rule.Descriptor {
	return &rule.Descriptor{
		ID: id, Title: id, Severity: diag.SevMinor, DefaultEnabled: on,
		Actions: []rule.Action{{Interest: rule.Interest{Nodes: []syntax.Kind{syntax.IfStmt}}, Run: noop}},
	}
}

func TestRegisterRejectsInvalid(t *testing.T) {
	reg, err := rule.NewRegistry(desc("a", true))
	if err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(desc("a", false)); !errors.Is(err, rule.ErrDuplicateID) {
		t.Fatalf("duplicate: %v", err)
	}
	if err := reg.Register(&rule.Descriptor{ID: "b"}); !errors.Is(err, rule.ErrNoActions) {
		t.Fatalf("actionless: %v", err)
	}
	if err := reg.Register(&rule.Descriptor{ID: "c", Actions: []rule.Action{{Run: noop}}}); !errors.Is(err, rule.ErrInvalid) {
		t.Fatalf("no interest: %v", err)
	}
	if err := reg.Register(&rule.Descriptor{}); !errors.Is(err, rule.ErrInvalid) {
		t.Fatalf("empty id: %v", err)
	}
	if reg.Len() != 1 {
		t.Fatalf("len = %d", reg.Len())
	}
}

func TestSelect(t *testing.T) {
	reg, err := rule.NewRegistry(desc("on", true), desc("off", false), desc("other", true))
	if err != nil {
		t.Fatal(err)
	}
	ids := func(sel rule.Selection) []string {
		t.Helper()
		act, err := reg.Select(sel)
		if err != nil {
			t.Fatal(err)
		}
		var out []string
		for _, a := range act {
			out = append(out, a.ID)
		}
		return out
	}
	if got := ids(rule.Selection{}); len(got) != 2 || got[0] != "on" || got[1] != "other" {
		t.Fatalf("defaults: %v", got)
	}
	if got := ids(rule.Selection{Enable: []string{"off"}, Disable: []string{"other"}}); len(got) != 2 || got[1] != "off" {
		t.Fatalf("enable/disable: %v", got)
	}
	if got := ids(rule.Selection{Only: []string{"off"}}); len(got) != 1 || got[0] != "off" {
		t.Fatalf("only: %v", got)
	}
	act, err := reg.Select(rule.Selection{Severity: map[string]diag.Severity{"on": diag.SevBlocker}})
	if err != nil || act[0].Severity != diag.SevBlocker {
		t.Fatalf("severity override: %v %v", act, err)
	}
	if _, err := reg.Select(rule.Selection{Disable: []string{"nope"}}); !errors.Is(err, rule.ErrUnknownRule) {
		t.Fatalf("unknown id: %v", err)
	}
}

func TestDescriptorKinds(t *testing.T) {
	d := &rule.Descriptor{ID: "x", Actions: []rule.Action{
		{Interest: rule.Interest{Nodes: []syntax.Kind{syntax.WhileStmt, syntax.IfStmt}}, Run: noop},
		{Interest: rule.Interest{Nodes: []syntax.Kind{syntax.IfStmt}, Symbols: []semantic.SymbolKind{semantic.SymbolNamedType}}, Run: noop},
	}}
	kinds := d.NodeKinds()
	if len(kinds) != 2 || kinds[0] > kinds[1] {
		t.Fatalf("kinds %v", kinds)
	}
	if !d.HasSymbolActions() {
		t.Fatalf("symbol action not seen")
	}
}
