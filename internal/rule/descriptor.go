package rule

import (
	"slices"

	"lintel/internal/diag"
	"lintel/internal/semantic"
	"lintel/internal/syntax"
)

// Interest selects what an action is called for. Node and symbol kinds may be
// combined; the action then runs for both.
type Interest struct {
	Nodes   []syntax.Kind
	Symbols []semantic.SymbolKind
}

func (i Interest) empty() bool { return len(i.Nodes) == 0 && len(i.Symbols) == 0 }

// WantsNode reports whether k is one of the node kinds.
func (i Interest) WantsNode(k syntax.Kind) bool { return slices.Contains(i.Nodes, k) }

// WantsSymbol reports whether k is one of the symbol kinds.
func (i Interest) WantsSymbol(k semantic.SymbolKind) bool { return slices.Contains(i.Symbols, k) }

// Action is one callback of a rule.
type Action struct {
	Interest Interest
	Run      func(*Context)
}

// Descriptor describes a rule. Descriptors are values the registry keeps by
// pointer; they must not change after registration.
type Descriptor struct {
	ID             string
	Title          string
	Description    string
	Severity       diag.Severity
	DefaultEnabled bool
	Tags           []string
	// AnalyzeGenerated opts the rule into generated code.
	AnalyzeGenerated bool
	Actions          []Action
}

// NodeKinds returns the node kinds any action of d is interested in, sorted
// and without duplicates.
func (d *Descriptor) NodeKinds() []syntax.Kind {
	var kinds []syntax.Kind
	for _, a := range d.Actions {
		kinds = append(kinds, a.Interest.Nodes...)
	}
	slices.Sort(kinds)
	return slices.Compact(kinds)
}

// HasSymbolActions reports whether some action wants declared symbols.
func (d *Descriptor) HasSymbolActions() bool {
	for _, a := range d.Actions {
		if len(a.Interest.Symbols) > 0 {
			return true
		}
	}
	return false
}
