package fix

import (
	"fmt"
	"slices"

	"lintel/internal/diag"
	"lintel/internal/rewrite"
	"lintel/internal/syntax"
)

// Applicability tells how much review an action needs.
type Applicability uint8

const (
	AlwaysSafe Applicability = iota
	SafeWithHeuristics
	ManualReview
)

func (a Applicability) String() string {
	switch a {
	case AlwaysSafe:
		return "always-safe"
	case SafeWithHeuristics:
		return "safe-with-heuristics"
	case ManualReview:
		return "manual-review"
	}
	return "unknown"
}

// Action is one rewrite offered for a diagnostic.
type Action struct {
	ID            string
	Title         string
	Applicability Applicability
	IsPreferred   bool
	Apply         func(tree *syntax.Tree) (*syntax.Tree, error)
}

// Option mutates an action during construction.
type Option func(*Action)

// WithApplicability overrides the provider's applicability.
func WithApplicability(app Applicability) Option {
	return func(a *Action) { a.Applicability = app }
}

// Preferred marks the action as the preferred suggestion.
func Preferred() Option {
	return func(a *Action) { a.IsPreferred = true }
}

// WithID sets a stable identifier.
func WithID(id string) Option {
	return func(a *Action) { a.ID = id }
}

func applyOptions(a Action, opts []Option) Action {
	for _, opt := range opts {
		if opt != nil {
			opt(&a)
		}
	}
	return a
}

// RemoveNode builds an action deleting target with trivia reconciliation.
// The target is re-found by kind and span in whatever tree the action is
// applied to, so applying it to its own output does nothing.
func RemoveNode(title string, target syntax.Ref, opts ...Option) Action {
	kind, span := target.Kind(), target.Span()
	return applyOptions(Action{
		Title: title,
		Apply: func(tree *syntax.Tree) (*syntax.Tree, error) {
			r, ok := tree.Find(span, kind)
			if !ok {
				return tree, nil
			}
			return rewrite.RemoveNode(tree, r)
		},
	}, opts)
}

// Provider fixes diagnostics of the rules listed in FixableIDs.
type Provider struct {
	FixableIDs    []string
	Applicability Applicability
	// Offer returns the actions for d. It returns nothing when the flagged
	// node is no longer in tree.
	Offer func(tree *syntax.Tree, d diag.Diagnostic) []Action
}

// Fixes reports whether p handles the rule id.
func (p *Provider) Fixes(ruleID string) bool { return slices.Contains(p.FixableIDs, ruleID) }

// Apply runs the first action offered for d and returns its title. When no
// action is offered the input tree comes back unchanged.
func (p *Provider) Apply(tree *syntax.Tree, d diag.Diagnostic) (*syntax.Tree, string, error) {
	actions := p.actions(tree, d)
	if len(actions) == 0 {
		return tree, "", nil
	}
	out, err := actions[0].Apply(tree)
	if err != nil {
		return nil, actions[0].Title, fmt.Errorf("%s: %w", actions[0].Title, err)
	}
	return out, actions[0].Title, nil
}

func (p *Provider) actions(tree *syntax.Tree, d diag.Diagnostic) []Action {
	if p.Offer == nil || !p.Fixes(d.RuleID) {
		return nil
	}
	offered := p.Offer(tree, d)
	out := make([]Action, 0, len(offered))
	for _, a := range offered {
		if a.Apply == nil {
			continue
		}
		if a.Applicability < p.Applicability {
			a.Applicability = p.Applicability
		}
		out = append(out, a)
	}
	return out
}
