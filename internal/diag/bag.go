package diag

import (
	"cmp"
	"slices"
)

// defaultBagLimit applies when NewBag gets no positive limit.
const defaultBagLimit = 1 << 16

// Bag holds lexer, parser and driver diagnostics up to a limit. Rule
// findings go through Collector instead.
type Bag struct {
	items []Diagnostic
	limit int
}

func NewBag(limit int) *Bag {
	if limit <= 0 {
		limit = defaultBagLimit
	}
	return &Bag{limit: limit}
}

// Add keeps d unless the bag is full and reports whether it did.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) == b.limit {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Len() int { return len(b.items) }

// Items exposes the stored diagnostics. Callers must not modify them.
func (b *Bag) Items() []Diagnostic { return b.items }

// HasAtLeast reports whether any diagnostic has severity >= sev.
func (b *Bag) HasAtLeast(sev Severity) bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= sev })
}

func (b *Bag) Sort() { SortDiagnostics(b.items) }

// SortDiagnostics orders diagnostics for output: by file and span, the
// more severe first on the same span, then by id.
func SortDiagnostics(items []Diagnostic) {
	slices.SortStableFunc(items, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.Primary.File, b.Primary.File),
			cmp.Compare(a.Primary.Start, b.Primary.Start),
			cmp.Compare(a.Primary.End, b.Primary.End),
			cmp.Compare(b.Severity, a.Severity),
			cmp.Compare(a.ID(), b.ID()),
		)
	})
}
