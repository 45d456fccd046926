package diag

import (
	"errors"
	"iter"
	"slices"
)

// ErrSealed is returned when reporting into a sealed collector.
var ErrSealed = errors.New("diagnostic collector is sealed")

// Collector accumulates the findings of one analysis pass in discovery order.
// Nothing is merged or deduplicated: two rules flagging the same span yield
// two entries. A Collector belongs to a single task; parallel dispatch gives
// every task its own collector and merges the sealed lists afterwards.
type Collector struct {
	items  []Diagnostic
	sealed bool
}

// Report appends d. After Seal it returns ErrSealed and drops d.
func (c *Collector) Report(d Diagnostic) error {
	if c.sealed {
		return ErrSealed
	}
	c.items = append(c.items, d)
	return nil
}

func (c *Collector) Len() int { return len(c.items) }

// Seal freezes the collector and returns its immutable contents.
func (c *Collector) Seal() List {
	c.sealed = true
	return List{items: c.items}
}

// Sealed reports whether Seal was called.
func (c *Collector) Sealed() bool { return c.sealed }

// List is a read-only, ordered set of diagnostics.
type List struct {
	items []Diagnostic
}

// NewList copies items into a List.
func NewList(items []Diagnostic) List {
	return List{items: slices.Clone(items)}
}

func (l List) Len() int { return len(l.items) }

func (l List) At(i int) Diagnostic { return l.items[i] }

// Items returns a copy of the diagnostics.
func (l List) Items() []Diagnostic { return slices.Clone(l.items) }

// All iterates diagnostics in order.
func (l List) All() iter.Seq[Diagnostic] {
	return func(yield func(Diagnostic) bool) {
		for _, d := range l.items {
			if !yield(d) {
				return
			}
		}
	}
}

// Concat joins lists in argument order.
func Concat(lists ...List) List {
	n := 0
	for _, l := range lists {
		n += len(l.items)
	}
	out := make([]Diagnostic, 0, n)
	for _, l := range lists {
		out = append(out, l.items...)
	}
	return List{items: out}
}
