package rule

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"lintel/internal/diag"
)

var (
	ErrDuplicateID = errors.New("duplicate rule id")
	ErrNoActions   = errors.New("rule has no actions")
	ErrInvalid     = errors.New("invalid rule descriptor")
	ErrUnknownRule = errors.New("unknown rule")
)

// Registry is the explicit list of known rules, in registration order.
type Registry struct {
	mu    sync.Mutex
	rules []*Descriptor
	byID  map[string]int
}

// NewRegistry registers descs in order and fails on the first invalid one.
func NewRegistry(descs ...*Descriptor) (*Registry, error) {
	r := &Registry{byID: make(map[string]int)}
	for _, d := range descs {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds d. Empty ids, duplicate ids, descriptors without actions and
// actions without a callback or an interest are rejected.
func (r *Registry) Register(d *Descriptor) error {
	if d == nil || d.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalid)
	}
	if len(d.Actions) == 0 {
		return fmt.Errorf("%s: %w", d.ID, ErrNoActions)
	}
	for i, a := range d.Actions {
		if a.Run == nil || a.Interest.empty() {
			return fmt.Errorf("%w: %s action %d has no callback or interest", ErrInvalid, d.ID, i)
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byID[d.ID]; dup {
		return fmt.Errorf("%s: %w", d.ID, ErrDuplicateID)
	}
	r.byID[d.ID] = len(r.rules)
	r.rules = append(r.rules, d)
	return nil
}

// Lookup returns the descriptor registered under id.
func (r *Registry) Lookup(id string) (*Descriptor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return r.rules[i], true
}

// All returns the descriptors in registration order.
func (r *Registry) All() []*Descriptor {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.rules)
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rules)
}

// Selection chooses the active rules of a run.
type Selection struct {
	// Only, when set, activates exactly these rules.
	Only    []string
	Enable  []string
	Disable []string
	// Severity overrides the descriptor severity per rule id.
	Severity map[string]diag.Severity
}

// Active is a rule selected for a run with its effective severity.
type Active struct {
	*Descriptor
	Severity diag.Severity
}

// Select applies sel to the registry. Unknown ids are an error so typos in
// configuration do not silently disable nothing.
func (r *Registry) Select(sel Selection) ([]Active, error) {
	var unknown []string
	check := func(ids []string) {
		for _, id := range ids {
			if _, ok := r.Lookup(id); !ok {
				unknown = append(unknown, id)
			}
		}
	}
	check(sel.Only)
	check(sel.Enable)
	check(sel.Disable)
	for id := range sel.Severity {
		check([]string{id})
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return nil, fmt.Errorf("%w: %v", ErrUnknownRule, slices.Compact(unknown))
	}

	var out []Active
	for _, d := range r.All() {
		on := d.DefaultEnabled
		if len(sel.Only) > 0 {
			on = slices.Contains(sel.Only, d.ID)
		}
		if slices.Contains(sel.Enable, d.ID) {
			on = true
		}
		if slices.Contains(sel.Disable, d.ID) {
			on = false
		}
		if !on {
			continue
		}
		sev := d.Severity
		if s, ok := sel.Severity[d.ID]; ok {
			sev = s
		}
		out = append(out, Active{Descriptor: d, Severity: sev})
	}
	return out, nil
}
