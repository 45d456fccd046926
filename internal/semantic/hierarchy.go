package semantic

// TypeHierarchyOf returns the ancestors of sym following Base, nearest first.
// The walk stops at the root, at error types and at a type already seen, so
// cyclic or broken hierarchies terminate.
func TypeHierarchyOf(sym *Symbol) []*Symbol {
	if sym == nil {
		return nil
	}
	seen := map[*Symbol]bool{sym.Definition(): true}
	var out []*Symbol
	for b := sym.Base; b != nil && !b.IsError(); b = b.Base {
		def := b.Definition()
		if seen[def] {
			break
		}
		seen[def] = true
		out = append(out, b)
	}
	return out
}

// AllInterfaces returns the transitive interface closure of sym: interfaces
// of the type, of its ancestors and the bases of those interfaces, each once,
// in breadth-first declaration order.
func AllInterfaces(sym *Symbol) []*Symbol {
	if sym == nil {
		return nil
	}
	seen := make(map[*Symbol]bool)
	var out, queue []*Symbol
	push := func(list []*Symbol) {
		for _, i := range list {
			if i == nil || i.IsError() || seen[i.Definition()] {
				continue
			}
			seen[i.Definition()] = true
			out = append(out, i)
			queue = append(queue, i)
		}
	}
	push(sym.Interfaces)
	for _, anc := range TypeHierarchyOf(sym) {
		push(anc.Interfaces)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		push(cur.Definition().Interfaces)
	}
	return out
}

// Capabilities returns the capabilities of sym, its ancestors and all its interfaces.
func Capabilities(sym *Symbol) CapabilitySet {
	if sym == nil || sym.IsError() {
		return 0
	}
	var set CapabilitySet
	set = set.With(sym.Definition().Capability)
	for _, anc := range TypeHierarchyOf(sym) {
		set = set.With(anc.Definition().Capability)
	}
	for _, i := range AllInterfaces(sym) {
		set = set.With(i.Definition().Capability)
	}
	return set &^ Caps(CapNone)
}

// ImplementsAny reports whether sym is, derives from or implements one of caps.
func ImplementsAny(sym *Symbol, caps CapabilitySet) bool {
	return Capabilities(sym)&caps != 0
}
