package semantic

import (
	"lintel/internal/syntax"
)

// name binds a simple name: locals and parameters, then members of the
// containing type and its ancestors, then types, then namespaces.
func (bb *bodyBinder) name(e syntax.Ref) *Symbol {
	m := bb.b.m
	if e.Is(syntax.GenericName) {
		return bb.b.resolveType(e, bb.types)
	}
	name := identName(e.Child(0))
	if name == "" {
		return nil
	}
	if bb.locals != nil {
		if sym := bb.locals.lookup(name); sym != nil {
			m.record(e, sym)
			return sym.Type
		}
	}
	if members := lookupMember(m.lib, bb.typ, name); len(members) > 0 {
		m.record(e, members[0])
		if members[0].Kind == SymbolField {
			return members[0].Type
		}
		return nil
	}
	if t := bb.b.lookupType(name, 0, bb.types); t != nil {
		m.record(e, t)
		return t
	}
	if ns := bb.b.lookupNamespace(name, bb.types); ns != nil {
		m.record(e, ns)
	}
	return nil
}

// memberAccess binds x.Name and returns the receiver type and the candidate
// members (all overloads of a method group).
func (bb *bodyBinder) memberAccess(e syntax.Ref) (recv *Symbol, members []*Symbol) {
	m := bb.b.m
	left := e.Child(syntax.MemberExpr)
	nameRef := e.Child(syntax.MemberName)
	lt := bb.expr(left)
	name := identName(nameRef.Child(0))
	leftSym := m.Resolve(left)

	if leftSym != nil && leftSym.Kind == SymbolNamespace {
		for _, mem := range leftSym.Members {
			if mem.Name == name && (mem.Kind == SymbolNamespace || len(mem.TypeParams) == 0) {
				m.record(e, mem)
				m.record(nameRef, mem)
				return nil, []*Symbol{mem}
			}
		}
		return nil, nil
	}
	recv = lt
	if leftSym != nil && leftSym.Kind == SymbolNamedType {
		recv = leftSym
	}
	members = lookupMember(m.lib, recv, name)
	if len(members) > 0 {
		m.record(e, members[0])
		m.record(nameRef, members[0])
	}
	return recv, members
}

func (bb *bodyBinder) invocation(e syntax.Ref) *Symbol {
	m := bb.b.m
	target := e.Child(syntax.InvokeExpr)
	var recv *Symbol
	var candidates []*Symbol
	switch target.Kind() {
	case syntax.MemberAccessExpr:
		recv, candidates = bb.memberAccess(target)
	case syntax.IdentifierName:
		bb.expr(target)
		recv = bb.typ
		candidates = lookupMember(m.lib, bb.typ, identName(target.Child(0)))
	default:
		bb.expr(target)
	}
	method := pickOverload(methodsOnly(candidates), bb.args(e.Child(syntax.InvokeArgs)))
	if method == nil {
		return nil
	}
	m.record(e, method)
	m.record(target, method)
	if target.Is(syntax.MemberAccessExpr) {
		m.record(target.Child(syntax.MemberName), method)
	}
	return substitute(method.Type, recv)
}

// args binds the arguments and returns their count.
func (bb *bodyBinder) args(list syntax.Ref) int {
	n := 0
	for _, a := range list.Child(syntax.DelimItems).Children() {
		if !a.Is(syntax.Argument) {
			continue
		}
		bb.expr(a.Child(syntax.ArgExpr))
		n++
	}
	return n
}

// lookupMember finds fields and ordinary methods named name on t, its
// ancestors and then its interfaces. The nearest level that declares the
// name wins. Interfaces and type parameters fall back to object.
func lookupMember(lib *Library, t *Symbol, name string) []*Symbol {
	if t == nil || t.IsError() || name == "" {
		return nil
	}
	levels := append([]*Symbol{t}, TypeHierarchyOf(t)...)
	levels = append(levels, AllInterfaces(t)...)
	if t.Base == nil {
		levels = append(levels, lib.WellKnown(CapObject))
	}
	for _, lvl := range levels {
		if lvl == nil {
			continue
		}
		var found []*Symbol
		for _, mem := range lvl.Lookup(name) {
			if mem.Kind == SymbolMethod && mem.MethodKind != MethodOrdinary {
				continue
			}
			found = append(found, mem)
		}
		if len(found) > 0 {
			return found
		}
	}
	return nil
}

func methodsOnly(list []*Symbol) []*Symbol {
	var out []*Symbol
	for _, s := range list {
		if s.Kind == SymbolMethod {
			out = append(out, s)
		}
	}
	return out
}

func constructors(t *Symbol) []*Symbol {
	if t == nil {
		return nil
	}
	var out []*Symbol
	for _, m := range t.Definition().Members {
		if m.Kind == SymbolMethod && m.MethodKind == MethodConstructor {
			out = append(out, m)
		}
	}
	return out
}

// pickOverload prefers the first candidate whose arity matches.
func pickOverload(candidates []*Symbol, nargs int) *Symbol {
	for _, c := range candidates {
		if len(c.Params) == nargs {
			return c
		}
	}
	if len(candidates) > 0 {
		return candidates[0]
	}
	return nil
}
