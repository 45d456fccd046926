package semantic

import (
	"slices"

	"lintel/internal/syntax"
)

// Model is the semantic view of one tree. It is built by a Binder, never
// shared across trees and read-only afterwards, so rules may query it
// concurrently.
type Model struct {
	tree     *syntax.Tree
	lib      *Library
	global   *Symbol
	symbols  map[*syntax.Node]*Symbol
	types    map[*syntax.Node]*Symbol
	declared []*Symbol
	// constInit maps const fields and locals to their initializer.
	constInit map[*Symbol]syntax.Ref

	constructed []*Symbol
	arrays      map[*Symbol]*Symbol
	errorTypes  map[string]*Symbol
}

func newModel(tree *syntax.Tree, lib *Library) *Model {
	return &Model{
		tree:       tree,
		lib:        lib,
		global:     &Symbol{Kind: SymbolNamespace},
		symbols:    make(map[*syntax.Node]*Symbol),
		types:      make(map[*syntax.Node]*Symbol),
		constInit:  make(map[*Symbol]syntax.Ref),
		arrays:     make(map[*Symbol]*Symbol),
		errorTypes: make(map[string]*Symbol),
	}
}

func (m *Model) Tree() *syntax.Tree { return m.tree }
func (m *Model) Library() *Library  { return m.lib }

// Global is the tree's global namespace.
func (m *Model) Global() *Symbol { return m.global }

// Resolve returns the symbol r declares or refers to, or nil.
func (m *Model) Resolve(r syntax.Ref) *Symbol {
	if r.IsZero() || r.Tree() != m.tree {
		return nil
	}
	return m.symbols[r.Node()]
}

// TypeOf returns the type of an expression or type syntax, or nil.
func (m *Model) TypeOf(r syntax.Ref) *Symbol {
	if r.IsZero() || r.Tree() != m.tree {
		return nil
	}
	return m.types[r.Node()]
}

// DeclaredSymbols returns the symbols declared in the tree in declaration
// order: every type followed by its members.
func (m *Model) DeclaredSymbols() []*Symbol { return m.declared }

// WellKnown returns the library type carrying c.
func (m *Model) WellKnown(c Capability) *Symbol { return m.lib.WellKnown(c) }

func (m *Model) record(r syntax.Ref, sym *Symbol) {
	if sym != nil && !r.IsZero() {
		m.symbols[r.Node()] = sym
	}
}

func (m *Model) recordType(r syntax.Ref, typ *Symbol) {
	if typ != nil && !r.IsZero() {
		m.types[r.Node()] = typ
	}
}

func (m *Model) declare(r syntax.Ref, sym *Symbol) {
	sym.Decls = append(sym.Decls, r)
	m.record(r, sym)
	m.declared = append(m.declared, sym)
}

// errorType returns the error type standing for an unresolved name.
func (m *Model) errorType(name string) *Symbol {
	if t, ok := m.errorTypes[name]; ok {
		return t
	}
	t := &Symbol{Kind: SymbolNamedType, Name: name, TypeKind: TypeError}
	m.errorTypes[name] = t
	return t
}

// construct returns def instantiated with args, one symbol per distinct instantiation.
func (m *Model) construct(def *Symbol, args []*Symbol) *Symbol {
	for _, c := range m.constructed {
		if c.Origin == def && slices.Equal(c.TypeArgs, args) {
			return c
		}
	}
	c := &Symbol{
		Kind: SymbolNamedType, Name: def.Name, TypeKind: def.TypeKind, Access: def.Access,
		Flags: def.Flags, Container: def.Container, Base: def.Base, Interfaces: def.Interfaces,
		Capability: def.Capability, Origin: def, TypeArgs: args,
	}
	m.constructed = append(m.constructed, c)
	return c
}

func (m *Model) arrayOf(elem *Symbol) *Symbol {
	if a, ok := m.arrays[elem]; ok {
		return a
	}
	a := &Symbol{
		Kind: SymbolNamedType, Name: elem.Name, TypeKind: TypeArray, Access: AccessPublic,
		Base: m.lib.WellKnown(CapArray), Elem: elem,
	}
	m.arrays[elem] = a
	return a
}

// substitute maps a type parameter of recv's definition to recv's argument.
func substitute(t, recv *Symbol) *Symbol {
	if t == nil || recv == nil || t.TypeKind != TypeParameter || recv.Origin == nil {
		return t
	}
	for i, p := range recv.Origin.TypeParams {
		if p == t && i < len(recv.TypeArgs) {
			return recv.TypeArgs[i]
		}
	}
	return t
}
