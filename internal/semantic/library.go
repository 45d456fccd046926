package semantic

import (
	"lintel/internal/token"
)

// Library holds the built-in types every Model binds against. It is built
// once and shared read-only by all models.
type Library struct {
	Global     *Symbol
	types      map[libKey]*Symbol
	wellKnown  [capCount]*Symbol
	predefined map[token.Kind]*Symbol
}

type libKey struct {
	name  string
	arity int
}

// NewLibrary builds the default library: System, System.Collections and
// System.Collections.Generic with the members rules rely on.
func NewLibrary() *Library {
	l := &Library{
		Global:     &Symbol{Kind: SymbolNamespace, Flags: FlagBuiltin},
		types:      make(map[libKey]*Symbol),
		predefined: make(map[token.Kind]*Symbol),
	}
	system := l.namespace(l.Global, "System")
	collections := l.namespace(system, "Collections")
	generic := l.namespace(collections, "Generic")

	object := l.class(system, "object", TypeClass, CapObject, nil)
	l.predefined[token.KwObject] = object
	l.types[libKey{name: "Object"}] = object

	for _, kind := range []token.Kind{
		token.KwBool, token.KwByte, token.KwSbyte, token.KwChar, token.KwDecimal, token.KwDouble,
		token.KwFloat, token.KwInt, token.KwUint, token.KwLong, token.KwUlong, token.KwShort,
		token.KwUshort, token.KwVoid,
	} {
		l.predefined[kind] = l.class(system, kind.String(), TypeStruct, CapNone, object)
	}
	intT, boolT, voidT := l.predefined[token.KwInt], l.predefined[token.KwBool], l.predefined[token.KwVoid]

	enumerable := l.class(collections, "IEnumerable", TypeInterface, CapIEnumerable, nil)
	collection := l.class(collections, "ICollection", TypeInterface, CapICollection, nil, enumerable)
	list := l.class(collections, "IList", TypeInterface, CapIList, nil, collection)
	l.method(list, "IndexOf", intT, 0, object)
	l.method(list, "Contains", boolT, 0, object)
	l.method(list, "Add", intT, 0, object)
	l.field(collection, "Count", intT, 0)

	str := l.class(system, "string", TypeClass, CapString, object, enumerable)
	l.predefined[token.KwString] = str
	l.types[libKey{name: "String"}] = str
	charT := l.predefined[token.KwChar]
	l.method(str, "IndexOf", intT, 0, charT)
	l.method(str, "IndexOf", intT, 0, str, intT)
	l.method(str, "Contains", boolT, 0, str)
	l.field(str, "Length", intT, 0)
	l.field(str, "Empty", str, FlagStatic|FlagReadonly)

	array := l.class(system, "Array", TypeClass, CapArray, object, list, collection, enumerable)
	array.Flags |= FlagAbstract
	l.method(array, "IndexOf", intT, FlagStatic, array, object)
	l.field(array, "Length", intT, 0)

	l.method(object, "ToString", str, FlagVirtual)
	l.method(object, "Equals", boolT, FlagVirtual, object)
	l.method(object, "GetHashCode", intT, FlagVirtual)

	exception := l.class(system, "Exception", TypeClass, CapNone, object)
	l.ctor(exception)
	l.ctor(exception, str)
	l.field(exception, "Message", str, 0)
	for _, name := range []string{"ArgumentException", "InvalidOperationException", "NotSupportedException", "NotImplementedException"} {
		e := l.class(system, name, TypeClass, CapNone, exception)
		l.ctor(e)
		l.ctor(e, str)
	}
	l.class(system, "Type", TypeClass, CapNone, object)
	console := l.class(system, "Console", TypeClass, CapNone, object)
	console.Flags |= FlagStatic
	l.method(console, "WriteLine", voidT, FlagStatic)
	l.method(console, "WriteLine", voidT, FlagStatic, object)

	enumerableT := l.generic(generic, "IEnumerable", TypeInterface, CapIEnumerableT, nil, []string{"T"}, enumerable)
	collectionT := l.generic(generic, "ICollection", TypeInterface, CapICollectionT, nil, []string{"T"}, enumerableT)
	l.field(collectionT, "Count", intT, 0)
	listT := l.generic(generic, "IList", TypeInterface, CapIListT, nil, []string{"T"}, collectionT)
	l.method(listT, "IndexOf", intT, 0, listT.TypeParams[0])
	l.method(listT, "Contains", boolT, 0, listT.TypeParams[0])

	concrete := l.generic(generic, "List", TypeClass, CapListT, object, []string{"T"}, listT, list)
	t := concrete.TypeParams[0]
	l.ctor(concrete)
	l.ctor(concrete, intT)
	l.method(concrete, "IndexOf", intT, 0, t)
	l.method(concrete, "Contains", boolT, 0, t)
	l.method(concrete, "Add", voidT, 0, t)
	l.field(concrete, "Count", intT, 0)
	return l
}

func (l *Library) namespace(parent *Symbol, name string) *Symbol {
	ns := &Symbol{Kind: SymbolNamespace, Name: name, Container: parent, Flags: FlagBuiltin}
	parent.Members = append(parent.Members, ns)
	return ns
}

func (l *Library) class(ns *Symbol, name string, kind TypeKind, capability Capability, base *Symbol, ifaces ...*Symbol) *Symbol {
	sym := l.newType(ns, name, kind, capability, base, ifaces)
	l.types[libKey{name: name}] = sym
	return sym
}

func (l *Library) newType(ns *Symbol, name string, kind TypeKind, capability Capability, base *Symbol, ifaces []*Symbol) *Symbol {
	sym := &Symbol{
		Kind: SymbolNamedType, Name: name, TypeKind: kind, Container: ns, Access: AccessPublic,
		Flags: FlagBuiltin, Base: base, Interfaces: ifaces, Capability: capability,
	}
	ns.Members = append(ns.Members, sym)
	if capability != CapNone {
		l.wellKnown[capability] = sym
	}
	return sym
}

func (l *Library) generic(ns *Symbol, name string, kind TypeKind, capability Capability, base *Symbol, params []string, ifaces ...*Symbol) *Symbol {
	sym := l.newType(ns, name, kind, capability, base, ifaces)
	l.types[libKey{name: name, arity: len(params)}] = sym
	for _, p := range params {
		sym.TypeParams = append(sym.TypeParams, &Symbol{Kind: SymbolNamedType, Name: p, TypeKind: TypeParameter, Container: sym, Flags: FlagBuiltin})
	}
	return sym
}

func (l *Library) method(owner *Symbol, name string, ret *Symbol, flags SymbolFlags, params ...*Symbol) *Symbol {
	m := &Symbol{Kind: SymbolMethod, Name: name, Container: owner, Access: AccessPublic, Flags: flags | FlagBuiltin, Type: ret}
	if owner.TypeKind == TypeInterface {
		m.Flags |= FlagAbstract
	}
	for i, p := range params {
		m.Params = append(m.Params, &Symbol{Kind: SymbolParameter, Name: paramName(i), Container: m, Type: p, Flags: FlagBuiltin})
	}
	owner.Members = append(owner.Members, m)
	return m
}

func (l *Library) ctor(owner *Symbol, params ...*Symbol) *Symbol {
	m := l.method(owner, owner.Name, nil, 0, params...)
	m.MethodKind = MethodConstructor
	return m
}

func (l *Library) field(owner *Symbol, name string, typ *Symbol, flags SymbolFlags) *Symbol {
	f := &Symbol{Kind: SymbolField, Name: name, Container: owner, Access: AccessPublic, Flags: flags | FlagBuiltin, Type: typ}
	owner.Members = append(owner.Members, f)
	return f
}

func paramName(i int) string { return string(rune('a' + i)) }

// Lookup returns the library type with the given simple name and generic arity.
func (l *Library) Lookup(name string, arity int) *Symbol { return l.types[libKey{name: name, arity: arity}] }

// Predefined returns the type of a predefined-type keyword.
func (l *Library) Predefined(k token.Kind) *Symbol { return l.predefined[k] }

// WellKnown returns the library type carrying c.
func (l *Library) WellKnown(c Capability) *Symbol {
	if c >= capCount {
		return nil
	}
	return l.wellKnown[c]
}

// Namespace resolves a dotted library namespace path.
func (l *Library) Namespace(path ...string) *Symbol {
	cur := l.Global
	for _, part := range path {
		var next *Symbol
		for _, m := range cur.Members {
			if m.Kind == SymbolNamespace && m.Name == part {
				next = m
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}
