package semantic

import (
	"lintel/internal/syntax"
	"lintel/internal/token"
)

// bindSignatures resolves base types and member types of one declared type.
func (b *binder) bindSignatures(pt pendingType) {
	sym, decl := pt.sym, pt.ref
	for _, bt := range decl.Child(syntax.TypeBaseList).Child(syntax.BaseTypes).Children() {
		if bt.IsToken() {
			continue
		}
		t := b.resolveType(bt, pt.scope)
		switch {
		case t.TypeKind == TypeInterface:
			sym.Interfaces = append(sym.Interfaces, t)
		case sym.TypeKind == TypeClass && sym.Base == nil:
			sym.Base = t
		default:
			sym.Interfaces = append(sym.Interfaces, t)
		}
	}
	if sym.Base == nil && sym.TypeKind != TypeInterface {
		sym.Base = b.m.lib.WellKnown(CapObject)
	}

	for _, member := range decl.Child(syntax.TypeMembers).Children() {
		switch member.Kind() {
		case syntax.FieldDecl:
			vd := member.Child(syntax.FieldDeclaration)
			t := b.resolveType(vd.Child(syntax.VarDeclType), pt.scope)
			for _, d := range vd.Child(syntax.VarDeclDeclarators).Children() {
				f := b.m.Resolve(d)
				if f == nil {
					continue
				}
				f.Type = t
				if f.IsConst() {
					if init := d.Child(syntax.DeclaratorInit); !init.IsZero() {
						b.m.constInit[f] = init.Child(syntax.EqualsValue)
					}
				}
			}
		case syntax.MethodDecl, syntax.ConstructorDecl, syntax.DestructorDecl:
			m := b.m.Resolve(member)
			if m == nil {
				continue
			}
			sc := &typeScope{parent: pt.scope, typeParams: m.TypeParams}
			if member.Is(syntax.MethodDecl) {
				m.Type = b.resolveType(member.Child(syntax.MethodReturnType), sc)
			}
			b.bindParams(m, member.Child(paramsSlot(member.Kind())), sc)
		}
	}
}

func (b *binder) bindParams(m *Symbol, list syntax.Ref, sc *typeScope) {
	for _, p := range list.Child(syntax.DelimItems).Children() {
		if !p.Is(syntax.Parameter) {
			continue
		}
		ps := &Symbol{
			Kind: SymbolParameter, Name: identName(p.Child(syntax.ParamName)), Container: m,
			Type: b.resolveType(p.Child(syntax.ParamType), sc), Decls: []syntax.Ref{p},
		}
		m.Params = append(m.Params, ps)
		b.m.record(p, ps)
	}
}

// resolveType resolves type syntax. Unresolvable names yield an error type,
// never nil.
func (b *binder) resolveType(r syntax.Ref, sc *typeScope) *Symbol {
	t := b.resolveTypeOrNamespace(r, sc)
	if t == nil || t.Kind != SymbolNamedType {
		t = b.m.errorType(r.TrimmedText())
	}
	b.m.record(r, t)
	b.m.recordType(r, t)
	return t
}

func (b *binder) resolveTypeOrNamespace(r syntax.Ref, sc *typeScope) *Symbol {
	switch r.Kind() {
	case syntax.PredefinedType:
		return b.m.lib.Predefined(r.Child(0).TokenKind())
	case syntax.IdentifierName:
		name := identName(r.Child(0))
		if t := b.lookupType(name, 0, sc); t != nil {
			return t
		}
		return b.lookupNamespace(name, sc)
	case syntax.GenericName:
		args := b.typeArgs(r.Child(syntax.GenericArgs), sc)
		def := b.lookupType(identName(r.Child(syntax.GenericIdent)), len(args), sc)
		if def == nil {
			return nil
		}
		return b.m.construct(def, args)
	case syntax.QualifiedName:
		left := b.resolveTypeOrNamespace(r.Child(syntax.QualifiedLeft), sc)
		if left == nil || left.IsError() {
			return nil
		}
		b.m.record(r.Child(syntax.QualifiedLeft), left)
		right := r.Child(syntax.QualifiedRight)
		var args []*Symbol
		nameRef := right.Child(0)
		if right.Is(syntax.GenericName) {
			args = b.typeArgs(right.Child(syntax.GenericArgs), sc)
			nameRef = right.Child(syntax.GenericIdent)
		}
		name := identName(nameRef)
		for _, m := range left.Definition().Members {
			if m.Name != name {
				continue
			}
			switch {
			case m.Kind == SymbolNamespace && len(args) == 0:
				return m
			case m.Kind == SymbolNamedType && len(m.TypeParams) == len(args):
				if len(args) > 0 {
					return b.m.construct(m, args)
				}
				return m
			}
		}
		return nil
	case syntax.ArrayType:
		return b.m.arrayOf(b.resolveType(r.Child(syntax.ArrayElem), sc))
	case syntax.NullableType:
		return b.resolveType(r.Child(syntax.NullableElem), sc)
	}
	return nil
}

func (b *binder) typeArgs(list syntax.Ref, sc *typeScope) []*Symbol {
	var args []*Symbol
	for _, a := range list.Child(syntax.DelimItems).Children() {
		if a.TokenKind() == token.Comma {
			continue
		}
		args = append(args, b.resolveType(a, sc))
	}
	return args
}

// lookupType searches the scope chain, then the library.
func (b *binder) lookupType(name string, arity int, sc *typeScope) *Symbol {
	if name == "" {
		return nil
	}
	for s := sc; s != nil; s = s.parent {
		if arity == 0 {
			for _, tp := range s.typeParams {
				if tp.Name == name {
					return tp
				}
			}
		}
		if s.container == nil {
			continue
		}
		for _, m := range s.container.Definition().Members {
			if m.Kind == SymbolNamedType && m.Name == name && len(m.TypeParams) == arity {
				return m
			}
		}
	}
	return b.m.lib.Lookup(name, arity)
}

func (b *binder) lookupNamespace(name string, sc *typeScope) *Symbol {
	for s := sc; s != nil; s = s.parent {
		if s.container == nil {
			continue
		}
		for _, m := range s.container.Members {
			if m.Kind == SymbolNamespace && m.Name == name {
				return m
			}
		}
	}
	for _, m := range b.m.lib.Global.Members {
		if m.Kind == SymbolNamespace && m.Name == name {
			return m
		}
	}
	return nil
}
