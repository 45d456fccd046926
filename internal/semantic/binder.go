package semantic

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"lintel/internal/syntax"
	"lintel/internal/token"
)

// Binder builds the semantic model of a tree.
type Binder interface {
	Bind(ctx context.Context, tree *syntax.Tree) (*Model, error)
}

// DeclBinder binds declarations, signatures and method bodies of one tree
// against a built-in library. Names from other trees are not visible.
type DeclBinder struct {
	Lib *Library
}

// NewDeclBinder returns a binder over lib, or over the default library when lib is nil.
func NewDeclBinder(lib *Library) *DeclBinder {
	if lib == nil {
		lib = NewLibrary()
	}
	return &DeclBinder{Lib: lib}
}

// Bind runs three passes: declarations, signatures (bases, member types) and
// bodies. Cancellation is checked between type declarations.
func (b *DeclBinder) Bind(ctx context.Context, tree *syntax.Tree) (*Model, error) {
	lib := b.Lib
	if lib == nil {
		lib = NewLibrary()
	}
	bb := &binder{ctx: ctx, m: newModel(tree, lib)}
	root := tree.Root()
	bb.declareMembers(bb.m.global, root.Child(syntax.UnitMembers), nil)
	for _, pt := range bb.pending {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("bind %s: %w", tree.Path(), err)
		}
		bb.bindSignatures(pt)
	}
	for _, pt := range bb.pending {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("bind %s: %w", tree.Path(), err)
		}
		bb.bindBodies(pt)
	}
	return bb.m, nil
}

type binder struct {
	ctx     context.Context
	m       *Model
	pending []pendingType
}

// pendingType is a declared type waiting for later passes.
type pendingType struct {
	sym   *Symbol
	ref   syntax.Ref
	scope *typeScope
}

// typeScope resolves type names: type parameters first, then the members of
// container, then the parent scope.
type typeScope struct {
	parent     *typeScope
	container  *Symbol
	typeParams []*Symbol
}

// identName returns the NFC form of an identifier token without the verbatim '@'.
func identName(r syntax.Ref) string {
	tok, ok := r.Token()
	if !ok || tok.Text == "" {
		return ""
	}
	return norm.NFC.String(strings.TrimPrefix(tok.Text, "@"))
}

func (b *binder) declareMembers(container *Symbol, list syntax.Ref, scope *typeScope) {
	sc := &typeScope{parent: scope, container: container}
	for _, item := range list.Children() {
		switch item.Kind() {
		case syntax.NamespaceDecl:
			ns := b.namespace(container, item.Child(syntax.NamespaceName))
			ns.Decls = append(ns.Decls, item)
			b.m.record(item, ns)
			b.declareMembers(ns, item.Child(syntax.NamespaceMembers), sc)
		case syntax.ClassDecl, syntax.InterfaceDecl, syntax.StructDecl:
			b.declareType(container, item, sc)
		}
	}
}

// namespace finds or creates the namespace chain named by a (qualified) name.
func (b *binder) namespace(parent *Symbol, name syntax.Ref) *Symbol {
	var parts []string
	for cur := name; !cur.IsZero(); {
		if cur.Is(syntax.QualifiedName) {
			parts = append(parts, identName(cur.Child(syntax.QualifiedRight).Child(0)))
			cur = cur.Child(syntax.QualifiedLeft)
			continue
		}
		parts = append(parts, identName(cur.Child(0)))
		break
	}
	ns := parent
	for i := len(parts) - 1; i >= 0; i-- {
		var next *Symbol
		for _, m := range ns.Members {
			if m.Kind == SymbolNamespace && m.Name == parts[i] {
				next = m
				break
			}
		}
		if next == nil {
			next = &Symbol{Kind: SymbolNamespace, Name: parts[i], Container: ns}
			ns.Members = append(ns.Members, next)
		}
		ns = next
	}
	return ns
}

func modifiers(list syntax.Ref) (Accessibility, SymbolFlags) {
	var acc Accessibility
	var flags SymbolFlags
	for _, m := range list.Children() {
		switch m.TokenKind() {
		case token.KwPublic:
			acc = AccessPublic
		case token.KwPrivate:
			acc = AccessPrivate
		case token.KwProtected:
			acc = AccessProtected
		case token.KwInternal:
			if acc != AccessProtected {
				acc = AccessInternal
			}
		case token.KwAbstract:
			flags |= FlagAbstract
		case token.KwStatic:
			flags |= FlagStatic
		case token.KwConst:
			flags |= FlagConst | FlagStatic
		case token.KwReadonly:
			flags |= FlagReadonly
		case token.KwVirtual:
			flags |= FlagVirtual
		case token.KwOverride:
			flags |= FlagOverride
		case token.KwSealed:
			flags |= FlagSealed
		}
	}
	return acc, flags
}

func (b *binder) declareType(container *Symbol, decl syntax.Ref, scope *typeScope) *Symbol {
	acc, flags := modifiers(decl.Child(syntax.TypeModifiers))
	kind := TypeClass
	switch decl.Kind() {
	case syntax.InterfaceDecl:
		kind = TypeInterface
		flags |= FlagAbstract
	case syntax.StructDecl:
		kind = TypeStruct
	}
	sym := &Symbol{
		Kind: SymbolNamedType, Name: identName(decl.Child(syntax.TypeName)), TypeKind: kind,
		Access: acc, Flags: flags, Container: container,
	}
	for _, p := range decl.Child(syntax.TypeTypeParams).Child(syntax.DelimItems).Children() {
		if p.TokenKind() == token.Ident {
			tp := &Symbol{Kind: SymbolNamedType, Name: identName(p), TypeKind: TypeParameter, Container: sym}
			sym.TypeParams = append(sym.TypeParams, tp)
			b.m.record(p, tp)
		}
	}
	container.Members = append(container.Members, sym)
	b.m.declare(decl, sym)

	inner := &typeScope{parent: scope, container: sym, typeParams: sym.TypeParams}
	b.pending = append(b.pending, pendingType{sym: sym, ref: decl, scope: inner})

	hasCtor := false
	for _, member := range decl.Child(syntax.TypeMembers).Children() {
		switch member.Kind() {
		case syntax.ClassDecl, syntax.InterfaceDecl, syntax.StructDecl:
			b.declareType(sym, member, inner)
		case syntax.FieldDecl:
			macc, mflags := modifiers(member.Child(syntax.FieldModifiers))
			decls := member.Child(syntax.FieldDeclaration).Child(syntax.VarDeclDeclarators)
			for _, d := range decls.Children() {
				if !d.Is(syntax.VariableDeclarator) {
					continue
				}
				f := &Symbol{Kind: SymbolField, Name: identName(d.Child(syntax.DeclaratorName)), Access: macc, Flags: mflags, Container: sym}
				sym.Members = append(sym.Members, f)
				b.m.declare(d, f)
			}
		case syntax.MethodDecl:
			macc, mflags := modifiers(member.Child(syntax.MethodModifiers))
			if kind == TypeInterface && member.Child(syntax.MethodBody).IsZero() && member.Child(syntax.MethodExprBody).IsZero() {
				mflags |= FlagAbstract
			}
			b.declareMethod(sym, member, identName(member.Child(syntax.MethodName)), MethodOrdinary, macc, mflags)
		case syntax.ConstructorDecl:
			macc, mflags := modifiers(member.Child(syntax.CtorModifiers))
			mk := MethodConstructor
			if mflags&FlagStatic != 0 {
				mk = MethodStaticConstructor
			} else {
				hasCtor = true
			}
			b.declareMethod(sym, member, identName(member.Child(syntax.CtorName)), mk, macc, mflags)
		case syntax.DestructorDecl:
			_, mflags := modifiers(member.Child(syntax.DtorModifiers))
			b.declareMethod(sym, member, "~"+identName(member.Child(syntax.DtorName)), MethodDestructor, AccessProtected, mflags|FlagOverride)
		}
	}
	if !hasCtor && kind != TypeInterface {
		acc := AccessPublic
		if sym.IsAbstract() {
			acc = AccessProtected
		}
		ctor := &Symbol{Kind: SymbolMethod, Name: sym.Name, MethodKind: MethodConstructor, Access: acc, Container: sym, Implicit: true}
		sym.Members = append(sym.Members, ctor)
	}
	return sym
}

func (b *binder) declareMethod(owner *Symbol, decl syntax.Ref, name string, kind MethodKind, acc Accessibility, flags SymbolFlags) *Symbol {
	m := &Symbol{Kind: SymbolMethod, Name: name, MethodKind: kind, Access: acc, Flags: flags, Container: owner}
	if kind == MethodOrdinary {
		for _, p := range decl.Child(syntax.MethodTypeParams).Child(syntax.DelimItems).Children() {
			if p.TokenKind() == token.Ident {
				tp := &Symbol{Kind: SymbolNamedType, Name: identName(p), TypeKind: TypeParameter, Container: m}
				m.TypeParams = append(m.TypeParams, tp)
				b.m.record(p, tp)
			}
		}
	}
	owner.Members = append(owner.Members, m)
	b.m.declare(decl, m)
	return m
}

// paramsSlot returns the ParameterList slot for a method-like declaration.
func paramsSlot(k syntax.Kind) int {
	switch k {
	case syntax.ConstructorDecl:
		return syntax.CtorParams
	case syntax.DestructorDecl:
		return syntax.DtorParams
	default:
		return syntax.MethodParams
	}
}
