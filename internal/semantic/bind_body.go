package semantic

import (
	"strings"

	"lintel/internal/syntax"
	"lintel/internal/token"
)

// localScope - лексическая область локальных переменных.
type localScope struct {
	parent *localScope
	names  map[string]*Symbol
}

func (s *localScope) lookup(name string) *Symbol {
	for cur := s; cur != nil; cur = cur.parent {
		if sym, ok := cur.names[name]; ok {
			return sym
		}
	}
	return nil
}

// bodyBinder binds statements and expressions of one member.
type bodyBinder struct {
	b      *binder
	owner  *Symbol // method, or nil for field initializers
	typ    *Symbol // containing type
	types  *typeScope
	locals *localScope
}

func (b *binder) bindBodies(pt pendingType) {
	for _, member := range pt.ref.Child(syntax.TypeMembers).Children() {
		switch member.Kind() {
		case syntax.FieldDecl:
			bb := &bodyBinder{b: b, typ: pt.sym, types: pt.scope}
			for _, d := range member.Child(syntax.FieldDeclaration).Child(syntax.VarDeclDeclarators).Children() {
				if init := d.Child(syntax.DeclaratorInit); !init.IsZero() {
					bb.expr(init.Child(syntax.EqualsValue))
				}
			}
		case syntax.MethodDecl, syntax.ConstructorDecl, syntax.DestructorDecl:
			m := b.m.Resolve(member)
			if m == nil {
				continue
			}
			bb := &bodyBinder{
				b: b, owner: m, typ: pt.sym,
				types:  &typeScope{parent: pt.scope, typeParams: m.TypeParams},
				locals: &localScope{names: make(map[string]*Symbol)},
			}
			for _, p := range m.Params {
				bb.locals.names[p.Name] = p
			}
			bb.member(member)
		}
	}
}

func (bb *bodyBinder) member(decl syntax.Ref) {
	switch decl.Kind() {
	case syntax.ConstructorDecl:
		if init := decl.Child(syntax.CtorInitializer); !init.IsZero() {
			target := bb.typ.Base
			if init.Child(syntax.InitKeyword).TokenKind() == token.KwThis {
				target = bb.typ
			}
			args := bb.args(init.Child(syntax.InitArgs))
			bb.b.m.record(init, pickOverload(constructors(target), args))
		}
		bb.body(decl.Child(syntax.CtorBody), decl.Child(syntax.CtorExprBody))
	case syntax.DestructorDecl:
		bb.body(decl.Child(syntax.DtorBody), decl.Child(syntax.DtorExprBody))
	default:
		bb.body(decl.Child(syntax.MethodBody), decl.Child(syntax.MethodExprBody))
	}
}

func (bb *bodyBinder) body(block, arrow syntax.Ref) {
	if !block.IsZero() {
		bb.stmt(block)
	}
	if !arrow.IsZero() {
		bb.expr(arrow.Child(syntax.ArrowExpr))
	}
}

func (bb *bodyBinder) push() { bb.locals = &localScope{parent: bb.locals, names: make(map[string]*Symbol)} }
func (bb *bodyBinder) pop()  { bb.locals = bb.locals.parent }

func (bb *bodyBinder) stmt(s syntax.Ref) {
	switch s.Kind() {
	case syntax.Block:
		bb.push()
		for _, st := range s.Child(syntax.BlockStatements).Children() {
			bb.stmt(st)
		}
		bb.pop()
	case syntax.LocalDeclStmt:
		_, flags := modifiers(s.Child(syntax.LocalModifiers))
		bb.localDecl(s.Child(syntax.LocalDeclaration), flags&FlagConst)
	case syntax.ForStmt:
		bb.push()
		if decl := s.Child(syntax.ForDecl); !decl.IsZero() {
			bb.localDecl(decl, 0)
		}
		bb.exprs(s.Child(syntax.ForInits))
		if cond := s.Child(syntax.ForCond); !cond.IsZero() {
			bb.expr(cond)
		}
		bb.exprs(s.Child(syntax.ForIncrements))
		bb.stmt(s.Child(syntax.ForBody))
		bb.pop()
	case syntax.ForeachStmt:
		coll := bb.expr(s.Child(syntax.ForeachExpr))
		bb.push()
		typeRef := s.Child(syntax.ForeachType)
		var t *Symbol
		if isVar(typeRef) {
			t = elementType(coll)
			bb.b.m.recordType(typeRef, t)
		} else {
			t = bb.b.resolveType(typeRef, bb.types)
		}
		bb.local(s.Child(syntax.ForeachName), s, t, 0)
		bb.stmt(s.Child(syntax.ForeachBody))
		bb.pop()
	case syntax.KindError:
		return
	default:
		for _, c := range s.Children() {
			switch {
			case c.IsToken():
			case c.Kind().IsStatement() || c.Is(syntax.ElseClause):
				bb.stmt(c)
			default:
				bb.expr(c)
			}
		}
	}
}

func (bb *bodyBinder) exprs(list syntax.Ref) {
	for _, e := range list.Children() {
		if !e.IsToken() {
			bb.expr(e)
		}
	}
}

func isVar(typeRef syntax.Ref) bool {
	return typeRef.Is(syntax.IdentifierName) && identName(typeRef.Child(0)) == "var"
}

func (bb *bodyBinder) localDecl(vd syntax.Ref, flags SymbolFlags) {
	typeRef := vd.Child(syntax.VarDeclType)
	var declared *Symbol
	if !isVar(typeRef) {
		declared = bb.b.resolveType(typeRef, bb.types)
	}
	for _, d := range vd.Child(syntax.VarDeclDeclarators).Children() {
		if !d.Is(syntax.VariableDeclarator) {
			continue
		}
		t := declared
		if init := d.Child(syntax.DeclaratorInit); !init.IsZero() {
			it := bb.expr(init.Child(syntax.EqualsValue))
			if t == nil {
				t = it
				bb.b.m.recordType(typeRef, it)
			}
		}
		local := bb.local(d.Child(syntax.DeclaratorName), d, t, flags)
		if flags&FlagConst != 0 {
			if init := d.Child(syntax.DeclaratorInit); !init.IsZero() {
				bb.b.m.constInit[local] = init.Child(syntax.EqualsValue)
			}
		}
	}
}

func (bb *bodyBinder) local(name, decl syntax.Ref, t *Symbol, flags SymbolFlags) *Symbol {
	sym := &Symbol{Kind: SymbolLocal, Name: identName(name), Container: bb.owner, Type: t, Flags: flags}
	if sym.Name != "" {
		bb.locals.names[sym.Name] = sym
	}
	bb.b.m.declare(decl, sym)
	return sym
}

// elementType is the iteration type of a collection: array element, first
// type argument of a generic collection, char for strings, object otherwise.
func elementType(coll *Symbol) *Symbol {
	switch {
	case coll == nil:
		return nil
	case coll.TypeKind == TypeArray:
		return coll.Elem
	case len(coll.TypeArgs) == 1:
		return coll.TypeArgs[0]
	}
	return nil
}

// expr binds an expression and returns its type (nil when unknown).
func (bb *bodyBinder) expr(e syntax.Ref) *Symbol {
	t := bb.exprType(e)
	bb.b.m.recordType(e, t)
	return t
}

func (bb *bodyBinder) exprType(e syntax.Ref) *Symbol {
	m := bb.b.m
	lib := m.lib
	switch k := e.Kind(); {
	case k == syntax.NumericLiteral:
		return lib.Predefined(numericKind(e.TrimmedText()))
	case k == syntax.StringLiteral:
		return lib.Predefined(token.KwString)
	case k == syntax.CharLiteral:
		return lib.Predefined(token.KwChar)
	case k == syntax.TrueLiteral || k == syntax.FalseLiteral:
		return lib.Predefined(token.KwBool)
	case k == syntax.NullLiteral:
		return nil
	case k == syntax.ThisExpr:
		m.record(e, bb.typ)
		return bb.typ
	case k == syntax.BaseExpr:
		m.record(e, bb.typ.Base)
		return bb.typ.Base
	case k == syntax.PredefinedType:
		t := lib.Predefined(e.Child(0).TokenKind())
		m.record(e, t)
		return t
	case k == syntax.IdentifierName || k == syntax.GenericName:
		return bb.name(e)
	case k == syntax.MemberAccessExpr:
		recv, members := bb.memberAccess(e)
		if len(members) > 0 && members[0].Kind == SymbolField {
			return substitute(members[0].Type, recv)
		}
		if len(members) > 0 && members[0].Kind == SymbolNamedType {
			return members[0]
		}
		return nil
	case k == syntax.InvocationExpr:
		return bb.invocation(e)
	case k == syntax.ObjectCreationExpr:
		t := bb.b.resolveType(e.Child(syntax.NewType), bb.types)
		if args := e.Child(syntax.NewArgs); !args.IsZero() {
			m.record(e, pickOverload(constructors(t), bb.args(args)))
		} else {
			m.record(e, pickOverload(constructors(t), 0))
		}
		return t
	case k == syntax.ElementAccessExpr:
		recv := bb.expr(e.Child(syntax.ElementExpr))
		bb.args(e.Child(syntax.ElementArgs))
		if recv != nil && recv.Definition().Capability == CapString {
			return lib.Predefined(token.KwChar)
		}
		return elementType(recv)
	case k == syntax.ParenExpr:
		return bb.expr(e.Child(syntax.ParenInner))
	case k == syntax.AssignExpr:
		left := bb.expr(e.Child(syntax.BinaryLeft))
		bb.expr(e.Child(syntax.BinaryRight))
		return left
	case k == syntax.IsExpr:
		bb.expr(e.Child(syntax.BinaryLeft))
		bb.b.resolveType(e.Child(syntax.BinaryRight), bb.types)
		return lib.Predefined(token.KwBool)
	case k == syntax.AsExpr:
		bb.expr(e.Child(syntax.BinaryLeft))
		return bb.b.resolveType(e.Child(syntax.BinaryRight), bb.types)
	case k.IsBinary():
		left := bb.expr(e.Child(syntax.BinaryLeft))
		right := bb.expr(e.Child(syntax.BinaryRight))
		return binaryType(lib, k, left, right)
	case k == syntax.ConditionalExpr:
		bb.expr(e.Child(syntax.CondExpr))
		t := bb.expr(e.Child(syntax.CondWhenTrue))
		f := bb.expr(e.Child(syntax.CondWhenFalse))
		if t == nil {
			return f
		}
		return t
	case k == syntax.LogicalNotExpr:
		bb.expr(e.Child(syntax.PrefixOperand))
		return lib.Predefined(token.KwBool)
	case k == syntax.UnaryPlusExpr || k == syntax.UnaryMinusExpr || k == syntax.BitwiseNotExpr ||
		k == syntax.PreIncrementExpr || k == syntax.PreDecrementExpr:
		return bb.expr(e.Child(syntax.PrefixOperand))
	case k == syntax.PostIncrementExpr || k == syntax.PostDecrementExpr:
		return bb.expr(e.Child(syntax.PostfixOperand))
	case k == syntax.TypeofExpr:
		bb.b.resolveType(e.Child(syntax.TypeofType), bb.types)
		return lib.Lookup("Type", 0)
	}
	return nil
}

func numericKind(text string) token.Kind {
	lower := strings.ToLower(strings.ReplaceAll(text, "_", ""))
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0b") {
		return integerSuffixKind(lower)
	}
	switch {
	case strings.HasSuffix(lower, "f"):
		return token.KwFloat
	case strings.HasSuffix(lower, "m"):
		return token.KwDecimal
	case strings.HasSuffix(lower, "d"), strings.ContainsAny(lower, ".e"):
		return token.KwDouble
	}
	return integerSuffixKind(lower)
}

func integerSuffixKind(lower string) token.Kind {
	switch {
	case strings.HasSuffix(lower, "ul"), strings.HasSuffix(lower, "lu"):
		return token.KwUlong
	case strings.HasSuffix(lower, "u"):
		return token.KwUint
	case strings.HasSuffix(lower, "l"):
		return token.KwLong
	}
	return token.KwInt
}

func binaryType(lib *Library, k syntax.Kind, left, right *Symbol) *Symbol {
	boolT := lib.Predefined(token.KwBool)
	switch k {
	case syntax.LessThanExpr, syntax.LessThanOrEqualExpr, syntax.GreaterThanExpr, syntax.GreaterThanOrEqualExpr,
		syntax.EqualsExpr, syntax.NotEqualsExpr, syntax.LogicalAndExpr, syntax.LogicalOrExpr:
		return boolT
	case syntax.CoalesceExpr:
		if left == nil {
			return right
		}
		return left
	}
	str := lib.Predefined(token.KwString)
	if k == syntax.AddExpr && (left == str || right == str) {
		return str
	}
	return promote(lib, left, right)
}

// numericRank orders numeric types for binary promotion.
var numericRank = []token.Kind{
	token.KwInt, token.KwUint, token.KwLong, token.KwUlong, token.KwFloat, token.KwDouble, token.KwDecimal,
}

func promote(lib *Library, left, right *Symbol) *Symbol {
	if left == nil || right == nil {
		return nil
	}
	best, rank := left, -1
	for i, kind := range numericRank {
		if t := lib.Predefined(kind); t == left || t == right {
			best, rank = t, i
		}
	}
	if rank < 0 {
		if left == lib.Predefined(token.KwBool) && right == left {
			return left
		}
		// byte/short/char operands promote to int
		return lib.Predefined(token.KwInt)
	}
	return best
}
