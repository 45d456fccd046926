package semantic

import (
	"go/constant"
	gotoken "go/token"
	"strconv"
	"strings"

	"lintel/internal/syntax"
)

// ConstantValueOf folds r to a compile-time value. It understands literals,
// parentheses, unary and binary operators, the conditional operator and names
// of const fields and locals. No dataflow: a non-const variable is never a
// constant, whatever was assigned to it.
func (m *Model) ConstantValueOf(r syntax.Ref) (constant.Value, bool) {
	if r.IsZero() || r.Tree() != m.tree {
		return nil, false
	}
	f := folder{m: m, visiting: make(map[*Symbol]bool)}
	v := f.fold(r)
	return v, v != nil && v.Kind() != constant.Unknown
}

type folder struct {
	m        *Model
	visiting map[*Symbol]bool
}

func (f *folder) fold(r syntax.Ref) constant.Value {
	switch k := r.Kind(); {
	case k == syntax.TrueLiteral:
		return constant.MakeBool(true)
	case k == syntax.FalseLiteral:
		return constant.MakeBool(false)
	case k == syntax.NumericLiteral:
		return numericValue(r.TrimmedText())
	case k == syntax.StringLiteral:
		return stringValue(r.TrimmedText())
	case k == syntax.CharLiteral:
		s, err := strconv.Unquote(r.TrimmedText())
		if err != nil {
			return nil
		}
		runes := []rune(s)
		if len(runes) != 1 {
			return nil
		}
		return constant.MakeInt64(int64(runes[0]))
	case k == syntax.ParenExpr:
		return f.fold(r.Child(syntax.ParenInner))
	case k == syntax.IdentifierName || k == syntax.MemberAccessExpr:
		return f.name(r)
	case k == syntax.ConditionalExpr:
		c := f.fold(r.Child(syntax.CondExpr))
		if c == nil || c.Kind() != constant.Bool {
			return nil
		}
		if constant.BoolVal(c) {
			return f.fold(r.Child(syntax.CondWhenTrue))
		}
		return f.fold(r.Child(syntax.CondWhenFalse))
	case k == syntax.UnaryPlusExpr || k == syntax.UnaryMinusExpr || k == syntax.BitwiseNotExpr || k == syntax.LogicalNotExpr:
		return f.unary(k, f.fold(r.Child(syntax.PrefixOperand)))
	case k.IsBinary():
		x := f.fold(r.Child(syntax.BinaryLeft))
		if x == nil {
			return nil
		}
		y := f.fold(r.Child(syntax.BinaryRight))
		if y == nil {
			return nil
		}
		return binaryValue(k, x, y)
	}
	return nil
}

func (f *folder) name(r syntax.Ref) constant.Value {
	sym := f.m.Resolve(r)
	if sym == nil || !sym.IsConst() || f.visiting[sym] {
		return nil
	}
	init, ok := f.m.constInit[sym]
	if !ok {
		return nil
	}
	f.visiting[sym] = true
	defer delete(f.visiting, sym)
	return f.fold(init)
}

func (f *folder) unary(k syntax.Kind, x constant.Value) constant.Value {
	if x == nil {
		return nil
	}
	switch k {
	case syntax.LogicalNotExpr:
		if x.Kind() != constant.Bool {
			return nil
		}
		return constant.UnaryOp(gotoken.NOT, x, 0)
	case syntax.BitwiseNotExpr:
		if x.Kind() != constant.Int {
			return nil
		}
		return constant.UnaryOp(gotoken.XOR, x, 0)
	case syntax.UnaryMinusExpr:
		if !isNumeric(x) {
			return nil
		}
		return constant.UnaryOp(gotoken.SUB, x, 0)
	default:
		if !isNumeric(x) {
			return nil
		}
		return x
	}
}

func isNumeric(v constant.Value) bool {
	return v.Kind() == constant.Int || v.Kind() == constant.Float
}

func binaryValue(k syntax.Kind, x, y constant.Value) constant.Value {
	bothNum := isNumeric(x) && isNumeric(y)
	bothInt := x.Kind() == constant.Int && y.Kind() == constant.Int
	bothBool := x.Kind() == constant.Bool && y.Kind() == constant.Bool
	bothStr := x.Kind() == constant.String && y.Kind() == constant.String

	switch k {
	case syntax.AddExpr:
		if bothNum || bothStr {
			return constant.BinaryOp(x, gotoken.ADD, y)
		}
	case syntax.SubtractExpr, syntax.MultiplyExpr:
		if bothNum {
			op := gotoken.SUB
			if k == syntax.MultiplyExpr {
				op = gotoken.MUL
			}
			return constant.BinaryOp(x, op, y)
		}
	case syntax.DivideExpr:
		if !bothNum || constant.Sign(y) == 0 {
			return nil
		}
		if bothInt {
			return constant.BinaryOp(x, gotoken.QUO_ASSIGN, y)
		}
		return constant.BinaryOp(x, gotoken.QUO, y)
	case syntax.ModuloExpr:
		if bothInt && constant.Sign(y) != 0 {
			return constant.BinaryOp(x, gotoken.REM, y)
		}
	case syntax.LogicalAndExpr, syntax.LogicalOrExpr:
		if bothBool {
			op := gotoken.LAND
			if k == syntax.LogicalOrExpr {
				op = gotoken.LOR
			}
			return constant.BinaryOp(x, op, y)
		}
	case syntax.BitwiseAndExpr, syntax.BitwiseOrExpr, syntax.ExclusiveOrExpr:
		switch {
		case bothInt:
			op := map[syntax.Kind]gotoken.Token{
				syntax.BitwiseAndExpr: gotoken.AND, syntax.BitwiseOrExpr: gotoken.OR, syntax.ExclusiveOrExpr: gotoken.XOR,
			}[k]
			return constant.BinaryOp(x, op, y)
		case bothBool && k == syntax.BitwiseAndExpr:
			return constant.BinaryOp(x, gotoken.LAND, y)
		case bothBool && k == syntax.BitwiseOrExpr:
			return constant.BinaryOp(x, gotoken.LOR, y)
		case bothBool:
			return constant.MakeBool(constant.BoolVal(x) != constant.BoolVal(y))
		}
	case syntax.EqualsExpr, syntax.NotEqualsExpr:
		if bothNum || bothBool || bothStr {
			op := gotoken.EQL
			if k == syntax.NotEqualsExpr {
				op = gotoken.NEQ
			}
			return constant.MakeBool(constant.Compare(x, op, y))
		}
	case syntax.LessThanExpr, syntax.LessThanOrEqualExpr, syntax.GreaterThanExpr, syntax.GreaterThanOrEqualExpr:
		if bothNum {
			op := map[syntax.Kind]gotoken.Token{
				syntax.LessThanExpr: gotoken.LSS, syntax.LessThanOrEqualExpr: gotoken.LEQ,
				syntax.GreaterThanExpr: gotoken.GTR, syntax.GreaterThanOrEqualExpr: gotoken.GEQ,
			}[k]
			return constant.MakeBool(constant.Compare(x, op, y))
		}
	}
	return nil
}

// numericValue parses an integer or real literal with digit separators and
// type suffixes.
func numericValue(text string) constant.Value {
	lit := strings.ToLower(strings.ReplaceAll(text, "_", ""))
	if strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0b") {
		return constant.MakeFromLiteral(strings.TrimRight(lit, "ul"), gotoken.INT, 0)
	}
	if strings.HasSuffix(lit, "f") || strings.HasSuffix(lit, "d") || strings.HasSuffix(lit, "m") {
		return constant.MakeFromLiteral(lit[:len(lit)-1], gotoken.FLOAT, 0)
	}
	if strings.ContainsAny(lit, ".e") {
		return constant.MakeFromLiteral(lit, gotoken.FLOAT, 0)
	}
	return constant.MakeFromLiteral(strings.TrimRight(lit, "ul"), gotoken.INT, 0)
}

// stringValue decodes regular and verbatim (@"...") string literals.
func stringValue(text string) constant.Value {
	if strings.HasPrefix(text, "@\"") && strings.HasSuffix(text, "\"") && len(text) >= 3 {
		return constant.MakeString(strings.ReplaceAll(text[2:len(text)-1], `""`, `"`))
	}
	s, err := strconv.Unquote(text)
	if err != nil {
		return nil
	}
	return constant.MakeString(s)
}
