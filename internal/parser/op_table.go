package parser

import (
	"lintel/internal/syntax"
	"lintel/internal/token"
)

// Таблица приоритетов для бинарных операторов.
// Чем больше число, тем выше приоритет.
const (
	precCoalesce       = 1  // ??
	precLogicalOr      = 2  // ||
	precLogicalAnd     = 3  // &&
	precBitwiseOr      = 4  // |
	precBitwiseXor     = 5  // ^
	precBitwiseAnd     = 6  // &
	precEquality       = 7  // == !=
	precRelational     = 8  // < <= > >= is as
	precAdditive       = 9  // + -
	precMultiplicative = 10 // * / %
)

// binaryOp возвращает приоритет оператора и вид узла; prec < 0 - не бинарный.
func binaryOp(k token.Kind) (prec int, kind syntax.Kind) {
	switch k {
	case token.QuestionQuestion:
		return precCoalesce, syntax.CoalesceExpr
	case token.OrOr:
		return precLogicalOr, syntax.LogicalOrExpr
	case token.AndAnd:
		return precLogicalAnd, syntax.LogicalAndExpr
	case token.Pipe:
		return precBitwiseOr, syntax.BitwiseOrExpr
	case token.Caret:
		return precBitwiseXor, syntax.ExclusiveOrExpr
	case token.Amp:
		return precBitwiseAnd, syntax.BitwiseAndExpr
	case token.EqEq:
		return precEquality, syntax.EqualsExpr
	case token.BangEq:
		return precEquality, syntax.NotEqualsExpr
	case token.Lt:
		return precRelational, syntax.LessThanExpr
	case token.LtEq:
		return precRelational, syntax.LessThanOrEqualExpr
	case token.Gt:
		return precRelational, syntax.GreaterThanExpr
	case token.GtEq:
		return precRelational, syntax.GreaterThanOrEqualExpr
	case token.KwIs:
		return precRelational, syntax.IsExpr
	case token.KwAs:
		return precRelational, syntax.AsExpr
	case token.Plus:
		return precAdditive, syntax.AddExpr
	case token.Minus:
		return precAdditive, syntax.SubtractExpr
	case token.Star:
		return precMultiplicative, syntax.MultiplyExpr
	case token.Slash:
		return precMultiplicative, syntax.DivideExpr
	case token.Percent:
		return precMultiplicative, syntax.ModuloExpr
	default:
		return -1, syntax.KindInvalid
	}
}

func isAssignOp(k token.Kind) bool {
	switch k {
	case token.Assign, token.PlusAssign, token.MinusAssign, token.StarAssign, token.SlashAssign,
		token.PercentAssign, token.AmpAssign, token.PipeAssign, token.CaretAssign:
		return true
	default:
		return false
	}
}

func prefixOp(k token.Kind) syntax.Kind {
	switch k {
	case token.Plus:
		return syntax.UnaryPlusExpr
	case token.Minus:
		return syntax.UnaryMinusExpr
	case token.Bang:
		return syntax.LogicalNotExpr
	case token.Tilde:
		return syntax.BitwiseNotExpr
	case token.PlusPlus:
		return syntax.PreIncrementExpr
	case token.MinusMinus:
		return syntax.PreDecrementExpr
	default:
		return syntax.KindInvalid
	}
}

func canStartExpr(k token.Kind) bool {
	if k.IsLiteral() || k.IsPredefinedType() || prefixOp(k) != syntax.KindInvalid {
		return true
	}
	switch k {
	case token.Ident, token.LParen, token.KwThis, token.KwBase, token.KwNew, token.KwTypeof:
		return true
	default:
		return false
	}
}
