package lexer

import (
	"lintel/internal/diag"
	"lintel/internal/token"
)

// Жадность: сначала 2-символьные, затем 1-символьные.
// '<<' и '>>' не склеиваются: '>' '>' закрывает вложенные списки типов.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	for _, op := range twoByteOps {
		if lx.try2(op.a, op.b) {
			return lx.emit(op.kind, start)
		}
	}

	if k, ok := oneByteOps[lx.cursor.Peek()]; ok {
		lx.cursor.Bump()
		return lx.emit(k, start)
	}

	lx.bumpRune()
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnknownChar, tok.Span, "unexpected character "+quoteText(tok.Text))
	return tok
}

var twoByteOps = [...]struct {
	a, b byte
	kind token.Kind
}{
	{'=', '>', token.FatArrow},
	{'&', '&', token.AndAnd},
	{'|', '|', token.OrOr},
	{'=', '=', token.EqEq},
	{'!', '=', token.BangEq},
	{'<', '=', token.LtEq},
	{'>', '=', token.GtEq},
	{'+', '+', token.PlusPlus},
	{'-', '-', token.MinusMinus},
	{'+', '=', token.PlusAssign},
	{'-', '=', token.MinusAssign},
	{'*', '=', token.StarAssign},
	{'/', '=', token.SlashAssign},
	{'%', '=', token.PercentAssign},
	{'&', '=', token.AmpAssign},
	{'|', '=', token.PipeAssign},
	{'^', '=', token.CaretAssign},
	{'?', '?', token.QuestionQuestion},
}

var oneByteOps = map[byte]token.Kind{
	'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash, '%': token.Percent,
	'=': token.Assign, '!': token.Bang, '<': token.Lt, '>': token.Gt,
	'&': token.Amp, '|': token.Pipe, '^': token.Caret, '~': token.Tilde,
	'?': token.Question, ':': token.Colon, ';': token.Semicolon, ',': token.Comma, '.': token.Dot,
	'(': token.LParen, ')': token.RParen, '{': token.LBrace, '}': token.RBrace,
	'[': token.LBracket, ']': token.RBracket,
}
