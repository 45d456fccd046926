package lexer

import (
	"lintel/internal/diag"
	"lintel/internal/token"
)

// scanIdentOrKeyword сканирует идентификатор и проверяет через LookupKeyword.
// "@class" - verbatim-идентификатор, ключевым словом не считается.
// Token.Text - ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	verbatim := lx.cursor.Eat('@')

	r, sz := lx.peekRune()
	if sz == 0 || (r < utf8RuneSelf && !isIdentStartByte(byte(r))) || (r >= utf8RuneSelf && !isIdentStartRune(r)) {
		if !verbatim {
			lx.bumpRune()
		}
		tok := lx.emit(token.Invalid, start)
		lx.errLex(diag.LexUnknownChar, tok.Span, "unexpected character "+quoteText(tok.Text))
		return tok
	}
	lx.bumpRune()
	for {
		r2, sz2 := lx.peekRune()
		if sz2 == 0 {
			break
		}
		if r2 < utf8RuneSelf {
			if !isIdentContinueByte(byte(r2)) {
				break
			}
		} else if !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}

	tok := lx.emit(token.Ident, start)
	if !verbatim {
		if k, ok := token.LookupKeyword(tok.Text); ok {
			tok.Kind = k
		}
	}
	return tok
}

func quoteText(s string) string {
	return "'" + s + "'"
}
