package lexer

import (
	"lintel/internal/diag"
	"lintel/internal/token"
)

// Поддержка: 123, 1_000, 0x1F, 0b1010, 1.5, .5, 1e-3, суффиксы u/l/ul (целые) и f/d/m (вещественные).
// "1.ToString()" - точка без цифры после неё не входит в число.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			lx.cursor.Bump()
			lx.cursor.Bump()
			if lx.cursor.BumpWhile(isHexOrSep) == 0 {
				return lx.badNumber(start, "expected hex digits after 0x")
			}
			lx.scanIntSuffix()
			return lx.emit(token.IntLit, start)
		case 'b', 'B':
			lx.cursor.Bump()
			lx.cursor.Bump()
			if lx.cursor.BumpWhile(isBinOrSep) == 0 {
				return lx.badNumber(start, "expected binary digits after 0b")
			}
			lx.scanIntSuffix()
			return lx.emit(token.IntLit, start)
		}
	}

	lx.skipDecDigits()
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.RealLit
		lx.cursor.Bump()
		lx.skipDecDigits()
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		kind = token.RealLit
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			return lx.badNumber(start, "expected digit after exponent")
		}
		lx.skipDecDigits()
	}

	switch lx.cursor.Peek() {
	case 'f', 'F', 'd', 'D', 'm', 'M':
		lx.cursor.Bump()
		kind = token.RealLit
	default:
		if kind == token.IntLit {
			lx.scanIntSuffix()
		}
	}
	if lx.cursor.BumpWhile(isIdentContinueByte) > 0 {
		return lx.badNumber(start, "invalid numeric suffix")
	}
	return lx.emit(kind, start)
}

func (lx *Lexer) skipDecDigits() { lx.cursor.BumpWhile(isDecOrSep) }

// '_' разделяет цифры в любом месте после префикса
func isDecOrSep(b byte) bool { return isDec(b) || b == '_' }
func isHexOrSep(b byte) bool { return isHex(b) || b == '_' }
func isBinOrSep(b byte) bool { return b == '0' || b == '1' || b == '_' }

// u, l, ul, lu в любом регистре
func (lx *Lexer) scanIntSuffix() {
	switch lx.cursor.Peek() {
	case 'u', 'U':
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == 'l' || b == 'L' {
			lx.cursor.Bump()
		}
	case 'l', 'L':
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == 'u' || b == 'U' {
			lx.cursor.Bump()
		}
	}
}

func (lx *Lexer) badNumber(start Mark, msg string) token.Token {
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexBadNumber, tok.Span, msg)
	return tok
}
