package lexer

import (
	"lintel/internal/diag"
	"lintel/internal/token"
)

// scanString читает "..." и $"..." (prefix - длина префикса перед кавычкой).
// Перевод строки внутри обычной строки - ошибка; токен становится Invalid.
func (lx *Lexer) scanString(prefix int) token.Token {
	start := lx.cursor.Mark()
	for range prefix {
		lx.cursor.Bump()
	}
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '"':
			lx.cursor.Bump()
			return lx.emit(token.StringLit, start)
		case '\\':
			lx.cursor.Bump()
			if b := lx.cursor.Peek(); b == '\n' || b == '\r' {
				continue
			}
			lx.bumpRune()
		case '\n', '\r':
			tok := lx.emit(token.Invalid, start)
			lx.errLex(diag.LexUnterminatedString, tok.Span, "newline in string literal")
			return tok
		default:
			lx.bumpRune()
		}
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
	return tok
}

// scanVerbatimString читает @"..." (кавычка экранируется удвоением, переводы строк разрешены).
func (lx *Lexer) scanVerbatimString(prefix int) token.Token {
	start := lx.cursor.Mark()
	for range prefix {
		lx.cursor.Bump()
	}
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() == '"' {
			if lx.cursor.Eat('"') {
				continue
			}
			return lx.emit(token.StringLit, start)
		}
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated verbatim string literal")
	return tok
}

func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '\''
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '\'':
			lx.cursor.Bump()
			return lx.emit(token.CharLit, start)
		case '\\':
			lx.cursor.Bump()
			lx.bumpRune()
		case '\n', '\r':
			tok := lx.emit(token.Invalid, start)
			lx.errLex(diag.LexUnterminatedChar, tok.Span, "newline in character literal")
			return tok
		default:
			lx.bumpRune()
		}
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedChar, tok.Span, "unterminated character literal")
	return tok
}
