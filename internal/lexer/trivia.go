package lexer

import (
	"lintel/internal/diag"
	"lintel/internal/source"
	"lintel/internal/token"
)

// collectLeadingTrivia собирает trivia перед значимым токеном.
// Leading trivia всегда начинается с начала строки (или файла): всё, что было
// на строке предыдущего токена, уже ушло в его trailing.
//   - ' ', '\t', '\v', '\f' коалесцируются в один TriviaWhitespace
//   - каждый перевод строки ("\n", "\r\n", одиночный "\r") - отдельный TriviaEOL
//   - //... и ///... до конца строки, /* ... */ (без вложенности)
//   - #... в начале строки - TriviaDirective
func (lx *Lexer) collectLeadingTrivia() []token.Trivia {
	var out []token.Trivia
	lineStart := lx.lineStart
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case isSpace(b):
			out = append(out, lx.scanWhitespace())
		case b == '\n' || b == '\r':
			out = append(out, lx.scanEOL())
			lineStart = true
			continue
		case b == '/' && (lx.cursor.PeekAt(1) == '/' || lx.cursor.PeekAt(1) == '*'):
			out = append(out, lx.scanComment())
			lineStart = false
		case b == '#' && lineStart:
			out = append(out, lx.scanDirective())
		default:
			return out
		}
	}
	return out
}

// collectTrailingTrivia забирает пробелы и комментарии до первого перевода
// строки включительно, либо до следующего значимого символа.
func (lx *Lexer) collectTrailingTrivia() []token.Trivia {
	var out []token.Trivia
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case isSpace(b):
			out = append(out, lx.scanWhitespace())
		case b == '\n' || b == '\r':
			return append(out, lx.scanEOL())
		case b == '/' && (lx.cursor.PeekAt(1) == '/' || lx.cursor.PeekAt(1) == '*'):
			out = append(out, lx.scanComment())
		default:
			return out
		}
	}
	return out
}

func (lx *Lexer) scanWhitespace() token.Trivia {
	start := lx.cursor.Mark()
	lx.cursor.BumpWhile(isSpace)
	return lx.trivia(token.TriviaWhitespace, start)
}

func (lx *Lexer) scanEOL() token.Trivia {
	start := lx.cursor.Mark()
	if lx.cursor.Bump() == '\r' {
		lx.cursor.Eat('\n')
	}
	return lx.trivia(token.TriviaEOL, start)
}

// //... , ///... , /*...*/
func (lx *Lexer) scanComment() token.Trivia {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	if lx.cursor.Bump() == '/' {
		kind := token.TriviaLineComment
		if lx.cursor.Peek() == '/' && lx.cursor.PeekAt(1) != '/' {
			kind = token.TriviaDocComment
		}
		lx.skipToLineEnd()
		return lx.trivia(kind, start)
	}
	for !lx.cursor.EOF() {
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 == '/' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return lx.trivia(token.TriviaBlockComment, start)
		}
		lx.cursor.Bump()
	}
	tr := lx.trivia(token.TriviaBlockComment, start)
	lx.errLex(diag.LexUnterminatedBlockComment, tr.Span, "unterminated block comment")
	return tr
}

func (lx *Lexer) scanDirective() token.Trivia {
	start := lx.cursor.Mark()
	lx.skipToLineEnd()
	return lx.trivia(token.TriviaDirective, start)
}

func (lx *Lexer) skipToLineEnd() {
	for !lx.cursor.EOF() {
		if b := lx.cursor.Peek(); b == '\n' || b == '\r' {
			return
		}
		lx.cursor.Bump()
	}
}

func (lx *Lexer) trivia(kind token.TriviaKind, start Mark) token.Trivia {
	return token.Trivia{Kind: kind, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.TextFrom(start)}
}

// ScanTrivia splits file[start:end) into trivia fragments. It stops at the
// first byte that cannot start trivia and returns its offset (end when the
// whole range is trivia). Directives are recognised only at line starts.
func ScanTrivia(file *source.File, start, end uint32, atLineStart bool) (frags []token.Trivia, stop uint32) {
	lx := &Lexer{file: file, cursor: NewRangeCursor(file, start, end)}
	lineStart := atLineStart
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case isSpace(b):
			frags = append(frags, lx.scanWhitespace())
			continue
		case b == '\n' || b == '\r':
			frags = append(frags, lx.scanEOL())
			lineStart = true
			continue
		case b == '/' && (lx.cursor.PeekAt(1) == '/' || lx.cursor.PeekAt(1) == '*'):
			frags = append(frags, lx.scanComment())
		case b == '#' && lineStart:
			frags = append(frags, lx.scanDirective())
		default:
			return frags, lx.cursor.Off
		}
		lineStart = false
	}
	return frags, lx.cursor.Off
}
