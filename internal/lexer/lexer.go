package lexer

import (
	"lintel/internal/source"
	"lintel/internal/token"
)

type Lexer struct {
	file      *source.File
	cursor    Cursor
	opts      Options
	look      *token.Token // 1 элементный буфер для токена
	done      bool
	lineStart bool // предыдущий trailing закончился переводом строки (или начало файла)
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:      file,
		cursor:    NewCursor(file),
		opts:      opts,
		lineStart: true,
	}
}

// Next возвращает следующий значимый токен с уже собранными Leading и Trailing.
// Последний токен - EOF с оставшимися trivia; после него всегда EOF без trivia.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	if lx.done {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	leading := lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		lx.done = true
		return token.Token{Kind: token.EOF, Span: lx.emptySpan(), Leading: leading}
	}

	ch := lx.cursor.Peek()
	var tok token.Token
	switch {
	case ch == '@' && lx.cursor.PeekAt(1) == '"':
		tok = lx.scanVerbatimString(1)
	case (ch == '$' && lx.cursor.PeekAt(1) == '@' && lx.cursor.PeekAt(2) == '"') ||
		(ch == '@' && lx.cursor.PeekAt(1) == '$' && lx.cursor.PeekAt(2) == '"'):
		tok = lx.scanVerbatimString(2)
	case ch == '$' && lx.cursor.PeekAt(1) == '"':
		tok = lx.scanString(1)
	case ch == '@' && isIdentStartByte(lx.cursor.PeekAt(1)):
		tok = lx.scanIdentOrKeyword()
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '.' && isDec(lx.cursor.PeekAt(1)):
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanString(0)
	case ch == '\'':
		tok = lx.scanChar()
	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = leading
	tok.Trailing = lx.collectTrailingTrivia()
	lx.lineStart = token.HasEOL(tok.Trailing)
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// All lexes the whole file; the last element is always EOF.
func (lx *Lexer) All() []token.Token {
	out := make([]token.Token, 0, len(lx.file.Content)/4+1)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// Tokenize is a convenience wrapper over New(...).All().
func Tokenize(file *source.File, opts Options) []token.Token {
	return New(file, opts).All()
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) emit(kind token.Kind, start Mark) token.Token {
	return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(start), Text: lx.cursor.TextFrom(start)}
}
