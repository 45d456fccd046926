package parser

import (
	"slices"

	"lintel/internal/diag"
	"lintel/internal/source"
	"lintel/internal/syntax"
	"lintel/internal/token"
)

func (p *Parser) peek() token.Token { return p.toks[p.pos] }

// peekAt смотрит на n токенов вперёд; за концом всегда EOF.
func (p *Parser) peekAt(n int) token.Token {
	if i := p.pos + n; i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) at(k token.Kind) bool { return p.peek().Kind == k }

func (p *Parser) atOr(kinds ...token.Kind) bool { return slices.Contains(kinds, p.peek().Kind) }

// advance - съедает текущий токен. EOF никогда не съедается.
func (p *Parser) advance() *syntax.Node {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
	}
	return syntax.NewToken(tok)
}

// expect - ожидаем конкретный токен. Если нет - репортим и синтезируем пропущенный.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) *syntax.Node {
	if p.at(k) {
		return p.advance()
	}
	p.err(code, msg+", got "+describe(p.peek()))
	return syntax.NewMissing(k)
}

func (p *Parser) expectSemicolon() *syntax.Node {
	return p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';'")
}

func (p *Parser) optional(k token.Kind) *syntax.Node {
	if p.at(k) {
		return p.advance()
	}
	return nil
}

// diagSpan - куда показывать ошибку: текущий токен, либо конец предыдущего на EOF.
func (p *Parser) diagSpan() source.Span {
	tok := p.peek()
	if tok.Kind == token.EOF && p.pos > 0 {
		prev := p.toks[p.pos-1].Span
		return source.Span{File: prev.File, Start: prev.End, End: prev.End}
	}
	return tok.Span
}

func (p *Parser) err(code diag.Code, msg string) {
	diag.Syntax(p, code, p.diagSpan(), msg)
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident:
		return "identifier '" + tok.Text + "'"
	default:
		return "'" + tok.Text + "'"
	}
}

// skipUntil заворачивает пропущенные токены в узел ошибки. Хотя бы один
// токен съедается всегда (кроме EOF), чтобы цикл вызывающего продвигался.
func (p *Parser) skipUntil(stop func(token.Kind) bool) *syntax.Node {
	var skipped []*syntax.Node
	for !p.at(token.EOF) {
		if len(skipped) > 0 && stop(p.peek().Kind) {
			break
		}
		skipped = append(skipped, p.advance())
	}
	if len(skipped) == 0 {
		return nil
	}
	return syntax.NewNode(syntax.KindError, skipped...)
}

// parseSeparated разбирает elem (',' elem)* до закрывающего токена.
func (p *Parser) parseSeparated(closer token.Kind, elem func() *syntax.Node) *syntax.Node {
	var items []*syntax.Node
	if p.at(closer) || p.at(token.EOF) {
		return syntax.NewSeparatedList()
	}
	for {
		items = append(items, elem())
		if !p.at(token.Comma) {
			break
		}
		items = append(items, p.advance())
	}
	return syntax.NewSeparatedList(items...)
}

func tokenList(nodes []*syntax.Node) *syntax.Node { return syntax.NewList(nodes...) }

// parseModifiers собирает подряд идущие модификаторы.
func (p *Parser) parseModifiers() *syntax.Node {
	var mods []*syntax.Node
	for p.peek().Kind.IsModifier() {
		mods = append(mods, p.advance())
	}
	return tokenList(mods)
}
