package parser

import (
	"lintel/internal/syntax"
	"lintel/internal/token"
)

// parseUsings: ('using' Name ';')*
func (p *Parser) parseUsings() *syntax.Node {
	var items []*syntax.Node
	for p.at(token.KwUsing) {
		kw := p.advance()
		name := p.parseName()
		items = append(items, syntax.NewNode(syntax.UsingDirective, kw, name, p.expectSemicolon()))
	}
	return syntax.NewList(items...)
}
