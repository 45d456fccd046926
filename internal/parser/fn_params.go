package parser

import (
	"lintel/internal/diag"
	"lintel/internal/syntax"
	"lintel/internal/token"
)

func isParamModifier(k token.Kind) bool {
	return k == token.KwRef || k == token.KwOut || k == token.KwParams || k == token.KwThis || k == token.KwIn
}

// parseParameterList: '(' (Param (',' Param)*)? ')'
func (p *Parser) parseParameterList() *syntax.Node {
	open := p.expect(token.LParen, diag.SynExpectToken, "expected '('")
	items := p.parseSeparated(token.RParen, p.parseParameter)
	closeTok := p.expect(token.RParen, diag.SynExpectToken, "expected ')'")
	return syntax.NewNode(syntax.ParameterList, open, items, closeTok)
}

func (p *Parser) parseParameter() *syntax.Node {
	var mods []*syntax.Node
	for isParamModifier(p.peek().Kind) {
		mods = append(mods, p.advance())
	}
	typ := p.parseType()
	name := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parameter name")
	var def *syntax.Node
	if p.at(token.Assign) {
		eq := p.advance()
		def = syntax.NewNode(syntax.EqualsValueClause, eq, p.parseExpr())
	}
	return syntax.NewNode(syntax.Parameter, tokenList(mods), typ, name, def)
}

// parseArgumentList: open (Arg (',' Arg)*)? close - и для вызова, и для индексации.
func (p *Parser) parseArgumentList(open, closer token.Kind) *syntax.Node {
	openTok := p.expect(open, diag.SynExpectToken, "expected '"+open.String()+"'")
	items := p.parseSeparated(closer, p.parseArgument)
	closeTok := p.expect(closer, diag.SynExpectToken, "expected '"+closer.String()+"'")
	return syntax.NewNode(syntax.ArgumentList, openTok, items, closeTok)
}

func (p *Parser) parseArgument() *syntax.Node {
	var refKind *syntax.Node
	if p.atOr(token.KwRef, token.KwOut, token.KwIn) {
		refKind = p.advance()
	}
	return syntax.NewNode(syntax.Argument, refKind, p.parseExpr())
}
