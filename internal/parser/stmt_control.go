package parser

import (
	"lintel/internal/diag"
	"lintel/internal/syntax"
	"lintel/internal/token"
)

func (p *Parser) expectLParen() *syntax.Node {
	return p.expect(token.LParen, diag.SynExpectToken, "expected '('")
}

func (p *Parser) expectRParen() *syntax.Node {
	return p.expect(token.RParen, diag.SynExpectToken, "expected ')'")
}

// parseIf: 'if' '(' Expr ')' Stmt ('else' Stmt)?
func (p *Parser) parseIf() *syntax.Node {
	kw := p.advance()
	open := p.expectLParen()
	cond := p.parseExpr()
	closeTok := p.expectRParen()
	then := p.parseEmbedded()
	var elseClause *syntax.Node
	if p.at(token.KwElse) {
		elseKw := p.advance()
		elseClause = syntax.NewNode(syntax.ElseClause, elseKw, p.parseEmbedded())
	}
	return syntax.NewNode(syntax.IfStmt, kw, open, cond, closeTok, then, elseClause)
}

// parseWhile: 'while' '(' Expr ')' Stmt
func (p *Parser) parseWhile() *syntax.Node {
	kw := p.advance()
	open := p.expectLParen()
	cond := p.parseExpr()
	closeTok := p.expectRParen()
	return syntax.NewNode(syntax.WhileStmt, kw, open, cond, closeTok, p.parseEmbedded())
}

// parseFor: 'for' '(' (Decl | Expr,*)? ';' Expr? ';' Expr,* ')' Stmt
func (p *Parser) parseFor() *syntax.Node {
	kw := p.advance()
	open := p.expectLParen()
	var decl, inits *syntax.Node
	if p.atLocalDeclaration() {
		decl = p.parseVariableDeclaration(p.parseType())
		inits = syntax.NewSeparatedList()
	} else {
		inits = p.parseSeparated(token.Semicolon, p.parseExpr)
	}
	first := p.expectSemicolon()
	var cond *syntax.Node
	if !p.at(token.Semicolon) {
		cond = p.parseExpr()
	}
	second := p.expectSemicolon()
	incs := p.parseSeparated(token.RParen, p.parseExpr)
	closeTok := p.expectRParen()
	body := p.parseEmbedded()
	return syntax.NewNode(syntax.ForStmt, kw, open, decl, inits, first, cond, second, incs, closeTok, body)
}

// parseForeach: 'foreach' '(' Type Ident 'in' Expr ')' Stmt
func (p *Parser) parseForeach() *syntax.Node {
	kw := p.advance()
	open := p.expectLParen()
	typ := p.parseType()
	name := p.expect(token.Ident, diag.SynExpectIdentifier, "expected loop variable name")
	in := p.expect(token.KwIn, diag.SynExpectToken, "expected 'in'")
	expr := p.parseExpr()
	closeTok := p.expectRParen()
	return syntax.NewNode(syntax.ForeachStmt, kw, open, typ, name, in, expr, closeTok, p.parseEmbedded())
}

// parseEmbedded - тело if/while/for. Если оператора нет, подставляем
// пустой оператор с пропущенной ';'.
func (p *Parser) parseEmbedded() *syntax.Node {
	stmt := p.parseStatement()
	if stmt == nil {
		return syntax.NewNode(syntax.EmptyStmt, syntax.NewMissing(token.Semicolon))
	}
	return stmt
}
