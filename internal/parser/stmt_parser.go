package parser

import (
	"lintel/internal/diag"
	"lintel/internal/syntax"
	"lintel/internal/token"
)

// parseBlock: '{' Stmt* '}'
func (p *Parser) parseBlock() *syntax.Node {
	open := p.expect(token.LBrace, diag.SynExpectToken, "expected '{'")
	var stmts []*syntax.Node
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		start := p.pos
		if stmt := p.parseStatement(); stmt != nil {
			stmts = append(stmts, stmt)
		}
		if p.pos == start {
			// ничего не съели: пропускаем до безопасной точки
			if skipped := p.skipUntil(isStatementBoundary); skipped != nil {
				stmts = append(stmts, skipped)
			}
		}
	}
	return syntax.NewNode(syntax.Block, open, syntax.NewList(stmts...), p.expectClose())
}

func isStatementBoundary(k token.Kind) bool {
	switch k {
	case token.Semicolon, token.RBrace, token.LBrace, token.KwIf, token.KwWhile, token.KwFor,
		token.KwForeach, token.KwReturn, token.KwThrow, token.KwBreak, token.KwContinue:
		return true
	default:
		return false
	}
}

// parseStatement выбирает разбор по первому токену. nil - оператора нет
// и ничего не съедено (стоим на '}' или EOF).
func (p *Parser) parseStatement() *syntax.Node {
	switch p.peek().Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.Semicolon:
		return syntax.NewNode(syntax.EmptyStmt, p.advance())
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwFor:
		return p.parseFor()
	case token.KwForeach:
		return p.parseForeach()
	case token.KwReturn:
		return p.parseJump(syntax.ReturnStmt)
	case token.KwThrow:
		return p.parseJump(syntax.ThrowStmt)
	case token.KwBreak:
		kw := p.advance()
		return syntax.NewNode(syntax.BreakStmt, kw, p.expectSemicolon())
	case token.KwContinue:
		kw := p.advance()
		return syntax.NewNode(syntax.ContinueStmt, kw, p.expectSemicolon())
	case token.KwConst:
		mods := tokenList([]*syntax.Node{p.advance()})
		decl := p.parseVariableDeclaration(p.parseType())
		return syntax.NewNode(syntax.LocalDeclStmt, mods, decl, p.expectSemicolon())
	}
	if p.atLocalDeclaration() {
		decl := p.parseVariableDeclaration(p.parseType())
		return syntax.NewNode(syntax.LocalDeclStmt, tokenList(nil), decl, p.expectSemicolon())
	}
	if !canStartExpr(p.peek().Kind) {
		p.err(diag.SynUnexpectedToken, "expected statement, got "+describe(p.peek()))
		if p.atOr(token.RBrace, token.EOF) {
			return nil
		}
		return p.skipUntil(isStatementBoundary)
	}
	expr := p.parseExpr()
	return syntax.NewNode(syntax.ExprStmt, expr, p.expectSemicolon())
}

// atLocalDeclaration: Type Ident ('=' | ';' | ',') - решаем заглядыванием вперёд.
func (p *Parser) atLocalDeclaration() bool {
	end, ok := p.scanType(p.pos)
	if !ok || end >= len(p.toks) || p.toks[end].Kind != token.Ident {
		return false
	}
	switch p.peekAt(end - p.pos + 1).Kind {
	case token.Assign, token.Semicolon, token.Comma:
		return true
	default:
		return false
	}
}

// parseJump: ('return'|'throw') Expr? ';'
func (p *Parser) parseJump(kind syntax.Kind) *syntax.Node {
	kw := p.advance()
	var expr *syntax.Node
	if !p.at(token.Semicolon) {
		expr = p.parseExpr()
	}
	return syntax.NewNode(kind, kw, expr, p.expectSemicolon())
}
