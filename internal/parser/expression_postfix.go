package parser

import (
	"lintel/internal/diag"
	"lintel/internal/syntax"
	"lintel/internal/token"
)

// parsePostfix: Primary ('.' Ident | Args | '[' Args ']' | '++' | '--')*
func (p *Parser) parsePostfix(expr *syntax.Node) *syntax.Node {
	for {
		switch p.peek().Kind {
		case token.Dot:
			dot := p.advance()
			name := syntax.NewNode(syntax.IdentifierName, p.expect(token.Ident, diag.SynExpectIdentifier, "expected member name"))
			expr = syntax.NewNode(syntax.MemberAccessExpr, expr, dot, name)
		case token.LParen:
			expr = syntax.NewNode(syntax.InvocationExpr, expr, p.parseArgumentList(token.LParen, token.RParen))
		case token.LBracket:
			expr = syntax.NewNode(syntax.ElementAccessExpr, expr, p.parseArgumentList(token.LBracket, token.RBracket))
		case token.PlusPlus:
			expr = syntax.NewNode(syntax.PostIncrementExpr, expr, p.advance())
		case token.MinusMinus:
			expr = syntax.NewNode(syntax.PostDecrementExpr, expr, p.advance())
		default:
			return expr
		}
	}
}
