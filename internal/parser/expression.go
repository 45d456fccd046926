package parser

import (
	"lintel/internal/diag"
	"lintel/internal/syntax"
	"lintel/internal/token"
)

// parseExpr - вход: присваивание (правоассоциативно).
func (p *Parser) parseExpr() *syntax.Node {
	left := p.parseConditional()
	if isAssignOp(p.peek().Kind) {
		op := p.advance()
		return syntax.NewNode(syntax.AssignExpr, left, op, p.parseExpr())
	}
	return left
}

// parseConditional: Binary ('?' Expr ':' Expr)?
func (p *Parser) parseConditional() *syntax.Node {
	cond := p.parseBinary(precCoalesce)
	if !p.at(token.Question) {
		return cond
	}
	q := p.advance()
	whenTrue := p.parseExpr()
	colon := p.expect(token.Colon, diag.SynExpectToken, "expected ':'")
	whenFalse := p.parseExpr()
	return syntax.NewNode(syntax.ConditionalExpr, cond, q, whenTrue, colon, whenFalse)
}

// parseBinary - precedence climbing. '??' правоассоциативен, остальные - левые.
func (p *Parser) parseBinary(minPrec int) *syntax.Node {
	left := p.parseUnary()
	for {
		prec, kind := binaryOp(p.peek().Kind)
		if prec < minPrec {
			return left
		}
		op := p.advance()
		var right *syntax.Node
		switch kind {
		case syntax.IsExpr, syntax.AsExpr:
			right = p.parseType()
		case syntax.CoalesceExpr:
			right = p.parseBinary(prec)
		default:
			right = p.parseBinary(prec + 1)
		}
		left = syntax.NewNode(kind, left, op, right)
	}
}

// parseUnary: prefixOp* Postfix
func (p *Parser) parseUnary() *syntax.Node {
	if kind := prefixOp(p.peek().Kind); kind != syntax.KindInvalid {
		op := p.advance()
		return syntax.NewNode(kind, op, p.parseUnary())
	}
	return p.parsePostfix(p.parsePrimary())
}

// parsePrimary разбирает атомы. На неожиданном токене ничего не съедает и
// возвращает имя с пропущенным идентификатором.
func (p *Parser) parsePrimary() *syntax.Node {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit, token.RealLit:
		return syntax.NewNode(syntax.NumericLiteral, p.advance())
	case token.StringLit:
		return syntax.NewNode(syntax.StringLiteral, p.advance())
	case token.CharLit:
		return syntax.NewNode(syntax.CharLiteral, p.advance())
	case token.KwTrue:
		return syntax.NewNode(syntax.TrueLiteral, p.advance())
	case token.KwFalse:
		return syntax.NewNode(syntax.FalseLiteral, p.advance())
	case token.KwNull:
		return syntax.NewNode(syntax.NullLiteral, p.advance())
	case token.KwThis:
		return syntax.NewNode(syntax.ThisExpr, p.advance())
	case token.KwBase:
		return syntax.NewNode(syntax.BaseExpr, p.advance())
	case token.Ident:
		return syntax.NewNode(syntax.IdentifierName, p.advance())
	case token.LParen:
		open := p.advance()
		inner := p.parseExpr()
		return syntax.NewNode(syntax.ParenExpr, open, inner, p.expectRParen())
	case token.KwNew:
		return p.parseObjectCreation()
	case token.KwTypeof:
		kw := p.advance()
		open := p.expectLParen()
		typ := p.parseType()
		return syntax.NewNode(syntax.TypeofExpr, kw, open, typ, p.expectRParen())
	}
	if tok.Kind.IsPredefinedType() {
		return syntax.NewNode(syntax.PredefinedType, p.advance())
	}
	p.err(diag.SynExpectExpression, "expected expression, got "+describe(tok))
	return syntax.NewNode(syntax.IdentifierName, syntax.NewMissing(token.Ident))
}

// parseObjectCreation: 'new' Type Args?
func (p *Parser) parseObjectCreation() *syntax.Node {
	kw := p.advance()
	typ := p.parseType()
	var args *syntax.Node
	if p.at(token.LParen) {
		args = p.parseArgumentList(token.LParen, token.RParen)
	}
	return syntax.NewNode(syntax.ObjectCreationExpr, kw, typ, args)
}
