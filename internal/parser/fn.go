package parser

import (
	"lintel/internal/diag"
	"lintel/internal/syntax"
	"lintel/internal/token"
)

// parseMethodOrField: mods Type Ident ( '(' → метод | иначе поле ).
func (p *Parser) parseMethodOrField(mods *syntax.Node) *syntax.Node {
	typ := p.parseType()
	if p.at(token.Ident) && p.peekAt(1).Kind == token.LParen ||
		p.at(token.Ident) && p.peekAt(1).Kind == token.Lt {
		return p.parseMethod(mods, typ)
	}
	decl := p.parseVariableDeclaration(typ)
	return syntax.NewNode(syntax.FieldDecl, mods, decl, p.expectSemicolon())
}

// parseMethod: mods Type Ident TypeParams? Params Body
func (p *Parser) parseMethod(mods, ret *syntax.Node) *syntax.Node {
	name := p.advance()
	var typeParams *syntax.Node
	if p.at(token.Lt) {
		typeParams = p.parseTypeParameters()
	}
	params := p.parseParameterList()
	body, arrow, semi := p.parseBody()
	return syntax.NewNode(syntax.MethodDecl, mods, ret, name, typeParams, params, body, arrow, semi)
}

// parseConstructor: mods Ident Params (':' ('base'|'this') Args)? Body
func (p *Parser) parseConstructor(mods *syntax.Node) *syntax.Node {
	name := p.advance()
	params := p.parseParameterList()
	var init *syntax.Node
	if p.at(token.Colon) {
		colon := p.advance()
		var kw *syntax.Node
		if p.atOr(token.KwBase, token.KwThis) {
			kw = p.advance()
		} else {
			p.err(diag.SynExpectToken, "expected 'base' or 'this', got "+describe(p.peek()))
			kw = syntax.NewMissing(token.KwBase)
		}
		init = syntax.NewNode(syntax.ConstructorInitializer, colon, kw, p.parseArgumentList(token.LParen, token.RParen))
	}
	body, arrow, semi := p.parseBody()
	return syntax.NewNode(syntax.ConstructorDecl, mods, name, params, init, body, arrow, semi)
}

// parseDestructor: mods '~' Ident '(' ')' Body
func (p *Parser) parseDestructor(mods *syntax.Node) *syntax.Node {
	tilde := p.advance()
	name := p.expect(token.Ident, diag.SynExpectIdentifier, "expected destructor name")
	params := p.parseParameterList()
	body, arrow, semi := p.parseBody()
	return syntax.NewNode(syntax.DestructorDecl, mods, tilde, name, params, body, arrow, semi)
}

// parseBody: Block | '=>' Expr ';' | ';'. Ровно одно из body/arrow
// непусто, либо ни одного - тогда есть ';'.
func (p *Parser) parseBody() (body, arrow, semi *syntax.Node) {
	switch {
	case p.at(token.LBrace):
		return p.parseBlock(), nil, nil
	case p.at(token.FatArrow):
		fat := p.advance()
		arrow = syntax.NewNode(syntax.ArrowExpressionClause, fat, p.parseExpr())
		return nil, arrow, p.expectSemicolon()
	default:
		return nil, nil, p.expectSemicolon()
	}
}

// parseVariableDeclaration: Type Declarator (',' Declarator)*
func (p *Parser) parseVariableDeclaration(typ *syntax.Node) *syntax.Node {
	decls := p.parseSeparated(token.Semicolon, p.parseDeclarator)
	return syntax.NewNode(syntax.VariableDeclaration, typ, decls)
}

func (p *Parser) parseDeclarator() *syntax.Node {
	name := p.expect(token.Ident, diag.SynExpectIdentifier, "expected variable name")
	var init *syntax.Node
	if p.at(token.Assign) {
		eq := p.advance()
		init = syntax.NewNode(syntax.EqualsValueClause, eq, p.parseExpr())
	}
	return syntax.NewNode(syntax.VariableDeclarator, name, init)
}
