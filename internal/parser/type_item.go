package parser

import (
	"lintel/internal/diag"
	"lintel/internal/syntax"
	"lintel/internal/token"
)

// isMemberStarter - может ли токен начинать объявление.
func isMemberStarter(k token.Kind) bool {
	switch {
	case k.IsModifier(), k.IsPredefinedType():
		return true
	}
	switch k {
	case token.KwClass, token.KwInterface, token.KwStruct, token.KwNamespace,
		token.Tilde, token.Ident, token.RBrace:
		return true
	default:
		return false
	}
}

// parseMembers разбирает объявления до closer. typeName - имя объемлющего
// типа (пусто на уровне файла и namespace), нужно для распознавания конструкторов.
func (p *Parser) parseMembers(closer token.Kind, typeName string) *syntax.Node {
	var items []*syntax.Node
	for !p.at(closer) && !p.at(token.EOF) {
		start := p.pos
		member := p.parseMember(typeName)
		if member != nil {
			items = append(items, member)
		}
		if p.pos == start {
			p.err(diag.SynExpectMember, "expected declaration, got "+describe(p.peek()))
			if skipped := p.skipUntil(isMemberStarter); skipped != nil {
				items = append(items, skipped)
			}
		}
	}
	return syntax.NewList(items...)
}

// parseMember выбирает по первым токенам нужный распознаватель.
func (p *Parser) parseMember(typeName string) *syntax.Node {
	if p.at(token.KwNamespace) {
		return p.parseNamespace()
	}
	start := p.pos
	mods := p.parseModifiers()
	switch tok := p.peek(); {
	case tok.Kind == token.KwClass || tok.Kind == token.KwInterface || tok.Kind == token.KwStruct:
		return p.parseTypeDecl(mods)
	case tok.Kind == token.Tilde:
		return p.parseDestructor(mods)
	case tok.Kind == token.Ident && typeName != "" && tok.Text == typeName && p.peekAt(1).Kind == token.LParen:
		return p.parseConstructor(mods)
	case tok.Kind == token.Ident || tok.Kind.IsPredefinedType():
		return p.parseMethodOrField(mods)
	}
	if p.pos == start {
		return nil
	}
	// модификаторы без объявления
	p.err(diag.SynExpectMember, "expected declaration after modifiers, got "+describe(p.peek()))
	return syntax.NewNode(syntax.KindError, mods)
}

// parseNamespace: 'namespace' Name '{' usings members '}'
func (p *Parser) parseNamespace() *syntax.Node {
	kw := p.advance()
	name := p.parseName()
	open := p.expect(token.LBrace, diag.SynExpectToken, "expected '{'")
	usings := p.parseUsings()
	members := p.parseMembers(token.RBrace, "")
	closeTok := p.expectClose()
	return syntax.NewNode(syntax.NamespaceDecl, kw, name, open, usings, members, closeTok)
}

func (p *Parser) expectClose() *syntax.Node {
	if p.at(token.RBrace) {
		return p.advance()
	}
	p.err(diag.SynUnclosedBrace, "expected '}', got "+describe(p.peek()))
	return syntax.NewMissing(token.RBrace)
}

// parseTypeDecl: mods ('class'|'interface'|'struct') Ident TypeParams? BaseList? '{' members '}' ';'?
func (p *Parser) parseTypeDecl(mods *syntax.Node) *syntax.Node {
	kwTok := p.peek()
	kw := p.advance()
	nameTok := p.peek()
	name := p.expect(token.Ident, diag.SynExpectIdentifier, "expected type name")

	var typeParams *syntax.Node
	if p.at(token.Lt) {
		typeParams = p.parseTypeParameters()
	}
	var bases *syntax.Node
	if p.at(token.Colon) {
		colon := p.advance()
		bases = syntax.NewNode(syntax.BaseList, colon, p.parseSeparated(token.LBrace, p.parseType))
	}
	open := p.expect(token.LBrace, diag.SynExpectToken, "expected '{'")
	typeName := ""
	if nameTok.Kind == token.Ident {
		typeName = nameTok.Text
	}
	members := p.parseMembers(token.RBrace, typeName)
	closeTok := p.expectClose()
	semi := p.optional(token.Semicolon)

	kind := syntax.ClassDecl
	switch kwTok.Kind {
	case token.KwInterface:
		kind = syntax.InterfaceDecl
	case token.KwStruct:
		kind = syntax.StructDecl
	}
	return syntax.NewNode(kind, mods, kw, name, typeParams, bases, open, members, closeTok, semi)
}

// parseTypeParameters: '<' Ident (',' Ident)* '>'
func (p *Parser) parseTypeParameters() *syntax.Node {
	open := p.advance()
	items := p.parseSeparated(token.Gt, func() *syntax.Node {
		return p.expect(token.Ident, diag.SynExpectIdentifier, "expected type parameter name")
	})
	closeTok := p.expect(token.Gt, diag.SynExpectToken, "expected '>'")
	return syntax.NewNode(syntax.TypeParameterList, open, items, closeTok)
}
