package parser

import (
	"lintel/internal/diag"
	"lintel/internal/syntax"
	"lintel/internal/token"
)

// parseType разбирает тип в контексте типа: здесь '<' всегда открывает
// аргументы дженерика.
func (p *Parser) parseType() *syntax.Node {
	var typ *syntax.Node
	switch tok := p.peek(); {
	case tok.Kind.IsPredefinedType():
		typ = syntax.NewNode(syntax.PredefinedType, p.advance())
	case tok.Kind == token.Ident:
		typ = p.parseSimpleName()
		for p.at(token.Dot) && p.peekAt(1).Kind == token.Ident {
			dot := p.advance()
			typ = syntax.NewNode(syntax.QualifiedName, typ, dot, p.parseSimpleName())
		}
	default:
		p.err(diag.SynExpectType, "expected type, got "+describe(tok))
		return syntax.NewNode(syntax.IdentifierName, syntax.NewMissing(token.Ident))
	}
	return p.parseTypeSuffixes(typ)
}

func (p *Parser) parseTypeSuffixes(typ *syntax.Node) *syntax.Node {
	for {
		switch {
		case p.at(token.Question):
			typ = syntax.NewNode(syntax.NullableType, typ, p.advance())
		case p.at(token.LBracket) && p.peekAt(1).Kind == token.RBracket:
			open := p.advance()
			typ = syntax.NewNode(syntax.ArrayType, typ, open, p.advance())
		default:
			return typ
		}
	}
}

// parseSimpleName: Ident или Ident<T, ...>.
func (p *Parser) parseSimpleName() *syntax.Node {
	ident := p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier")
	if !p.at(token.Lt) {
		return syntax.NewNode(syntax.IdentifierName, ident)
	}
	open := p.advance()
	args := p.parseSeparated(token.Gt, p.parseType)
	closeTok := p.expect(token.Gt, diag.SynExpectToken, "expected '>'")
	return syntax.NewNode(syntax.GenericName, ident,
		syntax.NewNode(syntax.TypeArgumentList, open, args, closeTok))
}

// parseName - квалифицированное имя без аргументов типа (using, namespace).
func (p *Parser) parseName() *syntax.Node {
	name := syntax.NewNode(syntax.IdentifierName, p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier"))
	for p.at(token.Dot) {
		dot := p.advance()
		right := syntax.NewNode(syntax.IdentifierName, p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier"))
		name = syntax.NewNode(syntax.QualifiedName, name, dot, right)
	}
	return name
}

// scanType смотрит вперёд без построения узлов и без диагностик.
// Возвращает индекс токена сразу за типом, начиная с i.
func (p *Parser) scanType(i int) (int, bool) {
	kindAt := func(j int) token.Kind {
		if j < len(p.toks) {
			return p.toks[j].Kind
		}
		return token.EOF
	}
	switch k := kindAt(i); {
	case k.IsPredefinedType():
		i++
	case k == token.Ident:
		for {
			i++
			if kindAt(i) == token.Lt {
				i++
				for {
					next, ok := p.scanType(i)
					if !ok {
						return 0, false
					}
					i = next
					if kindAt(i) != token.Comma {
						break
					}
					i++
				}
				if kindAt(i) != token.Gt {
					return 0, false
				}
				i++
			}
			if kindAt(i) != token.Dot || kindAt(i+1) != token.Ident {
				break
			}
			i++
		}
	default:
		return 0, false
	}
	for {
		switch {
		case kindAt(i) == token.Question:
			i++
		case kindAt(i) == token.LBracket && kindAt(i+1) == token.RBracket:
			i += 2
		default:
			return i, true
		}
	}
}
