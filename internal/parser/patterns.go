package parser

import (
	"github.com/tscore-lang/tscore/internal/ast"
	"github.com/tscore-lang/tscore/internal/token"
)

// parsePattern parses a destructuring binding pattern: `[a, b]`, `{a,
// b: c}`, or a plain identifier pattern (used for parameter patterns
// and the element/property forms below).
func (p *Parser) parsePattern() ast.Pattern {
	switch p.cur().Kind {
	case token.LBRACK:
		return p.parseArrayPattern()
	case token.LBRACE:
		return p.parseObjectPattern()
	default:
		return p.parseIdentifierPattern()
	}
}

func (p *Parser) parseIdentifierPattern() ast.Pattern {
	tok := p.cur()
	name := p.expect(token.IDENT).Lexeme
	pat := &ast.IdentifierPattern{Token: tok, Name: name}
	if p.is(token.ASSIGN) {
		p.advance()
		pat.Default = p.parseAssignmentExpression()
	}
	return pat
}

func (p *Parser) parseArrayPattern() ast.Pattern {
	tok := p.expect(token.LBRACK)
	pat := &ast.ArrayPattern{Token: tok}
	for !p.is(token.RBRACK) && !p.cursor.IsEOF() {
		if p.is(token.COMMA) {
			pat.Elements = append(pat.Elements, ast.ArrayPatternElement{})
			p.advance()
			continue
		}
		var el ast.ArrayPatternElement
		if p.is(token.DOTDOTDOT) {
			p.advance()
			el.Rest = true
		}
		el.Pattern = p.parsePattern()
		pat.Elements = append(pat.Elements, el)
		if p.is(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RBRACK)
	return pat
}

func (p *Parser) parseObjectPattern() ast.Pattern {
	tok := p.expect(token.LBRACE)
	pat := &ast.ObjectPattern{Token: tok}
	var namedKeys []string
	for !p.is(token.RBRACE) && !p.cursor.IsEOF() {
		var prop ast.ObjectPatternProperty
		if p.is(token.DOTDOTDOT) {
			p.advance()
			prop.Rest = true
			prop.RestExcludedKeys = append([]string{}, namedKeys...)
			prop.Value = p.parseIdentifierPattern()
			pat.Properties = append(pat.Properties, prop)
			break
		}
		if p.is(token.LBRACK) {
			p.advance()
			prop.Computed = p.parseAssignmentExpression()
			p.expect(token.RBRACK)
		} else {
			prop.Key = p.expect(token.IDENT).Lexeme
			namedKeys = append(namedKeys, prop.Key)
		}
		if p.is(token.COLON) {
			p.advance()
			prop.Value = p.parsePattern()
		} else {
			prop.Value = &ast.IdentifierPattern{Token: p.cur(), Name: prop.Key}
		}
		if p.is(token.ASSIGN) {
			p.advance()
			prop.Default = p.parseAssignmentExpression()
		}
		pat.Properties = append(pat.Properties, prop)
		if p.is(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RBRACE)
	return pat
}
