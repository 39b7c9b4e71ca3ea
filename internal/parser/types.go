package parser

import (
	"github.com/tscore-lang/tscore/internal/ast"
	"github.com/tscore-lang/tscore/internal/token"
)

// parseTypeExpression parses a full type annotation, including `|`/`&`
// combinators and the `extends ... ? ... :` conditional form.
func (p *Parser) parseTypeExpression() ast.TypeExpression {
	return p.parseConditionalType()
}

func (p *Parser) parseConditionalType() ast.TypeExpression {
	check := p.parseUnionType()
	if p.is(token.EXTENDS) {
		tok := p.cur()
		p.advance()
		var inferParams []string
		extends := p.parseUnionTypeCollectingInfers(&inferParams)
		p.expect(token.QUESTION)
		trueType := p.parseTypeExpression()
		p.expect(token.COLON)
		falseType := p.parseTypeExpression()
		return &ast.ConditionalType{Token: tok, Check: check, Extends: extends, InferParams: inferParams, True: trueType, False: falseType}
	}
	return check
}

// parseUnionTypeCollectingInfers parses the `extends` clause of a
// conditional type, recording every `infer T` placeholder it contains
// so the checker knows which names the true-branch may reference.
func (p *Parser) parseUnionTypeCollectingInfers(infers *[]string) ast.TypeExpression {
	typ := p.parseUnionType()
	collectInferNames(typ, infers)
	return typ
}

func collectInferNames(t ast.TypeExpression, out *[]string) {
	switch v := t.(type) {
	case *ast.InferType:
		*out = append(*out, v.Name)
	case *ast.UnionType:
		for _, p := range v.Parts {
			collectInferNames(p, out)
		}
	case *ast.IntersectionType:
		for _, p := range v.Parts {
			collectInferNames(p, out)
		}
	case *ast.ArrayType:
		collectInferNames(v.Element, out)
	case *ast.TupleType:
		for _, e := range v.Elements {
			collectInferNames(e.Type, out)
		}
	case *ast.NamedType:
		for _, a := range v.TypeArgs {
			collectInferNames(a, out)
		}
	case *ast.ParenType:
		collectInferNames(v.Inner, out)
	}
}

func (p *Parser) parseUnionType() ast.TypeExpression {
	if p.is(token.PIPE) {
		p.advance()
	}
	tok := p.cur()
	first := p.parseIntersectionType()
	if !p.is(token.PIPE) {
		return first
	}
	u := &ast.UnionType{Token: tok, Parts: []ast.TypeExpression{first}}
	for p.is(token.PIPE) {
		p.advance()
		u.Parts = append(u.Parts, p.parseIntersectionType())
	}
	return u
}

func (p *Parser) parseIntersectionType() ast.TypeExpression {
	if p.is(token.AMP) {
		p.advance()
	}
	tok := p.cur()
	first := p.parseTypeOperator()
	if !p.is(token.AMP) {
		return first
	}
	it := &ast.IntersectionType{Token: tok, Parts: []ast.TypeExpression{first}}
	for p.is(token.AMP) {
		p.advance()
		it.Parts = append(it.Parts, p.parseTypeOperator())
	}
	return it
}

// parseTypeOperator handles the prefix type operators: `keyof T`,
// `readonly T[]`, `unique symbol`, and `infer T`.
func (p *Parser) parseTypeOperator() ast.TypeExpression {
	if p.isIdent("keyof") {
		tok := p.cur()
		p.advance()
		return &ast.KeyofType{Token: tok, Operand: p.parseTypeOperator()}
	}
	if p.isIdent("readonly") {
		p.advance()
		return p.parseTypeOperator()
	}
	if p.isIdent("unique") {
		tok := p.cur()
		p.advance()
		p.expectIdent("symbol")
		return &ast.UniqueSymbolType{Token: tok}
	}
	if p.isIdent("infer") {
		tok := p.cur()
		p.advance()
		name := p.expect(token.IDENT).Lexeme
		return &ast.InferType{Token: tok, Name: name}
	}
	return p.parsePostfixType()
}

// parsePostfixType applies `[]` (array) and `[K]` (indexed access)
// postfix suffixes to a primary type.
func (p *Parser) parsePostfixType() ast.TypeExpression {
	t := p.parsePrimaryType()
	for {
		if p.is(token.LBRACK) {
			lb := p.cur()
			p.advance()
			if p.is(token.RBRACK) {
				p.advance()
				t = &ast.ArrayType{Token: lb, Element: t}
				continue
			}
			idx := p.parseTypeExpression()
			p.expect(token.RBRACK)
			t = &ast.IndexedAccessType{Token: lb, Object: t, Index: idx}
			continue
		}
		break
	}
	return t
}

func (p *Parser) parsePrimaryType() ast.TypeExpression {
	tok := p.cur()
	switch tok.Kind {
	case token.LPAREN:
		return p.parseParenOrFunctionType()
	case token.NEW:
		return p.parseFunctionTypeNode(true)
	case token.LBRACK:
		return p.parseTupleType()
	case token.LBRACE:
		return p.parseRecordOrMappedType()
	case token.STRING:
		p.advance()
		return &ast.LiteralType{Token: tok, Value: &ast.StringLiteral{Token: tok, Value: tok.Literal.String}}
	case token.NUMBER:
		p.advance()
		return &ast.LiteralType{Token: tok, Value: &ast.NumberLiteral{Token: tok, Value: tok.Literal.Number}}
	case token.TRUE, token.FALSE:
		p.advance()
		return &ast.LiteralType{Token: tok, Value: &ast.BooleanLiteral{Token: tok, Value: tok.Kind == token.TRUE}}
	case token.NULL:
		p.advance()
		return &ast.LiteralType{Token: tok, Value: &ast.NullLiteral{Token: tok}}
	case token.MINUS:
		p.advance()
		num := p.expect(token.NUMBER)
		return &ast.LiteralType{Token: tok, Value: &ast.NumberLiteral{Token: num, Value: -num.Literal.Number}}
	case token.TEMPLATE_FULL, token.TEMPLATE_HEAD:
		return p.parseTemplateLiteralType()
	case token.VOID:
		p.advance()
		return &ast.NamedType{Token: tok, Name: "void"}
	case token.NEVER:
		p.advance()
		return &ast.NamedType{Token: tok, Name: "never"}
	case token.UNKNOWN:
		p.advance()
		return &ast.NamedType{Token: tok, Name: "unknown"}
	case token.ANY:
		p.advance()
		return &ast.NamedType{Token: tok, Name: "any"}
	case token.UNDEFINED:
		p.advance()
		return &ast.NamedType{Token: tok, Name: "undefined"}
	case token.THIS:
		p.advance()
		return &ast.NamedType{Token: tok, Name: "this"}
	case token.IDENT:
		if p.isIdent("asserts") {
			return p.parseAssertsPredicateType()
		}
		return p.parseNamedTypeOrPredicate()
	default:
		p.errorf("unexpected token %s in type position", tok.Kind)
		p.advance()
		return &ast.NamedType{Token: tok, Name: "any"}
	}
}

func (p *Parser) parseAssertsPredicateType() ast.TypeExpression {
	tok := p.cur()
	p.advance() // 'asserts'
	param := p.expect(token.IDENT).Lexeme
	if p.isIdent("is") {
		p.advance()
		typ := p.parseTypeOperator()
		return &ast.TypePredicateType{Token: tok, ParamName: param, Asserts: true, Type: typ}
	}
	return &ast.TypePredicateType{Token: tok, ParamName: param, Asserts: true}
}

// parseNamedTypeOrPredicate parses `Name<Args>` / dotted qualified
// names, and recognizes the `x is T` type-predicate form that can only
// appear in a function return-type position.
func (p *Parser) parseNamedTypeOrPredicate() ast.TypeExpression {
	tok := p.cur()
	name := p.expect(token.IDENT).Lexeme
	for p.is(token.DOT) {
		p.advance()
		name += "." + p.expect(token.IDENT).Lexeme
	}
	if p.isIdent("is") {
		p.advance()
		typ := p.parseTypeOperator()
		return &ast.TypePredicateType{Token: tok, ParamName: name, Type: typ}
	}
	nt := &ast.NamedType{Token: tok, Name: name}
	if p.is(token.LESS) {
		nt.TypeArgs = p.parseTypeArgumentList()
	}
	return nt
}

func (p *Parser) parseTypeArgumentList() []ast.TypeExpression {
	p.expect(token.LESS)
	var args []ast.TypeExpression
	for !p.is(token.GREATER) && !p.cursor.IsEOF() {
		args = append(args, p.parseTypeExpression())
		if p.is(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.GREATER)
	return args
}

func (p *Parser) parseTupleType() ast.TypeExpression {
	tok := p.expect(token.LBRACK)
	tt := &ast.TupleType{Token: tok}
	for !p.is(token.RBRACK) && !p.cursor.IsEOF() {
		var el ast.TupleElement
		if p.is(token.DOTDOTDOT) {
			p.advance()
			el.Rest = true
		}
		if p.is(token.IDENT) && (p.peek(1).Kind == token.COLON || (p.peek(1).Kind == token.QUESTION && p.peek(2).Kind == token.COLON)) {
			el.Name = p.cur().Lexeme
			p.advance()
			if p.is(token.QUESTION) {
				el.Optional = true
				p.advance()
			}
			p.expect(token.COLON)
		}
		el.Type = p.parseTypeExpression()
		if p.is(token.QUESTION) {
			el.Optional = true
			p.advance()
		}
		tt.Elements = append(tt.Elements, el)
		if p.is(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RBRACK)
	return tt
}

// parseParenOrFunctionType disambiguates `(T)` grouping from `(a: T)
// => R` function types by speculatively scanning for a matching `)`
// immediately followed by `=>`.
func (p *Parser) parseParenOrFunctionType() ast.TypeExpression {
	if p.looksLikeFunctionTypeParams() {
		return p.parseFunctionTypeNode(false)
	}
	tok := p.expect(token.LPAREN)
	inner := p.parseTypeExpression()
	p.expect(token.RPAREN)
	return &ast.ParenType{Token: tok, Inner: inner}
}

func (p *Parser) looksLikeFunctionTypeParams() bool {
	mark := p.cursor.Mark()
	defer func() { p.cursor = p.cursor.ResetTo(mark) }()

	depth := 0
	for i := 0; ; i++ {
		t := p.peek(i)
		switch t.Kind {
		case token.LPAREN, token.LBRACK, token.LBRACE:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 {
				return p.peek(i+1).Kind == token.FAT_ARROW
			}
		case token.RBRACK, token.RBRACE:
			depth--
		case token.EOF:
			return false
		}
		if i > 500 {
			return false
		}
	}
}

func (p *Parser) parseFunctionTypeNode(isNew bool) *ast.FunctionTypeNode {
	tok := p.cur()
	if isNew {
		p.expect(token.NEW)
	}
	var typeParams []*ast.TypeParam
	if p.is(token.LESS) {
		typeParams = p.parseTypeParamList()
	}
	p.expect(token.LPAREN)
	var params []*ast.Param
	var thisParam ast.TypeExpression
	for !p.is(token.RPAREN) && !p.cursor.IsEOF() {
		if p.is(token.THIS) {
			p.advance()
			p.expect(token.COLON)
			thisParam = p.parseTypeExpression()
		} else {
			params = append(params, p.parseParam())
		}
		if p.is(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RPAREN)
	p.expect(token.FAT_ARROW)
	ret := p.parseTypeExpression()
	return &ast.FunctionTypeNode{Token: tok, TypeParams: typeParams, Params: params, ThisParam: thisParam, Return: ret, IsNew: isNew}
}

// parseRecordOrMappedType disambiguates a mapped type `{ [K in Keys]:
// V }` from an ordinary object type literal by checking for the `in`
// keyword right after the opening `[`.
func (p *Parser) parseRecordOrMappedType() ast.TypeExpression {
	if p.looksLikeMappedType() {
		return p.parseMappedType()
	}
	return p.parseRecordType()
}

func (p *Parser) looksLikeMappedType() bool {
	return p.is(token.LBRACE) && p.peek(1).Kind == token.LBRACK && p.peek(2).Kind == token.IDENT && p.peek(3).Kind == token.IN
}

func (p *Parser) parseMappedType() ast.TypeExpression {
	tok := p.expect(token.LBRACE)
	mt := &ast.MappedType{Token: tok}
	if p.is(token.PLUS) {
		p.advance()
		p.expectIdent("readonly")
		mt.ReadonlyMod = ast.ModifierAdd
	} else if p.is(token.MINUS) {
		p.advance()
		p.expectIdent("readonly")
		mt.ReadonlyMod = ast.ModifierRemove
	} else if p.isIdent("readonly") {
		p.advance()
		mt.ReadonlyMod = ast.ModifierAdd
	}
	p.expect(token.LBRACK)
	mt.KeyName = p.expect(token.IDENT).Lexeme
	p.expect(token.IN)
	mt.Keys = p.parseTypeExpression()
	if p.isIdent("as") {
		p.advance()
		mt.As = p.parseTypeExpression()
	}
	p.expect(token.RBRACK)
	if p.is(token.PLUS) {
		p.advance()
		p.expect(token.QUESTION)
		mt.OptionalMod = ast.ModifierAdd
	} else if p.is(token.MINUS) {
		p.advance()
		p.expect(token.QUESTION)
		mt.OptionalMod = ast.ModifierRemove
	} else if p.is(token.QUESTION) {
		p.advance()
		mt.OptionalMod = ast.ModifierAdd
	}
	p.expect(token.COLON)
	mt.Value = p.parseTypeExpression()
	p.skipSemicolon()
	p.expect(token.RBRACE)
	return mt
}

func (p *Parser) parseRecordType() ast.TypeExpression {
	tok := p.expect(token.LBRACE)
	rt := &ast.RecordType{Token: tok}
	for !p.is(token.RBRACE) && !p.cursor.IsEOF() {
		if p.is(token.LPAREN) || p.is(token.LESS) {
			fn := p.parseFunctionTypeNode(false)
			rt.Members = append(rt.Members, ast.RecordMember{CallSig: fn})
		} else if p.is(token.NEW) {
			fn := p.parseFunctionTypeNode(true)
			rt.Members = append(rt.Members, ast.RecordMember{ConstructSig: fn})
		} else if p.is(token.LBRACK) && p.isIndexSignatureAhead() {
			p.advance()
			keyName := p.expect(token.IDENT).Lexeme
			p.expect(token.COLON)
			keyType := p.parseTypeExpression()
			p.expect(token.RBRACK)
			p.expect(token.COLON)
			valType := p.parseTypeExpression()
			rt.IndexSignatures = append(rt.IndexSignatures, ast.IndexSignature{KeyName: keyName, KeyType: keyType, Value: valType})
		} else {
			rt.Members = append(rt.Members, p.parseRecordMember())
		}
		if p.is(token.SEMICOLON) || p.is(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RBRACE)
	return rt
}

func (p *Parser) isIndexSignatureAhead() bool {
	return p.peek(1).Kind == token.IDENT && p.peek(2).Kind == token.COLON
}

func (p *Parser) parseRecordMember() ast.RecordMember {
	var m ast.RecordMember
	readonly := false
	if p.isIdent("readonly") {
		readonly = true
		p.advance()
	}
	if p.is(token.LBRACK) {
		p.advance()
		m.Computed = p.parseAssignmentExpression()
		p.expect(token.RBRACK)
	} else {
		m.Name = p.expect(token.IDENT).Lexeme
	}
	m.Readonly = readonly
	if p.is(token.QUESTION) {
		m.Optional = true
		p.advance()
	}
	if p.is(token.LPAREN) || p.is(token.LESS) {
		// method-shorthand signature: `foo(a: T): R`
		fn := p.parseFunctionTypeNode(false)
		m.Type = fn
		return m
	}
	p.expect(token.COLON)
	m.Type = p.parseTypeExpression()
	return m
}

func (p *Parser) parseTemplateLiteralType() ast.TypeExpression {
	tok := p.cur()
	tlt := &ast.TemplateLiteralType{Token: tok}
	tlt.Quasis = append(tlt.Quasis, tok.Cooked)
	if tok.Kind == token.TEMPLATE_FULL {
		p.advance()
		return tlt
	}
	p.advance()
	for {
		tlt.Types = append(tlt.Types, p.parseTypeExpression())
		if !p.is(token.RBRACE) {
			p.errorf("expected '}' to close template type substitution")
		}
		p.cursor = p.cursor.AdvanceTemplatePart()
		part := p.cur()
		tlt.Quasis = append(tlt.Quasis, part.Cooked)
		if part.Kind == token.TEMPLATE_TAIL {
			p.advance()
			break
		}
		p.advance()
	}
	return tlt
}

func (p *Parser) parseTypeParamList() []*ast.TypeParam {
	p.expect(token.LESS)
	var params []*ast.TypeParam
	for !p.is(token.GREATER) && !p.cursor.IsEOF() {
		tp := &ast.TypeParam{Token: p.cur()}
		tp.Variance, tp.Token = p.parseVariance()
		tp.Name = p.expect(token.IDENT).Lexeme
		if p.is(token.EXTENDS) {
			p.advance()
			tp.Constraint = p.parseTypeExpression()
		}
		if p.is(token.ASSIGN) {
			p.advance()
			tp.Default = p.parseTypeExpression()
		}
		params = append(params, tp)
		if p.is(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.GREATER)
	return params
}

// parseVariance recognizes the optional leading `in`/`out`/`in out`
// variance annotation on a type parameter.
func (p *Parser) parseVariance() (ast.Variance, token.Token) {
	tok := p.cur()
	in := p.isIdent("in")
	out := p.isIdent("out")
	if in {
		mark := p.cursor.Mark()
		p.advance()
		if p.isIdent("out") {
			p.advance()
			return ast.VarianceInOut, tok
		}
		if p.is(token.IDENT) {
			return ast.VarianceIn, tok
		}
		p.cursor = p.cursor.ResetTo(mark)
		return ast.VarianceInvariant, tok
	}
	if out {
		mark := p.cursor.Mark()
		p.advance()
		if p.is(token.IDENT) {
			return ast.VarianceOut, tok
		}
		p.cursor = p.cursor.ResetTo(mark)
	}
	return ast.VarianceInvariant, tok
}
