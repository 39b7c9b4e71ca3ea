package parser

import (
	"github.com/tscore-lang/tscore/internal/ast"
	"github.com/tscore-lang/tscore/internal/token"
)

// parseExpression parses a comma-separated sequence expression at the
// top level of a statement (`a, b, c`), collapsing to the single
// expression when there is no comma.
func (p *Parser) parseExpression() ast.Expression {
	tok := p.cur()
	first := p.parseAssignmentExpression()
	if !p.is(token.COMMA) {
		return first
	}
	seq := &ast.SequenceExpression{Token: tok, Expressions: []ast.Expression{first}}
	for p.is(token.COMMA) {
		p.advance()
		seq.Expressions = append(seq.Expressions, p.parseAssignmentExpression())
	}
	return seq
}

var assignOps = map[token.Kind]string{
	token.ASSIGN:                   "=",
	token.PLUS_ASSIGN:               "+=",
	token.MINUS_ASSIGN:              "-=",
	token.STAR_ASSIGN:               "*=",
	token.SLASH_ASSIGN:              "/=",
	token.PERCENT_ASSIGN:            "%=",
	token.AMP_AMP_ASSIGN:            "&&=",
	token.PIPE_PIPE_ASSIGN:          "||=",
	token.QUESTION_QUESTION_ASSIGN:  "??=",
}

// parseAssignmentExpression handles arrow-function detection (via
// speculative lookahead), the `yield`/`await` prefix forms, the
// ternary conditional, and assignment/compound-assignment operators,
// in that precedence order from the bottom up.
func (p *Parser) parseAssignmentExpression() ast.Expression {
	if arrow, ok := p.tryParseArrowFunction(); ok {
		return arrow
	}
	if p.is(token.YIELD) {
		return p.parseYieldExpression()
	}

	left := p.parseConditionalExpression()

	if op, ok := assignOps[p.cur().Kind]; ok {
		tok := p.cur()
		p.advance()
		right := p.parseAssignmentExpression()
		return &ast.AssignmentExpression{Token: tok, Target: left, Operator: op, Value: right}
	}
	return left
}

func (p *Parser) parseYieldExpression() ast.Expression {
	tok := p.expect(token.YIELD)
	delegate := false
	if p.is(token.STAR) {
		delegate = true
		p.advance()
	}
	var expr ast.Expression
	if !p.isAny(token.SEMICOLON, token.RPAREN, token.RBRACE, token.RBRACK, token.COMMA) && !p.cursor.IsEOF() {
		expr = p.parseAssignmentExpression()
	}
	return &ast.YieldExpression{Token: tok, Expr: expr, Delegate: delegate}
}

func (p *Parser) parseConditionalExpression() ast.Expression {
	cond := p.parseNullishExpression()
	if !p.is(token.QUESTION) {
		return cond
	}
	tok := p.cur()
	p.advance()
	then := p.parseAssignmentExpression()
	p.expect(token.COLON)
	alt := p.parseAssignmentExpression()
	return &ast.ConditionalExpression{Token: tok, Condition: cond, Then: then, Else: alt}
}

func (p *Parser) parseNullishExpression() ast.Expression {
	left := p.parseBinaryExpression(LOGOR)
	for p.is(token.QUESTION_QUESTION) {
		tok := p.cur()
		p.advance()
		right := p.parseBinaryExpression(LOGOR)
		left = &ast.NullishCoalescingExpression{Token: tok, Left: left, Right: right}
	}
	return left
}

// parseBinaryExpression implements precedence climbing over the
// binPrecedence table, folding `&&`/`||` into LogicalExpression and
// everything else into BinaryExpression.
func (p *Parser) parseBinaryExpression(minPrec int) ast.Expression {
	left := p.parseUnaryExpression()
	for {
		prec, ok := binPrecedence[p.cur().Kind]
		if !ok || prec < minPrec {
			return left
		}
		tok := p.cur()
		opStr := tok.Kind.String()
		nextMin := prec + 1
		if tok.Kind == token.STAR_STAR {
			nextMin = prec // right-associative
		}
		p.advance()
		right := p.parseBinaryExpression(nextMin)
		if tok.Kind == token.AMP_AMP || tok.Kind == token.PIPE_PIPE {
			left = &ast.LogicalExpression{Token: tok, Left: left, Operator: opStr, Right: right}
		} else {
			left = &ast.BinaryExpression{Token: tok, Left: left, Operator: opStr, Right: right}
		}
	}
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	tok := p.cur()
	switch tok.Kind {
	case token.BANG, token.MINUS, token.PLUS, token.TILDE, token.TYPEOF, token.VOID, token.DELETE:
		p.advance()
		operand := p.parseUnaryExpression()
		return &ast.UnaryExpression{Token: tok, Operator: tok.Kind.String(), Operand: operand}
	case token.PLUS_PLUS, token.MINUS_MINUS:
		p.advance()
		operand := p.parseUnaryExpression()
		return &ast.UpdateExpression{Token: tok, Operator: tok.Kind.String(), Operand: operand, Prefix: true}
	case token.AWAIT:
		p.advance()
		return &ast.AwaitExpression{Token: tok, Expr: p.parseUnaryExpression()}
	case token.LESS:
		if p.looksLikeAngleTypeAssertion() {
			return p.parseAngleTypeAssertion()
		}
	}
	return p.parsePostfixExpression()
}

// looksLikeAngleTypeAssertion distinguishes `<T>expr` from a
// less-than comparison by requiring the `<...>` region to parse as a
// type followed by a unary-expression-starting token.
func (p *Parser) looksLikeAngleTypeAssertion() bool {
	mark := p.cursor.Mark()
	defer func() { p.cursor = p.cursor.ResetTo(mark) }()
	p.advance()
	depth := 1
	for depth > 0 {
		switch p.cur().Kind {
		case token.LESS:
			depth++
		case token.GREATER:
			depth--
		case token.EOF, token.SEMICOLON:
			return false
		}
		p.advance()
		if depth == 0 {
			break
		}
	}
	return !p.isAny(token.SEMICOLON, token.RPAREN, token.COMMA, token.EOF)
}

func (p *Parser) parseAngleTypeAssertion() ast.Expression {
	tok := p.expect(token.LESS)
	typ := p.parseTypeExpression()
	p.expect(token.GREATER)
	expr := p.parseUnaryExpression()
	return &ast.TypeAssertionExpression{Token: tok, Expr: expr, Type: typ, AngleStyle: true}
}

func (p *Parser) parsePostfixExpression() ast.Expression {
	expr := p.parseCallOrMemberExpression(p.parsePrimaryExpression())
	for {
		switch {
		case p.is(token.PLUS_PLUS) || p.is(token.MINUS_MINUS):
			tok := p.cur()
			p.advance()
			expr = &ast.UpdateExpression{Token: tok, Operator: tok.Kind.String(), Operand: expr, Prefix: false}
		case p.is(token.BANG):
			tok := p.cur()
			p.advance()
			expr = &ast.NonNullExpression{Token: tok, Expr: expr}
		case p.isIdent("as"):
			p.advance()
			if p.isIdent("const") {
				ctok := p.cur()
				p.advance()
				expr = &ast.TypeAssertionExpression{Token: ctok, Expr: expr, Const: true}
				continue
			}
			typ := p.parseTypeExpression()
			expr = &ast.TypeAssertionExpression{Token: p.cur(), Expr: expr, Type: typ}
		case p.isIdent("satisfies"):
			tok := p.cur()
			p.advance()
			typ := p.parseTypeExpression()
			expr = &ast.SatisfiesExpression{Token: tok, Expr: expr, Type: typ}
		default:
			return expr
		}
	}
}

// parseCallOrMemberExpression parses the left-hand-side chain of
// `.prop`, `?.prop`, `[index]`, `(args)`, tagged templates, and
// `new` expressions following a primary expression.
func (p *Parser) parseCallOrMemberExpression(expr ast.Expression) ast.Expression {
	for {
		switch {
		case p.is(token.DOT):
			tok := p.cur()
			p.advance()
			prop := p.expect(token.IDENT).Lexeme
			expr = &ast.MemberExpression{Token: tok, Object: expr, Property: prop}
		case p.is(token.QUESTION_DOT):
			tok := p.cur()
			p.advance()
			if p.is(token.LPAREN) {
				args := p.parseArgumentList()
				expr = &ast.CallExpression{Token: tok, Callee: expr, Args: args, Optional: true}
				continue
			}
			if p.is(token.LBRACK) {
				p.advance()
				idx := p.parseExpression()
				p.expect(token.RBRACK)
				expr = &ast.IndexExpression{Token: tok, Object: expr, Index: idx, Optional: true}
				continue
			}
			prop := p.expect(token.IDENT).Lexeme
			expr = &ast.MemberExpression{Token: tok, Object: expr, Property: prop, Optional: true}
		case p.is(token.LBRACK):
			tok := p.cur()
			p.advance()
			idx := p.parseExpression()
			p.expect(token.RBRACK)
			expr = &ast.IndexExpression{Token: tok, Object: expr, Index: idx}
		case p.is(token.LPAREN):
			tok := p.cur()
			args := p.parseArgumentList()
			expr = &ast.CallExpression{Token: tok, Callee: expr, Args: args}
		case p.is(token.LESS) && p.looksLikeCallTypeArgs():
			typeArgs := p.parseTypeArgumentList()
			if p.is(token.LPAREN) {
				tok := p.cur()
				args := p.parseArgumentList()
				expr = &ast.CallExpression{Token: tok, Callee: expr, TypeArgs: typeArgs, Args: args}
			} else {
				return expr
			}
		case p.is(token.TEMPLATE_FULL) || p.is(token.TEMPLATE_HEAD):
			tmpl := p.parseTemplateLiteral()
			expr = &ast.TaggedTemplate{Token: tmpl.Token, Tag: expr, Template: tmpl}
		default:
			return expr
		}
	}
}

func (p *Parser) looksLikeCallTypeArgs() bool {
	mark := p.cursor.Mark()
	defer func() { p.cursor = p.cursor.ResetTo(mark) }()
	p.advance()
	depth := 1
	for depth > 0 {
		switch p.cur().Kind {
		case token.LESS:
			depth++
		case token.GREATER:
			depth--
		case token.EOF, token.SEMICOLON, token.LBRACE:
			return false
		}
		p.advance()
		if depth == 0 {
			break
		}
	}
	return p.is(token.LPAREN)
}

func (p *Parser) parseArgumentList() []ast.Expression {
	p.expect(token.LPAREN)
	var args []ast.Expression
	for !p.is(token.RPAREN) && !p.cursor.IsEOF() {
		if p.is(token.DOTDOTDOT) {
			tok := p.cur()
			p.advance()
			args = append(args, &ast.SpreadElement{Token: tok, Value: p.parseAssignmentExpression()})
		} else {
			args = append(args, p.parseAssignmentExpression())
		}
		if p.is(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RPAREN)
	return args
}

func (p *Parser) parsePrimaryExpression() ast.Expression {
	tok := p.cur()
	switch tok.Kind {
	case token.NUMBER:
		p.advance()
		return &ast.NumberLiteral{Token: tok, Value: tok.Literal.Number}
	case token.BIGINT:
		p.advance()
		return &ast.BigIntLiteral{Token: tok, Digits: tok.Literal.BigInt}
	case token.STRING:
		p.advance()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal.String}
	case token.TRUE, token.FALSE:
		p.advance()
		return &ast.BooleanLiteral{Token: tok, Value: tok.Kind == token.TRUE}
	case token.NULL:
		p.advance()
		return &ast.NullLiteral{Token: tok}
	case token.UNDEFINED:
		p.advance()
		return &ast.UndefinedLiteral{Token: tok}
	case token.THIS:
		p.advance()
		return &ast.ThisExpression{Token: tok}
	case token.SUPER:
		p.advance()
		return &ast.SuperExpression{Token: tok}
	case token.IDENT, token.ASYNC:
		p.advance()
		return &ast.Identifier{Token: tok, Name: tok.Lexeme}
	case token.PRIVATE_IDENT:
		p.advance()
		return &ast.PrivateIdentifier{Token: tok, Name: tok.Lexeme}
	case token.NEW:
		return p.parseNewExpression()
	case token.LPAREN:
		p.advance()
		inner := p.parseExpression()
		p.expect(token.RPAREN)
		return &ast.GroupingExpression{Token: tok, Inner: inner}
	case token.LBRACK:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseObjectLiteral()
	case token.TEMPLATE_FULL, token.TEMPLATE_HEAD:
		return p.parseTemplateLiteral()
	case token.FUNCTION:
		return p.parseFunctionExpression()
	default:
		p.errorf("unexpected token %s in expression", tok.Kind)
		p.advance()
		return &ast.Identifier{Token: tok, Name: "__error"}
	}
}

func (p *Parser) parseNewExpression() ast.Expression {
	tok := p.expect(token.NEW)
	callee := p.parseCallOrMemberExpressionNoCall(p.parsePrimaryExpression())
	var typeArgs []ast.TypeExpression
	if p.is(token.LESS) && p.looksLikeCallTypeArgs() {
		typeArgs = p.parseTypeArgumentList()
	}
	var args []ast.Expression
	if p.is(token.LPAREN) {
		args = p.parseArgumentList()
	}
	return &ast.NewExpression{Token: tok, Callee: callee, TypeArgs: typeArgs, Args: args}
}

// parseCallOrMemberExpressionNoCall parses only the `.prop`/`[idx]`
// chain, stopping before a call's `(...)` so `new` can claim it as the
// constructor argument list.
func (p *Parser) parseCallOrMemberExpressionNoCall(expr ast.Expression) ast.Expression {
	for {
		switch {
		case p.is(token.DOT):
			tok := p.cur()
			p.advance()
			prop := p.expect(token.IDENT).Lexeme
			expr = &ast.MemberExpression{Token: tok, Object: expr, Property: prop}
		case p.is(token.LBRACK):
			tok := p.cur()
			p.advance()
			idx := p.parseExpression()
			p.expect(token.RBRACK)
			expr = &ast.IndexExpression{Token: tok, Object: expr, Index: idx}
		default:
			return expr
		}
	}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.expect(token.LBRACK)
	arr := &ast.ArrayLiteral{Token: tok}
	for !p.is(token.RBRACK) && !p.cursor.IsEOF() {
		if p.is(token.COMMA) {
			arr.Elements = append(arr.Elements, nil)
			p.advance()
			continue
		}
		if p.is(token.DOTDOTDOT) {
			stok := p.cur()
			p.advance()
			arr.Elements = append(arr.Elements, &ast.SpreadElement{Token: stok, Value: p.parseAssignmentExpression()})
		} else {
			arr.Elements = append(arr.Elements, p.parseAssignmentExpression())
		}
		if p.is(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RBRACK)
	return arr
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	tok := p.expect(token.LBRACE)
	obj := &ast.ObjectLiteral{Token: tok, IsFresh: true}
	for !p.is(token.RBRACE) && !p.cursor.IsEOF() {
		var prop ast.ObjectProperty
		if p.is(token.DOTDOTDOT) {
			p.advance()
			prop.Spread = true
			prop.Value = p.parseAssignmentExpression()
			obj.Properties = append(obj.Properties, prop)
			if p.is(token.COMMA) {
				p.advance()
			}
			continue
		}
		if p.is(token.LBRACK) {
			p.advance()
			prop.Computed = p.parseAssignmentExpression()
			p.expect(token.RBRACK)
		} else if p.is(token.STRING) {
			prop.Key = p.cur().Literal.String
			p.advance()
		} else if p.is(token.NUMBER) {
			prop.Key = p.cur().Lexeme
			p.advance()
		} else {
			prop.Key = p.expect(token.IDENT).Lexeme
		}
		if p.is(token.LPAREN) || p.is(token.LESS) {
			prop.Method = true
			prop.Value = p.parseMethodShorthand(prop.Key)
		} else if p.is(token.COLON) {
			p.advance()
			prop.Value = p.parseAssignmentExpression()
		} else {
			prop.Shorthand = true
			prop.Value = &ast.Identifier{Token: p.cur(), Name: prop.Key}
		}
		obj.Properties = append(obj.Properties, prop)
		if p.is(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RBRACE)
	return obj
}

func (p *Parser) parseMethodShorthand(name string) ast.Expression {
	tok := p.cur()
	var typeParams []*ast.TypeParam
	if p.is(token.LESS) {
		typeParams = p.parseTypeParamList()
	}
	params := p.parseParamList()
	var ret ast.TypeExpression
	if p.is(token.COLON) {
		p.advance()
		ret = p.parseTypeExpression()
	}
	body := p.parseBlockStatement()
	return &ast.ArrowFunction{Token: tok, TypeParams: typeParams, Params: params, ReturnType: ret, BlockBody: body, IsObjectMethod: true}
}

func (p *Parser) parseFunctionExpression() ast.Expression {
	tok := p.expect(token.FUNCTION)
	generator := false
	if p.is(token.STAR) {
		generator = true
		p.advance()
	}
	var name string
	if p.is(token.IDENT) {
		name = p.cur().Lexeme
		p.advance()
	}
	var typeParams []*ast.TypeParam
	if p.is(token.LESS) {
		typeParams = p.parseTypeParamList()
	}
	params := p.parseParamList()
	var ret ast.TypeExpression
	if p.is(token.COLON) {
		p.advance()
		ret = p.parseTypeExpression()
	}
	body := p.parseBlockStatement()
	_ = name
	_ = generator
	return &ast.ArrowFunction{Token: tok, TypeParams: typeParams, Params: params, ReturnType: ret, BlockBody: body}
}

func (p *Parser) parseParamList() []*ast.Param {
	p.expect(token.LPAREN)
	var params []*ast.Param
	for !p.is(token.RPAREN) && !p.cursor.IsEOF() {
		params = append(params, p.parseParam())
		if p.is(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RPAREN)
	return params
}

func (p *Parser) parseParam() *ast.Param {
	tok := p.cur()
	param := &ast.Param{Token: tok}
	for p.isAny(token.PUBLIC, token.PRIVATE, token.PROTECTED) || p.isIdent("readonly") {
		param.AccessMod = p.cur().Lexeme
		if p.isAny(token.PUBLIC, token.PRIVATE, token.PROTECTED) {
			param.AccessMod = p.cur().Kind.String()
		}
		p.advance()
	}
	if p.is(token.DOTDOTDOT) {
		param.Rest = true
		p.advance()
	}
	if p.is(token.LBRACK) || p.is(token.LBRACE) {
		param.Pattern = p.parsePattern()
	} else {
		param.Name = p.expect(token.IDENT).Lexeme
	}
	if p.is(token.QUESTION) {
		param.Optional = true
		p.advance()
	}
	if p.is(token.COLON) {
		p.advance()
		param.Type = p.parseTypeExpression()
	}
	if p.is(token.ASSIGN) {
		p.advance()
		param.Default = p.parseAssignmentExpression()
	}
	return param
}

func (p *Parser) parseTemplateLiteral() *ast.TemplateLiteral {
	tok := p.cur()
	tl := &ast.TemplateLiteral{Token: tok, HeadCooked: tok.Cooked, HeadRaw: tok.Raw}
	if tok.Kind == token.TEMPLATE_FULL {
		p.advance()
		return tl
	}
	p.advance()
	for {
		expr := p.parseExpression()
		if !p.is(token.RBRACE) {
			p.errorf("expected '}' to close template substitution")
		}
		p.cursor = p.cursor.AdvanceTemplatePart()
		part := p.cur()
		tl.Spans = append(tl.Spans, ast.TemplateSpan{Expr: expr, Cooked: part.Cooked, Raw: part.Raw})
		if part.Kind == token.TEMPLATE_TAIL {
			p.advance()
			break
		}
		p.advance()
	}
	return tl
}

// tryParseArrowFunction speculatively attempts to parse an arrow
// function (`(params) => body`, `x => body`, `async (params) => body`,
// or a generic arrow `<T>(params) => body`), resetting the cursor if
// the attempt does not end in `=>`.
func (p *Parser) tryParseArrowFunction() (ast.Expression, bool) {
	if p.is(token.IDENT) && p.peek(1).Kind == token.FAT_ARROW {
		tok := p.cur()
		name := tok.Lexeme
		p.advance()
		p.advance()
		return p.finishArrowBody(tok, nil, []*ast.Param{{Token: tok, Name: name}}, nil, false)
	}

	async := false
	mark := p.cursor.Mark()
	startTok := p.cur()
	if p.is(token.ASYNC) && (p.peek(1).Kind == token.LPAREN || (p.peek(1).Kind == token.IDENT && p.peek(2).Kind == token.FAT_ARROW)) {
		async = true
		p.advance()
		if p.is(token.IDENT) && p.peek(1).Kind == token.FAT_ARROW {
			tok := p.cur()
			name := tok.Lexeme
			p.advance()
			p.advance()
			return p.finishArrowBody(startTok, nil, []*ast.Param{{Token: tok, Name: name}}, nil, true)
		}
	}

	if !p.is(token.LPAREN) && !p.is(token.LESS) {
		if async {
			p.cursor = p.cursor.ResetTo(mark)
		}
		return nil, false
	}

	if !p.looksLikeArrowHead() {
		p.cursor = p.cursor.ResetTo(mark)
		return nil, false
	}

	var typeParams []*ast.TypeParam
	if p.is(token.LESS) {
		typeParams = p.parseTypeParamList()
	}
	params := p.parseParamList()
	var ret ast.TypeExpression
	if p.is(token.COLON) {
		p.advance()
		ret = p.parseTypeExpression()
	}
	if !p.is(token.FAT_ARROW) {
		p.cursor = p.cursor.ResetTo(mark)
		return nil, false
	}
	p.advance()
	return p.finishArrowBody(startTok, typeParams, params, ret, async)
}

// looksLikeArrowHead scans forward from a `(` or `<` to see whether the
// balanced region is followed by an optional `: ReturnType` and then
// `=>`, without fully parsing it.
func (p *Parser) looksLikeArrowHead() bool {
	mark := p.cursor.Mark()
	defer func() { p.cursor = p.cursor.ResetTo(mark) }()

	depth := 0
	i := 0
	seenParen := false
	for {
		t := p.peek(i)
		switch t.Kind {
		case token.LESS, token.LPAREN, token.LBRACK, token.LBRACE:
			if t.Kind == token.LPAREN {
				seenParen = true
			}
			depth++
		case token.GREATER, token.RPAREN, token.RBRACK, token.RBRACE:
			depth--
			if depth == 0 && seenParen {
				goto afterHead
			}
			if depth < 0 {
				return false
			}
		case token.EOF, token.SEMICOLON:
			return false
		}
		i++
		if i > 1000 {
			return false
		}
	}
afterHead:
	i++
	if p.peek(i).Kind == token.COLON {
		i++
		tdepth := 0
		for {
			t := p.peek(i)
			switch t.Kind {
			case token.LESS, token.LPAREN, token.LBRACK, token.LBRACE:
				tdepth++
			case token.RPAREN, token.RBRACK, token.RBRACE:
				if tdepth == 0 {
					return false
				}
				tdepth--
			case token.GREATER:
				if tdepth > 0 {
					tdepth--
				}
			case token.FAT_ARROW:
				if tdepth == 0 {
					return true
				}
			case token.EOF, token.SEMICOLON:
				return false
			}
			i++
			if i > 1000 {
				return false
			}
		}
	}
	return p.peek(i).Kind == token.FAT_ARROW
}

func (p *Parser) finishArrowBody(tok token.Token, typeParams []*ast.TypeParam, params []*ast.Param, ret ast.TypeExpression, async bool) (ast.Expression, bool) {
	arrow := &ast.ArrowFunction{Token: tok, TypeParams: typeParams, Params: params, ReturnType: ret, Async: async}
	if p.is(token.LBRACE) {
		arrow.BlockBody = p.parseBlockStatement()
	} else {
		arrow.Body = p.parseAssignmentExpression()
	}
	return arrow, true
}
