package parser

import (
	"github.com/tscore-lang/tscore/internal/ast"
	"github.com/tscore-lang/tscore/internal/token"
)

func (p *Parser) parseFunctionDecl(decorators []*ast.Decorator) ast.Statement {
	tok := p.cur()
	async := false
	if p.is(token.ASYNC) {
		async = true
		p.advance()
	}
	p.expect(token.FUNCTION)
	generator := false
	if p.is(token.STAR) {
		generator = true
		p.advance()
	}
	name := p.expect(token.IDENT).Lexeme
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
	var ret ast.TypeExpression
	if p.is(token.COLON) {
		p.advance()
		ret = p.parseTypeExpression()
	}
	var body *ast.BlockStatement
	if p.is(token.LBRACE) {
		body = p.parseBlockStatement()
	} else {
		p.skipSemicolon() // overload signature / ambient declaration
	}
	return &ast.FunctionDecl{
		Token: tok, Name: name, TypeParams: typeParams, Params: params, ThisParam: thisParam,
		ReturnType: ret, Body: body, Async: async, Generator: generator, Decorators: decorators,
	}
}

func (p *Parser) parseClassDecl(decorators []*ast.Decorator) ast.Statement {
	tok := p.cur()
	abstract := false
	if p.is(token.ABSTRACT) {
		abstract = true
		p.advance()
	}
	p.expect(token.CLASS)
	name := p.expect(token.IDENT).Lexeme
	decl := &ast.ClassDecl{Token: tok, Name: name, Abstract: abstract, Decorators: decorators}
	if p.is(token.LESS) {
		decl.TypeParams = p.parseTypeParamList()
	}
	if p.is(token.EXTENDS) {
		p.advance()
		decl.SuperClass = p.parseNamedTypeOrPredicate()
	}
	if p.is(token.IMPLEMENTS) {
		p.advance()
		for {
			decl.Interfaces = append(decl.Interfaces, p.parseNamedTypeOrPredicate())
			if p.is(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	p.expect(token.LBRACE)
	for !p.is(token.RBRACE) && !p.cursor.IsEOF() {
		if p.is(token.SEMICOLON) {
			p.advance()
			continue
		}
		decl.Members = append(decl.Members, p.parseClassMember())
	}
	p.expect(token.RBRACE)
	return decl
}

func (p *Parser) parseClassMember() ast.ClassMember {
	var memberDecorators []*ast.Decorator
	if p.is(token.AT) {
		memberDecorators = p.parseDecorators()
	}

	access := ast.AccessPublic
	static, readonly, abstract, override, async, generator := false, false, false, false, false, false
	for {
		switch {
		case p.is(token.PUBLIC):
			access = ast.AccessPublic
			p.advance()
		case p.is(token.PRIVATE):
			access = ast.AccessPrivate
			p.advance()
		case p.is(token.PROTECTED):
			access = ast.AccessProtected
			p.advance()
		case p.is(token.STATIC):
			static = true
			p.advance()
		case p.isIdent("readonly"):
			readonly = true
			p.advance()
		case p.is(token.ABSTRACT):
			abstract = true
			p.advance()
		case p.isIdent("override"):
			override = true
			p.advance()
		case p.is(token.ASYNC):
			async = true
			p.advance()
		default:
			goto modifiersDone
		}
	}
modifiersDone:

	if p.is(token.STAR) {
		generator = true
		p.advance()
	}

	kind := ast.MethodOrdinary
	if p.is(token.IDENT) && p.cur().Lexeme == "get" && !p.peekStartsMemberBody(1) {
		kind = ast.MethodGetter
		p.advance()
	} else if p.is(token.IDENT) && p.cur().Lexeme == "set" && !p.peekStartsMemberBody(1) {
		kind = ast.MethodSetter
		p.advance()
	}

	tok := p.cur()
	var name string
	isPrivateField := false
	if p.is(token.PRIVATE_IDENT) {
		name = p.cur().Lexeme
		isPrivateField = true
		p.advance()
	} else if p.is(token.LBRACK) {
		p.advance()
		p.parseAssignmentExpression()
		p.expect(token.RBRACK)
		name = "__computed"
	} else if p.is(token.NEW) {
		name = "constructor"
		p.advance()
	} else {
		name = p.expectMemberName()
	}
	if name == "constructor" {
		kind = ast.MethodConstructor
	}

	if p.is(token.LPAREN) || p.is(token.LESS) {
		var typeParams []*ast.TypeParam
		if p.is(token.LESS) {
			typeParams = p.parseTypeParamList()
		}
		params := p.parseConstructorAwareParamList(kind == ast.MethodConstructor)
		var ret ast.TypeExpression
		if p.is(token.COLON) {
			p.advance()
			ret = p.parseTypeExpression()
		}
		var body *ast.BlockStatement
		if p.is(token.LBRACE) {
			body = p.parseBlockStatement()
		} else {
			p.skipSemicolon()
		}
		return &ast.MethodDecl{
			Token: tok, Name: name, Kind: kind, TypeParams: typeParams, Params: params, ReturnType: ret,
			Body: body, Static: static, Abstract: abstract, Override: override, Async: async,
			Generator: generator, Access: access, Decorators: memberDecorators,
		}
	}

	field := &ast.FieldDecl{Token: tok, Name: name, Private: isPrivateField, Static: static, Readonly: readonly,
		Abstract: abstract, Override: override, Access: access, Decorators: memberDecorators}
	if p.is(token.QUESTION) {
		field.Optional = true
		p.advance()
	}
	if p.is(token.BANG) {
		p.advance() // definite assignment assertion, erased post-parse
	}
	if p.is(token.COLON) {
		p.advance()
		field.Type = p.parseTypeExpression()
	}
	if p.is(token.ASSIGN) {
		p.advance()
		field.Init = p.parseAssignmentExpression()
	}
	p.skipSemicolon()
	return field
}

func (p *Parser) peekStartsMemberBody(n int) bool {
	k := p.peek(n).Kind
	return k == token.LPAREN || k == token.COLON || k == token.ASSIGN || k == token.SEMICOLON
}

func (p *Parser) expectMemberName() string {
	t := p.cur()
	if t.Kind == token.IDENT || t.Kind.IsKeyword() {
		p.advance()
		return t.Lexeme
	}
	p.errorf("expected member name, found %s", t.Kind)
	p.advance()
	return "__error"
}

// parseConstructorAwareParamList recognizes parameter-property
// modifiers (`public`/`private`/`protected`/`readonly` before a
// constructor parameter) which the checker desugars into an implicit
// field declaration plus a prologue assignment.
func (p *Parser) parseConstructorAwareParamList(isConstructor bool) []*ast.Param {
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

func (p *Parser) parseInterfaceDecl() ast.Statement {
	tok := p.expect(token.INTERFACE)
	name := p.expect(token.IDENT).Lexeme
	decl := &ast.InterfaceDecl{Token: tok, Name: name}
	if p.is(token.LESS) {
		decl.TypeParams = p.parseTypeParamList()
	}
	if p.is(token.EXTENDS) {
		p.advance()
		for {
			decl.Extends = append(decl.Extends, p.parseNamedTypeOrPredicate())
			if p.is(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	body := p.parseRecordType()
	decl.Body = body.(*ast.RecordType)
	return decl
}

func (p *Parser) parseTypeAliasDecl() ast.Statement {
	tok := p.expectIdent("type")
	name := p.expect(token.IDENT).Lexeme
	decl := &ast.TypeAliasDecl{Token: tok, Name: name}
	if p.is(token.LESS) {
		decl.TypeParams = p.parseTypeParamList()
	}
	p.expect(token.ASSIGN)
	decl.Type = p.parseTypeExpression()
	p.skipSemicolon()
	return decl
}

func (p *Parser) parseEnumDecl(isConst bool) ast.Statement {
	tok := p.cur()
	if p.is(token.CONST) {
		isConst = true
		p.advance()
	}
	p.expect(token.ENUM)
	name := p.expect(token.IDENT).Lexeme
	decl := &ast.EnumDecl{Token: tok, Name: name, Const: isConst}
	p.expect(token.LBRACE)
	for !p.is(token.RBRACE) && !p.cursor.IsEOF() {
		member := ast.EnumMember{Name: p.expect(token.IDENT).Lexeme}
		if p.is(token.ASSIGN) {
			p.advance()
			member.Init = p.parseAssignmentExpression()
		}
		decl.Members = append(decl.Members, member)
		if p.is(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RBRACE)
	return decl
}

// parseNamespaceDecl desugars a dotted namespace name (`namespace
// A.B.C { ... }`) into nested single-segment NamespaceDecls.
func (p *Parser) parseNamespaceDecl() ast.Statement {
	tok := p.expect(token.NAMESPACE)
	names := []string{p.expect(token.IDENT).Lexeme}
	for p.is(token.DOT) {
		p.advance()
		names = append(names, p.expect(token.IDENT).Lexeme)
	}
	body := p.parseBlockStatement()

	var build func(i int) *ast.NamespaceDecl
	build = func(i int) *ast.NamespaceDecl {
		if i == len(names)-1 {
			return &ast.NamespaceDecl{Token: tok, Name: names[i], Statements: body.Statements}
		}
		return &ast.NamespaceDecl{Token: tok, Name: names[i], Statements: []ast.Statement{build(i + 1)}}
	}
	return build(0)
}

func (p *Parser) parseImportSpecifierList() []ast.ImportSpecifier {
	p.expect(token.LBRACE)
	var specs []ast.ImportSpecifier
	for !p.is(token.RBRACE) && !p.cursor.IsEOF() {
		var spec ast.ImportSpecifier
		if p.isIdent("type") && p.peek(1).Kind == token.IDENT && p.peek(1).Lexeme != "as" {
			spec.Type = true
			p.advance()
		}
		spec.Name = p.expect(token.IDENT).Lexeme
		spec.Alias = spec.Name
		if p.isIdent("as") {
			p.advance()
			spec.Alias = p.expect(token.IDENT).Lexeme
		}
		specs = append(specs, spec)
		if p.is(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RBRACE)
	return specs
}

func (p *Parser) parseImportDecl() ast.Statement {
	tok := p.expect(token.IMPORT)
	decl := &ast.ImportDecl{Token: tok}

	if p.isIdent("type") && !(p.peek(1).Kind == token.COMMA || p.peek(1).Kind == token.STRING) {
		decl.TypeOnly = true
		p.advance()
	}

	// Import-alias form: `import X = A.B.C;`
	if p.is(token.IDENT) && p.peek(1).Kind == token.ASSIGN {
		decl.AliasName = p.cur().Lexeme
		p.advance()
		p.advance()
		decl.AliasPath = append(decl.AliasPath, p.expect(token.IDENT).Lexeme)
		for p.is(token.DOT) {
			p.advance()
			decl.AliasPath = append(decl.AliasPath, p.expect(token.IDENT).Lexeme)
		}
		p.skipSemicolon()
		return decl
	}

	if p.is(token.IDENT) {
		decl.Default = p.cur().Lexeme
		p.advance()
		if p.is(token.COMMA) {
			p.advance()
		}
	}
	if p.is(token.STAR) {
		p.advance()
		p.expectIdent("as")
		decl.Namespace = p.expect(token.IDENT).Lexeme
	} else if p.is(token.LBRACE) {
		decl.Specifiers = p.parseImportSpecifierList()
	}
	if decl.Default != "" || decl.Namespace != "" || decl.Specifiers != nil {
		p.expectIdent("from")
	}
	decl.ModulePath = p.expect(token.STRING).Literal.String
	p.skipSemicolon()
	return decl
}

func (p *Parser) parseExportDecl() ast.Statement {
	tok := p.expect(token.EXPORT)
	exp := &ast.ExportDecl{Token: tok}

	if p.is(token.DEFAULT) {
		p.advance()
		if p.is(token.FUNCTION) || p.is(token.CLASS) {
			exp.Decl = p.parseStatement()
		} else {
			exp.Default = p.parseAssignmentExpression()
			p.skipSemicolon()
		}
		return exp
	}

	if p.isIdent("type") && p.peek(1).Kind == token.LBRACE {
		exp.TypeOnly = true
		p.advance()
	}

	if p.is(token.LBRACE) {
		exp.Specifiers = p.parseImportSpecifierList()
		if p.isIdent("from") {
			p.advance()
			exp.FromModule = p.expect(token.STRING).Literal.String
		}
		p.skipSemicolon()
		return exp
	}

	if p.is(token.AT) {
		decorators := p.parseDecorators()
		exp.Decl = p.parseDecoratedStatement(decorators)
		return exp
	}

	exp.Decl = p.parseStatement()
	return exp
}

// parseDeclareStatement parses `declare <decl>`, `declare module
// "name" { ... }`, and `declare global { ... }`.
func (p *Parser) parseDeclareStatement() ast.Statement {
	tok := p.expect(token.DECLARE)
	if p.isIdent("global") {
		p.advance()
		body := p.parseBlockStatement()
		return &ast.AmbientDecl{Token: tok, Kind: ast.AmbientGlobal, Statements: body.Statements}
	}
	if p.is(token.NAMESPACE) || p.isIdent("module") {
		isModule := p.isIdent("module")
		p.advance()
		if isModule && p.is(token.STRING) {
			name := p.cur().Literal.String
			p.advance()
			body := p.parseBlockStatement()
			return &ast.AmbientDecl{Token: tok, Kind: ast.AmbientModule, ModuleName: name, Statements: body.Statements}
		}
		names := []string{p.expect(token.IDENT).Lexeme}
		for p.is(token.DOT) {
			p.advance()
			names = append(names, p.expect(token.IDENT).Lexeme)
		}
		body := p.parseBlockStatement()
		var build func(i int) *ast.NamespaceDecl
		build = func(i int) *ast.NamespaceDecl {
			if i == len(names)-1 {
				return &ast.NamespaceDecl{Token: tok, Name: names[i], Statements: body.Statements}
			}
			return &ast.NamespaceDecl{Token: tok, Name: names[i], Statements: []ast.Statement{build(i + 1)}}
		}
		return build(0)
	}
	// declare var/let/const/function/class/enum: parse the inner
	// declaration; ambient bodies are simply absent (Body == nil).
	return p.parseStatement()
}
