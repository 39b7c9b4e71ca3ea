package parser

import (
	"github.com/tscore-lang/tscore/internal/ast"
	"github.com/tscore-lang/tscore/internal/diag"
	"github.com/tscore-lang/tscore/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Kind {
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.VAR, token.LET:
		return p.parseVarStatementWithSemi()
	case token.CONST:
		if p.peek(1).Kind == token.ENUM {
			return p.parseEnumDecl(true)
		}
		return p.parseVarStatementWithSemi()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.DO:
		return p.parseDoWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.SWITCH:
		return p.parseSwitchStatement()
	case token.TRY:
		return p.parseTryStatement()
	case token.THROW:
		return p.parseThrowStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.BREAK:
		return p.parseBreakStatement()
	case token.CONTINUE:
		return p.parseContinueStatement()
	case token.FUNCTION:
		return p.parseFunctionDecl(nil)
	case token.CLASS:
		return p.parseClassDecl(nil)
	case token.INTERFACE:
		return p.parseInterfaceDecl()
	case token.ENUM:
		return p.parseEnumDecl(false)
	case token.NAMESPACE:
		return p.parseNamespaceDecl()
	case token.IMPORT:
		return p.parseImportDecl()
	case token.EXPORT:
		return p.parseExportDecl()
	case token.DECLARE:
		return p.parseDeclareStatement()
	case token.AT:
		decorators := p.parseDecorators()
		return p.parseDecoratedStatement(decorators)
	case token.SEMICOLON:
		p.advance()
		return nil
	case token.IDENT:
		if p.is(token.ASYNC) && p.peek(1).Kind == token.FUNCTION {
			return p.parseFunctionDecl(nil)
		}
		if p.isIdent("using") {
			return p.parseVarStatementWithSemi()
		}
		if p.isIdent("type") && p.peek(1).Kind == token.IDENT {
			return p.parseTypeAliasDecl()
		}
		if label, ok := p.tryParseLabel(); ok {
			return label
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseDecoratedStatement handles the one production decorators attach
// to directly: a class declaration. `export`/`export default` ahead of
// a decorated class is unwrapped by parseExportDecl before it ever
// reaches here.
func (p *Parser) parseDecoratedStatement(decorators []*ast.Decorator) ast.Statement {
	return p.parseClassDecl(decorators)
}

func (p *Parser) parseDecorators() []*ast.Decorator {
	var decorators []*ast.Decorator
	for p.is(token.AT) {
		tok := p.cur()
		p.advance()
		name := p.parseLeftHandSideNameChain()
		var args []ast.Expression
		if p.is(token.LPAREN) {
			args = p.parseArgumentList()
		}
		decorators = append(decorators, &ast.Decorator{Token: tok, Name: name, Args: args})
	}
	return decorators
}

// parseLeftHandSideNameChain parses a dotted identifier chain used as a
// decorator expression head (`@foo`, `@ns.foo`), without consuming a
// call's argument list.
func (p *Parser) parseLeftHandSideNameChain() ast.Expression {
	tok := p.cur()
	name := p.expect(token.IDENT).Lexeme
	var expr ast.Expression = &ast.Identifier{Token: tok, Name: name}
	for p.is(token.DOT) {
		p.advance()
		propTok := p.cur()
		prop := p.expect(token.IDENT).Lexeme
		expr = &ast.MemberExpression{Token: propTok, Object: expr, Property: prop}
	}
	return expr
}

func (p *Parser) tryParseLabel() (ast.Statement, bool) {
	if p.cur().Kind != token.IDENT || p.peek(1).Kind != token.COLON {
		return nil, false
	}
	tok := p.cur()
	label := tok.Lexeme
	p.advance()
	p.advance()
	body := p.parseStatement()
	return &ast.LabeledStatement{Token: tok, Label: label, Body: body}, true
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	tok := p.expect(token.LBRACE)
	block := &ast.BlockStatement{Token: tok}
	for !p.is(token.RBRACE) && !p.cursor.IsEOF() {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}
	p.expect(token.RBRACE)
	return block
}

func (p *Parser) parseVarStatementWithSemi() ast.Statement {
	stmt := p.parseVarStatement()
	p.skipSemicolon()
	return stmt
}

func (p *Parser) varKindFromCur() ast.VarKind {
	switch {
	case p.is(token.VAR):
		return ast.VarVar
	case p.is(token.LET):
		return ast.VarLet
	case p.is(token.CONST):
		return ast.VarConst
	case p.isIdent("using"):
		return ast.VarUsing
	default:
		return ast.VarLet
	}
}

// parseVarStatement parses `var|let|const|using|await using name: T =
// init, ...;`. Destructuring declarators (Pattern != nil) are left
// un-desugared here; desugarVarStatement lowers them into a
// SequenceStatement of plain bindings.
func (p *Parser) parseVarStatement() ast.Statement {
	tok := p.cur()
	kind := p.varKindFromCur()
	if p.is(token.AWAIT) && p.peek(1).Kind == token.IDENT && p.peek(1).Lexeme == "using" {
		kind = ast.VarAwaitUsing
		p.advance()
	}
	p.advance()

	stmt := &ast.VarStatement{Token: tok, Kind: kind}
	for {
		decl := p.parseVarDeclarator(kind)
		stmt.Declarators = append(stmt.Declarators, decl)
		if p.is(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return p.desugarVarStatement(stmt)
}

// parseVarDeclarator parses one binding of a var/let/const list,
// enforcing the two structural invariants a declarator must satisfy
// regardless of destructuring: a const binding must have an
// initializer, and a definite-assignment marker (`!`) only makes
// sense alongside an explicit type annotation.
func (p *Parser) parseVarDeclarator(kind ast.VarKind) ast.VarDeclarator {
	var decl ast.VarDeclarator
	start := p.cur()
	if p.is(token.LBRACK) || p.is(token.LBRACE) {
		decl.Pattern = p.parsePattern()
	} else {
		decl.Name = p.expect(token.IDENT).Lexeme
	}
	if p.is(token.BANG) {
		decl.DefiniteAssignment = true
		p.advance()
	}
	if p.is(token.COLON) {
		p.advance()
		decl.Type = p.parseTypeExpression()
	}
	if p.is(token.ASSIGN) {
		p.advance()
		decl.Init = p.parseAssignmentExpression()
	}
	if kind == ast.VarConst && decl.Init == nil {
		p.errorKind(diag.ModifierError, start.Pos, "const declaration %q must be initialized", decl.Name)
	}
	if decl.DefiniteAssignment && decl.Type == nil {
		p.errorKind(diag.ModifierError, start.Pos, "definite assignment assertion %q! requires a type annotation", decl.Name)
	}
	return decl
}

func (p *Parser) parseIfStatement() ast.Statement {
	tok := p.expect(token.IF)
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	then := p.parseStatement()
	var alt ast.Statement
	if p.is(token.ELSE) {
		p.advance()
		alt = p.parseStatement()
	}
	return &ast.IfStatement{Token: tok, Condition: cond, Then: then, Else: alt}
}

func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	body := p.parseStatement()
	return &ast.WhileStatement{Token: tok, Condition: cond, Body: body}
}

func (p *Parser) parseDoWhileStatement() ast.Statement {
	tok := p.expect(token.DO)
	body := p.parseStatement()
	p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	p.skipSemicolon()
	return &ast.DoWhileStatement{Token: tok, Body: body, Condition: cond}
}

// parseForStatement parses every `for` form and immediately desugars
// the C-style form into a SequenceStatement wrapping a WhileStatement;
// for-of/for-in are returned as-is for the checker, which lowers their
// iteration protocol itself.
func (p *Parser) parseForStatement() ast.Statement {
	tok := p.expect(token.FOR)
	awaitFor := false
	if p.is(token.AWAIT) {
		awaitFor = true
		p.advance()
	}
	p.expect(token.LPAREN)

	mark := p.cursor.Mark()
	kind := ast.VarLet
	hasDeclKeyword := false
	if p.isAny(token.VAR, token.LET, token.CONST) {
		hasDeclKeyword = true
		kind = p.varKindFromCur()
		p.advance()
	}

	if hasDeclKeyword || p.is(token.IDENT) {
		var name string
		var pattern ast.Pattern
		if p.is(token.LBRACK) || p.is(token.LBRACE) {
			pattern = p.parsePattern()
		} else if p.is(token.IDENT) {
			name = p.cur().Lexeme
			p.advance()
		}
		var typ ast.TypeExpression
		if p.is(token.COLON) {
			p.advance()
			typ = p.parseTypeExpression()
		}
		if p.isIdent("of") {
			p.advance()
			iterable := p.parseAssignmentExpression()
			p.expect(token.RPAREN)
			body := p.parseStatement()
			return &ast.ForOfStatement{Token: tok, Kind: kind, Name: name, Pattern: pattern, Type: typ, Iterable: iterable, Body: body, Await: awaitFor}
		}
		if p.is(token.IN) {
			p.advance()
			obj := p.parseExpression()
			p.expect(token.RPAREN)
			body := p.parseStatement()
			return &ast.ForInStatement{Token: tok, Kind: kind, Name: name, Object: obj, Body: body}
		}
		// Not a for-of/for-in: backtrack and parse as a classic C-style
		// for-init clause.
		p.cursor = p.cursor.ResetTo(mark)
	}

	var init ast.Statement
	if !p.is(token.SEMICOLON) {
		if p.isAny(token.VAR, token.LET, token.CONST) {
			init = p.parseVarStatement()
		} else {
			init = &ast.ExpressionStatement{Token: p.cur(), Expr: p.parseExpression()}
		}
	}
	p.expect(token.SEMICOLON)
	var cond ast.Expression
	if !p.is(token.SEMICOLON) {
		cond = p.parseExpression()
	}
	p.expect(token.SEMICOLON)
	var update ast.Expression
	if !p.is(token.RPAREN) {
		update = p.parseExpression()
	}
	p.expect(token.RPAREN)
	body := p.parseStatement()

	return p.desugarForStatement(&ast.ForStatement{Token: tok, Init: init, Condition: cond, Update: update, Body: body})
}

func (p *Parser) isAny(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.cur().Kind == k {
			return true
		}
	}
	return false
}

func (p *Parser) parseSwitchStatement() ast.Statement {
	tok := p.expect(token.SWITCH)
	p.expect(token.LPAREN)
	disc := p.parseExpression()
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)
	stmt := &ast.SwitchStatement{Token: tok, Discriminant: disc}
	for !p.is(token.RBRACE) && !p.cursor.IsEOF() {
		var c ast.SwitchCase
		if p.is(token.CASE) {
			p.advance()
			c.Test = p.parseExpression()
		} else {
			p.expect(token.DEFAULT)
		}
		p.expect(token.COLON)
		for !p.is(token.CASE) && !p.is(token.DEFAULT) && !p.is(token.RBRACE) && !p.cursor.IsEOF() {
			c.Statements = append(c.Statements, p.parseStatement())
		}
		stmt.Cases = append(stmt.Cases, c)
	}
	p.expect(token.RBRACE)
	return stmt
}

func (p *Parser) parseTryStatement() ast.Statement {
	tok := p.expect(token.TRY)
	body := p.parseBlockStatement()
	stmt := &ast.TryStatement{Token: tok, Body: body}
	if p.is(token.CATCH) {
		p.advance()
		clause := &ast.CatchClause{}
		if p.is(token.LPAREN) {
			p.advance()
			clause.ParamName = p.expect(token.IDENT).Lexeme
			if p.is(token.COLON) {
				p.advance()
				clause.ParamType = p.parseTypeExpression()
			}
			p.expect(token.RPAREN)
		}
		clause.Body = p.parseBlockStatement()
		stmt.Catch = clause
	}
	if p.is(token.FINALLY) {
		p.advance()
		stmt.Finally = p.parseBlockStatement()
	}
	return stmt
}

func (p *Parser) parseThrowStatement() ast.Statement {
	tok := p.expect(token.THROW)
	expr := p.parseExpression()
	p.skipSemicolon()
	return &ast.ThrowStatement{Token: tok, Expr: expr}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	tok := p.expect(token.RETURN)
	var expr ast.Expression
	if !p.is(token.SEMICOLON) && !p.is(token.RBRACE) && !p.cursor.IsEOF() && tok.Pos.Line == p.cur().Pos.Line {
		expr = p.parseExpression()
	}
	p.skipSemicolon()
	return &ast.ReturnStatement{Token: tok, Expr: expr}
}

func (p *Parser) parseBreakStatement() ast.Statement {
	tok := p.expect(token.BREAK)
	var label string
	if p.is(token.IDENT) && tok.Pos.Line == p.cur().Pos.Line {
		label = p.cur().Lexeme
		p.advance()
	}
	p.skipSemicolon()
	return &ast.BreakStatement{Token: tok, Label: label}
}

func (p *Parser) parseContinueStatement() ast.Statement {
	tok := p.expect(token.CONTINUE)
	var label string
	if p.is(token.IDENT) && tok.Pos.Line == p.cur().Pos.Line {
		label = p.cur().Lexeme
		p.advance()
	}
	p.skipSemicolon()
	return &ast.ContinueStatement{Token: tok, Label: label}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	tok := p.cur()
	expr := p.parseExpression()
	p.skipSemicolon()
	return &ast.ExpressionStatement{Token: tok, Expr: expr}
}
