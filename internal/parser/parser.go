// Package parser implements a recursive-descent, precedence-climbing
// parser over the token package's token stream. Ambiguous productions
// (arrow function vs. parenthesized expression, `<` as a generic
// type-argument list vs. less-than, angle-bracket type assertions,
// call-signature-vs-object-type) are resolved by speculative parsing:
// a TokenCursor.Mark is taken, the production is attempted, and the
// cursor is reset on failure rather than backtracking by hand.
package parser

import (
	"github.com/tscore-lang/tscore/internal/ast"
	"github.com/tscore-lang/tscore/internal/diag"
	"github.com/tscore-lang/tscore/internal/lexer"
	"github.com/tscore-lang/tscore/internal/token"
)

// Precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	COMMA
	ASSIGN
	CONDITIONAL // ?:
	NULLISH     // ??
	LOGOR       // ||
	LOGAND      // &&
	BITOR
	BITXOR
	BITAND
	EQUALITY  // == != === !==
	RELATIONAL // < > <= >= instanceof in
	SHIFT
	ADDITIVE
	MULTIPLICATIVE
	EXPONENT
	UNARY
	POSTFIX // ++ -- !
	CALL    // () [] .
)

var binPrecedence = map[token.Kind]int{
	token.PIPE_PIPE:               LOGOR,
	token.AMP_AMP:                 LOGAND,
	token.PIPE:                    BITOR,
	token.CARET:                   BITXOR,
	token.AMP:                     BITAND,
	token.EQ_EQ:                   EQUALITY,
	token.NOT_EQ:                  EQUALITY,
	token.EQ_EQ_EQ:                EQUALITY,
	token.NOT_EQ_EQ:                EQUALITY,
	token.LESS:                    RELATIONAL,
	token.GREATER:                 RELATIONAL,
	token.LESS_EQ:                 RELATIONAL,
	token.GREATER_EQ:              RELATIONAL,
	token.INSTANCEOF:              RELATIONAL,
	token.IN:                      RELATIONAL,
	token.LESS_LESS:               SHIFT,
	token.GREATER_GREATER:         SHIFT,
	token.GREATER_GREATER_GREATER: SHIFT,
	token.PLUS:                    ADDITIVE,
	token.MINUS:                   ADDITIVE,
	token.STAR:                    MULTIPLICATIVE,
	token.SLASH:                   MULTIPLICATIVE,
	token.PERCENT:                 MULTIPLICATIVE,
	token.STAR_STAR:               EXPONENT,
}

// Parser holds the cursor and accumulated diagnostics. It is a thin
// mutable wrapper: parse methods reassign p.cursor rather than
// threading a cursor value through every call, which keeps signatures
// close to the grammar while still letting helper routines take
// explicit cursor snapshots for lookahead.
type Parser struct {
	cursor *TokenCursor
	bag    *diag.Bag
	file   string
	source string
}

// New creates a Parser over source, tagging diagnostics with file.
func New(source, file string) *Parser {
	l := lexer.New(source, file)
	return &Parser{
		cursor: NewTokenCursor(l),
		bag:    &diag.Bag{},
		file:   file,
		source: source,
	}
}

// ParseProgram parses a full compilation unit. Parse errors are
// accumulated in the returned Bag rather than returned as a Go error,
// so the parser can recover and keep producing an AST for the
// remaining input.
func ParseProgram(source, file string) (*ast.Program, *diag.Bag) {
	p := New(source, file)
	prog := &ast.Program{}
	for !p.cursor.IsEOF() {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	prog.Directives = p.cursor.Lexer().Directives()
	return prog, p.bag
}

func (p *Parser) cur() token.Token  { return p.cursor.Current() }
func (p *Parser) peek(n int) token.Token { return p.cursor.Peek(n) }

func (p *Parser) advance() { p.cursor = p.cursor.Advance() }

func (p *Parser) is(k token.Kind) bool { return p.cursor.Is(k) }

func (p *Parser) isIdent(name string) bool { return p.cursor.IsIdent(name) }

// expect advances past the expected kind, recording a ParseError
// diagnostic and leaving the cursor unmoved if it does not match.
func (p *Parser) expect(k token.Kind) token.Token {
	t := p.cur()
	if t.Kind != k {
		p.errorf("expected %s, found %s", k, t.Kind)
		return t
	}
	p.advance()
	return t
}

// expectIdent consumes a contextual keyword spelled as IDENT (e.g.
// `type`, `from`, `as`, `satisfies`, `infer`, `keyof`).
func (p *Parser) expectIdent(name string) token.Token {
	t := p.cur()
	if !p.isIdent(name) {
		p.errorf("expected '%s', found %s", name, t.Kind)
		return t
	}
	p.advance()
	return t
}

func (p *Parser) errorf(format string, args ...any) {
	p.bag.Addf(diag.ParseError, p.cur().Pos, p.file, p.source, format, args...)
}

func (p *Parser) errorAt(pos token.Position, format string, args ...any) {
	p.bag.Addf(diag.ParseError, pos, p.file, p.source, format, args...)
}

// errorKind records a diagnostic of a specific kind (e.g. ModifierError
// for a structural/modifier invariant) rather than the default
// ParseError that errorf/errorAt always use.
func (p *Parser) errorKind(kind diag.Kind, pos token.Position, format string, args ...any) {
	p.bag.Addf(kind, pos, p.file, p.source, format, args...)
}

// synchronize advances tokens until a likely statement boundary, for
// panic-mode recovery after a parse error so one malformed statement
// does not cascade into spurious errors for the rest of the file.
func (p *Parser) synchronize() {
	for !p.cursor.IsEOF() {
		if p.is(token.SEMICOLON) {
			p.advance()
			return
		}
		switch p.cur().Kind {
		case token.FUNCTION, token.CLASS, token.INTERFACE, token.ENUM, token.IF, token.FOR,
			token.WHILE, token.RETURN, token.VAR, token.LET, token.CONST, token.RBRACE:
			return
		}
		p.advance()
	}
}

func (p *Parser) skipSemicolon() {
	if p.is(token.SEMICOLON) {
		p.advance()
	}
}
