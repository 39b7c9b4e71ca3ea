// Package ast defines the two node families — statements and
// expressions — that make up the parser's output, plus the syntactic
// type-expression family the parser builds from type syntax. Every node
// carries its own source position for diagnostics; the type checker
// (internal/checker) attaches inferred/declared internal/types.Type
// values alongside these nodes rather than mutating them in place.
package ast

import (
	"strings"

	"github.com/tscore-lang/tscore/internal/token"
)

// Node is the base of every AST node.
type Node interface {
	Pos() token.Position
	String() string
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Program is the root of a parsed source file. Directives carries the
// comment-borne directives the lexer recognized while scanning this
// source (`@ts-expect-error` suppressions and triple-slash reference
// hints) — trivia that never becomes a Statement/Expression node but
// still needs to reach the checker and the module-resolution layer.
type Program struct {
	Statements []Statement
	Directives []token.Directive
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Identifier is a bare name reference (variable, type, or label).
type Identifier struct {
	Token token.Token
	Name  string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) Pos() token.Position  { return i.Token.Pos }
func (i *Identifier) String() string       { return i.Name }

// PrivateIdentifier is a `#name` class-private member reference.
type PrivateIdentifier struct {
	Token token.Token
	Name  string // includes leading '#'
}

func (i *PrivateIdentifier) expressionNode()     {}
func (i *PrivateIdentifier) Pos() token.Position { return i.Token.Pos }
func (i *PrivateIdentifier) String() string      { return i.Name }

// Decorator is a `@name` or `@name(args)` attribute attached to a class
// declaration or member. It is parsed but inert to the checker.
type Decorator struct {
	Token token.Token
	Name  Expression // Identifier or member-chain
	Args  []Expression
}

func (d *Decorator) Pos() token.Position { return d.Token.Pos }
func (d *Decorator) String() string {
	if d.Args == nil {
		return "@" + d.Name.String()
	}
	return "@" + d.Name.String() + "(...)"
}
