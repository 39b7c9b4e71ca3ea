package ast

import (
	"strings"

	"github.com/tscore-lang/tscore/internal/token"
)

// ExpressionStatement wraps an expression used as a statement.
type ExpressionStatement struct {
	Token token.Token
	Expr  Expression
}

func (s *ExpressionStatement) statementNode()      {}
func (s *ExpressionStatement) Pos() token.Position { return s.Token.Pos }
func (s *ExpressionStatement) String() string      { return s.Expr.String() + ";" }

// VarKind distinguishes `var`/`let`/`const`/`using`/`await using`.
type VarKind int

const (
	VarVar VarKind = iota
	VarLet
	VarConst
	VarUsing
	VarAwaitUsing
)

// VarDeclarator is one `name: T = init` entry of a (possibly
// multi-name) variable declaration.
type VarDeclarator struct {
	Name              string
	Pattern           Pattern // non-nil for destructuring (pre-desugar)
	Type              TypeExpression
	Init              Expression
	DefiniteAssignment bool // `let x!: T;`
}

// VarStatement is `var`/`let`/`const x = 1, y = 2;` or a `using`/`await
// using` resource binding. Invariants: a const declarator has a
// non-null Init and DefiniteAssignment == false; DefiniteAssignment
// requires Type != nil and Init == nil.
type VarStatement struct {
	Token       token.Token
	Kind        VarKind
	Declarators []VarDeclarator
}

func (s *VarStatement) statementNode()      {}
func (s *VarStatement) Pos() token.Position { return s.Token.Pos }
func (s *VarStatement) String() string {
	kw := [...]string{"var", "let", "const", "using", "await using"}[s.Kind]
	names := make([]string, len(s.Declarators))
	for i, d := range s.Declarators {
		names[i] = d.Name
	}
	return kw + " " + strings.Join(names, ", ") + ";"
}

// BlockStatement is `{ ...statements }`, introducing a new lexical
// scope.
type BlockStatement struct {
	Token      token.Token
	Statements []Statement
}

func (s *BlockStatement) statementNode()      {}
func (s *BlockStatement) Pos() token.Position { return s.Token.Pos }
func (s *BlockStatement) String() string      { return "{ ... }" }

// SequenceStatement is a block without a new scope — the desugaring
// target for destructuring bindings and `for`-loop lowering.
type SequenceStatement struct {
	Token      token.Token
	Statements []Statement
}

func (s *SequenceStatement) statementNode()      {}
func (s *SequenceStatement) Pos() token.Position { return s.Token.Pos }
func (s *SequenceStatement) String() string      { return "(seq ...)" }

// IfStatement is `if (cond) then else alt`.
type IfStatement struct {
	Token     token.Token
	Condition Expression
	Then      Statement
	Else      Statement // optional
}

func (s *IfStatement) statementNode()      {}
func (s *IfStatement) Pos() token.Position { return s.Token.Pos }
func (s *IfStatement) String() string      { return "if (" + s.Condition.String() + ") ..." }

// WhileStatement is `while (cond) body`.
type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      Statement
}

func (s *WhileStatement) statementNode()      {}
func (s *WhileStatement) Pos() token.Position { return s.Token.Pos }
func (s *WhileStatement) String() string      { return "while (" + s.Condition.String() + ") ..." }

// DoWhileStatement is `do body while (cond);`.
type DoWhileStatement struct {
	Token     token.Token
	Body      Statement
	Condition Expression
}

func (s *DoWhileStatement) statementNode()      {}
func (s *DoWhileStatement) Pos() token.Position { return s.Token.Pos }
func (s *DoWhileStatement) String() string      { return "do ... while (" + s.Condition.String() + ")" }

// ForStatement is the canonical C-style `for (init; cond; inc) body`
// BEFORE desugaring. The parser desugars this into a SequenceStatement
// wrapping a WhileStatement; this node only exists transiently during
// parsing and is never handed to the checker.
type ForStatement struct {
	Token     token.Token
	Init      Statement
	Condition Expression
	Update    Expression
	Body      Statement
}

func (s *ForStatement) statementNode()      {}
func (s *ForStatement) Pos() token.Position { return s.Token.Pos }
func (s *ForStatement) String() string      { return "for (...) ..." }

// ForOfStatement is `for (const x of iterable) body`.
type ForOfStatement struct {
	Token    token.Token
	Kind     VarKind
	Name     string
	Pattern  Pattern
	Type     TypeExpression
	Iterable Expression
	Body     Statement
	Await    bool // `for await (...)`
}

func (s *ForOfStatement) statementNode()      {}
func (s *ForOfStatement) Pos() token.Position { return s.Token.Pos }
func (s *ForOfStatement) String() string      { return "for (... of " + s.Iterable.String() + ") ..." }

// ForInStatement is `for (const k in obj) body`.
type ForInStatement struct {
	Token   token.Token
	Kind    VarKind
	Name    string
	Object  Expression
	Body    Statement
}

func (s *ForInStatement) statementNode()      {}
func (s *ForInStatement) Pos() token.Position { return s.Token.Pos }
func (s *ForInStatement) String() string      { return "for (... in " + s.Object.String() + ") ..." }

// SwitchCase is one `case expr:`/`default:` arm.
type SwitchCase struct {
	Test       Expression // nil for default
	Statements []Statement
}

// SwitchStatement is `switch (disc) { case ...: ... }`.
type SwitchStatement struct {
	Token       token.Token
	Discriminant Expression
	Cases       []SwitchCase
}

func (s *SwitchStatement) statementNode()      {}
func (s *SwitchStatement) Pos() token.Position { return s.Token.Pos }
func (s *SwitchStatement) String() string      { return "switch (" + s.Discriminant.String() + ") { ... }" }

// CatchClause is the `catch (param) body` part of a try statement.
type CatchClause struct {
	ParamName string
	ParamType TypeExpression
	Body      *BlockStatement
}

// TryStatement is `try body catch(e) handler finally fin`.
type TryStatement struct {
	Token   token.Token
	Body    *BlockStatement
	Catch   *CatchClause // optional
	Finally *BlockStatement // optional
}

func (s *TryStatement) statementNode()      {}
func (s *TryStatement) Pos() token.Position { return s.Token.Pos }
func (s *TryStatement) String() string      { return "try ..." }

// ThrowStatement is `throw expr;`.
type ThrowStatement struct {
	Token token.Token
	Expr  Expression
}

func (s *ThrowStatement) statementNode()      {}
func (s *ThrowStatement) Pos() token.Position { return s.Token.Pos }
func (s *ThrowStatement) String() string      { return "throw " + s.Expr.String() + ";" }

// ReturnStatement is `return expr;`.
type ReturnStatement struct {
	Token token.Token
	Expr  Expression // optional
}

func (s *ReturnStatement) statementNode()      {}
func (s *ReturnStatement) Pos() token.Position { return s.Token.Pos }
func (s *ReturnStatement) String() string {
	if s.Expr == nil {
		return "return;"
	}
	return "return " + s.Expr.String() + ";"
}

// BreakStatement is `break;` or `break label;`.
type BreakStatement struct {
	Token token.Token
	Label string
}

func (s *BreakStatement) statementNode()      {}
func (s *BreakStatement) Pos() token.Position { return s.Token.Pos }
func (s *BreakStatement) String() string      { return "break;" }

// ContinueStatement is `continue;` or `continue label;`.
type ContinueStatement struct {
	Token token.Token
	Label string
}

func (s *ContinueStatement) statementNode()      {}
func (s *ContinueStatement) Pos() token.Position { return s.Token.Pos }
func (s *ContinueStatement) String() string      { return "continue;" }

// LabeledStatement is `label: statement`.
type LabeledStatement struct {
	Token token.Token
	Label string
	Body  Statement
}

func (s *LabeledStatement) statementNode()      {}
func (s *LabeledStatement) Pos() token.Position { return s.Token.Pos }
func (s *LabeledStatement) String() string      { return s.Label + ": " + s.Body.String() }
