package ast

import (
	"strings"

	"github.com/tscore-lang/tscore/internal/token"
)

// NumberLiteral is a numeric literal.
type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (e *NumberLiteral) expressionNode()     {}
func (e *NumberLiteral) Pos() token.Position { return e.Token.Pos }
func (e *NumberLiteral) String() string      { return e.Token.Lexeme }

// BigIntLiteral is a `123n` literal.
type BigIntLiteral struct {
	Token  token.Token
	Digits string
}

func (e *BigIntLiteral) expressionNode()     {}
func (e *BigIntLiteral) Pos() token.Position { return e.Token.Pos }
func (e *BigIntLiteral) String() string      { return e.Digits + "n" }

// StringLiteral is a single- or double-quoted string literal.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (e *StringLiteral) expressionNode()     {}
func (e *StringLiteral) Pos() token.Position { return e.Token.Pos }
func (e *StringLiteral) String() string      { return `"` + e.Value + `"` }

// BooleanLiteral is `true`/`false`.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (e *BooleanLiteral) expressionNode()     {}
func (e *BooleanLiteral) Pos() token.Position { return e.Token.Pos }
func (e *BooleanLiteral) String() string      { return e.Token.Lexeme }

// NullLiteral is `null`.
type NullLiteral struct{ Token token.Token }

func (e *NullLiteral) expressionNode()     {}
func (e *NullLiteral) Pos() token.Position { return e.Token.Pos }
func (e *NullLiteral) String() string      { return "null" }

// UndefinedLiteral is `undefined`.
type UndefinedLiteral struct{ Token token.Token }

func (e *UndefinedLiteral) expressionNode()     {}
func (e *UndefinedLiteral) Pos() token.Position { return e.Token.Pos }
func (e *UndefinedLiteral) String() string      { return "undefined" }

// ThisExpression is `this`.
type ThisExpression struct{ Token token.Token }

func (e *ThisExpression) expressionNode()     {}
func (e *ThisExpression) Pos() token.Position { return e.Token.Pos }
func (e *ThisExpression) String() string      { return "this" }

// TemplateSpan is one interpolation hole plus the literal text that
// follows it, within a TemplateLiteral.
type TemplateSpan struct {
	Expr   Expression
	Cooked string
	Raw    string
}

// TemplateLiteral is a template string with zero or more interpolations:
// `` `head${e1}mid${e2}tail` ``.
type TemplateLiteral struct {
	Token      token.Token
	HeadCooked string
	HeadRaw    string
	Spans      []TemplateSpan
}

func (e *TemplateLiteral) expressionNode()     {}
func (e *TemplateLiteral) Pos() token.Position { return e.Token.Pos }
func (e *TemplateLiteral) String() string {
	var sb strings.Builder
	sb.WriteString("`")
	sb.WriteString(e.HeadCooked)
	for _, s := range e.Spans {
		sb.WriteString("${")
		sb.WriteString(s.Expr.String())
		sb.WriteString("}")
		sb.WriteString(s.Cooked)
	}
	sb.WriteString("`")
	return sb.String()
}

// TaggedTemplate is `tag` + TemplateLiteral: `tag\`a${b}c\``.
type TaggedTemplate struct {
	Token    token.Token
	Tag      Expression
	Template *TemplateLiteral
}

func (e *TaggedTemplate) expressionNode()     {}
func (e *TaggedTemplate) Pos() token.Position { return e.Token.Pos }
func (e *TaggedTemplate) String() string      { return e.Tag.String() + e.Template.String() }

// BinaryExpression is any left-op-right binary operator.
type BinaryExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (e *BinaryExpression) expressionNode()     {}
func (e *BinaryExpression) Pos() token.Position { return e.Token.Pos }
func (e *BinaryExpression) String() string {
	return "(" + e.Left.String() + " " + e.Operator + " " + e.Right.String() + ")"
}

// LogicalExpression is `&&`/`||` short-circuit evaluation.
type LogicalExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (e *LogicalExpression) expressionNode()     {}
func (e *LogicalExpression) Pos() token.Position { return e.Token.Pos }
func (e *LogicalExpression) String() string {
	return "(" + e.Left.String() + " " + e.Operator + " " + e.Right.String() + ")"
}

// NullishCoalescingExpression is `a ?? b`.
type NullishCoalescingExpression struct {
	Token token.Token
	Left  Expression
	Right Expression
}

func (e *NullishCoalescingExpression) expressionNode()     {}
func (e *NullishCoalescingExpression) Pos() token.Position { return e.Token.Pos }
func (e *NullishCoalescingExpression) String() string {
	return "(" + e.Left.String() + " ?? " + e.Right.String() + ")"
}

// ConditionalExpression is `cond ? then : else`.
type ConditionalExpression struct {
	Token     token.Token
	Condition Expression
	Then      Expression
	Else      Expression
}

func (e *ConditionalExpression) expressionNode()     {}
func (e *ConditionalExpression) Pos() token.Position { return e.Token.Pos }
func (e *ConditionalExpression) String() string {
	return "(" + e.Condition.String() + " ? " + e.Then.String() + " : " + e.Else.String() + ")"
}

// GroupingExpression is a parenthesized expression.
type GroupingExpression struct {
	Token token.Token
	Inner Expression
}

func (e *GroupingExpression) expressionNode()     {}
func (e *GroupingExpression) Pos() token.Position { return e.Token.Pos }
func (e *GroupingExpression) String() string      { return "(" + e.Inner.String() + ")" }

// UnaryExpression is a prefix operator: `-x`, `!x`, `typeof x`, `void x`,
// `delete x`, `~x`.
type UnaryExpression struct {
	Token    token.Token
	Operator string
	Operand  Expression
}

func (e *UnaryExpression) expressionNode()     {}
func (e *UnaryExpression) Pos() token.Position { return e.Token.Pos }
func (e *UnaryExpression) String() string {
	return "(" + e.Operator + e.Operand.String() + ")"
}

// UpdateExpression is `++x`/`x++`/`--x`/`x--`.
type UpdateExpression struct {
	Token    token.Token
	Operator string
	Operand  Expression
	Prefix   bool
}

func (e *UpdateExpression) expressionNode()     {}
func (e *UpdateExpression) Pos() token.Position { return e.Token.Pos }
func (e *UpdateExpression) String() string {
	if e.Prefix {
		return e.Operator + e.Operand.String()
	}
	return e.Operand.String() + e.Operator
}

// AssignmentExpression is `a = b` or a compound assignment `a += b`.
type AssignmentExpression struct {
	Token    token.Token
	Target   Expression
	Operator string // "=", "+=", "-=", ...
	Value    Expression
}

func (e *AssignmentExpression) expressionNode()     {}
func (e *AssignmentExpression) Pos() token.Position { return e.Token.Pos }
func (e *AssignmentExpression) String() string {
	return e.Target.String() + " " + e.Operator + " " + e.Value.String()
}

// MemberExpression is `obj.prop`, `obj?.prop`, or `obj.#priv`.
type MemberExpression struct {
	Token    token.Token
	Object   Expression
	Property string
	Optional bool // `?.` chaining
}

func (e *MemberExpression) expressionNode()     {}
func (e *MemberExpression) Pos() token.Position { return e.Token.Pos }
func (e *MemberExpression) String() string {
	op := "."
	if e.Optional {
		op = "?."
	}
	return e.Object.String() + op + e.Property
}

// IndexExpression is `obj[index]` / `obj?.[index]`.
type IndexExpression struct {
	Token    token.Token
	Object   Expression
	Index    Expression
	Optional bool
}

func (e *IndexExpression) expressionNode()     {}
func (e *IndexExpression) Pos() token.Position { return e.Token.Pos }
func (e *IndexExpression) String() string {
	op := "["
	if e.Optional {
		op = "?.["
	}
	return e.Object.String() + op + e.Index.String() + "]"
}

// SuperExpression is the bare `super` keyword used as `super(...)` or
// `super.member`.
type SuperExpression struct{ Token token.Token }

func (e *SuperExpression) expressionNode()     {}
func (e *SuperExpression) Pos() token.Position { return e.Token.Pos }
func (e *SuperExpression) String() string      { return "super" }

// CallExpression is `callee(args)`, optionally with explicit type
// arguments `callee<T>(args)` and optional chaining `callee?.(args)`.
type CallExpression struct {
	Token     token.Token
	Callee    Expression
	TypeArgs  []TypeExpression
	Args      []Expression
	Optional  bool
}

func (e *CallExpression) expressionNode()     {}
func (e *CallExpression) Pos() token.Position { return e.Token.Pos }
func (e *CallExpression) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return e.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}

// NewExpression is `new Callee(args)`, optionally with explicit type
// arguments `new Callee<T>(args)`.
type NewExpression struct {
	Token    token.Token
	Callee   Expression
	TypeArgs []TypeExpression
	Args     []Expression
}

func (e *NewExpression) expressionNode()     {}
func (e *NewExpression) Pos() token.Position { return e.Token.Pos }
func (e *NewExpression) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return "new " + e.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}

// SpreadElement is `...expr` inside an array/object literal or call.
type SpreadElement struct {
	Token token.Token
	Value Expression
}

func (e *SpreadElement) expressionNode()     {}
func (e *SpreadElement) Pos() token.Position { return e.Token.Pos }
func (e *SpreadElement) String() string      { return "..." + e.Value.String() }

// ArrayLiteral is `[a, b, ...c]`, with nil elements for holes.
type ArrayLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (e *ArrayLiteral) expressionNode()     {}
func (e *ArrayLiteral) Pos() token.Position { return e.Token.Pos }
func (e *ArrayLiteral) String() string {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		if el == nil {
			continue
		}
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ObjectProperty is one entry of an ObjectLiteral: `key: value`,
// `...spread`, or a shorthand method.
type ObjectProperty struct {
	Key      string
	Computed Expression // non-nil for `[expr]: value`
	Value    Expression
	Spread   bool
	Shorthand bool
	Method   bool
}

// ObjectLiteral is `{ a: 1, ...b }`. IsFresh is true when the literal is
// written directly at an assignment/call site and therefore subject to
// excess-property checking under the "fresh object literal" rule;
// it is cleared once the literal's value flows through a variable.
type ObjectLiteral struct {
	Token      token.Token
	Properties []ObjectProperty
	IsFresh    bool
}

func (e *ObjectLiteral) expressionNode()     {}
func (e *ObjectLiteral) Pos() token.Position { return e.Token.Pos }
func (e *ObjectLiteral) String() string {
	parts := make([]string, len(e.Properties))
	for i, p := range e.Properties {
		if p.Spread {
			parts[i] = "..." + p.Value.String()
			continue
		}
		parts[i] = p.Key + ": " + p.Value.String()
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// Param is a function/arrow parameter.
type Param struct {
	Token       token.Token
	Name        string
	Pattern     Pattern // non-nil for destructured parameters (pre-desugar only)
	Type        TypeExpression
	Optional    bool
	Rest        bool
	Default     Expression
	AccessMod   string // "", "public", "private", "protected", "readonly" — parameter-properties
}

func (p *Param) String() string {
	s := p.Name
	if p.Type != nil {
		s += ": " + p.Type.String()
	}
	return s
}

// ArrowFunction is `(params) => body` or `(params): T => body`. Body is
// either an Expression (expression body) or a *BlockStatement (block
// body) — exactly one is set.
type ArrowFunction struct {
	Token      token.Token
	TypeParams []*TypeParam
	Params     []*Param
	ThisParam  TypeExpression
	ReturnType TypeExpression
	Body       Expression
	BlockBody  *BlockStatement
	Async      bool
	// IsObjectMethod is true when this arrow originated as an object
	// literal method shorthand, which affects how `this` is bound at
	// the call site.
	IsObjectMethod bool
}

func (e *ArrowFunction) expressionNode()     {}
func (e *ArrowFunction) Pos() token.Position { return e.Token.Pos }
func (e *ArrowFunction) String() string {
	parts := make([]string, len(e.Params))
	for i, p := range e.Params {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, ", ") + ") => ..."
}

// TypeAssertionExpression is `expr as T` or `<T>expr`.
type TypeAssertionExpression struct {
	Token      token.Token
	Expr       Expression
	Type       TypeExpression
	AngleStyle bool // true for `<T>expr`, false for `expr as T`
	Const      bool // `expr as const`
}

func (e *TypeAssertionExpression) expressionNode()     {}
func (e *TypeAssertionExpression) Pos() token.Position { return e.Token.Pos }
func (e *TypeAssertionExpression) String() string {
	if e.AngleStyle {
		return "<" + e.Type.String() + ">" + e.Expr.String()
	}
	return e.Expr.String() + " as " + e.Type.String()
}

// SatisfiesExpression is `expr satisfies T`.
type SatisfiesExpression struct {
	Token token.Token
	Expr  Expression
	Type  TypeExpression
}

func (e *SatisfiesExpression) expressionNode()     {}
func (e *SatisfiesExpression) Pos() token.Position { return e.Token.Pos }
func (e *SatisfiesExpression) String() string {
	return e.Expr.String() + " satisfies " + e.Type.String()
}

// NonNullExpression is `expr!`.
type NonNullExpression struct {
	Token token.Token
	Expr  Expression
}

func (e *NonNullExpression) expressionNode()     {}
func (e *NonNullExpression) Pos() token.Position { return e.Token.Pos }
func (e *NonNullExpression) String() string      { return e.Expr.String() + "!" }

// AwaitExpression is `await expr`.
type AwaitExpression struct {
	Token token.Token
	Expr  Expression
}

func (e *AwaitExpression) expressionNode()     {}
func (e *AwaitExpression) Pos() token.Position { return e.Token.Pos }
func (e *AwaitExpression) String() string      { return "await " + e.Expr.String() }

// YieldExpression is `yield expr` or `yield* expr` (Delegate).
type YieldExpression struct {
	Token    token.Token
	Expr     Expression // optional
	Delegate bool
}

func (e *YieldExpression) expressionNode()     {}
func (e *YieldExpression) Pos() token.Position { return e.Token.Pos }
func (e *YieldExpression) String() string {
	if e.Delegate {
		return "yield* " + e.Expr.String()
	}
	if e.Expr == nil {
		return "yield"
	}
	return "yield " + e.Expr.String()
}

// SequenceExpression is a comma expression `(a, b, c)`, also used as the
// desugaring target for destructuring.
type SequenceExpression struct {
	Token       token.Token
	Expressions []Expression
}

func (e *SequenceExpression) expressionNode()     {}
func (e *SequenceExpression) Pos() token.Position { return e.Token.Pos }
func (e *SequenceExpression) String() string {
	parts := make([]string, len(e.Expressions))
	for i, x := range e.Expressions {
		parts[i] = x.String()
	}
	return strings.Join(parts, ", ")
}
