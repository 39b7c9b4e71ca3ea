package ast

import (
	"strings"

	"github.com/tscore-lang/tscore/internal/token"
)

// TypeExpression is the syntactic form of a type annotation, as written
// in source. The checker resolves each TypeExpression to a canonical
// internal/types.Type; TypeExpression itself never carries semantic
// information.
type TypeExpression interface {
	Node
	typeExpressionNode()
}

// TypeParam is a generic declaration's type parameter: `T`, `T extends U`,
// `T = Default`, with optional declared variance.
type Variance int

const (
	VarianceInvariant Variance = iota
	VarianceIn
	VarianceOut
	VarianceInOut
)

type TypeParam struct {
	Token      token.Token
	Name       string
	Constraint TypeExpression // optional
	Default    TypeExpression // optional
	Variance   Variance
}

func (t *TypeParam) Pos() token.Position { return t.Token.Pos }
func (t *TypeParam) String() string      { return t.Name }

// NamedType is a reference to a declared type, optionally instantiated:
// `Foo`, `Array<T>`, `A.B.C<T, U>`.
type NamedType struct {
	Token    token.Token
	Name     string
	TypeArgs []TypeExpression
}

func (t *NamedType) typeExpressionNode() {}
func (t *NamedType) Pos() token.Position { return t.Token.Pos }
func (t *NamedType) String() string {
	if len(t.TypeArgs) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.TypeArgs))
	for i, a := range t.TypeArgs {
		parts[i] = a.String()
	}
	return t.Name + "<" + strings.Join(parts, ", ") + ">"
}

// LiteralType is a literal used as a type: `"a"`, `42`, `true`.
type LiteralType struct {
	Token token.Token
	Value Expression // a literal expression node
}

func (t *LiteralType) typeExpressionNode() {}
func (t *LiteralType) Pos() token.Position { return t.Token.Pos }
func (t *LiteralType) String() string      { return t.Value.String() }

// UnionType is `A | B | C`.
type UnionType struct {
	Token token.Token
	Parts []TypeExpression
}

func (t *UnionType) typeExpressionNode() {}
func (t *UnionType) Pos() token.Position { return t.Token.Pos }
func (t *UnionType) String() string {
	parts := make([]string, len(t.Parts))
	for i, p := range t.Parts {
		parts[i] = p.String()
	}
	return strings.Join(parts, " | ")
}

// IntersectionType is `A & B & C`.
type IntersectionType struct {
	Token token.Token
	Parts []TypeExpression
}

func (t *IntersectionType) typeExpressionNode() {}
func (t *IntersectionType) Pos() token.Position { return t.Token.Pos }
func (t *IntersectionType) String() string {
	parts := make([]string, len(t.Parts))
	for i, p := range t.Parts {
		parts[i] = p.String()
	}
	return strings.Join(parts, " & ")
}

// ArrayType is `T[]`.
type ArrayType struct {
	Token   token.Token
	Element TypeExpression
}

func (t *ArrayType) typeExpressionNode() {}
func (t *ArrayType) Pos() token.Position { return t.Token.Pos }
func (t *ArrayType) String() string      { return t.Element.String() + "[]" }

// TupleElement is one element of a tuple type: optionally named,
// optionally optional, optionally a `...rest` spread (which must be last
// — the parser enforces this, not this struct).
type TupleElement struct {
	Name     string // optional label
	Type     TypeExpression
	Optional bool
	Rest     bool
}

// TupleType is `[A, B?, ...C[]]`.
type TupleType struct {
	Token    token.Token
	Elements []TupleElement
}

func (t *TupleType) typeExpressionNode() {}
func (t *TupleType) Pos() token.Position { return t.Token.Pos }
func (t *TupleType) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		s := e.Type.String()
		if e.Rest {
			s = "..." + s
		}
		if e.Optional {
			s += "?"
		}
		parts[i] = s
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// IndexSignature is `[key: string]: V` inside a record type.
type IndexSignature struct {
	KeyName string
	KeyType TypeExpression // string | number | symbol
	Value   TypeExpression
}

// RecordMember is one member of an object/record type literal or an
// interface body.
type RecordMember struct {
	Name       string
	Computed   Expression // non-nil for `[expr]: T` computed members
	Type       TypeExpression
	Optional   bool
	Readonly   bool
	CallSig    *FunctionTypeNode // non-nil for call-signature members
	ConstructSig *FunctionTypeNode // non-nil for construct-signature members
}

// RecordType is an object type literal: `{ a: number; b?: string }`, or
// the member list of an `interface`.
type RecordType struct {
	Token           token.Token
	Members         []RecordMember
	IndexSignatures []IndexSignature
}

func (t *RecordType) typeExpressionNode() {}
func (t *RecordType) Pos() token.Position { return t.Token.Pos }
func (t *RecordType) String() string {
	parts := make([]string, 0, len(t.Members))
	for _, m := range t.Members {
		opt := ""
		if m.Optional {
			opt = "?"
		}
		parts = append(parts, m.Name+opt+": "+m.Type.String())
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

// FunctionTypeNode is a function-type annotation: `(a: number) => string`,
// or a call/construct signature inside a RecordType/interface.
type FunctionTypeNode struct {
	Token      token.Token
	TypeParams []*TypeParam
	Params     []*Param
	ThisParam  TypeExpression // optional explicit `this` parameter type
	Return     TypeExpression
	IsNew      bool // construct signature: `new (...) => T`
}

func (t *FunctionTypeNode) typeExpressionNode() {}
func (t *FunctionTypeNode) Pos() token.Position { return t.Token.Pos }
func (t *FunctionTypeNode) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	prefix := ""
	if t.IsNew {
		prefix = "new "
	}
	ret := "void"
	if t.Return != nil {
		ret = t.Return.String()
	}
	return prefix + "(" + strings.Join(parts, ", ") + ") => " + ret
}

// KeyofType is `keyof T`.
type KeyofType struct {
	Token    token.Token
	Operand  TypeExpression
}

func (t *KeyofType) typeExpressionNode() {}
func (t *KeyofType) Pos() token.Position { return t.Token.Pos }
func (t *KeyofType) String() string      { return "keyof " + t.Operand.String() }

// IndexedAccessType is `T[K]`.
type IndexedAccessType struct {
	Token  token.Token
	Object TypeExpression
	Index  TypeExpression
}

func (t *IndexedAccessType) typeExpressionNode() {}
func (t *IndexedAccessType) Pos() token.Position { return t.Token.Pos }
func (t *IndexedAccessType) String() string {
	return t.Object.String() + "[" + t.Index.String() + "]"
}

// MappedType is `{ [K in Keys]?: Value }`, with optional +/-? and
// +/-readonly modifiers and an optional `as` key-remapping clause.
type ModifierOp int

const (
	ModifierNone ModifierOp = iota
	ModifierAdd
	ModifierRemove
)

type MappedType struct {
	Token        token.Token
	KeyName      string
	Keys         TypeExpression // keyof T, a union of literal keys, or a template-literal type
	As           TypeExpression // optional key-remapping clause
	Value        TypeExpression
	OptionalMod  ModifierOp
	ReadonlyMod  ModifierOp
}

func (t *MappedType) typeExpressionNode() {}
func (t *MappedType) Pos() token.Position { return t.Token.Pos }
func (t *MappedType) String() string {
	return "{ [" + t.KeyName + " in " + t.Keys.String() + "]: " + t.Value.String() + " }"
}

// ConditionalType is `Check extends Extends ? True : False`. InferParams
// lists the type parameters introduced by `infer` within Extends.
type ConditionalType struct {
	Token       token.Token
	Check       TypeExpression
	Extends     TypeExpression
	InferParams []string
	True        TypeExpression
	False       TypeExpression
}

func (t *ConditionalType) typeExpressionNode() {}
func (t *ConditionalType) Pos() token.Position { return t.Token.Pos }
func (t *ConditionalType) String() string {
	return t.Check.String() + " extends " + t.Extends.String() + " ? " + t.True.String() + " : " + t.False.String()
}

// InferType is an `infer T` placeholder, only valid within a
// ConditionalType's Extends clause.
type InferType struct {
	Token token.Token
	Name  string
}

func (t *InferType) typeExpressionNode() {}
func (t *InferType) Pos() token.Position { return t.Token.Pos }
func (t *InferType) String() string      { return "infer " + t.Name }

// TemplateLiteralType is `` `prefix${T}suffix` `` as a type: a sequence
// of literal text segments interleaved with type-expression holes.
type TemplateLiteralType struct {
	Token    token.Token
	Quasis   []string // len(Quasis) == len(Types)+1
	Types    []TypeExpression
}

func (t *TemplateLiteralType) typeExpressionNode() {}
func (t *TemplateLiteralType) Pos() token.Position { return t.Token.Pos }
func (t *TemplateLiteralType) String() string {
	var sb strings.Builder
	sb.WriteString("`")
	for i, q := range t.Quasis {
		sb.WriteString(q)
		if i < len(t.Types) {
			sb.WriteString("${")
			sb.WriteString(t.Types[i].String())
			sb.WriteString("}")
		}
	}
	sb.WriteString("`")
	return sb.String()
}

// TypePredicateType is a function return-type annotation of the form
// `arg is T`, `asserts arg`, or `asserts arg is T`.
type TypePredicateType struct {
	Token     token.Token
	ParamName string
	Asserts   bool
	Type      TypeExpression // nil for bare `asserts x`
}

func (t *TypePredicateType) typeExpressionNode() {}
func (t *TypePredicateType) Pos() token.Position { return t.Token.Pos }
func (t *TypePredicateType) String() string {
	prefix := ""
	if t.Asserts {
		prefix = "asserts "
	}
	if t.Type == nil {
		return prefix + t.ParamName
	}
	return prefix + t.ParamName + " is " + t.Type.String()
}

// UniqueSymbolType is `unique symbol`.
type UniqueSymbolType struct {
	Token token.Token
}

func (t *UniqueSymbolType) typeExpressionNode() {}
func (t *UniqueSymbolType) Pos() token.Position { return t.Token.Pos }
func (t *UniqueSymbolType) String() string      { return "unique symbol" }

// ParenType is a parenthesized type, used only to group union/
// intersection/function types unambiguously (e.g. `(() => void)[]`).
type ParenType struct {
	Token token.Token
	Inner TypeExpression
}

func (t *ParenType) typeExpressionNode() {}
func (t *ParenType) Pos() token.Position { return t.Token.Pos }
func (t *ParenType) String() string      { return "(" + t.Inner.String() + ")" }
