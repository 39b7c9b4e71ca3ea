// Package types is the canonical, checker-facing type representation:
// every ast.TypeExpression the parser produces is resolved into one of
// these Type variants before assignability, narrowing, or inference
// ever runs on it.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Kind tags a Type's concrete variant, mirroring the switch a checker
// does on `.(type)` but usable in maps/logs without a type switch.
type Kind int

const (
	KindAny Kind = iota
	KindUnknown
	KindNever
	KindVoid
	KindNull
	KindUndefined
	KindBoolean
	KindNumber
	KindString
	KindBigInt
	KindSymbol
	KindLiteral
	KindUnion
	KindIntersection
	KindArray
	KindTuple
	KindRecord
	KindFunction
	KindClass
	KindInstance
	KindInterface
	KindEnum
	KindGeneric
	KindTypeParam
	KindKeyof
	KindIndexedAccess
	KindMapped
	KindConditional
	KindTemplateLiteral
	KindTypePredicate
	KindUniqueSymbol
	KindAliasPlaceholder
)

// Type is the interface every canonical type variant implements.
type Type interface {
	Kind() Kind
	String() string
}

// Primitive covers the zero-argument built-ins.
type Primitive struct{ K Kind }

func (p *Primitive) Kind() Kind { return p.K }
func (p *Primitive) String() string {
	switch p.K {
	case KindAny:
		return "any"
	case KindUnknown:
		return "unknown"
	case KindNever:
		return "never"
	case KindVoid:
		return "void"
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBigInt:
		return "bigint"
	case KindSymbol:
		return "symbol"
	default:
		return "?"
	}
}

var (
	Any       = &Primitive{KindAny}
	Unknown   = &Primitive{KindUnknown}
	Never     = &Primitive{KindNever}
	Void      = &Primitive{KindVoid}
	Null      = &Primitive{KindNull}
	Undefined = &Primitive{KindUndefined}
	Boolean   = &Primitive{KindBoolean}
	Number    = &Primitive{KindNumber}
	String    = &Primitive{KindString}
	BigInt    = &Primitive{KindBigInt}
	Symbol    = &Primitive{KindSymbol}
)

// LiteralValue is the runtime value underlying a literal type.
type LiteralValue struct {
	IsString bool
	IsNumber bool
	IsBool   bool
	Str      string
	Num      float64
	Bool     bool
}

// Literal is a literal type (`"a"`, `42`, `true`) together with the
// Widened primitive it collapses to under literal-widening rules.
type Literal struct {
	Value   LiteralValue
	Widened Type
}

func (l *Literal) Kind() Kind { return KindLiteral }
func (l *Literal) String() string {
	switch {
	case l.Value.IsString:
		return fmt.Sprintf("%q", l.Value.Str)
	case l.Value.IsNumber:
		return fmt.Sprintf("%v", l.Value.Num)
	case l.Value.IsBool:
		return fmt.Sprintf("%v", l.Value.Bool)
	default:
		return "literal"
	}
}

// Union is a flattened, deduplicated set of member types. Canonicalize
// must be used to build one; the struct itself does not enforce the
// invariant so partially-constructed unions can exist during
// inference.
type Union struct{ Members []Type }

func (u *Union) Kind() Kind { return KindUnion }
func (u *Union) String() string {
	parts := make([]string, len(u.Members))
	for i, m := range u.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

type Intersection struct{ Members []Type }

func (i *Intersection) Kind() Kind { return KindIntersection }
func (i *Intersection) String() string {
	parts := make([]string, len(i.Members))
	for idx, m := range i.Members {
		parts[idx] = m.String()
	}
	return strings.Join(parts, " & ")
}

type Array struct{ Element Type }

func (a *Array) Kind() Kind     { return KindArray }
func (a *Array) String() string { return a.Element.String() + "[]" }

type TupleElement struct {
	Type     Type
	Optional bool
	Rest     bool
	Label    string
}

type Tuple struct{ Elements []TupleElement }

func (t *Tuple) Kind() Kind { return KindTuple }
func (t *Tuple) String() string {
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

// IndexSignature is `[key: K]: V` on a Record.
type IndexSignature struct {
	KeyType Type
	Value   Type
}

// Property is one member of a Record/Interface/Instance shape.
type Property struct {
	Name     string
	Type     Type
	Optional bool
	Readonly bool
}

// Record is a structural object type: the backbone of object literals,
// interface bodies, and class instance shapes alike.
type Record struct {
	Properties []Property
	Index      []IndexSignature
	CallSigs   []*Function
	ConstructSigs []*Function
}

func (r *Record) Kind() Kind { return KindRecord }
func (r *Record) String() string {
	parts := make([]string, 0, len(r.Properties))
	for _, p := range r.Properties {
		opt := ""
		if p.Optional {
			opt = "?"
		}
		parts = append(parts, p.Name+opt+": "+p.Type.String())
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

func (r *Record) Lookup(name string) (Property, bool) {
	for _, p := range r.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Param is one function parameter's canonical shape.
type Param struct {
	Name     string
	Type     Type
	Optional bool
	Rest     bool
}

// Signature is one overload of a Function.
type Signature struct {
	TypeParams []*TypeParam
	Params     []Param
	ThisType   Type
	Return     Type
	Predicate  *TypePredicate // non-nil when Return is a type-guard form
}

// Function holds one or more overload Signatures; ordinary functions
// have exactly one.
type Function struct {
	Signatures []Signature
	IsNew      bool
}

func (f *Function) Kind() Kind { return KindFunction }
func (f *Function) String() string {
	if len(f.Signatures) == 0 {
		return "() => void"
	}
	return signatureString(f.Signatures[0], f.IsNew)
}

func signatureString(s Signature, isNew bool) string {
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		opt := ""
		if p.Optional {
			opt = "?"
		}
		rest := ""
		if p.Rest {
			rest = "..."
		}
		parts[i] = rest + p.Name + opt + ": " + p.Type.String()
	}
	prefix := ""
	if isNew {
		prefix = "new "
	}
	ret := "void"
	if s.Return != nil {
		ret = s.Return.String()
	}
	return prefix + "(" + strings.Join(parts, ", ") + ") => " + ret
}

// TypePredicate is a function return type of the form `x is T` or
// `asserts x [is T]`.
type TypePredicate struct {
	ParamName string
	Asserts   bool
	Type      Type // nil for bare `asserts x`
}

func (t *TypePredicate) Kind() Kind { return KindTypePredicate }
func (t *TypePredicate) String() string {
	prefix := ""
	if t.Asserts {
		prefix = "asserts "
	}
	if t.Type == nil {
		return prefix + t.ParamName
	}
	return prefix + t.ParamName + " is " + t.Type.String()
}

// Class is the static side of a class declaration: its instance shape,
// constructor signatures, and generic parameters.
type Class struct {
	Name          string
	TypeParams    []*TypeParam
	SuperClass    *Class
	Interfaces    []*Interface
	InstanceShape *Record
	StaticShape   *Record
	Constructors  []Signature
	Abstract      bool
}

func (c *Class) Kind() Kind     { return KindClass }
func (c *Class) String() string { return "typeof " + c.Name }

// Instance is `new Class<Args>()`'s value type.
type Instance struct {
	Class    *Class
	TypeArgs []Type
}

func (i *Instance) Kind() Kind { return KindInstance }
func (i *Instance) String() string {
	if len(i.TypeArgs) == 0 {
		return i.Class.Name
	}
	parts := make([]string, len(i.TypeArgs))
	for idx, a := range i.TypeArgs {
		parts[idx] = a.String()
	}
	return i.Class.Name + "<" + strings.Join(parts, ", ") + ">"
}

// Interface supports declaration merging: multiple InterfaceDecls with
// the same name contribute members to one Interface.
type Interface struct {
	Name       string
	TypeParams []*TypeParam
	Extends    []*Interface
	Shape      *Record
}

func (i *Interface) Kind() Kind     { return KindInterface }
func (i *Interface) String() string { return i.Name }

// Merge folds other's shape into i, failing if a shared member name
// resolves to conflicting types.
func (i *Interface) Merge(other *Interface) error {
	for _, p := range other.Shape.Properties {
		if existing, ok := i.Shape.Lookup(p.Name); ok {
			if existing.Type.String() != p.Type.String() {
				return fmt.Errorf("interface %q: merged declarations disagree on member %q", i.Name, p.Name)
			}
			continue
		}
		i.Shape.Properties = append(i.Shape.Properties, p)
	}
	i.Shape.Index = append(i.Shape.Index, other.Shape.Index...)
	i.Shape.CallSigs = append(i.Shape.CallSigs, other.Shape.CallSigs...)
	i.Shape.ConstructSigs = append(i.Shape.ConstructSigs, other.Shape.ConstructSigs...)
	return nil
}

// EnumMember is one resolved `Name = value` entry.
type EnumMember struct {
	Name  string
	Value LiteralValue
}

type Enum struct {
	Name    string
	Const   bool
	Members []EnumMember
}

func (e *Enum) Kind() Kind     { return KindEnum }
func (e *Enum) String() string { return e.Name }

// Variance mirrors ast.Variance for generic type parameters.
type Variance int

const (
	VarianceInvariant Variance = iota
	VarianceIn
	VarianceOut
	VarianceInOut
)

type TypeParam struct {
	Name       string
	Constraint Type
	Default    Type
	Variance   Variance
}

func (t *TypeParam) Kind() Kind     { return KindTypeParam }
func (t *TypeParam) String() string { return t.Name }

// Generic wraps a parameterized definition (type alias, interface,
// class, function) so instantiation can substitute fresh type
// arguments without mutating the definition itself.
type Generic struct {
	TypeParams []*TypeParam
	Body       Type
}

func (g *Generic) Kind() Kind     { return KindGeneric }
func (g *Generic) String() string { return "generic " + g.Body.String() }

type Keyof struct{ Operand Type }

func (k *Keyof) Kind() Kind     { return KindKeyof }
func (k *Keyof) String() string { return "keyof " + k.Operand.String() }

type IndexedAccess struct{ Object, Index Type }

func (i *IndexedAccess) Kind() Kind { return KindIndexedAccess }
func (i *IndexedAccess) String() string {
	return i.Object.String() + "[" + i.Index.String() + "]"
}

type ModifierOp int

const (
	ModifierNone ModifierOp = iota
	ModifierAdd
	ModifierRemove
)

// Mapped is an unexpanded `{ [K in Keys]: Value }` mapped type; the
// checker's resolution keeps it in this form rather than expanding it
// into a record over the key set.
type Mapped struct {
	KeyName     string
	Keys        Type
	Value       Type
	OptionalMod ModifierOp
	ReadonlyMod ModifierOp
}

func (m *Mapped) Kind() Kind     { return KindMapped }
func (m *Mapped) String() string { return "{ [" + m.KeyName + " in " + m.Keys.String() + "]: " + m.Value.String() + " }" }

// Conditional is `Check extends Extends ? True : False`, left
// unresolved until Check is concrete enough to decide the branch.
type Conditional struct {
	Check       Type
	Extends     Type
	InferParams []*TypeParam
	True        Type
	False       Type
}

func (c *Conditional) Kind() Kind { return KindConditional }
func (c *Conditional) String() string {
	return c.Check.String() + " extends " + c.Extends.String() + " ? " + c.True.String() + " : " + c.False.String()
}

// TemplateLiteral is a template-literal type: literal text segments
// interleaved with type holes, matched via internal/types/template.go's
// regexp2-backed matcher.
type TemplateLiteral struct {
	Quasis []string
	Types  []Type
}

func (t *TemplateLiteral) Kind() Kind { return KindTemplateLiteral }
func (t *TemplateLiteral) String() string {
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

type UniqueSymbol struct{ ID int }

func (u *UniqueSymbol) Kind() Kind     { return KindUniqueSymbol }
func (u *UniqueSymbol) String() string { return fmt.Sprintf("unique symbol #%d", u.ID) }

// AliasPlaceholder stands in for a type alias while its own definition
// is still being resolved, breaking the recursion that
// `type Json = string | number | Json[] | { [k: string]: Json }`
// would otherwise cause. The checker replaces every placeholder with
// the real alias body once resolution completes, using expansion-stack
// guarded re-entry.
type AliasPlaceholder struct {
	Name string
	Body Type // nil until resolved
}

func (a *AliasPlaceholder) Kind() Kind { return KindAliasPlaceholder }
func (a *AliasPlaceholder) String() string {
	if a.Body != nil {
		return a.Body.String()
	}
	return a.Name
}

// Resolve follows AliasPlaceholder indirection to the first non-alias
// type, guarding against an unresolved (nil-bodied) placeholder.
func Resolve(t Type) Type {
	for {
		ap, ok := t.(*AliasPlaceholder)
		if !ok || ap.Body == nil {
			return t
		}
		t = ap.Body
	}
}

// sortKey gives canonicalization a deterministic ordering for union/
// intersection members so two structurally equal sets always produce
// the same String() output, which memoization keys on.
func sortKey(t Type) string { return fmt.Sprintf("%d:%s", t.Kind(), t.String()) }

// Canonicalize flattens nested unions/intersections of the same kind,
// removes duplicate members (by String() identity), and collapses a
// single-member union/intersection to that member.
func Canonicalize(t Type) Type {
	switch v := t.(type) {
	case *Union:
		return canonicalizeUnion(v)
	case *Intersection:
		return canonicalizeIntersection(v)
	default:
		return t
	}
}

func canonicalizeUnion(u *Union) Type {
	var flat []Type
	for _, m := range u.Members {
		m = Canonicalize(m)
		if inner, ok := m.(*Union); ok {
			flat = append(flat, inner.Members...)
		} else {
			flat = append(flat, m)
		}
	}
	seen := map[string]bool{}
	var out []Type
	for _, m := range flat {
		k := sortKey(m)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return sortKey(out[i]) < sortKey(out[j]) })
	if len(out) == 1 {
		return out[0]
	}
	return &Union{Members: out}
}

func canonicalizeIntersection(it *Intersection) Type {
	var flat []Type
	for _, m := range it.Members {
		m = Canonicalize(m)
		if inner, ok := m.(*Intersection); ok {
			flat = append(flat, inner.Members...)
		} else {
			flat = append(flat, m)
		}
	}
	seen := map[string]bool{}
	var out []Type
	for _, m := range flat {
		k := sortKey(m)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return sortKey(out[i]) < sortKey(out[j]) })
	if len(out) == 1 {
		return out[0]
	}
	return &Intersection{Members: out}
}

// Widen returns a literal's declared-without-const widened type, or t
// unchanged for every other kind.
func Widen(t Type) Type {
	if lit, ok := t.(*Literal); ok && lit.Widened != nil {
		return lit.Widened
	}
	return t
}
