package ast

import (
	"strings"

	"github.com/tscore-lang/tscore/internal/token"
)

// FunctionDecl is a function/method declaration. Body is nil for
// overload signatures and for ambient/abstract/interface
// method signatures.
type FunctionDecl struct {
	Token       token.Token
	Name        string
	TypeParams  []*TypeParam
	Params      []*Param
	ThisParam   TypeExpression
	ReturnType  TypeExpression
	Body        *BlockStatement
	Async       bool
	Generator   bool
	Decorators  []*Decorator
}

func (d *FunctionDecl) statementNode()      {}
func (d *FunctionDecl) Pos() token.Position { return d.Token.Pos }
func (d *FunctionDecl) String() string {
	return "function " + d.Name + "(...) { ... }"
}

// AccessMod is a class member's access modifier.
type AccessMod int

const (
	AccessPublic AccessMod = iota
	AccessProtected
	AccessPrivate
)

// FieldDecl is a class field (or a parameter-property synthesized field).
type FieldDecl struct {
	Token      token.Token
	Name       string
	Private    bool // `#name` private field, distinct from AccessMod
	Type       TypeExpression
	Init       Expression
	Optional   bool
	Static     bool
	Readonly   bool
	Abstract   bool
	Override   bool
	Access     AccessMod
	Decorators []*Decorator
}

func (f *FieldDecl) Pos() token.Position { return f.Token.Pos }
func (f *FieldDecl) String() string      { return f.Name }

// MethodDecl is a class method, constructor, or accessor.
type MethodKind int

const (
	MethodOrdinary MethodKind = iota
	MethodConstructor
	MethodGetter
	MethodSetter
)

type MethodDecl struct {
	Token      token.Token
	Name       string
	Kind       MethodKind
	TypeParams []*TypeParam
	Params     []*Param
	ReturnType TypeExpression
	Body       *BlockStatement // nil for abstract/ambient/overload-signature methods
	Static     bool
	Abstract   bool
	Override   bool
	Async      bool
	Generator  bool
	Access     AccessMod
	Decorators []*Decorator
}

func (m *MethodDecl) Pos() token.Position { return m.Token.Pos }
func (m *MethodDecl) String() string      { return m.Name + "(...) { ... }" }

// ClassMember is any one of FieldDecl/MethodDecl.
type ClassMember interface {
	Pos() token.Position
	String() string
}

// ClassDecl is a class declaration.
type ClassDecl struct {
	Token         token.Token
	Name          string
	TypeParams    []*TypeParam
	SuperClass    TypeExpression // nil if none; carries the super's type args too
	Interfaces    []TypeExpression
	Members       []ClassMember
	Abstract      bool
	Decorators    []*Decorator
}

func (d *ClassDecl) statementNode()      {}
func (d *ClassDecl) Pos() token.Position { return d.Token.Pos }
func (d *ClassDecl) String() string      { return "class " + d.Name + " { ... }" }

// InterfaceDecl is an interface declaration. Multiple same-named
// InterfaceDecls in one scope are merged by the type environment.
type InterfaceDecl struct {
	Token      token.Token
	Name       string
	TypeParams []*TypeParam
	Extends    []TypeExpression
	Body       *RecordType
}

func (d *InterfaceDecl) statementNode()      {}
func (d *InterfaceDecl) Pos() token.Position { return d.Token.Pos }
func (d *InterfaceDecl) String() string      { return "interface " + d.Name + " { ... }" }

// TypeAliasDecl is `type Name<T> = ...;`.
type TypeAliasDecl struct {
	Token      token.Token
	Name       string
	TypeParams []*TypeParam
	Type       TypeExpression
}

func (d *TypeAliasDecl) statementNode()      {}
func (d *TypeAliasDecl) Pos() token.Position { return d.Token.Pos }
func (d *TypeAliasDecl) String() string      { return "type " + d.Name + " = " + d.Type.String() + ";" }

// EnumMember is one `Name = expr` entry of an EnumDecl.
type EnumMember struct {
	Name string
	Init Expression // optional
}

// EnumDecl is `[const] enum Name { ... }`.
type EnumDecl struct {
	Token   token.Token
	Name    string
	Const   bool
	Members []EnumMember
}

func (d *EnumDecl) statementNode()      {}
func (d *EnumDecl) Pos() token.Position { return d.Token.Pos }
func (d *EnumDecl) String() string      { return "enum " + d.Name + " { ... }" }

// NamespaceDecl is `namespace Name { ... }`. Dotted names
// (`namespace A.B.C {...}`) are desugared by the parser into nested
// single-segment NamespaceDecls.
type NamespaceDecl struct {
	Token      token.Token
	Name       string
	Statements []Statement
}

func (d *NamespaceDecl) statementNode()      {}
func (d *NamespaceDecl) Pos() token.Position { return d.Token.Pos }
func (d *NamespaceDecl) String() string      { return "namespace " + d.Name + " { ... }" }

// ImportSpecifier is one named import: `{ a as b }`.
type ImportSpecifier struct {
	Name  string
	Alias string // equal to Name if there is no `as` clause
	Type  bool   // `import type { X }` / inline `import { type X }`
}

// ImportDecl covers named, default, namespace, and import-alias forms.
type ImportDecl struct {
	Token       token.Token
	Default     string // optional default import local name
	Namespace   string // optional `* as ns` local name
	Specifiers  []ImportSpecifier
	ModulePath  string
	TypeOnly    bool // `import type ...`
	// Alias form: `import X = A.B.C;` — AliasName/AliasPath set, all
	// other fields empty.
	AliasName string
	AliasPath []string
}

func (d *ImportDecl) statementNode()      {}
func (d *ImportDecl) Pos() token.Position { return d.Token.Pos }
func (d *ImportDecl) String() string      { return "import ... from \"" + d.ModulePath + "\";" }

// ExportDecl wraps an exported declaration, a named re-export list, or a
// default export expression.
type ExportDecl struct {
	Token      token.Token
	Decl       Statement   // non-nil for `export <decl>`
	Default    Expression  // non-nil for `export default <expr>`
	Specifiers []ImportSpecifier // non-nil for `export { a, b as c }`
	FromModule string            // non-empty for re-exports
	TypeOnly   bool
}

func (d *ExportDecl) statementNode()      {}
func (d *ExportDecl) Pos() token.Position { return d.Token.Pos }
func (d *ExportDecl) String() string      { return "export ..." }

// AmbientKind distinguishes `declare module "x"` from `declare global`.
type AmbientKind int

const (
	AmbientModule AmbientKind = iota
	AmbientGlobal
)

// AmbientDecl is `declare module "name" { ... }` or `declare global {
// ... }`. Multiple AmbientDecls for the same module/global merge in
// lexical file order.
type AmbientDecl struct {
	Token      token.Token
	Kind       AmbientKind
	ModuleName string // empty for AmbientGlobal
	Statements []Statement
}

func (d *AmbientDecl) statementNode()      {}
func (d *AmbientDecl) Pos() token.Position { return d.Token.Pos }
func (d *AmbientDecl) String() string {
	if d.Kind == AmbientGlobal {
		return "declare global { ... }"
	}
	return "declare module \"" + d.ModuleName + "\" { ... }"
}

func joinNames(names []string) string { return strings.Join(names, ".") }
