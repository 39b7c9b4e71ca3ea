// Package envir implements the lexical scope chain the checker walks
// while resolving identifiers, type names, and module members. It
// follows the shape of a runtime environment's scope chain, adapted
// from single-namespace value storage to multiple parallel binding
// namespaces (values, types, namespaces) and declaration merging,
// since TypeScript keeps a value namespace and a type namespace
// distinct and lets interfaces/namespaces/ambient modules merge
// across repeated declarations.
//
// Identifier lookup here is case-sensitive: JavaScript and TypeScript
// identifiers are case-sensitive, so a plain Go map replaces the
// case-folding map a case-insensitive source language would need (see
// DESIGN.md for the dropped-dependency note).
package envir

import (
	"fmt"

	"github.com/tscore-lang/tscore/internal/types"
)

// ValueBinding is one entry in the value namespace: `let`/`const`/`var`
// bindings, function declarations, class constructors (as values), and
// enum objects.
type ValueBinding struct {
	Name     string
	Type     types.Type
	Const    bool
	Declared bool // true once past its declaration point (TDZ tracking for let/const)
}

// TypeBinding is one entry in the type namespace: type aliases,
// interfaces, classes (as types), enums (as types), and type
// parameters.
type TypeBinding struct {
	Name string
	Type types.Type
}

// NamespaceBinding is a `namespace`/`module` member: itself a nested
// Scope containing further exported bindings.
type NamespaceBinding struct {
	Name  string
	Scope *Scope
}

// Scope is one lexical block: function bodies, class bodies, module
// top-levels, `{}`-delimited blocks, and `for`/`catch` binding scopes
// each get their own.
type Scope struct {
	parent     *Scope
	values     map[string]*ValueBinding
	typeNS     map[string]*TypeBinding
	namespaces map[string]*NamespaceBinding
	labels     map[string]bool
}

// NewScope creates a new root-level scope with no enclosing scope.
func NewScope() *Scope {
	return &Scope{
		values:     make(map[string]*ValueBinding),
		typeNS:     make(map[string]*TypeBinding),
		namespaces: make(map[string]*NamespaceBinding),
		labels:     make(map[string]bool),
	}
}

// NewEnclosedScope creates a scope nested inside parent.
func NewEnclosedScope(parent *Scope) *Scope {
	s := NewScope()
	s.parent = parent
	return s
}

// Parent returns the enclosing scope, or nil at the root.
func (s *Scope) Parent() *Scope { return s.parent }

// DefineValue introduces name into the current scope's value
// namespace, overwriting any prior binding of the same name in this
// scope (shadowing an outer one is always permitted; redeclaring
// within the same scope is the checker's concern to flag, not
// Scope's).
func (s *Scope) DefineValue(name string, t types.Type, isConst bool) {
	s.values[name] = &ValueBinding{Name: name, Type: t, Const: isConst, Declared: true}
}

// DefineValueUndeclared reserves name in the value namespace ahead of
// its declaration point, so a same-scope reference before the
// statement can be diagnosed as a temporal-dead-zone access instead of
// silently resolving to an outer binding.
func (s *Scope) DefineValueUndeclared(name string, t types.Type, isConst bool) {
	s.values[name] = &ValueBinding{Name: name, Type: t, Const: isConst, Declared: false}
}

// MarkDeclared flips a previously-reserved binding to declared, once
// its `let`/`const`/`class` statement has been fully processed.
func (s *Scope) MarkDeclared(name string) {
	if b, ok := s.values[name]; ok {
		b.Declared = true
	}
}

// LookupValue searches the current scope and then each enclosing scope
// in turn for a value binding.
func (s *Scope) LookupValue(name string) (*ValueBinding, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if b, ok := sc.values[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// LookupValueLocal restricts the search to the current scope only,
// used to detect illegal re-declarations.
func (s *Scope) LookupValueLocal(name string) (*ValueBinding, bool) {
	b, ok := s.values[name]
	return b, ok
}

// DefineType introduces name into the type namespace. Interfaces merge
// instead of overwrite: calling DefineType again with an *types.Interface
// of the same name folds the new members into the existing one.
func (s *Scope) DefineType(name string, t types.Type) error {
	existing, ok := s.typeNS[name]
	if !ok {
		s.typeNS[name] = &TypeBinding{Name: name, Type: t}
		return nil
	}
	newIface, isNewIface := t.(*types.Interface)
	oldIface, isOldIface := existing.Type.(*types.Interface)
	if isNewIface && isOldIface {
		return oldIface.Merge(newIface)
	}
	return fmt.Errorf("cannot redeclare block-scoped type %q", name)
}

// LookupType searches the current scope and then each enclosing scope
// for a type-namespace binding.
func (s *Scope) LookupType(name string) (*TypeBinding, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if b, ok := sc.typeNS[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// DefineNamespace introduces or merges a namespace/ambient-module
// binding. Re-opening a namespace of the same name in the same scope
// (or a `declare module "x" {}` reopened elsewhere in the same file)
// merges into the existing nested Scope rather than replacing it — the
// Open Question on merge order is resolved in favor of lexical file
// order (see DESIGN.md).
func (s *Scope) DefineNamespace(name string) *Scope {
	if existing, ok := s.namespaces[name]; ok {
		return existing.Scope
	}
	nested := NewEnclosedScope(s)
	s.namespaces[name] = &NamespaceBinding{Name: name, Scope: nested}
	return nested
}

// LookupNamespace searches the current scope and then each enclosing
// scope for a namespace binding.
func (s *Scope) LookupNamespace(name string) (*Scope, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if b, ok := sc.namespaces[name]; ok {
			return b.Scope, true
		}
	}
	return nil, false
}

// DefineLabel registers a statement label for break/continue target
// resolution in the current function scope.
func (s *Scope) DefineLabel(name string) { s.labels[name] = true }

// HasLabel searches the current scope chain for a label.
func (s *Scope) HasLabel(name string) bool {
	for sc := s; sc != nil; sc = sc.parent {
		if sc.labels[name] {
			return true
		}
	}
	return false
}
