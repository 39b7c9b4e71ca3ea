// Package checker implements statement/expression checking: it walks a
// parsed ast.Program, resolves every ast.TypeExpression to a canonical
// internal/types.Type via resolve.go, checks assignability via
// compat.go, narrows control flow via narrow.go, and expands generics
// and built-in utility types via infer.go/utility.go.
//
// A single-pass visitor struct carries its pass-local mutable fields
// (current function return type, loop/switch depth, active labels)
// for the duration of one Check call.
package checker

import (
	"github.com/tscore-lang/tscore/internal/ast"
	"github.com/tscore-lang/tscore/internal/diag"
	"github.com/tscore-lang/tscore/internal/envir"
	"github.com/tscore-lang/tscore/internal/token"
	"github.com/tscore-lang/tscore/internal/types"
)

// Checker owns one checking pass: its scope stack, its alias-expansion
// guard, and its compatibility memoization table are all process-
// private to this pass.
type Checker struct {
	bag    *diag.Bag
	file   string
	source string

	global *envir.Scope
	scope  *envir.Scope

	// per-pass visitor state
	currentReturn Type_
	loopDepth     int
	switchDepth   int
	labels        map[string]bool
	inAsync       bool
	inGenerator   bool
	inConstructor bool
	thisType      types.Type

	aliasExpansion map[string]bool
	compatMemo     map[compatKey]bool

	types map[ast.Expression]types.Type // resolved expression types, exposed post-pass
}

// Type_ avoids a naked `types.Type` field name collision with the
// imported package identifier in doc comments; it is just types.Type.
type Type_ = types.Type

type compatKey struct{ expected, actual string }

// New creates a checking pass over a freshly parsed program.
func New(file, source string) *Checker {
	global := envir.NewScope()
	return &Checker{
		bag:            &diag.Bag{},
		file:           file,
		source:         source,
		global:         global,
		scope:          global,
		labels:         make(map[string]bool),
		aliasExpansion: make(map[string]bool),
		compatMemo:     make(map[compatKey]bool),
		types:          make(map[ast.Expression]types.Type),
	}
}

// CheckResult is everything a downstream evaluator or emitter needs
// after a successful pass: the scope holding every final binding, and
// a lookup table from expression node to resolved type. References
// lists the triple-slash reference-path hints the lexer recognized,
// for a caller's module-resolution step to consult.
type CheckResult struct {
	Global      *envir.Scope
	Diagnostics []*diag.Diagnostic
	ExprTypes   map[ast.Expression]types.Type
	References  []string
}

// Check runs a full pass over prog and returns the result plus any
// diagnostics collected along the way. `// @ts-expect-error` comments
// recorded on prog.Directives suppress the single diagnostic expected
// on the following line rather than feeding into the pass itself.
func Check(prog *ast.Program, file, source string) *CheckResult {
	c := New(file, source)
	c.registerBuiltins()
	for _, s := range prog.Statements {
		c.hoistDeclaration(s, c.global)
	}
	for _, s := range prog.Statements {
		c.checkStatement(s)
	}
	diags := applyExpectErrorSuppression(prog.Directives, c.bag.Diagnostics(), file, source)
	var refs []string
	for _, d := range prog.Directives {
		if d.Kind == token.DirectiveReferencePath {
			refs = append(refs, d.Path)
		}
	}
	return &CheckResult{Global: c.global, Diagnostics: diags, ExprTypes: c.types, References: refs}
}

// report records a diagnostic anchored at node's position and returns
// types.Any so the caller can keep checking downstream expressions
// with a best-effort type so one error doesn't cascade into a flood
// of unrelated downstream diagnostics.
func (c *Checker) report(kind diag.Kind, node ast.Node, format string, args ...interface{}) types.Type {
	c.bag.Addf(kind, node.Pos(), c.file, c.source, format, args...)
	return types.Any
}

// pushScope enters a new lexical scope for the duration of fn.
func (c *Checker) pushScope(fn func()) {
	outer := c.scope
	c.scope = envir.NewEnclosedScope(outer)
	fn()
	c.scope = outer
}

// withScope runs fn with scope s active, restoring the previous scope
// afterward; used by narrowing to run a branch against a refined clone
// without mutating the branch-entry scope.
func (c *Checker) withScope(s *envir.Scope, fn func()) {
	outer := c.scope
	c.scope = s
	fn()
	c.scope = outer
}
