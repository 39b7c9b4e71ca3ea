package checker

import (
	"github.com/tscore-lang/tscore/internal/ast"
	"github.com/tscore-lang/tscore/internal/envir"
	"github.com/tscore-lang/tscore/internal/types"
)

// narrowing is the pair of scopes produced by a recognized guard
// expression: then applies inside the truthy branch, els inside the
// falsy one. Both default to the entry scope unchanged when a
// discriminant isn't a recognized guard form.
type narrowing struct {
	then, els *envir.Scope
}

// narrowCondition recognizes one of a handful of guard forms against
// cond, evaluated in entry, and returns the two narrowed clones.
// Equality guards (null/undefined/string literal, typeof) accept either
// operand order; `in` and `instanceof` are recognized only in their
// source order (`"k" in x`, `x instanceof C`).
func (c *Checker) narrowCondition(cond ast.Expression, entry *envir.Scope) narrowing {
	n := narrowing{then: entry, els: entry}

	switch e := cond.(type) {
	case *ast.BinaryExpression:
		if refined, ok := c.narrowBinaryGuard(e, entry); ok {
			return refined
		}
	case *ast.UnaryExpression:
		if e.Operator == "!" {
			inner := c.narrowCondition(e.Operand, entry)
			return narrowing{then: inner.els, els: inner.then}
		}
	case *ast.CallExpression:
		if refined, ok := c.narrowCallGuard(e, entry); ok {
			return refined
		}
	case *ast.Identifier:
		// `if (x)` truthiness narrows null/undefined out of x's type.
		if b, ok := entry.LookupValue(e.Name); ok {
			thenScope := envir.NewEnclosedScope(entry)
			thenScope.DefineValue(e.Name, excludeMembers(b.Type, isNullish), b.Const)
			return narrowing{then: thenScope, els: entry}
		}
	}
	return n
}

func isNullish(t types.Type) bool {
	k := t.Kind()
	return k == types.KindNull || k == types.KindUndefined
}

func (c *Checker) narrowBinaryGuard(e *ast.BinaryExpression, entry *envir.Scope) (narrowing, bool) {
	switch e.Operator {
	case "===", "!==", "==", "!=":
		if refined, ok := c.narrowEquality(e, entry); ok {
			return refined, true
		}
	case "in":
		if name, ok := e.Right.(*ast.Identifier); ok {
			if key, ok := e.Left.(*ast.StringLiteral); ok {
				return c.narrowHasProperty(name.Name, key.Value, entry), true
			}
		}
	case "instanceof":
		if ident, ok := e.Left.(*ast.Identifier); ok {
			if clsIdent, ok := e.Right.(*ast.Identifier); ok {
				return c.narrowInstanceof(ident.Name, clsIdent.Name, entry)
			}
		}
	}
	return narrowing{}, false
}

// narrowInstanceof implements `x instanceof C`: C must resolve to a
// class binding (classes bind as *types.Class values directly, not
// through a constructor function type), and x narrows to the union of
// its members assignable to C in the then-branch, the remainder in
// the else-branch.
func (c *Checker) narrowInstanceof(name, className string, entry *envir.Scope) (narrowing, bool) {
	b, ok := entry.LookupValue(name)
	if !ok {
		return narrowing{}, false
	}
	clsBinding, ok := entry.LookupValue(className)
	if !ok {
		return narrowing{}, false
	}
	cls, ok := clsBinding.Type.(*types.Class)
	if !ok {
		return narrowing{}, false
	}
	eq, neq := splitByInstanceOf(b.Type, cls)
	return mkNarrowing(entry, name, b, eq, neq, false), true
}

func splitByInstanceOf(t types.Type, cls *types.Class) (matching, rest types.Type) {
	expected := &types.Instance{Class: cls}
	members := unionMembers(t)
	var matchMembers, restMembers []types.Type
	for _, m := range members {
		if inst, ok := types.Resolve(m).(*types.Instance); ok && instanceCompatible(expected, inst) {
			matchMembers = append(matchMembers, m)
		} else {
			restMembers = append(restMembers, m)
		}
	}
	if len(matchMembers) == 0 {
		matchMembers = []types.Type{expected}
	}
	return unionOf(matchMembers), unionOf(restMembers)
}

func (c *Checker) narrowEquality(e *ast.BinaryExpression, entry *envir.Scope) (narrowing, bool) {
	negated := e.Operator == "!==" || e.Operator == "!="

	// typeof x === "kind", in either operand order
	typeofSide, kindSide := e.Left, e.Right
	if _, ok := e.Right.(*ast.UnaryExpression); ok {
		typeofSide, kindSide = e.Right, e.Left
	}
	if call, ok := typeofSide.(*ast.UnaryExpression); ok && call.Operator == "typeof" {
		if lit, ok := kindSide.(*ast.StringLiteral); ok {
			if id, ok := call.Operand.(*ast.Identifier); ok {
				bb, ok := entry.LookupValue(id.Name)
				if !ok {
					return narrowing{}, false
				}
				eq, neq := splitByTypeofKind(bb.Type, lit.Value)
				return mkNarrowing(entry, id.Name, bb, eq, neq, negated), true
			}
		}
	}

	ident, other := identAndOther(e.Left, e.Right)
	if ident == nil {
		return narrowing{}, false
	}
	b, ok := entry.LookupValue(ident.Name)
	if !ok {
		return narrowing{}, false
	}

	switch rhs := other.(type) {
	case *ast.NullLiteral:
		eq, neq := splitByKind(b.Type, types.KindNull)
		return mkNarrowing(entry, ident.Name, b, eq, neq, negated), true
	case *ast.UndefinedLiteral:
		eq, neq := splitByKind(b.Type, types.KindUndefined)
		return mkNarrowing(entry, ident.Name, b, eq, neq, negated), true
	case *ast.StringLiteral:
		eq, neq := splitByLiteral(b.Type, types.LiteralValue{IsString: true, Str: rhs.Value})
		return mkNarrowing(entry, ident.Name, b, eq, neq, negated), true
	}
	return narrowing{}, false
}

func identAndOther(a, b ast.Expression) (*ast.Identifier, ast.Expression) {
	if id, ok := a.(*ast.Identifier); ok {
		return id, b
	}
	if id, ok := b.(*ast.Identifier); ok {
		return id, a
	}
	return nil, nil
}

func mkNarrowing(entry *envir.Scope, name string, b *envir.ValueBinding, eq, neq types.Type, negated bool) narrowing {
	thenScope := envir.NewEnclosedScope(entry)
	elseScope := envir.NewEnclosedScope(entry)
	if negated {
		eq, neq = neq, eq
	}
	thenScope.DefineValue(name, eq, b.Const)
	elseScope.DefineValue(name, neq, b.Const)
	return narrowing{then: thenScope, els: elseScope}
}

func splitByKind(t types.Type, kind types.Kind) (matching, rest types.Type) {
	matching, rest = types.Never, types.Never
	members := unionMembers(t)
	var restMembers, matchMembers []types.Type
	for _, m := range members {
		if types.Resolve(m).Kind() == kind {
			matchMembers = append(matchMembers, m)
		} else {
			restMembers = append(restMembers, m)
		}
	}
	if len(matchMembers) == 0 {
		switch kind {
		case types.KindNull:
			matchMembers = []types.Type{types.Null}
		case types.KindUndefined:
			matchMembers = []types.Type{types.Undefined}
		}
	}
	return unionOf(matchMembers), unionOf(restMembers)
}

func splitByLiteral(t types.Type, val types.LiteralValue) (matching, rest types.Type) {
	members := unionMembers(t)
	var restMembers, matchMembers []types.Type
	for _, m := range members {
		if lit, ok := types.Resolve(m).(*types.Literal); ok && sameLiteralValue(lit.Value, val) {
			matchMembers = append(matchMembers, m)
		} else {
			restMembers = append(restMembers, m)
		}
	}
	if len(matchMembers) == 0 {
		matchMembers = []types.Type{&types.Literal{Value: val, Widened: types.String}}
	}
	return unionOf(matchMembers), unionOf(restMembers)
}

func sameLiteralValue(a, b types.LiteralValue) bool {
	return a.IsString == b.IsString && a.Str == b.Str && a.IsNumber == b.IsNumber && a.Num == b.Num && a.IsBool == b.IsBool && a.Bool == b.Bool
}

func splitByTypeofKind(t types.Type, kind string) (matching, rest types.Type) {
	var want types.Kind
	switch kind {
	case "string":
		want = types.KindString
	case "number":
		want = types.KindNumber
	case "boolean":
		want = types.KindBoolean
	case "undefined":
		want = types.KindUndefined
	case "bigint":
		want = types.KindBigInt
	case "symbol":
		want = types.KindSymbol
	default:
		want = types.KindRecord
	}
	return splitByKindWidened(t, want)
}

func splitByKindWidened(t types.Type, want types.Kind) (matching, rest types.Type) {
	members := unionMembers(t)
	var restMembers, matchMembers []types.Type
	for _, m := range members {
		k := types.Widen(types.Resolve(m)).Kind()
		if k == want {
			matchMembers = append(matchMembers, m)
		} else {
			restMembers = append(restMembers, m)
		}
	}
	return unionOf(matchMembers), unionOf(restMembers)
}

func unionMembers(t types.Type) []types.Type {
	if u, ok := types.Resolve(t).(*types.Union); ok {
		return u.Members
	}
	return []types.Type{t}
}

func unionOf(members []types.Type) types.Type {
	if len(members) == 0 {
		return types.Never
	}
	if len(members) == 1 {
		return members[0]
	}
	return types.Canonicalize(&types.Union{Members: members})
}

// narrowHasProperty implements the `"k" in x` guard: keep discriminated-
// union members that declare property key.
func (c *Checker) narrowHasProperty(name, key string, entry *envir.Scope) narrowing {
	b, ok := entry.LookupValue(name)
	if !ok {
		return narrowing{then: entry, els: entry}
	}
	members := unionMembers(b.Type)
	var has, without []types.Type
	for _, m := range members {
		if rec, ok := asRecordLike(types.Resolve(m)); ok {
			if _, found := rec.Lookup(key); found {
				has = append(has, m)
				continue
			}
		}
		without = append(without, m)
	}
	return mkNarrowing(entry, name, b, unionOf(has), unionOf(without), false)
}

// narrowCallGuard covers call-shaped guards (`in` and `instanceof` are
// binary operators, handled in narrowBinaryGuard): `Array.isArray(x)`
// and user-defined type-guard calls whose signature carries a
// non-asserting TypePredicate. Assertion predicates produce no
// narrowing here.
func (c *Checker) narrowCallGuard(call *ast.CallExpression, entry *envir.Scope) (narrowing, bool) {
	if len(call.Args) == 0 {
		return narrowing{}, false
	}
	ident, ok := call.Args[0].(*ast.Identifier)
	if !ok {
		return narrowing{}, false
	}
	fnType := c.inferCalleeSignature(call.Callee, entry)
	if fnType == nil || len(fnType.Signatures) == 0 || fnType.Signatures[0].Predicate == nil {
		return narrowing{}, false
	}
	pred := fnType.Signatures[0].Predicate
	b, ok := entry.LookupValue(ident.Name)
	if !ok || pred.Asserts {
		return narrowing{}, false
	}
	neq := excludeMembers(b.Type, func(m types.Type) bool { return c.checkCompatible(pred.Type, m) })
	return mkNarrowing(entry, ident.Name, b, pred.Type, neq, false), true
}

func (c *Checker) inferCalleeSignature(callee ast.Expression, scope *envir.Scope) *types.Function {
	switch e := callee.(type) {
	case *ast.Identifier:
		if b, ok := scope.LookupValue(e.Name); ok {
			if fn, ok := types.Resolve(b.Type).(*types.Function); ok {
				return fn
			}
		}
	case *ast.MemberExpression:
		objType := c.checkExpression(e.Object)
		if rec, ok := asRecordLike(types.Resolve(objType)); ok {
			if p, ok := rec.Lookup(e.Property); ok {
				if fn, ok := types.Resolve(p.Type).(*types.Function); ok {
					return fn
				}
			}
		}
	}
	return nil
}
