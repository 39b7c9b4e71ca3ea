package checker

import (
	"github.com/tscore-lang/tscore/internal/ast"
	"github.com/tscore-lang/tscore/internal/types"
)

// resolveUtilityType recognizes one of the built-in generic utility
// types named directly and expands it eagerly against
// its type arguments, rather than leaving it an opaque Generic the way
// a user-defined alias would be. Returns nil when name isn't a
// recognized intrinsic, so the caller falls through to ordinary scope
// lookup.
func (c *Checker) resolveUtilityType(t *ast.NamedType) types.Type {
	args := make([]types.Type, len(t.TypeArgs))
	for i, a := range t.TypeArgs {
		args[i] = c.resolveType(a)
	}
	switch t.Name {
	case "Partial":
		return mapRecordProps(arg(args, 0), func(p *types.Property) { p.Optional = true })
	case "Required":
		return mapRecordProps(arg(args, 0), func(p *types.Property) { p.Optional = false })
	case "Readonly":
		return mapRecordProps(arg(args, 0), func(p *types.Property) { p.Readonly = true })
	case "Record":
		return expandRecordOf(arg(args, 0), arg(args, 1))
	case "Pick":
		return pickOmit(arg(args, 0), arg(args, 1), true)
	case "Omit":
		return pickOmit(arg(args, 0), arg(args, 1), false)
	case "NonNullable":
		return excludeMembers(arg(args, 0), func(m types.Type) bool {
			k := types.Resolve(m).Kind()
			return k == types.KindNull || k == types.KindUndefined
		})
	case "Extract":
		return filterUnion(arg(args, 0), arg(args, 1), true)
	case "Exclude":
		return filterUnion(arg(args, 0), arg(args, 1), false)
	case "ReturnType":
		if fn, ok := types.Resolve(arg(args, 0)).(*types.Function); ok && len(fn.Signatures) > 0 {
			return fn.Signatures[0].Return
		}
		return types.Unknown
	case "Parameters":
		if fn, ok := types.Resolve(arg(args, 0)).(*types.Function); ok && len(fn.Signatures) > 0 {
			return paramsTuple(fn.Signatures[0].Params)
		}
		return &types.Tuple{}
	case "ConstructorParameters":
		if cls, ok := types.Resolve(arg(args, 0)).(*types.Class); ok && len(cls.Constructors) > 0 {
			return paramsTuple(cls.Constructors[0].Params)
		}
		return &types.Tuple{}
	case "InstanceType":
		if cls, ok := types.Resolve(arg(args, 0)).(*types.Class); ok {
			return &types.Instance{Class: cls}
		}
		return types.Unknown
	case "ThisType":
		return arg(args, 0)
	case "Awaited":
		return awaited(arg(args, 0))
	case "Uppercase":
		return applyStringIntrinsic(arg(args, 0), types.IntrinsicUppercase)
	case "Lowercase":
		return applyStringIntrinsic(arg(args, 0), types.IntrinsicLowercase)
	case "Capitalize":
		return applyStringIntrinsic(arg(args, 0), types.IntrinsicCapitalize)
	case "Uncapitalize":
		return applyStringIntrinsic(arg(args, 0), types.IntrinsicUncapitalize)
	default:
		return nil
	}
}

func arg(args []types.Type, i int) types.Type {
	if i < len(args) {
		return args[i]
	}
	return types.Unknown
}

func mapRecordProps(t types.Type, mutate func(*types.Property)) types.Type {
	rec, ok := types.Resolve(t).(*types.Record)
	if !ok {
		return t
	}
	out := &types.Record{Index: rec.Index, CallSigs: rec.CallSigs, ConstructSigs: rec.ConstructSigs}
	for _, p := range rec.Properties {
		mutate(&p)
		out.Properties = append(out.Properties, p)
	}
	return out
}

func expandRecordOf(keys, value types.Type) types.Type {
	rec := &types.Record{}
	for _, k := range literalKeyStrings(keys) {
		rec.Properties = append(rec.Properties, types.Property{Name: k, Type: value})
	}
	if len(rec.Properties) == 0 {
		rec.Index = append(rec.Index, types.IndexSignature{KeyType: types.String, Value: value})
	}
	return rec
}

func pickOmit(t, keys types.Type, pick bool) types.Type {
	rec, ok := types.Resolve(t).(*types.Record)
	if !ok {
		return t
	}
	wanted := map[string]bool{}
	for _, k := range literalKeyStrings(keys) {
		wanted[k] = true
	}
	out := &types.Record{Index: rec.Index}
	for _, p := range rec.Properties {
		if wanted[p.Name] == pick {
			out.Properties = append(out.Properties, p)
		}
	}
	return out
}

func literalKeyStrings(t types.Type) []string {
	switch v := types.Resolve(t).(type) {
	case *types.Literal:
		if v.Value.IsString {
			return []string{v.Value.Str}
		}
	case *types.Union:
		var out []string
		for _, m := range v.Members {
			out = append(out, literalKeyStrings(m)...)
		}
		return out
	}
	return nil
}

func excludeMembers(t types.Type, drop func(types.Type) bool) types.Type {
	u, ok := types.Resolve(t).(*types.Union)
	if !ok {
		if drop(t) {
			return types.Never
		}
		return t
	}
	var out []types.Type
	for _, m := range u.Members {
		if !drop(m) {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return types.Never
	}
	return types.Canonicalize(&types.Union{Members: out})
}

func filterUnion(t, pattern types.Type, keep bool) types.Type {
	matches := func(m types.Type) bool { return IsCompatible(pattern, m) }
	if keep {
		return excludeMembers(t, func(m types.Type) bool { return !matches(m) })
	}
	return excludeMembers(t, matches)
}

func paramsTuple(params []types.Param) *types.Tuple {
	elems := make([]types.TupleElement, len(params))
	for i, p := range params {
		elems[i] = types.TupleElement{Type: p.Type, Optional: p.Optional, Rest: p.Rest, Label: p.Name}
	}
	return &types.Tuple{Elements: elems}
}

// awaited recursively unwraps Promise<T> instances, matching the
// `Awaited<T>` intrinsic's recursive-unwrap behavior. A type counts as a
// Promise when it is an instance of a class named "Promise" with at
// least one type argument; other thenables are returned unchanged, and
// unwrapping stops after 16 levels.
func awaited(t types.Type) types.Type {
	for depth := 0; depth < 16; depth++ {
		rec, ok := types.Resolve(t).(*types.Instance)
		if !ok || rec.Class == nil || rec.Class.Name != "Promise" || len(rec.TypeArgs) == 0 {
			return t
		}
		t = rec.TypeArgs[0]
	}
	return t
}

func applyStringIntrinsic(t types.Type, op types.IntrinsicStringOp) types.Type {
	switch v := types.Resolve(t).(type) {
	case *types.Literal:
		if v.Value.IsString {
			return &types.Literal{Value: types.LiteralValue{IsString: true, Str: types.ApplyIntrinsicString(op, v.Value.Str)}, Widened: types.String}
		}
		return t
	case *types.Union:
		members := make([]types.Type, len(v.Members))
		for i, m := range v.Members {
			members[i] = applyStringIntrinsic(m, op)
		}
		return types.Canonicalize(&types.Union{Members: members})
	default:
		return t
	}
}

// evalKeyof reduces `keyof T` for a record T to a union of its own
// property-name literal types plus its index-signature key types (never
// when it has neither). A type-parameter T leaves the keyof unevaluated
// (IsCompatible then compares it as `string | number | symbol`); any
// other T yields `string | number | symbol`.
func evalKeyof(k *types.Keyof) types.Type {
	switch v := types.Resolve(k.Operand).(type) {
	case *types.Record:
		var members []types.Type
		for _, p := range v.Properties {
			members = append(members, &types.Literal{Value: types.LiteralValue{IsString: true, Str: p.Name}, Widened: types.String})
		}
		for _, idx := range v.Index {
			members = append(members, idx.KeyType)
		}
		if len(members) == 0 {
			return types.Never
		}
		return types.Canonicalize(&types.Union{Members: members})
	case *types.TypeParam:
		return k
	default:
		return &types.Union{Members: []types.Type{types.String, types.Number, types.Symbol}}
	}
}

// evalIndexedAccess reduces `T[K]` to the property type(s) selected by
// K, distributing over a union of key literals.
func evalIndexedAccess(object, index types.Type) types.Type {
	rec, ok := types.Resolve(object).(*types.Record)
	if !ok {
		return &types.IndexedAccess{Object: object, Index: index}
	}
	keys := literalKeyStrings(index)
	if keys == nil {
		if lit, ok := index.(*types.Literal); ok && lit.Value.IsString {
			keys = []string{lit.Value.Str}
		}
	}
	if len(keys) == 0 {
		return types.Unknown
	}
	var results []types.Type
	for _, k := range keys {
		if p, ok := rec.Lookup(k); ok {
			results = append(results, p.Type)
			continue
		}
		for _, idx := range rec.Index {
			results = append(results, idx.Value)
		}
	}
	if len(results) == 0 {
		return types.Unknown
	}
	if len(results) == 1 {
		return results[0]
	}
	return types.Canonicalize(&types.Union{Members: results})
}

// evalConditional decides a Conditional's branch once Check is
// concrete enough, running the infer-unification pass. Bare
// type-parameter checks distribute over unions the same way.
func evalConditional(cond *types.Conditional) types.Type {
	if tp, ok := cond.Check.(*types.TypeParam); ok {
		if u, ok := types.Resolve(tp).(*types.Union); ok {
			var branches []types.Type
			for _, m := range u.Members {
				branches = append(branches, evalConditional(&types.Conditional{Check: m, Extends: cond.Extends, InferParams: cond.InferParams, True: cond.True, False: cond.False}))
			}
			return types.Canonicalize(&types.Union{Members: branches})
		}
	}
	bindings := map[string]types.Type{}
	if !unify(cond.Extends, cond.Check, inferNameSet(cond.InferParams), bindings) {
		if IsCompatible(cond.Extends, cond.Check) {
			return cond.True
		}
		return cond.False
	}
	if IsCompatible(cond.Extends, cond.Check) {
		return types.Substitute(cond.True, bindings)
	}
	return cond.False
}

func inferNameSet(params []*types.TypeParam) map[string]bool {
	out := make(map[string]bool, len(params))
	for _, p := range params {
		out[p.Name] = true
	}
	return out
}

// unify attempts to bind every name in infer from positions within
// pattern against concrete, producing bindings as a side effect.
// Reports whether pattern actually contains an infer placeholder (so
// callers can distinguish "nothing to infer" from "no match").
func unify(pattern, concrete types.Type, infer map[string]bool, bindings map[string]types.Type) bool {
	found := false
	switch p := pattern.(type) {
	case *types.TypeParam:
		if infer[p.Name] {
			bindings[p.Name] = concrete
			return true
		}
		return false
	case *types.Array:
		if c, ok := concrete.(*types.Array); ok {
			return unify(p.Element, c.Element, infer, bindings)
		}
	case *types.Tuple:
		if c, ok := concrete.(*types.Tuple); ok {
			for i, e := range p.Elements {
				if i < len(c.Elements) {
					found = unify(e.Type, c.Elements[i].Type, infer, bindings) || found
				}
			}
		}
	case *types.Function:
		if c, ok := concrete.(*types.Function); ok && len(p.Signatures) > 0 && len(c.Signatures) > 0 {
			ps, cs := p.Signatures[0], c.Signatures[0]
			found = unify(ps.Return, cs.Return, infer, bindings) || found
			for i, pp := range ps.Params {
				if i < len(cs.Params) {
					found = unify(pp.Type, cs.Params[i].Type, infer, bindings) || found
				}
			}
		}
	}
	return found
}
