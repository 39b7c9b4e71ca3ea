package checker

import (
	"github.com/tscore-lang/tscore/internal/ast"
	"github.com/tscore-lang/tscore/internal/diag"
	"github.com/tscore-lang/tscore/internal/types"
)

// checkCallExpression resolves the callee's signature(s), runs
// bidirectional type-argument inference when the call omits explicit
// type arguments, checks argument compatibility against the (possibly
// instantiated) parameter types, and reports an assertion-function's
// narrowing effect as a statement-level side effect rather than a
// branch-only one.
func (c *Checker) checkCallExpression(e *ast.CallExpression) types.Type {
	calleeType := c.checkExpression(e.Callee)
	if e.Optional {
		calleeType = excludeMembers(calleeType, isNullish)
	}
	fn, ok := types.Resolve(calleeType).(*types.Function)
	if !ok {
		if calleeType.Kind() == types.KindAny || calleeType.Kind() == types.KindUnknown {
			for _, a := range e.Args {
				c.checkExpression(a)
			}
			return types.Any
		}
		return c.report(diag.TypeMismatch, e, "type %s is not callable", calleeType.String())
	}

	sig, ok := c.resolveOverload(fn, e)
	if !ok {
		if len(fn.Signatures) == 1 {
			// not actually overloaded: there is only one candidate, so
			// report exactly which argument(s) failed to match instead
			// of the generic "no overload" diagnostic.
			sig = c.instantiateCallSignature(fn.Signatures[0], e)
			c.reportArgumentMismatches(sig, e)
			c.applyAssertionEffect(sig, e)
			return sig.Return
		}
		return c.report(diag.ArityError, e, "no overload matches this call")
	}

	c.applyAssertionEffect(sig, e)
	return sig.Return
}

// resolveOverload picks the first signature (instantiated with
// explicit or inferred type arguments) whose parameters accept every
// argument; overloaded functions declare more than one Signature. It
// reports no diagnostics itself: a false result only means the caller
// needs to fall back (to a generic "no overload matches" diagnostic
// for true overloads, or to reportArgumentMismatches for the
// single-signature case).
func (c *Checker) resolveOverload(fn *types.Function, e *ast.CallExpression) (types.Signature, bool) {
	for _, sig := range fn.Signatures {
		instantiated := c.instantiateCallSignature(sig, e)
		if c.argsMatch(instantiated, e) {
			return instantiated, true
		}
	}
	return types.Signature{}, false
}

// reportArgumentMismatches re-walks a single candidate signature the
// way argsMatch silently does, reporting a concrete diagnostic at
// whichever arity or parameter check failed. Used only when a call's
// callee has exactly one signature, so there is no alternative
// overload left to blame the mismatch on.
func (c *Checker) reportArgumentMismatches(sig types.Signature, e *ast.CallExpression) {
	requiredParams := 0
	for _, p := range sig.Params {
		if !p.Optional && !p.Rest {
			requiredParams++
		}
	}
	if len(e.Args) < requiredParams {
		c.report(diag.ArityError, e, "expected at least %d argument(s), got %d", requiredParams, len(e.Args))
		return
	}
	hasRest := len(sig.Params) > 0 && sig.Params[len(sig.Params)-1].Rest
	if !hasRest && len(e.Args) > len(sig.Params) {
		c.report(diag.ArityError, e, "expected at most %d argument(s), got %d", len(sig.Params), len(e.Args))
		return
	}
	for i, a := range e.Args {
		var pt types.Type = types.Any
		switch {
		case i < len(sig.Params):
			pt = sig.Params[i].Type
		case hasRest:
			pt = sig.Params[len(sig.Params)-1].Type
		}
		actual := c.checkExpressionContextual(a, pt)
		if !c.checkCompatible(pt, actual) {
			c.report(diag.TypeMismatch, a, "cannot assign %s to parameter of type %s", actual.String(), pt.String())
		}
	}
}

func (c *Checker) instantiateCallSignature(sig types.Signature, e *ast.CallExpression) types.Signature {
	if len(sig.TypeParams) == 0 {
		return sig
	}
	env := map[string]types.Type{}
	if len(e.TypeArgs) > 0 {
		for i, tp := range sig.TypeParams {
			if i < len(e.TypeArgs) {
				env[tp.Name] = c.resolveType(e.TypeArgs[i])
			}
		}
	} else {
		env = c.inferTypeArguments(sig, e.Args)
	}
	for _, tp := range sig.TypeParams {
		if _, bound := env[tp.Name]; !bound {
			if tp.Default != nil {
				env[tp.Name] = tp.Default
			} else {
				env[tp.Name] = types.Unknown
			}
		}
	}
	params := make([]types.Param, len(sig.Params))
	for i, p := range sig.Params {
		params[i] = types.Param{Name: p.Name, Type: types.Substitute(p.Type, env), Optional: p.Optional, Rest: p.Rest}
	}
	return types.Signature{Params: params, Return: types.Substitute(sig.Return, env), ThisType: types.Substitute(sig.ThisType, env), Predicate: sig.Predicate}
}

// inferTypeArguments implements per-parameter candidate-merge
// inference: each argument position yields a candidate
// for the type parameters appearing in its declared parameter type;
// multiple candidates for the same parameter merge as their common
// union, then get checked against the parameter's constraint.
func (c *Checker) inferTypeArguments(sig types.Signature, args []ast.Expression) map[string]types.Type {
	names := map[string]bool{}
	for _, tp := range sig.TypeParams {
		names[tp.Name] = true
	}
	candidates := map[string][]types.Type{}
	for i, p := range sig.Params {
		if i >= len(args) {
			break
		}
		argExpr := args[i]
		if spread, ok := argExpr.(*ast.SpreadElement); ok {
			argExpr = spread.Value
		}
		actual := c.checkExpression(argExpr)
		bindings := map[string]types.Type{}
		unify(p.Type, actual, names, bindings)
		for name, t := range bindings {
			candidates[name] = append(candidates[name], t)
		}
	}
	env := map[string]types.Type{}
	for _, tp := range sig.TypeParams {
		cs := candidates[tp.Name]
		if len(cs) == 0 {
			continue
		}
		merged := unionOf(cs)
		if tp.Constraint != nil && !c.checkCompatible(tp.Constraint, merged) {
			merged = tp.Constraint
		}
		env[tp.Name] = merged
	}
	return env
}

func (c *Checker) argsMatch(sig types.Signature, e *ast.CallExpression) bool {
	requiredParams := 0
	for _, p := range sig.Params {
		if !p.Optional && !p.Rest {
			requiredParams++
		}
	}
	if len(e.Args) < requiredParams {
		return false
	}
	hasRest := len(sig.Params) > 0 && sig.Params[len(sig.Params)-1].Rest
	if !hasRest && len(e.Args) > len(sig.Params) {
		return false
	}
	for i, a := range e.Args {
		var pt types.Type = types.Any
		switch {
		case i < len(sig.Params):
			pt = sig.Params[i].Type
		case hasRest:
			pt = sig.Params[len(sig.Params)-1].Type
		}
		actual := c.checkExpressionContextual(a, pt)
		if !c.checkCompatible(pt, actual) {
			return false
		}
	}
	return true
}

// applyAssertionEffect narrows the argument's binding in the current
// scope when sig's return type is an `asserts x` / `asserts x is T`
// predicate.
func (c *Checker) applyAssertionEffect(sig types.Signature, e *ast.CallExpression) {
	if sig.Predicate == nil || !sig.Predicate.Asserts || len(e.Args) == 0 {
		return
	}
	ident, ok := e.Args[0].(*ast.Identifier)
	if !ok {
		return
	}
	b, ok := c.scope.LookupValue(ident.Name)
	if !ok {
		return
	}
	if sig.Predicate.Type != nil {
		c.scope.DefineValue(ident.Name, sig.Predicate.Type, b.Const)
		return
	}
	c.scope.DefineValue(ident.Name, excludeMembers(b.Type, isNullish), b.Const)
}
