package checker

import "github.com/tscore-lang/tscore/internal/types"

// checkCompatible is the per-pass memoized entry point used by the
// rest of the checker: it caches the (expected, actual) verdict in
// c.compatMemo so a pair checked once (e.g. a widely-reused parameter
// or return type) is not re-walked structurally on every call site
// that happens to compare it again within the same pass.
func (c *Checker) checkCompatible(expected, actual types.Type) bool {
	if expected == nil || actual == nil {
		return true
	}
	key := compatKey{expected.String(), actual.String()}
	if v, ok := c.compatMemo[key]; ok {
		return v
	}
	v := IsCompatible(expected, actual)
	c.compatMemo[key] = v
	return v
}

// IsCompatible implements the central assignability relation: "a value
// of type actual can be used where expected is required". Rules are
// checked in order of precedence; earlier rules win over later, more
// general ones.
func IsCompatible(expected, actual types.Type) bool {
	if expected == nil || actual == nil {
		return true
	}

	// 1. any on either side.
	if expected.Kind() == types.KindAny || actual.Kind() == types.KindAny {
		return true
	}

	// 2. recursive-alias placeholder: expand one level and recur.
	if ap, ok := expected.(*types.AliasPlaceholder); ok {
		if ap.Body == nil {
			return true
		}
		return IsCompatible(ap.Body, actual)
	}
	if ap, ok := actual.(*types.AliasPlaceholder); ok {
		if ap.Body == nil {
			return true
		}
		return IsCompatible(expected, ap.Body)
	}

	// 3. never is a subtype of everything; only never is a subtype of never.
	if actual.Kind() == types.KindNever {
		return true
	}
	if expected.Kind() == types.KindNever {
		return false
	}

	// 4. unknown is a supertype of everything; only unknown/any are subtypes of unknown.
	if expected.Kind() == types.KindUnknown {
		return true
	}
	if actual.Kind() == types.KindUnknown {
		return false
	}

	// 5. type predicate / assertion predicate expected.
	if pred, ok := expected.(*types.TypePredicate); ok {
		if pred.Asserts {
			k := actual.Kind()
			return k == types.KindVoid || k == types.KindNever
		}
		k := actual.Kind()
		if k == types.KindBoolean {
			return true
		}
		if lit, ok := actual.(*types.Literal); ok {
			return lit.Value.IsBool
		}
		return false
	}

	// 6. type parameters compare by name; otherwise fall back to constraint.
	if ep, ok := expected.(*types.TypeParam); ok {
		if ap, ok := actual.(*types.TypeParam); ok {
			if ep.Name == ap.Name {
				return true
			}
		}
		if ep.Constraint != nil {
			return IsCompatible(ep.Constraint, actual)
		}
		return true
	}
	if ap, ok := actual.(*types.TypeParam); ok {
		if ap.Constraint != nil {
			return IsCompatible(expected, ap.Constraint)
		}
		return expected.Kind() == types.KindUnknown || expected.Kind() == types.KindAny
	}

	// 7. null/undefined only assignable to themselves or a union containing them.
	if actual.Kind() == types.KindNull || actual.Kind() == types.KindUndefined {
		if expected.Kind() == actual.Kind() {
			return true
		}
		if u, ok := expected.(*types.Union); ok {
			for _, m := range u.Members {
				if IsCompatible(m, actual) {
					return true
				}
			}
		}
		return false
	}

	// 8. literal -> primitive widening is one-way.
	if lit, ok := actual.(*types.Literal); ok {
		if isSameLiteralKindPrimitive(expected, lit) {
			return true
		}
		if elit, ok := expected.(*types.Literal); ok {
			return literalsEqual(elit, lit)
		}
	}

	// 9. template-literal expected + string-literal actual -> pattern match.
	if tmpl, ok := expected.(*types.TemplateLiteral); ok {
		if lit, ok := actual.(*types.Literal); ok && lit.Value.IsString {
			ok2, err := types.Matches(tmpl, lit.Value.Str)
			return err == nil && ok2
		}
	}

	// 10. union handling.
	if eu, ok := expected.(*types.Union); ok {
		if au, ok := actual.(*types.Union); ok {
			for _, am := range au.Members {
				if !isCompatibleWithAny(eu.Members, am) {
					return false
				}
			}
			return true
		}
		return isCompatibleWithAny(eu.Members, actual)
	}
	if au, ok := actual.(*types.Union); ok {
		for _, am := range au.Members {
			if !IsCompatible(expected, am) {
				return false
			}
		}
		return true
	}

	// 11. intersection handling.
	if ei, ok := expected.(*types.Intersection); ok {
		for _, em := range ei.Members {
			if !IsCompatible(em, actual) {
				return false
			}
		}
		return true
	}
	if ai, ok := actual.(*types.Intersection); ok {
		for _, am := range ai.Members {
			if IsCompatible(expected, am) {
				return true
			}
		}
		return false
	}

	// 12. keyof / mapped / indexed-access / conditional: evaluate one step and recur.
	// A `keyof T` that stays unevaluated (T a type parameter) compares as
	// string | number | symbol.
	if k, ok := expected.(*types.Keyof); ok {
		if ev := evalKeyof(k); ev != types.Type(k) {
			return IsCompatible(ev, actual)
		}
		return IsCompatible(&types.Union{Members: []types.Type{types.String, types.Number, types.Symbol}}, actual)
	}
	if k, ok := actual.(*types.Keyof); ok {
		if ev := evalKeyof(k); ev != types.Type(k) {
			return IsCompatible(expected, ev)
		}
		return IsCompatible(expected, &types.Union{Members: []types.Type{types.String, types.Number, types.Symbol}})
	}
	if ia, ok := expected.(*types.IndexedAccess); ok {
		return IsCompatible(evalIndexedAccess(ia.Object, ia.Index), actual)
	}
	if ia, ok := actual.(*types.IndexedAccess); ok {
		return IsCompatible(expected, evalIndexedAccess(ia.Object, ia.Index))
	}
	if cond, ok := expected.(*types.Conditional); ok {
		return IsCompatible(evalConditional(cond), actual)
	}
	if cond, ok := actual.(*types.Conditional); ok {
		return IsCompatible(expected, evalConditional(cond))
	}

	// 13. enums.
	if ee, ok := expected.(*types.Enum); ok {
		if ae, ok := actual.(*types.Enum); ok {
			return ee.Name == ae.Name
		}
		return enumCompatibleWithPrimitive(ee, actual)
	}

	// 14. classes/instances: nominal via inheritance.
	if ei, ok := expected.(*types.Instance); ok {
		if ai, ok := actual.(*types.Instance); ok {
			return instanceCompatible(ei, ai)
		}
	}

	// 15/16. interfaces and records: structural.
	expectedRecord, expectedIsRecordLike := asRecordLike(expected)
	actualRecord, actualIsRecordLike := asRecordLike(actual)
	if expectedIsRecordLike && actualIsRecordLike {
		return recordCompatible(expectedRecord, actualRecord)
	}

	// 17. tuples.
	if et, ok := expected.(*types.Tuple); ok {
		if at, ok := actual.(*types.Tuple); ok {
			return tupleCompatible(et, at)
		}
		if aa, ok := actual.(*types.Array); ok {
			for _, e := range et.Elements {
				if !e.Rest && !e.Optional && !IsCompatible(e.Type, aa.Element) {
					return false
				}
			}
			return true
		}
	}

	// arrays.
	if ea, ok := expected.(*types.Array); ok {
		if aa, ok := actual.(*types.Array); ok {
			return IsCompatible(ea.Element, aa.Element)
		}
		if at, ok := actual.(*types.Tuple); ok {
			for _, e := range at.Elements {
				if !IsCompatible(ea.Element, e.Type) {
					return false
				}
			}
			return true
		}
		return false
	}

	// 18. functions.
	if ef, ok := expected.(*types.Function); ok {
		if af, ok := actual.(*types.Function); ok {
			return functionCompatible(ef, af)
		}
		return false
	}

	// primitives and everything else: same kind.
	return expected.Kind() == actual.Kind()
}

func isCompatibleWithAny(members []types.Type, actual types.Type) bool {
	for _, m := range members {
		if IsCompatible(m, actual) {
			return true
		}
	}
	return false
}

func isSameLiteralKindPrimitive(expected types.Type, lit *types.Literal) bool {
	switch expected.Kind() {
	case types.KindString:
		return lit.Value.IsString
	case types.KindNumber:
		return lit.Value.IsNumber
	case types.KindBoolean:
		return lit.Value.IsBool
	default:
		return false
	}
}

func literalsEqual(a, b *types.Literal) bool {
	if a.Value.IsString != b.Value.IsString || a.Value.IsNumber != b.Value.IsNumber || a.Value.IsBool != b.Value.IsBool {
		return false
	}
	switch {
	case a.Value.IsString:
		return a.Value.Str == b.Value.Str
	case a.Value.IsNumber:
		return a.Value.Num == b.Value.Num
	case a.Value.IsBool:
		return a.Value.Bool == b.Value.Bool
	default:
		return true
	}
}

func enumCompatibleWithPrimitive(e *types.Enum, other types.Type) bool {
	hasString, hasNumber := false, false
	for _, m := range e.Members {
		if m.Value.IsString {
			hasString = true
		}
		if m.Value.IsNumber {
			hasNumber = true
		}
	}
	switch other.Kind() {
	case types.KindNumber:
		return hasNumber
	case types.KindString:
		return hasString
	default:
		return false
	}
}

func instanceCompatible(expected, actual *types.Instance) bool {
	for cls := actual.Class; cls != nil; cls = cls.SuperClass {
		if cls == expected.Class || cls.Name == expected.Class.Name {
			return typeArgsCompatible(expected, actual, cls)
		}
		for _, iface := range cls.Interfaces {
			if iface.Name == expected.Class.Name {
				return true
			}
		}
	}
	return false
}

func typeArgsCompatible(expected, actual *types.Instance, matchedClass *types.Class) bool {
	for i, tp := range matchedClass.TypeParams {
		if i >= len(expected.TypeArgs) || i >= len(actual.TypeArgs) {
			break
		}
		e, a := expected.TypeArgs[i], actual.TypeArgs[i]
		switch tp.Variance {
		case types.VarianceOut:
			if !IsCompatible(e, a) {
				return false
			}
		case types.VarianceIn:
			if !IsCompatible(a, e) {
				return false
			}
		case types.VarianceInOut:
			if !IsCompatible(e, a) && !IsCompatible(a, e) {
				return false
			}
		default:
			if !IsCompatible(e, a) || !IsCompatible(a, e) {
				return false
			}
		}
	}
	return true
}

// asRecordLike unwraps Interface/Instance/Record down to the *types.Record
// that carries their structural shape.
func asRecordLike(t types.Type) (*types.Record, bool) {
	switch v := t.(type) {
	case *types.Record:
		return v, true
	case *types.Interface:
		return v.Shape, true
	case *types.Instance:
		if v.Class != nil && v.Class.InstanceShape != nil {
			return v.Class.InstanceShape, true
		}
	}
	return nil, false
}

// unionPropertyType resolves a member access across a union: every
// member must expose the property (directly or through a string index
// signature), and the result is the union of each member's property
// type, the same way a discriminated union narrows `s.kind` across
// `Circle | Square` arms.
func unionPropertyType(u *types.Union, name string) (types.Type, bool) {
	results := make([]types.Type, 0, len(u.Members))
	for _, m := range u.Members {
		rec, ok := asRecordLike(types.Resolve(m))
		if !ok {
			return nil, false
		}
		if p, found := rec.Lookup(name); found {
			results = append(results, p.Type)
			continue
		}
		found := false
		for _, idx := range rec.Index {
			if idx.KeyType.Kind() == types.KindString {
				results = append(results, idx.Value)
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	return unionOf(results), true
}

func recordCompatible(expected, actual *types.Record) bool {
	for _, sig := range expected.CallSigs {
		if !anyCallSigCompatible(sig, actual.CallSigs) {
			return false
		}
	}
	for _, ep := range expected.Properties {
		ap, ok := actual.Lookup(ep.Name)
		if !ok {
			if idx := fallbackIndex(actual, ep.Name); idx != nil {
				if !IsCompatible(ep.Type, idx.Value) {
					return false
				}
				continue
			}
			if !ep.Optional {
				return false
			}
			continue
		}
		if !IsCompatible(ep.Type, ap.Type) {
			return false
		}
	}
	return true
}

func anyCallSigCompatible(expected *types.Function, actuals []*types.Function) bool {
	for _, a := range actuals {
		if functionCompatible(expected, a) {
			return true
		}
	}
	return len(actuals) == 0 && len(expected.Signatures) == 0
}

func fallbackIndex(r *types.Record, key string) *types.IndexSignature {
	for i := range r.Index {
		if r.Index[i].KeyType.Kind() == types.KindString || r.Index[i].KeyType.Kind() == types.KindNumber {
			return &r.Index[i]
		}
	}
	_ = key
	return nil
}

func tupleCompatible(expected, actual *types.Tuple) bool {
	eRestIdx := -1
	for i, e := range expected.Elements {
		if e.Rest {
			eRestIdx = i
			break
		}
	}
	if eRestIdx < 0 {
		minLen := 0
		for _, e := range expected.Elements {
			if !e.Optional {
				minLen++
			}
		}
		if len(actual.Elements) < minLen || len(actual.Elements) > len(expected.Elements) {
			return false
		}
		for i, e := range expected.Elements {
			if i >= len(actual.Elements) {
				continue
			}
			if !IsCompatible(e.Type, actual.Elements[i].Type) {
				return false
			}
		}
		return true
	}
	// variadic: match leading and trailing fixed segments around the spread.
	leading := expected.Elements[:eRestIdx]
	trailing := expected.Elements[eRestIdx+1:]
	if len(actual.Elements) < len(leading)+len(trailing) {
		return false
	}
	for i, e := range leading {
		if !IsCompatible(e.Type, actual.Elements[i].Type) {
			return false
		}
	}
	for i, e := range trailing {
		ai := len(actual.Elements) - len(trailing) + i
		if !IsCompatible(e.Type, actual.Elements[ai].Type) {
			return false
		}
	}
	restElemType := expected.Elements[eRestIdx].Type
	if arr, ok := restElemType.(*types.Array); ok {
		restElemType = arr.Element
	}
	for i := len(leading); i < len(actual.Elements)-len(trailing); i++ {
		if !IsCompatible(restElemType, actual.Elements[i].Type) {
			return false
		}
	}
	return true
}

func functionCompatible(expected, actual *types.Function) bool {
	for _, es := range expected.Signatures {
		if !anySignatureCompatible(es, actual.Signatures) {
			return false
		}
	}
	return true
}

func anySignatureCompatible(expected types.Signature, actuals []types.Signature) bool {
	for _, a := range actuals {
		if signatureCompatible(expected, a) {
			return true
		}
	}
	return false
}

func signatureCompatible(expected, actual types.Signature) bool {
	requiredActual := 0
	for _, p := range actual.Params {
		if !p.Optional && !p.Rest {
			requiredActual++
		}
	}
	if len(expected.Params) < requiredActual {
		return false
	}
	for i, ap := range actual.Params {
		if i >= len(expected.Params) {
			if ap.Rest {
				continue
			}
			return false
		}
		ep := expected.Params[i]
		if !IsCompatible(ap.Type, ep.Type) { // parameter contravariance
			return false
		}
	}
	if expected.ThisType != nil && actual.ThisType != nil {
		if !IsCompatible(actual.ThisType, expected.ThisType) {
			return false
		}
	}
	return IsCompatible(expected.Return, actual.Return) // return covariance
}
