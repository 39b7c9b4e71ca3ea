package checker

import (
	"github.com/tscore-lang/tscore/internal/ast"
	"github.com/tscore-lang/tscore/internal/diag"
	"github.com/tscore-lang/tscore/internal/types"
)

// resolveType walks a syntactic ast.TypeExpression and produces the
// canonical internal/types.Type it denotes, looking up named types in
// scope.
func (c *Checker) resolveType(te ast.TypeExpression) types.Type {
	if te == nil {
		return types.Void
	}
	switch t := te.(type) {
	case *ast.NamedType:
		return c.resolveNamedType(t)
	case *ast.LiteralType:
		return c.resolveLiteralType(t)
	case *ast.UnionType:
		members := make([]types.Type, len(t.Parts))
		for i, p := range t.Parts {
			members[i] = c.resolveType(p)
		}
		return types.Canonicalize(&types.Union{Members: members})
	case *ast.IntersectionType:
		members := make([]types.Type, len(t.Parts))
		for i, p := range t.Parts {
			members[i] = c.resolveType(p)
		}
		return types.Canonicalize(&types.Intersection{Members: members})
	case *ast.ArrayType:
		return &types.Array{Element: c.resolveType(t.Element)}
	case *ast.TupleType:
		elems := make([]types.TupleElement, len(t.Elements))
		for i, e := range t.Elements {
			elems[i] = types.TupleElement{Type: c.resolveType(e.Type), Optional: e.Optional, Rest: e.Rest, Label: e.Name}
		}
		return &types.Tuple{Elements: elems}
	case *ast.RecordType:
		return c.resolveRecordType(t)
	case *ast.FunctionTypeNode:
		return c.resolveFunctionTypeNode(t)
	case *ast.KeyofType:
		return evalKeyof(&types.Keyof{Operand: c.resolveType(t.Operand)})
	case *ast.IndexedAccessType:
		return evalIndexedAccess(c.resolveType(t.Object), c.resolveType(t.Index))
	case *ast.MappedType:
		return c.resolveMappedType(t)
	case *ast.ConditionalType:
		return c.resolveConditionalType(t)
	case *ast.InferType:
		// Only meaningful within a ConditionalType's Extends clause;
		// resolveConditionalType substitutes these before recursing
		// into Check/True/False, so a bare InferType reaching here is
		// a type parameter placeholder with no constraint yet.
		return &types.TypeParam{Name: t.Name}
	case *ast.TemplateLiteralType:
		holeTypes := make([]types.Type, len(t.Types))
		for i, h := range t.Types {
			holeTypes[i] = c.resolveType(h)
		}
		return &types.TemplateLiteral{Quasis: t.Quasis, Types: holeTypes}
	case *ast.TypePredicateType:
		var inner types.Type
		if t.Type != nil {
			inner = c.resolveType(t.Type)
		}
		return &types.TypePredicate{ParamName: t.ParamName, Asserts: t.Asserts, Type: inner}
	case *ast.UniqueSymbolType:
		return &types.UniqueSymbol{}
	case *ast.ParenType:
		return c.resolveType(t.Inner)
	default:
		return c.report(diag.InternalError, te, "unresolvable type expression %T", te)
	}
}

func (c *Checker) resolveNamedType(t *ast.NamedType) types.Type {
	switch t.Name {
	case "any":
		return types.Any
	case "unknown":
		return types.Unknown
	case "never":
		return types.Never
	case "void":
		return types.Void
	case "null":
		return types.Null
	case "undefined":
		return types.Undefined
	case "boolean":
		return types.Boolean
	case "number":
		return types.Number
	case "string":
		return types.String
	case "bigint":
		return types.BigInt
	case "symbol":
		return types.Symbol
	case "this":
		return types.Unknown
	}
	if builtin := c.resolveUtilityType(t); builtin != nil {
		return builtin
	}
	binding, ok := c.scope.LookupType(t.Name)
	if !ok {
		return c.report(diag.NameError, t, "unknown type %q", t.Name)
	}
	if len(t.TypeArgs) == 0 {
		return binding.Type
	}
	gen, isGeneric := binding.Type.(*types.Generic)
	if !isGeneric {
		return binding.Type
	}
	args := make([]types.Type, len(t.TypeArgs))
	for i, a := range t.TypeArgs {
		args[i] = c.resolveType(a)
	}
	key := t.Name + "<"
	for _, a := range args {
		key += a.String() + ","
	}
	key += ">"
	if c.aliasExpansion[key] {
		return &types.AliasPlaceholder{Name: key}
	}
	c.aliasExpansion[key] = true
	defer delete(c.aliasExpansion, key)
	return types.Instantiate(gen, args)
}

func (c *Checker) resolveLiteralType(t *ast.LiteralType) types.Type {
	switch v := t.Value.(type) {
	case *ast.StringLiteral:
		return &types.Literal{Value: types.LiteralValue{IsString: true, Str: v.Value}, Widened: types.String}
	case *ast.NumberLiteral:
		return &types.Literal{Value: types.LiteralValue{IsNumber: true, Num: v.Value}, Widened: types.Number}
	case *ast.BooleanLiteral:
		b := v.Token.Lexeme == "true"
		return &types.Literal{Value: types.LiteralValue{IsBool: true, Bool: b}, Widened: types.Boolean}
	case *ast.NullLiteral:
		return types.Null
	default:
		return types.Any
	}
}

func (c *Checker) resolveRecordType(t *ast.RecordType) *types.Record {
	r := &types.Record{}
	for _, m := range t.Members {
		switch {
		case m.CallSig != nil:
			r.CallSigs = append(r.CallSigs, c.resolveFunctionTypeNode(m.CallSig))
		case m.ConstructSig != nil:
			r.ConstructSigs = append(r.ConstructSigs, c.resolveFunctionTypeNode(m.ConstructSig))
		default:
			r.Properties = append(r.Properties, types.Property{
				Name:     m.Name,
				Type:     c.resolveType(m.Type),
				Optional: m.Optional,
				Readonly: m.Readonly,
			})
		}
	}
	for _, idx := range t.IndexSignatures {
		r.Index = append(r.Index, types.IndexSignature{KeyType: c.resolveType(idx.KeyType), Value: c.resolveType(idx.Value)})
	}
	return r
}

func (c *Checker) resolveFunctionTypeNode(t *ast.FunctionTypeNode) *types.Function {
	sig := c.resolveSignature(t.TypeParams, t.Params, t.ThisParam, t.Return)
	return &types.Function{Signatures: []types.Signature{sig}, IsNew: t.IsNew}
}

func (c *Checker) resolveSignature(typeParams []*ast.TypeParam, params []*ast.Param, thisParam ast.TypeExpression, ret ast.TypeExpression) types.Signature {
	tps := c.resolveTypeParams(typeParams)
	ps := make([]types.Param, len(params))
	for i, p := range params {
		ps[i] = types.Param{Name: p.Name, Type: c.resolveType(p.Type), Optional: p.Optional, Rest: p.Rest}
	}
	var this types.Type
	if thisParam != nil {
		this = c.resolveType(thisParam)
	}
	var returnType types.Type
	var pred *types.TypePredicate
	if predType, ok := ret.(*ast.TypePredicateType); ok {
		rt := c.resolveType(predType)
		pred = rt.(*types.TypePredicate)
		returnType = types.Boolean
	} else {
		returnType = c.resolveType(ret)
	}
	return types.Signature{TypeParams: tps, Params: ps, ThisType: this, Return: returnType, Predicate: pred}
}

func (c *Checker) resolveTypeParams(tps []*ast.TypeParam) []*types.TypeParam {
	out := make([]*types.TypeParam, len(tps))
	for i, tp := range tps {
		var constraint, def types.Type
		if tp.Constraint != nil {
			constraint = c.resolveType(tp.Constraint)
		}
		if tp.Default != nil {
			def = c.resolveType(tp.Default)
		}
		out[i] = &types.TypeParam{Name: tp.Name, Constraint: constraint, Default: def, Variance: types.Variance(tp.Variance)}
	}
	return out
}

func (c *Checker) resolveMappedType(t *ast.MappedType) types.Type {
	return &types.Mapped{
		KeyName:     t.KeyName,
		Keys:        c.resolveType(t.Keys),
		Value:       c.resolveType(t.Value),
		OptionalMod: types.ModifierOp(t.OptionalMod),
		ReadonlyMod: types.ModifierOp(t.ReadonlyMod),
	}
}

func (c *Checker) resolveConditionalType(t *ast.ConditionalType) types.Type {
	inferParams := make([]*types.TypeParam, len(t.InferParams))
	for i, name := range t.InferParams {
		inferParams[i] = &types.TypeParam{Name: name}
	}
	cond := &types.Conditional{
		Check:       c.resolveType(t.Check),
		Extends:     c.resolveType(t.Extends),
		InferParams: inferParams,
		True:        c.resolveType(t.True),
		False:       c.resolveType(t.False),
	}
	return evalConditional(cond)
}
