package types

// Substitute replaces every TypeParam in t that has an entry in env
// with its bound Type, recursing through every composite Type variant.
// Mirrors the generic-instantiation walk an interpreter's expression
// evaluator would do, adapted here to operate over the Type tree
// instead of AST nodes.
func Substitute(t Type, env map[string]Type) Type {
	if t == nil {
		return nil
	}
	switch v := t.(type) {
	case *TypeParam:
		if bound, ok := env[v.Name]; ok {
			return bound
		}
		return v
	case *Primitive, *Literal, *Enum:
		return v
	case *Union:
		return &Union{Members: substituteAll(v.Members, env)}
	case *Intersection:
		return &Intersection{Members: substituteAll(v.Members, env)}
	case *Array:
		return &Array{Element: Substitute(v.Element, env)}
	case *Tuple:
		elems := make([]TupleElement, len(v.Elements))
		for i, e := range v.Elements {
			elems[i] = TupleElement{Type: Substitute(e.Type, env), Optional: e.Optional, Rest: e.Rest, Label: e.Label}
		}
		return &Tuple{Elements: elems}
	case *Record:
		return substituteRecord(v, env)
	case *Function:
		sigs := make([]Signature, len(v.Signatures))
		for i, s := range v.Signatures {
			sigs[i] = substituteSignature(s, env)
		}
		return &Function{Signatures: sigs, IsNew: v.IsNew}
	case *Instance:
		args := make([]Type, len(v.TypeArgs))
		for i, a := range v.TypeArgs {
			args[i] = Substitute(a, env)
		}
		return &Instance{Class: v.Class, TypeArgs: args}
	case *Keyof:
		return &Keyof{Operand: Substitute(v.Operand, env)}
	case *IndexedAccess:
		return &IndexedAccess{Object: Substitute(v.Object, env), Index: Substitute(v.Index, env)}
	case *Mapped:
		return &Mapped{
			KeyName:     v.KeyName,
			Keys:        Substitute(v.Keys, env),
			Value:       Substitute(v.Value, env),
			OptionalMod: v.OptionalMod,
			ReadonlyMod: v.ReadonlyMod,
		}
	case *Conditional:
		return &Conditional{
			Check:       Substitute(v.Check, env),
			Extends:     Substitute(v.Extends, env),
			InferParams: v.InferParams,
			True:        Substitute(v.True, env),
			False:       Substitute(v.False, env),
		}
	case *TemplateLiteral:
		ts := make([]Type, len(v.Types))
		for i, tt := range v.Types {
			ts[i] = Substitute(tt, env)
		}
		return &TemplateLiteral{Quasis: v.Quasis, Types: ts}
	case *AliasPlaceholder:
		if v.Body == nil {
			return v
		}
		return Substitute(v.Body, env)
	default:
		return t
	}
}

func substituteAll(ts []Type, env map[string]Type) []Type {
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = Substitute(t, env)
	}
	return out
}

func substituteRecord(r *Record, env map[string]Type) *Record {
	props := make([]Property, len(r.Properties))
	for i, p := range r.Properties {
		props[i] = Property{Name: p.Name, Type: Substitute(p.Type, env), Optional: p.Optional, Readonly: p.Readonly}
	}
	idx := make([]IndexSignature, len(r.Index))
	for i, s := range r.Index {
		idx[i] = IndexSignature{KeyType: Substitute(s.KeyType, env), Value: Substitute(s.Value, env)}
	}
	calls := make([]*Function, len(r.CallSigs))
	for i, c := range r.CallSigs {
		calls[i] = Substitute(c, env).(*Function)
	}
	ctors := make([]*Function, len(r.ConstructSigs))
	for i, c := range r.ConstructSigs {
		ctors[i] = Substitute(c, env).(*Function)
	}
	return &Record{Properties: props, Index: idx, CallSigs: calls, ConstructSigs: ctors}
}

func substituteSignature(s Signature, env map[string]Type) Signature {
	params := make([]Param, len(s.Params))
	for i, p := range s.Params {
		params[i] = Param{Name: p.Name, Type: Substitute(p.Type, env), Optional: p.Optional, Rest: p.Rest}
	}
	var pred *TypePredicate
	if s.Predicate != nil {
		pred = &TypePredicate{ParamName: s.Predicate.ParamName, Asserts: s.Predicate.Asserts, Type: Substitute(s.Predicate.Type, env)}
	}
	return Signature{
		TypeParams: s.TypeParams,
		Params:     params,
		ThisType:   Substitute(s.ThisType, env),
		Return:     Substitute(s.Return, env),
		Predicate:  pred,
	}
}

// Instantiate substitutes g's type parameters with args positionally,
// falling back to each parameter's Default (or Unknown, absent a
// default) when args is shorter than TypeParams.
func Instantiate(g *Generic, args []Type) Type {
	env := make(map[string]Type, len(g.TypeParams))
	for i, tp := range g.TypeParams {
		switch {
		case i < len(args):
			env[tp.Name] = args[i]
		case tp.Default != nil:
			env[tp.Name] = tp.Default
		default:
			env[tp.Name] = Unknown
		}
	}
	return Substitute(g.Body, env)
}
