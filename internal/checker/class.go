package checker

import (
	"github.com/tscore-lang/tscore/internal/ast"
	"github.com/tscore-lang/tscore/internal/diag"
	"github.com/tscore-lang/tscore/internal/envir"
	"github.com/tscore-lang/tscore/internal/types"
)

// buildClass fills a previously-stubbed *types.Class's instance/static
// shapes and constructor signatures from its declaration, following a
// mutable-builder-then-freeze lifecycle: cls is already registered in
// scope (so self-referential fields like `class Node { next: Node |
// null }` resolve), and every member mutates cls in place.
func (c *Checker) buildClass(d *ast.ClassDecl, cls *types.Class, scope *envir.Scope) {
	c.pushScope(func() {
		cls.TypeParams = c.resolveTypeParams(d.TypeParams)
		for _, tp := range cls.TypeParams {
			c.scope.DefineType(tp.Name, tp)
		}
		if d.SuperClass != nil {
			if named, ok := d.SuperClass.(*ast.NamedType); ok {
				if b, ok := c.scope.LookupType(named.Name); ok {
					if superCls, ok := b.Type.(*types.Class); ok {
						cls.SuperClass = superCls
						cls.InstanceShape.Properties = append(cls.InstanceShape.Properties, superCls.InstanceShape.Properties...)
					}
				}
			}
		}
		for _, ifaceExpr := range d.Interfaces {
			if named, ok := ifaceExpr.(*ast.NamedType); ok {
				if b, ok := c.scope.LookupType(named.Name); ok {
					if iface, ok := b.Type.(*types.Interface); ok {
						cls.Interfaces = append(cls.Interfaces, iface)
					}
				}
			}
		}
		for _, member := range d.Members {
			c.validateClassMember(d, member)
			c.addClassMember(cls, member)
		}
	})
}

// validateClassMember enforces the structural invariants a class
// member must satisfy regardless of its shape contribution: abstract
// members only belong to an abstract class, and parameter properties
// (access-modified constructor params) only belong to a constructor.
func (c *Checker) validateClassMember(d *ast.ClassDecl, member ast.ClassMember) {
	switch m := member.(type) {
	case *ast.FieldDecl:
		if m.Abstract && !d.Abstract {
			c.report(diag.ModifierError, m, "abstract member %q not allowed in non-abstract class %q", m.Name, d.Name)
		}
	case *ast.MethodDecl:
		if m.Abstract && !d.Abstract {
			c.report(diag.ModifierError, m, "abstract member %q not allowed in non-abstract class %q", m.Name, d.Name)
		}
		if m.Kind != ast.MethodConstructor {
			for _, p := range m.Params {
				if p.AccessMod != "" {
					c.report(diag.ModifierError, m, "parameter properties are only allowed in a constructor implementation, not in %q", m.Name)
				}
			}
		}
	}
}

func (c *Checker) addClassMember(cls *types.Class, member ast.ClassMember) {
	switch m := member.(type) {
	case *ast.FieldDecl:
		prop := types.Property{Name: m.Name, Type: c.resolveType(m.Type), Optional: m.Optional, Readonly: m.Readonly}
		if m.Type == nil && m.Init != nil {
			prop.Type = types.Any
		}
		if m.Static {
			cls.StaticShape.Properties = append(cls.StaticShape.Properties, prop)
		} else {
			cls.InstanceShape.Properties = append(cls.InstanceShape.Properties, prop)
		}
	case *ast.MethodDecl:
		c.addMethodMember(cls, m)
	}
}

func (c *Checker) addMethodMember(cls *types.Class, m *ast.MethodDecl) {
	var sig types.Signature
	c.pushScope(func() {
		tps := c.resolveTypeParams(m.TypeParams)
		for _, tp := range tps {
			c.scope.DefineType(tp.Name, tp)
		}
		sig = c.resolveSignature(m.TypeParams, m.Params, nil, m.ReturnType)
	})
	switch m.Kind {
	case ast.MethodConstructor:
		cls.Constructors = append(cls.Constructors, sig)
		for _, p := range m.Params {
			if p.AccessMod != "" {
				cls.InstanceShape.Properties = append(cls.InstanceShape.Properties, types.Property{Name: p.Name, Type: paramType(sig, p.Name)})
			}
		}
	case ast.MethodGetter:
		target := cls.InstanceShape
		if m.Static {
			target = cls.StaticShape
		}
		target.Properties = append(target.Properties, types.Property{Name: m.Name, Type: sig.Return, Readonly: true})
	case ast.MethodSetter:
		// a getter/setter pair contributes one property; a bare setter
		// with no matching getter still publishes a writable property.
		target := cls.InstanceShape
		if m.Static {
			target = cls.StaticShape
		}
		if _, ok := target.Lookup(m.Name); !ok && len(sig.Params) > 0 {
			target.Properties = append(target.Properties, types.Property{Name: m.Name, Type: sig.Params[0].Type})
		}
	default:
		fn := &types.Function{Signatures: []types.Signature{sig}}
		target := cls.InstanceShape
		if m.Static {
			target = cls.StaticShape
		}
		target.Properties = append(target.Properties, types.Property{Name: m.Name, Type: fn})
	}
}

// buildEnum resolves an EnumDecl's members into their literal values,
// auto-incrementing numeric members the way a plain (non-string) TS
// enum does when an initializer is omitted.
func (c *Checker) buildEnum(d *ast.EnumDecl) *types.Enum {
	e := &types.Enum{Name: d.Name, Const: d.Const}
	next := 0.0
	for _, m := range d.Members {
		val := types.LiteralValue{IsNumber: true, Num: next}
		if m.Init != nil {
			if lit, ok := literalValueOf(m.Init); ok {
				val = lit
			}
		}
		e.Members = append(e.Members, types.EnumMember{Name: m.Name, Value: val})
		if val.IsNumber {
			next = val.Num + 1
		}
	}
	return e
}

// buildEnumObject is the enum's value-namespace shape: a record
// mapping each member name to its literal type, used for `Enum.Member`
// access expressions.
func (c *Checker) buildEnumObject(d *ast.EnumDecl) *types.Record {
	r := &types.Record{}
	enumType := c.buildEnum(d)
	for _, m := range enumType.Members {
		r.Properties = append(r.Properties, types.Property{Name: m.Name, Type: &types.Literal{Value: m.Value}, Readonly: true})
	}
	return r
}

func literalValueOf(expr ast.Expression) (types.LiteralValue, bool) {
	switch v := expr.(type) {
	case *ast.StringLiteral:
		return types.LiteralValue{IsString: true, Str: v.Value}, true
	case *ast.NumberLiteral:
		return types.LiteralValue{IsNumber: true, Num: v.Value}, true
	default:
		return types.LiteralValue{}, false
	}
}

func paramType(s types.Signature, name string) types.Type {
	for _, p := range s.Params {
		if p.Name == name {
			return p.Type
		}
	}
	return types.Any
}
