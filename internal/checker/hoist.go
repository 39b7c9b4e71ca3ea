package checker

import (
	"github.com/tscore-lang/tscore/internal/ast"
	"github.com/tscore-lang/tscore/internal/diag"
	"github.com/tscore-lang/tscore/internal/envir"
	"github.com/tscore-lang/tscore/internal/types"
)

// registerBuiltins seeds the global scope with the ambient names the
// checker's utility-type and control-flow logic assume exist even
// without a lib.d.ts-equivalent source file.
func (c *Checker) registerBuiltins() {
	c.global.DefineValue("console", &types.Record{
		Properties: []types.Property{
			{Name: "log", Type: &types.Function{Signatures: []types.Signature{{Params: []types.Param{{Name: "args", Type: types.Any, Rest: true}}, Return: types.Void}}}},
		},
	}, true)
	c.global.DefineValue("Array", &types.Record{
		Properties: []types.Property{
			{Name: "isArray", Type: &types.Function{Signatures: []types.Signature{{
				Params:    []types.Param{{Name: "arg", Type: types.Unknown}},
				Return:    types.Boolean,
				Predicate: &types.TypePredicate{ParamName: "arg", Type: &types.Array{Element: types.Unknown}},
			}}}},
		},
	}, true)
}

// hoistDeclaration registers and builds one top-level declaration in
// scope; Check calls it once per statement, in source order. A class
// binding is registered before its body is built and a type alias gets
// a placeholder first, so both can refer to themselves. An interface is
// registered only after its body is resolved; functions, enums and
// namespaces are built directly. There is no separate stub pass: while
// a declaration is built, names declared later in the same scope are
// not yet bound, so a reference to one (e.g. `class A { b: B }` before
// `class B`) reports an unknown type.
func (c *Checker) hoistDeclaration(stmt ast.Statement, scope *envir.Scope) {
	switch d := stmt.(type) {
	case *ast.FunctionDecl:
		scope.DefineValue(d.Name, c.functionDeclType(d), true)
	case *ast.ClassDecl:
		cls := &types.Class{Name: d.Name, Abstract: d.Abstract, InstanceShape: &types.Record{}, StaticShape: &types.Record{}}
		scope.DefineType(d.Name, cls)
		scope.DefineValue(d.Name, cls, true)
		c.buildClass(d, cls, scope)
	case *ast.InterfaceDecl:
		iface := &types.Interface{Name: d.Name, Shape: &types.Record{}}
		c.pushScope(func() {
			iface.TypeParams = c.resolveTypeParams(d.TypeParams)
			for _, tp := range iface.TypeParams {
				c.scope.DefineType(tp.Name, tp)
			}
			for _, ext := range d.Extends {
				if named, ok := ext.(*ast.NamedType); ok {
					if b, ok := scope.LookupType(named.Name); ok {
						if superIface, ok := b.Type.(*types.Interface); ok {
							iface.Extends = append(iface.Extends, superIface)
							iface.Shape.Properties = append(iface.Shape.Properties, superIface.Shape.Properties...)
						}
					}
				}
			}
			iface.Shape.Properties = append(iface.Shape.Properties, c.resolveRecordType(d.Body).Properties...)
		})
		if err := scope.DefineType(d.Name, iface); err != nil {
			c.report(diag.TypeMismatch, d, "%s", err.Error())
		}
	case *ast.TypeAliasDecl:
		placeholder := &types.AliasPlaceholder{Name: d.Name}
		scope.DefineType(d.Name, placeholder)
		var body types.Type
		c.pushScope(func() {
			tps := c.resolveTypeParams(d.TypeParams)
			for _, tp := range tps {
				c.scope.DefineType(tp.Name, tp)
			}
			resolved := c.resolveType(d.Type)
			if len(tps) > 0 {
				body = &types.Generic{TypeParams: tps, Body: resolved}
			} else {
				body = resolved
			}
		})
		placeholder.Body = body
		if len(placeholderTypeParams(body)) == 0 {
			scope.DefineType(d.Name, body)
		}
	case *ast.EnumDecl:
		scope.DefineType(d.Name, c.buildEnum(d))
		scope.DefineValue(d.Name, c.buildEnumObject(d), true)
	case *ast.NamespaceDecl:
		nested := scope.DefineNamespace(d.Name)
		for _, s := range d.Statements {
			c.hoistDeclaration(s, nested)
		}
	case *ast.AmbientDecl:
		target := scope
		if d.Kind == ast.AmbientModule {
			target = scope.DefineNamespace(d.ModuleName)
		}
		for _, s := range d.Statements {
			c.hoistDeclaration(s, target)
		}
	case *ast.ExportDecl:
		if d.Decl != nil {
			c.hoistDeclaration(d.Decl, scope)
		}
	case *ast.VarStatement:
		c.hoistVarStatement(d, scope)
	}
}

func placeholderTypeParams(t types.Type) []*types.TypeParam {
	if g, ok := t.(*types.Generic); ok {
		return g.TypeParams
	}
	return nil
}

func (c *Checker) functionDeclType(d *ast.FunctionDecl) *types.Function {
	var sig types.Signature
	c.pushScope(func() {
		tps := c.resolveTypeParams(d.TypeParams)
		for _, tp := range tps {
			c.scope.DefineType(tp.Name, tp)
		}
		sig = c.resolveSignature(d.TypeParams, d.Params, d.ThisParam, d.ReturnType)
	})
	return &types.Function{Signatures: []types.Signature{sig}}
}

func (c *Checker) hoistVarStatement(d *ast.VarStatement, scope *envir.Scope) {
	for _, decl := range d.Declarators {
		if decl.Name == "" {
			continue
		}
		var t types.Type = types.Any
		if decl.Type != nil {
			t = c.resolveType(decl.Type)
		}
		scope.DefineValueUndeclared(decl.Name, t, d.Kind == ast.VarConst)
	}
}
