package checker

import (
	"github.com/tscore-lang/tscore/internal/ast"
	"github.com/tscore-lang/tscore/internal/diag"
	"github.com/tscore-lang/tscore/internal/types"
)

// checkStatement dispatches over every statement kind, mutating
// c.scope/c.currentReturn/c.loopDepth/c.switchDepth as it descends.
func (c *Checker) checkStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		c.checkExpression(s.Expr)
	case *ast.VarStatement:
		c.checkVarStatement(s)
	case *ast.BlockStatement:
		c.pushScope(func() {
			for _, inner := range s.Statements {
				c.checkStatement(inner)
			}
		})
	case *ast.SequenceStatement:
		for _, inner := range s.Statements {
			c.checkStatement(inner)
		}
	case *ast.IfStatement:
		c.checkIfStatement(s)
	case *ast.WhileStatement:
		c.checkExpression(s.Condition)
		c.loopDepth++
		c.pushScope(func() { c.checkStatement(s.Body) })
		c.loopDepth--
	case *ast.DoWhileStatement:
		c.loopDepth++
		c.pushScope(func() { c.checkStatement(s.Body) })
		c.loopDepth--
		c.checkExpression(s.Condition)
	case *ast.ForStatement:
		c.pushScope(func() {
			if s.Init != nil {
				c.checkStatement(s.Init)
			}
			if s.Condition != nil {
				c.checkExpression(s.Condition)
			}
			if s.Update != nil {
				c.checkExpression(s.Update)
			}
			c.loopDepth++
			c.checkStatement(s.Body)
			c.loopDepth--
		})
	case *ast.ForOfStatement:
		c.checkForOfStatement(s)
	case *ast.ForInStatement:
		c.pushScope(func() {
			c.checkExpression(s.Object)
			c.scope.DefineValue(s.Name, types.String, s.Kind == ast.VarConst)
			c.loopDepth++
			c.checkStatement(s.Body)
			c.loopDepth--
		})
	case *ast.SwitchStatement:
		c.checkSwitchStatement(s)
	case *ast.TryStatement:
		c.checkStatement(s.Body)
		if s.Catch != nil {
			c.pushScope(func() {
				paramType := types.Unknown
				if s.Catch.ParamType != nil {
					paramType = c.resolveType(s.Catch.ParamType)
				}
				if s.Catch.ParamName != "" {
					c.scope.DefineValue(s.Catch.ParamName, paramType, false)
				}
				c.checkStatement(s.Catch.Body)
			})
		}
		if s.Finally != nil {
			c.checkStatement(s.Finally)
		}
	case *ast.ThrowStatement:
		c.checkExpression(s.Expr)
	case *ast.ReturnStatement:
		c.checkReturnStatement(s)
	case *ast.BreakStatement:
		if s.Label != "" && !c.scope.HasLabel(s.Label) {
			c.report(diag.NameError, s, "undefined label %q", s.Label)
		} else if s.Label == "" && c.loopDepth == 0 && c.switchDepth == 0 {
			c.report(diag.NameError, s, "break outside loop or switch")
		}
	case *ast.ContinueStatement:
		if s.Label != "" && !c.scope.HasLabel(s.Label) {
			c.report(diag.NameError, s, "undefined label %q", s.Label)
		} else if s.Label == "" && c.loopDepth == 0 {
			c.report(diag.NameError, s, "continue outside loop")
		}
	case *ast.LabeledStatement:
		c.scope.DefineLabel(s.Label)
		c.checkStatement(s.Body)
	case *ast.FunctionDecl:
		c.checkFunctionBody(s)
	case *ast.ClassDecl:
		c.checkClassBodies(s)
	case *ast.InterfaceDecl, *ast.TypeAliasDecl, *ast.EnumDecl:
		// fully resolved during hoistDeclaration; nothing left to check.
	case *ast.NamespaceDecl:
		c.checkNamespaceBody(s)
	case *ast.AmbientDecl:
		// ambient declarations carry no executable bodies to check.
	case *ast.ImportDecl:
		// module resolution is an external contract; the checker only
		// needs the hoisted binding, already registered.
	case *ast.ExportDecl:
		c.checkExportDecl(s)
	default:
		c.report(diag.InternalError, stmt, "unchecked statement kind %T", stmt)
	}
}

func (c *Checker) checkVarStatement(s *ast.VarStatement) {
	for _, decl := range s.Declarators {
		var declType types.Type
		if decl.Type != nil {
			declType = c.resolveType(decl.Type)
		}
		if decl.Init != nil {
			initType := c.checkExpressionContextual(decl.Init, declType)
			if fresh := freshObjectLiteral(decl.Init); fresh != nil && declType != nil {
				c.checkExcessProperties(declType, fresh)
			}
			if declType == nil {
				if ta, ok := decl.Init.(*ast.TypeAssertionExpression); s.Kind == ast.VarConst || (ok && ta.Const) {
					declType = initType
				} else {
					declType = types.Widen(initType)
				}
			} else if !c.checkCompatible(declType, initType) {
				c.report(diag.TypeMismatch, decl.Init, "cannot assign %s to %s", initType.String(), declType.String())
			}
		} else if declType == nil {
			declType = types.Any
		}
		if decl.Name != "" {
			c.scope.DefineValue(decl.Name, declType, s.Kind == ast.VarConst)
			c.scope.MarkDeclared(decl.Name)
		}
	}
}

func (c *Checker) checkIfStatement(s *ast.IfStatement) {
	n := c.narrowCondition(s.Condition, c.scope)
	c.checkExpression(s.Condition)
	c.withScope(n.then, func() { c.checkStatement(s.Then) })
	if s.Else != nil {
		c.withScope(n.els, func() { c.checkStatement(s.Else) })
	}
}

func (c *Checker) checkForOfStatement(s *ast.ForOfStatement) {
	iterType := c.checkExpression(s.Iterable)
	var elemType types.Type = types.Any
	switch v := types.Resolve(iterType).(type) {
	case *types.Array:
		elemType = v.Element
	case *types.Tuple:
		elemType = unionOfTupleElements(v)
	}
	c.pushScope(func() {
		if s.Name != "" {
			c.scope.DefineValue(s.Name, elemType, s.Kind == ast.VarConst)
		}
		c.loopDepth++
		c.checkStatement(s.Body)
		c.loopDepth--
	})
}

// checkSwitchStatement narrows the discriminant case by case, excluding
// each matched literal from the running remainder. A bare identifier
// discriminant is rebound to that remainder inside the default arm,
// so an exhaustive switch sees it narrowed to never there — the usual
// `default: assertNever(x)` idiom then reports a real TypeMismatch if a
// new union member is added without a matching case.
func (c *Checker) checkSwitchStatement(s *ast.SwitchStatement) {
	discType := c.checkExpression(s.Discriminant)
	remaining := discType
	discIdent, _ := s.Discriminant.(*ast.Identifier)
	c.switchDepth++
	defer func() { c.switchDepth-- }()
	for _, cs := range s.Cases {
		c.pushScope(func() {
			if cs.Test != nil {
				testType := c.checkExpression(cs.Test)
				remaining = narrowSwitchRemaining(remaining, cs.Test, testType)
			} else if discIdent != nil {
				c.scope.DefineValue(discIdent.Name, remaining, true)
			}
			for _, inner := range cs.Statements {
				c.checkStatement(inner)
			}
		})
	}
}

func narrowSwitchRemaining(remaining types.Type, test ast.Expression, testType types.Type) types.Type {
	if lit, ok := types.Resolve(testType).(*types.Literal); ok {
		return excludeMembers(remaining, func(m types.Type) bool {
			if mlit, ok := types.Resolve(m).(*types.Literal); ok {
				return sameLiteralValue(mlit.Value, lit.Value)
			}
			return false
		})
	}
	_ = test
	return remaining
}

func (c *Checker) checkReturnStatement(s *ast.ReturnStatement) {
	var t types.Type = types.Void
	if s.Expr != nil {
		t = c.checkExpressionContextual(s.Expr, c.currentReturn)
	}
	if c.currentReturn != nil && !c.checkCompatible(c.currentReturn, t) {
		c.report(diag.TypeMismatch, s, "returned type %s is not assignable to declared return type %s", t.String(), c.currentReturn.String())
	}
}

func (c *Checker) checkFunctionBody(d *ast.FunctionDecl) {
	if d.Body == nil {
		return
	}
	b, _ := c.scope.LookupValue(d.Name)
	var sig types.Signature
	if b != nil {
		if fn, ok := b.Type.(*types.Function); ok && len(fn.Signatures) > 0 {
			sig = fn.Signatures[0]
		}
	}
	c.pushScope(func() {
		for _, tp := range sig.TypeParams {
			c.scope.DefineType(tp.Name, tp)
		}
		for i, p := range d.Params {
			var pt types.Type = types.Any
			if i < len(sig.Params) {
				pt = sig.Params[i].Type
			}
			c.scope.DefineValue(p.Name, pt, false)
		}
		outerReturn, outerAsync, outerGen := c.currentReturn, c.inAsync, c.inGenerator
		c.currentReturn, c.inAsync, c.inGenerator = sig.Return, d.Async, d.Generator
		c.checkStatement(d.Body)
		c.currentReturn, c.inAsync, c.inGenerator = outerReturn, outerAsync, outerGen
	})
}

func (c *Checker) checkClassBodies(d *ast.ClassDecl) {
	b, ok := c.scope.LookupType(d.Name)
	if !ok {
		return
	}
	cls, ok := b.Type.(*types.Class)
	if !ok {
		return
	}
	instance := &types.Instance{Class: cls}
	for _, m := range d.Members {
		method, ok := m.(*ast.MethodDecl)
		if !ok || method.Body == nil {
			continue
		}
		var sig types.Signature
		for _, s := range allMethodSignatures(cls, method) {
			sig = s
			break
		}
		c.pushScope(func() {
			for _, tp := range sig.TypeParams {
				c.scope.DefineType(tp.Name, tp)
			}
			for i, p := range method.Params {
				var pt types.Type = types.Any
				if i < len(sig.Params) {
					pt = sig.Params[i].Type
				}
				c.scope.DefineValue(p.Name, pt, false)
			}
			outerThis, outerReturn, outerCtor := c.thisType, c.currentReturn, c.inConstructor
			c.thisType, c.currentReturn, c.inConstructor = instance, sig.Return, method.Kind == ast.MethodConstructor
			c.checkStatement(method.Body)
			c.thisType, c.currentReturn, c.inConstructor = outerThis, outerReturn, outerCtor
		})
	}
}

func allMethodSignatures(cls *types.Class, m *ast.MethodDecl) []types.Signature {
	if m.Kind == ast.MethodConstructor {
		return cls.Constructors
	}
	var target *types.Record
	if m.Static {
		target = cls.StaticShape
	} else {
		target = cls.InstanceShape
	}
	if p, ok := target.Lookup(m.Name); ok {
		if fn, ok := p.Type.(*types.Function); ok {
			return fn.Signatures
		}
	}
	return nil
}

func (c *Checker) checkNamespaceBody(d *ast.NamespaceDecl) {
	nested, ok := c.scope.LookupNamespace(d.Name)
	if !ok {
		nested = c.scope.DefineNamespace(d.Name)
	}
	c.withScope(nested, func() {
		for _, s := range d.Statements {
			c.checkStatement(s)
		}
	})
}

func (c *Checker) checkExportDecl(d *ast.ExportDecl) {
	if d.Decl != nil {
		c.checkStatement(d.Decl)
	}
	if d.Default != nil {
		c.checkExpression(d.Default)
	}
}
