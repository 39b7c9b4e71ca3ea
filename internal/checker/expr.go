package checker

import (
	"github.com/tscore-lang/tscore/internal/ast"
	"github.com/tscore-lang/tscore/internal/diag"
	"github.com/tscore-lang/tscore/internal/types"
)

// checkExpression infers expr's type with no expected type (see
// checkExpressionContextual) and records it for a downstream evaluator
// or emitter to consult.
func (c *Checker) checkExpression(expr ast.Expression) types.Type {
	t := c.checkExpressionContextual(expr, nil)
	c.types[expr] = t
	return t
}

// checkExpressionContextual is checkExpression with an expected type
// driving contextual typing: arrow parameter types,
// object-literal freshness checks, array-to-tuple inference.
func (c *Checker) checkExpressionContextual(expr ast.Expression, expected types.Type) types.Type {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return &types.Literal{Value: types.LiteralValue{IsNumber: true, Num: e.Value}, Widened: types.Number}
	case *ast.BigIntLiteral:
		return types.BigInt
	case *ast.StringLiteral:
		return &types.Literal{Value: types.LiteralValue{IsString: true, Str: e.Value}, Widened: types.String}
	case *ast.BooleanLiteral:
		b := e.Token.Lexeme == "true"
		return &types.Literal{Value: types.LiteralValue{IsBool: true, Bool: b}, Widened: types.Boolean}
	case *ast.NullLiteral:
		return types.Null
	case *ast.UndefinedLiteral:
		return types.Undefined
	case *ast.ThisExpression:
		if c.thisType != nil {
			return c.thisType
		}
		return types.Any
	case *ast.SuperExpression:
		if c.thisType != nil {
			if inst, ok := c.thisType.(*types.Instance); ok && inst.Class != nil && inst.Class.SuperClass != nil {
				return &types.Instance{Class: inst.Class.SuperClass}
			}
		}
		return types.Any
	case *ast.Identifier:
		return c.checkIdentifier(e)
	case *ast.PrivateIdentifier:
		return types.Any
	case *ast.TemplateLiteral:
		return c.checkTemplateLiteral(e)
	case *ast.TaggedTemplate:
		c.checkExpression(e.Tag)
		c.checkExpression(e.Template)
		return types.Any
	case *ast.BinaryExpression:
		return c.checkBinaryExpression(e)
	case *ast.LogicalExpression:
		return c.checkLogicalExpression(e)
	case *ast.NullishCoalescingExpression:
		left := c.checkExpression(e.Left)
		right := c.checkExpression(e.Right)
		nonNull := excludeMembers(left, isNullish)
		return types.Canonicalize(&types.Union{Members: []types.Type{nonNull, right}})
	case *ast.ConditionalExpression:
		return c.checkConditionalExpression(e, expected)
	case *ast.GroupingExpression:
		return c.checkExpressionContextual(e.Inner, expected)
	case *ast.UnaryExpression:
		return c.checkUnaryExpression(e)
	case *ast.UpdateExpression:
		return c.checkExpression(e.Operand)
	case *ast.AssignmentExpression:
		return c.checkAssignmentExpression(e)
	case *ast.MemberExpression:
		return c.checkMemberExpression(e)
	case *ast.IndexExpression:
		return c.checkIndexExpression(e)
	case *ast.CallExpression:
		return c.checkCallExpression(e)
	case *ast.NewExpression:
		return c.checkNewExpression(e)
	case *ast.SpreadElement:
		return c.checkExpression(e.Value)
	case *ast.ArrayLiteral:
		return c.checkArrayLiteral(e, expected)
	case *ast.ObjectLiteral:
		return c.checkObjectLiteral(e, expected)
	case *ast.ArrowFunction:
		return c.checkArrowFunction(e, expected)
	case *ast.TypeAssertionExpression:
		return c.checkTypeAssertion(e)
	case *ast.SatisfiesExpression:
		operandType := c.checkExpression(e.Expr)
		target := c.resolveType(e.Type)
		if !c.checkCompatible(target, operandType) {
			return c.report(diag.TypeMismatch, e, "type does not satisfy %s", target.String())
		}
		return operandType
	case *ast.NonNullExpression:
		return excludeMembers(c.checkExpression(e.Expr), isNullish)
	case *ast.AwaitExpression:
		return awaited(c.checkExpression(e.Expr))
	case *ast.YieldExpression:
		if e.Expr != nil {
			return c.checkExpression(e.Expr)
		}
		return types.Undefined
	case *ast.SequenceExpression:
		var last types.Type = types.Void
		for _, inner := range e.Expressions {
			last = c.checkExpression(inner)
		}
		return last
	default:
		return c.report(diag.InternalError, expr, "unchecked expression kind %T", expr)
	}
}

func (c *Checker) checkIdentifier(e *ast.Identifier) types.Type {
	b, ok := c.scope.LookupValue(e.Name)
	if !ok {
		return c.report(diag.NameError, e, "unknown identifier %q", e.Name)
	}
	if !b.Declared {
		return c.report(diag.NameError, e, "cannot access %q before initialization", e.Name)
	}
	return b.Type
}

func (c *Checker) checkTemplateLiteral(e *ast.TemplateLiteral) types.Type {
	for _, span := range e.Spans {
		c.checkExpression(span.Expr)
	}
	return types.String
}

var binOpResult = map[string]types.Type{
	"+": nil, // special-cased: string concat if either side string, else number
	"-": types.Number, "*": types.Number, "/": types.Number, "%": types.Number, "**": types.Number,
	"&": types.Number, "|": types.Number, "^": types.Number, "<<": types.Number, ">>": types.Number, ">>>": types.Number,
	"<": types.Boolean, ">": types.Boolean, "<=": types.Boolean, ">=": types.Boolean,
	"==": types.Boolean, "!=": types.Boolean, "===": types.Boolean, "!==": types.Boolean,
	"in": types.Boolean, "instanceof": types.Boolean,
}

func (c *Checker) checkBinaryExpression(e *ast.BinaryExpression) types.Type {
	left := c.checkExpression(e.Left)
	right := c.checkExpression(e.Right)
	if e.Operator == "+" {
		if types.Widen(types.Resolve(left)).Kind() == types.KindString || types.Widen(types.Resolve(right)).Kind() == types.KindString {
			return types.String
		}
		return types.Number
	}
	if e.Operator == "instanceof" {
		c.checkInstanceofOperand(e.Right)
		return types.Boolean
	}
	if result, ok := binOpResult[e.Operator]; ok {
		return result
	}
	return types.Any
}

func (c *Checker) checkInstanceofOperand(rhs ast.Expression) {
	if _, ok := rhs.(*ast.Identifier); !ok {
		c.checkExpression(rhs)
	}
}

func (c *Checker) checkLogicalExpression(e *ast.LogicalExpression) types.Type {
	n := c.narrowCondition(e.Left, c.scope)
	var left, right types.Type
	left = c.checkExpression(e.Left)
	if e.Operator == "&&" {
		c.withScope(n.then, func() { right = c.checkExpression(e.Right) })
		return types.Canonicalize(&types.Union{Members: []types.Type{excludeMembers(left, func(t types.Type) bool { return !isNullish(t) }), right}})
	}
	c.withScope(n.els, func() { right = c.checkExpression(e.Right) })
	return types.Canonicalize(&types.Union{Members: []types.Type{excludeMembers(left, isNullish), right}})
}

func (c *Checker) checkConditionalExpression(e *ast.ConditionalExpression, expected types.Type) types.Type {
	n := c.narrowCondition(e.Condition, c.scope)
	c.checkExpression(e.Condition)
	var thenType, elseType types.Type
	c.withScope(n.then, func() { thenType = c.checkExpressionContextual(e.Then, expected) })
	c.withScope(n.els, func() { elseType = c.checkExpressionContextual(e.Else, expected) })
	return types.Canonicalize(&types.Union{Members: []types.Type{thenType, elseType}})
}

func (c *Checker) checkUnaryExpression(e *ast.UnaryExpression) types.Type {
	operand := c.checkExpression(e.Operand)
	switch e.Operator {
	case "!":
		return types.Boolean
	case "typeof":
		return types.String
	case "void":
		return types.Undefined
	case "delete":
		return types.Boolean
	case "-", "+", "~":
		_ = operand
		return types.Number
	default:
		return types.Any
	}
}

var compoundBase = map[string]string{
	"+=": "+", "-=": "-", "*=": "*", "/=": "/", "%=": "%", "**=": "**",
	"&=": "&", "|=": "|", "^=": "^", "<<=": "<<", ">>=": ">>", ">>>=": ">>>",
	"&&=": "&&", "||=": "||", "??=": "??",
}

func (c *Checker) checkAssignmentExpression(e *ast.AssignmentExpression) types.Type {
	targetType := c.checkExpression(e.Target)
	c.checkReadonlyAssignment(e.Target)
	if e.Operator == "=" {
		valueType := c.checkExpressionContextual(e.Value, targetType)
		if fresh := freshObjectLiteral(e.Value); fresh != nil {
			c.checkExcessProperties(targetType, fresh)
		}
		if !c.checkCompatible(targetType, valueType) {
			c.report(diag.TypeMismatch, e, "cannot assign %s to %s", valueType.String(), targetType.String())
		}
		return valueType
	}
	valueType := c.checkExpression(e.Value)
	_ = valueType
	return targetType
}

// checkReadonlyAssignment reports an assignment to a readonly property,
// unless it is a `this.field = ...` assignment inside that class's own
// constructor, where a readonly field gets its one legal write.
func (c *Checker) checkReadonlyAssignment(target ast.Expression) {
	me, ok := target.(*ast.MemberExpression)
	if !ok {
		return
	}
	objType, ok := c.types[me.Object]
	if !ok {
		return
	}
	rec, ok := asRecordLike(types.Resolve(objType))
	if !ok {
		return
	}
	p, found := rec.Lookup(me.Property)
	if !found || !p.Readonly {
		return
	}
	_, isThis := me.Object.(*ast.ThisExpression)
	if c.inConstructor && isThis {
		return
	}
	c.report(diag.ModifierError, me, "cannot assign to %q because it is a read-only property", me.Property)
}

func freshObjectLiteral(e ast.Expression) *ast.ObjectLiteral {
	if o, ok := e.(*ast.ObjectLiteral); ok && o.IsFresh {
		return o
	}
	return nil
}

// checkExcessProperties implements the excess-property check: every
// key on a fresh object literal must appear in expected's member set
// unless expected carries an index signature.
func (c *Checker) checkExcessProperties(expected types.Type, lit *ast.ObjectLiteral) {
	rec, ok := asRecordLike(types.Resolve(expected))
	if !ok || len(rec.Index) > 0 {
		return
	}
	allowed := map[string]bool{}
	for _, p := range rec.Properties {
		allowed[p.Name] = true
	}
	for _, p := range lit.Properties {
		if p.Spread || p.Computed != nil || p.Key == "" {
			continue
		}
		if !allowed[p.Key] {
			c.report(diag.ArityError, lit, "object literal may only specify known properties, and %q does not exist on type %s", p.Key, expected.String())
		}
	}
}

func (c *Checker) checkMemberExpression(e *ast.MemberExpression) types.Type {
	objType := c.checkExpression(e.Object)
	if e.Optional {
		objType = excludeMembers(objType, isNullish)
	}
	resolved := types.Resolve(objType)
	if u, ok := resolved.(*types.Union); ok {
		if t, ok := unionPropertyType(u, e.Property); ok {
			return t
		}
		return c.report(diag.TypeMismatch, e, "property %q does not exist on type %s", e.Property, objType.String())
	}
	rec, ok := asRecordLike(resolved)
	if !ok {
		if objType.Kind() == types.KindAny || objType.Kind() == types.KindUnknown {
			return types.Any
		}
		return c.report(diag.TypeMismatch, e, "property %q does not exist on type %s", e.Property, objType.String())
	}
	if p, found := rec.Lookup(e.Property); found {
		return p.Type
	}
	for _, idx := range rec.Index {
		if idx.KeyType.Kind() == types.KindString {
			return idx.Value
		}
	}
	return c.report(diag.TypeMismatch, e, "property %q does not exist on type %s", e.Property, objType.String())
}

func (c *Checker) checkIndexExpression(e *ast.IndexExpression) types.Type {
	objType := c.checkExpression(e.Object)
	indexType := c.checkExpression(e.Index)
	if e.Optional {
		objType = excludeMembers(objType, isNullish)
	}
	if arr, ok := types.Resolve(objType).(*types.Array); ok {
		return arr.Element
	}
	if tup, ok := types.Resolve(objType).(*types.Tuple); ok {
		if lit, ok := indexType.(*types.Literal); ok && lit.Value.IsNumber {
			n := int(lit.Value.Num)
			if n >= 0 && n < len(tup.Elements) {
				return tup.Elements[n].Type
			}
		}
		return unionOfTupleElements(tup)
	}
	resolved := types.Resolve(objType)
	if u, ok := resolved.(*types.Union); ok {
		if lit, ok := indexType.(*types.Literal); ok && lit.Value.IsString {
			if t, ok := unionPropertyType(u, lit.Value.Str); ok {
				return t
			}
		}
		return types.Any
	}
	if rec, ok := asRecordLike(resolved); ok {
		return evalIndexedAccess(rec, indexType)
	}
	return types.Any
}

func unionOfTupleElements(t *types.Tuple) types.Type {
	members := make([]types.Type, len(t.Elements))
	for i, e := range t.Elements {
		members[i] = e.Type
	}
	return unionOf(members)
}

func (c *Checker) checkNewExpression(e *ast.NewExpression) types.Type {
	calleeType := c.checkExpression(e.Callee)
	for _, a := range e.Args {
		c.checkExpression(a)
	}
	cls, ok := types.Resolve(calleeType).(*types.Class)
	if !ok {
		return types.Any
	}
	args := make([]types.Type, len(e.TypeArgs))
	for i, ta := range e.TypeArgs {
		args[i] = c.resolveType(ta)
	}
	return &types.Instance{Class: cls, TypeArgs: args}
}

func (c *Checker) checkArrayLiteral(e *ast.ArrayLiteral, expected types.Type) types.Type {
	if tup, ok := types.Resolve(expected).(*types.Tuple); ok && len(tup.Elements) == len(e.Elements) {
		elems := make([]types.TupleElement, len(e.Elements))
		for i, el := range e.Elements {
			var et types.Type
			if i < len(tup.Elements) {
				et = c.checkExpressionContextual(el, tup.Elements[i].Type)
			} else {
				et = c.checkExpression(el)
			}
			elems[i] = types.TupleElement{Type: et}
		}
		return &types.Tuple{Elements: elems}
	}
	var elemTypes []types.Type
	for _, el := range e.Elements {
		if el == nil {
			elemTypes = append(elemTypes, types.Undefined)
			continue
		}
		if spread, ok := el.(*ast.SpreadElement); ok {
			st := c.checkExpression(spread.Value)
			if arr, ok := types.Resolve(st).(*types.Array); ok {
				elemTypes = append(elemTypes, arr.Element)
				continue
			}
		}
		elemTypes = append(elemTypes, types.Widen(c.checkExpression(el)))
	}
	return &types.Array{Element: unionOf(elemTypes)}
}

func (c *Checker) checkObjectLiteral(e *ast.ObjectLiteral, expected types.Type) types.Type {
	expectedRec, _ := asRecordLike(types.Resolve(expected))
	rec := &types.Record{}
	for _, p := range e.Properties {
		if p.Spread {
			st := c.checkExpression(p.Value)
			if srcRec, ok := asRecordLike(types.Resolve(st)); ok {
				rec.Properties = append(rec.Properties, srcRec.Properties...)
			}
			continue
		}
		var contextual types.Type
		if expectedRec != nil {
			if ep, ok := expectedRec.Lookup(p.Key); ok {
				contextual = ep.Type
			}
		}
		valType := c.checkExpressionContextual(p.Value, contextual)
		if contextual == nil {
			valType = types.Widen(valType)
		}
		rec.Properties = append(rec.Properties, types.Property{Name: p.Key, Type: valType})
	}
	if expected != nil && e.IsFresh {
		c.checkExcessProperties(expected, e)
	}
	return rec
}

func (c *Checker) checkArrowFunction(e *ast.ArrowFunction, expected types.Type) types.Type {
	var contextualFn *types.Function
	if fn, ok := types.Resolve(expected).(*types.Function); ok {
		contextualFn = fn
	}
	var sig types.Signature
	var bodyType types.Type
	c.pushScope(func() {
		tps := c.resolveTypeParams(e.TypeParams)
		for _, tp := range tps {
			c.scope.DefineType(tp.Name, tp)
		}
		params := make([]types.Param, len(e.Params))
		for i, p := range e.Params {
			pt := c.paramContextualType(p, contextualFn, i)
			params[i] = types.Param{Name: p.Name, Type: pt, Optional: p.Optional, Rest: p.Rest}
			c.scope.DefineValue(p.Name, pt, false)
		}
		var returnType types.Type
		if e.ReturnType != nil {
			returnType = c.resolveType(e.ReturnType)
		}
		outerReturn := c.currentReturn
		c.currentReturn = returnType
		if e.Body != nil {
			bodyType = c.checkExpression(e.Body)
		} else if e.BlockBody != nil {
			c.checkStatement(e.BlockBody)
			bodyType = c.currentReturn
			if bodyType == nil {
				bodyType = types.Void
			}
		}
		if returnType == nil {
			returnType = bodyType
		}
		c.currentReturn = outerReturn
		sig = types.Signature{TypeParams: tps, Params: params, Return: returnType}
	})
	return &types.Function{Signatures: []types.Signature{sig}}
}

func (c *Checker) paramContextualType(p *ast.Param, contextualFn *types.Function, i int) types.Type {
	if p.Type != nil {
		return c.resolveType(p.Type)
	}
	if contextualFn != nil && len(contextualFn.Signatures) > 0 && i < len(contextualFn.Signatures[0].Params) {
		return contextualFn.Signatures[0].Params[i].Type
	}
	return types.Any
}

func (c *Checker) checkTypeAssertion(e *ast.TypeAssertionExpression) types.Type {
	operandType := c.checkExpression(e.Expr)
	if e.Const {
		return operandType // `as const` keeps the literal type unwidened
	}
	return c.resolveType(e.Type)
}
