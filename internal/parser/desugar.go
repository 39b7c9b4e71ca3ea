package parser

import (
	"github.com/tscore-lang/tscore/internal/ast"
	"github.com/tscore-lang/tscore/internal/token"
)

// desugarForStatement lowers `for (init; cond; update) body` into a
// SequenceStatement `init; while (cond) { body; update; }`, giving the
// checker a single loop construct to reason about. The sequence opens
// no block scope of its own, and the update is appended as the last
// statement of the while body, so a `continue` in body skips it.
func (p *Parser) desugarForStatement(f *ast.ForStatement) ast.Statement {
	cond := f.Condition
	if cond == nil {
		cond = &ast.BooleanLiteral{Token: f.Token, Value: true}
	}

	whileBody := &ast.BlockStatement{Token: f.Token}
	if block, ok := f.Body.(*ast.BlockStatement); ok {
		whileBody.Statements = append(whileBody.Statements, block.Statements...)
	} else if f.Body != nil {
		whileBody.Statements = append(whileBody.Statements, f.Body)
	}
	if f.Update != nil {
		whileBody.Statements = append(whileBody.Statements, &ast.ExpressionStatement{Token: f.Token, Expr: f.Update})
	}

	whileStmt := &ast.WhileStatement{Token: f.Token, Condition: cond, Body: whileBody}

	seq := &ast.SequenceStatement{Token: f.Token}
	if f.Init != nil {
		seq.Statements = append(seq.Statements, f.Init)
	}
	seq.Statements = append(seq.Statements, whileStmt)
	return seq
}

// desugarVarStatement lowers any destructuring declarator into a
// SequenceStatement of a single temporary binding followed by plain
// bindings extracted from it. Declarators without a
// Pattern pass through unchanged, and the common case of a statement
// with no destructuring at all returns the original node untouched.
func (p *Parser) desugarVarStatement(stmt *ast.VarStatement) ast.Statement {
	hasPattern := false
	for _, d := range stmt.Declarators {
		if d.Pattern != nil {
			hasPattern = true
			break
		}
	}
	if !hasPattern {
		return stmt
	}

	seq := &ast.SequenceStatement{Token: stmt.Token}
	tmpCounter := 0
	for _, d := range stmt.Declarators {
		if d.Pattern == nil {
			seq.Statements = append(seq.Statements, &ast.VarStatement{
				Token:       stmt.Token,
				Kind:        stmt.Kind,
				Declarators: []ast.VarDeclarator{d},
			})
			continue
		}
		tmpCounter++
		tmpName := p.tempName(tmpCounter)
		seq.Statements = append(seq.Statements, &ast.VarStatement{
			Token: stmt.Token,
			Kind:  stmt.Kind,
			Declarators: []ast.VarDeclarator{{
				Name: tmpName,
				Type: d.Type,
				Init: d.Init,
			}},
		})
		tmpRef := &ast.Identifier{Token: stmt.Token, Name: tmpName}
		seq.Statements = append(seq.Statements, p.bindPattern(stmt.Token, stmt.Kind, d.Pattern, tmpRef)...)
	}
	return seq
}

func (p *Parser) tempName(n int) string {
	digits := "0123456789"
	if n < 10 {
		return "__destructure_" + string(digits[n])
	}
	return "__destructure_tmp"
}

// bindPattern recursively expands a destructuring Pattern bound to the
// expression src into a flat list of plain VarStatements, desugaring
// object-rest into a call to the `__objectRest` runtime helper.
func (p *Parser) bindPattern(tok token.Token, kind ast.VarKind, pat ast.Pattern, src ast.Expression) []ast.Statement {
	switch pt := pat.(type) {
	case *ast.IdentifierPattern:
		init := src
		if pt.Default != nil {
			init = &ast.ConditionalExpression{
				Token: tok,
				Condition: &ast.BinaryExpression{
					Token: tok, Left: src, Operator: "===",
					Right: &ast.UndefinedLiteral{Token: tok},
				},
				Then: pt.Default,
				Else: src,
			}
		}
		return []ast.Statement{&ast.VarStatement{
			Token: tok, Kind: kind,
			Declarators: []ast.VarDeclarator{{Name: pt.Name, Init: init}},
		}}

	case *ast.ArrayPattern:
		var out []ast.Statement
		for i, el := range pt.Elements {
			if el.Pattern == nil {
				continue // hole
			}
			if el.Rest {
				rest := &ast.CallExpression{
					Token: tok,
					Callee: &ast.MemberExpression{Token: tok, Object: src, Property: "slice"},
					Args:   []ast.Expression{&ast.NumberLiteral{Token: tok, Value: float64(i)}},
				}
				out = append(out, p.bindPattern(tok, kind, el.Pattern, rest)...)
				continue
			}
			item := &ast.IndexExpression{Token: tok, Object: src, Index: &ast.NumberLiteral{Token: tok, Value: float64(i)}}
			out = append(out, p.bindPattern(tok, kind, el.Pattern, item)...)
		}
		return out

	case *ast.ObjectPattern:
		var out []ast.Statement
		for _, prop := range pt.Properties {
			if prop.Rest {
				excluded := make([]ast.Expression, len(prop.RestExcludedKeys))
				for i, k := range prop.RestExcludedKeys {
					excluded[i] = &ast.StringLiteral{Token: tok, Value: k}
				}
				restCall := &ast.CallExpression{
					Token:  tok,
					Callee: &ast.Identifier{Token: tok, Name: "__objectRest"},
					Args:   []ast.Expression{src, &ast.ArrayLiteral{Token: tok, Elements: excluded}},
				}
				out = append(out, p.bindPattern(tok, kind, prop.Value, restCall)...)
				continue
			}
			var member ast.Expression
			if prop.Computed != nil {
				member = &ast.IndexExpression{Token: tok, Object: src, Index: prop.Computed}
			} else {
				member = &ast.MemberExpression{Token: tok, Object: src, Property: prop.Key}
			}
			if prop.Default != nil {
				member = &ast.ConditionalExpression{
					Token: tok,
					Condition: &ast.BinaryExpression{
						Token: tok, Left: member, Operator: "===",
						Right: &ast.UndefinedLiteral{Token: tok},
					},
					Then: prop.Default,
					Else: member,
				}
			}
			out = append(out, p.bindPattern(tok, kind, prop.Value, member)...)
		}
		return out
	}
	return nil
}
