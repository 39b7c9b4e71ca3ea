package parser

import (
	"testing"

	"github.com/tscore-lang/tscore/internal/ast"
)

func parseOK(t *testing.T, input string) *ast.Program {
	t.Helper()
	prog, bag := ParseProgram(input, "<test>")
	if bag.HasErrors() {
		t.Fatalf("unexpected parser errors: %s", bag.Format(false))
	}
	return prog
}

func TestParseVarStatement(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"let_with_type", `let x: number = 1;`},
		{"const_inferred", `const y = "hi";`},
		{"var_no_init", `var z: boolean;`},
		{"multi_declarator", `let a = 1, b = 2;`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := parseOK(t, tt.input)
			if len(prog.Statements) != 1 {
				t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
			}
			if _, ok := prog.Statements[0].(*ast.VarStatement); !ok {
				t.Fatalf("expected *ast.VarStatement, got %T", prog.Statements[0])
			}
		})
	}
}

func TestParseFunctionDecl(t *testing.T) {
	prog := parseOK(t, `function add(a: number, b: number): number { return a + b; }`)
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	fn, ok := prog.Statements[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected *ast.FunctionDecl, got %T", prog.Statements[0])
	}
	if fn.Name != "add" {
		t.Errorf("fn.Name = %q, want %q", fn.Name, "add")
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
}

func TestParseGenericFunction(t *testing.T) {
	prog := parseOK(t, `function id<T>(v: T): T { return v; }`)
	fn, ok := prog.Statements[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected *ast.FunctionDecl, got %T", prog.Statements[0])
	}
	if len(fn.TypeParams) != 1 || fn.TypeParams[0].Name != "T" {
		t.Fatalf("expected one type param named T, got %#v", fn.TypeParams)
	}
}

func TestParseClassWithParameterProperties(t *testing.T) {
	prog := parseOK(t, `
		class Point {
			constructor(public x: number, public y: number) {}
		}
	`)
	cls, ok := prog.Statements[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("expected *ast.ClassDecl, got %T", prog.Statements[0])
	}
	if len(cls.Members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(cls.Members))
	}
	ctor, ok := cls.Members[0].(*ast.MethodDecl)
	if !ok || ctor.Kind != ast.MethodConstructor {
		t.Fatalf("expected constructor method, got %#v", cls.Members[0])
	}
	if ctor.Params[0].AccessMod != "public" {
		t.Errorf("expected first param access modifier %q, got %q", "public", ctor.Params[0].AccessMod)
	}
}

func TestParseInterfaceDecl(t *testing.T) {
	prog := parseOK(t, `interface Box { width: number; height: number; }`)
	iface, ok := prog.Statements[0].(*ast.InterfaceDecl)
	if !ok {
		t.Fatalf("expected *ast.InterfaceDecl, got %T", prog.Statements[0])
	}
	if len(iface.Body.Members) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(iface.Body.Members))
	}
}

func TestParseUnionAndIntersectionTypes(t *testing.T) {
	prog := parseOK(t, `type T = (A | B) & C;`)
	alias, ok := prog.Statements[0].(*ast.TypeAliasDecl)
	if !ok {
		t.Fatalf("expected *ast.TypeAliasDecl, got %T", prog.Statements[0])
	}
	if _, ok := alias.Type.(*ast.IntersectionType); !ok {
		t.Fatalf("expected top-level IntersectionType, got %T", alias.Type)
	}
}

func TestParseArrowFunctionVsParenExpression(t *testing.T) {
	tests := []struct {
		name string
		input string
	}{
		{"arrow_single_param", `const f = (x: number) => x + 1;`},
		{"arrow_no_params", `const f = () => 1;`},
		{"grouping_expression", `const f = (1 + 2);`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parseOK(t, tt.input)
		})
	}
}

func TestParseForOfStatement(t *testing.T) {
	prog := parseOK(t, `for (const x of items) { console.log(x); }`)
	if _, ok := prog.Statements[0].(*ast.ForOfStatement); !ok {
		t.Fatalf("expected *ast.ForOfStatement, got %T", prog.Statements[0])
	}
}

func TestParseDestructuringDesugarsToSequence(t *testing.T) {
	prog := parseOK(t, `const [a, b] = pair;`)
	if _, ok := prog.Statements[0].(*ast.SequenceStatement); !ok {
		t.Fatalf("expected destructuring to desugar to *ast.SequenceStatement, got %T", prog.Statements[0])
	}
}

func TestParseSwitchStatement(t *testing.T) {
	prog := parseOK(t, `
		switch (x) {
			case 1:
				break;
			default:
				break;
		}
	`)
	sw, ok := prog.Statements[0].(*ast.SwitchStatement)
	if !ok {
		t.Fatalf("expected *ast.SwitchStatement, got %T", prog.Statements[0])
	}
	if len(sw.Cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(sw.Cases))
	}
}

func TestParseErrorRecovery(t *testing.T) {
	_, bag := ParseProgram(`let x: = ; let y: number = 2;`, "<test>")
	if !bag.HasErrors() {
		t.Fatal("expected parser errors for malformed first statement")
	}
}
