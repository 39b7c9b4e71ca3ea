package checker

import (
	"strings"
	"testing"

	"github.com/tscore-lang/tscore/internal/parser"
)

// checkSource parses and checks input, failing the test if parsing
// itself produced diagnostics (a checker test should never be
// confounded by a syntax error in its own fixture).
func checkSource(t *testing.T, input string) *CheckResult {
	t.Helper()
	prog, bag := parser.ParseProgram(input, "<test>")
	if bag.HasErrors() {
		t.Fatalf("parser errors: %s", bag.Format(false))
	}
	return Check(prog, "<test>", input)
}

func expectNoErrors(t *testing.T, input string) {
	t.Helper()
	result := checkSource(t, input)
	if len(result.Diagnostics) > 0 {
		t.Errorf("expected no diagnostics, got: %v", result.Diagnostics[0])
	}
}

func expectError(t *testing.T, input string, substr string) {
	t.Helper()
	result := checkSource(t, input)
	if len(result.Diagnostics) == 0 {
		t.Fatalf("expected a diagnostic containing %q, got none", substr)
	}
	for _, d := range result.Diagnostics {
		if strings.Contains(d.Message, substr) {
			return
		}
	}
	t.Errorf("expected a diagnostic containing %q, got: %v", substr, result.Diagnostics)
}

func TestBasicVarAssignment(t *testing.T) {
	expectNoErrors(t, `let x: number = 1; let y: string = "hi";`)
}

func TestVarAssignmentMismatch(t *testing.T) {
	expectError(t, `let x: number = "hi";`, "cannot assign")
}

func TestConstWithInitializerIsAccepted(t *testing.T) {
	expectNoErrors(t, `const x = 1;`)
}

func TestGenericIdentityInference(t *testing.T) {
	expectNoErrors(t, `
		function id<T>(v: T): T { return v; }
		let a: number = id(1);
		let b: string = id("hi");
	`)
}

func TestGenericIdentityInferenceMismatch(t *testing.T) {
	expectError(t, `
		function id<T>(v: T): T { return v; }
		let a: string = id(1);
	`, "cannot assign")
}

func TestDiscriminatedUnionNarrowing(t *testing.T) {
	expectNoErrors(t, `
		interface Circle { kind: "circle"; radius: number; }
		interface Square { kind: "square"; side: number; }
		type Shape = Circle | Square;
		function area(s: Shape): number {
			if (s.kind === "circle") {
				return s.radius * s.radius;
			}
			return s.side * s.side;
		}
	`)
}

func TestInterfaceDeclarationMerging(t *testing.T) {
	expectNoErrors(t, `
		interface Box { width: number; }
		interface Box { height: number; }
		let b: Box = { width: 1, height: 2 };
	`)
}

func TestInterfaceMergeConflictingMember(t *testing.T) {
	expectError(t, `
		interface Box { width: number; }
		interface Box { width: string; }
	`, "merged declarations disagree")
}

func TestRecursiveTypeAlias(t *testing.T) {
	expectNoErrors(t, `
		type List<T> = { value: T; next: List<T> | null };
		let l: List<number> = { value: 1, next: null };
	`)
}

func TestExcessPropertyCheck(t *testing.T) {
	expectError(t, `
		interface Point { x: number; y: number; }
		let p: Point = { x: 1, y: 2, z: 3 };
	`, "may only specify known properties")
}

func TestSwitchNarrowsLiteralUnion(t *testing.T) {
	expectNoErrors(t, `
		function describe(x: "a" | "b" | "c"): string {
			switch (x) {
				case "a": return "first";
				case "b": return "second";
				default: return "other";
			}
		}
	`)
}

func TestClassParameterProperty(t *testing.T) {
	expectNoErrors(t, `
		class Point {
			constructor(public x: number, public y: number) {}
		}
		let p = new Point(1, 2);
		let n: number = p.x;
	`)
}

func TestTypeGuardNarrowing(t *testing.T) {
	expectNoErrors(t, `
		interface Cat { kind: "cat"; meow(): void; }
		interface Dog { kind: "dog"; bark(): void; }
		function isCat(x: Cat | Dog): x is Cat {
			return x.kind === "cat";
		}
		function speak(x: Cat | Dog): void {
			if (isCat(x)) {
				x.meow();
			} else {
				x.bark();
			}
		}
	`)
}

func TestAsConstPreservesLiteral(t *testing.T) {
	expectNoErrors(t, `
		let x = 5 as const;
		let y: 5 = x;
	`)
}

func TestSatisfiesDoesNotWidenStaticType(t *testing.T) {
	expectNoErrors(t, `
		type Point = { x: number; y: number };
		const p = { x: 1, y: 2 } satisfies Point;
	`)
}

func TestOverloadMismatchReportsArgumentError(t *testing.T) {
	expectError(t, `
		function id<T>(v: T): T { return v; }
		let x = id<string>(42);
	`, "cannot assign")
}

func TestInstanceofNarrowing(t *testing.T) {
	expectNoErrors(t, `
		class Animal { move(): void {} }
		class Bird extends Animal { fly(): void {} }
		function act(a: Animal): void {
			if (a instanceof Bird) {
				a.fly();
			} else {
				a.move();
			}
		}
	`)
}

func TestAbstractMemberOutsideAbstractClass(t *testing.T) {
	expectError(t, `
		class Shape {
			abstract area(): number;
		}
	`, "abstract member")
}

func TestParameterPropertyOutsideConstructor(t *testing.T) {
	expectError(t, `
		class Point {
			constructor() {}
			move(public x: number): void {}
		}
	`, "parameter properties")
}

func TestReadonlyReassignmentOutsideConstructor(t *testing.T) {
	expectError(t, `
		class Point {
			readonly x: number;
			constructor(x: number) { this.x = x; }
			reset(): void { this.x = 0; }
		}
	`, "read-only")
}

func TestConstWithoutInitializerIsModifierError(t *testing.T) {
	_, bag := parser.ParseProgram(`const x: number;`, "<test>")
	if !bag.HasErrors() {
		t.Fatalf("expected a parse diagnostic")
	}
	for _, d := range bag.Diagnostics() {
		if strings.Contains(d.Message, "must be initialized") {
			return
		}
	}
	t.Errorf("expected const-without-initializer diagnostic, got: %v", bag.Diagnostics())
}

func TestDefiniteAssignmentRequiresTypeAnnotation(t *testing.T) {
	_, bag := parser.ParseProgram(`let x!;`, "<test>")
	if !bag.HasErrors() {
		t.Fatalf("expected a parse diagnostic")
	}
	for _, d := range bag.Diagnostics() {
		if strings.Contains(d.Message, "requires a type annotation") {
			return
		}
	}
	t.Errorf("expected definite-assignment diagnostic, got: %v", bag.Diagnostics())
}

func TestExpectErrorSuppressesFollowingDiagnostic(t *testing.T) {
	expectNoErrors(t, "// @ts-expect-error\nlet x: number = \"oops\";\n")
}

func TestUnusedExpectErrorDirectiveIsReported(t *testing.T) {
	expectError(t, "// @ts-expect-error\nlet x: number = 1;\n", "unused '@ts-expect-error' directive")
}

func TestExpectErrorOnlySuppressesOneDiagnostic(t *testing.T) {
	result := checkSource(t, "// @ts-expect-error\nlet x: number = \"oops\"; let y: number = \"oops\";\n")
	if len(result.Diagnostics) != 1 {
		t.Fatalf("expected exactly one surviving diagnostic, got %v", result.Diagnostics)
	}
}
