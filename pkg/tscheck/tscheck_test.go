package tscheck_test

import (
	"testing"

	"github.com/tscore-lang/tscore/pkg/tscheck"
)

func TestCheck_ValidSource(t *testing.T) {
	engine, err := tscheck.New()
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}

	_, err = engine.Check(`let x: number = 1 + 2;`)
	if err != nil {
		t.Errorf("Check() returned unexpected error: %v", err)
	}
}

func TestCheck_TypeMismatch(t *testing.T) {
	engine, err := tscheck.New()
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}

	_, err = engine.Check(`let x: number = "hi";`)
	if err == nil {
		t.Fatal("expected a type error, got nil")
	}

	cerr, ok := err.(*tscheck.CompileError)
	if !ok {
		t.Fatalf("expected *CompileError, got %T", err)
	}
	if cerr.Stage != "checking" {
		t.Errorf("expected stage %q, got %q", "checking", cerr.Stage)
	}
	if len(cerr.Errors) == 0 {
		t.Fatal("expected at least one diagnostic")
	}
	if !cerr.Errors[0].IsError() {
		t.Errorf("expected diagnostic to report IsError() == true")
	}
}

func TestCheck_ParseErrorStage(t *testing.T) {
	engine, err := tscheck.New()
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}

	_, err = engine.Check(`let x: =;`)
	if err == nil {
		t.Fatal("expected a parse error, got nil")
	}
	cerr, ok := err.(*tscheck.CompileError)
	if !ok {
		t.Fatalf("expected *CompileError, got %T", err)
	}
	if cerr.Stage != "parsing" {
		t.Errorf("expected stage %q, got %q", "parsing", cerr.Stage)
	}
}

func TestCheck_TypeCheckDisabled(t *testing.T) {
	engine, err := tscheck.New(tscheck.WithTypeCheck(false))
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}

	_, err = engine.Check(`let x: number = "hi";`)
	if err != nil {
		t.Errorf("expected no error with type checking disabled, got: %v", err)
	}
}

func TestTokens_ReportsIllegalByte(t *testing.T) {
	engine, err := tscheck.New()
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}

	toks := engine.Tokens("let x = 1; \x00")
	foundIllegal := false
	for _, tok := range toks {
		if tok.Kind.String() == "ILLEGAL" {
			foundIllegal = true
		}
	}
	if !foundIllegal {
		t.Errorf("expected an ILLEGAL token for the embedded NUL byte")
	}
}
