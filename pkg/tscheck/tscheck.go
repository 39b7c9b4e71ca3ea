// Package tscheck is the public facade over the lexer, parser, and
// checker: one Engine value configured with functional options
// (New(opts...), WithXxx options, Parse/Check returning structured
// errors instead of panics).
package tscheck

import (
	"io"

	"github.com/tscore-lang/tscore/internal/ast"
	"github.com/tscore-lang/tscore/internal/checker"
	"github.com/tscore-lang/tscore/internal/diag"
	"github.com/tscore-lang/tscore/internal/lexer"
	"github.com/tscore-lang/tscore/internal/parser"
	"github.com/tscore-lang/tscore/internal/token"
)

// Engine holds configuration shared across Parse/Check calls.
type Engine struct {
	fileName  string
	output    io.Writer
	typeCheck bool
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithFileName sets the name diagnostics are tagged with; defaults to
// "<input>".
func WithFileName(name string) Option {
	return func(e *Engine) { e.fileName = name }
}

// WithOutput sets the writer diagnostic-reporting helpers write to.
// Unused by Check itself, but gives callers embedding an Engine in a
// REPL-style tool somewhere to send progress output.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.output = w }
}

// WithTypeCheck toggles running the checker pass; Parse always runs
// regardless of this setting. Defaults to true.
func WithTypeCheck(enabled bool) Option {
	return func(e *Engine) { e.typeCheck = enabled }
}

// New creates an Engine. Construction cannot currently fail; it returns
// an error to keep the signature stable if that changes (e.g. loading a
// project config file).
func New(opts ...Option) (*Engine, error) {
	e := &Engine{fileName: "<input>", output: io.Discard, typeCheck: true}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Severity classifies a diagnostic for API consumers; the checker
// currently reports everything as an error (there is no warning tier
// yet), but the type is public so it can grow one.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is the facade's structured error shape, decoupled from
// internal/diag.Diagnostic so callers don't need to import internal
// packages.
type Diagnostic struct {
	Kind     string
	Message  string
	Line     int
	Column   int
	Severity Severity
}

func (d *Diagnostic) IsError() bool   { return d.Severity == SeverityError }
func (d *Diagnostic) IsWarning() bool { return d.Severity == SeverityWarning }

func fromDiag(d *diag.Diagnostic) *Diagnostic {
	return &Diagnostic{
		Kind:     d.Kind.String(),
		Message:  d.Message,
		Line:     d.Pos.Line,
		Column:   d.Pos.Column,
		Severity: SeverityError,
	}
}

// CompileError wraps every diagnostic collected during a failed Parse
// or Check call; Stage identifies which phase produced them.
type CompileError struct {
	Stage  string
	Errors []*Diagnostic
}

func (e *CompileError) Error() string {
	if len(e.Errors) == 0 {
		return e.Stage + " failed"
	}
	return e.Stage + " failed: " + e.Errors[0].Message
}

// Tokens lexes source into a flat token slice, stopping at EOF. It
// never fails: illegal bytes surface as token.ILLEGAL entries rather
// than a Go error, so a caller can filter them the way the lex
// subcommand's --only-errors flag does.
func (e *Engine) Tokens(source string) []token.Token {
	l := lexer.New(source, e.fileName)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks
}

// Parse parses source into a Program, returning a *CompileError when
// the parser reports any diagnostics.
func (e *Engine) Parse(source string) (*ast.Program, error) {
	prog, bag := parser.ParseProgram(source, e.fileName)
	if bag.HasErrors() {
		return prog, &CompileError{Stage: "parsing", Errors: toDiagnostics(bag)}
	}
	return prog, nil
}

// CheckResult is the outcome of a successful type-checking pass: every
// diagnostic collected (empty on a clean pass) plus the expression-type
// table callers can use to build tooling (hovers, completions) on top.
// References carries any triple-slash `/// <reference path="...">`
// hints the source declared, for a caller doing its own module
// resolution on top of this package.
type CheckResult struct {
	Diagnostics []*Diagnostic
	ExprTypes   map[ast.Expression]string
	References  []string
}

// Check parses and, unless disabled via WithTypeCheck(false), type-checks
// source, returning a *CompileError whose Stage is "parsing" or
// "checking" depending on where diagnostics originated.
func (e *Engine) Check(source string) (*CheckResult, error) {
	prog, bag := parser.ParseProgram(source, e.fileName)
	if bag.HasErrors() {
		return nil, &CompileError{Stage: "parsing", Errors: toDiagnostics(bag)}
	}
	if !e.typeCheck {
		return &CheckResult{}, nil
	}

	result := checker.Check(prog, e.fileName, source)
	exprTypes := make(map[ast.Expression]string, len(result.ExprTypes))
	for expr, t := range result.ExprTypes {
		exprTypes[expr] = t.String()
	}
	if len(result.Diagnostics) > 0 {
		diags := make([]*Diagnostic, len(result.Diagnostics))
		for i, d := range result.Diagnostics {
			diags[i] = fromDiag(d)
		}
		return &CheckResult{Diagnostics: diags, ExprTypes: exprTypes, References: result.References}, &CompileError{Stage: "checking", Errors: diags}
	}
	return &CheckResult{ExprTypes: exprTypes, References: result.References}, nil
}

func toDiagnostics(bag *diag.Bag) []*Diagnostic {
	ds := bag.Diagnostics()
	out := make([]*Diagnostic, len(ds))
	for i, d := range ds {
		out[i] = fromDiag(d)
	}
	return out
}
