// Package diag provides diagnostic formatting for the checker: source-
// anchored errors with line/column context and a caret indicator.
package diag

import (
	"fmt"
	"strings"

	"github.com/tscore-lang/tscore/internal/token"
)

// Kind classifies a Diagnostic for programmatic handling (e.g. the CLI's
// --json output).
type Kind int

const (
	ParseError Kind = iota
	NameError
	TypeMismatch
	ConstraintError
	ArityError
	ModifierError
	InternalError
)

func (k Kind) String() string {
	switch k {
	case ParseError:
		return "ParseError"
	case NameError:
		return "NameError"
	case TypeMismatch:
		return "TypeMismatch"
	case ConstraintError:
		return "ConstraintError"
	case ArityError:
		return "ArityError"
	case ModifierError:
		return "ModifierError"
	case InternalError:
		return "InternalError"
	default:
		return "Unknown"
	}
}

// Diagnostic is a single compiler error, anchored to a source position.
type Diagnostic struct {
	Kind    Kind
	Message string
	Pos     token.Position
	File    string
	Source  string
}

// New creates a Diagnostic. Source is optional; when present it enables
// caret-style rendering in Format.
func New(kind Kind, pos token.Position, file, source, message string, args ...any) *Diagnostic {
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}
	return &Diagnostic{Kind: kind, Message: message, Pos: pos, File: file, Source: source}
}

func (d *Diagnostic) Error() string { return d.Format(false) }

// Format renders the diagnostic with a line/column header, the offending
// source line, and a caret pointing at the column. color adds ANSI bold/
// red escapes for terminal output.
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	if d.File != "" {
		fmt.Fprintf(&sb, "%s: error %s at %s:%d:%d\n", d.Kind, d.Kind, d.File, d.Pos.Line, d.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "%s: error at %d:%d\n", d.Kind, d.Pos.Line, d.Pos.Column)
	}

	if line := sourceLine(d.Source, d.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", d.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+max(d.Pos.Column-1, 0)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(d.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Bag accumulates diagnostics during lexing, parsing, and checking.
type Bag struct {
	diagnostics []*Diagnostic
}

func (b *Bag) Add(d *Diagnostic) { b.diagnostics = append(b.diagnostics, d) }

func (b *Bag) Addf(kind Kind, pos token.Position, file, source, message string, args ...any) {
	b.Add(New(kind, pos, file, source, message, args...))
}

func (b *Bag) HasErrors() bool { return len(b.diagnostics) > 0 }

func (b *Bag) Diagnostics() []*Diagnostic { return b.diagnostics }

// Format renders every diagnostic in the bag, numbered when there is more
// than one.
func (b *Bag) Format(color bool) string {
	if len(b.diagnostics) == 0 {
		return ""
	}
	if len(b.diagnostics) == 1 {
		return b.diagnostics[0].Format(color)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "found %d error(s):\n\n", len(b.diagnostics))
	for i, d := range b.diagnostics {
		fmt.Fprintf(&sb, "[%d/%d] ", i+1, len(b.diagnostics))
		sb.WriteString(d.Format(color))
		if i < len(b.diagnostics)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
