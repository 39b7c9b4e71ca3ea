// Package token defines the lexical token kinds and source positions shared
// by the lexer, parser, and diagnostics packages.
package token

import "fmt"

// Position is a 1-indexed line/column plus a 0-indexed byte offset into the
// original source. Every token and AST node carries one so diagnostics can
// point a caret at the exact offending column.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsZero reports whether the position was never set.
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0 && p.Offset == 0
}
