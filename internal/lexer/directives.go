package lexer

import (
	"strings"

	"github.com/tscore-lang/tscore/internal/token"
)

// recordLineComment inspects one `//`-introduced comment body (the text
// following the slashes, not including them) for the two directive
// forms this language recognizes: `@ts-expect-error` suppression
// comments and triple-slash `/// <reference path="...">` hints. Plain
// comments that match neither form are simply discarded, as before.
func (l *Lexer) recordLineComment(triple bool, body string, line int) {
	trimmed := strings.TrimSpace(body)
	if strings.HasPrefix(trimmed, "@ts-expect-error") {
		l.directives = append(l.directives, token.Directive{Kind: token.DirectiveExpectError, Line: line})
		return
	}
	if !triple {
		return
	}
	if path, ok := referencePath(trimmed); ok {
		l.directives = append(l.directives, token.Directive{Kind: token.DirectiveReferencePath, Line: line, Path: path})
	}
}

// referencePath extracts the quoted path out of a `<reference
// path="...">` (or self-closing `.../>`) tag.
func referencePath(s string) (string, bool) {
	const open = `<reference path="`
	i := strings.Index(s, open)
	if i < 0 {
		return "", false
	}
	rest := s[i+len(open):]
	j := strings.IndexByte(rest, '"')
	if j < 0 {
		return "", false
	}
	return rest[:j], true
}
