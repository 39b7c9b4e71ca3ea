package token

// DirectiveKind classifies a comment-borne directive recognized by the
// lexer out of trivia that would otherwise be discarded.
type DirectiveKind int

const (
	// DirectiveExpectError marks a `// @ts-expect-error` comment: the
	// checker suppresses the first diagnostic on the following line and
	// reports the directive itself when that line produces none.
	DirectiveExpectError DirectiveKind = iota
	// DirectiveReferencePath marks a triple-slash `/// <reference
	// path="..."/>` comment, a module-resolution hint.
	DirectiveReferencePath
)

// Directive is one recognized directive comment, anchored to the
// source line it appeared on.
type Directive struct {
	Kind DirectiveKind
	Line int
	Path string // populated for DirectiveReferencePath
}
