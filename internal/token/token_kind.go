package token

// Kind identifies the lexical category of a Token. Contextual keywords
// (`using`, `type`, `from`, `as`, `of`, `satisfies`, `infer`, `asserts`,
// `keyof`, `is`, `readonly`) are NOT represented here: the lexer always
// emits them as IDENT and the parser classifies them positionally, per
// the contract that the lexer performs no scope- or context-sensitive
// work.
type Kind int

const (
	// Special tokens
	ILLEGAL Kind = iota // unexpected byte
	EOF                 // end of input
	COMMENT             // // line or /* block */ comment

	// Identifiers and literals
	IDENT           // identifiers, including contextual keywords
	PRIVATE_IDENT   // #name
	NUMBER          // 123, 1.5, 1.5e10, 0xFF, 0b101, 0o17
	BIGINT          // 123n
	STRING          // 'x' or "x"
	TEMPLATE_FULL   // `no interpolation`
	TEMPLATE_HEAD   // `head${
	TEMPLATE_MIDDLE // }middle${
	TEMPLATE_TAIL   // }tail`

	literalEnd // marker

	// Reserved keywords (never used as ordinary identifiers)
	TRUE
	FALSE
	NULL
	UNDEFINED
	IF
	ELSE
	FOR
	WHILE
	DO
	SWITCH
	CASE
	DEFAULT
	BREAK
	CONTINUE
	RETURN
	THROW
	TRY
	CATCH
	FINALLY
	FUNCTION
	CLASS
	INTERFACE
	ENUM
	NEW
	THIS
	SUPER
	TYPEOF
	INSTANCEOF
	IN
	EXTENDS
	IMPLEMENTS
	IMPORT
	EXPORT
	VAR
	LET
	CONST
	VOID
	DELETE
	STATIC
	PUBLIC
	PRIVATE
	PROTECTED
	ABSTRACT
	ASYNC
	AWAIT
	YIELD
	NAMESPACE
	DECLARE
	NEVER
	UNKNOWN
	ANY

	keywordEnd // marker

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	LBRACK    // [
	RBRACK    // ]
	LBRACE    // {
	RBRACE    // }
	SEMICOLON // ;
	COMMA     // ,
	DOT       // .
	DOTDOTDOT // ...
	COLON     // :
	AT        // @decorator

	// Arithmetic operators
	PLUS
	MINUS
	STAR
	STAR_STAR // **
	SLASH
	PERCENT

	// Comparison operators
	EQ_EQ     // ==
	EQ_EQ_EQ  // ===
	NOT_EQ    // !=
	NOT_EQ_EQ // !==
	LESS
	GREATER
	LESS_EQ
	GREATER_EQ

	// Logical / nullish
	AMP_AMP           // &&
	PIPE_PIPE         // ||
	BANG              // !
	QUESTION_QUESTION // ??
	QUESTION_DOT      // ?.
	QUESTION          // ?

	// Bitwise
	AMP             // &
	PIPE            // |
	CARET           // ^
	TILDE           // ~
	LESS_LESS       // <<
	GREATER_GREATER // >>
	GREATER_GREATER_GREATER

	// Assignment
	ASSIGN // =
	PLUS_ASSIGN
	MINUS_ASSIGN
	STAR_ASSIGN
	SLASH_ASSIGN
	PERCENT_ASSIGN
	AMP_AMP_ASSIGN
	PIPE_PIPE_ASSIGN
	QUESTION_QUESTION_ASSIGN

	// Increment/decrement
	PLUS_PLUS
	MINUS_MINUS

	FAT_ARROW // =>
)

var kindStrings = map[Kind]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF", COMMENT: "COMMENT",
	IDENT: "IDENT", PRIVATE_IDENT: "PRIVATE_IDENT", NUMBER: "NUMBER", BIGINT: "BIGINT",
	STRING: "STRING", TEMPLATE_FULL: "TEMPLATE_FULL", TEMPLATE_HEAD: "TEMPLATE_HEAD",
	TEMPLATE_MIDDLE: "TEMPLATE_MIDDLE", TEMPLATE_TAIL: "TEMPLATE_TAIL",
	TRUE: "true", FALSE: "false", NULL: "null", UNDEFINED: "undefined",
	IF: "if", ELSE: "else", FOR: "for", WHILE: "while", DO: "do", SWITCH: "switch",
	CASE: "case", DEFAULT: "default", BREAK: "break", CONTINUE: "continue",
	RETURN: "return", THROW: "throw", TRY: "try", CATCH: "catch", FINALLY: "finally",
	FUNCTION: "function", CLASS: "class", INTERFACE: "interface", ENUM: "enum",
	NEW: "new", THIS: "this", SUPER: "super", TYPEOF: "typeof", INSTANCEOF: "instanceof",
	IN: "in", EXTENDS: "extends", IMPLEMENTS: "implements", IMPORT: "import",
	EXPORT: "export", VAR: "var", LET: "let", CONST: "const", VOID: "void",
	DELETE: "delete", STATIC: "static", PUBLIC: "public", PRIVATE: "private",
	PROTECTED: "protected", ABSTRACT: "abstract", ASYNC: "async", AWAIT: "await",
	YIELD: "yield", NAMESPACE: "namespace", DECLARE: "declare", NEVER: "never",
	UNKNOWN: "unknown", ANY: "any",
	LPAREN: "(", RPAREN: ")", LBRACK: "[", RBRACK: "]", LBRACE: "{", RBRACE: "}",
	SEMICOLON: ";", COMMA: ",", DOT: ".", DOTDOTDOT: "...", COLON: ":", AT: "@",
	PLUS: "+", MINUS: "-", STAR: "*", STAR_STAR: "**", SLASH: "/", PERCENT: "%",
	EQ_EQ: "==", EQ_EQ_EQ: "===", NOT_EQ: "!=", NOT_EQ_EQ: "!==",
	LESS: "<", GREATER: ">", LESS_EQ: "<=", GREATER_EQ: ">=",
	AMP_AMP: "&&", PIPE_PIPE: "||", BANG: "!", QUESTION_QUESTION: "??",
	QUESTION_DOT: "?.", QUESTION: "?",
	AMP: "&", PIPE: "|", CARET: "^", TILDE: "~",
	LESS_LESS: "<<", GREATER_GREATER: ">>", GREATER_GREATER_GREATER: ">>>",
	ASSIGN: "=", PLUS_ASSIGN: "+=", MINUS_ASSIGN: "-=", STAR_ASSIGN: "*=",
	SLASH_ASSIGN: "/=", PERCENT_ASSIGN: "%=", AMP_AMP_ASSIGN: "&&=",
	PIPE_PIPE_ASSIGN: "||=", QUESTION_QUESTION_ASSIGN: "??=",
	PLUS_PLUS: "++", MINUS_MINUS: "--", FAT_ARROW: "=>",
}

// String returns the canonical spelling of k, falling back to its numeric
// tag name for non-spellable kinds (IDENT, NUMBER, ...).
func (k Kind) String() string {
	if s, ok := kindStrings[k]; ok {
		return s
	}
	return "UNKNOWN_KIND"
}

// IsKeyword reports whether k is a reserved keyword (never usable as a
// plain identifier).
func (k Kind) IsKeyword() bool {
	return k > literalEnd && k < keywordEnd
}

// keywords maps reserved keyword spellings to their Kind. Contextual
// keywords are deliberately absent; the lexer leaves them as IDENT.
var keywords = map[string]Kind{
	"true": TRUE, "false": FALSE, "null": NULL, "undefined": UNDEFINED,
	"if": IF, "else": ELSE, "for": FOR, "while": WHILE, "do": DO,
	"switch": SWITCH, "case": CASE, "default": DEFAULT, "break": BREAK,
	"continue": CONTINUE, "return": RETURN, "throw": THROW, "try": TRY,
	"catch": CATCH, "finally": FINALLY, "function": FUNCTION, "class": CLASS,
	"interface": INTERFACE, "enum": ENUM, "new": NEW, "this": THIS,
	"super": SUPER, "typeof": TYPEOF, "instanceof": INSTANCEOF, "in": IN,
	"extends": EXTENDS, "implements": IMPLEMENTS, "import": IMPORT,
	"export": EXPORT, "var": VAR, "let": LET, "const": CONST, "void": VOID,
	"delete": DELETE, "static": STATIC, "public": PUBLIC, "private": PRIVATE,
	"protected": PROTECTED, "abstract": ABSTRACT, "async": ASYNC,
	"await": AWAIT, "yield": YIELD, "namespace": NAMESPACE, "declare": DECLARE,
	"never": NEVER, "unknown": UNKNOWN, "any": ANY,
}

// LookupIdent classifies a scanned identifier as a reserved keyword Kind,
// or IDENT if it is ordinary (including every contextual keyword).
func LookupIdent(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return IDENT
}
