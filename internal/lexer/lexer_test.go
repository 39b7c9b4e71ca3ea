package lexer

import (
	"testing"

	"github.com/tscore-lang/tscore/internal/token"
)

func collect(src string) []token.Token {
	l := New(src, "test.ts")
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestBasicTokens(t *testing.T) {
	toks := collect("let x: number = 10;")
	wantKinds := []token.Kind{
		token.LET, token.IDENT, token.COLON, token.IDENT, token.ASSIGN,
		token.NUMBER, token.SEMICOLON, token.EOF,
	}
	if len(toks) != len(wantKinds) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(wantKinds), toks)
	}
	for i, k := range wantKinds {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestContextualKeywordsAreIdent(t *testing.T) {
	for _, src := range []string{"using", "type", "from", "as", "of", "satisfies", "infer", "asserts", "keyof", "is", "readonly"} {
		toks := collect(src)
		if toks[0].Kind != token.IDENT {
			t.Errorf("%q: got kind %s, want IDENT (contextual keyword)", src, toks[0].Kind)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"10", 10},
		{"1.5", 1.5},
		{"1.5e2", 150},
		{"0xFF", 255},
		{"0b101", 5},
		{"0o17", 15},
		{"1_000", 1000},
	}
	for _, c := range cases {
		toks := collect(c.src)
		if toks[0].Kind != token.NUMBER {
			t.Fatalf("%q: got kind %s", c.src, toks[0].Kind)
		}
		if toks[0].Literal.Number != c.want {
			t.Errorf("%q: got %v, want %v", c.src, toks[0].Literal.Number, c.want)
		}
	}
}

func TestBigIntLiteral(t *testing.T) {
	toks := collect("123n")
	if toks[0].Kind != token.BIGINT {
		t.Fatalf("got kind %s", toks[0].Kind)
	}
	if toks[0].Literal.BigInt != "123" {
		t.Errorf("got BigInt %q", toks[0].Literal.BigInt)
	}
}

func TestStringLiteralEscapes(t *testing.T) {
	toks := collect(`"hello\nworld"`)
	if toks[0].Kind != token.STRING {
		t.Fatalf("got kind %s", toks[0].Kind)
	}
	if toks[0].Literal.String != "hello\nworld" {
		t.Errorf("got %q", toks[0].Literal.String)
	}
}

func TestPrivateIdentifier(t *testing.T) {
	toks := collect("#name")
	if toks[0].Kind != token.PRIVATE_IDENT {
		t.Fatalf("got kind %s", toks[0].Kind)
	}
	if toks[0].Lexeme != "#name" {
		t.Errorf("got lexeme %q", toks[0].Lexeme)
	}
}

func TestTemplateLiteralNoInterpolation(t *testing.T) {
	toks := collect("`hello`")
	if toks[0].Kind != token.TEMPLATE_FULL {
		t.Fatalf("got kind %s", toks[0].Kind)
	}
	if toks[0].Cooked != "hello" {
		t.Errorf("got cooked %q", toks[0].Cooked)
	}
}

func TestTemplateLiteralRoundTrip(t *testing.T) {
	l := New("`a${x}b`", "test.ts")
	head := l.NextToken()
	if head.Kind != token.TEMPLATE_HEAD || head.Cooked != "a" {
		t.Fatalf("head: got %+v", head)
	}
	ident := l.NextToken()
	if ident.Kind != token.IDENT || ident.Lexeme != "x" {
		t.Fatalf("ident: got %+v", ident)
	}
	tail := l.NextTemplatePart()
	if tail.Kind != token.TEMPLATE_TAIL || tail.Cooked != "b" {
		t.Fatalf("tail: got %+v", tail)
	}
}

func TestOperators(t *testing.T) {
	cases := []struct {
		src  string
		kind token.Kind
	}{
		{"=>", token.FAT_ARROW}, {"??", token.QUESTION_QUESTION},
		{"?.", token.QUESTION_DOT}, {"===", token.EQ_EQ_EQ},
		{"!==", token.NOT_EQ_EQ}, {"...", token.DOTDOTDOT},
		{"&&=", token.AMP_AMP_ASSIGN}, {"??=", token.QUESTION_QUESTION_ASSIGN},
	}
	for _, c := range cases {
		toks := collect(c.src)
		if toks[0].Kind != c.kind {
			t.Errorf("%q: got %s, want %s", c.src, toks[0].Kind, c.kind)
		}
	}
}

func TestLineEndingNormalization(t *testing.T) {
	toks := collect("let x = 1;\r\nlet y = 2;")
	// second 'let' should be on line 2
	for _, tok := range toks {
		if tok.Lexeme == "y" {
			if tok.Pos.Line != 2 {
				t.Errorf("got line %d, want 2", tok.Pos.Line)
			}
			return
		}
	}
	t.Fatal("did not find token 'y'")
}

func TestUnicodeIdentifier(t *testing.T) {
	toks := collect("let café = 1;")
	if toks[1].Kind != token.IDENT || toks[1].Lexeme != "café" {
		t.Fatalf("got %+v", toks[1])
	}
}

func TestPositionColumns(t *testing.T) {
	toks := collect("ab cd")
	if toks[0].Pos.Column != 1 {
		t.Errorf("got column %d, want 1", toks[0].Pos.Column)
	}
	if toks[1].Pos.Column != 4 {
		t.Errorf("got column %d, want 4", toks[1].Pos.Column)
	}
}
