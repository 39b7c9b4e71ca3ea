package lexer

import (
	"testing"

	"github.com/tscore-lang/tscore/internal/token"
)

func TestExpectErrorDirectiveRecorded(t *testing.T) {
	l := New("// @ts-expect-error\nlet x: number = \"oops\";\n", "test.ts")
	for {
		tok := l.NextToken()
		if tok.Kind == token.EOF {
			break
		}
	}
	dirs := l.Directives()
	if len(dirs) != 1 {
		t.Fatalf("got %d directives, want 1: %+v", len(dirs), dirs)
	}
	if dirs[0].Kind != token.DirectiveExpectError || dirs[0].Line != 1 {
		t.Errorf("got %+v, want DirectiveExpectError on line 1", dirs[0])
	}
}

func TestReferencePathDirectiveRecorded(t *testing.T) {
	l := New(`/// <reference path="./globals.d.ts" />` + "\nlet x = 1;\n", "test.ts")
	for {
		tok := l.NextToken()
		if tok.Kind == token.EOF {
			break
		}
	}
	dirs := l.Directives()
	if len(dirs) != 1 {
		t.Fatalf("got %d directives, want 1: %+v", len(dirs), dirs)
	}
	if dirs[0].Kind != token.DirectiveReferencePath || dirs[0].Path != "./globals.d.ts" {
		t.Errorf("got %+v, want DirectiveReferencePath with path ./globals.d.ts", dirs[0])
	}
}

func TestPlainCommentsAreNotDirectives(t *testing.T) {
	l := New("// just a comment\n/// also just a comment, no reference tag\nlet x = 1;\n", "test.ts")
	for {
		tok := l.NextToken()
		if tok.Kind == token.EOF {
			break
		}
	}
	if dirs := l.Directives(); len(dirs) != 0 {
		t.Errorf("got %d directives, want 0: %+v", len(dirs), dirs)
	}
}
