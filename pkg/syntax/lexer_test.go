package syntax

import (
	"testing"

	"github.com/consensys/go-absint/pkg/util/source"
)

func TestLexer_01(t *testing.T) {
	checkLexer(t, "", END_OF)
}

func TestLexer_02(t *testing.T) {
	checkLexer(t, "int x;", IDENTIFIER, IDENTIFIER, SEMICOLON, END_OF)
}

func TestLexer_03(t *testing.T) {
	checkLexer(t, "x = 3;", IDENTIFIER, ASSIGN, NUMBER, SEMICOLON, END_OF)
}

func TestLexer_04(t *testing.T) {
	checkLexer(t, "x = a + b * 2 - c / 4;",
		IDENTIFIER, ASSIGN, IDENTIFIER, ADD, IDENTIFIER, MUL, NUMBER,
		SUB, IDENTIFIER, DIV, NUMBER, SEMICOLON, END_OF)
}

func TestLexer_05(t *testing.T) {
	// Two-character comparisons lex before their one-character prefixes.
	checkLexer(t, "< <= > >= == !=",
		LESSTHAN, LESSTHAN_EQUALS, GREATERTHAN, GREATERTHAN_EQUALS,
		EQUALS, NOT_EQUALS, END_OF)
}

func TestLexer_06(t *testing.T) {
	checkLexer(t, "if (x < 5) { } else { }",
		IDENTIFIER, LBRACE, IDENTIFIER, LESSTHAN, NUMBER, RBRACE,
		LCURLY, RCURLY, IDENTIFIER, LCURLY, RCURLY, END_OF)
}

func TestLexer_07(t *testing.T) {
	// Line comments are dropped.
	checkLexer(t, "x = 1; // trailing comment\ny = 2;",
		IDENTIFIER, ASSIGN, NUMBER, SEMICOLON,
		IDENTIFIER, ASSIGN, NUMBER, SEMICOLON, END_OF)
}

func TestLexer_08(t *testing.T) {
	// Plain block comments are dropped, even with stars inside.
	checkLexer(t, "x /* a * comment */ = 1;",
		IDENTIFIER, ASSIGN, NUMBER, SEMICOLON, END_OF)
}

func TestLexer_09(t *testing.T) {
	// Directive comments survive lexing.
	checkLexer(t, "/*!npre 0 <= x <= 10*/",
		NPRE, NUMBER, LESSTHAN_EQUALS, IDENTIFIER, LESSTHAN_EQUALS,
		NUMBER, CLOSE_DIRECTIVE, END_OF)
}

func TestLexer_10(t *testing.T) {
	checkLexer(t, "/*!npost x == 10*/",
		NPOST, IDENTIFIER, EQUALS, NUMBER, CLOSE_DIRECTIVE, END_OF)
}

func TestLexer_11(t *testing.T) {
	// Negative literals lex as a minus followed by a number.
	checkLexer(t, "/*!npre -5 <= x <= 5*/",
		NPRE, SUB, NUMBER, LESSTHAN_EQUALS, IDENTIFIER, LESSTHAN_EQUALS,
		NUMBER, CLOSE_DIRECTIVE, END_OF)
}

func TestLexer_12(t *testing.T) {
	// Unknown characters are reported, not silently dropped.
	srcfile := source.NewSourceFile("test", []byte("x = £3;"))
	_, errs := Lex(srcfile)
	//
	if len(errs) == 0 {
		t.Errorf("expected lexing error")
	}
}

// ==================================================================
// Framework
// ==================================================================

func checkLexer(t *testing.T, input string, expected ...uint) {
	t.Helper()
	//
	srcfile := source.NewSourceFile("test", []byte(input))
	tokens, errs := Lex(srcfile)
	//
	if len(errs) != 0 {
		t.Fatalf("unexpected lexing error: %s", errs[0].Message())
	}
	//
	kinds := make([]uint, len(tokens))
	for i, token := range tokens {
		kinds[i] = token.Kind
	}
	//
	if len(kinds) != len(expected) {
		t.Fatalf("got %v, expected %v", kinds, expected)
	}
	//
	for i := range kinds {
		if kinds[i] != expected[i] {
			t.Fatalf("token %d: got %d, expected %d (%v vs %v)", i, kinds[i], expected[i], kinds, expected)
		}
	}
}
