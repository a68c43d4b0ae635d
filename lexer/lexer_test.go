package lexer

import (
	"reflect"
	"testing"

	"github.com/bpl-lang/bplc/token"
)

func runScanSuccess(t *testing.T, input string, expected []token.Token) {
	t.Helper()
	t.Run("ValidTokenScan", func(t *testing.T) {
		got, err := Scan("test.bpl", input)
		if err != nil {
			t.Fatalf("Scan() raised an error: %v", err)
		}
		if !reflect.DeepEqual(got, expected) {
			t.Errorf("Scan() = %#v, want %#v", got, expected)
		}
	})
}

func TestOperatorsSuccess(t *testing.T) {
	expected := []token.Token{
		token.New(token.EQ, "==", 1),
		token.New(token.SLASH, "/", 1),
		token.New(token.ASSIGN, "=", 1),
		token.New(token.STAR, "*", 1),
		token.New(token.PLUS, "+", 1),
		token.New(token.GT, ">", 1),
		token.New(token.MINUS, "-", 1),
		token.New(token.LT, "<", 1),
		token.New(token.NE, "!=", 1),
		token.New(token.LE, "<=", 1),
		token.New(token.GE, ">=", 1),
		token.New(token.PERCENT, "%", 1),
		token.New(token.AMP, "&", 1),
		token.New(token.EOF, "", 1),
	}
	runScanSuccess(t, "==/=*+>-<!=<=>=%&", expected)
}

func TestScanSuccess(t *testing.T) {
	expected := []token.Token{
		token.New(token.LPAREN, "(", 1),
		token.New(token.RPAREN, ")", 1),
		token.New(token.LBRACE, "{", 1),
		token.New(token.RBRACE, "}", 1),
		token.New(token.STAR, "*", 1),
		token.New(token.STAR, "*", 1),
		token.New(token.SEMI, ";", 1),
		token.New(token.PLUS, "+", 1),
		token.New(token.NE, "!=", 1),
		token.New(token.LE, "<=", 1),
		token.New(token.EOF, "", 1),
	}
	runScanSuccess(t, "(){}**;+!=<=", expected)
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	expected := []token.Token{
		token.New(token.INT, "int", 1),
		token.New(token.IDENT, "count", 1),
		token.New(token.SEMI, ";", 1),
		token.New(token.EOF, "", 1),
	}
	runScanSuccess(t, "int count;", expected)
}

func TestNumberLiteral(t *testing.T) {
	expected := []token.Token{
		token.NewLiteral(token.NUMBER, "120", int64(120), 1),
		token.New(token.EOF, "", 1),
	}
	runScanSuccess(t, "120", expected)
}

func TestStringLiteral(t *testing.T) {
	expected := []token.Token{
		token.NewLiteral(token.STRLIT, "hello", "hello", 1),
		token.New(token.EOF, "", 1),
	}
	runScanSuccess(t, `"hello"`, expected)
}

func TestCommentIsSkipped(t *testing.T) {
	expected := []token.Token{
		token.New(token.IDENT, "x", 2),
		token.New(token.EOF, "", 2),
	}
	runScanSuccess(t, "/* comment\nspanning lines */x", expected)
}

func TestUnclosedStringLiteralFails(t *testing.T) {
	_, err := Scan("test.bpl", `"unterminated`)
	if err == nil {
		t.Fatal("expected an error for an unclosed string literal")
	}
}

func TestUnexpectedCharacterFails(t *testing.T) {
	_, err := Scan("test.bpl", "@")
	if err == nil {
		t.Fatal("expected an error for an unexpected character")
	}
}
