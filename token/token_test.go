package token

import (
	"testing"
)

func TestNewSetsNilLiteral(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		text string
		want Token
	}{
		{"ASSIGN token", ASSIGN, "=", Token{Kind: ASSIGN, Lexeme: "=", Line: 3}},
		{"keyword token", WHILE, "while", Token{Kind: WHILE, Lexeme: "while", Line: 3}},
		{"MULT token", STAR, "*", Token{Kind: STAR, Lexeme: "*", Line: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.kind, tt.text, 3)
			if got != tt.want {
				t.Errorf("New() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLiteralCarriesDecodedValue(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		text string
		lit  any
		want Token
	}{
		{"NUMBER literal", NUMBER, "42", int64(42), Token{Kind: NUMBER, Lexeme: "42", Literal: int64(42), Line: 7}},
		{"STRLIT literal", STRLIT, "hi", "hi", Token{Kind: STRLIT, Lexeme: "hi", Literal: "hi", Line: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewLiteral(tt.kind, tt.text, tt.lit, 7)
			if got != tt.want {
				t.Errorf("NewLiteral() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeywordsMapsEveryReservedWord(t *testing.T) {
	want := map[string]Kind{
		"int":     INT,
		"void":    VOID,
		"string":  STRING,
		"if":      IF,
		"else":    ELSE,
		"while":   WHILE,
		"return":  RETURN,
		"write":   WRITE,
		"writeln": WRITELN,
		"read":    READ,
	}
	for text, kind := range want {
		if Keywords[text] != kind {
			t.Errorf("Keywords[%q] = %v, want %v", text, Keywords[text], kind)
		}
	}
	if _, ok := Keywords["notakeyword"]; ok {
		t.Errorf("Keywords contains unexpected entry %q", "notakeyword")
	}
}

func TestSymbolsListsTwoCharOperatorsBeforeTheirPrefix(t *testing.T) {
	index := make(map[string]int, len(Symbols))
	for i, sym := range Symbols {
		index[sym.Lexeme] = i
	}
	pairs := [][2]string{{"==", "="}, {"!=", "!"}, {"<=", "<"}, {">=", ">"}}
	for _, pair := range pairs {
		long, short := pair[0], pair[1]
		if _, ok := index[short]; !ok {
			continue // "!" has no standalone symbol entry
		}
		if index[long] >= index[short] {
			t.Errorf("Symbols lists %q at %d, want it before %q at %d", long, index[long], short, index[short])
		}
	}
}

func TestTokenStringIncludesKindLexemeAndLine(t *testing.T) {
	got := New(SEMI, ";", 12).String()
	want := `Token{; ";" line=12}`
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
