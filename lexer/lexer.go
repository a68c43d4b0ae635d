// Package lexer implements BPL's scanner: a small hand-rolled DFA that
// turns source text into a stream of token.Token values.
package lexer

import (
	"strconv"
	"strings"

	"github.com/bpl-lang/bplc/diagnostics"
	"github.com/bpl-lang/bplc/token"
)

func isLetter(char rune) bool {
	return 'a' <= char && char <= 'z' || 'A' <= char && char <= 'Z' || char == '_'
}

func isDigit(char rune) bool {
	return '0' <= char && char <= '9'
}

func isAlnum(char rune) bool {
	return isLetter(char) || isDigit(char)
}

// Lexer holds the scanning state for one source file. It is driven one
// token at a time through Next; Scan is a convenience wrapper that
// drains the whole stream.
type Lexer struct {
	file       string
	characters []rune
	pos        int
	line       int
}

// New returns a Lexer ready to scan input, reporting diagnostics
// against the given file name.
func New(file, input string) *Lexer {
	return &Lexer{file: file, characters: []rune(input), line: 1}
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.characters)
}

func (l *Lexer) current() rune {
	if l.atEnd() {
		return 0
	}
	return l.characters[l.pos]
}

func (l *Lexer) peekAt(offset int) rune {
	idx := l.pos + offset
	if idx >= len(l.characters) {
		return 0
	}
	return l.characters[idx]
}

func (l *Lexer) advance() rune {
	c := l.current()
	l.pos++
	if c == '\n' {
		l.line++
	}
	return c
}

// Next scans and returns the single next token. Once Next returns a
// non-nil error, BPL's no-recovery policy means the caller must stop —
// the Lexer's internal state after an error is not meaningful.
func (l *Lexer) Next() (token.Token, error) {
	if err := l.skipWhitespaceAndComments(); err != nil {
		return token.Token{}, err
	}

	if l.atEnd() {
		return token.New(token.EOF, "", l.line), nil
	}

	startLine := l.line
	c := l.current()

	switch {
	case c == '"':
		return l.scanString(startLine)
	case isLetter(c):
		return l.scanIdentifier(startLine), nil
	case isDigit(c):
		return l.scanNumber(startLine)
	default:
		return l.scanSymbol(startLine)
	}
}

func (l *Lexer) skipWhitespaceAndComments() error {
	for {
		switch {
		case !l.atEnd() && isSpace(l.current()):
			l.advance()
		case l.current() == '/' && l.peekAt(1) == '*':
			startLine := l.line
			l.advance()
			l.advance()
			for !(l.current() == '*' && l.peekAt(1) == '/') && !l.atEnd() {
				l.advance()
			}
			if l.atEnd() {
				return diagnostics.NewLexError(l.file, startLine, "unclosed comment")
			}
			l.advance()
			l.advance()
		default:
			return nil
		}
	}
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func (l *Lexer) scanString(startLine int) (token.Token, error) {
	l.advance() // opening quote
	var sb strings.Builder
	for {
		if l.atEnd() {
			return token.Token{}, diagnostics.NewLexError(l.file, startLine, "unclosed string literal")
		}
		if l.current() == '\n' {
			return token.Token{}, diagnostics.NewLexError(l.file, startLine, "unexpected newline in string literal")
		}
		if l.current() == '"' {
			l.advance()
			break
		}
		sb.WriteRune(l.advance())
	}
	text := sb.String()
	return token.NewLiteral(token.STRLIT, text, text, startLine), nil
}

func (l *Lexer) scanIdentifier(startLine int) token.Token {
	start := l.pos
	for !l.atEnd() && isAlnum(l.current()) {
		l.advance()
	}
	text := string(l.characters[start:l.pos])
	if kind, ok := token.Keywords[text]; ok {
		return token.New(kind, text, startLine)
	}
	return token.New(token.IDENT, text, startLine)
}

func (l *Lexer) scanNumber(startLine int) (token.Token, error) {
	start := l.pos
	for !l.atEnd() && isDigit(l.current()) {
		l.advance()
	}
	text := string(l.characters[start:l.pos])
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return token.Token{}, diagnostics.NewLexError(l.file, startLine, "invalid integer literal %q", text)
	}
	return token.NewLiteral(token.NUMBER, text, value, startLine), nil
}

// scanSymbol performs maximal munch: it grows a candidate lexeme one
// character at a time as long as some entry in token.Symbols still
// starts with it, then commits to the longest match found.
func (l *Lexer) scanSymbol(startLine int) (token.Token, error) {
	start := l.pos
	for !l.atEnd() {
		candidate := string(l.characters[start : l.pos+1])
		if !anySymbolHasPrefix(candidate) {
			break
		}
		l.advance()
	}
	lexeme := string(l.characters[start:l.pos])
	if lexeme == "" {
		bad := l.advance()
		return token.Token{}, diagnostics.NewLexError(l.file, startLine, "unexpected character %q", bad)
	}
	for _, sym := range token.Symbols {
		if sym.Lexeme == lexeme {
			return token.New(sym.Kind, lexeme, startLine), nil
		}
	}
	return token.Token{}, diagnostics.NewLexError(l.file, startLine, "unexpected character sequence %q", lexeme)
}

// anySymbolHasPrefix reports whether some symbol lexeme starts with
// prefix (a complete symbol such as ";" counts as its own prefix).
func anySymbolHasPrefix(prefix string) bool {
	for _, sym := range token.Symbols {
		if strings.HasPrefix(sym.Lexeme, prefix) {
			return true
		}
	}
	return false
}

// Scan drains the lexer into a slice of tokens, stopping at the first
// error (spec's no-recovery policy) or after the EOF token.
func Scan(file, input string) ([]token.Token, error) {
	l := New(file, input)
	var tokens []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens, nil
		}
	}
}
