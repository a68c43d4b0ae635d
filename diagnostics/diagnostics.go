// Package diagnostics defines the single error type shared by every
// compiler phase: the lexer, the parser, the resolver and the type
// checker all fail by returning a *CompileError rather than each
// defining (and the CLI having to special-case) its own error shape.
package diagnostics

import "fmt"

// Stage identifies which compiler phase raised a CompileError.
type Stage string

const (
	Lex     Stage = "lex"
	Parse   Stage = "parse"
	Resolve Stage = "resolve"
	Type    Stage = "type"
)

// CompileError is a fatal, non-recoverable diagnostic. BPL does not
// attempt error recovery past the first failure in a phase (spec'd
// no-recovery policy), so every phase stops at the first CompileError
// it produces.
type CompileError struct {
	Stage   Stage
	File    string
	Line    int
	Message string
}

func (e *CompileError) Error() string {
	file := e.File
	if file == "" {
		file = "<input>"
	}
	return fmt.Sprintf("%s:%d: %s", file, e.Line, e.Message)
}

func NewLexError(file string, line int, format string, args ...any) *CompileError {
	return &CompileError{Stage: Lex, File: file, Line: line, Message: fmt.Sprintf(format, args...)}
}

func NewParseError(file string, line int, format string, args ...any) *CompileError {
	return &CompileError{Stage: Parse, File: file, Line: line, Message: fmt.Sprintf(format, args...)}
}

func NewResolveError(file string, line int, format string, args ...any) *CompileError {
	return &CompileError{Stage: Resolve, File: file, Line: line, Message: fmt.Sprintf(format, args...)}
}

func NewTypeError(file string, line int, format string, args ...any) *CompileError {
	return &CompileError{Stage: Type, File: file, Line: line, Message: fmt.Sprintf(format, args...)}
}
