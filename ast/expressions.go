// expressions.go contains every expression node in BPL's grammar. An
// expression always evaluates to a value of some ast.Type, assigned by
// the type checker onto the Type field each node carries.

package ast

import "github.com/bpl-lang/bplc/token"

// IntLit is an integer literal, e.g. "42".
type IntLit struct {
	LineNo int
	Value  int64
	Type   Type
}

func (e *IntLit) Accept(v ExprVisitor) any { return v.VisitIntLit(e) }
func (e *IntLit) Line() int                { return e.LineNo }

// StrLit is a string literal, e.g. "\"hello\"".
type StrLit struct {
	LineNo int
	Value  string
	Type   Type
}

func (e *StrLit) Accept(v ExprVisitor) any { return v.VisitStrLit(e) }
func (e *StrLit) Line() int                { return e.LineNo }

// VarExp refers to a plain (non-array) variable by name. Dec is filled
// in by the resolver and points at the declaration this name refers to.
type VarExp struct {
	LineNo int
	Name   string
	Dec    Decl
	Type   Type
}

func (e *VarExp) Accept(v ExprVisitor) any { return v.VisitVarExp(e) }
func (e *VarExp) Line() int                { return e.LineNo }

// ArrExp indexes into an array-typed variable, e.g. "a[i]".
type ArrExp struct {
	LineNo int
	Name   string
	Index  Expr
	Dec    Decl
	Type   Type
}

func (e *ArrExp) Accept(v ExprVisitor) any { return v.VisitArrExp(e) }
func (e *ArrExp) Line() int                { return e.LineNo }

// AddrExp takes the address of a variable or array element, e.g. "&x"
// or "&a[i]". Target is constrained by the parser and the type checker
// to *VarExp or *ArrExp.
type AddrExp struct {
	LineNo int
	Target Expr
	Type   Type
}

func (e *AddrExp) Accept(v ExprVisitor) any { return v.VisitAddrExp(e) }
func (e *AddrExp) Line() int                { return e.LineNo }

// DerefExp dereferences a pointer-typed expression, e.g. "*p".
type DerefExp struct {
	LineNo int
	Target Expr
	Type   Type
}

func (e *DerefExp) Accept(v ExprVisitor) any { return v.VisitDerefExp(e) }
func (e *DerefExp) Line() int                { return e.LineNo }

// NegExp negates an integer expression, e.g. "-x".
type NegExp struct {
	LineNo int
	Target Expr
	Type   Type
}

func (e *NegExp) Accept(v ExprVisitor) any { return v.VisitNegExp(e) }
func (e *NegExp) Line() int                { return e.LineNo }

// FunCallExp invokes a named function with a list of argument
// expressions. FunDec is filled in by the resolver.
type FunCallExp struct {
	LineNo int
	Name   string
	Args   []Expr
	FunDec *FunDec
	Type   Type
}

func (e *FunCallExp) Accept(v ExprVisitor) any { return v.VisitFunCallExp(e) }
func (e *FunCallExp) Line() int                { return e.LineNo }

// ReadExp represents the "read()" built-in, which reads one integer
// from standard input.
type ReadExp struct {
	LineNo int
	Type   Type
}

func (e *ReadExp) Accept(v ExprVisitor) any { return v.VisitReadExp(e) }
func (e *ReadExp) Line() int                { return e.LineNo }

// AssignExp assigns Value to the l-value expression Target, which must
// be a VarExp, ArrExp, or DerefExp.
type AssignExp struct {
	LineNo int
	Target Expr
	Value  Expr
	Type   Type
}

func (e *AssignExp) Accept(v ExprVisitor) any { return v.VisitAssignExp(e) }
func (e *AssignExp) Line() int                { return e.LineNo }

// ArithOp is one of BPL's five arithmetic operators.
type ArithOp int

const (
	ArithAdd ArithOp = iota
	ArithSub
	ArithMul
	ArithDiv
	ArithMod
)

// ArithExp is a binary arithmetic expression, e.g. "a + b".
type ArithExp struct {
	LineNo int
	Op     ArithOp
	Left   Expr
	Right  Expr
	Type   Type
}

func (e *ArithExp) Accept(v ExprVisitor) any { return v.VisitArithExp(e) }
func (e *ArithExp) Line() int                { return e.LineNo }

// CompOp is one of BPL's six relational operators.
type CompOp int

const (
	CompLT CompOp = iota
	CompLE
	CompGT
	CompGE
	CompEQ
	CompNE
)

// CompExp is a binary comparison expression, e.g. "a < b", producing an
// integer 0 or 1.
type CompExp struct {
	LineNo int
	Op     CompOp
	Left   Expr
	Right  Expr
	Type   Type
}

func (e *CompExp) Accept(v ExprVisitor) any { return v.VisitCompExp(e) }
func (e *CompExp) Line() int                { return e.LineNo }

// TokenToArithOp and TokenToCompOp let the parser translate the
// operator token it consumed directly into the AST's own operator
// enums, keeping token.Kind out of every later phase.
func TokenToArithOp(k token.Kind) (ArithOp, bool) {
	switch k {
	case token.PLUS:
		return ArithAdd, true
	case token.MINUS:
		return ArithSub, true
	case token.STAR:
		return ArithMul, true
	case token.SLASH:
		return ArithDiv, true
	case token.PERCENT:
		return ArithMod, true
	default:
		return 0, false
	}
}

func TokenToCompOp(k token.Kind) (CompOp, bool) {
	switch k {
	case token.LT:
		return CompLT, true
	case token.LE:
		return CompLE, true
	case token.GT:
		return CompGT, true
	case token.GE:
		return CompGE, true
	case token.EQ:
		return CompEQ, true
	case token.NE:
		return CompNE, true
	default:
		return 0, false
	}
}
