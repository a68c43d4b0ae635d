// declarations.go contains every declaration node in BPL's grammar:
// plain variables, arrays, and functions. Declarations carry the
// annotation fields later phases fill in in place (Type, IsGlobal,
// Offset, LocalsSize, ReturnLabel) — one AST, mutated phase by phase,
// rather than a side table keyed by node identity.
package ast

// VarDec declares a single scalar variable: "int x;" or "string *p;"
// at global scope, or as a function parameter / local declaration.
type VarDec struct {
	LineNo   int
	Name     string
	Type     Type // INT, STRING, INT_PTR, or STR_PTR
	IsGlobal bool
	Offset   int // set by codegen.AssignOffsets
}

func (d *VarDec) Accept(v DeclVisitor) any { return v.VisitVarDec(d) }
func (d *VarDec) Line() int                { return d.LineNo }

// ArrDec declares an array: "int a[10];" as a global/local, with a
// known Size ≥ 1, or "int a[]" as a function parameter, where Size is
// absent (left 0) and the declaration is pointer-valued at runtime —
// see codegen's array-parameter-vs-local-array dispatch.
type ArrDec struct {
	LineNo    int
	Name      string
	Type      Type // INT_ARR or STR_ARR
	Size      int  // 0 for a parameter, >=1 for a global/local
	IsParam   bool
	IsGlobal  bool
	Offset    int
}

func (d *ArrDec) Accept(v DeclVisitor) any { return v.VisitArrDec(d) }
func (d *ArrDec) Line() int                { return d.LineNo }

// FunDec declares a function: its return type, parameters, and body.
// Only top-level declarations may be FunDecs. Each entry in Params is a
// *VarDec (scalar/pointer parameter) or *ArrDec (array parameter, with
// IsParam set and Size 0).
type FunDec struct {
	LineNo      int
	Name        string
	ReturnType  Type
	Params      []Decl
	Body        *CompStmt
	LocalsSize  int    // set by codegen.AssignOffsets: bytes of stack needed for locals
	ReturnLabel string // set by codegen.Emitter: the label "return;" jumps to
}

func (d *FunDec) Accept(v DeclVisitor) any { return v.VisitFunDec(d) }
func (d *FunDec) Line() int                { return d.LineNo }
