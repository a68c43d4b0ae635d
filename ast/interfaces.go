// interfaces.go contains the Decl/Stmt/Expr base interfaces and the
// three visitor interfaces any code traversing the AST implements.
// Each node dispatches itself to the right Visit method via Accept,
// the same visitor design used throughout this AST's nodes.

package ast

// Decl is the base interface for top-level and local declarations
// (variables, arrays, functions).
type Decl interface {
	Accept(v DeclVisitor) any
	Line() int
}

// Stmt is the base interface for all statement nodes.
type Stmt interface {
	Accept(v StmtVisitor) any
}

// Expr is the base interface for all expression nodes.
type Expr interface {
	Accept(v ExprVisitor) any
	Line() int
}

// DeclVisitor dispatches over every declaration kind in the grammar.
type DeclVisitor interface {
	VisitVarDec(d *VarDec) any
	VisitArrDec(d *ArrDec) any
	VisitFunDec(d *FunDec) any
}

// StmtVisitor dispatches over every statement kind in the grammar.
type StmtVisitor interface {
	VisitCompStmt(s *CompStmt) any
	VisitExprStmt(s *ExprStmt) any
	VisitIfStmt(s *IfStmt) any
	VisitWhileStmt(s *WhileStmt) any
	VisitRetStmt(s *RetStmt) any
	VisitWriteStmt(s *WriteStmt) any
	VisitWritelnStmt(s *WritelnStmt) any
}

// ExprVisitor dispatches over every expression kind in the grammar.
type ExprVisitor interface {
	VisitIntLit(e *IntLit) any
	VisitStrLit(e *StrLit) any
	VisitVarExp(e *VarExp) any
	VisitArrExp(e *ArrExp) any
	VisitAddrExp(e *AddrExp) any
	VisitDerefExp(e *DerefExp) any
	VisitNegExp(e *NegExp) any
	VisitFunCallExp(e *FunCallExp) any
	VisitReadExp(e *ReadExp) any
	VisitAssignExp(e *AssignExp) any
	VisitArithExp(e *ArithExp) any
	VisitCompExp(e *CompExp) any
}
