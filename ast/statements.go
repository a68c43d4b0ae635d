// statements.go contains every statement node in BPL's grammar. A
// statement never produces a value.

package ast

// CompStmt is a compound statement: a brace-delimited list of local
// declarations followed by a list of statements. Per the resolver's
// scoping invariant, a FunDec's own body CompStmt shares its frame with
// the function's parameters; every other CompStmt pushes a fresh scope
// frame (see resolver.Resolve).
type CompStmt struct {
	LineNo     int
	LocalDecs  []Decl
	Stmts      []Stmt
}

func (s *CompStmt) Accept(v StmtVisitor) any { return v.VisitCompStmt(s) }

// ExprStmt evaluates an expression and discards its result, e.g. a bare
// function call or assignment used as a statement.
type ExprStmt struct {
	LineNo     int
	Expression Expr
}

func (s *ExprStmt) Accept(v StmtVisitor) any { return v.VisitExprStmt(s) }

// IfStmt is a conditional with an optional else branch.
type IfStmt struct {
	LineNo    int
	Cond      Expr
	Then      *CompStmt
	Else      *CompStmt // nil when there is no else clause
}

func (s *IfStmt) Accept(v StmtVisitor) any { return v.VisitIfStmt(s) }

// WhileStmt is BPL's only loop construct.
type WhileStmt struct {
	LineNo int
	Cond   Expr
	Body   *CompStmt
}

func (s *WhileStmt) Accept(v StmtVisitor) any { return v.VisitWhileStmt(s) }

// RetStmt returns from the enclosing function, optionally with a value.
type RetStmt struct {
	LineNo int
	Value  Expr // nil for a bare "return;" in a void function
}

func (s *RetStmt) Accept(v StmtVisitor) any { return v.VisitRetStmt(s) }

// WriteStmt prints an expression's value without a trailing newline.
type WriteStmt struct {
	LineNo int
	Value  Expr
}

func (s *WriteStmt) Accept(v StmtVisitor) any { return v.VisitWriteStmt(s) }

// WritelnStmt prints a newline with no expression.
type WritelnStmt struct {
	LineNo int
}

func (s *WritelnStmt) Accept(v StmtVisitor) any { return v.VisitWritelnStmt(s) }
