package ast

// Walk calls visit once for every expression node reachable from body,
// in the same left-to-right order the resolver and type checker recurse
// in. Used by codegen to collect string literals ahead of emission,
// without needing a dedicated visitor implementation for a single field.
func Walk(body *CompStmt, visit func(Expr)) {
	walkCompStmt(body, visit)
}

func walkCompStmt(cs *CompStmt, visit func(Expr)) {
	for _, s := range cs.Stmts {
		walkStmt(s, visit)
	}
}

func walkStmt(s Stmt, visit func(Expr)) {
	switch st := s.(type) {
	case *CompStmt:
		walkCompStmt(st, visit)
	case *ExprStmt:
		walkExpr(st.Expression, visit)
	case *IfStmt:
		walkExpr(st.Cond, visit)
		walkCompStmt(st.Then, visit)
		if st.Else != nil {
			walkCompStmt(st.Else, visit)
		}
	case *WhileStmt:
		walkExpr(st.Cond, visit)
		walkCompStmt(st.Body, visit)
	case *RetStmt:
		if st.Value != nil {
			walkExpr(st.Value, visit)
		}
	case *WriteStmt:
		walkExpr(st.Value, visit)
	case *WritelnStmt:
		// no expression
	}
}

func walkExpr(e Expr, visit func(Expr)) {
	visit(e)
	switch ex := e.(type) {
	case *ArrExp:
		walkExpr(ex.Index, visit)
	case *AddrExp:
		walkExpr(ex.Target, visit)
	case *DerefExp:
		walkExpr(ex.Target, visit)
	case *NegExp:
		walkExpr(ex.Target, visit)
	case *FunCallExp:
		for _, arg := range ex.Args {
			walkExpr(arg, visit)
		}
	case *AssignExp:
		walkExpr(ex.Target, visit)
		walkExpr(ex.Value, visit)
	case *ArithExp:
		walkExpr(ex.Left, visit)
		walkExpr(ex.Right, visit)
	case *CompExp:
		walkExpr(ex.Left, visit)
		walkExpr(ex.Right, visit)
	}
}
