// Package typecheck implements BPL's bottom-up type checker: it walks
// the resolved AST and assigns a concrete ast.Type to every expression
// node, failing on the first mismatch.
package typecheck

import (
	"github.com/samber/lo"

	"github.com/bpl-lang/bplc/ast"
	"github.com/bpl-lang/bplc/diagnostics"
)

type checker struct {
	file        string
	currentFunc *ast.FunDec
}

// Check walks decls and assigns .Type to every expression. Like
// resolver.Resolve, it fails by panicking with a *diagnostics.CompileError
// and recovers at this boundary.
func Check(file string, decls []ast.Decl) (err error) {
	c := &checker{file: file}
	defer func() {
		if rec := recover(); rec != nil {
			if ce, ok := rec.(*diagnostics.CompileError); ok {
				err = ce
				return
			}
			panic(rec)
		}
	}()

	for _, d := range decls {
		c.checkNotVoid(d)
	}
	for _, d := range decls {
		if fn, ok := d.(*ast.FunDec); ok {
			c.checkFunction(fn)
		}
	}
	return nil
}

func (c *checker) fail(line int, format string, args ...any) {
	panic(diagnostics.NewTypeError(c.file, line, format, args...))
}

// checkNotVoid rejects "void x;"-shaped variable declarations. Array
// declarations can never be VOID-typed (the parser only ever produces
// INT_ARR/STR_ARR), and function declarations are permitted VOID as a
// return type, so only VarDec needs the check.
func (c *checker) checkNotVoid(d ast.Decl) {
	if v, ok := d.(*ast.VarDec); ok && v.Type == ast.VOID {
		c.fail(v.LineNo, "variable %q cannot have type void", v.Name)
	}
}

func (c *checker) checkFunction(fn *ast.FunDec) {
	for _, param := range fn.Params {
		c.checkNotVoid(param)
	}
	prev := c.currentFunc
	c.currentFunc = fn
	c.checkCompStmt(fn.Body)
	c.currentFunc = prev
}

func (c *checker) checkCompStmt(cs *ast.CompStmt) {
	for _, d := range cs.LocalDecs {
		c.checkNotVoid(d)
	}
	for _, s := range cs.Stmts {
		c.checkStmt(s)
	}
}

func (c *checker) checkStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.CompStmt:
		c.checkCompStmt(st)
	case *ast.ExprStmt:
		c.checkExpr(st.Expression)
	case *ast.IfStmt:
		if t := c.checkExpr(st.Cond); t != ast.INT {
			c.fail(st.LineNo, "if condition must be int, got %s", t)
		}
		c.checkCompStmt(st.Then)
		if st.Else != nil {
			c.checkCompStmt(st.Else)
		}
	case *ast.WhileStmt:
		if t := c.checkExpr(st.Cond); t != ast.INT {
			c.fail(st.LineNo, "while condition must be int, got %s", t)
		}
		c.checkCompStmt(st.Body)
	case *ast.RetStmt:
		c.checkReturn(st)
	case *ast.WriteStmt:
		t := c.checkExpr(st.Value)
		if t != ast.INT && t != ast.STRING {
			c.fail(st.LineNo, "write() argument must be int or string, got %s", t)
		}
	case *ast.WritelnStmt:
		// nothing to check
	}
}

func (c *checker) checkReturn(st *ast.RetStmt) {
	wantVoid := c.currentFunc.ReturnType == ast.VOID
	if wantVoid {
		if st.Value != nil {
			c.fail(st.LineNo, "function %q returns void but a value was returned", c.currentFunc.Name)
		}
		return
	}
	if st.Value == nil {
		c.fail(st.LineNo, "function %q must return a value of type %s", c.currentFunc.Name, c.currentFunc.ReturnType)
	}
	got := c.checkExpr(st.Value)
	if got != c.currentFunc.ReturnType {
		c.fail(st.LineNo, "function %q returns %s but got %s", c.currentFunc.Name, c.currentFunc.ReturnType, got)
	}
}

func declaredType(d ast.Decl) ast.Type {
	switch v := d.(type) {
	case *ast.VarDec:
		return v.Type
	case *ast.ArrDec:
		return v.Type
	default:
		return ast.UNTYPED
	}
}

// checkExpr assigns and returns e's type, recursing into its children
// first (bottom-up) since every rule here needs its operands' types
// before it can decide its own.
func (c *checker) checkExpr(e ast.Expr) ast.Type {
	switch ex := e.(type) {
	case *ast.IntLit:
		ex.Type = ast.INT
		return ex.Type
	case *ast.StrLit:
		ex.Type = ast.STRING
		return ex.Type
	case *ast.ReadExp:
		ex.Type = ast.INT
		return ex.Type
	case *ast.VarExp:
		ex.Type = declaredType(ex.Dec)
		return ex.Type
	case *ast.ArrExp:
		idxType := c.checkExpr(ex.Index)
		if idxType != ast.INT {
			c.fail(ex.LineNo, "array index must be int, got %s", idxType)
		}
		elem, ok := ast.ElemType(declaredType(ex.Dec))
		if !ok {
			c.fail(ex.LineNo, "%q is not an array", ex.Name)
		}
		ex.Type = elem
		return ex.Type
	case *ast.AddrExp:
		switch ex.Target.(type) {
		case *ast.VarExp, *ast.ArrExp:
		default:
			c.fail(ex.LineNo, "'&' may only be applied to a variable or array element")
		}
		targetType := c.checkExpr(ex.Target)
		ptr, ok := ast.AddressOf(targetType)
		if !ok {
			c.fail(ex.LineNo, "cannot take the address of a value of type %s", targetType)
		}
		ex.Type = ptr
		return ex.Type
	case *ast.DerefExp:
		targetType := c.checkExpr(ex.Target)
		deref, ok := ast.Deref(targetType)
		if !ok {
			c.fail(ex.LineNo, "cannot dereference a value of type %s", targetType)
		}
		ex.Type = deref
		return ex.Type
	case *ast.NegExp:
		t := c.checkExpr(ex.Target)
		if t != ast.INT {
			c.fail(ex.LineNo, "unary '-' requires int, got %s", t)
		}
		ex.Type = ast.INT
		return ex.Type
	case *ast.FunCallExp:
		ex.Type = c.checkFunCall(ex)
		return ex.Type
	case *ast.AssignExp:
		ex.Type = c.checkAssign(ex)
		return ex.Type
	case *ast.ArithExp:
		lt := c.checkExpr(ex.Left)
		rt := c.checkExpr(ex.Right)
		if lt != ast.INT || rt != ast.INT {
			c.fail(ex.LineNo, "arithmetic requires int operands, got %s and %s", lt, rt)
		}
		ex.Type = ast.INT
		return ex.Type
	case *ast.CompExp:
		lt := c.checkExpr(ex.Left)
		rt := c.checkExpr(ex.Right)
		if lt != ast.INT || rt != ast.INT {
			c.fail(ex.LineNo, "comparison requires int operands, got %s and %s", lt, rt)
		}
		ex.Type = ast.INT
		return ex.Type
	default:
		c.fail(e.Line(), "internal error: unhandled expression type %T", e)
		panic("unreachable")
	}
}

func (c *checker) checkFunCall(ex *ast.FunCallExp) ast.Type {
	if ex.FunDec == nil {
		c.fail(ex.LineNo, "internal error: call to %q was not resolved", ex.Name)
	}
	params := ex.FunDec.Params
	if len(ex.Args) != len(params) {
		c.fail(ex.LineNo, "%q expects %d argument(s), got %d", ex.Name, len(params), len(ex.Args))
	}
	argTypes := lo.Map(ex.Args, func(arg ast.Expr, _ int) ast.Type { return c.checkExpr(arg) })
	for i, want := range params {
		wantType := declaredType(want)
		if argTypes[i] != wantType {
			c.fail(ex.Args[i].Line(), "%q argument %d: expected %s, got %s", ex.Name, i+1, wantType, argTypes[i])
		}
	}
	return ex.FunDec.ReturnType
}

func (c *checker) checkAssign(ex *ast.AssignExp) ast.Type {
	switch ex.Target.(type) {
	case *ast.VarExp, *ast.ArrExp, *ast.DerefExp:
	default:
		c.fail(ex.LineNo, "left-hand side of assignment must be a variable, array element, or dereference")
	}
	lt := c.checkExpr(ex.Target)
	rt := c.checkExpr(ex.Value)
	if lt != rt {
		c.fail(ex.LineNo, "cannot assign %s to %s", rt, lt)
	}
	return lt
}
