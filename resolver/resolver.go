// Package resolver implements BPL's two-pass name resolution: a global
// pre-pass registers every top-level declaration, then each function
// body is walked with a stack of scope frames, attaching a Dec pointer
// to every VarExp/ArrExp and a FunDec pointer to every FunCallExp.
package resolver

import (
	"github.com/samber/lo"

	"github.com/bpl-lang/bplc/ast"
	"github.com/bpl-lang/bplc/diagnostics"
)

// scope is one frame on the resolution stack: a flat name→declaration
// map. The teacher's interpreter.Environment chains frames by parent
// pointer for closures; BPL has no closures, so a plain slice-of-maps
// stack (push on scope entry, pop on exit) is enough and mirrors the
// original implementation's symbol_tables list directly.
type scope map[string]ast.Decl

type resolver struct {
	file   string
	scopes []scope
}

// Resolve walks decls, the parser's top-level declaration list, and
// attaches resolved declarations to every name-referencing expression.
// Internal failures are reported by panicking with a
// *diagnostics.CompileError, recovered here and returned normally —
// the same panic/recover-at-the-boundary shape the teacher's
// ASTCompiler.CompileAST uses for SemanticError.
func Resolve(file string, decls []ast.Decl) (err error) {
	r := &resolver{file: file}
	defer func() {
		if rec := recover(); rec != nil {
			if ce, ok := rec.(*diagnostics.CompileError); ok {
				err = ce
				return
			}
			panic(rec)
		}
	}()

	r.pushScope()
	r.registerGlobals(decls)
	for _, d := range decls {
		if fn, ok := d.(*ast.FunDec); ok {
			r.resolveFunction(fn)
		}
	}
	return nil
}

func (r *resolver) pushScope() {
	r.scopes = append(r.scopes, scope{})
}

func (r *resolver) popScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *resolver) top() scope {
	return r.scopes[len(r.scopes)-1]
}

func (r *resolver) fail(line int, format string, args ...any) {
	panic(diagnostics.NewResolveError(r.file, line, format, args...))
}

// define adds name to the current frame, rejecting a redeclaration
// within that same frame (the spec forbids shadowing only within a
// single frame — a nested scope may legally reuse an outer name).
func (r *resolver) define(line int, name string, dec ast.Decl) {
	current := r.top()
	if lo.HasKey(current, name) {
		r.fail(line, "%q is already declared in this scope", name)
	}
	current[name] = dec
}

// lookupVar searches the stack top-down, returning the first hit.
func (r *resolver) lookupVar(name string) (ast.Decl, bool) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if dec, ok := r.scopes[i][name]; ok {
			return dec, true
		}
	}
	return nil, false
}

// lookupFunc searches only the global (bottom) frame — function names
// are not first-class and do not shadow.
func (r *resolver) lookupFunc(name string) (*ast.FunDec, bool) {
	dec, ok := r.scopes[0][name]
	if !ok {
		return nil, false
	}
	fn, ok := dec.(*ast.FunDec)
	return fn, ok
}

func declName(d ast.Decl) string {
	switch v := d.(type) {
	case *ast.VarDec:
		return v.Name
	case *ast.ArrDec:
		return v.Name
	case *ast.FunDec:
		return v.Name
	default:
		return ""
	}
}

func (r *resolver) registerGlobals(decls []ast.Decl) {
	for _, d := range decls {
		switch v := d.(type) {
		case *ast.VarDec:
			v.IsGlobal = true
		case *ast.ArrDec:
			v.IsGlobal = true
			r.checkArraySize(v)
		case *ast.FunDec:
			// FunDec carries no IsGlobal flag: only top-level
			// declarations may be functions, so it is implicitly global.
		}
		r.define(d.Line(), declName(d), d)
	}
}

func (r *resolver) checkArraySize(a *ast.ArrDec) {
	if a.IsParam {
		return
	}
	if a.Size < 1 {
		r.fail(a.LineNo, "array %q must have a size of at least 1", a.Name)
	}
}

// resolveFunction resolves one function's parameters and body. Per the
// spec's scoping invariant, the function body's own CompStmt does not
// push a fresh frame: parameters and the body's immediate locals share
// one frame.
func (r *resolver) resolveFunction(fn *ast.FunDec) {
	r.pushScope()
	for _, param := range fn.Params {
		if arr, ok := param.(*ast.ArrDec); ok {
			r.checkArraySize(arr)
		}
		r.define(param.Line(), declName(param), param)
	}
	r.resolveCompStmtBody(fn.Body)
	r.popScope()
}

// resolveCompStmtBody resolves a CompStmt's locals and statements
// without pushing a new frame — used for a function's own body.
func (r *resolver) resolveCompStmtBody(cs *ast.CompStmt) {
	for _, d := range cs.LocalDecs {
		if arr, ok := d.(*ast.ArrDec); ok {
			arr.IsGlobal = false
			r.checkArraySize(arr)
		} else if v, ok := d.(*ast.VarDec); ok {
			v.IsGlobal = false
		}
		r.define(d.Line(), declName(d), d)
	}
	for _, s := range cs.Stmts {
		r.resolveStmt(s)
	}
}

// resolveNestedCompStmt resolves a CompStmt that is NOT a function
// body (an if/while/bare block) — these always push a fresh frame.
func (r *resolver) resolveNestedCompStmt(cs *ast.CompStmt) {
	r.pushScope()
	r.resolveCompStmtBody(cs)
	r.popScope()
}

func (r *resolver) resolveStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.CompStmt:
		r.resolveNestedCompStmt(st)
	case *ast.ExprStmt:
		r.resolveExpr(st.Expression)
	case *ast.IfStmt:
		r.resolveExpr(st.Cond)
		r.resolveNestedCompStmt(st.Then)
		if st.Else != nil {
			r.resolveNestedCompStmt(st.Else)
		}
	case *ast.WhileStmt:
		r.resolveExpr(st.Cond)
		r.resolveNestedCompStmt(st.Body)
	case *ast.RetStmt:
		if st.Value != nil {
			r.resolveExpr(st.Value)
		}
	case *ast.WriteStmt:
		r.resolveExpr(st.Value)
	case *ast.WritelnStmt:
		// no expression to resolve
	}
}

func (r *resolver) resolveExpr(e ast.Expr) {
	switch ex := e.(type) {
	case *ast.IntLit, *ast.StrLit, *ast.ReadExp:
		// terminal, nothing to resolve
	case *ast.VarExp:
		dec, ok := r.lookupVar(ex.Name)
		if !ok {
			r.fail(ex.LineNo, "undefined name %q", ex.Name)
		}
		ex.Dec = dec
	case *ast.ArrExp:
		dec, ok := r.lookupVar(ex.Name)
		if !ok {
			r.fail(ex.LineNo, "undefined name %q", ex.Name)
		}
		ex.Dec = dec
		r.resolveExpr(ex.Index)
	case *ast.AddrExp:
		r.resolveExpr(ex.Target)
	case *ast.DerefExp:
		r.resolveExpr(ex.Target)
	case *ast.NegExp:
		r.resolveExpr(ex.Target)
	case *ast.FunCallExp:
		fn, ok := r.lookupFunc(ex.Name)
		if !ok {
			r.fail(ex.LineNo, "call to undefined function %q", ex.Name)
		}
		ex.FunDec = fn
		for _, arg := range ex.Args {
			r.resolveExpr(arg)
		}
	case *ast.AssignExp:
		r.resolveExpr(ex.Target)
		r.resolveExpr(ex.Value)
	case *ast.ArithExp:
		r.resolveExpr(ex.Left)
		r.resolveExpr(ex.Right)
	case *ast.CompExp:
		r.resolveExpr(ex.Left)
		r.resolveExpr(ex.Right)
	}
}
