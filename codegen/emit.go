package codegen

import (
	"fmt"
	"os"
	"strings"

	"github.com/bpl-lang/bplc/ast"
)

// reg32/reg64 mirror original_source/bpl/code_gen/code_gen.py's
// Register/Register32/Register64 helpers: a thin wrapper that knows how
// to render itself as an AT&T operand, with or without a frame offset.
type reg32 string
type reg64 string

func (r reg32) String() string     { return "%" + string(r) }
func (r reg64) String() string     { return "%" + string(r) }
func (r reg64) Offset(n int) string { return fmt.Sprintf("%d(%%%s)", n, string(r)) }

const (
	eax reg32 = "eax"
	rax reg64 = "rax"
	rbx reg64 = "rbx"
	rdx reg64 = "rdx"
	rbp reg64 = "rbp"
	rsp reg64 = "rsp"
	rdi reg64 = "rdi"
	rsi reg64 = "rsi"
	r12 reg64 = "r12"
)

// Built-in read-only format strings every emitted program carries,
// regardless of whether the source uses them, per spec.md §4.6.
const (
	fmtIntLabel   = "_fmt_int"   // "%lld "
	fmtNewlLabel  = "_fmt_newl"  // "\n"
	fmtStrLabel   = "_fmt_str"   // "%s "
	fmtOOBLabel   = "_fmt_oob"   // "You fell off the end of an array.\n"
	fmtScanLabel  = "_fmt_scan"  // "%d"
)

// Emitter renders a type-checked, offset-assigned AST as AT&T-syntax
// x86-64 assembly text into an in-memory buffer, mirroring the teacher's
// ASTCompiler/Compiler emit(...) idiom of appending one instruction at a
// time to a growing buffer instead of writing a file incrementally.
type Emitter struct {
	buf         strings.Builder
	strings     []string // user string literals in declaration order, label .S<index>
	labelCount  int
	currentFunc *ast.FunDec
}

// NewEmitter constructs an Emitter ready to compile one program.
func NewEmitter() *Emitter {
	return &Emitter{}
}

func (e *Emitter) nextLabel() string {
	l := fmt.Sprintf(".L%d", e.labelCount)
	e.labelCount++
	return l
}

// writeLine emits one instruction, formatted with a leading tab and an
// optional trailing comment, following write_line's formatting contract
// from original_source/bpl/code_gen/code_gen.py.
func (e *Emitter) writeLine(instr string, operands string, comment string) {
	line := "\t" + instr
	if operands != "" {
		line += " " + operands
	}
	if comment != "" {
		for len(line) < 32 {
			line += " "
		}
		line += "# " + comment
	}
	e.buf.WriteString(line + "\n")
}

func (e *Emitter) label(name string) {
	e.buf.WriteString(name + ":\n")
}

func (e *Emitter) raw(s string) {
	e.buf.WriteString(s)
}

// Emit renders decls (after resolution, type checking, and
// AssignOffsets) as a complete assembly file and returns its text.
func (e *Emitter) Emit(decls []ast.Decl) string {
	e.collectStrings(decls)
	e.emitGlobals(decls)
	e.emitRodata()
	e.raw(".text\n")
	e.raw(".globl main\n")
	for _, d := range decls {
		if fn, ok := d.(*ast.FunDec); ok {
			e.emitFunc(fn)
		}
	}
	return e.buf.String()
}

func (e *Emitter) emitGlobals(decls []ast.Decl) {
	for _, d := range decls {
		switch v := d.(type) {
		case *ast.VarDec:
			e.writeLine(".comm", fmt.Sprintf("%s, %d, 64", v.Name, wordSize), "")
		case *ast.ArrDec:
			e.writeLine(".comm", fmt.Sprintf("%s, %d, 64", v.Name, wordSize*v.Size), "")
		}
	}
}

func (e *Emitter) collectStrings(decls []ast.Decl) {
	for _, d := range decls {
		if fn, ok := d.(*ast.FunDec); ok {
			ast.Walk(fn.Body, func(expr ast.Expr) {
				if lit, ok := expr.(*ast.StrLit); ok {
					e.strings = append(e.strings, lit.Value)
				}
			})
		}
	}
}

func (e *Emitter) emitRodata() {
	e.raw(".section .rodata\n")
	for i, s := range e.strings {
		e.label(fmt.Sprintf(".S%d", i))
		e.writeLine(".string", quoteString(s), "")
	}
	e.label(fmtIntLabel)
	e.writeLine(".string", quoteString("%lld "), "")
	e.label(fmtNewlLabel)
	e.writeLine(".string", quoteString("\n"), "")
	e.label(fmtStrLabel)
	e.writeLine(".string", quoteString("%s "), "")
	e.label(fmtOOBLabel)
	e.writeLine(".string", quoteString("You fell off the end of an array.\n"), "")
	e.label(fmtScanLabel)
	e.writeLine(".string", quoteString("%d"), "")
}

func quoteString(s string) string {
	return fmt.Sprintf("%q", s)
}

func (e *Emitter) stringLabel(value string) string {
	for i, s := range e.strings {
		if s == value {
			return fmt.Sprintf(".S%d", i)
		}
	}
	return fmtStrLabel
}

// emitFunc emits one function's prologue, body, and epilogue. The
// calling convention is stack-only and custom (not System V) except for
// calls to printf/scanf, per spec.md §4.6.
func (e *Emitter) emitFunc(fn *ast.FunDec) {
	prev := e.currentFunc
	e.currentFunc = fn
	fn.ReturnLabel = fmt.Sprintf("%s_ret", fn.Name)

	e.label(fn.Name)
	e.writeLine("mov", fmt.Sprintf("%s, %s", rsp, rbp), "prologue")
	if fn.LocalsSize > 0 {
		e.writeLine("sub", fmt.Sprintf("$%d, %s", fn.LocalsSize, rsp), "")
	}
	e.emitCompStmt(fn.Body)
	e.label(fn.ReturnLabel)
	if fn.LocalsSize > 0 {
		e.writeLine("add", fmt.Sprintf("$%d, %s", fn.LocalsSize, rsp), "epilogue")
	}
	e.writeLine("ret", "", "")
	e.currentFunc = prev
}

func (e *Emitter) emitCompStmt(cs *ast.CompStmt) {
	for _, s := range cs.Stmts {
		e.emitStmt(s)
	}
}

func (e *Emitter) emitStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.CompStmt:
		e.emitCompStmt(st)
	case *ast.ExprStmt:
		e.emitExpr(st.Expression)
	case *ast.IfStmt:
		e.emitIf(st)
	case *ast.WhileStmt:
		e.emitWhile(st)
	case *ast.RetStmt:
		e.emitReturn(st)
	case *ast.WriteStmt:
		e.emitWrite(st)
	case *ast.WritelnStmt:
		e.writeLine("mov", fmt.Sprintf("$%s, %s", fmtNewlLabel, rdi), "")
		e.writeLine("mov", fmt.Sprintf("$0, %s", eax), "")
		e.writeLine("call", "printf", "")
	}
}

func (e *Emitter) emitIf(st *ast.IfStmt) {
	lTrue := e.nextLabel()
	lEnd := e.nextLabel()
	e.emitExpr(st.Cond)
	e.writeLine("cmp", fmt.Sprintf("$0, %s", rax), "")
	e.writeLine("jne", lTrue, "")
	if st.Else != nil {
		e.emitCompStmt(st.Else)
	}
	e.writeLine("jmp", lEnd, "")
	e.label(lTrue)
	e.emitCompStmt(st.Then)
	e.label(lEnd)
}

func (e *Emitter) emitWhile(st *ast.WhileStmt) {
	lCond := e.nextLabel()
	lEnd := e.nextLabel()
	e.label(lCond)
	e.emitExpr(st.Cond)
	e.writeLine("cmp", fmt.Sprintf("$0, %s", rax), "")
	e.writeLine("je", lEnd, "")
	e.emitCompStmt(st.Body)
	e.writeLine("jmp", lCond, "")
	e.label(lEnd)
}

func (e *Emitter) emitReturn(st *ast.RetStmt) {
	if st.Value != nil {
		e.emitExpr(st.Value)
	}
	e.writeLine("jmp", e.currentFunc.ReturnLabel, "")
}

func (e *Emitter) emitWrite(st *ast.WriteStmt) {
	e.emitExpr(st.Value)
	e.writeLine("mov", fmt.Sprintf("%s, %s", rax, rsi), "")
	label := fmtIntLabel
	if exprType(st.Value) == ast.STRING {
		label = fmtStrLabel
	}
	e.writeLine("mov", fmt.Sprintf("$%s, %s", label, rdi), "")
	e.writeLine("mov", fmt.Sprintf("$0, %s", eax), "")
	e.writeLine("call", "printf", "")
}

// exprType reads back the .Type the checker assigned onto e, since the
// emitter runs strictly after typecheck.Check and never needs to
// recompute it.
func exprType(e ast.Expr) ast.Type {
	switch ex := e.(type) {
	case *ast.IntLit:
		return ex.Type
	case *ast.StrLit:
		return ex.Type
	case *ast.VarExp:
		return ex.Type
	case *ast.ArrExp:
		return ex.Type
	case *ast.AddrExp:
		return ex.Type
	case *ast.DerefExp:
		return ex.Type
	case *ast.NegExp:
		return ex.Type
	case *ast.FunCallExp:
		return ex.Type
	case *ast.ReadExp:
		return ex.Type
	case *ast.AssignExp:
		return ex.Type
	case *ast.ArithExp:
		return ex.Type
	case *ast.CompExp:
		return ex.Type
	default:
		return ast.UNTYPED
	}
}

// emitExpr evaluates e, leaving its value in %rax, per spec.md §4.6's
// "all expressions produce their value in %rax" rule.
func (e *Emitter) emitExpr(expr ast.Expr) {
	switch ex := expr.(type) {
	case *ast.IntLit:
		e.writeLine("mov", fmt.Sprintf("$%d, %s", ex.Value, rax), "")
	case *ast.StrLit:
		e.writeLine("lea", fmt.Sprintf("%s(%%rip), %s", e.stringLabel(ex.Value), rax), "")
	case *ast.ReadExp:
		e.emitRead()
	case *ast.VarExp:
		e.emitVarLoad(ex)
	case *ast.ArrExp:
		e.emitArrLoad(ex)
	case *ast.AddrExp:
		e.emitAddr(ex.Target)
	case *ast.DerefExp:
		e.emitExpr(ex.Target)
		e.writeLine("mov", fmt.Sprintf("(%s), %s", rax, rax), "")
	case *ast.NegExp:
		e.emitExpr(ex.Target)
		e.writeLine("neg", string(rax), "")
	case *ast.FunCallExp:
		e.emitCall(ex)
	case *ast.AssignExp:
		e.emitAssign(ex)
	case *ast.ArithExp:
		e.emitArith(ex)
	case *ast.CompExp:
		e.emitComp(ex)
	}
}

func declOf(d ast.Decl) (offset int, isGlobal bool, name string, isParam bool) {
	switch v := d.(type) {
	case *ast.VarDec:
		return v.Offset, v.IsGlobal, v.Name, false
	case *ast.ArrDec:
		return v.Offset, v.IsGlobal, v.Name, v.IsParam
	}
	return 0, false, "", false
}

// emitVarLoad loads a VarExp's r-value into %rax. An array-typed
// variable loads its base address rather than a scalar value: a
// parameter is already pointer-valued (so a plain offset load suffices),
// while a local/global array needs its address computed with lea — the
// array-parameter-vs-local-array dispatch spec.md §4.6/§9 calls for,
// driven by whether the declaration is a parameter.
func (e *Emitter) emitVarLoad(ex *ast.VarExp) {
	offset, isGlobal, name, isParam := declOf(ex.Dec)
	isArray := ast.IsArray(exprType(ex))
	switch {
	case isGlobal:
		if isArray {
			e.writeLine("lea", fmt.Sprintf("%s(%%rip), %s", name, rax), "")
		} else {
			e.writeLine("mov", fmt.Sprintf("%s(%%rip), %s", name, rax), "")
		}
	case isArray && !isParam:
		e.writeLine("lea", fmt.Sprintf("%s, %s", rbp.Offset(offset), rax), "")
	default:
		e.writeLine("mov", fmt.Sprintf("%s, %s", rbp.Offset(offset), rax), "")
	}
}

// emitArrLoad loads a[index] into %rax: the array's base address, plus
// index*8, dereferenced.
func (e *Emitter) emitArrLoad(ex *ast.ArrExp) {
	e.emitArrElemAddr(ex)
	e.writeLine("mov", fmt.Sprintf("(%s), %s", rax, rax), "")
}

// emitArrElemAddr computes the address of a[index] into %rax, used both
// for reads (caller dereferences) and writes (caller stores through it).
func (e *Emitter) emitArrElemAddr(ex *ast.ArrExp) {
	e.emitExpr(ex.Index)
	e.writeLine("push", string(rax), "")
	e.emitArrBaseAddr(ex.Dec)
	e.writeLine("pop", string(rbx), "")
	e.writeLine("imul", fmt.Sprintf("$%d, %s", wordSize, rbx), "")
	e.writeLine("add", fmt.Sprintf("%s, %s", rbx, rax), "")
}

func (e *Emitter) emitArrBaseAddr(dec ast.Decl) {
	offset, isGlobal, declName, isParam := declOf(dec)
	switch {
	case isGlobal:
		e.writeLine("lea", fmt.Sprintf("%s(%%rip), %s", declName, rax), "")
	case isParam:
		e.writeLine("mov", fmt.Sprintf("%s, %s", rbp.Offset(offset), rax), "")
	default:
		e.writeLine("lea", fmt.Sprintf("%s, %s", rbp.Offset(offset), rax), "")
	}
}

// emitAddr computes the address of target (a VarExp or ArrExp, enforced
// by the parser and the type checker) into %rax.
func (e *Emitter) emitAddr(target ast.Expr) {
	switch t := target.(type) {
	case *ast.VarExp:
		offset, isGlobal, name, _ := declOf(t.Dec)
		if isGlobal {
			e.writeLine("lea", fmt.Sprintf("%s(%%rip), %s", name, rax), "")
		} else {
			e.writeLine("lea", fmt.Sprintf("%s, %s", rbp.Offset(offset), rax), "")
		}
	case *ast.ArrExp:
		e.emitArrElemAddr(t)
	}
}

// emitTargetAddr computes an l-value's address into %r12, following
// spec.md §4.6's AssignExp contract.
func (e *Emitter) emitTargetAddr(target ast.Expr) {
	switch t := target.(type) {
	case *ast.VarExp:
		offset, isGlobal, name, _ := declOf(t.Dec)
		if isGlobal {
			e.writeLine("lea", fmt.Sprintf("%s(%%rip), %s", name, r12), "")
		} else {
			e.writeLine("lea", fmt.Sprintf("%s, %s", rbp.Offset(offset), r12), "")
		}
	case *ast.ArrExp:
		e.emitArrElemAddr(t)
		e.writeLine("mov", fmt.Sprintf("%s, %s", rax, r12), "")
	case *ast.DerefExp:
		e.emitExpr(t.Target)
		e.writeLine("mov", fmt.Sprintf("%s, %s", rax, r12), "")
	}
}

func (e *Emitter) emitAssign(ex *ast.AssignExp) {
	e.emitExpr(ex.Value)
	e.writeLine("push", string(rax), "")
	e.emitTargetAddr(ex.Target)
	e.writeLine("pop", string(rax), "")
	e.writeLine("mov", fmt.Sprintf("%s, (%s)", rax, r12), "")
}

func (e *Emitter) emitArith(ex *ast.ArithExp) {
	e.emitExpr(ex.Left)
	e.writeLine("push", string(rax), "")
	e.emitExpr(ex.Right)
	switch ex.Op {
	case ast.ArithAdd:
		e.writeLine("pop", string(rbx), "")
		e.writeLine("add", fmt.Sprintf("%s, %s", rbx, rax), "")
	case ast.ArithSub:
		e.writeLine("mov", fmt.Sprintf("%s, %s", rax, rbx), "")
		e.writeLine("pop", string(rax), "")
		e.writeLine("sub", fmt.Sprintf("%s, %s", rbx, rax), "")
	case ast.ArithMul:
		e.writeLine("pop", string(rbx), "")
		e.writeLine("imul", fmt.Sprintf("%s, %s", rbx, rax), "")
	case ast.ArithDiv, ast.ArithMod:
		e.writeLine("mov", fmt.Sprintf("%s, %s", rax, rbx), "")
		e.writeLine("pop", string(rax), "")
		e.writeLine("cqto", "", "")
		e.writeLine("idiv", string(rbx), "")
		if ex.Op == ast.ArithMod {
			e.writeLine("mov", fmt.Sprintf("%s, %s", rdx, rax), "")
		}
	}
}

var compJumps = map[ast.CompOp]string{
	ast.CompLT: "jl",
	ast.CompLE: "jle",
	ast.CompGT: "jg",
	ast.CompGE: "jge",
	ast.CompEQ: "je",
	ast.CompNE: "jne",
}

func (e *Emitter) emitComp(ex *ast.CompExp) {
	e.emitExpr(ex.Left)
	e.writeLine("push", string(rax), "")
	e.emitExpr(ex.Right)
	lTrue := e.nextLabel()
	lEnd := e.nextLabel()
	e.writeLine("cmp", fmt.Sprintf("%s, 0(%s)", rax, rsp), "")
	// lea pops the saved LHS without touching the flags cmp just set.
	e.writeLine("lea", fmt.Sprintf("%s, %s", rsp.Offset(wordSize), rsp), "")
	e.writeLine(compJumps[ex.Op], lTrue, "")
	e.writeLine("mov", fmt.Sprintf("$0, %s", rax), "")
	e.writeLine("jmp", lEnd, "")
	e.label(lTrue)
	e.writeLine("mov", fmt.Sprintf("$1, %s", rax), "")
	e.label(lEnd)
}

func (e *Emitter) emitRead() {
	const scratch = 40 * wordSize
	e.writeLine("sub", fmt.Sprintf("$%d, %s", scratch, rsp), "")
	e.writeLine("mov", fmt.Sprintf("%s, %s", rsp, rsi), "")
	e.writeLine("lea", fmt.Sprintf("%s(%%rip), %s", fmtScanLabel, rdi), "")
	e.writeLine("mov", fmt.Sprintf("$0, %s", eax), "")
	e.writeLine("call", "scanf", "")
	e.writeLine("mov", fmt.Sprintf("(%s), %s", rsp, rax), "")
	e.writeLine("add", fmt.Sprintf("$%d, %s", scratch, rsp), "")
}

// emitCall evaluates arguments right-to-left, pushing each, then calls
// the function per spec.md §4.6's stack-only convention.
func (e *Emitter) emitCall(ex *ast.FunCallExp) {
	for i := len(ex.Args) - 1; i >= 0; i-- {
		e.emitExpr(ex.Args[i])
		e.writeLine("push", string(rax), "")
	}
	e.writeLine("push", string(rbp), "")
	e.writeLine("call", ex.Name, "")
	e.writeLine("pop", string(rbp), "")
	if n := len(ex.Args); n > 0 {
		e.writeLine("add", fmt.Sprintf("$%d, %s", wordSize*n, rsp), "")
	}
}

// WriteFile writes the emitted assembly for decls to path.
func WriteFile(path string, decls []ast.Decl) error {
	e := NewEmitter()
	text := e.Emit(decls)
	return os.WriteFile(path, []byte(text), 0o644)
}
