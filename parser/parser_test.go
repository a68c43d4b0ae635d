package parser

import (
	"testing"

	"github.com/bpl-lang/bplc/ast"
	"github.com/bpl-lang/bplc/lexer"
)

func parseSource(t *testing.T, src string) []ast.Decl {
	t.Helper()
	tokens, err := lexer.Scan("test.bpl", src)
	if err != nil {
		t.Fatalf("lexer.Scan() error: %v", err)
	}
	decls, err := Parse("test.bpl", tokens)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return decls
}

func TestParseVarDec(t *testing.T) {
	decls := parseSource(t, "int x;")
	if len(decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(decls))
	}
	v, ok := decls[0].(*ast.VarDec)
	if !ok {
		t.Fatalf("expected *ast.VarDec, got %T", decls[0])
	}
	if v.Name != "x" || v.Type != ast.INT {
		t.Errorf("got VarDec{Name: %q, Type: %v}, want {x, INT}", v.Name, v.Type)
	}
}

func TestParsePointerVarDec(t *testing.T) {
	decls := parseSource(t, "int *p;")
	v := decls[0].(*ast.VarDec)
	if v.Type != ast.INT_PTR {
		t.Errorf("got type %v, want INT_PTR", v.Type)
	}
}

func TestParseArrDec(t *testing.T) {
	decls := parseSource(t, "int a[10];")
	arr := decls[0].(*ast.ArrDec)
	if arr.Name != "a" || arr.Type != ast.INT_ARR || arr.Size != 10 {
		t.Errorf("got ArrDec{%q, %v, %d}, want {a, INT_ARR, 10}", arr.Name, arr.Type, arr.Size)
	}
}

func TestParseFunDecWithVoidParams(t *testing.T) {
	decls := parseSource(t, "int main(void) { return 0; }")
	fn := decls[0].(*ast.FunDec)
	if fn.Name != "main" || fn.ReturnType != ast.INT || len(fn.Params) != 0 {
		t.Fatalf("got FunDec{%q, %v, %d params}, want {main, INT, 0 params}", fn.Name, fn.ReturnType, len(fn.Params))
	}
	if len(fn.Body.Stmts) != 1 {
		t.Fatalf("expected 1 statement in body, got %d", len(fn.Body.Stmts))
	}
	ret, ok := fn.Body.Stmts[0].(*ast.RetStmt)
	if !ok {
		t.Fatalf("expected *ast.RetStmt, got %T", fn.Body.Stmts[0])
	}
	lit, ok := ret.Value.(*ast.IntLit)
	if !ok || lit.Value != 0 {
		t.Errorf("expected return value IntLit{0}, got %#v", ret.Value)
	}
}

func TestParseFunDecWithParamsAndArrayParam(t *testing.T) {
	decls := parseSource(t, "int sum(int a[], int n) { return 0; }")
	fn := decls[0].(*ast.FunDec)
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	arrParam, ok := fn.Params[0].(*ast.ArrDec)
	if !ok || arrParam.Type != ast.INT_ARR || !arrParam.IsParam {
		t.Errorf("expected first param to be an INT_ARR array param, got %#v", fn.Params[0])
	}
	scalarParam, ok := fn.Params[1].(*ast.VarDec)
	if !ok || scalarParam.Type != ast.INT {
		t.Errorf("expected second param to be an INT VarDec, got %#v", fn.Params[1])
	}
}

// Left-associativity: "a - b - c" must parse as "(a - b) - c".
func TestAdditiveLeftAssociative(t *testing.T) {
	decls := parseSource(t, "int f(void) { return a - b - c; }")
	fn := decls[0].(*ast.FunDec)
	ret := fn.Body.Stmts[0].(*ast.RetStmt)
	outer, ok := ret.Value.(*ast.ArithExp)
	if !ok || outer.Op != ast.ArithSub {
		t.Fatalf("expected outer ArithExp(sub), got %#v", ret.Value)
	}
	inner, ok := outer.Left.(*ast.ArithExp)
	if !ok || inner.Op != ast.ArithSub {
		t.Fatalf("expected left child to be ArithExp(sub) (a - b), got %#v", outer.Left)
	}
	if _, ok := outer.Right.(*ast.VarExp); !ok {
		t.Errorf("expected right child to be plain VarExp c, got %#v", outer.Right)
	}
}

func TestAssignExpValidLValue(t *testing.T) {
	decls := parseSource(t, "int f(void) { int x; x = 1; return 0; }")
	fn := decls[0].(*ast.FunDec)
	exprStmt := fn.Body.Stmts[0].(*ast.ExprStmt)
	assign, ok := exprStmt.Expression.(*ast.AssignExp)
	if !ok {
		t.Fatalf("expected *ast.AssignExp, got %T", exprStmt.Expression)
	}
	if _, ok := assign.Target.(*ast.VarExp); !ok {
		t.Errorf("expected assignment target to be a VarExp, got %#v", assign.Target)
	}
}

func TestInvalidLValueIsParseError(t *testing.T) {
	tokens, err := lexer.Scan("test.bpl", "int f(void) { 1 = 2; return 0; }")
	if err != nil {
		t.Fatalf("lexer.Scan() error: %v", err)
	}
	if _, err := Parse("test.bpl", tokens); err == nil {
		t.Fatal("expected a parse error for an invalid l-value")
	}
}

func TestIfElseBracedBodiesPopulateBothBranches(t *testing.T) {
	decls := parseSource(t, "int f(void) { if (1) { return 1; } else { return 2; } }")
	fn := decls[0].(*ast.FunDec)
	ifStmt := fn.Body.Stmts[0].(*ast.IfStmt)
	if ifStmt.Then == nil || ifStmt.Else == nil {
		t.Fatal("expected both then and else branches to be populated")
	}
}
