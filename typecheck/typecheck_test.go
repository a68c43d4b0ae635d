package typecheck

import (
	"testing"

	"github.com/bpl-lang/bplc/ast"
	"github.com/bpl-lang/bplc/lexer"
	"github.com/bpl-lang/bplc/parser"
	"github.com/bpl-lang/bplc/resolver"
)

func checkSource(t *testing.T, src string) ([]ast.Decl, error) {
	t.Helper()
	tokens, err := lexer.Scan("test.bpl", src)
	if err != nil {
		t.Fatalf("lexer.Scan() error: %v", err)
	}
	decls, err := parser.Parse("test.bpl", tokens)
	if err != nil {
		t.Fatalf("parser.Parse() error: %v", err)
	}
	if err := resolver.Resolve("test.bpl", decls); err != nil {
		t.Fatalf("resolver.Resolve() error: %v", err)
	}
	return decls, Check("test.bpl", decls)
}

func TestArithmeticExpressionIsInt(t *testing.T) {
	decls, err := checkSource(t, "int main(void) { return 1 + 2; }")
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	fn := decls[0].(*ast.FunDec)
	ret := fn.Body.Stmts[0].(*ast.RetStmt)
	arith := ret.Value.(*ast.ArithExp)
	if arith.Type != ast.INT {
		t.Errorf("expected ArithExp.Type == INT, got %v", arith.Type)
	}
}

func TestStringAssignedToIntFails(t *testing.T) {
	_, err := checkSource(t, `int main(void) {
		int x;
		string s;
		x = s;
		return 0;
	}`)
	if err == nil {
		t.Fatal("expected a type error assigning string to int")
	}
}

func TestVoidVariableFails(t *testing.T) {
	_, err := checkSource(t, "int main(void) { void v; return 0; }")
	if err == nil {
		t.Fatal("expected a type error for a void-typed variable")
	}
}

func TestReturnValueInVoidFunctionFails(t *testing.T) {
	_, err := checkSource(t, "void f(void) { return 1; } int main(void) { return 0; }")
	if err == nil {
		t.Fatal("expected a type error for a value returned from a void function")
	}
}

func TestMissingReturnValueFails(t *testing.T) {
	_, err := checkSource(t, "int f(void) { return; } int main(void) { return 0; }")
	if err == nil {
		t.Fatal("expected a type error for a missing return value in a non-void function")
	}
}

func TestFunctionCallArgumentTypeMismatchFails(t *testing.T) {
	_, err := checkSource(t, `int f(int x) { return x; }
	int main(void) {
		string s;
		return f(s);
	}`)
	if err == nil {
		t.Fatal("expected a type error for a mismatched call argument")
	}
}

func TestAddressOfAndDerefRoundTrip(t *testing.T) {
	decls, err := checkSource(t, `int main(void) {
		int x;
		int *p;
		x = 7;
		p = &x;
		*p = 9;
		return x;
	}`)
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	fn := decls[0].(*ast.FunDec)
	assignP := fn.Body.Stmts[1].(*ast.ExprStmt).Expression.(*ast.AssignExp)
	addr := assignP.Value.(*ast.AddrExp)
	if addr.Type != ast.INT_PTR {
		t.Errorf("expected &x to have type INT_PTR, got %v", addr.Type)
	}
	assignDeref := fn.Body.Stmts[2].(*ast.ExprStmt).Expression.(*ast.AssignExp)
	deref := assignDeref.Target.(*ast.DerefExp)
	if deref.Type != ast.INT {
		t.Errorf("expected *p to have type INT, got %v", deref.Type)
	}
}

func TestWriteRejectsPointerType(t *testing.T) {
	_, err := checkSource(t, `int main(void) {
		int x;
		int *p;
		p = &x;
		write(p);
		return 0;
	}`)
	if err == nil {
		t.Fatal("expected a type error writing a pointer value")
	}
}
