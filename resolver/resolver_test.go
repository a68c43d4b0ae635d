package resolver

import (
	"testing"

	"github.com/bpl-lang/bplc/ast"
	"github.com/bpl-lang/bplc/lexer"
	"github.com/bpl-lang/bplc/parser"
)

func resolveSource(t *testing.T, src string) ([]ast.Decl, error) {
	t.Helper()
	tokens, err := lexer.Scan("test.bpl", src)
	if err != nil {
		t.Fatalf("lexer.Scan() error: %v", err)
	}
	decls, err := parser.Parse("test.bpl", tokens)
	if err != nil {
		t.Fatalf("parser.Parse() error: %v", err)
	}
	return decls, Resolve("test.bpl", decls)
}

func TestResolveVarExpSetsDec(t *testing.T) {
	decls, err := resolveSource(t, "int main(void) { int x; x = 1; return x; }")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	fn := decls[0].(*ast.FunDec)
	ret := fn.Body.Stmts[1].(*ast.RetStmt)
	v, ok := ret.Value.(*ast.VarExp)
	if !ok {
		t.Fatalf("expected *ast.VarExp, got %T", ret.Value)
	}
	if v.Dec == nil {
		t.Fatal("expected VarExp.Dec to be set")
	}
	local := fn.Body.LocalDecs[0].(*ast.VarDec)
	if v.Dec != ast.Decl(local) {
		t.Errorf("expected VarExp.Dec to point at the local declaration of x")
	}
}

func TestResolveUndefinedNameFails(t *testing.T) {
	_, err := resolveSource(t, "int main(void) { return y; }")
	if err == nil {
		t.Fatal("expected a resolve error for an undefined name")
	}
}

func TestResolveFunctionCallGoesThroughGlobalFrameOnly(t *testing.T) {
	decls, err := resolveSource(t, "int helper(void) { return 1; } int main(void) { return helper(); }")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	main := decls[1].(*ast.FunDec)
	ret := main.Body.Stmts[0].(*ast.RetStmt)
	call, ok := ret.Value.(*ast.FunCallExp)
	if !ok {
		t.Fatalf("expected *ast.FunCallExp, got %T", ret.Value)
	}
	if call.FunDec == nil || call.FunDec.Name != "helper" {
		t.Errorf("expected call to resolve to helper, got %#v", call.FunDec)
	}
}

func TestResolveForwardReferenceBetweenFunctions(t *testing.T) {
	_, err := resolveSource(t, "int main(void) { return later(); } int later(void) { return 1; }")
	if err != nil {
		t.Fatalf("expected forward reference to resolve via the global pre-pass, got error: %v", err)
	}
}

func TestParamsAndBodySharedFrame(t *testing.T) {
	// The parameter x is visible in the function body, and because
	// params and the body's own locals share a single frame, a body
	// local that redeclares x is a same-frame redeclaration.
	_, err := resolveSource(t, "int f(int x) { return x; }")
	if err != nil {
		t.Fatalf("expected params/body sharing a frame to work, got error: %v", err)
	}
	_, err = resolveSource(t, "int f(int x) { int x; return x; }")
	if err == nil {
		t.Fatal("expected a resolve error for a body local redeclaring a parameter in the shared frame")
	}
}

func TestArraySizeZeroFails(t *testing.T) {
	_, err := resolveSource(t, "int a[0]; int main(void) { return 0; }")
	if err == nil {
		t.Fatal("expected a resolve error for an array of size 0")
	}
}

func TestNestedScopeMayShadowOuterName(t *testing.T) {
	_, err := resolveSource(t, `int main(void) {
		int x;
		if (1) {
			int x;
			x = 2;
		}
		return x;
	}`)
	if err != nil {
		t.Fatalf("expected a nested scope to legally shadow an outer name, got error: %v", err)
	}
}

func TestRedeclarationInSameFrameFails(t *testing.T) {
	_, err := resolveSource(t, "int main(void) { int x; int x; return 0; }")
	if err == nil {
		t.Fatal("expected a resolve error for redeclaring a name in the same scope frame")
	}
}
