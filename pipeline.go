package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bpl-lang/bplc/ast"
	"github.com/bpl-lang/bplc/codegen"
	"github.com/bpl-lang/bplc/lexer"
	"github.com/bpl-lang/bplc/parser"
	"github.com/bpl-lang/bplc/resolver"
	"github.com/bpl-lang/bplc/typecheck"
)

// parseFile runs the lex+parse half of the pipeline only, used by the
// "ast" subcommand which prints a program's structure without resolving
// or type-checking it.
func parseFile(file, src string) ([]ast.Decl, error) {
	tokens, err := lexer.Scan(file, src)
	if err != nil {
		return nil, err
	}
	return parser.Parse(file, tokens)
}

// checkFile runs the full front end: lex, parse, resolve, and
// type-check. The returned decls have every expression's .Type field
// populated and are ready for AssignOffsets + emission.
func checkFile(file, src string) ([]ast.Decl, error) {
	decls, err := parseFile(file, src)
	if err != nil {
		return nil, err
	}
	if err := resolver.Resolve(file, decls); err != nil {
		return nil, err
	}
	if err := typecheck.Check(file, decls); err != nil {
		return nil, err
	}
	return decls, nil
}

// compileToAssembly runs the full pipeline and returns the emitted
// assembly text, ready to be written to a ".s" file.
func compileToAssembly(file, src string) (string, error) {
	decls, err := checkFile(file, src)
	if err != nil {
		return "", err
	}
	codegen.AssignOffsets(decls)
	return codegen.NewEmitter().Emit(decls), nil
}

// baseName strips a ".bpl" extension (or any extension) from path,
// following spec.md §6's "file extension is stripped to form the output
// base name" rule.
func baseName(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext)
}

// assembleAndLink writes asmText to base+".s" and invokes the system C
// toolchain to turn it into a native executable at base, following
// spec.md §6's external-interface contract.
func assembleAndLink(base, asmText string) error {
	asmPath := base + ".s"
	if err := os.WriteFile(asmPath, []byte(asmText), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", asmPath, err)
	}
	cmd := exec.Command("cc", "-g", asmPath, "-o", base)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("cc failed: %w\n%s", err, out)
	}
	return nil
}
