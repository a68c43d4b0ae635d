// Package codegen assigns stack-frame offsets to every declaration and
// emits AT&T-syntax x86-64 assembly from a type-checked AST.
package codegen

import "github.com/bpl-lang/bplc/ast"

const wordSize = 8

// AssignOffsets walks every FunDec in decls, assigning a frame offset to
// each parameter and local declaration and setting FunDec.LocalsSize.
// Parameters ascend from +16 in word-size steps; locals descend from -8.
// Grounded directly on original_source/bpl/code_gen/code_gen.py's
// assign_offsets_func/assign_offsets_comp_stmt: if/while branches
// continue the SAME descending cursor rather than resetting between
// sibling branches, which wastes some stack space but keeps the layout
// simple and safe (REDESIGN FLAGS: preserve this behavior verbatim).
func AssignOffsets(decls []ast.Decl) {
	for _, d := range decls {
		if fn, ok := d.(*ast.FunDec); ok {
			assignOffsetsFunc(fn)
		}
	}
}

func assignOffsetsFunc(fn *ast.FunDec) {
	paramOffset := 2 * wordSize
	for _, param := range fn.Params {
		setOffset(param, paramOffset)
		paramOffset += wordSize
	}
	localOffset := -wordSize
	next := assignOffsetsCompStmt(fn.Body, localOffset)
	fn.LocalsSize = -(next + wordSize)
}

// assignOffsetsCompStmt assigns offsets to a compound statement's own
// local declarations, then recurses into nested if/while/block bodies,
// threading the same descending cursor through all of them. It returns
// the next free offset (one word below the lowest offset assigned) so
// the caller can continue from there.
func assignOffsetsCompStmt(stmt *ast.CompStmt, startOffset int) int {
	for _, local := range stmt.LocalDecs {
		setOffset(local, startOffset)
		if arr, ok := local.(*ast.ArrDec); ok {
			startOffset -= wordSize * arr.Size
		} else {
			startOffset -= wordSize
		}
	}
	for _, s := range stmt.Stmts {
		switch st := s.(type) {
		case *ast.IfStmt:
			startOffset = assignOffsetsCompStmt(st.Then, startOffset)
			if st.Else != nil {
				startOffset = assignOffsetsCompStmt(st.Else, startOffset)
			}
		case *ast.WhileStmt:
			startOffset = assignOffsetsCompStmt(st.Body, startOffset)
		case *ast.CompStmt:
			startOffset = assignOffsetsCompStmt(st, startOffset)
		}
	}
	return startOffset
}

func setOffset(d ast.Decl, offset int) {
	switch v := d.(type) {
	case *ast.VarDec:
		v.Offset = offset
	case *ast.ArrDec:
		v.Offset = offset
	}
}
