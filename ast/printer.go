package ast

import (
	"encoding/json"
	"fmt"
	"io"
)

// printer implements DeclVisitor, StmtVisitor and ExprVisitor, building
// a JSON-friendly representation of the tree out of maps and slices —
// the same approach the teacher's parser/printer.go astPrinter takes,
// generalized from nilan's expression-only grammar to BPL's full
// declaration/statement/expression set.
type printer struct{}

func (p printer) VisitVarDec(d *VarDec) any {
	return map[string]any{"node": "VarDec", "name": d.Name, "type": d.Type.String()}
}

func (p printer) VisitArrDec(d *ArrDec) any {
	return map[string]any{"node": "ArrDec", "name": d.Name, "type": d.Type.String(), "size": d.Size}
}

func (p printer) VisitFunDec(d *FunDec) any {
	params := make([]any, 0, len(d.Params))
	for _, param := range d.Params {
		params = append(params, param.Accept(p))
	}
	return map[string]any{
		"node":       "FunDec",
		"name":       d.Name,
		"returnType": d.ReturnType.String(),
		"params":     params,
		"body":       d.Body.Accept(p),
	}
}

func (p printer) VisitCompStmt(s *CompStmt) any {
	locals := make([]any, 0, len(s.LocalDecs))
	for _, dec := range s.LocalDecs {
		locals = append(locals, dec.Accept(p))
	}
	stmts := make([]any, 0, len(s.Stmts))
	for _, stmt := range s.Stmts {
		stmts = append(stmts, stmt.Accept(p))
	}
	return map[string]any{"node": "CompStmt", "locals": locals, "stmts": stmts}
}

func (p printer) VisitExprStmt(s *ExprStmt) any {
	return map[string]any{"node": "ExprStmt", "expression": s.Expression.Accept(p)}
}

func (p printer) VisitIfStmt(s *IfStmt) any {
	var elseVal any
	if s.Else != nil {
		elseVal = s.Else.Accept(p)
	}
	return map[string]any{
		"node": "IfStmt", "cond": s.Cond.Accept(p), "then": s.Then.Accept(p), "else": elseVal,
	}
}

func (p printer) VisitWhileStmt(s *WhileStmt) any {
	return map[string]any{"node": "WhileStmt", "cond": s.Cond.Accept(p), "body": s.Body.Accept(p)}
}

func (p printer) VisitRetStmt(s *RetStmt) any {
	var value any
	if s.Value != nil {
		value = s.Value.Accept(p)
	}
	return map[string]any{"node": "RetStmt", "value": value}
}

func (p printer) VisitWriteStmt(s *WriteStmt) any {
	return map[string]any{"node": "WriteStmt", "value": s.Value.Accept(p)}
}

func (p printer) VisitWritelnStmt(s *WritelnStmt) any {
	return map[string]any{"node": "WritelnStmt"}
}

func (p printer) VisitIntLit(e *IntLit) any {
	return map[string]any{"node": "IntLit", "value": e.Value}
}

func (p printer) VisitStrLit(e *StrLit) any {
	return map[string]any{"node": "StrLit", "value": e.Value}
}

func (p printer) VisitVarExp(e *VarExp) any {
	return map[string]any{"node": "VarExp", "name": e.Name}
}

func (p printer) VisitArrExp(e *ArrExp) any {
	return map[string]any{"node": "ArrExp", "name": e.Name, "index": e.Index.Accept(p)}
}

func (p printer) VisitAddrExp(e *AddrExp) any {
	return map[string]any{"node": "AddrExp", "target": e.Target.Accept(p)}
}

func (p printer) VisitDerefExp(e *DerefExp) any {
	return map[string]any{"node": "DerefExp", "target": e.Target.Accept(p)}
}

func (p printer) VisitNegExp(e *NegExp) any {
	return map[string]any{"node": "NegExp", "target": e.Target.Accept(p)}
}

func (p printer) VisitFunCallExp(e *FunCallExp) any {
	args := make([]any, 0, len(e.Args))
	for _, arg := range e.Args {
		args = append(args, arg.Accept(p))
	}
	return map[string]any{"node": "FunCallExp", "name": e.Name, "args": args}
}

func (p printer) VisitReadExp(e *ReadExp) any {
	return map[string]any{"node": "ReadExp"}
}

func (p printer) VisitAssignExp(e *AssignExp) any {
	return map[string]any{"node": "AssignExp", "target": e.Target.Accept(p), "value": e.Value.Accept(p)}
}

func (p printer) VisitArithExp(e *ArithExp) any {
	return map[string]any{"node": "ArithExp", "op": int(e.Op), "left": e.Left.Accept(p), "right": e.Right.Accept(p)}
}

func (p printer) VisitCompExp(e *CompExp) any {
	return map[string]any{"node": "CompExp", "op": int(e.Op), "left": e.Left.Accept(p), "right": e.Right.Accept(p)}
}

// Print renders a program's top-level declarations as an indented JSON
// document, used by the "bpl ast" subcommand.
func Print(decls []Decl) (string, error) {
	p := printer{}
	out := make([]any, 0, len(decls))
	for _, d := range decls {
		out = append(out, d.Accept(p))
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal AST: %w", err)
	}
	return string(data), nil
}

// Fprint writes a program's AST as JSON to w.
func Fprint(w io.Writer, decls []Decl) error {
	s, err := Print(decls)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s+"\n")
	return err
}
