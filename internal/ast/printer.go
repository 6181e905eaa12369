package ast

import (
	"fmt"
	"strings"
)

// Printer renders an expression tree as a fully-parenthesized Lisp-like
// string, used by the CLI's --ast debug flag. It never errors: printing is a
// pure structural walk, not an evaluation.
type Printer struct{}

// Print renders a single expression.
func (p *Printer) Print(e Expr) string {
	val, _ := e.Accept(p)
	return val.(string)
}

func (p *Printer) parenthesize(name string, exprs ...Expr) (interface{}, error) {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteByte(' ')
		s, _ := e.Accept(p)
		b.WriteString(s.(string))
	}
	b.WriteByte(')')
	return b.String(), nil
}

func (p *Printer) VisitBinaryExpr(e *Binary) (interface{}, error) {
	return p.parenthesize(e.Operator.Lexeme, e.Left, e.Right)
}

func (p *Printer) VisitUnaryExpr(e *Unary) (interface{}, error) {
	return p.parenthesize(e.Operator.Lexeme, e.Right)
}

func (p *Printer) VisitGroupingExpr(e *Grouping) (interface{}, error) {
	return p.parenthesize("group", e.Expression)
}

func (p *Printer) VisitLiteralExpr(e *Literal) (interface{}, error) {
	if e.Value == nil {
		return "nil", nil
	}
	return fmt.Sprintf("%v", e.Value), nil
}

func (p *Printer) VisitVariableExpr(e *Variable) (interface{}, error) {
	return e.Name.Lexeme, nil
}

func (p *Printer) VisitAssignExpr(e *Assign) (interface{}, error) {
	return p.parenthesize("= "+e.Name.Lexeme, e.Value)
}

func (p *Printer) VisitLogicalExpr(e *Logical) (interface{}, error) {
	return p.parenthesize(e.Operator.Lexeme, e.Left, e.Right)
}

func (p *Printer) VisitCallExpr(e *Call) (interface{}, error) {
	return p.parenthesize("call", append([]Expr{e.Callee}, e.Args...)...)
}

// PrintStmts renders a program as one parenthesized form per statement,
// joined by newlines. Expression, Print and Var statements are rendered with
// their expressions; every other statement node is rendered by its type name
// only, without its contents.
func PrintStmts(stmts []Stmt) string {
	p := &Printer{}
	var b strings.Builder
	for i, s := range stmts {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch st := s.(type) {
		case *Expression:
			b.WriteString(p.Print(st.Expr))
		case *Print:
			b.WriteString("(print " + p.Print(st.Expr) + ")")
		case *Var:
			if st.Initializer != nil {
				b.WriteString("(var " + st.Name.Lexeme + " " + p.Print(st.Initializer) + ")")
			} else {
				b.WriteString("(var " + st.Name.Lexeme + ")")
			}
		default:
			b.WriteString(fmt.Sprintf("(%T)", st))
		}
	}
	return b.String()
}
