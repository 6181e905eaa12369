// Package ast defines the tagged-variant expression and statement nodes
// produced by the parser and walked by the resolver and evaluator.
//
// Each node is a distinct struct; dispatch uses the accept/Visitor pattern
// from the original "Crafting Interpreters" design rather than a type switch,
// so adding a visitor (resolver, evaluator, printer) never has to touch the
// node definitions. Nodes are allocated on the heap and referenced by
// pointer, which gives every node stable identity for the resolver's
// node-to-depth side-table (a pointer-holding interface value is a
// comparable map key).
package ast

import "github.com/raspacee/lox/internal/token"

// ExprVisitor is implemented by anything that walks expression nodes.
type ExprVisitor interface {
	VisitBinaryExpr(e *Binary) (interface{}, error)
	VisitUnaryExpr(e *Unary) (interface{}, error)
	VisitGroupingExpr(e *Grouping) (interface{}, error)
	VisitLiteralExpr(e *Literal) (interface{}, error)
	VisitVariableExpr(e *Variable) (interface{}, error)
	VisitAssignExpr(e *Assign) (interface{}, error)
	VisitLogicalExpr(e *Logical) (interface{}, error)
	VisitCallExpr(e *Call) (interface{}, error)
}

// Expr is any expression AST node.
type Expr interface {
	Accept(v ExprVisitor) (interface{}, error)
}

// Binary is `left op right`, e.g. `1 + 2`.
type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (e *Binary) Accept(v ExprVisitor) (interface{}, error) { return v.VisitBinaryExpr(e) }

// Unary is a prefix operator applied to a single operand, e.g. `-x`, `!x`.
type Unary struct {
	Operator token.Token
	Right    Expr
}

func (e *Unary) Accept(v ExprVisitor) (interface{}, error) { return v.VisitUnaryExpr(e) }

// Grouping is a parenthesized sub-expression, e.g. `(1 + 2)`.
type Grouping struct {
	Expression Expr
}

func (e *Grouping) Accept(v ExprVisitor) (interface{}, error) { return v.VisitGroupingExpr(e) }

// Literal is a constant value baked in by the scanner/parser: nil, a bool,
// a float64, or a string.
type Literal struct {
	Value interface{}
}

func (e *Literal) Accept(v ExprVisitor) (interface{}, error) { return v.VisitLiteralExpr(e) }

// Variable is a reference to a named binding.
type Variable struct {
	Name token.Token
}

func (e *Variable) Accept(v ExprVisitor) (interface{}, error) { return v.VisitVariableExpr(e) }

// Assign is `name = value`.
type Assign struct {
	Name  token.Token
	Value Expr
}

func (e *Assign) Accept(v ExprVisitor) (interface{}, error) { return v.VisitAssignExpr(e) }

// Logical is `left and right` / `left or right`, kept distinct from Binary
// so the evaluator can short-circuit without inspecting the operator token.
type Logical struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (e *Logical) Accept(v ExprVisitor) (interface{}, error) { return v.VisitLogicalExpr(e) }

// Call is `callee(args...)`. Paren is the closing `)`, used to report
// call-site runtime errors at a sensible line.
type Call struct {
	Callee Expr
	Paren  token.Token
	Args   []Expr
}

func (e *Call) Accept(v ExprVisitor) (interface{}, error) { return v.VisitCallExpr(e) }
