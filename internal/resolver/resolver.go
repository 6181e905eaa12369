// Package resolver performs the static scope-depth resolution pass
// described in spec.md §4.3, producing the side-table the evaluator uses to
// look up variables at a fixed environment depth instead of walking the
// chain by name at runtime.
//
// Grounded on tejas0709/loxinterpreter's Chapter 11 resolver/binding
// snapshot (a `locals map[Expr]int` side-table keyed by AST node identity)
// and on mna/nenuphar's resolver package shape (explicit scope stack,
// declare/define split as two distinct steps).
package resolver

import (
	"github.com/sirupsen/logrus"

	"github.com/raspacee/lox/internal/ast"
	"github.com/raspacee/lox/internal/diag"
	"github.com/raspacee/lox/internal/token"
)

type functionType int

const (
	functionTypeNone functionType = iota
	functionTypeFunction
)

// scope maps a name to whether its initializer has finished resolving.
type scope map[string]bool

// Resolver walks a parsed program and records, for every Variable and
// Assign node, how many enclosing scopes separate it from its defining
// scope. Nodes with no recorded entry resolve against globals at runtime.
type Resolver struct {
	sink    *diag.Sink
	scopes  []scope
	locals  map[ast.Expr]int
	currFn  functionType
	inLoop  int
}

// New returns a Resolver that reports static errors to sink.
func New(sink *diag.Sink) *Resolver {
	return &Resolver{sink: sink, locals: make(map[ast.Expr]int)}
}

// Resolve walks stmts and returns the node->depth side-table.
func (r *Resolver) Resolve(stmts []ast.Stmt) map[ast.Expr]int {
	r.resolveStmts(stmts)
	logrus.WithField("entries", len(r.locals)).Debug("resolver: finished")
	return r.locals
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	_ = s.Accept(r)
}

func (r *Resolver) resolveExpr(e ast.Expr) {
	_, _ = e.Accept(r)
}

// --- scope stack ---

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, scope{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return // global scope: redeclaration is allowed
	}
	sc := r.scopes[len(r.scopes)-1]
	if _, ok := sc[name.Lexeme]; ok {
		r.sink.ErrorAtToken(name, "Already a variable with this name in this scope.")
	}
	sc[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
	// not found in any scope: falls through to globals at runtime
}

func (r *Resolver) resolveFunction(fn *ast.Function, typ functionType) {
	enclosing := r.currFn
	r.currFn = typ
	defer func() { r.currFn = enclosing }()

	// A function body starts outside any loop: a `break` in it cannot reach a
	// loop that merely encloses the declaration.
	enclosingLoop := r.inLoop
	r.inLoop = 0
	defer func() { r.inLoop = enclosingLoop }()

	r.beginScope()
	defer r.endScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
}

// --- StmtVisitor ---

func (r *Resolver) VisitBlockStmt(s *ast.Block) error {
	r.beginScope()
	r.resolveStmts(s.Statements)
	r.endScope()
	return nil
}

func (r *Resolver) VisitVarStmt(s *ast.Var) error {
	r.declare(s.Name)
	if s.Initializer != nil {
		r.resolveExpr(s.Initializer)
	}
	r.define(s.Name)
	return nil
}

func (r *Resolver) VisitFunctionStmt(s *ast.Function) error {
	r.declare(s.Name)
	r.define(s.Name)
	r.resolveFunction(s, functionTypeFunction)
	return nil
}

func (r *Resolver) VisitExpressionStmt(s *ast.Expression) error {
	r.resolveExpr(s.Expr)
	return nil
}

func (r *Resolver) VisitIfStmt(s *ast.If) error {
	r.resolveExpr(s.Cond)
	r.resolveStmt(s.Then)
	if s.Else != nil {
		r.resolveStmt(s.Else)
	}
	return nil
}

func (r *Resolver) VisitPrintStmt(s *ast.Print) error {
	r.resolveExpr(s.Expr)
	return nil
}

func (r *Resolver) VisitReturnStmt(s *ast.Return) error {
	if r.currFn == functionTypeNone {
		r.sink.ErrorAtToken(s.Keyword, "Can't return from top-level code.")
	}
	if s.Value != nil {
		r.resolveExpr(s.Value)
	}
	return nil
}

func (r *Resolver) VisitWhileStmt(s *ast.While) error {
	r.resolveExpr(s.Cond)
	r.inLoop++
	r.resolveStmt(s.Body)
	r.inLoop--
	return nil
}

func (r *Resolver) VisitBreakStmt(s *ast.Break) error {
	if r.inLoop == 0 {
		r.sink.ErrorAtToken(s.Keyword, "Can't use 'break' outside of a loop.")
	}
	return nil
}

// --- ExprVisitor ---

func (r *Resolver) VisitVariableExpr(e *ast.Variable) (interface{}, error) {
	if len(r.scopes) > 0 {
		if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
			r.sink.ErrorAtToken(e.Name, "Cannot read local variable in its own initializer.")
		}
	}
	r.resolveLocal(e, e.Name)
	return nil, nil
}

func (r *Resolver) VisitAssignExpr(e *ast.Assign) (interface{}, error) {
	r.resolveExpr(e.Value)
	r.resolveLocal(e, e.Name)
	return nil, nil
}

func (r *Resolver) VisitBinaryExpr(e *ast.Binary) (interface{}, error) {
	r.resolveExpr(e.Left)
	r.resolveExpr(e.Right)
	return nil, nil
}

func (r *Resolver) VisitCallExpr(e *ast.Call) (interface{}, error) {
	r.resolveExpr(e.Callee)
	for _, a := range e.Args {
		r.resolveExpr(a)
	}
	return nil, nil
}

func (r *Resolver) VisitGroupingExpr(e *ast.Grouping) (interface{}, error) {
	r.resolveExpr(e.Expression)
	return nil, nil
}

func (r *Resolver) VisitLiteralExpr(e *ast.Literal) (interface{}, error) {
	return nil, nil
}

func (r *Resolver) VisitLogicalExpr(e *ast.Logical) (interface{}, error) {
	r.resolveExpr(e.Left)
	r.resolveExpr(e.Right)
	return nil, nil
}

func (r *Resolver) VisitUnaryExpr(e *ast.Unary) (interface{}, error) {
	r.resolveExpr(e.Right)
	return nil, nil
}
