// Package interp is the tree-walking evaluator described in spec.md §4.5:
// it interprets statements against an environment chain, implementing
// closures, control flow, and function calls.
package interp

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/raspacee/lox/internal/ast"
	"github.com/raspacee/lox/internal/diag"
	"github.com/raspacee/lox/internal/token"
)

// Interpreter walks a resolved program and produces observable effects:
// stdout writes from `print`, and an optional runtime error.
type Interpreter struct {
	globals *Environment
	env     *Environment
	locals  map[ast.Expr]int
	stdout  io.Writer
}

// New returns an Interpreter seeded with the global `clock` native and the
// resolver's side-table. stdout defaults to os.Stdout when nil.
func New(locals map[ast.Expr]int, stdout io.Writer) *Interpreter {
	globals := NewEnvironment(nil)
	defineNatives(globals)
	if stdout == nil {
		stdout = os.Stdout
	}
	return &Interpreter{globals: globals, env: globals, locals: locals, stdout: stdout}
}

// Interpret executes every statement in order, stopping at the first
// runtime error (spec.md §7: a runtime error aborts the current top-level
// statement/REPL line, not the whole process).
func (i *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := i.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) execute(s ast.Stmt) error {
	return s.Accept(i)
}

func (i *Interpreter) evaluate(e ast.Expr) (interface{}, error) {
	return e.Accept(i)
}

// executeBlock runs stmts against env, unconditionally restoring the prior
// environment on every exit path -- normal completion, a runtime error, or
// a break/return unwind (spec.md §4.5 "Block execution", §5).
func (i *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) error {
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()

	for _, s := range stmts {
		if err := i.execute(s); err != nil {
			return err
		}
	}
	return nil
}

// --- StmtVisitor ---

func (i *Interpreter) VisitExpressionStmt(s *ast.Expression) error {
	_, err := i.evaluate(s.Expr)
	return err
}

func (i *Interpreter) VisitPrintStmt(s *ast.Print) error {
	val, err := i.evaluate(s.Expr)
	if err != nil {
		return err
	}
	fmt.Fprintln(i.stdout, stringify(val))
	return nil
}

func (i *Interpreter) VisitVarStmt(s *ast.Var) error {
	var val interface{}
	if s.Initializer != nil {
		v, err := i.evaluate(s.Initializer)
		if err != nil {
			return err
		}
		val = v
	}
	i.env.Define(s.Name.Lexeme, val)
	return nil
}

func (i *Interpreter) VisitBlockStmt(s *ast.Block) error {
	return i.executeBlock(s.Statements, NewEnvironment(i.env))
}

func (i *Interpreter) VisitIfStmt(s *ast.If) error {
	cond, err := i.evaluate(s.Cond)
	if err != nil {
		return err
	}
	if isTruthy(cond) {
		return i.execute(s.Then)
	}
	if s.Else != nil {
		return i.execute(s.Else)
	}
	return nil
}

func (i *Interpreter) VisitWhileStmt(s *ast.While) error {
	for {
		cond, err := i.evaluate(s.Cond)
		if err != nil {
			return err
		}
		if !isTruthy(cond) {
			return nil
		}
		if err := i.execute(s.Body); err != nil {
			if _, ok := err.(breakUnwind); ok {
				return nil
			}
			return err
		}
	}
}

func (i *Interpreter) VisitBreakStmt(s *ast.Break) error {
	return breakUnwind{}
}

func (i *Interpreter) VisitFunctionStmt(s *ast.Function) error {
	fn := NewFunction(s, i.env)
	i.env.Define(s.Name.Lexeme, fn)
	return nil
}

func (i *Interpreter) VisitReturnStmt(s *ast.Return) error {
	var val interface{}
	if s.Value != nil {
		v, err := i.evaluate(s.Value)
		if err != nil {
			return err
		}
		val = v
	}
	return returnUnwind{value: val}
}

// --- ExprVisitor ---

func (i *Interpreter) VisitLiteralExpr(e *ast.Literal) (interface{}, error) {
	return e.Value, nil
}

func (i *Interpreter) VisitGroupingExpr(e *ast.Grouping) (interface{}, error) {
	// The teacher's VisitGrouping evaluates the Grouping node itself rather
	// than its inner expression, an infinite-recursion bug spec.md §9 calls
	// out explicitly. The correct behavior, used here, evaluates Expression.
	return i.evaluate(e.Expression)
}

func (i *Interpreter) VisitUnaryExpr(e *ast.Unary) (interface{}, error) {
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Type {
	case token.Minus:
		n, ok := right.(float64)
		if !ok {
			return nil, diag.NewRuntimeError(e.Operator, "Operand must be a number.")
		}
		return -n, nil
	case token.Bang:
		return !isTruthy(right), nil
	}
	return nil, diag.NewRuntimeError(e.Operator, "Unknown unary operator.")
}

func (i *Interpreter) VisitBinaryExpr(e *ast.Binary) (interface{}, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case token.Greater, token.GreaterEqual, token.Less, token.LessEqual, token.Minus, token.Slash, token.Star:
		ln, lok := left.(float64)
		rn, rok := right.(float64)
		if !lok || !rok {
			return nil, diag.NewRuntimeError(e.Operator, "Operands must be numbers.")
		}
		switch e.Operator.Type {
		case token.Greater:
			return ln > rn, nil
		case token.GreaterEqual:
			return ln >= rn, nil
		case token.Less:
			return ln < rn, nil
		case token.LessEqual:
			return ln <= rn, nil
		case token.Minus:
			return ln - rn, nil
		case token.Slash:
			return ln / rn, nil
		case token.Star:
			return ln * rn, nil
		}
	case token.Plus:
		if ln, lok := left.(float64); lok {
			if rn, rok := right.(float64); rok {
				return ln + rn, nil
			}
		}
		if ls, lok := left.(string); lok {
			if rs, rok := right.(string); rok {
				return ls + rs, nil
			}
		}
		return nil, diag.NewRuntimeError(e.Operator, "Operands must be two numbers or two strings.")
	case token.BangEqual:
		return !isEqual(left, right), nil
	case token.EqualEqual:
		return isEqual(left, right), nil
	}
	return nil, diag.NewRuntimeError(e.Operator, "Unknown binary operator.")
}

func (i *Interpreter) VisitVariableExpr(e *ast.Variable) (interface{}, error) {
	return i.lookUpVariable(e.Name, e)
}

func (i *Interpreter) lookUpVariable(name token.Token, expr ast.Expr) (interface{}, error) {
	if depth, ok := i.locals[expr]; ok {
		return i.env.GetAt(depth, name.Lexeme), nil
	}
	return i.globals.Get(name)
}

func (i *Interpreter) VisitAssignExpr(e *ast.Assign) (interface{}, error) {
	val, err := i.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	if depth, ok := i.locals[e]; ok {
		i.env.AssignAt(depth, e.Name.Lexeme, val)
		return val, nil
	}
	if err := i.globals.Assign(e.Name, val); err != nil {
		return nil, err
	}
	return val, nil
}

func (i *Interpreter) VisitLogicalExpr(e *ast.Logical) (interface{}, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Operator.Type == token.Or {
		if isTruthy(left) {
			return left, nil
		}
	} else {
		if !isTruthy(left) {
			return left, nil
		}
	}
	return i.evaluate(e.Right)
}

func (i *Interpreter) VisitCallExpr(e *ast.Call) (interface{}, error) {
	callee, err := i.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]interface{}, 0, len(e.Args))
	for _, a := range e.Args {
		v, err := i.evaluate(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, diag.NewRuntimeError(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, diag.NewRuntimeError(e.Paren, fmt.Sprintf("Expected %d arguments but got %d.", fn.Arity(), len(args)))
	}
	logrus.WithField("callee", fn.String()).Debug("interp: call")
	return fn.Call(i, args)
}
