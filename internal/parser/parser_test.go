package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/raspacee/lox/internal/ast"
	"github.com/raspacee/lox/internal/diag"
	"github.com/raspacee/lox/internal/scanner"
)

func parse(t *testing.T, src string) ([]ast.Stmt, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink()
	toks := scanner.New(src, sink).ScanTokens()
	stmts := New(toks, sink).Parse()
	return stmts, sink
}

func TestArithmeticPrecedence(t *testing.T) {
	stmts, sink := parse(t, "print 1 + 2 * 3;")
	require.False(t, sink.HadError())
	require.Len(t, stmts, 1)
	printStmt := stmts[0].(*ast.Print)
	bin := printStmt.Expr.(*ast.Binary)
	require.Equal(t, "+", bin.Operator.Lexeme)
	require.IsType(t, &ast.Literal{}, bin.Left)
	rhs := bin.Right.(*ast.Binary)
	require.Equal(t, "*", rhs.Operator.Lexeme)
}

func TestForDesugarsToWhileInsideBlocks(t *testing.T) {
	stmts, sink := parse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	require.False(t, sink.HadError())
	require.Len(t, stmts, 1)
	outer := stmts[0].(*ast.Block)
	require.Len(t, outer.Statements, 2)
	require.IsType(t, &ast.Var{}, outer.Statements[0])
	whileStmt := outer.Statements[1].(*ast.While)
	require.IsType(t, &ast.Binary{}, whileStmt.Cond)
	innerBlock := whileStmt.Body.(*ast.Block)
	require.Len(t, innerBlock.Statements, 2)
	require.IsType(t, &ast.Print{}, innerBlock.Statements[0])
	require.IsType(t, &ast.Expression{}, innerBlock.Statements[1])
}

func TestForWithOmittedClauses(t *testing.T) {
	stmts, sink := parse(t, "for (;;) break;")
	require.False(t, sink.HadError())
	whileStmt := stmts[0].(*ast.While)
	lit := whileStmt.Cond.(*ast.Literal)
	require.Equal(t, true, lit.Value)
	require.IsType(t, &ast.Break{}, whileStmt.Body)
}

func TestAssignmentTargetMustBeVariable(t *testing.T) {
	_, sink := parse(t, "1 + 2 = 3;")
	require.True(t, sink.HadError())
}

func TestInvalidAssignmentDoesNotAbortRestOfProgram(t *testing.T) {
	stmts, sink := parse(t, "1 = 2; print 3;")
	require.True(t, sink.HadError())
	// Assignment-target errors are non-panicking (spec.md §4.2), so both
	// statements should still be present.
	require.Len(t, stmts, 2)
}

func TestParseErrorRecoverySkipsOnlyBadDeclaration(t *testing.T) {
	stmts, sink := parse(t, "var ; print 1;")
	require.True(t, sink.HadError())
	require.Len(t, stmts, 1)
	require.IsType(t, &ast.Print{}, stmts[0])
}

func TestFunctionDeclaration(t *testing.T) {
	stmts, sink := parse(t, "fun add(a, b) { return a + b; }")
	require.False(t, sink.HadError())
	fn := stmts[0].(*ast.Function)
	require.Equal(t, "add", fn.Name.Lexeme)
	require.Len(t, fn.Params, 2)
	require.Len(t, fn.Body, 1)
}

func TestTooManyArgumentsReportsNonFatalError(t *testing.T) {
	src := "f("
	for i := 0; i < 256; i++ {
		if i > 0 {
			src += ","
		}
		src += "1"
	}
	src += ");"
	_, sink := parse(t, src)
	require.True(t, sink.HadError())
}

func TestLogicalShortCircuitNodesAreDistinctFromBinary(t *testing.T) {
	stmts, sink := parse(t, "print true or false;")
	require.False(t, sink.HadError())
	printStmt := stmts[0].(*ast.Print)
	require.IsType(t, &ast.Logical{}, printStmt.Expr)
}
