package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/raspacee/lox/internal/diag"
	"github.com/raspacee/lox/internal/parser"
	"github.com/raspacee/lox/internal/resolver"
	"github.com/raspacee/lox/internal/scanner"
)

// run scans, parses, resolves and interprets src, returning stdout and any
// runtime error. It mirrors the pipeline cmd/glox drives end to end.
func run(t *testing.T, src string) (string, error) {
	t.Helper()
	sink := diag.NewSink()
	toks := scanner.New(src, sink).ScanTokens()
	stmts := parser.New(toks, sink).Parse()
	require.False(t, sink.HadError(), "unexpected static errors: %v", sink.Errors())

	locals := resolver.New(sink).Resolve(stmts)
	require.False(t, sink.HadError(), "unexpected resolution errors: %v", sink.Errors())

	var buf bytes.Buffer
	err := New(locals, &buf).Interpret(stmts)
	return buf.String(), err
}

func TestArithmeticPrecedence(t *testing.T) {
	out, err := run(t, "print 1 + 2 * 3;")
	require.NoError(t, err)
	require.Equal(t, "7\n", out)
}

func TestStringConcatAndNumberStringify(t *testing.T) {
	out, err := run(t, `print "pi" + "3"; print 3/2; print 4/2;`)
	require.NoError(t, err)
	require.Equal(t, "pi3\n1.5\n2\n", out)
}

func TestClosureCounterCapturesByReference(t *testing.T) {
	out, err := run(t, `
fun makeCounter() { var i = 0; fun count() { i = i + 1; return i; } return count; }
var c = makeCounter(); print c(); print c(); print c();
`)
	require.NoError(t, err)
	require.Equal(t, "1\n2\n3\n", out)
}

func TestForLoopDesugaring(t *testing.T) {
	out, err := run(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	require.NoError(t, err)
	require.Equal(t, "0\n1\n2\n", out)
}

func TestRuntimeTypeErrorOnSubtractingString(t *testing.T) {
	_, err := run(t, `print "a" - 1;`)
	require.Error(t, err)
	require.Equal(t, "Operands must be numbers.\n[line 1]", err.Error())
}

func TestScopeShadowing(t *testing.T) {
	out, err := run(t, `var a = 1; { var a = 2; print a; } print a;`)
	require.NoError(t, err)
	require.Equal(t, "2\n1\n", out)
}

func TestBreakExitsLoop(t *testing.T) {
	out, err := run(t, `var i=0; while (true) { if (i==3) break; i = i+1; } print i;`)
	require.NoError(t, err)
	require.Equal(t, "3\n", out)
}

func TestOrShortCircuitsRightOperand(t *testing.T) {
	out, err := run(t, `
fun sideEffect() { print "evaluated"; return true; }
print true or sideEffect();
`)
	require.NoError(t, err)
	require.Equal(t, "true\n", out)
	require.False(t, strings.Contains(out, "evaluated"))
}

func TestAndShortCircuitsRightOperand(t *testing.T) {
	out, err := run(t, `
fun sideEffect() { print "evaluated"; return true; }
print false and sideEffect();
`)
	require.NoError(t, err)
	require.Equal(t, "false\n", out)
	require.False(t, strings.Contains(out, "evaluated"))
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	_, err := run(t, `print undeclared;`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Undefined variable 'undeclared'.")
}

func TestCallingNonCallableIsRuntimeError(t *testing.T) {
	_, err := run(t, `var x = 1; x();`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Can only call functions and classes.")
}

func TestArityMismatchIsRuntimeError(t *testing.T) {
	_, err := run(t, `fun f(a, b) { return a; } f(1);`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Expected 2 arguments but got 1.")
}

func TestBlockRestoresEnvironmentOnRuntimeError(t *testing.T) {
	sink := diag.NewSink()
	src := `var a = "outer"; { var a = "inner"; print a - 1; }`
	toks := scanner.New(src, sink).ScanTokens()
	stmts := parser.New(toks, sink).Parse()
	require.False(t, sink.HadError())
	locals := resolver.New(sink).Resolve(stmts)
	require.False(t, sink.HadError())

	i := New(locals, &bytes.Buffer{})
	err := i.Interpret(stmts)
	require.Error(t, err)
	// the block's own frame unwound; the interpreter's current environment
	// must be back to the one active before the block ran.
	require.Same(t, i.globals, i.env)
}

func TestFunctionWithoutReturnYieldsNil(t *testing.T) {
	out, err := run(t, `fun f() { var x = 1; } print f();`)
	require.NoError(t, err)
	require.Equal(t, "nil\n", out)
}

func TestClockIsCallableWithZeroArity(t *testing.T) {
	out, err := run(t, `print clock() > 0;`)
	require.NoError(t, err)
	require.Equal(t, "true\n", out)
}
