package interp

import "github.com/raspacee/lox/internal/ast"

// Function is a user-defined callable. It captures the environment active
// at the moment its enclosing `fun` statement executed -- that closure
// handle, not the interpreter's environment at call time, becomes the
// enclosing frame for every call, which is what makes captured variables
// shared by reference across calls (spec.md §4.5 "Closures").
//
// This generalizes the teacher's loxfunction.go, which called every
// function against the interpreter's global environment unconditionally
// and so could not express closures at all.
type Function struct {
	decl    *ast.Function
	closure *Environment
}

// NewFunction binds decl's body to the environment active when the
// declaration was executed.
func NewFunction(decl *ast.Function, closure *Environment) *Function {
	return &Function{decl: decl, closure: closure}
}

func (f *Function) Arity() int { return len(f.decl.Params) }

func (f *Function) String() string { return "<fn " + f.decl.Name.Lexeme + ">" }

// Call runs the function body in a fresh frame enclosed by the captured
// closure, catching a return-unwind and yielding its value; a body that
// completes without returning yields nil (spec.md §4.5 step 4).
func (f *Function) Call(i *Interpreter, args []interface{}) (interface{}, error) {
	env := NewEnvironment(f.closure)
	for idx, param := range f.decl.Params {
		env.Define(param.Lexeme, args[idx])
	}

	err := i.executeBlock(f.decl.Body, env)
	if ret, ok := err.(returnUnwind); ok {
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}
	return nil, nil
}
