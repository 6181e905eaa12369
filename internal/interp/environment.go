package interp

import (
	"github.com/raspacee/lox/internal/diag"
	"github.com/raspacee/lox/internal/token"
)

// Environment is one frame in the name->value chain (spec.md §4.4). Frames
// are never reparented after creation; a frame is kept alive either by the
// evaluator's current chain or by any closure that captured it.
type Environment struct {
	enclosing *Environment
	values    map[string]interface{}
}

// NewEnvironment returns a frame enclosed by enclosing (nil for the global
// frame).
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{enclosing: enclosing, values: make(map[string]interface{})}
}

// Define unconditionally binds name in this frame, shadowing or redefining
// silently. The resolver is responsible for rejecting re-declaration at
// block scope before this is ever called for that case.
func (e *Environment) Define(name string, value interface{}) {
	e.values[name] = value
}

// Get searches this frame then its ancestors.
func (e *Environment) Get(name token.Token) (interface{}, error) {
	if v, ok := e.values[name.Lexeme]; ok {
		return v, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, diag.NewRuntimeError(name, "Undefined variable '"+name.Lexeme+"'.")
}

// Assign mutates the first frame in the chain (from here outward) that
// already binds name.
func (e *Environment) Assign(name token.Token, value interface{}) error {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = value
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, value)
	}
	return diag.NewRuntimeError(name, "Undefined variable '"+name.Lexeme+"'.")
}

// ancestor walks exactly depth enclosing links.
func (e *Environment) ancestor(depth int) *Environment {
	env := e
	for i := 0; i < depth; i++ {
		env = env.enclosing
	}
	return env
}

// GetAt reads name from the frame exactly depth links out, with no fallback.
func (e *Environment) GetAt(depth int, name string) interface{} {
	return e.ancestor(depth).values[name]
}

// AssignAt mutates name in the frame exactly depth links out, with no
// fallback.
func (e *Environment) AssignAt(depth int, name string, value interface{}) {
	e.ancestor(depth).values[name] = value
}
