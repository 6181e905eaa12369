package interp

import (
	"fmt"
	"strconv"
)

// Callable is any value that can appear as the callee of a Call expression:
// a user-defined Function or a native function.
type Callable interface {
	Arity() int
	Call(i *Interpreter, args []interface{}) (interface{}, error)
	String() string
}

// isTruthy implements spec.md §4.5: nil and false are falsy, everything
// else -- including 0 and "" -- is truthy.
func isTruthy(v interface{}) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// isEqual implements strict-by-variant equality (spec.md §4.5): different
// dynamic types are never equal, callables compare by identity.
func isEqual(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case Callable:
		bv, ok := b.(Callable)
		return ok && sameCallable(av, bv)
	default:
		return false
	}
}

// sameCallable compares callables by identity. Functions are always
// represented as pointers (*Function) and natives as pointers to their
// concrete type, so a plain pointer-equality check via type assertion
// suffices without resorting to reflection.
func sameCallable(a, b Callable) bool {
	if fa, ok := a.(*Function); ok {
		fb, ok := b.(*Function)
		return ok && fa == fb
	}
	if na, ok := a.(*nativeClock); ok {
		nb, ok := b.(*nativeClock)
		return ok && na == nb
	}
	return false
}

// stringify renders v the way `print` and string concatenation display it
// (spec.md §4.5).
func stringify(v interface{}) string {
	if v == nil {
		return "nil"
	}
	switch val := v.(type) {
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		// FormatFloat with precision -1 already renders 2.0 as "2": Go's
		// shortest round-tripping form never appends a trailing ".0".
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return val
	case Callable:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
