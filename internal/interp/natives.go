package interp

import "time"

// nativeClock implements the single built-in: a zero-arity function
// returning the floor of wall-clock seconds since the Unix epoch
// (spec.md §4.5 "Built-in clock").
type nativeClock struct{}

func (*nativeClock) Arity() int { return 0 }

func (*nativeClock) String() string { return "<native fn>" }

func (*nativeClock) Call(i *Interpreter, args []interface{}) (interface{}, error) {
	return float64(time.Now().Unix()), nil
}

func defineNatives(globals *Environment) {
	globals.Define("clock", &nativeClock{})
}
