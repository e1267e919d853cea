package types

import "fmt"

// TypeError reports an operator/operand or conversion incompatibility
// found while evaluating the type lattice.
type TypeError struct {
	Msg string
}

func (e *TypeError) Error() string { return e.Msg }

func typeErrorf(format string, args ...interface{}) *TypeError {
	return &TypeError{Msg: fmt.Sprintf(format, args...)}
}
