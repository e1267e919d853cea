// Package switchcompile implements the SwitchCompiler: it
// lowers a resolved *ast.SwitchExpr into a mixture of direct dispatch
// (batched runs of literal patterns) and sequential pattern tests,
// driving an external bytecode emitter through a narrow capability
// interface.
//
// The package never assumes anything about the host VM beyond what the
// Emitter interface expresses, separating the AST-to-CFG walk from the
// eventual linear bytecode encoding -- the "CFG walk" is entirely
// delegated to whatever implements Emitter.
package switchcompile

import (
	"github.com/sylph-lang/sylph/lang/ast"
	"github.com/sylph-lang/sylph/lang/token"
	"github.com/sylph-lang/sylph/lang/types"
)

// Label is an opaque jump target minted by Emitter.Label and resolved to
// a concrete address by Emitter.LabelHere. Implementations are free to
// represent it however suits their backend (an index into a block list,
// a forward-reference patch site, ...); the switch compiler only ever
// creates, stores and passes back values it got from the Emitter.
type Label interface{}

// Emitter is the capability interface the external bytecode emitter
// implements and the switch compiler drives. Every primitive
// operates on the emitter's own type-stack abstraction; the switch
// compiler never inspects or assumes a stack depth itself.
type Emitter interface {
	// Compile recurses into an arbitrary AST node (a guard, a result
	// expression, a pattern sub-expression), leaving its value on the
	// stack.
	Compile(expr ast.Expr)

	// LoadVar/StoreVar access a resolver-level variable; LoadLocal/
	// StoreLocal access an emitter-numbered slot the switch compiler
	// reserves for destructuring temporaries.
	LoadVar(v interface{})
	StoreVar(v interface{})
	LoadLocal(slot int)
	StoreLocal(slot int)

	// LoadConst pushes a constant value; LoadDefaultValue pushes the
	// zero/default value for typ. Compile itself does not call
	// LoadDefaultValue: a synthesized "-> null" default is compiled like
	// any other default expression.
	LoadConst(value interface{})
	LoadDefaultValue(typ types.Type)

	// EmitLength pushes the semantic length of a List/Map/Array/String
	// already on the stack.
	EmitLength(at token.Pos)
	// UnsafeLoadElem pushes the indexed element of a List/Map/Array
	// already on the stack, given its static parentType.
	UnsafeLoadElem(parentType types.Type, at token.Pos)

	// IsInstanceOf pushes a boolean: whether the value on top of stack is
	// an instance of typ (or of any of typs, when passed a slice).
	// CheckCast narrows the value on top of stack to typ, trapping at
	// runtime if it is not.
	IsInstanceOf(typ interface{})
	CheckCast(typ types.Type)

	// Box/Unbox/DupVal/PopVal/Swap reshape the value stack.
	Box()
	Unbox()
	DupVal()
	PopVal()
	Swap()

	// InvokeMethod calls a runtime helper method identified by
	// class/name/paramTypes, consuming its arguments and pushing its
	// result. ConvertTo performs a semantic coercion of the
	// value on top of stack to typ, honoring allowLoss, reporting errors
	// at atNode/locationToken.
	InvokeMethod(class, methodName string, paramTypes ...types.Type)
	ConvertTo(typ types.Type, atNode ast.Node, allowLoss bool, at token.Pos)

	// EmitIf emits a structured conditional: thenBlock/elseBlock/
	// finallyBlock are zero-argument closures the switch compiler calls
	// back into to emit the corresponding arm; maybeAsync marks the
	// conditional as potentially suspending.
	EmitIf(maybeAsync bool, kind string, thenBlock, elseBlock, finallyBlock func())

	// Label mints a fresh, unplaced jump target. LabelHere binds l to
	// the current emission position. Jump emits an unconditional branch
	// to l; JumpIf emits a branch to l taken only if the boolean on top
	// of stack satisfies cond, e.g. "true"/"false"/"null"/"notnull".
	Label() Label
	LabelHere(l Label)
	Jump(l Label)
	JumpIf(cond string, l Label)

	// TableSwitch emits a dense jump table indexed by value-min over
	// [min,max], one label per integer in range plus a defaultLabel for
	// values out of range or for a runtime non-numeric subject.
	// TableSwitch consumes the int subject already on top of stack.
	TableSwitch(min, max int64, defaultLabel Label, labels []Label)

	// LookupSwitch emits a sparse dispatch keyed by an already-computed
	// hash/bucket index on top of stack, falling through to defaultLabel
	// when no key matches. keys and labels are parallel slices, one
	// entry per bucket.
	LookupSwitch(defaultLabel Label, keys []int64, labels []Label)
}
