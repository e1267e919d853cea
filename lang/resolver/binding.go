package resolver

import (
	"fmt"

	"github.com/sylph-lang/sylph/lang/ast"
	"github.com/sylph-lang/sylph/lang/types"
)

// Scope classifies where a VarDecl's storage lives (adapted from the
// Starlark-go resolver's Local/Cell/Free/Predeclared/Universal model).
type Scope uint8

const (
	Undefined   Scope = iota // name does not resolve to anything
	Local                    // local to its function
	Cell                     // function-local but captured by a nested function
	Free                     // a Cell of some enclosing function, captured here
	Predeclared              // supplied by the embedding environment
	Universal                // a language built-in
)

var scopeNames = [...]string{
	Undefined:   "undefined",
	Local:       "local",
	Cell:        "cell",
	Free:        "free",
	Predeclared: "predeclared",
	Universal:   "universal",
}

func (s Scope) String() string {
	if int(s) >= len(scopeNames) {
		return fmt.Sprintf("<invalid Scope %d>", s)
	}
	return scopeNames[s]
}

// VarDecl is the resolver's record for one declared name: a local
// variable, parameter, switch binding variable, capture-array variable,
// function, or class. Every IdentExpr, Param, and pattern binding
// variable that refers to this name points back to the same VarDecl.
type VarDecl struct {
	Name  string
	Scope Scope

	// Index is this VarDecl's slot: into the enclosing FunDecl's Locals if
	// Scope==Local or Cell, or into FreeVars if Scope==Free. Unused
	// (zero) for Predeclared/Universal/Undefined.
	Index int

	Type    types.Type
	IsConst bool

	// Decl is the node that introduced this binding: a VarDeclStmt,
	// Param, FuncDeclStmt, ClassDeclStmt, BindingVarPattern, or a
	// synthetic node for a regex capture-array / switch subject variable.
	Decl ast.Node

	// IsHeapLocal is set on the original Local/Cell VarDecl once some
	// nested function captures it, however many function boundaries
	// away. A heap-local's storage outlives the call frame that
	// declared it, so the runtime boxes it instead of keeping it on the
	// stack.
	IsHeapLocal bool

	// IsPassedAsHeapLocal is set on a Free-scope VarDecl synthesized by
	// lookup: it marks this binding as a forwarded reference to an
	// enclosing function's heap-local cell, rather than a fresh copy.
	IsPassedAsHeapLocal bool

	// ParentVarDecl is the next link toward the declaring function: the
	// enclosing function's own VarDecl for this name, one level up the
	// closure chain. Set only on Free-scope VarDecls.
	ParentVarDecl *VarDecl

	// OriginalVarDecl is the Local/Cell VarDecl the whole chain
	// ultimately refers to, declared in the function that owns the
	// variable's storage. Set only on Free-scope VarDecls.
	OriginalVarDecl *VarDecl

	// BlockName is set by NameBlocks mode, a debugging aid: the name of
	// the block this VarDecl was first declared in.
	BlockName string
}
