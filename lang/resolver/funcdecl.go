package resolver

import (
	"github.com/sylph-lang/sylph/lang/ast"
	"github.com/sylph-lang/sylph/lang/types"
)

// FunDecl is the resolver's record for one function-shaped scope: the
// top-level chunk, a FuncDeclStmt, a FuncExpr, or a class method.
type FunDecl struct {
	// Definition is the node this function scope belongs to: *ast.Chunk,
	// *ast.FuncDeclStmt, *ast.FuncExpr, or *ast.MethodDecl.
	Definition ast.Node

	Locals   []*VarDecl // "this" (methods only), then parameters, then local/cell variables in declaration order
	FreeVars []*VarDecl // enclosing Cells captured by this function, in first-use order

	// heapLocalsByName memoizes the FreeVars entry already synthesized
	// for a given name, so a name captured through multiple references
	// inside the same function threads through one chain link, not one
	// per reference.
	heapLocalsByName map[string]*VarDecl

	// Wrapper describes the positional-or-named calling convention
	// synthesized for this function.
	Wrapper *WrapperInfo

	loops int // nesting depth of loop blocks, for break/continue validation
}

// WrapperParam is one parameter slot of a synthesized call wrapper.
type WrapperParam struct {
	Name        string
	Type        types.Type
	IsMandatory bool
}

// WrapperInfo is the metadata a named-argument call wrapper is
// synthesized from: which parameters are mandatory (must
// be supplied, positionally or by name) and which are optional (may be
// omitted, taking their declared default).
type WrapperInfo struct {
	Params         []WrapperParam
	MandatoryCount int
}

// block is one lexical scope: a linked node in the resolver's scope
// stack, holding the bindings declared directly in it, pushed and
// popped as the AST walk enters and leaves it.
type block struct {
	parent   *block
	children []*block
	fn       *FunDecl // the enclosing function scope
	bindings map[string]*VarDecl
	isLoop   bool
	name     string // assigned by NameBlocks mode

	// astBlock is the *ast.Block this scope resolves, or nil for a
	// synthetic scope pushed by the resolver itself (e.g. to hold a
	// for-in loop's bound variables) that has no statement list of its
	// own to insert into.
	astBlock *ast.Block
}
