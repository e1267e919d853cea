// Package ast defines the AST model: statement and expression
// node variants as a tagged sum, each carrying a source location and,
// for expressions, mutable post-resolution attributes filled in by the
// resolver (resolved type, constant-ness, constant value).
//
// Node shape never changes after construction (the kind is fixed at
// parse time). The resolver passes annotate nodes but never replace one
// in its parent's child slot: the first occurrence of a name in a case's
// patterns is already built as a BindingVarPattern (and later ones as
// IdentifierPattern) by whoever constructs the tree, and a TypeExpr stays
// a TypeExpr even when it names a class constant.
package ast

import (
	"github.com/sylph-lang/sylph/lang/token"
	"github.com/sylph-lang/sylph/lang/types"
)

// Node is any node in the AST.
type Node interface {
	// Span reports the node's start and end source positions.
	Span() (start, end token.Pos)
	// Walk visits the node's direct children with v.
	Walk(v Visitor)
}

// Expr is an expression node. Every Expr embeds Attrs, giving it the
// resolver-filled annotations: resolved type, constant-ness, and so on.
type Expr interface {
	Node
	exprNode()
	attrs() *Attrs
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
	// BlockEnding reports whether this kind of statement may only appear as
	// the last statement of a block (return, break, continue).
	BlockEnding() bool
}

// Attrs holds the mutable, post-resolution annotations carried by every
// expression node: resolved type, constant-ness and constant
// value, whether the value could be null, and whether this node has
// already been resolved (resolution is idempotent).
type Attrs struct {
	Type        types.Type
	IsConst     bool
	ConstValue  interface{}
	CouldBeNull bool
	IsResolved  bool

	// Owner and Block are filled by the resolver: the FunDecl this
	// expression lives in, and the enclosing Block. They are `any` (rather
	// than *resolver.FunDecl / *resolver.Block) purely to avoid an import
	// cycle between ast and resolver.
	Owner interface{}
	Block interface{}
}

func (a *Attrs) attrs() *Attrs { return a }

// MarkResolved records that resolution of this node has completed with
// the given type, so a second call to resolve(node) is a no-op.
func (a *Attrs) MarkResolved(t types.Type) {
	a.Type = t
	a.IsResolved = true
}

// TypeOf returns e's resolved type. Exported as a free function, rather
// than a method promoted from Attrs, because external packages cannot
// call the unexported attrs() accessor the Expr interface relies on.
func TypeOf(e Expr) types.Type { return e.attrs().Type }

// IsResolved reports whether e has already been resolved (a second
// resolve(e) must be a no-op).
func IsResolved(e Expr) bool { return e.attrs().IsResolved }

// SetResolved records the result of resolving e.
func SetResolved(e Expr, t types.Type) { e.attrs().MarkResolved(t) }

// SetConst records that e is a compile-time constant with the given
// value.
func SetConst(e Expr, value interface{}) {
	e.attrs().IsConst = true
	e.attrs().ConstValue = value
}

// ConstValue returns e's folded constant value and whether e is const.
func ConstValue(e Expr) (interface{}, bool) {
	a := e.attrs()
	return a.ConstValue, a.IsConst
}

// SetCouldBeNull records whether e's value may be null (safe-access
// '?.'/'?[' propagation).
func SetCouldBeNull(e Expr, b bool) { e.attrs().CouldBeNull = b }

// CouldBeNull reports whether e's value may be null.
func CouldBeNull(e Expr) bool { return e.attrs().CouldBeNull }

// SetOwnerBlock records the enclosing FunDecl/Block an expression
// resolves in (*resolver.FunDecl, *resolver.Block — declared `any` here
// to avoid an ast -> resolver import cycle).
func SetOwnerBlock(e Expr, owner, blk interface{}) {
	e.attrs().Owner = owner
	e.attrs().Block = blk
}

// Block is a sequence of statements sharing one lexical scope.
type Block struct {
	Start, End token.Pos
	Stmts      []Stmt

	// ResolvingIndex is the index into Stmts currently being resolved. The
	// resolver advances it one statement at a time, and may insert a
	// synthetic statement immediately before the current index: inserting
	// at ResolvingIndex and incrementing it keeps the index on the
	// statement being resolved, so the loop never visits the inserted one.
	ResolvingIndex int
}

func (b *Block) Span() (token.Pos, token.Pos) { return b.Start, b.End }
func (b *Block) Walk(v Visitor) {
	for _, s := range b.Stmts {
		Walk(v, s)
	}
}

// InsertBefore inserts stmt immediately before the statement currently
// being resolved (at ResolvingIndex), and advances ResolvingIndex so that
// it still points at the original statement. The resolver's statement
// loop does not visit stmt; the caller declares whatever stmt binds.
func (b *Block) InsertBefore(stmt Stmt) {
	ix := b.ResolvingIndex
	b.Stmts = append(b.Stmts, nil)
	copy(b.Stmts[ix+1:], b.Stmts[ix:])
	b.Stmts[ix] = stmt
	b.ResolvingIndex++
}

// Chunk is the top-level unit of compilation: a Block plus its source
// file name.
type Chunk struct {
	Name  string
	Block *Block
	EOF   token.Pos
}

func (c *Chunk) Span() (token.Pos, token.Pos) {
	if c.Block != nil {
		return c.Block.Span()
	}
	return c.EOF, c.EOF
}
func (c *Chunk) Walk(v Visitor) {
	if c.Block != nil {
		Walk(v, c.Block)
	}
}
