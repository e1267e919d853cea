package ast

import "github.com/sylph-lang/sylph/lang/token"

// LiteralKind identifies the kind of a LiteralExpr.
type LiteralKind uint8

const (
	LitNull LiteralKind = iota
	LitBool
	LitByte
	LitInt
	LitLong
	LitDouble
	LitDecimal
	LitString
)

// IdentExpr is an identifier reference.
type IdentExpr struct {
	Attrs
	Start token.Pos
	Name  string

	// Binding is filled by the resolver: *resolver.VarDecl. Declared `any`
	// to avoid an ast -> resolver import cycle.
	Binding interface{}
}

func (n *IdentExpr) Span() (token.Pos, token.Pos) { return n.Start, n.Start + token.Pos(len(n.Name)) }
func (n *IdentExpr) Walk(v Visitor)               {}
func (n *IdentExpr) exprNode()                    {}

// LiteralExpr is a literal value.
type LiteralExpr struct {
	Attrs
	Kind  LiteralKind
	Start token.Pos
	Raw   string
	Value interface{} // bool | byte | int64 (Int/Long) | float64 | string | *big.Rat-ish for Decimal
}

func (n *LiteralExpr) Span() (token.Pos, token.Pos) { return n.Start, n.Start + token.Pos(len(n.Raw)) }
func (n *LiteralExpr) Walk(v Visitor)               {}
func (n *LiteralExpr) exprNode()                    {}

// ListExpr is a list literal, e.g. [1, 2, 3].
type ListExpr struct {
	Attrs
	Start, End token.Pos
	Items      []Expr
}

func (n *ListExpr) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *ListExpr) Walk(v Visitor) {
	for _, e := range n.Items {
		Walk(v, e)
	}
}
func (n *ListExpr) exprNode() {}

// KeyVal is one entry of a MapExpr.
type KeyVal struct {
	Key   Expr
	Value Expr
}

// MapExpr is a map literal, e.g. {a: 1, b: 2}.
type MapExpr struct {
	Attrs
	Start, End token.Pos
	Items      []*KeyVal
}

func (n *MapExpr) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *MapExpr) Walk(v Visitor) {
	for _, kv := range n.Items {
		Walk(v, kv.Key)
		Walk(v, kv.Value)
	}
}
func (n *MapExpr) exprNode() {}

// BinOpExpr is a binary expression, including field/index access ('.',
// '?.', '[', '?[') and 'instanceof'/'as'.
type BinOpExpr struct {
	Attrs
	Left  Expr
	Op    BinOp
	OpPos token.Pos
	Right Expr

	// TypeRef is set instead of Right for the type-denoting operand of
	// 'instanceof'/'!instanceof'/'as' (Right is unused in that case).
	TypeRef *TypeExpr
}

func (n *BinOpExpr) Span() (token.Pos, token.Pos) {
	start, _ := n.Left.Span()
	var end token.Pos
	if n.Right != nil {
		_, end = n.Right.Span()
	} else if n.TypeRef != nil {
		_, end = n.TypeRef.Span()
	}
	return start, end
}
func (n *BinOpExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	if n.Right != nil {
		Walk(v, n.Right)
	}
}
func (n *BinOpExpr) exprNode() {}

// UnaryOpExpr is a unary expression.
type UnaryOpExpr struct {
	Attrs
	Op    UnaryOp
	OpPos token.Pos
	Right Expr
}

func (n *UnaryOpExpr) Span() (token.Pos, token.Pos) {
	_, end := n.Right.Span()
	return n.OpPos, end
}
func (n *UnaryOpExpr) Walk(v Visitor) { Walk(v, n.Right) }
func (n *UnaryOpExpr) exprNode()      {}

// Arg is one call argument, named or positional (Name == "" for
// positional).
type Arg struct {
	Name  string
	Value Expr
}

// CallExpr is a function call, possibly with named arguments.
type CallExpr struct {
	Attrs
	Fn     Expr
	Args   []*Arg
	Lparen token.Pos
	Rparen token.Pos
}

func (n *CallExpr) Span() (token.Pos, token.Pos) {
	start, _ := n.Fn.Span()
	return start, n.Rparen + 1
}
func (n *CallExpr) Walk(v Visitor) {
	Walk(v, n.Fn)
	for _, a := range n.Args {
		Walk(v, a.Value)
	}
}
func (n *CallExpr) exprNode() {}

// Param is a function or method parameter.
type Param struct {
	Name        *IdentExpr
	Type        *TypeExpr // nil if untyped/Any
	Initialiser Expr      // nil if mandatory

	// VarDecl is filled by the resolver: *resolver.VarDecl.
	VarDecl interface{}
}

func (p *Param) IsMandatory() bool { return p.Initialiser == nil }

// FuncSignature is a function's parameter list and return type.
type FuncSignature struct {
	Params     []*Param
	ReturnType *TypeExpr // nil means inferred/Any
	IsAsync    bool
}

// FuncExpr is a function/closure literal.
type FuncExpr struct {
	Attrs
	Fn   token.Pos
	Sig  *FuncSignature
	Body *Block
	End  token.Pos

	// FunDecl is filled by the resolver: *resolver.FunDecl.
	FunDecl interface{}
}

func (n *FuncExpr) Span() (token.Pos, token.Pos) { return n.Fn, n.End }
func (n *FuncExpr) Walk(v Visitor) {
	for _, p := range n.Sig.Params {
		if p.Initialiser != nil {
			Walk(v, p.Initialiser)
		}
	}
	Walk(v, n.Body)
}
func (n *FuncExpr) exprNode() {}

// TypeExpr denotes a type reference, e.g. in a parameter type, a cast
// target, or an instanceof test. The resolver only annotates a TypeExpr
// with the type it names; a TypeExpr denoting a compile-time class
// constant is not rewritten into a LiteralExpr.
type TypeExpr struct {
	Attrs
	Start    token.Pos
	Name     string // simple or dotted class/package name, or a primitive keyword
	ArrayDim int    // number of trailing [] suffixes
	Optional bool   // trailing '?'
}

func (n *TypeExpr) Span() (token.Pos, token.Pos) { return n.Start, n.Start + token.Pos(len(n.Name)) }
func (n *TypeExpr) Walk(v Visitor)               {}
func (n *TypeExpr) exprNode()                    {}

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	Attrs
	Lparen token.Pos
	Expr   Expr
	Rparen token.Pos
}

func (n *ParenExpr) Span() (token.Pos, token.Pos) { return n.Lparen, n.Rparen + 1 }
func (n *ParenExpr) Walk(v Visitor)               { Walk(v, n.Expr) }
func (n *ParenExpr) exprNode()                    {}

// Unwrap strips any number of enclosing ParenExpr.
func Unwrap(e Expr) Expr {
	for {
		pe, ok := e.(*ParenExpr)
		if !ok {
			return e
		}
		e = pe.Expr
	}
}

// RegexMatchExpr is a regex match expression, e.g. x ~= /foo/g.
type RegexMatchExpr struct {
	Attrs
	Subject Expr
	Negate  bool
	Pattern string
	Flags   string
	OpPos   token.Pos

	// CaptureVar is filled by the resolver: *resolver.VarDecl for the `$@`
	// capture-array variable this match publishes into.
	CaptureVar interface{}
}

func (n *RegexMatchExpr) Span() (token.Pos, token.Pos) {
	start, _ := n.Subject.Span()
	return start, n.OpPos + token.Pos(len(n.Pattern)+2)
}
func (n *RegexMatchExpr) Walk(v Visitor) { Walk(v, n.Subject) }
func (n *RegexMatchExpr) exprNode()      {}

// IsAssignable reports whether e can appear on the left of an assignment:
// an IdentExpr, or a '.'/'[' BinOpExpr whose own left side is assignable.
func IsAssignable(e Expr) bool {
	switch e := Unwrap(e).(type) {
	case *IdentExpr:
		return true
	case *BinOpExpr:
		if e.Op == BDot || e.Op == BIndex {
			return IsAssignable(e.Left)
		}
		return false
	default:
		return false
	}
}
