package ast

import "github.com/sylph-lang/sylph/lang/token"

// DeclKind distinguishes a mutable ('let'/'var') from a constant ('const')
// declaration.
type DeclKind uint8

const (
	DeclVar DeclKind = iota
	DeclConst
)

// VarDeclStmt declares one or more local variables, e.g. "let x, y = 1, f()".
// A variable declared but not yet defined is marked with a sentinel so a
// self-reference in its own initialiser can be caught.
type VarDeclStmt struct {
	Start token.Pos
	Kind  DeclKind
	Names []*IdentExpr
	Types []*TypeExpr // parallel to Names; nil entry means untyped/Any
	Right []Expr      // may be shorter than Names (trailing names are zero-valued)
}

func (n *VarDeclStmt) Span() (token.Pos, token.Pos) {
	end := n.Start
	if len(n.Right) > 0 {
		_, end = n.Right[len(n.Right)-1].Span()
	} else if len(n.Names) > 0 {
		_, end = n.Names[len(n.Names)-1].Span()
	}
	return n.Start, end
}
func (n *VarDeclStmt) Walk(v Visitor) {
	for _, e := range n.Right {
		Walk(v, e)
	}
}
func (n *VarDeclStmt) stmtNode()        {}
func (n *VarDeclStmt) BlockEnding() bool { return false }

// AssignStmt is a plain or augmented assignment, e.g. "x = y", "x.y += 1".
// AugOp is BAdd..BShr for an augmented assignment; for a plain
// assignment it is left at its zero value (which is BAdd), so check
// IsAugmented first.
type AssignStmt struct {
	Left        Expr
	IsAugmented bool
	AugOp       BinOp
	AssignPos   token.Pos
	Right       Expr
}

func (n *AssignStmt) Span() (token.Pos, token.Pos) {
	start, _ := n.Left.Span()
	_, end := n.Right.Span()
	return start, end
}
func (n *AssignStmt) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *AssignStmt) stmtNode()        {}
func (n *AssignStmt) BlockEnding() bool { return false }

// ExprStmt is an expression used as a statement (a call, possibly wrapped
// in try/must or parens).
type ExprStmt struct {
	Expr Expr
}

func (n *ExprStmt) Span() (token.Pos, token.Pos) { return n.Expr.Span() }
func (n *ExprStmt) Walk(v Visitor)               { Walk(v, n.Expr) }
func (n *ExprStmt) stmtNode()                    {}
func (n *ExprStmt) BlockEnding() bool            { return false }

// IfStmt is an if/elseif/else statement. For an "elseif", False is a
// Block holding the single nested IfStmt; it is resolved in its own
// block scope like any else block.
type IfStmt struct {
	Start      token.Pos
	Cond       Expr
	True       *Block
	False      *Block // nil if no else/elseif
	FalseIsElseIf bool
	End        token.Pos
}

func (n *IfStmt) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *IfStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.True)
	if n.False != nil {
		Walk(v, n.False)
	}
}
func (n *IfStmt) stmtNode()        {}
func (n *IfStmt) BlockEnding() bool { return false }

// WhileStmt is a while loop. Only while/for loop conditions may host a
// global-modifier regex match.
type WhileStmt struct {
	Start token.Pos
	Cond  Expr
	Body  *Block
	End   token.Pos
}

func (n *WhileStmt) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *WhileStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Body)
}
func (n *WhileStmt) stmtNode()        {}
func (n *WhileStmt) BlockEnding() bool { return false }
func (n *WhileStmt) IsLoop() bool      { return true }

// ForInStmt iterates Right (a list, map, or iterator) binding Left.
type ForInStmt struct {
	Start token.Pos
	Left  []*IdentExpr
	Right Expr
	Body  *Block
	End   token.Pos
}

func (n *ForInStmt) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *ForInStmt) Walk(v Visitor) {
	Walk(v, n.Right)
	Walk(v, n.Body)
}
func (n *ForInStmt) stmtNode()        {}
func (n *ForInStmt) BlockEnding() bool { return false }
func (n *ForInStmt) IsLoop() bool      { return true }

// ReturnStmt returns from the enclosing function, optionally with a
// value.
type ReturnStmt struct {
	Start token.Pos
	Expr  Expr // nil for a bare return
}

func (n *ReturnStmt) Span() (token.Pos, token.Pos) {
	end := n.Start
	if n.Expr != nil {
		_, end = n.Expr.Span()
	}
	return n.Start, end
}
func (n *ReturnStmt) Walk(v Visitor) {
	if n.Expr != nil {
		Walk(v, n.Expr)
	}
}
func (n *ReturnStmt) stmtNode()        {}
func (n *ReturnStmt) BlockEnding() bool { return true }

// LoopCtrlKind distinguishes break from continue.
type LoopCtrlKind uint8

const (
	CtrlBreak LoopCtrlKind = iota
	CtrlContinue
)

// LoopCtrlStmt is a break or continue statement.
type LoopCtrlStmt struct {
	Start token.Pos
	Kind  LoopCtrlKind
}

func (n *LoopCtrlStmt) Span() (token.Pos, token.Pos) { return n.Start, n.Start }
func (n *LoopCtrlStmt) Walk(v Visitor)               {}
func (n *LoopCtrlStmt) stmtNode()                    {}
func (n *LoopCtrlStmt) BlockEnding() bool            { return true }

// ImportStmt imports a package.
type ImportStmt struct {
	Start token.Pos
	Path  string
	Alias string // empty means default (last path segment)
}

func (n *ImportStmt) Span() (token.Pos, token.Pos) { return n.Start, n.Start + token.Pos(len(n.Path)) }
func (n *ImportStmt) Walk(v Visitor)               {}
func (n *ImportStmt) stmtNode()                    {}
func (n *ImportStmt) BlockEnding() bool            { return false }

// FuncDeclStmt declares a named function at script or package scope.
type FuncDeclStmt struct {
	Fn   token.Pos
	Name *IdentExpr
	Sig  *FuncSignature
	Body *Block
	End  token.Pos

	// FunDecl is filled by the resolver: *resolver.FunDecl.
	FunDecl interface{}
}

func (n *FuncDeclStmt) Span() (token.Pos, token.Pos) { return n.Fn, n.End }
func (n *FuncDeclStmt) Walk(v Visitor) {
	for _, p := range n.Sig.Params {
		if p.Initialiser != nil {
			Walk(v, p.Initialiser)
		}
	}
	Walk(v, n.Body)
}
func (n *FuncDeclStmt) stmtNode()        {}
func (n *FuncDeclStmt) BlockEnding() bool { return false }

// FieldDecl is one field declaration inside a ClassBody.
type FieldDecl struct {
	Name        *IdentExpr
	Type        *TypeExpr
	Kind        DeclKind // DeclConst for a static const field
	Initialiser Expr     // nil for a mandatory field
}

// MethodDecl is one method declaration inside a ClassBody.
type MethodDecl struct {
	Name     *IdentExpr
	Sig      *FuncSignature
	Body     *Block
	IsStatic bool
	IsFinal  bool

	FunDecl interface{} // *resolver.FunDecl, filled by the resolver
}

// ClassBody groups a class's fields, methods and inner classes.
type ClassBody struct {
	Start, End  token.Pos
	Fields      []*FieldDecl
	Methods     []*MethodDecl
	InnerClasses []*ClassDeclStmt
}

// ClassInherit names the base class of a ClassDeclStmt/ClassExpr.
type ClassInherit struct {
	Name *IdentExpr
}

// ClassDeclStmt declares a class.
type ClassDeclStmt struct {
	Class       token.Pos
	Name        *IdentExpr
	IsInterface bool
	Inherits    *ClassInherit // nil for no explicit base class
	Body        *ClassBody

	// Descriptor is filled by the resolver: *classes.ClassDescriptor.
	Descriptor interface{}
}

func (n *ClassDeclStmt) Span() (token.Pos, token.Pos) { return n.Class, n.Body.End }
func (n *ClassDeclStmt) Walk(v Visitor) {
	Walk(v, n.Name)
	for _, f := range n.Body.Fields {
		if f.Initialiser != nil {
			Walk(v, f.Initialiser)
		}
	}
	for _, m := range n.Body.Methods {
		Walk(v, m.Body)
	}
}
func (n *ClassDeclStmt) stmtNode()        {}
func (n *ClassDeclStmt) BlockEnding() bool { return false }
