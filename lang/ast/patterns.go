package ast

import "github.com/sylph-lang/sylph/lang/token"

// Pattern is the left-hand side of a match case: a value, a structural
// shape, a binder, a wildcard, or a regex.
type Pattern interface {
	Node
	patternNode()
}

// LiteralPattern matches the subject against a literal value.
type LiteralPattern struct {
	Value *LiteralExpr
}

func (n *LiteralPattern) Span() (token.Pos, token.Pos) { return n.Value.Span() }
func (n *LiteralPattern) Walk(v Visitor)               { Walk(v, n.Value) }
func (n *LiteralPattern) patternNode()                 {}

// ExprStringPattern matches the subject against an arbitrary
// constant-foldable expression, e.g. a named
// constant or a string built from interpolation.
type ExprStringPattern struct {
	Expr Expr
}

func (n *ExprStringPattern) Span() (token.Pos, token.Pos) { return n.Expr.Span() }
func (n *ExprStringPattern) Walk(v Visitor)               { Walk(v, n.Expr) }
func (n *ExprStringPattern) patternNode()                 {}

// TypeTestPattern matches if the subject is an instance of Type.
type TypeTestPattern struct {
	Type *TypeExpr
}

func (n *TypeTestPattern) Span() (token.Pos, token.Pos) { return n.Type.Span() }
func (n *TypeTestPattern) Walk(v Visitor)               { Walk(v, n.Type) }
func (n *TypeTestPattern) patternNode()                 {}

// UnderscorePattern ("_") matches unconditionally and binds nothing.
type UnderscorePattern struct {
	Pos token.Pos
}

func (n *UnderscorePattern) Span() (token.Pos, token.Pos) { return n.Pos, n.Pos + 1 }
func (n *UnderscorePattern) Walk(v Visitor)               {}
func (n *UnderscorePattern) patternNode()                 {}

// StarPattern ("*") matches any remaining elements in a list/map pattern.
// May appear at most once per list or map pattern.
type StarPattern struct {
	Pos token.Pos
}

func (n *StarPattern) Span() (token.Pos, token.Pos) { return n.Pos, n.Pos + 1 }
func (n *StarPattern) Walk(v Visitor)               {}
func (n *StarPattern) patternNode()                 {}

// BindingVarPattern introduces a new binding variable that captures the
// matched sub-value, e.g. "x" or "x:T" the first time an identifier is
// seen in a case's patterns.
type BindingVarPattern struct {
	Name *IdentExpr
	Type *TypeExpr // nil means the subject's (narrowed) type

	// VarDecl is filled by the switch resolver: *resolver.VarDecl.
	VarDecl interface{}
}

func (n *BindingVarPattern) Span() (token.Pos, token.Pos) { return n.Name.Span() }
func (n *BindingVarPattern) Walk(v Visitor)               { Walk(v, n.Name) }
func (n *BindingVarPattern) patternNode()                 {}

// IdentifierPattern is a subsequent occurrence of a name already bound
// earlier in the same case's patterns: it is treated as an equality
// test against the bound value, not a fresh binding.
type IdentifierPattern struct {
	Name *IdentExpr

	// VarDecl is filled by the switch resolver: *resolver.VarDecl of the
	// earlier BindingVarPattern this one refers back to.
	VarDecl interface{}
}

func (n *IdentifierPattern) Span() (token.Pos, token.Pos) { return n.Name.Span() }
func (n *IdentifierPattern) Walk(v Visitor)               { Walk(v, n.Name) }
func (n *IdentifierPattern) patternNode()                 {}

// ListPattern destructures a list/array subject.
type ListPattern struct {
	Start, End token.Pos
	Elems      []Pattern
}

func (n *ListPattern) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *ListPattern) Walk(v Visitor) {
	for _, e := range n.Elems {
		Walk(v, e)
	}
}
func (n *ListPattern) patternNode() {}

// MapEntryPattern is one key/value-pattern entry of a MapPattern. Keys
// must be literal strings.
type MapEntryPattern struct {
	Key   string
	Value Pattern
}

// MapPattern destructures a map subject.
type MapPattern struct {
	Start, End token.Pos
	Entries    []*MapEntryPattern
	HasStar    bool
}

func (n *MapPattern) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *MapPattern) Walk(v Visitor) {
	for _, e := range n.Entries {
		Walk(v, e.Value)
	}
}
func (n *MapPattern) patternNode() {}

// NamedFieldPattern is one named-argument entry of a ConstructorPattern.
type NamedFieldPattern struct {
	Name  string
	Value Pattern
}

// ConstructorPattern destructures an Instance subject by class and field
// patterns, either positional (matching mandatory fields in declaration
// order) or named.
type ConstructorPattern struct {
	Start, End token.Pos
	ClassRef   *TypeExpr
	Positional []Pattern
	Named      []*NamedFieldPattern
}

func (n *ConstructorPattern) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *ConstructorPattern) Walk(v Visitor) {
	Walk(v, n.ClassRef)
	for _, p := range n.Positional {
		Walk(v, p)
	}
	for _, nf := range n.Named {
		Walk(v, nf.Value)
	}
}
func (n *ConstructorPattern) patternNode() {}

// RegexMatchPattern matches a String subject against a regex, publishing
// captures into the enclosing capture-array variable.
type RegexMatchPattern struct {
	Start   token.Pos
	Pattern string
	Flags   string

	// CaptureVar is filled by the resolver: *resolver.VarDecl.
	CaptureVar interface{}
}

func (n *RegexMatchPattern) Span() (token.Pos, token.Pos) {
	return n.Start, n.Start + token.Pos(len(n.Pattern)+2)
}
func (n *RegexMatchPattern) Walk(v Visitor) {}
func (n *RegexMatchPattern) patternNode()   {}
