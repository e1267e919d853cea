package ast

// VisitDirection indicates whether a call to Visit enters or exits a node.
type VisitDirection int

const (
	VisitEnter VisitDirection = iota
	VisitExit
)

// Visitor is called for each node participating in a Walk.
type Visitor interface {
	Visit(n Node, dir VisitDirection) (w Visitor)
}

// VisitorFunc adapts a function to the Visitor interface.
type VisitorFunc func(n Node, dir VisitDirection) Visitor

func (f VisitorFunc) Visit(n Node, dir VisitDirection) Visitor { return f(n, dir) }

// Walk visits node and its descendants with v. It calls Visit in
// VisitEnter direction first; if that returns a non-nil Visitor, it walks
// node's children with it and then calls Visit again in VisitExit
// direction.
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	if v = v.Visit(node, VisitEnter); v == nil {
		return
	}
	node.Walk(v)
	v.Visit(node, VisitExit)
}
