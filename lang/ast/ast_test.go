package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ident(name string) *IdentExpr { return &IdentExpr{Start: 0, Name: name} }

func TestBlockInsertBefore(t *testing.T) {
	a := &ExprStmt{Expr: ident("a")}
	b := &ExprStmt{Expr: ident("b")}
	blk := &Block{Stmts: []Stmt{a, b}, ResolvingIndex: 1}

	synth := &ExprStmt{Expr: ident("synthetic")}
	blk.InsertBefore(synth)

	require.Len(t, blk.Stmts, 3)
	assert.Same(t, a, blk.Stmts[0])
	assert.Same(t, synth, blk.Stmts[1])
	assert.Same(t, b, blk.Stmts[2])
	assert.Equal(t, 2, blk.ResolvingIndex, "ResolvingIndex must advance so the original current stmt is still next")
}

func TestWalkChildrenUseReturnedVisitor(t *testing.T) {
	left := ident("x")
	right := &LiteralExpr{Kind: LitInt, Value: int64(1)}
	bin := &BinOpExpr{Left: left, Op: BAdd, Right: right}

	var seen []Node
	Walk(VisitorFunc(func(n Node, dir VisitDirection) Visitor {
		if dir == VisitEnter {
			seen = append(seen, n)
		}
		return VisitorFunc(func(n Node, dir VisitDirection) Visitor { return nil })
	}), bin)

	require.Len(t, seen, 1, "children are walked with the returned visitor, which records nothing and stops the descent")
}

func TestWalkFullRecursion(t *testing.T) {
	left := ident("x")
	right := &LiteralExpr{Kind: LitInt, Value: int64(1)}
	bin := &BinOpExpr{Left: left, Op: BAdd, Right: right}

	var names []string
	var visit VisitorFunc
	visit = func(n Node, dir VisitDirection) Visitor {
		if dir != VisitEnter {
			return nil
		}
		if id, ok := n.(*IdentExpr); ok {
			names = append(names, id.Name)
		}
		return visit
	}
	Walk(visit, bin)

	assert.Equal(t, []string{"x"}, names)
}

func TestUnwrapStripsParens(t *testing.T) {
	inner := ident("x")
	wrapped := &ParenExpr{Expr: &ParenExpr{Expr: inner}}
	assert.Same(t, inner, Unwrap(wrapped))
}

func TestIsAssignable(t *testing.T) {
	assert.True(t, IsAssignable(ident("x")))
	assert.True(t, IsAssignable(&BinOpExpr{Left: ident("x"), Op: BDot}))
	assert.True(t, IsAssignable(&BinOpExpr{Left: ident("x"), Op: BIndex}))
	assert.False(t, IsAssignable(&BinOpExpr{Left: ident("x"), Op: BAdd}))
	assert.False(t, IsAssignable(&LiteralExpr{Kind: LitInt, Value: int64(1)}))
}

func TestWalkNilNodeIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		Walk(VisitorFunc(func(n Node, dir VisitDirection) Visitor { return nil }), nil)
	})
}
