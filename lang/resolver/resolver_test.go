package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sylph-lang/sylph/lang/ast"
	"github.com/sylph-lang/sylph/lang/resolver"
	"github.com/sylph-lang/sylph/lang/token"
	"github.com/sylph-lang/sylph/lang/types"
)

// newChunk builds a minimal *ast.Chunk wrapping stmts, registered in a
// fresh FileSet so ResolveChunk has a *token.File to report positions
// against.
func newChunk(t *testing.T, stmts ...ast.Stmt) (*token.FileSet, *ast.Chunk) {
	t.Helper()
	fset := token.NewFileSet()
	f := fset.AddFile("test.sy", -1, 1)
	pos := f.Pos(0)
	return fset, &ast.Chunk{
		Name:  "test",
		Block: &ast.Block{Start: pos, End: pos, Stmts: stmts},
		EOF:   pos,
	}
}

func ident(name string) *ast.IdentExpr { return &ast.IdentExpr{Name: name} }

func intLit(v int64) *ast.LiteralExpr {
	return &ast.LiteralExpr{Kind: ast.LitInt, Value: v, Raw: "0"}
}

func TestResolveChunk_VarDeclBindsIdentifierToInferredType(t *testing.T) {
	x := ident("x")
	decl := &ast.VarDeclStmt{Names: []*ast.IdentExpr{x}, Right: []ast.Expr{intLit(1)}}
	use := &ast.ExprStmt{Expr: ident("x")}

	fset, chunk := newChunk(t, decl, use)
	err := resolver.ResolveChunk(fset, chunk, nil, nil)
	require.NoError(t, err)

	useIdent := use.Expr.(*ast.IdentExpr)
	require.NotNil(t, useIdent.Binding)
	vd := useIdent.Binding.(*resolver.VarDecl)
	assert.Equal(t, "x", vd.Name)
	assert.Equal(t, resolver.Local, vd.Scope)
	assert.Equal(t, types.TInt, ast.TypeOf(useIdent))
}

func TestResolveChunk_UndefinedNameReportsError(t *testing.T) {
	use := &ast.ExprStmt{Expr: ident("undeclared")}
	fset, chunk := newChunk(t, use)

	err := resolver.ResolveChunk(fset, chunk, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined: undeclared")
	assert.Equal(t, types.TUnknown, ast.TypeOf(use.Expr.(*ast.IdentExpr)))
}

// TestResolveChunk_SelfReferenceInInitialiser covers "var x = x": it
// must bind the inner x to a self-reference error sentinel rather than
// silently resolving to a same-named binding from an enclosing scope.
func TestResolveChunk_SelfReferenceInInitialiser(t *testing.T) {
	outer := ident("x")
	outerDecl := &ast.VarDeclStmt{Names: []*ast.IdentExpr{outer}, Right: []ast.Expr{intLit(1)}}

	innerRef := ident("x")
	innerName := ident("x")
	innerDecl := &ast.VarDeclStmt{Names: []*ast.IdentExpr{innerName}, Right: []ast.Expr{innerRef}}

	fset, chunk := newChunk(t, outerDecl, &ast.IfStmt{
		Cond: &ast.LiteralExpr{Kind: ast.LitBool, Value: true},
		True: &ast.Block{Stmts: []ast.Stmt{innerDecl}},
	})

	ctx := &resolver.Context{Mode: resolver.ContinueOnError}
	err := resolver.ResolveChunk(fset, chunk, ctx, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "self-reference to variable in its own initialiser")

	vd := innerRef.Binding.(*resolver.VarDecl)
	assert.Equal(t, resolver.Undefined, vd.Scope)
	assert.Equal(t, types.TUnknown, ast.TypeOf(innerRef))
}

// TestResolveChunk_StrictModeStopsAtFirstError covers the default mode:
// outside IDE mode, an error aborts the rest of the batch instead of
// resolving on top of inconsistent bindings.
func TestResolveChunk_StrictModeStopsAtFirstError(t *testing.T) {
	bad := &ast.ExprStmt{Expr: ident("undeclared")}
	after := &ast.ExprStmt{Expr: intLit(1)}

	fset, chunk := newChunk(t, bad, after)
	err := resolver.ResolveChunk(fset, chunk, nil, nil)
	require.Error(t, err)
	assert.False(t, ast.IsResolved(after.Expr))
}

// TestResolveChunk_IDEModeContinuesPastErrors covers the companion
// behaviour: with ContinueOnError set, resolution keeps annotating the
// rest of the chunk after an error.
func TestResolveChunk_IDEModeContinuesPastErrors(t *testing.T) {
	bad := &ast.ExprStmt{Expr: ident("undeclared")}
	after := &ast.ExprStmt{Expr: intLit(1)}

	fset, chunk := newChunk(t, bad, after)
	ctx := &resolver.Context{Mode: resolver.ContinueOnError}
	err := resolver.ResolveChunk(fset, chunk, ctx, nil)
	require.Error(t, err)
	assert.True(t, ast.IsResolved(after.Expr))
	assert.Equal(t, types.TInt, ast.TypeOf(after.Expr))
}

func TestResolveChunk_ConstReassignmentIsAnError(t *testing.T) {
	x := ident("x")
	decl := &ast.VarDeclStmt{Kind: ast.DeclConst, Names: []*ast.IdentExpr{x}, Right: []ast.Expr{intLit(1)}}
	assign := &ast.AssignStmt{Left: ident("x"), Right: intLit(2)}

	fset, chunk := newChunk(t, decl, assign)
	err := resolver.ResolveChunk(fset, chunk, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot assign to constant x")
}

// TestResolveChunk_ClosureCapturePromotesToFree covers the Cell/Free
// promotion the resolver borrows from the starlark-go model: a local
// referenced from a nested function is seen as Free from the closure's
// own scope.
func TestResolveChunk_ClosureCapturePromotesToFree(t *testing.T) {
	x := ident("x")
	outerDecl := &ast.VarDeclStmt{Names: []*ast.IdentExpr{x}, Right: []ast.Expr{intLit(1)}}

	innerUse := ident("x")
	closure := &ast.FuncExpr{
		Sig: &ast.FuncSignature{},
		Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.ReturnStmt{Expr: innerUse},
		}},
	}
	outerFn := &ast.FuncDeclStmt{
		Name: ident("f"),
		Sig:  &ast.FuncSignature{},
		Body: &ast.Block{Stmts: []ast.Stmt{
			outerDecl,
			&ast.ReturnStmt{Expr: closure},
		}},
	}

	fset, chunk := newChunk(t, outerFn)
	err := resolver.ResolveChunk(fset, chunk, nil, nil)
	require.NoError(t, err)

	innerVd := innerUse.Binding.(*resolver.VarDecl)
	assert.Equal(t, resolver.Free, innerVd.Scope)
}

// TestResolveChunk_ClosureCapturePromotesThroughTwoLevels covers a
// variable captured through two nested function boundaries (F -> H ->
// G): the middle function H must get its own Free link threading the
// heap-local through to G, not just G.
func TestResolveChunk_ClosureCapturePromotesThroughTwoLevels(t *testing.T) {
	x := ident("x")
	outerDecl := &ast.VarDeclStmt{Names: []*ast.IdentExpr{x}, Right: []ast.Expr{intLit(1)}}

	innerUse := ident("x")
	inner := &ast.FuncExpr{
		Sig: &ast.FuncSignature{},
		Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.ReturnStmt{Expr: innerUse},
		}},
	}
	middle := &ast.FuncExpr{
		Sig: &ast.FuncSignature{},
		Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.ReturnStmt{Expr: inner},
		}},
	}
	outerFn := &ast.FuncDeclStmt{
		Name: ident("f"),
		Sig:  &ast.FuncSignature{},
		Body: &ast.Block{Stmts: []ast.Stmt{
			outerDecl,
			&ast.ReturnStmt{Expr: middle},
		}},
	}

	fset, chunk := newChunk(t, outerFn)
	err := resolver.ResolveChunk(fset, chunk, nil, nil)
	require.NoError(t, err)

	innerVd := innerUse.Binding.(*resolver.VarDecl)
	require.Equal(t, resolver.Free, innerVd.Scope)
	require.NotNil(t, innerVd.ParentVarDecl)

	middleFn := middle.FunDecl.(*resolver.FunDecl)
	require.Len(t, middleFn.FreeVars, 1)
	middleLink := middleFn.FreeVars[0]
	assert.Equal(t, resolver.Free, middleLink.Scope)
	assert.True(t, middleLink.IsPassedAsHeapLocal)
	assert.Same(t, middleLink, innerVd.ParentVarDecl)

	outerVd := outerDecl.Names[0].Binding.(*resolver.VarDecl)
	assert.Equal(t, resolver.Cell, outerVd.Scope)
	assert.True(t, outerVd.IsHeapLocal)
	assert.Same(t, outerVd, middleLink.ParentVarDecl)
	assert.Same(t, outerVd, innerVd.OriginalVarDecl)
}
