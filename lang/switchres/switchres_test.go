package switchres_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sylph-lang/sylph/lang/ast"
	"github.com/sylph-lang/sylph/lang/classes"
	"github.com/sylph-lang/sylph/lang/resolver"
	"github.com/sylph-lang/sylph/lang/switchres"
	"github.com/sylph-lang/sylph/lang/token"
	"github.com/sylph-lang/sylph/lang/types"
)

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

func pointPattern(className string) *ast.ConstructorPattern {
	return &ast.ConstructorPattern{
		ClassRef: &ast.TypeExpr{Name: className},
		Named: []*ast.NamedFieldPattern{
			{Name: "x", Value: &ast.UnderscorePattern{}},
			{Name: "y", Value: &ast.UnderscorePattern{}},
		},
	}
}

func intResult(v int64) *ast.LiteralExpr {
	return &ast.LiteralExpr{Kind: ast.LitInt, Value: v, Raw: "0"}
}

// TestResolve_DuplicateConstructorPatternIsUnreachable covers structural
// subsumption: two identical Point(x:_, y:_) constructor patterns must
// flag the second as unreachable even though neither is a literal
// pattern.
func TestResolve_DuplicateConstructorPatternIsUnreachable(t *testing.T) {
	reg := classes.NewRegistry(nil)
	point, err := reg.Register("", "Point")
	require.NoError(t, err)

	subject := &ast.IdentExpr{Name: "p"}
	ast.SetResolved(subject, types.NewInstance(point))

	sw := &ast.SwitchExpr{
		Subject: subject,
		Cases: []*ast.SwitchCase{
			{
				Patterns: []*ast.CasePattern{{Pattern: pointPattern("Point")}},
				Result:   intResult(1),
			},
			{
				Patterns: []*ast.CasePattern{{Pattern: pointPattern("Point")}},
				Result:   intResult(2),
			},
		},
	}

	fset, chunk := newChunk(t, &ast.ExprStmt{Expr: sw})
	ctx := &resolver.Context{ResolveSwitch: switchres.Resolve}
	err = resolver.ResolveChunk(fset, chunk, ctx, reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "case is unreachable")
}

// TestResolve_DistinctConstructorPatternsAreNotSubsumed covers the
// negative case: two constructor patterns on different fields are not
// mistaken for duplicates.
func TestResolve_DistinctConstructorPatternsAreNotSubsumed(t *testing.T) {
	reg := classes.NewRegistry(nil)
	point, err := reg.Register("", "Point")
	require.NoError(t, err)

	subject := &ast.IdentExpr{Name: "p"}
	ast.SetResolved(subject, types.NewInstance(point))

	first := &ast.ConstructorPattern{
		ClassRef: &ast.TypeExpr{Name: "Point"},
		Named:    []*ast.NamedFieldPattern{{Name: "x", Value: &ast.LiteralPattern{Value: intResult(0)}}},
	}
	second := &ast.ConstructorPattern{
		ClassRef: &ast.TypeExpr{Name: "Point"},
		Named:    []*ast.NamedFieldPattern{{Name: "x", Value: &ast.LiteralPattern{Value: intResult(1)}}},
	}

	sw := &ast.SwitchExpr{
		Subject: subject,
		Cases: []*ast.SwitchCase{
			{Patterns: []*ast.CasePattern{{Pattern: first}}, Result: intResult(1)},
			{Patterns: []*ast.CasePattern{{Pattern: second}}, Result: intResult(2)},
		},
	}

	fset, chunk := newChunk(t, &ast.ExprStmt{Expr: sw})
	ctx := &resolver.Context{ResolveSwitch: switchres.Resolve}
	err = resolver.ResolveChunk(fset, chunk, ctx, reg)
	require.NoError(t, err)
}
