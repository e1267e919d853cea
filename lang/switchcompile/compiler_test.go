package switchcompile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sylph-lang/sylph/lang/ast"
	"github.com/sylph-lang/sylph/lang/switchcompile"
	"github.com/sylph-lang/sylph/lang/types"
)

// itVar stands in for the *resolver.VarDecl the resolver would have
// allocated for the switch's evaluated subject; switchcompile only ever
// threads it through opaquely (LoadVar/StoreVar), so any comparable value
// works here.
type itVar struct{ name string }

func intLit(v int64) *ast.LiteralExpr {
	lit := &ast.LiteralExpr{Kind: ast.LitInt, Value: v}
	ast.SetResolved(lit, types.TInt)
	return lit
}

func strLit(s string) *ast.LiteralExpr {
	lit := &ast.LiteralExpr{Kind: ast.LitString, Value: s}
	ast.SetResolved(lit, types.TString)
	return lit
}

func litCase(value int64, result ast.Expr) *ast.SwitchCase {
	return &ast.SwitchCase{
		Patterns: []*ast.CasePattern{{Pattern: &ast.LiteralPattern{Value: intLit(value)}}},
		Result:   result,
	}
}

// TestCompile_DenseTableForConsecutiveLiterals exercises the dense-table
// threshold: a run of 5 consecutive int literals over a range of 5
// (5 <= 5*5) must lower to a single TableSwitch rather than a chain of
// individual tests.
func TestCompile_DenseTableForConsecutiveLiterals(t *testing.T) {
	subject := intLit(5)
	ast.SetResolved(subject, types.TInt)

	sw := &ast.SwitchExpr{
		Subject: subject,
		ItVar:   &itVar{"it"},
		Cases: []*ast.SwitchCase{
			litCase(1, strLit("a")),
			litCase(2, strLit("a")),
			litCase(3, strLit("a")),
			litCase(4, strLit("a")),
			litCase(5, strLit("a")),
		},
		Default:            strLit("b"),
		HasExplicitDefault: true,
	}

	em := switchcompile.NewTraceEmitter()
	switchcompile.Compile(em, sw)
	trace := em.String()

	assert.Contains(t, trace, "tableswitch [1,5]")
	assert.NotContains(t, trace, "switchEquals", "a dense run should never fall back to chained equality tests")
}

// TestCompile_SparseLiteralsUseHashedDispatch exercises the fallback
// half of the threshold: a sparse run (range too wide relative to its
// size) lowers to LookupSwitch plus per-bucket switchEquals chains.
func TestCompile_SparseLiteralsUseHashedDispatch(t *testing.T) {
	subject := intLit(5)
	ast.SetResolved(subject, types.TInt)

	sw := &ast.SwitchExpr{
		Subject: subject,
		ItVar:   &itVar{"it"},
		Cases: []*ast.SwitchCase{
			litCase(1, strLit("a")),
			litCase(1000, strLit("b")),
			litCase(2000, strLit("c")),
		},
		Default:            strLit("d"),
		HasExplicitDefault: true,
	}

	em := switchcompile.NewTraceEmitter()
	switchcompile.Compile(em, sw)
	trace := em.String()

	assert.Contains(t, trace, "lookupswitch")
	assert.Contains(t, trace, "switchEquals")
	assert.NotContains(t, trace, "tableswitch")
}

// TestCompile_ResultDeduplication exercises result-expression
// dedup: two cases sharing a non-trivial result expression (a BinOpExpr
// is never "simple") emit its body once, at a single labelled tail both
// jump to.
func TestCompile_ResultDeduplication(t *testing.T) {
	subject := intLit(1)
	ast.SetResolved(subject, types.TInt)

	sharedResult := &ast.BinOpExpr{Left: intLit(1), Op: ast.BAdd, Right: intLit(2)}
	ast.SetResolved(sharedResult, types.TInt)

	sw := &ast.SwitchExpr{
		Subject: subject,
		ItVar:   &itVar{"it"},
		Cases: []*ast.SwitchCase{
			litCase(1, sharedResult),
			litCase(2, sharedResult),
		},
		Default:            strLit("d"),
		HasExplicitDefault: true,
	}

	em := switchcompile.NewTraceEmitter()
	switchcompile.Compile(em, sw)
	lines := em.Lines()

	count := 0
	for _, l := range lines {
		if l == "compile *ast.BinOpExpr" {
			count++
		}
	}
	assert.Equal(t, 1, count, "a shared non-trivial result must be compiled exactly once")
}

// TestCompile_BindingPatternStoresVar exercises the binding
// pattern test: a bare identifier pattern stores the subject into the
// bound variable rather than testing equality against it.
func TestCompile_BindingPatternStoresVar(t *testing.T) {
	subject := &ast.IdentExpr{Name: "x"}
	ast.SetResolved(subject, types.TAny)

	boundVar := &itVar{"y"}
	sw := &ast.SwitchExpr{
		Subject: subject,
		ItVar:   &itVar{"it"},
		Cases: []*ast.SwitchCase{
			{
				Patterns: []*ast.CasePattern{{Pattern: &ast.BindingVarPattern{
					Name:    &ast.IdentExpr{Name: "y"},
					VarDecl: boundVar,
				}}},
				Result: strLit("matched"),
			},
		},
		Default:            strLit("d"),
		HasExplicitDefault: true,
	}

	em := switchcompile.NewTraceEmitter()
	switchcompile.Compile(em, sw)
	trace := em.String()

	assert.Contains(t, trace, "storevar")
	assert.NotContains(t, trace, "switchEquals")
}
