package resolver

import (
	"github.com/sylph-lang/sylph/lang/ast"
	"github.com/sylph-lang/sylph/lang/types"
)

// captureArrayName is the synthetic variable a regex match publishes its
// capture groups into.
const captureArrayName = "$@"

// resolveRegexMatch resolves a "subject ~= /pattern/flags" expression. On
// first use within the enclosing block, it hoists a synthetic
// declaration of the "$@" capture-array variable immediately before the
// current statement, in-place AST rewriting, so every match sharing that
// block reuses one binding instead of each publishing its own.
func (r *Resolver) resolveRegexMatch(e *ast.RegexMatchExpr) {
	r.expr(e.Subject)

	owner := r.nearestASTBlock()
	vd, ok := r.env.bindings[captureArrayName]
	if !ok {
		id := &ast.IdentExpr{Name: captureArrayName}
		decl := &ast.VarDeclStmt{Kind: ast.DeclVar, Names: []*ast.IdentExpr{id}}
		if owner != nil {
			owner.InsertBefore(decl)
		}
		vd = r.declare(id, false, types.NewArray(types.TString), decl)
	}
	e.CaptureVar = vd
	ast.SetResolved(e, types.TBoolean)
}

// nearestASTBlock walks outward from the current scope to the nearest
// one backed by a real *ast.Block (a synthetic scope, such as the one
// holding a for-in loop's bound variables, has none of its own).
func (r *Resolver) nearestASTBlock() *ast.Block {
	for b := r.env; b != nil; b = b.parent {
		if b.astBlock != nil {
			return b.astBlock
		}
	}
	return nil
}
