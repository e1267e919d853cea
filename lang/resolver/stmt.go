package resolver

import (
	"github.com/sylph-lang/sylph/lang/ast"
	"github.com/sylph-lang/sylph/lang/types"
)

func (r *Resolver) stmt(stmt ast.Stmt) {
	switch stmt := stmt.(type) {
	case *ast.VarDeclStmt:
		// Pre-declare each name as the UNDEFINED sentinel before resolving
		// the initialisers, so "var x = x" (or a longer cycle through a
		// nested expression) resolves the inner reference to the
		// sentinel instead of silently finding a same-named binding in an
		// enclosing scope.
		for _, id := range stmt.Names {
			if _, dup := r.env.bindings[id.Name]; !dup {
				r.env.bindings[id.Name] = &VarDecl{Name: id.Name, Scope: Undefined, Decl: stmt}
			}
		}
		for _, e := range stmt.Right {
			r.expr(e)
		}
		for i, id := range stmt.Names {
			typ := types.TAny
			if i < len(stmt.Types) && stmt.Types[i] != nil {
				typ = r.resolveTypeExpr(stmt.Types[i])
			} else if i < len(stmt.Right) {
				typ = ast.TypeOf(stmt.Right[i])
			}
			delete(r.env.bindings, id.Name)
			r.declare(id, stmt.Kind == ast.DeclConst, typ, stmt)
		}

	case *ast.AssignStmt:
		r.expr(stmt.Right)
		r.expr(stmt.Left)
		if !ast.IsAssignable(stmt.Left) {
			start, _ := stmt.Left.Span()
			r.errorf(start, "left-hand side of assignment is not assignable")
			return
		}
		if stmt.IsAugmented {
			lt := ast.TypeOf(stmt.Left)
			rt := ast.TypeOf(stmt.Right)
			if _, err := types.Result(lt, stmt.AugOp.LatticeOp(), rt); err != nil {
				r.errorf(stmt.AssignPos, "%s", err.Error())
			}
		}
		if id, ok := ast.Unwrap(stmt.Left).(*ast.IdentExpr); ok {
			if vd, _ := id.Binding.(*VarDecl); vd != nil && vd.IsConst {
				r.errorf(stmt.AssignPos, "cannot assign to constant %s", id.Name)
			}
		}

	case *ast.ExprStmt:
		r.expr(stmt.Expr)

	case *ast.IfStmt:
		r.expr(stmt.Cond)
		r.block(stmt.True, stmt)
		if stmt.False != nil {
			r.block(stmt.False, stmt)
		}

	case *ast.WhileStmt:
		r.expr(stmt.Cond)
		r.block(stmt.Body, stmt)

	case *ast.ForInStmt:
		r.expr(stmt.Right)
		elemType := r.forElemType(stmt.Right)
		r.push(new(block))
		for _, id := range stmt.Left {
			r.declare(id, false, elemType, stmt)
		}
		r.block(stmt.Body, stmt)
		r.pop()

	case *ast.ReturnStmt:
		if stmt.Expr != nil {
			r.expr(stmt.Expr)
		}

	case *ast.LoopCtrlStmt:
		if r.env.fn == nil || r.env.fn.loops == 0 {
			kind := "break"
			if stmt.Kind == ast.CtrlContinue {
				kind = "continue"
			}
			r.errorf(stmt.Start, "%s outside of a loop", kind)
		}

	case *ast.ImportStmt:
		// Import resolution (module lookup, path validation) is a build
		// system concern, not this package's: nothing to bind here.

	case *ast.FuncDeclStmt:
		r.declare(stmt.Name, true, types.TFunction, stmt)
		stmt.FunDecl = r.function(stmt, stmt.Sig, stmt.Body, nil)

	case *ast.ClassDeclStmt:
		r.declare(stmt.Name, true, types.TUnknown, stmt)
		r.class(stmt)

	default:
		r.errorf(0, "resolver: unhandled statement type %T", stmt)
	}
}

// forElemType reports the element type iterated by a for-in's Right
// expression: a list/array's element type, or Any if unknown.
func (r *Resolver) forElemType(e ast.Expr) types.Type {
	if et, ok := ast.TypeOf(e).GetArrayElemType(); ok {
		return et
	}
	return types.TAny
}
