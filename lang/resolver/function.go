package resolver

import (
	"github.com/sylph-lang/sylph/lang/ast"
	"github.com/sylph-lang/sylph/lang/types"
)

// function resolves a function-shaped scope (a FuncDeclStmt, FuncExpr, or
// class MethodDecl): its parameters are declared in the same scope as
// its body, so the body can refer to them and a default-value expression
// can refer to parameters declared before it. It returns the FunDecl the
// caller stores in the node's resolver-filled field, and builds the
// wrapper metadata the named-argument calling convention needs.
// receiverType, when non-nil, declares "this" bound to that type as the
// method's implicit first local.
func (r *Resolver) function(def ast.Node, sig *ast.FuncSignature, body *ast.Block, receiverType *types.Type) *FunDecl {
	blk := &block{astBlock: body}
	blk.fn = &FunDecl{Definition: def}
	r.push(blk)

	if receiverType != nil {
		r.declare(&ast.IdentExpr{Name: "this"}, true, *receiverType, def)
	}

	wrapper := &WrapperInfo{}
	for _, p := range sig.Params {
		typ := types.TAny
		if p.Type != nil {
			typ = r.resolveTypeExpr(p.Type)
		}
		p.VarDecl = r.declare(p.Name, false, typ, p)
		if p.Initialiser != nil {
			r.expr(p.Initialiser)
		}
		wrapper.Params = append(wrapper.Params, WrapperParam{
			Name: p.Name.Name, Type: typ, IsMandatory: p.IsMandatory(),
		})
		if p.IsMandatory() {
			wrapper.MandatoryCount++
		}
	}
	r.env.fn.Wrapper = wrapper

	for body.ResolvingIndex = 0; body.ResolvingIndex < len(body.Stmts) && !r.stopped; body.ResolvingIndex++ {
		r.stmt(body.Stmts[body.ResolvingIndex])
	}

	fn := r.env.fn
	r.pop()
	return fn
}
