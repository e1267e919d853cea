package resolver

import (
	"github.com/sylph-lang/sylph/lang/ast"
	"github.com/sylph-lang/sylph/lang/classes"
	"github.com/sylph-lang/sylph/lang/types"
)

// resolveSwitch performs the baseline resolution every switch/match
// expression needs regardless of whether a richer pattern-validation
// pass is wired in: it evaluates the subject once into a
// synthetic shared variable, resolves every case in its own child scope
// (introducing binding variables patterns declare), resolves guards and
// results, and computes the overall result type as the common supertype
// of every case's result.
//
// If ctx.ResolveSwitch is set (package switchres wired in by the
// pipeline), it additionally validates pattern compatibility, reports
// unreachable cases, proves exhaustiveness, and synthesizes a "-> null"
// default when none is written and coverage isn't already complete.
func (r *Resolver) resolveSwitch(sw *ast.SwitchExpr) {
	r.expr(sw.Subject)
	subjectType := ast.TypeOf(sw.Subject)

	r.push(new(block))
	itID := &ast.IdentExpr{Name: "$it"}
	sw.ItVar = r.declare(itID, true, subjectType, sw)

	resultType := types.TUnknown
	for _, c := range sw.Cases {
		r.push(new(block))
		for _, cp := range c.Patterns {
			r.resolvePatternBaseline(cp.Pattern, subjectType)
			if cp.Guard != nil {
				r.expr(cp.Guard)
			}
		}
		r.expr(c.Result)
		resultType = types.CommonSuperType(resultType, ast.TypeOf(c.Result))
		c.Block = r.env
		r.pop()
	}

	if sw.Default != nil {
		r.expr(sw.Default)
		resultType = types.CommonSuperType(resultType, ast.TypeOf(sw.Default))
	}

	if r.ctx.ResolveSwitch != nil {
		r.ctx.ResolveSwitch(r, sw)
		if sw.Default != nil {
			resultType = types.CommonSuperType(resultType, ast.TypeOf(sw.Default))
		}
	} else if sw.Default == nil {
		// Without the reachability pass available, conservatively assume
		// the cases may not be exhaustive: the result type may be null.
		// No default is synthesized; sw.Default stays nil.
		resultType = types.NewOptional(resultType)
	}

	ast.SetResolved(sw, resultType)
	r.pop()
}

// resolvePatternBaseline resolves one pattern against subjectType,
// declaring any binding variable it introduces in the current (case)
// scope. It does not check pattern/subject-type compatibility or
// cross-alternative binding consistency -- that deeper validation is
// package switchres's job.
func (r *Resolver) resolvePatternBaseline(p ast.Pattern, subjectType types.Type) {
	switch p := p.(type) {
	case *ast.LiteralPattern:
		r.expr(p.Value)
	case *ast.ExprStringPattern:
		r.expr(p.Expr)
	case *ast.TypeTestPattern:
		r.resolveTypeExpr(p.Type)
	case *ast.UnderscorePattern, *ast.StarPattern:
		// matches unconditionally, binds nothing
	case *ast.BindingVarPattern:
		typ := subjectType
		if p.Type != nil {
			typ = r.resolveTypeExpr(p.Type)
		}
		p.VarDecl = r.declare(p.Name, false, typ, p)
	case *ast.IdentifierPattern:
		if vd, ok := r.env.bindings[p.Name.Name]; ok {
			p.VarDecl = vd
			p.Name.Binding = vd
		} else {
			r.errorf(p.Name.Start, "undefined: %s", p.Name.Name)
		}
	case *ast.ListPattern:
		elemType := types.TAny
		if et, ok := subjectType.GetArrayElemType(); ok {
			elemType = et
		}
		for _, sub := range p.Elems {
			r.resolvePatternBaseline(sub, elemType)
		}
	case *ast.MapPattern:
		for _, entry := range p.Entries {
			r.resolvePatternBaseline(entry.Value, types.TAny)
		}
	case *ast.ConstructorPattern:
		classType := r.resolveTypeExpr(p.ClassRef)
		for _, sub := range p.Positional {
			r.resolvePatternBaseline(sub, types.TAny)
		}
		for _, nf := range p.Named {
			r.resolvePatternBaseline(nf.Value, types.TAny)
		}
		if desc, ok := classType.Class.(*classes.ClassDescriptor); ok && len(p.Positional) > 0 {
			if n := len(desc.GetAllMandatoryFields()); n != len(p.Positional) {
				start, _ := p.Span()
				r.errorf(start, "constructor pattern for %s takes %d positional arguments, got %d", desc.FQN(), n, len(p.Positional))
			}
		}
	case *ast.RegexMatchPattern:
		vd, ok := r.env.bindings[captureArrayName]
		if !ok {
			id := &ast.IdentExpr{Name: captureArrayName}
			vd = r.declare(id, false, types.NewArray(types.TString), p)
		}
		p.CaptureVar = vd
	}
}
