// Package switchres implements the second resolution pass for
// switch/match expressions: pattern/subject-type
// compatibility, reachability (a case whose pattern set is already fully
// covered by earlier cases can never fire), and coverage (whether every
// possible subject value is handled, so the expression never needs to
// fall through to null).
//
// It is a separate pass from package resolver, wired in as
// resolver.Context.ResolveSwitch, so that package resolver -- which
// already performs the baseline binding-variable resolution every
// switch needs -- never has to import this package.
package switchres

import (
	"github.com/sylph-lang/sylph/lang/ast"
	"github.com/sylph-lang/sylph/lang/resolver"
	"github.com/sylph-lang/sylph/lang/types"
)

// Resolve validates and analyzes sw, which package resolver has already
// baseline-resolved (subject evaluated, binding variables declared,
// guards and results resolved). It reports incompatible patterns and
// unreachable cases via r.Errorf, and synthesizes a "-> null" default
// when coverage cannot be proven and none was written.
func Resolve(r *resolver.Resolver, sw *ast.SwitchExpr) {
	subjectType := ast.TypeOf(sw.Subject)

	var seen []ast.Pattern         // unconditional patterns seen so far, for subsumption
	var seenLiterals []interface{} // literal values among them, for exhaustiveness
	covered := sw.HasExplicitDefault

	for _, c := range sw.Cases {
		for _, cp := range c.Patterns {
			if !compatible(cp.Pattern, subjectType) {
				pos, _ := cp.Pattern.Span()
				r.Errorf(pos, "pattern is never compatible with subject type %s", subjectType)
				continue
			}
			if subsumedByEarlier(seen, cp.Pattern) {
				pos, _ := cp.Pattern.Span()
				r.Errorf(pos, "case is unreachable: value already matched by an earlier case")
				continue
			}
			if cp.Guard != nil {
				// A guarded pattern only conditionally matches, so it can
				// never subsume a later one: it is not added to seen.
				continue
			}
			seen = append(seen, cp.Pattern)
			if lit, ok := literalValue(cp.Pattern); ok {
				seenLiterals = append(seenLiterals, lit)
			}
			if isUnconditionalCatchAll(cp.Pattern) {
				covered = true
			}
		}
	}

	if covered || sw.Default != nil {
		return
	}
	if exhaustiveByLiterals(subjectType, seenLiterals) {
		return
	}

	null := &ast.LiteralExpr{Kind: ast.LitNull}
	ast.SetResolved(null, types.NewOptional(types.TAny))
	ast.SetConst(null, nil)
	sw.Default = null
}

// compatible reports whether p could ever match a value of subjectType.
// It is deliberately permissive (returns true) whenever subjectType is
// Any or Unknown, or the pattern's own required type can't be
// statically compared.
func compatible(p ast.Pattern, subjectType types.Type) bool {
	if subjectType.Kind == types.Any || subjectType.Kind == types.Unknown {
		return true
	}
	switch p := p.(type) {
	case *ast.LiteralPattern:
		lt := literalKindType(p.Value.Kind)
		return lt.Kind == types.Any || subjectType.Unboxed().IsNumeric() && lt.IsNumeric() || lt.Kind == subjectType.Unboxed().Kind
	case *ast.TypeTestPattern:
		return subjectType.Kind == types.Instance || subjectType.Kind == types.Any
	case *ast.ListPattern:
		return subjectType.Kind == types.Array || subjectType.Kind == types.List
	case *ast.MapPattern:
		return subjectType.Kind == types.Map
	case *ast.ConstructorPattern:
		return subjectType.Kind == types.Instance
	case *ast.RegexMatchPattern:
		return subjectType.Kind == types.String
	default:
		return true
	}
}

func literalKindType(k ast.LiteralKind) types.Type {
	switch k {
	case ast.LitBool:
		return types.TBoolean
	case ast.LitByte:
		return types.TByte
	case ast.LitInt:
		return types.TInt
	case ast.LitLong:
		return types.TLong
	case ast.LitDouble:
		return types.TDouble
	case ast.LitDecimal:
		return types.TDecimal
	case ast.LitString:
		return types.TString
	default:
		return types.TAny
	}
}

func isUnconditionalCatchAll(p ast.Pattern) bool {
	switch p.(type) {
	case *ast.UnderscorePattern, *ast.BindingVarPattern:
		return true
	default:
		return false
	}
}

func literalValue(p ast.Pattern) (interface{}, bool) {
	if lp, ok := p.(*ast.LiteralPattern); ok {
		return lp.Value.Value, true
	}
	return nil, false
}

func subsumedByEarlier(seen []ast.Pattern, p ast.Pattern) bool {
	for _, e := range seen {
		if covers(e, p) {
			return true
		}
	}
	return false
}

// covers reports whether earlier already matches every subject value
// later would, making later unreachable if it appears after earlier in
// the same switch. It recurses structurally into list, map, and
// constructor patterns, so two identical Point(x:_, y:_) constructor
// patterns flag the second as unreachable even though neither pattern
// is a literal on its own.
func covers(earlier, later ast.Pattern) bool {
	if isUnconditionalCatchAll(earlier) {
		return true
	}
	switch e := earlier.(type) {
	case *ast.LiteralPattern:
		l, ok := later.(*ast.LiteralPattern)
		return ok && e.Value.Value == l.Value.Value

	case *ast.TypeTestPattern:
		l, ok := later.(*ast.TypeTestPattern)
		return ok && e.Type.Name == l.Type.Name

	case *ast.ListPattern:
		l, ok := later.(*ast.ListPattern)
		if !ok || len(e.Elems) != len(l.Elems) {
			return false
		}
		for i, ep := range e.Elems {
			if !covers(ep, l.Elems[i]) {
				return false
			}
		}
		return true

	case *ast.MapPattern:
		l, ok := later.(*ast.MapPattern)
		if !ok || len(e.Entries) != len(l.Entries) || e.HasStar != l.HasStar {
			return false
		}
		lVals := make(map[string]ast.Pattern, len(l.Entries))
		for _, en := range l.Entries {
			lVals[en.Key] = en.Value
		}
		for _, en := range e.Entries {
			lv, ok := lVals[en.Key]
			if !ok || !covers(en.Value, lv) {
				return false
			}
		}
		return true

	case *ast.ConstructorPattern:
		l, ok := later.(*ast.ConstructorPattern)
		if !ok || e.ClassRef.Name != l.ClassRef.Name {
			return false
		}
		if len(e.Positional) != len(l.Positional) || len(e.Named) != len(l.Named) {
			return false
		}
		for i, ep := range e.Positional {
			if !covers(ep, l.Positional[i]) {
				return false
			}
		}
		lNamed := make(map[string]ast.Pattern, len(l.Named))
		for _, nf := range l.Named {
			lNamed[nf.Name] = nf.Value
		}
		for _, nf := range e.Named {
			lv, ok := lNamed[nf.Name]
			if !ok || !covers(nf.Value, lv) {
				return false
			}
		}
		return true

	default:
		return false
	}
}

// exhaustiveByLiterals proves coverage for the one shape simple enough
// to decide structurally without a general SAT solver: a Boolean
// subject whose cases already name both true and false. Other
// exhaustiveness proofs fall back to the synthesized null default, a
// deliberate scope simplification.
func exhaustiveByLiterals(subjectType types.Type, literals []interface{}) bool {
	if subjectType.Unboxed().Kind != types.Boolean {
		return false
	}
	var sawTrue, sawFalse bool
	for _, v := range literals {
		if b, ok := v.(bool); ok {
			if b {
				sawTrue = true
			} else {
				sawFalse = true
			}
		}
	}
	return sawTrue && sawFalse
}
