package resolver

import (
	"github.com/sylph-lang/sylph/lang/ast"
	"github.com/sylph-lang/sylph/lang/types"
)

var primitiveTypeNames = map[string]types.Type{
	"any":      types.TAny,
	"boolean":  types.TBoolean,
	"byte":     types.TByte,
	"int":      types.TInt,
	"long":     types.TLong,
	"double":   types.TDouble,
	"decimal":  types.TDecimal,
	"string":   types.TString,
	"list":     types.TList,
	"map":      types.TMap,
	"iterator": types.TIterator,
	"function": types.TFunction,
	"matcher":  types.TMatcher,
}

// resolveTypeExpr turns a TypeExpr's syntax into a types.Type: a
// primitive keyword, or a class name looked up in the registry
// (Instance(class)). Array dimensions and a trailing '?' wrap the base
// type.
func (r *Resolver) resolveTypeExpr(te *ast.TypeExpr) types.Type {
	var base types.Type
	if prim, ok := primitiveTypeNames[te.Name]; ok {
		base = prim
	} else if desc, ok := r.registry.Lookup(te.Name); ok {
		base = types.NewInstance(desc)
	} else {
		r.errorf(te.Start, "undefined type %s", te.Name)
		base = types.TUnknown
	}
	for i := 0; i < te.ArrayDim; i++ {
		base = types.NewArray(base)
	}
	if te.Optional {
		base = types.NewOptional(base)
	}
	ast.SetResolved(te, base)
	return base
}

// expr resolves e, filling in its Attrs.Type (and ConstValue, when e is
// constant-foldable). Resolution is idempotent: a node with
// IsResolved already set is skipped.
func (r *Resolver) expr(e ast.Expr) {
	if e == nil || ast.IsResolved(e) {
		return
	}

	switch e := e.(type) {
	case *ast.IdentExpr:
		vd := r.lookup(e.Name)
		if vd == nil {
			r.errorf(e.Start, "undefined: %s", e.Name)
			ast.SetResolved(e, types.TUnknown)
			return
		}
		if vd.Scope == Undefined {
			// vd is the UNDEFINED sentinel pre-declared for a VarDeclStmt
			// name currently resolving its own initialiser: a reference to
			// such a variable inside its own initialiser is reported as a
			// self-reference error. Recover with an Unknown-typed binding
			// so later expressions in the same initialiser still
			// type-check.
			r.errorf(e.Start, "%s: self-reference to variable in its own initialiser", e.Name)
			e.Binding = vd
			ast.SetResolved(e, types.TUnknown)
			return
		}
		e.Binding = vd
		ast.SetResolved(e, vd.Type)

	case *ast.LiteralExpr:
		ast.SetResolved(e, literalType(e.Kind))
		ast.SetConst(e, e.Value)

	case *ast.ListExpr:
		for _, it := range e.Items {
			r.expr(it)
		}
		elem := types.TAny
		if len(e.Items) > 0 {
			elem = ast.TypeOf(e.Items[0])
			for _, it := range e.Items[1:] {
				elem = types.CommonSuperType(elem, ast.TypeOf(it))
			}
		}
		ast.SetResolved(e, types.NewArray(elem))

	case *ast.MapExpr:
		for _, kv := range e.Items {
			r.expr(kv.Key)
			r.expr(kv.Value)
		}
		ast.SetResolved(e, types.TMap)

	case *ast.BinOpExpr:
		r.resolveBinOp(e)

	case *ast.UnaryOpExpr:
		r.expr(e.Right)
		rt := ast.TypeOf(e.Right)
		switch e.Op {
		case ast.UNot:
			ast.SetResolved(e, types.TBoolean)
		case ast.UNeg, ast.UBitNot:
			ast.SetResolved(e, rt.Unboxed())
		case ast.UTry, ast.UMust:
			ast.SetResolved(e, types.NewOptional(rt))
		}

	case *ast.CallExpr:
		r.expr(e.Fn)
		for _, a := range e.Args {
			r.expr(a.Value)
		}
		ast.SetResolved(e, types.TAny)

	case *ast.FuncExpr:
		e.FunDecl = r.function(e, e.Sig, e.Body, nil)
		ast.SetResolved(e, types.TFunction)

	case *ast.TypeExpr:
		r.resolveTypeExpr(e)

	case *ast.ParenExpr:
		r.expr(e.Expr)
		ast.SetResolved(e, ast.TypeOf(e.Expr))
		if v, ok := ast.ConstValue(e.Expr); ok {
			ast.SetConst(e, v)
		}

	case *ast.RegexMatchExpr:
		r.resolveRegexMatch(e)

	case *ast.SwitchExpr:
		r.resolveSwitch(e)

	default:
		r.errorf(0, "resolver: unhandled expression type %T", e)
	}
}

func literalType(k ast.LiteralKind) types.Type {
	switch k {
	case ast.LitNull:
		return types.NewOptional(types.TAny)
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
		return types.TUnknown
	}
}

// resolveBinOp resolves a binary expression's operands, computes its
// result type via the type lattice, propagates safe-access nullability,
// and folds the result when both operands are constant.
func (r *Resolver) resolveBinOp(e *ast.BinOpExpr) {
	r.expr(e.Left)
	if e.Op.IsFieldOrIndex() {
		// The field name or subscript expression is not resolved, and no
		// member or element type is looked up: every field/index access is
		// typed Any. Only safe-access nullability is tracked: a '.'/'['
		// could be null under a preceding '?.' or '?[' anywhere in the
		// access chain.
		couldBeNull := ast.CouldBeNull(e.Left) || e.Op.IsSafe()
		ast.SetCouldBeNull(e, couldBeNull)
		ast.SetResolved(e, types.TAny)
		return
	}

	if e.Op == ast.BInstanceOf || e.Op == ast.BNotInstanceOf {
		r.resolveTypeExpr(e.TypeRef)
		ast.SetResolved(e, types.TBoolean)
		return
	}
	if e.Op == ast.BAs {
		target := r.resolveTypeExpr(e.TypeRef)
		lt := ast.TypeOf(e.Left)
		if !lt.IsCastableFrom(target) && !target.IsCastableFrom(lt) {
			start, _ := e.Span()
			r.errorf(start, "cannot cast %s as %s", lt, target)
		}
		ast.SetResolved(e, target)
		return
	}

	r.expr(e.Right)
	lt, rt := ast.TypeOf(e.Left), ast.TypeOf(e.Right)
	res, err := types.Result(lt, e.Op.LatticeOp(), rt)
	if err != nil {
		r.errorf(e.OpPos, "%s", err.Error())
		res = types.TUnknown
	}
	ast.SetResolved(e, res)

	lv, lok := ast.ConstValue(e.Left)
	rv, rok := ast.ConstValue(e.Right)
	if lok && rok {
		if folded, ok := foldConst(e.Op, res, lv, rv); ok {
			ast.SetConst(e, folded)
		}
	}
}

// foldConst evaluates a constant binary expression at resolve time. byte
// and int/long arithmetic wrap on overflow, matching two's-complement
// semantics rather than promoting to a wider type, and shift counts are
// masked to the result's width (3 bits for byte, 5 for int, 6 for long).
func foldConst(op ast.BinOp, resultType types.Type, l, r interface{}) (interface{}, bool) {
	switch op {
	case ast.BAdd, ast.BSub, ast.BMul, ast.BShl, ast.BShr, ast.BBitAnd, ast.BBitOr, ast.BBitXor:
		li, lok := asInt64(l)
		ri, rok := asInt64(r)
		if !lok || !rok {
			return nil, false
		}
		var v int64
		switch op {
		case ast.BAdd:
			v = li + ri
		case ast.BSub:
			v = li - ri
		case ast.BMul:
			v = li * ri
		case ast.BShl, ast.BShr:
			mask := int64(63)
			switch resultType.Unboxed().Kind {
			case types.Byte:
				mask = 7
			case types.Int:
				mask = 31
			}
			if op == ast.BShl {
				v = li << uint64(ri&mask)
			} else {
				v = li >> uint64(ri&mask)
			}
		case ast.BBitAnd:
			v = li & ri
		case ast.BBitOr:
			v = li | ri
		case ast.BBitXor:
			v = li ^ ri
		}
		return wrapToKind(resultType, v), true
	case ast.BEquals:
		return l == r, true
	case ast.BNotEquals:
		return l != r, true
	}
	return nil, false
}

func asInt64(v interface{}) (int64, bool) {
	switch v := v.(type) {
	case int64:
		return v, true
	case int8:
		return int64(v), true
	case float64:
		return int64(v), false // a Double operand disqualifies integer folding
	default:
		return 0, false
	}
}

// wrapToKind truncates v to the bit width of resultType's unboxed kind,
// matching two's-complement wraparound instead of widening.
func wrapToKind(t types.Type, v int64) interface{} {
	switch t.Unboxed().Kind {
	case types.Byte:
		return int8(v)
	case types.Int:
		return int64(int32(v))
	default:
		return v
	}
}
