package switchcompile

import (
	"github.com/sylph-lang/sylph/lang/ast"
	"github.com/sylph-lang/sylph/lang/classes"
	"github.com/sylph-lang/sylph/lang/types"
)

// emitOneTest emits a single (pattern, guard) test of tuple t: a chained
// test that falls through on success (to the result, or to the guard
// check) and branches to onFail otherwise. onFail is the
// label of the next pattern's test, or the default clause's label for
// the very last tuple -- Compile already arranged that by minting one
// label per tuple plus one trailing default label.
func (c *compiler) emitOneTest(t tuple, onFail Label) {
	c.testPattern(itVarSubject(c.sw), t.pattern, ast.TypeOf(c.sw.Subject), onFail)
	if t.guard != nil {
		c.em.Compile(t.guard)
		c.em.JumpIf("false", onFail)
	}
	c.emitResult(t.result)
}

// testPattern emits the test table for one pattern kind,
// loading the value under test via subj.load whenever it needs it (the
// shared itVar at the top level, or a destructuring temporary once
// nested inside a List/Map/Constructor pattern). On failure, control
// branches to onFail; on success it falls through.
func (c *compiler) testPattern(subj subject, p ast.Pattern, subjectType types.Type, onFail Label) {
	em := c.em
	switch p := p.(type) {
	case *ast.UnderscorePattern, *ast.StarPattern:
		// matches unconditionally, binds nothing.

	case *ast.BindingVarPattern:
		subj.load(em)
		if p.Type != nil {
			em.CheckCast(ast.TypeOf(p.Type))
		}
		em.StoreVar(p.VarDecl)

	case *ast.IdentifierPattern:
		subj.load(em)
		em.LoadVar(p.VarDecl)
		em.InvokeMethod(runtimeClass, "switchEquals", types.TAny, types.TAny)
		em.JumpIf("false", onFail)

	case *ast.TypeTestPattern:
		subj.load(em)
		em.IsInstanceOf(ast.TypeOf(p.Type))
		em.JumpIf("false", onFail)

	case *ast.LiteralPattern:
		if subjectType.Kind == types.Any {
			subj.load(em)
			em.IsInstanceOf(literalKindType(p.Value.Kind))
			em.JumpIf("false", onFail)
		}
		subj.load(em)
		em.LoadConst(p.Value.Value)
		em.InvokeMethod(runtimeClass, "switchEquals", types.TAny, types.TAny)
		em.JumpIf("false", onFail)

	case *ast.ExprStringPattern:
		subj.load(em)
		em.Compile(p.Expr)
		em.InvokeMethod(runtimeClass, "switchEquals", types.TAny, types.TAny)
		em.JumpIf("false", onFail)

	case *ast.ListPattern:
		c.testListPattern(subj, p, subjectType, onFail)

	case *ast.MapPattern:
		c.testMapPattern(subj, p, onFail)

	case *ast.ConstructorPattern:
		c.testConstructorPattern(subj, p, onFail)

	case *ast.RegexMatchPattern:
		subj.load(em)
		em.IsInstanceOf(types.TString)
		em.JumpIf("false", onFail)
		subj.load(em)
		em.LoadConst(p.Pattern)
		em.LoadConst(p.Flags)
		em.InvokeMethod(runtimeClass, "regexMatch", types.TString, types.TString, types.TString)
		em.StoreVar(p.CaptureVar)
		em.JumpIf("false", onFail)
	}
}

// testListPattern checks subj is a List/Array of a compatible size, then
// recurses into each element pattern against a destructuring temporary.
func (c *compiler) testListPattern(subj subject, p *ast.ListPattern, subjectType types.Type, onFail Label) {
	em := c.em
	subj.load(em)
	em.IsInstanceOf([]types.Type{types.TList, types.NewArray(types.TAny)})
	em.JumpIf("false", onFail)

	hasStar := false
	minLen := 0
	for _, e := range p.Elems {
		if _, ok := e.(*ast.StarPattern); ok {
			hasStar = true
		} else {
			minLen++
		}
	}
	subj.load(em)
	start, _ := p.Span()
	em.EmitLength(start)
	em.LoadConst(int64(minLen))
	if hasStar {
		em.InvokeMethod(runtimeClass, "sizeAtLeast", types.TInt, types.TInt)
	} else {
		em.InvokeMethod(runtimeClass, "sizeEquals", types.TInt, types.TInt)
	}
	em.JumpIf("false", onFail)

	elemType := types.TAny
	if et, ok := subjectType.GetArrayElemType(); ok {
		elemType = et
	}
	for idx, ep := range p.Elems {
		if _, ok := ep.(*ast.StarPattern); ok {
			continue
		}
		slot := c.allocSlot()
		subj.load(em)
		em.LoadConst(int64(idx))
		em.UnsafeLoadElem(subjectType, start)
		em.StoreLocal(slot)
		c.testPattern(localSubject(slot), ep, elemType, onFail)
	}
}

// testMapPattern checks subj is a Map, then for each keyed entry tests
// containsKey before recursing into the value pattern.
func (c *compiler) testMapPattern(subj subject, p *ast.MapPattern, onFail Label) {
	em := c.em
	subj.load(em)
	em.IsInstanceOf(types.TMap)
	em.JumpIf("false", onFail)

	for _, entry := range p.Entries {
		subj.load(em)
		em.LoadConst(entry.Key)
		em.InvokeMethod(runtimeClass, "mapContainsKey", types.TMap, types.TString)
		em.JumpIf("false", onFail)

		slot := c.allocSlot()
		subj.load(em)
		em.LoadConst(entry.Key)
		em.InvokeMethod(runtimeClass, "mapGet", types.TMap, types.TString)
		em.StoreLocal(slot)
		c.testPattern(localSubject(slot), entry.Value, types.TAny, onFail)
	}
}

// testConstructorPattern checks subj is an Instance of the pattern's
// class, then for each named/positional field reads it (mandatory
// fields only for positional args) and recurses into the field's value
// pattern.
func (c *compiler) testConstructorPattern(subj subject, p *ast.ConstructorPattern, onFail Label) {
	em := c.em
	classType := ast.TypeOf(p.ClassRef)
	subj.load(em)
	em.IsInstanceOf(classType)
	em.JumpIf("false", onFail)

	desc, _ := classType.Class.(*classes.ClassDescriptor)

	if len(p.Positional) > 0 {
		var mandatory []*classes.Field
		if desc != nil {
			mandatory = desc.GetAllMandatoryFields()
		}
		for i, fp := range p.Positional {
			var ft types.Type
			var fname string
			if i < len(mandatory) {
				ft, fname = mandatory[i].Type, mandatory[i].Name
			} else {
				ft, fname = types.TAny, ""
			}
			c.testFieldPattern(subj, fname, ft, fp, onFail)
		}
	}
	for _, nf := range p.Named {
		ft := types.TAny
		if desc != nil {
			if f, ok := findFieldInherited(desc, nf.Name); ok {
				ft = f.Type
			}
		}
		c.testFieldPattern(subj, nf.Name, ft, nf.Value, onFail)
	}
}

// testFieldPattern reads field name off subj into a fresh temporary,
// tests it for null (an absent optional field never matches a non-"_"
// pattern), then recurses into the field's value pattern.
func (c *compiler) testFieldPattern(subj subject, name string, fieldType types.Type, p ast.Pattern, onFail Label) {
	em := c.em
	slot := c.allocSlot()
	subj.load(em)
	em.LoadConst(name)
	em.InvokeMethod(runtimeClass, "readField", types.TAny, types.TString)
	em.StoreLocal(slot)
	if _, ok := p.(*ast.UnderscorePattern); !ok {
		em.LoadLocal(slot)
		em.JumpIf("null", onFail)
	}
	c.testPattern(localSubject(slot), p, fieldType, onFail)
}

func findFieldInherited(c *classes.ClassDescriptor, name string) (*classes.Field, bool) {
	for cur := c; cur != nil; cur = cur.BaseClass {
		if f, ok := cur.FieldByName(name); ok {
			return f, true
		}
	}
	return nil, false
}

// runtimeClass is the name of the host VM runtime-helper receiver class
// InvokeMethod calls route through for semantic switch operations. It is
// a convention of this compiler, not a concrete Go type: the emitter is
// the only thing that knows what "Runtime" resolves to.
const runtimeClass = "Runtime"

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
