package resolver

import (
	"github.com/sylph-lang/sylph/lang/ast"
	"github.com/sylph-lang/sylph/lang/classes"
	"github.com/sylph-lang/sylph/lang/types"
)

// class prepares stmt: builds and registers its ClassDescriptor,
// resolves field initialisers and method bodies, validates overrides
// (final, return-type covariance), and synthesizes the init method and
// init wrapper.
func (r *Resolver) class(stmt *ast.ClassDeclStmt) {
	var base *classes.ClassDescriptor
	if stmt.Inherits != nil {
		if desc, ok := r.registry.Lookup(stmt.Inherits.Name.Name); ok {
			base = desc
		} else {
			r.errorf(stmt.Inherits.Name.Start, "undefined base class %s", stmt.Inherits.Name.Name)
		}
	}

	desc, err := r.registry.Register("", stmt.Name.Name)
	if err != nil {
		r.errorf(stmt.Class, "%s", err.Error())
		return
	}
	desc.IsInterface = stmt.IsInterface
	desc.BaseClass = base
	stmt.Descriptor = desc

	if err := desc.CheckAcyclic(); err != nil {
		r.errorf(stmt.Class, "%s", err.Error())
		return
	}

	for _, f := range stmt.Body.Fields {
		r.resolveField(desc, f)
	}
	for _, m := range stmt.Body.Methods {
		r.resolveMethod(desc, base, m)
	}
	for _, ic := range stmt.Body.InnerClasses {
		r.class(ic)
		if innerDesc, ok := ic.Descriptor.(*classes.ClassDescriptor); ok {
			if err := desc.AddInnerClass(ic.Name.Name, innerDesc); err != nil {
				r.errorf(ic.Class, "%s", err.Error())
			}
		}
	}

	r.synthesizeInit(desc)
	r.synthesizeInitMissing(desc)
	r.synthesizeFromJson(desc)
}

func (r *Resolver) resolveField(desc *classes.ClassDescriptor, f *ast.FieldDecl) {
	typ := types.TAny
	if f.Type != nil {
		typ = r.resolveTypeExpr(f.Type)
	}
	cf := &classes.Field{
		Name:          f.Name.Name,
		Type:          typ,
		IsMandatory:   f.Initialiser == nil && f.Kind != ast.DeclConst,
		IsConstStatic: f.Kind == ast.DeclConst,
	}
	if f.Initialiser != nil {
		r.expr(f.Initialiser)
		cf.Initialiser = f.Initialiser
		if cf.IsConstStatic {
			v, ok := ast.ConstValue(f.Initialiser)
			if !ok {
				r.errorf(f.Name.Start, "const field %s must have a constant initialiser", f.Name.Name)
			}
			cf.ConstValue = v
		}
	}
	if err := desc.AddField(r.registry, cf); err != nil {
		r.errorf(f.Name.Start, "%s", err.Error())
	}
}

func (r *Resolver) resolveMethod(desc, base *classes.ClassDescriptor, m *ast.MethodDecl) {
	var receiver *types.Type
	if !m.IsStatic {
		t := types.NewInstance(desc)
		receiver = &t
	}
	m.FunDecl = r.function(m, m.Sig, m.Body, receiver)

	fnDesc := &classes.FunctionDescriptor{
		Name:              m.Name.Name,
		ImplementingClass: desc.FQN(),
		IsStatic:          m.IsStatic,
		IsFinal:           m.IsFinal,
	}
	if m.Sig.ReturnType != nil {
		fnDesc.ReturnType = r.resolveTypeExpr(m.Sig.ReturnType)
	} else {
		fnDesc.ReturnType = types.TAny
	}
	for _, p := range m.Sig.Params {
		typ := types.TAny
		if p.Type != nil {
			typ = ast.TypeOf(p.Type)
		}
		fnDesc.Params = append(fnDesc.Params, classes.Param{
			Name: p.Name.Name, Type: typ, IsMandatory: p.IsMandatory(), Initialiser: p.Initialiser,
		})
	}

	if base != nil {
		if baseMethod, ok := findInherited(base, m.Name.Name); ok {
			if baseMethod.Func.IsFinal {
				r.errorf(m.Name.Start, "cannot override final method %s", m.Name.Name)
			} else if !baseMethod.Func.ReturnType.IsAssignableFrom(fnDesc.ReturnType) {
				r.errorf(m.Name.Start, "method %s overrides %s with an incompatible return type %s (expected assignable to %s)",
					m.Name.Name, desc.BaseClass.FQN(), fnDesc.ReturnType, baseMethod.Func.ReturnType)
			}
		}
	}

	if err := desc.AddMethod(&classes.Method{Name: m.Name.Name, Func: fnDesc}); err != nil {
		r.errorf(m.Name.Start, "%s", err.Error())
	}
}

func findInherited(base *classes.ClassDescriptor, name string) (*classes.Method, bool) {
	for cur := base; cur != nil; cur = cur.BaseClass {
		if m, ok := cur.MethodByName(name); ok {
			return m, true
		}
	}
	return nil, false
}

// synthesizeInit builds desc's InitMethod and InitWrapper:
// the init method takes every mandatory field across the inheritance
// chain positionally, in base-to-derived declaration order, plus one
// "_initMissing" bitset parameter recording which of this class's own
// optional fields the caller actually supplied (so init can tell "field
// set to null" apart from "field omitted, use its declared default").
// The wrapper accepts the same mandatory fields positionally and every
// optional field by name, and computes _initMissing before delegating to
// the init method.
func (r *Resolver) synthesizeInit(desc *classes.ClassDescriptor) {
	mandatory := desc.GetAllMandatoryFields()
	optional := desc.OptionalFields()

	initParams := make([]classes.Param, 0, len(mandatory)+1)
	for _, f := range mandatory {
		initParams = append(initParams, classes.Param{Name: f.Name, Type: f.Type, IsMandatory: true})
	}
	if len(optional) > 0 {
		initParams = append(initParams, classes.Param{Name: "_initMissing", Type: types.TInt, IsMandatory: true})
	}
	desc.InitMethod = &classes.FunctionDescriptor{
		Name:              "init",
		ImplementingClass: desc.FQN(),
		ImplementingMethod: "init",
		Params:            initParams,
		ReturnType:        types.NewInstance(desc),
		NeedsLocation:     true,
	}

	wrapperParams := make([]classes.Param, 0, len(mandatory)+len(optional))
	for _, f := range mandatory {
		wrapperParams = append(wrapperParams, classes.Param{Name: f.Name, Type: f.Type, IsMandatory: true})
	}
	for _, f := range optional {
		wrapperParams = append(wrapperParams, classes.Param{
			Name: f.Name, Type: f.Type, IsMandatory: false, Initialiser: f.Initialiser,
		})
	}
	desc.InitWrapper = &classes.FunctionDescriptor{
		Name:               "init",
		ImplementingClass:  desc.FQN(),
		ImplementingMethod: "init",
		WrapperMethodName:  "init$wrapper",
		Params:             wrapperParams,
		ReturnType:         types.NewInstance(desc),
		IsWrapper:          true,
	}
}

// synthesizeInitMissing builds desc's InitMissingMethod: a helper that
// takes the bitset of which of this class's own optional fields the
// caller actually supplied and runs the declared initialiser for every
// field whose bit is unset. It first delegates to the base class's own
// _initMissing helper, if any, so a derived class never skips running
// an inherited field's default.
func (r *Resolver) synthesizeInitMissing(desc *classes.ClassDescriptor) {
	desc.InitMissingMethod = &classes.FunctionDescriptor{
		Name:               "_initMissing",
		ImplementingClass:  desc.FQN(),
		ImplementingMethod: "_initMissing",
		Params: []classes.Param{
			{Name: "flags", Type: types.NewArray(types.TLong), IsMandatory: true},
		},
		ReturnType:    types.TAny,
		NeedsLocation: true,
	}
}

// synthesizeFromJson builds desc's FromJsonMethod: a static factory that
// parses a JSON object's text into a new instance of desc field by
// field, filling any field the JSON object omits from its declared
// default the same way the init wrapper does.
func (r *Resolver) synthesizeFromJson(desc *classes.ClassDescriptor) {
	desc.FromJsonMethod = &classes.FunctionDescriptor{
		Name:               "fromJson",
		ImplementingClass:  desc.FQN(),
		ImplementingMethod: "fromJson",
		IsStatic:           true,
		Params: []classes.Param{
			{Name: "text", Type: types.TString, IsMandatory: true},
		},
		ReturnType: types.NewInstance(desc),
	}
}
