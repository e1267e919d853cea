// Package classes implements the class descriptor registry: the
// side table of class shape information the resolver consults and builds
// while preparing classes, and that is later published to the host VM's
// class loader (an external collaborator, out of scope here).
package classes

import (
	"github.com/sylph-lang/sylph/lang/types"
)

// Field describes one field of a class.
type Field struct {
	Name         string
	Type         types.Type
	IsMandatory  bool // mandatory fields have no initialiser and must be set by init
	IsConstStatic bool
	ConstValue   interface{} // only set when IsConstStatic
	Initialiser  interface{} // opaque ast.Expr, nil for mandatory fields; avoids an ast import cycle
}

// Param describes one parameter of a FunctionDescriptor.
type Param struct {
	Name        string
	Type        types.Type
	IsMandatory bool
	Initialiser interface{} // opaque ast.Expr default-value expression, nil if mandatory
}

// FunctionDescriptor is the static signature information recorded for a
// user function or method.
type FunctionDescriptor struct {
	Name                string
	ImplementingClass   string // FQN, empty for a free function
	ImplementingMethod  string
	WrapperMethodName   string
	Params              []Param
	ReturnType          types.Type
	FirstArgType        *types.Type // receiver type, set for instance methods
	IsStatic            bool
	IsFinal             bool
	IsAsync             bool
	IsWrapper           bool
	NeedsLocation       bool
	IsBuiltin           bool
}

// MandatoryParamCount returns the number of leading-or-scattered mandatory
// parameters, an order-preserving count that init-method synthesis needs
// exactly.
func (fd *FunctionDescriptor) MandatoryParamCount() int {
	n := 0
	for _, p := range fd.Params {
		if p.IsMandatory {
			n++
		}
	}
	return n
}

// Method associates a name with its FunctionDescriptor.
type Method struct {
	Name string
	Func *FunctionDescriptor
}

// ClassDescriptor records the static shape of a single class.
type ClassDescriptor struct {
	PackageName string
	Name        string // simple name
	IsInterface bool

	BaseClass   *ClassDescriptor // nil for a root class
	Interfaces  []*ClassDescriptor

	Fields  []*Field          // ordered, declaration order
	fieldIx map[string]int    // name -> index into Fields
	Methods []*Method         // ordered
	methodIx map[string]int   // name -> index into Methods

	InnerClasses map[string]*ClassDescriptor

	InitMethod  *FunctionDescriptor // synthesized init method
	InitWrapper *FunctionDescriptor // synthesized init wrapper

	InitMissingMethod *FunctionDescriptor // synthesized _initMissing(flags) default-filler helper
	FromJsonMethod    *FunctionDescriptor // synthesized fromJson(text) deserializing factory

	cycleChecked bool // set once this class's ancestry has been validated acyclic
}

// FQN returns the fully-qualified name (package + simple name), the unique
// key for a class. It implements types.ClassRef.
func (c *ClassDescriptor) FQN() string {
	if c.PackageName == "" {
		return c.Name
	}
	return c.PackageName + "." + c.Name
}

// IsSubclassOf reports whether c is other or a descendant of other,
// walking the single-inheritance chain. It implements types.ClassRef.
func (c *ClassDescriptor) IsSubclassOf(other types.ClassRef) bool {
	for cur := c; cur != nil; cur = cur.BaseClass {
		if cur.FQN() == other.FQN() {
			return true
		}
	}
	return false
}

var _ types.ClassRef = (*ClassDescriptor)(nil)
