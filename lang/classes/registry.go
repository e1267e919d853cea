package classes

import (
	"fmt"

	"github.com/dolthub/swiss"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// NameClashError reports a duplicate field/method name, or a field name
// that collides with a built-in method.
type NameClashError struct {
	ClassFQN, Name string
	Reason         string
}

func (e *NameClashError) Error() string {
	return fmt.Sprintf("%s: name clash on %q: %s", e.ClassFQN, e.Name, e.Reason)
}

// CyclicInheritanceError reports that a class's base-class chain closes on
// itself.
type CyclicInheritanceError struct {
	Chain []string // FQNs, in visitation order, repeating the first entry at the end
}

func (e *CyclicInheritanceError) Error() string {
	msg := "cyclic inheritance: "
	for i, fqn := range e.Chain {
		if i > 0 {
			msg += " -> "
		}
		msg += fqn
	}
	return msg
}

// Registry is the process-wide class descriptor registry. A
// compilation publishes its resolved classes into the registry at
// compilation boundaries; lookups during resolution of one
// script never mutate another script's in-flight descriptors.
//
// The registry is keyed on FQN in a swiss.Map: class lookups during
// resolution of a large program are exactly the kind of hot,
// high-cardinality lookup that hash map favors over a tree map.
type Registry struct {
	classes       *swiss.Map[string, *ClassDescriptor]
	isBuiltinName func(name string) bool
}

// NewRegistry returns an empty registry. isBuiltinName reports whether a
// name denotes a built-in (runtime-library) method, used to reject fields
// that would shadow one.
func NewRegistry(isBuiltinName func(name string) bool) *Registry {
	if isBuiltinName == nil {
		isBuiltinName = func(string) bool { return false }
	}
	return &Registry{
		classes:       swiss.NewMap[string, *ClassDescriptor](64),
		isBuiltinName: isBuiltinName,
	}
}

// Register adds a new, empty class descriptor under its FQN. It returns an
// error if a class is already registered under that FQN.
func (r *Registry) Register(packageName, name string) (*ClassDescriptor, error) {
	cd := &ClassDescriptor{
		PackageName:  packageName,
		Name:         name,
		fieldIx:      make(map[string]int),
		methodIx:     make(map[string]int),
		InnerClasses: make(map[string]*ClassDescriptor),
	}
	fqn := cd.FQN()
	if _, ok := r.classes.Get(fqn); ok {
		return nil, &NameClashError{ClassFQN: fqn, Name: name, Reason: "class already registered"}
	}
	r.classes.Put(fqn, cd)
	return cd, nil
}

// Lookup returns the class registered under fqn, or nil, false.
func (r *Registry) Lookup(fqn string) (*ClassDescriptor, bool) {
	return r.classes.Get(fqn)
}

// AddField appends a field to c, enforcing: unique name within the class
// (shared namespace with methods and static fields), no collision with
// a built-in method name, and no collision with a field or method
// already declared on an ancestor class. The ancestor check requires
// base to already carry its full Fields/Methods, which holds because a
// class is fully prepared (its own AddField/AddMethod calls done)
// before anything declares it as a base class.
func (c *ClassDescriptor) AddField(r *Registry, f *Field) error {
	if _, ok := c.fieldIx[f.Name]; ok {
		return &NameClashError{ClassFQN: c.FQN(), Name: f.Name, Reason: "duplicate field"}
	}
	if _, ok := c.methodIx[f.Name]; ok {
		return &NameClashError{ClassFQN: c.FQN(), Name: f.Name, Reason: "field name clashes with method"}
	}
	for base := c.BaseClass; base != nil; base = base.BaseClass {
		if _, ok := base.fieldIx[f.Name]; ok {
			return &NameClashError{ClassFQN: c.FQN(), Name: f.Name, Reason: "field already declared on base class " + base.FQN()}
		}
		if _, ok := base.methodIx[f.Name]; ok {
			return &NameClashError{ClassFQN: c.FQN(), Name: f.Name, Reason: "field name clashes with a method inherited from " + base.FQN()}
		}
	}
	if r.isBuiltinName(f.Name) {
		return &NameClashError{ClassFQN: c.FQN(), Name: f.Name, Reason: "field name clashes with a built-in method"}
	}
	c.fieldIx[f.Name] = len(c.Fields)
	c.Fields = append(c.Fields, f)
	return nil
}

// AddMethod appends a method to c, enforcing the same uniqueness rule as
// AddField (fields and methods share one namespace).
func (c *ClassDescriptor) AddMethod(m *Method) error {
	if _, ok := c.methodIx[m.Name]; ok {
		return &NameClashError{ClassFQN: c.FQN(), Name: m.Name, Reason: "duplicate method"}
	}
	if _, ok := c.fieldIx[m.Name]; ok {
		return &NameClashError{ClassFQN: c.FQN(), Name: m.Name, Reason: "method name clashes with field"}
	}
	c.methodIx[m.Name] = len(c.Methods)
	c.Methods = append(c.Methods, m)
	return nil
}

// AddInnerClass registers an inner class under name.
func (c *ClassDescriptor) AddInnerClass(name string, inner *ClassDescriptor) error {
	if _, ok := c.InnerClasses[name]; ok {
		return &NameClashError{ClassFQN: c.FQN(), Name: name, Reason: "duplicate inner class"}
	}
	c.InnerClasses[name] = inner
	return nil
}

// FieldByName looks up a field declared directly on c (not inherited).
func (c *ClassDescriptor) FieldByName(name string) (*Field, bool) {
	ix, ok := c.fieldIx[name]
	if !ok {
		return nil, false
	}
	return c.Fields[ix], true
}

// MethodByName looks up a method declared directly on c (not inherited).
func (c *ClassDescriptor) MethodByName(name string) (*Method, bool) {
	ix, ok := c.methodIx[name]
	if !ok {
		return nil, false
	}
	return c.Methods[ix], true
}

// CheckAcyclic validates that c's base-class chain does not close on
// itself. It must be called
// once the full chain has been registered; it marks c (not its bases) as
// checked so repeated calls on c are cheap.
func (c *ClassDescriptor) CheckAcyclic() error {
	if c.cycleChecked {
		return nil
	}
	seen := map[string]bool{}
	var chain []string
	for cur := c; cur != nil; cur = cur.BaseClass {
		fqn := cur.FQN()
		chain = append(chain, fqn)
		if seen[fqn] {
			return &CyclicInheritanceError{Chain: chain}
		}
		seen[fqn] = true
	}
	c.cycleChecked = true
	return nil
}

// GetAllMandatoryFields returns the mandatory fields across the full
// inheritance chain, base class first, in declaration order; this is
// exactly the parameter list of the synthesized init method.
func (c *ClassDescriptor) GetAllMandatoryFields() []*Field {
	var chain []*ClassDescriptor
	for cur := c; cur != nil; cur = cur.BaseClass {
		chain = append(chain, cur)
	}
	var out []*Field
	for i := len(chain) - 1; i >= 0; i-- {
		for _, f := range chain[i].Fields {
			if f.IsMandatory {
				out = append(out, f)
			}
		}
	}
	return out
}

// OptionalFields returns this class's own (non-inherited) optional,
// non-const instance fields in declaration order — the authoritative
// order for _initMissing bit assignment.
func (c *ClassDescriptor) OptionalFields() []*Field {
	var out []*Field
	for _, f := range c.Fields {
		if !f.IsMandatory && !f.IsConstStatic {
			out = append(out, f)
		}
	}
	return out
}

// AllMethods enumerates every method visible on c, including inherited
// ones (most-derived override wins), sorted by name for a deterministic
// iteration order.
func (c *ClassDescriptor) AllMethods() []*Method {
	seen := make(map[string]*Method)
	for cur := c; cur != nil; cur = cur.BaseClass {
		for _, m := range cur.Methods {
			if _, ok := seen[m.Name]; !ok {
				seen[m.Name] = m // nearest (most-derived) class wins, first one found walking up
			}
		}
	}
	names := maps.Keys(seen)
	slices.Sort(names)
	out := make([]*Method, 0, len(names))
	for _, name := range names {
		out = append(out, seen[name])
	}
	return out
}
