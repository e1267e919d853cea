package types

// ClassRef is the minimal view of a class descriptor that the type lattice
// needs. It is an interface, not a concrete dependency on package classes,
// so that lang/classes can in turn depend on lang/types (a field's
// declared Type) without an import cycle.
type ClassRef interface {
	// FQN is the class's fully-qualified name, used for equality and
	// display.
	FQN() string
	// IsSubclassOf reports whether this class is other or a descendant of
	// other in the single-inheritance chain.
	IsSubclassOf(other ClassRef) bool
}

// Type is a tagged variant over Kind. Array carries Elem; so does
// Optional (the wrapped kind). Instance and Class carry a ClassRef, which
// may be nil while the class is still being prepared (forward
// resolution).
type Type struct {
	Kind  Kind
	Elem  *Type    // set when Kind == Array or Kind == Optional
	Class ClassRef // set when Kind == Instance or Kind == Class
}

// Simple kind constructors for the non-parametric kinds.
var (
	TUnknown  = Type{Kind: Unknown}
	TAny      = Type{Kind: Any}
	TBoolean  = Type{Kind: Boolean}
	TByte     = Type{Kind: Byte}
	TInt      = Type{Kind: Int}
	TLong     = Type{Kind: Long}
	TDouble   = Type{Kind: Double}
	TDecimal  = Type{Kind: Decimal}
	TString   = Type{Kind: String}
	TList     = Type{Kind: List}
	TMap      = Type{Kind: Map}
	TIterator = Type{Kind: Iterator}
	TFunction = Type{Kind: Function}
	TMatcher  = Type{Kind: Matcher}
)

// NewArray returns the Array(elem) type.
func NewArray(elem Type) Type { return Type{Kind: Array, Elem: &elem} }

// NewOptional returns the Optional(of) boxed type. Wrapping an already
// Optional type, or Any, returns the input unchanged: optionality does not
// stack and Any already subsumes null.
func NewOptional(of Type) Type {
	if of.Kind == Optional || of.Kind == Any {
		return of
	}
	return Type{Kind: Optional, Elem: &of}
}

// NewInstance returns the Instance(class) type.
func NewInstance(c ClassRef) Type { return Type{Kind: Instance, Class: c} }

// NewClass returns the Class(class) type (the static/metaclass side).
func NewClass(c ClassRef) Type { return Type{Kind: Class, Class: c} }

func (t Type) String() string {
	switch t.Kind {
	case Array:
		return t.Elem.String() + "[]"
	case Optional:
		return t.Elem.String() + "?"
	case Instance, Class:
		if t.Class != nil {
			return t.Class.FQN()
		}
		return t.Kind.String() + "(<forward>)"
	default:
		return t.Kind.String()
	}
}

// Unboxed returns the primitive form of an Optional(primitive) type, or t
// unchanged if it isn't one.
func (t Type) Unboxed() Type {
	if t.Kind == Optional && t.Elem != nil && t.Elem.Kind.IsPrimitive() {
		return *t.Elem
	}
	return t
}

// Boxed returns the Optional-wrapped form of a primitive type, or t
// unchanged if it is already boxed or not a primitive.
func (t Type) Boxed() Type {
	if t.Kind.IsPrimitive() {
		return NewOptional(t)
	}
	return t
}

// IsNumeric reports whether t's unboxed kind is numeric.
func (t Type) IsNumeric() bool { return t.Unboxed().Kind.IsNumeric() }

// GetArrayElemType returns the element type of an Array type and true, or
// the zero Type and false if t is not an Array.
func (t Type) GetArrayElemType() (Type, bool) {
	if t.Kind != Array || t.Elem == nil {
		return Type{}, false
	}
	return *t.Elem, true
}

// Equal reports whether two types denote the same type, recursively
// comparing Elem and, for Instance/Class, the referenced class's FQN.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case Array, Optional:
		if t.Elem == nil || o.Elem == nil {
			return t.Elem == o.Elem
		}
		return t.Elem.Equal(*o.Elem)
	case Instance, Class:
		if t.Class == nil || o.Class == nil {
			return t.Class == o.Class
		}
		return t.Class.FQN() == o.Class.FQN()
	default:
		return true
	}
}
