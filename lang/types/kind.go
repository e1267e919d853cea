// Package types implements the type lattice and class-aware type
// descriptors used by the resolver and switch compiler: value
// kinds, assignability, convertibility, common-supertype computation and
// numeric promotion.
//
// Kind is a compile-time descriptor, not a runtime value: isPrimitive,
// isNumeric and friends live next to the kind they describe rather than
// in one large switch.
package types

import "fmt"

// Kind identifies a value kind in the lattice.
type Kind uint8

const (
	Unknown Kind = iota // resolution has not yet determined a type
	Any
	Boolean
	Byte
	Int
	Long
	Double
	Decimal
	String
	List
	Map
	Array // carries Elem
	Iterator
	Instance // carries Class
	Class    // carries Class (the class's own metaclass/static side)
	Function
	Matcher
	Optional // carries Elem: a boxed/nullable wrapper around another kind

	maxKind
)

var kindNames = [...]string{
	Unknown:  "unknown",
	Any:      "Any",
	Boolean:  "Boolean",
	Byte:     "byte",
	Int:      "int",
	Long:     "long",
	Double:   "double",
	Decimal:  "Decimal",
	String:   "String",
	List:     "List",
	Map:      "Map",
	Array:    "Array",
	Iterator: "Iterator",
	Instance: "Instance",
	Class:    "Class",
	Function: "Function",
	Matcher:  "Matcher",
	Optional: "Optional",
}

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return fmt.Sprintf("<invalid Kind %d>", k)
	}
	return kindNames[k]
}

// IsNumeric reports whether k is one of the numeric kinds on the
// byte/int/long/double/decimal promotion ladder.
func (k Kind) IsNumeric() bool {
	switch k {
	case Byte, Int, Long, Double, Decimal:
		return true
	default:
		return false
	}
}

// IsPrimitive reports whether k is an unboxed primitive kind. Primitives
// cannot hold null; their boxed counterpart is represented by wrapping the
// Type in Optional.
func (k Kind) IsPrimitive() bool {
	switch k {
	case Boolean, Byte, Int, Long, Double:
		return true
	default:
		return false
	}
}

// numericRank orders the numeric promotion ladder:
// Byte < Int < Long < Double < Decimal.
var numericRank = map[Kind]int{
	Byte:    0,
	Int:     1,
	Long:    2,
	Double:  3,
	Decimal: 4,
}
