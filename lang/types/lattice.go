package types

// Result computes the type produced by applying op to operands of type
// left and right. It returns a *TypeError when the operands
// are incompatible. Result takes no minimum decimal scale: a Decimal
// result is typed Decimal with no scale attached.
func Result(left Type, op Operator, right Type) (Type, *TypeError) {
	if op.isBoolean() {
		return TBoolean, nil
	}
	if op.isFieldOrIndex() {
		return fieldOrIndexResult(left, op, right), nil
	}
	if op.isEquality() {
		return TBoolean, nil
	}
	if op == OpInstanceOf {
		return TBoolean, nil
	}
	if op == OpAs {
		if !right.IsCastableFrom(left) {
			return TUnknown, typeErrorf("cannot cast %s as %s", left, right)
		}
		return right, nil
	}
	if op.isShift() {
		lu := left.Unboxed()
		if !lu.Kind.IsNumeric() || lu.Kind == Double || lu.Kind == Decimal {
			return TUnknown, typeErrorf("invalid shift operand type %s", left)
		}
		return lu, nil
	}
	if op.isComparison() {
		if !left.IsNumeric() && left.Kind != String || !right.IsNumeric() && right.Kind != String {
			if left.Kind != Any && right.Kind != Any {
				return TUnknown, typeErrorf("cannot compare %s and %s", left, right)
			}
		}
		return TBoolean, nil
	}

	// Arithmetic and bitwise family: Byte -> Int -> Long -> Double -> Decimal.
	lu, ru := left.Unboxed(), right.Unboxed()
	if lu.Kind == Any || ru.Kind == Any {
		return TAny, nil
	}
	if op == OpAdd && (lu.Kind == String || ru.Kind == String) {
		return TString, nil
	}
	if !lu.Kind.IsNumeric() || !ru.Kind.IsNumeric() {
		return TUnknown, typeErrorf("operands of %v are not numeric: %s, %s", op, left, right)
	}
	if op == OpBitAnd || op == OpBitOr || op == OpBitXor {
		if lu.Kind == Double || lu.Kind == Decimal || ru.Kind == Double || ru.Kind == Decimal {
			return TUnknown, typeErrorf("bitwise operands must be integral, got %s, %s", left, right)
		}
	}
	result := promote(lu, ru)
	return result, nil
}

// promote returns the wider of two numeric kinds on the Byte -> Int ->
// Long -> Double -> Decimal ladder.
func promote(a, b Type) Type {
	ra, rb := numericRank[a.Kind], numericRank[b.Kind]
	if ra >= rb {
		return a
	}
	return b
}

func fieldOrIndexResult(left Type, op Operator, right Type) Type {
	var result Type
	switch {
	case left.Kind == Instance || left.Kind == Class:
		// Without the member name (not carried by Type), field/index results
		// are Any. The resolver does not narrow this to the member's
		// declared type either.
		result = TAny
	case left.Kind == Array && (op == OpIndex || op == OpSafeIndex):
		if elem, ok := left.GetArrayElemType(); ok {
			result = elem
		} else {
			result = TAny
		}
	default:
		result = TAny
	}
	if op.isSafe() {
		result = result.Boxed()
	}
	return result
}

// IsAssignableFrom reports whether a value of type from may be assigned to
// a location of type to without an explicit conversion.
func (to Type) IsAssignableFrom(from Type) bool {
	if to.Kind == Any {
		return true
	}
	if to.Equal(from) {
		return true
	}
	if to.Kind == Optional {
		if from.Kind == Optional {
			return to.Elem.IsAssignableFrom(*from.Elem)
		}
		return to.Elem.IsAssignableFrom(from)
	}
	if to.IsNumeric() && from.IsNumeric() {
		tu, fu := to.Unboxed(), from.Unboxed()
		return numericRank[tu.Kind] >= numericRank[fu.Kind]
	}
	if to.Kind == Instance && from.Kind == Instance {
		if to.Class == nil || from.Class == nil {
			return to.Class == from.Class
		}
		return from.Class.IsSubclassOf(to.Class)
	}
	return false
}

// IsConvertibleTo reports whether a value of type from can be converted
// (implicitly, or explicitly when allowLoss is true) to type to.
func (from Type) IsConvertibleTo(to Type, allowLoss bool) bool {
	if to.IsAssignableFrom(from) {
		return true
	}
	if to.Kind == Any || from.Kind == Any {
		return true
	}
	if from.IsNumeric() && to.IsNumeric() {
		if allowLoss {
			return true
		}
		tu, fu := to.Unboxed(), from.Unboxed()
		return numericRank[tu.Kind] >= numericRank[fu.Kind]
	}
	if to.Kind == String {
		return true // every value has a string conversion
	}
	if to.Kind == Instance && from.Kind == Instance {
		if to.Class == nil || from.Class == nil {
			return false
		}
		return from.Class.IsSubclassOf(to.Class) || to.Class.IsSubclassOf(from.Class)
	}
	return false
}

// IsCastableFrom reports whether a value of type from can be cast (via
// "as") to type to. Casting is convertibility without the loss guard.
func (to Type) IsCastableFrom(from Type) bool {
	return from.IsConvertibleTo(to, true)
}

// CommonSuperType returns the narrowest type assignable from both a and b
//. When no narrower common
// type exists, it falls back to Any.
func CommonSuperType(a, b Type) Type {
	if a.Equal(b) {
		return a
	}
	if a.Kind == Unknown {
		return b
	}
	if b.Kind == Unknown {
		return a
	}
	if a.Kind == Any || b.Kind == Any {
		return TAny
	}
	if a.IsNumeric() && b.IsNumeric() {
		au, bu := a.Unboxed(), b.Unboxed()
		wasBoxed := a.Kind == Optional || b.Kind == Optional
		wider := promote(au, bu)
		if wasBoxed {
			return wider.Boxed()
		}
		return wider
	}
	if a.Kind == Optional || b.Kind == Optional {
		inner := CommonSuperType(a.Unboxed(), b.Unboxed())
		return inner.Boxed()
	}
	if a.Kind == Instance && b.Kind == Instance && a.Class != nil && b.Class != nil {
		if a.Class.IsSubclassOf(b.Class) {
			return b
		}
		if b.Class.IsSubclassOf(a.Class) {
			return a
		}
		// walk a's ancestry looking for a common ancestor of b; ClassRef does
		// not expose the full chain, so without an ancestor walker the lattice
		// conservatively widens to Any. Nothing in this module computes the
		// precise common base class of two unrelated classes.
		return TAny
	}
	if a.Kind == Array && b.Kind == Array {
		elem := CommonSuperType(*a.Elem, *b.Elem)
		return NewArray(elem)
	}
	return TAny
}
