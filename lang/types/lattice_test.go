package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sylph-lang/sylph/lang/types"
)

func TestCommonSuperTypeReflexiveAndCommutative(t *testing.T) {
	candidates := []types.Type{
		types.TAny, types.TBoolean, types.TByte, types.TInt, types.TLong,
		types.TDouble, types.TDecimal, types.TString, types.TList, types.TMap,
		types.NewArray(types.TInt), types.NewOptional(types.TInt),
	}

	for _, a := range candidates {
		assert.Truef(t, types.CommonSuperType(a, a).Equal(a), "reflexive: %s", a)
		for _, b := range candidates {
			ab := types.CommonSuperType(a, b)
			ba := types.CommonSuperType(b, a)
			assert.Truef(t, ab.Equal(ba), "commutative: %s vs %s -> %s != %s", a, b, ab, ba)
		}
	}
}

func TestNumericPromotionOrder(t *testing.T) {
	assert.True(t, types.CommonSuperType(types.TByte, types.TInt).Equal(types.TInt))
	assert.True(t, types.CommonSuperType(types.TInt, types.TLong).Equal(types.TLong))
	assert.True(t, types.CommonSuperType(types.TLong, types.TDouble).Equal(types.TDouble))
	assert.True(t, types.CommonSuperType(types.TDouble, types.TDecimal).Equal(types.TDecimal))
}

func TestResultBooleanOperatorsIgnoreOperandTypes(t *testing.T) {
	r, err := types.Result(types.TInt, types.OpLogicalAnd, types.TString)
	assert.Nil(t, err)
	assert.Equal(t, types.TBoolean, r)
}

func TestResultArithmeticPromotes(t *testing.T) {
	r, err := types.Result(types.TByte, types.OpAdd, types.TInt)
	assert.Nil(t, err)
	assert.Equal(t, types.TInt, r)
}

func TestResultArithmeticIncompatible(t *testing.T) {
	_, err := types.Result(types.TBoolean, types.OpAdd, types.TInt)
	assert.NotNil(t, err)
}

func TestResultStringConcatViaPlus(t *testing.T) {
	r, err := types.Result(types.TString, types.OpAdd, types.TInt)
	assert.Nil(t, err)
	assert.Equal(t, types.TString, r)
}

func TestIsAssignableFromAny(t *testing.T) {
	assert.True(t, types.TAny.IsAssignableFrom(types.TInt))
	assert.False(t, types.TInt.IsAssignableFrom(types.TAny))
}

func TestSafeAccessResultIsBoxed(t *testing.T) {
	r, err := types.Result(types.NewArray(types.TInt), types.OpSafeIndex, types.TInt)
	assert.Nil(t, err)
	assert.Equal(t, types.Optional, r.Kind)
}
