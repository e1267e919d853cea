package classes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sylph-lang/sylph/lang/classes"
	"github.com/sylph-lang/sylph/lang/types"
)

func TestDuplicateFieldAcrossHierarchy(t *testing.T) {
	// class A { int x }; class B extends A { int x } must report a
	// duplicate field, not silently shadow it.
	reg := classes.NewRegistry(nil)
	a, err := reg.Register("", "A")
	require.NoError(t, err)
	require.NoError(t, a.AddField(reg, &classes.Field{Name: "x", Type: types.TInt, IsMandatory: true}))

	b, err := reg.Register("", "B")
	require.NoError(t, err)
	b.BaseClass = a

	// the collision is across the hierarchy, not within B's own fields, so
	// this must be caught by AddField walking BaseClass, not just B's own
	// fieldIx.
	err = b.AddField(reg, &classes.Field{Name: "x", Type: types.TInt, IsMandatory: true})
	var nameClash *classes.NameClashError
	assert.ErrorAs(t, err, &nameClash)
}

func TestFieldClashesWithBuiltinMethod(t *testing.T) {
	reg := classes.NewRegistry(func(name string) bool { return name == "toString" })
	a, err := reg.Register("", "A")
	require.NoError(t, err)
	err = a.AddField(reg, &classes.Field{Name: "toString", Type: types.TString})
	var nameClash *classes.NameClashError
	assert.ErrorAs(t, err, &nameClash)
}

func TestCyclicInheritanceDetected(t *testing.T) {
	reg := classes.NewRegistry(nil)
	a, _ := reg.Register("", "A")
	b, _ := reg.Register("", "B")
	a.BaseClass = b
	b.BaseClass = a

	err := a.CheckAcyclic()
	var cyc *classes.CyclicInheritanceError
	assert.ErrorAs(t, err, &cyc)
}

func TestGetAllMandatoryFieldsBaseFirst(t *testing.T) {
	reg := classes.NewRegistry(nil)
	a, _ := reg.Register("", "A")
	_ = a.AddField(reg, &classes.Field{Name: "a1", Type: types.TInt, IsMandatory: true})
	b, _ := reg.Register("", "B")
	b.BaseClass = a
	_ = b.AddField(reg, &classes.Field{Name: "b1", Type: types.TInt, IsMandatory: true})

	fields := b.GetAllMandatoryFields()
	require.Len(t, fields, 2)
	assert.Equal(t, "a1", fields[0].Name)
	assert.Equal(t, "b1", fields[1].Name)
}

func TestIsSubclassOf(t *testing.T) {
	reg := classes.NewRegistry(nil)
	a, _ := reg.Register("", "A")
	b, _ := reg.Register("", "B")
	b.BaseClass = a

	assert.True(t, b.IsSubclassOf(a))
	assert.True(t, a.IsSubclassOf(a))
	assert.False(t, a.IsSubclassOf(b))
}
