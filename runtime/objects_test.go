package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryStaticTypeHasTypeType(t *testing.T) {
	types := []*Object{
		&TypeObject, &TypeBool, &TypeInt, &TypeFloat, &TypeStr, &TypeTuple,
		&TypeList, &TypeType, &TypeFunction, &TypeMethod, &TypeNoneType,
		&TypeBaseException, &TypeException, &TypeStopIteration, &TypeTypeError,
		&TypeRange,
	}
	for _, typ := range types {
		assert.Same(t, &TypeType, typ.Type, "type %s", TypeName(typ))
	}
}

func TestBaseChainTerminatesAtObject(t *testing.T) {
	types := []*Object{
		&TypeBool, &TypeInt, &TypeStr, &TypeType, &TypeFunction,
		&TypeBaseException, &TypeTypeError, &TypeRange,
	}
	for _, typ := range types {
		current := typ
		steps := 0
		for current.TypeData().Base != nil {
			current = current.TypeData().Base
			steps++
			require.Less(t, steps, 32, "base chain of %s does not terminate", TypeName(typ))
		}
		assert.Same(t, &TypeObject, current, "root of %s", TypeName(typ))
	}
}

func TestSingletons(t *testing.T) {
	assert.Same(t, &TypeNoneType, None.Type)
	assert.Same(t, &TypeBool, True.Type)
	assert.Same(t, &TypeBool, False.Type)
	assert.True(t, True.Bool())
	assert.False(t, False.Bool())

	assert.Same(t, True, AsBool(true))
	assert.Same(t, False, AsBool(false))
}

func TestConstructors(t *testing.T) {
	i := NewInt(42)
	assert.Same(t, &TypeInt, i.Type)
	assert.Equal(t, int64(42), i.Int())

	fl := NewFloat(2.5)
	assert.Same(t, &TypeFloat, fl.Type)
	assert.Equal(t, 2.5, fl.Float())

	s := NewStr("abc")
	assert.Same(t, &TypeStr, s.Type)
	assert.Equal(t, "abc", s.Str())

	tup := NewTuple([]*Object{i, s})
	assert.Same(t, &TypeTuple, tup.Type)
	assert.Len(t, tup.Items(), 2)

	lst := NewList([]*Object{i})
	assert.Same(t, &TypeList, lst.Type)
	assert.Len(t, lst.Items(), 1)

	fn := NewFunction(objectInit)
	assert.Same(t, &TypeFunction, fn.Type)

	m := NewMethod(objectInit, i)
	assert.Same(t, &TypeMethod, m.Type)
	_, bound := m.Method()
	assert.Same(t, i, bound)
}

func TestFreshIntValues(t *testing.T) {
	a := NewInt(1)
	b := NewInt(1)
	assert.NotSame(t, a, b)
	assert.Equal(t, a.Int(), b.Int())
}

func TestPayloadMismatchPanics(t *testing.T) {
	assert.Panics(t, func() { NewInt(1).Str() })
	assert.Panics(t, func() { NewStr("x").Int() })
	assert.Panics(t, func() { None.Bool() })
	assert.Panics(t, func() { NewInt(1).Attrs() })
}

func TestAllocObject(t *testing.T) {
	obj := AllocObject(&TypeObject)
	assert.Same(t, &TypeObject, obj.Type)
	assert.Equal(t, 0, obj.Attrs().Len())

	assert.Panics(t, func() { AllocObject(NewInt(1)) })
	assert.Panics(t, func() { AllocObject(nil) })
}

func TestAllocType(t *testing.T) {
	typ := AllocType(&TypeObject)
	assert.Same(t, &TypeType, typ.Type)
	assert.Same(t, &TypeObject, typ.TypeData().Base)
	assert.False(t, typ.TypeData().Intrinsic)
}

func TestIsInstance(t *testing.T) {
	assert.True(t, IsInstance(True, &TypeBool))
	assert.True(t, IsInstance(False, &TypeBool))
	assert.True(t, IsInstance(NewInt(1), &TypeInt))
	assert.True(t, IsInstance(NewInt(1), &TypeObject))
	assert.True(t, IsInstance(None, &TypeObject))

	// Walking the chain must not terminate early on unrelated types.
	assert.False(t, IsInstance(NewInt(1), &TypeStr))
	assert.False(t, IsInstance(NewStr("x"), &TypeBaseException))
}

func TestIsInstanceUserHierarchy(t *testing.T) {
	a := AllocType(&TypeObject)
	b := AllocType(a)

	inst := AllocObject(b)
	assert.True(t, IsInstance(inst, b))
	assert.True(t, IsInstance(inst, a))
	assert.True(t, IsInstance(inst, &TypeObject))
	assert.False(t, IsInstance(AllocObject(a), b))
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "int", TypeName(&TypeInt))
	assert.Equal(t, "NoneType", TypeName(&TypeNoneType))
	assert.Equal(t, "<not a type>", TypeName(NewInt(1)))
	assert.Equal(t, "<anonymous type>", TypeName(AllocType(&TypeObject)))
}

func TestStringifySingletons(t *testing.T) {
	assert.Equal(t, "None", Stringify(None))
	assert.Equal(t, "True", Stringify(True))
	assert.Equal(t, "False", Stringify(False))
}

func TestStringifyIntAndFloat(t *testing.T) {
	assert.Equal(t, "42", Stringify(NewInt(42)))
	assert.Equal(t, "-7", Stringify(NewInt(-7)))
	assert.Equal(t, "2.5", Stringify(NewFloat(2.5)))
}

func TestStrOfStrIsIdentity(t *testing.T) {
	s := NewStr("hello")
	res := Call(&TypeStr, []*Object{s}, nil, nil)
	require.True(t, res.OK())
	assert.Same(t, s, res.Value)
}

func TestStringifyNil(t *testing.T) {
	assert.Equal(t, "<NULL>", Stringify(nil))
}

func TestVerifySelfArg(t *testing.T) {
	assert.NotPanics(t, func() { VerifySelfArg(True, &TypeBool) })
	assert.NotPanics(t, func() { VerifySelfArg(True, &TypeObject) })
	assert.Panics(t, func() { VerifySelfArg(True, &TypeStr) })
	assert.Panics(t, func() { VerifySelfArg(nil, &TypeStr) })
}

func TestSymbolTableOrderAndOverwrite(t *testing.T) {
	var tbl SymbolTable
	tbl.Set("a", NewInt(1))
	tbl.Set("b", NewInt(2))
	require.Equal(t, 2, tbl.Len())

	tbl.Set("a", NewInt(3))
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, int64(3), tbl.Get("a").Int())
	assert.Nil(t, tbl.Get("missing"))
}
