package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExceptionHierarchy(t *testing.T) {
	exc := NewTypeError("boom")
	assert.True(t, IsInstance(exc, &TypeTypeError))
	assert.True(t, IsInstance(exc, &TypeException))
	assert.True(t, IsInstance(exc, &TypeBaseException))
	assert.True(t, IsInstance(exc, &TypeObject))
	assert.False(t, IsInstance(exc, &TypeStopIteration))
}

func TestResultDiscipline(t *testing.T) {
	ok := WithResult(None)
	assert.True(t, ok.OK())
	assert.Same(t, None, ok.Value)

	// nil is a legal success value distinct from None.
	empty := WithResult(nil)
	assert.True(t, empty.OK())
	assert.Nil(t, empty.Value)

	raised := WithException(NewTypeError("x"))
	assert.False(t, raised.OK())
	assert.Panics(t, func() { WithException(nil) })
}

func TestExceptionMessage(t *testing.T) {
	exc := NewException(&TypeException, "something broke")
	assert.Equal(t, "something broke", Stringify(exc))
}

func TestExceptionWithoutMessageStringifiesToTypeName(t *testing.T) {
	res := Call(&TypeStopIteration, nil, nil, nil)
	require.True(t, res.OK())
	assert.Equal(t, "StopIteration", Stringify(res.Value))
}

func TestBaseExceptionInitRejectsTwoArgs(t *testing.T) {
	res := Call(&TypeException, []*Object{NewStr("a"), NewStr("b")}, nil, nil)
	require.False(t, res.OK())
	assert.True(t, IsInstance(res.Exc, &TypeException))
	assert.Equal(t, "exceptions accept at most one argument", Stringify(res.Exc))
}

func TestCoerceExceptionInstancePassesThrough(t *testing.T) {
	exc := NewTypeError("as-is")
	assert.Same(t, exc, CoerceException(exc))
}

func TestCoerceExceptionTypeIsCalled(t *testing.T) {
	// `raise StopIteration` raises an instance built by calling the type
	// with no arguments.
	coerced := CoerceException(&TypeStopIteration)
	assert.True(t, IsInstance(coerced, &TypeStopIteration))
	assert.NotSame(t, &TypeStopIteration, coerced)
}

func TestCoerceExceptionRejectsNonException(t *testing.T) {
	coerced := CoerceException(NewInt(5))
	assert.True(t, IsInstance(coerced, &TypeTypeError))
	assert.Equal(t, "exceptions must derive from BaseException", Stringify(coerced))
}

func TestCoerceExceptionRejectsNonExceptionType(t *testing.T) {
	coerced := CoerceException(&TypeStr)
	assert.True(t, IsInstance(coerced, &TypeTypeError))
	assert.Equal(t, "exceptions must derive from BaseException", Stringify(coerced))
}

func TestCoerceExceptionUserSubclass(t *testing.T) {
	custom := AllocType(&TypeException)
	SetAttribute(custom, "__name__", NewStr("CustomError"))

	coerced := CoerceException(custom)
	assert.True(t, IsInstance(coerced, custom))
	assert.True(t, IsInstance(coerced, &TypeBaseException))
	assert.Equal(t, "CustomError", Stringify(coerced))
}

func TestRaiseHelper(t *testing.T) {
	res := Raise(&TypeTypeError, "helper")
	require.False(t, res.OK())
	assert.True(t, IsInstance(res.Exc, &TypeTypeError))
	assert.Equal(t, "helper", Stringify(res.Exc))
}

func TestExceptionMsgAttribute(t *testing.T) {
	exc := NewException(&TypeException, "msg text")
	msg, lookupExc := GetAttribute(exc, "msg")
	require.Nil(t, lookupExc)
	require.NotNil(t, msg)
	assert.Equal(t, "msg text", msg.Str())
}
