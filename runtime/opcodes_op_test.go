package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// evalBinOp pushes lhs then rhs and applies op, returning the result.
func evalBinOp(t *testing.T, op BinOp, lhs, rhs *Object) *Object {
	t.Helper()
	f := NewFrame(8)
	f.Push(lhs)
	f.Push(rhs)
	exc := f.BinaryOp(op)
	require.Nil(t, exc, "unexpected exception: %s", Stringify(exc))
	require.Equal(t, 1, f.Depth())
	return f.Pop()
}

func TestIntBinaryOps(t *testing.T) {
	tests := []struct {
		name string
		op   BinOp
		a, b int64
		want int64
	}{
		{"add", OpAdd, 7, 3, 10},
		{"sub", OpSub, 7, 3, 4},
		{"mul", OpMul, 7, 3, 21},
		{"floordiv", OpFloorDiv, 7, 3, 2},
		{"mod", OpMod, 7, 3, 1},
		{"and", OpAnd, 0b1100, 0b1010, 0b1000},
		{"or", OpOr, 0b1100, 0b1010, 0b1110},
		{"xor", OpXor, 0b1100, 0b1010, 0b0110},
		{"lshift", OpLShift, 1, 4, 16},
		{"rshift", OpRShift, 16, 3, 2},
		{"pow", OpPow, 2, 10, 1024},
		{"pow zero", OpPow, 5, 0, 1},
		{"iadd", OpInplaceAdd, 1, 2, 3},
		{"isub", OpInplaceSub, 5, 2, 3},
		{"imul", OpInplaceMul, 4, 4, 16},
		{"ipow", OpInplacePow, 3, 3, 27},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evalBinOp(t, tt.op, NewInt(tt.a), NewInt(tt.b))
			assert.Equal(t, tt.want, got.Int())
		})
	}
}

func TestBinaryOpResultIsFresh(t *testing.T) {
	a := NewInt(1)
	got := evalBinOp(t, OpAdd, a, NewInt(0))
	assert.NotSame(t, a, got)
	assert.Equal(t, int64(1), got.Int())
}

func TestBinaryOpUnsupportedTypes(t *testing.T) {
	f := NewFrame(8)
	f.Push(NewStr("a"))
	f.Push(NewInt(1))

	exc := f.BinaryOp(OpSub)
	require.NotNil(t, exc)
	assert.True(t, IsInstance(exc, &TypeTypeError))
	assert.Equal(t, "unsupported operand type(s) for -", Stringify(exc))
}

func TestBinaryOpDunderDispatch(t *testing.T) {
	// class Vec:
	//     def __add__(self, other): return "sum"
	cls := AllocType(&TypeObject)
	var gotSelf, gotOther *Object
	SetAttribute(cls, "__add__", NewFunction(
		func(self *Object, args []*Object, kwargs []Symbol) Result {
			require.Len(t, args, 1)
			gotSelf = self
			gotOther = args[0]
			return WithResult(NewStr("sum"))
		}))

	lhs := AllocObject(cls)
	rhs := NewInt(5)
	got := evalBinOp(t, OpAdd, lhs, rhs)
	assert.Equal(t, "sum", got.Str())
	assert.Same(t, lhs, gotSelf, "the dunder is consulted on the left operand")
	assert.Same(t, rhs, gotOther)
}

func TestBinaryOpDunderException(t *testing.T) {
	cls := AllocType(&TypeObject)
	SetAttribute(cls, "__mul__", NewFunction(
		func(self *Object, args []*Object, kwargs []Symbol) Result {
			return Raise(&TypeTypeError, "cannot multiply")
		}))

	f := NewFrame(8)
	f.Push(AllocObject(cls))
	f.Push(NewInt(2))

	exc := f.BinaryOp(OpMul)
	require.NotNil(t, exc)
	assert.Equal(t, "cannot multiply", Stringify(exc))
}

func TestSubscrDispatchesToGetItem(t *testing.T) {
	cls := AllocType(&TypeObject)
	SetAttribute(cls, "__getitem__", NewFunction(
		func(self *Object, args []*Object, kwargs []Symbol) Result {
			require.Len(t, args, 1)
			return WithResult(NewInt(args[0].Int() * 2))
		}))

	got := evalBinOp(t, OpSubscr, AllocObject(cls), NewInt(21))
	assert.Equal(t, int64(42), got.Int())
}

func TestPowNegativeExponentRaises(t *testing.T) {
	f := NewFrame(8)
	f.Push(NewInt(2))
	f.Push(NewInt(-1))

	exc := f.BinaryOp(OpPow)
	require.NotNil(t, exc)
	assert.True(t, IsInstance(exc, &TypeTypeError))
}

func TestInplaceOpFallsBackToDunder(t *testing.T) {
	cls := AllocType(&TypeObject)
	SetAttribute(cls, "__iadd__", NewFunction(
		func(self *Object, args []*Object, kwargs []Symbol) Result {
			return WithResult(NewStr("iadd"))
		}))

	got := evalBinOp(t, OpInplaceAdd, AllocObject(cls), NewInt(1))
	assert.Equal(t, "iadd", got.Str())
}

func TestIntPow(t *testing.T) {
	assert.Equal(t, int64(1), intPow(7, 0))
	assert.Equal(t, int64(7), intPow(7, 1))
	assert.Equal(t, int64(1<<20), intPow(2, 20))
	assert.Equal(t, int64(-27), intPow(-3, 3))
}
