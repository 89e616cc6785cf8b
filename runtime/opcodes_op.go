package runtime

// Binary operations. Dispatch is two-tiered: int operands use native
// 64-bit arithmetic, everything else goes through the left operand's
// dunder method. The reflected __rop__ protocol and int/float coercion
// are not implemented yet.

// BinOp identifies a binary operation, including the in-place variants
// and subscripting.
type BinOp int

const (
	OpAdd BinOp = iota
	OpAnd
	OpFloorDiv
	OpLShift
	OpMatMul
	OpMul
	OpMod
	OpOr
	OpPow
	OpRShift
	OpSub
	OpXor
	OpSubscr

	OpInplaceAdd
	OpInplaceAnd
	OpInplaceFloorDiv
	OpInplaceLShift
	OpInplaceMatMul
	OpInplaceMul
	OpInplaceMod
	OpInplaceOr
	OpInplacePow
	OpInplaceRShift
	OpInplaceSub
	OpInplaceXor
)

// intPow computes base**exp with binary exponentiation, avoiding the
// float detour. Negative exponents never reach it: BinaryOp raises a
// TypeError for them before taking the int fast path of **.
func intPow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

type binOpInfo struct {
	dunder string
	symbol string
	intFn  func(a, b int64) int64
}

var binOps = [...]binOpInfo{
	OpAdd:      {"__add__", "+", func(a, b int64) int64 { return a + b }},
	OpAnd:      {"__and__", "&", func(a, b int64) int64 { return a & b }},
	OpFloorDiv: {"__floordiv__", "//", func(a, b int64) int64 { return a / b }},
	OpLShift:   {"__lshift__", "<<", func(a, b int64) int64 { return a << b }},
	OpMatMul:   {"__matmul__", "@", nil},
	OpMul:      {"__mul__", "*", func(a, b int64) int64 { return a * b }},
	OpMod:      {"__mod__", "%", func(a, b int64) int64 { return a % b }},
	OpOr:       {"__or__", "|", func(a, b int64) int64 { return a | b }},
	OpPow:      {"__pow__", "**", intPow},
	OpRShift:   {"__rshift__", ">>", func(a, b int64) int64 { return a >> b }},
	OpSub:      {"__sub__", "-", func(a, b int64) int64 { return a - b }},
	OpXor:      {"__xor__", "^", func(a, b int64) int64 { return a ^ b }},
	OpSubscr:   {"__getitem__", "[]", nil},

	OpInplaceAdd:      {"__iadd__", "+=", func(a, b int64) int64 { return a + b }},
	OpInplaceAnd:      {"__iand__", "&=", func(a, b int64) int64 { return a & b }},
	OpInplaceFloorDiv: {"__ifloordiv__", "//=", func(a, b int64) int64 { return a / b }},
	OpInplaceLShift:   {"__ilshift__", "<<=", func(a, b int64) int64 { return a << b }},
	OpInplaceMatMul:   {"__imatmul__", "@=", nil},
	OpInplaceMul:      {"__imul__", "*=", func(a, b int64) int64 { return a * b }},
	OpInplaceMod:      {"__imod__", "%=", func(a, b int64) int64 { return a % b }},
	OpInplaceOr:       {"__ior__", "|=", func(a, b int64) int64 { return a | b }},
	OpInplacePow:      {"__ipow__", "**=", intPow},
	OpInplaceRShift:   {"__irshift__", ">>=", func(a, b int64) int64 { return a >> b }},
	OpInplaceSub:      {"__isub__", "-=", func(a, b int64) int64 { return a - b }},
	OpInplaceXor:      {"__ixor__", "^=", func(a, b int64) int64 { return a ^ b }},
}

// BinaryOp pops the two operands of op (right-hand side on top), pushes
// the result, and returns nil; on failure the stack loses the operands
// and the exception is returned.
func (f *Frame) BinaryOp(op BinOp) *Object {
	info := &binOps[op]

	rhs := f.Pop()
	lhs := f.Pop()
	if rhs == nil || lhs == nil {
		panic("binary operation on a nil operand")
	}

	if info.intFn != nil && lhs.Type == &TypeInt && rhs.Type == &TypeInt {
		if op == OpPow || op == OpInplacePow {
			if rhs.Int() < 0 {
				// No float fallback yet for negative exponents.
				return NewTypeError("unsupported operand type(s) for " + info.symbol)
			}
		}
		f.Push(NewInt(info.intFn(lhs.Int(), rhs.Int())))
		return nil
	}

	handled, exc := f.dunderOp(info.dunder, lhs, rhs)
	if exc != nil {
		return exc
	}
	if handled {
		return nil
	}

	return NewTypeError("unsupported operand type(s) for " + info.symbol)
}

// dunderOp consults the named method on owner and, when present, calls it
// with arg and pushes the result. It reports whether the method existed.
func (f *Frame) dunderOp(name string, owner, arg *Object) (handled bool, exc *Object) {
	fn, unbound, exc := GetMethodAttribute(owner, name)
	if exc != nil {
		return false, exc
	}
	if fn == nil {
		return false, nil
	}

	var res Result
	switch {
	case unbound:
		res = Call(fn, []*Object{arg}, nil, owner)
	case fn.Type == &TypeMethod:
		res = Call(fn, []*Object{arg}, nil, nil)
	default:
		// The attribute exists but is not callable as a method.
		return false, nil
	}

	if !res.OK() {
		return false, res.Exc
	}
	f.Push(res.Value)
	return true, nil
}
