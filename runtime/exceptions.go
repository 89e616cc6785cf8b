package runtime

// Result is the return discipline of every fallible operation: either a
// successful value or a raised exception, never both. A nil Value with a
// nil Exc is legal and distinct from returning None.
type Result struct {
	Value *Object
	Exc   *Object
}

// WithResult wraps a successful value.
func WithResult(v *Object) Result {
	return Result{Value: v}
}

// WithException wraps a raised exception.
func WithException(exc *Object) Result {
	if exc == nil {
		panic("WithException: nil exception")
	}
	return Result{Exc: exc}
}

// OK reports whether the result carries no exception.
func (r Result) OK() bool {
	return r.Exc == nil
}

// Exception type objects. BaseException is the root of the hierarchy;
// raising anything not assignable to it is a TypeError.
var (
	TypeBaseException Object
	TypeException     Object
	TypeStopIteration Object
	TypeTypeError     Object
)

// NewException instantiates the given exception type with a single string
// argument, as `typ(msg)` would.
func NewException(typ *Object, msg string) *Object {
	res := Call(typ, []*Object{NewStr(msg)}, nil, nil)
	if !res.OK() {
		panic("failed to construct an exception: " + Stringify(res.Exc))
	}
	return res.Value
}

// NewTypeError returns a fresh TypeError with the given message.
func NewTypeError(msg string) *Object {
	return NewException(&TypeTypeError, msg)
}

// Raise builds an exception of the given type and wraps it in a Result.
func Raise(typ *Object, msg string) Result {
	return WithException(NewException(typ, msg))
}

// CoerceException coerces an arbitrary raised value to an exception
// instance. It accepts:
//   - an instance of BaseException (returned as-is),
//   - a type assignable to BaseException (called with no arguments).
//
// Anything else produces a TypeError.
func CoerceException(from *Object) *Object {
	if from == nil {
		panic("CoerceException: nil value")
	}

	if from.Type == &TypeType {
		current := from
		for current != nil {
			if current.Type != &TypeType {
				panic("CoerceException: malformed type chain")
			}
			if current == &TypeBaseException {
				// A bare exception type was raised, as in `raise
				// StopIteration`. Calling it with no arguments gives the
				// instance to propagate.
				res := Call(from, nil, nil, nil)
				if !res.OK() {
					return res.Exc
				}
				if res.Value == nil {
					panic("exception constructor returned no value")
				}
				return res.Value
			}
			current = current.TypeData().Base
		}

		// A type, but not one that inherits from BaseException.
		return NewTypeError("exceptions must derive from BaseException")
	}

	if IsInstance(from, &TypeBaseException) {
		return from
	}

	return NewTypeError("exceptions must derive from BaseException")
}

// baseExceptionInit implements BaseException.__init__, accepting at most
// one positional argument and storing it as the msg attribute.
func baseExceptionInit(self *Object, args []*Object, kwargs []Symbol) Result {
	if len(args) > 1 {
		return Raise(&TypeException, "exceptions accept at most one argument")
	}
	if self == nil {
		panic("BaseException.__init__: nil self")
	}
	if len(args) == 1 {
		SetAttribute(self, "msg", args[0])
	}
	return WithResult(None)
}

// baseExceptionStr implements BaseException.__str__: the msg attribute if
// one was given, the type's __name__ otherwise.
func baseExceptionStr(self *Object, args []*Object, kwargs []Symbol) Result {
	if self == nil {
		panic("BaseException.__str__: nil self")
	}

	msg, exc := GetAttribute(self, "msg")
	if exc != nil {
		return WithException(exc)
	}

	if msg == nil {
		// Raised without a message, e.g. `raise StopIteration()`.
		msg, exc = GetAttribute(self, "__name__")
		if exc != nil {
			return WithException(exc)
		}
		if msg == nil {
			panic("exception type carries no __name__")
		}
	}

	return WithResult(msg)
}

func initExceptionTypes() {
	fillType(&TypeBaseException, "BaseException", &TypeObject, false, []Symbol{
		{Name: "__init__", Value: NewFunction(baseExceptionInit)},
		{Name: "__str__", Value: NewFunction(baseExceptionStr)},
	})
	fillType(&TypeException, "Exception", &TypeBaseException, false, nil)
	fillType(&TypeStopIteration, "StopIteration", &TypeException, false, nil)
	fillType(&TypeTypeError, "TypeError", &TypeException, false, nil)
}
