package runtime

import "strconv"

// Runtime-provided methods for the intrinsic types, and the machinery
// that assembles the static type objects at startup.

// fillType initializes a statically allocated type object in place.
func fillType(t *Object, name string, base *Object, intrinsic bool, methods []Symbol) {
	td := &TypeData{Base: base, Intrinsic: intrinsic}
	td.ClassAttributes.Set("__name__", NewStr(name))
	for _, m := range methods {
		td.ClassAttributes.Set(m.Name, m.Value)
	}
	t.Type = &TypeType
	t.payload = td
}

// def object.__new__(cls):
func objectNew(self *Object, args []*Object, kwargs []Symbol) Result {
	if self == nil {
		panic("object.__new__: nil cls")
	}
	// Reaching the default __new__ means nobody overrode it, so the new
	// instance is simply an empty object of the requested class.
	return WithResult(AllocObject(self))
}

// def object.__init__(...):
func objectInit(self *Object, args []*Object, kwargs []Symbol) Result {
	// The default __init__ is a no-op.
	return WithResult(None)
}

// def object.__str__(self):
func objectStr(self *Object, args []*Object, kwargs []Symbol) Result {
	if self == nil {
		panic("object.__str__: nil self")
	}

	name, exc := GetAttribute(self, "__name__")
	if exc != nil {
		return WithException(exc)
	}
	if name == nil || name.Type != &TypeStr {
		return WithResult(NewStr("<unknown object>"))
	}

	return WithResult(NewStr("<" + name.Str() + " object>"))
}

// def bool.__str__(self):
func boolStr(self *Object, args []*Object, kwargs []Symbol) Result {
	VerifySelfArg(self, &TypeBool)
	if self.Bool() {
		return WithResult(NewStr("True"))
	}
	return WithResult(NewStr("False"))
}

// def int.__str__(self):
func intStr(self *Object, args []*Object, kwargs []Symbol) Result {
	VerifySelfArg(self, &TypeInt)
	return WithResult(NewStr(strconv.FormatInt(self.Int(), 10)))
}

// def float.__str__(self):
func floatStr(self *Object, args []*Object, kwargs []Symbol) Result {
	VerifySelfArg(self, &TypeFloat)
	return WithResult(NewStr(strconv.FormatFloat(self.Float(), 'g', -1, 64)))
}

// def NoneType.__str__(self):
func noneStr(self *Object, args []*Object, kwargs []Symbol) Result {
	return WithResult(NewStr("None"))
}

// def str.__str__(self):
func strStr(self *Object, args []*Object, kwargs []Symbol) Result {
	VerifySelfArg(self, &TypeStr)
	return WithResult(self)
}

// def str.__new__(cls, value):
func strNew(self *Object, args []*Object, kwargs []Symbol) Result {
	if len(args) != 1 {
		panic("expected exactly one argument to str(...)")
	}

	value := args[0]
	method, unbound, exc := GetMethodAttribute(value, "__str__")
	if exc != nil {
		return WithException(exc)
	}
	if !unbound || method == nil || method.Type != &TypeFunction {
		return WithResult(NewStr("<object>"))
	}

	return Call(method, nil, nil, value)
}

// def type.__call__(cls, *args):
func typeCall(self *Object, args []*Object, kwargs []Symbol) Result {
	if self == nil {
		panic("type.__call__: nil cls")
	}

	// Calling a type object creates an instance of it: with `class A:
	// pass`, doing A() ends up here with self == A. First resolve
	// __new__ through the class's inheritance chain; in most cases that
	// is the default implementation on object, which gives an
	// uninitialized empty instance.
	methodNew, unbound, exc := GetMethodAttribute(self, "__new__")
	if exc != nil {
		return WithException(exc)
	}
	if !unbound || methodNew == nil {
		panic("type has no __new__")
	}

	// __new__ is a class method; the first argument is the class.
	res := Call(methodNew, args, kwargs, self)
	if !res.OK() {
		return res
	}
	obj := res.Value
	if obj == nil {
		panic("__new__ returned no value")
	}

	// If __new__ did not return an instance of cls, __init__ is not
	// invoked on it.
	if obj.Type == self {
		methodInit, unbound, exc := GetMethodAttribute(obj, "__init__")
		if exc != nil {
			return WithException(exc)
		}
		if !unbound || methodInit == nil {
			panic("instance has no __init__")
		}

		// The constructor arguments are forwarded, so A(a, b) runs
		// A.__init__(obj, a, b). A failing __init__ aborts construction.
		initRes := Call(methodInit, args, kwargs, obj)
		if !initRes.OK() {
			return initRes
		}
	}

	return WithResult(obj)
}

// def function.__get__(self, instance, owner):
func functionGet(self *Object, args []*Object, kwargs []Symbol) Result {
	// __get__ on a function binds it to the given instance; owner is
	// ignored.
	if self == nil {
		panic("function.__get__: nil self")
	}
	if self.Type != &TypeFunction {
		return Raise(&TypeTypeError, "expected a function as 'instance' in function.__get__")
	}
	if len(args) == 0 {
		return Raise(&TypeTypeError, "expected an 'instance' argument for function.__get__")
	}
	if len(args) > 2 {
		return Raise(&TypeTypeError, "too many arguments for function.__get__")
	}

	instance := args[0]
	if instance == nil {
		panic("function.__get__: nil instance")
	}
	return WithResult(NewMethod(self.Function(), instance))
}

// initCoreTypes wires up the static type objects and singletons. The base
// chain of every type terminates at object, so instances of the intrinsic
// types still reach the default object methods.
func initCoreTypes() {
	fillType(&TypeObject, "object", nil, false, []Symbol{
		{Name: "__new__", Value: NewFunction(objectNew)},
		{Name: "__init__", Value: NewFunction(objectInit)},
		{Name: "__str__", Value: NewFunction(objectStr)},
	})
	fillType(&TypeBool, "bool", &TypeObject, true, []Symbol{
		{Name: "__str__", Value: NewFunction(boolStr)},
	})
	fillType(&TypeInt, "int", &TypeObject, true, []Symbol{
		{Name: "__str__", Value: NewFunction(intStr)},
	})
	fillType(&TypeFloat, "float", &TypeObject, true, []Symbol{
		{Name: "__str__", Value: NewFunction(floatStr)},
	})
	fillType(&TypeStr, "str", &TypeObject, true, []Symbol{
		{Name: "__str__", Value: NewFunction(strStr)},
		{Name: "__new__", Value: NewFunction(strNew)},
	})
	fillType(&TypeTuple, "tuple", &TypeObject, true, nil)
	fillType(&TypeList, "list", &TypeObject, true, nil)
	fillType(&TypeType, "type", &TypeObject, true, []Symbol{
		{Name: "__call__", Value: NewFunction(typeCall)},
	})
	fillType(&TypeMethod, "method", &TypeObject, true, nil)
	fillType(&TypeFunction, "function", &TypeObject, true, []Symbol{
		{Name: "__get__", Value: NewFunction(functionGet)},
	})
	fillType(&TypeNoneType, "NoneType", &TypeObject, true, []Symbol{
		{Name: "__str__", Value: NewFunction(noneStr)},
	})

	None.Type = &TypeNoneType
	True.Type = &TypeBool
	True.payload = true
	False.Type = &TypeBool
	False.payload = false
}
