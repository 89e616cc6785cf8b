package runtime

// Callable is the native signature shared by every function pointer the
// runtime invokes. self is nil for plain function calls; for bound
// methods it is the receiver. Positional arguments arrive in args,
// keyword arguments in kwargs.
type Callable func(self *Object, args []*Object, kwargs []Symbol) Result

// Call invokes target as a callable. The dispatch order is:
//
//  1. raw functions are invoked with the caller-supplied self (which may
//     be nil), enabling unbound method calls without copying arguments;
//  2. methods are invoked with their own receiver; supplying an external
//     self for anything but a raw function is a fatal error;
//  3. anything else is called through __call__, resolved on the target's
//     type. Resolving on the type rather than the target keeps A() from
//     recursing through A.__call__ when A is itself a class.
//
// A target with none of these raises a TypeError.
func Call(target *Object, args []*Object, kwargs []Symbol, self *Object) Result {
	if target == nil {
		panic("call of a nil object")
	}

	if target.Type == &TypeFunction {
		return target.Function()(self, args, kwargs)
	}

	if self != nil {
		panic("self parameter supplied for a non-function callable")
	}

	if target.Type == &TypeMethod {
		body, bound := target.Method()
		return body(bound, args, kwargs)
	}

	callAttr, unbound, exc := GetMethodAttribute(target.Type, "__call__")
	if exc != nil {
		return WithException(exc)
	}
	if unbound && callAttr != nil && callAttr.Type == &TypeFunction {
		return Call(callAttr, args, kwargs, target)
	}

	return Raise(&TypeTypeError, "attempted to call a non-callable object")
}
