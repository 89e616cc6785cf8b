package runtime

// Attribute resolution. Lookups scan the instance attribute table first
// (when the value has one), then walk the class attribute tables up the
// base chain. Values found in a class table go through the descriptor
// protocol unless the unbound-method fast path is engaged.

// getClassAttribute looks name up in the class attribute table of typ,
// going only one level deep. target should be assignable to typ. The
// returned unbound flag is set only when the fast path skipped binding.
func getClassAttribute(target, typ *Object, name string, unboundMethods bool) (value *Object, unbound bool, exc *Object) {
	if typ.Type != &TypeType {
		panic("getClassAttribute: not a type object")
	}

	attr := typ.TypeData().ClassAttributes.Get(name)
	if attr == nil {
		return nil, false, nil
	}

	// If the attribute has a __get__ method we invoke it, which is what
	// implements descriptors. For a plain function in a class table this
	// resolves to function.__get__, which binds the function to the
	// target and yields a method.
	//
	// We skip that dance when unboundMethods is set and the attribute is
	// a function: __get__ on a function is known to only allocate a
	// bound method, and the caller asked us not to.
	if unboundMethods && attr.Type == &TypeFunction {
		return attr, true, nil
	}

	getter, getterUnbound, exc := GetMethodAttribute(attr, "__get__")
	if exc != nil {
		return nil, false, exc
	}
	if getter != nil {
		if getterUnbound && getter.Type == &TypeFunction {
			// One level of descriptor descent: materialize the bound
			// __get__ instead of recursing further.
			getter = NewMethod(getter.Function(), attr)
		}
		if getter.Type == &TypeMethod {
			res := Call(getter, []*Object{target, typ}, nil, nil)
			if !res.OK() {
				return nil, false, res.Exc
			}
			return res.Value, false, nil
		}
	}

	return attr, false, nil
}

// getAttributeArbitrary is the shared attribute lookup. A nil value with a
// nil exception means the attribute does not exist.
func getAttributeArbitrary(target *Object, name string, unboundMethods bool) (value *Object, unbound bool, exc *Object) {
	if target == nil {
		panic("attribute lookup on nil object")
	}
	if name == "" {
		panic("attribute lookup with an empty name")
	}

	// Instance attribute table first, when the value has one. Entries
	// found here are returned verbatim: the descriptor protocol does not
	// apply to what would be __dict__ in regular Python, only to class
	// namespaces.
	if !target.Type.TypeData().Intrinsic {
		if v := target.Attrs().Get(name); v != nil {
			return v, false, nil
		}
	}

	// Walk the class attribute tables. When the target is itself a type,
	// the walk starts at the target, so that B.attr resolves through B's
	// whole inheritance chain; otherwise it starts at the target's type.
	current := target
	if target.Type != &TypeType {
		current = target.Type
	}

	for current != nil {
		v, isUnbound, exc := getClassAttribute(target, current, name, unboundMethods)
		if exc != nil {
			return nil, false, exc
		}
		if v != nil {
			return v, isUnbound, nil
		}
		current = current.TypeData().Base
	}

	return nil, false, nil
}

// GetAttribute resolves an attribute with full descriptor semantics. It
// returns (nil, nil) when no such attribute exists.
func GetAttribute(target *Object, name string) (*Object, *Object) {
	v, _, exc := getAttributeArbitrary(target, name, false)
	return v, exc
}

// GetMethodAttribute resolves an attribute with the unbound fast path:
// functions found in class tables are returned raw, flagged unbound,
// without allocating a method object. This backs the method-call opcode.
func GetMethodAttribute(target *Object, name string) (value *Object, unbound bool, exc *Object) {
	return getAttributeArbitrary(target, name, true)
}

// SetAttribute binds an attribute on the target. Assigning to a type
// writes into its class attribute table; assigning to any other intrinsic
// value is a fatal error.
func SetAttribute(target *Object, name string, value *Object) {
	if target == nil {
		panic("attribute assignment on nil object")
	}
	if value == nil {
		panic("attribute assignment with nil value")
	}
	if name == "" {
		panic("attribute assignment with an empty name")
	}

	var table *SymbolTable
	switch {
	case target.Type == &TypeType:
		// Assigning to a type object mutates its class namespace, so
		// `C.attr = 123` is visible to every instance of C.
		table = &target.TypeData().ClassAttributes
	case target.Type.TypeData().Intrinsic:
		panic("attribute assignment on a value of an immutable type")
	default:
		table = target.Attrs()
	}

	table.Set(name, value)
}
