package runtime

// Opcode primitives over the frame's operand stack. Each one pops its
// operands and pushes its result on success; a non-nil return is a raised
// exception for the emitted code to route to its handler (or to return).

// CallOp performs a CALL with argc positional arguments. The stack
// carries, from the bottom up: the callable, the self slot (nil for plain
// calls), and the arguments.
func (f *Frame) CallOp(argc int) *Object {
	argv := make([]*Object, argc)
	for i := argc - 1; i >= 0; i-- {
		argv[i] = f.Pop()
	}
	self := f.Pop()
	callable := f.Pop()

	res := Call(callable, argv, nil, self)
	if !res.OK() {
		return res.Exc
	}
	f.Push(res.Value)
	return nil
}

// LoadAttr replaces the top of the stack with the named attribute of it.
// A missing attribute is fatal.
func (f *Frame) LoadAttr(name string) *Object {
	owner := f.Peek()
	attr, exc := GetAttribute(owner, name)
	if exc != nil {
		return exc
	}
	if attr == nil {
		panic("no attribute named '" + name + "' on object of type '" + TypeName(owner.Type) + "'")
	}
	f.setItem(1, attr)
	return nil
}

// LoadAttrCallable pops the owner and pushes two slots describing the
// named attribute as a call target, in the layout CallOp expects: the
// callable first, then the self slot on top. The self slot holds the owner
// when the name resolves to an unbound function through the method fast
// path, and nil otherwise.
func (f *Frame) LoadAttrCallable(name string) *Object {
	owner := f.Pop()
	attr, unbound, exc := GetMethodAttribute(owner, name)
	if exc != nil {
		return exc
	}
	f.Push(attr)
	if unbound {
		f.Push(owner)
	} else {
		f.Push(nil)
	}
	return nil
}

// StoreAttr pops the owner, pops a value, and assigns the named attribute
// on the owner.
func (f *Frame) StoreAttr(name string) {
	owner := f.Pop()
	value := f.Pop()
	SetAttribute(owner, name, value)
}

// GetIter replaces the top of the stack with iter(top), resolving
// __iter__ on it.
func (f *Frame) GetIter() *Object {
	obj := f.Pop()

	iterMethod, unbound, exc := GetMethodAttribute(obj, "__iter__")
	if exc != nil {
		return exc
	}
	if !unbound || iterMethod == nil {
		return NewTypeError("type is not iterable")
	}

	res := Call(iterMethod, nil, nil, obj)
	if !res.OK() {
		return res.Exc
	}
	f.Push(res.Value)
	return nil
}

// ForIter calls __next__ on the iterator at the top of the stack without
// popping it. A yielded value is pushed and exhausted is false. When the
// iterator raises StopIteration, exhausted is true and the stack is left
// unchanged; the emitted code jumps past the loop, where the iterator is
// popped. Any other exception propagates.
func (f *Frame) ForIter() (exhausted bool, exc *Object) {
	iter := f.Peek()

	next, unbound, exc := GetMethodAttribute(iter, "__next__")
	if exc != nil {
		return false, exc
	}
	if !unbound || next == nil {
		return false, NewTypeError("iterator is missing __next__")
	}

	res := Call(next, nil, nil, iter)
	if !res.OK() {
		if IsInstance(res.Exc, &TypeStopIteration) {
			return true, nil
		}
		return false, res.Exc
	}

	f.Push(res.Value)
	return false, nil
}

// LoadNameClass pushes the value of a name referenced inside a class
// body: locals of class bodies live in the new type's attribute table
// (reached through the hidden self argument), falling back to globals and
// builtins. An unresolvable name is fatal.
func (f *Frame) LoadNameClass(self *Object, name string) *Object {
	v, exc := GetAttribute(self, name)
	if exc != nil {
		return exc
	}
	if v == nil {
		v = ResolveSymbol(name, nil)
	}
	if v == nil {
		panic("unresolved name '" + name + "' in class body")
	}
	f.Push(v)
	return nil
}

// ModuleState is the one-shot initialization guard of a transpiled
// module. The module function's prologue consults Begin and returns
// immediately when the module already ran.
type ModuleState struct {
	initialized bool
}

// Begin reports whether the module was already initialized, and marks it
// initialized either way.
func (s *ModuleState) Begin() bool {
	was := s.initialized
	s.initialized = true
	return was
}
