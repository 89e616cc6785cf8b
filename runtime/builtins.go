package runtime

import "strconv"

// Built-in functions and the known-global registry. The transpiler emits
// name references by symbol; ResolveSymbol realizes them against the
// locals table it is handed, then program globals, then the builtins.

var (
	builtinTable SymbolTable
	globalTable  SymbolTable
)

// RegisterGlobal binds a program-level global. Transpiled module
// initializers and embedders use this for module-scope names.
func RegisterGlobal(name string, v *Object) {
	globalTable.Set(name, v)
}

// ResolveSymbol resolves a name against locals (which may be nil), then
// the program globals, then the builtins. It returns nil when the name is
// bound nowhere.
func ResolveSymbol(name string, locals *SymbolTable) *Object {
	if locals != nil {
		if v := locals.Get(name); v != nil {
			return v
		}
	}
	if v := globalTable.Get(name); v != nil {
		return v
	}
	return builtinTable.Get(name)
}

// def print(*args):
func builtinPrint(self *Object, args []*Object, kwargs []Symbol) Result {
	term := requireConsole()

	if len(args) == 0 {
		term.Newline()
		return WithResult(None)
	}

	line := ""
	for i, arg := range args {
		if i > 0 {
			line += " "
		}
		line += Stringify(arg)
	}
	term.Println(line)
	return WithResult(None)
}

// def __build_class__(func, name, base=object):
func builtinBuildClass(self *Object, args []*Object, kwargs []Symbol) Result {
	//   class C(A):
	//      ...
	// translates into:
	//   C = __build_class__(<func>, 'C', A)

	if len(args) < 2 {
		return Raise(&TypeTypeError, "__build_class__ accepts at least two arguments")
	}
	if len(args) > 3 {
		return Raise(&TypeTypeError, "multiple inheritance not yet supported")
	}

	body := args[0]
	name := args[1]
	base := &TypeObject
	if len(args) == 3 {
		base = args[2]
	}

	if body == nil || name == nil {
		panic("__build_class__: nil argument")
	}
	if body.Type != &TypeFunction {
		return Raise(&TypeTypeError, "__build_class__: func must be a function")
	}
	if name.Type != &TypeStr {
		return Raise(&TypeTypeError, "__build_class__: name must be a string")
	}

	// Class bodies are special-cased by the transpiler: every local
	// binding inside one is emitted as an attribute assignment on a
	// hidden self parameter, so running the body against the fresh type
	// object populates its class attribute table.
	typ := AllocType(base)
	SetAttribute(typ, "__name__", name)

	res := Call(body, nil, nil, typ)
	if !res.OK() {
		// The body's return value is irrelevant, its exception is not.
		return res
	}

	return WithResult(typ)
}

// def isinstance(obj, cls):
func builtinIsInstance(self *Object, args []*Object, kwargs []Symbol) Result {
	if len(args) != 2 {
		return Raise(&TypeTypeError, "isinstance expected 2 arguments, got "+strconv.Itoa(len(args)))
	}
	if args[1] == nil || args[1].Type != &TypeType {
		return Raise(&TypeTypeError, "isinstance() arg 2 must be a type")
	}
	return WithResult(AsBool(IsInstance(args[0], args[1])))
}

// def iter(obj):
func builtinIter(self *Object, args []*Object, kwargs []Symbol) Result {
	if len(args) != 1 {
		return Raise(&TypeTypeError, "iter expected 1 argument, got "+strconv.Itoa(len(args)))
	}

	obj := args[0]
	iterMethod, unbound, exc := GetMethodAttribute(obj, "__iter__")
	if exc != nil {
		return WithException(exc)
	}
	if !unbound || iterMethod == nil {
		return Raise(&TypeTypeError, "type is not iterable")
	}
	return Call(iterMethod, nil, nil, obj)
}

func initBuiltins() {
	for _, sym := range []Symbol{
		{Name: "print", Value: NewFunction(builtinPrint)},
		{Name: "__build_class__", Value: NewFunction(builtinBuildClass)},
		{Name: "isinstance", Value: NewFunction(builtinIsInstance)},
		{Name: "iter", Value: NewFunction(builtinIter)},

		{Name: "object", Value: &TypeObject},
		{Name: "bool", Value: &TypeBool},
		{Name: "int", Value: &TypeInt},
		{Name: "float", Value: &TypeFloat},
		{Name: "str", Value: &TypeStr},
		{Name: "tuple", Value: &TypeTuple},
		{Name: "list", Value: &TypeList},
		{Name: "type", Value: &TypeType},
		{Name: "range", Value: &TypeRange},

		{Name: "BaseException", Value: &TypeBaseException},
		{Name: "Exception", Value: &TypeException},
		{Name: "StopIteration", Value: &TypeStopIteration},
		{Name: "TypeError", Value: &TypeTypeError},

		{Name: "None", Value: None},
		{Name: "True", Value: True},
		{Name: "False", Value: False},
	} {
		builtinTable.Set(sym.Name, sym.Value)
	}
}
