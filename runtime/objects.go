package runtime

import "fmt"

// Object is the runtime representation of any Python value. The Type
// pointer discriminates the payload: accessing a payload variant that does
// not match the object's type is a fatal error.
type Object struct {
	// Type points at the type object describing this value. It is never
	// nil, and Type.Type is always the `type` type object.
	Type *Object

	payload any
}

// Symbol is a named object. Symbols are the entries of attribute tables
// and of the global and builtin tables.
type Symbol struct {
	Name  string
	Value *Object
}

// SymbolTable is an ordered sequence of named slots with linear lookup.
// Assigning an existing name overwrites it in place; a new name appends.
type SymbolTable struct {
	syms []Symbol
}

// Get returns the value bound to name, or nil if the table has no such
// entry.
func (t *SymbolTable) Get(name string) *Object {
	for i := range t.syms {
		if t.syms[i].Name == name {
			return t.syms[i].Value
		}
	}
	return nil
}

// Set binds name to value, overwriting an existing slot or appending a
// new one.
func (t *SymbolTable) Set(name string, value *Object) {
	for i := range t.syms {
		if t.syms[i].Name == name {
			t.syms[i].Value = value
			return
		}
	}
	t.syms = append(t.syms, Symbol{Name: name, Value: value})
}

// Len returns the number of slots in the table.
func (t *SymbolTable) Len() int {
	return len(t.syms)
}

// TypeData is the payload of every type object.
type TypeData struct {
	// ClassAttributes is the class namespace. Methods and class-level
	// values live here.
	ClassAttributes SymbolTable

	// Base is the parent type. It is nil only for the root type, object.
	Base *Object

	// Intrinsic marks types whose instances carry a fixed payload instead
	// of an instance attribute table.
	Intrinsic bool
}

// methodData pairs a callable body with the receiver it is bound to.
type methodData struct {
	body  Callable
	bound *Object
}

// Static type objects. These are allocated once, at startup, and live
// forever. Every one of them has type `type`.
var (
	TypeObject   Object
	TypeBool     Object
	TypeInt      Object
	TypeFloat    Object
	TypeStr      Object
	TypeTuple    Object
	TypeList     Object
	TypeType     Object
	TypeFunction Object
	TypeMethod   Object
	TypeNoneType Object
)

// Process-wide singletons. Object identity is the defined equality
// predicate for None.
var (
	None  = &Object{}
	True  = &Object{}
	False = &Object{}
)

func (o *Object) mismatch(want string) string {
	return fmt.Sprintf("payload access mismatch: want %s, have %s", want, TypeName(o.Type))
}

// Bool returns the payload of a bool value.
func (o *Object) Bool() bool {
	v, ok := o.payload.(bool)
	if !ok {
		panic(o.mismatch("bool"))
	}
	return v
}

// Int returns the payload of an int value.
func (o *Object) Int() int64 {
	v, ok := o.payload.(int64)
	if !ok {
		panic(o.mismatch("int"))
	}
	return v
}

// Float returns the payload of a float value.
func (o *Object) Float() float64 {
	v, ok := o.payload.(float64)
	if !ok {
		panic(o.mismatch("float"))
	}
	return v
}

// Str returns the payload of a str value.
func (o *Object) Str() string {
	v, ok := o.payload.(string)
	if !ok {
		panic(o.mismatch("str"))
	}
	return v
}

// TypeData returns the payload of a type object.
func (o *Object) TypeData() *TypeData {
	v, ok := o.payload.(*TypeData)
	if !ok {
		panic(o.mismatch("type"))
	}
	return v
}

// Function returns the payload of a function value.
func (o *Object) Function() Callable {
	v, ok := o.payload.(Callable)
	if !ok {
		panic(o.mismatch("function"))
	}
	return v
}

// Method returns the body and receiver of a method value.
func (o *Object) Method() (Callable, *Object) {
	v, ok := o.payload.(methodData)
	if !ok {
		panic(o.mismatch("method"))
	}
	return v.body, v.bound
}

// Items returns the element sequence of a tuple or list value.
func (o *Object) Items() []*Object {
	v, ok := o.payload.([]*Object)
	if !ok {
		panic(o.mismatch("tuple or list"))
	}
	return v
}

// Attrs returns the instance attribute table of a non-intrinsic value.
func (o *Object) Attrs() *SymbolTable {
	v, ok := o.payload.(*SymbolTable)
	if !ok {
		panic(o.mismatch("object with an attribute table"))
	}
	return v
}

// NewInt wraps a native integer in a fresh int value.
func NewInt(x int64) *Object {
	return &Object{Type: &TypeInt, payload: x}
}

// NewFloat wraps a native float in a fresh float value.
func NewFloat(x float64) *Object {
	return &Object{Type: &TypeFloat, payload: x}
}

// NewStr wraps a native string in a fresh str value.
func NewStr(x string) *Object {
	return &Object{Type: &TypeStr, payload: x}
}

// NewFunction wraps a callable in a function value.
func NewFunction(fn Callable) *Object {
	if fn == nil {
		panic("NewFunction: nil callable")
	}
	return &Object{Type: &TypeFunction, payload: fn}
}

// NewMethod creates a method binding fn to the given receiver.
func NewMethod(fn Callable, bound *Object) *Object {
	if fn == nil {
		panic("NewMethod: nil callable")
	}
	if bound == nil {
		panic("NewMethod: nil receiver")
	}
	return &Object{Type: &TypeMethod, payload: methodData{body: fn, bound: bound}}
}

// NewTuple wraps an element sequence in a tuple value.
func NewTuple(items []*Object) *Object {
	return &Object{Type: &TypeTuple, payload: items}
}

// NewList wraps an element sequence in a list value.
func NewList(items []*Object) *Object {
	return &Object{Type: &TypeList, payload: items}
}

// AsBool maps a native boolean to the True or False singleton.
func AsBool(b bool) *Object {
	if b {
		return True
	}
	return False
}

// AllocType allocates an empty, non-intrinsic type object inheriting from
// base.
func AllocType(base *Object) *Object {
	if base == nil {
		panic("AllocType: nil base")
	}
	return &Object{
		Type:    &TypeType,
		payload: &TypeData{Base: base},
	}
}

// AllocObject allocates an empty non-intrinsic value of the given type.
func AllocObject(typ *Object) *Object {
	if typ == nil {
		panic("AllocObject: nil type")
	}
	if typ.Type != &TypeType {
		// The type object has to actually represent a type. This fires
		// when e.g. __new__ is invoked with an int as `cls`.
		panic("AllocObject: type object is not a 'type'")
	}
	return &Object{Type: typ, payload: &SymbolTable{}}
}

// IsInstance reports whether target is an instance of typ, walking the
// base chain of target's type and comparing by identity.
func IsInstance(target, typ *Object) bool {
	if target == nil || typ == nil {
		panic("IsInstance: nil argument")
	}

	current := target.Type
	for current != nil {
		if current.Type != &TypeType {
			panic("IsInstance: malformed type chain")
		}
		if current == typ {
			return true
		}
		current = current.TypeData().Base
	}
	return false
}

// TypeName returns the __name__ of a type object, or a placeholder when
// the type carries none.
func TypeName(typ *Object) string {
	if typ == nil || typ.Type != &TypeType {
		return "<not a type>"
	}
	name := typ.TypeData().ClassAttributes.Get("__name__")
	if name == nil || name.Type != &TypeStr {
		return "<anonymous type>"
	}
	return name.Str()
}

// VerifySelfArg checks that self is an instance of typ, as a fatal
// pre-condition of runtime-provided methods.
func VerifySelfArg(self *Object, typ *Object) {
	if self == nil {
		panic("the 'self' argument was nil")
	}
	if !IsInstance(self, typ) {
		panic("the 'self' argument was of an invalid type")
	}
}

// Stringify calls __str__ on the given object with no parameters and
// returns the native string. Failures along the way degrade to
// placeholder strings rather than propagating; this is the display path
// of last resort.
func Stringify(target *Object) string {
	if target == nil {
		return "<NULL>"
	}
	if target == None {
		return "None"
	}

	method, unbound, exc := GetMethodAttribute(target, "__str__")
	if exc != nil || !unbound || method == nil {
		return "(unknown object)"
	}

	res := Call(method, nil, nil, target)
	if !res.OK() {
		return "<error while stringifying>"
	}
	if res.Value == nil {
		panic("__str__ returned no value")
	}

	if res.Value.Type != &TypeStr {
		return Stringify(res.Value)
	}
	return res.Value.Str()
}
