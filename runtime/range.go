package runtime

// The range class and its iterator, provided by the runtime as ordinary
// classes over the object machinery: instances are plain attribute-table
// objects, the methods are native functions in the class tables.

import "strconv"

var (
	// TypeRange is the `range` class.
	TypeRange Object

	typeRangeIterator Object
)

// rangeIntArg validates one constructor argument of range().
func rangeIntArg(v *Object, pos int) (int64, *Object) {
	if v == nil || v.Type != &TypeInt {
		return 0, NewTypeError("range() argument " + strconv.Itoa(pos) + " must be an int")
	}
	return v.Int(), nil
}

// def range.__init__(self, *args): range(stop) or range(start, stop[, step])
func rangeInit(self *Object, args []*Object, kwargs []Symbol) Result {
	VerifySelfArg(self, &TypeRange)

	if len(args) < 1 || len(args) > 3 {
		return Raise(&TypeTypeError, "range expected 1 to 3 arguments")
	}

	var start, stop, step int64 = 0, 0, 1
	var exc *Object
	switch len(args) {
	case 1:
		stop, exc = rangeIntArg(args[0], 1)
	case 2:
		if start, exc = rangeIntArg(args[0], 1); exc == nil {
			stop, exc = rangeIntArg(args[1], 2)
		}
	case 3:
		if start, exc = rangeIntArg(args[0], 1); exc == nil {
			if stop, exc = rangeIntArg(args[1], 2); exc == nil {
				step, exc = rangeIntArg(args[2], 3)
			}
		}
	}
	if exc != nil {
		return WithException(exc)
	}
	if step == 0 {
		return Raise(&TypeTypeError, "range() arg 3 must not be zero")
	}

	SetAttribute(self, "start", NewInt(start))
	SetAttribute(self, "stop", NewInt(stop))
	SetAttribute(self, "step", NewInt(step))
	return WithResult(None)
}

// rangeField reads one of the int attributes stored by __init__.
func rangeField(self *Object, name string) int64 {
	v, exc := GetAttribute(self, name)
	if exc != nil || v == nil || v.Type != &TypeInt {
		panic("range object is missing its '" + name + "' attribute")
	}
	return v.Int()
}

// def range.__str__(self):
func rangeStr(self *Object, args []*Object, kwargs []Symbol) Result {
	VerifySelfArg(self, &TypeRange)
	s := "range(" + Stringify(NewInt(rangeField(self, "start"))) +
		", " + Stringify(NewInt(rangeField(self, "stop")))
	if step := rangeField(self, "step"); step != 1 {
		s += ", " + Stringify(NewInt(step))
	}
	return WithResult(NewStr(s + ")"))
}

// def range.__iter__(self):
func rangeIter(self *Object, args []*Object, kwargs []Symbol) Result {
	VerifySelfArg(self, &TypeRange)

	it := AllocObject(&typeRangeIterator)
	SetAttribute(it, "index", NewInt(rangeField(self, "start")))
	SetAttribute(it, "stop", NewInt(rangeField(self, "stop")))
	SetAttribute(it, "step", NewInt(rangeField(self, "step")))
	return WithResult(it)
}

// def range_iterator.__iter__(self):
func rangeIteratorIter(self *Object, args []*Object, kwargs []Symbol) Result {
	VerifySelfArg(self, &typeRangeIterator)
	return WithResult(self)
}

// def range_iterator.__next__(self):
func rangeIteratorNext(self *Object, args []*Object, kwargs []Symbol) Result {
	VerifySelfArg(self, &typeRangeIterator)

	index := rangeField(self, "index")
	stop := rangeField(self, "stop")
	step := rangeField(self, "step")

	if (step > 0 && index >= stop) || (step < 0 && index <= stop) {
		res := Call(&TypeStopIteration, nil, nil, nil)
		if !res.OK() {
			return res
		}
		return WithException(res.Value)
	}

	SetAttribute(self, "index", NewInt(index+step))
	return WithResult(NewInt(index))
}

func initRangeTypes() {
	fillType(&TypeRange, "range", &TypeObject, false, []Symbol{
		{Name: "__init__", Value: NewFunction(rangeInit)},
		{Name: "__str__", Value: NewFunction(rangeStr)},
		{Name: "__iter__", Value: NewFunction(rangeIter)},
	})
	fillType(&typeRangeIterator, "range_iterator", &TypeObject, false, []Symbol{
		{Name: "__iter__", Value: NewFunction(rangeIteratorIter)},
		{Name: "__next__", Value: NewFunction(rangeIteratorNext)},
	})
}
