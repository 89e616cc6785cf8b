// Command pyton boots the runtime against a simulated bootloader handoff
// and runs a sample transpiled program. The program below is written in
// the exact shape the transpiler emits: a frame per function, opcode
// primitives over the operand stack, and label-based exception transfer.
//
// The Python source it was lowered from:
//
//	class Greeter:
//	    def __init__(self, name):
//	        self.name = name
//	    def __str__(self):
//	        return self.name
//
//	g = Greeter("hello from bare metal")
//	print(str(g))
//
//	total = 0
//	for i in range(1, 6):
//	    total = total + i
//	print(total)
//
//	try:
//	    raise Exception("caught!")
//	except Exception as e:
//	    print(str(e))
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/ascpixi/pyton/runtime"
	"github.com/ascpixi/pyton/sys/boot"
	"github.com/ascpixi/pyton/sys/terminal"
)

// def __init__(self, name): self.name = name
func greeterInit(self *runtime.Object, args []*runtime.Object, kwargs []runtime.Symbol) runtime.Result {
	f := runtime.NewFrame(4)

	f.Push(args[0])
	f.Push(self)
	f.StoreAttr("name")

	return runtime.WithResult(runtime.None)
}

// def __str__(self): return self.name
func greeterStr(self *runtime.Object, args []*runtime.Object, kwargs []runtime.Symbol) runtime.Result {
	f := runtime.NewFrame(4)

	f.Push(self)
	if exc := f.LoadAttr("name"); exc != nil {
		return runtime.WithException(exc)
	}
	return runtime.WithResult(f.Pop())
}

// Class body of Greeter. The new type object arrives as the hidden self
// parameter; local bindings inside the body become attribute stores on it.
func greeterClassBody(self *runtime.Object, args []*runtime.Object, kwargs []runtime.Symbol) runtime.Result {
	f := runtime.NewFrame(4)

	f.Push(runtime.NewFunction(greeterInit))
	f.Push(self)
	f.StoreAttr("__init__")

	f.Push(runtime.NewFunction(greeterStr))
	f.Push(self)
	f.StoreAttr("__str__")

	return runtime.WithResult(runtime.None)
}

var progState runtime.ModuleState

// progMain is the transpiled '<module>' function.
func progMain(self *runtime.Object, args []*runtime.Object, kwargs []runtime.Symbol) runtime.Result {
	if progState.Begin() {
		return runtime.WithResult(runtime.None)
	}

	f := runtime.NewFrame(16)
	var exc *runtime.Object
	var exhausted bool
	var greeter, g, total, i, e *runtime.Object

	// Greeter = __build_class__(<class body>, 'Greeter')
	f.Push(runtime.ResolveSymbol("__build_class__", nil))
	f.Push(nil)
	f.Push(runtime.NewFunction(greeterClassBody))
	f.Push(runtime.NewStr("Greeter"))
	if exc = f.CallOp(2); exc != nil {
		return runtime.WithException(exc)
	}
	greeter = f.Pop()
	runtime.RegisterGlobal("Greeter", greeter)

	// g = Greeter("hello from bare metal")
	f.Push(greeter)
	f.Push(nil)
	f.Push(runtime.NewStr("hello from bare metal"))
	if exc = f.CallOp(1); exc != nil {
		return runtime.WithException(exc)
	}
	g = f.Pop()

	// print(str(g))
	f.Push(runtime.ResolveSymbol("print", nil))
	f.Push(nil)
	f.Push(runtime.ResolveSymbol("str", nil))
	f.Push(nil)
	f.Push(g)
	if exc = f.CallOp(1); exc != nil {
		return runtime.WithException(exc)
	}
	if exc = f.CallOp(1); exc != nil {
		return runtime.WithException(exc)
	}
	f.Pop()

	// total = 0
	total = runtime.NewInt(0)

	// for i in range(1, 6): total = total + i
	f.Push(runtime.ResolveSymbol("range", nil))
	f.Push(nil)
	f.Push(runtime.NewInt(1))
	f.Push(runtime.NewInt(6))
	if exc = f.CallOp(2); exc != nil {
		return runtime.WithException(exc)
	}
	if exc = f.GetIter(); exc != nil {
		return runtime.WithException(exc)
	}
loopHead:
	exhausted, exc = f.ForIter()
	if exc != nil {
		return runtime.WithException(exc)
	}
	if exhausted {
		goto loopEnd
	}
	i = f.Pop()
	f.Push(total)
	f.Push(i)
	if exc = f.BinaryOp(runtime.OpAdd); exc != nil {
		return runtime.WithException(exc)
	}
	total = f.Pop()
	goto loopHead
loopEnd:
	f.Pop()

	// print(total)
	f.Push(runtime.ResolveSymbol("print", nil))
	f.Push(nil)
	f.Push(total)
	if exc = f.CallOp(1); exc != nil {
		return runtime.WithException(exc)
	}
	f.Pop()

	// try: raise Exception("caught!")
	f.Push(runtime.ResolveSymbol("Exception", nil))
	f.Push(nil)
	f.Push(runtime.NewStr("caught!"))
	if exc = f.CallOp(1); exc != nil {
		f.Catch(exc, 0, -1)
		goto handler
	}
	f.Catch(f.Pop(), 0, -1)
	goto handler

	// except Exception as e: print(str(e))
handler:
	f.Push(runtime.ResolveSymbol("Exception", nil))
	f.CheckExcMatch()
	if f.PopJumpIfFalse() {
		goto reraise
	}
	e = f.Pop()
	f.Push(runtime.ResolveSymbol("print", nil))
	f.Push(nil)
	f.Push(runtime.ResolveSymbol("str", nil))
	f.Push(nil)
	f.Push(e)
	if exc = f.CallOp(1); exc != nil {
		return runtime.WithException(exc)
	}
	if exc = f.CallOp(1); exc != nil {
		return runtime.WithException(exc)
	}
	f.Pop()
	goto done

reraise:
	return runtime.WithException(f.Pop())

done:
	return runtime.WithResult(runtime.None)
}

func main() {
	memMB := flag.Int("mem", 16, "size of the simulated usable memory region, in MiB")
	flag.Parse()

	// Size the simulated framebuffer from the real window when stdout is
	// a terminal, so the cell grid matches what the user sees.
	width, height := 1024, 768
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if cols, rows, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = cols * terminal.GlyphWidth
			height = rows * terminal.GlyphHeight
		}
	}
	pitch := width * 4

	info := &boot.Info{
		HHDMOffset: 0xffff_8000_0000_0000,
		MemoryMap: []boot.MemoryRegion{
			{Base: 0x100000, Length: uint64(*memMB) << 20, Usable: true},
		},
		Framebuffer: boot.Framebuffer{
			Buffer: make([]byte, pitch*height),
			Width:  width,
			Height: height,
			Pitch:  pitch,
			BPP:    32,
		},
	}

	t := runtime.Boot(info)

	// Replay the boot banner to the host terminal, then mirror everything
	// the program prints.
	for _, line := range t.Snapshot() {
		fmt.Println(line)
	}
	t.SetMirror(os.Stdout)

	if !runtime.Run(progMain) {
		os.Exit(1)
	}
}
