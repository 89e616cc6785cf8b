package runtime

import (
	"github.com/ascpixi/pyton/sys/boot"
	"github.com/ascpixi/pyton/sys/mm"
	"github.com/ascpixi/pyton/sys/terminal"
)

// Version is the runtime version reported in the boot banner.
const Version = "0.0.1"

// Console is the line-oriented output surface the runtime needs from the
// terminal. print and the uncaught-exception handler write through it.
type Console interface {
	Println(s string)
	Newline()
}

var console Console

func init() {
	initCoreTypes()
	initExceptionTypes()
	initRangeTypes()
	initBuiltins()
}

// SetConsole replaces the output console. Boot installs the framebuffer
// terminal; tests install fakes.
func SetConsole(c Console) {
	console = c
}

func requireConsole() Console {
	if console == nil {
		panic("runtime console not initialized; call Boot first")
	}
	return console
}

// Boot brings the runtime up from the bootloader handoff: the page
// allocator is initialized from the memory map, the terminal from the
// framebuffer descriptor, and the boot banner is printed. The returned
// terminal is also installed as the runtime console.
func Boot(info *boot.Info) *terminal.Terminal {
	mm.Init(info)

	term := terminal.NewFromFramebuffer(&info.Framebuffer)
	console = term

	term.Println("Pyton " + Version + " on bare metal")
	term.Println("All systems nominal")

	return term
}

// Run invokes the transpiled program entry point. An unhandled exception
// is stringified and displayed; Run reports whether the program finished
// cleanly. The hosted entry in cmd/pyton exits with a non-zero status when
// it did not.
func Run(entry Callable) bool {
	res := entry(nil, nil, nil)
	if !res.OK() {
		term := requireConsole()
		term.Println("Uncaught exception:")
		term.Println(Stringify(res.Exc))
		return false
	}
	return true
}

// Halt parks the calling goroutine forever. On bare metal this is the
// post-main resting state; cmd/pyton does not call it.
func Halt() {
	select {}
}
