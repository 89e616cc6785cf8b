// Package runtime is the core of the pyton bare-metal Python runtime:
// the object model and the evaluation substrate that transpiled programs
// are lowered against.
//
// Every Python value is an Object tagged by its type pointer. Transpiled
// code manipulates objects exclusively through the opcode primitives on
// Frame, which implement binary operations, comparisons, the iteration
// protocol, attribute access, calls, and exception-handler transfer over
// a per-frame operand stack. Every fallible operation returns a Result
// carrying either a value or a raised exception; nothing is ever thrown
// across the native/Python boundary.
//
// The runtime is single-threaded and never reclaims memory. Objects live
// until reset.
package runtime
