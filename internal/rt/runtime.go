package rt

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Func is the calling convention shared by every runtime entry point.
type Func func(args []Value) (Value, error)

var (
	builtinSet  = builtins()
	constructed = constructors()
)

// IsBuiltin reports whether name is a shading-language built-in function
// provided by the runtime.
func IsBuiltin(name string) bool {
	if name == "print" {
		return true
	}
	_, ok := builtinSet[name]
	return ok
}

// IsOperator reports whether name is an op_* entry point.
func IsOperator(name string) bool {
	_, ok := operators[name]
	return ok
}

// Runtime is the handle generated code reaches through its runtime-access
// name. It is safe for concurrent use once configured.
type Runtime struct {
	// Out receives print output. Nil discards it.
	Out io.Writer
	// OnBreakpoint runs when a program reaches its debug trap. A non-nil
	// error aborts the invocation.
	OnBreakpoint func() error

	funcs map[string]Func
}

// New returns a runtime with the full catalog installed.
func New(out io.Writer) *Runtime {
	r := &Runtime{Out: out}
	r.funcs = make(map[string]Func, len(builtinSet)+len(operators)+len(constructed)+5)
	for _, m := range []map[string]Func{builtinSet, operators, constructed} {
		for k, f := range m {
			r.funcs[k] = f
		}
	}
	r.funcs["print"] = r.print
	r.funcs["get"] = func(args []Value) (Value, error) {
		if len(args) == 0 {
			return nil, errorf(CodeArity, "get", "missing base")
		}
		return Get(args[0], args[1:]...)
	}
	r.funcs["set"] = func(args []Value) (Value, error) {
		if len(args) < 2 {
			return nil, errorf(CodeArity, "set", "expected base and value")
		}
		return Set(args[0], args[1:]...)
	}
	r.funcs["discard"] = func([]Value) (Value, error) { return nil, ErrDiscard }
	r.funcs["breakpoint"] = func([]Value) (Value, error) {
		if r.OnBreakpoint == nil {
			return nil, nil
		}
		return nil, r.OnBreakpoint()
	}
	return r
}

// Lookup returns the entry point called name.
func (r *Runtime) Lookup(name string) (Func, bool) {
	f, ok := r.funcs[name]
	return f, ok
}

// Call invokes name with args.
func (r *Runtime) Call(name string, args ...Value) (Value, error) {
	f, ok := r.funcs[name]
	if !ok {
		return nil, errorf(CodeUnknownFunction, name, "no such runtime function")
	}
	return f(args)
}

// Names lists every entry point in sorted order. Hosts use it to populate
// the runtime object exposed to scripts.
func (r *Runtime) Names() []string {
	out := make([]string, 0, len(r.funcs))
	for k := range r.funcs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (r *Runtime) print(args []Value) (Value, error) {
	if r.Out != nil {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = Format(a)
		}
		if _, err := fmt.Fprintln(r.Out, strings.Join(parts, " ")); err != nil {
			return nil, err
		}
	}
	if len(args) == 0 {
		return nil, nil
	}
	return args[0], nil
}
