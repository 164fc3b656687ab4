// Package jshost runs JavaScript-style generated code on goja.
package jshost

import (
	"fmt"

	"github.com/dop251/goja"

	"glslgen/internal/codegen"
	"glslgen/internal/env"
	"glslgen/internal/host"
	"glslgen/internal/rt"
)

// Materializer compiles JavaScript-style source.
type Materializer struct{}

func New() *Materializer { return &Materializer{} }

func (*Materializer) Engine() string { return "goja" }

// Materialize compiles source as a function expression and checks that it
// evaluates to a function.
func (m *Materializer) Materialize(name, source string) (host.Program, error) {
	prog, err := goja.Compile(name, "("+source+")", false)
	if err != nil {
		return nil, &host.CompileError{Engine: m.Engine(), Name: name, Err: err}
	}
	v, err := goja.New().RunProgram(prog)
	if err != nil {
		return nil, &host.CompileError{Engine: m.Engine(), Name: name, Err: err}
	}
	if _, ok := goja.AssertFunction(v); !ok {
		return nil, &host.CompileError{Engine: m.Engine(), Name: name, Err: fmt.Errorf("source evaluates to %s, not a function", v)}
	}
	return &program{name: name, source: source, prog: prog}, nil
}

type program struct {
	name   string
	source string
	prog   *goja.Program
}

func (p *program) Source() string { return p.source }

func (p *program) Run(r *rt.Runtime, e env.Environment) error {
	vm := goja.New()
	v, err := vm.RunProgram(p.prog)
	if err != nil {
		return err
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return fmt.Errorf("%s: not a function", p.name)
	}
	b := binder{vm: vm}
	glsl := vm.NewObject()
	if err := glsl.Set("Runtime", b.runtime(r)); err != nil {
		return err
	}
	_, err = fn(goja.Undefined(), glsl, b.environment(e))
	return host.RunError(err)
}

// binder converts between engine values and runtime values for one vm.
type binder struct {
	vm *goja.Runtime
}

func (b binder) runtime(r *rt.Runtime) *goja.Object {
	obj := b.vm.NewObject()
	for _, name := range r.Names() {
		f, _ := r.Lookup(name)
		// Set only fails on frozen objects.
		_ = obj.Set(codegen.JavaScript.Member(name), b.native(f))
	}
	return obj
}

func (b binder) environment(e env.Environment) *goja.Object {
	obj := b.vm.NewObject()
	_ = obj.Set("get", func(call goja.FunctionCall) goja.Value {
		v, err := e.Get(call.Argument(0).String())
		if err != nil {
			panic(b.vm.NewGoError(err))
		}
		return b.toJS(v)
	})
	_ = obj.Set("set", func(call goja.FunctionCall) goja.Value {
		if err := e.Set(call.Argument(0).String(), b.toGo(call.Argument(1))); err != nil {
			panic(b.vm.NewGoError(err))
		}
		return call.Argument(1)
	})
	return obj
}

// native adapts a runtime function. Errors are thrown as Go errors so the
// caller can recover them with errors.As.
func (b binder) native(f rt.Func) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		args := make([]rt.Value, len(call.Arguments))
		for i, a := range call.Arguments {
			args[i] = b.toGo(a)
		}
		v, err := f(args)
		if err != nil {
			panic(b.vm.NewGoError(err))
		}
		return b.toJS(v)
	}
}

func (b binder) toGo(v goja.Value) rt.Value {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	switch x := v.Export().(type) {
	case int64:
		return float64(x)
	default:
		return x
	}
}

func (b binder) toJS(v rt.Value) goja.Value {
	if v == nil {
		return goja.Undefined()
	}
	return b.vm.ToValue(v)
}
