// Package starhost runs Python-style generated code on the Starlark
// interpreter.
package starhost

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"

	"glslgen/internal/codegen"
	"glslgen/internal/env"
	"glslgen/internal/host"
	"glslgen/internal/rt"
)

// EntryPoint is the function generated Python-style source defines.
const EntryPoint = "shader"

// Generated shaders need while loops and recursion, which plain Starlark
// rejects.
var fileOptions = &syntax.FileOptions{
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
	Recursion:       true,
}

// Materializer compiles Python-style source.
type Materializer struct {
	// MaxSteps bounds the computation steps of one run; 0 means unbounded.
	MaxSteps uint64
}

func New() *Materializer { return &Materializer{} }

func (*Materializer) Engine() string { return "starlark" }

// Materialize parses, resolves and compiles source, then checks that it
// defines the entry point.
func (m *Materializer) Materialize(name, source string) (host.Program, error) {
	_, prog, err := starlark.SourceProgramOptions(fileOptions, name, source, func(string) bool { return false })
	if err != nil {
		return nil, &host.CompileError{Engine: m.Engine(), Name: name, Err: err}
	}
	globals, err := prog.Init(&starlark.Thread{Name: name}, nil)
	if err != nil {
		return nil, &host.CompileError{Engine: m.Engine(), Name: name, Err: err}
	}
	if _, ok := globals[EntryPoint].(starlark.Callable); !ok {
		return nil, &host.CompileError{Engine: m.Engine(), Name: name, Err: fmt.Errorf("source does not define function %s", EntryPoint)}
	}
	return &program{name: name, source: source, prog: prog, maxSteps: m.MaxSteps}, nil
}

type program struct {
	name     string
	source   string
	prog     *starlark.Program
	maxSteps uint64
}

func (p *program) Source() string { return p.source }

func (p *program) Run(r *rt.Runtime, e env.Environment) error {
	thread := &starlark.Thread{
		Name: p.name,
		Print: func(_ *starlark.Thread, msg string) {
			if r.Out != nil {
				fmt.Fprintln(r.Out, msg)
			}
		},
	}
	if p.maxSteps > 0 {
		thread.SetMaxExecutionSteps(p.maxSteps)
	}
	globals, err := p.prog.Init(thread, nil)
	if err != nil {
		return err
	}
	glsl := starlarkstruct.FromStringDict(starlark.String("GLSL"), starlark.StringDict{
		"Runtime": runtimeStruct(r),
	})
	_, err = starlark.Call(thread, globals[EntryPoint], starlark.Tuple{glsl, environment(e)}, nil)
	return host.RunError(err)
}

func runtimeStruct(r *rt.Runtime) *starlarkstruct.Struct {
	members := make(starlark.StringDict, len(r.Names()))
	for _, name := range r.Names() {
		f, _ := r.Lookup(name)
		member := codegen.Python.Member(name)
		members[member] = builtin(member, f)
	}
	return starlarkstruct.FromStringDict(starlark.String("Runtime"), members)
}

func builtin(name string, f rt.Func) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if len(kwargs) > 0 {
			return nil, fmt.Errorf("%s: unexpected keyword arguments", b.Name())
		}
		in := make([]rt.Value, len(args))
		for i, a := range args {
			v, err := toGo(a)
			if err != nil {
				return nil, fmt.Errorf("%s: argument %d: %w", b.Name(), i+1, err)
			}
			in[i] = v
		}
		out, err := f(in)
		if err != nil {
			return nil, err
		}
		return toStarlark(out), nil
	})
}

func environment(e env.Environment) *starlarkstruct.Struct {
	get := starlark.NewBuiltin("get", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var name string
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &name); err != nil {
			return nil, err
		}
		v, err := e.Get(name)
		if err != nil {
			return nil, err
		}
		return toStarlark(v), nil
	})
	set := starlark.NewBuiltin("set", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var name string
		var value starlark.Value
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &name, &value); err != nil {
			return nil, err
		}
		v, err := toGo(value)
		if err != nil {
			return nil, fmt.Errorf("set %s: %w", name, err)
		}
		return starlark.None, e.Set(name, v)
	})
	return starlarkstruct.FromStringDict(starlark.String("env"), starlark.StringDict{"get": get, "set": set})
}
