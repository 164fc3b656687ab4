// Package host defines how generated source becomes a runnable program.
// Each output style pairs with an embedded interpreter in a subpackage:
// jshost (goja) for JavaScript and starhost (Starlark) for Python.
package host

import (
	"errors"
	"fmt"

	"glslgen/internal/env"
	"glslgen/internal/rt"
	"glslgen/internal/trace"
)

// ErrDiscarded is returned by Run when the shader executed discard.
var ErrDiscarded = errors.New("shader invocation discarded")

// Program is materialized generated code. Programs are immutable; every Run
// uses a fresh interpreter, so one Program may run on several goroutines.
type Program interface {
	// Run calls the generated two-parameter function with the runtime and
	// the environment.
	Run(r *rt.Runtime, e env.Environment) error
	// Source returns the generated text the program was built from.
	Source() string
}

// Materializer compiles generated source. A failure is a *CompileError.
type Materializer interface {
	Engine() string
	Materialize(name, source string) (Program, error)
}

// CompileError reports generated source the engine refused.
type CompileError struct {
	Engine string
	Name   string
	Err    error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Engine, e.Name, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// RunError normalizes an engine error returned from a run. Discards become
// ErrDiscarded; everything else keeps the engine's wrapping so the runtime
// message and code stay reachable through errors.As.
func RunError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, rt.ErrDiscard) {
		return ErrDiscarded
	}
	return err
}

type traced struct {
	Program
	tracer trace.Tracer
	parent uint64
}

// WithTrace wraps p so every Run is recorded as an execute span under
// parent. A disabled tracer returns p unchanged.
func WithTrace(p Program, t trace.Tracer, parent uint64) Program {
	if t == nil || !t.Enabled() {
		return p
	}
	return &traced{Program: p, tracer: t, parent: parent}
}

func (p *traced) Run(r *rt.Runtime, e env.Environment) error {
	span := trace.Begin(p.tracer, trace.ScopePass, "execute", p.parent)
	err := p.Program.Run(r, e)
	switch {
	case errors.Is(err, ErrDiscarded):
		span.End("discarded")
	case err != nil:
		span.End(err.Error())
	default:
		span.End("")
	}
	return err
}
