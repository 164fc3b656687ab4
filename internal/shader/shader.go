// Package shader is the translation entry point: it generates host-script
// source for a shader descriptor and materializes it through the style's
// embedded interpreter.
package shader

import (
	"context"
	"errors"
	"fmt"

	"glslgen/internal/ast"
	"glslgen/internal/codegen"
	"glslgen/internal/diag"
	"glslgen/internal/host"
	"glslgen/internal/host/jshost"
	"glslgen/internal/host/starhost"
	"glslgen/internal/trace"
)

// Options configures Translate.
type Options struct {
	Style *codegen.Style // defaults to codegen.JavaScript
	// Name identifies the shader in engine messages; defaults to "shader".
	Name string
	// Materializer overrides the engine chosen for Style.
	Materializer host.Materializer
	// DiagLimit caps collected diagnostics; 0 means 256.
	DiagLimit int
}

// Result is the outcome of a translation that got past code generation.
// Exactly one of Program and Diagnostic is set.
type Result struct {
	Style  *codegen.Style
	Source string
	// Program is the callable built from Source.
	Program host.Program
	// Diagnostic is the engine's complaint when Source could not be
	// materialized, or the first generation error when Source was not
	// handed to the engine.
	Diagnostic string
	// Diagnostics holds generation findings and the materialization
	// error, sorted by position.
	Diagnostics []diag.Diagnostic
}

// OK reports whether the result carries a program.
func (r *Result) OK() bool { return r != nil && r.Program != nil }

// MaterializerFor returns the engine for style.
func MaterializerFor(style *codegen.Style) (host.Materializer, error) {
	switch style {
	case codegen.JavaScript:
		return jshost.New(), nil
	case codegen.Python:
		return starhost.New(), nil
	}
	return nil, fmt.Errorf("no engine for style %v", style)
}

// Translate generates and materializes sh. Structure errors from the
// generator are returned. Generation errors and an engine that rejects the
// generated source are soft failures reported in the Result.
func Translate(ctx context.Context, sh *ast.Shader, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Style == nil {
		opts.Style = codegen.JavaScript
	}
	if opts.Name == "" {
		opts.Name = "shader"
	}
	if opts.DiagLimit <= 0 {
		opts.DiagLimit = 256
	}
	mat := opts.Materializer
	if mat == nil {
		var err error
		if mat, err = MaterializerFor(opts.Style); err != nil {
			return nil, err
		}
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "translate", trace.CurrentSpan(ctx).SpanID)
	span.WithExtra("style", opts.Style.Name).WithExtra("name", opts.Name)
	defer span.End("")

	bag := diag.NewBag(opts.DiagLimit)
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	genSpan := trace.Begin(tracer, trace.ScopePass, "generate", span.ID())
	gen := codegen.New(codegen.Options{
		Style:    opts.Style,
		Reporter: reporter,
		Tracer:   tracer,
		Parent:   genSpan.ID(),
	})
	source, err := gen.Generate(sh)
	genSpan.End("")
	if err != nil {
		return nil, fmt.Errorf("translate %s: %w", opts.Name, err)
	}

	res := &Result{Style: opts.Style, Source: source}
	if bag.HasErrors() {
		// The source would load but not behave like the shader.
		bag.Sort()
		res.Diagnostics = bag.Items()
		res.Diagnostic = firstError(res.Diagnostics)
		span.WithExtra("rejected", "codegen")
		return res, nil
	}
	matSpan := trace.Begin(tracer, trace.ScopePass, "materialize", span.ID())
	prog, err := mat.Materialize(opts.Name, source)
	if err != nil {
		matSpan.End("failed")
		var ce *host.CompileError
		if !errors.As(err, &ce) {
			return nil, fmt.Errorf("materialize %s: %w", opts.Name, err)
		}
		res.Diagnostic = ce.Err.Error()
		diag.ReportError(reporter, diag.HostCompileFailed, ast.Pos{}, ce.Error()).Emit()
	} else {
		matSpan.End("")
		res.Program = host.WithTrace(prog, tracer, span.ID())
	}

	bag.Sort()
	res.Diagnostics = bag.Items()
	return res, nil
}

func firstError(diags []diag.Diagnostic) string {
	for _, d := range diags {
		if d.Severity == diag.SevError {
			return d.Code.ID() + ": " + d.Message
		}
	}
	return ""
}
