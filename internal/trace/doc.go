// Package trace is the span tracer used across glslgen.
//
// Tracing is off unless the CLI asks for it:
//
//	glslgen batch shaders/ --trace=- --trace-level=detail
//
// Tracers:
//
//   - Nop: used when tracing is disabled
//   - StreamTracer: writes each event as it happens
//   - RingTracer: keeps the last N events for dumping after a failure
//   - MultiTracer: fans out to several tracers
//
// Levels select scopes: phase shows driver and pass boundaries (translate,
// generate, materialize, execute), detail adds per-shader events of a batch
// run, debug adds node-level events such as degraded operators.
//
// The tracer travels in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "generate", parentID)
//	defer span.End("")
package trace
