// Package codegen turns a shader syntax tree into host-script source.
//
// Two output styles exist, JavaScript and Python, each described by a Style
// value. The generator walks the tree with a visit.Dispatcher whose context
// is the enclosing function (nil at top level); statement handlers write
// lines into the emitter and return nothing, expression handlers return the
// code of the expression and never write.
//
// Every operator is rewritten to a runtime call (`a + b` becomes
// `RT.op_add(a, b)`), names of uniforms, varyings and attributes go through
// the environment handle, and everything else becomes a `V_` local.
package codegen
