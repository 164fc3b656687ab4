package codegen

import (
	"glslgen/internal/rt"
)

const localPrefix = "V_"

func (g *Generator) isGlobal(name string) bool { return g.globals.Has(name) }

// readName is the code reading variable name. Membership in the global set
// decides; local declarations never shadow a global.
func (g *Generator) readName(name string) string {
	if g.isGlobal(name) {
		return "env.get('" + name + "')"
	}
	return localPrefix + name
}

// writeName is the code storing value into variable name.
func (g *Generator) writeName(name, value string) string {
	if g.isGlobal(name) {
		return "env.set('" + name + "', " + value + ")"
	}
	return localPrefix + name + " = " + value
}

// callee resolves a called name: built-ins, then operator functions, then
// type constructors, then ordinary identifier resolution.
func (g *Generator) callee(name string) string {
	if rt.IsBuiltin(name) || rt.IsOperator(name) {
		return RuntimeName + "." + g.style.Member(name)
	}
	if ctor, ok := rt.ConstructorName(name); ok {
		return RuntimeName + "." + ctor
	}
	return g.readName(name)
}

func (g *Generator) runtimeCall(name string, args ...string) string {
	code := RuntimeName + "." + g.style.Member(name) + "("
	for i, a := range args {
		if i > 0 {
			code += ", "
		}
		code += a
	}
	return code + ")"
}
