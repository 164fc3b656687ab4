package ast

// Variable names a global shader variable. The translator needs no type
// information, but parsers usually supply it.
type Variable struct {
	Name string `json:"name" msgpack:"name"`
	Type string `json:"type,omitempty" msgpack:"type,omitempty"`
}

// Shader is the descriptor handed to the translator.
type Shader struct {
	AST        Node
	Uniforms   []Variable
	Varyings   []Variable
	Attributes []Variable
	// DebugTrap asks the generator to emit a breakpoint before main runs.
	DebugTrap bool
}

// NameSet is an immutable set of global names.
type NameSet map[string]struct{}

// Has reports membership.
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// GlobalNames merges uniform, varying and attribute names.
func (s *Shader) GlobalNames() NameSet {
	if s == nil {
		return NameSet{}
	}
	set := make(NameSet, len(s.Uniforms)+len(s.Varyings)+len(s.Attributes))
	for _, list := range [][]Variable{s.Uniforms, s.Varyings, s.Attributes} {
		for _, v := range list {
			set[v.Name] = struct{}{}
		}
	}
	return set
}
