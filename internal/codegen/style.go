package codegen

import (
	"fmt"
	"strings"
)

// Style holds every token and template that differs between output
// languages. Templates are fmt formats.
type Style struct {
	Name string
	Ext  string // file extension for saved output

	Header string // opens the outer two-parameter function
	Footer string
	Indent string

	Binding       string // prefix of a new local binding
	Terminator    string // statement terminator
	True, False   string
	Uninitialized string // initial value of a declaration without initializer; empty means none

	IfOpen     string // %s: condition
	ElseOpen   string
	WhileOpen  string // %s: condition
	DoOpen     string
	DoBreak    string // last body statement of a do loop; %s: condition
	DoClose    string // %s: condition
	BlockClose string
	FuncOpen   string // %s: name, %s: parameter list
	FuncClose  string
	EmptyBody  string // statement for a block with no lines

	// ExprAssign reports whether assignment is an expression in the target
	// language. Without it, assignments are only accepted as statements.
	ExprAssign bool

	Ternary   string // %[1]s condition, %[2]s true branch, %[3]s false branch
	Inert     string // %[1]s operator token, %[2]s operand
	DebugTrap string

	// Reserved lists runtime member names that are keywords of the target
	// language; they are emitted with a trailing underscore.
	Reserved map[string]bool
}

// JavaScript emits ECMAScript 5 for an embedded JavaScript engine.
var JavaScript = &Style{
	Name:       "js",
	Ext:        ".js",
	Header:     "function(GLSL, env) {",
	Footer:     "}",
	Indent:     "    ",
	Binding:    "var ",
	Terminator: ";",
	True:       "true",
	False:      "false",

	IfOpen:     "if (%s) {",
	ElseOpen:   "} else {",
	WhileOpen:  "while (%s) {",
	DoOpen:     "do {",
	DoClose:    "} while (%s);",
	BlockClose: "}",
	FuncOpen:   "var %s = function(%s) {",
	FuncClose:  "};",

	ExprAssign: true,

	Ternary:   "(%[1]s ? %[2]s : %[3]s)",
	Inert:     "/* %[1]s */ %[2]s",
	DebugTrap: "debugger; RT.breakpoint();",
}

// Python emits the Python dialect understood by Starlark.
var Python = &Style{
	Name:          "py",
	Ext:           ".py",
	Header:        "def shader(GLSL, env):",
	Indent:        "    ",
	True:          "True",
	False:         "False",
	Uninitialized: "None",

	IfOpen:    "if %s:",
	ElseOpen:  "else:",
	WhileOpen: "while %s:",
	DoOpen:    "while True:",
	DoBreak:   "if not (%s): break",
	FuncOpen:  "def %s(%s):",
	EmptyBody: "pass",

	Ternary:   "(%[2]s if %[1]s else %[3]s)",
	Inert:     "(%[2]s if True else '%[1]s')",
	DebugTrap: "RT.breakpoint()",

	Reserved: map[string]bool{"not": true},
}

// StyleByName accepts "js", "javascript", "py" and "python".
func StyleByName(name string) (*Style, error) {
	switch strings.ToLower(name) {
	case "js", "javascript":
		return JavaScript, nil
	case "py", "python", "starlark":
		return Python, nil
	}
	return nil, fmt.Errorf("unknown output style %q (expected: js|py)", name)
}

// Member returns the name under which runtime function name is reachable
// from generated code.
func (s *Style) Member(name string) string {
	if s.Reserved[name] {
		return name + "_"
	}
	return name
}

func (s *Style) String() string { return s.Name }
