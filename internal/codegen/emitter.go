package codegen

import "strings"

// emitter accumulates output lines at a current indentation depth.
type emitter struct {
	lines []string
	unit  string
	depth int
}

func (e *emitter) reset(unit string) {
	e.lines = e.lines[:0]
	e.unit = unit
	e.depth = 0
}

// writeLine appends one line at the current depth. Empty lines carry no
// indentation.
func (e *emitter) writeLine(s string) {
	if s == "" {
		e.lines = append(e.lines, "")
		return
	}
	e.lines = append(e.lines, strings.Repeat(e.unit, e.depth)+s)
}

func (e *emitter) pushIndent() { e.depth++ }

func (e *emitter) popIndent() {
	if e.depth > 0 {
		e.depth--
	}
}

func (e *emitter) String() string {
	if len(e.lines) == 0 {
		return ""
	}
	return strings.Join(e.lines, "\n") + "\n"
}
