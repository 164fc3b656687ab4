package diag

import "glslgen/internal/ast"

type Note struct {
	Pos ast.Pos
	Msg string
}

// Diagnostic is one finding about a shader. Pos is the zero Pos when the
// parser supplied no location.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Pos      ast.Pos
	Notes    []Note
}

func New(sev Severity, code Code, pos ast.Pos, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Pos:      pos,
		Message:  msg,
	}
}

func NewError(code Code, pos ast.Pos, msg string) Diagnostic {
	return New(SevError, code, pos, msg)
}

func (d Diagnostic) WithNote(pos ast.Pos, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Pos: pos, Msg: msg})
	return d
}

// String renders "warning CG1001 3:5 message".
func (d Diagnostic) String() string {
	return severityLabel(d.Severity) + " " + d.Code.ID() + " " + d.Pos.String() + " " + sanitizeMessage(d.Message)
}
