package diagfmt

import (
	"encoding/json"
	"io"
)

// LocationJSON is a position inside a descriptor. Line and column are
// omitted when the parser supplied none.
type LocationJSON struct {
	File string `json:"file"`
	Line int    `json:"line,omitempty"`
	Col  int    `json:"col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput is the root JSON document.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// BuildDiagnosticsOutput flattens files into the JSON document without
// serializing it.
func BuildDiagnosticsOutput(files []File, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Diagnostics: []DiagnosticJSON{}}
	for _, f := range files {
		path := formatPath(f.Path, opts.PathMode, opts.BaseDir)
		for _, d := range f.Items {
			if opts.Max > 0 && len(out.Diagnostics) == opts.Max {
				out.Count = len(out.Diagnostics)
				return out
			}
			dj := DiagnosticJSON{
				Severity: d.Severity.String(),
				Code:     d.Code.ID(),
				Message:  d.Message,
				Location: LocationJSON{File: path, Line: d.Pos.Line, Col: d.Pos.Col},
			}
			if opts.IncludeNotes && len(d.Notes) > 0 {
				dj.Notes = make([]NoteJSON, len(d.Notes))
				for i, n := range d.Notes {
					dj.Notes[i] = NoteJSON{
						Message:  n.Msg,
						Location: LocationJSON{File: path, Line: n.Pos.Line, Col: n.Pos.Col},
					}
				}
			}
			out.Diagnostics = append(out.Diagnostics, dj)
		}
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes the diagnostics of files as an indented JSON document.
func JSON(w io.Writer, files []File, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(files, opts))
}
