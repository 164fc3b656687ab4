package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"glslgen/internal/diag"
)

// Pretty writes one line per diagnostic:
//
//	<path>[:<line>:<col>]: <severity> [<CODE>] <message>
//
// followed by indented notes when ShowNotes is set.
func Pretty(w io.Writer, files []File, opts PrettyOpts) error {
	labels := map[diag.Severity]*color.Color{
		diag.SevInfo:    color.New(color.FgCyan),
		diag.SevWarning: color.New(color.FgYellow, color.Bold),
		diag.SevError:   color.New(color.FgRed, color.Bold),
	}
	code := color.New(color.Faint)
	for _, c := range append([]*color.Color{code}, labels[diag.SevInfo], labels[diag.SevWarning], labels[diag.SevError]) {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	for _, f := range files {
		path := formatPath(f.Path, opts.PathMode, opts.BaseDir)
		for _, d := range f.Items {
			pos := ""
			if d.Pos.IsValid() {
				pos = ":" + d.Pos.String()
			}
			label, ok := labels[d.Severity]
			if !ok {
				label = labels[diag.SevInfo]
			}
			_, err := fmt.Fprintf(w, "%s%s: %s %s %s\n", path, pos,
				label.Sprint(d.Severity.String()), code.Sprint("["+d.Code.ID()+"]"), d.Message)
			if err != nil {
				return err
			}
			if !opts.ShowNotes {
				continue
			}
			for _, n := range d.Notes {
				if _, err := fmt.Fprintf(w, "    note: %s\n", n.Msg); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
