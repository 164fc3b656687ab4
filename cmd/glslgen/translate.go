package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"glslgen/internal/diagfmt"
	"glslgen/internal/shader"
)

var errSoftFailure = errors.New("generated source did not load")

var translateCmd = &cobra.Command{
	Use:   "translate <shader.json|shader.msgpack|->",
	Short: "Print the generated source for a shader descriptor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer finish(cmd)
		res, err := translateFile(cmd, args[0])
		if err != nil {
			return err
		}
		outPath, err := cmd.Flags().GetString("out")
		if err != nil {
			return err
		}
		if outPath == "" {
			writeString(cmd.OutOrStdout(), res.Source)
			return nil
		}
		if err := os.WriteFile(outPath, []byte(res.Source), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		return nil
	},
}

func init() {
	translateCmd.Flags().StringP("out", "o", "", "write the source to a file instead of stdout")
	translateCmd.Flags().Bool("debug-trap", false, "emit a breakpoint before main runs")
}

// translateFile loads and translates path with the session settings. A soft
// failure is rendered to stderr and returned as errSoftFailure.
func translateFile(cmd *cobra.Command, path string) (*shader.Result, error) {
	s := sessionFrom(cmd)

	idx := s.timer.Begin("load")
	sh, err := loadShader(path, cmd.InOrStdin())
	s.timer.End(idx, "")
	if err != nil {
		return nil, err
	}
	if trap, _ := cmd.Flags().GetBool("debug-trap"); trap || s.cfg.Translate.DebugTrap {
		sh.DebugTrap = true
	}

	name := displayName(path)
	idx = s.timer.Begin("translate")
	res, err := shader.Translate(cmd.Context(), sh, shader.Options{
		Style:     s.style,
		Name:      name,
		DiagLimit: s.limit,
	})
	s.timer.End(idx, s.style.Name)
	if err != nil {
		return nil, err
	}
	if err := printDiagnostics(cmd, diagfmt.File{Path: name, Items: res.Diagnostics}); err != nil {
		return nil, err
	}
	if !res.OK() {
		writeString(cmd.ErrOrStderr(), renderSoftFailure(name, res.Source, res.Diagnostic))
		return res, errSoftFailure
	}
	return res, nil
}
