package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"glslgen/internal/config"
	"glslgen/internal/env"
	"glslgen/internal/host"
	"glslgen/internal/rt"
)

var runCmd = &cobra.Command{
	Use:   "run <shader.json|shader.msgpack|->",
	Short: "Translate a shader, run main once and print the environment traffic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer finish(cmd)
		s := sessionFrom(cmd)
		flags := cmd.Flags()

		var globals map[string]rt.Value
		if envPath, _ := flags.GetString("env"); envPath != "" {
			var err error
			if globals, err = config.LoadGlobals(envPath); err != nil {
				return err
			}
		}

		res, err := translateFile(cmd, args[0])
		if err != nil {
			return err
		}

		values := env.NewMap(globals)
		rec := env.NewRecorder(values)
		runtime := rt.New(cmd.OutOrStdout())
		if stop, _ := flags.GetBool("stop-at-trap"); stop {
			runtime.OnBreakpoint = func() error { return errors.New("stopped at debug trap") }
		} else {
			runtime.OnBreakpoint = func() error {
				fmt.Fprintln(cmd.ErrOrStderr(), color.CyanString("debug trap reached"))
				return nil
			}
		}

		idx := s.timer.Begin("execute")
		err = res.Program.Run(runtime, rec)
		s.timer.End(idx, "")

		out := cmd.OutOrStdout()
		if quiet, _ := flags.GetBool("no-transcript"); !quiet {
			for _, c := range rec.Calls() {
				fmt.Fprintln(out, c)
			}
		}
		if dump, _ := flags.GetBool("values"); dump {
			snapshot := values.Snapshot()
			names := make([]string, 0, len(snapshot))
			for name := range snapshot {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "%s = %s\n", name, rt.Format(snapshot[name]))
			}
		}

		switch {
		case errors.Is(err, host.ErrDiscarded):
			fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("discarded"))
			return nil
		case err != nil:
			if code := rt.CodeOf(err); code != 0 {
				return fmt.Errorf("runtime error %s: %w", code, err)
			}
			return err
		}
		return nil
	},
}

func init() {
	runCmd.Flags().String("env", "", "TOML file with global values ([globals] table)")
	runCmd.Flags().Bool("values", false, "print the final global values")
	runCmd.Flags().Bool("no-transcript", false, "do not print environment reads and writes")
	runCmd.Flags().Bool("debug-trap", false, "emit a breakpoint before main runs")
	runCmd.Flags().Bool("stop-at-trap", false, "abort the run when the debug trap is reached")
}
