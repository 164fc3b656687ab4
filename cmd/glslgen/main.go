package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"glslgen/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "glslgen",
	Short: "Translate shader syntax trees into runnable JavaScript or Python",
	Long: `glslgen turns a parsed GLSL ES 1.0 shader into JavaScript or Python
source that runs against a vector-math runtime, and materializes it through
an embedded interpreter.`,
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
}

func init() {
	rootCmd.Version = version.String()

	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(versionCmd)

	flags := rootCmd.PersistentFlags()
	flags.String("style", "", "output style (js|py); overrides glslgen.toml")
	flags.String("config", "", "path to glslgen.toml (default: search upward from the working directory)")
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("timings", false, "print phase timings to stderr")
	flags.Int("max-diagnostics", 0, "maximum number of diagnostics to collect (0: from config)")
	flags.String("trace", "", "trace output file (\"-\" for stderr)")
	flags.String("trace-level", "", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "", "trace format (auto|text|ndjson)")
	flags.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	flags.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 disables)")
	flags.String("diagnostics-format", "pretty", "diagnostics output format (pretty|json)")
	flags.String("cpu-profile", "", "write a CPU profile to file")
	flags.String("mem-profile", "", "write a heap profile to file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to file")
}

// main executes the root command. A command error exits with status 1.
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
