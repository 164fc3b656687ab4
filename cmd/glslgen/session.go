package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"glslgen/internal/codegen"
	"glslgen/internal/config"
	"glslgen/internal/observ"
	"glslgen/internal/prof"
)

// session is the per-invocation state built by prepare.
type session struct {
	cfg     config.Config
	style   *codegen.Style
	limit   int
	timer   *observ.Timer
	timings bool
	// diagFormat is "pretty" or "json".
	diagFormat string
	profiler   *prof.Profiler
	cleanup    func()
}

type sessionKey struct{}

func sessionFrom(cmd *cobra.Command) *session {
	if s, ok := cmd.Context().Value(sessionKey{}).(*session); ok {
		return s
	}
	return &session{cfg: config.Default(), style: codegen.JavaScript, timer: observ.NewTimer(), diagFormat: "pretty", cleanup: func() {}}
}

// prepare loads configuration, applies flag overrides, configures colour
// and starts tracing. Commands call finish through PersistentPostRun.
func prepare(cmd *cobra.Command, _ []string) error {
	root := cmd.Root().PersistentFlags()
	if cmd.Name() == versionCmd.Name() {
		return applyColor(root.Lookup("color").Value.String())
	}

	cfgPath, err := root.GetString("config")
	if err != nil {
		return err
	}
	var cfg config.Config
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return err
	}

	if root.Changed("style") {
		cfg.Translate.Style, _ = root.GetString("style")
	}
	if root.Changed("trace-level") {
		cfg.Trace.Level, _ = root.GetString("trace-level")
	}
	if root.Changed("trace") {
		cfg.Trace.Output, _ = root.GetString("trace")
	}
	if root.Changed("trace-format") {
		cfg.Trace.Format, _ = root.GetString("trace-format")
	}
	if root.Changed("max-diagnostics") {
		cfg.Translate.MaxDiagnostics, _ = root.GetInt("max-diagnostics")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := applyColor(root.Lookup("color").Value.String()); err != nil {
		return err
	}

	diagFormat, _ := root.GetString("diagnostics-format")
	switch diagFormat {
	case "pretty", "json":
	default:
		return fmt.Errorf("invalid --diagnostics-format value %q (expected pretty|json)", diagFormat)
	}

	s := &session{cfg: cfg, style: cfg.Style(), limit: cfg.Translate.MaxDiagnostics, timer: observ.NewTimer(), diagFormat: diagFormat}
	s.timings, _ = root.GetBool("timings")
	cmd.SetContext(context.WithValue(cmd.Context(), sessionKey{}, s))

	s.profiler, err = setupProfiling(cmd)
	if err != nil {
		return err
	}
	s.cleanup, err = setupTracing(cmd, cfg.Trace)
	if err != nil {
		_ = s.profiler.Stop()
	}
	return err
}

// setupProfiling starts the profilers named by the persistent flags.
func setupProfiling(cmd *cobra.Command) (*prof.Profiler, error) {
	root := cmd.Root().PersistentFlags()
	var opts prof.Options
	opts.CPU, _ = root.GetString("cpu-profile")
	opts.Mem, _ = root.GetString("mem-profile")
	opts.Trace, _ = root.GetString("runtime-trace")
	if !opts.Enabled() {
		return nil, nil
	}
	return prof.Start(opts)
}

// finish flushes tracing, stops the profilers and prints timings.
func finish(cmd *cobra.Command) {
	s := sessionFrom(cmd)
	if s.cleanup != nil {
		s.cleanup()
	}
	if err := s.profiler.Stop(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "profiling: %v\n", err)
	}
	if s.timings {
		fmt.Fprint(cmd.ErrOrStderr(), s.timer.Summary())
	}
}

// applyColor sets fatih/color and lipgloss for mode.
func applyColor(mode string) error {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		color.NoColor = !isTerminal(os.Stdout)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	if color.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return nil
}

func writeString(out io.Writer, s string) {
	if _, err := io.WriteString(out, s); err != nil {
		panic(err)
	}
}
