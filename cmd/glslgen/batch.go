package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"glslgen/internal/batch"
	"glslgen/internal/cache"
	"glslgen/internal/diagfmt"
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Translate every descriptor under a directory in parallel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer finish(cmd)
		s := sessionFrom(cmd)
		flags := cmd.Flags()

		mode, err := readUIMode(flags.Lookup("ui").Value.String())
		if err != nil {
			return err
		}
		bc := s.cfg.Batch
		if flags.Changed("jobs") {
			bc.Jobs, _ = flags.GetInt("jobs")
		}
		if flags.Changed("out") {
			bc.OutDir, _ = flags.GetString("out")
		}
		if flags.Changed("cache") {
			bc.Cache, _ = flags.GetBool("cache")
		}
		if flags.Changed("cache-dir") {
			bc.CacheDir, _ = flags.GetString("cache-dir")
		}

		files, err := batch.ListDescriptors(args[0])
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "no descriptors under %s\n", args[0])
			return nil
		}

		req := &batch.Request{
			Files:     files,
			Style:     s.style,
			Jobs:      bc.Jobs,
			DiagLimit: s.limit,
			OutDir:    bc.OutDir,
			Root:      args[0],
			Timer:     s.timer,
		}
		if bc.Cache {
			c, err := cache.Open(bc.CacheDir)
			if err != nil {
				return err
			}
			if drop, _ := flags.GetBool("drop-cache"); drop {
				if err := c.DropAll(); err != nil {
					return err
				}
			}
			req.Cache = c
		}

		var results []batch.FileResult
		if shouldUseTUI(mode) {
			results, err = runBatchWithUI(cmd.Context(), "translating "+args[0], files, req)
		} else {
			results, err = batch.Run(cmd.Context(), req)
		}
		if err != nil {
			return err
		}
		return reportBatch(cmd, results)
	},
}

func init() {
	batchCmd.Flags().Int("jobs", 0, "parallel translations (0: GOMAXPROCS or config)")
	batchCmd.Flags().String("out", "", "directory receiving generated sources")
	batchCmd.Flags().Bool("cache", false, "reuse artifacts from the translation cache")
	batchCmd.Flags().String("cache-dir", "", "cache directory (default: $XDG_CACHE_HOME/glslgen)")
	batchCmd.Flags().Bool("drop-cache", false, "clear the cache before translating")
	batchCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
}

// reportBatch prints per-file diagnostics and a summary line. Any failed
// file makes the command fail.
func reportBatch(cmd *cobra.Command, results []batch.FileResult) error {
	errOut := cmd.ErrOrStderr()
	files := make([]diagfmt.File, 0, len(results))
	for i := range results {
		files = append(files, diagfmt.File{Path: results[i].Path, Items: results[i].Diagnostics})
	}
	if err := printDiagnostics(cmd, files...); err != nil {
		return err
	}

	var ok, soft, failed, cached, warned int
	for i := range results {
		r := &results[i]
		name := filepath.ToSlash(r.Path)
		switch {
		case r.Err != nil:
			failed++
		case r.Diagnostic != "":
			soft++
			fmt.Fprintf(errOut, "%s: %s\n", name, r.Diagnostic)
		default:
			ok++
			if r.Warned {
				warned++
			}
		}
		if r.Cached {
			cached++
		}
	}
	summary := fmt.Sprintf("%d translated (%d with warnings), %d did not load, %d failed (%d from cache)", ok, warned, soft, failed, cached)
	if soft+failed > 0 {
		fmt.Fprintln(errOut, color.RedString(summary))
		return fmt.Errorf("%d of %d descriptors failed", soft+failed, len(results))
	}
	fmt.Fprintln(errOut, color.GreenString(summary))
	return nil
}

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch value {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	}
	return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	}
	return isTerminal(os.Stdout)
}
