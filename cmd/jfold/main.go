package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"jfold/internal/prof"
	"jfold/internal/version"
)

// newRootCmd builds the command tree. Each call returns fresh flag state.
// finish stops the tracer and profiler started by the run; call it after
// Execute with Execute's error.
func newRootCmd() (rootCmd *cobra.Command, finish func(runErr error) error) {
	rootCmd = &cobra.Command{
		Use:          "jfold",
		Short:        "Folding regions for Java-like sources",
		Long:         `jfold computes, tracks and displays the folding regions of brace-structured source files`,
		Version:      version.Version,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newFoldCmd())
	rootCmd.AddCommand(newDiffCmd())
	rootCmd.AddCommand(newViewCmd())
	rootCmd.AddCommand(newTokenizeCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	// global flags
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("config", "", "folding preferences file (default: nearest .jfold.toml)")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to this file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept in ring mode")
	rootCmd.PersistentFlags().Bool("timings", false, "print per-file phase timings to stderr")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to this file")

	var (
		cleanup  func(error)
		profiler *prof.Profiler
	)
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		if profiler, err = startProfiling(cmd); err != nil {
			return err
		}
		cleanup, err = setupTracing(cmd)
		return err
	}
	finish = func(runErr error) error {
		if cleanup != nil {
			cleanup(runErr)
			cleanup = nil
		}
		p := profiler
		profiler = nil
		return p.Stop()
	}
	return rootCmd, finish
}

func main() {
	rootCmd, finish := newRootCmd()
	err := rootCmd.Execute()
	if stopErr := finish(err); stopErr != nil {
		rootCmd.PrintErrln("Error:", stopErr)
		err = errors.Join(err, stopErr)
	}
	if err != nil {
		os.Exit(1)
	}
}

func startProfiling(cmd *cobra.Command) (*prof.Profiler, error) {
	flags := cmd.Root().PersistentFlags()
	var cfg prof.Config
	cfg.CPU, _ = flags.GetString("cpu-profile")
	cfg.Mem, _ = flags.GetString("mem-profile")
	cfg.Trace, _ = flags.GetString("runtime-trace")
	if !cfg.Enabled() {
		return nil, nil
	}
	return prof.Start(cfg)
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
