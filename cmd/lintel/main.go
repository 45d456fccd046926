package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lintel/internal/version"
)

// exitError carries a process exit code out of RunE without printing
// anything: the diagnostics already said what went wrong.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// newRootCmd builds the command tree. finish flushes the tracer; it runs
// after Execute because PersistentPostRun is skipped when RunE fails.
func newRootCmd() (root *cobra.Command, finish func()) {
	var cleanup func()
	root = &cobra.Command{
		Use:           "lintel",
		Short:         "Static analysis for C# sources",
		Long:          `lintel parses C# files into full-fidelity trees, runs rules over them and applies their fixes`,
		Version:       version.Plain(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cleanup, err = setupTracing(cmd)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cleanup != nil {
				cleanup()
			}
		},
	}

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("config", "", "path to lintel.toml (default: searched upwards from the target)")
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 0, "maximum number of diagnostics to show (0 = from config)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	pf.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 = off)")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")

	root.AddCommand(
		newDiagCmd(),
		newFixCmd(),
		newTokenizeCmd(),
		newParseCmd(),
		newRulesCmd(),
		newVersionCmd(),
	)
	finish = func() {
		if cleanup != nil {
			cleanup()
		}
	}
	return root, finish
}

func main() {
	root, finish := newRootCmd()
	err := root.Execute()
	finish()
	if err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintf(os.Stderr, "lintel: %v\n", err)
		os.Exit(2)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves auto|on|off against the stream being written.
func useColor(mode string, f *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}
