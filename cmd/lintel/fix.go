package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"lintel/internal/checks"
	"lintel/internal/diagfmt"
	"lintel/internal/driver"
	"lintel/internal/fix"
	"lintel/internal/observ"
	"lintel/internal/trace"
)

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [flags] <file.cs|directory>...",
		Short: "Apply available fixes to source files",
		Long:  "Run the rules, surface the fixes their findings offer and apply them according to the chosen strategy.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runFix,
	}
	addAnalysisFlags(cmd)
	cmd.Flags().Bool("all", false, "apply every non-conflicting fix")
	cmd.Flags().Bool("once", false, "apply the first available fix per file (default)")
	cmd.Flags().String("id", "", "apply fixes with a specific identifier")
	cmd.Flags().Bool("dry-run", false, "show the planned edits without writing files")
	cmd.Flags().String("path-mode", "auto", "how paths are shown (auto|absolute|relative|basename)")
	cmd.Flags().String("ui", "auto", "progress display (auto|on|off)")
	return cmd
}

func runFix(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	defer dumpTraceOnPanic(ctx)

	f := readFlags(cmd.Flags())
	applyAll := f.Bool("all")
	applyOnce := f.Bool("once")
	targetID := f.String("id")
	dryRun := f.Bool("dry-run")
	pathModeName := f.String("path-mode")
	uiName := f.String("ui")
	showTimings := f.Bool("timings")
	quiet := f.Bool("quiet")
	if err := f.Err(); err != nil {
		return err
	}

	var opts fix.Options
	switch {
	case targetID != "" && (applyAll || applyOnce):
		return fmt.Errorf("--id cannot be combined with --all or --once")
	case applyAll && applyOnce:
		return fmt.Errorf("--all and --once are mutually exclusive")
	case targetID != "":
		opts = fix.Options{Mode: fix.ModeID, TargetID: targetID}
	case applyAll:
		opts = fix.Options{Mode: fix.ModeAll}
	default:
		opts = fix.Options{Mode: fix.ModeOnce}
	}
	pathMode, ok := diagfmt.ParsePathMode(pathModeName)
	if !ok {
		return fmt.Errorf("unknown path mode: %s", pathModeName)
	}
	tui, err := wantProgress(uiName, quiet, "pretty")
	if err != nil {
		return err
	}

	s, err := loadSettings(cmd, args[0])
	if err != nil {
		return err
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
	}
	// fix всегда работает с деревьями, кэш не нужен
	analyzer, err := newAnalyzer(s, nil, timer)
	if err != nil {
		return err
	}
	engine := fix.NewEngine(checks.Providers()...)

	ctx, span := trace.BeginCtx(ctx, trace.ScopeDriver, "fix")
	defer span.End("")

	res, err := runFixes(ctx, analyzer, engine, args, opts, !dryRun, tui)
	if res == nil {
		return fmt.Errorf("fix: %w", err)
	}

	out := cmd.OutOrStdout()
	popts := diagfmt.PrettyOpts{Color: useColor(s.Output.Color, os.Stdout), PathMode: pathMode}
	printFixResult(out, res, popts, dryRun)
	if failures := res.Diagnostics(); len(failures) > 0 {
		diagfmt.Pretty(out, failures, res.Analysis.FileSet, popts)
	}
	if showTimings {
		printTimings(cmd.ErrOrStderr(), timer)
	}
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	return nil
}

func runFixes(ctx context.Context, a *driver.Analyzer, engine *fix.Engine, paths []string, opts fix.Options, write, tui bool) (*driver.FixResult, error) {
	if !tui {
		return a.Fix(ctx, paths, engine, opts, write)
	}
	return runWithUI(ctx, "fixing", paths, func(ctx context.Context, sink driver.ProgressSink) (*driver.FixResult, error) {
		return a.WithProgress(sink).Fix(ctx, paths, engine, opts, write)
	})
}

func printFixResult(out io.Writer, res *driver.FixResult, opts diagfmt.PrettyOpts, dryRun bool) {
	if !res.Changed() && len(res.Diagnostics()) == 0 {
		skipped := 0
		for _, p := range res.Plans {
			skipped += len(p.Skipped)
		}
		if skipped == 0 {
			fmt.Fprintln(out, "no applicable fixes")
			return
		}
	}
	for _, plan := range res.Plans {
		diagfmt.FixPlan(out, res.Analysis.FileSet, plan, opts)
	}
	if dryRun {
		applied := 0
		for _, p := range res.Plans {
			applied += len(p.Applied)
		}
		fmt.Fprintf(out, "dry run: %d fix(es) not written\n", applied)
		return
	}
	if len(res.Changes) > 0 {
		fmt.Fprintln(out, "Updated files:")
		for _, change := range res.Changes {
			fmt.Fprintf(out, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}
}
