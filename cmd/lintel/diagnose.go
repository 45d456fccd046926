package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"lintel/internal/checks"
	"lintel/internal/config"
	"lintel/internal/diag"
	"lintel/internal/diagfmt"
	"lintel/internal/driver"
	"lintel/internal/observ"
	"lintel/internal/rule"
	"lintel/internal/trace"
	"lintel/internal/version"
)

func newDiagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diag [flags] <file.cs|directory>...",
		Short: "Run the rules over C# source files",
		Long:  `Parse every *.cs file under the given paths, run the active rules and report their findings`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  runDiagnose,
	}
	addAnalysisFlags(cmd)
	cmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	cmd.Flags().String("path-mode", "auto", "how paths are shown (auto|absolute|relative|basename)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().String("fail-on", "minor", "exit with status 1 when a diagnostic reaches this severity")
	cmd.Flags().Bool("cache", false, "reuse findings of unchanged files from the result cache")
	cmd.Flags().String("cache-dir", "", "result cache directory")
	cmd.Flags().Bool("clear-cache", false, "drop the result cache before analyzing")
	cmd.Flags().String("ui", "auto", "progress display (auto|on|off)")
	return cmd
}

// addAnalysisFlags registers the flags diag and fix share.
func addAnalysisFlags(cmd *cobra.Command) {
	cmd.Flags().Int("jobs", 0, "max files analyzed in parallel (0 = from config)")
	cmd.Flags().Bool("parallel-rules", false, "run rules of one file in parallel")
	cmd.Flags().Bool("include-generated", false, "analyze generated code with every rule")
	cmd.Flags().StringSlice("rules", nil, "run only these rule ids (comma separated)")
	cmd.Flags().String("frontend", config.FrontendNative, "parser frontend (native|tree-sitter); tree-sitter adds a syntax cross-check")
}

// newAnalyzer builds the analyzer described by the effective settings.
func newAnalyzer(s *settings, cache *driver.Cache, timer *observ.Timer) (*driver.Analyzer, error) {
	reg, err := checks.Registry()
	if err != nil {
		return nil, err
	}
	sel, err := s.Selection()
	if err != nil {
		return nil, err
	}
	return driver.New(reg, driver.Options{
		Jobs:             s.Analysis.Jobs,
		ParallelRules:    s.Analysis.ParallelRules,
		IncludeGenerated: s.Analysis.IncludeGenerated,
		CrossCheck:       s.Analysis.Frontend == config.FrontendTreeSitter,
		Selection:        sel,
		Cache:            cache,
		Timer:            timer,
		Version:          version.Plain(),
	})
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	defer dumpTraceOnPanic(ctx)

	s, err := loadSettings(cmd, args[0])
	if err != nil {
		return err
	}
	f := readFlags(cmd.Flags())
	pathModeName := f.String("path-mode")
	withNotes := f.Bool("with-notes")
	failOnName := f.String("fail-on")
	clearCache := f.Bool("clear-cache")
	uiName := f.String("ui")
	showTimings := f.Bool("timings")
	quiet := f.Bool("quiet")
	if err := f.Err(); err != nil {
		return err
	}
	pathMode, ok := diagfmt.ParsePathMode(pathModeName)
	if !ok {
		return fmt.Errorf("unknown path mode: %s", pathModeName)
	}
	failOn, err := diag.ParseSeverity(failOnName)
	if err != nil {
		return fmt.Errorf("invalid --fail-on: %w", err)
	}
	tui, err := wantProgress(uiName, quiet, s.Output.Format)
	if err != nil {
		return err
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	var cache *driver.Cache
	if s.Cache.Enabled {
		cache, err = driver.OpenCache(s.Cache.Dir)
		if err != nil {
			return fmt.Errorf("failed to open result cache: %w", err)
		}
		defer cache.Close()
		if clearCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to clear result cache: %w", err)
			}
		}
	}
	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
	}

	analyzer, err := newAnalyzer(s, cache, timer)
	if err != nil {
		return err
	}

	ctx, span := trace.BeginCtx(ctx, trace.ScopeDriver, "diag")
	defer span.End("")

	res, err := analyze(ctx, analyzer, args, tui)
	if err != nil {
		return fmt.Errorf("diagnosis failed: %w", err)
	}
	diags := res.Diagnostics()
	span.WithExtra("diagnostics", fmt.Sprint(len(diags)))

	out := cmd.OutOrStdout()
	switch s.Output.Format {
	case "pretty":
		shown, hidden := limit(diags, s.Analysis.MaxDiagnostics)
		diagfmt.Pretty(out, shown, res.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(s.Output.Color, os.Stdout),
			Context:   0,
			PathMode:  pathMode,
			ShowNotes: withNotes,
		})
		if hidden > 0 {
			fmt.Fprintf(out, "... %d more diagnostic(s) not shown\n", hidden)
		}
		if !quiet {
			printSummary(out, res, len(diags))
		}
		if showTimings {
			printTimings(cmd.ErrOrStderr(), timer)
		}
	case "short":
		opts := diagfmt.ShortOpts{PathMode: pathMode, Max: s.Analysis.MaxDiagnostics, IncludeNotes: withNotes}
		if err := diagfmt.Short(out, diags, res.FileSet, opts); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	case "json":
		if diags, err = timingDiagnostics(diags, "diag", timer); err != nil {
			return err
		}
		opts := diagfmt.JSONOpts{PathMode: pathMode, Max: s.Analysis.MaxDiagnostics, IncludeNotes: withNotes || showTimings}
		if err := diagfmt.JSON(out, diags, res.FileSet, opts); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	case "sarif":
		if diags, err = timingDiagnostics(diags, "diag", timer); err != nil {
			return err
		}
		meta := diagfmt.SarifRunMeta{
			ToolName:       "lintel",
			ToolVersion:    version.Plain(),
			InvocationArgs: os.Args,
			Rules:          sarifRules(res.Rules),
		}
		if err := diagfmt.Sarif(out, diags, res.FileSet, meta); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", s.Output.Format)
	}

	if res.HasAtLeast(failOn) {
		return &exitError{code: 1}
	}
	return nil
}

// analyze runs the analyzer, behind the progress view when tui is set.
func analyze(ctx context.Context, a *driver.Analyzer, paths []string, tui bool) (*driver.Result, error) {
	if !tui {
		return a.Analyze(ctx, paths)
	}
	return runWithUI(ctx, "analyzing", paths, func(ctx context.Context, sink driver.ProgressSink) (*driver.Result, error) {
		return a.WithProgress(sink).Analyze(ctx, paths)
	})
}

func limit(diags []diag.Diagnostic, max int) ([]diag.Diagnostic, int) {
	if max <= 0 || len(diags) <= max {
		return diags, 0
	}
	return diags[:max], len(diags) - max
}

func printSummary(out io.Writer, res *driver.Result, total int) {
	cached := 0
	for _, f := range res.Files {
		if f.Cached {
			cached++
		}
	}
	line := fmt.Sprintf("%d file(s), %d diagnostic(s)", len(res.Files), total)
	if cached > 0 {
		line += fmt.Sprintf(", %d from cache", cached)
	}
	fmt.Fprintln(out, line)
}

func sarifRules(active []rule.Active) []diagfmt.SarifRule {
	out := make([]diagfmt.SarifRule, 0, len(active))
	for _, r := range active {
		out = append(out, diagfmt.SarifRule{ID: r.ID, Title: r.Title, Severity: r.Severity, Tags: r.Tags})
	}
	return out
}
