package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"lintel/internal/diag"
	"lintel/internal/driver"
	"lintel/internal/observ"
	"lintel/internal/prof"
	"lintel/internal/trace"
)

// setupTracing builds the tracer the --trace* flags ask for and puts it
// into the command context. The returned cleanup flushes and closes it.
func setupTracing(cmd *cobra.Command) (func(), error) {
	f := readFlags(cmd.Root().PersistentFlags())
	output := f.String("trace")
	levelName := f.String("trace-level")
	modeName := f.String("trace-mode")
	formatName := f.String("trace-format")
	ringSize := f.Int("trace-ring-size")
	every := f.Duration("trace-heartbeat")
	if err := f.Err(); err != nil {
		return nil, err
	}

	level, err := trace.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	// --trace без уровня включает фазы
	if level == trace.LevelOff && output != "" {
		level = trace.LevelPhase
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(ctx, trace.Nop))
		return func() {}, nil
	}

	mode, err := trace.ParseMode(modeName)
	if err != nil {
		return nil, err
	}
	format, err := trace.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}
	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: output,
		RingSize:   ringSize,
		Heartbeat:  every,
	})
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	ctx = trace.WithTracer(ctx, tracer)
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)

	hb := trace.StartHeartbeat(tracer, every)
	var once sync.Once
	return func() {
		once.Do(func() {
			hb.Stop()
			errOut := cmd.ErrOrStderr()
			if err := tracer.Flush(); err != nil {
				fmt.Fprintf(errOut, "trace: flush: %v\n", err)
			}
			if err := tracer.Close(); err != nil {
				fmt.Fprintf(errOut, "trace: close: %v\n", err)
			}
		})
	}, nil
}

// dumpTraceOnPanic is deferred by commands: on a panic it prints the ring
// buffer to stderr and panics again, so the last spans survive the crash.
func dumpTraceOnPanic(ctx context.Context) {
	r := recover()
	if r == nil {
		return
	}
	var ring *trace.RingTracer
	switch t := trace.FromContext(ctx).(type) {
	case *trace.RingTracer:
		ring = t
	case *trace.MultiTracer:
		ring = t.Ring()
	}
	if ring != nil {
		fmt.Fprintln(os.Stderr, "== trace ring ==")
		_ = ring.Dump(os.Stderr, trace.FormatText)
	}
	panic(r)
}

// setupProfiling starts the Go profilers named by --cpu-profile,
// --mem-profile and --runtime-trace.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	f := readFlags(cmd.Root().PersistentFlags())
	opts := prof.Options{
		CPU:   f.String("cpu-profile"),
		Mem:   f.String("mem-profile"),
		Trace: f.String("runtime-trace"),
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	session, err := prof.Start(opts)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "profiling: %v\n", err)
		}
	}, nil
}

func printTimings(out io.Writer, timer *observ.Timer) {
	if timer != nil {
		fmt.Fprint(out, timer.Summary())
	}
}

// timingDiagnostics appends the timing report for the machine formats.
func timingDiagnostics(diags []diag.Diagnostic, kind string, timer *observ.Timer) ([]diag.Diagnostic, error) {
	if timer == nil {
		return diags, nil
	}
	d, err := driver.TimingDiagnostic(kind, "", timer.Report())
	if err != nil {
		return diags, err
	}
	return append(diags, d), nil
}
