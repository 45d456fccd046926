package driver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"lintel/internal/diag"
	"lintel/internal/dispatch"
	"lintel/internal/observ"
	"lintel/internal/parser"
	"lintel/internal/rule"
	"lintel/internal/semantic"
	"lintel/internal/source"
	"lintel/internal/syntax"
	"lintel/internal/trace"
	"lintel/internal/tsparse"
)

// Options configures an Analyzer.
type Options struct {
	// Jobs limits files analyzed at once; 0 means GOMAXPROCS.
	Jobs             int
	ParallelRules    bool
	IncludeGenerated bool
	// MaxErrors caps lexer and parser diagnostics per file (0 = no limit).
	MaxErrors uint
	// CrossCheck parses every file with tree-sitter as well and reports
	// its syntax errors next to the native ones.
	CrossCheck bool
	Selection  rule.Selection
	Cache      *Cache
	Timer      *observ.Timer
	Progress   ProgressSink
	// Version goes into the cache fingerprint so upgrades never reuse
	// findings of older rules.
	Version string
}

// FileResult is the outcome of one file.
type FileResult struct {
	Path string
	File source.FileID
	// Tree and Model are nil for cached and failed files.
	Tree        *syntax.Tree
	Model       *semantic.Model
	Diagnostics []diag.Diagnostic
	Cached      bool
	Err         error
}

// Result collects a whole run.
type Result struct {
	FileSet *source.FileSet
	Files   []*FileResult
	Rules   []rule.Active
}

// Diagnostics returns the findings of every file, sorted.
func (r *Result) Diagnostics() []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, f := range r.Files {
		out = append(out, f.Diagnostics...)
	}
	diag.SortDiagnostics(out)
	return out
}

// HasAtLeast reports whether any diagnostic is at least sev.
func (r *Result) HasAtLeast(sev diag.Severity) bool {
	for _, f := range r.Files {
		for _, d := range f.Diagnostics {
			if d.Severity >= sev {
				return true
			}
		}
	}
	return false
}

// Analyzer runs the per-file pipeline: load, parse, bind, dispatch.
// One Analyzer may serve several runs; it shares the binder library and
// the dispatcher between files.
type Analyzer struct {
	opts        Options
	active      []rule.Active
	binder      *semantic.DeclBinder
	dispatcher  *dispatch.Dispatcher
	fingerprint string
}

// New selects the active rules from reg.
func New(reg *rule.Registry, opts Options) (*Analyzer, error) {
	active, err := reg.Select(opts.Selection)
	if err != nil {
		return nil, err
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.GOMAXPROCS(0)
	}
	return &Analyzer{
		opts:        opts,
		active:      active,
		binder:      semantic.NewDeclBinder(nil),
		dispatcher:  dispatch.New(active, dispatch.Options{IncludeGenerated: opts.IncludeGenerated, ParallelRules: opts.ParallelRules}),
		fingerprint: fingerprint(active, opts),
	}, nil
}

// Rules returns the active rules.
func (a *Analyzer) Rules() []rule.Active { return slices.Clone(a.active) }

// Fingerprint identifies the rule set and every option that changes
// findings; it is part of each cache key.
func (a *Analyzer) Fingerprint() string { return a.fingerprint }

// WithProgress returns a copy of a that reports to sink. The copy shares
// the binder and the dispatcher.
func (a *Analyzer) WithProgress(sink ProgressSink) *Analyzer {
	cp := *a
	cp.opts.Progress = sink
	return &cp
}

func fingerprint(active []rule.Active, opts Options) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "v=%s;gen=%t;xc=%t;max=%d;", opts.Version, opts.IncludeGenerated, opts.CrossCheck, opts.MaxErrors)
	for _, r := range active {
		fmt.Fprintf(&sb, "%s:%d;", r.ID, r.Severity)
	}
	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:8])
}

// Analyze lists the sources under paths and analyzes them. Problems of a
// single file become diagnostics of that file; the error is reserved for
// cancellation and listing failures.
func (a *Analyzer) Analyze(ctx context.Context, paths []string) (*Result, error) {
	ctx, span := trace.BeginCtx(ctx, trace.ScopeDriver, "analyze")
	defer span.End("")

	files, err := ListSources(paths)
	if err != nil {
		return nil, err
	}
	span.WithExtra("files", fmt.Sprint(len(files)))

	fs, results := a.load(ctx, baseDirFor(paths), files)
	res := &Result{FileSet: fs, Files: results, Rules: a.Rules()}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.Jobs)
	for _, fr := range results {
		if fr.Err != nil {
			continue
		}
		emit(a.opts.Progress, Event{File: fr.Path, Stage: StageParse, Status: StatusQueued})
		g.Go(func() error {
			return a.analyzeFile(gctx, fs.Get(fr.File), fr)
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}
	return res, nil
}

// load reads files sequentially; FileSet is not safe for concurrent Add.
func (a *Analyzer) load(ctx context.Context, base string, files []string) (*source.FileSet, []*FileResult) {
	_, span := trace.BeginCtx(ctx, trace.ScopePass, "load")
	defer span.End("")
	defer a.opts.Timer.Track("load")()

	fs := source.NewFileSetWithBase(base)
	results := make([]*FileResult, 0, len(files))
	for _, file := range files {
		// события и ошибки загрузки используют тот же вид пути, что и FileSet
		path := filepath.ToSlash(file)
		emit(a.opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
		id, err := fs.Load(file)
		if err != nil {
			d := diag.New(diag.SevBlocker, diag.IOLoadFileError, source.Span{}, err.Error()).WithPath(path)
			results = append(results, &FileResult{Path: path, Err: err, Diagnostics: []diag.Diagnostic{d}})
			emit(a.opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
			continue
		}
		results = append(results, &FileResult{Path: fs.Get(id).Path, File: id})
	}
	return fs, results
}

func (a *Analyzer) analyzeFile(ctx context.Context, f *source.File, fr *FileResult) error {
	ctx, span := trace.BeginCtx(ctx, trace.ScopeFile, f.Path)
	defer span.End("")
	begin := time.Now()

	key := KeyFor(f, a.fingerprint)
	if a.opts.Cache != nil {
		var payload CachePayload
		ok, err := a.opts.Cache.Get(key, &payload)
		switch {
		case err != nil:
			fr.Diagnostics = append(fr.Diagnostics, cacheProblem(f.Path, err))
		case ok:
			fr.Cached = true
			fr.Diagnostics = fromPayload(&payload, f)
			span.WithExtra("cache", "hit")
			emit(a.opts.Progress, Event{File: f.Path, Stage: StageDispatch, Status: StatusCached, Elapsed: time.Since(begin)})
			return nil
		}
	}

	diags, tree, model, err := a.run(ctx, f)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		fr.Err = err
		fr.Diagnostics = append(fr.Diagnostics, diags...)
		emit(a.opts.Progress, Event{File: f.Path, Stage: StageDispatch, Status: StatusError, Err: err, Elapsed: time.Since(begin)})
		return nil
	}
	fr.Tree, fr.Model = tree, model
	fr.Diagnostics = append(fr.Diagnostics, diags...)

	if a.opts.Cache != nil {
		if err := a.opts.Cache.Put(key, toPayload(f.Path, diags)); err != nil {
			fr.Diagnostics = append(fr.Diagnostics, cacheProblem(f.Path, err))
		}
	}
	emit(a.opts.Progress, Event{File: f.Path, Stage: StageDispatch, Status: StatusDone, Elapsed: time.Since(begin)})
	return nil
}

// run parses, binds and dispatches one file. A file that cannot be
// tokenized yields its input error as a diagnostic and a non-nil error.
func (a *Analyzer) run(ctx context.Context, f *source.File) ([]diag.Diagnostic, *syntax.Tree, *semantic.Model, error) {
	var out []diag.Diagnostic

	emit(a.opts.Progress, Event{File: f.Path, Stage: StageParse, Status: StatusWorking})
	stop := a.opts.Timer.Track("parse")
	res, err := parser.Parse(f, parser.Options{MaxErrors: a.opts.MaxErrors})
	stop()
	if err != nil {
		var pe *parser.ParseError
		if errors.As(err, &pe) {
			out = append(out, diag.New(diag.SevBlocker, pe.Err.Code, pe.Err.Span, pe.Err.Msg).WithPath(f.Path))
		}
		return out, nil, nil, err
	}
	out = append(out, res.Diagnostics...)

	if a.opts.CrossCheck {
		stop = a.opts.Timer.Track("tree-sitter")
		xs, err := crossCheck(ctx, f)
		stop()
		if err != nil {
			return out, nil, nil, err
		}
		out = append(out, xs...)
	}

	emit(a.opts.Progress, Event{File: f.Path, Stage: StageBind, Status: StatusWorking})
	stop = a.opts.Timer.Track("bind")
	model, err := a.binder.Bind(ctx, res.Tree)
	stop()
	if err != nil {
		return out, nil, nil, err
	}

	emit(a.opts.Progress, Event{File: f.Path, Stage: StageDispatch, Status: StatusWorking})
	stop = a.opts.Timer.Track("dispatch")
	found, err := a.dispatcher.Run(ctx, res.Tree, model)
	stop()
	if err != nil {
		return out, nil, nil, err
	}
	out = append(out, found.Items()...)
	diag.SortDiagnostics(out)
	return out, res.Tree, model, nil
}

func crossCheck(ctx context.Context, f *source.File) ([]diag.Diagnostic, error) {
	tree, err := tsparse.Parse(ctx, f)
	if err != nil {
		return nil, err
	}
	defer tree.Close()
	return tree.Diagnostics(), nil
}

func cacheProblem(path string, err error) diag.Diagnostic {
	return diag.New(diag.SevInfo, diag.IOCacheError, source.Span{}, "result cache: "+err.Error()).WithPath(path)
}
