package dispatch

import (
	"cmp"
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"slices"

	"golang.org/x/sync/errgroup"

	"lintel/internal/diag"
	"lintel/internal/rule"
	"lintel/internal/semantic"
	"lintel/internal/source"
	"lintel/internal/syntax"
	"lintel/internal/trace"
)

type Options struct {
	// IncludeGenerated runs every rule on generated code, not only the
	// rules that opt in.
	IncludeGenerated bool
	ParallelRules    bool
	// Jobs limits rule goroutines; 0 means GOMAXPROCS.
	Jobs int
}

// Dispatcher is immutable and may serve many trees concurrently.
type Dispatcher struct {
	rules []rule.Active
	opts  Options
}

func New(rules []rule.Active, opts Options) *Dispatcher {
	return &Dispatcher{rules: slices.Clone(rules), opts: opts}
}

// Rules returns the active rules in dispatch order.
func (d *Dispatcher) Rules() []rule.Active { return slices.Clone(d.rules) }

// entry orders findings: visit index in the walk, then rule, then report
// order inside one callback.
type entry struct {
	visit int
	rule  int
	seq   int
	d     diag.Diagnostic
}

// sink stamps findings with the current position of its walker.
type sink struct {
	visit, rule int
	entries     []entry
}

func (s *sink) Report(d diag.Diagnostic) error {
	s.entries = append(s.entries, entry{visit: s.visit, rule: s.rule, seq: len(s.entries), d: d})
	return nil
}

// Run dispatches over tree and returns the sealed findings. Cancellation is
// checked before every node; a cancelled run returns no findings.
func (d *Dispatcher) Run(ctx context.Context, tree *syntax.Tree, model *semantic.Model) (diag.List, error) {
	ctx, span := trace.BeginCtx(ctx, trace.ScopeFile, "dispatch:"+tree.Path())
	defer span.End("")

	regions := syntax.GeneratedRegions(tree)
	var entries []entry
	if d.opts.ParallelRules && len(d.rules) > 1 {
		var err error
		if entries, err = d.runParallel(ctx, tree, model, regions); err != nil {
			return diag.List{}, err
		}
	} else {
		all := make([]int, len(d.rules))
		for i := range all {
			all[i] = i
		}
		s := &sink{}
		if err := d.walk(ctx, tree, model, regions, all, s); err != nil {
			return diag.List{}, err
		}
		entries = s.entries
	}
	slices.SortStableFunc(entries, func(a, b entry) int {
		if c := cmp.Compare(a.visit, b.visit); c != 0 {
			return c
		}
		if c := cmp.Compare(a.rule, b.rule); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	var col diag.Collector
	for _, e := range entries {
		_ = col.Report(e.d) // fresh collector, never sealed here
	}
	span.WithExtra("findings", fmt.Sprint(col.Len()))
	return col.Seal(), nil
}

func (d *Dispatcher) runParallel(ctx context.Context, tree *syntax.Tree, model *semantic.Model, regions syntax.Regions) ([]entry, error) {
	jobs := d.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	sinks := make([]*sink, len(d.rules))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(d.rules)))
	for i := range d.rules {
		g.Go(func() error {
			rctx, sp := trace.BeginCtx(gctx, trace.ScopeRule, "rule:"+d.rules[i].ID)
			defer sp.End("")
			s := &sink{}
			sinks[i] = s
			return d.walk(rctx, tree, model, regions, []int{i}, s)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var out []entry
	for _, s := range sinks {
		out = append(out, s.entries...)
	}
	return out, nil
}

// walk runs the rules with the given indices. Visit numbering depends only
// on the tree, so walks of different rule subsets merge consistently.
func (d *Dispatcher) walk(ctx context.Context, tree *syntax.Tree, model *semantic.Model, regions syntax.Regions, idx []int, s *sink) error {
	ctxs := make([]*rule.Context, len(d.rules))
	for _, i := range idx {
		a := d.rules[i]
		ctxs[i] = rule.NewContext(ctx, tree, model, a.Descriptor, a.Severity, s)
	}
	skip := func(i int, sp source.Span) bool {
		return !d.opts.IncludeGenerated && !d.rules[i].AnalyzeGenerated && regions.Covers(sp)
	}

	visit := 0
	for node := range tree.Root().Preorder() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("dispatch %s: %w", tree.Path(), err)
		}
		s.visit = visit
		visit++
		if node.IsToken() {
			continue
		}
		kind := node.Kind()
		for _, i := range idx {
			for _, act := range d.rules[i].Actions {
				if !act.Interest.WantsNode(kind) || skip(i, node.Span()) {
					continue
				}
				s.rule = i
				ctxs[i].Visit(node, nil)
				d.call(ctxs[i], act, s, node.Span())
			}
		}
	}
	if model == nil {
		return nil
	}
	for _, sym := range model.DeclaredSymbols() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("dispatch %s: %w", tree.Path(), err)
		}
		s.visit = visit
		visit++
		at := symbolSpan(sym)
		for _, i := range idx {
			for _, act := range d.rules[i].Actions {
				if !act.Interest.WantsSymbol(sym.Kind) || skip(i, at) {
					continue
				}
				s.rule = i
				ctxs[i].Visit(syntax.Ref{}, sym)
				d.call(ctxs[i], act, s, at)
			}
		}
	}
	return nil
}

func symbolSpan(sym *semantic.Symbol) source.Span {
	if len(sym.Decls) == 0 {
		return source.Span{}
	}
	return sym.Decls[0].Span()
}

// call runs one action; a panic becomes a RuleFault finding and the walk
// goes on.
func (d *Dispatcher) call(c *rule.Context, act rule.Action, s *sink, at source.Span) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		id := c.Descriptor().ID
		trace.Point(trace.FromContext(c.Context()), trace.ScopeRule, "fault:"+id, string(debug.Stack()), trace.CurrentSpan(c.Context()).SpanID)
		_ = s.Report(diag.Diagnostic{
			Severity: diag.SevBlocker,
			Code:     diag.RuleFault,
			RuleID:   id,
			Message:  fmt.Sprintf("Internal Error: rule %s failed: %v", id, r),
			Primary:  at,
			Path:     c.Tree().Path(),
		})
	}()
	act.Run(c)
}
