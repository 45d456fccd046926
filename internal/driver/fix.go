package driver

import (
	"context"
	"errors"
	"fmt"

	"lintel/internal/diag"
	"lintel/internal/fix"
	"lintel/internal/trace"
)

// FixResult is the outcome of a fix run.
type FixResult struct {
	Analysis *Result
	// Plans holds one entry per file that had fix candidates.
	Plans   []*fix.FileResult
	Changes []fix.FileChange
}

// Changed reports whether any plan produced new content.
func (r *FixResult) Changed() bool {
	for _, p := range r.Plans {
		if p.Changed() {
			return true
		}
	}
	return false
}

// Diagnostics returns fix failures of all plans, sorted.
func (r *FixResult) Diagnostics() []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, p := range r.Plans {
		out = append(out, p.Diagnostics.Items()...)
	}
	diag.SortDiagnostics(out)
	return out
}

// Fix analyzes paths, plans fixes for the rule findings of every file and,
// when write is set, writes the changed files. The result cache is bypassed:
// fixes need trees.
func (a *Analyzer) Fix(ctx context.Context, paths []string, engine *fix.Engine, opts fix.Options, write bool) (*FixResult, error) {
	plain := *a
	plain.opts.Cache = nil
	analysis, err := plain.Analyze(ctx, paths)
	if err != nil {
		return nil, err
	}

	ctx, span := trace.BeginCtx(ctx, trace.ScopePass, "fix")
	defer span.End("")
	defer a.opts.Timer.Track("fix")()

	out := &FixResult{Analysis: analysis}
	for _, fr := range analysis.Files {
		if fr.Tree == nil {
			continue
		}
		findings := make([]diag.Diagnostic, 0, len(fr.Diagnostics))
		for _, d := range fr.Diagnostics {
			if d.Code == diag.RuleIssue {
				findings = append(findings, d)
			}
		}
		if len(findings) == 0 {
			continue
		}
		emit(a.opts.Progress, Event{File: fr.Path, Stage: StageFix, Status: StatusWorking})
		plan, err := engine.Plan(ctx, fr.Tree, findings, opts)
		switch {
		case errors.Is(err, fix.ErrNoFixes):
			if len(plan.Skipped) == 0 && plan.Diagnostics.Len() == 0 {
				emit(a.opts.Progress, Event{File: fr.Path, Stage: StageFix, Status: StatusDone})
				continue
			}
		case err != nil:
			emit(a.opts.Progress, Event{File: fr.Path, Stage: StageFix, Status: StatusError, Err: err})
			return out, err
		}
		out.Plans = append(out.Plans, plan)
		emit(a.opts.Progress, Event{File: fr.Path, Stage: StageFix, Status: StatusDone})
	}
	span.WithExtra("plans", fmt.Sprint(len(out.Plans)))

	if !write {
		return out, nil
	}
	changes, err := fix.Commit(analysis.FileSet, out.Plans)
	out.Changes = changes
	if err != nil {
		return out, err
	}
	return out, nil
}
