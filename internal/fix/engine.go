package fix

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"lintel/internal/annotate"
	"lintel/internal/diag"
	"lintel/internal/rewrite"
	"lintel/internal/source"
	"lintel/internal/syntax"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// Mode determines selection strategy for fixes.
type Mode uint8

const (
	ModeOnce Mode = iota
	ModeAll
	ModeID
)

// Options configures how fixes are selected.
type Options struct {
	Mode     Mode
	TargetID string
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID            string
	Title         string
	RuleID        string
	Message       string
	Applicability Applicability
	Edit          TextEdit
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileResult is the outcome of fixing one file. Content is the new text
// when Changed reports true.
type FileResult struct {
	Path        string
	File        source.FileID
	Content     []byte
	Applied     []AppliedFix
	Skipped     []SkippedFix
	Diagnostics diag.List
}

// Changed reports whether at least one edit went in.
func (r *FileResult) Changed() bool { return len(r.Applied) > 0 }

// FileChange summarises modifications written to a file.
type FileChange struct {
	Path      string
	EditCount int
}

type candidate struct {
	diag   diag.Diagnostic
	action Action
	order  int
}

// Engine owns the fix providers.
type Engine struct {
	providers []*Provider
}

func NewEngine(providers ...*Provider) *Engine {
	return &Engine{providers: providers}
}

// ProviderFor returns the first provider fixing ruleID.
func (e *Engine) ProviderFor(ruleID string) *Provider {
	for _, p := range e.providers {
		if p.Fixes(ruleID) {
			return p
		}
	}
	return nil
}

// Plan selects fixes for the diagnostics of one tree and computes the new
// file content. Every action runs against the same original tree; the
// resulting edits are merged and conflicting ones skipped. Nothing is
// written.
func (e *Engine) Plan(ctx context.Context, tree *syntax.Tree, diagnostics []diag.Diagnostic, opts Options) (*FileResult, error) {
	result := &FileResult{
		Path:    tree.Path(),
		File:    tree.File(),
		Applied: make([]AppliedFix, 0),
		Skipped: make([]SkippedFix, 0),
	}

	candidates := e.gatherCandidates(tree, diagnostics)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(candidates)

	selected, selectionSkips := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, selectionSkips...)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	var failures diag.Collector
	accepted := make([]TextEdit, 0, len(selected))
	for _, cand := range selected {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		out, err := cand.action.Apply(tree)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedFix{ID: cand.action.ID, Title: cand.action.Title, Reason: err.Error()})
			_ = failures.Report(notApplied(cand, err))
			continue
		}
		edit, changed := treeEdit(tree, out)
		switch {
		case !changed:
			result.Skipped = append(result.Skipped, SkippedFix{ID: cand.action.ID, Title: cand.action.Title, Reason: "fix produced no change"})
			continue
		case conflictsWithExisting(accepted, edit):
			result.Skipped = append(result.Skipped, SkippedFix{ID: cand.action.ID, Title: cand.action.Title, Reason: "conflicts with previously applied edits"})
			continue
		}
		accepted = append(accepted, edit)
		result.Applied = append(result.Applied, AppliedFix{
			ID:            cand.action.ID,
			Title:         cand.action.Title,
			RuleID:        cand.diag.RuleID,
			Message:       cand.diag.Message,
			Applicability: cand.action.Applicability,
			Edit:          edit,
		})
	}
	result.Diagnostics = failures.Seal()

	if len(accepted) == 0 {
		return result, ErrNoFixes
	}
	content, err := applyEdits([]byte(tree.Text()), accepted)
	if err != nil {
		return result, fmt.Errorf("fix %s: %w", tree.Path(), err)
	}
	result.Content = content
	return result, nil
}

// notApplied is the diagnostic reported in place of a failed fix.
func notApplied(cand candidate, err error) diag.Diagnostic {
	code := diag.FixNotApplied
	var lost *annotate.AnnotationLostError
	switch {
	case errors.Is(err, rewrite.ErrAmbiguous):
		code = diag.FixAmbiguousTrivia
	case errors.As(err, &lost):
		code = diag.FixAnnotationLost
	}
	d := diag.New(diag.SevInfo, code, cand.diag.Primary, fmt.Sprintf("fix %q for %s could not be applied: %v", cand.action.Title, cand.diag.RuleID, err))
	d.RuleID = cand.diag.RuleID
	return d.WithPath(cand.diag.Path)
}

// gatherCandidates asks the providers for actions. Actions without an id get
// one built from the rule id, the diagnostic span and the action index.
func (e *Engine) gatherCandidates(tree *syntax.Tree, diagnostics []diag.Diagnostic) []candidate {
	cands := make([]candidate, 0)
	order := 0
	for _, d := range diagnostics {
		if d.Code != diag.RuleIssue {
			continue
		}
		p := e.ProviderFor(d.RuleID)
		if p == nil {
			continue
		}
		for idx, a := range p.actions(tree, d) {
			if a.ID == "" {
				a.ID = fmt.Sprintf("%s-%d-%d-%d", d.RuleID, d.Primary.Start, d.Primary.End, idx)
			}
			cands = append(cands, candidate{diag: d, action: a, order: order})
			order++
		}
	}
	return cands
}

// sortCandidates orders by span start, span end, insertion order, rule id,
// preference, id and title.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].diag, candidates[j].diag
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if candidates[i].order != candidates[j].order {
			return candidates[i].order < candidates[j].order
		}
		if di.RuleID != dj.RuleID {
			return di.RuleID < dj.RuleID
		}
		if candidates[i].action.IsPreferred != candidates[j].action.IsPreferred {
			return candidates[i].action.IsPreferred
		}
		if candidates[i].action.ID != candidates[j].action.ID {
			return candidates[i].action.ID < candidates[j].action.ID
		}
		return candidates[i].action.Title < candidates[j].action.Title
	})
}

func selectCandidates(candidates []candidate, opts Options) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ModeID:
		for _, cand := range candidates {
			if cand.action.ID == opts.TargetID {
				return []candidate{cand}, nil
			}
		}
		return nil, []SkippedFix{{
			ID:     opts.TargetID,
			Reason: "fix id not found",
		}}
	case ModeAll:
		selected := make([]candidate, 0, len(candidates))
		skipped := make([]SkippedFix, 0)
		seen := make(map[findingKey]bool)
		for _, cand := range candidates {
			if cand.action.Applicability != AlwaysSafe {
				skipped = append(skipped, SkippedFix{
					ID:     cand.action.ID,
					Title:  cand.action.Title,
					Reason: fmt.Sprintf("applicability is %s", cand.action.Applicability),
				})
				continue
			}
			// одна правка на диагностику
			if key := keyOf(cand.diag); !seen[key] {
				seen[key] = true
				selected = append(selected, cand)
			}
		}
		return selected, skipped
	case ModeOnce:
		for _, cand := range candidates {
			if cand.action.Applicability == AlwaysSafe {
				return []candidate{cand}, nil
			}
		}
		return candidates[:1], nil
	default:
		return nil, nil
	}
}

type findingKey struct {
	rule    string
	span    source.Span
	message string
}

func keyOf(d diag.Diagnostic) findingKey {
	return findingKey{rule: d.RuleID, span: d.Primary, message: d.Message}
}

// Commit writes changed results to disk, keeping file modes and byte order
// marks. Virtual files are refused.
func Commit(fs *source.FileSet, results []*FileResult) ([]FileChange, error) {
	changes := make([]FileChange, 0, len(results))
	baseDir := fs.BaseDir()
	for _, res := range results {
		if res == nil || !res.Changed() {
			continue
		}
		file := fs.Get(res.File)
		if file == nil {
			return changes, fmt.Errorf("commit %s: unknown file", res.Path)
		}
		if file.Flags&source.FileVirtual != 0 {
			return changes, fmt.Errorf("commit %s: target file is virtual", res.Path)
		}

		mode := os.FileMode(0o644)
		if info, err := os.Stat(file.Path); err == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(file.Path, file.RestoreBOM(res.Content), mode); err != nil {
			return changes, fmt.Errorf("write %s: %w", file.Path, err)
		}
		changes = append(changes, FileChange{
			Path:      file.FormatPath("relative", baseDir),
			EditCount: len(res.Applied),
		})
	}
	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].Path < changes[j].Path
	})
	return changes, nil
}
