package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"lintel/internal/fix"
	"lintel/internal/source"
)

// FixPlan prints what a fix run did or would do to one file: every applied
// fix with the affected lines before and after, then the skipped ones.
func FixPlan(w io.Writer, fs *source.FileSet, res *fix.FileResult, opts PrettyOpts) {
	if res == nil {
		return
	}
	minus := paint(opts.Color, color.FgRed)
	plus := paint(opts.Color, color.FgGreen)
	head := paint(opts.Color, color.Bold).Sprintf("%s:", planPath(fs, res, opts.PathMode))
	for _, a := range res.Applied {
		fmt.Fprintf(w, "%s %s (%s, %s)\n", head, a.Title, a.RuleID, a.Applicability)
		before, after, err := previewEdit(fs, a.Edit)
		if err != nil {
			fmt.Fprintf(w, "  preview unavailable: %v\n", err)
			continue
		}
		for _, line := range before {
			fmt.Fprintf(w, "  %s\n", minus.Sprint("- "+line))
		}
		for _, line := range after {
			fmt.Fprintf(w, "  %s\n", plus.Sprint("+ "+line))
		}
	}
	for _, s := range res.Skipped {
		fmt.Fprintf(w, "%s skipped %s: %s\n", head, s.Title, s.Reason)
	}
}

func planPath(fs *source.FileSet, res *fix.FileResult, mode PathMode) string {
	if fs == nil || int(res.File) >= fs.Len() {
		return res.Path
	}
	return displayPath(fs, fs.Get(res.File), mode)
}

// previewEdit cuts the whole lines an edit touches and returns them as
// they are and as they would be after the edit.
func previewEdit(fs *source.FileSet, edit fix.TextEdit) (before, after []string, err error) {
	if fs == nil || int(edit.Span.File) >= fs.Len() {
		return nil, nil, fmt.Errorf("file %d is not loaded", edit.Span.File)
	}
	f := fs.Get(edit.Span.File)
	from, to := fs.Resolve(edit.Span)
	start, end := f.LineBlock(from.Line, to.Line)
	if edit.Span.Start < start || edit.Span.End > end || edit.Span.Start > edit.Span.End {
		return nil, nil, fmt.Errorf("edit %v lies outside lines %d-%d", edit.Span, from.Line, to.Line)
	}
	block := f.Content[start:end]
	lo, hi := edit.Span.Start-start, edit.Span.End-start

	var changed strings.Builder
	changed.Grow(len(block) - int(hi-lo) + len(edit.NewText))
	changed.Write(block[:lo])
	changed.WriteString(edit.NewText)
	changed.Write(block[hi:])
	return previewLines(string(block)), previewLines(changed.String()), nil
}

// previewLines splits text into lines; a trailing newline adds no empty line.
func previewLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
