package diagfmt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"lintel/internal/diag"
	"lintel/internal/source"
)

// Short writes one line per diagnostic, compiler style:
//
//	path:line:col: severity id: message
//
// Diagnostics without a location drop the line and column. Messages are
// flattened to a single line so the output greps and diffs cleanly.
func Short(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts ShortOpts) error {
	bw := bufio.NewWriter(w)
	n := len(diags)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	for i := range n {
		d := &diags[i]
		loc := diagPath(fs, d, opts.PathMode)
		if _, ok := fileOf(fs, d); ok {
			start, _ := fs.Resolve(d.Primary)
			loc = fmt.Sprintf("%s:%d:%d", loc, start.Line, start.Col)
		}
		if loc == "" {
			loc = "lintel"
		}
		fmt.Fprintf(bw, "%s: %s %s: %s\n", loc, strings.ToLower(d.Severity.String()), d.ID(), oneLine(d.Message))
		if !opts.IncludeNotes {
			continue
		}
		for _, note := range d.Notes {
			if fs == nil || int(note.Span.File) >= fs.Len() {
				fmt.Fprintf(bw, "  note: %s\n", oneLine(note.Msg))
				continue
			}
			start, _ := fs.Resolve(note.Span)
			path := displayPath(fs, fs.Get(note.Span.File), opts.PathMode)
			fmt.Fprintf(bw, "  %s:%d:%d: note: %s\n", path, start.Line, start.Col, oneLine(note.Msg))
		}
	}
	if hidden := len(diags) - n; hidden > 0 {
		fmt.Fprintf(bw, "... %d more diagnostic(s) not shown\n", hidden)
	}
	return bw.Flush()
}

func oneLine(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
