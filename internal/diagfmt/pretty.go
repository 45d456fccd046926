package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"lintel/internal/diag"
	"lintel/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Ожидается, что diags уже отсортированы (diag.SortDiagnostics).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <ID>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	p := &printer{
		w:      w,
		fs:     fs,
		opts:   opts,
		path:   paint(opts.Color, color.Bold),
		gutter: paint(opts.Color, color.FgHiBlack),
		note:   paint(opts.Color, color.FgCyan),
	}
	if p.opts.TabWidth <= 0 {
		p.opts.TabWidth = 4
	}
	for i := range diags {
		p.diagnostic(&diags[i])
	}
}

type printer struct {
	w      io.Writer
	fs     *source.FileSet
	opts   PrettyOpts
	path   *color.Color
	gutter *color.Color
	note   *color.Color
}

// paint builds a colour that ignores the global NO_COLOR detection: the
// caller already decided.
func paint(on bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if on {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func severityAttrs(sev diag.Severity) []color.Attribute {
	switch sev {
	case diag.SevBlocker, diag.SevCritical:
		return []color.Attribute{color.FgRed, color.Bold}
	case diag.SevMajor:
		return []color.Attribute{color.FgYellow, color.Bold}
	case diag.SevMinor:
		return []color.Attribute{color.FgCyan, color.Bold}
	default:
		return []color.Attribute{color.FgBlue}
	}
}

func (p *printer) diagnostic(d *diag.Diagnostic) {
	sev := paint(p.opts.Color, severityAttrs(d.Severity)...)
	path := diagPath(p.fs, d, p.opts.PathMode)

	f, ok := fileOf(p.fs, d)
	if !ok && path == "" {
		fmt.Fprintf(p.w, "%s %s: %s\n", sev.Sprint(d.Severity), d.ID(), d.Message)
		return
	}
	if !ok {
		fmt.Fprintf(p.w, "%s: %s %s: %s\n", p.path.Sprint(path), sev.Sprint(d.Severity), d.ID(), d.Message)
		return
	}

	start, end := p.fs.Resolve(d.Primary)
	fmt.Fprintf(p.w, "%s: %s %s: %s\n",
		p.path.Sprintf("%s:%d:%d", path, start.Line, start.Col),
		sev.Sprint(d.Severity), d.ID(), d.Message)
	p.snippet(f, start, end, sev)

	if !p.opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		if int(n.Span.File) >= p.fs.Len() {
			fmt.Fprintf(p.w, "  %s %s\n", p.note.Sprint("note:"), n.Msg)
			continue
		}
		ns, _ := p.fs.Resolve(n.Span)
		fmt.Fprintf(p.w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"),
			displayPath(p.fs, p.fs.Get(n.Span.File), p.opts.PathMode), ns.Line, ns.Col, n.Msg)
	}
}

// snippet prints the lines of the primary span plus Context lines around it.
// Only the first line of a multi-line span gets a marker.
func (p *printer) snippet(f *source.File, start, end source.LineCol, marker *color.Color) {
	lineCount, err := safecast.Conv[uint32](len(f.LineIdx) + 1)
	if err != nil {
		return
	}
	ctx := uint32(max(p.opts.Context, 0))
	first := start.Line - min(ctx, start.Line-1)
	last := min(max(end.Line, start.Line)+ctx, lineCount)
	if end.Line > start.Line && ctx == 0 {
		last = start.Line
	}
	width := len(strconv.FormatUint(uint64(last), 10))

	for ln := first; ln <= last; ln++ {
		text := f.GetLine(ln)
		fmt.Fprintf(p.w, "%s %s\n", p.gutter.Sprintf("%*d |", width, ln), p.expand(text))
		if ln != start.Line {
			continue
		}
		from := min(int(start.Col-1), len(text))
		to := len(text)
		if end.Line == start.Line {
			to = min(int(end.Col-1), len(text))
		}
		to = max(to, from)
		n := max(p.displayWidth(text[from:to]), 1)
		fmt.Fprintf(p.w, "%s %s%s\n",
			p.gutter.Sprintf("%*s |", width, ""),
			strings.Repeat(" ", p.displayWidth(text[:from])),
			marker.Sprint("^"+strings.Repeat("~", n-1)))
	}
}

func (p *printer) expand(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", p.opts.TabWidth))
}

// displayWidth counts terminal cells, so carets stay aligned under wide runes.
func (p *printer) displayWidth(s string) int {
	return runewidth.StringWidth(p.expand(s))
}
