package syntax

import (
	"path/filepath"
	"strings"

	"lintel/internal/source"
	"lintel/internal/token"
)

var generatedSuffixes = []string{".g.cs", ".g.i.cs", ".generated.cs", ".designer.cs"}

// IsGeneratedPath reports file names conventionally used for generated code.
func IsGeneratedPath(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	for _, suf := range generatedSuffixes {
		if strings.HasSuffix(base, suf) {
			return true
		}
	}
	return false
}

// Regions is a sorted set of non-overlapping spans.
type Regions []source.Span

// Covers reports whether the span starts inside one of the regions.
func (rs Regions) Covers(sp source.Span) bool {
	for _, r := range rs {
		if r.File == sp.File && r.Start <= sp.Start && sp.Start < max(r.End, r.Start+1) {
			return true
		}
	}
	return false
}

// GeneratedRegions returns the parts of the tree that hold generated code.
// The whole file is generated when its path says so or when the comments
// before the first token mention <auto-generated>. Otherwise regions run from
// a "// <auto-generated>" comment to the matching "// </auto-generated>"
// comment, or to the end of the file when unterminated.
func GeneratedRegions(t *Tree) Regions {
	whole := source.Span{File: t.file, Start: 0, End: t.root.width}
	if IsGeneratedPath(t.path) {
		return Regions{whole}
	}

	var out Regions
	var off uint32
	open := false
	var openAt uint32
	firstToken := true
	visit := func(list []token.Trivia, header bool) bool {
		for _, tr := range list {
			start := off
			off += uint32(len(tr.Text)) // #nosec G115 -- bounded by tree width
			if !tr.IsComment() {
				continue
			}
			body := commentBody(tr.Text)
			switch {
			case header && (strings.Contains(body, "<auto-generated") || strings.Contains(body, "<autogenerated")):
				return true
			case strings.HasPrefix(body, "<auto-generated") && !open:
				open, openAt = true, start
			case strings.HasPrefix(body, "</auto-generated") && open:
				out = append(out, source.Span{File: t.file, Start: openAt, End: off})
				open = false
			}
		}
		return false
	}

	wholeFile := false
	t.root.Tokens(func(n *Node) {
		if wholeFile {
			return
		}
		if visit(n.tok.Leading, firstToken) {
			wholeFile = true
			return
		}
		firstToken = false
		off += uint32(len(n.tok.Text)) // #nosec G115 -- bounded by tree width
		visit(n.tok.Trailing, false)
	})
	if wholeFile {
		return Regions{whole}
	}
	if open {
		out = append(out, source.Span{File: t.file, Start: openAt, End: whole.End})
	}
	return out
}

func commentBody(text string) string {
	switch {
	case strings.HasPrefix(text, "//"):
		text = strings.TrimLeft(text, "/")
	case strings.HasPrefix(text, "/*"):
		text = strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
	}
	return strings.TrimSpace(text)
}
