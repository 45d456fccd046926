package syntax

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes an indented outline of r: one line per node with its span,
// tokens shown with their text.
func Dump(w io.Writer, r Ref) error {
	var sb strings.Builder
	dump(&sb, r, 0)
	_, err := io.WriteString(w, sb.String())
	return err
}

func dump(sb *strings.Builder, r Ref, depth int) {
	sp := r.Span()
	sb.WriteString(strings.Repeat("  ", depth))
	if tok, ok := r.Token(); ok {
		fmt.Fprintf(sb, "%s %s [%d..%d)", tok.Kind, strconv.Quote(tok.Text), sp.Start, sp.End)
		if r.node.Missing() {
			sb.WriteString(" missing")
		}
		sb.WriteByte('\n')
		return
	}
	fmt.Fprintf(sb, "%s [%d..%d)", r.Kind(), sp.Start, sp.End)
	if r.node.ContainsError() {
		sb.WriteString(" !")
	}
	sb.WriteByte('\n')
	for _, c := range r.Children() {
		dump(sb, c, depth+1)
	}
}
