package diagfmt

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"lintel/internal/source"
	"lintel/internal/token"
)

// TriviaJSON is one trivia piece in the token dump.
type TriviaJSON struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// TokenJSON is one token in the token dump. Offsets are bytes, line and
// column are 1-based.
type TokenJSON struct {
	Kind     string       `json:"kind"`
	Text     string       `json:"text,omitempty"`
	Start    uint32       `json:"start"`
	End      uint32       `json:"end"`
	Line     uint32       `json:"line"`
	Column   uint32       `json:"column"`
	Leading  []TriviaJSON `json:"leading,omitempty"`
	Trailing []TriviaJSON `json:"trailing,omitempty"`
}

// tokensUpToEOF trims anything after the first EOF token.
func tokensUpToEOF(toks []token.Token) []token.Token {
	for i, t := range toks {
		if t.Kind == token.EOF {
			return toks[:i+1]
		}
	}
	return toks
}

// FormatTokensPretty prints one token per line with its position and the
// kinds of its trivia.
func FormatTokensPretty(w io.Writer, toks []token.Token, fs *source.FileSet) error {
	bw := bufio.NewWriter(w)
	for i, tok := range tokensUpToEOF(toks) {
		start, end := fs.Resolve(tok.Span)
		fmt.Fprintf(bw, "%3d: %-15s", i+1, tok.Kind)
		if tok.Text != "" {
			fmt.Fprintf(bw, " %q", tok.Text)
		}
		fmt.Fprintf(bw, " at %s-%s", start, end)
		writeTriviaKinds(bw, "leading", tok.Leading)
		writeTriviaKinds(bw, "trailing", tok.Trailing)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func writeTriviaKinds(w io.Writer, label string, list []token.Trivia) {
	if len(list) == 0 {
		return
	}
	kinds := make([]string, len(list))
	for i, tr := range list {
		kinds[i] = tr.Kind.String()
	}
	fmt.Fprintf(w, " (%s: %s)", label, strings.Join(kinds, ", "))
}

// FormatTokensJSON writes the tokens as an indented JSON array.
func FormatTokensJSON(w io.Writer, toks []token.Token, fs *source.FileSet) error {
	toks = tokensUpToEOF(toks)
	out := make([]TokenJSON, len(toks))
	for i, tok := range toks {
		pos, _ := fs.Resolve(tok.Span)
		out[i] = TokenJSON{
			Kind:     tok.Kind.String(),
			Text:     tok.Text,
			Start:    tok.Span.Start,
			End:      tok.Span.End,
			Line:     pos.Line,
			Column:   pos.Col,
			Leading:  triviaJSON(tok.Leading),
			Trailing: triviaJSON(tok.Trailing),
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func triviaJSON(list []token.Trivia) []TriviaJSON {
	if len(list) == 0 {
		return nil
	}
	out := make([]TriviaJSON, len(list))
	for i, tr := range list {
		out[i] = TriviaJSON{Kind: tr.Kind.String(), Text: tr.Text}
	}
	return out
}
