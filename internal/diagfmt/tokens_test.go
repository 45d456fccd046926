package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"lintel/internal/source"
	"lintel/internal/token"
)

func sampleTokens() (*source.FileSet, []token.Token) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.cs", []byte("  x"))
	toks := []token.Token{
		{
			Kind:    token.Ident,
			Span:    source.Span{File: id, Start: 2, End: 3},
			Text:    "x",
			Leading: []token.Trivia{{Kind: token.TriviaWhitespace, Span: source.Span{File: id, End: 2}, Text: "  "}},
		},
		{Kind: token.EOF, Span: source.Span{File: id, Start: 3, End: 3}},
		{Kind: token.Ident, Span: source.Span{File: id, Start: 3, End: 3}, Text: "past-eof"},
	}
	return fs, toks
}

func TestFormatTokensJSON(t *testing.T) {
	fs, toks := sampleTokens()
	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, toks, fs); err != nil {
		t.Fatalf("FormatTokensJSON: %v", err)
	}
	var got []TokenJSON
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("tokens after EOF must be dropped, got %d", len(got))
	}
	if got[0].Line != 1 || got[0].Column != 3 || len(got[0].Leading) != 1 || got[0].Leading[0].Text != "  " {
		t.Fatalf("unexpected first token %+v", got[0])
	}
}

func TestFormatTokensPretty(t *testing.T) {
	fs, toks := sampleTokens()
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatalf("FormatTokensPretty: %v", err)
	}
	if n := bytes.Count(buf.Bytes(), []byte{'\n'}); n != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", n, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"x" at 1:3-1:4 (leading: `)) {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}
