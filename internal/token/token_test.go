package token_test

import (
	"testing"

	"lintel/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	for _, s := range []string{"class", "abstract", "base", "while", "ulong"} {
		k, ok := token.LookupKeyword(s)
		if !ok || !k.IsKeyword() {
			t.Fatalf("%q should be a keyword", s)
		}
		if k.String() != s {
			t.Fatalf("String() = %q, want %q", k.String(), s)
		}
	}
	for _, s := range []string{"Class", "var", "IndexOf", ""} {
		if _, ok := token.LookupKeyword(s); ok {
			t.Fatalf("%q must not be a keyword", s)
		}
	}
}

func TestKindPredicates(t *testing.T) {
	if !token.KwString.IsPredefinedType() || token.KwClass.IsPredefinedType() {
		t.Fatalf("predefined type classification broken")
	}
	if !token.KwAbstract.IsModifier() || token.KwBase.IsModifier() {
		t.Fatalf("modifier classification broken")
	}
	for _, k := range []token.Kind{token.IntLit, token.StringLit, token.KwNull, token.KwTrue} {
		if !k.IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	if token.Plus.IsLiteral() || token.Ident.IsKeyword() {
		t.Fatalf("operator/ident misclassified")
	}
	if !token.Ident.IsWordLike() || token.LBrace.IsWordLike() {
		t.Fatalf("word-like classification broken")
	}
}

func TestFullText(t *testing.T) {
	tok := token.Token{
		Kind:     token.Ident,
		Text:     "x",
		Leading:  []token.Trivia{{Kind: token.TriviaWhitespace, Text: "  "}},
		Trailing: []token.Trivia{{Kind: token.TriviaLineComment, Text: "// c"}, {Kind: token.TriviaEOL, Text: "\n"}},
	}
	if got := tok.FullText(); got != "  x// c\n" {
		t.Fatalf("FullText = %q", got)
	}
	if tok.FullWidth() != len("  x// c\n") {
		t.Fatalf("FullWidth = %d", tok.FullWidth())
	}
	if !token.HasEOL(tok.Trailing) || token.HasEOL(tok.Leading) {
		t.Fatalf("HasEOL misreports")
	}
	if !token.HasComment(tok.Trailing) {
		t.Fatalf("HasComment misreports")
	}
}
