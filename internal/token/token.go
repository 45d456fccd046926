package token

import (
	"strings"

	"lintel/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind     Kind
	Span     source.Span
	Text     string
	Leading  []Trivia
	Trailing []Trivia
}

// IsLiteral reports whether the token is a literal.
func (t Token) IsLiteral() bool { return t.Kind.IsLiteral() }

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// FullWidth is the byte length of leading trivia, text and trailing trivia.
func (t Token) FullWidth() int {
	return TriviaWidth(t.Leading) + len(t.Text) + TriviaWidth(t.Trailing)
}

// FullText renders the token with its trivia.
func (t Token) FullText() string {
	var sb strings.Builder
	sb.Grow(t.FullWidth())
	t.WriteTo(&sb)
	return sb.String()
}

// WriteTo appends leading trivia, text and trailing trivia to sb.
func (t Token) WriteTo(sb *strings.Builder) {
	for _, tr := range t.Leading {
		sb.WriteString(tr.Text)
	}
	sb.WriteString(t.Text)
	for _, tr := range t.Trailing {
		sb.WriteString(tr.Text)
	}
}
