package token

import "lintel/internal/source"

type TriviaKind uint8

const (
	TriviaWhitespace TriviaKind = iota
	TriviaEOL
	TriviaLineComment
	TriviaBlockComment
	TriviaDocComment
	TriviaDirective
)

var triviaNames = [...]string{"Whitespace", "EOL", "LineComment", "BlockComment", "DocComment", "Directive"}

func (k TriviaKind) String() string {
	if int(k) < len(triviaNames) {
		return triviaNames[k]
	}
	return "TriviaKind(?)"
}

// Trivia is a non-semantic fragment attached to a token.
// Span is the position in the lexed file and goes stale once the tree is edited.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// IsComment reports whether the fragment is any kind of comment.
func (t Trivia) IsComment() bool {
	return t.Kind == TriviaLineComment || t.Kind == TriviaBlockComment || t.Kind == TriviaDocComment
}

// TriviaWidth returns the summed byte length of the fragments.
func TriviaWidth(list []Trivia) int {
	n := 0
	for _, tr := range list {
		n += len(tr.Text)
	}
	return n
}

// HasEOL reports whether any fragment is an end-of-line.
func HasEOL(list []Trivia) bool {
	for _, tr := range list {
		if tr.Kind == TriviaEOL {
			return true
		}
	}
	return false
}

// HasComment reports whether any fragment is a comment.
func HasComment(list []Trivia) bool {
	for _, tr := range list {
		if tr.IsComment() {
			return true
		}
	}
	return false
}
