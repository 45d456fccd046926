package rewrite

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"lintel/internal/token"
)

var space = token.Trivia{Kind: token.TriviaWhitespace, Text: " "}

func isSpace(tr token.Trivia) bool {
	return tr.Kind == token.TriviaWhitespace || tr.Kind == token.TriviaEOL
}

// endsBlank reports whether text followed by list ends in whitespace, so
// that nothing more is needed before an inserted comment.
func endsBlank(text string, list []token.Trivia) bool {
	if n := len(list); n > 0 {
		return isSpace(list[n-1])
	}
	r, _ := utf8.DecodeLastRuneInString(text)
	return text == "" || unicode.IsSpace(r)
}

// joinAfter trims the horizontal whitespace moved starts with and puts back
// a single space when what precedes the insertion point does not end blank.
func joinAfter(blank bool, moved []token.Trivia) []token.Trivia {
	for len(moved) > 0 && moved[0].Kind == token.TriviaWhitespace {
		moved = moved[1:]
	}
	if blank || len(moved) == 0 {
		return moved
	}
	return append([]token.Trivia{space}, moved...)
}

// trimRight drops the horizontal whitespace list ends with.
func trimRight(list []token.Trivia) []token.Trivia {
	n := len(list)
	for n > 0 && list[n-1].Kind == token.TriviaWhitespace {
		n--
	}
	return list[:n]
}

// indentation is the whitespace after the last end-of-line of list.
func indentation(list []token.Trivia) []token.Trivia {
	i := len(list)
	for i > 0 && list[i-1].Kind == token.TriviaWhitespace {
		i--
	}
	return list[i:]
}

func hasDirective(list []token.Trivia) bool {
	for _, tr := range list {
		if tr.Kind == token.TriviaDirective {
			return true
		}
	}
	return false
}

// detachedComment reports a comment separated from the following token by a
// blank line. Such a comment documents whatever comes next, not the node.
func detachedComment(leading []token.Trivia) bool {
	for i, tr := range leading {
		if !tr.IsComment() {
			continue
		}
		eols := 0
		for _, after := range leading[i+1:] {
			switch {
			case after.Kind == token.TriviaEOL:
				eols++
			case after.IsComment():
				eols = 0
			}
		}
		if eols >= 2 {
			return true
		}
	}
	return false
}

func multiLineBlock(list []token.Trivia) bool {
	for _, tr := range list {
		if (tr.Kind == token.TriviaBlockComment || tr.Kind == token.TriviaDocComment) && strings.ContainsAny(tr.Text, "\r\n") {
			return true
		}
	}
	return false
}

// openLineComment reports a line comment that no end-of-line follows; moved
// elsewhere it would swallow code.
func openLineComment(list []token.Trivia) bool {
	open := false
	for _, tr := range list {
		switch {
		case tr.Kind == token.TriviaLineComment || (tr.Kind == token.TriviaDocComment && strings.HasPrefix(tr.Text, "///")):
			open = true
		case tr.Kind == token.TriviaEOL:
			open = false
		}
	}
	return open
}

func isWordRune(r rune) bool { return r == '_' || r == '@' || unicode.IsLetter(r) || unicode.IsDigit(r) }

// glued reports whether two token texts would lex as one if nothing
// separated them.
func glued(left, right string) bool {
	l, _ := utf8.DecodeLastRuneInString(left)
	r, _ := utf8.DecodeRuneInString(right)
	return left != "" && right != "" && isWordRune(l) && isWordRune(r)
}
