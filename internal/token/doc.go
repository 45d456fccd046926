// Package token defines lexical token kinds and trivia for lintel.
// Invariants:
//   - Token.Text is exactly the source bytes covered by Token.Span.
//   - Every byte of the input belongs either to a token or to a trivia fragment.
//   - Trailing trivia of a token runs up to and including the first end-of-line;
//     everything else before the next token is that token's leading trivia.
//   - Each end-of-line ("\n" or "\r\n") is a separate TriviaEOL fragment.
//   - Preprocessor lines (#region, #if, ...) are TriviaDirective and never
//     appear in the token stream.
//   - Predefined type names (int, string, object, ...) are keywords; the
//     semantic layer maps them to well-known types.
package token
