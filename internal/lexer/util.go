package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
)

const utf8RuneSelf = utf8.RuneSelf

// peekRune декодирует руну под курсором; на EOF size == 0.
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	if b := lx.cursor.Peek(); b < utf8RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
}

// bumpRune advances past the rune under the cursor.
func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	if sz == 0 {
		return
	}
	usz, err := safecast.Conv[uint32](sz)
	if err != nil {
		panic(fmt.Errorf("bumpRune overflow: %w", err))
	}
	lx.cursor.Off += usz
}

// Horizontal whitespace. Non-ASCII Zs spaces are not trivia: they come out
// as invalid tokens with LexUnknownChar.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\v', '\f':
		return true
	}
	return false
}

func isIdentStartByte(b byte) bool {
	return b == '_' || 'a' <= b|0x20 && b|0x20 <= 'z'
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

// identStart are the letter classes C# accepts at the start of a name.
var identStart = []*unicode.RangeTable{unicode.Lu, unicode.Ll, unicode.Lt, unicode.Lm, unicode.Lo, unicode.Nl}

// identPart adds combining marks, decimal digits, connectors and format
// characters.
var identPart = append([]*unicode.RangeTable{unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Cf}, identStart...)

func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsOneOf(identStart, r)
}

func isIdentContinueRune(r rune) bool {
	return unicode.IsOneOf(identPart, r)
}

func isDec(b byte) bool { return '0' <= b && b <= '9' }

func isHex(b byte) bool {
	return isDec(b) || 'a' <= b|0x20 && b|0x20 <= 'f'
}

// try2 consumes a two-byte operator when both bytes match.
func (lx *Lexer) try2(a, b byte) bool {
	if b0, b1, ok := lx.cursor.Peek2(); !ok || b0 != a || b1 != b {
		return false
	}
	lx.cursor.Bump()
	lx.cursor.Bump()
	return true
}
