package lexer

import (
	"testing"

	"lintel/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cs", []byte(content))
	return fs.Get(id)
}

func TestCursorSequentialReading(t *testing.T) {
	c := NewCursor(createFile("a\nb"))
	for _, want := range []byte{'a', '\n', 'b'} {
		if c.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := c.Bump(); got != want {
			t.Fatalf("Bump = %q, want %q", got, want)
		}
	}
	if !c.EOF() || c.Peek() != 0 || c.Bump() != 0 {
		t.Fatalf("cursor must stay at EOF")
	}
}

func TestCursorRangeLimit(t *testing.T) {
	f := createFile("0123456789")
	c := NewRangeCursor(f, 2, 5)
	m := c.Mark()
	for !c.EOF() {
		c.Bump()
	}
	if got := c.TextFrom(m); got != "234" {
		t.Fatalf("range text = %q", got)
	}
	if sp := c.SpanFrom(m); sp.Start != 2 || sp.End != 5 {
		t.Fatalf("span = %v", sp)
	}
	c.Off = uint32(m)
	if _, _, ok := c.Peek2(); !ok {
		t.Fatalf("Peek2 inside range must succeed")
	}
	if c.PeekAt(3) != 0 {
		t.Fatalf("PeekAt must not look past the limit")
	}
}

func TestCursorEat(t *testing.T) {
	c := NewCursor(createFile("=>"))
	if c.Eat('>') {
		t.Fatalf("Eat consumed a mismatching byte")
	}
	if !c.Eat('=') || !c.Eat('>') || c.Eat('>') {
		t.Fatalf("Eat sequence broken")
	}
}

func TestCursorBumpWhile(t *testing.T) {
	c := NewRangeCursor(createFile("12_3ab"), 0, 4)
	if n := c.BumpWhile(isDecOrSep); n != 4 {
		t.Fatalf("BumpWhile = %d, want 4 (stops at the limit)", n)
	}
	if n := c.BumpWhile(isDecOrSep); n != 0 || !c.EOF() {
		t.Fatalf("BumpWhile at EOF = %d", n)
	}
}
