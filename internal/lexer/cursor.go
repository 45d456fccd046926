package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"lintel/internal/source"
)

// Cursor walks the bytes of one file inside [Off, Limit). Reads past the
// limit yield 0, which no scanner treats as a token start.
type Cursor struct {
	File  *source.File
	Off   uint32
	Limit uint32 // исключительная граница
}

// NewCursor covers the whole file.
func NewCursor(f *source.File) Cursor {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("lexer: %s: %w", f.Path, err))
	}
	return Cursor{File: f, Limit: n}
}

// NewRangeCursor covers [start, end) of the file, clamped to its size.
func NewRangeCursor(f *source.File, start, end uint32) Cursor {
	c := NewCursor(f)
	c.Limit = min(c.Limit, end)
	c.Off = min(start, c.Limit)
	return c
}

func (c *Cursor) EOF() bool { return c.Off >= c.Limit }

// at returns the byte at absolute offset i, or 0 outside the range.
func (c *Cursor) at(i uint32) byte {
	if i >= c.Limit {
		return 0
	}
	return c.File.Content[i]
}

func (c *Cursor) Peek() byte { return c.at(c.Off) }

// PeekAt looks n bytes ahead.
func (c *Cursor) PeekAt(n uint32) byte { return c.at(c.Off + n) }

// Peek2 returns the next two bytes; ok is false when fewer remain.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.Limit {
		return 0, 0, false
	}
	return c.at(c.Off), c.at(c.Off + 1), true
}

// Bump consumes one byte and returns it; at EOF it returns 0 and stays put.
func (c *Cursor) Bump() byte {
	b := c.at(c.Off)
	if c.Off < c.Limit {
		c.Off++
	}
	return b
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.at(c.Off) != b {
		return false
	}
	c.Off++
	return true
}

// BumpWhile consumes bytes while ok holds and reports how many it took.
func (c *Cursor) BumpWhile(ok func(byte) bool) int {
	from := c.Off
	for c.Off < c.Limit && ok(c.File.Content[c.Off]) {
		c.Off++
	}
	return int(c.Off - from)
}

// Mark is a saved offset; spans and texts are cut from it.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

// TextFrom returns the bytes consumed since m.
func (c *Cursor) TextFrom(m Mark) string {
	return string(c.File.Content[m:c.Off])
}
