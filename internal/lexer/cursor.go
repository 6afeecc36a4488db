package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"sable/internal/source"
)

// Cursor is a byte cursor over a single file's content.
// Offsets are byte offsets; spans produced via SpanFrom are half-open.
type Cursor struct {
	File  *source.File
	Off   uint32
	Limit uint32
}

func NewCursor(file *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		panic(fmt.Errorf("file too large for cursor: %w", err))
	}
	return Cursor{File: file, Off: 0, Limit: limit}
}

func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek returns the current byte without advancing, 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// Peek2 returns the next two bytes when both are available.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.Limit {
		return 0, 0, false
	}
	return c.File.Content[c.Off], c.File.Content[c.Off+1], true
}

// Bump consumes and returns the current byte, 0 at EOF.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

// Mark remembers the current offset for a later SpanFrom or Reset.
func (c *Cursor) Mark() uint32 {
	return c.Off
}

// SpanFrom builds a half-open span from a mark to the current offset.
func (c *Cursor) SpanFrom(start uint32) source.Span {
	return source.Span{File: c.File.ID, Start: start, End: c.Off}
}

// Reset rewinds the cursor to a previous mark.
func (c *Cursor) Reset(mark uint32) {
	c.Off = mark
}

// Eat consumes the current byte iff it equals b.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.File.Content[c.Off] != b {
		return false
	}
	c.Off++
	return true
}
