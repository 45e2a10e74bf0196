package format

import (
	"fmt"

	"github.com/joshuapare/esmkit/internal/buf"
)

// Cursor is a forward-moving view over a byte source. Base is the absolute
// file offset of data[0], so a cursor re-pointed at a decompressed body can
// still report offsets that make sense to a human reading a hex dump.
type Cursor struct {
	data []byte
	pos  int
	base int64
}

// NewCursor returns a cursor over data whose first byte sits at absolute
// offset base.
func NewCursor(data []byte, base int64) *Cursor {
	return &Cursor{data: data, base: base}
}

// Reset re-points the cursor at another buffer.
func (c *Cursor) Reset(data []byte, base int64) {
	c.data = data
	c.pos = 0
	c.base = base
}

// Pos returns the position relative to the start of the buffer.
func (c *Cursor) Pos() int { return c.pos }

// Offset returns the absolute offset of the current position.
func (c *Cursor) Offset() int64 { return c.base + int64(c.pos) }

// Len returns the buffer length.
func (c *Cursor) Len() int { return len(c.data) }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.data) - c.pos }

// AtEnd reports whether every byte has been consumed.
func (c *Cursor) AtEnd() bool { return c.pos >= len(c.data) }

// Peek returns the next n bytes without consuming them.
func (c *Cursor) Peek(n int) ([]byte, error) {
	b, ok := buf.Slice(c.data, c.pos, n)
	if !ok {
		return nil, fmt.Errorf("peek %d bytes at 0x%X: %w", n, c.Offset(), ErrTruncated)
	}
	return b, nil
}

// Read consumes and returns the next n bytes. The slice aliases the
// underlying buffer.
func (c *Cursor) Read(n int) ([]byte, error) {
	b, err := c.Peek(n)
	if err != nil {
		return nil, err
	}
	c.pos += n
	return b, nil
}

// Skip advances by n bytes.
func (c *Cursor) Skip(n int) error {
	if !buf.Has(c.data, c.pos, n) {
		return fmt.Errorf("skip %d bytes at 0x%X: %w", n, c.Offset(), ErrTruncated)
	}
	c.pos += n
	return nil
}

// Seek moves to pos, relative to the start of the buffer.
func (c *Cursor) Seek(pos int) error {
	if pos < 0 || pos > len(c.data) {
		return fmt.Errorf("seek to %d of %d: %w", pos, len(c.data), ErrTruncated)
	}
	c.pos = pos
	return nil
}
