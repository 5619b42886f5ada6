package dnp3

import "encoding/binary"

/*
ReadCursor is a forward-only reader over an application-layer fragment.

All reads are zero-copy: ReadBytes returns a sub-slice of the underlying
buffer, so the buffer must stay alive and unmodified for as long as any
returned slice (or any sequence view built from it) is in use.

A read that would pass the end of the buffer fails with ErrReadOverflow and
leaves the cursor position unchanged. Bytes arriving from the network may be
truncated or adversarial, so every length is checked before it is consumed.
*/
type ReadCursor struct {
	data []byte
	pos  int
}

func NewReadCursor(data []byte) *ReadCursor {
	return &ReadCursor{data: data}
}

// Remaining reports how many unread bytes are left.
func (c *ReadCursor) Remaining() int {
	return len(c.data) - c.pos
}

func (c *ReadCursor) Empty() bool {
	return c.Remaining() == 0
}

// ReadBytes consumes exactly n bytes and returns them as a view into the
// underlying buffer.
func (c *ReadCursor) ReadBytes(n uint64) ([]byte, error) {
	if n > uint64(c.Remaining()) {
		return nil, ErrReadOverflow
	}
	out := c.data[c.pos : c.pos+int(n)]
	c.pos += int(n)
	return out, nil
}

func (c *ReadCursor) ReadU8() (uint8, error) {
	b, err := c.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *ReadCursor) ReadU16LE() (uint16, error) {
	b, err := c.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}
