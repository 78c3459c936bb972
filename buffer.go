package id3

import (
	"fmt"
	"io"
)

// Buffer is a growable byte container with a single cursor. It is used
// as a read cursor over a tag that has been loaded into memory and as
// the sink that tags are serialized into.
//
// The cursor never exceeds the logical size. Writes past the end grow
// the buffer; reads past the end fail with an *OutOfBoundsError.
type Buffer struct {
	buf []byte
	off int
}

// NewBuffer returns a Buffer reading from b. The buffer takes
// ownership of b.
func NewBuffer(b []byte) *Buffer {
	return &Buffer{buf: b}
}

// NewWriteBuffer returns an empty Buffer with room for capacity bytes.
func NewWriteBuffer(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{buf: make([]byte, 0, capacity)}
}

// Len returns the logical size of the buffer.
func (b *Buffer) Len() int { return len(b.buf) }

// Pos returns the cursor.
func (b *Buffer) Pos() int { return b.off }

// Remaining returns the number of bytes between the cursor and the end.
func (b *Buffer) Remaining() int { return len(b.buf) - b.off }

// Bytes returns the whole content of the buffer, independent of the
// cursor. The slice aliases the buffer until the next write.
func (b *Buffer) Bytes() []byte { return b.buf }

// Write writes p at the cursor, overwriting existing bytes and growing
// the buffer as needed. It never returns an error.
func (b *Buffer) Write(p []byte) (int, error) {
	end := b.off + len(p)
	if end > len(b.buf) {
		b.grow(end)
	}
	copy(b.buf[b.off:end], p)
	b.off = end
	return len(p), nil
}

// WriteString is like Write but takes a string.
func (b *Buffer) WriteString(s string) (int, error) {
	end := b.off + len(s)
	if end > len(b.buf) {
		b.grow(end)
	}
	copy(b.buf[b.off:end], s)
	b.off = end
	return len(s), nil
}

// WriteByte writes a single byte at the cursor.
func (b *Buffer) WriteByte(c byte) error {
	if b.off == len(b.buf) {
		b.buf = append(b.buf, c)
	} else {
		b.buf[b.off] = c
	}
	b.off++
	return nil
}

// grow extends the logical size to n, reallocating if needed.
func (b *Buffer) grow(n int) {
	if n <= cap(b.buf) {
		b.buf = b.buf[:n]
		return
	}
	c := 2 * cap(b.buf)
	if c < n {
		c = n
	}
	nb := make([]byte, n, c)
	copy(nb, b.buf)
	b.buf = nb
}

// Read implements io.Reader. It returns io.EOF once the cursor reached
// the end.
func (b *Buffer) Read(p []byte) (int, error) {
	if b.off >= len(b.buf) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, b.buf[b.off:])
	b.off += n
	return n, nil
}

// ReadN returns the next n bytes and advances the cursor. If fewer
// than n bytes remain, it returns an *OutOfBoundsError and leaves the
// cursor where it was. The returned slice aliases the buffer.
func (b *Buffer) ReadN(n int) ([]byte, error) {
	p, err := b.Peek(n)
	if err != nil {
		return nil, err
	}
	b.off += n
	return p, nil
}

// Peek is like ReadN but doesn't advance the cursor.
func (b *Buffer) Peek(n int) ([]byte, error) {
	if n < 0 || n > b.Remaining() {
		return nil, &OutOfBoundsError{Offset: b.off, Length: n, Size: len(b.buf)}
	}
	return b.buf[b.off : b.off+n], nil
}

// ReadByte implements io.ByteReader.
func (b *Buffer) ReadByte() (byte, error) {
	if b.off >= len(b.buf) {
		return 0, &OutOfBoundsError{Offset: b.off, Length: 1, Size: len(b.buf)}
	}
	c := b.buf[b.off]
	b.off++
	return c, nil
}

// Seek implements io.Seeker. The new position has to lie between 0
// and Len, inclusive; otherwise an *OutOfBoundsError is returned and
// the cursor stays where it was.
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = int64(b.off)
	case io.SeekEnd:
		base = int64(len(b.buf))
	default:
		return int64(b.off), fmt.Errorf("id3: invalid whence %d", whence)
	}
	pos := base + offset
	if pos < 0 || pos > int64(len(b.buf)) {
		return int64(b.off), &OutOfBoundsError{Offset: b.off, Size: len(b.buf), Seek: true, Target: pos}
	}
	b.off = int(pos)
	return pos, nil
}
