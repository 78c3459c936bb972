package id3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
)

// ParseFrame parses the frame at the cursor of b, which belongs to a
// tag of version v, and advances the cursor past it.
//
// ok is false if the bytes at the cursor don't form a frame header:
// the padding has been reached, the header is garbage or its size
// runs past the end of b. The cursor doesn't move in that case.
//
// Frames whose payload is compressed, encrypted or otherwise not
// understood are returned as *RawFrame.
func ParseFrame(b *Buffer, v Version) (f Frame, ok bool) {
	raw, err := b.Peek(frameHeaderSize)
	if err != nil {
		return nil, false
	}

	id := FrameType(raw[0:4])
	if !id.valid() {
		if !bytes.Equal(raw[0:4], []byte{0, 0, 0, 0}) {
			Logger.Debug("stopping at invalid frame header",
				"offset", b.Pos(), "error", NotAFrameHeader{ID: [4]byte(raw[0:4])})
		}
		return nil, false
	}

	size := decodeFrameSize([4]byte(raw[4:8]), v)
	if size < 0 || size > b.Remaining()-frameHeaderSize {
		Logger.Debug("frame exceeds tag, treating rest as padding",
			"id", id, "offset", b.Pos(), "size", size, "remaining", b.Remaining())
		return nil, false
	}
	h := FrameHeader{id: id, flags: FrameFlags(binary.BigEndian.Uint16(raw[8:10]))}

	b.off += frameHeaderSize
	payload, _ := b.ReadN(size)

	codec := codecFor(id)
	switch {
	case h.flags.opaque(v):
		codec = rawCodec
	case h.flags.Unsynchronised(v):
		payload = resync(payload)
		h.flags &^= 0x0002
	}

	f, err = codec.DecodeFrame(h, payload)
	if err != nil || f == nil {
		Logger.Debug("keeping frame uninterpreted", "id", id, "error", err)
		f, _ = decodeRaw(h, payload)
	}
	return f, true
}

// resync undoes unsynchronisation by dropping every 0x00 that follows
// a 0xFF.
func resync(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		out = append(out, b[i])
		if b[i] == 0xFF && i+1 < len(b) && b[i+1] == 0x00 {
			i++
		}
	}
	return out
}

// ParseTag parses the tag at the cursor of b. If b doesn't start with
// a tag, ok is false and err is nil.
//
// Frames are parsed until the declared size of the tag is exhausted
// or until something that isn't a frame is found; whatever is left
// counts as padding. On return the cursor of b points at the first
// byte after the tag.
//
// The extended header is skipped. Since it is never written back, the
// returned header has the extended header, unsynchronisation and
// footer flags cleared and its Size set to the size of the parsed
// frames.
func ParseTag(b *Buffer) (t *Tag, ok bool, err error) {
	h, ok, err := ParseHeader(b)
	if err != nil || !ok {
		return nil, false, err
	}
	if !h.Version.supported() {
		return nil, false, &UnsupportedVersionError{Version: h.Version}
	}

	n := h.Size
	if n > b.Remaining() {
		Logger.Debug("tag is truncated", "declared", n, "available", b.Remaining())
		n = b.Remaining()
	}
	region, _ := b.ReadN(n)
	if h.Version.Major() == 4 && h.Flags.Footer() {
		skip := min(footerSize, b.Remaining())
		b.off += skip
	}
	if h.Version.Major() == 3 && h.Flags.Unsynchronisation() {
		region = resync(region)
	}

	fb := NewBuffer(region)
	if h.ExtendedSize > 0 {
		_, err := fb.Seek(int64(min(h.ExtendedSize, fb.Len())), io.SeekStart)
		if err != nil {
			return nil, false, err
		}
	}

	t = NewTag()
	for fb.Remaining() > 0 {
		f, ok := ParseFrame(fb, h.Version)
		if !ok {
			break
		}
		t.Frames.Add(f)
	}
	t.Padding = fb.Remaining()

	h.Flags &^= 128 | 64 | 16
	h.Size = t.Frames.size()
	t.Header = h

	return t, true, nil
}

// ParseReader reads a tag from the start of r. It reads exactly as
// many bytes as the tag occupies. If r doesn't start with a tag, ok is
// false.
func ParseReader(r io.Reader) (t *Tag, ok bool, err error) {
	var raw [tagHeaderSize]byte
	_, err = io.ReadFull(r, raw[:])
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	h, ok := decodeHeader(raw[:])
	if !ok {
		return nil, false, nil
	}

	// the declared size is only an upper bound of what r holds
	body, err := io.ReadAll(io.LimitReader(r, int64(h.Span()-tagHeaderSize)))
	if err != nil {
		return nil, false, err
	}
	return ParseTag(NewBuffer(append(raw[:], body...)))
}

// ParseFile parses the tag at the start of the named file. ok is false
// if the file has no tag.
func ParseFile(path string) (t *Tag, ok bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()
	return ParseReader(f)
}

// Open parses the tag of the named file. If the file has no tag, an
// empty tag is returned, ready to be filled and saved.
func Open(path string) (*Tag, error) {
	t, ok, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return NewTag(), nil
	}
	return t, nil
}
