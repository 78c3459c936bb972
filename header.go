package id3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	tagHeaderSize = 10
	footerSize    = 10
)

// Magic is the identifier every tag starts with.
var Magic = [3]byte{'I', 'D', '3'}

type HeaderFlags byte

func (f HeaderFlags) Unsynchronisation() bool {
	return (f & 128) > 0
}

func (f HeaderFlags) ExtendedHeader() bool {
	return (f & 64) > 0
}

func (f HeaderFlags) Experimental() bool {
	return (f & 32) > 0
}

// Footer reports whether a v2.4 tag is followed by a copy of its
// header.
func (f HeaderFlags) Footer() bool {
	return (f & 16) > 0
}

// Version stores the major version in the upper and the revision in
// the lower byte, i.e. 0x0400 for ID3v2.4.0.
type Version int16

const (
	Version23 Version = 0x0300
	Version24 Version = 0x0400
)

func (v Version) Major() byte { return byte(v >> 8) }
func (v Version) Minor() byte { return byte(v & 0xFF) }

func (v Version) String() string {
	return fmt.Sprintf("ID3v2.%d.%d", v.Major(), v.Minor())
}

func (v Version) supported() bool {
	return v.Major() == 3 || v.Major() == 4
}

type TagHeader struct {
	Version Version
	Flags   HeaderFlags

	// Size is the size of the tag, excluding the 10 byte header. For
	// a tag returned by ParseTag it is the size of its frames; the
	// padding is tracked separately in Tag.Padding.
	Size int

	// ExtendedSize is the number of bytes occupied by the extended
	// header, 0 if there is none. Its content is not interpreted.
	ExtendedSize int
}

// Span returns the number of bytes the tag described by h occupies at
// the start of a file.
func (h TagHeader) Span() int {
	n := tagHeaderSize + h.Size
	if h.Version.Major() == 4 && h.Flags.Footer() {
		n += footerSize
	}
	return n
}

// Serialize returns the 10 byte on-disk form of h. The size field is
// encoded from the current value of Size.
func (h TagHeader) Serialize() []byte {
	size := EncodeSynchsafe(uint32(h.Size))
	return []byte{
		Magic[0], Magic[1], Magic[2],
		h.Version.Major(), h.Version.Minor(),
		byte(h.Flags),
		size[0], size[1], size[2], size[3],
	}
}

func decodeHeader(b []byte) (TagHeader, bool) {
	if len(b) < 3 || b[0] != Magic[0] || b[1] != Magic[1] || b[2] != Magic[2] {
		return TagHeader{}, false
	}
	return TagHeader{
		Version: Version(int16(b[3])<<8 | int16(b[4])),
		Flags:   HeaderFlags(b[5]),
		Size:    int(DecodeSynchsafe([4]byte{b[6], b[7], b[8], b[9]})),
	}, true
}

// ParseHeader parses the tag header at the cursor of b. If b doesn't
// start with a tag, ok is false and the cursor doesn't move.
//
// When the header announces an extended header, its length is
// recorded in ExtendedSize; the cursor is left right after the 10 byte
// header so that the caller can skip it.
func ParseHeader(b *Buffer) (h TagHeader, ok bool, err error) {
	magic, err := b.Peek(len(Magic))
	if err != nil || [3]byte(magic) != Magic {
		return TagHeader{}, false, nil
	}
	raw, err := b.ReadN(tagHeaderSize)
	if err != nil {
		return TagHeader{}, false, err
	}
	h, _ = decodeHeader(raw)

	if h.Flags.ExtendedHeader() {
		lb, err := b.Peek(4)
		if err != nil {
			return h, true, err
		}
		switch h.Version.Major() {
		case 3:
			// v2.3 excludes the size field itself
			h.ExtendedSize = 4 + int(binary.BigEndian.Uint32(lb))
		default:
			h.ExtendedSize = int(DecodeSynchsafe([4]byte(lb)))
		}
	}
	return h, true, nil
}

// ReadHeader reads just the header of the tag at the start of the
// named file, without looking at any frames. ok is false if the file
// doesn't start with a tag.
func ReadHeader(path string) (h TagHeader, ok bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return TagHeader{}, false, err
	}
	defer f.Close()

	var raw [tagHeaderSize]byte
	_, err = io.ReadFull(f, raw[:])
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		// too short to hold a tag
		return TagHeader{}, false, nil
	}
	if err != nil {
		return TagHeader{}, false, err
	}
	h, ok = decodeHeader(raw[:])
	return h, ok, nil
}
