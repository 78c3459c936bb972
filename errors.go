package id3

import "fmt"

// OutOfBoundsError is returned when a read or seek would move past
// the end of a Buffer.
type OutOfBoundsError struct {
	Offset int // cursor at the time of the request
	Length int // number of bytes requested, 0 for seeks
	Size   int // logical size of the buffer

	// Seek is set when the error comes from Seek; Target is the
	// position that was asked for.
	Seek   bool
	Target int64
}

func (e *OutOfBoundsError) Error() string {
	if e.Seek {
		return fmt.Sprintf("id3: seek to position %d outside of buffer of size %d",
			e.Target, e.Size)
	}
	return fmt.Sprintf("id3: access of %d bytes at offset %d exceeds buffer size %d",
		e.Length, e.Offset, e.Size)
}

// UnsupportedVersionError is returned when a tag uses a version whose
// frames this package cannot parse.
type UnsupportedVersionError struct {
	Version Version
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("id3: unsupported version: %s", e.Version)
}

// TagTooLargeError is returned when a tag or frame does not fit into a
// 28 bit synchsafe size field.
type TagTooLargeError struct {
	ID   FrameType // empty for the tag itself
	Size int
}

func (e *TagTooLargeError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("id3: frame %s too large: %d bytes", e.ID, e.Size)
	}
	return fmt.Sprintf("id3: tag too large: %d bytes", e.Size)
}

// SizeMismatchError is returned by Serialize when the header's size
// no longer matches the frames of the tag. This happens when frames
// are modified without going through the Tag methods; SyncSize fixes
// it.
type SizeMismatchError struct {
	Header int
	Frames int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("id3: header declares %d bytes but frames occupy %d", e.Header, e.Frames)
}

// NotAFrameHeader describes bytes that were expected to start a frame
// but don't.
type NotAFrameHeader struct {
	ID [4]byte
}

func (e NotAFrameHeader) Error() string {
	return fmt.Sprintf("id3: not a frame header (ID = %q)", e.ID)
}
