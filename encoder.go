package id3

import "io"

// Encoder writes frames of a tag with a particular version.
type Encoder struct {
	w io.Writer
	v Version
}

func NewEncoder(w io.Writer, v Version) *Encoder {
	return &Encoder{w: w, v: v}
}

// WriteFrame writes the header and payload of f.
func (e *Encoder) WriteFrame(f Frame) error {
	payload := f.Encode()
	if len(payload) > MaxSynchsafe {
		return &TagTooLargeError{ID: f.ID(), Size: len(payload)}
	}
	_, err := e.w.Write(f.Header().serialize(len(payload), e.v))
	if err != nil {
		return err
	}
	_, err = e.w.Write(payload)
	return err
}

// Serialize returns the tag header followed by all frames in order.
// Padding is not included; it is added when the tag gets written to a
// file.
func (t *Tag) Serialize() (*Buffer, error) {
	return t.serialize(0)
}

// serialize writes the tag followed by padding zero bytes. The size
// field of the header covers the padding.
func (t *Tag) serialize(padding int) (*Buffer, error) {
	frames := t.Frames.size()
	if t.Header.Size != frames {
		return nil, &SizeMismatchError{Header: t.Header.Size, Frames: frames}
	}
	h := t.Header
	h.Flags &^= 128 | 64 | 16
	h.Size += padding
	if h.Size > MaxSynchsafe {
		return nil, &TagTooLargeError{Size: h.Size}
	}

	b := NewWriteBuffer(tagHeaderSize + h.Size)
	b.Write(h.Serialize())
	enc := NewEncoder(b, h.Version)
	for _, f := range t.Frames.frames {
		if err := enc.WriteFrame(f); err != nil {
			return nil, err
		}
	}
	b.Write(make([]byte, padding))
	return b, nil
}
