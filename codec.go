package id3

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrMalformedFrame is wrapped by codecs that reject a payload.
var ErrMalformedFrame = errors.New("id3: malformed frame payload")

// A FrameCodec turns the payload of a frame into a Frame. The payload
// has already been separated from the frame header, undone any
// unsynchronisation and is owned by the codec.
type FrameCodec interface {
	DecodeFrame(h FrameHeader, payload []byte) (Frame, error)
}

type FrameCodecFunc func(h FrameHeader, payload []byte) (Frame, error)

func (fn FrameCodecFunc) DecodeFrame(h FrameHeader, payload []byte) (Frame, error) {
	return fn(h, payload)
}

var (
	textCodec = FrameCodecFunc(decodeText)
	rawCodec  = FrameCodecFunc(decodeRaw)

	codecs = map[FrameType]FrameCodec{
		FrameUserText: FrameCodecFunc(decodeUserText),
		FrameComment:  FrameCodecFunc(decodeComment),
		FramePicture:  FrameCodecFunc(decodePicture),
	}
)

// RegisterCodec makes c responsible for frames of type id, replacing
// the built-in codec if there is one. It is meant to be called from
// init functions and is not safe for concurrent use. Codecs should
// return pointers, see Frame.
func RegisterCodec(id FrameType, c FrameCodec) {
	codecs[id] = c
}

func codecFor(id FrameType) FrameCodec {
	if c, ok := codecs[id]; ok {
		return c
	}
	if id[0] == 'T' {
		return textCodec
	}
	return rawCodec
}

func malformed(h FrameHeader, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformedFrame, h.id, fmt.Sprintf(format, args...))
}

func readEncoding(h FrameHeader, p []byte) (Encoding, error) {
	if len(p) < 1 {
		return 0, malformed(h, "missing text encoding")
	}
	enc := Encoding(p[0])
	if !enc.valid() {
		return 0, malformed(h, "invalid text encoding %d", p[0])
	}
	return enc, nil
}

func decodeText(h FrameHeader, p []byte) (Frame, error) {
	enc, err := readEncoding(h, p)
	if err != nil {
		return nil, err
	}
	return &TextFrame{
		FrameHeader: h,
		Encoding:    enc,
		Text:        enc.toUTF8(p[1:]),
	}, nil
}

func decodeUserText(h FrameHeader, p []byte) (Frame, error) {
	enc, err := readEncoding(h, p)
	if err != nil {
		return nil, err
	}
	desc, text := enc.splitTerminated(p[1:])
	return &UserTextFrame{
		FrameHeader: h,
		Encoding:    enc,
		Description: enc.toUTF8(desc),
		Text:        enc.toUTF8(text),
	}, nil
}

func decodeComment(h FrameHeader, p []byte) (Frame, error) {
	enc, err := readEncoding(h, p)
	if err != nil {
		return nil, err
	}
	if len(p) < 4 {
		return nil, malformed(h, "missing language")
	}
	desc, text := enc.splitTerminated(p[4:])
	return &CommentFrame{
		FrameHeader: h,
		Encoding:    enc,
		Language:    string(p[1:4]),
		Description: enc.toUTF8(desc),
		Text:        enc.toUTF8(text),
	}, nil
}

func decodePicture(h FrameHeader, p []byte) (Frame, error) {
	enc, err := readEncoding(h, p)
	if err != nil {
		return nil, err
	}
	mime, rest, ok := bytes.Cut(p[1:], nul)
	if !ok || len(rest) < 1 {
		return nil, malformed(h, "missing picture type")
	}
	typ := PictureType(rest[0])
	desc, data := enc.splitTerminated(rest[1:])
	return &PictureFrame{
		FrameHeader: h,
		Encoding:    enc,
		MIMEType:    ISO88591.toUTF8(mime),
		PictureType: typ,
		Description: enc.toUTF8(desc),
		Data:        bytes.Clone(data),
	}, nil
}

func decodeRaw(h FrameHeader, p []byte) (Frame, error) {
	return &RawFrame{FrameHeader: h, Data: bytes.Clone(p)}, nil
}
