package id3

import (
	"bytes"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding is the text encoding byte that starts most text carrying
// frames.
type Encoding byte

const (
	ISO88591 Encoding = 0
	UTF16    Encoding = 1 // UTF-16 with byte order mark
	UTF16BE  Encoding = 2
	UTF8     Encoding = 3
)

var (
	nul     = []byte{0}
	nulnul  = []byte{0, 0}
	latin1  = charmap.ISO8859_1
	utf16bo = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	// ID3v2 writers conventionally emit little endian with a BOM.
	utf16le = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	utf16be = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
)

func (e Encoding) String() string {
	switch e {
	case ISO88591:
		return "ISO-8859-1"
	case UTF16:
		return "UTF-16"
	case UTF16BE:
		return "UTF-16BE"
	case UTF8:
		return "UTF-8"
	default:
		return "unknown encoding"
	}
}

func (e Encoding) valid() bool {
	return e <= UTF8
}

func (e Encoding) terminator() []byte {
	switch e {
	case UTF16, UTF16BE:
		return nulnul
	default:
		return nul
	}
}

// toUTF8 decodes b and strips trailing terminators.
func (e Encoding) toUTF8(b []byte) string {
	var dec *encoding.Decoder
	switch e {
	case ISO88591:
		dec = latin1.NewDecoder()
	case UTF16:
		// no BOM means big endian
		dec = utf16bo.NewDecoder()
	case UTF16BE:
		dec = utf16be.NewDecoder()
	default:
		return string(bytes.TrimRight(b, "\x00"))
	}
	out, err := dec.Bytes(b)
	if err != nil {
		Logger.Debug("undecodable text", "encoding", e, "error", err)
		return string(bytes.TrimRight(b, "\x00"))
	}
	return string(bytes.TrimRight(out, "\x00"))
}

// fromUTF8 encodes s. Characters that e cannot represent are
// replaced.
func (e Encoding) fromUTF8(s string) []byte {
	var enc *encoding.Encoder
	switch e {
	case ISO88591:
		enc = encoding.ReplaceUnsupported(latin1.NewEncoder())
	case UTF16:
		if s == "" {
			return nil
		}
		enc = utf16le.NewEncoder()
	case UTF16BE:
		enc = utf16be.NewEncoder()
	default:
		return []byte(s)
	}
	out, err := enc.Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return out
}

// splitTerminated splits b at the first terminator of encoding e. For
// UTF-16 the terminator has to start on an even offset. If there is no
// terminator, all of b is returned as head.
func (e Encoding) splitTerminated(b []byte) (head, rest []byte) {
	if e != UTF16 && e != UTF16BE {
		i := bytes.IndexByte(b, 0)
		if i < 0 {
			return b, nil
		}
		return b[:i], b[i+1:]
	}
	for i := 0; i+1 < len(b); i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			return b[:i], b[i+2:]
		}
	}
	return b, nil
}

// encodingFor picks the encoding new frames are written in.
func encodingFor(v Version, s string) Encoding {
	if v.Major() >= 4 {
		return UTF8
	}
	if _, err := latin1.NewEncoder().String(s); err == nil {
		return ISO88591
	}
	return UTF16
}
