package id3

import (
	"encoding/binary"
	"strings"
)

const frameHeaderSize = 10

type FrameType string

func (f FrameType) String() string {
	v, ok := FrameNames[f]
	if ok {
		return v
	}

	return string(f)
}

// valid reports whether f consists of four characters out of A-Z and
// 0-9.
func (f FrameType) valid() bool {
	if len(f) != 4 {
		return false
	}
	for i := 0; i < len(f); i++ {
		c := f[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// Well-known frame identifiers.
const (
	FrameTitle       FrameType = "TIT2"
	FrameArtist      FrameType = "TPE1"
	FrameAlbum       FrameType = "TALB"
	FrameAlbumArtist FrameType = "TPE2"
	FrameGenre       FrameType = "TCON"
	FrameYear        FrameType = "TYER" // ID3v2.3
	FrameRecording   FrameType = "TDRC" // ID3v2.4 replacement of TYER
	FrameTrack       FrameType = "TRCK"
	FrameDisc        FrameType = "TPOS"
	FrameComposer    FrameType = "TCOM"
	FrameComment     FrameType = "COMM"
	FramePicture     FrameType = "APIC"
	FrameUserText    FrameType = "TXXX"
)

var FrameNames = map[FrameType]string{
	"AENC": "Audio encryption",
	"APIC": "Attached picture",
	"ASPI": "Audio seek point index",
	"COMM": "Comments",
	"COMR": "Commercial frame",

	"ENCR": "Encryption method registration",
	"EQU2": "Equalisation (2)",
	"ETCO": "Event timing codes",

	"GEOB": "General encapsulated object",
	"GRID": "Group identification registration",

	"LINK": "Linked information",

	"MCDI": "Music CD identifier",
	"MLLT": "MPEG location lookup table",

	"OWNE": "Ownership frame",

	"PRIV": "Private frame",
	"PCNT": "Play counter",
	"POPM": "Popularimeter",
	"POSS": "Position synchronisation frame",

	"RBUF": "Recommended buffer size",
	"RVA2": "Relative volume adjustment (2)",
	"RVRB": "Reverb",

	"SEEK": "Seek frame",
	"SIGN": "Signature frame",
	"SYLT": "Synchronised lyric/text",
	"SYTC": "Synchronised tempo codes",

	"TALB": "Album/Movie/Show title",
	"TBPM": "BPM (beats per minute)",
	"TCOM": "Composer",
	"TCON": "Content type",
	"TCOP": "Copyright message",
	"TDEN": "Encoding time",
	"TDLY": "Playlist delay",
	"TDOR": "Original release time",
	"TDRC": "Recording time",
	"TDRL": "Release time",
	"TDTG": "Tagging time",
	"TENC": "Encoded by",
	"TEXT": "Lyricist/Text writer",
	"TFLT": "File type",
	"TIPL": "Involved people list",
	"TIT1": "Content group description",
	"TIT2": "Title/songname/content description",
	"TIT3": "Subtitle/Description refinement",
	"TKEY": "Initial key",
	"TLAN": "Language(s)",
	"TLEN": "Length",
	"TMCL": "Musician credits list",
	"TMED": "Media type",
	"TMOO": "Mood",
	"TOAL": "Original album/movie/show title",
	"TOFN": "Original filename",
	"TOLY": "Original lyricist(s)/text writer(s)",
	"TORY": "Original release year",
	"TOPE": "Original artist(s)/performer(s)",
	"TOWN": "File owner/licensee",
	"TPE1": "Lead performer(s)/Soloist(s)",
	"TPE2": "Band/orchestra/accompaniment",
	"TPE3": "Conductor/performer refinement",
	"TPE4": "Interpreted, remixed, or otherwise modified by",
	"TPOS": "Part of a set",
	"TPRO": "Produced notice",
	"TPUB": "Publisher",
	"TRCK": "Track number/Position in set",
	"TRSN": "Internet radio station name",
	"TRSO": "Internet radio station owner",
	"TSOA": "Album sort order",
	"TSOP": "Performer sort order",
	"TSOT": "Title sort order",
	"TSO2": "Album Artist sort order", // iTunes extension
	"TSOC": "Composer sort oder",      // iTunes extension
	"TSRC": "ISRC (international standard recording code)",
	"TSSE": "Software/Hardware and settings used for encoding",
	"TSST": "Set subtitle",
	"TYER": "Year",
	"TXXX": "User defined text information frame",

	"UFID": "Unique file identifier",
	"USER": "Terms of use",
	"USLT": "Unsynchronised lyric/text transcription",

	"WCOM": "Commercial information",
	"WCOP": "Copyright/Legal information",
	"WOAF": "Official audio file webpage",
	"WOAR": "Official artist/performer webpage",
	"WOAS": "Official audio source webpage",
	"WORS": "Official Internet radio station homepage",
	"WPAY": "Payment",
	"WPUB": "Publishers official webpage",
	"WXXX": "User defined URL link frame",
}

var PictureTypes = []string{
	"Other",
	"32x32 pixels 'file icon' (PNG only)",
	"Other file icon",
	"Cover (front)",
	"Cover (back)",
	"Leaflet page",
	"Media (e.g. label side of CD)",
	"Lead artist/lead performer/soloist",
	"Artist/performer",
	"Conductor",
	"Band/Orchestra",
	"Composer",
	"Lyricist/text writer",
	"Recording Location",
	"During recording",
	"During performance",
	"Movie/video screen capture",
	"A bright coloured fish",
	"Illustration",
	"Band/artist logotype",
	"Publisher/Studio logotype",
}

type PictureType byte

const PictureFrontCover PictureType = 3

func (p PictureType) String() string {
	if int(p) >= len(PictureTypes) {
		return ""
	}

	return PictureTypes[p]
}

// FrameFlags holds the two flag bytes of a frame header. Their layout
// differs between ID3v2.3 and ID3v2.4, so every accessor takes the
// version of the tag the frame belongs to.
type FrameFlags uint16

func (f FrameFlags) ReadOnly(v Version) bool {
	if v.Major() == 3 {
		return f&0x2000 > 0
	}
	return f&0x1000 > 0
}

func (f FrameFlags) Compressed(v Version) bool {
	if v.Major() == 3 {
		return f&0x0080 > 0
	}
	return f&0x0008 > 0
}

func (f FrameFlags) Encrypted(v Version) bool {
	if v.Major() == 3 {
		return f&0x0040 > 0
	}
	return f&0x0004 > 0
}

func (f FrameFlags) Grouped(v Version) bool {
	if v.Major() == 3 {
		return f&0x0020 > 0
	}
	return f&0x0040 > 0
}

// Unsynchronised only exists in ID3v2.4.
func (f FrameFlags) Unsynchronised(v Version) bool {
	return v.Major() == 4 && f&0x0002 > 0
}

// DataLengthIndicator only exists in ID3v2.4.
func (f FrameFlags) DataLengthIndicator(v Version) bool {
	return v.Major() == 4 && f&0x0001 > 0
}

// opaque reports whether the payload is stored in a form that this
// package doesn't interpret.
func (f FrameFlags) opaque(v Version) bool {
	return f.Compressed(v) || f.Encrypted(v) || f.Grouped(v) || f.DataLengthIndicator(v)
}

// status returns only the flags that describe how the frame is to be
// treated (tag alter, file alter and read-only preservation), dropping
// the ones that describe the format of the payload.
func (f FrameFlags) status(v Version) FrameFlags {
	if v.Major() == 3 {
		return f & 0xe000
	}
	return f & 0x7000
}

type FrameHeader struct {
	id    FrameType
	flags FrameFlags
}

// NewFrameHeader returns the header for a frame of type id.
func NewFrameHeader(id FrameType, flags FrameFlags) FrameHeader {
	return FrameHeader{id: id, flags: flags}
}

func (h FrameHeader) Header() FrameHeader { return h }

func (h FrameHeader) ID() FrameType { return h.id }

func (h FrameHeader) Flags() FrameFlags { return h.flags }

// serialize returns the 10 byte frame header for a payload of size
// bytes.
func (h FrameHeader) serialize(size int, v Version) []byte {
	out := make([]byte, frameHeaderSize)
	copy(out[0:4], h.id)
	sizeBytes := encodeFrameSize(size, v)
	copy(out[4:8], sizeBytes[:])
	binary.BigEndian.PutUint16(out[8:10], uint16(h.flags))
	return out
}

// Frame is a single unit of metadata. Size reports the encoded length
// including the 10 byte frame header and always equals
// 10 + len(Encode()).
//
// FrameList.Replace, FrameList.Remove and Tag.RemoveFrame find frames
// by identity and only work with comparable implementations such as
// pointers. All other methods work with any implementation.
type Frame interface {
	ID() FrameType
	Header() FrameHeader
	Value() string
	Encode() []byte
	Size() int
}

type TextFrame struct {
	FrameHeader
	Encoding Encoding
	Text     string
}

type UserTextFrame struct {
	FrameHeader
	Encoding    Encoding
	Description string
	Text        string
}

type CommentFrame struct {
	FrameHeader
	Encoding    Encoding
	Language    string
	Description string
	Text        string
}

type PictureFrame struct {
	FrameHeader
	Encoding    Encoding
	MIMEType    string
	PictureType PictureType
	Description string
	Data        []byte
}

// RawFrame holds frames this package doesn't understand. They are
// written back verbatim.
type RawFrame struct {
	FrameHeader
	Data []byte
}

func concat(bs ...[]byte) []byte {
	n := 0
	for _, b := range bs {
		n += len(b)
	}
	out := make([]byte, 0, n)
	for _, b := range bs {
		out = append(out, b...)
	}
	return out
}

func (f *TextFrame) Encode() []byte {
	return concat([]byte{byte(f.Encoding)}, f.Encoding.fromUTF8(f.Text))
}

func (f *TextFrame) Size() int { return frameHeaderSize + len(f.Encode()) }

func (f *TextFrame) Value() string { return f.Text }

// Values splits the text of ID3v2.4 frames that contain multiple
// NUL separated values.
func (f *TextFrame) Values() []string {
	if f.Text == "" {
		return nil
	}
	return strings.Split(f.Text, "\x00")
}

func (f *UserTextFrame) Encode() []byte {
	return concat([]byte{byte(f.Encoding)},
		f.Encoding.fromUTF8(f.Description), f.Encoding.terminator(),
		f.Encoding.fromUTF8(f.Text))
}

func (f *UserTextFrame) Size() int { return frameHeaderSize + len(f.Encode()) }

func (f *UserTextFrame) Value() string { return f.Text }

// language normalizes l to the three bytes the format reserves for
// it.
func language(l string) []byte {
	if l == "" {
		return []byte("XXX")
	}
	b := []byte(l + "   ")
	return b[:3]
}

func (f *CommentFrame) Encode() []byte {
	return concat([]byte{byte(f.Encoding)}, language(f.Language),
		f.Encoding.fromUTF8(f.Description), f.Encoding.terminator(),
		f.Encoding.fromUTF8(f.Text))
}

func (f *CommentFrame) Size() int { return frameHeaderSize + len(f.Encode()) }

func (f *CommentFrame) Value() string { return f.Text }

func (f *PictureFrame) Encode() []byte {
	return concat([]byte{byte(f.Encoding)},
		ISO88591.fromUTF8(f.MIMEType), nul,
		[]byte{byte(f.PictureType)},
		f.Encoding.fromUTF8(f.Description), f.Encoding.terminator(),
		f.Data)
}

func (f *PictureFrame) Size() int { return frameHeaderSize + len(f.Encode()) }

func (f *PictureFrame) Value() string { return string(f.Data) }

func (f *RawFrame) Encode() []byte { return f.Data }

func (f *RawFrame) Size() int { return frameHeaderSize + len(f.Data) }

func (f *RawFrame) Value() string { return string(f.Data) }
