package id3

import (
	"bytes"
	"encoding/binary"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough of a PNG for MIME type detection.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

// rawFrame builds the on-disk form of a frame.
func rawFrame(id string, flags uint16, v Version, payload []byte) []byte {
	size := encodeFrameSize(len(payload), v)
	out := append([]byte(id), size[:]...)
	out = binary.BigEndian.AppendUint16(out, flags)
	return append(out, payload...)
}

// rawTag builds a tag header declaring size bytes, followed by body.
func rawTag(v Version, flags byte, size int, body ...[]byte) []byte {
	h := TagHeader{Version: v, Flags: HeaderFlags(flags), Size: size}
	return concat(append([][]byte{h.Serialize()}, body...)...)
}

func assertSizeInvariant(t *testing.T, tag *Tag) {
	t.Helper()
	sum := 0
	for _, f := range tag.Frames.Frames() {
		sum += f.Size()
		assert.Equal(t, frameHeaderSize+len(f.Encode()), f.Size(), "frame %s", f.ID())
	}
	assert.Equal(t, sum, tag.Header.Size, "header size must match the frames")
}

func TestNewTag(t *testing.T) {
	tag := NewTag()
	assert.Equal(t, Version24, tag.Header.Version)
	assert.Equal(t, 0, tag.Header.Size)
	assert.Equal(t, 0, tag.Padding)
	assert.Equal(t, 0, tag.Frames.Len())

	b, err := tag.Serialize()
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3\x04\x00\x00\x00\x00\x00\x00"), b.Bytes())
}

func TestSerialize_Bytes(t *testing.T) {
	tag := NewTag()
	tag.SetTitle("title")
	tag.SetComment(Comment{Language: "lan", Text: "description"})

	b, err := tag.Serialize()
	require.NoError(t, err)

	expected := []byte(
		"ID3\x04\x00\x00\x00\x00\x00\x2a" +
			"TIT2\x00\x00\x00\x06\x00\x00\x03title" +
			"COMM\x00\x00\x00\x10\x00\x00\x03lan\x00description",
	)
	assert.Equal(t, expected, b.Bytes())
}

func TestSerialize_FrameSizeFollowsVersion(t *testing.T) {
	long := strings.Repeat("a", 200)

	v3 := NewTag()
	v3.Header.Version = Version23
	v3.SetTitle(long)
	b, err := v3.Serialize()
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0xc9}, b.Bytes()[14:18])
	assert.Equal(t, byte(ISO88591), b.Bytes()[20])

	v4 := NewTag()
	v4.SetTitle(long)
	b, err = v4.Serialize()
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 1, 0x49}, b.Bytes()[14:18])
}

func TestSetTitleTwice(t *testing.T) {
	tag := NewTag()
	tag.SetTitle("first")
	tag.SetTitle("the second title")

	frames := tag.AllFrames(FrameTitle)
	require.Len(t, frames, 1)
	assert.Equal(t, "the second title", frames[0].Value())
	assert.Equal(t, "the second title", tag.Title())
	assert.Equal(t, 10+1+16, tag.Header.Size)
	assertSizeInvariant(t, tag)
}

func TestSetterPreservesPosition(t *testing.T) {
	tag := NewTag()
	tag.SetTitle("title")
	tag.SetArtist("artist")
	tag.SetAlbum("album")
	tag.SetArtist("another artist")

	assert.Equal(t, []FrameType{FrameTitle, FrameArtist, FrameAlbum}, tag.Frames.IDs())
}

func TestSizeInvariant(t *testing.T) {
	tag := NewTag()
	ops := []func(){
		func() { tag.SetTitle("title") },
		func() { tag.SetArtist("artist") },
		func() { tag.SetAlbum("album") },
		func() { tag.SetAlbumArtist("album artist") },
		func() { tag.SetGenre("Jazz") },
		func() { tag.SetYear("1959") },
		func() { tag.SetTrack("4/9") },
		func() { tag.SetDiscNumber("1/2") },
		func() { tag.SetComposer("composer") },
		func() { tag.SetTitle("a much longer title than before") },
		func() { tag.SetTitle("") },
		func() { tag.SetComment(Comment{Language: "eng", Text: "comment"}) },
		func() { tag.AddComment(Comment{Language: "deu", Description: "d", Text: "Kommentar"}) },
		func() { tag.SetComment(Comment{Language: "eng", Text: "shorter"}) },
		func() { tag.SetFrontCover("image/png", pngHeader) },
		func() { tag.AddPicture(Picture{MIMEType: "image/jpeg", Type: 4, Data: []byte{1, 2, 3}}) },
		func() { tag.SetFrontCover("", pngHeader[:20]) },
		func() { tag.SetTextFrame("TXXX:key", "value") },
		func() { tag.SetTextFrame("TXXX:key", "longer value") },
		func() { tag.RemoveFrames(FrameComment) },
		func() { tag.RemoveFrame(tag.Frame(FrameTitle)) },
	}

	for i, op := range ops {
		op()
		sum := 0
		for _, f := range tag.Frames.Frames() {
			sum += f.Size()
		}
		require.Equal(t, sum, tag.Header.Size, "after operation %d", i)
	}

	tag.Clear()
	assert.Equal(t, 0, tag.Header.Size)
	assert.Equal(t, 0, tag.Frames.Len())
}

func TestWellKnownFields(t *testing.T) {
	tag := NewTag()
	tag.SetTitle("Title")
	tag.SetArtist("Artist")
	tag.SetAlbum("Album")
	tag.SetAlbumArtist("Album Artist")
	tag.SetGenre("Genre")
	tag.SetYear("2009")
	tag.SetTrack("1/10")
	tag.SetDiscNumber("2")
	tag.SetComposer("Composer")

	assert.Equal(t, "Title", tag.TextFrame("TIT2"))
	assert.Equal(t, "Artist", tag.TextFrame("TPE1"))
	assert.Equal(t, "Album", tag.TextFrame("TALB"))
	assert.Equal(t, "Album Artist", tag.TextFrame("TPE2"))
	assert.Equal(t, "Genre", tag.TextFrame("TCON"))
	assert.Equal(t, "2009", tag.TextFrame("TDRC"))
	assert.Equal(t, "1/10", tag.TextFrame("TRCK"))
	assert.Equal(t, "2", tag.TextFrame("TPOS"))
	assert.Equal(t, "Composer", tag.TextFrame("TCOM"))

	assert.Equal(t, "Title", tag.Title())
	assert.Equal(t, "Artist", tag.Artist())
	assert.Equal(t, "Album", tag.Album())
	assert.Equal(t, "Album Artist", tag.AlbumArtist())
	assert.Equal(t, "Genre", tag.Genre())
	assert.Equal(t, "2009", tag.Year())
	assert.Equal(t, "1/10", tag.Track())
	assert.Equal(t, "2", tag.DiscNumber())
	assert.Equal(t, "Composer", tag.Composer())
}

func TestYear(t *testing.T) {
	v3 := NewTag()
	v3.Header.Version = Version23
	v3.SetYear("1999")
	assert.True(t, v3.HasFrame(FrameYear))
	assert.False(t, v3.HasFrame(FrameRecording))
	assert.Equal(t, "1999", v3.Year())

	v4 := NewTag()
	v4.SetYear("2004")
	assert.True(t, v4.HasFrame(FrameRecording))
	assert.False(t, v4.HasFrame(FrameYear))

	// a v2.4 tag that still carries TYER
	old := NewTag()
	old.SetTextFrame(FrameYear, "1987")
	assert.Equal(t, "1987", old.Year())
}

func TestComments(t *testing.T) {
	tag := NewTag()
	_, ok := tag.Comment()
	assert.False(t, ok)

	tag.AddComment(Comment{Language: "eng", Text: "english"})
	tag.AddComment(Comment{Language: "deu", Text: "deutsch"})

	assert.Equal(t, []Comment{
		{Language: "eng", Text: "english"},
		{Language: "deu", Text: "deutsch"},
	}, tag.Comments())

	first, ok := tag.Comment()
	require.True(t, ok)
	assert.Equal(t, "english", first.Text)

	tag.SetComment(Comment{Language: "fra", Text: "français"})
	assert.Equal(t, []Comment{
		{Language: "fra", Text: "français"},
		{Language: "deu", Text: "deutsch"},
	}, tag.Comments())
	assertSizeInvariant(t, tag)
}

func TestPictures(t *testing.T) {
	tag := NewTag()
	_, ok := tag.FrontCover()
	assert.False(t, ok)

	back := Picture{MIMEType: "image/jpeg", Type: 4, Description: "back", Data: []byte{0xff, 0xd8}}
	tag.AddPicture(back)
	tag.SetFrontCover("", pngHeader)

	cover, ok := tag.FrontCover()
	require.True(t, ok)
	assert.Equal(t, "image/png", cover.MIMEType, "detected from the data")
	assert.Equal(t, PictureFrontCover, cover.Type)
	assert.Equal(t, pngHeader, cover.Data)

	// replaces the front cover, not the first picture
	tag.SetFrontCover("image/gif", []byte("GIF89a"))
	pics := tag.Pictures()
	require.Len(t, pics, 2)
	assert.Equal(t, back, pics[0])
	assert.Equal(t, "image/gif", pics[1].MIMEType)

	// SetPicture replaces the first picture, whatever its type
	tag.SetPicture(Picture{MIMEType: "image/png", Type: 0, Data: pngHeader})
	pics = tag.Pictures()
	require.Len(t, pics, 2)
	assert.Equal(t, PictureType(0), pics[0].Type)
	assert.Equal(t, PictureFrontCover, pics[1].Type)
	assertSizeInvariant(t, tag)
}

func TestUserTextFrames(t *testing.T) {
	tag := NewTag()
	tag.SetTextFrame("TXXX:MusicBrainz Album Id", "1")
	tag.SetTextFrame("TXXX:Other", "2")
	tag.SetTextFrame("TXXX:MusicBrainz Album Id", "3")

	assert.Equal(t, "3", tag.TextFrame("TXXX:MusicBrainz Album Id"))
	assert.Equal(t, "2", tag.TextFrame("TXXX:Other"))
	assert.Equal(t, "", tag.TextFrame("TXXX:Missing"))
	assert.Len(t, tag.AllFrames(FrameUserText), 2)
	assertSizeInvariant(t, tag)
}

func TestTextFrameValues(t *testing.T) {
	tag := NewTag()
	tag.SetTextFrameValues(FrameArtist, []string{"me", "you"})
	assert.Equal(t, []string{"me", "you"}, tag.TextFrameValues(FrameArtist))
	assert.Equal(t, []string{"me", "you"}, tag.Frame(FrameArtist).(*TextFrame).Values())
	assert.Nil(t, tag.TextFrameValues(FrameAlbum))
}

func TestRoundTrip(t *testing.T) {
	for _, v := range []Version{Version23, Version24} {
		t.Run(v.String(), func(t *testing.T) {
			tag := NewTag()
			tag.Header.Version = v
			tag.SetTitle("Títle 日本語")
			tag.SetArtist("Artist")
			tag.SetAlbum("Album")
			tag.SetAlbumArtist("Album Artist")
			tag.SetGenre("Genre")
			tag.SetYear("2009")
			tag.SetTrack("1/10")
			tag.SetDiscNumber("2")
			tag.SetComposer("Composer")
			tag.SetComment(Comment{Language: "eng", Description: "desc", Text: "comment ü"})
			tag.AddComment(Comment{Language: "deu", Text: "Kommentar 日本"})
			tag.SetFrontCover("image/png", pngHeader)
			tag.SetTextFrame("TXXX:key", "value")

			b, err := tag.Serialize()
			require.NoError(t, err)

			parsed, ok, err := ParseTag(NewBuffer(b.Bytes()))
			require.NoError(t, err)
			require.True(t, ok)

			assert.Equal(t, tag.Header, parsed.Header)
			assert.Equal(t, 0, parsed.Padding)
			assert.Equal(t, tag.Frames.IDs(), parsed.Frames.IDs())
			assert.Equal(t, tag.Frames.Frames(), parsed.Frames.Frames())
			assert.Equal(t, "Títle 日本語", parsed.Title())
			assert.Equal(t, tag.Comments(), parsed.Comments())
			assertSizeInvariant(t, parsed)

			again, err := parsed.Serialize()
			require.NoError(t, err)
			assert.Equal(t, b.Bytes(), again.Bytes())
		})
	}
}

func TestParseTag_NoTag(t *testing.T) {
	tag, ok, err := ParseTag(NewBuffer([]byte("\xff\xfb\x90\x64 audio")))
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, tag)
}

func TestParseTag_UnsupportedVersion(t *testing.T) {
	_, ok, err := ParseTag(NewBuffer(rawTag(0x0200, 0, 0)))
	assert.False(t, ok)
	var uv *UnsupportedVersionError
	require.ErrorAs(t, err, &uv)
	assert.Equal(t, Version(0x0200), uv.Version)
}

func TestParseTag_Padding(t *testing.T) {
	frame := rawFrame("TIT2", 0, Version24, []byte("\x03title"))
	data := rawTag(Version24, 0, len(frame)+100, frame, make([]byte, 100), []byte("AUDIO"))

	b := NewBuffer(data)
	tag, ok, err := ParseTag(b)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, 1, tag.Frames.Len())
	assert.Equal(t, "title", tag.Title())
	assert.Equal(t, 100, tag.Padding)
	assert.Equal(t, len(frame), tag.Header.Size)
	assert.Equal(t, 10+len(frame)+100, b.Pos(), "cursor at the start of the audio")
	rest, _ := b.ReadN(b.Remaining())
	assert.Equal(t, "AUDIO", string(rest))
}

func TestParseTag_StopsAtMalformedFrame(t *testing.T) {
	tests := []struct {
		name string
		bad  []byte
	}{
		{"size past the end", []byte("TALB\x00\x00\x03\x68\x00\x00\x03abcd")},
		{"invalid id", []byte("tal\x01\x00\x00\x00\x01\x00\x00\x03abcd")},
		{"short header", []byte("TAL")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := rawFrame("TIT2", 0, Version24, []byte("\x03title"))
			data := rawTag(Version24, 0, len(frame)+len(tt.bad), frame, tt.bad)

			tag, ok, err := ParseTag(NewBuffer(data))
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, []FrameType{FrameTitle}, tag.Frames.IDs())
			assert.Equal(t, len(tt.bad), tag.Padding)
			assertSizeInvariant(t, tag)
		})
	}
}

func TestParseTag_TruncatedTag(t *testing.T) {
	frame := rawFrame("TIT2", 0, Version24, []byte("\x03title"))
	data := rawTag(Version24, 0, 1000, frame)

	b := NewBuffer(data)
	tag, ok, err := ParseTag(b)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "title", tag.Title())
	assert.Equal(t, 0, b.Remaining())
}

func TestParseTag_ExtendedHeader(t *testing.T) {
	ext := []byte{0, 0, 0, 6, 1, 0}
	frame := rawFrame("TIT2", 0, Version24, []byte("\x03title"))
	data := rawTag(Version24, 0x40, len(ext)+len(frame), ext, frame)

	tag, ok, err := ParseTag(NewBuffer(data))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "title", tag.Title())
	assert.Equal(t, 6, tag.Header.ExtendedSize)
	assert.False(t, tag.Header.Flags.ExtendedHeader(), "the extended header isn't written back")
	assert.Equal(t, len(frame), tag.Header.Size)
	assert.Equal(t, 0, tag.Padding)
}

func TestParseTag_Footer(t *testing.T) {
	frame := rawFrame("TIT2", 0, Version24, []byte("\x03title"))
	footer := []byte("3DI\x04\x00\x10\x00\x00\x00\x10")
	data := rawTag(Version24, 0x10, len(frame), frame, footer, []byte("AUDIO"))

	b := NewBuffer(data)
	tag, ok, err := ParseTag(b)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, tag.Header.Flags.Footer())
	rest, _ := b.ReadN(b.Remaining())
	assert.Equal(t, "AUDIO", string(rest))
}

func TestParseTag_Unsynchronisation(t *testing.T) {
	t.Run("v2.3 whole tag", func(t *testing.T) {
		// the size field holds the resynchronised size
		frame := []byte("TIT2\x00\x00\x00\x03\x00\x00\x00\xff\x00a")
		data := rawTag(Version23, 0x80, len(frame), frame)

		tag, ok, err := ParseTag(NewBuffer(data))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "ÿa", tag.Title())
		assert.False(t, tag.Header.Flags.Unsynchronisation())
		assert.Equal(t, 0, tag.Padding)
	})

	t.Run("v2.4 single frame", func(t *testing.T) {
		frame := rawFrame("TIT2", 0x0002, Version24, []byte("\x00\xff\x00a"))
		data := rawTag(Version24, 0, len(frame), frame)

		tag, ok, err := ParseTag(NewBuffer(data))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "ÿa", tag.Title())
		assert.Equal(t, FrameFlags(0), tag.Frame(FrameTitle).Header().Flags())
		assertSizeInvariant(t, tag)
	})
}

func TestParseTag_RawFrames(t *testing.T) {
	tests := []struct {
		name  string
		frame []byte
	}{
		{"unknown id", rawFrame("XYZW", 0, Version24, []byte{1, 2, 3})},
		{"compressed", rawFrame("TIT2", 0x0008, Version24, []byte{0, 0, 0, 5, 0x78, 0x9c})},
		{"malformed comment", rawFrame("COMM", 0, Version24, []byte{3, 'e'})},
		{"invalid encoding", rawFrame("TALB", 0, Version24, []byte{9, 'a'})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := rawTag(Version24, 0, len(tt.frame), tt.frame)

			tag, ok, err := ParseTag(NewBuffer(data))
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, 1, tag.Frames.Len())
			_, raw := tag.Frames.Frames()[0].(*RawFrame)
			assert.True(t, raw)

			b, err := tag.Serialize()
			require.NoError(t, err)
			assert.Equal(t, data, b.Bytes(), "raw frames are written back verbatim")
		})
	}
}

func TestParseTag_V23Frames(t *testing.T) {
	long := strings.Repeat("x", 300)
	frame := rawFrame("TIT2", 0, Version23, append([]byte{0}, long...))
	comm := rawFrame("COMM", 0, Version23,
		concat([]byte{1}, []byte("eng"), UTF16.fromUTF8("d"), nulnul, UTF16.fromUTF8("日本")))
	data := rawTag(Version23, 0, len(frame)+len(comm), frame, comm)

	tag, ok, err := ParseTag(NewBuffer(data))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, long, tag.Title())
	assert.Equal(t, []Comment{{Language: "eng", Description: "d", Text: "日本"}}, tag.Comments())
}

type upperFrame struct {
	FrameHeader
	Text string
}

func (f *upperFrame) Encode() []byte { return []byte(strings.ToLower(f.Text)) }
func (f *upperFrame) Size() int      { return frameHeaderSize + len(f.Text) }
func (f *upperFrame) Value() string  { return f.Text }

func TestRegisterCodec(t *testing.T) {
	RegisterCodec("XUPP", FrameCodecFunc(func(h FrameHeader, p []byte) (Frame, error) {
		return &upperFrame{FrameHeader: h, Text: strings.ToUpper(string(p))}, nil
	}))
	defer delete(codecs, "XUPP")

	frame := rawFrame("XUPP", 0, Version24, []byte("shout"))
	tag, ok, err := ParseTag(NewBuffer(rawTag(Version24, 0, len(frame), frame)))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "SHOUT", tag.Frame("XUPP").Value())
}

func TestSerialize_SizeMismatch(t *testing.T) {
	tag := NewTag()
	tag.SetTitle("title")
	tag.Frames.Add(text(FrameAlbum, "album"))

	_, err := tag.Serialize()
	var mismatch *SizeMismatchError
	require.ErrorAs(t, err, &mismatch)

	tag.SyncSize()
	_, err = tag.Serialize()
	assert.NoError(t, err)
}

func TestSerialize_TooLarge(t *testing.T) {
	tag := NewTag()
	tag.SetTitle("title")

	_, err := tag.serialize(MaxSynchsafe)
	var tooLarge *TagTooLargeError
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, FrameType(""), tooLarge.ID)
}

func TestParseReader(t *testing.T) {
	tag := NewTag()
	tag.SetTitle("title")
	b, err := tag.serialize(20)
	require.NoError(t, err)

	r := bytes.NewReader(append(b.Bytes(), "AUDIO"...))
	parsed, ok, err := ParseReader(r)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "title", parsed.Title())
	assert.Equal(t, 20, parsed.Padding)
	assert.Equal(t, 5, r.Len(), "only the tag has been consumed")

	_, ok, err = ParseReader(strings.NewReader("no tag here"))
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestSetTextFrame_DropsFormatFlags(t *testing.T) {
	tests := []struct {
		name  string
		v     Version
		flags uint16
		want  FrameFlags
	}{
		{"v2.3 compressed", Version23, 0x0080, 0},
		{"v2.3 encrypted, read-only", Version23, 0x2040, 0x2000},
		{"v2.4 data length indicator", Version24, 0x0001, 0},
		{"v2.4 grouped, read-only", Version24, 0x1040, 0x1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := rawFrame("TIT2", tt.flags, tt.v, []byte{0, 0, 0, 9, 0x78, 0x9c, 1})
			tag, ok, err := ParseTag(NewBuffer(rawTag(tt.v, 0, len(frame), frame)))
			require.NoError(t, err)
			require.True(t, ok)
			require.IsType(t, &RawFrame{}, tag.Frame(FrameTitle))

			tag.SetTitle("new")
			b, err := tag.Serialize()
			require.NoError(t, err)

			parsed, ok, err := ParseTag(NewBuffer(b.Bytes()))
			require.NoError(t, err)
			require.True(t, ok)
			require.IsType(t, &TextFrame{}, parsed.Frame(FrameTitle))
			assert.Equal(t, "new", parsed.Title())
			assert.Equal(t, tt.want, parsed.Frame(FrameTitle).Header().Flags())
			assert.Equal(t, 1, parsed.Frames.Len())
		})
	}
}

// blobFrame is a frame implemented as a value type that can't be
// compared with ==.
type blobFrame struct {
	FrameHeader
	Data []byte
}

func (f blobFrame) Encode() []byte { return f.Data }
func (f blobFrame) Size() int      { return frameHeaderSize + len(f.Data) }
func (f blobFrame) Value() string  { return string(f.Data) }

func TestValueTypeFrames(t *testing.T) {
	RegisterCodec("XBLB", FrameCodecFunc(func(h FrameHeader, p []byte) (Frame, error) {
		return blobFrame{FrameHeader: h, Data: p}, nil
	}))
	defer delete(codecs, "XBLB")

	frame := rawFrame("XBLB", 0, Version24, []byte("first"))
	tag, ok, err := ParseTag(NewBuffer(rawTag(Version24, 0, len(frame), frame)))
	require.NoError(t, err)
	require.True(t, ok)
	tag.SetTitle("title")

	second := blobFrame{FrameHeader: NewFrameHeader("XBLB", 0), Data: []byte("the second")}
	require.NotPanics(t, func() { tag.SetFrame(second) })
	assert.Equal(t, []FrameType{"XBLB", FrameTitle}, tag.Frames.IDs())
	assert.Equal(t, "the second", tag.Frame("XBLB").Value())
	assertSizeInvariant(t, tag)

	require.NotPanics(t, func() {
		assert.False(t, tag.RemoveFrame(second), "value types aren't matched by identity")
		assert.False(t, tag.Frames.Replace(second, second))
	})

	tag.RemoveFrames("XBLB")
	assert.Equal(t, []FrameType{FrameTitle}, tag.Frames.IDs())
	assertSizeInvariant(t, tag)
}

func TestParseReader_HugeDeclaredSize(t *testing.T) {
	frame := rawFrame("TIT2", 0, Version24, []byte("\x03title"))
	data := rawTag(Version24, 0, MaxSynchsafe, frame)

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	tag, ok, err := ParseReader(bytes.NewReader(data))
	runtime.ReadMemStats(&after)

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "title", tag.Title())
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20),
		"memory is allocated for the data present, not the declared size")
}
