package id3

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Tag is an ID3v2 tag: a header and an ordered list of frames.
//
// Header.Size always equals the combined size of all frames, as long
// as frames are changed through the methods of Tag. Changing Frames
// directly requires a call to SyncSize before the tag can be
// serialized.
type Tag struct {
	Header TagHeader
	Frames FrameList

	// Padding is the number of zero bytes that followed the frames
	// when the tag was parsed. Save updates it to the amount it wrote.
	Padding int
}

type Comment struct {
	Language    string
	Description string
	Text        string
}

type Picture struct {
	MIMEType    string // detected from Data when empty
	Type        PictureType
	Description string
	Data        []byte
}

// NewTag returns an empty ID3v2.4 tag.
func NewTag() *Tag {
	return &Tag{Header: TagHeader{Version: Version24}}
}

// SyncSize recomputes Header.Size from the frames.
func (t *Tag) SyncSize() {
	t.Header.Size = t.Frames.size()
}

// replaceAt puts f at position i, or appends it if i is negative.
func (t *Tag) replaceAt(i int, f Frame) {
	if i < 0 {
		t.AddFrame(f)
		return
	}
	old := t.Frames.ReplaceAt(i, f)
	t.Header.Size += f.Size() - old.Size()
}

// SetFrame replaces the first frame with the same ID as f, or adds f
// if there is none.
func (t *Tag) SetFrame(f Frame) {
	t.replaceAt(t.Frames.Index(f.ID()), f)
}

// AddFrame appends f, regardless of other frames with the same ID.
func (t *Tag) AddFrame(f Frame) {
	t.Frames.Add(f)
	t.Header.Size += f.Size()
}

// RemoveFrame removes f and reports whether it was part of the tag.
// Frames are matched by identity, so f has to be of a comparable type,
// usually a pointer.
func (t *Tag) RemoveFrame(f Frame) bool {
	if !t.Frames.Remove(f) {
		return false
	}
	t.Header.Size -= f.Size()
	return true
}

// RemoveFrames removes all frames with the given ID.
func (t *Tag) RemoveFrames(id FrameType) {
	for i := t.Frames.Len() - 1; i >= 0; i-- {
		if t.Frames.At(i).ID() == id {
			t.Header.Size -= t.Frames.RemoveAt(i).Size()
		}
	}
}

// Clear removes all frames.
func (t *Tag) Clear() {
	t.Frames = FrameList{}
	t.Header.Size = 0
}

func (t *Tag) HasFrame(id FrameType) bool {
	return t.Frames.First(id) != nil
}

// Frame returns the first frame with the given ID, or nil.
func (t *Tag) Frame(id FrameType) Frame {
	return t.Frames.First(id)
}

// AllFrames returns all frames with the given ID in order.
func (t *Tag) AllFrames(id FrameType) []Frame {
	return t.Frames.All(id)
}

// TextFrame returns the value of the text frame with the given ID,
// or "" if there is none.
//
// To access user text frames, specify the name like "TXXX:The
// description".
func (t *Tag) TextFrame(id FrameType) string {
	if desc, ok := frameNameToUserFrame(id); ok {
		if i := t.userTextIndex(desc); i >= 0 {
			return t.Frames.At(i).Value()
		}
		return ""
	}

	f := t.Frames.First(id)
	if f == nil {
		return ""
	}
	return f.Value()
}

// TextFrameValues returns the NUL separated values of a text frame.
func (t *Tag) TextFrameValues(id FrameType) []string {
	s := t.TextFrame(id)
	if s == "" {
		return nil
	}
	return strings.Split(s, "\x00")
}

// SetTextFrame sets the text frame with the given ID, replacing an
// existing one. See TextFrame for user text frames.
func (t *Tag) SetTextFrame(id FrameType, value string) {
	enc := encodingFor(t.Header.Version, value)

	if desc, ok := frameNameToUserFrame(id); ok {
		i := t.userTextIndex(desc)
		t.replaceAt(i, &UserTextFrame{
			FrameHeader: FrameHeader{id: FrameUserText, flags: t.statusFlags(i)},
			Encoding:    encodingFor(t.Header.Version, desc+value),
			Description: desc,
			Text:        value,
		})
		return
	}

	i := t.Frames.Index(id)
	t.replaceAt(i, &TextFrame{
		FrameHeader: FrameHeader{id: id, flags: t.statusFlags(i)},
		Encoding:    enc,
		Text:        value,
	})
}

// statusFlags returns the flags a frame replacing the one at position
// i inherits. Payload format flags don't carry over.
func (t *Tag) statusFlags(i int) FrameFlags {
	if i < 0 {
		return 0
	}
	return t.Frames.At(i).Header().Flags().status(t.Header.Version)
}

// SetTextFrameValues stores multiple values in one text frame.
func (t *Tag) SetTextFrameValues(id FrameType, values []string) {
	t.SetTextFrame(id, strings.Join(values, "\x00"))
}

// userTextIndex returns the position of the TXXX frame with the given
// description, or -1.
func (t *Tag) userTextIndex(desc string) int {
	for i := 0; i < t.Frames.Len(); i++ {
		if uf, ok := t.Frames.At(i).(*UserTextFrame); ok && uf.Description == desc {
			return i
		}
	}
	return -1
}

func frameNameToUserFrame(name FrameType) (frameName string, ok bool) {
	if len(name) < 6 {
		return "", false
	}

	if name[0:5] != "TXXX:" {
		return "", false
	}

	return string(name[5:]), true
}

func (t *Tag) Title() string {
	return t.TextFrame(FrameTitle)
}

func (t *Tag) SetTitle(title string) {
	t.SetTextFrame(FrameTitle, title)
}

func (t *Tag) Artist() string {
	return t.TextFrame(FrameArtist)
}

func (t *Tag) SetArtist(artist string) {
	t.SetTextFrame(FrameArtist, artist)
}

func (t *Tag) Album() string {
	return t.TextFrame(FrameAlbum)
}

func (t *Tag) SetAlbum(album string) {
	t.SetTextFrame(FrameAlbum, album)
}

func (t *Tag) AlbumArtist() string {
	return t.TextFrame(FrameAlbumArtist)
}

func (t *Tag) SetAlbumArtist(artist string) {
	t.SetTextFrame(FrameAlbumArtist, artist)
}

func (t *Tag) Genre() string {
	return t.TextFrame(FrameGenre)
}

func (t *Tag) SetGenre(genre string) {
	t.SetTextFrame(FrameGenre, genre)
}

// yearFrames returns the frame the year is stored in for the tag's
// version, followed by the one of the other version.
func (t *Tag) yearFrames() (FrameType, FrameType) {
	if t.Header.Version.Major() >= 4 {
		return FrameRecording, FrameYear
	}
	return FrameYear, FrameRecording
}

// Year returns the recording year. ID3v2.4 tags store it in TDRC,
// older ones in TYER; either is accepted.
func (t *Tag) Year() string {
	preferred, other := t.yearFrames()
	if y := t.TextFrame(preferred); y != "" {
		return y
	}
	return t.TextFrame(other)
}

func (t *Tag) SetYear(year string) {
	preferred, _ := t.yearFrames()
	t.SetTextFrame(preferred, year)
}

// Track returns the track number, optionally followed by a slash
// and the number of tracks, e.g. "4/9".
func (t *Tag) Track() string {
	return t.TextFrame(FrameTrack)
}

func (t *Tag) SetTrack(track string) {
	t.SetTextFrame(FrameTrack, track)
}

func (t *Tag) DiscNumber() string {
	return t.TextFrame(FrameDisc)
}

func (t *Tag) SetDiscNumber(disc string) {
	t.SetTextFrame(FrameDisc, disc)
}

func (t *Tag) Composer() string {
	return t.TextFrame(FrameComposer)
}

func (t *Tag) SetComposer(composer string) {
	t.SetTextFrame(FrameComposer, composer)
}

func (t *Tag) newCommentFrame(c Comment) *CommentFrame {
	return &CommentFrame{
		FrameHeader: FrameHeader{id: FrameComment},
		Encoding:    encodingFor(t.Header.Version, c.Description+c.Text),
		Language:    c.Language,
		Description: c.Description,
		Text:        c.Text,
	}
}

// Comment returns the first comment.
func (t *Tag) Comment() (Comment, bool) {
	f, ok := t.Frames.First(FrameComment).(*CommentFrame)
	if !ok {
		return Comment{}, false
	}
	return Comment{Language: f.Language, Description: f.Description, Text: f.Text}, true
}

// Comments returns all comments in order.
func (t *Tag) Comments() []Comment {
	var comments []Comment
	for _, f := range t.Frames.All(FrameComment) {
		if cf, ok := f.(*CommentFrame); ok {
			comments = append(comments, Comment{
				Language:    cf.Language,
				Description: cf.Description,
				Text:        cf.Text,
			})
		}
	}
	return comments
}

// SetComment replaces the first comment, or adds c if there is none.
// Other comments are left alone.
func (t *Tag) SetComment(c Comment) {
	t.SetFrame(t.newCommentFrame(c))
}

// AddComment adds another comment.
func (t *Tag) AddComment(c Comment) {
	t.AddFrame(t.newCommentFrame(c))
}

func (t *Tag) newPictureFrame(p Picture) *PictureFrame {
	mime := p.MIMEType
	if mime == "" {
		mime = detectMIMEType(p.Data)
	}
	return &PictureFrame{
		FrameHeader: FrameHeader{id: FramePicture},
		Encoding:    encodingFor(t.Header.Version, p.Description),
		MIMEType:    mime,
		PictureType: p.Type,
		Description: p.Description,
		Data:        p.Data,
	}
}

func detectMIMEType(data []byte) string {
	mime, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	return mime
}

func pictureOf(f *PictureFrame) Picture {
	return Picture{
		MIMEType:    f.MIMEType,
		Type:        f.PictureType,
		Description: f.Description,
		Data:        f.Data,
	}
}

// Pictures returns all attached pictures in order.
func (t *Tag) Pictures() []Picture {
	var pics []Picture
	for _, f := range t.Frames.All(FramePicture) {
		if pf, ok := f.(*PictureFrame); ok {
			pics = append(pics, pictureOf(pf))
		}
	}
	return pics
}

// SetPicture replaces the first attached picture, whatever its type,
// or adds p if there is none.
func (t *Tag) SetPicture(p Picture) {
	t.SetFrame(t.newPictureFrame(p))
}

// AddPicture adds another picture.
func (t *Tag) AddPicture(p Picture) {
	t.AddFrame(t.newPictureFrame(p))
}

func (t *Tag) frontCoverIndex() int {
	for i := 0; i < t.Frames.Len(); i++ {
		if pf, ok := t.Frames.At(i).(*PictureFrame); ok && pf.PictureType == PictureFrontCover {
			return i
		}
	}
	return -1
}

// FrontCover returns the first picture of type "Cover (front)".
func (t *Tag) FrontCover() (Picture, bool) {
	i := t.frontCoverIndex()
	if i < 0 {
		return Picture{}, false
	}
	return pictureOf(t.Frames.At(i).(*PictureFrame)), true
}

// SetFrontCover replaces the front cover, or adds one. If mime is
// empty, it is detected from data.
func (t *Tag) SetFrontCover(mime string, data []byte) {
	t.replaceAt(t.frontCoverIndex(), t.newPictureFrame(Picture{MIMEType: mime, Type: PictureFrontCover, Data: data}))
}
