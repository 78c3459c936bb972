package id3

import "reflect"

// FrameList is an ordered collection of frames. Frames are kept in
// insertion order, which is also the order they are written in, and
// several frames may share an ID.
//
// FrameList doesn't know about the tag it belongs to; use the methods
// on Tag to keep the tag's size in sync when changing frames.
type FrameList struct {
	frames []Frame
}

// Len returns the number of frames.
func (l *FrameList) Len() int { return len(l.frames) }

// Frames returns a copy of all frames in order.
func (l *FrameList) Frames() []Frame {
	out := make([]Frame, len(l.frames))
	copy(out, l.frames)
	return out
}

// Add appends f.
func (l *FrameList) Add(f Frame) {
	l.frames = append(l.frames, f)
}

// index returns the position of f, matched by identity. Frames of
// types that cannot be compared with == are never found; use the
// positional methods for those.
func (l *FrameList) index(f Frame) int {
	if f == nil || !reflect.TypeOf(f).Comparable() {
		return -1
	}
	for i, g := range l.frames {
		if reflect.TypeOf(g) == reflect.TypeOf(f) && g == f {
			return i
		}
	}
	return -1
}

// Index returns the position of the first frame with the given ID, or
// -1.
func (l *FrameList) Index(id FrameType) int {
	for i, f := range l.frames {
		if f.ID() == id {
			return i
		}
	}
	return -1
}

// At returns the frame at position i.
func (l *FrameList) At(i int) Frame { return l.frames[i] }

// ReplaceAt puts f at position i and returns the frame that was there.
func (l *FrameList) ReplaceAt(i int, f Frame) Frame {
	old := l.frames[i]
	l.frames[i] = f
	return old
}

// RemoveAt removes the frame at position i and returns it.
func (l *FrameList) RemoveAt(i int) Frame {
	f := l.frames[i]
	l.frames = append(l.frames[:i], l.frames[i+1:]...)
	return f
}

// Replace puts new at the position of old. It reports whether old was
// part of the list.
func (l *FrameList) Replace(old, new Frame) bool {
	i := l.index(old)
	if i < 0 {
		return false
	}
	l.ReplaceAt(i, new)
	return true
}

// Remove removes f, reporting whether it was part of the list.
func (l *FrameList) Remove(f Frame) bool {
	i := l.index(f)
	if i < 0 {
		return false
	}
	l.RemoveAt(i)
	return true
}

// First returns the first frame with the given ID, or nil.
func (l *FrameList) First(id FrameType) Frame {
	if i := l.Index(id); i >= 0 {
		return l.frames[i]
	}
	return nil
}

// All returns every frame with the given ID, in order.
func (l *FrameList) All(id FrameType) []Frame {
	var out []Frame
	for _, f := range l.frames {
		if f.ID() == id {
			out = append(out, f)
		}
	}
	return out
}

// IDs returns the distinct frame IDs in order of first appearance.
func (l *FrameList) IDs() []FrameType {
	seen := make(map[FrameType]bool)
	var out []FrameType
	for _, f := range l.frames {
		if !seen[f.ID()] {
			seen[f.ID()] = true
			out = append(out, f.ID())
		}
	}
	return out
}

func (l *FrameList) size() int {
	size := 0
	for _, f := range l.frames {
		size += f.Size()
	}
	return size
}
