/*
Package id3 reads, modifies and writes ID3v2 tags.

# Supported versions

Tags of version 2.3 and 2.4 can be parsed and written. A tag keeps the
version it was read with; tags created with NewTag are v2.4. Frame
sizes are encoded the way the tag's version requires: plain 32 bit
integers for v2.3, synchsafe integers for v2.4. The tag size is always
synchsafe.

Extended headers are skipped, not interpreted, and never written back.
The same is true for footers. Unsynchronised tags are resynchronised
when parsing and written without unsynchronisation.

# Accessing and manipulating frames

There are two ways to access frames: using the provided getter and
setter methods for well-known fields, and working directly with the
frames in Tag.Frames.

Setters of single-instance fields (title, artist, album, album artist,
genre, year, track, disc number, composer, front cover) replace an
existing frame in place or append a new one. Comments and pictures may
occur several times: SetComment and SetPicture replace only the first
one, AddComment and AddPicture always append.

The tag's header tracks the size of all frames. The methods on Tag keep
it up to date; after changing Tag.Frames directly, call SyncSize.

Frames this package doesn't know are kept as RawFrame and written back
unchanged. Additional codecs can be registered with RegisterCodec.

# Writing files

Save and Writer.Write replace the tag at the start of a file, moving
the audio data as needed. The new content is staged in a temporary
file before the destination is touched. Written tags carry at least
DefaultPadding (or Writer.Padding) bytes of padding.
*/
package id3
