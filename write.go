package id3

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// DefaultPadding is the amount of padding Save reserves, so that
// later edits that grow the tag slightly have room to do so.
const DefaultPadding = 2048

// replaceFile moves the staged content into the destination.
var replaceFile = replaceContents

// Writer writes tags into existing files.
type Writer struct {
	// Padding is the number of padding bytes a written tag should
	// have. Tags that already carry at least that much padding keep
	// theirs.
	Padding int

	// TempDir is where the new file content is staged. The empty
	// string means os.TempDir.
	TempDir string

	// Logger defaults to the package Logger.
	Logger *slog.Logger
}

// Save writes t into the named file with DefaultPadding, replacing
// any tag the file already has.
func (t *Tag) Save(path string) error {
	w := &Writer{Padding: DefaultPadding}
	return w.Write(t, path)
}

func (w *Writer) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return Logger
}

// extraPadding returns how many padding bytes have to be added to a
// tag that already has the given amount.
func (w *Writer) extraPadding(have int) int {
	return min(max(w.Padding-have, 0), max(w.Padding, 0))
}

// Write serializes t and writes it to the start of the named file,
// followed by the file's audio data. Whatever tag the file had before
// is replaced; its size is read from the file itself, not taken from
// t.
//
// The new content is staged in a temporary file first, so that the
// destination is only modified once everything has been read. The
// final copy back into the destination is not atomic. Once the
// destination has been rewritten, failing to remove the temporary file
// is logged as a warning and not reported as an error.
func (w *Writer) Write(t *Tag, path string) (err error) {
	log := w.logger().With("path", path)

	old, ok, err := ReadHeader(path)
	if err != nil {
		return fmt.Errorf("id3: reading existing tag: %w", err)
	}
	span := 0
	if ok {
		span = old.Span()
	}

	padding := t.Padding + w.extraPadding(t.Padding)
	b, err := t.serialize(padding)
	if err != nil {
		return err
	}
	log.Debug("writing tag", "old_span", span, "new_size", b.Len(), "padding", padding)

	tmp, err := os.CreateTemp(w.TempDir, "id3-*")
	if err != nil {
		return fmt.Errorf("id3: creating temporary file: %w", err)
	}
	replaced := false
	defer func() {
		cerr := closeAndRemove(tmp)
		switch {
		case cerr == nil:
		case replaced:
			log.Warn("cleaning up temporary file", "temp", tmp.Name(), "error", cerr)
		default:
			err = errors.Join(err, cerr)
		}
	}()

	if _, err := tmp.Write(b.Bytes()); err != nil {
		return fmt.Errorf("id3: staging tag: %w", err)
	}
	if err := copyAudio(tmp, path, int64(span)); err != nil {
		return err
	}
	if err := replaceFile(path, tmp); err != nil {
		return err
	}
	replaced = true

	t.Padding = padding
	return nil
}

func closeAndRemove(f *os.File) error {
	err := f.Close()
	if rerr := os.Remove(f.Name()); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
		err = errors.Join(err, rerr)
	}
	if err != nil {
		return fmt.Errorf("id3: releasing temporary file: %w", err)
	}
	return nil
}

// copyAudio appends everything from offset on in the named file to
// dst.
func copyAudio(dst io.Writer, path string, offset int64) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("id3: opening %s: %w", path, err)
	}
	defer src.Close()

	if _, err := src.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("id3: seeking past existing tag: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("id3: copying audio data: %w", err)
	}
	return nil
}

// replaceContents truncates the named file and copies staged into
// it. The file keeps its identity, mode and owner.
func replaceContents(path string, staged *os.File) error {
	if _, err := staged.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("id3: rewinding temporary file: %w", err)
	}
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return fmt.Errorf("id3: opening %s for writing: %w", path, err)
	}
	if _, err := io.Copy(dst, staged); err != nil {
		dst.Close()
		return fmt.Errorf("id3: writing %s: %w", path, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("id3: closing %s: %w", path, err)
	}
	return nil
}
