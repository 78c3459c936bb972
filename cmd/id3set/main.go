// Command id3set changes well-known fields of a file's tag and writes
// it back.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"
	"honnef.co/go/id3"
)

type fields struct {
	title, artist, album, albumArtist string
	genre, year, track, disc          string
	composer, comment, commentLang    string
	cover                             string
}

func main() {
	var f fields
	flag.StringVar(&f.title, "title", "", "title")
	flag.StringVar(&f.artist, "artist", "", "artist")
	flag.StringVar(&f.album, "album", "", "album")
	flag.StringVar(&f.albumArtist, "album-artist", "", "album artist")
	flag.StringVar(&f.genre, "genre", "", "genre")
	flag.StringVar(&f.year, "year", "", "year of recording")
	flag.StringVar(&f.track, "track", "", "track number, e.g. 4/9")
	flag.StringVar(&f.disc, "disc", "", "disc number")
	flag.StringVar(&f.composer, "composer", "", "composer")
	flag.StringVar(&f.comment, "comment", "", "replaces the first comment")
	flag.StringVar(&f.commentLang, "comment-lang", "eng", "language of -comment")
	flag.StringVar(&f.cover, "cover", "", "image file to use as front cover")
	clearFrames := flag.Bool("clear", false, "remove all existing frames first")
	padding := flag.Int("padding", id3.DefaultPadding, "padding to reserve in the written tag")
	logLevel := flag.String("log-level", "warn", "log level (debug, info, warn, error)")
	jobs := flag.Int("j", 4, "number of files to rewrite in parallel")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	id3.SetLogger(logger)

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: id3set [flags] file...")
		os.Exit(2)
	}

	var cover []byte
	if f.cover != "" {
		var err error
		cover, err = os.ReadFile(f.cover)
		if err != nil {
			logger.Error("reading cover", "error", err)
			os.Exit(1)
		}
	}

	w := &id3.Writer{Padding: *padding, Logger: logger}
	var g errgroup.Group
	g.SetLimit(max(*jobs, 1))
	for _, name := range flag.Args() {
		g.Go(func() error {
			err := f.update(w, name, cover, *clearFrames)
			if err != nil {
				logger.Error("updating tag", "path", name, "error", err)
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		os.Exit(1)
	}
}

// update rewrites the tag of a single file.
func (f *fields) update(w *id3.Writer, name string, cover []byte, clearFrames bool) error {
	tag, err := id3.Open(name)
	if err != nil {
		return err
	}
	if clearFrames {
		tag.Clear()
	}
	f.apply(tag, cover)
	return w.Write(tag, name)
}

func (f *fields) apply(tag *id3.Tag, cover []byte) {
	set := func(v string, fn func(string)) {
		if v != "" {
			fn(v)
		}
	}
	set(f.title, tag.SetTitle)
	set(f.artist, tag.SetArtist)
	set(f.album, tag.SetAlbum)
	set(f.albumArtist, tag.SetAlbumArtist)
	set(f.genre, tag.SetGenre)
	set(f.year, tag.SetYear)
	set(f.track, tag.SetTrack)
	set(f.disc, tag.SetDiscNumber)
	set(f.composer, tag.SetComposer)
	if f.comment != "" {
		tag.SetComment(id3.Comment{Language: f.commentLang, Text: f.comment})
	}
	if cover != nil {
		tag.SetFrontCover("", cover)
	}
}
