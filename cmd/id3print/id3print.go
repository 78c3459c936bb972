package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"honnef.co/go/id3"
)

func printFile(name string) error {
	fmt.Println(name)
	tag, ok, err := id3.ParseFile(name)
	if err != nil {
		return err
	}

	if !ok {
		fmt.Println("no ID3v2 tag")
		return nil
	}

	fmt.Printf("%s, %d bytes of frames, %d bytes of padding\n",
		tag.Header.Version, tag.Header.Size, tag.Padding)

	for _, typ := range tag.Frames.IDs() {
		frames := tag.AllFrames(typ)
		switch typ {
		case id3.FrameUserText:
			for _, frame := range frames {
				if frame, ok := frame.(*id3.UserTextFrame); ok {
					fmt.Printf("%s: %s\n", frame.Description, frame.Text)
				}
			}
			continue
		case id3.FramePicture:
			for _, frame := range frames {
				if frame, ok := frame.(*id3.PictureFrame); ok {
					fmt.Printf("%s: %s, %s, %d bytes\n", typ, frame.PictureType, frame.MIMEType, len(frame.Data))
				}
			}
			continue
		}
		var vals []string
		for _, frame := range frames {
			if _, raw := frame.(*id3.RawFrame); raw {
				vals = append(vals, fmt.Sprintf("<%d bytes>", frame.Size()))
				continue
			}
			vals = append(vals, strings.ReplaceAll(frame.Value(), "\x00", "; "))
		}
		fmt.Printf("%s: %s\n", typ, strings.Join(vals, ", "))
	}
	return nil
}

func main() {
	verbose := flag.Bool("v", false, "log skipped and uninterpreted data")
	flag.Parse()

	if *verbose {
		id3.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	status := 0
	for _, name := range flag.Args() {
		if err := printFile(name); err != nil {
			fmt.Fprintln(os.Stderr, err)
			status = 1
		}
		fmt.Println()
	}
	os.Exit(status)
}
