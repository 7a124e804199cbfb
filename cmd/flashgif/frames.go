package main

import (
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"
	"path/filepath"
	"slices"
	"strings"

	apperr "github.com/flashrecord/flashgif/internal/errors"
	"github.com/flashrecord/flashgif/internal/frame"
)

// loadFrames decodes every file in dir whose extension is listed, in
// lexical order. Files that fail to decode become placeholders sized like
// the first good frame so the capture length is not changed.
func loadFrames(dir string, exts []string) ([]frame.Frame, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInvalidInput, "read frame directory")
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if slices.Contains(exts, ext) {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	frames := make([]frame.Frame, len(names))
	var bad []int
	for i, name := range names {
		f, err := decodeFile(filepath.Join(dir, name))
		if err != nil {
			frame.NewDegradation("decode", i, err)
			bad = append(bad, i)
			continue
		}
		frames[i] = f
	}
	if len(bad) == len(frames) {
		return nil, apperr.InvalidInput("no decodable frames in %s", dir)
	}

	var ref frame.Frame
	for _, f := range frames {
		if f.Valid() {
			ref = f
			break
		}
	}
	for _, i := range bad {
		frames[i] = frame.Placeholder(ref.Width, ref.Height)
	}
	return frames, nil
}

func decodeFile(path string) (frame.Frame, error) {
	fh, err := os.Open(path)
	if err != nil {
		return frame.Frame{}, err
	}
	defer fh.Close()

	img, _, err := image.Decode(fh)
	if err != nil {
		return frame.Frame{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return frame.FromImage(img), nil
}
