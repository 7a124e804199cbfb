// Package encoder serializes palette-indexed frames into an animated GIF.
package encoder

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"

	apperr "github.com/flashrecord/flashgif/internal/errors"
	"github.com/flashrecord/flashgif/internal/palette"
)

// LoopForever is the GIF loop count for endless playback.
const LoopForever = 0

// Encoder turns indexed frames plus per-frame durations into a byte stream.
// Callers only measure the length of what comes back.
type Encoder interface {
	Encode(frames []*image.Paletted, pal palette.Palette, durations []int, loop int) ([]byte, error)
}

// GIF writes one global color table and restores to background between frames.
type GIF struct {
	Disposal byte
}

// NewGIF returns a GIF encoder with background disposal.
func NewGIF() *GIF {
	return &GIF{Disposal: gif.DisposalBackground}
}

// Encode implements Encoder. Durations are in milliseconds and are stored
// in centiseconds.
func (e *GIF) Encode(frames []*image.Paletted, pal palette.Palette, durations []int, loop int) ([]byte, error) {
	if len(frames) == 0 {
		return nil, apperr.New(apperr.CodeEncodingFailed, "no frames to encode")
	}
	if len(durations) != len(frames) {
		return nil, apperr.Newf(apperr.CodeEncodingFailed, "%d durations for %d frames", len(durations), len(frames))
	}

	bounds := frames[0].Bounds()
	g := &gif.GIF{
		Image:     frames,
		Delay:     make([]int, len(frames)),
		Disposal:  make([]byte, len(frames)),
		LoopCount: loop,
		Config: image.Config{
			ColorModel: pal.Color(),
			Width:      bounds.Dx(),
			Height:     bounds.Dy(),
		},
	}
	for i, ms := range durations {
		g.Delay[i] = ms / 10
		g.Disposal[i] = e.Disposal
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeEncodingFailed, "gif encode").
			WithMetadata("frames", fmt.Sprint(len(frames)))
	}
	return buf.Bytes(), nil
}
