package palette

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/flashrecord/flashgif/internal/frame"
)

var errPaletteMismatch = errors.New("output does not reference the shared palette")

// Applier remaps frames onto a shared palette.
type Applier struct {
	Dither  bool
	Workers int
	// Seed drives the per-frame fallback palette.
	Seed uint64

	drawer draw.Drawer
}

// NewApplier returns a Floyd-Steinberg applier.
func NewApplier(seed uint64, workers int) *Applier {
	return &Applier{Dither: true, Workers: workers, Seed: seed}
}

// Apply quantizes every frame against pal. Output frames reference the same
// color table unless a frame could not be mapped, in which case it is
// quantized on its own and reported as degraded. Corrupt inputs become a
// placeholder at the size of the first valid frame.
func (a *Applier) Apply(frames []frame.Frame, pal Palette) ([]*image.Paletted, []frame.Degradation) {
	shared := pal.Color()
	refW, refH := referenceSize(frames)

	out := make([]*image.Paletted, len(frames))
	errs := make([]error, len(frames))
	frame.ForEach(a.Workers, len(frames), func(i int) {
		f := frames[i]
		if !f.Valid() {
			errs[i] = fmt.Errorf("corrupt buffer: %d bytes for %dx%d", len(f.Pix), f.Width, f.Height)
			out[i] = a.independent(frame.Placeholder(refW, refH), pal.Colors)
			return
		}
		img, err := a.applyShared(f, shared)
		if err != nil {
			errs[i] = err
			img = a.independent(f, pal.Colors)
		}
		out[i] = img
	})

	var degraded []frame.Degradation
	for i, err := range errs {
		if err != nil {
			degraded = append(degraded, frame.NewDegradation(StageApply, i, err))
		}
	}
	return out, degraded
}

func (a *Applier) applyShared(f frame.Frame, shared color.Palette) (img *image.Paletted, err error) {
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("quantize panic: %v", r)
		}
	}()
	dst := image.NewPaletted(image.Rect(0, 0, f.Width, f.Height), shared)
	a.drawerFor().Draw(dst, dst.Rect, f.RGBA(), image.Point{})
	if err := checkShared(dst, shared); err != nil {
		return nil, err
	}
	return dst, nil
}

func (a *Applier) drawerFor() draw.Drawer {
	switch {
	case a.drawer != nil:
		return a.drawer
	case a.Dither:
		return draw.FloydSteinberg
	default:
		return draw.Src
	}
}

// checkShared verifies that dst still uses the shared table and that every
// index is inside it.
func checkShared(dst *image.Paletted, shared color.Palette) error {
	if len(dst.Palette) != len(shared) {
		return fmt.Errorf("%w: %d entries, want %d", errPaletteMismatch, len(dst.Palette), len(shared))
	}
	if len(shared) > 0 && dst.Palette[0] != shared[0] {
		return errPaletteMismatch
	}
	for _, idx := range dst.Pix {
		if int(idx) >= len(shared) {
			return fmt.Errorf("index %d out of range for %d colors", idx, len(shared))
		}
	}
	return nil
}

// independent quantizes a single frame against a palette built from that
// frame alone, without dithering.
func (a *Applier) independent(f frame.Frame, colors int) *image.Paletted {
	b := NewBuilder(a.Seed, 1)
	p, err := b.Build([]frame.Frame{f}, colors)
	if err != nil {
		p = Grayscale(colors)
	}
	dst := image.NewPaletted(image.Rect(0, 0, f.Width, f.Height), p.Color())
	draw.Draw(dst, dst.Rect, f.RGBA(), image.Point{}, draw.Src)
	return dst
}

func referenceSize(frames []frame.Frame) (int, int) {
	for _, f := range frames {
		if f.Valid() {
			return f.Width, f.Height
		}
	}
	return 1, 1
}
