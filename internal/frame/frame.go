package frame

import (
	"image"
	"image/color"
	"math"
)

// Frame is an owned, opaque RGB raster. Pix holds Width*Height*3 bytes in
// row-major R,G,B order. Stages never modify a Frame they receive.
type Frame struct {
	Width  int
	Height int
	Pix    []uint8
}

// New allocates a black frame.
func New(w, h int) Frame {
	return Frame{Width: w, Height: h, Pix: make([]uint8, w*h*3)}
}

// Filled returns a frame where every pixel is the given color.
func Filled(w, h int, r, g, b uint8) Frame {
	f := New(w, h)
	for i := 0; i < len(f.Pix); i += 3 {
		f.Pix[i], f.Pix[i+1], f.Pix[i+2] = r, g, b
	}
	return f
}

// Placeholder returns a mid-gray frame of the given size.
func Placeholder(w, h int) Frame {
	return Filled(w, h, PlaceholderGray, PlaceholderGray, PlaceholderGray)
}

// FromImage copies img into a new Frame. Alpha is composited over black.
func FromImage(img image.Image) Frame {
	b := img.Bounds()
	f := New(b.Dx(), b.Dy())
	if rgba, ok := img.(*image.RGBA); ok {
		for y := 0; y < f.Height; y++ {
			src := rgba.Pix[(y+b.Min.Y-rgba.Rect.Min.Y)*rgba.Stride+(b.Min.X-rgba.Rect.Min.X)*4:]
			dst := f.Pix[y*f.Width*3:]
			for x := 0; x < f.Width; x++ {
				dst[x*3] = src[x*4]
				dst[x*3+1] = src[x*4+1]
				dst[x*3+2] = src[x*4+2]
			}
		}
		return f
	}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			f.Pix[i] = uint8(r >> 8)
			f.Pix[i+1] = uint8(g >> 8)
			f.Pix[i+2] = uint8(bl >> 8)
			i += 3
		}
	}
	return f
}

// RGBA returns an opaque *image.RGBA copy for image libraries.
func (f Frame) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for i, j := 0, 0; i < len(f.Pix); i, j = i+3, j+4 {
		img.Pix[j] = f.Pix[i]
		img.Pix[j+1] = f.Pix[i+1]
		img.Pix[j+2] = f.Pix[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

// At returns the color at (x, y).
func (f Frame) At(x, y int) color.RGBA {
	o := (y*f.Width + x) * 3
	return color.RGBA{R: f.Pix[o], G: f.Pix[o+1], B: f.Pix[o+2], A: 0xff}
}

// Valid reports whether the pixel buffer matches the declared dimensions.
func (f Frame) Valid() bool {
	return f.Width > 0 && f.Height > 0 && len(f.Pix) == f.Width*f.Height*3
}

// Sequence is an ordered list of frames plus the rate they were captured at.
// FrameCount is the count at capture time and stays fixed through every stage
// so the original playback length can always be recovered.
type Sequence struct {
	Frames     []Frame
	FPS        float64
	FrameCount int
}

// NewSequence wraps captured frames. A non-positive fps falls back to DefaultInputFPS.
func NewSequence(frames []Frame, fps float64) Sequence {
	if fps <= 0 {
		fps = DefaultInputFPS
	}
	return Sequence{Frames: frames, FPS: fps, FrameCount: len(frames)}
}

// TotalMS is the ground-truth playback duration of the captured sequence.
func (s Sequence) TotalMS() int {
	return TotalMS(s.FrameCount, s.FPS)
}

// WithFrames returns a sequence carrying new frames but the same capture metadata.
func (s Sequence) WithFrames(frames []Frame) Sequence {
	return Sequence{Frames: frames, FPS: s.FPS, FrameCount: s.FrameCount}
}

// Len returns the number of frames currently in the sequence.
func (s Sequence) Len() int { return len(s.Frames) }

// TotalMS computes round(frameCount / fps * 1000).
func TotalMS(frameCount int, fps float64) int {
	if fps <= 0 {
		return 0
	}
	return int(math.Round(float64(frameCount) / fps * 1000))
}
