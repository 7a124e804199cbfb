package saliency

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/flashrecord/flashgif/internal/frame"
)

// Luminance converts a frame to 8-bit luma using ITU-R 601 weights.
func Luminance(f frame.Frame) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, f.Width, f.Height))
	for i, j := 0, 0; j < len(g.Pix); i, j = i+3, j+1 {
		r, gg, b := uint32(f.Pix[i]), uint32(f.Pix[i+1]), uint32(f.Pix[i+2])
		g.Pix[j] = uint8((r*299 + gg*587 + b*114 + 500) / 1000)
	}
	return g
}

// HalfSize downsamples a luma plane by 2x per axis with bilinear filtering.
func HalfSize(g *image.Gray) *image.Gray {
	b := g.Bounds()
	w, h := max(1, b.Dx()/2), max(1, b.Dy()/2)
	dst := image.NewGray(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), g, b, draw.Src, nil)
	return dst
}

// EdgeMagnitude applies an 8-neighbor Laplacian and returns |response|
// clipped to [0,255]. Border pixels have no full neighborhood and stay 0.
func EdgeMagnitude(g *image.Gray) []float64 {
	w, h := g.Rect.Dx(), g.Rect.Dy()
	out := make([]float64, w*h)
	if w < 3 || h < 3 {
		return out
	}
	px := func(x, y int) int { return int(g.Pix[y*g.Stride+x]) }
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			sum := 8 * px(x, y)
			sum -= px(x-1, y-1) + px(x, y-1) + px(x+1, y-1)
			sum -= px(x-1, y) + px(x+1, y)
			sum -= px(x-1, y+1) + px(x, y+1) + px(x+1, y+1)
			if sum < 0 {
				sum = -sum
			}
			out[y*w+x] = float64(min(sum, 255))
		}
	}
	return out
}

// stats accumulates mean, variance and a 32-bin histogram over a region.
type stats struct {
	n     int
	sum   float64
	sumSq float64
	hist  [HistogramBins]int
}

func (s *stats) add(v uint8) {
	f := float64(v)
	s.n++
	s.sum += f
	s.sumSq += f * f
	s.hist[binOf(v)]++
}

// binOf maps [0,255] onto 32 equal-width bins with 255 in the last bin.
func binOf(v uint8) int {
	return min(int(v)*HistogramBins/255, HistogramBins-1)
}

func (s *stats) variance() float64 {
	if s.n == 0 {
		return 0
	}
	n := float64(s.n)
	mean := s.sum / n
	v := s.sumSq/n - mean*mean
	if v < 0 {
		return 0
	}
	return v
}

// entropy returns the Shannon entropy in bits of the histogram.
func (s *stats) entropy() float64 {
	if s.n == 0 {
		return 0
	}
	n := float64(s.n)
	e := 0.0
	for _, c := range s.hist {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		e -= p * math.Log2(p)
	}
	return e
}
