package palette

import (
	"image"
	"image/color"
	"log/slog"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"

	"github.com/soniakeys/quant/median"

	apperr "github.com/flashrecord/flashgif/internal/errors"
	"github.com/flashrecord/flashgif/internal/frame"
)

type rgb [3]uint8

// Builder derives one shared palette from a frame set. Sampling is seeded,
// so identical frames and options always yield an identical palette.
type Builder struct {
	Seed             uint64
	SamplesPerColor  int
	MaxSamples       int
	WeightedPerColor int
	Workers          int
}

// NewBuilder returns a builder with the default sampling budget.
func NewBuilder(seed uint64, workers int) *Builder {
	return &Builder{
		Seed:             seed,
		SamplesPerColor:  SamplesPerColor,
		MaxSamples:       MaxSamples,
		WeightedPerColor: WeightedPerColor,
		Workers:          workers,
	}
}

// Build samples pixels across all frames, biases the draw toward saturated
// colors and median-cuts the result into at most colors entries. It fails
// only when no frame contributes a sample; callers fall back to Grayscale.
func (b *Builder) Build(frames []frame.Frame, colors int) (Palette, error) {
	colors = max(1, min(colors, MaxColors))

	samples := b.spatialSamples(frames)
	if len(samples) == 0 {
		return Palette{}, apperr.New(apperr.CodeDegraded, "no pixels to sample").
			WithMetadata("frames", strconv.Itoa(len(frames)))
	}
	rng := rand.New(rand.NewPCG(b.Seed, b.Seed))

	limit := min(colors*b.SamplesPerColor, b.MaxSamples)
	if limit > 0 && len(samples) > limit {
		samples = uniformSubset(rng, samples, limit)
	}
	if n := colors * b.WeightedPerColor; n > 0 && len(samples) > n {
		samples = weightedSubset(rng, samples, n)
	}

	p := FromColors(quantize(samples, colors))
	slog.Debug("palette built", "requested", colors, "colors", p.Colors, "samples", len(samples))
	return p, nil
}

// SampleStride returns the smallest spatial stride at which the strided
// pixels of all valid frames fit in SampleBudgetPixels.
func SampleStride(frames []frame.Frame) int {
	total, maxDim := 0, 1
	for _, f := range frames {
		if f.Valid() {
			total += f.Width * f.Height
			maxDim = max(maxDim, f.Width, f.Height)
		}
	}
	s := max(1, int(math.Sqrt(float64(total)/SampleBudgetPixels)))
	for s < maxDim && stridedCount(frames, s) > SampleBudgetPixels {
		s++
	}
	return s
}

func stridedCount(frames []frame.Frame, s int) int {
	n := 0
	for _, f := range frames {
		if f.Valid() {
			n += ((f.Width + s - 1) / s) * ((f.Height + s - 1) / s)
		}
	}
	return n
}

// spatialSamples collects strided pixels from every valid frame in frame
// order. The result never exceeds SampleBudgetPixels.
func (b *Builder) spatialSamples(frames []frame.Frame) []rgb {
	s := SampleStride(frames)
	per := make([][]rgb, len(frames))
	frame.ForEach(b.Workers, len(frames), func(i int) {
		f := frames[i]
		if !f.Valid() {
			return
		}
		out := make([]rgb, 0, ((f.Width+s-1)/s)*((f.Height+s-1)/s))
		for y := 0; y < f.Height; y += s {
			row := f.Pix[y*f.Width*3:]
			for x := 0; x < f.Width; x += s {
				out = append(out, rgb{row[x*3], row[x*3+1], row[x*3+2]})
			}
		}
		per[i] = out
	})

	total := 0
	for _, p := range per {
		total += len(p)
	}
	samples := make([]rgb, 0, min(total, SampleBudgetPixels))
	for _, p := range per {
		samples = append(samples, p...)
		if len(samples) >= SampleBudgetPixels {
			// Only reachable with more frames than the budget has pixels.
			samples = samples[:SampleBudgetPixels]
			break
		}
	}
	return samples
}

// uniformSubset picks n samples without replacement using Floyd's
// algorithm, so memory is proportional to n. Sample order is kept.
func uniformSubset(rng *rand.Rand, samples []rgb, n int) []rgb {
	total := len(samples)
	chosen := make(map[int]struct{}, n)
	for j := total - n; j < total; j++ {
		t := rng.IntN(j + 1)
		if _, ok := chosen[t]; ok {
			t = j
		}
		chosen[t] = struct{}{}
	}
	idx := make([]int, 0, n)
	for k := range chosen {
		idx = append(idx, k)
	}
	slices.Sort(idx)
	out := make([]rgb, n)
	for i, k := range idx {
		out[i] = samples[k]
	}
	return out
}

// weightedSubset draws n samples without replacement with probability
// proportional to saturation+SaturationBias, using exponential sort keys.
func weightedSubset(rng *rand.Rand, samples []rgb, n int) []rgb {
	type keyed struct {
		key float64
		i   int
	}
	keys := make([]keyed, len(samples))
	for i, s := range samples {
		w := Saturation(s[0], s[1], s[2]) + SaturationBias
		keys[i] = keyed{key: math.Log(1-rng.Float64()) / w, i: i}
	}
	slices.SortFunc(keys, func(a, b keyed) int {
		switch {
		case a.key > b.key:
			return -1
		case a.key < b.key:
			return 1
		}
		return a.i - b.i
	})

	chosen := make([]int, n)
	for i := range chosen {
		chosen[i] = keys[i].i
	}
	slices.Sort(chosen)
	out := make([]rgb, n)
	for i, k := range chosen {
		out[i] = samples[k]
	}
	return out
}

// Saturation is (max-min)/max over the RGB channels, in [0, 1].
func Saturation(r, g, b uint8) float64 {
	hi := float64(max(r, g, b))
	lo := float64(min(r, g, b))
	return (hi - lo) / (hi + saturationEps)
}

// quantize median-cuts the samples, packed as a 1xN image, into at most n
// colors. Fewer come back when the samples have fewer distinct values.
func quantize(samples []rgb, n int) []color.RGBA {
	if len(samples) == 0 {
		return nil
	}
	if n <= 1 {
		return []color.RGBA{meanColor(samples)}
	}
	img := image.NewRGBA(image.Rect(0, 0, len(samples), 1))
	for i, s := range samples {
		img.Pix[i*4], img.Pix[i*4+1], img.Pix[i*4+2], img.Pix[i*4+3] = s[0], s[1], s[2], 0xff
	}
	cp := median.Quantizer(n).Palette(img).ColorPalette()
	out := make([]color.RGBA, len(cp))
	for i, c := range cp {
		out[i] = color.RGBAModel.Convert(c).(color.RGBA)
		out[i].A = 0xff
	}
	return out
}

func meanColor(samples []rgb) color.RGBA {
	var sum [3]int
	for _, s := range samples {
		sum[0] += int(s[0])
		sum[1] += int(s[1])
		sum[2] += int(s[2])
	}
	n := len(samples)
	return color.RGBA{
		R: uint8((sum[0] + n/2) / n),
		G: uint8((sum[1] + n/2) / n),
		B: uint8((sum[2] + n/2) / n),
		A: 0xff,
	}
}
