package palette

import (
	"image"
	"image/color"
	"image/draw"
	"math/rand/v2"
	"testing"

	"github.com/flashrecord/flashgif/internal/frame"
)

func noiseFrame(w, h int, seed uint64) frame.Frame {
	r := rand.New(rand.NewPCG(seed, 7))
	f := frame.New(w, h)
	for i := range f.Pix {
		f.Pix[i] = uint8(r.IntN(256))
	}
	return f
}

func TestBuildDeterministic(t *testing.T) {
	frames := []frame.Frame{noiseFrame(64, 48, 1), noiseFrame(64, 48, 2)}

	a, err := NewBuilder(DefaultSeed, 0).Build(frames, 64)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	b, err := NewBuilder(DefaultSeed, 4).Build(frames, 64)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if a != b {
		t.Error("same seed and frames produced different palettes")
	}
	if a.Colors != 64 {
		t.Errorf("Colors = %d, want 64", a.Colors)
	}
}

func TestBuildPadsUnusedEntries(t *testing.T) {
	frames := []frame.Frame{frame.Filled(10, 10, 200, 10, 10)}

	p, err := NewBuilder(DefaultSeed, 1).Build(frames, 16)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if p.Colors != 1 {
		t.Errorf("Colors = %d, want 1 for a single-color input", p.Colors)
	}
	if p.Entries[0] != 200 || p.Entries[1] != 10 || p.Entries[2] != 10 {
		t.Errorf("first entry = %v, want [200 10 10]", p.Entries[:3])
	}
	for i := 3; i < Size; i++ {
		if p.Entries[i] != 0 {
			t.Fatalf("Entries[%d] = %d, want zero padding", i, p.Entries[i])
		}
	}
	if len(p.Ints()) != Size {
		t.Errorf("len(Ints()) = %d, want %d", len(p.Ints()), Size)
	}
}

func TestBuildNoSamples(t *testing.T) {
	bad := frame.Frame{Width: 4, Height: 4, Pix: make([]uint8, 5)}
	if _, err := NewBuilder(DefaultSeed, 1).Build([]frame.Frame{bad}, 16); err == nil {
		t.Error("Build() with no valid frames should fail")
	}
}

func TestWeightedDrawFavorsSaturation(t *testing.T) {
	// Half gray, half saturated red; the draw should over-represent red.
	samples := make([]rgb, 20000)
	for i := range samples {
		if i%2 == 0 {
			samples[i] = rgb{128, 128, 128}
		} else {
			samples[i] = rgb{255, 0, 0}
		}
	}
	rng := rand.New(rand.NewPCG(1, 1))
	got := weightedSubset(rng, samples, 2000)

	red := 0
	for _, s := range got {
		if s[0] == 255 {
			red++
		}
	}
	if red <= len(got)/2 {
		t.Errorf("red samples = %d of %d, want a majority", red, len(got))
	}
}

func TestUniformSubset(t *testing.T) {
	samples := make([]rgb, 1000)
	for i := range samples {
		samples[i] = rgb{uint8(i), uint8(i >> 8), 0}
	}
	got := uniformSubset(rand.New(rand.NewPCG(3, 3)), samples, 100)
	if len(got) != 100 {
		t.Fatalf("len = %d, want 100", len(got))
	}
	seen := map[rgb]bool{}
	for _, s := range got {
		if seen[s] {
			t.Fatalf("sample %v drawn twice", s)
		}
		seen[s] = true
	}
}

func TestSaturation(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    float64
	}{
		{0, 0, 0, 0},
		{128, 128, 128, 0},
		{255, 0, 0, 1},
	}
	for _, tt := range tests {
		got := Saturation(tt.r, tt.g, tt.b)
		if got < tt.want-1e-3 || got > tt.want+1e-3 {
			t.Errorf("Saturation(%d,%d,%d) = %v, want %v", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestQuantizeDistinctColors(t *testing.T) {
	var samples []rgb
	for i := 0; i < 50; i++ {
		samples = append(samples, rgb{0, 0, 0}, rgb{255, 255, 255}, rgb{255, 0, 0}, rgb{0, 0, 255})
	}
	got := quantize(samples, 4)
	if len(got) < 2 || len(got) > 4 {
		t.Fatalf("len = %d, want 2..4", len(got))
	}
	for _, c := range got {
		if c.A != 0xff {
			t.Errorf("color %v is not opaque", c)
		}
	}
}

func TestQuantizeSingleColor(t *testing.T) {
	samples := []rgb{{10, 20, 30}, {12, 20, 30}}
	got := quantize(samples, 1)
	if len(got) != 1 || got[0] != (color.RGBA{11, 20, 30, 255}) {
		t.Errorf("quantize(..., 1) = %v, want [{11 20 30 255}]", got)
	}
	if quantize(nil, 8) != nil {
		t.Error("quantize(nil) should be nil")
	}
}

func TestSamplingStaysWithinBudget(t *testing.T) {
	f := frame.Filled(256, 256, 90, 40, 200)
	frames := make([]frame.Frame, 60)
	for i := range frames {
		frames[i] = f
	}

	if s := SampleStride(frames); s != 4 {
		t.Errorf("SampleStride() = %d, want 4", s)
	}
	got := NewBuilder(DefaultSeed, 0).spatialSamples(frames)
	if len(got) > SampleBudgetPixels {
		t.Errorf("sampled %d pixels, want <= %d", len(got), SampleBudgetPixels)
	}
	if len(got) == 0 {
		t.Error("no samples drawn")
	}
}

func TestSampleStrideSmallBatch(t *testing.T) {
	frames := []frame.Frame{frame.New(64, 48), frame.New(64, 48)}
	if s := SampleStride(frames); s != 1 {
		t.Errorf("SampleStride() = %d, want 1", s)
	}
}

func TestGrayscale(t *testing.T) {
	p := Grayscale(256)
	if p.Colors != 256 {
		t.Fatalf("Colors = %d, want 256", p.Colors)
	}
	for i := 0; i < 256; i++ {
		if p.Entries[i*3] != uint8(i) || p.Entries[i*3+2] != uint8(i) {
			t.Fatalf("entry %d = %v, want gray %d", i, p.Entries[i*3:i*3+3], i)
		}
	}
}

func TestApplySharesPalette(t *testing.T) {
	frames := []frame.Frame{noiseFrame(32, 32, 1), noiseFrame(32, 32, 2), noiseFrame(32, 32, 3)}
	pal, err := NewBuilder(DefaultSeed, 0).Build(frames, 32)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	out, degraded := NewApplier(DefaultSeed, 0).Apply(frames, pal)
	if len(degraded) != 0 {
		t.Errorf("degraded = %v, want none", degraded)
	}
	if len(out) != len(frames) {
		t.Fatalf("len = %d, want %d", len(out), len(frames))
	}
	want := pal.Color()
	for i, img := range out {
		if len(img.Palette) != len(want) {
			t.Fatalf("frame %d palette len = %d, want %d", i, len(img.Palette), len(want))
		}
		for j := range want {
			if img.Palette[j] != want[j] {
				t.Fatalf("frame %d palette[%d] differs from shared palette", i, j)
			}
		}
	}
}

func TestApplyWithoutDither(t *testing.T) {
	f := frame.Filled(8, 8, 250, 5, 5)
	pal := FromColors([]color.RGBA{{0, 0, 0, 255}, {255, 0, 0, 255}})

	a := NewApplier(DefaultSeed, 1)
	a.Dither = false
	out, _ := a.Apply([]frame.Frame{f}, pal)
	for _, idx := range out[0].Pix {
		if idx != 1 {
			t.Fatalf("index = %d, want 1 (red)", idx)
		}
	}
}

type panicDrawer struct{}

func (panicDrawer) Draw(draw.Image, image.Rectangle, image.Image, image.Point) {
	panic("boom")
}

func TestApplyFallsBackPerFrame(t *testing.T) {
	frames := []frame.Frame{
		noiseFrame(16, 12, 1),
		{Width: 16, Height: 12, Pix: make([]uint8, 3)},
	}
	pal := Grayscale(16)

	a := NewApplier(DefaultSeed, 1)
	a.drawer = panicDrawer{}
	out, degraded := a.Apply(frames, pal)

	if len(degraded) != 2 {
		t.Fatalf("degraded = %d, want 2", len(degraded))
	}
	for i, d := range degraded {
		if d.Index != i || d.Stage != StageApply {
			t.Errorf("degraded[%d] = %+v", i, d)
		}
	}
	for i, img := range out {
		if img == nil {
			t.Fatalf("frame %d is nil", i)
		}
		if img.Rect.Dx() != 16 || img.Rect.Dy() != 12 {
			t.Errorf("frame %d size = %v, want 16x12", i, img.Rect)
		}
	}
}
