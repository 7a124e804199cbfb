package compressor

import (
	"strings"

	"github.com/flashrecord/flashgif/internal/frame"
	"github.com/flashrecord/flashgif/internal/palette"
	"github.com/flashrecord/flashgif/internal/saliency"
	"github.com/flashrecord/flashgif/internal/selector"
)

// Preset names an initial resolution scale.
type Preset string

// Quality presets
const (
	PresetHigh     Preset = "high"
	PresetBalanced Preset = "balanced"
	PresetCompact  Preset = "compact"
)

var presetScales = map[Preset]float64{
	PresetHigh:     0.7,
	PresetBalanced: 0.5,
	PresetCompact:  0.3,
}

// ParsePreset maps a name to a preset; unknown names become balanced.
func ParsePreset(s string) Preset {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := presetScales[p]; ok {
		return p
	}
	return PresetBalanced
}

// Scale returns the preset's resolution factor.
func (p Preset) Scale() float64 {
	if s, ok := presetScales[p]; ok {
		return s
	}
	return presetScales[PresetBalanced]
}

// Options configures a Compressor.
type Options struct {
	TargetBytes    int64
	Preset         Preset
	InitColors     int
	MinColors      int
	MinFPS         float64
	TargetFPS      float64
	PreserveTiming bool
	MaxIterations  int
	MaxMemoryMB    float64
	Seed           uint64
	Dither         bool
	Workers        int

	Selector selector.Options
	Weights  saliency.Weights
}

// DefaultOptions returns the balanced preset with a 10MB target.
func DefaultOptions() Options {
	return Options{
		TargetBytes:    int64(DefaultTargetMB * BytesPerMB),
		Preset:         PresetBalanced,
		InitColors:     DefaultInitColors,
		MinColors:      DefaultMinColors,
		MinFPS:         DefaultMinFPS,
		TargetFPS:      DefaultTargetFPS,
		PreserveTiming: DefaultPreserveTiming,
		MaxIterations:  DefaultMaxIterations,
		MaxMemoryMB:    frame.DefaultMaxMemoryMB,
		Seed:           palette.DefaultSeed,
		Dither:         true,
		Selector:       selector.DefaultOptions(),
		Weights:        saliency.DefaultWeights(),
	}
}

// normalized clamps option values into their usable ranges.
func (o Options) normalized() Options {
	if o.InitColors <= 0 || o.InitColors > palette.MaxColors {
		o.InitColors = palette.MaxColors
	}
	if o.MinColors <= 0 {
		o.MinColors = DefaultMinColors
	}
	o.MinColors = min(o.MinColors, o.InitColors)
	if o.TargetFPS <= 0 {
		o.TargetFPS = DefaultTargetFPS
	}
	if o.MinFPS <= 0 {
		o.MinFPS = DefaultMinFPS
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.Preset == "" {
		o.Preset = PresetBalanced
	}
	if o.TargetBytes <= 0 {
		o.TargetBytes = int64(DefaultTargetMB * BytesPerMB)
	}
	if o.Weights == (saliency.Weights{}) {
		o.Weights = saliency.DefaultWeights()
	}
	if o.Selector == (selector.Options{}) {
		o.Selector = selector.DefaultOptions()
	}
	return o
}
