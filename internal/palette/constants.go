// Package palette builds one shared color table for a set of frames and
// remaps frames onto it.
package palette

// Palette layout
const (
	MaxColors = 256
	Size      = MaxColors * 3
)

// Sampling constants
const (
	// Spatial stride keeps per-frame samples near a 512x512 budget
	SampleBudgetPixels = 512 * 512

	// Uniform cap is min(colors*SamplesPerColor, MaxSamples)
	SamplesPerColor = 1024
	MaxSamples      = 1_000_000

	// Saturation-weighted draw size per requested color
	WeightedPerColor = 512

	// Added to saturation so gray pixels keep a nonzero chance
	SaturationBias = 0.5

	DefaultSeed = 1234

	saturationEps = 1e-6
)

// Stage label used in degradation reports
const StageApply = "palette_apply"
