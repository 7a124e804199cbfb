// Package compressor drives the size-targeted GIF search: it derives a
// working frame set from the captured frames, encodes it, and adjusts
// palette, resolution or frame rate until the output fits.
package compressor

// Search defaults
const (
	BytesPerMB = 1024 * 1024

	DefaultTargetMB       = 10.0
	DefaultInitColors     = 256
	DefaultMinColors      = 16
	DefaultMinFPS         = 4.0
	DefaultTargetFPS      = 8.0
	DefaultMaxIterations  = 5
	DefaultPreserveTiming = true
)

// Adjustment constants
const (
	// Each resolution step multiplies the scale factor by this amount
	ResolutionStep = 0.85

	MinScale = 0.1

	// Size/target ratio above which resolution is cut before colors
	EarlyResolutionRatio = 1.5

	FPSStep = 1.0
)

// Technique label reported by Estimate
const Technique = "cross-window saliency"
