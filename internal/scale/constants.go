// Package scale resizes frame sequences spatially and subsamples them in time.
package scale

// Scaling constants
const (
	// Smallest scale factor the controller may reach
	MinFactor = 0.1

	// Default temporal target after subsampling (frames/second)
	DefaultTargetFPS = 8.0

	// Stage label used in degradation reports
	StageResize = "resize"
)

// Float slack for the subsampling accumulator so ratios like 10/3 do not skip a pick
const accEpsilon = 1e-9
