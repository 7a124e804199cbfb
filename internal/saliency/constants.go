// Package saliency estimates where each frame carries visual information.
// Maps are built from local texture statistics at two spatial scales, fused,
// and smoothed across neighboring frames.
package saliency

// Tile sizes chosen by the complexity selector
const (
	TileFine   = 8
	TileMedium = 16
	TileCoarse = 32

	// Tile size used when complexity cannot be measured
	TileDefault = TileMedium

	// Minimum tile size at the coarse (half resolution) scale
	MinCoarseTile = 8
)

// Complexity score thresholds and normalizers
const (
	ComplexityHigh   = 0.9
	ComplexityMedium = 0.6

	entropyNorm  = 5.0
	varianceNorm = 5000.0
	edgeNorm     = 50.0

	complexityEntropyWeight  = 0.5
	complexityVarianceWeight = 0.3
	complexityEdgeWeight     = 0.2
)

// Histogram and numeric constants
const (
	HistogramBins = 32

	// Placeholder map size for frames whose estimation failed
	PlaceholderCells = 10

	// Stage label used in degradation reports
	StageSaliency = "saliency"
)
