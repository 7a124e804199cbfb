// Package selector turns per-frame saliency into a keep/drop decision.
package selector

// Frame selection constants
const (
	// Multiplier on the std of frame means added to the threshold
	DefaultThreshold = 0.25

	// Weight on the mean of frame means in the threshold
	DefaultMeanWeight = 0.6

	// Fraction of frames that must always survive
	DefaultKeepFloor = 0.6

	epsilon = 1e-8
)
