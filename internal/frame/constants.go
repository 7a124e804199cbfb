// Package frame defines the raster frames the compression engine consumes.
package frame

// Input validation constants
const (
	// Default ceiling for the raw w*h*3*n footprint of one batch
	DefaultMaxMemoryMB = 1024

	// Frame counts above this are accepted but logged as a memory risk
	LargeFrameCountWarning = 10000

	// Default capture rate when the caller does not declare one
	DefaultInputFPS = 10.0

	// Gray level used for placeholder frames
	PlaceholderGray = 128
)
