// Package timing assigns per-frame display durations.
package timing

// GIF delays are stored in centiseconds, so durations are kept on a 10ms grid.
const (
	TickMS = 10

	// Achieved total may differ from the capture total by at most one tick.
	ToleranceMS = TickMS
)
