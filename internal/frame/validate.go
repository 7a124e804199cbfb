package frame

import (
	"log/slog"

	apperr "github.com/flashrecord/flashgif/internal/errors"
)

// EstimateMB returns the raw RGB footprint of the batch in MiB, sized from
// the first frame the way a uniform capture would be.
func EstimateMB(frames []Frame) float64 {
	if len(frames) == 0 {
		return 0
	}
	w, h := frames[0].Width, frames[0].Height
	return float64(w*h*3*len(frames)) / (1024 * 1024)
}

// Validate fails fast on batches the engine must not start on.
func Validate(frames []Frame, maxMemoryMB float64) error {
	if len(frames) == 0 {
		return apperr.InvalidInput("empty frame list")
	}
	if len(frames) > LargeFrameCountWarning {
		slog.Warn("very large frame count, memory risk", "frames", len(frames))
	}
	if !frames[0].Valid() {
		return apperr.InvalidInput("first frame has invalid dimensions %dx%d", frames[0].Width, frames[0].Height)
	}
	if maxMemoryMB <= 0 {
		maxMemoryMB = DefaultMaxMemoryMB
	}
	if est := EstimateMB(frames); est > maxMemoryMB {
		return apperr.InvalidInput("estimated memory %.1fMB exceeds limit %.0fMB", est, maxMemoryMB)
	}
	return nil
}
