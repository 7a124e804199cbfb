package scale

import "log/slog"

// SubsampleIndices picks which of n frames survive a rate reduction from
// inputFPS to targetFPS. An accumulator spreads picks evenly even when the
// ratio is not an integer. Returns nil when no reduction applies.
func SubsampleIndices(n int, inputFPS, targetFPS float64) []int {
	if targetFPS <= 0 || targetFPS >= inputFPS {
		return nil
	}
	step := inputFPS / targetFPS
	out := make([]int, 0, int(float64(n)/step)+1)
	// acc is the number of input frames still owed before the next pick.
	acc := 0.0
	for i := 0; i < n; i++ {
		if acc <= accEpsilon {
			out = append(out, i)
			acc += step
		}
		acc--
	}
	return out
}

// Subsample returns the frames kept by SubsampleIndices. The input slice is
// returned unchanged when targetFPS >= inputFPS; there is no upsampling.
func Subsample[T any](items []T, inputFPS, targetFPS float64) []T {
	idx := SubsampleIndices(len(items), inputFPS, targetFPS)
	if idx == nil {
		return items
	}
	out := make([]T, len(idx))
	for i, j := range idx {
		out[i] = items[j]
	}
	slog.Debug("temporal subsampling", "from", len(items), "to", len(out), "input_fps", inputFPS, "target_fps", targetFPS)
	return out
}
