package selector

import (
	"log/slog"
	"math"
	"sort"

	"github.com/flashrecord/flashgif/internal/saliency"
)

// Options tunes the keep threshold.
type Options struct {
	Threshold  float64
	MeanWeight float64
	KeepFloor  float64
}

// DefaultOptions returns thr=0.25, mean weight 0.6 and a 60% keep floor.
func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold, MeanWeight: DefaultMeanWeight, KeepFloor: DefaultKeepFloor}
}

// MinKeep returns ceil(floor*n), the number of frames that must survive.
func MinKeep(n int, floor float64) int {
	if n <= 0 {
		return 0
	}
	k := int(math.Ceil(floor*float64(n) - 1e-9))
	return max(1, min(n, k))
}

// KeepMask marks frames whose mean saliency reaches
// mean(means)*MeanWeight + Threshold*(std(means)+eps). When fewer than
// MinKeep frames pass, exactly MinKeep frames with the highest means are
// kept instead, ties going to the earlier frame.
func KeepMask(maps []saliency.Map, opts Options) []bool {
	n := len(maps)
	keep := make([]bool, n)
	if n == 0 {
		return keep
	}
	means := make([]float64, n)
	for i, m := range maps {
		means[i] = m.Mean()
	}
	mu, sd := meanStd(means)
	threshold := mu*opts.MeanWeight + opts.Threshold*(sd+epsilon)

	kept := 0
	for i, v := range means {
		if v >= threshold {
			keep[i] = true
			kept++
		}
	}

	floor := MinKeep(n, opts.KeepFloor)
	if kept < floor {
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool { return means[order[a]] > means[order[b]] })
		for i := range keep {
			keep[i] = false
		}
		for _, idx := range order[:floor] {
			keep[idx] = true
		}
		slog.Debug("keep floor applied", "passed", kept, "floor", floor, "frames", n)
		kept = floor
	}
	slog.Debug("saliency-guided keep", "kept", kept, "frames", n, "threshold", threshold)
	return keep
}

// Apply returns the items whose mask entry is true, in original order.
func Apply[T any](items []T, keep []bool) []T {
	out := make([]T, 0, len(items))
	for i, it := range items {
		if i < len(keep) && keep[i] {
			out = append(out, it)
		}
	}
	return out
}

// Count returns the number of true entries.
func Count(keep []bool) int {
	n := 0
	for _, k := range keep {
		if k {
			n++
		}
	}
	return n
}

func meanStd(xs []float64) (float64, float64) {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	mu := sum / float64(len(xs))
	ss := 0.0
	for _, x := range xs {
		ss += (x - mu) * (x - mu)
	}
	return mu, math.Sqrt(ss / float64(len(xs)))
}
