package timing

import (
	"log/slog"
	"math"

	"github.com/flashrecord/flashgif/internal/frame"
)

// Round10 rounds ms to the nearest multiple of TickMS, never below TickMS.
func Round10(ms float64) int {
	return max(TickMS, int(math.RoundToEven(ms/TickMS))*TickMS)
}

// Preserve spreads the capture duration of origN frames at fpsIn over
// outFrames frames. Every duration is a positive multiple of TickMS, and the
// rounding drift is paid back one tick at a time from the first frame on,
// with any remainder folded into the last frame.
func Preserve(origN int, fpsIn float64, outFrames int) []int {
	if outFrames <= 0 {
		return nil
	}
	totalMS := frame.TotalMS(origN, fpsIn)
	per := Round10(float64(totalMS) / float64(outFrames))
	durs := make([]int, outFrames)
	for i := range durs {
		durs[i] = per
	}

	drift := totalMS - Sum(durs)
	if drift != 0 {
		n := min(outFrames, max(1, abs(drift)/TickMS))
		step := TickMS
		if drift < 0 {
			step = -TickMS
		}
		for i := 0; i < n && abs(drift) >= TickMS; i++ {
			durs[i] = Round10(float64(durs[i] + step))
			drift -= step
		}
		if drift != 0 {
			durs[outFrames-1] = Round10(float64(durs[outFrames-1] + drift))
		}
	}
	if got := Sum(durs); abs(got-totalMS) > ToleranceMS {
		slog.Warn("duration drift exceeds tolerance", "total_ms", totalMS, "achieved_ms", got, "frames", outFrames)
	}
	return durs
}

// Fixed gives every one of n frames the duration of one tick at fps.
func Fixed(fps float64, n int) []int {
	if n <= 0 {
		return nil
	}
	d := Round10(1000 / math.Max(fps, 1))
	durs := make([]int, n)
	for i := range durs {
		durs[i] = d
	}
	return durs
}

// Within reports whether the achieved total is within ToleranceMS of want.
func Within(durs []int, want int) bool {
	return abs(Sum(durs)-want) <= ToleranceMS
}

// Sum totals a duration list.
func Sum(durs []int) int {
	s := 0
	for _, d := range durs {
		s += d
	}
	return s
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
