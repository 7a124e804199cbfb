package scale

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/nfnt/resize"

	"github.com/flashrecord/flashgif/internal/frame"
)

// Scaler resamples every frame of a sequence by a common factor.
type Scaler struct {
	// Interp is the resampling kernel; Lanczos3 unless overridden.
	Interp  resize.InterpolationFunction
	Workers int
}

// NewScaler returns a Lanczos3 scaler using workers goroutines (<=0 means GOMAXPROCS).
func NewScaler(workers int) *Scaler {
	return &Scaler{Interp: resize.Lanczos3, Workers: workers}
}

// TargetSize returns round(w*factor) x round(h*factor), at least 1x1.
func TargetSize(w, h int, factor float64) (int, int) {
	tw := int(math.Round(float64(w) * factor))
	th := int(math.Round(float64(h) * factor))
	return max(1, tw), max(1, th)
}

// Scale returns a new sequence with every frame resized. A frame that cannot
// be resampled is passed through unscaled and reported as degraded.
func (s *Scaler) Scale(seq frame.Sequence, factor float64) (frame.Sequence, []frame.Degradation) {
	if factor <= 0 || factor > 1 {
		factor = 1
	}
	results := make([]frame.Result, len(seq.Frames))
	frame.ForEach(s.Workers, len(seq.Frames), func(i int) {
		results[i] = s.scaleOne(seq.Frames[i], factor)
	})
	frames, degraded := frame.Collect(results)

	if len(frames) > 0 {
		slog.Debug("resolution scaling",
			"from_w", seq.Frames[0].Width, "from_h", seq.Frames[0].Height,
			"to_w", frames[0].Width, "to_h", frames[0].Height, "factor", factor)
	}
	return seq.WithFrames(frames), degraded
}

func (s *Scaler) scaleOne(f frame.Frame, factor float64) (res frame.Result) {
	if !f.Valid() {
		return frame.Degrade(f, StageResize, fmt.Errorf("corrupt buffer: %d bytes for %dx%d", len(f.Pix), f.Width, f.Height))
	}
	tw, th := TargetSize(f.Width, f.Height, factor)
	if tw == f.Width && th == f.Height {
		return frame.Ok(f)
	}
	defer func() {
		if r := recover(); r != nil {
			res = frame.Degrade(f, StageResize, fmt.Errorf("resample panic: %v", r))
		}
	}()
	interp := s.Interp
	out := resize.Resize(uint(tw), uint(th), f.RGBA(), interp)
	return frame.Ok(frame.FromImage(out))
}
