package compressor

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	apperr "github.com/flashrecord/flashgif/internal/errors"
	"github.com/flashrecord/flashgif/internal/encoder"
	"github.com/flashrecord/flashgif/internal/frame"
	"github.com/flashrecord/flashgif/internal/palette"
	"github.com/flashrecord/flashgif/internal/saliency"
	"github.com/flashrecord/flashgif/internal/scale"
	"github.com/flashrecord/flashgif/internal/selector"
	"github.com/flashrecord/flashgif/internal/timing"
	"github.com/flashrecord/flashgif/internal/trace"
)

// Compressor runs the reduction pipeline and the size-targeted search.
type Compressor struct {
	opts      Options
	enc       encoder.Encoder
	scaler    *scale.Scaler
	estimator *saliency.Estimator
	builder   *palette.Builder
	applier   *palette.Applier
}

// New creates a compressor. A nil encoder selects the GIF encoder.
func New(opts Options, enc encoder.Encoder) *Compressor {
	opts = opts.normalized()
	if enc == nil {
		enc = encoder.NewGIF()
	}
	est := saliency.NewEstimator(opts.Workers)
	est.Weights = opts.Weights
	applier := palette.NewApplier(opts.Seed, opts.Workers)
	applier.Dither = opts.Dither
	return &Compressor{
		opts:      opts,
		enc:       enc,
		scaler:    scale.NewScaler(opts.Workers),
		estimator: est,
		builder:   palette.NewBuilder(opts.Seed, opts.Workers),
		applier:   applier,
	}
}

// Options returns the normalized options in use.
func (c *Compressor) Options() Options { return c.opts }

// working is a disposable frame set derived from the captured frames for
// one scale factor and temporal target. It is rebuilt, never edited.
type working struct {
	frames   []frame.Frame
	degraded []frame.Degradation
}

// derive runs Scaler, TemporalSampler, SaliencyEstimator and FrameSelector
// against the captured sequence.
func (c *Compressor) derive(orig frame.Sequence, factor, targetFPS float64) working {
	scaled, degraded := c.scaler.Scale(orig, factor)
	sampled := scale.Subsample(scaled.Frames, orig.FPS, targetFPS)
	maps, salDegraded := c.estimator.Estimate(sampled)
	keep := selector.KeepMask(maps, c.opts.Selector)
	kept := selector.Apply(sampled, keep)

	slog.Debug("working set derived",
		"scale", factor, "captured", orig.Len(), "sampled", len(sampled), "kept", len(kept))
	return working{frames: kept, degraded: append(degraded, salDegraded...)}
}

// Compress runs one reduction pass at the preset's scale without a size
// target. The returned sequence keeps the captured playback length: its fps
// is the number of kept frames per second of capture time.
func (c *Compressor) Compress(seq frame.Sequence, preset Preset) (frame.Sequence, error) {
	if err := frame.Validate(seq.Frames, c.opts.MaxMemoryMB); err != nil {
		return frame.Sequence{}, err
	}
	w := c.derive(seq, preset.Scale(), c.opts.TargetFPS)
	effective := float64(len(w.frames)) * 1000 / float64(max(1, seq.TotalMS()))
	out := frame.NewSequence(w.frames, effective)

	slog.Info("compressed sequence",
		"preset", string(preset), "frames_in", seq.Len(), "frames_out", out.Len(),
		"fps", effective, "degraded", len(w.degraded))
	return out, nil
}

// attempt is one encoded candidate.
type attempt struct {
	data      []byte
	colors    int
	scale     float64
	fpsGoal   float64
	frames    int
	durations []int
	degraded  []frame.Degradation
}

// encode builds and applies a shared palette, plans timing and invokes the
// encoder. Encoder failures are returned as ENCODING_FAILED.
func (c *Compressor) encode(ctx context.Context, orig frame.Sequence, w working, colors int, fpsGoal float64) (attempt, error) {
	log := trace.Logger(ctx)

	pal, err := c.builder.Build(w.frames, colors)
	if err != nil {
		log.Warn("palette build failed, using grayscale", "colors", colors, "error", err)
		pal = palette.Grayscale(colors)
	}
	indexed, applyDegraded := c.applier.Apply(w.frames, pal)

	var durs []int
	if c.opts.PreserveTiming {
		durs = timing.Preserve(orig.FrameCount, orig.FPS, len(indexed))
	} else {
		durs = timing.Fixed(fpsGoal, len(indexed))
	}

	data, err := c.enc.Encode(indexed, pal, durs, encoder.LoopForever)
	if err != nil {
		if apperr.IsCode(err, apperr.CodeEncodingFailed) {
			return attempt{}, err
		}
		return attempt{}, apperr.Wrap(err, apperr.CodeEncodingFailed, "encoder failed")
	}

	degraded := make([]frame.Degradation, 0, len(w.degraded)+len(applyDegraded))
	degraded = append(degraded, w.degraded...)
	degraded = append(degraded, applyDegraded...)
	return attempt{
		data:      data,
		colors:    colors,
		fpsGoal:   fpsGoal,
		frames:    len(indexed),
		durations: durs,
		degraded:  degraded,
	}, nil
}

// CompressToTarget searches for an encoding no larger than TargetBytes.
// Every resolution or frame-rate change re-derives the working set from seq,
// never from an earlier working set. When the iteration budget runs out the
// smallest attempt is returned with Result.Exhausted set; that is not an
// error. Invalid input and encoder failures are.
func (c *Compressor) CompressToTarget(ctx context.Context, seq frame.Sequence) ([]byte, Result, error) {
	if err := frame.Validate(seq.Frames, c.opts.MaxMemoryMB); err != nil {
		return nil, Result{}, err
	}
	ctx, span := trace.StartSpan(ctx, "compress_to_target")
	defer span.End()
	log := trace.Logger(ctx)

	opts := c.opts
	res := Result{
		AttemptID:   uuid.NewString(),
		OrigFPS:     seq.FPS,
		OrigFrames:  seq.FrameCount,
		OrigTotalMS: seq.TotalMS(),
	}
	span.SetAttr("attempt_id", res.AttemptID)

	factor := opts.Preset.Scale()
	colors := opts.InitColors
	fpsGoal := opts.TargetFPS
	w := c.derive(seq, factor, fpsGoal)

	var best attempt
	bestIter := -1
	for iter := 0; ; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, Result{}, err
		}

		a, err := c.encode(ctx, seq, w, colors, fpsGoal)
		if err != nil {
			log.Error("encode failed", "iteration", iter+1, "error", err)
			return nil, Result{}, err
		}
		a.scale = factor
		size := int64(len(a.data))
		if bestIter < 0 || size < int64(len(best.data)) {
			best, bestIter = a, iter
		}

		action := Decide(State{
			Iteration:      iter,
			MaxIterations:  opts.MaxIterations,
			SizeBytes:      size,
			TargetBytes:    opts.TargetBytes,
			Colors:         colors,
			MinColors:      opts.MinColors,
			Scale:          factor,
			FPSGoal:        fpsGoal,
			MinFPS:         opts.MinFPS,
			PreserveTiming: opts.PreserveTiming,
		})

		snap := Snapshot{
			Iteration: iter + 1,
			FramesOut: a.frames,
			Colors:    colors,
			FPSGoal:   fpsGoal,
			Scale:     factor,
			SizeBytes: size,
			SizeMB:    sizeMB(size),
			TotalMS:   timing.Sum(a.durations),
			Durations: a.durations,
			Action:    action.String(),
		}
		res.Trajectory = append(res.Trajectory, snap)
		log.Info("compression iteration",
			"iteration", snap.Iteration, "size_bytes", size, "frames", a.frames,
			"colors", colors, "fps_goal", fpsGoal, "scale", factor,
			"total_ms", snap.TotalMS, "action", snap.Action)

		if action.Terminal() {
			if action == ActionAccept {
				return a.data, c.finish(res, a, iter, false), nil
			}
			log.Warn("size target not met, returning smallest attempt",
				"target_bytes", opts.TargetBytes, "best_bytes", len(best.data), "best_iteration", bestIter+1)
			return best.data, c.finish(res, best, bestIter, true), nil
		}

		switch action {
		case ActionAdjustPalette:
			colors = nextColors(colors, opts.MinColors)
		case ActionAdjustResolution:
			factor = nextScale(factor)
			w = c.derive(seq, factor, fpsGoal)
		case ActionAdjustFrameRate:
			fpsGoal = nextFPS(fpsGoal, opts.MinFPS)
			w = c.derive(seq, factor, fpsGoal)
		}
	}
}

// finish fills the result fields describing the returned attempt.
func (c *Compressor) finish(res Result, a attempt, iter int, exhausted bool) Result {
	res.Iteration = iter + 1
	res.Iterations = len(res.Trajectory)
	res.FramesOut = a.frames
	res.Colors = a.colors
	res.FPSGoal = a.fpsGoal
	res.Scale = a.scale
	res.SizeBytes = int64(len(a.data))
	res.SizeMB = sizeMB(res.SizeBytes)
	res.Durations = a.durations
	res.TotalMS = timing.Sum(a.durations)
	res.PreserveTimingOK = timing.Within(a.durations, res.OrigTotalMS)
	res.Exhausted = exhausted
	res.Degradations = a.degraded
	if n := len(a.degraded); n > 0 {
		slog.Warn("frames degraded in returned attempt", "attempt_id", res.AttemptID, "count", n)
	}
	return res
}
