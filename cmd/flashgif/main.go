// flashgif - compresses a directory of captured frames into a size-targeted GIF
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/flashrecord/flashgif/internal/compressor"
	"github.com/flashrecord/flashgif/internal/config"
	"github.com/flashrecord/flashgif/internal/frame"
	"github.com/flashrecord/flashgif/internal/trace"
)

func main() {
	cfg := config.Load()

	in := flag.String("in", "", "directory of captured frames")
	out := flag.String("out", "out.gif", "output GIF path")
	meta := flag.String("meta", "", "optional JSON metadata path")
	flag.Float64Var(&cfg.TargetMB, "target-mb", cfg.TargetMB, "target size in MB")
	flag.StringVar(&cfg.Quality, "preset", cfg.Quality, "quality preset: high, balanced, compact")
	flag.Float64Var(&cfg.InputFPS, "fps", cfg.InputFPS, "capture frame rate")
	flag.BoolVar(&cfg.PreserveTiming, "preserve-timing", cfg.PreserveTiming, "keep the captured playback duration")
	stats := flag.Bool("stats", false, "log single-pass reduction stats")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	// Setup structured logging
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *in == "" {
		slog.Error("missing -in directory")
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx, _ = trace.EnsureContext(ctx)
	log := trace.Logger(ctx)

	frames, err := loadFrames(*in, cfg.Extensions)
	if err != nil {
		log.Error("failed to load frames", "dir", *in, "error", err)
		os.Exit(1)
	}
	seq := frame.NewSequence(frames, cfg.InputFPS)
	log.Info("frames loaded", "dir", *in, "frames", seq.Len(), "fps", seq.FPS)

	c := compressor.New(cfg.Options(), nil)

	if *stats {
		reduced, err := c.Compress(seq, compressor.ParsePreset(cfg.Quality))
		if err != nil {
			log.Error("compress failed", "error", err)
			os.Exit(1)
		}
		st, err := compressor.Estimate(seq.Frames, reduced.Frames, compressor.ParsePreset(cfg.Quality).Scale())
		if err != nil {
			log.Warn("estimate failed", "error", err)
		} else {
			log.Info("reduction stats",
				"frames", st.CompressedFrames, "frame_reduction_pct", st.FrameReductionPct,
				"size_reduction_pct", st.SizeReductionPct, "hash_distance", st.MeanHashDistance)
		}
	}

	data, res, err := c.CompressToTarget(ctx, seq)
	if err != nil {
		log.Error("compression failed", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Error("failed to write output", "path", *out, "error", err)
		os.Exit(1)
	}
	log.Info("gif written", "path", *out, "size_mb", res.SizeMB, "iterations", res.Iterations,
		"exhausted", res.Exhausted, "preserve_timing_ok", res.PreserveTimingOK)

	if *meta != "" {
		b, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			log.Error("failed to encode metadata", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*meta, b, 0o644); err != nil {
			log.Error("failed to write metadata", "path", *meta, "error", err)
			os.Exit(1)
		}
	}
}
