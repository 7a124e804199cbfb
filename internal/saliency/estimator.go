package saliency

import (
	"fmt"
	"log/slog"

	"github.com/flashrecord/flashgif/internal/frame"
)

// Estimator produces one saliency map per frame.
type Estimator struct {
	Weights Weights
	Workers int
	// Adaptive disables per-frame tile selection when false; TileDefault is used instead.
	Adaptive bool
}

// NewEstimator returns an adaptive estimator with default weights.
func NewEstimator(workers int) *Estimator {
	return &Estimator{Weights: DefaultWeights(), Workers: workers, Adaptive: true}
}

// Estimate computes fused, temporally smoothed maps for every frame. A frame
// whose estimation fails gets a uniform placeholder map and a degradation entry.
func (e *Estimator) Estimate(frames []frame.Frame) ([]Map, []frame.Degradation) {
	maps := make([]Map, len(frames))
	errs := make([]error, len(frames))
	frame.ForEach(e.Workers, len(frames), func(i int) {
		maps[i], errs[i] = e.frameMap(frames[i])
	})

	var degraded []frame.Degradation
	for i, err := range errs {
		if err != nil {
			maps[i] = Uniform(PlaceholderCells, PlaceholderCells, 1)
			degraded = append(degraded, frame.NewDegradation(StageSaliency, i, err))
		}
	}
	if len(degraded) > 0 {
		slog.Warn("saliency placeholders used", "count", len(degraded), "frames", len(frames))
	}
	return Smooth(maps, e.Weights), degraded
}

// frameMap runs the two-scale analysis for a single frame.
func (e *Estimator) frameMap(f frame.Frame) (m Map, err error) {
	if !f.Valid() {
		return Map{}, fmt.Errorf("corrupt buffer: %d bytes for %dx%d", len(f.Pix), f.Width, f.Height)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("saliency panic: %v", r)
		}
	}()

	luma := Luminance(f)
	tile := TileDefault
	if e.Adaptive {
		tile = SelectTile(luma)
	}
	fine := Grid(luma, tile, e.Weights)
	coarse := Grid(HalfSize(luma), max(MinCoarseTile, tile/2), e.Weights)
	return Fuse(fine, coarse, e.Weights), nil
}

// Tiles reports the tile size chosen for each frame without building maps.
func (e *Estimator) Tiles(frames []frame.Frame) []int {
	tiles := make([]int, len(frames))
	frame.ForEach(e.Workers, len(frames), func(i int) {
		if !frames[i].Valid() || !e.Adaptive {
			tiles[i] = TileDefault
			return
		}
		tiles[i] = SelectTile(Luminance(frames[i]))
	})
	return tiles
}
