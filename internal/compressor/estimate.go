package compressor

import (
	"fmt"

	"github.com/corona10/goimagehash"

	apperr "github.com/flashrecord/flashgif/internal/errors"
	"github.com/flashrecord/flashgif/internal/frame"
)

// Stats summarizes how far a compressed frame set moved from its source.
type Stats struct {
	OriginalFrames    int     `json:"original_frames"`
	CompressedFrames  int     `json:"compressed_frames"`
	FrameReductionPct float64 `json:"frame_reduction_pct"`
	OriginalBytes     int64   `json:"original_bytes"`
	CompressedBytes   int64   `json:"compressed_bytes"`
	SizeReductionPct  float64 `json:"size_reduction_pct"`
	Scale             float64 `json:"scale"`
	Technique         string  `json:"technique"`

	// MeanHashDistance is the mean pHash Hamming distance between each
	// compressed frame and the source frame at the same playback position.
	MeanHashDistance float64 `json:"mean_hash_distance"`
}

// Estimate compares raw RGB footprints and perceptual similarity of the
// original and compressed frame sets.
func Estimate(original, compressed []frame.Frame, scale float64) (Stats, error) {
	if len(original) == 0 || len(compressed) == 0 {
		return Stats{}, apperr.InvalidInput("estimate needs frames on both sides (%d, %d)", len(original), len(compressed))
	}

	st := Stats{
		OriginalFrames:   len(original),
		CompressedFrames: len(compressed),
		OriginalBytes:    rawBytes(original),
		CompressedBytes:  rawBytes(compressed),
		Scale:            scale,
		Technique:        Technique,
	}
	st.FrameReductionPct = reductionPct(int64(st.CompressedFrames), int64(st.OriginalFrames))
	st.SizeReductionPct = reductionPct(st.CompressedBytes, st.OriginalBytes)

	dist, err := MeanHashDistance(original, compressed)
	if err != nil {
		return st, err
	}
	st.MeanHashDistance = dist
	return st, nil
}

// MeanHashDistance pairs compressed frame k with the source frame at the
// same relative position and averages their pHash distances.
func MeanHashDistance(original, compressed []frame.Frame) (float64, error) {
	if len(compressed) == 0 {
		return 0, nil
	}
	total := 0
	for k, f := range compressed {
		src := original[k*len(original)/len(compressed)]
		d, err := HashDistance(src, f)
		if err != nil {
			return 0, apperr.Wrapf(err, apperr.CodeInternal, "hash frame %d", k)
		}
		total += d
	}
	return float64(total) / float64(len(compressed)), nil
}

// HashDistance is the pHash Hamming distance between two frames.
func HashDistance(a, b frame.Frame) (int, error) {
	if !a.Valid() || !b.Valid() {
		return 0, fmt.Errorf("invalid frame %dx%d vs %dx%d", a.Width, a.Height, b.Width, b.Height)
	}
	ha, err := goimagehash.PerceptionHash(a.RGBA())
	if err != nil {
		return 0, err
	}
	hb, err := goimagehash.PerceptionHash(b.RGBA())
	if err != nil {
		return 0, err
	}
	return ha.Distance(hb)
}

func rawBytes(frames []frame.Frame) int64 {
	var n int64
	for _, f := range frames {
		n += int64(f.Width * f.Height * 3)
	}
	return n
}

func reductionPct(after, before int64) float64 {
	if before == 0 {
		return 0
	}
	return (1 - float64(after)/float64(before)) * 100
}
