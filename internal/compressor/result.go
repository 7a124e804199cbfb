package compressor

import (
	"math"

	"github.com/flashrecord/flashgif/internal/frame"
)

// Snapshot records one encode attempt of the search.
type Snapshot struct {
	Iteration int     `json:"iteration"`
	FramesOut int     `json:"frames_out"`
	Colors    int     `json:"colors"`
	FPSGoal   float64 `json:"fps_goal"`
	Scale     float64 `json:"scale"`
	SizeBytes int64   `json:"size_bytes"`
	SizeMB    float64 `json:"size_mb"`
	TotalMS   int     `json:"total_ms"`
	Durations []int   `json:"durations_ms"`
	Action    string  `json:"action"`
}

// Result describes the attempt whose bytes were returned plus the full
// search trajectory. Exhausted is set when no attempt met the target; the
// smallest attempt is returned in that case.
type Result struct {
	AttemptID        string              `json:"attempt_id"`
	Iteration        int                 `json:"iteration"`
	Iterations       int                 `json:"iterations"`
	OrigFPS          float64             `json:"orig_fps"`
	OrigFrames       int                 `json:"orig_frames"`
	OrigTotalMS      int                 `json:"orig_total_ms"`
	FramesOut        int                 `json:"frames_out"`
	Colors           int                 `json:"colors"`
	FPSGoal          float64             `json:"fps_goal"`
	Scale            float64             `json:"scale"`
	SizeBytes        int64               `json:"size_bytes"`
	SizeMB           float64             `json:"size_mb"`
	TotalMS          int                 `json:"total_ms"`
	Durations        []int               `json:"durations_ms"`
	PreserveTimingOK bool                `json:"preserve_timing_ok"`
	Exhausted        bool                `json:"exhausted"`
	Degradations     []frame.Degradation `json:"degradations,omitempty"`
	Trajectory       []Snapshot          `json:"trajectory"`
}

func sizeMB(n int64) float64 {
	return math.Round(float64(n)/BytesPerMB*1e4) / 1e4
}
