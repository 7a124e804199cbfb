package frame

import "log/slog"

// Result is the outcome of a per-frame stage: either the intended output or a
// fallback frame tagged with why the stage degraded.
type Result struct {
	Frame    Frame
	Degraded bool
	Stage    string
	Reason   error
}

// Ok wraps a successfully produced frame.
func Ok(f Frame) Result { return Result{Frame: f} }

// Degrade wraps a fallback frame with the failing stage and cause.
func Degrade(f Frame, stage string, reason error) Result {
	return Result{Frame: f, Degraded: true, Stage: stage, Reason: reason}
}

// Degradation records one locally recovered per-frame failure.
type Degradation struct {
	Stage  string `json:"stage"`
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// NewDegradation builds a report entry and logs it; recovered failures are never silent.
func NewDegradation(stage string, index int, reason error) Degradation {
	msg := ""
	if reason != nil {
		msg = reason.Error()
	}
	slog.Warn("frame degraded", "stage", stage, "frame", index, "error", msg)
	return Degradation{Stage: stage, Index: index, Reason: msg}
}

// Collect unpacks results in order, logging and reporting every degraded entry.
func Collect(results []Result) ([]Frame, []Degradation) {
	frames := make([]Frame, len(results))
	var degraded []Degradation
	for i, r := range results {
		frames[i] = r.Frame
		if r.Degraded {
			degraded = append(degraded, NewDegradation(r.Stage, i, r.Reason))
		}
	}
	return frames, degraded
}
