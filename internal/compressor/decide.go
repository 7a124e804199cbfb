package compressor

// Action is the controller's next step after an encode.
type Action int

const (
	ActionAccept Action = iota
	ActionAdjustPalette
	ActionAdjustResolution
	ActionAdjustFrameRate
	ActionExhausted
)

var actionNames = map[Action]string{
	ActionAccept:           "accept",
	ActionAdjustPalette:    "adjust_palette",
	ActionAdjustResolution: "adjust_resolution",
	ActionAdjustFrameRate:  "adjust_frame_rate",
	ActionExhausted:        "exhausted",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

// Terminal reports whether the search stops after this action.
func (a Action) Terminal() bool {
	return a == ActionAccept || a == ActionExhausted
}

// State is what the controller knows after encoding one attempt.
type State struct {
	Iteration      int // zero-based
	MaxIterations  int
	SizeBytes      int64
	TargetBytes    int64
	Colors         int
	MinColors      int
	Scale          float64
	FPSGoal        float64
	MinFPS         float64
	PreserveTiming bool
}

// Ratio is encoded size over target.
func (s State) Ratio() float64 {
	if s.TargetBytes <= 0 {
		return 0
	}
	return float64(s.SizeBytes) / float64(s.TargetBytes)
}

// Decide picks the next action. Rules are checked in order and the first
// match wins:
//
//	size <= target                      accept
//	last iteration                      exhausted
//	ratio > 1.5 and scale above floor   adjust resolution
//	colors above floor                  adjust palette
//	timing free and fps above floor     adjust frame rate
//	scale above floor                   adjust resolution
//	otherwise                           exhausted
func Decide(s State) Action {
	scaleLeft := s.Scale > MinScale+1e-9
	switch {
	case s.SizeBytes <= s.TargetBytes:
		return ActionAccept
	case s.Iteration+1 >= s.MaxIterations:
		return ActionExhausted
	case s.Ratio() > EarlyResolutionRatio && scaleLeft:
		return ActionAdjustResolution
	case s.Colors > s.MinColors:
		return ActionAdjustPalette
	case !s.PreserveTiming && s.FPSGoal > s.MinFPS:
		return ActionAdjustFrameRate
	case scaleLeft:
		return ActionAdjustResolution
	default:
		return ActionExhausted
	}
}

// nextColors halves the color count without dropping below the floor.
func nextColors(colors, floor int) int {
	return max(floor, colors/2)
}

func nextScale(scale float64) float64 {
	return max(MinScale, scale*ResolutionStep)
}

func nextFPS(fps, floor float64) float64 {
	return max(floor, fps-FPSStep)
}
