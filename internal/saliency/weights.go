package saliency

// Weights holds the hand-tuned heuristic coefficients. They have no derived
// optimum, so they are exposed for tuning rather than hard-coded.
type Weights struct {
	// Per-tile statistic weights
	Variance float64
	Edge     float64
	Entropy  float64

	// Cross-scale fusion
	Fine   float64
	Coarse float64

	// 3-tap temporal filter: Side applies to previous and next, Center to current
	TemporalSide   float64
	TemporalCenter float64
}

// DefaultWeights returns 0.5/0.3/0.2 tile weights, 0.6/0.4 fusion and 0.2/0.6/0.2 smoothing.
func DefaultWeights() Weights {
	return Weights{
		Variance:       0.5,
		Edge:           0.3,
		Entropy:        0.2,
		Fine:           0.6,
		Coarse:         0.4,
		TemporalSide:   0.2,
		TemporalCenter: 0.6,
	}
}
