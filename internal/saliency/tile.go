package saliency

import (
	"image"
	"math"
)

// Complexity summarizes how busy a whole luma plane is.
type Complexity struct {
	Variance    float64
	EdgeDensity float64
	Entropy     float64
}

// Score combines the metrics into 0.5*(entropy/5) + 0.3*(variance/5000) + 0.2*(edge/50).
func (c Complexity) Score() float64 {
	return complexityEntropyWeight*(c.Entropy/entropyNorm) +
		complexityVarianceWeight*(c.Variance/varianceNorm) +
		complexityEdgeWeight*(c.EdgeDensity/edgeNorm)
}

// MeasureComplexity computes pixel variance, histogram entropy and the mean
// absolute first difference (averaged over both axes) of a luma plane.
func MeasureComplexity(g *image.Gray) Complexity {
	w, h := g.Rect.Dx(), g.Rect.Dy()
	var st stats
	var dx, dy float64
	var nx, ny int
	for y := 0; y < h; y++ {
		row := g.Pix[y*g.Stride : y*g.Stride+w]
		for x, v := range row {
			st.add(v)
			if x > 0 {
				dx += math.Abs(float64(v) - float64(row[x-1]))
				nx++
			}
			if y > 0 {
				dy += math.Abs(float64(v) - float64(g.Pix[(y-1)*g.Stride+x]))
				ny++
			}
		}
	}
	edge := 0.0
	if nx > 0 && ny > 0 {
		edge = (dx/float64(nx) + dy/float64(ny)) / 2
	} else if nx > 0 {
		edge = dx / float64(nx)
	} else if ny > 0 {
		edge = dy / float64(ny)
	}
	return Complexity{Variance: st.variance(), EdgeDensity: edge, Entropy: st.entropy()}
}

// TileForScore maps a complexity score onto a tile size: busy scenes get
// fine tiles, flat scenes coarse ones.
func TileForScore(score float64) int {
	switch {
	case score > ComplexityHigh:
		return TileFine
	case score > ComplexityMedium:
		return TileMedium
	default:
		return TileCoarse
	}
}

// SelectTile picks the saliency tile size for one frame's luma plane.
func SelectTile(g *image.Gray) int {
	if g == nil || g.Rect.Empty() {
		return TileDefault
	}
	return TileForScore(MeasureComplexity(g).Score())
}
