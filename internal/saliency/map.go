package saliency

import (
	"image"
	"math"
)

// Map is a per-frame grid of non-negative saliency values, one per tile.
type Map struct {
	Rows  int
	Cols  int
	Cells []float64
	// Tile is the fine-scale tile size the map was built with; 0 for placeholders.
	Tile int
}

// NewMap allocates a zero map.
func NewMap(rows, cols int) Map {
	return Map{Rows: rows, Cols: cols, Cells: make([]float64, rows*cols)}
}

// Uniform returns a rows x cols map filled with v.
func Uniform(rows, cols int, v float64) Map {
	m := NewMap(rows, cols)
	for i := range m.Cells {
		m.Cells[i] = v
	}
	return m
}

// At returns the value at (row, col).
func (m Map) At(r, c int) float64 { return m.Cells[r*m.Cols+c] }

// Mean returns the average cell value.
func (m Map) Mean() float64 {
	if len(m.Cells) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range m.Cells {
		sum += v
	}
	return sum / float64(len(m.Cells))
}

// Max returns the largest cell value.
func (m Map) Max() float64 {
	mx := 0.0
	for _, v := range m.Cells {
		mx = math.Max(mx, v)
	}
	return mx
}

// normalize scales the map in place so its maximum is 1.
func (m Map) normalize() {
	mx := m.Max()
	if mx <= 0 {
		return
	}
	for i := range m.Cells {
		m.Cells[i] /= mx
	}
}

// Resize returns the map bilinearly resampled to rows x cols using
// pixel-center alignment. Block replication is never used.
func (m Map) Resize(rows, cols int) Map {
	if rows == m.Rows && cols == m.Cols {
		out := NewMap(rows, cols)
		copy(out.Cells, m.Cells)
		out.Tile = m.Tile
		return out
	}
	out := NewMap(rows, cols)
	out.Tile = m.Tile
	if m.Rows == 0 || m.Cols == 0 {
		return out
	}
	sy := float64(m.Rows) / float64(rows)
	sx := float64(m.Cols) / float64(cols)
	for r := 0; r < rows; r++ {
		fy := clamp((float64(r)+0.5)*sy-0.5, 0, float64(m.Rows-1))
		y0 := int(fy)
		y1 := min(y0+1, m.Rows-1)
		wy := fy - float64(y0)
		for c := 0; c < cols; c++ {
			fx := clamp((float64(c)+0.5)*sx-0.5, 0, float64(m.Cols-1))
			x0 := int(fx)
			x1 := min(x0+1, m.Cols-1)
			wx := fx - float64(x0)
			top := m.At(y0, x0)*(1-wx) + m.At(y0, x1)*wx
			bot := m.At(y1, x0)*(1-wx) + m.At(y1, x1)*wx
			out.Cells[r*cols+c] = top*(1-wy) + bot*wy
		}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Grid tiles a luma plane and scores each tile by weighted variance, mean
// edge magnitude and histogram entropy, then normalizes by the grid maximum.
// Edge tiles smaller than a quarter of a full tile are left at 0.
func Grid(g *image.Gray, tile int, w Weights) Map {
	width, height := g.Rect.Dx(), g.Rect.Dy()
	rows := max(1, height/tile)
	cols := max(1, width/tile)
	m := NewMap(rows, cols)
	m.Tile = tile
	edges := EdgeMagnitude(g)

	for ty := 0; ty < rows; ty++ {
		y0, y1 := ty*tile, min(ty*tile+tile, height)
		for tx := 0; tx < cols; tx++ {
			x0, x1 := tx*tile, min(tx*tile+tile, width)
			if (y1-y0)*(x1-x0) < tile*tile/4 {
				continue
			}
			var st stats
			edgeSum := 0.0
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					st.add(g.Pix[y*g.Stride+x])
					edgeSum += edges[y*width+x]
				}
			}
			edgeMean := edgeSum / float64(st.n)
			m.Cells[ty*cols+tx] = w.Variance*st.variance() + w.Edge*edgeMean + w.Entropy*st.entropy()
		}
	}
	m.normalize()
	return m
}

// Fuse returns fine*w.Fine + coarse*w.Coarse after resampling coarse onto
// the fine grid.
func Fuse(fine, coarse Map, w Weights) Map {
	up := coarse.Resize(fine.Rows, fine.Cols)
	out := NewMap(fine.Rows, fine.Cols)
	out.Tile = fine.Tile
	for i := range out.Cells {
		out.Cells[i] = w.Fine*fine.Cells[i] + w.Coarse*up.Cells[i]
	}
	return out
}

// Smooth applies the 3-tap temporal filter across a sequence of maps. The
// first and last maps have no neighbor on one side and are returned as is.
// Neighbors with a different grid shape are resampled onto the current one.
func Smooth(maps []Map, w Weights) []Map {
	if len(maps) <= 2 {
		return maps
	}
	out := make([]Map, len(maps))
	out[0] = maps[0]
	out[len(maps)-1] = maps[len(maps)-1]
	for i := 1; i < len(maps)-1; i++ {
		cur := maps[i]
		prev := maps[i-1].Resize(cur.Rows, cur.Cols)
		next := maps[i+1].Resize(cur.Rows, cur.Cols)
		m := NewMap(cur.Rows, cur.Cols)
		m.Tile = cur.Tile
		for j := range m.Cells {
			m.Cells[j] = w.TemporalSide*prev.Cells[j] + w.TemporalCenter*cur.Cells[j] + w.TemporalSide*next.Cells[j]
		}
		out[i] = m
	}
	return out
}
