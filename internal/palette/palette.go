package palette

import "image/color"

// Palette is a 256-entry RGB color table stored as 768 bytes. Only the first
// Colors entries are in use; the rest are zero. It is a value type so every
// frame-apply call receives its own immutable copy.
type Palette struct {
	Entries [Size]uint8
	Colors  int
}

// FromColors packs up to 256 colors into a zero-padded table.
func FromColors(cs []color.RGBA) Palette {
	var p Palette
	n := min(len(cs), MaxColors)
	for i := 0; i < n; i++ {
		p.Entries[i*3] = cs[i].R
		p.Entries[i*3+1] = cs[i].G
		p.Entries[i*3+2] = cs[i].B
	}
	p.Colors = n
	return p
}

// Grayscale returns an n-level gray ramp, used when no palette can be built.
func Grayscale(n int) Palette {
	n = max(1, min(n, MaxColors))
	cs := make([]color.RGBA, n)
	for i := range cs {
		v := uint8(0)
		if n > 1 {
			v = uint8(i * 255 / (n - 1))
		}
		cs[i] = color.RGBA{R: v, G: v, B: v, A: 0xff}
	}
	return FromColors(cs)
}

// Color returns the in-use entries as an opaque color.Palette.
func (p Palette) Color() color.Palette {
	out := make(color.Palette, p.Colors)
	for i := range out {
		out[i] = color.RGBA{R: p.Entries[i*3], G: p.Entries[i*3+1], B: p.Entries[i*3+2], A: 0xff}
	}
	return out
}

// Ints returns all 768 values as ints.
func (p Palette) Ints() []int {
	out := make([]int, Size)
	for i, v := range p.Entries {
		out[i] = int(v)
	}
	return out
}
