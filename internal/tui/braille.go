package tui

import (
	"math"
	"sort"
)

// dotBits maps a dot's position within a cell, [column][row], to its bit in
// the braille code point.
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// brailleBuf is a canvas of 2x4 dots per terminal cell.
type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m}
}

func (b *brailleBuf) dotsW() int { return b.w * 2 }
func (b *brailleBuf) dotsH() int { return b.h * 4 }

func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 || mx >= b.dotsW() || my >= b.dotsH() {
		return
	}
	b.m[my/4][mx/2] |= dotBits[mx%2][my%4]
}

func (b *brailleBuf) set(x, y float64) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	b.setPixel(int(math.Floor(x)), int(math.Floor(y)))
}

// disc sets every dot within r of (x, y).
func (b *brailleBuf) disc(x, y, r float64) {
	if r < 1 {
		b.set(x, y)
		return
	}
	cx, cy := math.Floor(x), math.Floor(y)
	ri := math.Ceil(r)
	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			if dx*dx+dy*dy <= r*r {
				b.set(cx+dx, cy+dy)
			}
		}
	}
}

// line draws a segment given in dots, clipped to the canvas first so far
// off-screen geometry costs nothing.
func (b *brailleBuf) line(x0, y0, x1, y1 float64) {
	x0, y0, x1, y1, ok := clipSegment(x0, y0, x1, y1, -1, -1, float64(b.dotsW()), float64(b.dotsH()))
	if !ok {
		return
	}
	b.drawLineMicro(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Floor(x1)), int(math.Floor(y1)))
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := y0 - y1
	if dy > 0 {
		dy = -dy
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clipSegment is Liang-Barsky clipping against [minX,maxX]x[minY,maxY].
func clipSegment(x0, y0, x1, y1, minX, minY, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	if math.IsNaN(x0) || math.IsNaN(y0) || math.IsNaN(x1) || math.IsNaN(y1) {
		return 0, 0, 0, 0, false
	}
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0 - minX},
		{dx, maxX - x0},
		{-dy, y0 - minY},
		{dy, maxY - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// fill paints the even-odd interior of rings, holes included, sampling each
// dot row at its center.
func (b *brailleBuf) fill(rings [][][2]float64) {
	var xs []float64
	for row := 0; row < b.dotsH(); row++ {
		y := float64(row) + 0.5
		xs = xs[:0]
		for _, r := range rings {
			for i := range r {
				a, c := r[i], r[(i+1)%len(r)]
				if (y >= a[1] && y < c[1]) || (y >= c[1] && y < a[1]) {
					xs = append(xs, a[0]+(y-a[1])/(c[1]-a[1])*(c[0]-a[0]))
				}
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			lo := max(0, int(math.Ceil(xs[i]-0.5)))
			hi := min(b.dotsW()-1, int(math.Floor(xs[i+1]-0.5)))
			for x := lo; x <= hi; x++ {
				b.setPixel(x, row)
			}
		}
	}
}

func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		row := make([]rune, b.w)
		for x := 0; x < b.w; x++ {
			if mask := b.m[y][x]; mask == 0 {
				row[x] = ' '
			} else {
				row[x] = rune(0x2800 + int(mask))
			}
		}
		out[y] = string(row)
	}
	return out
}
