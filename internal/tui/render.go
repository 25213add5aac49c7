package tui

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"scaleview/internal/scale"
)

// renderMap draws the visible layer kinds through the plane's current scales.
func (m Model) renderMap(w, h int) string {
	br := newBrailleBuf(w, h)
	xs, ys := m.plane.XScale(), m.plane.YScale()
	if m.layer != nil {
		proj := func(pts [][2]float64) [][2]float64 {
			out := make([][2]float64, len(pts))
			for i, p := range pts {
				out[i] = [2]float64{xs.Map(p[0]), ys.Map(p[1])}
			}
			return out
		}
		d, vis := m.layer.Data, m.layer.Visible

		if vis.Polygons {
			for _, poly := range d.Polygons {
				rings := make([][][2]float64, 0, len(poly))
				for _, ring := range poly {
					if len(ring) >= 3 {
						rings = append(rings, proj(ring))
					}
				}
				br.fill(rings)
				for _, r := range rings {
					for i := range r {
						a, b := r[i], r[(i+1)%len(r)]
						br.line(a[0], a[1], b[0], b[1])
					}
				}
			}
		}
		if vis.Lines {
			for _, ls := range d.Lines {
				p := proj(ls)
				for i := 1; i < len(p); i++ {
					br.line(p[i-1][0], p[i-1][1], p[i][0], p[i][1])
				}
			}
		}
		if vis.Points {
			for _, pt := range d.Points {
				br.disc(xs.Map(pt[0]), ys.Map(pt[1]), m.layer.MarkerRadius)
			}
		}
	}
	lines := br.toLines()

	// Hover highlight: a circle over the hovered vertex cell
	if m.hover.hasVertex {
		cx := int(math.Floor(xs.Map(m.hover.vertex[0]) / 2))
		cy := int(math.Floor(ys.Map(m.hover.vertex[1]) / 4))
		if cy >= 0 && cy < len(lines) {
			r := []rune(lines[cy])
			if cx >= 0 && cx < len(r) {
				lines[cy] = string(r[:cx]) + hoverStyle.Render("◯") + string(r[cx+1:])
			}
		}
	}
	return strings.Join(lines, "\n")
}

func formatValue(v float64) string {
	return humanize.FtoaWithDigits(v, 5)
}

func formatDomain(d scale.Domain) string {
	return "[" + formatValue(d.Min) + ", " + formatValue(d.Max) + "]"
}
