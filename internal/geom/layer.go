package geom

import (
	"math"

	"scaleview/internal/scale"
)

// Layer places a dataset on a plane. It shares the plane scales through
// inherited bindings and reports the bbox of its visible kinds as its data
// domain, so hiding a kind changes the extent the plane fits to.
type Layer struct {
	Name    string
	Data    Data
	Visible Kinds
	// MarkerRadius is the drawn point radius in pixels.
	MarkerRadius float64

	x, y *scale.Binding
}

// NewLayer makes a layer inheriting the x and y bindings. Polygons hide
// points and lines by default.
func NewLayer(name string, d Data, x, y *scale.Binding) *Layer {
	l := &Layer{Name: name, Data: d, Visible: DefaultKinds(d)}
	if x != nil {
		l.x = scale.NewInheritedBinding(x)
	}
	if y != nil {
		l.y = scale.NewInheritedBinding(y)
	}
	return l
}

func DefaultKinds(d Data) Kinds {
	polys := len(d.Polygons) > 0
	return Kinds{
		Points:   len(d.Points) > 0 && !polys,
		Lines:    len(d.Lines) > 0 && !polys,
		Polygons: polys,
	}
}

func (l *Layer) Binding(dir scale.Dir) *scale.Binding {
	if dir == scale.Y {
		return l.y
	}
	return l.x
}

func (l *Layer) DataDomain(dir scale.Dir) (scale.Domain, bool) {
	b, ok := l.Data.Bounds(l.Visible)
	if !ok {
		return scale.Domain{}, false
	}
	if dir == scale.Y {
		return scale.Domain{Min: b.MinY, Max: b.MaxY}, true
	}
	return scale.Domain{Min: b.MinX, Max: b.MaxX}, true
}

func (l *Layer) RangePadding(scale.Dir) (float64, float64) {
	if !l.Visible.Points || len(l.Data.Points) == 0 {
		return 0, 0
	}
	return l.MarkerRadius, l.MarkerRadius
}

// Nearest returns the visible vertex drawn closest to pixel (px, py) and
// its squared pixel distance.
func (l *Layer) Nearest(xs, ys scale.Linear, px, py float64) (pt [2]float64, dist2 float64, ok bool) {
	dist2 = math.Inf(1)
	l.Data.Each(l.Visible, func(v [2]float64) {
		dx, dy := xs.Map(v[0])-px, ys.Map(v[1])-py
		if d := dx*dx + dy*dy; d < dist2 {
			pt, dist2, ok = v, d, true
		}
	})
	return pt, dist2, ok
}
