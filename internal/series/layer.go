package series

import (
	"math"
	"time"

	"scaleview/internal/scale"
)

// Layer places a series on a temporal plane. Only the first Revealed
// samples count as data, which lets a replay grow the extent over time.
type Layer struct {
	s    *Series
	n    int
	x, y *scale.Binding
}

func NewLayer(s *Series, x, y *scale.Binding) *Layer {
	l := &Layer{s: s, n: s.Len()}
	if x != nil {
		l.x = scale.NewInheritedBinding(x)
	}
	if y != nil {
		l.y = scale.NewInheritedBinding(y)
	}
	return l
}

func (l *Layer) Series() *Series { return l.s }
func (l *Layer) Revealed() int   { return l.n }

// Reveal shows the first n samples.
func (l *Layer) Reveal(n int) {
	l.n = max(0, min(n, l.s.Len()))
}

// Samples returns the revealed samples.
func (l *Layer) Samples() ([]time.Time, []float64) {
	return l.s.Times[:l.n], l.s.Values[:l.n]
}

func (l *Layer) Binding(dir scale.Dir) *scale.Binding {
	if dir == scale.Y {
		return l.y
	}
	return l.x
}

func (l *Layer) DataDomain(dir scale.Dir) (scale.Domain, bool) {
	if l.n == 0 {
		return scale.Domain{}, false
	}
	if dir == scale.X {
		k := scale.Temporal{}
		return scale.Domain{Min: k.ToScalar(l.s.Times[0]), Max: k.ToScalar(l.s.Times[l.n-1])}, true
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range l.s.Values[:l.n] {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	return scale.Domain{Min: lo, Max: hi}, true
}
