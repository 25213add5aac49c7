package scale

import (
	"fmt"
	"math"
)

const (
	epsilon = 1e-9
	// roundoff absorbs float noise on large scalars such as epoch
	// milliseconds, where one ulp is already a fraction of a millisecond.
	roundoff = 1e-13
)

// equiv compares two relative quantities (widths, ratios, pixels) with a
// tolerance relative to their magnitude.
func equiv(a, b float64) bool {
	if a == b {
		return true
	}
	tol := epsilon * math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= tol
}

// near compares two domain values relative to the width of the window they
// live in rather than to their magnitude, so an offset of a second still
// counts on a time axis whose values are around 1e12.
func near(a, b, width float64) bool {
	if a == b {
		return true
	}
	tol := epsilon*math.Abs(width) + roundoff*math.Max(math.Abs(a), math.Abs(b))
	return math.Abs(a-b) <= tol
}

// Domain is an ordered pair of scalar data values.
type Domain struct {
	Min float64
	Max float64
}

func (d Domain) Width() float64  { return d.Max - d.Min }
func (d Domain) Center() float64 { return (d.Min + d.Max) / 2 }

func (d Domain) Equal(o Domain) bool {
	w := math.Max(math.Abs(d.Width()), math.Abs(o.Width()))
	return near(d.Min, o.Min, w) && near(d.Max, o.Max, w)
}

func (d Domain) Contains(x float64) bool {
	w := d.Width()
	return (d.Min < x || near(d.Min, x, w)) && (x < d.Max || near(x, d.Max, w))
}

func (d Domain) Translate(dx float64) Domain {
	return Domain{Min: d.Min + dx, Max: d.Max + dx}
}

// WithWidth resizes d to width w keeping the point at fraction align of the
// domain fixed.
func (d Domain) WithWidth(w, align float64) Domain {
	min := d.Min - (w-d.Width())*align
	return Domain{Min: min, Max: min + w}
}

func (d Domain) String() string {
	return fmt.Sprintf("[%g, %g]", d.Min, d.Max)
}

// Range is an ordered pair of pixel coordinates. Y ranges usually run from
// the bottom edge to the top one, so Min may exceed Max.
type Range struct {
	Min float64
	Max float64
}

// Span is the unsigned pixel length of the range.
func (r Range) Span() float64 { return math.Abs(r.Max - r.Min) }

func (r Range) Equal(o Range) bool {
	return equiv(r.Min, o.Min) && equiv(r.Max, o.Max)
}

// Linear is an invertible linear map from a Domain onto a Range.
type Linear struct {
	Domain Domain
	Range  Range
}

func (s Linear) Map(x float64) float64 {
	w := s.Domain.Width()
	if w == 0 {
		return s.Range.Min
	}
	return s.Range.Min + (x-s.Domain.Min)/w*(s.Range.Max-s.Range.Min)
}

func (s Linear) Invert(px float64) float64 {
	rw := s.Range.Max - s.Range.Min
	if rw == 0 {
		return s.Domain.Min
	}
	return s.Domain.Min + (px-s.Range.Min)/rw*s.Domain.Width()
}

func (s Linear) WithDomain(d Domain) Linear { return Linear{Domain: d, Range: s.Range} }
func (s Linear) WithRange(r Range) Linear   { return Linear{Domain: s.Domain, Range: r} }

func (s Linear) Equal(o Linear) bool {
	return s.Domain.Equal(o.Domain) && s.Range.Equal(o.Range)
}

// Interpolate returns the scale a fraction t of the way from s to to.
func (s Linear) Interpolate(to Linear, t float64) Linear {
	lerp := func(a, b float64) float64 { return a + (b-a)*t }
	return Linear{
		Domain: Domain{Min: lerp(s.Domain.Min, to.Domain.Min), Max: lerp(s.Domain.Max, to.Domain.Max)},
		Range:  Range{Min: lerp(s.Range.Min, to.Range.Min), Max: lerp(s.Range.Max, to.Range.Max)},
	}
}

// UnitsPerPixel is the zoom ratio of the scale, or 0 for an empty range.
func (s Linear) UnitsPerPixel() float64 {
	span := s.Range.Span()
	if span == 0 {
		return 0
	}
	return math.Abs(s.Domain.Width()) / span
}
