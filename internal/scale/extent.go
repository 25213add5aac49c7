package scale

import "math"

// Child is an element placed on a plane that may report data along an axis.
// A child whose binding is nil, or inherits from the axis, shares the axis
// scale and contributes to its extent.
type Child interface {
	Binding(dir Dir) *Binding
	DataDomain(dir Dir) (Domain, bool)
}

// RangePadder is implemented by children that draw beyond their data, such
// as markers with a radius. Padding is in pixels.
type RangePadder interface {
	RangePadding(dir Dir) (lo, hi float64)
}

// Padding widens the data extent on each side by Absolute domain units plus
// Proportional times the extent width.
type Padding struct {
	Absolute     float64
	Proportional float64
}

// Extent is the observed data domain of one axis. OK is false when no child
// reported data, which is distinct from a zero-width extent.
type Extent struct {
	Domain Domain
	OK     bool
	PadLo  float64
	PadHi  float64
}

// Aggregate folds the data domains of the children sharing owner's scale.
func Aggregate(dir Dir, owner *Binding, children []Child) Extent {
	var ext Extent
	for _, c := range children {
		if b := c.Binding(dir); b != nil && b.Owner() != owner {
			continue
		}
		if d, ok := c.DataDomain(dir); ok {
			lo, hi := math.Min(d.Min, d.Max), math.Max(d.Min, d.Max)
			if !ext.OK {
				ext.Domain = Domain{Min: lo, Max: hi}
				ext.OK = true
			} else {
				ext.Domain.Min = math.Min(ext.Domain.Min, lo)
				ext.Domain.Max = math.Max(ext.Domain.Max, hi)
			}
		}
		if p, ok := c.(RangePadder); ok {
			lo, hi := p.RangePadding(dir)
			ext.PadLo = math.Max(ext.PadLo, lo)
			ext.PadHi = math.Max(ext.PadHi, hi)
		}
	}
	return ext
}

// Padded returns the extent widened by p and by the pixel padding converted
// at unitsPerPixel.
func (e Extent) Padded(p Padding, unitsPerPixel float64) Domain {
	pad := p.Absolute + p.Proportional*e.Domain.Width()
	return Domain{
		Min: e.Domain.Min - pad - e.PadLo*unitsPerPixel,
		Max: e.Domain.Max + pad + e.PadHi*unitsPerPixel,
	}
}
