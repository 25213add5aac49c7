package scale

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type BoundMode uint8

const (
	BoundOff BoundMode = iota
	BoundAuto
	BoundLiteral
)

// Bound is one edge of a domain or zoom constraint.
type Bound struct {
	Mode  BoundMode
	Value float64
}

var (
	Off  = Bound{Mode: BoundOff}
	Auto = Bound{Mode: BoundAuto}
)

func Literal(v float64) Bound { return Bound{Mode: BoundLiteral, Value: v} }

// ParseBound accepts "off", "auto" or a number.
func ParseBound(s string) (Bound, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "off", "false", "none":
		return Off, nil
	case "auto", "true":
		return Auto, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) {
		return Off, fmt.Errorf("%w: %q", ErrInvalidBound, s)
	}
	return Literal(v), nil
}

func (b Bound) String() string {
	switch b.Mode {
	case BoundAuto:
		return "auto"
	case BoundLiteral:
		return strconv.FormatFloat(b.Value, 'g', -1, 64)
	}
	return "off"
}

// Bounds pairs the lower and upper edge of a constraint.
type Bounds struct {
	Min Bound
	Max Bound
}

// limits is a Bounds pair resolved to literal values.
type limits struct {
	lo, hi       float64
	hasLo, hasHi bool
}

func (l limits) consistent() bool {
	return !(l.hasLo && l.hasHi && l.lo > l.hi)
}

// resolveDomain resolves auto edges against the padded data extent. Auto
// edges without data stay unresolved.
func resolveDomain(b Bounds, padded Domain, hasData bool) limits {
	var l limits
	switch b.Min.Mode {
	case BoundLiteral:
		l.lo, l.hasLo = b.Min.Value, true
	case BoundAuto:
		l.lo, l.hasLo = padded.Min, hasData
	}
	switch b.Max.Mode {
	case BoundLiteral:
		l.hi, l.hasHi = b.Max.Value, true
	case BoundAuto:
		l.hi, l.hasHi = padded.Max, hasData
	}
	return l
}

// resolveZoom resolves zoom edges to domain units per pixel; auto edges use
// the kind defaults.
func resolveZoom(b Bounds, defMin, defMax float64) limits {
	var l limits
	switch b.Min.Mode {
	case BoundLiteral:
		l.lo, l.hasLo = b.Min.Value, true
	case BoundAuto:
		l.lo, l.hasLo = defMin, true
	}
	switch b.Max.Mode {
	case BoundLiteral:
		l.hi, l.hasHi = b.Max.Value, true
	case BoundAuto:
		l.hi, l.hasHi = defMax, true
	}
	return l
}

type clampResult struct {
	domain      Domain
	clamped     bool
	zoomClamped bool

	// edge pairs skipped because they resolved to lo > hi
	badDomain bool
	badZoom   bool
}

// clampDomain keeps d's width within the zoom limits (about its center) and
// then shifts, or if too wide squeezes, it into the domain limits.
func clampDomain(d Domain, dom, zoom limits, span float64) clampResult {
	r := clampResult{domain: d}
	if !zoom.consistent() {
		r.badZoom = true
	} else if span > 0 {
		w := d.Width()
		nw := w
		if zoom.hasLo && nw < zoom.lo*span {
			nw = zoom.lo * span
		}
		if zoom.hasHi && nw > zoom.hi*span {
			nw = zoom.hi * span
		}
		if !equiv(nw, w) {
			r.domain = r.domain.WithWidth(nw, 0.5)
		}
	}
	if !dom.consistent() {
		r.badDomain = true
	} else if dom.hasLo && dom.hasHi && r.domain.Width() > dom.hi-dom.lo {
		r.domain = Domain{Min: dom.lo, Max: dom.hi}
	} else {
		if dom.hasLo && r.domain.Min < dom.lo {
			r.domain = r.domain.Translate(dom.lo - r.domain.Min)
		}
		if dom.hasHi && r.domain.Max > dom.hi {
			r.domain = r.domain.Translate(dom.hi - r.domain.Max)
		}
	}
	r.clamped = !r.domain.Equal(d)
	r.zoomClamped = !equiv(r.domain.Width(), d.Width())
	return r
}
