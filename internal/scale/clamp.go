package scale

import "github.com/sirupsen/logrus"

// clamp resolves the bounds of a against the current extent and clamps d.
// Inconsistent bound pairs are skipped and reported once per axis.
func (c *core) clamp(a *axis, d Domain) clampResult {
	s := a.binding.Target()
	span := s.Range.Span()
	padded := a.extent.Padded(a.cfg.Padding, s.UnitsPerPixel())
	dom := resolveDomain(a.cfg.DomainBounds, padded, a.extent.OK)
	zoom := resolveZoom(a.cfg.ZoomBounds, a.zoomMin, a.zoomMax)
	r := clampDomain(d, dom, zoom, span)

	if r.badDomain && !a.warnedDomain {
		a.warnedDomain = true
		c.log.WithFields(c.fields(a)).WithFields(logrus.Fields{
			"min": dom.lo,
			"max": dom.hi,
		}).Warn("domain bounds are inverted; ignoring them")
	}
	if r.badZoom && !a.warnedZoom {
		a.warnedZoom = true
		c.log.WithFields(c.fields(a)).WithFields(logrus.Fields{
			"min": zoom.lo,
			"max": zoom.hi,
		}).Warn("zoom bounds are inverted; ignoring them")
	}
	return r
}

// bound clamps the committed domain of a. With domain tracking on the
// correction is left to the rebound stage, which animates it; a gesture in
// progress may then overscroll.
func (c *core) bound(a *axis) {
	a.state.Clamped, a.state.ZoomClamped = false, false
	if a.binding.Tweening() {
		return
	}
	cur := a.target()
	r := c.clamp(a, cur)
	a.state.Clamped, a.state.ZoomClamped = r.clamped, r.zoomClamped
	if !r.clamped || a.cfg.DomainTracking {
		return
	}
	c.log.WithFields(c.fields(a)).WithFields(logrus.Fields{
		"from": cur.String(),
		"to":   r.domain.String(),
		"zoom": r.zoomClamped,
	}).Debug("clamp")
	a.binding.SetDomain(r.domain, nil)
}
